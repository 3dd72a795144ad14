package controllers

import (
	"net/http"

	"github.com/muthuvel/santhai/app/models"
	"github.com/muthuvel/santhai/app/services"
	"github.com/muthuvel/santhai/pkg/bind"
	"github.com/muthuvel/santhai/pkg/logger"
	"github.com/muthuvel/santhai/pkg/middleware"
	"github.com/muthuvel/santhai/pkg/response"
)

// SettingsInput is the admin settings form. It mirrors the settings row
// but exposes the two secrets, which never leave the server in reads:
// an empty secret in the form keeps the stored value.
type SettingsInput struct {
	StoreName      string `json:"store_name" validate:"required,max=100"`
	StoreNameTamil string `json:"store_name_tamil" validate:"nullable,max=100"`
	Tagline        string `json:"tagline" validate:"nullable,max=200"`
	TaglineTamil   string `json:"tagline_tamil" validate:"nullable,max=200"`
	LogoURL        string `json:"logo_url" validate:"nullable,url"`
	Address        string `json:"address"`
	Phone          string `json:"phone" validate:"nullable,max=20"`
	Email          string `json:"email" validate:"nullable,email"`
	Website        string `json:"website" validate:"nullable,max=100"`
	GSTNumber      string `json:"gst_number" validate:"nullable,max=20"`

	BankName          string `json:"bank_name" validate:"nullable,max=100"`
	BankAccountName   string `json:"bank_account_name" validate:"nullable,max=100"`
	BankAccountNumber string `json:"bank_account_number" validate:"nullable,max=30"`
	BankIFSC          string `json:"bank_ifsc" validate:"nullable,max=15"`
	UPIID             string `json:"upi_id" validate:"nullable,max=100"`
	UPIQRImageURL     string `json:"upi_qr_image_url" validate:"nullable,url"`

	FreeDeliveryAmount float64 `json:"free_delivery_amount" validate:"gte=0"`
	DeliveryCharge     float64 `json:"delivery_charge" validate:"gte=0"`

	SMTPServer   string `json:"smtp_server" validate:"nullable,max=100"`
	SMTPPort     int    `json:"smtp_port" validate:"nullable,gte=1,lte=65535"`
	SMTPUsername string `json:"smtp_username" validate:"nullable,max=120"`
	SMTPPassword string `json:"smtp_password"`
	SMTPUseTLS   bool   `json:"smtp_use_tls"`

	WhatsAppNumber   string `json:"whatsapp_number" validate:"nullable,max=20"`
	WhatsAppEnabled  bool   `json:"whatsapp_enabled"`
	TwilioAccountSID string `json:"twilio_account_sid" validate:"nullable,max=100"`
	TwilioAuthToken  string `json:"twilio_auth_token"`

	EmailNotificationsEnabled bool `json:"email_notifications_enabled"`
	SMSNotificationsEnabled   bool `json:"sms_notifications_enabled"`

	InvoiceHeader       string `json:"invoice_header" validate:"nullable,max=100"`
	InvoicePrefix       string `json:"invoice_prefix" validate:"nullable,alpha_num,max=10"`
	InvoiceFooter       string `json:"invoice_footer" validate:"nullable,max=200"`
	InvoiceLogoURL      string `json:"invoice_logo_url" validate:"nullable,url"`
	InvoiceLogoPosition string `json:"invoice_logo_position" validate:"nullable,in=left,center,right"`
	InvoiceLogoSize     int    `json:"invoice_logo_size" validate:"nullable,gte=20,lte=300"`

	HeroImageURL       string `json:"hero_image_url" validate:"nullable,url"`
	HeroSubtitle       string `json:"hero_subtitle" validate:"nullable,max=255"`
	HeroDescription    string `json:"hero_description"`
	CategoriesTitle    string `json:"categories_title" validate:"nullable,max=255"`
	CategoriesSubtitle string `json:"categories_subtitle" validate:"nullable,max=255"`
	ThemeColor         string `json:"theme_color" validate:"nullable,max=10"`

	OrderEmailSubject         string `json:"order_email_subject" validate:"nullable,max=200"`
	OrderWhatsAppTemplate     string `json:"order_whatsapp_template"`
	DeliveryWhatsAppTemplate  string `json:"delivery_whatsapp_template"`
	MarketingWhatsAppTemplate string `json:"marketing_whatsapp_template"`
}

func (in *SettingsInput) apply(s *models.StoreSettings) {
	s.StoreName = in.StoreName
	s.StoreNameTamil = in.StoreNameTamil
	s.Tagline = in.Tagline
	s.TaglineTamil = in.TaglineTamil
	s.LogoURL = in.LogoURL
	s.Address = in.Address
	s.Phone = in.Phone
	s.Email = in.Email
	s.Website = in.Website
	s.GSTNumber = in.GSTNumber

	s.BankName = in.BankName
	s.BankAccountName = in.BankAccountName
	s.BankAccountNumber = in.BankAccountNumber
	s.BankIFSC = in.BankIFSC
	s.UPIID = in.UPIID
	s.UPIQRImageURL = in.UPIQRImageURL

	s.FreeDeliveryAmount = in.FreeDeliveryAmount
	s.DeliveryCharge = in.DeliveryCharge

	s.SMTPServer = in.SMTPServer
	if in.SMTPPort != 0 {
		s.SMTPPort = in.SMTPPort
	}
	s.SMTPUsername = in.SMTPUsername
	if in.SMTPPassword != "" {
		s.SMTPPassword = in.SMTPPassword
	}
	s.SMTPUseTLS = in.SMTPUseTLS

	s.WhatsAppNumber = in.WhatsAppNumber
	s.WhatsAppEnabled = in.WhatsAppEnabled
	s.TwilioAccountSID = in.TwilioAccountSID
	if in.TwilioAuthToken != "" {
		s.TwilioAuthToken = in.TwilioAuthToken
	}

	s.EmailNotificationsEnabled = in.EmailNotificationsEnabled
	s.SMSNotificationsEnabled = in.SMSNotificationsEnabled

	s.InvoiceHeader = in.InvoiceHeader
	s.InvoicePrefix = in.InvoicePrefix
	s.InvoiceFooter = in.InvoiceFooter
	s.InvoiceLogoURL = in.InvoiceLogoURL
	if in.InvoiceLogoPosition != "" {
		s.InvoiceLogoPosition = in.InvoiceLogoPosition
	}
	if in.InvoiceLogoSize != 0 {
		s.InvoiceLogoSize = in.InvoiceLogoSize
	}

	s.HeroImageURL = in.HeroImageURL
	s.HeroSubtitle = in.HeroSubtitle
	s.HeroDescription = in.HeroDescription
	s.CategoriesTitle = in.CategoriesTitle
	s.CategoriesSubtitle = in.CategoriesSubtitle
	s.ThemeColor = in.ThemeColor

	s.OrderEmailSubject = in.OrderEmailSubject
	s.OrderWhatsAppTemplate = in.OrderWhatsAppTemplate
	s.DeliveryWhatsAppTemplate = in.DeliveryWhatsAppTemplate
	s.MarketingWhatsAppTemplate = in.MarketingWhatsAppTemplate
}

// AdminSettingsController is the store configuration surface plus the
// SMTP / WhatsApp test endpoints. Admin-only.
type AdminSettingsController struct {
	settings *services.SettingsService
	notifier *services.NotifierService
}

func NewAdminSettingsController(settings *services.SettingsService, notifier *services.NotifierService) *AdminSettingsController {
	return &AdminSettingsController{settings: settings, notifier: notifier}
}

func (c *AdminSettingsController) Show(w http.ResponseWriter, r *http.Request) {
	settings, err := c.settings.Get()
	if err != nil {
		logger.WithCtx(r.Context()).Error("settings show", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load settings")
		return
	}
	// Secrets are json:"-" on the model, so they are omitted here.
	response.Success(w, settings)
}

func (c *AdminSettingsController) Update(w http.ResponseWriter, r *http.Request) {
	var in SettingsInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	settings, err := c.settings.Get()
	if err != nil {
		logger.WithCtx(r.Context()).Error("settings load", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load settings")
		return
	}

	in.apply(&settings)
	actorID, _ := middleware.UserIDFromCtx(r)
	if err := c.settings.Update(&settings, actorID); err != nil {
		logger.WithCtx(r.Context()).Error("settings update", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not save settings")
		return
	}
	response.Success(w, settings)
}

func (c *AdminSettingsController) TestEmail(w http.ResponseWriter, r *http.Request) {
	var in struct {
		To string `json:"to" validate:"required,email"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := c.notifier.TestEmail(in.To); err != nil {
		response.Error(w, http.StatusBadGateway, err.Error())
		return
	}
	response.Success(w, map[string]string{"message": "Test email sent"})
}

func (c *AdminSettingsController) TestWhatsApp(w http.ResponseWriter, r *http.Request) {
	var in struct {
		To string `json:"to" validate:"required,min=10,max=15"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := c.notifier.TestWhatsApp(in.To); err != nil {
		response.Error(w, http.StatusBadGateway, err.Error())
		return
	}
	response.Success(w, map[string]string{"message": "Test WhatsApp sent"})
}
