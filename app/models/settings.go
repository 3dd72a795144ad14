package models

import "gorm.io/gorm"

// StoreSettings is the singleton configuration row, created lazily on the
// first admin write. Every storefront page reads it; only admin actions
// write it, whole-row, last writer wins.
//
// SMTPPassword and TwilioAuthToken are stored AES-GCM encrypted (pkg/crypt);
// the settings service transparently encrypts on save and decrypts on load.
type StoreSettings struct {
	gorm.Model

	// Store identity
	StoreName      string `gorm:"size:100;default:Santhai" json:"store_name"`
	StoreNameTamil string `gorm:"size:100" json:"store_name_tamil"`
	Tagline        string `gorm:"size:200" json:"tagline"`
	TaglineTamil   string `gorm:"size:200" json:"tagline_tamil"`
	LogoURL        string `gorm:"size:255" json:"logo_url"`
	Address        string `gorm:"type:text" json:"address"`
	Phone          string `gorm:"size:20" json:"phone"`
	Email          string `gorm:"size:120" json:"email"`
	Website        string `gorm:"size:100" json:"website"`
	GSTNumber      string `gorm:"size:20" json:"gst_number"`

	// Bank / UPI payment identifiers
	BankName          string `gorm:"size:100" json:"bank_name"`
	BankAccountName   string `gorm:"size:100" json:"bank_account_name"`
	BankAccountNumber string `gorm:"size:30" json:"bank_account_number"`
	BankIFSC          string `gorm:"size:15" json:"bank_ifsc"`
	UPIID             string `gorm:"size:100" json:"upi_id"`
	UPIQRImageURL     string `gorm:"size:255" json:"upi_qr_image_url"`

	// Delivery pricing
	FreeDeliveryAmount float64 `gorm:"default:500" json:"free_delivery_amount"`
	DeliveryCharge     float64 `gorm:"default:50" json:"delivery_charge"`

	// SMTP
	SMTPServer   string `gorm:"size:100" json:"smtp_server"`
	SMTPPort     int    `gorm:"default:587" json:"smtp_port"`
	SMTPUsername string `gorm:"size:120" json:"smtp_username"`
	SMTPPassword string `gorm:"size:255" json:"-"`
	SMTPUseTLS   bool   `gorm:"default:true" json:"smtp_use_tls"`

	// WhatsApp / Twilio
	WhatsAppNumber   string `gorm:"size:20" json:"whatsapp_number"`
	WhatsAppEnabled  bool   `gorm:"default:false" json:"whatsapp_enabled"`
	TwilioAccountSID string `gorm:"size:100" json:"twilio_account_sid"`
	TwilioAuthToken  string `gorm:"size:255" json:"-"`

	// Automatic notifications
	EmailNotificationsEnabled bool `gorm:"default:true" json:"email_notifications_enabled"`
	SMSNotificationsEnabled   bool `gorm:"default:false" json:"sms_notifications_enabled"`

	// Invoice layout
	InvoiceHeader       string `gorm:"size:100;default:TAX INVOICE" json:"invoice_header"`
	InvoicePrefix       string `gorm:"size:10;default:SAN" json:"invoice_prefix"`
	InvoiceFooter       string `gorm:"size:200;default:Thank you for your business!" json:"invoice_footer"`
	InvoiceLogoURL      string `gorm:"size:255" json:"invoice_logo_url"`
	InvoiceLogoPosition string `gorm:"size:20;default:left" json:"invoice_logo_position"`
	InvoiceLogoSize     int    `gorm:"default:80" json:"invoice_logo_size"`

	// Homepage content
	HeroImageURL       string `gorm:"size:255" json:"hero_image_url"`
	HeroSubtitle       string `gorm:"size:255" json:"hero_subtitle"`
	HeroDescription    string `gorm:"type:text" json:"hero_description"`
	CategoriesTitle    string `gorm:"size:255;default:Shop by Categories" json:"categories_title"`
	CategoriesSubtitle string `gorm:"size:255" json:"categories_subtitle"`
	ThemeColor         string `gorm:"size:10;default:#28a745" json:"theme_color"`

	// Message templates. Placeholders: {customer_name}, {order_number},
	// {total_amount}, {status}, {tracking_url}, {website_url}.
	OrderEmailSubject         string `gorm:"size:200;default:Order Confirmation - #{order_number}" json:"order_email_subject"`
	OrderWhatsAppTemplate     string `gorm:"type:text" json:"order_whatsapp_template"`
	DeliveryWhatsAppTemplate  string `gorm:"type:text" json:"delivery_whatsapp_template"`
	MarketingWhatsAppTemplate string `gorm:"type:text" json:"marketing_whatsapp_template"`
}

// DeliveryChargeFor returns the charge applied to an order with the given
// subtotal: zero at or above the free-delivery threshold, else the flat rate.
func (s *StoreSettings) DeliveryChargeFor(subtotal float64) float64 {
	if subtotal >= s.FreeDeliveryAmount {
		return 0
	}
	return s.DeliveryCharge
}
