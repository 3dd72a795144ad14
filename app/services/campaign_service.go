package services

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/muthuvel/santhai/app/models"
	"github.com/muthuvel/santhai/app/repositories"
	"github.com/muthuvel/santhai/pkg/logger"
	"github.com/muthuvel/santhai/pkg/mail"
	"github.com/muthuvel/santhai/pkg/notification"
	"github.com/muthuvel/santhai/pkg/workerpool"
	"gorm.io/gorm"
)

// Campaign errors.
var (
	ErrCampaignSent  = errors.New("campaign: already sent")
	ErrNoRecipients  = errors.New("campaign: audience is empty")
	ErrUnknownTarget = errors.New("campaign: unknown campaign type")
)

const campaignWorkers = 10

// CampaignService manages marketing blasts. Sending fans out over a
// bounded worker pool so a big audience can't spawn unbounded goroutines;
// per-recipient failures are logged and counted, not fatal.
type CampaignService struct {
	campaigns *repositories.CampaignRepository
	users     *repositories.UserRepository
	settings  *SettingsService
	notifier  *NotifierService
}

func NewCampaignService(db *gorm.DB, settings *SettingsService, notifier *NotifierService) *CampaignService {
	return &CampaignService{
		campaigns: repositories.NewCampaignRepository(db),
		users:     repositories.NewUserRepository(db),
		settings:  settings,
		notifier:  notifier,
	}
}

// All lists campaigns newest-first.
func (s *CampaignService) All() ([]models.Campaign, error) {
	return s.campaigns.All()
}

// Campaign returns one campaign.
func (s *CampaignService) Campaign(id uint) (models.Campaign, error) {
	return s.campaigns.FindByID(id)
}

// Create stores a campaign. A ScheduledAt in the future marks it
// scheduled; otherwise it stays a draft until Send.
func (s *CampaignService) Create(c *models.Campaign) error {
	switch c.Type {
	case models.CampaignTypeEmail, models.CampaignTypeWhatsApp, models.CampaignTypeBoth:
	default:
		return ErrUnknownTarget
	}

	c.Status = models.CampaignStatusDraft
	if c.ScheduledAt != nil && c.ScheduledAt.After(time.Now()) {
		c.Status = models.CampaignStatusScheduled
	}
	return s.campaigns.Create(c)
}

// Send resolves the audience and delivers the campaign now. Safe to call
// from both the admin endpoint and the scheduler.
func (s *CampaignService) Send(id uint) (models.Campaign, error) {
	c, err := s.campaigns.FindByID(id)
	if err != nil {
		return models.Campaign{}, err
	}
	if c.Status == models.CampaignStatusSent {
		return models.Campaign{}, ErrCampaignSent
	}

	recipients, err := s.users.CustomersForAudience(c.TargetAudience)
	if err != nil {
		return models.Campaign{}, fmt.Errorf("campaign: resolve audience: %w", err)
	}
	if len(recipients) == 0 {
		return models.Campaign{}, ErrNoRecipients
	}

	settings, err := s.settings.Get()
	if err != nil {
		return models.Campaign{}, err
	}
	s.notifier.applyTwilio(settings)
	smtp, haveSMTP := s.settings.SMTPConfig()

	sendEmail := haveSMTP &&
		(c.Type == models.CampaignTypeEmail || c.Type == models.CampaignTypeBoth)
	sendWhatsApp := settings.WhatsAppEnabled &&
		(c.Type == models.CampaignTypeWhatsApp || c.Type == models.CampaignTypeBoth)

	pool := workerpool.New(campaignWorkers)
	defer pool.Shutdown()

	var (
		wg   sync.WaitGroup
		sent int64
	)
	for _, user := range recipients {
		user := user
		wg.Add(1)
		task := func() {
			defer wg.Done()
			if s.sendToRecipient(c, user, settings, smtp, sendEmail, sendWhatsApp) {
				atomic.AddInt64(&sent, 1)
			}
		}
		if err := pool.SubmitWait(task); err != nil {
			wg.Done()
			logger.Error("campaign: submit", "campaign_id", c.ID, "error", err)
		}
	}
	wg.Wait()

	now := time.Now()
	c.Status = models.CampaignStatusSent
	c.SentAt = &now
	c.RecipientsCount = len(recipients)
	c.SentCount = int(sent)
	if err := s.campaigns.Update(&c); err != nil {
		return models.Campaign{}, fmt.Errorf("campaign: mark sent: %w", err)
	}

	logger.Info("campaign: sent",
		"campaign_id", c.ID, "recipients", len(recipients), "delivered", sent)
	return c, nil
}

// DispatchDue sends every scheduled campaign whose time has passed. The
// scheduler calls this once a minute.
func (s *CampaignService) DispatchDue(now time.Time) {
	due, err := s.campaigns.DueScheduled(now)
	if err != nil {
		logger.Error("campaign: poll due", "error", err)
		return
	}
	for _, c := range due {
		if _, err := s.Send(c.ID); err != nil {
			logger.Error("campaign: scheduled send failed",
				"campaign_id", c.ID, "error", err)
		}
	}
}

// sendToRecipient delivers one campaign message and reports whether at
// least one channel succeeded.
func (s *CampaignService) sendToRecipient(c models.Campaign, user models.User, settings models.StoreSettings, smtp mail.SMTP, sendEmail, sendWhatsApp bool) bool {
	vars := map[string]string{
		"customer_name": user.DisplayName(),
		"website_url":   settings.Website,
	}
	body := renderTemplate(c.Message, vars)

	ok := false
	if sendEmail && user.Email != "" {
		err := mail.To(user.Email).
			Subject(renderTemplate(c.Subject, vars)).
			Body(body).
			UseConfig(smtp).
			Send()
		if err != nil {
			logger.Warn("campaign: email failed",
				"campaign_id", c.ID, "user_id", user.ID, "error", err)
		} else {
			ok = true
		}
	}

	if sendWhatsApp && user.Phone != "" {
		text := body
		if settings.MarketingWhatsAppTemplate != "" {
			vars["message"] = body
			text = renderTemplate(settings.MarketingWhatsAppTemplate, vars)
		}
		err := notification.SendWhatsApp(notification.WhatsAppData{
			To:   user.Phone,
			Body: text,
		})
		if err != nil {
			logger.Warn("campaign: whatsapp failed",
				"campaign_id", c.ID, "user_id", user.ID, "error", err)
		} else {
			ok = true
		}
	}
	return ok
}
