package services

import (
	"fmt"
	"time"

	"github.com/muthuvel/santhai/app/models"
	"github.com/muthuvel/santhai/app/repositories"
	"github.com/muthuvel/santhai/pkg/cache"
	"github.com/muthuvel/santhai/pkg/crypt"
	"github.com/muthuvel/santhai/pkg/event"
	"github.com/muthuvel/santhai/pkg/logger"
	"github.com/muthuvel/santhai/pkg/mail"
	"gorm.io/gorm"
)

const (
	settingsCacheKey = "santhai:settings"
	settingsCacheTTL = 60 * time.Second
)

// SettingsService owns the store-settings singleton. Reads are served from
// a short Redis cache; every write invalidates it, so pages pick up changes
// within one request. SMTP password and Twilio token are encrypted at rest
// and transparent to callers.
type SettingsService struct {
	repo *repositories.SettingsRepository
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{repo: repositories.NewSettingsRepository(db)}
}

// Get returns the current settings with secrets decrypted. When no row
// exists yet the defaults are returned.
func (s *SettingsService) Get() (models.StoreSettings, error) {
	var cached models.StoreSettings
	if cache.Get(settingsCacheKey, &cached) {
		s.decryptSecrets(&cached)
		return cached, nil
	}

	settings, _, err := s.repo.First()
	if err != nil {
		return settings, fmt.Errorf("settings: load: %w", err)
	}

	cache.Set(settingsCacheKey, settings, settingsCacheTTL) //nolint:errcheck

	s.decryptSecrets(&settings)
	return settings, nil
}

// Update persists the whole row, last writer wins. Secrets arrive in
// plaintext on the struct and are encrypted before the write. Fires
// settings.changed after a successful save.
func (s *SettingsService) Update(settings *models.StoreSettings, actorID uint) error {
	if err := s.encryptSecrets(settings); err != nil {
		return err
	}

	if err := s.repo.Save(settings); err != nil {
		return fmt.Errorf("settings: save: %w", err)
	}

	cache.Forget(settingsCacheKey) //nolint:errcheck
	event.Fire("settings.changed", SettingsChanged{ActorID: actorID})
	return nil
}

// SettingsChanged is the payload fired after an admin saves settings.
type SettingsChanged struct {
	ActorID uint
}

// SMTPConfig builds a mail configuration from the stored SMTP section,
// for use with mail.Message.UseConfig. Returns false when SMTP is not
// configured or email notifications are switched off.
func (s *SettingsService) SMTPConfig() (mail.SMTP, bool) {
	settings, err := s.Get()
	if err != nil {
		logger.Error("settings: smtp config", "error", err)
		return mail.SMTP{}, false
	}
	if !settings.EmailNotificationsEnabled || settings.SMTPServer == "" {
		return mail.SMTP{}, false
	}
	return mail.SMTP{
		Host:     settings.SMTPServer,
		Port:     fmt.Sprintf("%d", settings.SMTPPort),
		Username: settings.SMTPUsername,
		Password: settings.SMTPPassword,
		From:     settings.Email,
		FromName: settings.StoreName,
	}, true
}

func (s *SettingsService) encryptSecrets(settings *models.StoreSettings) error {
	if settings.SMTPPassword != "" {
		enc, err := crypt.Encrypt(settings.SMTPPassword)
		if err != nil {
			return fmt.Errorf("settings: encrypt smtp password: %w", err)
		}
		settings.SMTPPassword = enc
	}
	if settings.TwilioAuthToken != "" {
		enc, err := crypt.Encrypt(settings.TwilioAuthToken)
		if err != nil {
			return fmt.Errorf("settings: encrypt twilio token: %w", err)
		}
		settings.TwilioAuthToken = enc
	}
	return nil
}

// decryptSecrets is best-effort: a value that fails to decrypt (legacy
// plaintext row, rotated key) is passed through untouched.
func (s *SettingsService) decryptSecrets(settings *models.StoreSettings) {
	if settings.SMTPPassword != "" {
		if plain, err := crypt.Decrypt(settings.SMTPPassword); err == nil {
			settings.SMTPPassword = plain
		}
	}
	if settings.TwilioAuthToken != "" {
		if plain, err := crypt.Decrypt(settings.TwilioAuthToken); err == nil {
			settings.TwilioAuthToken = plain
		}
	}
}
