package services_test

import (
	"testing"

	"github.com/muthuvel/santhai/app/models"
	"github.com/muthuvel/santhai/app/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsDefaultsWhenUnset(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewSettingsService(db)

	settings, err := svc.Get()
	require.NoError(t, err)

	assert.Equal(t, "Santhai", settings.StoreName)
	assert.Equal(t, "SAN", settings.InvoicePrefix)
	assert.InDelta(t, 500, settings.FreeDeliveryAmount, 1e-9)
	assert.InDelta(t, 50, settings.DeliveryCharge, 1e-9)
}

func TestSettingsSecretsEncryptedAtRest(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewSettingsService(db)

	settings, err := svc.Get()
	require.NoError(t, err)
	settings.SMTPServer = "smtp.example.com"
	settings.SMTPPassword = "hunter2"
	settings.TwilioAuthToken = "twilio-secret"
	require.NoError(t, svc.Update(&settings, 1))

	// The stored row never holds the plaintext.
	var raw models.StoreSettings
	require.NoError(t, db.First(&raw).Error)
	assert.NotEqual(t, "hunter2", raw.SMTPPassword)
	assert.NotEqual(t, "twilio-secret", raw.TwilioAuthToken)
	assert.NotEmpty(t, raw.SMTPPassword)

	// Reads decrypt transparently.
	loaded, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "hunter2", loaded.SMTPPassword)
	assert.Equal(t, "twilio-secret", loaded.TwilioAuthToken)
}

func TestSettingsLastWriteWins(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewSettingsService(db)

	first, err := svc.Get()
	require.NoError(t, err)
	first.StoreName = "Kadai One"
	require.NoError(t, svc.Update(&first, 1))

	second, err := svc.Get()
	require.NoError(t, err)
	second.StoreName = "Kadai Two"
	require.NoError(t, svc.Update(&second, 2))

	loaded, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "Kadai Two", loaded.StoreName)

	// Still a single row.
	var n int64
	require.NoError(t, db.Model(&models.StoreSettings{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestSMTPConfigGating(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewSettingsService(db)

	// No SMTP server configured yet.
	_, ok := svc.SMTPConfig()
	assert.False(t, ok)

	settings, err := svc.Get()
	require.NoError(t, err)
	settings.SMTPServer = "smtp.example.com"
	settings.SMTPUsername = "orders@santhai.local"
	settings.SMTPPassword = "hunter2"
	settings.Email = "orders@santhai.local"
	require.NoError(t, svc.Update(&settings, 1))

	cfg, ok := svc.SMTPConfig()
	require.True(t, ok)
	assert.Equal(t, "smtp.example.com", cfg.Host)
	assert.Equal(t, "587", cfg.Port)
	assert.Equal(t, "hunter2", cfg.Password)
	assert.Equal(t, "Santhai", cfg.FromName)

	// Switching email notifications off hides the config.
	settings, err = svc.Get()
	require.NoError(t, err)
	settings.EmailNotificationsEnabled = false
	require.NoError(t, svc.Update(&settings, 1))

	_, ok = svc.SMTPConfig()
	assert.False(t, ok)
}
