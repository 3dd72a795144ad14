package repositories

import (
	"errors"

	"github.com/muthuvel/santhai/app/models"
	"gorm.io/gorm"
)

// SettingsRepository handles the StoreSettings singleton row.
type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// First returns the settings row. When none exists yet it returns a zero
// value with defaults applied and no error; the row is only created on the
// first admin write.
func (r *SettingsRepository) First() (models.StoreSettings, bool, error) {
	var s models.StoreSettings
	err := r.db.First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return defaultSettings(), false, nil
	}
	return s, err == nil, err
}

// Save persists the whole row, creating it when absent. Last writer wins;
// there is no optimistic locking on this table.
func (r *SettingsRepository) Save(s *models.StoreSettings) error {
	return r.db.Save(s).Error
}

func defaultSettings() models.StoreSettings {
	return models.StoreSettings{
		StoreName:                 "Santhai",
		FreeDeliveryAmount:        500,
		DeliveryCharge:            50,
		SMTPPort:                  587,
		SMTPUseTLS:                true,
		EmailNotificationsEnabled: true,
		InvoiceHeader:             "TAX INVOICE",
		InvoicePrefix:             "SAN",
		InvoiceFooter:             "Thank you for your business!",
		InvoiceLogoPosition:       "left",
		InvoiceLogoSize:           80,
		CategoriesTitle:           "Shop by Categories",
		ThemeColor:                "#28a745",
		OrderEmailSubject:         "Order Confirmation - #{order_number}",
	}
}
