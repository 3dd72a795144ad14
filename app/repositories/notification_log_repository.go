package repositories

import (
	"time"

	"github.com/muthuvel/santhai/app/models"
	"gorm.io/gorm"
)

// NotificationLogRepository records notification delivery attempts.
type NotificationLogRepository struct {
	db *gorm.DB
}

func NewNotificationLogRepository(db *gorm.DB) *NotificationLogRepository {
	return &NotificationLogRepository{db: db}
}

// Create persists a new log row (usually status pending).
func (r *NotificationLogRepository) Create(l *models.NotificationLog) error {
	return r.db.Create(l).Error
}

// MarkSent flags the attempt as delivered.
func (r *NotificationLogRepository) MarkSent(id uint) error {
	now := time.Now()
	return r.db.Model(&models.NotificationLog{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  models.NotificationStatusSent,
			"sent_at": &now,
		}).Error
}

// MarkFailed flags the attempt as failed with the error text.
func (r *NotificationLogRepository) MarkFailed(id uint, errMsg string) error {
	return r.db.Model(&models.NotificationLog{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status": models.NotificationStatusFailed,
			"error":  errMsg,
		}).Error
}

// ByOrder returns every attempt recorded for an order, oldest first.
func (r *NotificationLogRepository) ByOrder(orderID uint) ([]models.NotificationLog, error) {
	var logs []models.NotificationLog
	err := r.db.Where("order_id = ?", orderID).Order("created_at").Find(&logs).Error
	return logs, err
}
