package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification channels and delivery statuses.
const (
	NotificationChannelEmail    = "email"
	NotificationChannelWhatsApp = "whatsapp"

	NotificationStatusPending = "pending"
	NotificationStatusSent    = "sent"
	NotificationStatusFailed  = "failed"
)

// NotificationLog records one delivery attempt for an order-related
// notification. Failures are logged here and swallowed; they never roll
// back the operation that triggered them.
type NotificationLog struct {
	gorm.Model
	OrderID   uint   `gorm:"not null;index" json:"order_id"`
	Channel   string `gorm:"size:20;not null" json:"channel"`
	Recipient string `gorm:"size:120;not null" json:"recipient"`
	Subject   string `gorm:"size:200" json:"subject"`
	Message   string `gorm:"type:text" json:"message"`
	Status    string `gorm:"size:20;default:pending" json:"status"`
	Error     string `gorm:"type:text" json:"error,omitempty"`

	SentAt *time.Time `json:"sent_at,omitempty"`
}
