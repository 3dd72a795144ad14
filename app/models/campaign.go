package models

import (
	"time"

	"gorm.io/gorm"
)

// Campaign channels and statuses.
const (
	CampaignTypeEmail    = "email"
	CampaignTypeWhatsApp = "whatsapp"
	CampaignTypeBoth     = "both"

	CampaignStatusDraft     = "draft"
	CampaignStatusScheduled = "scheduled"
	CampaignStatusSent      = "sent"
)

// Campaign is a one-off marketing blast to a customer audience, sent
// immediately or at ScheduledAt (picked up by the scheduler).
type Campaign struct {
	gorm.Model
	Name           string `gorm:"size:200;not null" json:"name"`
	Type           string `gorm:"size:20;not null" json:"type"`
	TargetAudience string `gorm:"size:50;not null" json:"target_audience"`
	Subject        string `gorm:"size:200" json:"subject"`
	Message        string `gorm:"type:text;not null" json:"message"`
	Status         string `gorm:"size:20;default:draft;index" json:"status"`

	RecipientsCount int `gorm:"default:0" json:"recipients_count"`
	SentCount       int `gorm:"default:0" json:"sent_count"`

	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	SentAt      *time.Time `json:"sent_at,omitempty"`
	CreatedBy   uint       `json:"created_by"`
}
