// Package jobs defines the queued background work: order notifications,
// settings alerts and campaign sends. Jobs are serialised onto the queue
// (memory or redis driver) and must be registered by name at boot so the
// workers can rebuild them.
package jobs

import (
	"github.com/muthuvel/santhai/app/services"
	"github.com/muthuvel/santhai/pkg/database"
	"github.com/muthuvel/santhai/pkg/queue"
)

// RegisterAll makes every job type known to the queue. Call once at boot,
// before workers start.
func RegisterAll() {
	queue.Register("*jobs.OrderPlacedJob", func() queue.Job { return &OrderPlacedJob{} })
	queue.Register("*jobs.OrderStatusChangedJob", func() queue.Job { return &OrderStatusChangedJob{} })
	queue.Register("*jobs.SettingsChangedJob", func() queue.Job { return &SettingsChangedJob{} })
	queue.Register("*jobs.CampaignSendJob", func() queue.Job { return &CampaignSendJob{} })
}

func notifier() *services.NotifierService {
	db := database.DB
	return services.NewNotifierService(db, services.NewSettingsService(db))
}

// OrderPlacedJob sends the order confirmation and the operator alert.
type OrderPlacedJob struct {
	OrderID uint `json:"order_id"`
}

func (j *OrderPlacedJob) Handle() error {
	return notifier().OrderPlaced(j.OrderID)
}

// OrderStatusChangedJob tells the customer about a status transition.
type OrderStatusChangedJob struct {
	OrderID uint   `json:"order_id"`
	From    string `json:"from"`
	To      string `json:"to"`
}

func (j *OrderStatusChangedJob) Handle() error {
	return notifier().StatusChanged(j.OrderID, j.From, j.To)
}

// SettingsChangedJob emails the operator that settings were saved.
type SettingsChangedJob struct {
	ActorID uint `json:"actor_id"`
}

func (j *SettingsChangedJob) Handle() error {
	return notifier().SettingsChanged(j.ActorID)
}

// CampaignSendJob delivers a campaign to its audience.
type CampaignSendJob struct {
	CampaignID uint `json:"campaign_id"`
}

func (j *CampaignSendJob) Handle() error {
	db := database.DB
	settings := services.NewSettingsService(db)
	svc := services.NewCampaignService(db, settings, services.NewNotifierService(db, settings))
	_, err := svc.Send(j.CampaignID)
	return err
}
