// Package listeners connects domain events to background jobs and the
// admin order feed. RegisterAll runs once at boot, before the first
// request is served.
package listeners

import (
	"github.com/muthuvel/santhai/app/controllers"
	"github.com/muthuvel/santhai/app/jobs"
	"github.com/muthuvel/santhai/app/services"
	"github.com/muthuvel/santhai/pkg/event"
	"github.com/muthuvel/santhai/pkg/logger"
	"github.com/muthuvel/santhai/pkg/queue"
)

func RegisterAll() {
	event.Listen("order.placed", func(payload interface{}) {
		p, ok := payload.(services.OrderPlaced)
		if !ok {
			return
		}
		if err := queue.Dispatch(&jobs.OrderPlacedJob{OrderID: p.OrderID}); err != nil {
			logger.Error("queue order placed job", "order_id", p.OrderID, "error", err)
		}
		controllers.PushOrderEvent("order.placed", map[string]interface{}{"order_id": p.OrderID})
	})

	event.Listen("order.status_changed", func(payload interface{}) {
		p, ok := payload.(services.OrderStatusChanged)
		if !ok {
			return
		}
		if err := queue.Dispatch(&jobs.OrderStatusChangedJob{OrderID: p.OrderID, From: p.From, To: p.To}); err != nil {
			logger.Error("queue status changed job", "order_id", p.OrderID, "error", err)
		}
		controllers.PushOrderEvent("order.status_changed", map[string]interface{}{
			"order_id": p.OrderID,
			"from":     p.From,
			"to":       p.To,
		})
	})

	event.Listen("settings.changed", func(payload interface{}) {
		p, ok := payload.(services.SettingsChanged)
		if !ok {
			return
		}
		if err := queue.Dispatch(&jobs.SettingsChangedJob{ActorID: p.ActorID}); err != nil {
			logger.Error("queue settings changed job", "error", err)
		}
	})
}
