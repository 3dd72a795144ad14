package controllers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/muthuvel/santhai/app/services"
	"github.com/muthuvel/santhai/pkg/response"
	"github.com/muthuvel/santhai/pkg/sse"
	"github.com/muthuvel/santhai/pkg/ws"
)

// OrderFeed pushes order events to every connected admin dashboard.
// Started once at boot; listeners write into Broadcast.
var OrderFeed = ws.NewHub()

type orderEvent struct {
	Kind    string
	Payload interface{}
}

// SSE subscribers get the same events as the WebSocket hub. A slow
// subscriber drops events rather than blocking the publisher.
var (
	sseMu   sync.Mutex
	sseSubs = make(map[chan orderEvent]struct{})
)

// PushOrderEvent serialises an event onto the admin feed. Drops the
// event if the JSON encode fails, which cannot happen for the payloads
// we send.
func PushOrderEvent(kind string, payload interface{}) {
	msg, err := json.Marshal(map[string]interface{}{
		"event": kind,
		"data":  payload,
	})
	if err != nil {
		return
	}
	OrderFeed.Broadcast <- msg

	sseMu.Lock()
	for ch := range sseSubs {
		select {
		case ch <- orderEvent{Kind: kind, Payload: payload}:
		default:
		}
	}
	sseMu.Unlock()
}

// DashboardController serves the admin landing page numbers and the
// live order feed socket.
type DashboardController struct {
	dashboard *services.DashboardService
}

func NewDashboardController(dashboard *services.DashboardService) *DashboardController {
	return &DashboardController{dashboard: dashboard}
}

func (c *DashboardController) Stats(w http.ResponseWriter, r *http.Request) {
	response.Success(w, c.dashboard.Stats())
}

// Feed upgrades to a WebSocket on the order feed hub.
func (c *DashboardController) Feed(w http.ResponseWriter, r *http.Request) {
	ws.Upgrade(w, r, OrderFeed)
}

// FeedSSE streams the same order events over Server-Sent Events, for
// dashboards behind proxies that strip WebSocket upgrades.
func (c *DashboardController) FeedSSE(w http.ResponseWriter, r *http.Request) {
	stream := sse.New(w, r)
	if stream == nil {
		return
	}

	ch := make(chan orderEvent, 8)
	sseMu.Lock()
	sseSubs[ch] = struct{}{}
	sseMu.Unlock()
	defer func() {
		sseMu.Lock()
		delete(sseSubs, ch)
		sseMu.Unlock()
	}()

	stream.Comment("connected")
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			stream.Comment("keepalive")
		case ev := <-ch:
			if err := stream.Send(ev.Kind, ev.Payload); err != nil {
				return
			}
			if stream.IsClosed() {
				return
			}
		}
	}
}
