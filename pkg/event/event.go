// Package event is the in-process dispatcher for domain events.
//
// Services fire named events after a successful write; listeners queue the
// follow-up work so the write path never waits on email or WhatsApp:
//
//	event.Listen("order.placed", func(payload interface{}) { ... })
//	event.Fire("order.placed", services.OrderPlaced{OrderID: order.ID})
package event

import "sync"

// Handler receives the event payload. Handlers must type-assert the
// payload themselves.
type Handler func(payload interface{})

var (
	mu       sync.RWMutex
	handlers = map[string][]Handler{}
)

// Listen registers a handler for the named event.
func Listen(event string, handler Handler) {
	mu.Lock()
	defer mu.Unlock()
	handlers[event] = append(handlers[event], handler)
}

// Fire runs every listener for the event synchronously, in registration
// order.
func Fire(event string, payload interface{}) {
	for _, h := range snapshot(event) {
		h(payload)
	}
}

// FireAsync runs each listener in its own goroutine and returns
// immediately.
func FireAsync(event string, payload interface{}) {
	for _, h := range snapshot(event) {
		go h(payload)
	}
}

// Flush drops all listeners. Tests use it to isolate registrations.
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	handlers = map[string][]Handler{}
}

func snapshot(event string) []Handler {
	mu.RLock()
	defer mu.RUnlock()

	hs := make([]Handler, len(handlers[event]))
	copy(hs, handlers[event])
	return hs
}
