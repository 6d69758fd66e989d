package utilities

import "sync"

// Event names published on the bus.
const (
	EventMoodCalculated = "mood_calculated"
)

type EventHandler func(interface{})

// EventBus fans events out to subscribers. Handlers run on their own goroutines.
type EventBus struct {
	handlers map[string][]EventHandler
	mu       sync.RWMutex
	inflight sync.WaitGroup
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[string][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(event string, handler EventHandler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.handlers[event] = append(eb.handlers[event], handler)
}

func (eb *EventBus) Publish(event string, data interface{}) {
	if eb == nil {
		return
	}
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	for _, handler := range eb.handlers[event] {
		eb.inflight.Add(1)
		go func(h EventHandler) {
			defer eb.inflight.Done()
			defer func() {
				if r := recover(); r != nil {
					Error("event handler for %s panicked: %v", event, r)
				}
			}()
			h(data)
		}(handler)
	}
}

// Wait blocks until every handler started so far has returned.
func (eb *EventBus) Wait() {
	eb.inflight.Wait()
}
