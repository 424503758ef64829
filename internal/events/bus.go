package events

import "sync"

// Topic identifies a class of published event.
type Topic string

const (
	TopicReportGenerated       Topic = "report:generated"
	TopicSubsidiaryRegistered  Topic = "subsidiary:registered"
	TopicConsolidationComplete Topic = "consolidation:completed"
)

// Event carries a published payload. The payload is exactly the object the
// operation created (a Statement, Subsidiary, or Consolidation).
type Event struct {
	Topic   Topic
	Payload any
}

// Handler receives published events. Handlers run synchronously on the
// publisher's goroutine.
type Handler func(Event)

// Bus is an explicit publish/subscribe mechanism owned by the caller.
// There is no ambient global bus.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Topic][]Handler
	all      []Handler
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[Topic][]Handler)}
}

// Subscribe registers a handler for one topic.
func (b *Bus) Subscribe(topic Topic, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], h)
}

// SubscribeAll registers a handler for every topic.
func (b *Bus) SubscribeAll(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.all = append(b.all, h)
}

// Publish delivers an event to all matching handlers, in registration
// order, before returning.
func (b *Bus) Publish(topic Topic, payload any) {
	b.mu.RLock()
	topicHandlers := b.handlers[topic]
	allHandlers := b.all
	b.mu.RUnlock()

	e := Event{Topic: topic, Payload: payload}
	for _, h := range topicHandlers {
		h(e)
	}
	for _, h := range allHandlers {
		h(e)
	}
}
