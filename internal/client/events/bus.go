// Package events provides a typed in-process publish/subscribe bus used to
// signal connectivity changes and outbox updates between client components.
package events

import (
	"sync"
)

// Topic identifies a kind of event
type Topic string

// Known topics
const (
	// TopicOnline is published when the server becomes reachable again
	TopicOnline Topic = "online"
	// TopicOffline is published when the server stops being reachable
	TopicOffline Topic = "offline"
	// TopicOutboxChanged is published after every outbox mutation
	TopicOutboxChanged Topic = "outbox_changed"
	// TopicStartRegistered is published when a new capture enters the outbox
	TopicStartRegistered Topic = "start_registered"
	// TopicSyncCompleted is published after every batch sync run
	TopicSyncCompleted Topic = "sync_completed"
	// TopicOffsetUpdated is published after a successful clock offset estimate
	TopicOffsetUpdated Topic = "offset_updated"
)

// Event is delivered to subscribers
type Event struct {
	Payload any
	Topic   Topic
}

// Handler receives events. Handlers run synchronously on the publisher's
// goroutine and must not block.
type Handler func(Event)

// Bus is a typed publish/subscribe registry
type Bus struct {
	subscribers map[Topic]map[uint64]Handler
	nextID      uint64
	mu          sync.RWMutex
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{
		subscribers: make(map[Topic]map[uint64]Handler),
	}
}

// Subscribe registers handler for topic and returns a function that removes it.
// Calling the returned function more than once is a no-op.
func (b *Bus) Subscribe(topic Topic, handler Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID

	if b.subscribers[topic] == nil {
		b.subscribers[topic] = make(map[uint64]Handler)
	}
	b.subscribers[topic][id] = handler

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subscribers[topic], id)
		})
	}
}

// Publish delivers payload to every handler subscribed to topic.
// Publishing on a nil bus is a no-op.
func (b *Bus) Publish(topic Topic, payload any) {
	if b == nil {
		return
	}

	// Копируем обработчики, чтобы не держать блокировку во время вызова
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subscribers[topic]))
	for _, h := range b.subscribers[topic] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	event := Event{Topic: topic, Payload: payload}
	for _, h := range handlers {
		h(event)
	}
}

// Notify returns a channel that receives a signal on every topic event.
// Signals are coalesced: a slow reader sees at most one pending signal.
func (b *Bus) Notify(topic Topic) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	unsubscribe := b.Subscribe(topic, func(Event) {
		select {
		case ch <- struct{}{}:
		default:
		}
	})
	return ch, unsubscribe
}

// Reset drops all subscriptions
func (b *Bus) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = make(map[Topic]map[uint64]Handler)
}

// SubscriberCount returns the number of handlers registered for topic
func (b *Bus) SubscriberCount(topic Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[topic])
}
