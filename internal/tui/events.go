package tui

import (
	"sync"
	"time"
)

// Event types for the service event bus.
// Backend goroutines and sessions publish; every open TUI subscribes.

// EventType classifies service events.
type EventType int

const (
	EventLog EventType = iota
	EventNavigate
)

// Event carries data from backend services to the TUI.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Data      any
}

// LogEvent carries a log entry.
type LogEvent struct {
	Level   string
	Message string
	Fields  map[string]any
}

// NavigateEvent records a followed menu link.
type NavigateEvent struct {
	Session string
	ItemID  string
	Href    string
}

// EventBus fans out events to subscribers.
type EventBus struct {
	mu          sync.RWMutex
	nextID      int
	bufSize     int
	subscribers map[int]chan Event
}

// NewEventBus creates a buffered event bus.
func NewEventBus(bufSize int) *EventBus {
	if bufSize <= 0 {
		bufSize = 256
	}
	return &EventBus{
		bufSize:     bufSize,
		subscribers: make(map[int]chan Event),
	}
}

// Publish broadcasts an event to all subscribers, non-blocking per subscriber.
// Slow subscribers may drop events.
func (b *EventBus) Publish(e Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- e:
		default:
		}
	}
}

// Subscribe returns a dedicated read channel and a cancel func that closes
// it. Cancel is safe to call more than once.
func (b *EventBus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan Event, b.bufSize)
	b.subscribers[id] = ch
	return ch, func() { b.unsubscribe(id) }
}

func (b *EventBus) unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[id]; ok {
		delete(b.subscribers, id)
		close(ch)
	}
}

// Subscribers returns the number of open subscriptions.
func (b *EventBus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// PublishLog is a convenience for logging events.
func (b *EventBus) PublishLog(level, msg string, fields map[string]any) {
	b.Publish(Event{
		Type: EventLog,
		Data: LogEvent{Level: level, Message: msg, Fields: fields},
	})
}
