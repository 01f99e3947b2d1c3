package menu

import (
	"slices"
	"sync"
)

// Signal fans container-width notifications out to subscribers. It is the
// subscribe/unsubscribe boundary for resize events.
type Signal struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(width int)
}

// NewSignal returns a signal with no subscribers.
func NewSignal() *Signal {
	return &Signal{subs: make(map[int]func(int))}
}

// Subscribe registers fn. The returned cancel func is idempotent; once it
// returns, fn is not called again.
func (s *Signal) Subscribe(fn func(width int)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// Notify calls every subscriber with width, in subscription order.
func (s *Signal) Notify(width int) {
	s.mu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	slices.Sort(ids)
	for _, id := range ids {
		s.mu.Lock()
		fn, ok := s.subs[id]
		s.mu.Unlock()
		if ok {
			fn(width)
		}
	}
}

// Len returns the number of live subscriptions.
func (s *Signal) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
