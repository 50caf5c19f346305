package mem

import (
	"context"
	"sync"
	"time"
)

// CounterStore counts hits per key inside a fixed window that starts on the
// first hit.
type CounterStore interface {
	// Incr adds one hit and returns the new count and the time left in the
	// window.
	Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

type entry struct {
	count     int64
	expiresAt time.Time
}

type WindowCounter struct {
	mu   sync.Mutex
	data map[string]entry
	now  func() time.Time
}

func NewWindowCounter() *WindowCounter {
	return &WindowCounter{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (s *WindowCounter) Incr(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.data[key]
	if !ok || !now.Before(e.expiresAt) {
		e = entry{expiresAt: now.Add(window)}
		s.sweep(now)
	}
	e.count++
	s.data[key] = e
	return e.count, e.expiresAt.Sub(now), nil
}

// sweep drops expired windows; called only when a new window opens.
func (s *WindowCounter) sweep(now time.Time) {
	for k, e := range s.data {
		if !now.Before(e.expiresAt) {
			delete(s.data, k)
		}
	}
}
