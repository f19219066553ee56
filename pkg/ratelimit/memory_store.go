package ratelimit

import (
	"context"
	"sync"
	"time"
)

// memStore implements Store in process memory, for tests and single-node
// development setups.
type memStore struct {
	mu      sync.Mutex
	windows map[string]*memWindow
	now     func() time.Time
}

type memWindow struct {
	count   int64
	resetAt time.Time
}

// NewMemStore returns an in-memory Store.
func NewMemStore() Store {
	return &memStore{
		windows: make(map[string]*memWindow),
		now:     time.Now,
	}
}

func (s *memStore) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w, ok := s.windows[key]
	if !ok || now.After(w.resetAt) {
		w = &memWindow{resetAt: now.Add(window)}
		s.windows[key] = w
	}
	w.count++
	return w.count, w.resetAt, nil
}
