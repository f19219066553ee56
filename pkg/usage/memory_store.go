package usage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lumishot/lumishot/pkg/entitlement"
)

// memStore implements Store with an in-memory action log.
// Intended for tests and local development.
type memStore struct {
	mu      sync.RWMutex
	loc     *time.Location
	actions map[uuid.UUID][]memAction
}

type memAction struct {
	action entitlement.Action
	at     time.Time
}

// NewMemStore returns an in-memory Store computing periods in loc.
// A nil location defaults to UTC.
func NewMemStore(loc *time.Location) Store {
	if loc == nil {
		loc = time.UTC
	}
	return &memStore{
		loc:     loc,
		actions: make(map[uuid.UUID][]memAction),
	}
}

func (s *memStore) Current(ctx context.Context, userID uuid.UUID, now time.Time) (entitlement.Usage, error) {
	start, end := Period(now, s.loc)

	s.mu.RLock()
	defer s.mu.RUnlock()

	u := entitlement.Usage{PeriodStart: start, PeriodEnd: end}
	for _, a := range s.actions[userID] {
		if a.at.Before(start) || a.at.After(end) {
			continue
		}
		switch a.action {
		case entitlement.ActionGeneration:
			u.Generations++
		case entitlement.ActionMerge:
			u.Merges++
		}
	}
	return u, nil
}

func (s *memStore) Record(ctx context.Context, userID uuid.UUID, action entitlement.Action, at time.Time) error {
	if !action.Valid() {
		return entitlement.ErrInvalidAction
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions[userID] = append(s.actions[userID], memAction{action: action, at: at})
	return nil
}
