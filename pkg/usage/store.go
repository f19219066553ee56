package usage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lumishot/lumishot/pkg/entitlement"
)

// Store persists the append-only action log behind usage counters.
//
// Current computes the calendar-month window at read time and counts log
// rows falling inside it; counters are never decremented. Record appends a
// single occurrence and must not fail silently: a failed write returns an
// error so the caller knows quota tracking may undercount. No cross-row
// transaction discipline is required because each user's counters are
// independent.
type Store interface {
	Current(ctx context.Context, userID uuid.UUID, now time.Time) (entitlement.Usage, error)
	Record(ctx context.Context, userID uuid.UUID, action entitlement.Action, at time.Time) error
}
