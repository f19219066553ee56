package usage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lumishot/lumishot/pkg/entitlement"
)

// pgStore implements Store on PostgreSQL via pgx. Counters are filtered
// counts over the usage_actions append-only log; Record is a single INSERT,
// which is the only atomicity the design needs.
type pgStore struct {
	pool *pgxpool.Pool
	loc  *time.Location
}

// NewPostgresStore returns a Store backed by the given connection pool,
// computing period windows in loc. A nil location defaults to UTC.
func NewPostgresStore(pool *pgxpool.Pool, loc *time.Location) Store {
	if loc == nil {
		loc = time.UTC
	}
	return &pgStore{pool: pool, loc: loc}
}

const currentQuery = `
SELECT
	COUNT(*) FILTER (WHERE action = 'generation'),
	COUNT(*) FILTER (WHERE action = 'merge')
FROM usage_actions
WHERE user_id = $1 AND created_at BETWEEN $2 AND $3`

func (s *pgStore) Current(ctx context.Context, userID uuid.UUID, now time.Time) (entitlement.Usage, error) {
	start, end := Period(now, s.loc)

	u := entitlement.Usage{PeriodStart: start, PeriodEnd: end}
	row := s.pool.QueryRow(ctx, currentQuery, userID, start, end)
	if err := row.Scan(&u.Generations, &u.Merges); err != nil {
		return entitlement.Usage{}, errors.Join(ErrFailedToReadUsage, err)
	}
	return u, nil
}

const recordQuery = `
INSERT INTO usage_actions (id, user_id, action, created_at)
VALUES ($1, $2, $3, $4)`

func (s *pgStore) Record(ctx context.Context, userID uuid.UUID, action entitlement.Action, at time.Time) error {
	if !action.Valid() {
		return entitlement.ErrInvalidAction
	}

	if _, err := s.pool.Exec(ctx, recordQuery, uuid.New(), userID, string(action), at); err != nil {
		return errors.Join(ErrFailedToRecordAction, err)
	}
	return nil
}
