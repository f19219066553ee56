package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lumishot/lumishot/pkg/entitlement"
)

// Shoot is one generated image: a single generation or a merge result.
type Shoot struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Kind      entitlement.Action
	Prompt    string
	ImageURL  string
	Shape     entitlement.Shape
	Quality   entitlement.Quality
	CreatedAt time.Time
}

// ShootRepo persists generated-image records in Postgres.
type ShootRepo struct {
	pool *pgxpool.Pool
}

// NewShootRepo creates a shoot repository.
func NewShootRepo(pool *pgxpool.Pool) *ShootRepo {
	return &ShootRepo{pool: pool}
}

const shootColumns = "id, user_id, kind, prompt, image_url, shape, quality, created_at"

// Insert stores a new shoot record.
func (r *ShootRepo) Insert(ctx context.Context, s Shoot) (Shoot, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	err := r.pool.QueryRow(ctx, `
INSERT INTO shoots (id, user_id, kind, prompt, image_url, shape, quality, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now())
RETURNING created_at`,
		s.ID, s.UserID, s.Kind, s.Prompt, s.ImageURL, s.Shape, s.Quality,
	).Scan(&s.CreatedAt)
	if err != nil {
		return Shoot{}, errors.Join(ErrFailedToSaveShoot, err)
	}
	return s, nil
}

// ListByUser returns the user's shoots newest first, for the gallery.
func (r *ShootRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Shoot, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(ctx, `
SELECT `+shootColumns+`
FROM shoots
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, errors.Join(ErrFailedToListShoots, err)
	}

	shoots, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Shoot, error) {
		var s Shoot
		err := row.Scan(&s.ID, &s.UserID, &s.Kind, &s.Prompt, &s.ImageURL, &s.Shape, &s.Quality, &s.CreatedAt)
		return s, err
	})
	if err != nil {
		return nil, errors.Join(ErrFailedToListShoots, err)
	}
	return shoots, nil
}
