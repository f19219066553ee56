package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// User is the account record. PlanID is the entitlement tier; the identity
// provider owns authentication, we only keep its subject ID.
type User struct {
	ID        uuid.UUID
	AuthID    string // Subject claim from the identity provider.
	Email     string
	PlanID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserRepo persists user records in Postgres.
type UserRepo struct {
	pool          *pgxpool.Pool
	defaultPlanID string
}

// NewUserRepo creates a user repository. New users start on defaultPlanID.
func NewUserRepo(pool *pgxpool.Pool, defaultPlanID string) *UserRepo {
	return &UserRepo{pool: pool, defaultPlanID: defaultPlanID}
}

const userColumns = "id, auth_id, email, plan_id, created_at, updated_at"

// Ensure returns the user for the identity provider subject, creating the
// record on first sight. The email is refreshed on every call since the
// provider owns it.
func (r *UserRepo) Ensure(ctx context.Context, authID, email string) (User, error) {
	var u User
	err := r.pool.QueryRow(ctx, `
INSERT INTO users (id, auth_id, email, plan_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, now(), now())
ON CONFLICT (auth_id) DO UPDATE SET
	email = EXCLUDED.email,
	updated_at = now()
RETURNING `+userColumns,
		uuid.New(), authID, email, r.defaultPlanID,
	).Scan(&u.ID, &u.AuthID, &u.Email, &u.PlanID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return User{}, errors.Join(ErrFailedToEnsureUser, err)
	}
	return u, nil
}

// ByID loads a user by primary key.
func (r *UserRepo) ByID(ctx context.Context, id uuid.UUID) (User, error) {
	var u User
	err := r.pool.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id,
	).Scan(&u.ID, &u.AuthID, &u.Email, &u.PlanID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return u, nil
}

// SetPlan moves the user onto the given plan. Satisfies billing.PlanWriter.
func (r *UserRepo) SetPlan(ctx context.Context, userID uuid.UUID, planID string) error {
	tag, err := r.pool.Exec(ctx,
		"UPDATE users SET plan_id = $2, updated_at = now() WHERE id = $1",
		userID, planID)
	if err != nil {
		return errors.Join(ErrFailedToSetPlan, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// PlanID returns the user's current plan for gate checks. Unknown users get
// an empty string, which the catalog resolves to the lowest tier.
func (r *UserRepo) PlanID(ctx context.Context, userID uuid.UUID) (string, error) {
	var planID string
	err := r.pool.QueryRow(ctx,
		"SELECT plan_id FROM users WHERE id = $1", userID,
	).Scan(&planID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return planID, nil
}
