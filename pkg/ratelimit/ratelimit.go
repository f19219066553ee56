package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidConfig = errors.New("invalid rate limit config")
	ErrStoreFailure  = errors.New("rate limit store failure")
)

// Config defines a fixed-window limit: at most Limit requests per Window.
type Config struct {
	Limit  int           `env:"RATE_LIMIT" envDefault:"10"`        // Limit is the number of requests allowed per window.
	Window time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"` // Window is the fixed window size.
}

func (c Config) validate() error {
	if c.Limit <= 0 {
		return fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidConfig, c.Limit)
	}
	if c.Window <= 0 {
		return fmt.Errorf("%w: window must be positive, got %v", ErrInvalidConfig, c.Window)
	}
	return nil
}

// Store counts hits per key within the current window.
type Store interface {
	// Incr increments the counter for key, creating it with the window TTL
	// on first hit, and returns the new count and when the window resets.
	Incr(ctx context.Context, key string, window time.Duration) (count int64, resetAt time.Time, err error)
}

// Result describes one rate limit decision.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Allowed reports whether the request fit in the window.
func (r Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter returns how long to wait before the window resets.
// Zero when the request was allowed.
func (r Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return time.Until(r.ResetAt)
}

// Limiter is a fixed-window rate limiter over a pluggable store.
// It protects the image model provider from request bursts; it is unrelated
// to plan quotas, which are enforced by the entitlement gate.
type Limiter struct {
	store Store
	cfg   Config
}

// New creates a Limiter with the given store and config.
func New(store Store, cfg Config) (*Limiter, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Limiter{store: store, cfg: cfg}, nil
}

// Allow consumes one hit for the key and reports the decision.
func (l *Limiter) Allow(ctx context.Context, key string) (Result, error) {
	count, resetAt, err := l.store.Incr(ctx, key, l.cfg.Window)
	if err != nil {
		return Result{}, errors.Join(ErrStoreFailure, err)
	}

	return Result{
		Limit:     l.cfg.Limit,
		Remaining: l.cfg.Limit - int(count),
		ResetAt:   resetAt,
	}, nil
}
