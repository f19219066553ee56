package entitlement

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// UsageReader returns the current-period usage snapshot for a user.
// Implementations must compute the period window at read time so counters
// conceptually reset when a query crosses a calendar-month boundary.
type UsageReader interface {
	Current(ctx context.Context, userID uuid.UUID, now time.Time) (Usage, error)
}

// PlanResolver resolves the plan ID assigned to a user.
type PlanResolver func(ctx context.Context, userID uuid.UUID) (string, error)

// Gate is the pre-flight decision point for quota-limited actions.
//
// Every check re-reads current usage; nothing is cached across calls. Two
// truly concurrent requests from the same user can both read a count below
// the ceiling and both proceed, overshooting the quota by the number of
// in-flight requests (typically one). That race is accepted: the cost of a
// rare single-unit overshoot is lower than the complexity of locking a
// consumer quota.
type Gate struct {
	catalog     *Catalog
	usage       UsageReader
	resolvePlan PlanResolver
	now         func() time.Time
	log         *slog.Logger
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithClock overrides the gate's time source. Useful for tests pinning the
// period window.
func WithClock(now func() time.Time) GateOption {
	return func(g *Gate) {
		if now != nil {
			g.now = now
		}
	}
}

// WithLogger sets the logger for plan-resolution warnings.
func WithLogger(log *slog.Logger) GateOption {
	return func(g *Gate) {
		if log != nil {
			g.log = log
		}
	}
}

// NewGate creates a Gate over the given catalog and usage reader.
// A nil resolver defaults to context-based plan resolution.
func NewGate(catalog *Catalog, usage UsageReader, resolvePlan PlanResolver, opts ...GateOption) *Gate {
	g := &Gate{
		catalog:     catalog,
		usage:       usage,
		resolvePlan: resolvePlan,
		now:         time.Now,
		log:         slog.New(slog.DiscardHandler),
	}
	if g.resolvePlan == nil {
		g.resolvePlan = PlanIDContextResolver
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check decides whether the user may perform the action right now.
//
// Returns nil to allow, *ShapeNotAllowedError or *QuotaExceededError to deny
// (match with errors.As), or an error joined with ErrUsageUnavailable when
// current usage cannot be read; the gate fails closed so a store outage
// never lets quota be silently bypassed.
//
// The shape restriction is checked before quota: when both would deny, the
// user should be told "wrong plan tier for this shape" rather than "out of
// quota" so the upgrade message stays actionable. Pass an empty shape to
// skip the shape check.
func (g *Gate) Check(ctx context.Context, userID uuid.UUID, action Action, shape Shape) error {
	if !action.Valid() {
		return ErrInvalidAction
	}

	plan, lowest := g.plan(ctx, userID)

	if shape != "" && !plan.AllowsShape(shape) {
		return &ShapeNotAllowedError{Requested: shape, Allowed: plan.Shapes}
	}

	usage, err := g.usage.Current(ctx, userID, g.now())
	if err != nil {
		return errors.Join(ErrUsageUnavailable, err)
	}

	status := Evaluate(plan, usage, lowest)
	if !status.Can(action) {
		return &QuotaExceededError{
			Action:  action,
			Ceiling: plan.Ceiling(action),
			Used:    usage.Count(action),
		}
	}

	return nil
}

// Status computes the user's current entitlement status for display surfaces.
// Fails closed on usage read errors, same as Check.
func (g *Gate) Status(ctx context.Context, userID uuid.UUID) (Status, error) {
	plan, lowest := g.plan(ctx, userID)

	usage, err := g.usage.Current(ctx, userID, g.now())
	if err != nil {
		return Status{}, errors.Join(ErrUsageUnavailable, err)
	}

	return Evaluate(plan, usage, lowest), nil
}

// plan resolves the user's plan, falling back to the lowest tier when the
// resolver fails. Resolution failures are logged but never block a check.
func (g *Gate) plan(ctx context.Context, userID uuid.UUID) (Plan, bool) {
	planID, err := g.resolvePlan(ctx, userID)
	if err != nil {
		g.log.WarnContext(ctx, "plan resolution failed, falling back to lowest tier",
			slog.String("user_id", userID.String()),
			slog.Any("error", err),
		)
		return g.catalog.Lowest(), true
	}
	return g.catalog.Resolve(planID), g.catalog.IsLowest(planID)
}
