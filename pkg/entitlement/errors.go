package entitlement

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAction            = errors.New("invalid metered action")
	ErrInvalidPlanConfiguration = errors.New("invalid plan configuration")
	ErrFailedToLoadPlans        = errors.New("failed to load plan catalog")
	ErrNoDefaultPlan            = errors.New("plan catalog has no default plan")
	ErrUsageUnavailable         = errors.New("current usage could not be determined")
)

// QuotaExceededError denies an action whose period ceiling has been reached.
// It carries the numbers the UI needs to render an actionable upgrade prompt.
type QuotaExceededError struct {
	Action  Action
	Ceiling int64
	Used    int64
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("%s quota exceeded: %d of %d used this period", e.Action, e.Used, e.Ceiling)
}

// ShapeNotAllowedError denies an action requesting an output shape outside
// the plan's allowed set. Checked before quota so the caller can tell the
// user which restriction actually applies.
type ShapeNotAllowedError struct {
	Requested Shape
	Allowed   []Shape
}

func (e *ShapeNotAllowedError) Error() string {
	return fmt.Sprintf("output shape %q not allowed on current plan (allowed: %v)", e.Requested, e.Allowed)
}
