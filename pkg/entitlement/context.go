package entitlement

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var errPlanIDNotInContext = errors.New("plan ID not found in context")

// Plan ID context management
type planIDCtxKey struct{}

// SetPlanIDToContext stores the plan ID in the context for downstream access.
// Typically done by the auth middleware after verifying the identity token.
func SetPlanIDToContext(ctx context.Context, planID string) context.Context {
	return context.WithValue(ctx, planIDCtxKey{}, planID)
}

// GetPlanIDFromContext retrieves the plan ID from the context, if present.
func GetPlanIDFromContext(ctx context.Context) (string, bool) {
	planID, ok := ctx.Value(planIDCtxKey{}).(string)
	return planID, ok
}

// PlanIDContextResolver is the default resolver: reads the plan ID from the
// request context, erroring when absent so the gate falls back to the lowest
// tier.
func PlanIDContextResolver(ctx context.Context, _ uuid.UUID) (string, error) {
	planID, ok := GetPlanIDFromContext(ctx)
	if !ok {
		return "", errPlanIDNotInContext
	}
	return planID, nil
}
