package entitlement

import "slices"

// Plan describes a subscription tier and its entitlement constraints.
// PriceID should be set to the payment provider's price ID for paid plans
// to enable direct mapping during checkout and webhook processing.
type Plan struct {
	ID          string
	Name        string
	Description string
	Limits      map[Action]int64 // per-period ceilings, -1 represents unlimited
	Shapes      []Shape          // allowed output aspect ratios
	Quality     Quality

	// Descriptive flags surfaced to callers, never enforced by the evaluator.
	Support           Support
	CommercialLicense bool
	APIAccess         bool
	CustomBranding    bool

	Price    Money
	Interval BillingInterval
	PriceID  string // provider's price ID (empty for free plans)
	Public   bool   // available for self-service signup
}

// Ceiling returns the per-period ceiling for an action. Actions a plan does
// not mention are forbidden outright (ceiling zero), not unlimited.
func (p Plan) Ceiling(action Action) int64 {
	limit, ok := p.Limits[action]
	if !ok {
		return 0
	}
	return limit
}

// AllowsShape reports whether the plan permits the given output shape.
func (p Plan) AllowsShape(s Shape) bool {
	return slices.Contains(p.Shapes, s)
}
