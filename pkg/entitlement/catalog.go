package entitlement

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// Source defines how plans are loaded into the catalog.
type Source interface {
	Load(ctx context.Context) (map[string]Plan, error)
}

// Catalog is an immutable plan lookup built once at startup.
// Thread-safety relies on the plans map never being mutated after New.
type Catalog struct {
	plans     map[string]Plan
	defaultID string
}

// NewCatalog loads plans from the source and validates them. defaultID names
// the lowest, most restrictive tier; every unresolved plan lookup falls back
// to it so a missing or not-yet-provisioned plan never blocks a gate check.
func NewCatalog(ctx context.Context, src Source, defaultID string) (*Catalog, error) {
	plans, err := src.Load(ctx)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	if _, ok := plans[defaultID]; !ok {
		return nil, errors.Join(ErrNoDefaultPlan, fmt.Errorf("plan %q not in catalog", defaultID))
	}

	if err := validatePlans(plans); err != nil {
		return nil, err
	}

	return &Catalog{plans: plans, defaultID: defaultID}, nil
}

// Resolve returns the plan for the given ID, falling back to the default
// (most restrictive) tier when the ID is unknown or empty. It never fails:
// an unrecognized plan must not block entitlement evaluation, and failing
// open to unlimited would be worse than failing closed to the lowest tier.
func (c *Catalog) Resolve(planID string) Plan {
	if plan, ok := c.plans[planID]; ok {
		return plan
	}
	return c.plans[c.defaultID]
}

// Lowest returns the default, most restrictive plan.
func (c *Catalog) Lowest() Plan {
	return c.plans[c.defaultID]
}

// IsLowest reports whether the given plan ID is the default tier.
// Unknown IDs resolve to the default tier, so they count as lowest too.
func (c *Catalog) IsLowest(planID string) bool {
	_, known := c.plans[planID]
	return !known || planID == c.defaultID
}

// Has reports whether the catalog contains the given plan ID.
func (c *Catalog) Has(planID string) bool {
	_, ok := c.plans[planID]
	return ok
}

// ByPriceID finds the plan mapped to a payment provider price ID.
// Used by billing webhook processing to translate provider events
// into plan changes.
func (c *Catalog) ByPriceID(priceID string) (Plan, bool) {
	if priceID == "" {
		return Plan{}, false
	}
	for _, plan := range c.plans {
		if plan.PriceID == priceID {
			return plan, true
		}
	}
	return Plan{}, false
}

// Public returns the self-service plans sorted by monthly price, cheapest
// first, for pricing-table rendering.
func (c *Catalog) Public() []Plan {
	plans := make([]Plan, 0, len(c.plans))
	for _, plan := range c.plans {
		if plan.Public {
			plans = append(plans, plan)
		}
	}
	slices.SortFunc(plans, func(a, b Plan) int {
		switch {
		case a.Price.Amount < b.Price.Amount:
			return -1
		case a.Price.Amount > b.Price.Amount:
			return 1
		default:
			return 0
		}
	})
	return plans
}

// validatePlans checks plan configurations for validity.
func validatePlans(plans map[string]Plan) error {
	for planID, plan := range plans {
		for action, limit := range plan.Limits {
			if !action.Valid() {
				return errors.Join(ErrInvalidPlanConfiguration,
					fmt.Errorf("plan %s limits unknown action %q", planID, action))
			}
			if limit < Unlimited {
				return errors.Join(ErrInvalidPlanConfiguration,
					fmt.Errorf("plan %s has negative ceiling for %s: %d", planID, action, limit))
			}
		}
	}
	return nil
}
