package entitlement

import "time"

// Usage is a snapshot of a user's metered actions within the current
// calendar-month period. Counters are counts over an append-only action log,
// so they never decrease and are never negative.
type Usage struct {
	Generations int64
	Merges      int64
	PeriodStart time.Time
	PeriodEnd   time.Time
}

// Count returns the usage counter for an action.
func (u Usage) Count(action Action) int64 {
	switch action {
	case ActionGeneration:
		return u.Generations
	case ActionMerge:
		return u.Merges
	default:
		return 0
	}
}

// Status is the derived combination of a plan and current usage.
// It is computed fresh on every check and never cached: usage may change
// between checks when the same user has concurrent requests in flight.
type Status struct {
	Plan  Plan  `json:"plan"`
	Usage Usage `json:"usage"`

	CanGenerate bool `json:"can_generate"`
	CanMerge    bool `json:"can_merge"`

	// Remaining counts are Unlimited (-1) when the plan ceiling is unlimited,
	// preserving the tagged sentinel instead of a large magic number.
	GenerationsRemaining int64 `json:"generations_remaining"`
	MergesRemaining      int64 `json:"merges_remaining"`

	// UpgradeRequired is set only when the plan is the lowest tier and at
	// least one ceiling has been reached.
	UpgradeRequired bool `json:"upgrade_required"`
}

// Can returns the permission flag for an action.
func (s Status) Can(action Action) bool {
	switch action {
	case ActionGeneration:
		return s.CanGenerate
	case ActionMerge:
		return s.CanMerge
	default:
		return false
	}
}

// Remaining returns the remaining count for an action.
func (s Status) Remaining(action Action) int64 {
	switch action {
	case ActionGeneration:
		return s.GenerationsRemaining
	case ActionMerge:
		return s.MergesRemaining
	default:
		return 0
	}
}

// Evaluate combines a plan with a usage snapshot into a Status.
// Pure and deterministic: no I/O, no clock reads, no hidden state.
// lowestTier tells the evaluator whether the plan is the catalog's most
// restrictive tier, which drives the UpgradeRequired flag.
func Evaluate(plan Plan, usage Usage, lowestTier bool) Status {
	canGen, genLeft := allowance(plan.Ceiling(ActionGeneration), usage.Generations)
	canMerge, mergeLeft := allowance(plan.Ceiling(ActionMerge), usage.Merges)

	return Status{
		Plan:                 plan,
		Usage:                usage,
		CanGenerate:          canGen,
		CanMerge:             canMerge,
		GenerationsRemaining: genLeft,
		MergesRemaining:      mergeLeft,
		UpgradeRequired:      lowestTier && (!canGen || !canMerge),
	}
}

// Status resolves the plan ID and evaluates it against the usage snapshot.
func (c *Catalog) Status(planID string, usage Usage) Status {
	return Evaluate(c.Resolve(planID), usage, c.IsLowest(planID))
}

// allowance applies the ceiling rule for a single action: reaching the
// ceiling exactly forbids the next action (strict less-than), and remaining
// never goes negative even when usage overshoots the ceiling.
func allowance(ceiling, used int64) (allowed bool, remaining int64) {
	if ceiling == Unlimited {
		return true, Unlimited
	}
	remaining = max(0, ceiling-used)
	return used < ceiling, remaining
}
