// Package entitlement provides the plan catalog, entitlement evaluation, and
// pre-flight action gating for quota-metered photoshoot actions.
//
// Key concepts:
//
//   - Plan: a named tier with per-action ceilings, allowed output shapes and
//     descriptive flags (quality, support, licensing)
//   - Usage: a snapshot of a user's metered actions in the current
//     calendar-month period
//   - Status: the derived combination of a plan and current usage into
//     permission flags and remaining counts
//   - Gate: the decision point consulted immediately before a generation or
//     merge is attempted
//
// Evaluation is a pure function; all I/O lives behind the UsageReader and
// Source interfaces. Unknown plan IDs resolve to the lowest tier so a
// not-yet-provisioned plan never blocks a check, and usage read failures
// deny the action so a store outage never bypasses quota.
//
// Basic usage:
//
//	catalog, err := entitlement.NewCatalog(ctx,
//	    entitlement.NewInMemSource(entitlement.DefaultPlans()),
//	    entitlement.DefaultPlanID)
//
//	gate := entitlement.NewGate(catalog, usageStore, planResolver)
//
//	if err := gate.Check(ctx, userID, entitlement.ActionGeneration, entitlement.ShapeWide); err != nil {
//	    var quota *entitlement.QuotaExceededError
//	    var shape *entitlement.ShapeNotAllowedError
//	    switch {
//	    case errors.As(err, &quota):
//	        // render upgrade prompt with quota.Ceiling / quota.Used
//	    case errors.As(err, &shape):
//	        // render shape restriction with shape.Allowed
//	    default:
//	        // usage store unavailable: generic retry message
//	    }
//	}
package entitlement
