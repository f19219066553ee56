package entitlement_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumishot/lumishot/pkg/entitlement"
)

func planWith(gen, merge int64) entitlement.Plan {
	return entitlement.Plan{
		ID:   "test",
		Name: "Test Plan",
		Limits: map[entitlement.Action]int64{
			entitlement.ActionGeneration: gen,
			entitlement.ActionMerge:      merge,
		},
		Shapes: []entitlement.Shape{entitlement.ShapeSquare},
	}
}

func TestEvaluate_MonotonicDenial(t *testing.T) {
	t.Parallel()

	// canX must equal used < ceiling for every non-unlimited pair,
	// including usage past the ceiling.
	ceilings := []int64{0, 1, 2, 5, 100}
	for _, ceiling := range ceilings {
		for used := int64(0); used <= ceiling+3; used++ {
			t.Run(fmt.Sprintf("ceiling=%d used=%d", ceiling, used), func(t *testing.T) {
				t.Parallel()

				status := entitlement.Evaluate(
					planWith(ceiling, ceiling),
					entitlement.Usage{Generations: used, Merges: used},
					false,
				)

				assert.Equal(t, used < ceiling, status.CanGenerate)
				assert.Equal(t, used < ceiling, status.CanMerge)
			})
		}
	}
}

func TestEvaluate_NonNegativeRemaining(t *testing.T) {
	t.Parallel()

	// Remaining never goes negative even when usage overshoots the ceiling,
	// which the accepted concurrent-check race makes possible.
	status := entitlement.Evaluate(planWith(2, 2), entitlement.Usage{Generations: 7, Merges: 3}, false)

	assert.Equal(t, int64(0), status.GenerationsRemaining)
	assert.Equal(t, int64(0), status.MergesRemaining)
	assert.False(t, status.CanGenerate)
	assert.False(t, status.CanMerge)
}

func TestEvaluate_UnlimitedSentinel(t *testing.T) {
	t.Parallel()

	for _, used := range []int64{0, 1, 10000, 1 << 40} {
		status := entitlement.Evaluate(
			planWith(entitlement.Unlimited, entitlement.Unlimited),
			entitlement.Usage{Generations: used, Merges: used},
			false,
		)

		assert.True(t, status.CanGenerate, "used=%d", used)
		assert.True(t, status.CanMerge, "used=%d", used)
		assert.Equal(t, entitlement.Unlimited, status.GenerationsRemaining)
		assert.Equal(t, entitlement.Unlimited, status.MergesRemaining)
	}
}

func TestEvaluate_ExactCeilingForbidsNextAction(t *testing.T) {
	t.Parallel()

	status := entitlement.Evaluate(planWith(2, 8), entitlement.Usage{Generations: 2, Merges: 3}, false)

	assert.False(t, status.CanGenerate)
	assert.Equal(t, int64(0), status.GenerationsRemaining)
	assert.True(t, status.CanMerge)
	assert.Equal(t, int64(5), status.MergesRemaining)
}

func TestEvaluate_UpgradeRequired(t *testing.T) {
	t.Parallel()

	t.Run("lowest tier with exhausted ceiling", func(t *testing.T) {
		t.Parallel()

		status := entitlement.Evaluate(planWith(2, 1), entitlement.Usage{Generations: 2}, true)

		assert.True(t, status.UpgradeRequired)
	})

	t.Run("lowest tier under quota", func(t *testing.T) {
		t.Parallel()

		status := entitlement.Evaluate(planWith(2, 1), entitlement.Usage{Generations: 1}, true)

		assert.False(t, status.UpgradeRequired)
	})

	t.Run("higher tier never requires upgrade", func(t *testing.T) {
		t.Parallel()

		status := entitlement.Evaluate(planWith(2, 1), entitlement.Usage{Generations: 2, Merges: 1}, false)

		assert.False(t, status.UpgradeRequired)
	})
}

func TestEvaluate_Deterministic(t *testing.T) {
	t.Parallel()

	plan := planWith(10, entitlement.Unlimited)
	u := entitlement.Usage{
		Generations: 4,
		Merges:      9,
		PeriodStart: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC),
	}

	first := entitlement.Evaluate(plan, u, true)
	second := entitlement.Evaluate(plan, u, true)

	require.Equal(t, first, second)
}

func TestStatus_Accessors(t *testing.T) {
	t.Parallel()

	status := entitlement.Evaluate(planWith(3, 1), entitlement.Usage{Generations: 1, Merges: 1}, false)

	assert.True(t, status.Can(entitlement.ActionGeneration))
	assert.False(t, status.Can(entitlement.ActionMerge))
	assert.False(t, status.Can(entitlement.Action("unknown")))
	assert.Equal(t, int64(2), status.Remaining(entitlement.ActionGeneration))
	assert.Equal(t, int64(0), status.Remaining(entitlement.ActionMerge))
	assert.Equal(t, int64(0), status.Remaining(entitlement.Action("unknown")))
}
