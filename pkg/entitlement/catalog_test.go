package entitlement_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumishot/lumishot/pkg/entitlement"
)

func newTestCatalog(t *testing.T) *entitlement.Catalog {
	t.Helper()

	catalog, err := entitlement.NewCatalog(context.Background(),
		entitlement.NewInMemSource(entitlement.DefaultPlans()),
		entitlement.DefaultPlanID)
	require.NoError(t, err)
	return catalog
}

func TestNewCatalog(t *testing.T) {
	t.Parallel()

	t.Run("loads default plans", func(t *testing.T) {
		t.Parallel()

		catalog := newTestCatalog(t)

		assert.True(t, catalog.Has("free"))
		assert.True(t, catalog.Has("pro"))
		assert.True(t, catalog.Has("max"))
	})

	t.Run("missing default plan", func(t *testing.T) {
		t.Parallel()

		src := entitlement.NewInMemSource(map[string]entitlement.Plan{
			"pro": {ID: "pro"},
		})

		catalog, err := entitlement.NewCatalog(context.Background(), src, "free")

		require.ErrorIs(t, err, entitlement.ErrNoDefaultPlan)
		assert.Nil(t, catalog)
	})

	t.Run("rejects ceiling below unlimited sentinel", func(t *testing.T) {
		t.Parallel()

		src := entitlement.NewInMemSource(map[string]entitlement.Plan{
			"free": {
				ID:     "free",
				Limits: map[entitlement.Action]int64{entitlement.ActionGeneration: -2},
			},
		})

		_, err := entitlement.NewCatalog(context.Background(), src, "free")

		require.ErrorIs(t, err, entitlement.ErrInvalidPlanConfiguration)
	})

	t.Run("rejects unknown action in limits", func(t *testing.T) {
		t.Parallel()

		src := entitlement.NewInMemSource(map[string]entitlement.Plan{
			"free": {
				ID:     "free",
				Limits: map[entitlement.Action]int64{"teleport": 1},
			},
		})

		_, err := entitlement.NewCatalog(context.Background(), src, "free")

		require.ErrorIs(t, err, entitlement.ErrInvalidPlanConfiguration)
	})
}

func TestCatalog_Resolve(t *testing.T) {
	t.Parallel()

	catalog := newTestCatalog(t)

	t.Run("known plan", func(t *testing.T) {
		t.Parallel()

		plan := catalog.Resolve("pro")

		assert.Equal(t, "pro", plan.ID)
		assert.Equal(t, int64(100), plan.Ceiling(entitlement.ActionGeneration))
	})

	t.Run("unknown plan falls back to lowest tier", func(t *testing.T) {
		t.Parallel()

		plan := catalog.Resolve("enterprise-2027")

		assert.Equal(t, "free", plan.ID)
	})

	t.Run("empty plan falls back to lowest tier", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "free", catalog.Resolve("").ID)
	})
}

func TestCatalog_IsLowest(t *testing.T) {
	t.Parallel()

	catalog := newTestCatalog(t)

	assert.True(t, catalog.IsLowest("free"))
	assert.False(t, catalog.IsLowest("pro"))
	// Unknown IDs resolve to the default tier, so they count as lowest.
	assert.True(t, catalog.IsLowest("nonexistent"))
}

func TestCatalog_ByPriceID(t *testing.T) {
	t.Parallel()

	catalog := newTestCatalog(t)

	t.Run("maps provider price to plan", func(t *testing.T) {
		t.Parallel()

		plan, ok := catalog.ByPriceID("price_pro_monthly")

		require.True(t, ok)
		assert.Equal(t, "pro", plan.ID)
	})

	t.Run("empty price ID never matches free plans", func(t *testing.T) {
		t.Parallel()

		_, ok := catalog.ByPriceID("")

		assert.False(t, ok)
	})
}

func TestCatalog_Public(t *testing.T) {
	t.Parallel()

	catalog := newTestCatalog(t)

	plans := catalog.Public()

	require.Len(t, plans, 3)
	assert.Equal(t, "free", plans[0].ID)
	assert.Equal(t, "pro", plans[1].ID)
	assert.Equal(t, "max", plans[2].ID)
}

func TestPlan_AllowsShape(t *testing.T) {
	t.Parallel()

	catalog := newTestCatalog(t)

	free := catalog.Resolve("free")
	assert.True(t, free.AllowsShape(entitlement.ShapeSquare))
	assert.False(t, free.AllowsShape(entitlement.ShapeWide))

	pro := catalog.Resolve("pro")
	assert.True(t, pro.AllowsShape(entitlement.ShapeWide))
}

func TestPlan_Ceiling(t *testing.T) {
	t.Parallel()

	plan := entitlement.Plan{
		Limits: map[entitlement.Action]int64{entitlement.ActionGeneration: 5},
	}

	assert.Equal(t, int64(5), plan.Ceiling(entitlement.ActionGeneration))
	// Unmentioned actions are forbidden outright, not unlimited.
	assert.Equal(t, int64(0), plan.Ceiling(entitlement.ActionMerge))
}
