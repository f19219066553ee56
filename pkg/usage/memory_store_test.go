package usage_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumishot/lumishot/pkg/entitlement"
	"github.com/lumishot/lumishot/pkg/usage"
)

func TestMemStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("counts recorded actions in period", func(t *testing.T) {
		t.Parallel()

		store := usage.NewMemStore(time.UTC)
		userID := uuid.New()

		require.NoError(t, store.Record(ctx, userID, entitlement.ActionGeneration, now))
		require.NoError(t, store.Record(ctx, userID, entitlement.ActionGeneration, now.Add(time.Hour)))
		require.NoError(t, store.Record(ctx, userID, entitlement.ActionMerge, now))

		u, err := store.Current(ctx, userID, now)

		require.NoError(t, err)
		assert.Equal(t, int64(2), u.Generations)
		assert.Equal(t, int64(1), u.Merges)
		assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), u.PeriodStart)
	})

	t.Run("previous month actions do not count", func(t *testing.T) {
		t.Parallel()

		store := usage.NewMemStore(time.UTC)
		userID := uuid.New()

		require.NoError(t, store.Record(ctx, userID, entitlement.ActionGeneration, now.AddDate(0, -1, 0)))

		u, err := store.Current(ctx, userID, now)

		require.NoError(t, err)
		assert.Zero(t, u.Generations)
	})

	t.Run("counters reset across month boundary on read", func(t *testing.T) {
		t.Parallel()

		store := usage.NewMemStore(time.UTC)
		userID := uuid.New()

		require.NoError(t, store.Record(ctx, userID, entitlement.ActionGeneration, now))

		june, err := store.Current(ctx, userID, now)
		require.NoError(t, err)
		assert.Equal(t, int64(1), june.Generations)

		july, err := store.Current(ctx, userID, now.AddDate(0, 1, 0))
		require.NoError(t, err)
		assert.Zero(t, july.Generations)
	})

	t.Run("counters are per user", func(t *testing.T) {
		t.Parallel()

		store := usage.NewMemStore(time.UTC)
		alice, bob := uuid.New(), uuid.New()

		require.NoError(t, store.Record(ctx, alice, entitlement.ActionMerge, now))

		u, err := store.Current(ctx, bob, now)

		require.NoError(t, err)
		assert.Zero(t, u.Merges)
	})

	t.Run("rejects invalid action", func(t *testing.T) {
		t.Parallel()

		store := usage.NewMemStore(time.UTC)

		err := store.Record(ctx, uuid.New(), entitlement.Action("download"), now)

		assert.ErrorIs(t, err, entitlement.ErrInvalidAction)
	})

	t.Run("concurrent records are all counted", func(t *testing.T) {
		t.Parallel()

		store := usage.NewMemStore(time.UTC)
		userID := uuid.New()

		done := make(chan struct{})
		for range 20 {
			go func() {
				defer func() { done <- struct{}{} }()
				_ = store.Record(ctx, userID, entitlement.ActionGeneration, now)
			}()
		}
		for range 20 {
			<-done
		}

		u, err := store.Current(ctx, userID, now)

		require.NoError(t, err)
		assert.Equal(t, int64(20), u.Generations)
	})
}
