package usage_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumishot/lumishot/pkg/usage"
)

func TestPeriod(t *testing.T) {
	t.Parallel()

	t.Run("mid-month UTC", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

		start, end := usage.Period(now, time.UTC)

		assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2025, 6, 30, 23, 59, 59, 999999999, time.UTC), end)
	})

	t.Run("first instant of month stays in that month", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

		start, end := usage.Period(now, time.UTC)

		assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.July, end.Month())
	})

	t.Run("december rolls into new year", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC)

		start, end := usage.Period(now, time.UTC)

		assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2025, 12, 31, 23, 59, 59, 999999999, time.UTC), end)
	})

	t.Run("leap february", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2024, 2, 10, 8, 0, 0, 0, time.UTC)

		_, end := usage.Period(now, time.UTC)

		assert.Equal(t, 29, end.Day())
	})

	t.Run("zone shifts the boundary", func(t *testing.T) {
		t.Parallel()

		tokyo, err := time.LoadLocation("Asia/Tokyo")
		require.NoError(t, err)

		// 23:30 UTC on May 31 is already June 1 in Tokyo.
		now := time.Date(2025, 5, 31, 23, 30, 0, 0, time.UTC)

		start, _ := usage.Period(now, tokyo)

		assert.Equal(t, time.June, start.Month())
	})

	t.Run("nil location defaults to UTC", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

		start, _ := usage.Period(now, nil)

		assert.Equal(t, time.UTC, start.Location())
	})
}

func TestConfig_Location(t *testing.T) {
	t.Parallel()

	t.Run("valid zone", func(t *testing.T) {
		t.Parallel()

		loc, err := usage.Config{Timezone: "Europe/Berlin"}.Location()

		require.NoError(t, err)
		assert.Equal(t, "Europe/Berlin", loc.String())
	})

	t.Run("invalid zone", func(t *testing.T) {
		t.Parallel()

		_, err := usage.Config{Timezone: "Mars/Olympus"}.Location()

		assert.Error(t, err)
	})
}
