package entitlement_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumishot/lumishot/pkg/entitlement"
)

const testCatalogYAML = `
free:
  name: Free
  generations: 2
  merges: 1
  shapes: ["1:1"]
  quality: standard
  support: community
  interval: none
  public: true
pro:
  name: Pro
  generations: 100
  merges: 25
  shapes: ["1:1", "16:9"]
  quality: hd
  support: priority
  commercial_license: true
  price:
    amount: 1900
    currency: USD
  interval: monthly
  price_id: price_pro_monthly
  public: true
max:
  name: Max
  shapes: ["1:1", "16:9", "9:16"]
  quality: ultra
  support: dedicated
  commercial_license: true
  api_access: true
  price:
    amount: 4900
    currency: USD
  interval: monthly
  price_id: price_max_monthly
  public: true
`

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "plans.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestYAMLSource_Load(t *testing.T) {
	t.Parallel()

	t.Run("parses full catalog", func(t *testing.T) {
		t.Parallel()

		src := entitlement.NewYAMLSource(writeCatalogFile(t, testCatalogYAML))

		plans, err := src.Load(context.Background())

		require.NoError(t, err)
		require.Len(t, plans, 3)

		free := plans["free"]
		assert.Equal(t, "free", free.ID)
		assert.Equal(t, int64(2), free.Ceiling(entitlement.ActionGeneration))
		assert.Equal(t, int64(1), free.Ceiling(entitlement.ActionMerge))
		assert.Equal(t, []entitlement.Shape{entitlement.ShapeSquare}, free.Shapes)

		pro := plans["pro"]
		assert.Equal(t, "price_pro_monthly", pro.PriceID)
		assert.Equal(t, int64(1900), pro.Price.Amount)
		assert.True(t, pro.CommercialLicense)
	})

	t.Run("omitted ceilings mean unlimited", func(t *testing.T) {
		t.Parallel()

		src := entitlement.NewYAMLSource(writeCatalogFile(t, testCatalogYAML))

		plans, err := src.Load(context.Background())

		require.NoError(t, err)
		assert.Equal(t, entitlement.Unlimited, plans["max"].Ceiling(entitlement.ActionGeneration))
		assert.Equal(t, entitlement.Unlimited, plans["max"].Ceiling(entitlement.ActionMerge))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		src := entitlement.NewYAMLSource(filepath.Join(t.TempDir(), "absent.yaml"))

		_, err := src.Load(context.Background())

		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		src := entitlement.NewYAMLSource(writeCatalogFile(t, "free: [not a map"))

		_, err := src.Load(context.Background())

		assert.ErrorIs(t, err, entitlement.ErrInvalidPlanConfiguration)
	})

	t.Run("feeds a working catalog", func(t *testing.T) {
		t.Parallel()

		src := entitlement.NewYAMLSource(writeCatalogFile(t, testCatalogYAML))

		catalog, err := entitlement.NewCatalog(context.Background(), src, "free")

		require.NoError(t, err)
		assert.Equal(t, "free", catalog.Lowest().ID)
	})
}
