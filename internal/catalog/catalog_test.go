package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/forecast-dataset-prep/internal/domain"
)

func testAddress(name string, bbox domain.BoundingBox) domain.DatasetAddress {
	return domain.DatasetAddress{
		ModelName:   name,
		ModelConfig: "hi_lam",
		BBox:        bbox,
		Resolution: domain.Resolution{
			LonResolution: 0.25,
			LatResolution: 0.25,
			Unit:          domain.UnitDegree,
		},
		AnalysisTime: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
		DataKind:     "analysis",
		Member:       0,
	}
}

func TestCatalogRegisterAndIntersect(t *testing.T) {
	c := New()

	denmark := domain.BoundingBox{LonMin: 8, LatMin: 54.5, LonMax: 13, LatMax: 57.8}
	iberia := domain.BoundingBox{LonMin: -10, LatMin: 36, LonMax: 3, LatMax: 44}

	pathDK, err := c.Register(testAddress("danra", denmark))
	require.NoError(t, err)
	assert.Contains(t, pathDK, "danra/")

	_, err = c.Register(testAddress("cerra", iberia))
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	t.Run("query overlapping one entry", func(t *testing.T) {
		got, err := c.Intersecting(domain.BoundingBox{LonMin: 10, LatMin: 55, LonMax: 12, LatMax: 56})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "danra", got[0].Address.ModelName)
		assert.Equal(t, pathDK, got[0].Path)
	})

	t.Run("query overlapping both entries", func(t *testing.T) {
		got, err := c.Intersecting(domain.BoundingBox{LonMin: -20, LatMin: 30, LonMax: 20, LatMax: 60})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("query overlapping nothing", func(t *testing.T) {
		got, err := c.Intersecting(domain.BoundingBox{LonMin: 100, LatMin: 10, LonMax: 110, LatMax: 20})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("covering query", func(t *testing.T) {
		// Inside the Denmark box; only that dataset fully covers it.
		got, err := c.Covering(domain.BoundingBox{LonMin: 10, LatMin: 55, LonMax: 12, LatMax: 56})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "danra", got[0].Address.ModelName)
	})

	t.Run("covering query spilling outside", func(t *testing.T) {
		// Overlaps Denmark but extends east of it: intersecting yes, covering no.
		got, err := c.Covering(domain.BoundingBox{LonMin: 12, LatMin: 55, LonMax: 15, LatMax: 56})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestCatalogRegister_InvalidAddress(t *testing.T) {
	c := New()

	addr := testAddress("danra", domain.BoundingBox{LonMin: 8, LatMin: 54.5, LonMax: 13, LatMax: 57.8})
	addr.ModelName = ""

	_, err := c.Register(addr)
	assert.Error(t, err)
	assert.Zero(t, c.Len())
}

func TestCatalogRegister_InvalidBBox(t *testing.T) {
	c := New()

	addr := testAddress("danra", domain.BoundingBox{LonMin: 13, LatMin: 54.5, LonMax: 8, LatMax: 57.8})

	_, err := c.Register(addr)

	var bboxErr *domain.InvalidBoundingBoxError
	assert.ErrorAs(t, err, &bboxErr)
	assert.Zero(t, c.Len())
}

func TestCatalogIntersecting_InvalidQuery(t *testing.T) {
	c := New()

	_, err := c.Intersecting(domain.BoundingBox{LonMin: 5, LatMin: 5, LonMax: 5, LatMax: 10})
	assert.Error(t, err)
}
