package kernel_test

import (
	"math"
	"testing"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPoint(t *testing.T) {
	t.Run("creates_point_with_valid_coordinates", func(t *testing.T) {
		p, err := kernel.NewPoint(3.5, 12)
		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.InDelta(t, 3.5, p.X(), 1e-9)
		assert.InDelta(t, 12.0, p.Y(), 1e-9)
	})

	t.Run("rejects_negative_and_non_finite_coordinates", func(t *testing.T) {
		cases := [][2]float64{
			{-1, 0},
			{0, -0.5},
			{math.NaN(), 1},
			{1, math.Inf(1)},
		}
		for _, c := range cases {
			_, err := kernel.NewPoint(c[0], c[1])
			require.Error(t, err)
		}
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var p kernel.Point
		require.Error(t, p.Validate())
	})
}

func TestPoint_DistanceTo(t *testing.T) {
	a, err := kernel.NewPoint(0, 0)
	require.NoError(t, err)
	b, err := kernel.NewPoint(3, 4)
	require.NoError(t, err)

	assert.InDelta(t, 5.0, a.DistanceTo(b), 1e-9)
	assert.InDelta(t, 5.0, b.DistanceTo(a), 1e-9)
	assert.InDelta(t, 0.0, a.DistanceTo(a), 1e-9)
}

func TestNewRect(t *testing.T) {
	origin, err := kernel.NewPoint(10, 20)
	require.NoError(t, err)

	t.Run("creates_rect_with_positive_extent", func(t *testing.T) {
		r, rectErr := kernel.NewRect(origin, 30, 15)
		require.NoError(t, rectErr)
		require.NoError(t, r.Validate())
		assert.InDelta(t, 30.0, r.Width(), 1e-9)
		assert.InDelta(t, 15.0, r.Height(), 1e-9)
	})

	t.Run("rejects_non_positive_extent", func(t *testing.T) {
		_, rectErr := kernel.NewRect(origin, 0, 15)
		require.Error(t, rectErr)

		_, rectErr = kernel.NewRect(origin, 30, -1)
		require.Error(t, rectErr)
	})

	t.Run("rejects_unconstructed_origin", func(t *testing.T) {
		var p kernel.Point
		_, rectErr := kernel.NewRect(p, 30, 15)
		require.Error(t, rectErr)
	})
}

func TestRect_Contains(t *testing.T) {
	origin, err := kernel.NewPoint(10, 10)
	require.NoError(t, err)
	r, err := kernel.NewRect(origin, 10, 10)
	require.NoError(t, err)

	inside, _ := kernel.NewPoint(15, 15)
	onBorder, _ := kernel.NewPoint(10, 20)
	outside, _ := kernel.NewPoint(25, 15)

	assert.True(t, r.Contains(inside))
	assert.True(t, r.Contains(onBorder))
	assert.False(t, r.Contains(outside))
}
