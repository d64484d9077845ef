package geometry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testHullConstruction[T any](t *testing.T, ar Arith[T]) {
	t.Run("interior points are dropped from the perimeter", func(t *testing.T) {
		h, err := NewConvexHull(ar,
			fpt(ar, 0, 0, 0), fpt(ar, 4, 0, 0), fpt(ar, 4, 4, 0), fpt(ar, 0, 4, 0),
			fpt(ar, 2, 2, 0), fpt(ar, 1, 3, 0))
		require.NoError(t, err)
		require.Len(t, h.Points(), 4)
		for _, corner := range []*Point[T]{
			fpt(ar, 0, 0, 0), fpt(ar, 4, 0, 0), fpt(ar, 4, 4, 0), fpt(ar, 0, 4, 0),
		} {
			found := false
			for _, p := range h.Points() {
				if p.Equals(ar, corner) {
					found = true
					break
				}
			}
			require.True(t, found)
		}
	})

	t.Run("duplicates collapse before the count check", func(t *testing.T) {
		_, err := NewConvexHull(ar, fpt(ar, 0, 0, 0), fpt(ar, 0, 0, 0), fpt(ar, 1, 0, 0))
		require.ErrorIs(t, err, ErrDegenerate)
	})

	t.Run("collinear points cannot span a hull", func(t *testing.T) {
		_, err := NewConvexHull(ar, fpt(ar, 0, 0, 0), fpt(ar, 1, 0, 0), fpt(ar, 2, 0, 0))
		require.ErrorIs(t, err, ErrDegenerate)
	})

	t.Run("non-coplanar points are rejected", func(t *testing.T) {
		_, err := NewConvexHull(ar,
			fpt(ar, 0, 0, 0), fpt(ar, 1, 0, 0), fpt(ar, 0, 1, 0), fpt(ar, 0, 0, 1))
		require.ErrorIs(t, err, ErrDegenerate)
	})
}

func TestHullConstructionFloat64(t *testing.T) { testHullConstruction(t, approx()) }
func TestHullConstructionExact(t *testing.T)   { testHullConstruction(t, exact()) }

func TestHullVerticalPlane(t *testing.T) {
	// The dominant normal axis is y; projection must still produce the hull.
	ar := approx()
	h, err := NewConvexHull(ar,
		fpt(ar, 0, 0, 0), fpt(ar, 3, 0, 0), fpt(ar, 3, 0, 2), fpt(ar, 0, 0, 2), fpt(ar, 1, 0, 1))
	require.NoError(t, err)
	require.Len(t, h.Points(), 4)
	require.True(t, h.Contains(ar, fpt(ar, 1.5, 0, 1)))
	require.False(t, h.Contains(ar, fpt(ar, 1.5, 1, 1)))
}

func TestHullContains(t *testing.T) {
	ar := approx()
	h, err := NewConvexHull(ar,
		fpt(ar, 0, 0, 0), fpt(ar, 4, 0, 0), fpt(ar, 4, 4, 0), fpt(ar, 0, 4, 0))
	require.NoError(t, err)

	require.True(t, h.Contains(ar, fpt(ar, 2, 2, 0)))
	require.True(t, h.Contains(ar, fpt(ar, 0, 0, 0)), "perimeter is inclusive")
	require.True(t, h.Contains(ar, fpt(ar, 2, 0, 0)))
	require.False(t, h.Contains(ar, fpt(ar, 5, 2, 0)))
	require.False(t, h.Contains(ar, fpt(ar, 2, 2, 1)))
}

func TestHullDistances(t *testing.T) {
	ar := approx()
	h, err := NewConvexHull(ar,
		fpt(ar, 0, 0, 0), fpt(ar, 4, 0, 0), fpt(ar, 4, 4, 0), fpt(ar, 0, 4, 0))
	require.NoError(t, err)

	require.InDelta(t, 0, h.DistanceSquaredToPoint(ar, fpt(ar, 1, 1, 0)), 1e-12)
	require.InDelta(t, 9, h.DistanceSquaredToPoint(ar, fpt(ar, 2, 2, 3)), 1e-9)
	require.InDelta(t, 4, h.DistanceSquaredToPoint(ar, fpt(ar, 6, 2, 0)), 1e-9)
	require.InDelta(t, 8, h.DistanceSquaredToPoint(ar, fpt(ar, 6, 6, 0)), 1e-9, "past a corner")
}

func TestHullEqualsAndTransforms(t *testing.T) {
	ar := approx()
	mk := func() *ConvexHull[float64] {
		h, err := NewConvexHull(ar,
			fpt(ar, 0, 0, 0), fpt(ar, 4, 0, 0), fpt(ar, 4, 4, 0), fpt(ar, 0, 4, 0))
		require.NoError(t, err)
		return h
	}

	t.Run("equality is order independent", func(t *testing.T) {
		other, err := NewConvexHull(ar,
			fpt(ar, 4, 4, 0), fpt(ar, 0, 0, 0), fpt(ar, 0, 4, 0), fpt(ar, 4, 0, 0))
		require.NoError(t, err)
		require.True(t, mk().Equals(ar, other))
	})

	t.Run("different perimeters differ", func(t *testing.T) {
		other, err := NewConvexHull(ar,
			fpt(ar, 0, 0, 0), fpt(ar, 4, 0, 0), fpt(ar, 4, 4, 0))
		require.NoError(t, err)
		require.False(t, mk().Equals(ar, other))
	})

	t.Run("translate moves the envelope", func(t *testing.T) {
		h := mk()
		before := h.Envelope(ar)
		h.Translate(ar, fvec(ar, 0, 10, 0))
		after := h.Envelope(ar)
		require.NotSame(t, before, after)
		require.InDelta(t, 10, after.YMin(ar), 1e-12)
		require.True(t, h.Contains(ar, fpt(ar, 2, 12, 0)))
	})

	t.Run("rotate a half turn", func(t *testing.T) {
		zAxis, err := NewLine(ar, fpt(ar, 0, 0, 0), fpt(ar, 0, 0, 1))
		require.NoError(t, err)
		got, err := mk().Rotate(ar, zAxis, ar.Pi())
		require.NoError(t, err)
		want, err := NewConvexHull(ar,
			fpt(ar, 0, 0, 0), fpt(ar, -4, 0, 0), fpt(ar, -4, -4, 0), fpt(ar, 0, -4, 0))
		require.NoError(t, err)
		require.True(t, got.Equals(ar, want))
	})
}
