package geometry

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func testLineIntersections[T any](t *testing.T, ar Arith[T]) {
	xAxis, err := NewLine(ar, fpt(ar, 0, 0, 0), fpt(ar, 1, 0, 0))
	require.NoError(t, err)

	t.Run("crossing lines meet in a point", func(t *testing.T) {
		other, err := NewLine(ar, fpt(ar, 2, -1, 0), fpt(ar, 2, 1, 0))
		require.NoError(t, err)
		g := xAxis.IntersectLine(ar, other)
		p, ok := g.(*Point[T])
		require.True(t, ok)
		require.True(t, p.Equals(ar, fpt(ar, 2, 0, 0)))
	})

	t.Run("coincident lines return the line", func(t *testing.T) {
		same, err := NewLine(ar, fpt(ar, 5, 0, 0), fpt(ar, -3, 0, 0))
		require.NoError(t, err)
		g := xAxis.IntersectLine(ar, same)
		_, ok := g.(*Line[T])
		require.True(t, ok)
	})

	t.Run("parallel distinct lines miss", func(t *testing.T) {
		par, err := NewLine(ar, fpt(ar, 0, 1, 0), fpt(ar, 1, 1, 0))
		require.NoError(t, err)
		require.Nil(t, xAxis.IntersectLine(ar, par))
	})

	t.Run("skew lines miss", func(t *testing.T) {
		skew, err := NewLine(ar, fpt(ar, 0, 1, 1), fpt(ar, 0, -1, 1))
		require.NoError(t, err)
		require.Nil(t, xAxis.IntersectLine(ar, skew))
	})
}

func TestLineIntersectionsFloat64(t *testing.T) { testLineIntersections(t, approx()) }
func TestLineIntersectionsExact(t *testing.T)   { testLineIntersections(t, exact()) }

func TestLineDegenerateConstruction(t *testing.T) {
	ar := approx()
	_, err := NewLine(ar, fpt(ar, 1, 1, 1), fpt(ar, 1, 1, 1))
	require.ErrorIs(t, err, ErrDegenerate)
	_, err = NewLineFromDirection(ar, fpt(ar, 0, 0, 0), ZeroVector(ar))
	require.ErrorIs(t, err, ErrDegenerate)
}

func TestLinePredicates(t *testing.T) {
	ar := approx()
	l, err := NewLine(ar, fpt(ar, 0, 0, 0), fpt(ar, 2, 2, 0))
	require.NoError(t, err)

	require.True(t, l.IsOnLine(ar, fpt(ar, -1, -1, 0)))
	require.False(t, l.IsOnLine(ar, fpt(ar, 1, 0, 0)))

	rev, err := NewLine(ar, fpt(ar, 3, 3, 0), fpt(ar, 1, 1, 0))
	require.NoError(t, err)
	require.True(t, l.Equals(ar, rev), "equality must be direction independent")

	require.InDelta(t, 0.5, l.ParamOf(ar, fpt(ar, 1, 1, 0)), 1e-12)
}

func TestLineDistances(t *testing.T) {
	ar := approx()
	xAxis, err := NewLine(ar, fpt(ar, 0, 0, 0), fpt(ar, 1, 0, 0))
	require.NoError(t, err)

	for idx, tc := range []struct {
		pt   *Point[float64]
		want float64
	}{
		{fpt(ar, 7, 0, 0), 0},
		{fpt(ar, 0, 3, 0), 9},
		{fpt(ar, 5, 3, 4), 25},
	} {
		t.Run(fmt.Sprintf("%d", idx), func(t *testing.T) {
			require.InDelta(t, tc.want, xAxis.DistanceSquaredToPoint(ar, tc.pt), 1e-9)
		})
	}

	t.Run("parallel lines", func(t *testing.T) {
		par, err := NewLine(ar, fpt(ar, 0, 0, 2), fpt(ar, 1, 0, 2))
		require.NoError(t, err)
		require.InDelta(t, 4, xAxis.DistanceSquaredToLine(ar, par), 1e-9)
	})

	t.Run("skew lines", func(t *testing.T) {
		skew, err := NewLine(ar, fpt(ar, 0, -1, 3), fpt(ar, 0, 1, 3))
		require.NoError(t, err)
		require.InDelta(t, 9, xAxis.DistanceSquaredToLine(ar, skew), 1e-9)
	})
}

func TestSegmentAlignment(t *testing.T) {
	ar := approx()
	s, err := NewLineSegment(ar, fpt(ar, 0, 0, 0), fpt(ar, 4, 0, 0))
	require.NoError(t, err)

	require.True(t, s.IsAligned(ar, fpt(ar, 2, 0, 0)))
	require.True(t, s.IsAligned(ar, fpt(ar, 0, 0, 0)), "endpoints are inclusive")
	require.True(t, s.IsAligned(ar, fpt(ar, 4, 0, 0)))
	require.False(t, s.IsAligned(ar, fpt(ar, 5, 0, 0)), "on the line but past the span")
	require.False(t, s.IsAligned(ar, fpt(ar, 2, 1, 0)))

	require.True(t, s.Midpoint(ar).Equals(ar, fpt(ar, 2, 0, 0)))
	require.InDelta(t, 4, s.Length(ar), 1e-12)
}

func TestSegmentOverlap(t *testing.T) {
	ar := approx()
	mk := func(a, b float64) *LineSegment[float64] {
		s, err := NewLineSegment(ar, fpt(ar, a, 0, 0), fpt(ar, b, 0, 0))
		require.NoError(t, err)
		return s
	}

	for idx, tc := range []struct {
		a, b *LineSegment[float64]
		kind Kind
		lo   float64
		hi   float64
	}{
		{mk(0, 4), mk(2, 6), KindLineSegment, 2, 4},
		{mk(0, 4), mk(4, 6), KindPoint, 4, 4},
		{mk(0, 4), mk(1, 3), KindLineSegment, 1, 3},
		{mk(0, 4), mk(6, 8), -1, 0, 0},
	} {
		t.Run(fmt.Sprintf("%d", idx), func(t *testing.T) {
			g := tc.a.IntersectSegment(ar, tc.b)
			switch tc.kind {
			case KindLineSegment:
				s, ok := g.(*LineSegment[float64])
				require.True(t, ok)
				want := mk(tc.lo, tc.hi)
				require.True(t, s.Equals(ar, want))
			case KindPoint:
				p, ok := g.(*Point[float64])
				require.True(t, ok)
				require.True(t, p.Equals(ar, fpt(ar, tc.lo, 0, 0)))
			default:
				require.Nil(t, g)
			}
		})
	}

	t.Run("crossing segments meet in a point", func(t *testing.T) {
		a := mk(0, 4)
		b, err := NewLineSegment(ar, fpt(ar, 2, -1, 0), fpt(ar, 2, 1, 0))
		require.NoError(t, err)
		g := a.IntersectSegment(ar, b)
		p, ok := g.(*Point[float64])
		require.True(t, ok)
		require.True(t, p.Equals(ar, fpt(ar, 2, 0, 0)))
	})

	t.Run("crossing beyond the span misses", func(t *testing.T) {
		a := mk(0, 4)
		b, err := NewLineSegment(ar, fpt(ar, 6, -1, 0), fpt(ar, 6, 1, 0))
		require.NoError(t, err)
		require.Nil(t, a.IntersectSegment(ar, b))
	})
}

func TestSegmentDistances(t *testing.T) {
	ar := approx()
	s, err := NewLineSegment(ar, fpt(ar, 0, 0, 0), fpt(ar, 4, 0, 0))
	require.NoError(t, err)

	t.Run("point projects inside the span", func(t *testing.T) {
		require.InDelta(t, 4, s.DistanceSquaredToPoint(ar, fpt(ar, 2, 2, 0)), 1e-9)
	})
	t.Run("point clamps to an endpoint", func(t *testing.T) {
		require.InDelta(t, 8, s.DistanceSquaredToPoint(ar, fpt(ar, 6, 2, 0)), 1e-9)
	})

	t.Run("segment to segment endpoint gap", func(t *testing.T) {
		o, err := NewLineSegment(ar, fpt(ar, 6, 0, 0), fpt(ar, 8, 0, 0))
		require.NoError(t, err)
		require.InDelta(t, 4, s.DistanceSquaredToSegment(ar, o), 1e-9)
	})

	t.Run("segment to segment interior approach", func(t *testing.T) {
		o, err := NewLineSegment(ar, fpt(ar, 2, -3, 5), fpt(ar, 2, 3, 5))
		require.NoError(t, err)
		require.InDelta(t, 25, s.DistanceSquaredToSegment(ar, o), 1e-9)
	})

	t.Run("intersecting segments have zero distance", func(t *testing.T) {
		o, err := NewLineSegment(ar, fpt(ar, 2, -1, 0), fpt(ar, 2, 1, 0))
		require.NoError(t, err)
		require.InDelta(t, 0, s.DistanceSquaredToSegment(ar, o), 1e-12)
	})
}
