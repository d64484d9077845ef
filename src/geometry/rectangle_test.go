package geometry

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// unitSquare spans [0,1]x[0,1] in the z=0 plane, corners counterclockwise.
func unitSquare[T any](t *testing.T, ar Arith[T]) *Rectangle[T] {
	t.Helper()
	rc, err := NewRectangle(ar,
		fpt(ar, 0, 0, 0), fpt(ar, 1, 0, 0), fpt(ar, 1, 1, 0), fpt(ar, 0, 1, 0))
	require.NoError(t, err)
	return rc
}

func TestIsRectangle(t *testing.T) {
	ar := approx()

	for idx, tc := range []struct {
		pts  [4]*Point[float64]
		want bool
	}{
		{[4]*Point[float64]{fpt(ar, 0, 0, 0), fpt(ar, 1, 0, 0), fpt(ar, 1, 1, 0), fpt(ar, 0, 1, 0)}, true},
		// Parallelogram: opposite edges equal but no right angle.
		{[4]*Point[float64]{fpt(ar, 0, 0, 0), fpt(ar, 2, 0, 0), fpt(ar, 3, 1, 0), fpt(ar, 1, 1, 0)}, false},
		// Trapezoid: opposite edges differ.
		{[4]*Point[float64]{fpt(ar, 0, 0, 0), fpt(ar, 3, 0, 0), fpt(ar, 2, 1, 0), fpt(ar, 1, 1, 0)}, false},
		// Non-planar quad.
		{[4]*Point[float64]{fpt(ar, 0, 0, 0), fpt(ar, 1, 0, 0), fpt(ar, 1, 1, 1), fpt(ar, 0, 1, 0)}, false},
		// Rectangle standing in a vertical plane.
		{[4]*Point[float64]{fpt(ar, 0, 0, 0), fpt(ar, 2, 0, 0), fpt(ar, 2, 0, 3), fpt(ar, 0, 0, 3)}, true},
	} {
		t.Run(fmt.Sprintf("%d", idx), func(t *testing.T) {
			require.Equal(t, tc.want, IsRectangle(ar, tc.pts[0], tc.pts[1], tc.pts[2], tc.pts[3]))
		})
	}
}

func TestRectangleConstruction(t *testing.T) {
	ar := approx()

	t.Run("non-coplanar corners are rejected", func(t *testing.T) {
		_, err := NewRectangle(ar,
			fpt(ar, 0, 0, 0), fpt(ar, 1, 0, 0), fpt(ar, 1, 1, 1), fpt(ar, 0, 1, 0))
		require.ErrorIs(t, err, ErrDegenerate)
	})

	t.Run("corner accessors", func(t *testing.T) {
		rc := unitSquare(t, ar)
		require.True(t, rc.P().Equals(ar, fpt(ar, 0, 0, 0)))
		require.True(t, rc.Q().Equals(ar, fpt(ar, 1, 0, 0)))
		require.True(t, rc.R().Equals(ar, fpt(ar, 1, 1, 0)))
		require.True(t, rc.S().Equals(ar, fpt(ar, 0, 1, 0)))
	})
}

func testRectangleContains[T any](t *testing.T, ar Arith[T]) {
	rc := unitSquare(t, ar)

	// Both diagonal halves, the shared diagonal, and the outside.
	require.True(t, rc.Contains(ar, fpt(ar, 0.75, 0.25, 0)))
	require.True(t, rc.Contains(ar, fpt(ar, 0.25, 0.75, 0)))
	require.True(t, rc.Contains(ar, fpt(ar, 0.5, 0.5, 0)))
	require.True(t, rc.Contains(ar, fpt(ar, 0, 0, 0)))
	require.False(t, rc.Contains(ar, fpt(ar, 1.5, 0.5, 0)))
	require.False(t, rc.Contains(ar, fpt(ar, 0.5, 0.5, 1)))
}

func TestRectangleContainsFloat64(t *testing.T) { testRectangleContains(t, approx()) }
func TestRectangleContainsExact(t *testing.T)   { testRectangleContains(t, exact()) }

func TestRectangleLine(t *testing.T) {
	ar := approx()
	rc := unitSquare(t, ar)

	t.Run("downward ray through the interior", func(t *testing.T) {
		l, err := NewLine(ar, fpt(ar, 0.5, 0.5, 5), fpt(ar, 0.5, 0.5, -5))
		require.NoError(t, err)
		g, err := rc.IntersectLine(ar, l)
		require.NoError(t, err)
		p, ok := g.(*Point[float64])
		require.True(t, ok)
		require.True(t, p.Equals(ar, fpt(ar, 0.5, 0.5, 0)))
	})

	t.Run("in-plane line crossing both halves", func(t *testing.T) {
		l, err := NewLine(ar, fpt(ar, -1, 0.5, 0), fpt(ar, 2, 0.5, 0))
		require.NoError(t, err)
		g, err := rc.IntersectLine(ar, l)
		require.NoError(t, err)
		s, ok := g.(*LineSegment[float64])
		require.True(t, ok)
		want, err := NewLineSegment(ar, fpt(ar, 0, 0.5, 0), fpt(ar, 1, 0.5, 0))
		require.NoError(t, err)
		require.True(t, s.Equals(ar, want))
	})

	t.Run("segment ending inside one half", func(t *testing.T) {
		s, err := NewLineSegment(ar, fpt(ar, -1, 0.25, 0), fpt(ar, 0.5, 0.25, 0))
		require.NoError(t, err)
		g, err := rc.IntersectSegment(ar, s)
		require.NoError(t, err)
		got, ok := g.(*LineSegment[float64])
		require.True(t, ok)
		want, err := NewLineSegment(ar, fpt(ar, 0, 0.25, 0), fpt(ar, 0.5, 0.25, 0))
		require.NoError(t, err)
		require.True(t, got.Equals(ar, want))
	})

	t.Run("miss", func(t *testing.T) {
		l, err := NewLine(ar, fpt(ar, 5, 5, 5), fpt(ar, 5, 5, -5))
		require.NoError(t, err)
		g, err := rc.IntersectLine(ar, l)
		require.NoError(t, err)
		require.Nil(t, g)
	})
}

func TestRectanglePlane(t *testing.T) {
	ar := approx()
	rc := unitSquare(t, ar)

	t.Run("coplanar plane returns the rectangle", func(t *testing.T) {
		g, err := rc.IntersectPlane(ar, rc.Plane())
		require.NoError(t, err)
		got, ok := g.(*Rectangle[float64])
		require.True(t, ok)
		require.True(t, got.Equals(ar, rc))
	})

	t.Run("crossing plane spans both halves", func(t *testing.T) {
		pl, err := NewPlaneFromNormal(ar, fpt(ar, 0, 0.5, 0), fvec(ar, 0, 1, 0))
		require.NoError(t, err)
		g, err := rc.IntersectPlane(ar, pl)
		require.NoError(t, err)
		s, ok := g.(*LineSegment[float64])
		require.True(t, ok)
		want, err := NewLineSegment(ar, fpt(ar, 0, 0.5, 0), fpt(ar, 1, 0.5, 0))
		require.NoError(t, err)
		require.True(t, s.Equals(ar, want))
	})

	t.Run("parallel plane misses", func(t *testing.T) {
		pl, err := NewPlaneFromNormal(ar, fpt(ar, 0, 0, 3), fvec(ar, 0, 0, 1))
		require.NoError(t, err)
		g, err := rc.IntersectPlane(ar, pl)
		require.NoError(t, err)
		require.Nil(t, g)
		require.InDelta(t, 9, rc.DistanceSquaredToPlane(ar, pl), 1e-9)
	})
}

func TestRectangleTriangle(t *testing.T) {
	ar := approx()
	rc := unitSquare(t, ar)

	t.Run("coplanar overlap joins across the diagonal", func(t *testing.T) {
		tr, err := NewTriangle(ar, fpt(ar, -1, 0.25, 0), fpt(ar, 2, 0.25, 0), fpt(ar, 0.5, 0.75, 0))
		require.NoError(t, err)
		g, err := rc.IntersectTriangle(ar, tr)
		require.NoError(t, err)
		require.NotNil(t, g)
		require.Equal(t, 2, g.Dim())
	})

	t.Run("perpendicular triangle cuts a segment", func(t *testing.T) {
		tr, err := NewTriangle(ar, fpt(ar, 0.25, 0.5, 1), fpt(ar, 0.75, 0.5, 1), fpt(ar, 0.5, 0.5, -1))
		require.NoError(t, err)
		g, err := rc.IntersectTriangle(ar, tr)
		require.NoError(t, err)
		s, ok := g.(*LineSegment[float64])
		require.True(t, ok)
		require.InDelta(t, 0.0625, s.LengthSquared(ar), 1e-9)
	})
}

func TestRectangleRectangle(t *testing.T) {
	ar := approx()
	rc := unitSquare(t, ar)

	t.Run("coplanar overlap is their common quad", func(t *testing.T) {
		other, err := NewRectangle(ar,
			fpt(ar, 0.5, 0.5, 0), fpt(ar, 2, 0.5, 0), fpt(ar, 2, 2, 0), fpt(ar, 0.5, 2, 0))
		require.NoError(t, err)
		g, err := rc.IntersectRectangle(ar, other)
		require.NoError(t, err)
		require.NotNil(t, g)
		require.Equal(t, 2, g.Dim())
		env := g.Envelope(ar)
		require.InDelta(t, 0.5, env.XMin(ar), 1e-9)
		require.InDelta(t, 1, env.XMax(ar), 1e-9)
		require.InDelta(t, 0.5, env.YMin(ar), 1e-9)
		require.InDelta(t, 1, env.YMax(ar), 1e-9)
	})

	t.Run("disjoint rectangles miss", func(t *testing.T) {
		far, err := NewRectangle(ar,
			fpt(ar, 5, 5, 0), fpt(ar, 6, 5, 0), fpt(ar, 6, 6, 0), fpt(ar, 5, 6, 0))
		require.NoError(t, err)
		g, err := rc.IntersectRectangle(ar, far)
		require.NoError(t, err)
		require.Nil(t, g)
	})
}

func TestRectangleDistances(t *testing.T) {
	ar := approx()
	rc := unitSquare(t, ar)

	require.InDelta(t, 4, rc.DistanceSquaredToPoint(ar, fpt(ar, 0.5, 0.5, 2)), 1e-9)
	require.InDelta(t, 1, rc.DistanceSquaredToPoint(ar, fpt(ar, 2, 0.5, 0)), 1e-9)
	require.InDelta(t, 0, rc.DistanceSquaredToPoint(ar, fpt(ar, 0.25, 0.25, 0)), 1e-12)

	l, err := NewLine(ar, fpt(ar, 0, 0.5, 3), fpt(ar, 1, 0.5, 3))
	require.NoError(t, err)
	require.InDelta(t, 9, rc.DistanceSquaredToLine(ar, l), 1e-9)
}

func TestRectangleEqualsAndTransforms(t *testing.T) {
	ar := approx()
	rc := unitSquare(t, ar)

	t.Run("equality ignores corner order", func(t *testing.T) {
		rot, err := NewRectangle(ar,
			fpt(ar, 1, 0, 0), fpt(ar, 1, 1, 0), fpt(ar, 0, 1, 0), fpt(ar, 0, 0, 0))
		require.NoError(t, err)
		require.True(t, rc.Equals(ar, rot))
	})

	t.Run("translate moves the envelope", func(t *testing.T) {
		rc := unitSquare(t, ar)
		before := rc.Envelope(ar)
		rc.Translate(ar, fvec(ar, 10, 0, 0))
		after := rc.Envelope(ar)
		require.NotSame(t, before, after)
		require.InDelta(t, 10, after.XMin(ar), 1e-12)
		require.True(t, rc.Contains(ar, fpt(ar, 10.5, 0.5, 0)))
	})

	t.Run("rotate a quarter turn", func(t *testing.T) {
		zAxis, err := NewLine(ar, fpt(ar, 0, 0, 0), fpt(ar, 0, 0, 1))
		require.NoError(t, err)
		got, err := rc.Rotate(ar, zAxis, ar.Div(ar.Pi(), two(ar)))
		require.NoError(t, err)
		want, err := NewRectangle(ar,
			fpt(ar, 0, 0, 0), fpt(ar, 0, 1, 0), fpt(ar, -1, 1, 0), fpt(ar, -1, 0, 0))
		require.NoError(t, err)
		require.True(t, got.Equals(ar, want))
	})
}
