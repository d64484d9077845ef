package geometry

import (
	"fmt"
	"sort"
)

// ConvexHull is the convex hull of a coplanar point set, stored as its
// perimeter vertices.
type ConvexHull[T any] struct {
	pl  *Plane[T]
	pts []*Point[T]

	env *Envelope[T] // lazy, dropped on Translate
}

// NewConvexHull builds the hull of a coplanar point set by projecting onto
// the plane's dominant-axis 2D frame and running a monotone chain. Point
// sets that are not coplanar, or whose hull collapses below a triangle, are
// degenerate.
func NewConvexHull[T any](ar Arith[T], pts ...*Point[T]) (*ConvexHull[T], error) {
	var distinct []*Point[T]
	for _, p := range pts {
		distinct = appendDistinct(ar, distinct, p)
	}
	if len(distinct) < 3 {
		return nil, fmt.Errorf("convex hull of %d distinct points: %w", len(distinct), ErrDegenerate)
	}

	pl, err := planeOf(ar, distinct)
	if err != nil {
		return nil, err
	}
	for _, p := range distinct {
		if !pl.IsOnPlane(ar, p) {
			return nil, fmt.Errorf("convex hull of non-coplanar points: %w", ErrDegenerate)
		}
	}

	ua, va := projectionAxes(ar, pl.Normal())
	type proj struct {
		p    *Point[T]
		u, v T
	}
	ps := make([]proj, len(distinct))
	for i, p := range distinct {
		ps[i] = proj{p: p, u: p.Coordinate(ar, ua), v: p.Coordinate(ar, va)}
	}
	sort.Slice(ps, func(i, j int) bool {
		if c := ar.Cmp(ps[i].u, ps[j].u); c != 0 {
			return c < 0
		}
		return ar.Cmp(ps[i].v, ps[j].v) < 0
	})

	cross2 := func(o, a, b proj) int {
		lhs := ar.Mul(ar.Sub(a.u, o.u), ar.Sub(b.v, o.v))
		rhs := ar.Mul(ar.Sub(a.v, o.v), ar.Sub(b.u, o.u))
		return ar.Sign(ar.Sub(lhs, rhs))
	}

	var lower, upper []proj
	for _, p := range ps {
		for len(lower) >= 2 && cross2(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}
	for i := len(ps) - 1; i >= 0; i-- {
		p := ps[i]
		for len(upper) >= 2 && cross2(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	perimeter := make([]*Point[T], 0, len(lower)+len(upper)-2)
	for _, p := range lower[:len(lower)-1] {
		perimeter = append(perimeter, p.p)
	}
	for _, p := range upper[:len(upper)-1] {
		perimeter = append(perimeter, p.p)
	}
	if len(perimeter) < 3 {
		return nil, fmt.Errorf("convex hull collapsed to a line: %w", ErrDegenerate)
	}
	return &ConvexHull[T]{pl: pl, pts: perimeter}, nil
}

// planeOf derives a plane from the first non-collinear triple.
func planeOf[T any](ar Arith[T], pts []*Point[T]) (*Plane[T], error) {
	for i := 1; i < len(pts)-1; i++ {
		for j := i + 1; j < len(pts); j++ {
			pl, err := NewPlane(ar, pts[0], pts[i], pts[j])
			if err == nil {
				return pl, nil
			}
		}
	}
	return nil, fmt.Errorf("convex hull of collinear points: %w", ErrDegenerate)
}

// projectionAxes picks the two axes spanning the least-shrinking 2D shadow:
// the normal's dominant axis is dropped.
func projectionAxes[T any](ar Arith[T], n Vector[T]) (u, v Axis) {
	ax := ar.Abs(n.DX)
	ay := ar.Abs(n.DY)
	az := ar.Abs(n.DZ)
	switch {
	case ar.Cmp(ax, ay) >= 0 && ar.Cmp(ax, az) >= 0:
		return AxisY, AxisZ
	case ar.Cmp(ay, az) >= 0:
		return AxisX, AxisZ
	default:
		return AxisX, AxisY
	}
}

// Points returns the perimeter vertices.
func (h *ConvexHull[T]) Points() []*Point[T] { return h.pts }

// Plane returns the supporting plane.
func (h *ConvexHull[T]) Plane() *Plane[T] { return h.pl }

// Contains reports whether pt lies on the hull (interior or boundary): pt
// must sit on the plane and on one consistent side of every perimeter edge.
func (h *ConvexHull[T]) Contains(ar Arith[T], pt *Point[T]) bool {
	if !h.pl.IsOnPlane(ar, pt) {
		return false
	}
	want := 0
	n := h.pl.Normal()
	for i, a := range h.pts {
		b := h.pts[(i+1)%len(h.pts)]
		e := b.Sub(ar, a)
		s := ar.Sign(e.Cross(ar, pt.Sub(ar, a)).Dot(ar, n))
		if s == 0 {
			continue
		}
		if want == 0 {
			want = s
			continue
		}
		if s != want {
			return false
		}
	}
	return true
}

// Edges returns the perimeter segments in order.
func (h *ConvexHull[T]) Edges(ar Arith[T]) []*LineSegment[T] {
	edges := make([]*LineSegment[T], 0, len(h.pts))
	for i, a := range h.pts {
		b := h.pts[(i+1)%len(h.pts)]
		e, err := NewLineSegment(ar, a, b)
		if err != nil {
			continue
		}
		edges = append(edges, e)
	}
	return edges
}

// DistanceSquaredToPoint is zero on the hull, else the perpendicular foot
// distance when it projects inside, else the nearest perimeter edge.
func (h *ConvexHull[T]) DistanceSquaredToPoint(ar Arith[T], pt *Point[T]) T {
	n := h.pl.Normal()
	f := ar.Div(n.Dot(ar, pt.Sub(ar, h.pl.P())), n.MagnitudeSquared(ar))
	foot := NewPointFromVector(ar, pt.Position(ar).Sub(ar, n.Scale(ar, f)))
	if h.Contains(ar, foot) {
		return h.pl.DistanceSquaredToPoint(ar, pt)
	}
	edges := h.Edges(ar)
	d := edges[0].DistanceSquaredToPoint(ar, pt)
	for _, e := range edges[1:] {
		d = minT(ar, d, e.DistanceSquaredToPoint(ar, pt))
	}
	return d
}

// Equals reports whether the perimeter point sets coincide within tolerance.
func (h *ConvexHull[T]) Equals(ar Arith[T], o *ConvexHull[T]) bool {
	if len(h.pts) != len(o.pts) {
		return false
	}
	used := make([]bool, len(o.pts))
	for _, p := range h.pts {
		matched := false
		for i, q := range o.pts {
			if !used[i] && p.Equals(ar, q) {
				used[i] = true
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// Translate shifts the hull by v and drops cached state.
func (h *ConvexHull[T]) Translate(ar Arith[T], v Vector[T]) {
	for _, p := range h.pts {
		p.Translate(ar, v)
	}
	h.pl.Translate(ar, v)
	h.env = nil
}

// Rotate returns a new hull built from the rotated perimeter.
func (h *ConvexHull[T]) Rotate(ar Arith[T], axis *Line[T], theta T) (*ConvexHull[T], error) {
	rotated := make([]*Point[T], len(h.pts))
	for i, p := range h.pts {
		rotated[i] = p.Rotate(ar, axis, theta)
	}
	return NewConvexHull(ar, rotated...)
}

func (h *ConvexHull[T]) Kind() Kind { return KindConvexHull }
func (h *ConvexHull[T]) Dim() int   { return 2 }

// Envelope returns the cached bounding box, computing it on first access.
func (h *ConvexHull[T]) Envelope(ar Arith[T]) *Envelope[T] {
	if h.env == nil {
		h.env = NewEnvelope(ar, h.pts...)
	}
	return h.env
}
