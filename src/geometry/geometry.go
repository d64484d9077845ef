package geometry

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerate reports construction from coincident or collinear
	// defining points: no line, plane or triangle can be formed.
	ErrDegenerate = errors.New("geometry: degenerate input")

	// ErrUndefined reports a geometric query that is not meaningful for the
	// operands' current state, such as merging two partial segments that do
	// not overlap or touch.
	ErrUndefined = errors.New("geometry: undefined operation")
)

// Axis identifies a coordinate axis.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return "z"
	}
}

// Kind tags the variants of the Geometry union.
type Kind int

const (
	KindPoint Kind = iota
	KindLineSegment
	KindLine
	KindPlane
	KindTriangle
	KindRectangle
	KindTetrahedron
	KindConvexHull
	KindPolygon
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindLineSegment:
		return "line segment"
	case KindLine:
		return "line"
	case KindPlane:
		return "plane"
	case KindTriangle:
		return "triangle"
	case KindRectangle:
		return "rectangle"
	case KindTetrahedron:
		return "tetrahedron"
	case KindConvexHull:
		return "convex hull"
	default:
		return "polygon"
	}
}

// Geometry is the tagged union of intersection results and shapes. A nil
// Geometry is the "no intersection" variant: an expected outcome, never an
// error.
type Geometry[T any] interface {
	Kind() Kind
	// Dim is the intrinsic dimension: 0 for points, 1 for lines and
	// segments, 2 for planes and planar shapes, 3 for solids.
	Dim() int
	// Envelope returns the axis-aligned bounding box of the shape.
	Envelope(ar Arith[T]) *Envelope[T]
}

// Intersection dispatches a pair of geometries to the matching kernel
// routine. Envelope overlap is checked first so that far-apart bounded pairs
// are rejected without exact arithmetic.
func Intersection[T any](ar Arith[T], a, b Geometry[T]) (Geometry[T], error) {
	if a == nil || b == nil {
		return nil, nil
	}
	// Planes and lines are unbounded; their envelopes cannot reject.
	if bounded(a) && bounded(b) && a.Envelope(ar).IsBeyond(ar, b.Envelope(ar)) {
		return nil, nil
	}
	switch s := a.(type) {
	case *Point[T]:
		return intersectPoint(ar, s, b)
	case *Line[T]:
		return intersectLine(ar, s, b)
	case *LineSegment[T]:
		return intersectSegment(ar, s, b)
	case *Plane[T]:
		return intersectPlane(ar, s, b)
	case *Triangle[T]:
		return intersectTriangle(ar, s, b)
	case *Rectangle[T]:
		return intersectRectangle(ar, s, b)
	case *Tetrahedron[T]:
		return intersectTetrahedron(ar, s, b)
	case *ConvexHull[T]:
		if o, ok := b.(*Point[T]); ok {
			return intersectPoint(ar, o, s)
		}
	case *Polygon[T]:
		if o, ok := b.(*Point[T]); ok {
			return intersectPoint(ar, o, s)
		}
	}
	return nil, fmt.Errorf("intersection of %s and %s: %w", a.Kind(), b.Kind(), ErrUndefined)
}

// Intersects reports whether the two geometries meet.
func Intersects[T any](ar Arith[T], a, b Geometry[T]) (bool, error) {
	g, err := Intersection(ar, a, b)
	if err != nil {
		return false, err
	}
	return g != nil, nil
}

func bounded[T any](g Geometry[T]) bool {
	switch g.Kind() {
	case KindLine, KindPlane:
		return false
	}
	return true
}

func intersectPoint[T any](ar Arith[T], p *Point[T], b Geometry[T]) (Geometry[T], error) {
	var on bool
	switch o := b.(type) {
	case *Point[T]:
		on = p.Equals(ar, o)
	case *Line[T]:
		on = o.IsOnLine(ar, p)
	case *LineSegment[T]:
		on = o.IsAligned(ar, p)
	case *Plane[T]:
		on = o.IsOnPlane(ar, p)
	case *Triangle[T]:
		on = o.Contains(ar, p)
	case *Rectangle[T]:
		on = o.Contains(ar, p)
	case *Tetrahedron[T]:
		on = o.Contains(ar, p)
	case *ConvexHull[T]:
		on = o.Contains(ar, p)
	case *Polygon[T]:
		on = o.Contains(ar, p)
	default:
		return nil, fmt.Errorf("intersection of point and %s: %w", b.Kind(), ErrUndefined)
	}
	if on {
		return p, nil
	}
	return nil, nil
}

func intersectLine[T any](ar Arith[T], l *Line[T], b Geometry[T]) (Geometry[T], error) {
	switch o := b.(type) {
	case *Point[T]:
		return intersectPoint(ar, o, l)
	case *Line[T]:
		return l.IntersectLine(ar, o), nil
	case *LineSegment[T]:
		return o.IntersectLine(ar, l), nil
	case *Plane[T]:
		return o.IntersectLine(ar, l), nil
	case *Triangle[T]:
		return o.IntersectLine(ar, l), nil
	case *Rectangle[T]:
		return o.IntersectLine(ar, l)
	case *Tetrahedron[T]:
		return o.IntersectLine(ar, l)
	}
	return nil, fmt.Errorf("intersection of line and %s: %w", b.Kind(), ErrUndefined)
}

func intersectSegment[T any](ar Arith[T], s *LineSegment[T], b Geometry[T]) (Geometry[T], error) {
	switch o := b.(type) {
	case *Point[T]:
		return intersectPoint(ar, o, s)
	case *Line[T]:
		return s.IntersectLine(ar, o), nil
	case *LineSegment[T]:
		return s.IntersectSegment(ar, o), nil
	case *Plane[T]:
		return o.IntersectSegment(ar, s), nil
	case *Triangle[T]:
		return o.IntersectSegment(ar, s), nil
	case *Rectangle[T]:
		return o.IntersectSegment(ar, s)
	case *Tetrahedron[T]:
		return o.IntersectSegment(ar, s)
	}
	return nil, fmt.Errorf("intersection of line segment and %s: %w", b.Kind(), ErrUndefined)
}

func intersectPlane[T any](ar Arith[T], pl *Plane[T], b Geometry[T]) (Geometry[T], error) {
	switch o := b.(type) {
	case *Point[T]:
		return intersectPoint(ar, o, pl)
	case *Line[T]:
		return pl.IntersectLine(ar, o), nil
	case *LineSegment[T]:
		return pl.IntersectSegment(ar, o), nil
	case *Plane[T]:
		return pl.IntersectPlane(ar, o), nil
	case *Triangle[T]:
		return o.IntersectPlane(ar, pl), nil
	case *Rectangle[T]:
		return o.IntersectPlane(ar, pl)
	case *Tetrahedron[T]:
		return o.IntersectPlane(ar, pl)
	}
	return nil, fmt.Errorf("intersection of plane and %s: %w", b.Kind(), ErrUndefined)
}

func intersectTriangle[T any](ar Arith[T], t *Triangle[T], b Geometry[T]) (Geometry[T], error) {
	switch o := b.(type) {
	case *Point[T]:
		return intersectPoint(ar, o, t)
	case *Line[T]:
		return t.IntersectLine(ar, o), nil
	case *LineSegment[T]:
		return t.IntersectSegment(ar, o), nil
	case *Plane[T]:
		return t.IntersectPlane(ar, o), nil
	case *Triangle[T]:
		return t.IntersectTriangle(ar, o)
	case *Rectangle[T]:
		return o.IntersectTriangle(ar, t)
	case *Tetrahedron[T]:
		return o.IntersectTriangle(ar, t)
	}
	return nil, fmt.Errorf("intersection of triangle and %s: %w", b.Kind(), ErrUndefined)
}

func intersectRectangle[T any](ar Arith[T], r *Rectangle[T], b Geometry[T]) (Geometry[T], error) {
	switch o := b.(type) {
	case *Point[T]:
		return intersectPoint(ar, o, r)
	case *Line[T]:
		return r.IntersectLine(ar, o)
	case *LineSegment[T]:
		return r.IntersectSegment(ar, o)
	case *Plane[T]:
		return r.IntersectPlane(ar, o)
	case *Triangle[T]:
		return r.IntersectTriangle(ar, o)
	}
	return nil, fmt.Errorf("intersection of rectangle and %s: %w", b.Kind(), ErrUndefined)
}

func intersectTetrahedron[T any](ar Arith[T], th *Tetrahedron[T], b Geometry[T]) (Geometry[T], error) {
	switch o := b.(type) {
	case *Point[T]:
		return intersectPoint(ar, o, th)
	case *Line[T]:
		return th.IntersectLine(ar, o)
	case *LineSegment[T]:
		return th.IntersectSegment(ar, o)
	case *Plane[T]:
		return th.IntersectPlane(ar, o)
	case *Triangle[T]:
		return th.IntersectTriangle(ar, o)
	}
	return nil, fmt.Errorf("intersection of tetrahedron and %s: %w", b.Kind(), ErrUndefined)
}

// joinPartials combines two partial intersection results produced by the
// constituent sub-shapes of a composite. nil absorbs; a point incident to the
// other partial is absorbed by it; collinear segments that overlap or share
// an endpoint merge into one segment. Anything else is undefined.
func joinPartials[T any](ar Arith[T], a, b Geometry[T]) (Geometry[T], error) {
	if a == nil {
		return b, nil
	}
	if b == nil {
		return a, nil
	}
	ap, aIsPoint := a.(*Point[T])
	bp, bIsPoint := b.(*Point[T])
	as, aIsSeg := a.(*LineSegment[T])
	bs, bIsSeg := b.(*LineSegment[T])

	switch {
	case aIsPoint && bIsPoint:
		if ap.Equals(ar, bp) {
			return ap, nil
		}
		s, err := NewLineSegment(ar, ap, bp)
		if err != nil {
			return nil, err
		}
		return s, nil
	case aIsPoint && bIsSeg:
		if bs.IsAligned(ar, ap) {
			return bs, nil
		}
		return nil, fmt.Errorf("join of point off segment: %w", ErrUndefined)
	case aIsSeg && bIsPoint:
		return joinPartials[T](ar, b, a)
	case aIsSeg && bIsSeg:
		return mergeSegments(ar, as, bs)
	}
	// Two coplanar 2D partials arise when both sub-shapes lie on the query
	// plane; the composite caller handles that case before joining.
	return nil, fmt.Errorf("join of %s and %s: %w", a.Kind(), b.Kind(), ErrUndefined)
}

// mergeSegments merges two collinear segments into one. The segments must
// overlap or share an endpoint; disjoint or skew segments are undefined.
func mergeSegments[T any](ar Arith[T], a, b *LineSegment[T]) (Geometry[T], error) {
	la := a.Line()
	if !la.IsCollinearSegment(ar, b) {
		return nil, fmt.Errorf("merge of non-collinear segments: %w", ErrUndefined)
	}
	a0 := zero(ar)
	a1 := one(ar)
	b0 := la.ParamOf(ar, b.P())
	b1 := la.ParamOf(ar, b.Q(ar))
	if ar.Cmp(b0, b1) > 0 {
		b0, b1 = b1, b0
	}
	if ar.Cmp(b0, a1) > 0 || ar.Cmp(a0, b1) > 0 {
		return nil, fmt.Errorf("merge of disjoint segments: %w", ErrUndefined)
	}
	lo := minT(ar, a0, b0)
	hi := maxT(ar, a1, b1)
	s, err := NewLineSegment(ar, la.PointAt(ar, lo), la.PointAt(ar, hi))
	if err != nil {
		return nil, err
	}
	return s, nil
}
