package geometry

import "fmt"

// Triangle is three non-collinear points owning the plane they span.
type Triangle[T any] struct {
	p, q, r *Point[T]
	pl      *Plane[T]

	env *Envelope[T] // lazy, dropped on Translate
}

// NewTriangle returns the triangle pqr. Collinear points cannot span a plane
// and yield ErrDegenerate.
func NewTriangle[T any](ar Arith[T], p, q, r *Point[T]) (*Triangle[T], error) {
	pl, err := NewPlane(ar, p, q, r)
	if err != nil {
		return nil, fmt.Errorf("triangle: %w", err)
	}
	return &Triangle[T]{p: p.Clone(), q: q.Clone(), r: r.Clone(), pl: pl}, nil
}

// P returns the first vertex.
func (t *Triangle[T]) P() *Point[T] { return t.p }

// Q returns the second vertex.
func (t *Triangle[T]) Q() *Point[T] { return t.q }

// R returns the third vertex.
func (t *Triangle[T]) R() *Point[T] { return t.r }

// Points returns the three vertices.
func (t *Triangle[T]) Points() [3]*Point[T] {
	return [3]*Point[T]{t.p, t.q, t.r}
}

// Plane returns the supporting plane, with normal (q-p) x (r-p).
func (t *Triangle[T]) Plane() *Plane[T] { return t.pl }

// Edges returns the segments pq, qr and rp.
func (t *Triangle[T]) Edges(ar Arith[T]) [3]*LineSegment[T] {
	pq, _ := NewLineSegment(ar, t.p, t.q)
	qr, _ := NewLineSegment(ar, t.q, t.r)
	rp, _ := NewLineSegment(ar, t.r, t.p)
	return [3]*LineSegment[T]{pq, qr, rp}
}

// Area is half the magnitude of the edge cross product, computed to the
// strategy's precision contract.
func (t *Triangle[T]) Area(ar Arith[T]) T {
	c := t.q.Sub(ar, t.p).Cross(ar, t.r.Sub(ar, t.p))
	return ar.Div(ar.Sqrt(c.MagnitudeSquared(ar)), two(ar))
}

// Centroid returns the vertex average.
func (t *Triangle[T]) Centroid(ar Arith[T]) *Point[T] {
	third := ar.Div(one(ar), ar.FromInt(3))
	sum := t.p.Position(ar).Add(ar, t.q.Position(ar)).Add(ar, t.r.Position(ar))
	return NewPointFromVector(ar, sum.Scale(ar, third))
}

// edgeSide is the signed side of pt relative to the edge a->b within the
// triangle's plane: linear in pt, zero on the edge's supporting line.
func (t *Triangle[T]) edgeSide(ar Arith[T], a, b, pt *Point[T]) T {
	e := b.Sub(ar, a)
	return e.Cross(ar, pt.Sub(ar, a)).Dot(ar, t.pl.Normal())
}

// Contains reports whether pt lies on the triangle (interior or boundary)
// within tolerance.
func (t *Triangle[T]) Contains(ar Arith[T], pt *Point[T]) bool {
	if !t.pl.IsOnPlane(ar, pt) {
		return false
	}
	s0 := ar.Sign(t.edgeSide(ar, t.p, t.q, pt))
	s1 := ar.Sign(t.edgeSide(ar, t.q, t.r, pt))
	s2 := ar.Sign(t.edgeSide(ar, t.r, t.p, pt))
	return s0 >= 0 && s1 >= 0 && s2 >= 0
}

// chord clips an in-plane line to the triangle: nil, a touching point, or
// the crossing segment. A collinear edge is returned whole.
func (t *Triangle[T]) chord(ar Arith[T], l *Line[T]) Geometry[T] {
	var pts []*Point[T]
	for _, e := range t.Edges(ar) {
		switch g := e.IntersectLine(ar, l).(type) {
		case *LineSegment[T]:
			return g
		case *Point[T]:
			pts = appendDistinct(ar, pts, g)
		}
	}
	switch len(pts) {
	case 0:
		return nil
	case 1:
		return pts[0]
	default:
		seg, err := NewLineSegment(ar, pts[0], pts[1])
		if err != nil {
			return pts[0]
		}
		return seg
	}
}

// IntersectLine returns nil, a point, or the chord where the line crosses
// the triangle.
func (t *Triangle[T]) IntersectLine(ar Arith[T], l *Line[T]) Geometry[T] {
	switch g := t.pl.IntersectLine(ar, l).(type) {
	case nil:
		return nil
	case *Point[T]:
		if t.Contains(ar, g) {
			return g
		}
		return nil
	case *Line[T]:
		return t.chord(ar, g)
	}
	return nil
}

// IntersectSegment restricts IntersectLine to the segment's span.
func (t *Triangle[T]) IntersectSegment(ar Arith[T], s *LineSegment[T]) Geometry[T] {
	switch g := t.IntersectLine(ar, s.Line()).(type) {
	case nil:
		return nil
	case *Point[T]:
		if s.IsAligned(ar, g) {
			return g
		}
		return nil
	case *LineSegment[T]:
		return g.IntersectSegment(ar, s)
	}
	return nil
}

// IntersectPlane returns the triangle itself when coplanar with the plane,
// nil when parallel off it, and otherwise the chord on the planes'
// intersection line.
func (t *Triangle[T]) IntersectPlane(ar Arith[T], o *Plane[T]) Geometry[T] {
	if t.pl.EqualsIgnoreOrientation(ar, o) {
		return t
	}
	if t.pl.IsParallelToPlane(ar, o) {
		return nil
	}
	ln, ok := t.pl.IntersectPlane(ar, o).(*Line[T])
	if !ok {
		return nil
	}
	return t.chord(ar, ln)
}

// IntersectTriangle intersects two triangles. Coplanar pairs are clipped
// within the shared plane; otherwise both triangles' chords on the planes'
// intersection line are overlapped into the minimum-dimension result.
func (t *Triangle[T]) IntersectTriangle(ar Arith[T], o *Triangle[T]) (Geometry[T], error) {
	if t.pl.EqualsIgnoreOrientation(ar, o.pl) {
		return t.clipCoplanar(ar, o)
	}
	if t.pl.IsParallelToPlane(ar, o.pl) {
		return nil, nil
	}
	ln, ok := t.pl.IntersectPlane(ar, o.pl).(*Line[T])
	if !ok {
		return nil, nil
	}
	c1 := t.chord(ar, ln)
	c2 := o.chord(ar, ln)
	if c1 == nil || c2 == nil {
		return nil, nil
	}
	return overlapOnLine(ar, ln, c1, c2), nil
}

// clipCoplanar clips this triangle by the other's three edge half-planes
// (Sutherland-Hodgman within the shared plane).
func (t *Triangle[T]) clipCoplanar(ar Arith[T], o *Triangle[T]) (Geometry[T], error) {
	subject := []*Point[T]{t.p, t.q, t.r}
	clips := [3][2]*Point[T]{{o.p, o.q}, {o.q, o.r}, {o.r, o.p}}
	opposite := [3]*Point[T]{o.r, o.p, o.q}

	for i, c := range clips {
		// Interior is the side the opposite vertex is on.
		ref := ar.Sign(o.edgeSide(ar, c[0], c[1], opposite[i]))
		inside := func(pt *Point[T]) (int, T) {
			v := o.edgeSide(ar, c[0], c[1], pt)
			s := ar.Sign(v)
			if ref < 0 {
				s, v = -s, ar.Neg(v)
			}
			return s, v
		}
		var out []*Point[T]
		for j, cur := range subject {
			prev := subject[(j+len(subject)-1)%len(subject)]
			curS, curV := inside(cur)
			prevS, prevV := inside(prev)
			cross := func() *Point[T] {
				// Linear interpolation at the zero of the side value.
				f := ar.Div(prevV, ar.Sub(prevV, curV))
				d := cur.Sub(ar, prev).Scale(ar, f)
				return NewPointFromVector(ar, prev.Position(ar).Add(ar, d))
			}
			switch {
			case curS >= 0 && prevS >= 0:
				out = append(out, cur)
			case curS >= 0:
				out = append(out, cross(), cur)
			case prevS > 0:
				out = append(out, cross())
			}
		}
		subject = out
		if len(subject) == 0 {
			return nil, nil
		}
	}
	return coplanarPointsToGeometry(ar, subject)
}

// DistanceSquaredToPoint is the squared distance to the closest point of the
// triangle: the perpendicular foot when it projects inside, otherwise the
// nearest edge.
func (t *Triangle[T]) DistanceSquaredToPoint(ar Arith[T], pt *Point[T]) T {
	n := t.pl.Normal()
	f := ar.Div(n.Dot(ar, pt.Sub(ar, t.p)), n.MagnitudeSquared(ar))
	foot := NewPointFromVector(ar, pt.Position(ar).Sub(ar, n.Scale(ar, f)))
	if t.Contains(ar, foot) {
		return t.pl.DistanceSquaredToPoint(ar, pt)
	}
	edges := t.Edges(ar)
	d := edges[0].DistanceSquaredToPoint(ar, pt)
	for _, e := range edges[1:] {
		d = minT(ar, d, e.DistanceSquaredToPoint(ar, pt))
	}
	return d
}

// DistanceSquaredToPlane is zero when they meet, else the closest corner.
func (t *Triangle[T]) DistanceSquaredToPlane(ar Arith[T], o *Plane[T]) T {
	if t.IntersectPlane(ar, o) != nil {
		return zero(ar)
	}
	d := o.DistanceSquaredToPoint(ar, t.p)
	d = minT(ar, d, o.DistanceSquaredToPoint(ar, t.q))
	return minT(ar, d, o.DistanceSquaredToPoint(ar, t.r))
}

// DistanceSquaredToLine is zero when the line crosses the triangle, else the
// closest edge.
func (t *Triangle[T]) DistanceSquaredToLine(ar Arith[T], l *Line[T]) T {
	if t.IntersectLine(ar, l) != nil {
		return zero(ar)
	}
	edges := t.Edges(ar)
	d := edges[0].DistanceSquaredToLine(ar, l)
	for _, e := range edges[1:] {
		d = minT(ar, d, e.DistanceSquaredToLine(ar, l))
	}
	return d
}

// Equals reports whether the vertex sets coincide within tolerance,
// regardless of order.
func (t *Triangle[T]) Equals(ar Arith[T], o *Triangle[T]) bool {
	used := [3]bool{}
	for _, v := range t.Points() {
		matched := false
		for i, w := range o.Points() {
			if !used[i] && v.Equals(ar, w) {
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

// Translate shifts the triangle by v and drops cached state.
func (t *Triangle[T]) Translate(ar Arith[T], v Vector[T]) {
	t.p.Translate(ar, v)
	t.q.Translate(ar, v)
	t.r.Translate(ar, v)
	t.pl.Translate(ar, v)
	t.env = nil
}

// Rotate returns a new triangle built from the rotated vertices.
func (t *Triangle[T]) Rotate(ar Arith[T], axis *Line[T], theta T) (*Triangle[T], error) {
	if isZeroAngle(ar, theta) {
		c, err := NewTriangle(ar, t.p, t.q, t.r)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return NewTriangle(ar,
		t.p.Rotate(ar, axis, theta),
		t.q.Rotate(ar, axis, theta),
		t.r.Rotate(ar, axis, theta),
	)
}

func (t *Triangle[T]) Kind() Kind { return KindTriangle }
func (t *Triangle[T]) Dim() int   { return 2 }

// Envelope returns the cached bounding box, computing it on first access.
func (t *Triangle[T]) Envelope(ar Arith[T]) *Envelope[T] {
	if t.env == nil {
		t.env = NewEnvelope(ar, t.p, t.q, t.r)
	}
	return t.env
}

// appendDistinct appends pt unless an equal point is already present.
func appendDistinct[T any](ar Arith[T], pts []*Point[T], pt *Point[T]) []*Point[T] {
	for _, p := range pts {
		if p.Equals(ar, pt) {
			return pts
		}
	}
	return append(pts, pt)
}

// overlapOnLine intersects two collinear partial results (points or
// segments) as parameter intervals on their shared line.
func overlapOnLine[T any](ar Arith[T], ln *Line[T], a, b Geometry[T]) Geometry[T] {
	a0, a1, ok := paramInterval(ar, ln, a)
	if !ok {
		return nil
	}
	b0, b1, ok := paramInterval(ar, ln, b)
	if !ok {
		return nil
	}
	lo := maxT(ar, a0, b0)
	hi := minT(ar, a1, b1)
	switch ar.Cmp(lo, hi) {
	case 1:
		return nil
	case 0:
		return ln.PointAt(ar, lo)
	}
	seg, err := NewLineSegment(ar, ln.PointAt(ar, lo), ln.PointAt(ar, hi))
	if err != nil {
		return ln.PointAt(ar, lo)
	}
	return seg
}

// paramInterval maps a point or segment onto its parameter span along ln.
func paramInterval[T any](ar Arith[T], ln *Line[T], g Geometry[T]) (lo, hi T, ok bool) {
	switch s := g.(type) {
	case *Point[T]:
		t := ln.ParamOf(ar, s)
		return t, t, true
	case *LineSegment[T]:
		t0 := ln.ParamOf(ar, s.P())
		t1 := ln.ParamOf(ar, s.Q(ar))
		if ar.Cmp(t0, t1) > 0 {
			t0, t1 = t1, t0
		}
		return t0, t1, true
	}
	return lo, hi, false
}

// coplanarPointsToGeometry reduces a coplanar point list to the minimal
// geometry consistent with it: nil, point, segment, triangle or convex hull.
func coplanarPointsToGeometry[T any](ar Arith[T], pts []*Point[T]) (Geometry[T], error) {
	var distinct []*Point[T]
	for _, p := range pts {
		distinct = appendDistinct(ar, distinct, p)
	}
	switch len(distinct) {
	case 0:
		return nil, nil
	case 1:
		return distinct[0], nil
	case 2:
		s, err := NewLineSegment(ar, distinct[0], distinct[1])
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	if Collinear(ar, distinct...) {
		return extremeSegment(ar, distinct)
	}
	if len(distinct) == 3 {
		tr, err := NewTriangle(ar, distinct[0], distinct[1], distinct[2])
		if err != nil {
			return nil, err
		}
		return tr, nil
	}
	h, err := NewConvexHull(ar, distinct...)
	if err != nil {
		return nil, err
	}
	return h, nil
}

// extremeSegment spans the two extreme points of a collinear set.
func extremeSegment[T any](ar Arith[T], pts []*Point[T]) (Geometry[T], error) {
	ln, err := NewLine(ar, pts[0], pts[1])
	if err != nil {
		return nil, err
	}
	lo := ln.ParamOf(ar, pts[0])
	hi := lo
	for _, p := range pts[1:] {
		t := ln.ParamOf(ar, p)
		lo = minT(ar, lo, t)
		hi = maxT(ar, hi, t)
	}
	s, err := NewLineSegment(ar, ln.PointAt(ar, lo), ln.PointAt(ar, hi))
	if err != nil {
		return nil, err
	}
	return s, nil
}
