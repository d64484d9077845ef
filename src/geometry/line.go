package geometry

import "fmt"

// Line is the infinite line through p with nonzero direction v. Equality is
// direction-independent: the lines (p, q) and (q, p) are the same line.
type Line[T any] struct {
	p *Point[T]
	v Vector[T]
}

// NewLine returns the line through two distinct points.
func NewLine[T any](ar Arith[T], p, q *Point[T]) (*Line[T], error) {
	v := q.Sub(ar, p)
	if v.IsZero(ar) {
		return nil, fmt.Errorf("line through coincident points %s: %w", p.Format(ar), ErrDegenerate)
	}
	return &Line[T]{p: p.Clone(), v: v}, nil
}

// NewLineFromDirection returns the line through p with direction v.
func NewLineFromDirection[T any](ar Arith[T], p *Point[T], v Vector[T]) (*Line[T], error) {
	if v.IsZero(ar) {
		return nil, fmt.Errorf("line with zero direction: %w", ErrDegenerate)
	}
	return &Line[T]{p: p.Clone(), v: v}, nil
}

// P returns the line's base point.
func (l *Line[T]) P() *Point[T] { return l.p }

// Q returns the second defining point p + v.
func (l *Line[T]) Q(ar Arith[T]) *Point[T] {
	return NewPointOffset(l.p.Offset(), l.p.Rel().Add(ar, l.v))
}

// Direction returns the direction vector.
func (l *Line[T]) Direction() Vector[T] { return l.v }

// PointAt returns the point p + t*v.
func (l *Line[T]) PointAt(ar Arith[T], t T) *Point[T] {
	return NewPointOffset(l.p.Offset(), l.p.Rel().Add(ar, l.v.Scale(ar, t)))
}

// ParamOf returns the parameter t of the projection of pt onto the line, so
// that PointAt(t) is the closest point of the line to pt.
func (l *Line[T]) ParamOf(ar Arith[T], pt *Point[T]) T {
	w := pt.Sub(ar, l.p)
	return ar.Div(w.Dot(ar, l.v), l.v.MagnitudeSquared(ar))
}

// IsOnLine reports whether pt lies on the line within tolerance.
func (l *Line[T]) IsOnLine(ar Arith[T], pt *Point[T]) bool {
	return l.v.Cross(ar, pt.Sub(ar, l.p)).IsZero(ar)
}

// IsParallelTo reports whether the directions are scalar multiples.
func (l *Line[T]) IsParallelTo(ar Arith[T], o *Line[T]) bool {
	return l.v.IsScalarMultiple(ar, o.v)
}

// IsCollinearSegment reports whether both endpoints of s lie on the line.
func (l *Line[T]) IsCollinearSegment(ar Arith[T], s *LineSegment[T]) bool {
	return l.IsOnLine(ar, s.P()) && l.IsOnLine(ar, s.Q(ar))
}

// Equals reports whether the two lines describe the same point set.
func (l *Line[T]) Equals(ar Arith[T], o *Line[T]) bool {
	return l.IsParallelTo(ar, o) && l.IsOnLine(ar, o.p)
}

// IntersectLine returns the intersection with another line: the line itself
// when they coincide, a point when they cross, nil when parallel or skew.
func (l *Line[T]) IntersectLine(ar Arith[T], o *Line[T]) Geometry[T] {
	n := l.v.Cross(ar, o.v)
	if n.IsZero(ar) {
		if l.IsOnLine(ar, o.p) {
			return l
		}
		return nil
	}
	w := o.p.Sub(ar, l.p)
	if ar.Sign(w.Dot(ar, n)) != 0 {
		return nil // skew
	}
	t := ar.Div(w.Cross(ar, o.v).Dot(ar, n), n.MagnitudeSquared(ar))
	return l.PointAt(ar, t)
}

// DistanceSquaredToPoint returns the squared perpendicular distance,
// |v x (pt-p)|^2 / |v|^2.
func (l *Line[T]) DistanceSquaredToPoint(ar Arith[T], pt *Point[T]) T {
	c := l.v.Cross(ar, pt.Sub(ar, l.p))
	return ar.Div(c.MagnitudeSquared(ar), l.v.MagnitudeSquared(ar))
}

// DistanceToPoint is computed to the strategy's precision contract.
func (l *Line[T]) DistanceToPoint(ar Arith[T], pt *Point[T]) T {
	return ar.Sqrt(l.DistanceSquaredToPoint(ar, pt))
}

// DistanceSquaredToLine returns the squared distance between two lines: zero
// when they cross, the perpendicular gap otherwise.
func (l *Line[T]) DistanceSquaredToLine(ar Arith[T], o *Line[T]) T {
	n := l.v.Cross(ar, o.v)
	if n.IsZero(ar) {
		return l.DistanceSquaredToPoint(ar, o.p)
	}
	d := o.p.Sub(ar, l.p).Dot(ar, n)
	return ar.Div(ar.Mul(d, d), n.MagnitudeSquared(ar))
}

// Translate shifts the line by v.
func (l *Line[T]) Translate(ar Arith[T], v Vector[T]) {
	l.p.Translate(ar, v)
}

// Rotate returns a new line rotated by theta about the axis.
func (l *Line[T]) Rotate(ar Arith[T], axis *Line[T], theta T) (*Line[T], error) {
	if isZeroAngle(ar, theta) {
		return l.Clone(), nil
	}
	return NewLine(ar, l.p.Rotate(ar, axis, theta), l.Q(ar).Rotate(ar, axis, theta))
}

// Clone returns an independent copy.
func (l *Line[T]) Clone() *Line[T] {
	return &Line[T]{p: l.p.Clone(), v: l.v}
}

func (l *Line[T]) Kind() Kind { return KindLine }
func (l *Line[T]) Dim() int   { return 1 }

// Envelope returns nil: an infinite line has no finite bounding box.
func (l *Line[T]) Envelope(ar Arith[T]) *Envelope[T] { return nil }

// LineSegment is the bounded part of a line between its base point p and
// q = p + v, endpoints inclusive.
type LineSegment[T any] struct {
	line *Line[T]
}

// NewLineSegment returns the segment between two distinct points.
func NewLineSegment[T any](ar Arith[T], p, q *Point[T]) (*LineSegment[T], error) {
	l, err := NewLine(ar, p, q)
	if err != nil {
		return nil, err
	}
	return &LineSegment[T]{line: l}, nil
}

// Line returns the supporting infinite line.
func (s *LineSegment[T]) Line() *Line[T] { return s.line }

// P returns the first endpoint.
func (s *LineSegment[T]) P() *Point[T] { return s.line.p }

// Q returns the second endpoint.
func (s *LineSegment[T]) Q(ar Arith[T]) *Point[T] { return s.line.Q(ar) }

// LengthSquared returns the squared length.
func (s *LineSegment[T]) LengthSquared(ar Arith[T]) T {
	return s.line.v.MagnitudeSquared(ar)
}

// Length is computed to the strategy's precision contract.
func (s *LineSegment[T]) Length(ar Arith[T]) T {
	return ar.Sqrt(s.LengthSquared(ar))
}

// Midpoint returns the segment's midpoint.
func (s *LineSegment[T]) Midpoint(ar Arith[T]) *Point[T] {
	return s.line.PointAt(ar, ar.Div(one(ar), two(ar)))
}

// IsAligned reports whether pt lies on the infinite line and within the
// bounding span of the endpoints, within tolerance.
func (s *LineSegment[T]) IsAligned(ar Arith[T], pt *Point[T]) bool {
	if !s.line.IsOnLine(ar, pt) {
		return false
	}
	t := s.line.ParamOf(ar, pt)
	return ar.Cmp(t, zero(ar)) >= 0 && ar.Cmp(t, one(ar)) <= 0
}

// Equals reports whether the endpoints coincide in either order.
func (s *LineSegment[T]) Equals(ar Arith[T], o *LineSegment[T]) bool {
	sp, sq := s.P(), s.Q(ar)
	op, oq := o.P(), o.Q(ar)
	return (sp.Equals(ar, op) && sq.Equals(ar, oq)) ||
		(sp.Equals(ar, oq) && sq.Equals(ar, op))
}

// IntersectLine returns the part of the segment meeting the infinite line:
// the whole segment when collinear, a point, or nil.
func (s *LineSegment[T]) IntersectLine(ar Arith[T], l *Line[T]) Geometry[T] {
	g := l.IntersectLine(ar, s.line)
	switch r := g.(type) {
	case nil:
		return nil
	case *Line[T]:
		return s
	case *Point[T]:
		if s.IsAligned(ar, r) {
			return r
		}
		return nil
	}
	return nil
}

// IntersectSegment returns nil, a point, or the overlapping sub-segment.
func (s *LineSegment[T]) IntersectSegment(ar Arith[T], o *LineSegment[T]) Geometry[T] {
	g := s.line.IntersectLine(ar, o.line)
	switch r := g.(type) {
	case nil:
		return nil
	case *Point[T]:
		if s.IsAligned(ar, r) && o.IsAligned(ar, r) {
			return r
		}
		return nil
	case *Line[T]:
		return s.overlap(ar, o)
	}
	return nil
}

// overlap intersects the parameter intervals of two collinear segments.
func (s *LineSegment[T]) overlap(ar Arith[T], o *LineSegment[T]) Geometry[T] {
	b0 := s.line.ParamOf(ar, o.P())
	b1 := s.line.ParamOf(ar, o.Q(ar))
	if ar.Cmp(b0, b1) > 0 {
		b0, b1 = b1, b0
	}
	lo := maxT(ar, zero(ar), b0)
	hi := minT(ar, one(ar), b1)
	switch ar.Cmp(lo, hi) {
	case 1:
		return nil
	case 0:
		return s.line.PointAt(ar, lo)
	}
	seg, err := NewLineSegment(ar, s.line.PointAt(ar, lo), s.line.PointAt(ar, hi))
	if err != nil {
		// lo < hi within tolerance; the endpoints cannot coincide.
		return s.line.PointAt(ar, lo)
	}
	return seg
}

// DistanceSquaredToPoint clamps the projection parameter into the span.
func (s *LineSegment[T]) DistanceSquaredToPoint(ar Arith[T], pt *Point[T]) T {
	t := clampT(ar, s.line.ParamOf(ar, pt), zero(ar), one(ar))
	return s.line.PointAt(ar, t).DistanceSquaredTo(ar, pt)
}

// DistanceSquaredToLine returns the squared distance between the segment and
// an infinite line.
func (s *LineSegment[T]) DistanceSquaredToLine(ar Arith[T], l *Line[T]) T {
	n := s.line.v.Cross(ar, l.v)
	if n.IsZero(ar) {
		return l.DistanceSquaredToPoint(ar, s.P())
	}
	// Closest-approach parameter along the segment's line, clamped into the
	// span; the squared distance is convex in the parameter.
	w := l.p.Sub(ar, s.line.p)
	vv := s.line.v.MagnitudeSquared(ar)
	uu := l.v.MagnitudeSquared(ar)
	uv := s.line.v.Dot(ar, l.v)
	den := ar.Sub(ar.Mul(vv, uu), ar.Mul(uv, uv))
	if ar.IsZero(den) {
		return l.DistanceSquaredToPoint(ar, s.P())
	}
	t := ar.Div(
		ar.Sub(ar.Mul(w.Dot(ar, s.line.v), uu), ar.Mul(w.Dot(ar, l.v), uv)),
		den,
	)
	t = clampT(ar, t, zero(ar), one(ar))
	return l.DistanceSquaredToPoint(ar, s.line.PointAt(ar, t))
}

// DistanceSquaredToSegment returns the squared distance between two segments:
// the closest endpoint-to-segment gap, or the interior closest approach of
// the supporting lines when it falls within both spans.
func (s *LineSegment[T]) DistanceSquaredToSegment(ar Arith[T], o *LineSegment[T]) T {
	if s.IntersectSegment(ar, o) != nil {
		return zero(ar)
	}
	d := s.DistanceSquaredToPoint(ar, o.P())
	d = minT(ar, d, s.DistanceSquaredToPoint(ar, o.Q(ar)))
	d = minT(ar, d, o.DistanceSquaredToPoint(ar, s.P()))
	d = minT(ar, d, o.DistanceSquaredToPoint(ar, s.Q(ar)))

	u := s.line.v
	v := o.line.v
	w := o.line.p.Sub(ar, s.line.p)
	uu := u.MagnitudeSquared(ar)
	vv := v.MagnitudeSquared(ar)
	uv := u.Dot(ar, v)
	den := ar.Sub(ar.Mul(uu, vv), ar.Mul(uv, uv))
	if !ar.IsZero(den) {
		wu := w.Dot(ar, u)
		wv := w.Dot(ar, v)
		ts := ar.Div(ar.Sub(ar.Mul(wu, vv), ar.Mul(wv, uv)), den)
		to := ar.Div(ar.Sub(ar.Mul(wu, uv), ar.Mul(wv, uu)), den)
		inSpan := func(t T) bool {
			return ar.Cmp(t, zero(ar)) >= 0 && ar.Cmp(t, one(ar)) <= 0
		}
		if inSpan(ts) && inSpan(to) {
			d = minT(ar, d, s.line.PointAt(ar, ts).DistanceSquaredTo(ar, o.line.PointAt(ar, to)))
		}
	}
	return d
}

// DistanceSquaredToPlane is zero when the segment crosses the plane, else the
// smaller endpoint distance.
func (s *LineSegment[T]) DistanceSquaredToPlane(ar Arith[T], pl *Plane[T]) T {
	if pl.IntersectSegment(ar, s) != nil {
		return zero(ar)
	}
	return minT(ar,
		pl.DistanceSquaredToPoint(ar, s.P()),
		pl.DistanceSquaredToPoint(ar, s.Q(ar)),
	)
}

// Translate shifts the segment by v.
func (s *LineSegment[T]) Translate(ar Arith[T], v Vector[T]) {
	s.line.Translate(ar, v)
}

// Rotate returns a new segment rotated by theta about the axis.
func (s *LineSegment[T]) Rotate(ar Arith[T], axis *Line[T], theta T) (*LineSegment[T], error) {
	if isZeroAngle(ar, theta) {
		return s.Clone(), nil
	}
	return NewLineSegment(ar, s.P().Rotate(ar, axis, theta), s.Q(ar).Rotate(ar, axis, theta))
}

// Clone returns an independent copy.
func (s *LineSegment[T]) Clone() *LineSegment[T] {
	return &LineSegment[T]{line: s.line.Clone()}
}

func (s *LineSegment[T]) Kind() Kind { return KindLineSegment }
func (s *LineSegment[T]) Dim() int   { return 1 }

// Envelope returns the bounding box of the endpoints.
func (s *LineSegment[T]) Envelope(ar Arith[T]) *Envelope[T] {
	return NewEnvelope(ar, s.P(), s.Q(ar))
}
