package geometry

import "fmt"

// PlaneEquation holds the coefficients of a*x + b*y + c*z + d = 0.
type PlaneEquation[T any] struct {
	A, B, C, D T
}

// Plane is the infinite plane through p with nonzero normal n. The normal's
// direction is fixed at construction; equality can be orientation-sensitive
// (Equals) or orientation-ignoring (EqualsIgnoreOrientation).
type Plane[T any] struct {
	p *Point[T]
	n Vector[T]

	// eq memoizes the plane equation; population is idempotent and it is
	// reset by Translate.
	eq *PlaneEquation[T]
}

// NewPlane returns the plane through three non-collinear points, with normal
// (q-p) x (r-p).
func NewPlane[T any](ar Arith[T], p, q, r *Point[T]) (*Plane[T], error) {
	n := q.Sub(ar, p).Cross(ar, r.Sub(ar, p))
	if n.IsZero(ar) {
		return nil, fmt.Errorf("plane through collinear points: %w", ErrDegenerate)
	}
	return &Plane[T]{p: p.Clone(), n: n}, nil
}

// NewPlaneFromNormal returns the plane through p with the given normal.
func NewPlaneFromNormal[T any](ar Arith[T], p *Point[T], n Vector[T]) (*Plane[T], error) {
	if n.IsZero(ar) {
		return nil, fmt.Errorf("plane with zero normal: %w", ErrDegenerate)
	}
	return &Plane[T]{p: p.Clone(), n: n}, nil
}

// NewPlaneOriented is NewPlane with the normal flipped, if needed, to point
// toward the reference point. The reference must not lie on the plane.
func NewPlaneOriented[T any](ar Arith[T], p, q, r, toward *Point[T]) (*Plane[T], error) {
	pl, err := NewPlane(ar, p, q, r)
	if err != nil {
		return nil, err
	}
	switch pl.Side(ar, toward) {
	case 0:
		return nil, fmt.Errorf("orientation reference lies on the plane: %w", ErrDegenerate)
	case -1:
		pl.n = pl.n.Neg(ar)
		pl.eq = nil
	}
	return pl, nil
}

// P returns the plane's base point.
func (pl *Plane[T]) P() *Point[T] { return pl.p }

// Normal returns the normal vector.
func (pl *Plane[T]) Normal() Vector[T] { return pl.n }

// Equation returns the cached plane equation coefficients, computing them on
// first access.
func (pl *Plane[T]) Equation(ar Arith[T]) PlaneEquation[T] {
	if pl.eq == nil {
		pos := pl.p.Position(ar)
		pl.eq = &PlaneEquation[T]{
			A: pl.n.DX,
			B: pl.n.DY,
			C: pl.n.DZ,
			D: ar.Neg(pl.n.Dot(ar, pos)),
		}
	}
	return *pl.eq
}

// value evaluates the plane equation at pt: positive on the normal's side.
func (pl *Plane[T]) value(ar Arith[T], pt *Point[T]) T {
	eq := pl.Equation(ar)
	pos := pt.Position(ar)
	return ar.Add(
		ar.Add(ar.Mul(eq.A, pos.DX), ar.Mul(eq.B, pos.DY)),
		ar.Add(ar.Mul(eq.C, pos.DZ), eq.D),
	)
}

// IsOnPlane reports whether pt satisfies the plane equation within tolerance.
func (pl *Plane[T]) IsOnPlane(ar Arith[T], pt *Point[T]) bool {
	return ar.IsZero(pl.value(ar, pt))
}

// Side returns 1 on the normal's side, -1 opposite, 0 on the plane.
func (pl *Plane[T]) Side(ar Arith[T], pt *Point[T]) int {
	return ar.Sign(pl.value(ar, pt))
}

// SameSide reports whether a and b are strictly on the same side.
func (pl *Plane[T]) SameSide(ar Arith[T], a, b *Point[T]) bool {
	sa := pl.Side(ar, a)
	return sa != 0 && sa == pl.Side(ar, b)
}

// IsParallelToPlane reports whether the normals are scalar multiples.
func (pl *Plane[T]) IsParallelToPlane(ar Arith[T], o *Plane[T]) bool {
	return pl.n.IsScalarMultiple(ar, o.n)
}

// IsParallelToLine reports whether the line's direction is perpendicular to
// the normal.
func (pl *Plane[T]) IsParallelToLine(ar Arith[T], l *Line[T]) bool {
	return ar.IsZero(pl.n.Dot(ar, l.Direction()))
}

// EqualsIgnoreOrientation reports whether the planes describe the same point
// set.
func (pl *Plane[T]) EqualsIgnoreOrientation(ar Arith[T], o *Plane[T]) bool {
	return pl.IsParallelToPlane(ar, o) && pl.IsOnPlane(ar, o.p)
}

// Equals additionally requires the normals to point the same way.
func (pl *Plane[T]) Equals(ar Arith[T], o *Plane[T]) bool {
	return pl.EqualsIgnoreOrientation(ar, o) && ar.Sign(pl.n.Dot(ar, o.n)) > 0
}

// IntersectLine returns the line itself when it lies on the plane, a single
// point when it crosses, and nil when parallel off the plane.
//
// An endpoint already on the plane is returned directly, skipping the
// parameter solve: the division there amplifies error when the denominator
// is small.
func (pl *Plane[T]) IntersectLine(ar Arith[T], l *Line[T]) Geometry[T] {
	den := pl.n.Dot(ar, l.Direction())
	if ar.IsZero(den) {
		if pl.IsOnPlane(ar, l.P()) && pl.IsOnPlane(ar, l.Q(ar)) {
			return l
		}
		return nil
	}
	if pl.IsOnPlane(ar, l.P()) {
		return l.P()
	}
	if q := l.Q(ar); pl.IsOnPlane(ar, q) {
		return q
	}
	t := ar.Neg(ar.Div(pl.value(ar, l.P()), den))
	return l.PointAt(ar, t)
}

// IntersectSegment restricts IntersectLine to the segment's span.
func (pl *Plane[T]) IntersectSegment(ar Arith[T], s *LineSegment[T]) Geometry[T] {
	switch r := pl.IntersectLine(ar, s.Line()).(type) {
	case nil:
		return nil
	case *Line[T]:
		return s
	case *Point[T]:
		if s.IsAligned(ar, r) {
			return r
		}
	}
	return nil
}

// IntersectPlane returns the plane itself when the planes coincide, nil when
// parallel and distinct, and otherwise the intersection line: its direction
// is n1 x n2 and its point is found by walking from pl's base point inside pl
// toward the other plane.
func (pl *Plane[T]) IntersectPlane(ar Arith[T], o *Plane[T]) Geometry[T] {
	v := pl.n.Cross(ar, o.n)
	if v.IsZero(ar) {
		if o.IsOnPlane(ar, pl.p) {
			return pl
		}
		return nil
	}
	// n x v lies in pl and is transversal to o. The projection line cannot
	// be parallel to o once v is nonzero, but guard the cast defensively.
	d := pl.n.Cross(ar, v)
	walk, err := NewLineFromDirection(ar, pl.p, d)
	if err != nil {
		return nil
	}
	pt, ok := o.IntersectLine(ar, walk).(*Point[T])
	if !ok {
		return nil
	}
	res, err := NewLineFromDirection(ar, pt, v)
	if err != nil {
		return nil
	}
	return res
}

// DistanceSquaredToPoint divides the squared projection onto the normal by
// the squared normal length, avoiding unit-vector normalization.
func (pl *Plane[T]) DistanceSquaredToPoint(ar Arith[T], pt *Point[T]) T {
	d := pl.n.Dot(ar, pt.Sub(ar, pl.p))
	return ar.Div(ar.Mul(d, d), pl.n.MagnitudeSquared(ar))
}

// DistanceToPoint is computed to the strategy's precision contract.
func (pl *Plane[T]) DistanceToPoint(ar Arith[T], pt *Point[T]) T {
	return ar.Sqrt(pl.DistanceSquaredToPoint(ar, pt))
}

// DistanceSquaredToPlane is zero unless the planes are parallel, in which
// case it is the point-to-plane distance from one base point to the other
// plane.
func (pl *Plane[T]) DistanceSquaredToPlane(ar Arith[T], o *Plane[T]) T {
	if !pl.IsParallelToPlane(ar, o) {
		return zero(ar)
	}
	return pl.DistanceSquaredToPoint(ar, o.p)
}

// Translate shifts the plane by v and drops the cached equation.
func (pl *Plane[T]) Translate(ar Arith[T], v Vector[T]) {
	pl.p.Translate(ar, v)
	pl.eq = nil
}

// Rotate returns a new plane rotated by theta about the axis.
func (pl *Plane[T]) Rotate(ar Arith[T], axis *Line[T], theta T) (*Plane[T], error) {
	if isZeroAngle(ar, theta) {
		return pl.Clone(), nil
	}
	p := pl.p.Rotate(ar, axis, theta)
	// Rotate the normal by rotating the point p + n and re-deriving.
	tip := NewPointFromVector(ar, pl.p.Position(ar).Add(ar, pl.n)).Rotate(ar, axis, theta)
	return NewPlaneFromNormal(ar, p, tip.Sub(ar, p))
}

// Clone returns an independent copy without the memoized equation.
func (pl *Plane[T]) Clone() *Plane[T] {
	return &Plane[T]{p: pl.p.Clone(), n: pl.n}
}

func (pl *Plane[T]) Kind() Kind { return KindPlane }
func (pl *Plane[T]) Dim() int   { return 2 }

// Envelope returns nil: an infinite plane has no finite bounding box.
func (pl *Plane[T]) Envelope(ar Arith[T]) *Envelope[T] { return nil }

// PointBetweenPlanes reports whether pt lies in the closed slab bounded by
// two parallel planes. Planes that are not parallel do not bound a slab.
func PointBetweenPlanes[T any](ar Arith[T], a, b *Plane[T], pt *Point[T]) (bool, error) {
	if !a.IsParallelToPlane(ar, b) {
		return false, fmt.Errorf("between-planes on non-parallel planes: %w", ErrUndefined)
	}
	sa := a.Side(ar, pt)
	sb := b.Side(ar, pt)
	if sa == 0 || sb == 0 {
		return true, nil
	}
	// Strictly inside iff pt sits on b's side of a and on a's side of b.
	return sa == a.Side(ar, b.p) && sb == b.Side(ar, a.p), nil
}
