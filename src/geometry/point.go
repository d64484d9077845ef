package geometry

import "fmt"

// Point is a position given as an offset translation frame plus a vector
// relative to that frame. Effective coordinates are offset + rel. Translating
// a point only touches the offset, so shapes sharing a frame translate in
// O(1) per component vector.
type Point[T any] struct {
	offset Vector[T]
	rel    Vector[T]
}

// NewPoint returns the point at (x, y, z) with a zero offset frame.
func NewPoint[T any](ar Arith[T], x, y, z T) *Point[T] {
	return &Point[T]{offset: ZeroVector(ar), rel: NewVector(x, y, z)}
}

// NewPointFromVector returns the point whose position is v, with a zero
// offset frame.
func NewPointFromVector[T any](ar Arith[T], v Vector[T]) *Point[T] {
	return &Point[T]{offset: ZeroVector(ar), rel: v}
}

// NewPointOffset returns the point at offset + rel.
func NewPointOffset[T any](offset, rel Vector[T]) *Point[T] {
	return &Point[T]{offset: offset, rel: rel}
}

// Position returns the effective coordinates offset + rel.
func (p *Point[T]) Position(ar Arith[T]) Vector[T] {
	return p.offset.Add(ar, p.rel)
}

// Offset returns the translation frame.
func (p *Point[T]) Offset() Vector[T] { return p.offset }

// Rel returns the position relative to the offset frame.
func (p *Point[T]) Rel() Vector[T] { return p.rel }

// X returns the effective x coordinate.
func (p *Point[T]) X(ar Arith[T]) T { return ar.Add(p.offset.DX, p.rel.DX) }

// Y returns the effective y coordinate.
func (p *Point[T]) Y(ar Arith[T]) T { return ar.Add(p.offset.DY, p.rel.DY) }

// Z returns the effective z coordinate.
func (p *Point[T]) Z(ar Arith[T]) T { return ar.Add(p.offset.DZ, p.rel.DZ) }

// Coordinate returns the effective coordinate along the given axis.
func (p *Point[T]) Coordinate(ar Arith[T], axis Axis) T {
	switch axis {
	case AxisX:
		return p.X(ar)
	case AxisY:
		return p.Y(ar)
	default:
		return p.Z(ar)
	}
}

// Translate shifts the point by v. Only the offset changes.
func (p *Point[T]) Translate(ar Arith[T], v Vector[T]) {
	p.offset = p.offset.Add(ar, v)
}

// SetOffset rebases the point onto a new translation frame, preserving the
// effective coordinates exactly.
func (p *Point[T]) SetOffset(ar Arith[T], offset Vector[T]) {
	p.rel = p.rel.Add(ar, p.offset.Sub(ar, offset))
	p.offset = offset
}

// Clone returns an independent copy.
func (p *Point[T]) Clone() *Point[T] {
	c := *p
	return &c
}

// Sub returns the vector from q to p.
func (p *Point[T]) Sub(ar Arith[T], q *Point[T]) Vector[T] {
	return p.Position(ar).Sub(ar, q.Position(ar))
}

// Equals reports whether the effective coordinates coincide within
// tolerance, regardless of how they split into offset and rel.
func (p *Point[T]) Equals(ar Arith[T], q *Point[T]) bool {
	return p.Position(ar).Equals(ar, q.Position(ar))
}

// DistanceSquaredTo returns the squared distance to q, avoiding the
// irrational square root.
func (p *Point[T]) DistanceSquaredTo(ar Arith[T], q *Point[T]) T {
	return p.Sub(ar, q).MagnitudeSquared(ar)
}

// DistanceTo is computed to the strategy's precision contract.
func (p *Point[T]) DistanceTo(ar Arith[T], q *Point[T]) T {
	return ar.Sqrt(p.DistanceSquaredTo(ar, q))
}

// Rotate returns a new point rotated by theta about the axis line. The
// original is unchanged.
func (p *Point[T]) Rotate(ar Arith[T], axis *Line[T], theta T) *Point[T] {
	return rotatePoint(ar, p, axis, theta)
}

func (p *Point[T]) Kind() Kind { return KindPoint }
func (p *Point[T]) Dim() int   { return 0 }

// Envelope returns the degenerate box containing only the point.
func (p *Point[T]) Envelope(ar Arith[T]) *Envelope[T] {
	return NewEnvelope(ar, p)
}

func (p *Point[T]) Format(ar Arith[T]) string {
	return fmt.Sprintf("(%s, %s, %s)", ar.Format(p.X(ar)), ar.Format(p.Y(ar)), ar.Format(p.Z(ar)))
}

// Coincident reports whether all given points are equal within tolerance.
func Coincident[T any](ar Arith[T], pts ...*Point[T]) bool {
	for i := 1; i < len(pts); i++ {
		if !pts[0].Equals(ar, pts[i]) {
			return false
		}
	}
	return true
}

// Collinear reports whether all given points lie on one line within
// tolerance. Fewer than three points are trivially collinear.
func Collinear[T any](ar Arith[T], pts ...*Point[T]) bool {
	if len(pts) < 3 {
		return true
	}
	// Use the first pair of distinct points as the reference direction.
	var dir Vector[T]
	base := pts[0]
	found := false
	for _, p := range pts[1:] {
		d := p.Sub(ar, base)
		if !d.IsZero(ar) {
			dir = d
			found = true
			break
		}
	}
	if !found {
		return true
	}
	for _, p := range pts[1:] {
		if !dir.IsScalarMultiple(ar, p.Sub(ar, base)) {
			return false
		}
	}
	return true
}

// Coplanar reports whether all given points lie on one plane within
// tolerance. Fewer than four points are trivially coplanar.
func Coplanar[T any](ar Arith[T], pts ...*Point[T]) bool {
	if len(pts) < 4 {
		return true
	}
	if Collinear(ar, pts...) {
		return true
	}
	// Build a normal from the first non-collinear triple, then require every
	// remaining point to have no component along it.
	var n Vector[T]
	base := pts[0]
	found := false
	for i := 1; i < len(pts)-1 && !found; i++ {
		u := pts[i].Sub(ar, base)
		if u.IsZero(ar) {
			continue
		}
		for j := i + 1; j < len(pts); j++ {
			c := u.Cross(ar, pts[j].Sub(ar, base))
			if !c.IsZero(ar) {
				n = c
				found = true
				break
			}
		}
	}
	if !found {
		return true
	}
	for _, p := range pts[1:] {
		if !ar.IsZero(n.Dot(ar, p.Sub(ar, base))) {
			return false
		}
	}
	return true
}
