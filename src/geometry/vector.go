package geometry

import "fmt"

// Vector is a directionless displacement (dx, dy, dz) in the strategy's
// numeric representation.
type Vector[T any] struct {
	DX, DY, DZ T
}

// NewVector returns the vector (dx, dy, dz).
func NewVector[T any](dx, dy, dz T) Vector[T] {
	return Vector[T]{DX: dx, DY: dy, DZ: dz}
}

// ZeroVector returns the all-zero vector. It carries no direction and is
// rejected wherever a direction is required.
func ZeroVector[T any](ar Arith[T]) Vector[T] {
	return Vector[T]{DX: zero(ar), DY: zero(ar), DZ: zero(ar)}
}

func (v Vector[T]) Add(ar Arith[T], w Vector[T]) Vector[T] {
	return Vector[T]{
		DX: ar.Add(v.DX, w.DX),
		DY: ar.Add(v.DY, w.DY),
		DZ: ar.Add(v.DZ, w.DZ),
	}
}

func (v Vector[T]) Sub(ar Arith[T], w Vector[T]) Vector[T] {
	return Vector[T]{
		DX: ar.Sub(v.DX, w.DX),
		DY: ar.Sub(v.DY, w.DY),
		DZ: ar.Sub(v.DZ, w.DZ),
	}
}

func (v Vector[T]) Scale(ar Arith[T], s T) Vector[T] {
	return Vector[T]{
		DX: ar.Mul(v.DX, s),
		DY: ar.Mul(v.DY, s),
		DZ: ar.Mul(v.DZ, s),
	}
}

// Neg reverses the vector.
func (v Vector[T]) Neg(ar Arith[T]) Vector[T] {
	return Vector[T]{DX: ar.Neg(v.DX), DY: ar.Neg(v.DY), DZ: ar.Neg(v.DZ)}
}

func (v Vector[T]) Dot(ar Arith[T], w Vector[T]) T {
	return ar.Add(
		ar.Add(ar.Mul(v.DX, w.DX), ar.Mul(v.DY, w.DY)),
		ar.Mul(v.DZ, w.DZ),
	)
}

func (v Vector[T]) Cross(ar Arith[T], w Vector[T]) Vector[T] {
	return Vector[T]{
		DX: ar.Sub(ar.Mul(v.DY, w.DZ), ar.Mul(v.DZ, w.DY)),
		DY: ar.Sub(ar.Mul(v.DZ, w.DX), ar.Mul(v.DX, w.DZ)),
		DZ: ar.Sub(ar.Mul(v.DX, w.DY), ar.Mul(v.DY, w.DX)),
	}
}

// MagnitudeSquared avoids the irrational square root; prefer it wherever the
// caller only compares lengths.
func (v Vector[T]) MagnitudeSquared(ar Arith[T]) T {
	return v.Dot(ar, v)
}

// Magnitude is computed to the strategy's precision contract.
func (v Vector[T]) Magnitude(ar Arith[T]) T {
	return ar.Sqrt(v.MagnitudeSquared(ar))
}

// Unit returns the unit vector with v's direction. The zero vector has no
// direction and yields ErrDegenerate.
func (v Vector[T]) Unit(ar Arith[T]) (Vector[T], error) {
	m := v.Magnitude(ar)
	if ar.IsZero(m) {
		return v, fmt.Errorf("unit of zero vector: %w", ErrDegenerate)
	}
	return v.Scale(ar, ar.Div(one(ar), m)), nil
}

// IsZero reports whether all components are zero within tolerance.
func (v Vector[T]) IsZero(ar Arith[T]) bool {
	return ar.IsZero(v.DX) && ar.IsZero(v.DY) && ar.IsZero(v.DZ)
}

// Equals reports component-wise equality within tolerance.
func (v Vector[T]) Equals(ar Arith[T], w Vector[T]) bool {
	return ar.Eq(v.DX, w.DX) && ar.Eq(v.DY, w.DY) && ar.Eq(v.DZ, w.DZ)
}

// IsScalarMultiple reports whether v and w are parallel (their cross product
// vanishes within tolerance). The zero vector is a scalar multiple of every
// vector.
func (v Vector[T]) IsScalarMultiple(ar Arith[T], w Vector[T]) bool {
	return v.Cross(ar, w).IsZero(ar)
}

// SameDirection reports whether v and w are parallel and point the same way.
func (v Vector[T]) SameDirection(ar Arith[T], w Vector[T]) bool {
	return v.IsScalarMultiple(ar, w) && ar.Sign(v.Dot(ar, w)) > 0
}

// Component returns the component along the given axis.
func (v Vector[T]) Component(axis Axis) T {
	switch axis {
	case AxisX:
		return v.DX
	case AxisY:
		return v.DY
	default:
		return v.DZ
	}
}

func (v Vector[T]) Format(ar Arith[T]) string {
	return fmt.Sprintf("(%s, %s, %s)", ar.Format(v.DX), ar.Format(v.DY), ar.Format(v.DZ))
}
