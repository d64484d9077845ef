// Package geometry is a 3D geometric-primitive and intersection/distance
// kernel. It provides points, vectors, lines, planes, triangles, rectangles,
// tetrahedra, polygons with holes, convex hulls and axis-aligned bounding
// boxes, with routines to test intersection, compute intersection geometry,
// measure distance, and apply rotation and translation.
//
// Every algorithm is generic over a numeric strategy Arith[T]. Two strategies
// are provided: Float64Ops (IEEE doubles with an epsilon tolerance) and
// RatOps (arbitrary-precision rationals with order-of-magnitude rounding of
// irrational results). Strategies must never be mixed within one computation.
package geometry

// Arith is the numeric strategy every geometric operation is parameterized
// over. It carries the precision/tolerance configuration: a strategy value is
// supplied on every precision-sensitive call.
//
// Cmp, Sign, Eq and IsZero are tolerance-aware: values closer together than
// the strategy's tolerance compare equal, and values within tolerance of zero
// have sign 0. Sqrt, Sin, Cos and Pi produce irrational results bounded by
// the strategy's precision contract.
type Arith[T any] interface {
	FromInt(v int64) T
	FromFloat(v float64) T

	Add(a, b T) T
	Sub(a, b T) T
	Mul(a, b T) T
	Div(a, b T) T
	Neg(a T) T
	Abs(a T) T

	Cmp(a, b T) int
	Sign(a T) int
	IsZero(a T) bool
	Eq(a, b T) bool

	Sqrt(a T) T
	Pi() T
	Sin(a T) T
	Cos(a T) T

	Float64(a T) float64
	Format(a T) string
}

func zero[T any](ar Arith[T]) T { return ar.FromInt(0) }
func one[T any](ar Arith[T]) T  { return ar.FromInt(1) }
func two[T any](ar Arith[T]) T  { return ar.FromInt(2) }

// minT returns the smaller of a and b under the strategy's compare.
func minT[T any](ar Arith[T], a, b T) T {
	if ar.Cmp(a, b) <= 0 {
		return a
	}
	return b
}

// maxT returns the larger of a and b under the strategy's compare.
func maxT[T any](ar Arith[T], a, b T) T {
	if ar.Cmp(a, b) >= 0 {
		return a
	}
	return b
}

// clampT clamps v into [lo, hi].
func clampT[T any](ar Arith[T], v, lo, hi T) T {
	if ar.Cmp(v, lo) < 0 {
		return lo
	}
	if ar.Cmp(v, hi) > 0 {
		return hi
	}
	return v
}
