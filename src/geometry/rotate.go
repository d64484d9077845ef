package geometry

import "math"

// normalizeAngle maps theta into [0, 2*pi). The bulk of the reduction uses a
// float64 estimate of the turn count; the residue is fixed up exactly.
func normalizeAngle[T any](ar Arith[T], theta T) T {
	twoPi := ar.Mul(two(ar), ar.Pi())
	k := math.Floor(ar.Float64(theta) / ar.Float64(twoPi))
	if k != 0 {
		theta = ar.Sub(theta, ar.Mul(twoPi, ar.FromFloat(k)))
	}
	for ar.Cmp(theta, twoPi) >= 0 {
		theta = ar.Sub(theta, twoPi)
	}
	for ar.Sign(theta) < 0 {
		theta = ar.Add(theta, twoPi)
	}
	return theta
}

// isZeroAngle reports whether theta is a whole number of turns within
// tolerance, in which case rotations short-circuit to a defensive copy.
func isZeroAngle[T any](ar Arith[T], theta T) bool {
	th := normalizeAngle(ar, theta)
	twoPi := ar.Mul(two(ar), ar.Pi())
	return ar.IsZero(th) || ar.Eq(th, twoPi)
}

// rotatePoint rotates p by theta about the axis line using the axis-angle
// (Rodrigues) formula. The result is a new point in p's translation frame;
// p itself is never mutated.
func rotatePoint[T any](ar Arith[T], p *Point[T], axis *Line[T], theta T) *Point[T] {
	th := normalizeAngle(ar, theta)
	twoPi := ar.Mul(two(ar), ar.Pi())
	if ar.IsZero(th) || ar.Eq(th, twoPi) {
		return p.Clone()
	}

	k, err := axis.Direction().Unit(ar)
	if err != nil {
		// Lines carry nonzero directions by construction.
		return p.Clone()
	}
	c := ar.Cos(th)
	s := ar.Sin(th)

	v := p.Sub(ar, axis.P())
	rot := v.Scale(ar, c)
	rot = rot.Add(ar, k.Cross(ar, v).Scale(ar, s))
	rot = rot.Add(ar, k.Scale(ar, ar.Mul(k.Dot(ar, v), ar.Sub(one(ar), c))))

	pos := axis.P().Position(ar).Add(ar, rot)
	return NewPointOffset(p.Offset(), pos.Sub(ar, p.Offset()))
}
