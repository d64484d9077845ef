package geometry

import "fmt"

// Rectangle is the quadrilateral pqrs stored as the two coplanar triangles
// pqr and rsp sharing the diagonal r-p.
//
// Rectangle-ness (opposite edges parallel and equal, right angles) is NOT
// enforced at construction; callers validate with IsRectangle when they need
// the guarantee.
type Rectangle[T any] struct {
	pqr *Triangle[T]
	rsp *Triangle[T]

	env *Envelope[T] // lazy, dropped on Translate
}

// NewRectangle returns the quadrilateral pqrs. The corners must be coplanar
// and each diagonal half must form a proper triangle.
func NewRectangle[T any](ar Arith[T], p, q, r, s *Point[T]) (*Rectangle[T], error) {
	pqr, err := NewTriangle(ar, p, q, r)
	if err != nil {
		return nil, fmt.Errorf("rectangle: %w", err)
	}
	rsp, err := NewTriangle(ar, r, s, p)
	if err != nil {
		return nil, fmt.Errorf("rectangle: %w", err)
	}
	if !pqr.Plane().EqualsIgnoreOrientation(ar, rsp.Plane()) {
		return nil, fmt.Errorf("rectangle corners are not coplanar: %w", ErrDegenerate)
	}
	return &Rectangle[T]{pqr: pqr, rsp: rsp}, nil
}

// IsRectangle reports whether pqrs is a true rectangle: coplanar, opposite
// edges parallel and equal length, and adjacent edges perpendicular.
func IsRectangle[T any](ar Arith[T], p, q, r, s *Point[T]) bool {
	if !Coplanar(ar, p, q, r, s) {
		return false
	}
	pq := q.Sub(ar, p)
	sr := r.Sub(ar, s)
	qr := r.Sub(ar, q)
	if !pq.Equals(ar, sr) {
		return false
	}
	return ar.IsZero(pq.Dot(ar, qr))
}

// P returns the first corner.
func (rc *Rectangle[T]) P() *Point[T] { return rc.pqr.P() }

// Q returns the second corner.
func (rc *Rectangle[T]) Q() *Point[T] { return rc.pqr.Q() }

// R returns the third corner.
func (rc *Rectangle[T]) R() *Point[T] { return rc.pqr.R() }

// S returns the fourth corner.
func (rc *Rectangle[T]) S() *Point[T] { return rc.rsp.Q() }

// Corners returns p, q, r, s.
func (rc *Rectangle[T]) Corners() [4]*Point[T] {
	return [4]*Point[T]{rc.P(), rc.Q(), rc.R(), rc.S()}
}

// Plane returns the supporting plane (of the pqr half).
func (rc *Rectangle[T]) Plane() *Plane[T] { return rc.pqr.Plane() }

// Triangles returns the two diagonal halves.
func (rc *Rectangle[T]) Triangles() (pqr, rsp *Triangle[T]) {
	return rc.pqr, rc.rsp
}

// Contains reports whether pt lies on either diagonal half.
func (rc *Rectangle[T]) Contains(ar Arith[T], pt *Point[T]) bool {
	return rc.pqr.Contains(ar, pt) || rc.rsp.Contains(ar, pt)
}

// IntersectLine joins the two halves' partial results.
func (rc *Rectangle[T]) IntersectLine(ar Arith[T], l *Line[T]) (Geometry[T], error) {
	return joinPartials(ar, rc.pqr.IntersectLine(ar, l), rc.rsp.IntersectLine(ar, l))
}

// IntersectSegment joins the two halves' partial results.
func (rc *Rectangle[T]) IntersectSegment(ar Arith[T], s *LineSegment[T]) (Geometry[T], error) {
	return joinPartials(ar, rc.pqr.IntersectSegment(ar, s), rc.rsp.IntersectSegment(ar, s))
}

// IntersectPlane returns the rectangle itself when coplanar, nil when
// parallel, else the merged chords of the two halves.
func (rc *Rectangle[T]) IntersectPlane(ar Arith[T], o *Plane[T]) (Geometry[T], error) {
	if rc.Plane().EqualsIgnoreOrientation(ar, o) {
		return rc, nil
	}
	return joinPartials(ar, rc.pqr.IntersectPlane(ar, o), rc.rsp.IntersectPlane(ar, o))
}

// IntersectTriangle intersects with a triangle. Coplanar results union into
// the hull of both halves' clips; otherwise the two partial chords merge.
func (rc *Rectangle[T]) IntersectTriangle(ar Arith[T], o *Triangle[T]) (Geometry[T], error) {
	a, err := rc.pqr.IntersectTriangle(ar, o)
	if err != nil {
		return nil, err
	}
	b, err := rc.rsp.IntersectTriangle(ar, o)
	if err != nil {
		return nil, err
	}
	if rc.Plane().EqualsIgnoreOrientation(ar, o.Plane()) {
		return joinCoplanar(ar, a, b)
	}
	return joinPartials(ar, a, b)
}

// IntersectRectangle intersects with another rectangle via its two halves.
func (rc *Rectangle[T]) IntersectRectangle(ar Arith[T], o *Rectangle[T]) (Geometry[T], error) {
	oa, ob := o.Triangles()
	a, err := rc.IntersectTriangle(ar, oa)
	if err != nil {
		return nil, err
	}
	b, err := rc.IntersectTriangle(ar, ob)
	if err != nil {
		return nil, err
	}
	if rc.Plane().EqualsIgnoreOrientation(ar, o.Plane()) {
		return joinCoplanar(ar, a, b)
	}
	return joinPartials(ar, a, b)
}

// DistanceSquaredToPoint is the minimum over the two halves.
func (rc *Rectangle[T]) DistanceSquaredToPoint(ar Arith[T], pt *Point[T]) T {
	return minT(ar,
		rc.pqr.DistanceSquaredToPoint(ar, pt),
		rc.rsp.DistanceSquaredToPoint(ar, pt),
	)
}

// DistanceSquaredToPlane is the minimum over the two halves.
func (rc *Rectangle[T]) DistanceSquaredToPlane(ar Arith[T], o *Plane[T]) T {
	return minT(ar,
		rc.pqr.DistanceSquaredToPlane(ar, o),
		rc.rsp.DistanceSquaredToPlane(ar, o),
	)
}

// DistanceSquaredToLine is the minimum over the two halves.
func (rc *Rectangle[T]) DistanceSquaredToLine(ar Arith[T], l *Line[T]) T {
	return minT(ar,
		rc.pqr.DistanceSquaredToLine(ar, l),
		rc.rsp.DistanceSquaredToLine(ar, l),
	)
}

// Equals reports whether the corner sets coincide within tolerance.
func (rc *Rectangle[T]) Equals(ar Arith[T], o *Rectangle[T]) bool {
	mine := rc.Corners()
	theirs := o.Corners()
	used := [4]bool{}
	for _, v := range mine {
		matched := false
		for i, w := range theirs {
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

// Translate shifts both halves and drops cached state.
func (rc *Rectangle[T]) Translate(ar Arith[T], v Vector[T]) {
	rc.pqr.Translate(ar, v)
	rc.rsp.Translate(ar, v)
	rc.env = nil
}

// Rotate returns a new rectangle built from the rotated corners.
func (rc *Rectangle[T]) Rotate(ar Arith[T], axis *Line[T], theta T) (*Rectangle[T], error) {
	if isZeroAngle(ar, theta) {
		return NewRectangle(ar, rc.P(), rc.Q(), rc.R(), rc.S())
	}
	return NewRectangle(ar,
		rc.P().Rotate(ar, axis, theta),
		rc.Q().Rotate(ar, axis, theta),
		rc.R().Rotate(ar, axis, theta),
		rc.S().Rotate(ar, axis, theta),
	)
}

func (rc *Rectangle[T]) Kind() Kind { return KindRectangle }
func (rc *Rectangle[T]) Dim() int   { return 2 }

// Envelope returns the cached bounding box, computing it on first access.
func (rc *Rectangle[T]) Envelope(ar Arith[T]) *Envelope[T] {
	if rc.env == nil {
		rc.env = NewEnvelope(ar, rc.P(), rc.Q(), rc.R(), rc.S())
	}
	return rc.env
}

// joinCoplanar unions two coplanar partial results into the minimal convex
// geometry spanning both: the hull of their vertices when both are planar,
// else the higher-dimensional non-nil result.
func joinCoplanar[T any](ar Arith[T], a, b Geometry[T]) (Geometry[T], error) {
	if a == nil {
		return b, nil
	}
	if b == nil {
		return a, nil
	}
	pts := append(geometryPoints(ar, a), geometryPoints(ar, b)...)
	return coplanarPointsToGeometry(ar, pts)
}

// geometryPoints lists the defining vertices of a bounded geometry.
func geometryPoints[T any](ar Arith[T], g Geometry[T]) []*Point[T] {
	switch s := g.(type) {
	case *Point[T]:
		return []*Point[T]{s}
	case *LineSegment[T]:
		return []*Point[T]{s.P(), s.Q(ar)}
	case *Triangle[T]:
		p := s.Points()
		return p[:]
	case *Rectangle[T]:
		p := s.Corners()
		return p[:]
	case *ConvexHull[T]:
		return s.Points()
	case *Polygon[T]:
		var all []*Point[T]
		for _, part := range s.Parts() {
			all = append(all, part.Points()...)
		}
		return all
	}
	return nil
}
