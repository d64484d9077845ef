package geometry

import "fmt"

// Tetrahedron is the solid spanned by four non-coplanar points, stored with
// its four boundary faces pqr, qsr, spr and psq.
type Tetrahedron[T any] struct {
	p, q, r, s *Point[T]
	faces      [4]*Triangle[T]

	env *Envelope[T] // lazy, dropped on Translate
}

// NewTetrahedron returns the tetrahedron pqrs. Coplanar points enclose no
// volume and yield ErrDegenerate.
func NewTetrahedron[T any](ar Arith[T], p, q, r, s *Point[T]) (*Tetrahedron[T], error) {
	vol := q.Sub(ar, p).Cross(ar, r.Sub(ar, p)).Dot(ar, s.Sub(ar, p))
	if ar.IsZero(vol) {
		return nil, fmt.Errorf("tetrahedron with coplanar corners: %w", ErrDegenerate)
	}
	th := &Tetrahedron[T]{p: p.Clone(), q: q.Clone(), r: r.Clone(), s: s.Clone()}
	for i, c := range th.corners() {
		f, err := NewTriangle(ar, c[0], c[1], c[2])
		if err != nil {
			return nil, fmt.Errorf("tetrahedron face: %w", err)
		}
		th.faces[i] = f
	}
	return th, nil
}

// corners lists the vertex triples of the four faces.
func (th *Tetrahedron[T]) corners() [4][3]*Point[T] {
	return [4][3]*Point[T]{
		{th.p, th.q, th.r},
		{th.q, th.s, th.r},
		{th.s, th.p, th.r},
		{th.p, th.s, th.q},
	}
}

// opposite returns the vertex not on face i; it fixes the interior side of
// that face's plane.
func (th *Tetrahedron[T]) opposite(i int) *Point[T] {
	return [4]*Point[T]{th.s, th.p, th.q, th.r}[i]
}

// P returns the first corner.
func (th *Tetrahedron[T]) P() *Point[T] { return th.p }

// Q returns the second corner.
func (th *Tetrahedron[T]) Q() *Point[T] { return th.q }

// R returns the third corner.
func (th *Tetrahedron[T]) R() *Point[T] { return th.r }

// S returns the fourth corner.
func (th *Tetrahedron[T]) S() *Point[T] { return th.s }

// Points returns the four corners.
func (th *Tetrahedron[T]) Points() [4]*Point[T] {
	return [4]*Point[T]{th.p, th.q, th.r, th.s}
}

// Faces returns the four boundary triangles.
func (th *Tetrahedron[T]) Faces() [4]*Triangle[T] { return th.faces }

// Volume is |(q-p) . ((r-p) x (s-p))| / 6; exact under a rational strategy.
func (th *Tetrahedron[T]) Volume(ar Arith[T]) T {
	vol := th.q.Sub(ar, th.p).Cross(ar, th.r.Sub(ar, th.p)).Dot(ar, th.s.Sub(ar, th.p))
	return ar.Div(ar.Abs(vol), ar.FromInt(6))
}

// Contains reports whether pt is inside the solid or on its boundary: for
// every face, pt must be on the opposite vertex's side of the face plane or
// on the plane itself.
func (th *Tetrahedron[T]) Contains(ar Arith[T], pt *Point[T]) bool {
	for i, f := range th.faces {
		side := f.Plane().Side(ar, pt)
		if side != 0 && side != f.Plane().Side(ar, th.opposite(i)) {
			return false
		}
	}
	return true
}

// IntersectLine returns nil, a touching point, or the segment where the line
// pierces the solid.
func (th *Tetrahedron[T]) IntersectLine(ar Arith[T], l *Line[T]) (Geometry[T], error) {
	var pts []*Point[T]
	for _, f := range th.faces {
		for _, p := range geometryPoints(ar, f.IntersectLine(ar, l)) {
			pts = appendDistinct(ar, pts, p)
		}
	}
	return coplanarPointsToGeometry(ar, pts)
}

// IntersectSegment restricts IntersectLine to the segment's span; endpoints
// interior to the solid bound the result.
func (th *Tetrahedron[T]) IntersectSegment(ar Arith[T], s *LineSegment[T]) (Geometry[T], error) {
	var pts []*Point[T]
	for _, f := range th.faces {
		for _, p := range geometryPoints(ar, f.IntersectSegment(ar, s)) {
			pts = appendDistinct(ar, pts, p)
		}
	}
	for _, e := range []*Point[T]{s.P(), s.Q(ar)} {
		if th.Contains(ar, e) {
			pts = appendDistinct(ar, pts, e)
		}
	}
	return coplanarPointsToGeometry(ar, pts)
}

// IntersectPlane returns the planar cross-section: nil, a touching point or
// edge, a whole face when the plane carries one, or the cut polygon.
func (th *Tetrahedron[T]) IntersectPlane(ar Arith[T], o *Plane[T]) (Geometry[T], error) {
	for _, f := range th.faces {
		if f.Plane().EqualsIgnoreOrientation(ar, o) {
			return f, nil
		}
	}
	var pts []*Point[T]
	for _, f := range th.faces {
		for _, p := range geometryPoints(ar, f.IntersectPlane(ar, o)) {
			pts = appendDistinct(ar, pts, p)
		}
	}
	return coplanarPointsToGeometry(ar, pts)
}

// IntersectTriangle clips the triangle against the solid. The result lives in
// the triangle's plane: the hull of the boundary crossings plus the triangle
// vertices interior to the solid.
func (th *Tetrahedron[T]) IntersectTriangle(ar Arith[T], o *Triangle[T]) (Geometry[T], error) {
	var pts []*Point[T]
	for _, f := range th.faces {
		g, err := f.IntersectTriangle(ar, o)
		if err != nil {
			return nil, err
		}
		for _, p := range geometryPoints(ar, g) {
			pts = appendDistinct(ar, pts, p)
		}
	}
	for _, v := range o.Points() {
		if th.Contains(ar, v) {
			pts = appendDistinct(ar, pts, v)
		}
	}
	return coplanarPointsToGeometry(ar, pts)
}

// DistanceSquaredToPoint is zero inside the solid, else the closest face.
func (th *Tetrahedron[T]) DistanceSquaredToPoint(ar Arith[T], pt *Point[T]) T {
	if th.Contains(ar, pt) {
		return zero(ar)
	}
	d := th.faces[0].DistanceSquaredToPoint(ar, pt)
	for _, f := range th.faces[1:] {
		d = minT(ar, d, f.DistanceSquaredToPoint(ar, pt))
	}
	return d
}

// DistanceSquaredToPlane is zero when the plane cuts or touches the solid,
// else the closest corner. The solid meets the plane exactly when its corners
// do not all sit strictly on one side.
func (th *Tetrahedron[T]) DistanceSquaredToPlane(ar Arith[T], o *Plane[T]) T {
	corners := th.Points()
	first := o.Side(ar, corners[0])
	for _, c := range corners[1:] {
		if s := o.Side(ar, c); s != first || s == 0 {
			return zero(ar)
		}
	}
	if first == 0 {
		return zero(ar)
	}
	d := o.DistanceSquaredToPoint(ar, corners[0])
	for _, c := range corners[1:] {
		d = minT(ar, d, o.DistanceSquaredToPoint(ar, c))
	}
	return d
}

// Equals reports whether the corner sets coincide within tolerance.
func (th *Tetrahedron[T]) Equals(ar Arith[T], o *Tetrahedron[T]) bool {
	theirs := o.Points()
	used := [4]bool{}
	for _, v := range th.Points() {
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

// Translate shifts the solid by v and drops cached state.
func (th *Tetrahedron[T]) Translate(ar Arith[T], v Vector[T]) {
	th.p.Translate(ar, v)
	th.q.Translate(ar, v)
	th.r.Translate(ar, v)
	th.s.Translate(ar, v)
	for _, f := range th.faces {
		f.Translate(ar, v)
	}
	th.env = nil
}

// Rotate returns a new tetrahedron built from the rotated corners.
func (th *Tetrahedron[T]) Rotate(ar Arith[T], axis *Line[T], theta T) (*Tetrahedron[T], error) {
	if isZeroAngle(ar, theta) {
		return NewTetrahedron(ar, th.p, th.q, th.r, th.s)
	}
	return NewTetrahedron(ar,
		th.p.Rotate(ar, axis, theta),
		th.q.Rotate(ar, axis, theta),
		th.r.Rotate(ar, axis, theta),
		th.s.Rotate(ar, axis, theta),
	)
}

func (th *Tetrahedron[T]) Kind() Kind { return KindTetrahedron }
func (th *Tetrahedron[T]) Dim() int   { return 3 }

// Envelope returns the cached bounding box, computing it on first access.
func (th *Tetrahedron[T]) Envelope(ar Arith[T]) *Envelope[T] {
	if th.env == nil {
		th.env = NewEnvelope(ar, th.p, th.q, th.r, th.s)
	}
	return th.env
}
