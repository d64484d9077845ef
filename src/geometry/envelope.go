package geometry

// Envelope is an axis-aligned bounding box with the same offset/translate
// discipline as Point: per-axis bounds are stored relative to a translation
// frame, so translating is O(1) and never touches the bounds themselves.
//
// Derived corner points, edges and bounding planes are memoized on first
// access and dropped by Translate; stale derived state is a silent-geometry
// bug, so the invalidation is covered by explicit tests.
type Envelope[T any] struct {
	offset                             Vector[T]
	xMin, xMax, yMin, yMax, zMin, zMax T

	corners []*Point[T]
	edges   []*LineSegment[T]
	faces   []*Plane[T]
}

// NewEnvelope returns the bounding box of the given points. At least one
// point is required; nil is returned for an empty set.
func NewEnvelope[T any](ar Arith[T], pts ...*Point[T]) *Envelope[T] {
	if len(pts) == 0 {
		return nil
	}
	e := &Envelope[T]{
		offset: ZeroVector(ar),
		xMin:   pts[0].X(ar), xMax: pts[0].X(ar),
		yMin: pts[0].Y(ar), yMax: pts[0].Y(ar),
		zMin: pts[0].Z(ar), zMax: pts[0].Z(ar),
	}
	for _, p := range pts[1:] {
		e.xMin = minT(ar, e.xMin, p.X(ar))
		e.xMax = maxT(ar, e.xMax, p.X(ar))
		e.yMin = minT(ar, e.yMin, p.Y(ar))
		e.yMax = maxT(ar, e.yMax, p.Y(ar))
		e.zMin = minT(ar, e.zMin, p.Z(ar))
		e.zMax = maxT(ar, e.zMax, p.Z(ar))
	}
	return e
}

// NewEnvelopeBounds returns the box [xMin,xMax] x [yMin,yMax] x [zMin,zMax].
func NewEnvelopeBounds[T any](ar Arith[T], xMin, xMax, yMin, yMax, zMin, zMax T) *Envelope[T] {
	return &Envelope[T]{
		offset: ZeroVector(ar),
		xMin:   xMin, xMax: xMax,
		yMin: yMin, yMax: yMax,
		zMin: zMin, zMax: zMax,
	}
}

// Effective bounds include the translation frame.

func (e *Envelope[T]) XMin(ar Arith[T]) T { return ar.Add(e.offset.DX, e.xMin) }
func (e *Envelope[T]) XMax(ar Arith[T]) T { return ar.Add(e.offset.DX, e.xMax) }
func (e *Envelope[T]) YMin(ar Arith[T]) T { return ar.Add(e.offset.DY, e.yMin) }
func (e *Envelope[T]) YMax(ar Arith[T]) T { return ar.Add(e.offset.DY, e.yMax) }
func (e *Envelope[T]) ZMin(ar Arith[T]) T { return ar.Add(e.offset.DZ, e.zMin) }
func (e *Envelope[T]) ZMax(ar Arith[T]) T { return ar.Add(e.offset.DZ, e.zMax) }

// Min returns the effective lower bound along the given axis.
func (e *Envelope[T]) Min(ar Arith[T], axis Axis) T {
	switch axis {
	case AxisX:
		return e.XMin(ar)
	case AxisY:
		return e.YMin(ar)
	default:
		return e.ZMin(ar)
	}
}

// Max returns the effective upper bound along the given axis.
func (e *Envelope[T]) Max(ar Arith[T], axis Axis) T {
	switch axis {
	case AxisX:
		return e.XMax(ar)
	case AxisY:
		return e.YMax(ar)
	default:
		return e.ZMax(ar)
	}
}

// Union returns the smallest box containing both. Union is associative and
// commutative.
func (e *Envelope[T]) Union(ar Arith[T], o *Envelope[T]) *Envelope[T] {
	return NewEnvelopeBounds(ar,
		minT(ar, e.XMin(ar), o.XMin(ar)), maxT(ar, e.XMax(ar), o.XMax(ar)),
		minT(ar, e.YMin(ar), o.YMin(ar)), maxT(ar, e.YMax(ar), o.YMax(ar)),
		minT(ar, e.ZMin(ar), o.ZMin(ar)), maxT(ar, e.ZMax(ar), o.ZMax(ar)),
	)
}

// ContainsPoint tests interval membership on every axis.
func (e *Envelope[T]) ContainsPoint(ar Arith[T], pt *Point[T]) bool {
	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		c := pt.Coordinate(ar, axis)
		if ar.Cmp(c, e.Min(ar, axis)) < 0 || ar.Cmp(c, e.Max(ar, axis)) > 0 {
			return false
		}
	}
	return true
}

// ContainsEnvelope reports whether o fits inside e on every axis.
func (e *Envelope[T]) ContainsEnvelope(ar Arith[T], o *Envelope[T]) bool {
	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		if ar.Cmp(o.Min(ar, axis), e.Min(ar, axis)) < 0 ||
			ar.Cmp(o.Max(ar, axis), e.Max(ar, axis)) > 0 {
			return false
		}
	}
	return true
}

// Intersects reports whether the boxes overlap (boundary touch included).
func (e *Envelope[T]) Intersects(ar Arith[T], o *Envelope[T]) bool {
	return !e.IsBeyond(ar, o)
}

// IsBeyond reports whether some axis has disjoint intervals, so the boxes
// cannot meet.
func (e *Envelope[T]) IsBeyond(ar Arith[T], o *Envelope[T]) bool {
	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		if ar.Cmp(e.Max(ar, axis), o.Min(ar, axis)) < 0 ||
			ar.Cmp(o.Max(ar, axis), e.Min(ar, axis)) < 0 {
			return true
		}
	}
	return false
}

// IntersectEnvelope returns the overlap box, or nil when disjoint.
func (e *Envelope[T]) IntersectEnvelope(ar Arith[T], o *Envelope[T]) *Envelope[T] {
	if e.IsBeyond(ar, o) {
		return nil
	}
	return NewEnvelopeBounds(ar,
		maxT(ar, e.XMin(ar), o.XMin(ar)), minT(ar, e.XMax(ar), o.XMax(ar)),
		maxT(ar, e.YMin(ar), o.YMin(ar)), minT(ar, e.YMax(ar), o.YMax(ar)),
		maxT(ar, e.ZMin(ar), o.ZMin(ar)), minT(ar, e.ZMax(ar), o.ZMax(ar)),
	)
}

// Equals compares effective bounds within tolerance.
func (e *Envelope[T]) Equals(ar Arith[T], o *Envelope[T]) bool {
	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		if !ar.Eq(e.Min(ar, axis), o.Min(ar, axis)) || !ar.Eq(e.Max(ar, axis), o.Max(ar, axis)) {
			return false
		}
	}
	return true
}

// Centroid returns the box center.
func (e *Envelope[T]) Centroid(ar Arith[T]) *Point[T] {
	h := ar.Div(one(ar), two(ar))
	return NewPoint(ar,
		ar.Mul(ar.Add(e.XMin(ar), e.XMax(ar)), h),
		ar.Mul(ar.Add(e.YMin(ar), e.YMax(ar)), h),
		ar.Mul(ar.Add(e.ZMin(ar), e.ZMax(ar)), h),
	)
}

// DistanceSquaredToPoint clamps the point onto the box per axis.
func (e *Envelope[T]) DistanceSquaredToPoint(ar Arith[T], pt *Point[T]) T {
	d := zero(ar)
	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		c := pt.Coordinate(ar, axis)
		g := zero(ar)
		if ar.Cmp(c, e.Min(ar, axis)) < 0 {
			g = ar.Sub(e.Min(ar, axis), c)
		} else if ar.Cmp(c, e.Max(ar, axis)) > 0 {
			g = ar.Sub(c, e.Max(ar, axis))
		}
		d = ar.Add(d, ar.Mul(g, g))
	}
	return d
}

// DistanceSquaredToEnvelope sums the squared per-axis gaps; zero when the
// boxes overlap.
func (e *Envelope[T]) DistanceSquaredToEnvelope(ar Arith[T], o *Envelope[T]) T {
	d := zero(ar)
	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		g := zero(ar)
		if ar.Cmp(e.Max(ar, axis), o.Min(ar, axis)) < 0 {
			g = ar.Sub(o.Min(ar, axis), e.Max(ar, axis))
		} else if ar.Cmp(o.Max(ar, axis), e.Min(ar, axis)) < 0 {
			g = ar.Sub(e.Min(ar, axis), o.Max(ar, axis))
		}
		d = ar.Add(d, ar.Mul(g, g))
	}
	return d
}

// Translate shifts the translation frame and drops all memoized derived
// state.
func (e *Envelope[T]) Translate(ar Arith[T], v Vector[T]) {
	e.offset = e.offset.Add(ar, v)
	e.corners = nil
	e.edges = nil
	e.faces = nil
}

// Corners returns the eight corner points in (x,y,z) low/high order:
// lll, hll, lhl, hhl, llh, hlh, lhh, hhh. Memoized.
func (e *Envelope[T]) Corners(ar Arith[T]) []*Point[T] {
	if e.corners == nil {
		xs := [2]T{e.XMin(ar), e.XMax(ar)}
		ys := [2]T{e.YMin(ar), e.YMax(ar)}
		zs := [2]T{e.ZMin(ar), e.ZMax(ar)}
		e.corners = make([]*Point[T], 0, 8)
		for _, z := range zs {
			for _, y := range ys {
				for _, x := range xs {
					e.corners = append(e.corners, NewPoint(ar, x, y, z))
				}
			}
		}
	}
	return e.corners
}

// cornerEdgePairs indexes Corners() output: 4 x-parallel, 4 y-parallel and
// 4 z-parallel edges.
var cornerEdgePairs = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7},
	{0, 2}, {1, 3}, {4, 6}, {5, 7},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// Edges returns the up-to-twelve box edges. Degenerate (zero-extent) axes
// contribute no edges. Memoized.
func (e *Envelope[T]) Edges(ar Arith[T]) []*LineSegment[T] {
	if e.edges == nil {
		c := e.Corners(ar)
		edges := make([]*LineSegment[T], 0, 12)
		for _, pair := range cornerEdgePairs {
			s, err := NewLineSegment(ar, c[pair[0]], c[pair[1]])
			if err != nil {
				continue
			}
			edges = append(edges, s)
		}
		e.edges = edges
	}
	return e.edges
}

// Faces returns the six bounding planes with outward normals, in the order
// x-min, x-max, y-min, y-max, z-min, z-max. Memoized.
func (e *Envelope[T]) Faces(ar Arith[T]) []*Plane[T] {
	if e.faces == nil {
		o := zero(ar)
		i := one(ar)
		n := ar.Neg(i)
		type face struct {
			pt *Point[T]
			nv Vector[T]
		}
		fs := []face{
			{NewPoint(ar, e.XMin(ar), e.YMin(ar), e.ZMin(ar)), NewVector(n, o, o)},
			{NewPoint(ar, e.XMax(ar), e.YMax(ar), e.ZMax(ar)), NewVector(i, o, o)},
			{NewPoint(ar, e.XMin(ar), e.YMin(ar), e.ZMin(ar)), NewVector(o, n, o)},
			{NewPoint(ar, e.XMax(ar), e.YMax(ar), e.ZMax(ar)), NewVector(o, i, o)},
			{NewPoint(ar, e.XMin(ar), e.YMin(ar), e.ZMin(ar)), NewVector(o, o, n)},
			{NewPoint(ar, e.XMax(ar), e.YMax(ar), e.ZMax(ar)), NewVector(o, o, i)},
		}
		e.faces = make([]*Plane[T], 0, 6)
		for _, f := range fs {
			pl, err := NewPlaneFromNormal(ar, f.pt, f.nv)
			if err != nil {
				continue
			}
			e.faces = append(e.faces, pl)
		}
	}
	return e.faces
}

// Slice is a 2D axis-aligned box: the projection of an envelope with one
// axis dropped. One variant exists per dropped axis.
type Slice[T any] struct {
	drop       Axis
	aMin, aMax T
	bMin, bMax T
}

// SliceOf projects the envelope, dropping the given axis.
func SliceOf[T any](ar Arith[T], e *Envelope[T], drop Axis) Slice[T] {
	a, b := keptAxes(drop)
	return Slice[T]{
		drop: drop,
		aMin: e.Min(ar, a), aMax: e.Max(ar, a),
		bMin: e.Min(ar, b), bMax: e.Max(ar, b),
	}
}

// keptAxes returns the two axes a slice keeps, in axis order.
func keptAxes(drop Axis) (Axis, Axis) {
	switch drop {
	case AxisX:
		return AxisY, AxisZ
	case AxisY:
		return AxisX, AxisZ
	default:
		return AxisX, AxisY
	}
}

// Dropped returns the projected-away axis.
func (s Slice[T]) Dropped() Axis { return s.drop }

// Union returns the smallest slice containing both. Slices over different
// dropped axes do not combine; the receiver's axis wins only when they
// agree, so callers must not mix variants.
func (s Slice[T]) Union(ar Arith[T], o Slice[T]) Slice[T] {
	return Slice[T]{
		drop: s.drop,
		aMin: minT(ar, s.aMin, o.aMin), aMax: maxT(ar, s.aMax, o.aMax),
		bMin: minT(ar, s.bMin, o.bMin), bMax: maxT(ar, s.bMax, o.bMax),
	}
}

// ContainsPoint tests the point's kept coordinates.
func (s Slice[T]) ContainsPoint(ar Arith[T], pt *Point[T]) bool {
	a, b := keptAxes(s.drop)
	ca := pt.Coordinate(ar, a)
	cb := pt.Coordinate(ar, b)
	return ar.Cmp(ca, s.aMin) >= 0 && ar.Cmp(ca, s.aMax) <= 0 &&
		ar.Cmp(cb, s.bMin) >= 0 && ar.Cmp(cb, s.bMax) <= 0
}

// Contains reports whether o fits inside s.
func (s Slice[T]) Contains(ar Arith[T], o Slice[T]) bool {
	return ar.Cmp(o.aMin, s.aMin) >= 0 && ar.Cmp(o.aMax, s.aMax) <= 0 &&
		ar.Cmp(o.bMin, s.bMin) >= 0 && ar.Cmp(o.bMax, s.bMax) <= 0
}

// Intersects reports 2D interval overlap on both kept axes.
func (s Slice[T]) Intersects(ar Arith[T], o Slice[T]) bool {
	return !s.IsBeyond(ar, o)
}

// IsBeyond reports whether some kept axis has disjoint intervals.
func (s Slice[T]) IsBeyond(ar Arith[T], o Slice[T]) bool {
	return ar.Cmp(s.aMax, o.aMin) < 0 || ar.Cmp(o.aMax, s.aMin) < 0 ||
		ar.Cmp(s.bMax, o.bMin) < 0 || ar.Cmp(o.bMax, s.bMin) < 0
}

// Equals compares bounds within tolerance.
func (s Slice[T]) Equals(ar Arith[T], o Slice[T]) bool {
	return s.drop == o.drop &&
		ar.Eq(s.aMin, o.aMin) && ar.Eq(s.aMax, o.aMax) &&
		ar.Eq(s.bMin, o.bMin) && ar.Eq(s.bMax, o.bMax)
}
