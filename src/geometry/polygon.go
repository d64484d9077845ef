package geometry

import (
	"fmt"

	"github.com/rclancey/earcut"
)

// Polygon is a union of convex "part" hulls minus a union of convex "hole"
// hulls, all coplanar. Parts may overlap each other.
type Polygon[T any] struct {
	parts []*ConvexHull[T]
	holes []*ConvexHull[T]

	hull *ConvexHull[T] // lazy, hull of all part points
	env  *Envelope[T]   // lazy
}

// NewPolygon builds a polygon from explicit parts and holes. All hulls must
// share the first part's plane.
func NewPolygon[T any](ar Arith[T], parts, holes []*ConvexHull[T]) (*Polygon[T], error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("polygon without parts: %w", ErrDegenerate)
	}
	pl := parts[0].Plane()
	for _, p := range parts[1:] {
		if !pl.EqualsIgnoreOrientation(ar, p.Plane()) {
			return nil, fmt.Errorf("polygon parts on different planes: %w", ErrDegenerate)
		}
	}
	for _, h := range holes {
		if !pl.EqualsIgnoreOrientation(ar, h.Plane()) {
			return nil, fmt.Errorf("polygon holes on a different plane: %w", ErrDegenerate)
		}
	}
	return &Polygon[T]{parts: parts, holes: holes}, nil
}

// NewPolygonFromRings triangulates an arbitrary (possibly concave) outer
// ring with hole rings into convex parts via earcut; the hole rings become
// the polygon's holes, represented by their convex hulls.
func NewPolygonFromRings[T any](ar Arith[T], outer []*Point[T], holeRings ...[]*Point[T]) (*Polygon[T], error) {
	if len(outer) < 3 {
		return nil, fmt.Errorf("polygon ring with %d points: %w", len(outer), ErrDegenerate)
	}
	all := make([]*Point[T], 0, len(outer))
	all = append(all, outer...)
	holeIndices := make([]int, 0, len(holeRings))
	for _, ring := range holeRings {
		if len(ring) < 3 {
			return nil, fmt.Errorf("polygon hole ring with %d points: %w", len(ring), ErrDegenerate)
		}
		holeIndices = append(holeIndices, len(all))
		all = append(all, ring...)
	}
	if !Coplanar(ar, all...) {
		return nil, fmt.Errorf("polygon rings are not coplanar: %w", ErrDegenerate)
	}
	pl, err := planeOf(ar, all)
	if err != nil {
		return nil, err
	}

	// Flatten onto the plane's dominant-axis 2D frame for earcut; the index
	// output maps back to the exact original points.
	ua, va := projectionAxes(ar, pl.Normal())
	coords := make([]float64, 0, 2*len(all))
	for _, p := range all {
		coords = append(coords, ar.Float64(p.Coordinate(ar, ua)), ar.Float64(p.Coordinate(ar, va)))
	}
	if len(holeIndices) == 0 {
		holeIndices = nil
	}
	idx, err := earcut.Earcut(coords, holeIndices, 2)
	if err != nil {
		return nil, fmt.Errorf("polygon triangulation: %w", err)
	}
	if len(idx) == 0 || len(idx)%3 != 0 {
		return nil, fmt.Errorf("polygon triangulation produced no triangles: %w", ErrDegenerate)
	}

	parts := make([]*ConvexHull[T], 0, len(idx)/3)
	for i := 0; i+2 < len(idx); i += 3 {
		part, err := NewConvexHull(ar, all[idx[i]], all[idx[i+1]], all[idx[i+2]])
		if err != nil {
			// Slivers collapse under tolerance; they contribute no area.
			continue
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("polygon collapsed to slivers: %w", ErrDegenerate)
	}
	holes := make([]*ConvexHull[T], 0, len(holeRings))
	for _, ring := range holeRings {
		h, err := NewConvexHull(ar, ring...)
		if err != nil {
			return nil, fmt.Errorf("polygon hole: %w", err)
		}
		holes = append(holes, h)
	}
	return &Polygon[T]{parts: parts, holes: holes}, nil
}

// Parts returns the convex parts.
func (pg *Polygon[T]) Parts() []*ConvexHull[T] { return pg.parts }

// Holes returns the convex holes.
func (pg *Polygon[T]) Holes() []*ConvexHull[T] { return pg.holes }

// Plane returns the polygon's supporting plane.
func (pg *Polygon[T]) Plane() *Plane[T] { return pg.parts[0].Plane() }

// Contains reports whether pt is on the polygon. Holes override parts: a
// point inside any hole is excluded even when it is inside a part.
func (pg *Polygon[T]) Contains(ar Arith[T], pt *Point[T]) bool {
	for _, h := range pg.holes {
		if h.Contains(ar, pt) {
			return false
		}
	}
	for _, p := range pg.parts {
		if p.Contains(ar, pt) {
			return true
		}
	}
	return false
}

// DistanceSquaredToPoint is zero on the polygon. For a point excluded by a
// hole the nearest material lies on that hole's rim; otherwise it is the
// nearest part.
func (pg *Polygon[T]) DistanceSquaredToPoint(ar Arith[T], pt *Point[T]) T {
	if pg.Contains(ar, pt) {
		return zero(ar)
	}
	var d T
	have := false
	for _, h := range pg.holes {
		if !h.Contains(ar, pt) {
			continue
		}
		for _, e := range h.Edges(ar) {
			ed := e.DistanceSquaredToPoint(ar, pt)
			if !have || ar.Cmp(ed, d) < 0 {
				d, have = ed, true
			}
		}
	}
	if have {
		return d
	}
	d = pg.parts[0].DistanceSquaredToPoint(ar, pt)
	for _, p := range pg.parts[1:] {
		d = minT(ar, d, p.DistanceSquaredToPoint(ar, pt))
	}
	return d
}

// Hull returns the cached convex hull of all part points, computing it on
// first access.
func (pg *Polygon[T]) Hull(ar Arith[T]) (*ConvexHull[T], error) {
	if pg.hull == nil {
		var all []*Point[T]
		for _, p := range pg.parts {
			all = append(all, p.Points()...)
		}
		h, err := NewConvexHull(ar, all...)
		if err != nil {
			return nil, err
		}
		pg.hull = h
	}
	return pg.hull, nil
}

// Translate shifts the polygon by v and drops cached state.
func (pg *Polygon[T]) Translate(ar Arith[T], v Vector[T]) {
	for _, p := range pg.parts {
		p.Translate(ar, v)
	}
	for _, h := range pg.holes {
		h.Translate(ar, v)
	}
	pg.hull = nil
	pg.env = nil
}

// Rotate returns a new polygon built from the rotated parts and holes.
func (pg *Polygon[T]) Rotate(ar Arith[T], axis *Line[T], theta T) (*Polygon[T], error) {
	parts := make([]*ConvexHull[T], len(pg.parts))
	for i, p := range pg.parts {
		r, err := p.Rotate(ar, axis, theta)
		if err != nil {
			return nil, err
		}
		parts[i] = r
	}
	holes := make([]*ConvexHull[T], len(pg.holes))
	for i, h := range pg.holes {
		r, err := h.Rotate(ar, axis, theta)
		if err != nil {
			return nil, err
		}
		holes[i] = r
	}
	return NewPolygon(ar, parts, holes)
}

func (pg *Polygon[T]) Kind() Kind { return KindPolygon }
func (pg *Polygon[T]) Dim() int   { return 2 }

// Envelope returns the cached bounding box over all part points, computing
// it on first access.
func (pg *Polygon[T]) Envelope(ar Arith[T]) *Envelope[T] {
	if pg.env == nil {
		var all []*Point[T]
		for _, p := range pg.parts {
			all = append(all, p.Points()...)
		}
		pg.env = NewEnvelope(ar, all...)
	}
	return pg.env
}
