package geometry

import "fmt"

// DistanceSquared dispatches a pair of geometries to the matching squared
// distance routine. Pairs outside the supported set (one operand must be a
// point, line, segment or plane) report ErrUndefined.
func DistanceSquared[T any](ar Arith[T], a, b Geometry[T]) (T, error) {
	if p, ok := a.(*Point[T]); ok {
		return distanceSquaredToPoint(ar, p, b)
	}
	if p, ok := b.(*Point[T]); ok {
		return distanceSquaredToPoint(ar, p, a)
	}
	if l, ok := a.(*Line[T]); ok {
		return distanceSquaredToLine(ar, l, b)
	}
	if l, ok := b.(*Line[T]); ok {
		return distanceSquaredToLine(ar, l, a)
	}
	if s, ok := a.(*LineSegment[T]); ok {
		return distanceSquaredToSegment(ar, s, b)
	}
	if s, ok := b.(*LineSegment[T]); ok {
		return distanceSquaredToSegment(ar, s, a)
	}
	if pl, ok := a.(*Plane[T]); ok {
		return distanceSquaredToPlane(ar, pl, b)
	}
	if pl, ok := b.(*Plane[T]); ok {
		return distanceSquaredToPlane(ar, pl, a)
	}
	return zero(ar), fmt.Errorf("distance between %s and %s: %w", a.Kind(), b.Kind(), ErrUndefined)
}

// Distance is the square root of DistanceSquared, computed to the strategy's
// precision contract.
func Distance[T any](ar Arith[T], a, b Geometry[T]) (T, error) {
	d, err := DistanceSquared(ar, a, b)
	if err != nil {
		return d, err
	}
	return ar.Sqrt(d), nil
}

func distanceSquaredToPoint[T any](ar Arith[T], p *Point[T], b Geometry[T]) (T, error) {
	switch o := b.(type) {
	case *Point[T]:
		return p.DistanceSquaredTo(ar, o), nil
	case *Line[T]:
		return o.DistanceSquaredToPoint(ar, p), nil
	case *LineSegment[T]:
		return o.DistanceSquaredToPoint(ar, p), nil
	case *Plane[T]:
		return o.DistanceSquaredToPoint(ar, p), nil
	case *Triangle[T]:
		return o.DistanceSquaredToPoint(ar, p), nil
	case *Rectangle[T]:
		return o.DistanceSquaredToPoint(ar, p), nil
	case *Tetrahedron[T]:
		return o.DistanceSquaredToPoint(ar, p), nil
	case *ConvexHull[T]:
		return o.DistanceSquaredToPoint(ar, p), nil
	case *Polygon[T]:
		return o.DistanceSquaredToPoint(ar, p), nil
	}
	return zero(ar), fmt.Errorf("distance between point and %s: %w", b.Kind(), ErrUndefined)
}

func distanceSquaredToLine[T any](ar Arith[T], l *Line[T], b Geometry[T]) (T, error) {
	switch o := b.(type) {
	case *Line[T]:
		return l.DistanceSquaredToLine(ar, o), nil
	case *LineSegment[T]:
		return o.DistanceSquaredToLine(ar, l), nil
	case *Plane[T]:
		if o.IsParallelToLine(ar, l) {
			return o.DistanceSquaredToPoint(ar, l.P()), nil
		}
		return zero(ar), nil
	case *Triangle[T]:
		return o.DistanceSquaredToLine(ar, l), nil
	case *Rectangle[T]:
		return o.DistanceSquaredToLine(ar, l), nil
	}
	return zero(ar), fmt.Errorf("distance between line and %s: %w", b.Kind(), ErrUndefined)
}

func distanceSquaredToSegment[T any](ar Arith[T], s *LineSegment[T], b Geometry[T]) (T, error) {
	switch o := b.(type) {
	case *LineSegment[T]:
		return s.DistanceSquaredToSegment(ar, o), nil
	case *Plane[T]:
		return s.DistanceSquaredToPlane(ar, o), nil
	case *Triangle[T]:
		if o.IntersectSegment(ar, s) != nil {
			return zero(ar), nil
		}
		d := o.DistanceSquaredToPoint(ar, s.P())
		d = minT(ar, d, o.DistanceSquaredToPoint(ar, s.Q(ar)))
		for _, e := range o.Edges(ar) {
			d = minT(ar, d, s.DistanceSquaredToSegment(ar, e))
		}
		return d, nil
	}
	return zero(ar), fmt.Errorf("distance between line segment and %s: %w", b.Kind(), ErrUndefined)
}

func distanceSquaredToPlane[T any](ar Arith[T], pl *Plane[T], b Geometry[T]) (T, error) {
	switch o := b.(type) {
	case *Plane[T]:
		return pl.DistanceSquaredToPlane(ar, o), nil
	case *Triangle[T]:
		return o.DistanceSquaredToPlane(ar, pl), nil
	case *Rectangle[T]:
		return o.DistanceSquaredToPlane(ar, pl), nil
	case *Tetrahedron[T]:
		return o.DistanceSquaredToPlane(ar, pl), nil
	}
	return zero(ar), fmt.Errorf("distance between plane and %s: %w", b.Kind(), ErrUndefined)
}
