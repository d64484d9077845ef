package shell

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"geode/src/geometry"
)

// sexpGeom wraps a kernel geometry so it can flow between builtins.
type sexpGeom struct {
	st *evalState
	g  geometry.Geometry[float64]
}

func (s *sexpGeom) SexpString(ps *zygo.PrintState) string {
	return formatGeom(s.st.ar, s.g)
}
func (s *sexpGeom) Type() *zygo.RegisteredType { return nil }

// sexpVec wraps a direction vector.
type sexpVec struct {
	v geometry.Vector[float64]
}

func (s *sexpVec) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec %g %g %g)", s.v.DX, s.v.DY, s.v.DZ)
}
func (s *sexpVec) Type() *zygo.RegisteredType { return nil }

// sexpEnvelope wraps an axis-aligned bounding box.
type sexpEnvelope struct {
	st *evalState
	e  *geometry.Envelope[float64]
}

func (s *sexpEnvelope) SexpString(ps *zygo.PrintState) string {
	ar := s.st.ar
	return fmt.Sprintf("(envelope (%g %g %g) (%g %g %g))",
		s.e.XMin(ar), s.e.YMin(ar), s.e.ZMin(ar),
		s.e.XMax(ar), s.e.YMax(ar), s.e.ZMax(ar))
}
func (s *sexpEnvelope) Type() *zygo.RegisteredType { return nil }

func formatGeom(ar geometry.Arith[float64], g geometry.Geometry[float64]) string {
	switch s := g.(type) {
	case *geometry.Point[float64]:
		return fmt.Sprintf("(point %g %g %g)", s.X(ar), s.Y(ar), s.Z(ar))
	case *geometry.LineSegment[float64]:
		return fmt.Sprintf("(segment %s %s)", formatGeom(ar, s.P()), formatGeom(ar, s.Q(ar)))
	case *geometry.Line[float64]:
		v := s.Direction()
		return fmt.Sprintf("(line %s (vec %g %g %g))", formatGeom(ar, s.P()), v.DX, v.DY, v.DZ)
	case *geometry.Plane[float64]:
		n := s.Normal()
		return fmt.Sprintf("(plane %s (vec %g %g %g))", formatGeom(ar, s.P()), n.DX, n.DY, n.DZ)
	case *geometry.Triangle[float64]:
		return fmt.Sprintf("(triangle %s %s %s)",
			formatGeom(ar, s.P()), formatGeom(ar, s.Q()), formatGeom(ar, s.R()))
	case *geometry.Rectangle[float64]:
		return fmt.Sprintf("(rectangle %s %s %s %s)",
			formatGeom(ar, s.P()), formatGeom(ar, s.Q()), formatGeom(ar, s.R()), formatGeom(ar, s.S()))
	case *geometry.Tetrahedron[float64]:
		return fmt.Sprintf("(tetrahedron %s %s %s %s)",
			formatGeom(ar, s.P()), formatGeom(ar, s.Q()), formatGeom(ar, s.R()), formatGeom(ar, s.S()))
	case *geometry.ConvexHull[float64]:
		var b strings.Builder
		b.WriteString("(hull")
		for _, p := range s.Points() {
			b.WriteString(" " + formatGeom(ar, p))
		}
		b.WriteString(")")
		return b.String()
	case *geometry.Polygon[float64]:
		return fmt.Sprintf("(polygon :parts %d :holes %d)", len(s.Parts()), len(s.Holes()))
	}
	return "nil"
}

// toFloat extracts a float64 from a numeric Sexp.
func toFloat(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toGeom(s zygo.Sexp) (geometry.Geometry[float64], error) {
	if g, ok := s.(*sexpGeom); ok {
		return g.g, nil
	}
	return nil, fmt.Errorf("expected geometry, got %T (%s)", s, s.SexpString(nil))
}

func toPoint(s zygo.Sexp) (*geometry.Point[float64], error) {
	g, err := toGeom(s)
	if err != nil {
		return nil, err
	}
	p, ok := g.(*geometry.Point[float64])
	if !ok {
		return nil, fmt.Errorf("expected point, got %s", g.Kind())
	}
	return p, nil
}

func toLine(s zygo.Sexp) (*geometry.Line[float64], error) {
	g, err := toGeom(s)
	if err != nil {
		return nil, err
	}
	l, ok := g.(*geometry.Line[float64])
	if !ok {
		return nil, fmt.Errorf("expected line, got %s", g.Kind())
	}
	return l, nil
}

// toPointList converts a Lisp list or array of point geometries.
func toPointList(s zygo.Sexp) ([]*geometry.Point[float64], error) {
	var items []zygo.Sexp
	switch v := s.(type) {
	case *zygo.SexpPair:
		arr, err := zygo.ListToArray(v)
		if err != nil {
			return nil, err
		}
		items = arr
	case *zygo.SexpArray:
		items = v.Val
	default:
		return nil, fmt.Errorf("expected list of points, got %T", s)
	}
	pts := make([]*geometry.Point[float64], 0, len(items))
	for i, it := range items {
		p, err := toPoint(it)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		pts = append(pts, p)
	}
	return pts, nil
}

// wantPoints extracts exactly n point arguments.
func wantPoints(name string, args []zygo.Sexp, n int) ([]*geometry.Point[float64], error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s requires %d points, got %d arguments", name, n, len(args))
	}
	pts := make([]*geometry.Point[float64], n)
	for i, a := range args {
		p, err := toPoint(a)
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", name, i+1, err)
		}
		pts[i] = p
	}
	return pts, nil
}

// registerBuiltins installs the geometry builtins into a zygomys environment.
// All builtins read the strategy through st so that (epsilon e) takes effect
// for the rest of the script.
func registerBuiltins(env *zygo.Zlisp, st *evalState) {

	geomResult := func(g geometry.Geometry[float64], err error) (zygo.Sexp, error) {
		if err != nil {
			return zygo.SexpNull, err
		}
		if g == nil {
			return zygo.SexpNull, nil
		}
		return &sexpGeom{st: st, g: g}, nil
	}

	// (point x y z)
	env.AddFunction("point", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("point requires 3 coordinates, got %d", len(args))
		}
		var c [3]float64
		for i, a := range args {
			f, err := toFloat(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("point: %w", err)
			}
			c[i] = f
		}
		return &sexpGeom{st: st, g: geometry.NewPoint(st.ar, c[0], c[1], c[2])}, nil
	})

	// (vec dx dy dz)
	env.AddFunction("vec", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec requires 3 components, got %d", len(args))
		}
		var c [3]float64
		for i, a := range args {
			f, err := toFloat(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec: %w", err)
			}
			c[i] = f
		}
		return &sexpVec{v: geometry.NewVector(c[0], c[1], c[2])}, nil
	})

	// (line p q)
	env.AddFunction("line", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pts, err := wantPoints("line", args, 2)
		if err != nil {
			return zygo.SexpNull, err
		}
		return geomResult(geometry.NewLine(st.ar, pts[0], pts[1]))
	})

	// (segment p q)
	env.AddFunction("segment", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pts, err := wantPoints("segment", args, 2)
		if err != nil {
			return zygo.SexpNull, err
		}
		return geomResult(geometry.NewLineSegment(st.ar, pts[0], pts[1]))
	})

	// (plane p q r)
	env.AddFunction("plane", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pts, err := wantPoints("plane", args, 3)
		if err != nil {
			return zygo.SexpNull, err
		}
		return geomResult(geometry.NewPlane(st.ar, pts[0], pts[1], pts[2]))
	})

	// (triangle p q r)
	env.AddFunction("triangle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pts, err := wantPoints("triangle", args, 3)
		if err != nil {
			return zygo.SexpNull, err
		}
		return geomResult(geometry.NewTriangle(st.ar, pts[0], pts[1], pts[2]))
	})

	// (rectangle p q r s)
	env.AddFunction("rectangle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pts, err := wantPoints("rectangle", args, 4)
		if err != nil {
			return zygo.SexpNull, err
		}
		return geomResult(geometry.NewRectangle(st.ar, pts[0], pts[1], pts[2], pts[3]))
	})

	// (tetrahedron p q r s)
	env.AddFunction("tetrahedron", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pts, err := wantPoints("tetrahedron", args, 4)
		if err != nil {
			return zygo.SexpNull, err
		}
		return geomResult(geometry.NewTetrahedron(st.ar, pts[0], pts[1], pts[2], pts[3]))
	})

	// (polygon (list p1 p2 p3 ...) hole-list...)
	env.AddFunction("polygon", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("polygon requires an outer ring")
		}
		outer, err := toPointList(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("polygon: outer ring: %w", err)
		}
		holes := make([][]*geometry.Point[float64], 0, len(args)-1)
		for i, a := range args[1:] {
			ring, err := toPointList(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("polygon: hole %d: %w", i+1, err)
			}
			holes = append(holes, ring)
		}
		return geomResult(geometry.NewPolygonFromRings(st.ar, outer, holes...))
	})

	// (intersect a b) -> geometry or nil
	env.AddFunction("intersect", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		a, b, err := twoGeoms("intersect", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return geomResult(geometry.Intersection(st.ar, a, b))
	})

	// (intersects a b) -> bool
	env.AddFunction("intersects", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		a, b, err := twoGeoms("intersects", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		hit, err := geometry.Intersects(st.ar, a, b)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &zygo.SexpBool{Val: hit}, nil
	})

	// (distance a b) -> float
	env.AddFunction("distance", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		a, b, err := twoGeoms("distance", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		d, err := geometry.Distance(st.ar, a, b)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &zygo.SexpFloat{Val: d}, nil
	})

	// (translate g (vec dx dy dz)) -> g, shifted in place
	env.AddFunction("translate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("translate requires a geometry and a vec")
		}
		sg, ok := args[0].(*sexpGeom)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("translate: expected geometry, got %T", args[0])
		}
		v, ok := args[1].(*sexpVec)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("translate: expected vec, got %T", args[1])
		}
		if err := translateGeom(st.ar, sg.g, v.v); err != nil {
			return zygo.SexpNull, err
		}
		return sg, nil
	})

	// (rotate g axis theta) -> fresh rotated geometry
	env.AddFunction("rotate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("rotate requires a geometry, an axis line and an angle")
		}
		g, err := toGeom(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate: %w", err)
		}
		axis, err := toLine(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate: axis: %w", err)
		}
		theta, err := toFloat(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate: angle: %w", err)
		}
		return geomResult(rotateGeom(st.ar, g, axis, theta))
	})

	// (envelope g) -> bounding box, nil for unbounded geometries
	env.AddFunction("envelope", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("envelope requires one geometry")
		}
		g, err := toGeom(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("envelope: %w", err)
		}
		e := g.Envelope(st.ar)
		if e == nil {
			return zygo.SexpNull, nil
		}
		return &sexpEnvelope{st: st, e: e}, nil
	})

	// (equals a b) -> bool
	env.AddFunction("equals", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		a, b, err := twoGeoms("equals", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &zygo.SexpBool{Val: equalsGeom(st.ar, a, b)}, nil
	})

	// (epsilon e) -> e, switches tolerance for the rest of the script
	env.AddFunction("epsilon", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("epsilon requires one number")
		}
		e, err := toFloat(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("epsilon: %w", err)
		}
		if e < 0 {
			return zygo.SexpNull, fmt.Errorf("epsilon must be non-negative, got %g", e)
		}
		st.ar = geometry.Approx(e)
		return &zygo.SexpFloat{Val: e}, nil
	})
}

func twoGeoms(name string, args []zygo.Sexp) (a, b geometry.Geometry[float64], err error) {
	if len(args) != 2 {
		return nil, nil, fmt.Errorf("%s requires two geometries, got %d arguments", name, len(args))
	}
	if a, err = toGeom(args[0]); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", name, err)
	}
	if b, err = toGeom(args[1]); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", name, err)
	}
	return a, b, nil
}

func translateGeom(ar geometry.Arith[float64], g geometry.Geometry[float64], v geometry.Vector[float64]) error {
	switch s := g.(type) {
	case *geometry.Point[float64]:
		s.Translate(ar, v)
	case *geometry.Line[float64]:
		s.Translate(ar, v)
	case *geometry.LineSegment[float64]:
		s.Translate(ar, v)
	case *geometry.Plane[float64]:
		s.Translate(ar, v)
	case *geometry.Triangle[float64]:
		s.Translate(ar, v)
	case *geometry.Rectangle[float64]:
		s.Translate(ar, v)
	case *geometry.Tetrahedron[float64]:
		s.Translate(ar, v)
	case *geometry.ConvexHull[float64]:
		s.Translate(ar, v)
	case *geometry.Polygon[float64]:
		s.Translate(ar, v)
	default:
		return fmt.Errorf("translate: unsupported geometry %s", g.Kind())
	}
	return nil
}

func rotateGeom(ar geometry.Arith[float64], g geometry.Geometry[float64], axis *geometry.Line[float64], theta float64) (geometry.Geometry[float64], error) {
	switch s := g.(type) {
	case *geometry.Point[float64]:
		return s.Rotate(ar, axis, theta), nil
	case *geometry.Line[float64]:
		return s.Rotate(ar, axis, theta)
	case *geometry.LineSegment[float64]:
		return s.Rotate(ar, axis, theta)
	case *geometry.Plane[float64]:
		return s.Rotate(ar, axis, theta)
	case *geometry.Triangle[float64]:
		return s.Rotate(ar, axis, theta)
	case *geometry.Rectangle[float64]:
		return s.Rotate(ar, axis, theta)
	case *geometry.Tetrahedron[float64]:
		return s.Rotate(ar, axis, theta)
	case *geometry.ConvexHull[float64]:
		return s.Rotate(ar, axis, theta)
	case *geometry.Polygon[float64]:
		return s.Rotate(ar, axis, theta)
	}
	return nil, fmt.Errorf("rotate: unsupported geometry %s", g.Kind())
}

func equalsGeom(ar geometry.Arith[float64], a, b geometry.Geometry[float64]) bool {
	switch s := a.(type) {
	case *geometry.Point[float64]:
		o, ok := b.(*geometry.Point[float64])
		return ok && s.Equals(ar, o)
	case *geometry.Line[float64]:
		o, ok := b.(*geometry.Line[float64])
		return ok && s.Equals(ar, o)
	case *geometry.LineSegment[float64]:
		o, ok := b.(*geometry.LineSegment[float64])
		return ok && s.Equals(ar, o)
	case *geometry.Plane[float64]:
		o, ok := b.(*geometry.Plane[float64])
		return ok && s.Equals(ar, o)
	case *geometry.Triangle[float64]:
		o, ok := b.(*geometry.Triangle[float64])
		return ok && s.Equals(ar, o)
	case *geometry.Rectangle[float64]:
		o, ok := b.(*geometry.Rectangle[float64])
		return ok && s.Equals(ar, o)
	case *geometry.Tetrahedron[float64]:
		o, ok := b.(*geometry.Tetrahedron[float64])
		return ok && s.Equals(ar, o)
	case *geometry.ConvexHull[float64]:
		o, ok := b.(*geometry.ConvexHull[float64])
		return ok && s.Equals(ar, o)
	}
	return false
}
