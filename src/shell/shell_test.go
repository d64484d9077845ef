package shell

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

// evalFloat runs a script whose last expression is numeric.
func evalFloat(t *testing.T, eng *Engine, src string) float64 {
	t.Helper()
	out, err := eng.Eval(src)
	require.NoError(t, err)
	f, err := strconv.ParseFloat(out, 64)
	require.NoError(t, err, "expected numeric output, got %q", out)
	return f
}

// evalBool runs a script whose last expression is boolean.
func evalBool(t *testing.T, eng *Engine, src string) bool {
	t.Helper()
	out, err := eng.Eval(src)
	require.NoError(t, err)
	b, err := strconv.ParseBool(out)
	require.NoError(t, err, "expected boolean output, got %q", out)
	return b
}

func TestEvalEmptyAndWhitespace(t *testing.T) {
	eng := NewEngine()
	for _, src := range []string{"", "   \n\t  \n  "} {
		out, err := eng.Eval(src)
		require.NoError(t, err)
		require.Equal(t, "", out)
	}
}

func TestEvalConstructors(t *testing.T) {
	eng := NewEngine()

	for name, tc := range map[string]struct {
		src  string
		want string
	}{
		"point": {
			src:  `(point 1 2 3)`,
			want: "(point 1 2 3)",
		},
		"vec": {
			src:  `(vec 0.5 0 -1)`,
			want: "(vec 0.5 0 -1)",
		},
		"segment": {
			src:  `(segment (point 0 0 0) (point 4 0 0))`,
			want: "(segment (point 0 0 0) (point 4 0 0))",
		},
		"triangle": {
			src:  `(triangle (point 0 0 0) (point 1 0 0) (point 0 1 0))`,
			want: "(triangle (point 0 0 0) (point 1 0 0) (point 0 1 0))",
		},
		"rectangle": {
			src:  `(rectangle (point 0 0 0) (point 1 0 0) (point 1 1 0) (point 0 1 0))`,
			want: "(rectangle (point 0 0 0) (point 1 0 0) (point 1 1 0) (point 0 1 0))",
		},
		"tetrahedron": {
			src:  `(tetrahedron (point 0 0 0) (point 1 0 0) (point 0 1 0) (point 0 0 1))`,
			want: "(tetrahedron (point 0 0 0) (point 1 0 0) (point 0 1 0) (point 0 0 1))",
		},
	} {
		t.Run(name, func(t *testing.T) {
			out, err := eng.Eval(tc.src)
			require.NoError(t, err)
			require.Equal(t, tc.want, out)
		})
	}
}

func TestEvalIntersect(t *testing.T) {
	eng := NewEngine()

	t.Run("crossing segments meet in a point", func(t *testing.T) {
		out, err := eng.Eval(`(intersect
			(segment (point 0 0 0) (point 4 0 0))
			(segment (point 2 -1 0) (point 2 1 0)))`)
		require.NoError(t, err)
		require.Equal(t, "(point 2 0 0)", out)
	})

	t.Run("disjoint segments evaluate to nil", func(t *testing.T) {
		out, err := eng.Eval(`(intersect
			(segment (point 0 0 0) (point 1 0 0))
			(segment (point 5 5 5) (point 6 5 5)))`)
		require.NoError(t, err)
		require.Equal(t, "nil", out)
	})

	t.Run("segment through a plane", func(t *testing.T) {
		out, err := eng.Eval(`(intersect
			(plane (point 0 0 0) (point 1 0 0) (point 0 1 0))
			(segment (point 0 0 -1) (point 0 0 1)))`)
		require.NoError(t, err)
		require.Equal(t, "(point 0 0 0)", out)
	})

	t.Run("intersects predicate", func(t *testing.T) {
		require.True(t, evalBool(t, eng, `(intersects
			(segment (point 0 0 0) (point 4 0 0))
			(segment (point 2 -1 0) (point 2 1 0)))`))
		require.False(t, evalBool(t, eng, `(intersects
			(segment (point 0 0 0) (point 1 0 0))
			(segment (point 5 5 5) (point 6 5 5)))`))
	})
}

func TestEvalDistance(t *testing.T) {
	eng := NewEngine()

	require.InDelta(t, 5, evalFloat(t, eng,
		`(distance (point 0 0 0) (point 3 4 0))`), 1e-9)
	require.InDelta(t, 5, evalFloat(t, eng,
		`(distance (plane (point 0 0 0) (point 1 0 0) (point 0 1 0)) (point 0 0 5))`), 1e-9)

	t.Run("unsupported pairs error out", func(t *testing.T) {
		_, err := eng.Eval(`(distance
			(triangle (point 0 0 0) (point 1 0 0) (point 0 1 0))
			(triangle (point 5 5 5) (point 6 5 5) (point 5 6 5)))`)
		require.Error(t, err)
	})
}

func TestEvalTransforms(t *testing.T) {
	eng := NewEngine()

	t.Run("translate shifts in place", func(t *testing.T) {
		out, err := eng.Eval(`(translate (point 1 2 3) (vec 10 0 -1))`)
		require.NoError(t, err)
		require.Equal(t, "(point 11 2 2)", out)
	})

	t.Run("translate composes across a def", func(t *testing.T) {
		out, err := eng.Eval(`
			(def p (point 0 0 0))
			(translate p (vec 1 0 0))
			(translate p (vec 0 1 0))
			p`)
		require.NoError(t, err)
		require.Equal(t, "(point 1 1 0)", out)
	})

	t.Run("rotate a half turn about z", func(t *testing.T) {
		require.True(t, evalBool(t, eng, `(equals
			(rotate (point 2 0 0) (line (point 0 0 0) (point 0 0 1)) 3.14159265358979)
			(point -2 0 0))`))
	})
}

func TestEvalEnvelope(t *testing.T) {
	eng := NewEngine()

	t.Run("bounded geometry", func(t *testing.T) {
		out, err := eng.Eval(`(envelope (segment (point 0 0 0) (point 4 2 1)))`)
		require.NoError(t, err)
		require.Equal(t, "(envelope (0 0 0) (4 2 1))", out)
	})

	t.Run("unbounded geometry has none", func(t *testing.T) {
		out, err := eng.Eval(`(envelope (line (point 0 0 0) (point 1 0 0)))`)
		require.NoError(t, err)
		require.Equal(t, "nil", out)
	})
}

func TestEvalPolygon(t *testing.T) {
	eng := NewEngine()

	out, err := eng.Eval(`(polygon
		(list (point 0 0 0) (point 6 0 0) (point 6 6 0) (point 0 6 0))
		(list (point 2 2 0) (point 4 2 0) (point 4 4 0) (point 2 4 0)))`)
	require.NoError(t, err)
	require.Contains(t, out, "polygon")
	require.Contains(t, out, ":holes 1")

	t.Run("hole points are excluded", func(t *testing.T) {
		require.False(t, evalBool(t, eng, `(intersects
			(polygon
				(list (point 0 0 0) (point 6 0 0) (point 6 6 0) (point 0 6 0))
				(list (point 2 2 0) (point 4 2 0) (point 4 4 0) (point 2 4 0)))
			(point 3 3 0))`))
		require.True(t, evalBool(t, eng, `(intersects
			(polygon
				(list (point 0 0 0) (point 6 0 0) (point 6 6 0) (point 0 6 0))
				(list (point 2 2 0) (point 4 2 0) (point 4 4 0) (point 2 4 0)))
			(point 1 1 0))`))
	})
}

func TestEvalEpsilon(t *testing.T) {
	eng := NewEngine()

	t.Run("tight tolerance separates near-equal points", func(t *testing.T) {
		require.False(t, evalBool(t, eng, `
			(epsilon 1e-12)
			(equals (point 0 0 0) (point 1e-9 0 0))`))
	})

	t.Run("loose tolerance merges them", func(t *testing.T) {
		require.True(t, evalBool(t, eng, `
			(epsilon 1e-6)
			(equals (point 0 0 0) (point 1e-9 0 0))`))
	})

	t.Run("negative tolerance is rejected", func(t *testing.T) {
		_, err := eng.Eval(`(epsilon -1)`)
		require.Error(t, err)
	})

	t.Run("the switch does not leak across runs", func(t *testing.T) {
		_, err := eng.Eval(`(epsilon 100)`)
		require.NoError(t, err)
		require.False(t, evalBool(t, eng, `(equals (point 0 0 0) (point 1 0 0))`))
	})
}

func TestEvalErrors(t *testing.T) {
	eng := NewEngine()

	t.Run("degenerate construction", func(t *testing.T) {
		_, err := eng.Eval(`(line (point 1 1 1) (point 1 1 1))`)
		require.Error(t, err)
	})

	t.Run("wrong argument types", func(t *testing.T) {
		_, err := eng.Eval(`(point 1 2 "three")`)
		require.Error(t, err)
		_, err = eng.Eval(`(distance 1 2)`)
		require.Error(t, err)
	})

	t.Run("wrong arity", func(t *testing.T) {
		_, err := eng.Eval(`(point 1 2)`)
		require.Error(t, err)
	})

	t.Run("parse error", func(t *testing.T) {
		_, err := eng.Eval(`(point 1 2 3`)
		require.Error(t, err)
	})

	t.Run("undefined symbol", func(t *testing.T) {
		_, err := eng.Eval(`(no-such-builtin 1)`)
		require.Error(t, err)
	})
}

func TestEvalDeterministic(t *testing.T) {
	eng := NewEngine()
	for i := 0; i < 5; i++ {
		out, err := eng.Eval(`(intersect
			(segment (point 0 0 0) (point 4 0 0))
			(segment (point 2 -1 0) (point 2 1 0)))`)
		require.NoError(t, err)
		require.Equal(t, "(point 2 0 0)", out)
	}
}
