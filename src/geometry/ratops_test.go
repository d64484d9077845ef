package geometry

import (
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func rat(s string) *big.Rat {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		panic(fmt.Errorf("bad rational literal %q", s))
	}
	return r
}

func TestRatRound(t *testing.T) {
	for idx, tc := range []struct {
		in   string
		oom  int
		mode big.RoundingMode
		out  string
	}{
		{"1/3", -2, big.ToZero, "33/100"},
		{"1/3", -2, big.AwayFromZero, "34/100"},
		{"1/3", -2, big.ToNegativeInf, "33/100"},
		{"1/3", -2, big.ToPositiveInf, "34/100"},
		{"-1/3", -2, big.ToZero, "-33/100"},
		{"-1/3", -2, big.ToNegativeInf, "-34/100"},
		{"-1/3", -2, big.ToPositiveInf, "-33/100"},
		{"1/2", 0, big.ToNearestEven, "0"},
		{"3/2", 0, big.ToNearestEven, "2"},
		{"1/2", 0, big.ToNearestAway, "1"},
		{"-1/2", 0, big.ToNearestAway, "-1"},
		{"-1/2", 0, big.ToNearestEven, "0"},
		{"2/3", -3, big.ToNearestEven, "667/1000"},
		{"12345", 2, big.ToNearestEven, "12300"},
		{"12355", 2, big.ToNearestAway, "12400"},
		{"7", -6, big.ToNearestEven, "7"},
		{"0", -9, big.AwayFromZero, "0"},
	} {
		t.Run(fmt.Sprintf("%d/%s@%d", idx, tc.in, tc.oom), func(t *testing.T) {
			o := Exact(tc.oom, tc.mode)
			got := o.Round(rat(tc.in))
			require.Zerof(t, got.Cmp(rat(tc.out)), "got %s", got.RatString())
		})
	}
}

func TestRatSqrt(t *testing.T) {
	o := Exact(-12, big.ToNearestEven)

	t.Run("perfect squares are exact", func(t *testing.T) {
		for _, v := range []int64{0, 1, 4, 9, 144, 1 << 40} {
			got := o.Sqrt(o.FromInt(v))
			want := new(big.Rat).SetFloat64(math.Sqrt(float64(v)))
			require.Zerof(t, got.Cmp(want), "sqrt(%d) = %s", v, got.RatString())
		}
	})

	t.Run("result sits on the rounding grid", func(t *testing.T) {
		got := o.Sqrt(o.FromInt(2))
		scaled := new(big.Rat).Mul(got, pow10(12))
		require.True(t, scaled.IsInt(), "sqrt(2) off the 1e-12 grid: %s", got.RatString())

		sq := new(big.Rat).Mul(got, got)
		diff := new(big.Rat).Abs(new(big.Rat).Sub(sq, o.FromInt(2)))
		require.True(t, diff.Cmp(rat("1/100000000000")) < 0, "sqrt(2)^2 off by %s", diff.RatString())
	})

	t.Run("negative radicand panics", func(t *testing.T) {
		require.Panics(t, func() {
			o.Sqrt(o.FromInt(-1))
		})
	})
}

func TestRatPi(t *testing.T) {
	o := Exact(-6, big.ToNearestEven)
	require.Zero(t, o.Pi().Cmp(rat("3141593/1000000")))

	coarse := Exact(0, big.ToNearestEven)
	require.Zero(t, coarse.Pi().Cmp(rat("3")))
}

func TestRatTrig(t *testing.T) {
	o := Exact(-9, big.ToNearestEven)

	t.Run("exact at zero", func(t *testing.T) {
		require.Zero(t, o.Sin(o.FromInt(0)).Sign())
		require.Zero(t, o.Cos(o.FromInt(0)).Cmp(o.FromInt(1)))
	})

	for idx, tc := range []struct {
		arg float64
	}{
		{0.5}, {1}, {2}, {-1.25}, {100}, {-100},
	} {
		t.Run(fmt.Sprintf("%d/x=%g", idx, tc.arg), func(t *testing.T) {
			x := o.FromFloat(tc.arg)
			require.InDelta(t, math.Sin(tc.arg), o.Float64(o.Sin(x)), 1e-8)
			require.InDelta(t, math.Cos(tc.arg), o.Float64(o.Cos(x)), 1e-8)
		})
	}

	t.Run("half turn", func(t *testing.T) {
		pi := o.Pi()
		require.InDelta(t, 0, o.Float64(o.Sin(pi)), 1e-7)
		require.InDelta(t, -1, o.Float64(o.Cos(pi)), 1e-7)
	})
}

func TestRatComparisonsAreExact(t *testing.T) {
	o := Exact(-12, big.ToNearestEven)
	a := rat("1/3")
	b := rat("333333333333/1000000000000")
	require.Equal(t, 1, o.Cmp(a, b))
	require.False(t, o.Eq(a, b))
	require.True(t, o.Eq(a, rat("2/6")))
	require.True(t, o.IsZero(new(big.Rat)))
}

func TestRatFormat(t *testing.T) {
	o := Exact(-12, big.ToNearestEven)
	require.Equal(t, "7", o.Format(o.FromInt(7)))
	require.Equal(t, "1/3", o.Format(rat("1/3")))
}
