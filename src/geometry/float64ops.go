package geometry

import (
	"math"
	"strconv"
)

const (
	Infinity = math.MaxFloat64
	Epsilon  = 1.19209e-07 // defined by clang for x86
)

// Float64Ops is the approximate numeric strategy: IEEE double arithmetic with
// an absolute epsilon tolerance for equality, sign and "on-shape" tests.
type Float64Ops struct {
	Eps float64
}

// Approx returns a Float64Ops strategy with the given absolute tolerance.
func Approx(eps float64) Float64Ops {
	return Float64Ops{Eps: eps}
}

// ApproxDefault returns a Float64Ops strategy using the package Epsilon.
func ApproxDefault() Float64Ops {
	return Float64Ops{Eps: Epsilon}
}

func (o Float64Ops) FromInt(v int64) float64     { return float64(v) }
func (o Float64Ops) FromFloat(v float64) float64 { return v }

func (o Float64Ops) Add(a, b float64) float64 { return a + b }
func (o Float64Ops) Sub(a, b float64) float64 { return a - b }
func (o Float64Ops) Mul(a, b float64) float64 { return a * b }
func (o Float64Ops) Div(a, b float64) float64 { return a / b }
func (o Float64Ops) Neg(a float64) float64    { return -a }
func (o Float64Ops) Abs(a float64) float64    { return math.Abs(a) }

func (o Float64Ops) Cmp(a, b float64) int {
	if math.Abs(a-b) <= o.Eps {
		return 0
	}
	if a < b {
		return -1
	}
	return 1
}

func (o Float64Ops) Sign(a float64) int {
	return o.Cmp(a, 0)
}

func (o Float64Ops) IsZero(a float64) bool {
	return math.Abs(a) <= o.Eps
}

func (o Float64Ops) Eq(a, b float64) bool {
	return math.Abs(a-b) <= o.Eps
}

// Sqrt snaps arguments within tolerance below zero to zero, so that squared
// magnitudes perturbed by roundoff do not produce NaN.
func (o Float64Ops) Sqrt(a float64) float64 {
	if a < 0 && a >= -o.Eps {
		return 0
	}
	return math.Sqrt(a)
}

func (o Float64Ops) Pi() float64           { return math.Pi }
func (o Float64Ops) Sin(a float64) float64 { return math.Sin(a) }
func (o Float64Ops) Cos(a float64) float64 { return math.Cos(a) }

func (o Float64Ops) Float64(a float64) float64 { return a }

func (o Float64Ops) Format(a float64) string {
	return strconv.FormatFloat(a, 'g', -1, 64)
}
