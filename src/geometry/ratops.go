package geometry

import (
	"math/big"
)

// piDigits carries enough digits for order-of-magnitude precision down to
// roughly -95; irrational results are rounded well above that in practice.
const piDigits = "3.1415926535897932384626433832795028841971693993751" +
	"0582097494459230781640628620899862803482534211706798"

var (
	bigOne = big.NewInt(1)
	bigTen = big.NewInt(10)

	piRat, _ = new(big.Rat).SetString(piDigits)
)

// RatOps is the exact numeric strategy: arbitrary-precision rational
// arithmetic. Ring operations and comparisons are exact. Irrational results
// (Sqrt, Sin, Cos, Pi) are rounded to the grid of integer multiples of
// 10^OOM under Mode, producing a rational approximation whose subsequent
// comparisons are again exact.
type RatOps struct {
	// OOM is the order of magnitude of the least significant digit kept by
	// irrational operations: -3 keeps thousandths, 2 keeps hundreds.
	OOM int
	// Mode selects how values are rounded onto the 10^OOM grid.
	Mode big.RoundingMode
}

// Exact returns a RatOps strategy rounding irrational results at the given
// order of magnitude.
func Exact(oom int, mode big.RoundingMode) RatOps {
	return RatOps{OOM: oom, Mode: mode}
}

func (o RatOps) FromInt(v int64) *big.Rat {
	return new(big.Rat).SetInt64(v)
}

func (o RatOps) FromFloat(v float64) *big.Rat {
	r := new(big.Rat).SetFloat64(v)
	if r == nil {
		panic("geometry: cannot represent NaN or Inf as a rational")
	}
	return r
}

func (o RatOps) Add(a, b *big.Rat) *big.Rat { return new(big.Rat).Add(a, b) }
func (o RatOps) Sub(a, b *big.Rat) *big.Rat { return new(big.Rat).Sub(a, b) }
func (o RatOps) Mul(a, b *big.Rat) *big.Rat { return new(big.Rat).Mul(a, b) }

func (o RatOps) Div(a, b *big.Rat) *big.Rat {
	return new(big.Rat).Quo(a, b)
}

func (o RatOps) Neg(a *big.Rat) *big.Rat { return new(big.Rat).Neg(a) }
func (o RatOps) Abs(a *big.Rat) *big.Rat { return new(big.Rat).Abs(a) }

func (o RatOps) Cmp(a, b *big.Rat) int  { return a.Cmp(b) }
func (o RatOps) Sign(a *big.Rat) int    { return a.Sign() }
func (o RatOps) IsZero(a *big.Rat) bool { return a.Sign() == 0 }
func (o RatOps) Eq(a, b *big.Rat) bool  { return a.Cmp(b) == 0 }

// Round rounds a onto the grid of integer multiples of 10^OOM under Mode.
func (o RatOps) Round(a *big.Rat) *big.Rat {
	scaled := new(big.Rat).Mul(a, pow10(-o.OOM))
	n := roundRatToInt(scaled, o.Mode)
	return new(big.Rat).Mul(new(big.Rat).SetInt(n), pow10(o.OOM))
}

// Sqrt computes the square root to the strategy's order of magnitude.
// Negative arguments panic: callers derive radicands from squared magnitudes,
// which are non-negative by construction.
func (o RatOps) Sqrt(a *big.Rat) *big.Rat {
	switch a.Sign() {
	case -1:
		panic("geometry: square root of negative rational")
	case 0:
		return new(big.Rat)
	}
	prec := o.sqrtPrec(a)
	f := new(big.Float).SetPrec(prec).SetRat(a)
	s := new(big.Float).SetPrec(prec).Sqrt(f)
	r, _ := s.Rat(nil)
	return o.Round(r)
}

// sqrtPrec picks a mantissa width wide enough that the big.Float square root
// is accurate past the 10^OOM grid before rounding.
func (o RatOps) sqrtPrec(a *big.Rat) uint {
	mag := a.Num().BitLen() - a.Denom().BitLen()
	if mag < 0 {
		mag = 0
	}
	oomBits := 4 * (absInt(o.OOM) + 8)
	return uint(mag/2 + oomBits + 32)
}

func (o RatOps) Pi() *big.Rat {
	return o.Round(piRat)
}

func (o RatOps) Sin(a *big.Rat) *big.Rat {
	x := reduceAngle(a)
	x2 := new(big.Rat).Mul(x, x)
	tol := o.seriesTol()

	term := new(big.Rat).Set(x)
	sum := new(big.Rat).Set(x)
	for i := int64(1); i < 64; i++ {
		term.Mul(term, x2)
		term.Quo(term, new(big.Rat).SetInt64(2*i*(2*i+1)))
		term.Neg(term)
		sum.Add(sum, term)
		if new(big.Rat).Abs(term).Cmp(tol) < 0 {
			break
		}
	}
	return o.Round(sum)
}

func (o RatOps) Cos(a *big.Rat) *big.Rat {
	x := reduceAngle(a)
	x2 := new(big.Rat).Mul(x, x)
	tol := o.seriesTol()

	term := new(big.Rat).SetInt64(1)
	sum := new(big.Rat).SetInt64(1)
	for i := int64(1); i < 64; i++ {
		term.Mul(term, x2)
		term.Quo(term, new(big.Rat).SetInt64((2*i-1)*2*i))
		term.Neg(term)
		sum.Add(sum, term)
		if new(big.Rat).Abs(term).Cmp(tol) < 0 {
			break
		}
	}
	return o.Round(sum)
}

func (o RatOps) Float64(a *big.Rat) float64 {
	f, _ := a.Float64()
	return f
}

func (o RatOps) Format(a *big.Rat) string {
	if a.IsInt() {
		return a.Num().String()
	}
	return a.RatString()
}

// seriesTol is the truncation threshold for the sin/cos Taylor series, two
// orders of magnitude below the rounding grid.
func (o RatOps) seriesTol() *big.Rat {
	return pow10(o.OOM - 2)
}

// reduceAngle shifts x by whole turns into [-pi, pi] before series expansion.
func reduceAngle(x *big.Rat) *big.Rat {
	twoPi := new(big.Rat).Add(piRat, piRat)
	k := roundRatToInt(new(big.Rat).Quo(x, twoPi), big.ToNearestEven)
	if k.Sign() == 0 {
		return new(big.Rat).Set(x)
	}
	shift := new(big.Rat).Mul(new(big.Rat).SetInt(k), twoPi)
	return new(big.Rat).Sub(x, shift)
}

// pow10 returns 10^e as a rational for any integer e.
func pow10(e int) *big.Rat {
	p := new(big.Int).Exp(bigTen, big.NewInt(int64(absInt(e))), nil)
	if e >= 0 {
		return new(big.Rat).SetInt(p)
	}
	return new(big.Rat).SetFrac(bigOne, p)
}

// roundRatToInt rounds x to an integer under the given rounding mode.
func roundRatToInt(x *big.Rat, mode big.RoundingMode) *big.Int {
	q, r := new(big.Int).QuoRem(x.Num(), x.Denom(), new(big.Int))
	if r.Sign() == 0 {
		return q
	}
	neg := x.Sign() < 0
	// Compare twice the remainder against the denominator to detect which
	// side of the midpoint we are on.
	half := new(big.Int).Lsh(new(big.Int).Abs(r), 1).Cmp(x.Denom())

	away := false
	switch mode {
	case big.ToZero:
		// truncation, done
	case big.AwayFromZero:
		away = true
	case big.ToNegativeInf:
		away = neg
	case big.ToPositiveInf:
		away = !neg
	case big.ToNearestAway:
		away = half >= 0
	default: // big.ToNearestEven
		if half > 0 {
			away = true
		} else if half == 0 {
			away = q.Bit(0) == 1
		}
	}
	if away {
		if neg {
			q.Sub(q, bigOne)
		} else {
			q.Add(q, bigOne)
		}
	}
	return q
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
