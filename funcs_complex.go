package calc

import (
	"math"
	"math/big"
	"math/cmplx"

	"github.com/zephyrtronium/bigfloat"
)

// logprec is the precision of logarithms of exact values computed outside
// the range of float64.
const logprec = 64

// ln is the natural logarithm. Exact values whose magnitude is outside the
// range of float64 are handled with arbitrary precision so that e.g. ln(10^400)
// is finite.
func ln(x Number) (Number, error) {
	if b, neg := bigLogArg(x); b != nil {
		return bigLog(b, neg, nil), nil
	}
	return NewComplex(cmplx.Log(x.Complex128())), nil
}

// log10 is the base-10 logarithm, with the same range handling as ln.
func log10(x Number) (Number, error) {
	if b, neg := bigLogArg(x); b != nil {
		ten := new(big.Float).SetPrec(logprec).SetInt64(10)
		return bigLog(b, neg, bigfloat.Log(new(big.Float).SetPrec(logprec), ten)), nil
	}
	return NewComplex(cmplx.Log10(x.Complex128())), nil
}

// bigLog computes the logarithm of b, or of -b if neg is set, dividing by
// base if it is not nil. The logarithm of a negative value has imaginary
// part pi, scaled like the real part.
func bigLog(b *big.Float, neg bool, base *big.Float) Number {
	r := bigfloat.Log(new(big.Float).SetPrec(logprec), b)
	im := 0.0
	if neg {
		im = math.Pi
	}
	if base != nil {
		r.Quo(r, base)
		d, _ := base.Float64()
		im /= d
	}
	f, _ := r.Float64()
	return NewComplex(complex(f, im))
}

// bigLogArg returns the magnitude of x as a big.Float if x is a non-zero
// Integer or Rational whose magnitude overflows or underflows float64, along
// with whether x is negative. Otherwise, the result is nil.
func bigLogArg(x Number) (*big.Float, bool) {
	var sign int
	switch x.kind {
	case Integer:
		sign = x.bigint().Sign()
	case Rational:
		sign = x.r.Sign()
	default:
		return nil, false
	}
	if sign == 0 {
		return nil, false
	}
	f, _ := x.Real()
	if f != 0 && !math.IsInf(f, 0) {
		return nil, false
	}
	b := new(big.Float).SetPrec(logprec)
	if x.kind == Integer {
		b.SetInt(x.bigint())
	} else {
		b.SetRat(x.r)
	}
	return b.Abs(b), sign < 0
}
