package calc

import (
	"math"
	"math/big"
	"math/cmplx"
)

// Add returns x + y.
func Add(x, y Number) Number {
	x, y, k := promote2(x, y)
	switch k {
	case Integer:
		return mkint(new(big.Int).Add(x.bigint(), y.bigint()))
	case Rational:
		return mkrat(new(big.Rat).Add(x.r, y.r))
	case Float:
		return NewFloat(x.f + y.f)
	default:
		return NewComplex(x.c + y.c)
	}
}

// Sub returns x - y.
func Sub(x, y Number) Number {
	x, y, k := promote2(x, y)
	switch k {
	case Integer:
		return mkint(new(big.Int).Sub(x.bigint(), y.bigint()))
	case Rational:
		return mkrat(new(big.Rat).Sub(x.r, y.r))
	case Float:
		return NewFloat(x.f - y.f)
	default:
		return NewComplex(x.c - y.c)
	}
}

// Mul returns x * y.
func Mul(x, y Number) Number {
	x, y, k := promote2(x, y)
	switch k {
	case Integer:
		return mkint(new(big.Int).Mul(x.bigint(), y.bigint()))
	case Rational:
		return mkrat(new(big.Rat).Mul(x.r, y.r))
	case Float:
		return NewFloat(x.f * y.f)
	default:
		return NewComplex(x.c * y.c)
	}
}

// Quo returns x / y. The quotient of two Integers is an exact Rational. An
// exact division by zero is carried out in floating point instead, giving an
// infinity or NaN.
func Quo(x, y Number) Number {
	if x.kind == Integer && y.kind == Integer {
		if y.bigint().Sign() == 0 {
			return floatOp(x, y, func(a, b float64) float64 { return a / b })
		}
		return mkrat(new(big.Rat).SetFrac(x.bigint(), y.bigint()))
	}
	x, y, k := promote2(x, y)
	switch k {
	case Rational:
		if y.r.Sign() == 0 {
			return floatOp(x, y, func(a, b float64) float64 { return a / b })
		}
		return mkrat(new(big.Rat).Quo(x.r, y.r))
	case Float:
		return NewFloat(x.f / y.f)
	default:
		return NewComplex(x.c / y.c)
	}
}

// Rem returns the remainder of x / y truncated toward zero, so the result has
// the sign of x. Complex operands use only their real parts and give a Float.
// An exact remainder by zero is NaN.
func Rem(x, y Number) Number {
	x, y, k := promote2(x, y)
	switch k {
	case Integer:
		if y.bigint().Sign() == 0 {
			return floatOp(x, y, math.Mod)
		}
		return mkint(new(big.Int).Rem(x.bigint(), y.bigint()))
	case Rational:
		if y.r.Sign() == 0 {
			return floatOp(x, y, math.Mod)
		}
		q := new(big.Rat).Quo(x.r, y.r)
		t := new(big.Int).Quo(q.Num(), q.Denom())
		r := new(big.Rat).Mul(y.r, new(big.Rat).SetInt(t))
		return mkrat(r.Sub(x.r, r))
	case Float:
		return NewFloat(math.Mod(x.f, y.f))
	default:
		return NewFloat(math.Mod(real(x.c), real(y.c)))
	}
}

// floatOp applies op to x and y as float64s.
func floatOp(x, y Number, op func(a, b float64) float64) Number {
	a, _ := x.Real()
	b, _ := y.Real()
	return NewFloat(op(a, b))
}

// Neg returns -x.
func Neg(x Number) Number {
	switch x.kind {
	case Integer:
		return mkint(new(big.Int).Neg(x.bigint()))
	case Rational:
		return mkrat(new(big.Rat).Neg(x.r))
	case Float:
		return NewFloat(-x.f)
	default:
		return NewComplex(-x.c)
	}
}

// Pow returns x raised to the power y. An Integer raised to a non-negative
// Integer that fits in a uint64 is an exact Integer. Every other case is
// computed through the complex exponential, so e.g. (-8)^(1/3) is the
// principal complex cube root rather than NaN.
func Pow(x, y Number) Number {
	if x.kind == Integer && y.kind == Integer {
		e := y.bigint()
		if e.Sign() >= 0 && e.IsUint64() {
			return mkint(new(big.Int).Exp(x.bigint(), e, nil))
		}
	}
	return NewComplex(cmplx.Pow(x.Complex128(), y.Complex128()))
}

// Sqrt returns the principal square root of x as a Complex. The square root
// of a negative real always has a positive imaginary part, regardless of the
// sign of any zero imaginary part of x.
func Sqrt(x Number) Number {
	c := x.Complex128()
	if imag(c) == 0 && real(c) < 0 {
		return NewComplex(complex(0, math.Sqrt(-real(c))))
	}
	return NewComplex(cmplx.Sqrt(c))
}

// Factorial returns x!. x must be a non-negative Integer. There is no limit
// on the size of x other than the time and memory available.
func Factorial(x Number) (Number, error) {
	if x.kind != Integer {
		return Number{}, &TypeError{Op: "!", Found: x.kind}
	}
	n := x.bigint()
	if n.Sign() < 0 {
		return Number{}, &DomainError{X: x, Func: "!", Reason: "negative argument"}
	}
	acc := big.NewInt(1)
	k := big.NewInt(2)
	one := big.NewInt(1)
	for ; k.Cmp(n) <= 0; k.Add(k, one) {
		acc.Mul(acc, k)
	}
	return mkint(acc), nil
}
