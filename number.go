package calc

import (
	"math"
	"math/big"
	"strconv"
)

// Kind identifies the representation of a Number. Kinds are ordered by
// promotion: an operation on two numbers of different kinds is carried out in
// the greater kind.
type Kind int8

const (
	// Integer is an arbitrary-precision signed integer.
	Integer Kind = iota
	// Rational is an arbitrary-precision fraction in lowest terms.
	Rational
	// Float is a 64-bit IEEE-754 floating-point number.
	Float
	// Complex is a pair of 64-bit floats.
	Complex
)

func (k Kind) String() string {
	switch k {
	case Integer:
		return "Integer"
	case Rational:
		return "Rational"
	case Float:
		return "Float"
	case Complex:
		return "Complex"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Number is a value of one of the four numeric kinds. Numbers are immutable;
// the zero Number is the Integer 0.
type Number struct {
	kind Kind
	i    *big.Int
	r    *big.Rat
	f    float64
	c    complex128
}

// Int creates an Integer from a copy of x.
func Int(x *big.Int) Number {
	return Number{kind: Integer, i: new(big.Int).Set(x)}
}

// IntInt64 creates an Integer.
func IntInt64(x int64) Number {
	return Number{kind: Integer, i: big.NewInt(x)}
}

// Rat creates a Rational from a copy of x. Panics if x is nil.
func Rat(x *big.Rat) Number {
	return Number{kind: Rational, r: new(big.Rat).Set(x)}
}

// RatFrac creates the Rational a/b. Panics if b is zero.
func RatFrac(a, b int64) Number {
	return Number{kind: Rational, r: big.NewRat(a, b)}
}

// NewFloat creates a Float.
func NewFloat(x float64) Number {
	return Number{kind: Float, f: x}
}

// NewComplex creates a Complex. The result is Complex even if the imaginary
// part is zero.
func NewComplex(x complex128) Number {
	return Number{kind: Complex, c: x}
}

// Non-copying constructors for values this package has just allocated.
func mkint(x *big.Int) Number { return Number{kind: Integer, i: x} }
func mkrat(x *big.Rat) Number { return Number{kind: Rational, r: x} }

// Kind returns the number's representation.
func (n Number) Kind() Kind {
	return n.kind
}

// Int returns a copy of the value of an Integer. ok is false for any other
// kind.
func (n Number) Int() (x *big.Int, ok bool) {
	if n.kind != Integer {
		return nil, false
	}
	return new(big.Int).Set(n.bigint()), true
}

// Rat returns the value of an Integer or Rational as a new big.Rat. ok is
// false for Float and Complex.
func (n Number) Rat() (x *big.Rat, ok bool) {
	switch n.kind {
	case Integer:
		return new(big.Rat).SetInt(n.bigint()), true
	case Rational:
		return new(big.Rat).Set(n.r), true
	default:
		return nil, false
	}
}

// Real returns the number as a float64. ok is false if the number is Complex
// with an imaginary part that would not be hidden by Format. Exact values too
// large for a float64 become infinities.
func (n Number) Real() (x float64, ok bool) {
	switch n.kind {
	case Integer:
		f, _ := new(big.Float).SetInt(n.bigint()).Float64()
		return f, true
	case Rational:
		f, _ := n.r.Float64()
		return f, true
	case Float:
		return n.f, true
	case Complex:
		if !isNegligible(imag(n.c)) {
			return 0, false
		}
		return real(n.c), true
	default:
		panic("calc: invalid number kind " + n.kind.String())
	}
}

// Complex128 returns the number converted to a complex value.
func (n Number) Complex128() complex128 {
	if n.kind == Complex {
		return n.c
	}
	f, _ := n.Real()
	return complex(f, 0)
}

// bigint returns the Integer value, treating the zero Number as 0.
func (n Number) bigint() *big.Int {
	if n.i == nil {
		return new(big.Int)
	}
	return n.i
}

// IsZero reports whether the number is zero in its own representation.
func (n Number) IsZero() bool {
	switch n.kind {
	case Integer:
		return n.bigint().Sign() == 0
	case Rational:
		return n.r.Sign() == 0
	case Float:
		return n.f == 0
	case Complex:
		return n.c == 0
	default:
		panic("calc: invalid number kind " + n.kind.String())
	}
}

// Equal reports whether a and b are the same kind and the same value in that
// kind. Float and Complex compare with IEEE semantics, so NaN is unequal to
// itself.
func Equal(a, b Number) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case Integer:
		return a.bigint().Cmp(b.bigint()) == 0
	case Rational:
		return a.r.Cmp(b.r) == 0
	case Float:
		return a.f == b.f
	case Complex:
		return a.c == b.c
	default:
		panic("calc: invalid number kind " + a.kind.String())
	}
}

// promote converts x to kind k, which must be no less than x's kind.
func promote(x Number, k Kind) Number {
	if x.kind == k {
		return x
	}
	switch k {
	case Rational:
		r, _ := x.Rat()
		return mkrat(r)
	case Float:
		f, _ := x.Real()
		return NewFloat(f)
	case Complex:
		return NewComplex(x.Complex128())
	default:
		panic("calc: cannot promote " + x.kind.String() + " to " + k.String())
	}
}

// promote2 converts both operands to the greater of their kinds.
func promote2(x, y Number) (Number, Number, Kind) {
	k := x.kind
	if y.kind > k {
		k = y.kind
	}
	return promote(x, k), promote(y, k), k
}

// isNegligible reports whether a float component is close enough to zero to be
// hidden in display.
func isNegligible(x float64) bool {
	return math.Abs(x) < epsilon
}

// epsilon is the magnitude below which a component is displayed as zero.
const epsilon = 1e-10
