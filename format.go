package calc

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Format renders a number for display. Integers are plain digits and
// Rationals are n/d, or just n when the denominator is 1. Floats within 1e-10
// of an integer print as that integer. Complex numbers print as "re + imi",
// hiding either part when its magnitude is below 1e-10 and writing a unit
// imaginary part as a bare i.
func Format(x Number) string {
	switch x.kind {
	case Integer:
		return x.bigint().String()
	case Rational:
		if x.r.IsInt() {
			return x.r.Num().String()
		}
		return x.r.Num().String() + "/" + x.r.Denom().String()
	case Float:
		return formatFloat(x.f)
	case Complex:
		return formatComplex(x.c)
	default:
		panic("calc: invalid number kind " + x.kind.String())
	}
}

// String formats the number as with Format.
func (n Number) String() string {
	return Format(n)
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	if r := math.Round(f); math.Abs(f-r) < epsilon && math.Abs(r) < 1<<63 {
		return strconv.FormatInt(int64(r), 10)
	}
	if a := math.Abs(f); 1e-4 <= a && a < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatComplex(c complex128) string {
	re, im := real(c), imag(c)
	if isNegligible(im) {
		return formatFloat(re)
	}
	ims := formatFloat(math.Abs(im))
	if ims == "1" {
		ims = ""
	}
	if isNegligible(re) {
		if im < 0 {
			return "-" + ims + "i"
		}
		return ims + "i"
	}
	sign := " + "
	if im < 0 {
		sign = " - "
	}
	return formatFloat(re) + sign + ims + "i"
}

// ErrUnsupportedConversion is matched by errors from converting a number
// that has no integer representation to another base.
var ErrUnsupportedConversion = errors.New("unsupported conversion")

// ConversionError is an error converting a number to another base.
// ConversionError unwraps to ErrUnsupportedConversion.
type ConversionError struct {
	// X is the number that could not be converted.
	X Number
	// Base is the name of the target base, "hex" or "bin".
	Base string
}

func (err *ConversionError) Error() string {
	return "cannot convert " + err.X.kind.String() + " " + Format(err.X) + " to " + err.Base
}

func (err *ConversionError) Unwrap() error {
	return ErrUnsupportedConversion
}

// ToHex formats an Integer, or a Float truncated to a 64-bit integer, in
// uppercase hexadecimal with a 0x prefix. Negative values are written with a
// leading minus sign, e.g. -0xFF.
func ToHex(x Number) (string, error) {
	n, err := convertible(x, "hex")
	if err != nil {
		return "", err
	}
	return radix(n, "0x", 16), nil
}

// ToBin formats an Integer, or a Float truncated to a 64-bit integer, in
// binary with a 0b prefix. Negative values are written with a leading minus
// sign.
func ToBin(x Number) (string, error) {
	n, err := convertible(x, "bin")
	if err != nil {
		return "", err
	}
	return radix(n, "0b", 2), nil
}

// convertible returns the integer value to use for a base conversion of x.
func convertible(x Number, base string) (*big.Int, error) {
	switch x.kind {
	case Integer:
		return x.bigint(), nil
	case Float:
		f := math.Trunc(x.f)
		// float64(math.MaxInt64) rounds up to 2^63, which is out of range.
		if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return nil, &ConversionError{X: x, Base: base}
		}
		return big.NewInt(int64(f)), nil
	default:
		return nil, &ConversionError{X: x, Base: base}
	}
}

func radix(n *big.Int, prefix string, base int) string {
	var b strings.Builder
	if n.Sign() < 0 {
		b.WriteByte('-')
	}
	b.WriteString(prefix)
	b.WriteString(strings.ToUpper(new(big.Int).Abs(n).Text(base)))
	return b.String()
}
