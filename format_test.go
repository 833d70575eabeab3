package calc

import (
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		name string
		x    Number
		want string
	}{
		{"int", IntInt64(-42), "-42"},
		{"zero", Number{}, "0"},
		{"rat", RatFrac(-3, 4), "-3/4"},
		{"ratwhole", RatFrac(8, 4), "2"},
		{"float", NewFloat(2.5), "2.5"},
		{"floatint", NewFloat(3), "3"},
		{"floatnearint", NewFloat(3.00000000001), "3"},
		{"floatbelowint", NewFloat(-99.99999999999997), "-100"},
		{"floatjustbelow", NewFloat(2.99999999999), "3"},
		{"floatnotnear", NewFloat(2.9999999), "2.9999999"},
		{"floatnegzero", NewFloat(math.Copysign(0, -1)), "0"},
		{"floatsmall", NewFloat(1e-5), "1e-05"},
		{"floatmid", NewFloat(123456.789), "123456.789"},
		{"floatbigint", NewFloat(1e20), "100000000000000000000"},
		{"floathuge", NewFloat(1e300), "1e+300"},
		{"nan", NewFloat(math.NaN()), "NaN"},
		{"inf", NewFloat(math.Inf(1)), "inf"},
		{"neginf", NewFloat(math.Inf(-1)), "-inf"},
		{"complex", NewComplex(3 + 4i), "3 + 4i"},
		{"complexneg", NewComplex(3 - 4i), "3 - 4i"},
		{"unit", NewComplex(1i), "i"},
		{"negunit", NewComplex(-1i), "-i"},
		{"imag", NewComplex(2i), "2i"},
		{"negimag", NewComplex(-2.5i), "-2.5i"},
		{"unitsum", NewComplex(1 - 1i), "1 - i"},
		{"real", NewComplex(5), "5"},
		{"tinyreal", NewComplex(complex(1e-12, 2)), "2i"},
		{"tinyimag", NewComplex(complex(1, 1e-12)), "1"},
		{"zerocomplex", NewComplex(0), "0"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Format(c.x))
			assert.Equal(t, c.want, c.x.String())
			assert.Equal(t, c.want, fmt.Sprint(c.x))
		})
	}
}

func TestToHexBin(t *testing.T) {
	big64 := new(big.Int).Lsh(big.NewInt(1), 64)
	cases := []struct {
		name     string
		x        Number
		hex, bin string
	}{
		{"int", IntInt64(255), "0xFF", "0b11111111"},
		{"neg", IntInt64(-255), "-0xFF", "-0b11111111"},
		{"zero", Number{}, "0x0", "0b0"},
		{"five", IntInt64(5), "0x5", "0b101"},
		{"negfive", IntInt64(-5), "-0x5", "-0b101"},
		{"big", Int(big64), "0x10000000000000000", "0b1" + fmt.Sprintf("%064b", 0)},
		{"float", NewFloat(255.9), "0xFF", "0b11111111"},
		{"negfloat", NewFloat(-1.5), "-0x1", "-0b1"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h, err := ToHex(c.x)
			require.NoError(t, err)
			assert.Equal(t, c.hex, h)
			b, err := ToBin(c.x)
			require.NoError(t, err)
			assert.Equal(t, c.bin, b)
		})
	}
}

func TestToHexUnsupported(t *testing.T) {
	cases := []struct {
		name string
		x    Number
	}{
		{"rat", RatFrac(1, 2)},
		{"complex", NewComplex(1 + 1i)},
		{"realcomplex", NewComplex(3)},
		{"nan", NewFloat(math.NaN())},
		{"inf", NewFloat(math.Inf(1))},
		{"toobig", NewFloat(1e19)},
		{"toosmall", NewFloat(-1e19)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, err := ToHex(c.x)
			assert.Empty(t, s)
			assert.ErrorIs(t, err, ErrUnsupportedConversion)
			var ce *ConversionError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, "hex", ce.Base)

			_, err = ToBin(c.x)
			assert.ErrorIs(t, err, ErrUnsupportedConversion)
		})
	}
	_, err := ToHex(RatFrac(1, 2))
	assert.EqualError(t, err, "cannot convert Rational 1/2 to hex")
}
