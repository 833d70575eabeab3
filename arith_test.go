package calc

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArith(t *testing.T) {
	inf := math.Inf(1)
	cases := []struct {
		name string
		got  Number
		kind Kind
		want string
	}{
		{"add-int", Add(IntInt64(1), IntInt64(2)), Integer, "3"},
		{"add-int-rat", Add(IntInt64(1), RatFrac(1, 2)), Rational, "3/2"},
		{"add-rat", Add(RatFrac(1, 3), RatFrac(1, 3)), Rational, "2/3"},
		{"add-rat-whole", Add(RatFrac(1, 2), RatFrac(1, 2)), Rational, "1"},
		{"add-int-float", Add(IntInt64(1), NewFloat(0.5)), Float, "1.5"},
		{"add-rat-float", Add(RatFrac(1, 4), NewFloat(0.5)), Float, "0.75"},
		{"add-float-complex", Add(NewFloat(1), NewComplex(1i)), Complex, "1 + i"},
		{"add-zero", Add(Number{}, IntInt64(7)), Integer, "7"},
		{"add-big", Add(Int(new(big.Int).Lsh(big.NewInt(1), 100)), IntInt64(1)), Integer, "1267650600228229401496703205377"},
		{"sub-int", Sub(IntInt64(5), IntInt64(7)), Integer, "-2"},
		{"sub-complex", Sub(NewComplex(3+2i), IntInt64(3)), Complex, "2i"},
		{"mul-rat-int", Mul(RatFrac(2, 3), IntInt64(3)), Rational, "2"},
		{"mul-complex", Mul(NewComplex(1i), NewComplex(1i)), Complex, "-1"},
		{"quo-int", Quo(IntInt64(1), IntInt64(3)), Rational, "1/3"},
		{"quo-int-whole", Quo(IntInt64(6), IntInt64(3)), Rational, "2"},
		{"quo-neg", Quo(IntInt64(2), IntInt64(-4)), Rational, "-1/2"},
		{"quo-int-zero", Quo(IntInt64(1), IntInt64(0)), Float, "inf"},
		{"quo-neg-zero", Quo(IntInt64(-1), IntInt64(0)), Float, "-inf"},
		{"quo-zero-zero", Quo(IntInt64(0), IntInt64(0)), Float, "NaN"},
		{"quo-rat-zero", Quo(RatFrac(1, 2), IntInt64(0)), Float, "inf"},
		{"quo-rat", Quo(RatFrac(1, 2), RatFrac(1, 4)), Rational, "2"},
		{"quo-float-zero", Quo(NewFloat(1), NewFloat(0)), Float, "inf"},
		{"rem-int", Rem(IntInt64(7), IntInt64(3)), Integer, "1"},
		{"rem-neg", Rem(IntInt64(-7), IntInt64(3)), Integer, "-1"},
		{"rem-divneg", Rem(IntInt64(7), IntInt64(-3)), Integer, "1"},
		{"rem-zero", Rem(IntInt64(7), IntInt64(0)), Float, "NaN"},
		{"rem-rat", Rem(RatFrac(7, 2), IntInt64(2)), Rational, "3/2"},
		{"rem-rat-neg", Rem(RatFrac(-7, 2), IntInt64(2)), Rational, "-3/2"},
		{"rem-rat-zero", Rem(RatFrac(1, 2), IntInt64(0)), Float, "NaN"},
		{"rem-float", Rem(NewFloat(7.5), NewFloat(2)), Float, "1.5"},
		{"rem-complex", Rem(NewComplex(7+1i), IntInt64(4)), Float, "3"},
		{"neg-int", Neg(IntInt64(3)), Integer, "-3"},
		{"neg-rat", Neg(RatFrac(1, 3)), Rational, "-1/3"},
		{"neg-float", Neg(NewFloat(inf)), Float, "-inf"},
		{"neg-complex", Neg(NewComplex(1i)), Complex, "-i"},
		{"pow-int", Pow(IntInt64(2), IntInt64(10)), Integer, "1024"},
		{"pow-big", Pow(IntInt64(2), IntInt64(100)), Integer, "1267650600228229401496703205376"},
		{"pow-zero", Pow(IntInt64(0), IntInt64(0)), Integer, "1"},
		{"pow-negexp", Pow(IntInt64(2), IntInt64(-1)), Complex, "0.5"},
		{"pow-rat", Pow(RatFrac(1, 2), IntInt64(2)), Complex, "0.25"},
		{"pow-negbase", Pow(IntInt64(-1), NewFloat(0.5)), Complex, "i"},
		{"sqrt-int", Sqrt(IntInt64(4)), Complex, "2"},
		{"sqrt-neg", Sqrt(IntInt64(-1)), Complex, "i"},
		{"sqrt-negzero", Sqrt(NewComplex(complex(-4, math.Copysign(0, -1)))), Complex, "2i"},
		{"sqrt-rat", Sqrt(RatFrac(1, 4)), Complex, "0.5"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.kind, c.got.Kind())
			assert.Equal(t, c.want, Format(c.got))
		})
	}
}

func TestPowPrincipalRoot(t *testing.T) {
	r := Pow(IntInt64(-8), RatFrac(1, 3))
	require.Equal(t, Complex, r.Kind())
	c := r.Complex128()
	assert.InDelta(t, 1, real(c), 1e-12)
	assert.InDelta(t, math.Sqrt(3), imag(c), 1e-12)
}

func TestFactorial(t *testing.T) {
	cases := []struct {
		x    int64
		want string
	}{
		{0, "1"},
		{1, "1"},
		{5, "120"},
		{25, "15511210043330985984000000"},
	}
	for _, c := range cases {
		r, err := Factorial(IntInt64(c.x))
		require.NoError(t, err)
		assert.Equal(t, Integer, r.Kind())
		assert.Equal(t, c.want, Format(r), "%d!", c.x)
	}

	_, err := Factorial(IntInt64(-1))
	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "!", de.Func)
	assert.Contains(t, err.Error(), "-1")

	_, err = Factorial(NewFloat(3))
	var te *TypeError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, Float, te.Found)
	assert.Equal(t, "!: unsupported operand kind Float", err.Error())
}

func TestNumberAccessors(t *testing.T) {
	x := IntInt64(12)
	v, ok := x.Int()
	require.True(t, ok)
	v.SetInt64(99)
	assert.Equal(t, "12", Format(x), "mutating a copy changed the number")

	_, ok = NewFloat(1).Int()
	assert.False(t, ok)

	r, ok := IntInt64(3).Rat()
	require.True(t, ok)
	assert.Equal(t, "3/1", r.String())
	_, ok = NewFloat(1).Rat()
	assert.False(t, ok)

	f, ok := RatFrac(1, 4).Real()
	require.True(t, ok)
	assert.Equal(t, 0.25, f)
	_, ok = NewComplex(1 + 1i).Real()
	assert.False(t, ok)
	f, ok = NewComplex(2).Real()
	require.True(t, ok)
	assert.Equal(t, 2.0, f)
	f, ok = NewComplex(complex(-1, 1e-16)).Real()
	require.True(t, ok, "negligible imaginary part should convert")
	assert.Equal(t, -1.0, f)
	_, ok = NewComplex(complex(1, 1e-9)).Real()
	assert.False(t, ok)

	huge := Pow(IntInt64(10), IntInt64(400))
	f, ok = huge.Real()
	require.True(t, ok)
	assert.True(t, math.IsInf(f, 1))

	assert.Equal(t, complex(0.5, 0), RatFrac(1, 2).Complex128())
	assert.Equal(t, Integer, Number{}.Kind())
	assert.True(t, Number{}.IsZero())
	assert.True(t, NewComplex(0).IsZero())
	assert.False(t, RatFrac(1, 3).IsZero())
}

func TestConstructorsCopy(t *testing.T) {
	b := big.NewInt(5)
	x := Int(b)
	b.SetInt64(6)
	assert.Equal(t, "5", Format(x))

	q := big.NewRat(1, 2)
	y := Rat(q)
	q.SetInt64(3)
	assert.Equal(t, "1/2", Format(y))
}

func TestEqual(t *testing.T) {
	cases := []struct {
		name string
		a, b Number
		want bool
	}{
		{"int", IntInt64(1), IntInt64(1), true},
		{"zero", Number{}, IntInt64(0), true},
		{"int-float", IntInt64(1), NewFloat(1), false},
		{"float-complex", NewFloat(1), NewComplex(1), false},
		{"rat", RatFrac(2, 4), RatFrac(1, 2), true},
		{"rat-int", RatFrac(2, 1), IntInt64(2), false},
		{"nan", NewFloat(math.NaN()), NewFloat(math.NaN()), false},
		{"complex", NewComplex(1 + 2i), NewComplex(1 + 2i), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Equal(c.a, c.b))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Integer", Integer.String())
	assert.Equal(t, "Complex", Complex.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}
