package calc

import (
	"math"
	"math/cmplx"
)

// The financial functions all solve the time value of money identity
//
//	pv*g + pmt*(1 + rate*type)*(g - 1)/rate + fv = 0,  g = (1 + rate)^nper
//
// for one of its terms, using the limit pv + pmt*nper + fv = 0 when the rate
// is zero. Cash paid out is negative and cash received is positive. type is 0
// for payments at the end of each period and 1 for payments at the start.

var financefuncs = map[string]Func{
	"fv":   Variadic(3, 5, fv),
	"pv":   Variadic(3, 5, pv),
	"pmt":  Variadic(3, 5, pmt),
	"nper": Variadic(3, 5, nper),
	"rate": Variadic(3, 6, rate),
	"npv":  Variadic(2, -1, npv),
	"irr":  Variadic(1, -1, irr),
}

const (
	// newtonIters is the maximum number of Newton-Raphson steps.
	newtonIters = 100
	// newtonTol is the step size or residual at which a root is accepted.
	newtonTol = 1e-7
	// newtonFlat is the derivative magnitude below which a step is abandoned.
	newtonFlat = 1e-12
	// newtonGuess is the default initial guess for rate and irr.
	newtonGuess = 0.1
)

// cargs converts args to complex values, filling in zeros for missing
// optional arguments up to n.
func cargs(args []Number, n int) []complex128 {
	r := make([]complex128, n)
	for i, x := range args {
		r[i] = x.Complex128()
	}
	return r
}

// rargs converts args to real values, filling in zeros for missing optional
// arguments up to n.
func rargs(name string, args []Number, n int) ([]float64, error) {
	r := make([]float64, n)
	for i, x := range args {
		f, ok := x.Real()
		if !ok {
			return nil, &TypeError{Op: name, Found: x.kind}
		}
		r[i] = f
	}
	return r, nil
}

// annuity returns pmt*(1 + r*t)*(g - 1)/r, or pmt*n when r is zero.
func annuity(r, g, n, pmt, t complex128) complex128 {
	if r == 0 {
		return pmt * n
	}
	return pmt * (1 + r*t) * (g - 1) / r
}

func fv(args []Number) (Number, error) {
	a := cargs(args, 5)
	r, n, p, pmt, t := a[0], a[1], a[2], a[3], a[4]
	g := cmplx.Pow(1+r, n)
	return NewComplex(-(p*g + annuity(r, g, n, pmt, t))), nil
}

func pv(args []Number) (Number, error) {
	a := cargs(args, 5)
	r, n, f, pmt, t := a[0], a[1], a[2], a[3], a[4]
	g := cmplx.Pow(1+r, n)
	return NewComplex(-(f + annuity(r, g, n, pmt, t)) / g), nil
}

func pmt(args []Number) (Number, error) {
	a := cargs(args, 5)
	r, n, p, f, t := a[0], a[1], a[2], a[3], a[4]
	if r == 0 {
		return NewComplex(-(p + f) / n), nil
	}
	g := cmplx.Pow(1+r, n)
	return NewComplex(-(f + p*g) * r / ((1 + r*t) * (g - 1))), nil
}

func nper(args []Number) (Number, error) {
	a := cargs(args, 5)
	r, pmt, p, f, t := a[0], a[1], a[2], a[3], a[4]
	if r == 0 {
		return NewComplex(-(p + f) / pmt), nil
	}
	// pv*g + A*(g - 1) + fv = 0 where A = pmt*(1 + r*t)/r.
	k := pmt * (1 + r*t) / r
	g := (k - f) / (p + k)
	return NewComplex(cmplx.Log(g) / cmplx.Log(1+r)), nil
}

func rate(args []Number) (Number, error) {
	a, err := rargs("rate", args, 6)
	if err != nil {
		return Number{}, err
	}
	n, pmt, p, f, t, guess := a[0], a[1], a[2], a[3], a[4], a[5]
	if len(args) < 6 {
		guess = newtonGuess
	}
	r := newton(guess, func(r float64) (float64, float64) {
		if r == 0 {
			y := p + pmt*n + f
			dy := p*n + pmt*(t*n+n*(n-1)/2)
			return y, dy
		}
		g := math.Pow(1+r, n)
		dg := n * math.Pow(1+r, n-1)
		y := p*g + pmt*(1+r*t)*(g-1)/r + f
		dy := p*dg + pmt*(t*(g-1)/r+(1+r*t)*(dg*r-(g-1))/(r*r))
		return y, dy
	})
	return NewFloat(r), nil
}

func npv(args []Number) (Number, error) {
	r := args[0].Complex128()
	var sum complex128
	d := complex(1, 0)
	for _, v := range args[1:] {
		d *= 1 + r
		sum += v.Complex128() / d
	}
	return NewComplex(sum), nil
}

func irr(args []Number) (Number, error) {
	v, err := rargs("irr", args, len(args))
	if err != nil {
		return Number{}, err
	}
	r := newton(newtonGuess, func(r float64) (float64, float64) {
		var y, dy float64
		for i, c := range v {
			k := float64(i)
			y += c * math.Pow(1+r, -k)
			dy -= k * c * math.Pow(1+r, -k-1)
		}
		return y, dy
	})
	return NewFloat(r), nil
}

// newton finds a root of f by Newton-Raphson iteration from guess. f returns
// the function value and its derivative. If the iteration does not converge,
// the result is the last guess.
func newton(guess float64, f func(x float64) (y, dy float64)) float64 {
	x := guess
	for range newtonIters {
		y, dy := f(x)
		if math.Abs(y) < newtonTol || math.Abs(dy) < newtonFlat {
			return x
		}
		step := y / dy
		x -= step
		if math.Abs(step) < newtonTol {
			return x
		}
	}
	return x
}
