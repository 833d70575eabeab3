package calc

import (
	"gonum.org/v1/gonum/floats"
)

var statfuncs = map[string]Func{
	"mean":   Variadic(1, -1, mean),
	"median": Variadic(1, -1, median),
	"var":    Variadic(2, -1, variance),
	"std":    Variadic(2, -1, stddev),
}

// mean is the arithmetic mean. The mean of exact values is exact.
func mean(args []Number) (Number, error) {
	var sum Number
	for _, x := range args {
		sum = Add(sum, x)
	}
	return Quo(sum, IntInt64(int64(len(args)))), nil
}

// median is the middle value by real ordering, or the mean of the two middle
// values for an even count. Complex arguments whose imaginary part is not
// negligible are rejected.
func median(args []Number) (Number, error) {
	reals := make([]float64, len(args))
	for i, x := range args {
		f, ok := x.Real()
		if !ok {
			return Number{}, &TypeError{Op: "median", Found: x.kind}
		}
		reals[i] = f
	}
	inds := make([]int, len(reals))
	floats.Argsort(reals, inds)
	mid := len(inds) / 2
	if len(inds)%2 == 1 {
		return args[inds[mid]], nil
	}
	return Quo(Add(args[inds[mid-1]], args[inds[mid]]), IntInt64(2)), nil
}

// variance is the sample variance, the sum of squared deviations from the
// mean divided by n-1. Deviations of complex values are squared without
// conjugation.
func variance(args []Number) (Number, error) {
	m, _ := mean(args)
	var sum Number
	for _, x := range args {
		d := Sub(x, m)
		sum = Add(sum, Mul(d, d))
	}
	return Quo(sum, IntInt64(int64(len(args)-1))), nil
}

// stddev is the square root of the sample variance, always Complex.
func stddev(args []Number) (Number, error) {
	v, err := variance(args)
	if err != nil {
		return Number{}, err
	}
	return Sqrt(v), nil
}
