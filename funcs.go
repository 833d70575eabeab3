package calc

import (
	"math/cmplx"
	"slices"
)

// Func is a built-in function. Arguments are evaluated before the call, so a
// Func never sees the evaluation context.
type Func interface {
	// Arity returns the bounds on the number of arguments the function
	// accepts. max is negative if the function is variadic.
	Arity() (min, max int)

	// Call evaluates the function. args has a length within the bounds
	// returned by Arity. Call must not modify the elements of args.
	Call(args []Number) (Number, error)
}

// builtins is the fixed table of built-in functions. It is never modified
// after initialization.
var builtins map[string]Func

func init() {
	builtins = make(map[string]Func, 64)
	for _, t := range []map[string]Func{complexfuncs, statfuncs, bitfuncs, financefuncs} {
		for k, v := range t {
			builtins[k] = v
		}
	}
}

// Builtin returns the built-in function with the given name, if there is one.
func Builtin(name string) (Func, bool) {
	f, ok := builtins[name]
	return f, ok
}

// Builtins returns the names of all built-in functions in sorted order.
func Builtins() []string {
	r := make([]string, 0, len(builtins))
	for k := range builtins {
		r = append(r, k)
	}
	slices.Sort(r)
	return r
}

// Apply calls the built-in function name with args. The argument count is
// checked before the function sees any argument.
func Apply(name string, args []Number) (Number, error) {
	f, ok := builtins[name]
	if !ok {
		return Number{}, &UnknownFuncError{Name: name}
	}
	if err := checkArity(name, f, len(args)); err != nil {
		return Number{}, err
	}
	return f.Call(args)
}

func checkArity(name string, f Func, n int) error {
	min, max := f.Arity()
	if n < min || max >= 0 && n > max {
		return &CallError{Func: name, Got: n, Min: min, Max: max}
	}
	return nil
}

type monadic struct {
	f func(x Number) (Number, error)
}

func (m monadic) Arity() (int, int) {
	return 1, 1
}

func (m monadic) Call(args []Number) (Number, error) {
	return m.f(args[0])
}

// Monadic wraps a function of one variable into a Func.
func Monadic(f func(x Number) (Number, error)) Func {
	return monadic{f}
}

// ComplexFunc wraps a function over complex numbers into a Func. The result is
// always Complex, whatever the kind of the argument.
func ComplexFunc(f func(complex128) complex128) Func {
	return monadic{func(x Number) (Number, error) {
		return NewComplex(f(x.Complex128())), nil
	}}
}

// RealFunc wraps a function from complex numbers to reals into a Func. The
// result is always Float.
func RealFunc(f func(complex128) float64) Func {
	return monadic{func(x Number) (Number, error) {
		return NewFloat(f(x.Complex128())), nil
	}}
}

type variadic struct {
	min, max int
	f        func(args []Number) (Number, error)
}

func (v variadic) Arity() (int, int) {
	return v.min, v.max
}

func (v variadic) Call(args []Number) (Number, error) {
	return v.f(args)
}

// Variadic wraps a function of between min and max arguments into a Func. If
// max is negative, there is no upper bound.
func Variadic(min, max int, f func(args []Number) (Number, error)) Func {
	return variadic{min, max, f}
}

var complexfuncs = map[string]Func{
	"sin":   ComplexFunc(cmplx.Sin),
	"cos":   ComplexFunc(cmplx.Cos),
	"tan":   ComplexFunc(cmplx.Tan),
	"asin":  ComplexFunc(cmplx.Asin),
	"acos":  ComplexFunc(cmplx.Acos),
	"cosin": ComplexFunc(cmplx.Acos),
	"atan":  ComplexFunc(cmplx.Atan),
	"sinh":  ComplexFunc(cmplx.Sinh),
	"cosh":  ComplexFunc(cmplx.Cosh),
	"tanh":  ComplexFunc(cmplx.Tanh),
	"asinh": ComplexFunc(cmplx.Asinh),
	"acosh": ComplexFunc(cmplx.Acosh),
	"atanh": ComplexFunc(cmplx.Atanh),
	"exp":   ComplexFunc(cmplx.Exp),
	"ln":    Monadic(ln),
	"log":   Monadic(log10),
	"sqrt":  Monadic(func(x Number) (Number, error) { return Sqrt(x), nil }),

	"conj": ComplexFunc(cmplx.Conj),
	"re":   RealFunc(func(c complex128) float64 { return real(c) }),
	"im":   RealFunc(func(c complex128) float64 { return imag(c) }),
	"lm":   RealFunc(func(c complex128) float64 { return imag(c) }),
	"abs":  RealFunc(cmplx.Abs),
}
