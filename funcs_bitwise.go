package calc

import (
	"math"
	"math/big"
	"math/bits"
)

var bitfuncs = map[string]Func{
	"band": bitwise2("band", (*big.Int).And),
	"bor":  bitwise2("bor", (*big.Int).Or),
	"bxor": bitwise2("bxor", (*big.Int).Xor),
	"bnot": Monadic(func(x Number) (Number, error) {
		a, err := integerArg("bnot", x)
		if err != nil {
			return Number{}, err
		}
		return mkint(new(big.Int).Not(a)), nil
	}),
	"lsh": shift("lsh", (*big.Int).Lsh),
	"rsh": shift("rsh", (*big.Int).Rsh),
	"rol": rotate("rol", 1),
	"ror": rotate("ror", -1),
}

// integerArg returns the value of x if it is an Integer. Floats are never
// coerced, even with a zero fractional part.
func integerArg(op string, x Number) (*big.Int, error) {
	if x.kind != Integer {
		return nil, &TypeError{Op: op, Found: x.kind}
	}
	return x.bigint(), nil
}

// bitwise2 creates a two-argument bitwise function over arbitrary-precision
// two's complement integers.
func bitwise2(name string, f func(z, x, y *big.Int) *big.Int) Func {
	return Variadic(2, 2, func(args []Number) (Number, error) {
		a, err := integerArg(name, args[0])
		if err != nil {
			return Number{}, err
		}
		b, err := integerArg(name, args[1])
		if err != nil {
			return Number{}, err
		}
		return mkint(f(new(big.Int), a, b)), nil
	})
}

// shift creates a shift function. The shift count must be a non-negative
// Integer that fits in a uint.
func shift(name string, f func(z, x *big.Int, n uint) *big.Int) Func {
	return Variadic(2, 2, func(args []Number) (Number, error) {
		a, err := integerArg(name, args[0])
		if err != nil {
			return Number{}, err
		}
		n, err := integerArg(name, args[1])
		if err != nil {
			return Number{}, err
		}
		if n.Sign() < 0 || !n.IsUint64() || n.Uint64() > math.MaxUint {
			return Number{}, &DomainError{X: args[1], Arg: 2, Func: name, Reason: "shift count negative or too large"}
		}
		return mkint(f(new(big.Int), a, uint(n.Uint64()))), nil
	})
}

// rotate creates a rotation of a 64-bit two's complement word. dir is 1 for
// left rotations and -1 for right.
func rotate(name string, dir int) Func {
	return Variadic(2, 2, func(args []Number) (Number, error) {
		a, err := integerArg(name, args[0])
		if err != nil {
			return Number{}, err
		}
		n, err := integerArg(name, args[1])
		if err != nil {
			return Number{}, err
		}
		if !a.IsInt64() {
			return Number{}, &DomainError{X: args[0], Arg: 1, Func: name, Reason: "value does not fit in 64 bits"}
		}
		if n.Sign() < 0 || !n.IsUint64() || n.Uint64() > math.MaxUint32 {
			return Number{}, &DomainError{X: args[1], Arg: 2, Func: name, Reason: "rotation count negative or too large"}
		}
		k := int(n.Uint64() % 64)
		r := bits.RotateLeft64(uint64(a.Int64()), dir*k)
		return IntInt64(int64(r)), nil
	})
}
