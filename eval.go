package calc

import (
	"io"
	"strings"
)

// Eval evaluates an expression and returns the result. If an error occurs,
// e.g. a missing variable definition or a call with the wrong number of
// arguments, then the result is the zero Number along with the error.
// Assignments and definitions made before the error remain in effect.
func (ctx *Context) Eval(e *Expr) (Number, error) {
	return ctx.eval(e.n)
}

// eval computes the value of a node. Chains of binary operators down the left
// side of the tree, which is how left-associative operators like 1+2+3+4
// parse, are walked in a loop instead of by recursion.
func (ctx *Context) eval(n *node) (Number, error) {
	var pending []*node
	for n.kind.binary() {
		pending = append(pending, n)
		n = n.left
	}
	x, err := ctx.evalterm(n)
	if err != nil {
		return Number{}, err
	}
	for i := len(pending) - 1; i >= 0; i-- {
		op := pending[i]
		y, err := ctx.eval(op.right)
		if err != nil {
			return Number{}, err
		}
		x = arith(op.kind, x, y)
	}
	return x, nil
}

// arith applies a binary operator.
func arith(k nodeKind, x, y Number) Number {
	switch k {
	case nodeAdd:
		return Add(x, y)
	case nodeSub:
		return Sub(x, y)
	case nodeMul:
		return Mul(x, y)
	case nodeDiv:
		return Quo(x, y)
	case nodeMod:
		return Rem(x, y)
	case nodePow:
		return Pow(x, y)
	default:
		panic("calc: not a binary operator: " + k.String())
	}
}

// evalterm computes the value of a node that is not a binary operator.
func (ctx *Context) evalterm(n *node) (Number, error) {
	switch n.kind {
	case nodeNum, nodeConst:
		return n.num, nil
	case nodeName:
		v, ok := ctx.Lookup(n.name)
		if !ok {
			return Number{}, &NameError{Name: n.name}
		}
		return v, nil
	case nodeCall:
		return ctx.call(n)
	case nodeAssign:
		v, err := ctx.eval(n.right)
		if err != nil {
			return Number{}, err
		}
		ctx.Set(n.name, v)
		return v, nil
	case nodeDef:
		f := UserFunc{Name: n.name, body: n.right}
		for a := n.left; a != nil; a = a.right {
			f.Params = append(f.Params, a.left.name)
		}
		ctx.Define(&f)
		return Number{}, nil
	case nodeNeg:
		v, err := ctx.eval(n.left)
		if err != nil {
			return Number{}, err
		}
		return Neg(v), nil
	case nodeFact:
		v, err := ctx.eval(n.left)
		if err != nil {
			return Number{}, err
		}
		return Factorial(v)
	case nodeArg:
		panic("calc: eval on nodeArg")
	default:
		panic("calc: invalid AST node " + n.kind.String())
	}
}

// call evaluates a function call. User-defined functions shadow built-ins.
// Arguments are evaluated left to right in the caller's scope.
func (ctx *Context) call(n *node) (Number, error) {
	uf := ctx.Func(n.name)
	bf, isbuiltin := builtins[n.name]
	if uf == nil && !isbuiltin {
		return Number{}, &UnknownFuncError{Name: n.name}
	}
	args := n.right.args()
	vals := make([]Number, len(args))
	for i, a := range args {
		v, err := ctx.eval(a)
		if err != nil {
			return Number{}, err
		}
		vals[i] = v
	}
	if uf != nil {
		return ctx.callUser(uf, vals)
	}
	if err := checkArity(n.name, bf, len(vals)); err != nil {
		return Number{}, err
	}
	return bf.Call(vals)
}

// callUser evaluates the body of a user function in a new scope binding its
// parameters. The scope is removed before returning, even on error.
func (ctx *Context) callUser(f *UserFunc, args []Number) (Number, error) {
	if len(args) != len(f.Params) {
		return Number{}, &CallError{Func: f.Name, Got: len(args), Min: len(f.Params), Max: len(f.Params)}
	}
	ctx.PushScope()
	defer ctx.PopScope()
	for i, p := range f.Params {
		ctx.Set(p, args[i])
	}
	return ctx.eval(f.body)
}

// Evaluate parses text and evaluates it with ctx. Assignments and function
// definitions in the text change ctx.
func Evaluate(text string, ctx *Context) (Number, error) {
	e, err := ParseString(text)
	if err != nil {
		return Number{}, err
	}
	return ctx.Eval(e)
}

// Preview is like Evaluate, but it evaluates the expression with a clone of
// ctx, so ctx is never changed.
func Preview(text string, ctx *Context) (Number, error) {
	return Evaluate(text, ctx.Clone())
}

// Eval is a shortcut to parse an expression and return its result in a new
// context.
func Eval(src io.RuneScanner, opts ...ContextOption) (Number, error) {
	ctx := NewContext(opts...)
	a, err := Parse(src)
	if err != nil {
		return Number{}, err
	}
	return ctx.Eval(a)
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, opts ...ContextOption) (Number, error) {
	return Eval(strings.NewReader(src), opts...)
}
