package calc

import (
	"maps"
	"slices"
	"strings"
)

// Context is the environment for evaluating expressions: a stack of variable
// scopes and a table of user-defined functions. The bottom scope is the
// global scope, which is never removed. It is not safe to use a Context
// concurrently.
type Context struct {
	scopes []map[string]Number
	funcs  map[string]*UserFunc
}

// UserFunc is a function defined by an expression like f(x, y) = x*y. The
// body is kept as a parsed tree and evaluated anew on each call.
type UserFunc struct {
	// Name is the function name.
	Name string
	// Params is the ordered list of parameter names.
	Params []string

	body *node
}

// String formats the function definition.
func (f *UserFunc) String() string {
	var b strings.Builder
	b.WriteString(f.Name)
	b.WriteByte('(')
	b.WriteString(strings.Join(f.Params, ", "))
	b.WriteString(") = ")
	f.body.fmt(&b, false)
	return b.String()
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	varopt struct {
		name string
		val  Number
	}
	varsopt map[string]Number
)

func (varopt) ctxOption()  {}
func (varsopt) ctxOption() {}

// SetVar sets the value of a variable in the context.
func SetVar(name string, val Number) ContextOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the context.
func SetVars(vars map[string]Number) ContextOption {
	return varsopt(vars)
}

// NewContext creates a new evaluation context with only the global scope and
// no user functions.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{scopes: []map[string]Number{{}}}
	return ctx.Clone(opts...)
}

// Lookup returns the value of a variable from the innermost scope that binds
// it. ok is false if no scope binds the name.
func (ctx *Context) Lookup(name string) (v Number, ok bool) {
	for i := len(ctx.scopes) - 1; i >= 0; i-- {
		if v, ok := ctx.scopes[i][name]; ok {
			return v, true
		}
	}
	return Number{}, false
}

// Set binds a variable in the innermost scope only. A binding of the same
// name in an outer scope is shadowed, not changed. Returns ctx for chaining.
func (ctx *Context) Set(name string, value Number) *Context {
	ctx.scopes[len(ctx.scopes)-1][name] = value
	return ctx
}

// PushScope adds a new innermost scope.
func (ctx *Context) PushScope() {
	ctx.scopes = append(ctx.scopes, make(map[string]Number))
}

// PopScope removes the innermost scope. It does nothing if only the global
// scope remains.
func (ctx *Context) PopScope() {
	if len(ctx.scopes) <= 1 {
		return
	}
	ctx.scopes[len(ctx.scopes)-1] = nil
	ctx.scopes = ctx.scopes[:len(ctx.scopes)-1]
}

// Depth returns the number of scopes, including the global scope.
func (ctx *Context) Depth() int {
	return len(ctx.scopes)
}

// Func returns the user-defined function with the given name, or nil if there
// is none.
func (ctx *Context) Func(name string) *UserFunc {
	return ctx.funcs[name]
}

// Define adds a user-defined function, replacing any previous function with
// the same name. Functions are not scoped.
func (ctx *Context) Define(f *UserFunc) {
	if ctx.funcs == nil {
		ctx.funcs = make(map[string]*UserFunc)
	}
	ctx.funcs[f.Name] = f
}

// Funcs returns the names of user-defined functions in sorted order.
func (ctx *Context) Funcs() []string {
	return slices.Sorted(maps.Keys(ctx.funcs))
}

// Vars returns every visible variable binding. Where scopes bind the same
// name, the innermost binding wins.
func (ctx *Context) Vars() map[string]Number {
	r := make(map[string]Number)
	for _, s := range ctx.scopes {
		maps.Copy(r, s)
	}
	return r
}

// Clone creates a deep copy of a context and applies options to it.
// Evaluating expressions with the copy never affects the original.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		scopes: make([]map[string]Number, len(ctx.scopes)),
		funcs:  make(map[string]*UserFunc, len(ctx.funcs)),
	}
	// Numbers are immutable and function bodies are never modified after
	// parsing. Only the exported parts of functions need copies.
	for i, s := range ctx.scopes {
		n.scopes[i] = maps.Clone(s)
		if n.scopes[i] == nil {
			n.scopes[i] = make(map[string]Number)
		}
	}
	for k, f := range ctx.funcs {
		n.funcs[k] = &UserFunc{Name: f.Name, Params: slices.Clone(f.Params), body: f.body}
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			n.Set(opt.name, opt.val)
		case varsopt:
			for k, v := range opt {
				n.Set(k, v)
			}
		default:
			panic("calc: unknown option type")
		}
	}
	return &n
}
