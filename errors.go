package calc

import (
	"strconv"
)

// NameError is an error from a lookup for a variable that is missing from
// every scope of the evaluation context.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

// UnknownFuncError is an error from a call to a name that is neither a
// user-defined function nor a built-in.
type UnknownFuncError struct {
	// Name is the function name that was called.
	Name string
}

func (err *UnknownFuncError) Error() string {
	return "unknown function: " + strconv.Quote(err.Name)
}

// CallError is an error indicating a function call with the wrong number of
// arguments.
type CallError struct {
	// Func is the function name that was called.
	Func string
	// Got is the number of arguments in the call.
	Got int
	// Min and Max are the bounds on the number of arguments the function
	// accepts. Max is negative if there is no upper bound.
	Min, Max int
}

func (err *CallError) Error() string {
	var want string
	switch {
	case err.Max < 0:
		want = "at least " + strconv.Itoa(err.Min)
	case err.Min == err.Max:
		want = strconv.Itoa(err.Min)
	default:
		want = strconv.Itoa(err.Min) + " to " + strconv.Itoa(err.Max)
	}
	return "cannot call " + err.Func + " with " + strconv.Itoa(err.Got) + " arguments (want " + want + ")"
}

// TypeError is an error indicating an operand of a kind that an operation
// does not accept, e.g. a Float passed to a bitwise function.
type TypeError struct {
	// Op is the name of the function or operator.
	Op string
	// Found is the kind of the rejected operand.
	Found Kind
}

func (err *TypeError) Error() string {
	return err.Op + ": unsupported operand kind " + err.Found.String()
}

// DomainError is an error returned when a function is called on arguments of
// an accepted kind but outside its domain.
type DomainError struct {
	// X is the out-of-domain argument.
	X Number
	// Arg is the 1-based index of the argument, or 0 if unspecified.
	Arg int
	// Func is a name identifying the function.
	Func string
	// Reason describes the domain violation.
	Reason string
}

func (err *DomainError) Error() string {
	r := Format(err.X) + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	if err.Reason != "" {
		r += ": " + err.Reason
	}
	return r
}
