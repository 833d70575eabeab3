// Package calc implements a calculator over a numeric tower of exact
// arbitrary-precision integers and rationals, floats, and complex numbers.
//
// Results are kept as exact as the operations allow. "1/3 + 1/3" is the
// rational 2/3, "2^100" is an exact integer, and "sqrt(-4)" is the complex
// number 2i. Operations promote their operands along Integer < Rational <
// Float < Complex, so exactness is lost only when an operation needs it.
//
// The syntax is the usual infix notation with a few conveniences. "2x" and
// "3(x+1)" are implicit multiplications. "-2^2" is "-(2^2)" and "2^3^2" is
// "2^(3^2)". "5!" is a factorial. Names followed by parentheses are calls, so
// "sin(pi/2)" calls a built-in function, and "f(x) = x^2 + 1" defines a new
// one. "x = 5" assigns a variable, and the assignment has the assigned value.
//
// Expressions are parsed into trees before evaluation, so an Expr can be
// evaluated many times with different contexts. A Context holds variables and
// user functions. Contexts are not safe for concurrent use; a Session wraps a
// Context with a single goroutine that serves evaluations in order.
package calc
