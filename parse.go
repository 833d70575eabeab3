package calc

import (
	"io"
	"maps"
	"slices"
	"strings"
)

// Expr = num | name | const | Call | Neg | Fact | Add | Sub | Mul | Div | Mod | Pow | Assign | Def | '(' Expr ')'
// Call = name '(' [ Expr { ',' Expr } ] ')'
// Neg = '-' Expr
// Fact = Expr '!'
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr | Expr Expr
// Div = Expr '/' Expr
// Mod = Expr '%' Expr
// Pow = Expr '^' Expr
// Assign = name '=' Expr
// Def = name '(' [ name { ',' name } ] ')' '=' Expr

// Expr is a parsed expression that can be evaluated with a context. An Expr
// is never modified by evaluation, so it can be evaluated any number of times.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// names is the list of free variable names used in the expression.
	names []string
}

// Parse parses an expression so it can be evaluated with a context. The given
// options are applied in order.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Expr, error) {
	scan := lex(src)
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	n, err := parseterm(scan, &p, exprprec)
	if err != nil {
		return nil, err
	}
	tok := scan.must()
	switch tok.kind {
	case tokenEOF:
	case tokenSep:
		switch {
		case p.comma && tok.text == ",":
		case p.semi && tok.text == ";":
		default:
			return nil, itShouldNotHaveEndedThisWay(tok, false)
		}
	default:
		return nil, itShouldNotHaveEndedThisWay(tok, false)
	}
	if n == nil {
		return nil, &EmptyExpressionError{Col: tok.pos, End: tok.text}
	}
	ex := Expr{
		n:     n,
		names: freevars(n),
	}
	return &ex, nil
}

// ParseString is a shortcut to parse an expression from a string.
func ParseString(src string, opts ...ParseOption) (*Expr, error) {
	return Parse(strings.NewReader(src), opts...)
}

// parseterm parses a single term. If there is no error, then parseterm pushes
// the last token it scans, including EOF. If the input is an empty
// subexpression, the result is nil with no error; callers must create an error
// in contexts where empty subexpressions are illegal.
//
// Left-associative chains like 1+2+3 are built in the loop here rather than by
// recursion, so the depth of recursion does not grow with their length.
func parseterm(scan *lexer, p *parsectx, until int8) (*node, error) {
	n, err := parselhs(scan, p)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	for {
		tok, err := scan.next(p.stops)
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenIdent, tokenOpen:
			// (parsed) x -> (parsed) * (x)
			// (parsed) (expr) -> (parsed) * (expr)
			// a^(parsed) x -> (a^(parsed)) * (x)
			scan.push(tok)
			if !implicitmul.binds(until) {
				return n, nil
			}
			rhs, err := parseterm(scan, p, implicitmul.right)
			if err != nil {
				return nil, err
			}
			n = &node{kind: nodeMul, left: n, right: rhs}
		case tokenNum:
			return nil, &TokenError{Col: tok.pos, Text: tok.text}
		case tokenOp:
			if tok.text == "!" {
				if !factprec.binds(until) {
					scan.push(tok)
					return n, nil
				}
				n = &node{kind: nodeFact, left: n}
				continue
			}
			prec := binop(tok.text)
			if prec.op == nodeNone {
				return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: false}
			}
			if !prec.binds(until) {
				scan.push(tok)
				return n, nil
			}
			rhs, err := parseterm(scan, p, prec.right)
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				end := scan.must()
				return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
			}
			if prec.op == nodeAssign {
				n, err = assignment(n, rhs, tok.pos)
				if err != nil {
					return nil, err
				}
				continue
			}
			n = &node{kind: prec.op, left: n, right: rhs}
		case tokenClose, tokenSep, tokenEOF:
			// End of expression.
			scan.push(tok)
			return n, nil
		default:
			panic("calc: unknown token: " + tok.String())
		}
	}
}

// parselhs parses the first component of a term. I.e., operators are unary,
// any encountered token must be valid as the start of a subexpression, and
// whitespace normally lexed as EOF is ignored.
func parselhs(scan *lexer, p *parsectx) (*node, error) {
	// Don't use EOF whitespace for LHS.
	tok, err := scan.next("")
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenNum:
		return &node{kind: nodeNum, name: tok.text, num: numlit(tok.text)}, nil
	case tokenIdent:
		// We respect whitespace here so that x\n(y) doesn't string together
		// expressions.
		next, err := scan.next(p.stops)
		if err != nil {
			return nil, err
		}
		if next.kind == tokenOpen {
			args, err := parsearglist(scan, p)
			if err != nil {
				return nil, err
			}
			return &node{kind: nodeCall, name: tok.text, right: args}, nil
		}
		scan.push(next)
		if c, ok := constants[tok.text]; ok {
			return &node{kind: nodeConst, name: tok.text, num: c}, nil
		}
		return &node{kind: nodeName, name: tok.text}, nil
	case tokenOp:
		// unary operator
		if tok.text != "-" {
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
		}
		rhs, err := parseterm(scan, p, negprec.right)
		if err != nil {
			return nil, err
		}
		if rhs == nil {
			end := scan.must()
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		return &node{kind: nodeNeg, left: rhs}, nil
	case tokenOpen:
		rhs, err := parseterm(scan, p, exprprec)
		if err != nil {
			return nil, err
		}
		end := scan.must()
		if end.kind != tokenClose {
			return nil, itShouldNotHaveEndedThisWay(end, true)
		}
		if rhs == nil {
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		return rhs, nil
	case tokenClose:
		// This might be part of a niladic call f(), so just let the caller
		// decide what to do.
		scan.push(tok)
		return nil, nil
	case tokenSep:
		switch {
		case tok.text == "," && p.comma, tok.text == ";" && p.semi:
			scan.push(tok)
			return nil, nil
		}
		return nil, &SeparatorError{Col: tok.pos, Sep: tok.text}
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos, End: ""}
	default:
		panic("calc: unknown token: " + tok.String())
	}
}

// parsearglist parses a comma-separated list of zero or more args up to and
// including the closing bracket. The open bracket has already been scanned.
// The result is the first link of a nodeArg chain, or nil if there are no
// arguments.
func parsearglist(scan *lexer, p *parsectx) (*node, error) {
	var n node
	l := &n
	for k := 0; ; k++ {
		rhs, err := parseterm(scan, p, exprprec)
		if err != nil {
			// As a special case, reporting mismatched brackets is more helpful
			// than empty expression, if that's what we'd do here.
			if ee, _ := err.(*EmptyExpressionError); ee != nil && ee.End == "" {
				err = &BracketError{Col: ee.Col, Left: "("}
			}
			return nil, err
		}
		end := scan.must()
		switch {
		case end.kind == tokenClose:
			if rhs == nil {
				// f() is allowed, but f(a,) isn't.
				if k != 0 {
					return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
				}
				return nil, nil
			}
			l.right = &node{kind: nodeArg, left: rhs}
			return n.right, nil
		case end.kind == tokenSep && end.text == ",":
			if rhs == nil {
				return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
			}
			l.right = &node{kind: nodeArg, left: rhs}
			l = l.right
		case end.kind == tokenEOF:
			return nil, &BracketError{Col: end.pos, Left: "(", Right: ""}
		default:
			return nil, itShouldNotHaveEndedThisWay(end, true)
		}
	}
}

// assignment creates an assignment to lhs. lhs must be a variable name or a
// call whose arguments are all distinct variable names, in which case the
// result is a function definition.
func assignment(lhs, rhs *node, pos int) (*node, error) {
	switch lhs.kind {
	case nodeName:
		return &node{kind: nodeAssign, name: lhs.name, right: rhs}, nil
	case nodeCall:
		seen := make(map[string]bool)
		for a := lhs.right; a != nil; a = a.right {
			if a.left.kind != nodeName || seen[a.left.name] {
				return nil, &AssignError{Col: pos, Target: lhs.String()}
			}
			seen[a.left.name] = true
		}
		return &node{kind: nodeDef, name: lhs.name, left: lhs.right, right: rhs}, nil
	case nodeConst:
		return nil, &AssignError{Col: pos, Target: "constant " + lhs.name}
	default:
		return nil, &AssignError{Col: pos, Target: lhs.String()}
	}
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression. open is whether the subexpression
// should have ended with a close bracket.
func itShouldNotHaveEndedThisWay(tok lexToken, open bool) error {
	left := ""
	if open {
		left = "("
	}
	switch tok.kind {
	case tokenEOF:
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: tok.pos, Left: left, Right: ""}
	case tokenClose:
		// A close bracket at the end of an input has no match.
		return &BracketError{Col: tok.pos, Left: "", Right: tok.text}
	case tokenSep:
		// Separator outside a function call.
		return &SeparatorError{Col: tok.pos, Sep: tok.text}
	default:
		panic("calc: it really should not have ended this way: " + tok.String())
	}
}

// freevars lists the names of variables that root reads without binding them
// first as function parameters, in sorted order.
func freevars(root *node) []string {
	seen := make(map[string]bool)
	var walk func(n *node, bound map[string]bool)
	walk = func(n *node, bound map[string]bool) {
		for n != nil {
			switch n.kind {
			case nodeName:
				if !bound[n.name] {
					seen[n.name] = true
				}
				return
			case nodeNum, nodeConst:
				return
			case nodeCall:
				for a := n.right; a != nil; a = a.right {
					walk(a.left, bound)
				}
				return
			case nodeAssign:
				n = n.right
			case nodeDef:
				inner := maps.Clone(bound)
				if inner == nil {
					inner = make(map[string]bool)
				}
				for a := n.left; a != nil; a = a.right {
					inner[a.left.name] = true
				}
				walk(n.right, inner)
				return
			case nodeNeg, nodeFact:
				n = n.left
			default:
				// Binary operators. Follow the left spine iteratively.
				walk(n.right, bound)
				n = n.left
			}
		}
	}
	walk(root, nil)
	return slices.Sorted(maps.Keys(seen))
}

// Vars returns the free variable names used when evaluating the expression.
func (e *Expr) Vars() []string {
	return slices.Clone(e.names)
}

// String creates a string representation of the parsed expression, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	var b strings.Builder
	e.n.fmt(&b, false)
	return b.String()
}

type operator struct {
	// left and right are the binding powers on each side of the operator.
	// Higher is more binding. An operator is right-associative when its
	// right binding power is lower than its left.
	left, right int8
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

// binds reports whether the operator takes the term before it as its left
// operand while parsing a term that stops at operators binding less than
// until.
func (p operator) binds(until int8) bool {
	return p.left >= until
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "=":
		return operator{0, 0, nodeAssign}
	case "+":
		return operator{1, 2, nodeAdd}
	case "-":
		return operator{1, 2, nodeSub}
	case "*":
		return operator{3, 4, nodeMul}
	case "/":
		return operator{3, 4, nodeDiv}
	case "%":
		return operator{3, 4, nodeMod}
	case "^":
		return operator{10, 9, nodePow}
	default:
		return operator{}
	}
}

var (
	// implicitmul is the precedence of multiplication by juxtaposition.
	implicitmul = operator{3, 4, nodeMul}
	// factprec is the precedence of the postfix factorial.
	factprec = operator{11, 11, nodeFact}
	// negprec is the precedence of prefix negation. Its right binding power
	// is below that of exponentiation, so -2^2 is -(2^2).
	negprec = operator{8, 8, nodeNeg}
)

// exprprec is the precedence required to parse an entire subexpression.
const exprprec = 0
