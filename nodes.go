package calc

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression.
type node struct {
	kind nodeKind

	// name is the literal text, identifier, or called function name.
	name string
	// num is the value of a literal or constant.
	num Number

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum   // literal num
	nodeConst // named constant num
	nodeName  // lookup(name)

	nodeCall   // call name, right is link to nodeArg unless niladic
	nodeArg    // eval left, right is link to next arg
	nodeAssign // eval right, bind to name
	nodeDef    // define name with params linked from left, body right

	nodeNeg  // evaluate left, then negate
	nodeFact // evaluate left, then factorial
	nodeAdd  // evaluate left, add right
	nodeSub  // evaluate left, sub right
	nodeMul  // evaluate left, mul right
	nodeDiv  // evaluate left, div by right
	nodeMod  // evaluate left, rem by right
	nodePow  // evaluate left, exp by right
)

var nodeKindNames = [...]string{
	nodeNone:   "None",
	nodeNum:    "Num",
	nodeConst:  "Const",
	nodeName:   "Name",
	nodeCall:   "Call",
	nodeArg:    "Arg",
	nodeAssign: "Assign",
	nodeDef:    "Def",
	nodeNeg:    "Neg",
	nodeFact:   "Fact",
	nodeAdd:    "Add",
	nodeSub:    "Sub",
	nodeMul:    "Mul",
	nodeDiv:    "Div",
	nodeMod:    "Mod",
	nodePow:    "Pow",
}

func (k nodeKind) String() string {
	if k < 0 || int(k) >= len(nodeKindNames) {
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
	return nodeKindNames[k]
}

// binary reports whether the node kind is a binary arithmetic operator.
func (k nodeKind) binary() bool {
	return nodeAdd <= k && k <= nodePow
}

// constants are the names that always resolve to fixed values when not
// called as functions.
var constants = map[string]Number{
	"pi": NewFloat(math.Pi),
	"e":  NewFloat(math.E),
	"i":  NewComplex(1i),
	"j":  NewComplex(1i),
}

// numlit converts the text of a number token to its value. Decimal integers
// and 0x and 0b literals are Integers; anything with a point or exponent is a
// Float. Floats too large to represent become infinities.
func numlit(s string) Number {
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'b') {
		base := 16
		if s[1] == 'b' {
			base = 2
		}
		x, ok := new(big.Int).SetString(s[2:], base)
		if !ok {
			panic("calc: invalid number: " + s)
		}
		return mkint(x)
	}
	if !strings.ContainsAny(s, ".eE") {
		x, ok := new(big.Int).SetString(s, 10)
		if !ok {
			panic("calc: invalid number: " + s)
		}
		return mkint(x)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !isRangeErr(err) {
		panic("calc: invalid number: " + s + " (" + err.Error() + ")")
	}
	return NewFloat(f)
}

func isRangeErr(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

func (n *node) fmt(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
		if n.left != nil {
			n.left.fmt(b, square)
		}
		b.WriteByte('#')
		if n.right != nil {
			n.right.fmt(b, square)
		}
		b.WriteByte('$')
	case nodeNum, nodeConst, nodeName:
		b.WriteString(n.name)
	case nodeCall:
		b.WriteString(n.name)
		n.right.fmtargs(b, !square)
	case nodeArg:
		// Args usually only appear inside calls, which are handled by fmtargs.
		b.WriteByte(':')
		n.left.fmt(b, !square)
		if n.right != nil {
			n.right.fmt(b, !square)
		}
	case nodeAssign:
		b.WriteString(n.name)
		b.WriteString(" = ")
		n.right.fmt(b, !square)
	case nodeDef:
		b.WriteString(n.name)
		n.left.fmtargs(b, !square)
		b.WriteString(" = ")
		n.right.fmt(b, !square)
	case nodeNeg:
		b.WriteByte('-')
		n.left.fmt(b, !square)
	case nodeFact:
		n.left.fmt(b, !square)
		b.WriteByte('!')
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeMod, nodePow:
		n.left.fmt(b, !square)
		b.WriteString(binopText[n.kind])
		n.right.fmt(b, !square)
	default:
		panic("calc: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

var binopText = map[nodeKind]string{
	nodeAdd: " + ",
	nodeSub: " - ",
	nodeMul: " * ",
	nodeDiv: " / ",
	nodeMod: " % ",
	nodePow: " ^ ",
}

// fmtargs formats an argument list starting at the first nodeArg link n, which
// may be nil for an empty list.
func (n *node) fmtargs(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	for i := 0; n != nil; i++ {
		if n.kind != nodeArg {
			b.WriteString("***")
			n.fmt(b, !square)
			return
		}
		if i > 0 {
			b.WriteString(", ")
		}
		n.left.fmt(b, !square)
		n = n.right
	}
}

// args collects the argument expressions linked from a nodeArg chain.
func (n *node) args() []*node {
	var r []*node
	for ; n != nil; n = n.right {
		r = append(r, n.left)
	}
	return r
}
