package curves

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression. Each node
// exclusively owns its children.
type node struct {
	kind nodeKind

	// name is the text of a number, constant, variable, or function.
	name string
	// num is the value of a number or constant.
	num float64
	// fn is the function called by a nodeCall.
	fn *builtin
	// pos is the column of the token that created the node.
	pos int

	left  *node
	right *node
	args  []*node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum   // literal num
	nodeConst // named constant with value num
	nodeName  // lookup(name)
	nodeCall  // call fn with args

	nodeNeg // negate left
	nodeNop // evaluate left
	nodeAdd // left + right
	nodeSub // left - right
	nodeMul // left * right
	nodeDiv // left / right
	nodePow // left ^ right
)

var nodeNames = [...]string{
	nodeNone:  "None",
	nodeNum:   "Num",
	nodeConst: "Const",
	nodeName:  "Name",
	nodeCall:  "Call",
	nodeNeg:   "Neg",
	nodeNop:   "Nop",
	nodeAdd:   "Add",
	nodeSub:   "Sub",
	nodeMul:   "Mul",
	nodeDiv:   "Div",
	nodePow:   "Pow",
}

func (k nodeKind) String() string {
	if k < 0 || int(k) >= len(nodeNames) {
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
	return nodeNames[k]
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

// fmt writes the node with every term grouped, alternating between round and
// square brackets at each level.
func (n *node) fmt(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	switch n.kind {
	case nodeNum, nodeConst, nodeName:
		b.WriteString(n.name)
	case nodeCall:
		b.WriteString(n.name)
		b.WriteByte(':')
		for i, a := range n.args {
			if i > 0 {
				b.WriteString(", ")
			}
			a.fmt(b, !square)
		}
	case nodeNeg:
		b.WriteByte('-')
		n.left.fmt(b, !square)
	case nodeNop:
		b.WriteByte('+')
		n.left.fmt(b, !square)
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		n.left.fmt(b, !square)
		b.WriteByte(' ')
		b.WriteString(opsyms[n.kind])
		b.WriteByte(' ')
		n.right.fmt(b, !square)
	default:
		panic("curves: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

var opsyms = map[nodeKind]string{
	nodeAdd: "+",
	nodeSub: "-",
	nodeMul: "*",
	nodeDiv: "/",
	nodePow: "^",
}

// walk calls f on n and each of its descendants in preorder.
func (n *node) walk(f func(*node)) {
	if n == nil {
		return
	}
	f(n)
	n.left.walk(f)
	n.right.walk(f)
	for _, a := range n.args {
		a.walk(f)
	}
}

// hasName reports whether the subtree references the variable name.
func (n *node) hasName(name string) bool {
	if n == nil {
		return false
	}
	if n.kind == nodeName && n.name == name {
		return true
	}
	if n.left.hasName(name) || n.right.hasName(name) {
		return true
	}
	for _, a := range n.args {
		if a.hasName(name) {
			return true
		}
	}
	return false
}
