package curves

import (
	"slices"
)

// Var is the name of the independent variable.
const Var = "x"

// validate checks that an AST can be compiled and returns the sorted names of
// its free variables. Function names and constants are not variables.
func validate(n *node) ([]string, error) {
	seen := make(map[string]bool)
	var err error
	n.walk(func(n *node) {
		if err != nil {
			return
		}
		switch n.kind {
		case nodeNum, nodeConst:
		case nodeName:
			if lookupBuiltin(n.name) != nil {
				// A function name without an argument list.
				err = &ParseError{Kind: UnexpectedToken, Token: n.name, Col: n.pos}
				return
			}
			seen[n.name] = true
		case nodeCall:
			if n.fn == nil || !n.fn.CanCall(len(n.args)) {
				err = &ParseError{Kind: ArityMismatch, Token: n.name, Col: n.pos, Args: len(n.args)}
			}
		case nodeNeg, nodeNop:
			if n.left == nil {
				panic("curves: unary node with no operand")
			}
		case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
			if n.left == nil || n.right == nil {
				panic("curves: binary node with missing operand")
			}
		default:
			panic("curves: invalid AST node " + n.kind.String())
		}
	})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	slices.Sort(names)
	return names, nil
}

// params returns vars without the independent variable.
func params(vars []string) []string {
	r := make([]string, 0, len(vars))
	for _, v := range vars {
		if v != Var {
			r = append(r, v)
		}
	}
	return r
}
