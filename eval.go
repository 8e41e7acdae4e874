package curves

import (
	"math"
	"slices"
)

// Func is a compiled expression. It computes the expression's value with the
// independent variable set to x and other variables looked up in params.
// Variables missing from params have the value 0. A Func never retains or
// modifies params.
type Func func(x float64, params map[string]float64) float64

// Expr is a compiled expression. An Expr is immutable and safe for concurrent
// use by multiple goroutines.
type Expr struct {
	// src is the text the expression was compiled from.
	src string
	// fn is the compiled closure.
	fn Func
	// vars and params are the sorted free variables of the expression, the
	// latter without the independent variable.
	vars   []string
	params []string
	// poles are the subexpressions with predictable singularities.
	poles []pole
}

// Compile compiles an expression using the default length limit.
func Compile(src string) (*Expr, error) {
	return compile(src, DefaultMaxLength)
}

func compile(src string, maxlen int) (*Expr, error) {
	n, vars, err := parse(src, maxlen)
	if err != nil {
		return nil, err
	}
	fn, _ := n.compile()
	e := Expr{
		src:    src,
		fn:     fn,
		vars:   vars,
		params: params(vars),
		poles:  findPoles(n),
	}
	return &e, nil
}

// Eval evaluates the expression at x. Undefined results such as 0/0 are NaN,
// and division of nonzero numbers by zero is infinite.
func (e *Expr) Eval(x float64, params map[string]float64) float64 {
	return e.fn(x, params)
}

// Func returns the compiled closure.
func (e *Expr) Func() Func {
	return e.fn
}

// Vars returns the free variable names of the expression, including x if it
// is used.
func (e *Expr) Vars() []string {
	return slices.Clone(e.vars)
}

// Params returns the free variable names of the expression other than x.
func (e *Expr) Params() []string {
	return slices.Clone(e.params)
}

// String returns the text the expression was compiled from.
func (e *Expr) String() string {
	return e.src
}

func constant(v float64) Func {
	return func(float64, map[string]float64) float64 { return v }
}

// fold evaluates f once if it is constant.
func fold(f Func, konst bool) (Func, bool) {
	if !konst {
		return f, false
	}
	return constant(f(0, nil)), true
}

// compile converts the node into a closure. The second result reports whether
// the closure is constant.
func (n *node) compile() (Func, bool) {
	switch n.kind {
	case nodeNum, nodeConst:
		return constant(n.num), true
	case nodeName:
		if n.name == Var {
			return func(x float64, _ map[string]float64) float64 { return x }, false
		}
		name := n.name
		return func(_ float64, p map[string]float64) float64 { return p[name] }, false
	case nodeCall:
		return n.compileCall()
	case nodeNeg:
		l, k := n.left.compile()
		return fold(func(x float64, p map[string]float64) float64 { return -l(x, p) }, k)
	case nodeNop:
		return n.left.compile()
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		l, lk := n.left.compile()
		r, rk := n.right.compile()
		var f Func
		switch n.kind {
		case nodeAdd:
			f = func(x float64, p map[string]float64) float64 { return l(x, p) + r(x, p) }
		case nodeSub:
			f = func(x float64, p map[string]float64) float64 { return l(x, p) - r(x, p) }
		case nodeMul:
			f = func(x float64, p map[string]float64) float64 { return l(x, p) * r(x, p) }
		case nodeDiv:
			f = func(x float64, p map[string]float64) float64 { return l(x, p) / r(x, p) }
		case nodePow:
			f = func(x float64, p map[string]float64) float64 { return math.Pow(l(x, p), r(x, p)) }
		}
		return fold(f, lk && rk)
	default:
		panic("curves: invalid AST node " + n.kind.String())
	}
}

func (n *node) compileCall() (Func, bool) {
	call := n.fn.call
	args := make([]Func, len(n.args))
	konst := true
	for i, a := range n.args {
		var k bool
		args[i], k = a.compile()
		konst = konst && k
	}
	var f Func
	switch len(args) {
	case 1:
		a := args[0]
		f = func(x float64, p map[string]float64) float64 {
			v := [1]float64{a(x, p)}
			return call(v[:])
		}
	case 2:
		a, b := args[0], args[1]
		f = func(x float64, p map[string]float64) float64 {
			v := [2]float64{a(x, p), b(x, p)}
			return call(v[:])
		}
	default:
		f = func(x float64, p map[string]float64) float64 {
			v := make([]float64, len(args))
			for i, a := range args {
				v[i] = a(x, p)
			}
			return call(v)
		}
	}
	return fold(f, konst)
}
