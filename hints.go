package curves

import (
	"math"
	"slices"
)

// pole is a subexpression which is singular wherever arg, which is affine in
// the independent variable, equals offset + k*period for integer k.
type pole struct {
	arg   Func
	shape poleshape
}

// maxPoleCount limits the number of singularities a single pole may report
// over one domain. Beyond that, samples are too sparse for hints to matter.
const maxPoleCount = 4096

// hinters recognize families of subexpressions with known singularities.
var hinters = []func(n *node) []pole{
	callPole,
	divPole,
	powPole,
}

// findPoles collects the poles of every subexpression of n.
func findPoles(n *node) []pole {
	var r []pole
	n.walk(func(n *node) {
		for _, h := range hinters {
			r = append(r, h(n)...)
		}
	})
	return r
}

// callPole recognizes periodic functions like tan applied to an affine
// argument.
func callPole(n *node) []pole {
	if n.kind != nodeCall || n.fn.pole == nil || len(n.args) != 1 {
		return nil
	}
	a := n.args[0]
	if !a.hasName(Var) || !affine(a) {
		return nil
	}
	f, _ := a.compile()
	return []pole{{arg: f, shape: *n.fn.pole}}
}

// divPole recognizes division by a denominator with affine factors.
func divPole(n *node) []pole {
	if n.kind != nodeDiv {
		return nil
	}
	return zeros(n.right)
}

// powPole recognizes a base with affine factors raised to a negative
// constant.
func powPole(n *node) []pole {
	if n.kind != nodePow {
		return nil
	}
	e, k := n.right.compile()
	if !k || !(e(0, nil) < 0) {
		return nil
	}
	return zeros(n.left)
}

// zeros returns a pole at the root of each affine factor of n, looking
// through products, quotients by constants, and positive constant powers.
func zeros(n *node) []pole {
	if !n.hasName(Var) {
		return nil
	}
	if affine(n) {
		f, _ := n.compile()
		return []pole{{arg: f}}
	}
	switch n.kind {
	case nodeNeg, nodeNop:
		return zeros(n.left)
	case nodeMul:
		return append(zeros(n.left), zeros(n.right)...)
	case nodeDiv:
		if n.right.hasName(Var) {
			return nil
		}
		return zeros(n.left)
	case nodePow:
		e, k := n.right.compile()
		if !k || !(e(0, nil) > 0) {
			return nil
		}
		return zeros(n.left)
	}
	return nil
}

// affine reports whether n is an affine function of the independent variable,
// including constant functions.
func affine(n *node) bool {
	switch n.kind {
	case nodeNum, nodeConst, nodeName:
		return true
	case nodeNeg, nodeNop:
		return affine(n.left)
	case nodeAdd, nodeSub:
		return affine(n.left) && affine(n.right)
	case nodeMul:
		if n.left.hasName(Var) && n.right.hasName(Var) {
			return false
		}
		return affine(n.left) && affine(n.right)
	case nodeDiv:
		return !n.right.hasName(Var) && affine(n.left)
	default:
		return !n.hasName(Var)
	}
}

// Singularities returns the sorted locations in [xMin, xMax] where the
// expression is known to be singular with the given parameters. The result is
// a hint; an expression may have singularities which are not reported.
func (e *Expr) Singularities(xMin, xMax float64, params map[string]float64) []float64 {
	var r []float64
	for _, p := range e.poles {
		c := p.arg(0, params)
		m := p.arg(1, params) - c
		if m == 0 || !finite(m) || !finite(c) {
			continue
		}
		off, per := p.shape.offset, p.shape.period
		if per == 0 {
			if x := (off - c) / m; xMin <= x && x <= xMax {
				r = append(r, x)
			}
			continue
		}
		u0, u1 := m*xMin+c, m*xMax+c
		if u0 > u1 {
			u0, u1 = u1, u0
		}
		k0 := math.Ceil((u0 - off) / per)
		k1 := math.Floor((u1 - off) / per)
		if !(k1-k0 < maxPoleCount) {
			continue
		}
		for k := k0; k <= k1; k++ {
			x := (off + k*per - c) / m
			if xMin <= x && x <= xMax {
				r = append(r, x)
			}
		}
	}
	slices.Sort(r)
	return slices.Compact(r)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
