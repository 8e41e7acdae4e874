package curves

import (
	"math"
	"slices"
)

// builtin is a function on the allow-list. Builtins are the only functions an
// expression can call.
type builtin struct {
	name string
	// min and max bound the number of arguments. max < 0 means unbounded.
	min, max int
	call     func(args []float64) float64
	// pole, if non-nil, describes where the function is singular in terms of
	// its sole argument.
	pole *poleshape
}

// CanCall returns whether the function can be called with n arguments.
func (b *builtin) CanCall(n int) bool {
	return n >= b.min && (b.max < 0 || n <= b.max)
}

// poleshape describes singularities at offset + k*period in a function's
// argument. A period of zero means a single singularity at offset.
type poleshape struct {
	offset, period float64
}

func monadic(name string, f func(float64) float64) *builtin {
	return &builtin{name: name, min: 1, max: 1, call: func(a []float64) float64 { return f(a[0]) }}
}

func dyadic(name string, f func(float64, float64) float64) *builtin {
	return &builtin{name: name, min: 2, max: 2, call: func(a []float64) float64 { return f(a[0], a[1]) }}
}

func variadic(name string, f func(float64, float64) float64) *builtin {
	return &builtin{name: name, min: 1, max: -1, call: func(a []float64) float64 {
		r := a[0]
		for _, v := range a[1:] {
			r = f(r, v)
		}
		return r
	}}
}

func withPole(b *builtin, offset, period float64) *builtin {
	b.pole = &poleshape{offset: offset, period: period}
	return b
}

var globalfuncs = map[string]*builtin{}

func init() {
	for _, b := range []*builtin{
		monadic("sin", math.Sin),
		monadic("cos", math.Cos),
		withPole(monadic("tan", math.Tan), math.Pi/2, math.Pi),
		withPole(monadic("cot", func(x float64) float64 { return 1 / math.Tan(x) }), 0, math.Pi),
		withPole(monadic("sec", func(x float64) float64 { return 1 / math.Cos(x) }), math.Pi/2, math.Pi),
		withPole(monadic("csc", func(x float64) float64 { return 1 / math.Sin(x) }), 0, math.Pi),
		monadic("asin", math.Asin),
		monadic("acos", math.Acos),
		monadic("atan", math.Atan),
		monadic("sinh", math.Sinh),
		monadic("cosh", math.Cosh),
		monadic("tanh", math.Tanh),
		monadic("asinh", math.Asinh),
		monadic("acosh", math.Acosh),
		monadic("atanh", math.Atanh),
		monadic("exp", math.Exp),
		monadic("ln", math.Log),
		{name: "log", min: 1, max: 2, call: logb},
		monadic("log10", math.Log10),
		monadic("log2", math.Log2),
		monadic("sqrt", math.Sqrt),
		monadic("cbrt", math.Cbrt),
		monadic("abs", math.Abs),
		monadic("floor", math.Floor),
		monadic("ceil", math.Ceil),
		monadic("round", math.RoundToEven),
		monadic("sign", sign),
		dyadic("atan2", math.Atan2),
		dyadic("pow", math.Pow),
		dyadic("hypot", math.Hypot),
		dyadic("mod", math.Mod),
		variadic("min", math.Min),
		variadic("max", math.Max),
	} {
		globalfuncs[b.name] = b
	}
}

// lookupBuiltin returns the allowed function with the given folded name, or
// nil if there is none.
func lookupBuiltin(name string) *builtin {
	return globalfuncs[name]
}

// Funcs returns the sorted names of the functions expressions may call.
func Funcs() []string {
	names := make([]string, 0, len(globalfuncs))
	for k := range globalfuncs {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// logb is the natural logarithm of its first argument, or the logarithm in
// the base of its second if present.
func logb(a []float64) float64 {
	if len(a) == 1 {
		return math.Log(a[0])
	}
	return math.Log(a[0]) / math.Log(a[1])
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		// Zero or NaN.
		return x
	}
}

// constants are names which evaluate to fixed values instead of variables.
var constants = map[string]float64{
	"pi":  math.Pi,
	"π":   math.Pi,
	"tau": 2 * math.Pi,
	"τ":   2 * math.Pi,
	"e":   math.E,
}
