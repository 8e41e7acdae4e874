// Package curves turns algebraic expressions into plottable curves.
//
// An expression like "a*sin(x) + b" is compiled into a closure of x and its
// parameters, here a and b. Compilation goes through a lexer and parser which
// only understand numbers, variables, the operators + - * / ^, and a fixed set
// of functions such as sin, log, and sqrt, so compiled expressions can do
// nothing except arithmetic. Arithmetic follows IEEE-754: 1/0 is +Inf, 0/0 is
// NaN, and neither is an error.
//
// An Engine samples a compiled expression over a domain and splits the
// samples into Segments, continuous runs which a renderer draws as separate
// polylines so that asymptotes such as those of tan(x) or 1/x are not bridged.
// Compiled expressions are cached by canonical text in an LRU Cache, which
// may be shared among engines.
package curves
