package curves

import (
	"math"
	"testing"
)

func TestSingularities(t *testing.T) {
	cases := []struct {
		name       string
		src        string
		xMin, xMax float64
		params     map[string]float64
		want       []float64
	}{
		{"tan", "tan(x)", -1.6, 1.6, nil, []float64{-math.Pi / 2, math.Pi / 2}},
		{"tan-none", "tan(x)", -1, 1, nil, nil},
		{"tan-scaled", "tan(a*x)", 0, 1, map[string]float64{"a": 2}, []float64{math.Pi / 4}},
		{"tan-shifted", "tan(x - 1)", 0, 3, nil, []float64{1 + math.Pi/2}},
		{"tan-nested", "1 + 2*tan(x)^2", 0, 2, nil, []float64{math.Pi / 2}},
		{"cot", "cot(x)", -1, 4, nil, []float64{0, math.Pi}},
		{"csc", "csc(2*x)", 0.1, 2, nil, []float64{math.Pi / 2}},
		{"sec", "sec(x)", 0, 5, nil, []float64{math.Pi / 2, 3 * math.Pi / 2}},
		{"recip", "1/x", -2, 2, nil, []float64{0}},
		{"recip-shifted", "1/(x-2)", 0, 5, nil, []float64{2}},
		{"recip-out", "1/(x-2)", 3, 5, nil, nil},
		{"recip-param", "1/(x+b)", -5, 5, map[string]float64{"b": 3}, []float64{-3}},
		{"recip-neg", "3/(1 - x/2)", -5, 5, nil, []float64{2}},
		{"pow-neg", "x^-1", -1, 1, nil, []float64{0}},
		{"pow-neg-shift", "(x+1)^(-2)", -3, 3, nil, []float64{-1}},
		{"pow-pos", "x^2", -1, 1, nil, nil},
		{"pow-param", "x^a", -1, 1, map[string]float64{"a": -1}, nil},
		{"flat", "tan(a*x)", -10, 10, map[string]float64{"a": 0}, nil},
		{"flat-div", "1/(x - x)", -1, 1, nil, nil},
		{"square", "1/(x*x)", -1, 1, nil, []float64{0}},
		{"square-pow", "1/(x-1)^2", -2, 4, nil, []float64{1}},
		{"factors", "1/((x-1)*(x+2))", -3, 3, nil, []float64{-2, 1}},
		{"factors-scaled", "3/(2*(x-1)^2*(x/2+1))", -3, 3, nil, []float64{-2, 1}},
		{"neg-pow-factors", "(x*(x-3))^-1", -1, 4, nil, []float64{0, 3}},
		{"zero-pow", "1/(x-1)^0", -2, 4, nil, nil},
		{"var-pow", "1/(x-1)^a", -2, 4, map[string]float64{"a": 2}, nil},
		{"nonpoly", "1/(x^x)", -1, 1, nil, nil},
		{"inner-quotient", "1/((x-1)/(x+1))", -2, 2, nil, []float64{-1}},
		{"call-denominator", "1/sin(x)", -1, 1, nil, nil},
		{"constant-denominator", "x/0", -1, 1, nil, nil},
		{"dedup", "tan(x) + 1/(x - pi/2)", 0, 2, nil, []float64{math.Pi / 2}},
		{"sorted", "1/(x-1) + 1/(x+1)", -2, 2, nil, []float64{-1, 1}},
		{"too-many", "tan(x)", -1e6, 1e6, nil, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, err := Compile(c.src)
			if err != nil {
				t.Fatalf("%q failed to compile: %v", c.src, err)
			}
			got := e.Singularities(c.xMin, c.xMax, c.params)
			if len(got) != len(c.want) {
				t.Fatalf("%q over [%g, %g]: want %v, got %v", c.src, c.xMin, c.xMax, c.want, got)
			}
			for i, x := range c.want {
				if math.Abs(got[i]-x) > 1e-12 {
					t.Errorf("%q over [%g, %g]: want %v, got %v", c.src, c.xMin, c.xMax, c.want, got)
					break
				}
			}
		})
	}
}

func TestAffine(t *testing.T) {
	cases := []struct {
		src  string
		want bool
	}{
		{"x", true},
		{"2", true},
		{"-x", true},
		{"2*x + 1", true},
		{"a*x - b", true},
		{"x/3", true},
		{"(x + 1)/a", true},
		{"sin(a)*x", true},
		{"x*x", false},
		{"1/x", false},
		{"sin(x)", false},
		{"x^2", false},
		{"2^x", false},
	}
	for _, c := range cases {
		n, _, err := parse(c.src, 0)
		if err != nil {
			t.Errorf("%q failed to parse: %v", c.src, err)
			continue
		}
		if got := affine(n); got != c.want {
			t.Errorf("affine(%q) = %t, want %t", c.src, got, c.want)
		}
	}
}
