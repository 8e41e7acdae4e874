package curves

import (
	"math"
	"strconv"
)

// DefaultMaxPoints is the default limit on the number of samples in a plot.
const DefaultMaxPoints = 10000

// Sample is a point of an expression's graph. Y is NaN if evaluation failed.
type Sample struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RangeError indicates an invalid sampling domain or point count.
type RangeError struct {
	XMin, XMax float64
	Points     int
	// Reason describes the problem.
	Reason string
}

func (err *RangeError) Error() string {
	return "invalid sampling of [" + strconv.FormatFloat(err.XMin, 'g', -1, 64) + ", " +
		strconv.FormatFloat(err.XMax, 'g', -1, 64) + "] with " + strconv.Itoa(err.Points) +
		" points: " + err.Reason
}

// checkRange validates a sampling domain.
func checkRange(xMin, xMax float64, n, max int) error {
	switch {
	case !finite(xMin) || !finite(xMax):
		return &RangeError{XMin: xMin, XMax: xMax, Points: n, Reason: "bounds must be finite"}
	case !(xMin < xMax):
		return &RangeError{XMin: xMin, XMax: xMax, Points: n, Reason: "lower bound must be less than upper bound"}
	case n < 2:
		return &RangeError{XMin: xMin, XMax: xMax, Points: n, Reason: "need at least 2 points"}
	case max > 0 && n > max:
		return &RangeError{XMin: xMin, XMax: xMax, Points: n, Reason: "more than " + strconv.Itoa(max) + " points"}
	case !finite(xMax - xMin):
		return &RangeError{XMin: xMin, XMax: xMax, Points: n, Reason: "domain too wide"}
	}
	return nil
}

// SampleExpr evaluates e at n evenly spaced points from xMin to xMax
// inclusive. The first and last samples are exactly at xMin and xMax.
func SampleExpr(e *Expr, xMin, xMax float64, n int, params map[string]float64) ([]Sample, error) {
	if err := checkRange(xMin, xMax, n, DefaultMaxPoints); err != nil {
		return nil, err
	}
	return sample(e.fn, xMin, xMax, n, params), nil
}

// sample evaluates f across a domain which has already been checked.
func sample(f Func, xMin, xMax float64, n int, params map[string]float64) []Sample {
	r := make([]Sample, n)
	step := (xMax - xMin) / float64(n-1)
	for i := range r {
		x := xMin + float64(i)*step
		if i == n-1 {
			x = xMax
		}
		r[i] = Sample{X: x, Y: safeEval(f, x, params)}
	}
	return r
}

// safeEval evaluates f, converting a panic into NaN.
func safeEval(f Func, x float64, params map[string]float64) (y float64) {
	defer func() {
		if recover() != nil {
			y = math.NaN()
		}
	}()
	return f(x, params)
}
