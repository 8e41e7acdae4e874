package curves

import (
	"math"
	"sort"
)

// Segment is a run of at least two valid samples which can be drawn as one
// polyline.
type Segment []Sample

// Thresholds control where Segments splits a sampled curve. The values are
// absolute, not relative to any viewport.
type Thresholds struct {
	// Magnitude is the largest |y| of a valid sample.
	Magnitude float64
	// Jump is the largest |Δy| allowed between neighbors regardless of slope.
	Jump float64
	// Slope is the largest |Δy/Δx| allowed between neighbors when either
	// neighbor's |y| exceeds SlopeFloor.
	Slope      float64
	SlopeFloor float64
	// HintFloor is the |y| which either neighbor must exceed for a hinted
	// singularity between them to split the curve. Non-positive disables
	// hints.
	HintFloor float64
	// HintTolerance widens the interval between neighbors when checking for
	// hinted singularities.
	HintTolerance float64
}

// DefaultThresholds are thresholds tuned for plots spanning tens of units in
// each direction with hundreds to thousands of points.
var DefaultThresholds = Thresholds{
	Magnitude:     1e6,
	Jump:          5000,
	Slope:         500,
	SlopeFloor:    50,
	HintFloor:     10,
	HintTolerance: 1e-9,
}

// Valid reports whether y can appear in a segment. Infinities are never valid,
// even with an infinite Magnitude.
func (t Thresholds) Valid(y float64) bool {
	return finite(y) && math.Abs(y) <= t.Magnitude
}

// broken reports whether the curve is discontinuous between two adjacent
// valid samples. hints must be sorted.
func (t Thresholds) broken(a, b Sample, hints []float64) bool {
	dy := math.Abs(b.Y - a.Y)
	if dy > t.Jump {
		return true
	}
	big := math.Max(math.Abs(a.Y), math.Abs(b.Y))
	if dx := b.X - a.X; dx > 0 && dy/dx > t.Slope && big > t.SlopeFloor {
		return true
	}
	if t.HintFloor > 0 && big > t.HintFloor && len(hints) > 0 {
		lo, hi := a.X-t.HintTolerance, b.X+t.HintTolerance
		k := sort.SearchFloat64s(hints, lo)
		if k < len(hints) && hints[k] <= hi {
			return true
		}
	}
	return false
}

// Segments partitions samples into continuous runs. Invalid samples are
// dropped and always separate runs. Adjacent valid samples are separated when
// thresholds or a singularity hint indicate a discontinuity between them. Runs
// of a single sample are dropped. Samples must be in ascending order of X, and
// hints must be sorted.
//
// When in doubt, Segments splits: a gap in a continuous curve is less
// misleading than a line drawn across an asymptote.
func Segments(samples []Sample, t Thresholds, hints []float64) []Segment {
	var r []Segment
	var run Segment
	flush := func() {
		if len(run) >= 2 {
			r = append(r, run)
		}
		run = nil
	}
	for _, s := range samples {
		if !t.Valid(s.Y) {
			flush()
			continue
		}
		if len(run) > 0 && t.broken(run[len(run)-1], s, hints) {
			flush()
		}
		run = append(run, s)
	}
	flush()
	return r
}
