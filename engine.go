package curves

import (
	"errors"
	"log/slog"
	"math"
	"strconv"
	"time"
)

// Engine compiles, samples, and segments expressions. Compiled expressions
// are shared through the engine's cache. An Engine is safe for concurrent use
// by multiple goroutines.
type Engine struct {
	cache *Cache
	cfg   config
}

// NewEngine creates an engine using the given cache. Several engines may
// share a cache only if they use the same length limit. If cache is nil, the
// engine creates its own with the default capacity.
func NewEngine(cache *Cache, opts ...Option) *Engine {
	if cache == nil {
		cache = NewCache(0)
	}
	e := Engine{cache: cache, cfg: defaultConfig()}
	for _, opt := range opts {
		opt(&e.cfg)
	}
	return &e
}

// Cache returns the engine's expression cache.
func (e *Engine) Cache() *Cache {
	return e.cache
}

// Compile compiles an expression, reusing the cached result for any text with
// the same canonical form.
func (e *Engine) Compile(src string) (*Expr, error) {
	src = normalize(src)
	key := Canonical(src)
	return e.cache.GetOrCompile(key, func() (*Expr, error) {
		return compile(src, e.cfg.maxlen)
	})
}

// Eval compiles an expression and evaluates it at a single point.
func (e *Engine) Eval(src string, x float64, params map[string]float64) (float64, error) {
	ex, err := e.Compile(src)
	if err != nil {
		return 0, err
	}
	params = foldParams(params)
	if err := e.checkParams(ex, params); err != nil {
		return 0, err
	}
	return safeEval(ex.fn, x, params), nil
}

// Request describes how to plot an expression.
type Request struct {
	// XMin and XMax are the bounds of the domain.
	XMin, XMax float64
	// Points is the number of samples.
	Points int
	// Params are the values of the expression's parameters.
	Params map[string]float64
}

// Graph is a plotted expression.
type Graph struct {
	// Segments are the continuous pieces of the curve in ascending order of x.
	// A renderer must draw each as a separate polyline.
	Segments []Segment `json:"segments"`
	// Variables are all free variables of the expression.
	Variables []string `json:"variables"`
	// Parameters are the free variables other than x.
	Parameters []string `json:"parameters"`
	// TotalPoints is the number of samples taken.
	TotalPoints int `json:"total_points"`
	// ValidPoints is the number of samples with valid values, including any
	// dropped as isolated points.
	ValidPoints int `json:"valid_points"`
	// YRange is the smallest and largest valid y, or zeros if none.
	YRange [2]float64 `json:"y_range"`
}

// Plot compiles an expression, samples it, and splits the samples into
// continuous segments.
func (e *Engine) Plot(src string, req Request) (*Graph, error) {
	start := time.Now()
	if err := checkRange(req.XMin, req.XMax, req.Points, e.cfg.maxpoints); err != nil {
		return nil, err
	}
	ex, err := e.Compile(src)
	if err != nil {
		return nil, err
	}
	params := foldParams(req.Params)
	if err := e.checkParams(ex, params); err != nil {
		return nil, err
	}
	samples := sample(ex.fn, req.XMin, req.XMax, req.Points, params)
	var hints []float64
	if !e.cfg.nohints {
		hints = ex.Singularities(req.XMin, req.XMax, params)
	}
	g := Graph{
		Segments:    Segments(samples, e.cfg.thresh, hints),
		Variables:   ex.Vars(),
		Parameters:  ex.Params(),
		TotalPoints: len(samples),
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range samples {
		if e.cfg.thresh.Valid(s.Y) {
			g.ValidPoints++
			lo, hi = math.Min(lo, s.Y), math.Max(hi, s.Y)
		}
	}
	if g.ValidPoints > 0 {
		g.YRange = [2]float64{lo, hi}
	}
	Logger().Debug("plotted expression",
		slog.String("expr", src),
		slog.Int("points", g.TotalPoints),
		slog.Int("valid", g.ValidPoints),
		slog.Int("segments", len(g.Segments)),
		slog.Int("hints", len(hints)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return &g, nil
}

// checkParams checks for missing parameters if the engine is strict.
func (e *Engine) checkParams(ex *Expr, params map[string]float64) error {
	if !e.cfg.strict {
		return nil
	}
	for _, p := range ex.params {
		if _, ok := params[p]; !ok {
			return &MissingParameterError{Name: p}
		}
	}
	return nil
}

// MissingParameterError is an error from a strict engine evaluating an
// expression with a parameter that has no value.
type MissingParameterError struct {
	// Name is the missing parameter.
	Name string
}

func (err *MissingParameterError) Error() string {
	return "no value for parameter " + strconv.Quote(err.Name)
}

// ErrorInfo is a description of an error suitable for showing to users.
type ErrorInfo struct {
	// Kind names the type of error, e.g. "UnmatchedParenthesis".
	Kind string `json:"kind"`
	// Message is the error message.
	Message string `json:"message"`
	// Position is the column of the error in the expression, if it has one.
	Position int `json:"position,omitempty"`
}

// Describe converts an error from the package into an ErrorInfo.
func Describe(err error) ErrorInfo {
	var (
		lex   *LexError
		parse *ParseError
		rng   *RangeError
		miss  *MissingParameterError
		batch *BatchTooLargeError
	)
	switch {
	case errors.As(err, &lex):
		info := ErrorInfo{Kind: lex.Kind.String(), Message: lex.Error()}
		if lex.Kind != ExpressionTooLong {
			info.Position = lex.Col
		}
		return info
	case errors.As(err, &parse):
		return ErrorInfo{Kind: parse.Kind.String(), Message: parse.Error(), Position: parse.Col}
	case errors.As(err, &rng):
		return ErrorInfo{Kind: "InvalidRange", Message: rng.Error()}
	case errors.As(err, &miss):
		return ErrorInfo{Kind: "MissingParameter", Message: miss.Error()}
	case errors.As(err, &batch):
		return ErrorInfo{Kind: "BatchTooLarge", Message: batch.Error()}
	default:
		return ErrorInfo{Kind: "Internal", Message: err.Error()}
	}
}
