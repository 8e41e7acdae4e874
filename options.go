package curves

// DefaultMaxBatch is the default limit on the number of expressions in one
// call to PlotBatch.
const DefaultMaxBatch = 100

// config holds engine settings.
type config struct {
	maxlen    int
	maxpoints int
	maxbatch  int
	thresh    Thresholds
	strict    bool
	nohints   bool
}

func defaultConfig() config {
	return config{
		maxlen:    DefaultMaxLength,
		maxpoints: DefaultMaxPoints,
		maxbatch:  DefaultMaxBatch,
		thresh:    DefaultThresholds,
	}
}

// Option is an option for creating an Engine.
type Option func(*config)

// WithMaxLength limits the length of expressions in runes. Non-positive means
// no limit.
func WithMaxLength(n int) Option {
	return func(c *config) { c.maxlen = n }
}

// WithMaxPoints limits the number of samples per plot. Non-positive means no
// limit.
func WithMaxPoints(n int) Option {
	return func(c *config) { c.maxpoints = n }
}

// WithMaxBatch limits the number of expressions per batch. Non-positive means
// no limit.
func WithMaxBatch(n int) Option {
	return func(c *config) { c.maxbatch = n }
}

// WithThresholds sets the thresholds used to split plots into segments.
func WithThresholds(t Thresholds) Option {
	return func(c *config) { c.thresh = t }
}

// WithStrictParams makes plotting and evaluation fail with a
// MissingParameterError when a parameter has no value, instead of using 0.
func WithStrictParams(strict bool) Option {
	return func(c *config) { c.strict = strict }
}

// WithoutHints disables singularity hints, leaving only the generic jump and
// slope checks to find discontinuities.
func WithoutHints() Option {
	return func(c *config) { c.nohints = true }
}
