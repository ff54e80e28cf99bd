package streamkm

import (
	"log/slog"
	"math/rand"
)

// InitMode selects the random center seeding strategy used before the first
// batch is processed.
type InitMode int

const (
	// InitGaussian draws every center coordinate i.i.d. from a standard
	// normal distribution. This is the default.
	InitGaussian InitMode = iota

	// InitUniformPositive draws every center coordinate i.i.d. uniformly
	// from [0,1). Useful when the input space is known to be non-negative.
	InitUniformPositive
)

func (im InitMode) String() string {
	switch im {
	case InitGaussian:
		return "gaussian"
	case InitUniformPositive:
		return "uniform-positive"
	default:
		return "unknown"
	}
}

type options struct {
	alpha            float64
	maxIterations    int
	initMode         InitMode
	rng              *rand.Rand
	partitions       int
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures StreamingKMeans constructor behavior.
type Option func(*options)

// WithAlpha configures the batch weighting.
//
// alpha == 1 (the default) selects mini-batch mode: every center is the exact
// running mean of all points ever assigned to it, and per-cluster counts grow
// without bound for the lifetime of the stream.
//
// Any other value selects forgetful mode: centers follow a per-batch
// exponential moving average with weight alpha on the new batch mean, and
// counts are not maintained. Values outside (0,1] are accepted as given.
func WithAlpha(alpha float64) Option {
	return func(o *options) {
		o.alpha = alpha
	}
}

// WithMaxIterations configures the number of refinement rounds per batch.
// Each round reassigns the batch against the centers produced by the previous
// round. Must be at least 1 (the default).
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithInitMode configures the random center seeding strategy.
func WithInitMode(mode InitMode) Option {
	return func(o *options) {
		o.initMode = mode
	}
}

// WithRandSource configures the random source used for center initialization.
// By default the process-wide unseeded math/rand source is used; inject a
// seeded *rand.Rand for deterministic initialization in tests.
func WithRandSource(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithPartitions bounds the parallelism of the per-batch assignment
// reduction. The reduction is associative and commutative, so the result is
// independent of the partition count. If n <= 0 (the default), GOMAXPROCS is
// used.
func WithPartitions(n int) Option {
	return func(o *options) {
		o.partitions = n
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
//
// Example with JSON logging:
//
//	logger := streamkm.NewJSONLogger(slog.LevelInfo)
//	skm, _ := streamkm.New(8, 128, streamkm.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		alpha:            1,
		maxIterations:    1,
		initMode:         InitGaussian,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
