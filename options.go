package vocabtree

import (
	"log/slog"

	"github.com/hupe1980/vocabtree/internal/resource"
)

const (
	// DefaultMaxLineSize bounds a single record line. An ORB record is about
	// 150 bytes; a 128-dimensional float record about 2 KiB.
	DefaultMaxLineSize = 1 << 20

	// DefaultKMeansIterations is the Lloyd iteration cap per clustering.
	DefaultKMeansIterations = 10
)

type options struct {
	logger           *Logger
	metrics          MetricsCollector
	maxLineSize      int
	resourceCfg      resource.Config
	resource         *resource.Controller
	kmeansIterations int
	seed             int64
}

// Option configures vocabulary loading, saving and building.
type Option func(*options)

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := vocabtree.NewJSONLogger(slog.LevelInfo)
//	voc := vocabtree.New(descriptor.ORB(), vocabtree.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
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

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
//	metrics := &vocabtree.BasicMetricsCollector{}
//	voc := vocabtree.New(descriptor.ORB(), vocabtree.WithMetricsCollector(metrics))
//	_ = voc.Decode(ctx, r)
//	fmt.Println(metrics.GetStats().DecodeAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metrics = mc
	}
}

// WithMaxLineSize bounds the length of a single input line.
// Longer lines fail the decode with ErrMalformedRecord.
func WithMaxLineSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxLineSize = n
		}
	}
}

// WithMemoryLimit caps the memory the decoder may reserve up front for the
// node arena. The header's full-tree size is only a hint; when it does not
// fit the budget the decoder grows storage on demand instead.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.resourceCfg.MemoryLimitBytes = bytes
	}
}

// WithIOLimit throttles reads from blob stores to bytesPerSec.
func WithIOLimit(bytesPerSec int64) Option {
	return func(o *options) {
		o.resourceCfg.IOLimitBytesPerSec = bytesPerSec
	}
}

// WithWorkers bounds the number of clusterings Build runs concurrently.
// Defaults to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.resourceCfg.MaxWorkers = n
	}
}

// WithKMeansIterations sets the Lloyd iteration cap for Build.
func WithKMeansIterations(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.kmeansIterations = n
		}
	}
}

// WithSeed makes Build deterministic.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

func newOptions(optFns []Option) options {
	o := options{
		logger:           NoopLogger(),
		metrics:          NoopMetricsCollector{},
		maxLineSize:      DefaultMaxLineSize,
		kmeansIterations: DefaultKMeansIterations,
		seed:             1,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.metrics == nil {
		o.metrics = NoopMetricsCollector{}
	}
	o.resource = resource.NewController(o.resourceCfg)
	return o
}
