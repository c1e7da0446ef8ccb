package vocabtree

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// The metrics/prometheus package provides an implementation backed by
// Prometheus counters and histograms.
type MetricsCollector interface {
	// RecordDecode is called after each decode. nodes and words count what
	// was read before any error.
	RecordDecode(nodes, words int, duration time.Duration, err error)

	// RecordEncode is called after each encode.
	RecordEncode(nodes int, duration time.Duration, err error)

	// RecordBuild is called after each hierarchical k-means build.
	RecordBuild(nodes, words int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordDecode(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordEncode(int, time.Duration, error)      {}
func (NoopMetricsCollector) RecordBuild(int, int, time.Duration, error)  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	DecodeCount      atomic.Int64
	DecodeErrors     atomic.Int64
	DecodeTotalNanos atomic.Int64
	DecodedNodes     atomic.Int64
	DecodedWords     atomic.Int64
	EncodeCount      atomic.Int64
	EncodeErrors     atomic.Int64
	EncodeTotalNanos atomic.Int64
	BuildCount       atomic.Int64
	BuildErrors      atomic.Int64
}

// RecordDecode implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDecode(nodes, words int, duration time.Duration, err error) {
	b.DecodeCount.Add(1)
	b.DecodeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.DecodeErrors.Add(1)
		return
	}
	b.DecodedNodes.Add(int64(nodes))
	b.DecodedWords.Add(int64(words))
}

// RecordEncode implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEncode(nodes int, duration time.Duration, err error) {
	b.EncodeCount.Add(1)
	b.EncodeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.EncodeErrors.Add(1)
	}
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(nodes, words int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	if err != nil {
		b.BuildErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		DecodeCount:    b.DecodeCount.Load(),
		DecodeErrors:   b.DecodeErrors.Load(),
		DecodeAvgNanos: avg(b.DecodeTotalNanos.Load(), b.DecodeCount.Load()),
		DecodedNodes:   b.DecodedNodes.Load(),
		DecodedWords:   b.DecodedWords.Load(),
		EncodeCount:    b.EncodeCount.Load(),
		EncodeErrors:   b.EncodeErrors.Load(),
		EncodeAvgNanos: avg(b.EncodeTotalNanos.Load(), b.EncodeCount.Load()),
		BuildCount:     b.BuildCount.Load(),
		BuildErrors:    b.BuildErrors.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	DecodeCount    int64
	DecodeErrors   int64
	DecodeAvgNanos int64
	DecodedNodes   int64
	DecodedWords   int64
	EncodeCount    int64
	EncodeErrors   int64
	EncodeAvgNanos int64
	BuildCount     int64
	BuildErrors    int64
}
