// Package prometheus exports vocabtree operation metrics to Prometheus.
//
//	c, err := prometheus.NewCollector(prom.DefaultRegisterer, "vocabtree")
//	voc := vocabtree.New(descriptor.ORB(), vocabtree.WithMetricsCollector(c))
package prometheus

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	opDecode = "decode"
	opEncode = "encode"
	opBuild  = "build"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	// ioBuckets spans ~1ms to ~65s; a full ORB vocabulary decodes in seconds.
	ioBuckets = prometheus.ExponentialBuckets(0.001, 2, 17)
	// buildBuckets spans ~100ms to ~7h.
	buildBuckets = prometheus.ExponentialBuckets(0.1, 2, 18)
)

// Collector implements vocabtree.MetricsCollector with Prometheus metrics.
type Collector struct {
	operations    *prometheus.CounterVec
	ioDuration    *prometheus.HistogramVec
	buildDuration prometheus.Histogram
	nodes         *prometheus.GaugeVec
	words         *prometheus.GaugeVec
}

// NewCollector registers the vocabtree metrics with reg under namespace.
// A nil reg means prometheus.DefaultRegisterer. Registering twice with the
// same registerer reuses the existing metrics.
func NewCollector(reg prometheus.Registerer, namespace string) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{}
	var err error

	c.operations, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operations_total",
		Help:      "Number of vocabulary operations by operation and result",
	}, []string{"operation", "result"}))
	if err != nil {
		return nil, err
	}

	c.ioDuration, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "io_duration_seconds",
		Help:      "Duration of decode and encode operations",
		Buckets:   ioBuckets,
	}, []string{"operation"}))
	if err != nil {
		return nil, err
	}

	c.buildDuration, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "build_duration_seconds",
		Help:      "Duration of vocabulary builds",
		Buckets:   buildBuckets,
	}))
	if err != nil {
		return nil, err
	}

	c.nodes, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "nodes",
		Help:      "Node count of the last vocabulary decoded, encoded or built",
	}, []string{"operation"}))
	if err != nil {
		return nil, err
	}

	c.words, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "words",
		Help:      "Word count of the last vocabulary decoded or built",
	}, []string{"operation"}))
	if err != nil {
		return nil, err
	}

	return c, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var zero C
		var e prometheus.AlreadyRegisteredError
		if errors.As(err, &e) {
			if existing, ok := e.ExistingCollector.(C); ok {
				return existing, nil
			}
			return zero, fmt.Errorf("metric already registered with a different type: %w", err)
		}
		return zero, err
	}
	return c, nil
}

func result(err error) string {
	if err != nil {
		return resultError
	}
	return resultSuccess
}

// RecordDecode implements vocabtree.MetricsCollector.
func (c *Collector) RecordDecode(nodes, words int, d time.Duration, err error) {
	c.operations.WithLabelValues(opDecode, result(err)).Inc()
	c.ioDuration.WithLabelValues(opDecode).Observe(d.Seconds())
	if err == nil {
		c.nodes.WithLabelValues(opDecode).Set(float64(nodes))
		c.words.WithLabelValues(opDecode).Set(float64(words))
	}
}

// RecordEncode implements vocabtree.MetricsCollector.
func (c *Collector) RecordEncode(nodes int, d time.Duration, err error) {
	c.operations.WithLabelValues(opEncode, result(err)).Inc()
	c.ioDuration.WithLabelValues(opEncode).Observe(d.Seconds())
	if err == nil {
		c.nodes.WithLabelValues(opEncode).Set(float64(nodes))
	}
}

// RecordBuild implements vocabtree.MetricsCollector.
func (c *Collector) RecordBuild(nodes, words int, d time.Duration, err error) {
	c.operations.WithLabelValues(opBuild, result(err)).Inc()
	c.buildDuration.Observe(d.Seconds())
	if err == nil {
		c.nodes.WithLabelValues(opBuild).Set(float64(nodes))
		c.words.WithLabelValues(opBuild).Set(float64(words))
	}
}
