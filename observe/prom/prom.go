// Package prom provides a Prometheus observer for scoped futures.
package prom

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/NetPo4ki/go-logscope/future"
)

type Option func(*options)

type options struct {
	namespace string
	buckets   []float64
}

// WithNamespace sets the metric namespace. The default is "logscope".
func WithNamespace(ns string) Option { return func(o *options) { o.namespace = ns } }

// WithBuckets overrides the poll duration histogram buckets.
func WithBuckets(b []float64) Option { return func(o *options) { o.buckets = b } }

// Metrics implements future.Observer with Prometheus collectors.
type Metrics struct {
	polls    *prometheus.CounterVec
	inFlight prometheus.Gauge
	duration prometheus.Histogram
}

var _ future.Observer = (*Metrics)(nil)

// New creates the collectors and registers them with reg. A nil reg skips
// registration.
func New(reg prometheus.Registerer, optFns ...Option) (*Metrics, error) {
	o := options{namespace: "logscope", buckets: prometheus.ExponentialBuckets(1e-6, 4, 10)}
	for _, fn := range optFns {
		fn(&o)
	}
	m := &Metrics{
		polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "polls_total",
			Help:      "Polls of scoped futures by outcome.",
		}, []string{"outcome"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: o.namespace,
			Name:      "polls_in_flight",
			Help:      "Polls of scoped futures currently running.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Name:      "poll_duration_seconds",
			Help:      "Time spent inside the inner future per poll.",
			Buckets:   o.buckets,
		}),
	}
	if reg != nil {
		collectors := []prometheus.Collector{m.polls, m.inFlight, m.duration}
		for i, c := range collectors {
			if err := reg.Register(c); err != nil {
				for _, done := range collectors[:i] {
					reg.Unregister(done)
				}
				return nil, fmt.Errorf("registering logscope metrics: %w", err)
			}
		}
	}
	return m, nil
}

// PollStarted increments the in-flight gauge.
func (m *Metrics) PollStarted(_ context.Context) {
	m.inFlight.Inc()
}

// PollFinished records the outcome and duration of a poll.
func (m *Metrics) PollFinished(_ context.Context, dur time.Duration, ready bool, err error, panicked bool) {
	m.inFlight.Dec()
	m.duration.Observe(dur.Seconds())
	m.polls.WithLabelValues(future.Outcome(ready, err, panicked)).Inc()
}
