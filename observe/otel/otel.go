// Package otel provides an OpenTelemetry observer for scoped futures. It adds
// an event to the recording span of the poll context for every poll.
package otel

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/NetPo4ki/go-logscope/future"
)

// Event names added to the span.
const (
	EventPollStart = "logscope.poll.start"
	EventPollEnd   = "logscope.poll.end"
)

type Option func(*Observer)

// WithStartEvents controls whether a start event is added before each poll.
// Enabled by default.
func WithStartEvents(v bool) Option { return func(o *Observer) { o.startEvents = v } }

// Observer implements future.Observer on top of the span found in the poll
// context. Polls without a recording span are ignored.
type Observer struct {
	startEvents bool
}

var _ future.Observer = (*Observer)(nil)

func New(optFns ...Option) *Observer {
	o := &Observer{startEvents: true}
	for _, fn := range optFns {
		fn(o)
	}
	return o
}

func (o *Observer) PollStarted(ctx context.Context) {
	if !o.startEvents {
		return
	}
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.AddEvent(EventPollStart)
	}
}

func (o *Observer) PollFinished(ctx context.Context, dur time.Duration, ready bool, err error, panicked bool) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	outcome := future.Outcome(ready, err, panicked)
	span.AddEvent(EventPollEnd, trace.WithAttributes(
		attribute.String("outcome", outcome),
		attribute.Float64("duration_ms", float64(dur)/float64(time.Millisecond)),
	))
	switch {
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	case panicked:
		span.SetStatus(codes.Error, "panic during poll")
	}
}

// Nop is a no-op future.Observer.
type Nop struct{}

// NewNop returns a no-op observer.
func NewNop() *Nop { return &Nop{} }

func (*Nop) PollStarted(context.Context)                                    {}
func (*Nop) PollFinished(context.Context, time.Duration, bool, error, bool) {}
