package future

import (
	"context"
	"log/slog"
	"time"

	slogctx "github.com/veqryn/slog-context"

	"github.com/NetPo4ki/go-logscope/scope"
)

// Observer is notified around every poll of a Scoped future. Both calls are
// made while the wrapper's logger is entered, so with an observer the entered
// window covers the hooks as well as the inner poll. When the inner future
// panics, PollFinished runs from a deferred call during the unwind; the panic
// is not recovered and keeps its original traceback.
type Observer interface {
	PollStarted(ctx context.Context)
	PollFinished(ctx context.Context, dur time.Duration, ready bool, err error, panicked bool)
}

type Option func(*Options)

type Options struct {
	Stack         *scope.Stack
	Observer      Observer
	ContextLogger bool
}

func defaultOptions() Options { return Options{} }

// WithStack enters the logger on s instead of the stack of the poll context.
func WithStack(s *scope.Stack) Option { return func(o *Options) { o.Stack = s } }

func WithObserver(obs Observer) Option { return func(o *Options) { o.Observer = obs } }

// WithContextLogger also stores the logger in the poll context, so that
// slogctx.FromCtx(cx.Context()) returns it inside the inner future.
func WithContextLogger() Option { return func(o *Options) { o.ContextLogger = true } }

// noCopy lets go vet flag copies of a Scoped after first use.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Scoped is a Future that enters a logger on a scope.Stack for the duration
// of each poll of the future it wraps. Use it through the pointer returned
// by New; the value must not be copied.
type Scoped[T any] struct {
	_ noCopy

	logger    scope.Handle
	inner     Future[T]
	stack     *scope.Stack
	obs       Observer
	ctxLogger bool
}

// New wraps inner so that the logger behind h is current whenever inner is
// polled.
func New[T any](h scope.Handle, inner Future[T], optFns ...Option) *Scoped[T] {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Scoped[T]{
		logger:    h,
		inner:     inner,
		stack:     opts.Stack,
		obs:       opts.Observer,
		ctxLogger: opts.ContextLogger,
	}
}

// WithLogger is New with the future first, for call sites that read better
// that way.
func WithLogger[T any](f Future[T], h scope.Handle, opts ...Option) *Scoped[T] {
	return New(h, f, opts...)
}

// WithLogger wraps s in a further scope.
func (s *Scoped[T]) WithLogger(h scope.Handle, opts ...Option) *Scoped[T] {
	return New[T](h, s, opts...)
}

// Logger returns the logger entered on each poll.
func (s *Scoped[T]) Logger() *slog.Logger { return s.logger.Logger() }

// Inner returns the wrapped future.
func (s *Scoped[T]) Inner() Future[T] { return s.inner }

// Poll enters the logger, polls the inner future and exits the logger before
// returning. The logger is entered on the WithStack stack if one was given,
// otherwise on cx.Stack(). The inner result, error or panic passes through
// unchanged.
func (s *Scoped[T]) Poll(cx *Context) (Poll[T], error) {
	if cx == nil {
		cx = NewContext(nil, nil)
	}
	if s.stack != nil && cx.stack != s.stack {
		cx = cx.WithStack(s.stack)
	}
	st := cx.Stack()
	g := st.Enter(s.logger.Logger())
	defer g.Exit()

	if s.ctxLogger {
		cx = cx.WithContext(slogctx.NewCtx(cx.Context(), st.Logger()))
	}
	if s.obs == nil {
		return s.inner.Poll(cx)
	}
	return s.observedPoll(cx)
}

func (s *Scoped[T]) observedPoll(cx *Context) (Poll[T], error) {
	ctx := cx.Context()
	start := time.Now()
	s.obs.PollStarted(ctx)
	returned := false
	defer func() {
		if !returned {
			s.obs.PollFinished(ctx, time.Since(start), false, nil, true)
		}
	}()
	p, err := s.inner.Poll(cx)
	returned = true
	s.obs.PollFinished(ctx, time.Since(start), p.IsReady(), err, false)
	return p, err
}

// Poll outcomes reported by Outcome.
const (
	OutcomeReady   = "ready"
	OutcomePending = "pending"
	OutcomeError   = "error"
	OutcomePanic   = "panic"
)

// Outcome names the result of a finished poll as passed to
// Observer.PollFinished.
func Outcome(ready bool, err error, panicked bool) string {
	switch {
	case panicked:
		return OutcomePanic
	case err != nil:
		return OutcomeError
	case ready:
		return OutcomeReady
	default:
		return OutcomePending
	}
}
