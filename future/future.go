package future

import (
	"context"
	"log/slog"

	"github.com/NetPo4ki/go-logscope/scope"
)

// Poll is the outcome of one resumption: either pending or ready with a value.
type Poll[T any] struct {
	value T
	ready bool
}

// Ready returns a completed outcome carrying v.
func Ready[T any](v T) Poll[T] { return Poll[T]{value: v, ready: true} }

// Pending returns the "not yet" outcome.
func Pending[T any]() Poll[T] { return Poll[T]{} }

func (p Poll[T]) IsReady() bool   { return p.ready }
func (p Poll[T]) IsPending() bool { return !p.ready }

// Value returns the output and whether the poll was ready.
func (p Poll[T]) Value() (T, bool) { return p.value, p.ready }

// Waker is signalled by a pending future once it can make progress.
type Waker interface {
	Wake()
}

// WakerFunc adapts a function to Waker.
type WakerFunc func()

func (f WakerFunc) Wake() { f() }

// NoopWaker ignores wake-ups.
var NoopWaker Waker = WakerFunc(func() {})

// Context is what a driver hands to each Poll call. Besides the
// context.Context and Waker it carries the scope.Stack of the goroutine doing
// the polling; a Context without one uses scope.Global().
type Context struct {
	ctx   context.Context
	waker Waker
	stack *scope.Stack
}

// NewContext builds a poll context. A nil ctx becomes context.Background and
// a nil waker becomes NoopWaker.
func NewContext(ctx context.Context, w Waker) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if w == nil {
		w = NoopWaker
	}
	return &Context{ctx: ctx, waker: w}
}

func (c *Context) Context() context.Context { return c.ctx }
func (c *Context) Waker() Waker             { return c.waker }

// Stack returns the stack loggers are entered on during this poll.
func (c *Context) Stack() *scope.Stack {
	if c.stack == nil {
		return scope.Global()
	}
	return c.stack
}

// Logger returns the current logger of c's stack.
func (c *Context) Logger() *slog.Logger { return c.Stack().Logger() }

// WithContext returns a copy of c carrying ctx.
func (c *Context) WithContext(ctx context.Context) *Context {
	cp := NewContext(ctx, c.waker)
	cp.stack = c.stack
	return cp
}

// WithStack returns a copy of c whose polls enter loggers on s.
func (c *Context) WithStack(s *scope.Stack) *Context {
	cp := *c
	cp.stack = s
	return &cp
}

// Future is an asynchronous computation driven by repeated Poll calls.
// Poll returns Pending until the output is available. A non-nil error
// ends the computation with a failure.
type Future[T any] interface {
	Poll(cx *Context) (Poll[T], error)
}

// Func adapts a poll function to Future.
type Func[T any] func(cx *Context) (Poll[T], error)

func (f Func[T]) Poll(cx *Context) (Poll[T], error) { return f(cx) }

// WithLogger wraps f so that h is entered on every poll.
func (f Func[T]) WithLogger(h scope.Handle, opts ...Option) *Scoped[T] {
	return New[T](h, f, opts...)
}

// Completed returns a future that is ready with v on the first poll.
func Completed[T any](v T) Future[T] {
	return Func[T](func(*Context) (Poll[T], error) { return Ready(v), nil })
}

// Failed returns a future that fails with err on the first poll.
func Failed[T any](err error) Future[T] {
	return Func[T](func(*Context) (Poll[T], error) { return Pending[T](), err })
}
