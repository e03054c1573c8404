// Package futuretest drives futures in tests and examples. It is not an
// executor: BlockOn polls a single future on the calling goroutine.
package futuretest

import (
	"context"
	"errors"

	"github.com/NetPo4ki/go-logscope/future"
	"github.com/NetPo4ki/go-logscope/scope"
)

// ErrExhausted is returned by a ScriptFuture polled more times than it has steps.
var ErrExhausted = errors.New("futuretest: script polled after its last step")

// BlockOn polls f until it is ready or fails. Between pending polls it waits
// for f to wake it, or for ctx to be done. Each call polls on a fresh
// scope.Stack, so concurrent BlockOn calls never share scope entries.
func BlockOn[T any](ctx context.Context, f future.Future[T]) (T, error) {
	return BlockOnStack(ctx, scope.NewStack(), f)
}

// BlockOnStack is BlockOn with every poll entering loggers on st.
func BlockOnStack[T any](ctx context.Context, st *scope.Stack, f future.Future[T]) (T, error) {
	var zero T
	if ctx == nil {
		ctx = context.Background()
	}
	wake := make(chan struct{}, 1)
	cx := future.NewContext(ctx, future.WakerFunc(func() {
		select {
		case wake <- struct{}{}:
		default:
		}
	})).WithStack(st)
	for {
		p, err := f.Poll(cx)
		if err != nil {
			return zero, err
		}
		if v, ok := p.Value(); ok {
			return v, nil
		}
		select {
		case <-wake:
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
}

// Step is one poll's worth of a ScriptFuture.
type Step[T any] func(cx *future.Context) (future.Poll[T], error)

// ScriptFuture runs one step per poll. A pending step wakes the waker itself,
// so BlockOn keeps polling.
type ScriptFuture[T any] struct {
	steps []Step[T]
	polls int
}

func Script[T any](steps ...Step[T]) *ScriptFuture[T] {
	return &ScriptFuture[T]{steps: steps}
}

func (s *ScriptFuture[T]) Poll(cx *future.Context) (future.Poll[T], error) {
	if s.polls >= len(s.steps) {
		return future.Pending[T](), ErrExhausted
	}
	step := s.steps[s.polls]
	s.polls++
	p, err := step(cx)
	if err == nil && p.IsPending() {
		cx.Waker().Wake()
	}
	return p, err
}

// Polls reports how many times the script has been polled.
func (s *ScriptFuture[T]) Polls() int { return s.polls }

// Yield is a step that returns pending.
func Yield[T any]() Step[T] {
	return func(*future.Context) (future.Poll[T], error) { return future.Pending[T](), nil }
}

// Return is a step that completes with v.
func Return[T any](v T) Step[T] {
	return func(*future.Context) (future.Poll[T], error) { return future.Ready(v), nil }
}

// Fail is a step that fails with err.
func Fail[T any](err error) Step[T] {
	return func(*future.Context) (future.Poll[T], error) { return future.Pending[T](), err }
}
