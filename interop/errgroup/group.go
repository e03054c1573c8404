// Package errgroup wraps golang.org/x/sync/errgroup so that every goroutine
// it starts owns a scope.Stack with a logger already entered. Futures driven
// on that stack (futuretest.BlockOnStack, or future.Context.WithStack) log
// through the goroutine's logger without sharing the process-wide stack.
package errgroup

import (
	"context"

	xerrgroup "golang.org/x/sync/errgroup"

	"github.com/NetPo4ki/go-logscope/scope"
)

// Group is an errgroup.Group whose goroutines each get their own stack.
type Group struct {
	g   *xerrgroup.Group
	ctx context.Context
}

// WithContext creates a Group bound to ctx. The returned context is canceled
// when any function passed to Go returns a non-nil error.
func WithContext(ctx context.Context) (*Group, context.Context) {
	g, gctx := xerrgroup.WithContext(ctx)
	return &Group{g: g, ctx: gctx}, gctx
}

// SetLimit limits the number of goroutines running at once. A negative n
// removes the limit.
func (g *Group) SetLimit(n int) { g.g.SetLimit(n) }

// Go starts f on a new goroutine with a fresh stack whose base entry is h's
// logger. The entry stays for the goroutine's lifetime and is exited when f
// returns.
func (g *Group) Go(h scope.Handle, f func(ctx context.Context, st *scope.Stack) error) {
	if f == nil {
		return
	}
	g.g.Go(func() error {
		st := scope.NewStack()
		guard := st.Enter(h.Logger())
		defer guard.Exit()
		return f(g.ctx, st)
	})
}

// Wait blocks until all functions have returned and reports the first
// non-nil error.
func (g *Group) Wait() error {
	return g.g.Wait()
}
