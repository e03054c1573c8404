package future_test

import (
	"context"
	"errors"
	"testing"

	"github.com/NetPo4ki/go-logscope/future"
	"github.com/NetPo4ki/go-logscope/internal/logtest"
	"github.com/NetPo4ki/go-logscope/scope"
)

func TestPollOutcomes(t *testing.T) {
	t.Parallel()
	r := future.Ready("x")
	if v, ok := r.Value(); !ok || v != "x" || !r.IsReady() || r.IsPending() {
		t.Fatalf("unexpected ready poll: %+v", r)
	}
	p := future.Pending[string]()
	if _, ok := p.Value(); ok || !p.IsPending() {
		t.Fatalf("unexpected pending poll: %+v", p)
	}
}

func TestNewContextDefaults(t *testing.T) {
	t.Parallel()
	cx := future.NewContext(nil, nil) //nolint:staticcheck
	if cx.Context() == nil || cx.Waker() == nil {
		t.Fatal("expected defaults for nil context and waker")
	}
	cx.Waker().Wake()

	type key struct{}
	woke := 0
	cx = future.NewContext(context.Background(), future.WakerFunc(func() { woke++ }))
	derived := cx.WithContext(context.WithValue(cx.Context(), key{}, 1))
	derived.Waker().Wake()
	if woke != 1 {
		t.Fatalf("derived context should keep the waker, woke=%d", woke)
	}
	if derived.Context().Value(key{}) != 1 || cx.Context().Value(key{}) != nil {
		t.Fatal("WithContext must only affect the copy")
	}
}

func TestContextStack(t *testing.T) {
	t.Parallel()
	cx := future.NewContext(context.Background(), nil)
	if cx.Stack() != scope.Global() {
		t.Fatal("a context without a stack should use the process-wide one")
	}
	st := scope.NewStack()
	l1 := logtest.NewRecorder().Logger("L1")
	g := st.Enter(l1)
	defer g.Exit()

	withStack := cx.WithStack(st)
	if withStack.Stack() != st || withStack.Logger() != l1 {
		t.Fatal("WithStack should make st the poll stack")
	}
	if cx.Stack() != scope.Global() {
		t.Fatal("WithStack must only affect the copy")
	}
	type key struct{}
	if derived := withStack.WithContext(context.WithValue(context.Background(), key{}, 1)); derived.Stack() != st {
		t.Fatal("WithContext should keep the stack")
	}
}

func TestCompletedAndFailed(t *testing.T) {
	t.Parallel()
	cx := future.NewContext(context.Background(), nil)
	p, err := future.Completed(3).Poll(cx)
	if v, ok := p.Value(); err != nil || !ok || v != 3 {
		t.Fatalf("expected Ready(3), got (%v, %v, %v)", v, ok, err)
	}
	boom := errors.New("boom")
	if _, err := future.Failed[int](boom).Poll(cx); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestOutcome(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	cases := []struct {
		ready    bool
		err      error
		panicked bool
		want     string
	}{
		{ready: true, want: future.OutcomeReady},
		{want: future.OutcomePending},
		{err: boom, want: future.OutcomeError},
		{panicked: true, want: future.OutcomePanic},
		{err: boom, panicked: true, want: future.OutcomePanic},
	}
	for _, c := range cases {
		if got := future.Outcome(c.ready, c.err, c.panicked); got != c.want {
			t.Fatalf("Outcome(%v, %v, %v) = %s, want %s", c.ready, c.err, c.panicked, got, c.want)
		}
	}
}
