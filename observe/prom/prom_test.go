package prom

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/goleak"

	"github.com/NetPo4ki/go-logscope/future"
	"github.com/NetPo4ki/go-logscope/future/futuretest"
	"github.com/NetPo4ki/go-logscope/scope"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestMetricsCountOutcomes(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st := scope.NewStack()
	s := futuretest.Script(futuretest.Yield[int](), futuretest.Yield[int](), futuretest.Return(1))
	f := future.New[int](scope.Handle{}, s, future.WithStack(st), future.WithObserver(m))
	if _, err := futuretest.BlockOn[int](context.Background(), f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	failing := future.New[int](scope.Handle{}, future.Failed[int](errors.New("x")),
		future.WithStack(st), future.WithObserver(m))
	if _, err := failing.Poll(nil); err == nil {
		t.Fatal("expected failure")
	}

	for outcome, want := range map[string]float64{
		future.OutcomePending: 2,
		future.OutcomeReady:   1,
		future.OutcomeError:   1,
		future.OutcomePanic:   0,
	} {
		if got := testutil.ToFloat64(m.polls.WithLabelValues(outcome)); got != want {
			t.Fatalf("outcome %s: expected %v, got %v", outcome, want, got)
		}
	}
	if got := testutil.ToFloat64(m.inFlight); got != 0 {
		t.Fatalf("expected no polls in flight, got %v", got)
	}
	if n := testutil.CollectAndCount(reg, "logscope_poll_duration_seconds"); n != 1 {
		t.Fatalf("expected the duration histogram to be registered, got %d", n)
	}
}

func TestMetricsRecordPanic(t *testing.T) {
	t.Parallel()
	m, err := New(nil, WithNamespace("custom"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f := future.New[int](scope.Handle{}, future.Func[int](func(*future.Context) (future.Poll[int], error) {
		panic("boom")
	}), future.WithStack(scope.NewStack()), future.WithObserver(m))
	func() {
		defer func() { _ = recover() }()
		_, _ = f.Poll(nil)
	}()
	if got := testutil.ToFloat64(m.polls.WithLabelValues(future.OutcomePanic)); got != 1 {
		t.Fatalf("expected one panic, got %v", got)
	}
}

func TestDuplicateRegistrationFails(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	if _, err := New(reg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := New(reg); err == nil {
		t.Fatal("expected duplicate registration error")
	}
}

func TestFailedRegistrationRollsBack(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "logscope",
		Name:      "polls_in_flight",
		Help:      "Taken by another component.",
	}))
	if _, err := New(reg); err == nil {
		t.Fatal("expected registration error")
	}
	polls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "logscope",
		Name:      "polls_total",
		Help:      "Polls of scoped futures by outcome.",
	}, []string{"outcome"})
	if err := reg.Register(polls); err != nil {
		t.Fatalf("polls_total should have been unregistered, got %v", err)
	}
}
