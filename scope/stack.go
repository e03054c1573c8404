package scope

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
)

// ErrOutOfOrder is the panic value used when a guard is exited after its
// entry was already unwound by an enclosing guard.
var ErrOutOfOrder = errors.New("scope: guard exited out of order")

// Stack is a last-in first-out stack of loggers.
//
// The mutex only keeps the slice consistent. The push/pop discipline assumes
// one goroutine at a time per Stack: two goroutines entering on the same
// Stack see each other's loggers. Drivers polling on several goroutines give
// each one its own Stack (see future.Context.WithStack).
type Stack struct {
	mu      sync.Mutex
	entries []entry
	seq     uint64
}

type entry struct {
	l  *slog.Logger
	id uint64
}

var global = NewStack()

// NewStack returns an empty stack.
func NewStack() *Stack { return &Stack{} }

// Global returns the process-wide stack. It is used by synchronous code and
// by polls whose context carries no stack.
func Global() *Stack { return global }

// Guard undoes one Enter call.
type Guard struct {
	s     *Stack
	depth int
	id    uint64
	done  atomic.Bool
}

// Enter pushes l and returns the guard that pops it. A nil l is pushed as an
// entry that resolves to the fallback logger.
func (s *Stack) Enter(l *slog.Logger) *Guard {
	s.mu.Lock()
	s.seq++
	g := &Guard{s: s, depth: len(s.entries), id: s.seq}
	s.entries = append(s.entries, entry{l: l, id: g.id})
	s.mu.Unlock()
	return g
}

// Exit restores the stack to the depth it had before the matching Enter.
// Entries entered after it and never exited are unwound with it. If the
// guard's own entry is already gone, the stack is left as is and Exit
// panics with ErrOutOfOrder. Calling Exit more than once is a no-op.
func (g *Guard) Exit() {
	if g == nil || !g.done.CompareAndSwap(false, true) {
		return
	}
	s := g.s
	s.mu.Lock()
	if len(s.entries) <= g.depth || s.entries[g.depth].id != g.id {
		s.mu.Unlock()
		panic(ErrOutOfOrder)
	}
	clear(s.entries[g.depth:])
	s.entries = s.entries[:g.depth]
	s.mu.Unlock()
}

// Run calls fn with l entered on s.
func (s *Stack) Run(l *slog.Logger, fn func()) {
	g := s.Enter(l)
	defer g.Exit()
	fn()
}

// Logger returns the most recently entered logger, or slog.Default() when the
// stack is empty or the top entry is nil.
func (s *Stack) Logger() *slog.Logger {
	s.mu.Lock()
	var l *slog.Logger
	if n := len(s.entries); n > 0 {
		l = s.entries[n-1].l
	}
	s.mu.Unlock()
	if l == nil {
		return slog.Default()
	}
	return l
}

// Depth reports how many loggers are currently entered.
func (s *Stack) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Enter pushes l onto the global stack.
func Enter(l *slog.Logger) *Guard { return global.Enter(l) }

// Run calls fn with l entered on the global stack.
func Run(l *slog.Logger, fn func()) { global.Run(l, fn) }

// Logger returns the current logger of the global stack.
func Logger() *slog.Logger { return global.Logger() }

// Depth reports the depth of the global stack.
func Depth() int { return global.Depth() }
