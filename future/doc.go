// Package future defines a poll-style asynchronous computation and the
// Scoped wrapper that keeps a logger entered on a scope.Stack while the
// computation runs.
//
// Entering a logger once around the creation of a future does nothing for
// the code that runs when the future is later polled. Scoped enters the
// logger at the start of every Poll and exits it before Poll returns, so the
// logger is current exactly while the inner computation executes:
//
//	log := slog.Default().With("request_id", id)
//	f := future.New(scope.Borrowed(log), fetch(id))
//
// or, with the chaining form,
//
//	f := future.WithLogger(fetch(id), scope.Borrowed(log))
//
// Loggers are entered on the scope.Stack carried by the poll Context, so
// each driver goroutine keeps its own entries. Inner futures log through
// cx.Logger(). A Context without a stack falls back to scope.Global().
//
// This package does not schedule anything. Whatever drives the future calls
// Poll; see package futuretest for a minimal blocking driver.
package future
