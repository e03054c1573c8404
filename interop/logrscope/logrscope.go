// Package logrscope connects logr.Logger to the scope package, so that code
// built on logr can both supply and consume the ambient logger.
package logrscope

import (
	"log/slog"

	"github.com/go-logr/logr"

	"github.com/NetPo4ki/go-logscope/scope"
)

// Handle returns an owned scope handle that writes to l.
func Handle(l logr.Logger) scope.Handle {
	return scope.Owned(*slog.New(logr.ToSlogHandler(l)))
}

// Logger returns the current logger of the global stack as a logr.Logger.
func Logger() logr.Logger {
	return LoggerFrom(scope.Global())
}

// LoggerFrom returns the current logger of s as a logr.Logger.
func LoggerFrom(s *scope.Stack) logr.Logger {
	return logr.FromSlogHandler(s.Logger().Handler())
}
