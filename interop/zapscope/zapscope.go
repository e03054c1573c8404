// Package zapscope lets a *zap.Logger be entered as the ambient logger.
package zapscope

import (
	"github.com/go-logr/zapr"
	"go.uber.org/zap"

	"github.com/NetPo4ki/go-logscope/interop/logrscope"
	"github.com/NetPo4ki/go-logscope/scope"
)

// Handle returns an owned scope handle that writes to z.
func Handle(z *zap.Logger) scope.Handle {
	return logrscope.Handle(zapr.NewLogger(z))
}
