package scope

import (
	"context"
	"log/slog"
)

// With returns the current global logger with args added.
func With(args ...any) *slog.Logger {
	return Logger().With(args...)
}

// Debug logs at LevelDebug on the current global logger.
func Debug(msg string, args ...any) {
	Logger().Log(context.Background(), slog.LevelDebug, msg, args...)
}

// Info logs at LevelInfo on the current global logger.
func Info(msg string, args ...any) {
	Logger().Log(context.Background(), slog.LevelInfo, msg, args...)
}

// Warn logs at LevelWarn on the current global logger.
func Warn(msg string, args ...any) {
	Logger().Log(context.Background(), slog.LevelWarn, msg, args...)
}

// Error logs at LevelError on the current global logger.
func Error(msg string, args ...any) {
	Logger().Log(context.Background(), slog.LevelError, msg, args...)
}

// Log logs at level on the current global logger.
func Log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if ctx == nil {
		ctx = context.Background()
	}
	Logger().Log(ctx, level, msg, args...)
}
