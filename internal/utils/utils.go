package utils

import (
	"context"

	"go.uber.org/zap"
)

// context key
type ctxKey string

const CtxLoggerKey ctxKey = "logger"

// WithLogger stores a request-scoped logger in ctx.
func WithLogger(ctx context.Context, log *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, CtxLoggerKey, log)
}

// LoggerFrom returns the request-scoped logger, or fallback if none was set.
func LoggerFrom(ctx context.Context, fallback *zap.SugaredLogger) *zap.SugaredLogger {
	if log, ok := ctx.Value(CtxLoggerKey).(*zap.SugaredLogger); ok && log != nil {
		return log
	}
	return fallback
}
