// Package logger wraps log/slog with request correlation. The request
// logging middleware tags a child logger with the request id and stores
// it on the context; handlers pull it back with WithCtx so every line
// from one checkout shares a request_id.
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order placed", "order_number", order.Number)
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/muthuvel/santhai/config"
)

var L *slog.Logger

func init() {
	var handler slog.Handler

	switch config.AppEnv() {
	case "production", "prod":
		// JSON for the log shipper
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	L = slog.New(handler)
	slog.SetDefault(L)
}

type ctxKey struct{}

// WithCtx returns the request-tagged logger stored by the logging
// middleware, or the base logger when the context has none.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a pre-tagged logger on the context. Only the
// logging middleware calls this.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
