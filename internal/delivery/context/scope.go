// Package context tags a request (or a pushed audit message) with its id and a
// logger carrying that id, so use cases and repositories log under it.
package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// HeaderRequestID carries the request id in and out of HTTP exchanges.
const HeaderRequestID = "X-Request-Id"

type scopeKey uint8

const (
	requestIDKey scopeKey = iota
	loggerKey
)

// Begin tags ctx with requestID and with a child of base that logs it.
// An empty requestID is replaced by a fresh UUID; the id in use is returned.
func Begin(ctx context.Context, requestID string, base *slog.Logger) (context.Context, string) {
	if requestID == "" {
		requestID = uuid.NewString()
	}
	ctx = WithRequestID(ctx, requestID)
	ctx = WithLogger(ctx, base.With(slog.String("request_id", requestID)))

	return ctx, requestID
}

// RequestID returns the id set by Begin or WithRequestID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)

	return id
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// Logger returns the request-scoped logger, or fallback outside a request.
func Logger(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return fallback
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}
