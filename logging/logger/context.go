package logger

import (
	"context"

	"github.com/ncobase/envelope/ctxutil"
)

var traceKey = ctxutil.TraceIDKey

// getTraceID gets a trace ID from the context.
func getTraceID(ctx context.Context) string {
	return ctxutil.GetTraceID(ctx)
}

// getClientIP gets the client IP from the context.
func getClientIP(ctx context.Context) string {
	return ctxutil.GetClientIP(ctx)
}

// EnsureTraceID ensures that a trace ID exists in the context.
func EnsureTraceID(ctx context.Context) (context.Context, string) {
	return ctxutil.EnsureTraceID(ctx)
}
