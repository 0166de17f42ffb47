package ctxutil

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ncobase/envelope/consts"
	"go.opentelemetry.io/otel/trace"
)

const (
	ginContextKey = consts.GinContextKey
	languageKey   = "language"
	// TraceIDKey trace id context key
	TraceIDKey = "trace_id"
)

// FromGinContext extracts the context.Context from *gin.Context.
func FromGinContext(c *gin.Context) context.Context {
	return c.Request.Context()
}

// WithGinContext returns a context.Context that embeds the *gin.Context.
func WithGinContext(ctx context.Context, c *gin.Context) context.Context {
	return context.WithValue(ctx, ginContextKey, c)
}

// GetGinContext extracts *gin.Context from context.Context if it exists.
func GetGinContext(ctx context.Context) (*gin.Context, bool) {
	if ctx == nil {
		return nil, false
	}
	if c, ok := ctx.Value(ginContextKey).(*gin.Context); ok {
		return c, ok
	}
	// *gin.Context is itself a context.Context
	if c, ok := ctx.(*gin.Context); ok {
		return c, ok
	}
	return nil, false
}

// GetValue retrieves a value from the context.
func GetValue(ctx context.Context, key string) any {
	if ctx == nil {
		return nil
	}
	if c, ok := GetGinContext(ctx); ok {
		if val, exists := c.Get(key); exists {
			return val
		}
	}
	return ctx.Value(key)
}

// SetValue sets a value to the context.
func SetValue(ctx context.Context, key string, val any) context.Context {
	if c, ok := GetGinContext(ctx); ok {
		c.Set(key, val)
	}
	return context.WithValue(ctx, key, val)
}

// GetTraceID gets trace id from the active span, context.Context or gin.Context.
func GetTraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		return sc.TraceID().String()
	}
	if traceID, ok := GetValue(ctx, TraceIDKey).(string); ok {
		return traceID
	}
	return ""
}

// SetTraceID sets trace id to context.Context and gin.Context if available.
func SetTraceID(ctx context.Context, traceID string) context.Context {
	return SetValue(ctx, TraceIDKey, traceID)
}

// EnsureTraceID ensures that a trace ID exists in the context.
func EnsureTraceID(ctx context.Context) (context.Context, string) {
	if traceID := GetTraceID(ctx); traceID != "" {
		return ctx, traceID
	}
	traceID := uuid.NewString()
	return SetTraceID(ctx, traceID), traceID
}

// SetLanguage sets the preferred message language to context.Context.
func SetLanguage(ctx context.Context, lang string) context.Context {
	return SetValue(ctx, languageKey, lang)
}

// GetLanguage gets the preferred message language, falling back to the
// request's Accept-Language header.
func GetLanguage(ctx context.Context) string {
	if lang, ok := GetValue(ctx, languageKey).(string); ok && lang != "" {
		return lang
	}
	if req := GetHTTPRequest(ctx); req != nil {
		return req.Header.Get(consts.AcceptLanguageKey)
	}
	return ""
}
