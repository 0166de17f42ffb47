// Package ctxutil provides request-scoped context helpers shared by the
// response dispatcher and the logger.
//
// # Gin Integration
//
//	ctx := ctxutil.WithGinContext(c.Request.Context(), c)
//	req := ctxutil.GetHTTPRequest(ctx)
//
// A *gin.Context may also be passed directly wherever a context.Context
// is expected.
//
// # Tracing
//
// GetTraceID prefers the trace id of an active OpenTelemetry span and falls
// back to a value stored with SetTraceID. EnsureTraceID generates a uuid
// when neither exists:
//
//	ctx, traceID := ctxutil.EnsureTraceID(ctx)
//
// # Client Information
//
//	ip := ctxutil.GetClientIP(ctx)
//	ua := ctxutil.GetUserAgent(ctx)
//	lang := ctxutil.GetLanguage(ctx) // explicit value or Accept-Language
package ctxutil
