// Package consts defines the context keys and header names shared by the
// response, context and logging packages.
//
//	ctx = ctxutil.WithGinContext(ctx, c) // stored under consts.GinContextKey
//	w.Header().Set(consts.TraceKey, traceID)
package consts
