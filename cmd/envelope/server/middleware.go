package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/envelope/consts"
	"github.com/ncobase/envelope/ctxutil"
	"github.com/ncobase/envelope/logging/logger"
	"github.com/ncobase/envelope/net/resp"
	"github.com/sirupsen/logrus"
)

// traceMiddleware attaches trace id, client ip and the request to the
// request context and echoes the trace id.
func traceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if id := c.GetHeader(consts.TraceKey); id != "" {
			ctx = ctxutil.SetTraceID(ctx, id)
		}
		ctx, traceID := ctxutil.EnsureTraceID(ctx)
		ctx = ctxutil.SetClientIP(ctx, c.ClientIP())
		ctx = ctxutil.SetUserAgent(ctx, c.Request.UserAgent())
		ctx = ctxutil.SetHTTPRequest(ctx, c.Request)
		c.Request = c.Request.WithContext(ctx)

		c.Header(consts.TraceKey, traceID)
		c.Next()
	}
}

// accessLog logs every request once it is served.
func accessLog(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := l.WithContextFields(c.Request.Context(), logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		})
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}
		entry.Info("request served")
	}
}

// recovery renders panics as a 500 failure envelope.
func recovery(h *Handler) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		d := h.Dispatcher()
		res, _ := d.Fail(c.Request.Context(), "", http.StatusInternalServerError, map[string]any{}, nil, 0)
		_ = c.Error(fmt.Errorf("panic: %v", recovered))
		d.Render(c, res, nil)
		c.Abort()
	})
}

// terminal renders terminal failures pushed with c.Error by handlers that
// bypass resp.Dispatcher.Handle.
func terminal(h *Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.Dispatcher().Terminal()(c)
	}
}

func noRoute(h *Handler) gin.HandlerFunc {
	return h.handle(func(ctx context.Context, _ *gin.Context) (*resp.Result, error) {
		return nil, h.Dispatcher().ErrorNotFound(ctx, "")
	})
}

func noMethod(h *Handler) gin.HandlerFunc {
	return h.handle(func(ctx context.Context, _ *gin.Context) (*resp.Result, error) {
		return nil, h.Dispatcher().ErrorMethodNotAllowed(ctx, "")
	})
}
