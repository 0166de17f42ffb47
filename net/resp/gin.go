package resp

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/envelope/ctxutil"
)

// GinSink writes results through a gin context.
type GinSink struct {
	c      *gin.Context
	format string
}

// NewGinSink creates a sink rendering with gin's renderers.
func NewGinSink(c *gin.Context, format string) *GinSink {
	return &GinSink{c: c, format: format}
}

// Write implements Sink
func (s *GinSink) Write(res *Result) error {
	for k, v := range res.Header {
		s.c.Writer.Header()[k] = v
	}

	switch {
	case !bodyAllowed(res.Status):
		s.c.Status(res.Status)
		s.c.Writer.WriteHeaderNow()
	case s.format == "xml":
		s.c.XML(res.Status, res.Body)
	case s.format == "text":
		return writeResponse(s.c.Writer, s.format, res)
	case res.Options.Has(OptPretty):
		s.c.IndentedJSON(res.Status, res.Body)
	case res.Options.Has(OptUnescapedHTML):
		s.c.PureJSON(res.Status, res.Body)
	default:
		s.c.JSON(res.Status, res.Body)
	}
	return nil
}

// Render renders the terminal failure in err, or res when err is nil, and
// aborts the remaining handlers.
func (d *Dispatcher) Render(c *gin.Context, res *Result, err error) {
	if rerr := d.render(NewGinSink(c, d.cfg.Format), res, err); rerr != nil {
		_ = c.Error(rerr)
	}
	if err != nil {
		c.Abort()
	}
}

// HandlerFunc is a gin handler returning a result or a failure.
type HandlerFunc func(ctx context.Context, c *gin.Context) (*Result, error)

// Handle adapts a HandlerFunc to gin. The context passed to h embeds c so
// resource hooks and message localization can reach the request.
func (d *Dispatcher) Handle(h HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := ctxutil.WithGinContext(c.Request.Context(), c)
		res, err := h(ctx, c)
		d.Render(c, res, err)
	}
}

// Terminal is a middleware rendering the last terminal failure a handler
// pushed with c.Error when nothing was written yet.
func (d *Dispatcher) Terminal() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		for i := len(c.Errors) - 1; i >= 0; i-- {
			if res, ok := AsTerminal(c.Errors[i].Err); ok {
				d.Render(c, res, nil)
				return
			}
		}
	}
}
