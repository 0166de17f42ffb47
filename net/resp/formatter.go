package resp

import (
	"context"
	"net/http"

	"github.com/ncobase/envelope/ctxutil"
	"github.com/ncobase/envelope/ecode"
	"github.com/ncobase/envelope/paging"
)

// Formatter shapes output data into envelopes, one method per output kind.
type Formatter interface {
	// Data formats plain data, or a failure when errors is non-nil
	Data(ctx context.Context, payload any, message string, code int, errors any) *Envelope
	JSONResource(ctx context.Context, r Transformable, message string, code int, headers http.Header, opts Options) *Envelope
	ResourceCollection(ctx context.Context, c *Collection, message string, code int, headers http.Header, opts Options) *Envelope
	Paginator(ctx context.Context, p paging.Paginator, message string, code int, headers http.Header, opts Options) *Envelope
	// StatusCode maps a business code to a transport status
	StatusCode(code int) int
}

// Page is the data of a paginated envelope.
type Page struct {
	Items any         `json:"data" xml:"items"`
	Meta  paging.Meta `json:"meta" xml:"meta"`
}

// DefaultFormatter resolves empty messages from the ecode registry in the
// request language and maps business codes with ecode.ToHTTPStatus.
type DefaultFormatter struct {
	// Language is used when the request carries none
	Language string
}

var _ Formatter = (*DefaultFormatter)(nil)

// Data implements Formatter
func (f *DefaultFormatter) Data(ctx context.Context, payload any, message string, code int, errors any) *Envelope {
	e := &Envelope{
		Code:    code,
		Message: f.message(ctx, message, code),
	}
	if errors != nil {
		e.Errors = errors
		return e
	}
	if payload == nil {
		payload = []any{}
	}
	e.Data = payload
	return e
}

// JSONResource implements Formatter
func (f *DefaultFormatter) JSONResource(ctx context.Context, r Transformable, message string, code int, _ http.Header, _ Options) *Envelope {
	return f.Data(ctx, r.Resolve(), message, code, nil)
}

// ResourceCollection implements Formatter
func (f *DefaultFormatter) ResourceCollection(ctx context.Context, c *Collection, message string, code int, _ http.Header, _ Options) *Envelope {
	items := c.Resolve()
	if c.Paginator == nil {
		return f.Data(ctx, items, message, code, nil)
	}
	return f.Data(ctx, Page{Items: items, Meta: c.Paginator.Meta()}, message, code, nil)
}

// Paginator implements Formatter
func (f *DefaultFormatter) Paginator(ctx context.Context, p paging.Paginator, message string, code int, _ http.Header, _ Options) *Envelope {
	return f.Data(ctx, Page{Items: p.Values(), Meta: p.Meta()}, message, code, nil)
}

// StatusCode implements Formatter
func (f *DefaultFormatter) StatusCode(code int) int {
	return ecode.ToHTTPStatus(code)
}

func (f *DefaultFormatter) message(ctx context.Context, message string, code int) string {
	if message != "" {
		return message
	}
	lang := ctxutil.GetLanguage(ctx)
	if lang == "" {
		lang = f.Language
	}
	return ecode.TextIn(lang, code)
}
