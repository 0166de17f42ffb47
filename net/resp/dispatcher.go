package resp

import (
	"context"
	"net/http"

	"github.com/ncobase/envelope/config"
	"github.com/ncobase/envelope/consts"
	"github.com/ncobase/envelope/ctxutil"
	"github.com/ncobase/envelope/logging/logger"
	"github.com/ncobase/envelope/paging"
	"github.com/ncobase/envelope/validator"
	"github.com/sirupsen/logrus"
)

// Dispatcher picks the formatting strategy for output data and builds
// success and failure results. It holds no per-request state and is safe
// for concurrent use.
type Dispatcher struct {
	formatter Formatter
	cfg       config.Response
	log       *logger.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithFormatter replaces the default formatter.
func WithFormatter(f Formatter) Option {
	return func(d *Dispatcher) {
		if f != nil {
			d.formatter = f
		}
	}
}

// WithConfig sets the response configuration.
func WithConfig(cfg *config.Response) Option {
	return func(d *Dispatcher) {
		if cfg != nil {
			d.cfg = *cfg
		}
	}
}

// WithLogger sets the logger failures are reported to.
func WithLogger(l *logger.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.log = l
		}
	}
}

// New creates a dispatcher.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{}
	for _, opt := range opts {
		opt(d)
	}
	if d.cfg.Format == "" {
		d.cfg.Format = "json"
	}
	if d.cfg.Language == "" {
		d.cfg.Language = "en"
	}
	if d.formatter == nil {
		d.formatter = &DefaultFormatter{Language: d.cfg.Language}
	}
	if d.log == nil {
		d.log = logger.StdLogger()
	}
	return d
}

// Success builds a success result. Data is dispatched in this order:
// *Collection, Transformable, paging.Paginator, Arrayable, plain data.
// A zero code means http.StatusOK.
func (d *Dispatcher) Success(ctx context.Context, data any, message string, code int, headers http.Header, opts Options) *Result {
	if code == 0 {
		code = http.StatusOK
	}
	status := d.formatter.StatusCode(code)
	if isNilPointer(data) {
		data = nil
	}

	switch classify(data) {
	case kindCollection:
		c := data.(*Collection)
		res := newResult(status, d.formatter.ResourceCollection(ctx, c, message, code, headers, opts), headers, opts)
		res.Original = c.Unwrap()
		if c.onResult != nil {
			c.onResult(ctxutil.GetHTTPRequest(ctx), res)
		}
		return res
	case kindResource:
		r := data.(Transformable)
		res := newResult(status, d.formatter.JSONResource(ctx, r, message, code, headers, opts), headers, opts)
		res.Original = r.Unwrap()
		if h := r.hook(); h != nil {
			h(ctxutil.GetHTTPRequest(ctx), res)
		}
		return res
	case kindPaginator:
		return newResult(status, d.formatter.Paginator(ctx, data.(Paginator), message, code, headers, opts), headers, opts)
	case kindArrayable:
		data = data.(Arrayable).ToArray()
	}

	return newResult(status, d.formatter.Data(ctx, wrapScalar(data), message, code, nil), headers, opts)
}

// Fail builds a failure result. A zero code means http.StatusInternalServerError.
//
// Without errors detail the failure is terminal: the result is also returned
// inside a *TerminalFailure error for the caller to propagate. With errors
// detail, even an empty one, the error is nil and the caller decides.
//
// The transport status is the configured response.error_code when set,
// otherwise the formatter's status for code. A status below 400 becomes 500.
func (d *Dispatcher) Fail(ctx context.Context, message string, code int, errs any, headers http.Header, opts Options) (*Result, error) {
	if code == 0 {
		code = http.StatusInternalServerError
	}

	detail := errs
	if detail == nil {
		detail = map[string]any{}
	}

	status := d.cfg.ErrorCode
	if status == 0 {
		status = d.formatter.StatusCode(code)
	}
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}

	res := newResult(status, d.formatter.Data(ctx, nil, message, code, detail), headers, opts)
	d.logFailure(ctx, res, errs)

	if errs == nil {
		return res, &TerminalFailure{Result: res}
	}
	return res, nil
}

func (d *Dispatcher) logFailure(ctx context.Context, res *Result, errs any) {
	fields := logrus.Fields{
		"code":   res.Body.Code,
		"status": res.Status,
	}
	if errs != nil {
		fields["errors"] = errs
	}
	entry := d.log.WithContextFields(ctx, fields)
	if res.Status >= http.StatusInternalServerError {
		entry.Error(res.Body.Message)
		return
	}
	entry.Warn(res.Body.Message)
}

// Created builds a 201 result with a Location header when location is not empty.
func (d *Dispatcher) Created(ctx context.Context, data any, message, location string) *Result {
	return withLocation(d.Success(ctx, data, message, http.StatusCreated, nil, 0), location)
}

// Accepted builds a 202 result with a Location header when location is not empty.
func (d *Dispatcher) Accepted(ctx context.Context, data any, message, location string) *Result {
	return withLocation(d.Success(ctx, data, message, http.StatusAccepted, nil, 0), location)
}

func withLocation(res *Result, location string) *Result {
	if location != "" {
		res.SetHeader(consts.LocationKey, location)
	}
	return res
}

// NoContent builds a 204 result with empty data.
func (d *Dispatcher) NoContent(ctx context.Context, message string) *Result {
	return d.Success(ctx, nil, message, http.StatusNoContent, nil, 0)
}

// OK builds a success result with empty data.
func (d *Dispatcher) OK(ctx context.Context, message string, code int, headers http.Header, opts Options) *Result {
	return d.Success(ctx, nil, message, code, headers, opts)
}

// Localize builds a success result whose message is the registered
// message of code in the request language.
func (d *Dispatcher) Localize(ctx context.Context, code int, headers http.Header, opts Options) *Result {
	return d.OK(ctx, "", code, headers, opts)
}

// Invalid validates v and returns a non-terminal 422 failure carrying the
// field errors, or nil when v is valid.
func (d *Dispatcher) Invalid(ctx context.Context, message string, v any) *Result {
	fieldErrors := validator.ValidateStruct(v, ctxutil.GetLanguage(ctx))
	if len(fieldErrors) == 0 {
		return nil
	}
	res, _ := d.Fail(ctx, message, http.StatusUnprocessableEntity, fieldErrors, nil, 0)
	return res
}

// Paginator is the page metadata capability of paginated output.
type Paginator = paging.Paginator
