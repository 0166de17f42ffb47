package resp

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"
)

// Sink renders a built result to a transport.
type Sink interface {
	Write(res *Result) error
}

// HTTPSink writes results to a http.ResponseWriter.
type HTTPSink struct {
	w      http.ResponseWriter
	format string
}

// NewHTTPSink creates a sink encoding bodies as json, xml or text.
func NewHTTPSink(w http.ResponseWriter, format string) *HTTPSink {
	return &HTTPSink{w: w, format: format}
}

// Write implements Sink
func (s *HTTPSink) Write(res *Result) error {
	return writeResponse(s.w, s.format, res)
}

// Write renders the terminal failure in err, or res when err is nil.
// Errors that are not terminal failures are rendered as a bare 500 envelope.
func (d *Dispatcher) Write(w http.ResponseWriter, res *Result, err error) error {
	return d.render(NewHTTPSink(w, d.cfg.Format), res, err)
}

func (d *Dispatcher) render(sink Sink, res *Result, err error) error {
	if err != nil {
		if tres, ok := AsTerminal(err); ok {
			res = tres
		} else {
			res = d.unhandled(err)
		}
	}
	if res == nil {
		return nil
	}
	if d.cfg.Pretty && !res.Options.Has(OptPretty) {
		cp := *res
		cp.Options |= OptPretty
		res = &cp
	}
	return sink.Write(res)
}

// unhandled builds the result of a plain error escaping a handler.
func (d *Dispatcher) unhandled(err error) *Result {
	res, _ := d.Fail(context.Background(), "", http.StatusInternalServerError, nil, nil, 0)
	d.log.WithField("error", err.Error()).Error("unhandled handler error")
	return res
}

// encode encodes the body in the given format.
func encode(format string, body *Envelope, opts Options) (string, []byte, error) {
	var buf bytes.Buffer
	switch format {
	case "xml":
		enc := xml.NewEncoder(&buf)
		if opts.Has(OptPretty) {
			enc.Indent("", "  ")
		}
		if err := enc.Encode(body); err != nil {
			return "", nil, fmt.Errorf("failed to encode XML response: %w", err)
		}
		return "application/xml; charset=utf-8", buf.Bytes(), nil
	case "text":
		if body == nil {
			return "text/plain; charset=utf-8", nil, nil
		}
		if body.IsFailure() || body.Data == nil {
			return "text/plain; charset=utf-8", []byte(body.Message), nil
		}
		switch v := body.Data.(type) {
		case string:
			return "text/plain; charset=utf-8", []byte(v), nil
		case []byte:
			return "text/plain; charset=utf-8", v, nil
		}
		// Fallback to JSON representation for complex types
		fallthrough
	default:
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(!opts.Has(OptUnescapedHTML))
		if opts.Has(OptPretty) {
			enc.SetIndent("", "  ")
		}
		if err := enc.Encode(body); err != nil {
			return "", nil, fmt.Errorf("failed to encode JSON response: %w", err)
		}
		return "application/json; charset=utf-8", buf.Bytes(), nil
	}
}

// writeResponse writes headers, status and the encoded body.
func writeResponse(w http.ResponseWriter, format string, res *Result) error {
	for k, v := range res.Header {
		w.Header()[k] = v
	}

	if !bodyAllowed(res.Status) {
		w.WriteHeader(res.Status)
		return nil
	}

	contentType, body, err := encode(format, res.Body, res.Options)
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(res.Status)
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}

// bodyAllowed reports whether a status may carry a body.
func bodyAllowed(status int) bool {
	switch {
	case status >= 100 && status <= 199:
		return false
	case status == http.StatusNoContent, status == http.StatusNotModified:
		return false
	}
	return true
}
