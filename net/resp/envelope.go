package resp

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"net/http"
)

// Options are encoder flags passed through to the sink unchanged.
type Options int

const (
	// OptPretty indents the encoded body
	OptPretty Options = 1 << iota
	// OptUnescapedHTML disables escaping of <, > and & in JSON strings
	OptUnescapedHTML
)

// Has reports whether all flags in o are set.
func (opts Options) Has(o Options) bool {
	return opts&o == o
}

// Envelope is the canonical success or failure body.
// A failure envelope always carries Errors, a success envelope never does.
type Envelope struct {
	XMLName xml.Name `json:"-" xml:"response"`
	Code    int      `json:"code" xml:"code"`
	Message string   `json:"message" xml:"message"`
	Data    any      `json:"data" xml:"data,omitempty"`
	Errors  any      `json:"errors,omitempty" xml:"errors,omitempty"`
}

// IsFailure reports whether the envelope is a failure envelope.
func (e *Envelope) IsFailure() bool {
	return e != nil && e.Errors != nil
}

// MarshalJSON keeps "errors" on failure envelopes even when it is empty.
// HTML escaping is left to the outer encoder.
func (e Envelope) MarshalJSON() ([]byte, error) {
	var v any
	if e.Errors == nil {
		v = struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
			Data    any    `json:"data"`
		}{e.Code, e.Message, e.Data}
	} else {
		v = struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
			Data    any    `json:"data"`
			Errors  any    `json:"errors"`
		}{e.Code, e.Message, nil, e.Errors}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Result is one built response: transport status, headers, envelope body and
// the domain value(s) the body was built from.
type Result struct {
	// Status is the transport status, Body.Code the business code
	Status  int
	Header  http.Header
	Body    *Envelope
	Options Options
	// Original holds the untransformed domain object(s) of resource payloads
	Original any
}

// SetHeader sets a header on the result before it is rendered.
func (r *Result) SetHeader(key, value string) *Result {
	if r.Header == nil {
		r.Header = make(http.Header)
	}
	r.Header.Set(key, value)
	return r
}

// newResult builds a result, copying headers so later mutation does not leak to the caller.
func newResult(status int, body *Envelope, headers http.Header, opts Options) *Result {
	h := make(http.Header, len(headers))
	for k, v := range headers {
		h[http.CanonicalHeaderKey(k)] = append([]string(nil), v...)
	}
	return &Result{
		Status:  status,
		Header:  h,
		Body:    body,
		Options: opts,
	}
}
