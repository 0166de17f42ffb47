package resp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ncobase/envelope/config"
)

func TestWriteSuccess(t *testing.T) {
	d, _ := newTestDispatcher()
	w := httptest.NewRecorder()

	res := d.Created(context.Background(), map[string]any{"id": 1}, "", "/widgets/1")
	if err := d.Write(w, res, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	if w.Header().Get("Location") != "/widgets/1" {
		t.Errorf("expected Location header, got %q", w.Header().Get("Location"))
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("unexpected content type %q", ct)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["code"] != float64(201) || body["message"] != "Created" {
		t.Errorf("unexpected body %v", body)
	}
	if _, ok := body["errors"]; ok {
		t.Errorf("expected no errors key on success")
	}
}

func TestWriteTerminalFailure(t *testing.T) {
	d, _ := newTestDispatcher(WithConfig(&config.Response{ErrorCode: http.StatusUnprocessableEntity, Format: "json"}))
	w := httptest.NewRecorder()

	_, err := d.Fail(context.Background(), "bad input", http.StatusBadRequest, nil, nil, 0)
	if err := d.Write(w, nil, err); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
	want := `{"code":400,"message":"bad input","data":null,"errors":{}}`
	if got := strings.TrimSpace(w.Body.String()); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestWriteUnhandledError(t *testing.T) {
	d, logs := newTestDispatcher()
	w := httptest.NewRecorder()

	if err := d.Write(w, nil, errors.New("db down")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "db down") {
		t.Errorf("expected error detail not to leak into the body")
	}
	if !strings.Contains(logs.String(), "db down") {
		t.Errorf("expected error to be logged")
	}
}

func TestWriteNoContent(t *testing.T) {
	d, _ := newTestDispatcher()
	w := httptest.NewRecorder()

	if err := d.Write(w, d.NoContent(context.Background(), ""), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", w.Body.String())
	}
}

func TestWriteFormats(t *testing.T) {
	cases := []struct {
		name        string
		cfg         config.Response
		data        any
		contentType string
		contains    string
	}{
		{"xml", config.Response{Format: "xml"}, []string{"a"}, "application/xml; charset=utf-8", "<code>200</code>"},
		{"text", config.Response{Format: "text"}, []byte("plain"), "text/plain; charset=utf-8", "plain"},
		{"text falls back to json", config.Response{Format: "text", Pretty: true}, map[string]int{"a": 1}, "application/json; charset=utf-8", `"a": 1`},
		{"pretty", config.Response{Format: "json", Pretty: true}, map[string]int{"a": 1}, "application/json; charset=utf-8", "\n  \"code\": 200"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, _ := newTestDispatcher(WithConfig(&tc.cfg))
			w := httptest.NewRecorder()

			res := d.Success(context.Background(), tc.data, "", http.StatusOK, nil, 0)
			if err := d.Write(w, res, nil); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ct := w.Header().Get("Content-Type"); ct != tc.contentType {
				t.Errorf("expected content type %q, got %q", tc.contentType, ct)
			}
			if !strings.Contains(w.Body.String(), tc.contains) {
				t.Errorf("expected body to contain %q, got %s", tc.contains, w.Body.String())
			}
		})
	}
}

func TestWritePrettyKeepsResult(t *testing.T) {
	d, _ := newTestDispatcher(WithConfig(&config.Response{Format: "json", Pretty: true}))
	res := d.Success(context.Background(), map[string]int{"a": 1}, "", http.StatusOK, nil, 0)

	w := httptest.NewRecorder()
	if err := d.Write(w, res, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(w.Body.String(), "\n  \"code\": 200") {
		t.Errorf("expected indented body, got %s", w.Body.String())
	}
	if res.Options.Has(OptPretty) {
		t.Errorf("expected rendering to leave the result options unchanged")
	}
}

func TestWriteUnescapedHTML(t *testing.T) {
	d, _ := newTestDispatcher()

	w := httptest.NewRecorder()
	res := d.Success(context.Background(), map[string]string{"html": "<b>"}, "", http.StatusOK, nil, OptUnescapedHTML)
	if err := d.Write(w, res, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(w.Body.String(), "<b>") {
		t.Errorf("expected unescaped html, got %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	res = d.Success(context.Background(), map[string]string{"html": "<b>"}, "", http.StatusOK, nil, 0)
	_ = d.Write(w, res, nil)
	if strings.Contains(w.Body.String(), "<b>") {
		t.Errorf("expected escaped html, got %s", w.Body.String())
	}
}

func TestBodyAllowed(t *testing.T) {
	for status, want := range map[int]bool{
		http.StatusContinue:    false,
		http.StatusOK:          true,
		http.StatusNoContent:   false,
		http.StatusNotModified: false,
		http.StatusBadRequest:  true,
	} {
		if got := bodyAllowed(status); got != want {
			t.Errorf("bodyAllowed(%d) = %v, want %v", status, got, want)
		}
	}
}
