package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/envelope/concurrency/worker"
	"github.com/ncobase/envelope/config"
	"github.com/ncobase/envelope/logging/logger"
	"github.com/ncobase/envelope/net/resp"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func newTestApp(t *testing.T, rc *config.Response) (*App, *gin.Engine) {
	t.Helper()
	l := logger.NewLogger()
	l.SetOutput(io.Discard)

	pool, cleanup, err := worker.ProvidePool(&config.Worker{MaxWorkers: 1, QueueSize: 4}, l)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}
	t.Cleanup(cleanup)

	cfg := &config.Config{AppName: "envelope", RunMode: gin.TestMode, Response: rc}
	h := NewHandler(resp.New(resp.WithConfig(rc), resp.WithLogger(l)), NewStore(), NewJobs(pool))
	app := NewApp(cfg, l, h)
	return app, app.Engine()
}

func do(r http.Handler, method, path, body string, header ...string) (*httptest.ResponseRecorder, envelope) {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func createWidget(t *testing.T, r http.Handler, body string) widgetView {
	t.Helper()
	w, env := do(r, http.MethodPost, "/widgets", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var v widgetView
	if err := json.Unmarshal(env.Data, &v); err != nil {
		t.Fatalf("invalid widget data: %v", err)
	}
	return v
}

func TestCreateAndGet(t *testing.T) {
	_, r := newTestApp(t, &config.Response{Format: "json"})

	w, env := do(r, http.MethodPost, "/widgets", `{"name":"bolt","color":"red","quantity":2}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	var created widgetView
	_ = json.Unmarshal(env.Data, &created)
	if loc := w.Header().Get("Location"); loc != "/widgets/"+created.ID {
		t.Errorf("unexpected Location %q", loc)
	}
	if w.Header().Get("X-Trace-ID") == "" {
		t.Errorf("expected trace id header")
	}
	if env.Errors != nil {
		t.Errorf("expected no errors on success")
	}

	w, env = do(r, http.MethodGet, "/widgets/"+created.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("Last-Modified") == "" {
		t.Errorf("expected resource hook header")
	}
	var got widgetView
	_ = json.Unmarshal(env.Data, &got)
	if got != created {
		t.Errorf("expected %+v, got %+v", created, got)
	}
}

func TestCreateInvalid(t *testing.T) {
	_, r := newTestApp(t, &config.Response{Format: "json"})

	w, env := do(r, http.MethodPost, "/widgets", `{"name":"b","color":"pink"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	var errs map[string]string
	if err := json.Unmarshal(env.Errors, &errs); err != nil {
		t.Fatalf("expected field errors, got %s", env.Errors)
	}
	if errs["name"] == "" || errs["color"] == "" {
		t.Errorf("unexpected field errors %v", errs)
	}
	if string(env.Data) != "null" {
		t.Errorf("expected null data, got %s", env.Data)
	}

	w, _ = do(r, http.MethodPost, "/widgets", `{"name":`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed json, got %d", w.Code)
	}
}

func TestNotFoundAndErrorCodeOverride(t *testing.T) {
	_, r := newTestApp(t, &config.Response{Format: "json"})
	w, env := do(r, http.MethodGet, "/widgets/missing", "")
	if w.Code != http.StatusNotFound || env.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d %d", w.Code, env.Code)
	}
	if string(env.Errors) != "{}" {
		t.Errorf("expected empty errors, got %s", env.Errors)
	}

	_, r = newTestApp(t, &config.Response{Format: "json", ErrorCode: http.StatusOK})
	w, env = do(r, http.MethodGet, "/widgets/missing", "")
	if w.Code != http.StatusOK || env.Code != http.StatusNotFound {
		t.Errorf("expected transport 200 with business 404, got %d %d", w.Code, env.Code)
	}

	w, env = do(r, http.MethodGet, "/nowhere", "")
	if env.Code != http.StatusNotFound {
		t.Errorf("expected 404 envelope for unknown route, got %d", env.Code)
	}

	_, r = newTestApp(t, &config.Response{Format: "json"})
	w, env = do(r, http.MethodPatch, "/widgets", "")
	if w.Code != http.StatusMethodNotAllowed || env.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d %d", w.Code, env.Code)
	}
}

func TestListPages(t *testing.T) {
	_, r := newTestApp(t, &config.Response{Format: "json"})
	for i := 0; i < 3; i++ {
		createWidget(t, r, `{"name":"bolt"}`)
	}

	w, env := do(r, http.MethodGet, "/widgets?page=2&per_page=2", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("X-Total-Count") != "3" {
		t.Errorf("expected total header, got %q", w.Header().Get("X-Total-Count"))
	}

	var page struct {
		Data []widgetView `json:"data"`
		Meta struct {
			CurrentPage int `json:"current_page"`
			LastPage    int `json:"last_page"`
			Total       int `json:"total"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatalf("invalid page: %v", err)
	}
	if len(page.Data) != 1 || page.Meta.CurrentPage != 2 || page.Meta.LastPage != 2 || page.Meta.Total != 3 {
		t.Errorf("unexpected page %+v", page)
	}

	w, _ = do(r, http.MethodGet, "/widgets?page=abc", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid page, got %d", w.Code)
	}
}

func TestFeed(t *testing.T) {
	_, r := newTestApp(t, &config.Response{Format: "json"})
	for i := 0; i < 3; i++ {
		createWidget(t, r, `{"name":"bolt"}`)
	}

	_, env := do(r, http.MethodGet, "/widgets/feed?limit=2", "")
	var page struct {
		Data []Widget `json:"data"`
		Meta struct {
			Next    string `json:"next"`
			HasNext bool   `json:"has_next"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatalf("invalid page: %v", err)
	}
	if len(page.Data) != 2 || !page.Meta.HasNext || page.Meta.Next == "" {
		t.Errorf("unexpected feed page %+v", page)
	}

	w, _ := do(r, http.MethodGet, "/widgets/feed?cursor=%25%25", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid cursor, got %d", w.Code)
	}
}

func TestUpdateLockAndDelete(t *testing.T) {
	_, r := newTestApp(t, &config.Response{Format: "json"})
	v := createWidget(t, r, `{"name":"bolt"}`)

	w, env := do(r, http.MethodPut, "/widgets/"+v.ID, `{"name":"nut","quantity":4}`)
	if w.Code != http.StatusOK || env.Code != codeWidgetSaved || env.Message != "Widget saved" {
		t.Errorf("unexpected update %d %+v", w.Code, env)
	}

	w, env = do(r, http.MethodPost, "/widgets/"+v.ID+"/lock", "", "Accept-Language", "zh-CN")
	if w.Code != http.StatusOK || env.Message != "组件已保存" {
		t.Errorf("unexpected lock %d %+v", w.Code, env)
	}

	w, env = do(r, http.MethodPost, "/widgets/"+v.ID+"/lock", "")
	if w.Code != http.StatusConflict || env.Code != codeWidgetLocked || env.Message != "Widget is locked" {
		t.Errorf("unexpected second lock %d %+v", w.Code, env)
	}
	if !bytes.Contains(env.Errors, []byte(v.ID)) {
		t.Errorf("expected errors detail, got %s", env.Errors)
	}

	w, _ = do(r, http.MethodPut, "/widgets/"+v.ID, `{"name":"nut"}`)
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 updating a locked widget, got %d", w.Code)
	}

	w, _ = do(r, http.MethodDelete, "/widgets/"+v.ID, "")
	if w.Code != http.StatusNoContent || w.Body.Len() != 0 {
		t.Errorf("expected empty 204, got %d %q", w.Code, w.Body.String())
	}
	w, _ = do(r, http.MethodDelete, "/widgets/"+v.ID, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestStatsExportHealth(t *testing.T) {
	_, r := newTestApp(t, &config.Response{Format: "json"})
	createWidget(t, r, `{"name":"bolt","color":"blue","quantity":5}`)

	_, env := do(r, http.MethodGet, "/widgets/stats", "")
	var stats map[string]any
	_ = json.Unmarshal(env.Data, &stats)
	if stats["total"] != float64(1) || stats["quantity"] != float64(5) {
		t.Errorf("unexpected stats %v", stats)
	}

	w, env := do(r, http.MethodPost, "/widgets/export", "")
	location := w.Header().Get("Location")
	if w.Code != http.StatusAccepted || !strings.HasPrefix(location, "/jobs/") {
		t.Fatalf("unexpected export %d %q", w.Code, location)
	}

	var job Job
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		_, env = do(r, http.MethodGet, location, "")
		_ = json.Unmarshal(env.Data, &job)
		if job.Status == JobSucceeded || job.Status == JobFailed {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if job.Status != JobSucceeded || job.Kind != "export" {
		t.Errorf("unexpected job %+v", job)
	}
	if result, ok := job.Result.(map[string]any); !ok || result["total"] != float64(1) {
		t.Errorf("unexpected job result %#v", job.Result)
	}

	w, _ = do(r, http.MethodGet, "/jobs/missing", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown job, got %d", w.Code)
	}

	w, env = do(r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK || env.Code != codeServing || env.Message != "Service is up" {
		t.Errorf("unexpected health %d %+v", w.Code, env)
	}
	if string(env.Data) != "[]" {
		t.Errorf("expected empty data, got %s", env.Data)
	}

	w, env = do(r, http.MethodGet, "/version", "")
	if w.Code != http.StatusOK || !bytes.Contains(env.Data, []byte("goVersion")) {
		t.Errorf("unexpected version %d %s", w.Code, env.Data)
	}
}

func TestReload(t *testing.T) {
	app, r := newTestApp(t, &config.Response{Format: "json"})

	app.Reload(&config.Config{Response: &config.Response{Format: "json", ErrorCode: http.StatusTeapot}})

	w, env := do(r, http.MethodGet, "/widgets/missing", "")
	if w.Code != http.StatusTeapot || env.Code != http.StatusNotFound {
		t.Errorf("expected reloaded override, got %d %d", w.Code, env.Code)
	}
}

func TestRecovery(t *testing.T) {
	_, r := newTestApp(t, &config.Response{Format: "json"})
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w, env := do(r, http.MethodGet, "/panic", "")
	if w.Code != http.StatusInternalServerError || env.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 envelope, got %d %+v", w.Code, env)
	}
}

func TestTraceIDPropagation(t *testing.T) {
	_, r := newTestApp(t, &config.Response{Format: "json"})

	w, _ := do(r, http.MethodGet, "/health", "", "X-Trace-ID", "trace-123")
	if got := w.Header().Get("X-Trace-ID"); got != "trace-123" {
		t.Errorf("expected incoming trace id to be kept, got %q", got)
	}
}
