package ctxutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestEnsureTraceID(t *testing.T) {
	ctx, traceID := EnsureTraceID(context.Background())
	if traceID == "" {
		t.Fatalf("expected generated trace id")
	}
	if got := GetTraceID(ctx); got != traceID {
		t.Errorf("expected %q, got %q", traceID, got)
	}

	_, again := EnsureTraceID(ctx)
	if again != traceID {
		t.Errorf("expected existing trace id to be kept, got %q", again)
	}
}

func TestGetTraceIDFromSpan(t *testing.T) {
	tid, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	sid, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: tid, SpanID: sid})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	if got := GetTraceID(ctx); got != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Errorf("expected span trace id, got %q", got)
	}
}

func TestGinContext(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/widgets", nil)
	c.Request.Header.Set("Accept-Language", "zh-CN")
	c.Request.Header.Set("User-Agent", "envelope-test")

	ctx := WithGinContext(context.Background(), c)

	if got, ok := GetGinContext(ctx); !ok || got != c {
		t.Fatalf("expected embedded gin context")
	}
	if req := GetHTTPRequest(ctx); req != c.Request {
		t.Errorf("expected gin request")
	}
	if got := GetLanguage(ctx); got != "zh-CN" {
		t.Errorf("expected Accept-Language fallback, got %q", got)
	}
	if got := GetUserAgent(ctx); got != "envelope-test" {
		t.Errorf("unexpected user agent %q", got)
	}

	ctx = SetLanguage(ctx, "en")
	if got := GetLanguage(ctx); got != "en" {
		t.Errorf("expected explicit language, got %q", got)
	}
	if v, _ := c.Get(languageKey); v != "en" {
		t.Errorf("expected value mirrored into gin context, got %v", v)
	}

	// *gin.Context passed directly
	if got, ok := GetGinContext(c); !ok || got != c {
		t.Errorf("expected *gin.Context to be detected")
	}
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.8:5555"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	ctx := SetHTTPRequest(context.Background(), req)
	if got := GetClientIP(ctx); got != "203.0.113.7" {
		t.Errorf("expected forwarded ip, got %q", got)
	}

	req.Header.Del("X-Forwarded-For")
	if got := GetClientIP(ctx); got != "10.0.0.8" {
		t.Errorf("expected remote addr ip, got %q", got)
	}

	if got := GetClientIP(context.Background()); got != "unknown" {
		t.Errorf("expected unknown, got %q", got)
	}
}
