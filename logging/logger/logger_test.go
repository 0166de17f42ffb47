package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ncobase/envelope/config"
	"github.com/ncobase/envelope/ctxutil"
	"github.com/sirupsen/logrus"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to decode log entry %q: %v", buf.String(), err)
	}
	return entry
}

func TestEntryFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger()
	l.SetOutput(&buf)
	l.SetVersion("v1.2.3")

	ctx := ctxutil.SetTraceID(context.Background(), "trace-1")
	l.Warn(ctx, "request failed")

	entry := decodeEntry(t, &buf)
	if entry["trace_id"] != "trace-1" {
		t.Errorf("expected trace_id field, got %v", entry["trace_id"])
	}
	if entry[VersionKey] != "v1.2.3" {
		t.Errorf("expected version field, got %v", entry[VersionKey])
	}
	if entry["level"] != "warning" || entry["msg"] != "request failed" {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestDesensitizer(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger()
	l.SetOutput(&buf)
	l.AddHook(NewDesensitizer(nil))

	l.WithContextFields(context.Background(), logrus.Fields{
		"password": "hunter2",
		"errors": map[string]string{
			"email":        "invalid",
			"access_token": "abc",
		},
		"items": []any{map[string]any{"api_key": "k"}},
	}).Error("validation failed")

	entry := decodeEntry(t, &buf)
	if entry["password"] != mask {
		t.Errorf("expected password to be masked, got %v", entry["password"])
	}

	errs, ok := entry["errors"].(map[string]any)
	if !ok {
		t.Fatalf("expected errors map, got %T", entry["errors"])
	}
	if errs["email"] != "invalid" {
		t.Errorf("expected email to be kept, got %v", errs["email"])
	}
	if errs["access_token"] != mask {
		t.Errorf("expected nested token to be masked, got %v", errs["access_token"])
	}

	items := entry["items"].([]any)
	if items[0].(map[string]any)["api_key"] != mask {
		t.Errorf("expected api_key in slice to be masked")
	}
}

func TestDesensitizerCustomFields(t *testing.T) {
	d := NewDesensitizer([]string{" SSN ", ""})

	got := d.DesensitizeFields(logrus.Fields{"user_ssn": "123", "password": "x"})
	if got["user_ssn"] != mask {
		t.Errorf("expected custom field to be masked")
	}
	if got["password"] != "x" {
		t.Errorf("expected defaults to be replaced by custom fields")
	}
}

func TestInitFileOutput(t *testing.T) {
	dir := t.TempDir()
	l := NewLogger()

	cleanup, err := l.Init(&config.Logger{
		Level:      int(logrus.InfoLevel),
		Format:     "json",
		Output:     "file",
		OutputFile: filepath.Join(dir, "app.log"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	l.Info(context.Background(), "hello")
	cleanup()

	files, _ := filepath.Glob(filepath.Join(dir, "app.*.log"))
	if len(files) != 1 {
		t.Fatalf("expected one rotated log file, got %v", files)
	}
	data, _ := os.ReadFile(files[0])
	if !strings.Contains(string(data), "hello") {
		t.Errorf("expected log line in file, got %q", data)
	}
}

func TestInitNil(t *testing.T) {
	cleanup, err := NewLogger().Init(nil)
	if err != nil || cleanup == nil {
		t.Errorf("expected noop init for nil config")
	}
}

func TestSentryHook(t *testing.T) {
	if _, err := NewSentryHook("not a dsn", "test", ""); err == nil {
		t.Errorf("expected error for invalid dsn")
	}

	hook, err := NewSentryHook("https://public@sentry.example.com/1", "test", "v1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, level := range hook.Levels() {
		if level > logrus.ErrorLevel {
			t.Errorf("unexpected level %v reported to sentry", level)
		}
	}
	if sentryLevel(logrus.WarnLevel) != "warning" {
		t.Errorf("unexpected sentry level mapping")
	}
}
