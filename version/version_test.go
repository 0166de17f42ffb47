package version

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestGetVersionInfo(t *testing.T) {
	old := Version
	Version = "1.2.3"
	defer func() { Version = old }()

	info := GetVersionInfo()
	if info.Version != "1.2.3" {
		t.Errorf("expected ldflags version to win, got %s", info.Version)
	}
	if info.GoVersion == "" {
		t.Errorf("expected go version")
	}
	if !strings.Contains(info.String(), "Version: 1.2.3") {
		t.Errorf("unexpected string %s", info.String())
	}

	s, err := info.JSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded Info
	if err := json.Unmarshal([]byte(s), &decoded); err != nil || decoded.Version != "1.2.3" {
		t.Errorf("unexpected json %s", s)
	}
}

func TestShortRevision(t *testing.T) {
	if got := shortRevision("0123456789abcdef"); got != "0123456" {
		t.Errorf("expected short revision, got %s", got)
	}
	if got := shortRevision("abc"); got != "abc" {
		t.Errorf("expected revision unchanged, got %s", got)
	}
}
