package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSlogLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewSlogLoggerWithWriter(&buf, slog.LevelInfo).With("supplier_id", "sup-1")

	log.Debugf("hidden %d", 1)
	log.Errorf(errors.New("broker gone"), "event %s dropped", "e-1")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("debug must be filtered at info level, got %d lines", len(lines))
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec["msg"] != "event e-1 dropped" || rec["error"] != "broker gone" || rec["supplier_id"] != "sup-1" || rec["level"] != "ERROR" {
		t.Fatalf("unexpected record %v", rec)
	}
}
