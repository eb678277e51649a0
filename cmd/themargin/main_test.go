package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	t.Run("development writes text", func(t *testing.T) {
		var buf bytes.Buffer
		newLogger(&buf, "development", "info").Info("hello", "k", "v")

		if !strings.Contains(buf.String(), "msg=hello") {
			t.Errorf("output: got %q, want text format", buf.String())
		}
	})

	t.Run("production writes JSON", func(t *testing.T) {
		var buf bytes.Buffer
		newLogger(&buf, "production", "info").Info("hello", "k", "v")

		var line map[string]any
		if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
			t.Fatalf("output is not JSON: %q", buf.String())
		}
		if line["msg"] != "hello" || line["k"] != "v" {
			t.Errorf("line: got %v", line)
		}
	})

	t.Run("level filters", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger(&buf, "production", "warn")
		logger.Info("dropped")

		if buf.Len() != 0 {
			t.Errorf("info logged at warn level: %q", buf.String())
		}
		if !logger.Enabled(context.Background(), slog.LevelWarn) {
			t.Error("warn should be enabled")
		}
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		logger := newLogger(&bytes.Buffer{}, "production", "verbose")
		if logger.Enabled(context.Background(), slog.LevelDebug) {
			t.Error("debug should be disabled")
		}
		if !logger.Enabled(context.Background(), slog.LevelInfo) {
			t.Error("info should be enabled")
		}
	})
}
