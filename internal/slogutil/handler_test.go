package slogutil

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLineHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo)

	logger.Info("Order placed", "restaurant", "Frodo's Flapjacks", "items", 3)

	output := buf.String()
	for _, want := range []string{"[info]", "Order placed", " | ", `restaurant="Frodo's Flapjacks"`, "items=3"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
	if !strings.HasSuffix(output, "\n") {
		t.Error("each record should end with a newline")
	}
}

func TestLineHandler_NoAttrsNoSeparator(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, slog.LevelInfo).Info("plain")

	if strings.Contains(buf.String(), "|") {
		t.Errorf("unexpected separator: %s", buf.String())
	}
}

func TestLineHandler_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelWarn)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	if strings.Contains(output, "debug message") || strings.Contains(output, "info message") {
		t.Errorf("records below warn leaked: %s", output)
	}
	if !strings.Contains(output, "[warn] warn message") || !strings.Contains(output, "[error] error message") {
		t.Errorf("missing warn/error records: %s", output)
	}
}

func TestLineHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo).
		With("component", "api").
		WithGroup("http")

	logger.Info("request", "status", 200)

	output := buf.String()
	if !strings.Contains(output, "component=api") {
		t.Errorf("expected component attr, got: %s", output)
	}
	if !strings.Contains(output, "http.status=200") {
		t.Errorf("expected grouped key, got: %s", output)
	}
}

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := LevelFromString(tt.in); got != tt.want {
			t.Errorf("LevelFromString(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetup_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := Setup(&buf, Options{Level: "info", Format: "json"})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer closer.Close()

	logger.Info("hello", "k", "v")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if entry["msg"] != "hello" || entry["k"] != "v" {
		t.Errorf("unexpected entry: %#v", entry)
	}
}

func TestSetup_TeesToFile(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "foodorder.log")

	logger, closer, err := Setup(&console, Options{Level: "debug", File: path, MaxSize: "1MB", MaxBackups: 1})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	logger.Debug("to both")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if !strings.Contains(console.String(), "to both") {
		t.Errorf("console missing record: %s", console.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "to both") {
		t.Errorf("log file missing record: %s", data)
	}
}

func TestNewDiscardLogger(t *testing.T) {
	logger := NewDiscardLogger()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("discard logger should not be enabled for any level")
	}
}
