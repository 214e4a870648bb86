package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

func TestConsoleHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("processing file", String("path", "/media/a.mkv"), Int("tracks", 2))

	out := buf.String()
	if !strings.Contains(out, "INFO") {
		t.Errorf("missing level label: %q", out)
	}
	if !strings.Contains(out, "processing file") {
		t.Errorf("missing message: %q", out)
	}
	if !strings.Contains(out, "path=/media/a.mkv") || !strings.Contains(out, "tracks=2") {
		t.Errorf("missing attrs: %q", out)
	}
}

func TestConsoleHandlerComponentPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	WithComponent(logger, "scheduler").Info("run complete")

	out := buf.String()
	if !strings.Contains(out, "scheduler: run complete") {
		t.Errorf("component not rendered as prefix: %q", out)
	}
	if strings.Contains(out, "component=") {
		t.Errorf("component leaked as attr: %q", out)
	}
}

func TestConsoleHandlerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("suppressed")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Errorf("info line not suppressed at warn level: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("warn line missing: %q", out)
	}
}

func TestJSONHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Debug("probe finished", String("file", "b.mkv"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if record["level"] != "debug" {
		t.Errorf("level = %v, want debug", record["level"])
	}
	if record["msg"] != "probe finished" {
		t.Errorf("msg = %v", record["msg"])
	}
	if record["file"] != "b.mkv" {
		t.Errorf("file = %v", record["file"])
	}
	if _, ok := record["ts"]; !ok {
		t.Error("missing ts key")
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestLogFileTee(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "sublift.log")
	logger, err := New(Options{Format: "console", Writer: &buf, LogFile: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("teed line")
	if !strings.Contains(buf.String(), "teed line") {
		t.Errorf("primary writer missed line: %q", buf.String())
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNop()
	if logger.Enabled(t.Context(), slog.LevelError) {
		t.Fatal("nop logger should report disabled at all levels")
	}
}
