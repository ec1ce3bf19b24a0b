package logging_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"audiocat/internal/config"
	"audiocat/internal/logging"
)

func TestConsoleLoggerFormatsComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger = logging.NewComponentLogger(logger, "scan")
	logger.Info("file processed", logging.String(logging.FieldFilePath, "/a/b c.mp3"), logging.Int("fields", 3))

	line := buf.String()
	if !strings.Contains(line, " INFO scan: file processed ") {
		t.Fatalf("unexpected console line %q", line)
	}
	if !strings.Contains(line, `file_path="/a/b c.mp3"`) {
		t.Fatalf("expected quoted path, got %q", line)
	}
	if !strings.Contains(line, "fields=3") {
		t.Fatalf("expected fields=3, got %q", line)
	}
	if strings.Contains(line, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", line)
	}
}

func TestConsoleLoggerFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "warn", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestConsoleGroupsFlatten(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.WithGroup("summary").Info("done", logging.Int("processed", 2))
	if !strings.Contains(buf.String(), "summary.processed=2") {
		t.Fatalf("expected dotted group key, got %q", buf.String())
	}
}

func TestJSONLoggerKeys(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hello", logging.Source("manifest"))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload["ts"] == nil || payload["level"] != "info" || payload["msg"] != "hello" {
		t.Fatalf("unexpected payload %v", payload)
	}
	if payload["source"] != "manifest" {
		t.Fatalf("expected source attribute preserved, got %v", payload["source"])
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewFromConfigWritesRotatingFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Logging.File = true
	var console bytes.Buffer

	logger, err := logging.NewFromConfig(&cfg, &console)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("to both")

	if !strings.Contains(console.String(), "to both") {
		t.Fatalf("expected console output, got %q", console.String())
	}
	data, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, "audiocat.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"to both"`) {
		t.Fatalf("expected JSON record in file, got %q", data)
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WarnWithContext(logger, "source malformed", "source_malformed",
		logging.Impact("tags ignored"),
		logging.Error(errors.New("bad header")),
	)

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload[logging.FieldEventType] != "source_malformed" {
		t.Fatalf("expected event_type, got %v", payload[logging.FieldEventType])
	}
	if payload[logging.FieldErrorHint] == nil {
		t.Fatal("expected default error_hint")
	}
	if payload[logging.FieldImpact] != "tags ignored" {
		t.Fatalf("expected caller impact preserved, got %v", payload[logging.FieldImpact])
	}
	if payload["level"] != "warn" {
		t.Fatalf("expected warn level, got %v", payload["level"])
	}
	if payload["error"] != "bad header" {
		t.Fatalf("expected error rendered as text, got %v", payload["error"])
	}
}

func TestErrorWithContextKeepsHint(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.ErrorWithContext(logger, "scan aborted", "scan_root_invalid",
		logging.FilePath("/archive"),
		logging.Hint("pass a directory"),
	)

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload[logging.FieldErrorHint] != "pass a directory" {
		t.Fatalf("expected hint preserved, got %v", payload[logging.FieldErrorHint])
	}
	if payload[logging.FieldEventType] != "scan_root_invalid" {
		t.Fatalf("expected event_type, got %v", payload[logging.FieldEventType])
	}
	if _, ok := payload[logging.FieldImpact]; ok {
		t.Fatalf("expected no impact on error lines, got %v", payload[logging.FieldImpact])
	}
	if payload[logging.FieldFilePath] != "/archive" {
		t.Fatalf("expected file_path, got %v", payload[logging.FieldFilePath])
	}
}

func TestWithRunIDStampsRecords(t *testing.T) {
	var buf bytes.Buffer
	base, err := logging.New(logging.Options{Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger, runID := logging.WithRunID(base, "")
	if runID == "" {
		t.Fatal("expected generated run id")
	}
	logger.With(logging.String("k", "v")).Info("tagged")

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload[logging.FieldRunID] != runID {
		t.Fatalf("expected run_id %s, got %v", runID, payload[logging.FieldRunID])
	}
}

func TestTeeHandlerDropsNil(t *testing.T) {
	if _, ok := logging.TeeHandler(nil, nil).(logging.NoopHandler); !ok {
		t.Fatal("expected NoopHandler when every handler is nil")
	}
}

func TestNopLogger(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("discarded")
	logging.WarnWithContext(nil, "ignored", "none")
}

func TestParseLevel(t *testing.T) {
	if logging.ParseLevel("WARNING").String() != "WARN" {
		t.Fatal("expected warning alias")
	}
	if logging.ParseLevel("bogus").String() != "INFO" {
		t.Fatal("expected info fallback")
	}
}
