package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"inkwell/internal/services"
)

func TestConsoleHandlerFormatsLine(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	logger.Info("segment translated",
		String(FieldComponent, "runner"),
		String(FieldSegmentID, "Chapter_3"),
		Int("attempt", 1),
	)

	line := buf.String()
	if !strings.Contains(line, "INFO runner: segment translated") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "segment_id=Chapter_3") || !strings.Contains(line, "attempt=1") {
		t.Fatalf("missing attrs: %q", line)
	}
}

func TestConsoleHandlerQuotesValues(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	logger.Warn("fetch failed", String("reason", "timed out"))
	if !strings.Contains(buf.String(), `reason="timed out"`) {
		t.Fatalf("expected quoted value: %q", buf.String())
	}
}

func TestWithContextAddsFields(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	ctx := services.WithUnitName(context.Background(), "Tower of Dawn")
	ctx = services.WithStage(ctx, "translating")
	WithContext(ctx, logger).Info("progress")

	line := buf.String()
	if !strings.Contains(line, `unit="Tower of Dawn"`) || !strings.Contains(line, "stage=translating") {
		t.Fatalf("context fields missing: %q", line)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNop()
	logger.Error("should not panic", Error(nil))
}
