package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"inkwell/internal/logging"
	"inkwell/internal/testsupport"
)

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("pipeline warmup", logging.String(logging.FieldUnit, "test"))

	logPath := filepath.Join(cfg.Paths.LogDir, "inkwell.log")
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("expected log file at %s: %v", logPath, err)
	}
	if len(data) == 0 {
		t.Error("log file is empty after logging")
	}
}

func TestNewFromConfigNilConfig(t *testing.T) {
	logger, err := logging.NewFromConfig(nil)
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("no config")
}
