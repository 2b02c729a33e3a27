package logging

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	dir := t.TempDir()

	logger, err := New(Options{Dir: dir, Debug: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hello from test")
	_ = logger.Sync()

	data, err := os.ReadFile(filepath.Join(dir, "logs", "driftwatch.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("log file is empty")
	}
}

func TestNewDisabled(t *testing.T) {
	logger, err := New(Options{Disabled: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// Nop logger: logging must not panic or create files.
	logger.Info("goes nowhere")
}

func TestNewEmptyDirIsNop(t *testing.T) {
	logger, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Warn("still fine")
}
