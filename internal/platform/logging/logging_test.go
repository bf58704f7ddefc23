package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"labortimer/internal/platform/logging"
)

func TestNewWritesToOutputAtLevel(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger, closeFn, err := logging.New(logging.Options{Name: "test", Level: "warn", Output: &buf})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	defer closeFn()
	logger.Info("hidden")
	logger.Warn("history save failed", "error", "disk full")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "history save failed") || !strings.Contains(out, "disk full") {
		t.Fatalf("warn line missing: %s", out)
	}
}

func TestNewWritesToFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	logger, closeFn, err := logging.New(logging.Options{Name: "test", Level: "bogus", Path: path})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("hydrated", "contractions", 3)
	if err := closeFn(); err != nil {
		t.Fatalf("close log: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), "hydrated") {
		t.Fatalf("expected info line with default level, got %s", b)
	}
}
