package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWithoutPathIsNop(t *testing.T) {
	logger, err := New("", true)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Info("dropped")
}

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "dashd.log")
	logger, err := New(path, true)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Debug("dashboard loaded")
	_ = logger.Sync()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(raw), `"msg":"dashboard loaded"`) {
		t.Fatalf("expected debug entry in log, got %q", raw)
	}
}
