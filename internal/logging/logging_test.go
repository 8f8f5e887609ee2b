package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pomo.log")
	logger, err := New(path, "info", false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("countdown expired", zap.String("mode", "work"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"msg":"countdown expired"`) {
		t.Fatalf("log missing message: %s", out)
	}
	if !strings.Contains(out, `"mode":"work"`) {
		t.Fatalf("log missing field: %s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line written at info level: %s", out)
	}
}

func TestNewDebugFlagOverridesLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pomo.log")
	logger, err := New(path, "error", true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("visible")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "visible") {
		t.Fatalf("debug line missing: %s", data)
	}
}

func TestNewEmptyPathIsNop(t *testing.T) {
	logger, err := New("", "info", false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if logger.Core().Enabled(zapcore.ErrorLevel) {
		t.Fatal("expected a no-op logger")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"", zapcore.InfoLevel},
		{"INFO", zapcore.InfoLevel},
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{" error ", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
