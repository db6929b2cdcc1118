package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/giygas/clinpharm-api/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"invalid", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLogLevel(tt.input); got != tt.expected {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestGetConsoleLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		env      config.Environment
		level    string
		verbose  bool
		expected slog.Level
	}{
		{"dev defaults to info", config.EnvDevelopment, "", false, slog.LevelInfo},
		{"test quiet defaults to error", config.EnvTest, "", false, slog.LevelError},
		{"test verbose defaults to info", config.EnvTest, "", true, slog.LevelInfo},
		{"prod defaults to warn", config.EnvProduction, "", false, slog.LevelWarn},
		{"staging defaults to warn", config.EnvStaging, "", false, slog.LevelWarn},
		{"prod with debug override", config.EnvProduction, "debug", false, slog.LevelDebug},
		{"dev with error override", config.EnvDevelopment, "error", false, slog.LevelError},
		{"test ignores override", config.EnvTest, "debug", false, slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetConsoleLogLevel(tt.env, tt.level, tt.verbose); got != tt.expected {
				t.Errorf("GetConsoleLogLevel(%v, %q, %v) = %v, want %v", tt.env, tt.level, tt.verbose, got, tt.expected)
			}
		})
	}
}

func TestInitLoggerWritesJSONFile(t *testing.T) {
	dir := t.TempDir()

	service := InitLogger(Options{LogDir: dir, Env: config.EnvTest, RetentionWeeks: 1, MaxFileSize: 1024 * 1024})
	defer service.Close()

	Info("Reference tables loaded", "source", "builtin")
	Debug("debug only in file")

	path := filepath.Join(dir, logFilePrefix+getWeekKey(time.Now())+".log")
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	logs := string(content)
	if !strings.Contains(logs, `"msg":"Reference tables loaded"`) || !strings.Contains(logs, `"source":"builtin"`) {
		t.Errorf("Expected JSON log line, got: %s", logs)
	}
	if !strings.Contains(logs, "debug only in file") {
		t.Errorf("Expected debug line in file, got: %s", logs)
	}
}

func TestInitLoggerConsoleOnly(t *testing.T) {
	service := InitLogger(Options{Env: config.EnvTest})
	defer service.Close()

	if service.Logger == nil {
		t.Fatal("Expected logger to be set")
	}
	if DefaultLoggingService != service {
		t.Error("Expected service to become the default")
	}

	// package helpers must not panic without a file
	Warn("console only")
	Error("console only")
}
