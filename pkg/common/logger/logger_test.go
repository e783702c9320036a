package logger_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/utkarsh5026/TrackIt/pkg/common/logger"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		config logger.Config
	}{
		{
			name: "debug_text",
			config: logger.Config{
				Level:  logger.LevelDebug,
				Format: logger.FormatText,
				Output: &bytes.Buffer{},
			},
		},
		{
			name: "info_json",
			config: logger.Config{
				Level:  logger.LevelInfo,
				Format: logger.FormatJSON,
				Output: &bytes.Buffer{},
			},
		},
		{
			name: "error_json",
			config: logger.Config{
				Level:  logger.LevelError,
				Format: logger.FormatJSON,
				Output: &bytes.Buffer{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := logger.New(tt.config)
			if log == nil {
				t.Fatal("expected non-nil logger")
			}
			log.Info("test message", "key", "value")
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{
		Level:  logger.LevelWarn,
		Format: logger.FormatText,
		Output: &buf,
	})

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("messages below warn should be filtered, got: %s", out)
	}
	if !strings.Contains(out, "warn message") {
		t.Errorf("warn message missing from output: %s", out)
	}
}

func TestFileSink(t *testing.T) {
	tmpDir := t.TempDir()
	logFile := filepath.Join(tmpDir, "trackit.log")

	var buf bytes.Buffer
	log := logger.New(logger.Config{
		Level:  logger.LevelInfo,
		Format: logger.FormatJSON,
		Output: &buf,
		File:   logFile,
	})

	log.Info("written to both sinks")

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("log file not created: %v", err)
	}
	if !strings.Contains(string(data), "written to both sinks") {
		t.Errorf("file sink missing message: %s", string(data))
	}
	if !strings.Contains(buf.String(), "written to both sinks") {
		t.Errorf("primary sink missing message: %s", buf.String())
	}
}
