package logger_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/JaimeStill/agent-scaffold/internal/config"
	"github.com/JaimeStill/agent-scaffold/internal/logger"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.LoggingConfig{Level: config.LogLevelInfo, Format: config.LogFormatJSON}

	sys := logger.NewWithWriter(cfg, &buf)
	sys.Logger().Info("agent created", "name", "bot1")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("log output is not JSON: %v (%q)", err, buf.String())
	}

	if record["msg"] != "agent created" {
		t.Errorf("msg = %v, want %q", record["msg"], "agent created")
	}
	if record["service"] != "agent-scaffold" {
		t.Errorf("service = %v, want %q", record["service"], "agent-scaffold")
	}
}

func TestNewWithWriter_LevelFilter(t *testing.T) {
	tests := []struct {
		name    string
		level   config.LogLevel
		wantOut bool
	}{
		{"debug passes info", config.LogLevelDebug, true},
		{"info passes info", config.LogLevelInfo, true},
		{"warn drops info", config.LogLevelWarn, false},
		{"error drops info", config.LogLevelError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cfg := &config.LoggingConfig{Level: tt.level, Format: config.LogFormatText}

			logger.NewWithWriter(cfg, &buf).Logger().Info("message")

			got := strings.Contains(buf.String(), "message")
			if got != tt.wantOut {
				t.Errorf("output present = %v, want %v", got, tt.wantOut)
			}
		})
	}
}
