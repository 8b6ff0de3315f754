package app

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/agentstation/dietdesk/pkg/logging"
)

// TestDetermineLogLevel tests the log level precedence logic.
func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{"default level when no flags set", &Config{}, "info"},
		{"verbose flag sets debug", &Config{Verbose: true}, "debug"},
		{"quiet flag sets warn", &Config{Quiet: true}, "warn"},
		{"explicit log-level overrides verbose", &Config{LogLevel: "error", Verbose: true}, "error"},
		{"explicit log-level overrides quiet", &Config{LogLevel: "trace", Quiet: true}, "trace"},
		{"quiet wins over verbose", &Config{Verbose: true, Quiet: true}, "warn"},
		{"invalid log-level falls back to info", &Config{LogLevel: "loud"}, "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, determineLogLevel(tt.config))
		})
	}
}

func TestValidateLogLevel(t *testing.T) {
	for _, level := range []string{"trace", "debug", "info", "warn", "error"} {
		assert.Equal(t, level, validateLogLevel(level))
	}
	assert.Equal(t, "info", validateLogLevel("fatal"))
	assert.Equal(t, "info", validateLogLevel(""))
	assert.Equal(t, "info", validateLogLevel("DEBUG"))
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
		level  zerolog.Level
	}{
		{"default", &Config{LogOutput: "stderr"}, zerolog.InfoLevel},
		{"verbose", &Config{Verbose: true, LogOutput: "stderr"}, zerolog.DebugLevel},
		{"explicit error", &Config{LogLevel: "error", LogOutput: "stderr", LogFormat: "json"}, zerolog.ErrorLevel},
		{"no color forces json", &Config{Quiet: true, NoColor: true, LogOutput: "stderr"}, zerolog.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogger(tt.config)
			assert.Equal(t, tt.level, logger.GetLevel())
			assert.Equal(t, tt.level, logging.Default().GetLevel(), "installed as the package default")
		})
	}
}
