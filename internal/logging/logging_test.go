package logging

import (
	"backtestreport/internal/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Logging
		enabled zapcore.Level
		muted   zapcore.Level
	}{
		{"defaults to info", config.Logging{}, zapcore.InfoLevel, zapcore.DebugLevel},
		{"debug console", config.Logging{Level: "debug", Format: "console"}, zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"warn json", config.Logging{Level: "WARN", Format: "json"}, zapcore.WarnLevel, zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.enabled))
			assert.False(t, logger.Core().Enabled(tt.muted))
		})
	}
}

func TestNewErrors(t *testing.T) {
	_, err := New(config.Logging{Level: "loud"})
	assert.Error(t, err)

	_, err = New(config.Logging{Format: "xml"})
	assert.Error(t, err)
}
