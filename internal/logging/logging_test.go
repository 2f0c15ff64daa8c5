package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/plus3/vortex/internal/config"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name  string
		cfg   config.LoggingConfig
		level zapcore.Level
	}{
		{"console debug", config.LoggingConfig{Level: "debug", Format: "console"}, zapcore.DebugLevel},
		{"json warn", config.LoggingConfig{Level: "warn", Format: "json"}, zapcore.WarnLevel},
		{"empty level", config.LoggingConfig{Format: "console"}, zapcore.InfoLevel},
		{"unknown level", config.LoggingConfig{Level: "chatty", Format: "json"}, zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.level, logger.Level())
		})
	}
}

func TestNewFileWritesToPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vortex.log")
	logger, err := NewFile(config.LoggingConfig{Level: "info", Format: "json"}, path)
	require.NoError(t, err)

	logger.Info("session started")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"session started"`)
}
