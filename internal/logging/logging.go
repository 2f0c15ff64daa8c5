// Package logging builds the zap logger shared by the vortex hosts.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/plus3/vortex/internal/config"
)

// New returns a JSON production logger or a coloured console logger writing
// to stderr. An unknown level falls back to info.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	return build(cfg, nil)
}

// NewFile is New writing to path instead, for hosts that own the terminal.
func NewFile(cfg config.LoggingConfig, path string) (*zap.Logger, error) {
	return build(cfg, []string{path})
}

func build(cfg config.LoggingConfig, outputs []string) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zcfg zap.Config
	if cfg.Format == "json" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zcfg.EncoderConfig.ConsoleSeparator = "  "
		zcfg.DisableCaller = true
		zcfg.DisableStacktrace = true
		if outputs == nil {
			zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		} else {
			zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		}
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	if outputs != nil {
		zcfg.OutputPaths = outputs
		zcfg.ErrorOutputPaths = outputs
	}

	return zcfg.Build()
}
