package common

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a console logger on stderr with ISO8601 timestamps.
// verbose lowers the level to debug.
func NewLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.DisableStacktrace = true
	config.Sampling = nil

	if verbose {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		config.DisableCaller = false
	} else {
		config.DisableCaller = true
	}

	return config.Build()
}
