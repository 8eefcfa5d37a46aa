// Package logging builds the process logger from configuration.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"clipkeep/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const Stderr = "stderr"

// New returns a zap logger for cfg. Relative log files land in dataDir.
// verbose forces debug level.
func New(cfg config.LoggingConfig, dataDir string, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if !cfg.JSON {
		zc.Encoding = "console"
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	zc.EncoderConfig.TimeKey = "ts"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.Sampling = nil

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	out := OutputPath(cfg.File, dataDir)
	if out != Stderr {
		if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	zc.OutputPaths = []string{out}
	zc.ErrorOutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// OutputPath resolves where log lines go.
func OutputPath(file, dataDir string) string {
	switch {
	case file == "" || file == Stderr:
		return Stderr
	case filepath.IsAbs(file):
		return file
	default:
		return filepath.Join(dataDir, file)
	}
}
