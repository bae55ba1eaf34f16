// Package logging builds the zap logger described by the log config.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/smileynet/roster/internal/config"
)

// New returns a no-op logger when cfg.File is empty, otherwise a JSON
// logger writing to cfg.File at cfg.Level (default info).
func New(cfg config.Log) (*zap.Logger, error) {
	if cfg.File == "" {
		return zap.NewNop(), nil
	}

	level := zapcore.InfoLevel
	if cfg.Level != "" {
		l, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
		level = l
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{cfg.File}
	zc.ErrorOutputPaths = []string{cfg.File}
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: opening %s: %w", cfg.File, err)
	}
	return logger, nil
}
