// Package logging builds the process logger. The terminal UI owns stdout,
// so logs go to a file.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/abhisek/kidboard/internal/store"
)

// New returns a JSON logger appending to path. verbose enables debug level.
func New(path string, verbose bool) (*zap.Logger, error) {
	if err := store.EnsureDir(path); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	config := zap.NewProductionConfig()
	config.OutputPaths = []string{path}
	config.ErrorOutputPaths = []string{path}
	config.Sampling = nil
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
