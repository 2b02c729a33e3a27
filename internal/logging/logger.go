// Package logging builds the file-backed zap logger for the driftwatch
// client. The interactive TUI owns the terminal, so nothing may ever be
// logged to stdout or stderr while it is running; everything goes to
// ~/.driftwatch/logs/driftwatch.log.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls logger construction.
type Options struct {
	// Dir is the directory log files are written under.
	Dir string
	// Debug lowers the level to debug and enables development encoding.
	Debug bool
	// Disabled returns a nop logger; used when no config dir is available.
	Disabled bool
}

// New builds the client logger. Errors creating the log directory degrade
// to a nop logger rather than failing startup; logging is never worth
// refusing to run the dashboard over.
func New(opts Options) (*zap.Logger, error) {
	if opts.Disabled || opts.Dir == "" {
		return zap.NewNop(), nil
	}

	logsDir := filepath.Join(opts.Dir, "logs")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return zap.NewNop(), fmt.Errorf("create log dir: %w", err)
	}

	cfg := zap.NewProductionConfig()
	if opts.Debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.OutputPaths = []string{filepath.Join(logsDir, "driftwatch.log")}
	cfg.ErrorOutputPaths = cfg.OutputPaths

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop(), fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
