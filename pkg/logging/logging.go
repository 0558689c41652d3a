// Package logging builds the zap loggers used by the CLI and HTTP server.
// The resampling core never logs; callers log around it.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Off disables logging entirely.
const Off = "off"

// New returns a JSON production logger writing to stderr at level
// (debug, info, warn, error). "off" and "" return a no-op logger.
func New(level string) (*zap.Logger, error) {
	if level == "" || level == Off {
		return zap.NewNop(), nil
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.Sampling = nil
	return cfg.Build()
}
