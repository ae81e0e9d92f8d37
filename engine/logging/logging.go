// Package logging builds the zap logger shared by the engine components.
package logging

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Carmen-Shannon/oxy-shadows/engine/config"
)

// NewLogger creates a zap logger from the log section of the configuration.
// Development mode uses the console encoder; otherwise JSON is written to stderr.
//
// Parameters:
//   - cfg: the logging configuration
//
// Returns:
//   - *zap.Logger: the configured logger
//   - error: error if the level is unknown or the logger cannot be built
func NewLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, errors.Wrapf(err, "log level %q", cfg.Level)
		}
	}

	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return logger, nil
}
