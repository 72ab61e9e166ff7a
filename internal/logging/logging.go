// Package logging builds the zap loggers used by the command-line tools.
package logging

import (
	"go.uber.org/zap"
)

// Config holds logging configuration.
type Config struct {
	Level       string            `json:"level" yaml:"level" toml:"level"`
	Format      string            `json:"format" yaml:"format" toml:"format"` // "json" or "console"
	OutputPath  string            `json:"output_path" yaml:"output_path" toml:"output_path"`
	Fields      map[string]string `json:"fields" yaml:"fields" toml:"fields"`
	Development bool              `json:"development" yaml:"development" toml:"development"`
}

// New creates a logger from cfg. An unparsable level means info.
func New(cfg Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zc.Level = level

	if cfg.Format == "console" {
		zc.Encoding = "console"
	} else {
		zc.Encoding = "json"
	}
	if cfg.OutputPath != "" {
		zc.OutputPaths = []string{cfg.OutputPath}
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, err
	}

	fields := make([]zap.Field, 0, len(cfg.Fields))
	for k, v := range cfg.Fields {
		fields = append(fields, zap.String(k, v))
	}
	return logger.With(fields...), nil
}

// NewOrDefault is New with a fallback to a plain production logger.
func NewOrDefault(cfg Config) *zap.Logger {
	logger, err := New(cfg)
	if err != nil {
		logger, _ = zap.NewProduction()
		logger.Warn("invalid logging config, using defaults", zap.Error(err))
	}
	return logger
}

// Nop discards everything.
func Nop() *zap.Logger { return zap.NewNop() }
