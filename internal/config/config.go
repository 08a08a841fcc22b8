// Package config provides configuration loading and validation for the
// tracefang CLI.
package config

import (
	"errors"
	"fmt"
)

// Sentinel validation errors.
var (
	ErrInvalidLogLevel   = errors.New("invalid log level")
	ErrInvalidLogFormat  = errors.New("invalid log format")
	ErrInvalidDumpFormat = errors.New("invalid dump format")
)

// Dump output formats.
const (
	FormatTree = "tree"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config holds all settings for the tracefang CLI.
type Config struct {
	Log  LogConfig  `mapstructure:"log"`
	Dump DumpConfig `mapstructure:"dump"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DumpConfig holds tree-dump settings.
type DumpConfig struct {
	Color  bool   `mapstructure:"color"`
	Format string `mapstructure:"format"`
}

// Validate checks the configuration for inconsistent values.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Log.Level)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Log.Format)
	}

	switch c.Dump.Format {
	case FormatTree, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidDumpFormat, c.Dump.Format)
	}

	return nil
}
