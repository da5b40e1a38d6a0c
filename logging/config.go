package logging

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Environment variables consulted by Finalize. They win over config.toml.
const (
	EnvLevel  = "PDFMERGE_LOG_LEVEL"
	EnvFormat = "PDFMERGE_LOG_FORMAT"
	EnvSource = "PDFMERGE_LOG_SOURCE"
)

// Config is the [logging] table.
type Config struct {
	Level  Level  `toml:"level"`
	Format Format `toml:"format"`
	Source bool   `toml:"source"`
}

// Finalize reads environment overrides, fills defaults and validates.
func (c *Config) Finalize() error {
	if v := os.Getenv(EnvLevel); v != "" {
		c.Level = Level(v)
	}
	if v := os.Getenv(EnvFormat); v != "" {
		c.Format = Format(v)
	}
	if v := os.Getenv(EnvSource); v != "" {
		source, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSource, err)
		}
		c.Source = source
	}

	if c.Level == "" {
		c.Level = LevelInfo
	}
	c.Format = Format(strings.ToLower(string(c.Format)))
	if c.Format == "" {
		c.Format = FormatText
	}

	if _, err := c.Level.slogLevel(); err != nil {
		return err
	}
	switch c.Format {
	case FormatText, FormatJSON:
		return nil
	default:
		return fmt.Errorf("log format %q: want text or json", c.Format)
	}
}

// Merge copies the fields set in overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Level != "" {
		c.Level = overlay.Level
	}
	if overlay.Format != "" {
		c.Format = overlay.Format
	}
	if overlay.Source {
		c.Source = true
	}
}

// Level is a severity name as slog spells it, optionally with an offset
// such as "warn+2". Case does not matter.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

func (l Level) slogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", string(l), err)
	}
	return level, nil
}

// Format selects the slog handler.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)
