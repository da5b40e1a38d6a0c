// Package logging builds the slog logger shared by the merger, the host and
// the command line.
package logging

import (
	"io"
	"log/slog"
)

// New returns a logger writing cfg.Format records to w. An unparsable level
// logs at info.
func New(cfg *Config, w io.Writer) *slog.Logger {
	level, err := cfg.Level.slogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level, AddSource: cfg.Source}

	if cfg.Format == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
