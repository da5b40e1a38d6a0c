package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"pdfmerger/logging"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := &logging.Config{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}
	if cfg.Level != logging.LevelInfo || cfg.Format != logging.FormatText || cfg.Source {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestConfig_EnvOverride(t *testing.T) {
	t.Setenv(logging.EnvLevel, "debug")
	t.Setenv(logging.EnvFormat, "JSON")
	t.Setenv(logging.EnvSource, "true")

	cfg := &logging.Config{Level: logging.LevelWarn, Format: logging.FormatText}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}
	if cfg.Level != logging.LevelDebug || cfg.Format != logging.FormatJSON || !cfg.Source {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  logging.Config
		env  string
	}{
		{"level", logging.Config{Level: "loud"}, ""},
		{"format", logging.Config{Format: "xml"}, ""},
		{"source env", logging.Config{}, "sometimes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.env != "" {
				t.Setenv(logging.EnvSource, tt.env)
			}
			if err := tt.cfg.Finalize(); err == nil {
				t.Error("Finalize() succeeded, want error")
			}
		})
	}
}

func TestConfig_Merge(t *testing.T) {
	cfg := &logging.Config{Level: logging.LevelInfo, Format: logging.FormatText}
	cfg.Merge(&logging.Config{Level: logging.LevelWarn, Source: true})

	if cfg.Level != logging.LevelWarn || cfg.Format != logging.FormatText || !cfg.Source {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level logging.Level
		want  []string
	}{
		{logging.LevelDebug, []string{"d", "i", "w", "e"}},
		{logging.LevelInfo, []string{"i", "w", "e"}},
		{"WARN", []string{"w", "e"}},
		{logging.LevelError, []string{"e"}},
		{"unknown", []string{"i", "w", "e"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			var buf bytes.Buffer
			logger := logging.New(&logging.Config{Level: tt.level, Format: logging.FormatText}, &buf)
			logger.Debug("d")
			logger.Info("i")
			logger.Warn("w")
			logger.Error("e")

			var got []string
			for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
				_, msg, ok := strings.Cut(line, "msg=")
				if ok {
					got = append(got, msg)
				}
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("logged %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&logging.Config{Level: logging.LevelInfo, Format: logging.FormatJSON, Source: true}, &buf)

	logger.Debug("hidden")
	logger.Info("merged", "pages", 5)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "merged" || entry["pages"] != float64(5) {
		t.Errorf("entry = %v", entry)
	}
	if _, ok := entry["source"]; !ok {
		t.Errorf("entry has no source: %v", entry)
	}
}
