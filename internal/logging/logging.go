// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Config selects where log records go
type Config struct {
	Path   string    // JSON log file, appended to; empty for none
	Debug  bool      // Debug level, and text records to Stderr when Path is empty
	Stderr io.Writer // Defaults to os.Stderr
}

// Setup installs the default slog logger and returns a cleanup func that
// closes the log file. Without Path or Debug all records are discarded.
func Setup(cfg Config) (func() error, error) {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	if cfg.Path == "" {
		var h slog.Handler = slog.NewJSONHandler(io.Discard, nil)
		if cfg.Debug {
			w := cfg.Stderr
			if w == nil {
				w = os.Stderr
			}
			h = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
		}
		slog.SetDefault(slog.New(h))
		return func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	h := slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.Debug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
			}
			return a
		},
	})
	slog.SetDefault(slog.New(h))
	slog.Info("logger.initialized", "path", cfg.Path, "debug", cfg.Debug)

	return func() error {
		slog.SetDefault(slog.New(slog.NewJSONHandler(io.Discard, nil)))
		return f.Close()
	}, nil
}
