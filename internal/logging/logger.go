// Package logging builds the structured loggers used across the service.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// New creates the application logger on Stderr, keeping Stdout free for the
// chat UI. Format "json" selects machine-readable output for log shipping;
// anything else renders text. The "error" key is standardized to "err".
func New(level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
