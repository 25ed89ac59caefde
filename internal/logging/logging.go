// Package logging builds the structured loggers used across walletguard.
package logging

import (
	"io"
	"log/slog"
)

// Common field and component names.
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldFile      = "file"

	ComponentCLI   = "cli"
	ComponentStore = "store"
)

// New returns a text logger writing to w. Debug output is enabled when
// verbose is set; otherwise only warnings and errors are written.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// WithComponent tags l with a component name.
func WithComponent(l *slog.Logger, component string) *slog.Logger {
	return l.With(FieldComponent, component)
}
