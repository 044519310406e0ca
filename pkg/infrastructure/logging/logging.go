// Package logging provides the zerolog logger used for stage
// instrumentation throughout the planning core.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds a console-writer zerolog.Logger at the level named by
// MRP_LOG_LEVEL (defaulting to info), grounded on the pack's existing
// zerolog setup.
func New() zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "2006-01-02 15:04:05",
	}

	level := zerolog.InfoLevel
	if levelStr := os.Getenv("MRP_LOG_LEVEL"); levelStr != "" {
		if parsed, err := zerolog.ParseLevel(levelStr); err == nil {
			level = parsed
		}
	}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()
}
