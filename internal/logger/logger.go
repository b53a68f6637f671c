// Package logger provides the configured zerolog logger.
package logger

import (
	"io"

	"github.com/rs/zerolog"
)

// New returns a logger writing to w. The console owns stdout, so callers
// pass stderr.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().
		Str("service", "hbnb").
		Timestamp().
		Logger()
}
