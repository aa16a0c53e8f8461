// Package redis routes the internal go-redis logging (pool and reconnect
// messages) into zerolog.
package redis

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger implements the go-redis logging interface.
type Logger struct {
	l zerolog.Logger
}

// New creates a logger writing to l.
func New(l zerolog.Logger) *Logger {
	return &Logger{l: l.With().Str("component", "redis").Logger()}
}

// NewGlobal creates a logger on the global zerolog logger.
func NewGlobal() *Logger {
	return New(log.Logger)
}

// Printf logs a go-redis message at warn level, go-redis only logs problems.
func (l *Logger) Printf(_ context.Context, format string, v ...any) {
	l.l.Warn().Msgf(format, v...)
}
