// Package logging builds the zerolog loggers used by the CLI and the TUI.
package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

type Options struct {
	// File receives JSON log lines when set. It takes precedence over Console.
	File string
	// Console receives human-readable lines when File is empty; nil disables
	// console logging.
	Console io.Writer
	Level   zerolog.Level
	// NoColor disables ANSI colours on the console writer.
	NoColor bool
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns the configured logger and a closer for its output.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	switch {
	case opts.File != "":
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, errors.Errorf("opening log file: %w", err)
		}
		l := zerolog.New(f).Level(opts.Level).With().Timestamp().Logger()
		return l, f, nil
	case opts.Console != nil:
		w := zerolog.ConsoleWriter{Out: opts.Console, NoColor: opts.NoColor, TimeFormat: time.TimeOnly}
		l := zerolog.New(w).Level(opts.Level).With().Timestamp().Logger()
		return l, nopCloser{}, nil
	default:
		return zerolog.Nop(), nopCloser{}, nil
	}
}

// Component derives a logger tagged with a component field.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}

// WithContext attaches l to ctx so downstream code can use zerolog.Ctx.
func WithContext(ctx context.Context, l zerolog.Logger) context.Context {
	return l.WithContext(ctx)
}
