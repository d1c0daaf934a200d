/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

// Package logging builds the deck's zerolog logger. The terminal belongs
// to the player UI, so records go to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"hdxdeck/pkg/defaults"

	"github.com/rs/zerolog"
)

// New returns a logger writing to w at level ("debug", "info", ...).
func New(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano
	return zerolog.New(w).Level(lvl).With().Timestamp().Str("app", defaults.AppName).Logger(), nil
}

// OpenFile appends to path, creating it and its directory if needed. An
// empty path discards logs.
func OpenFile(path, level string) (zerolog.Logger, io.Closer, error) {
	if path == "" {
		l, err := New(io.Discard, level)
		return l, io.NopCloser(nil), err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log: %w", err)
	}
	l, err := New(f, level)
	if err != nil {
		f.Close()
		return zerolog.Nop(), nil, err
	}
	return l, f, nil
}

// Console is used by the command line client, which keeps its terminal
// in cooked mode.
func Console(w io.Writer, level string) (zerolog.Logger, error) {
	l, err := New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}, level)
	return l, err
}
