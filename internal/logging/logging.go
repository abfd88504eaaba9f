// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Starter Contributors

// Package logging builds the process logger from configuration.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/naranyala/webui-starter/internal/config"
	apperr "github.com/naranyala/webui-starter/pkg/errors"
)

// ParseLevel maps a logging.level value onto a slog level. Unknown values
// fall back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a text logger writing to cfg.File, or to stderr when File is
// empty or "-". The closer releases the file and must be called on shutdown.
// A file that cannot be opened is reported through apperr.FromIO.
func New(cfg config.LoggingConfig) (*slog.Logger, io.Closer, error) {

	if cfg.File == "" || cfg.File == "-" {
		return NewWriter(os.Stderr, cfg.Level), nopCloser{}, nil
	}

	flags := os.O_CREATE | os.O_WRONLY
	if cfg.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(cfg.File, flags, 0o600)
	if err != nil {
		return nil, nil, apperr.FromIO(err)
	}

	return NewWriter(f, cfg.Level), f, nil
}

// NewWriter returns a text logger writing to w at the configured level.
func NewWriter(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}
