// Package logging sets up the process logger. The terminal belongs to the
// TUI, so records go to a rotating file or nowhere.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/daviddao/multivalue_viewer/internal/settings"
)

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger for cfg and the closer for its output. With no
// file configured the logger discards everything.
func New(cfg settings.Log) (*slog.Logger, io.Closer, error) {
	if cfg.File == "" {
		return slog.New(slog.DiscardHandler), nopCloser{}, nil
	}
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	out := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB, // megabytes
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays, // days
		LocalTime:  true,
	}
	return slog.New(NewHandler(out, cfg.Format, level)), out, nil
}

// NewHandler builds a text or JSON handler writing to w.
func NewHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}
