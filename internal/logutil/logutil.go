// Package logutil builds the structured logger used by the CLI
package logutil

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Nivl/ugit/env"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Env variables used to configure the logger
const (
	EnvLogLevel      = "UGIT_LOG_LEVEL"
	EnvLogFile       = "UGIT_LOG_FILE"
	EnvLogMaxSize    = "UGIT_LOG_MAX_SIZE"
	EnvLogMaxBackups = "UGIT_LOG_MAX_BACKUPS"
	EnvLogJSON       = "UGIT_LOG_JSON"
)

// Logger is the logger of the process, alongside the resources it
// owns
type Logger struct {
	*slog.Logger
	file io.Closer
}

// Close releases the log file, if any
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// New creates a logger writing to w at the level set in
// $UGIT_LOG_LEVEL (warn by default).
// Records are written as JSON when $UGIT_LOG_JSON is truthy.
// If $UGIT_LOG_FILE is set, everything down to debug is also written to
// that file, which is rotated
func New(w io.Writer, e *env.Env) *Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(e.Get(EnvLogLevel)),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			// the terminal doesn't need timestamps
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}
	var console slog.Handler = slog.NewTextHandler(w, opts)
	if e.Bool(EnvLogJSON) {
		console = slog.NewJSONHandler(w, opts)
	}
	handlers := []slog.Handler{console}

	l := &Logger{}
	if path := e.Get(EnvLogFile); path != "" {
		file := newRotatingFile(path, e)
		l.file = file
		handlers = append(handlers, slog.NewTextHandler(file, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	l.Logger = slog.New(&multiHandler{handlers: handlers})
	return l
}

// ParseLevel converts a level name to a slog.Level.
// Unknown values default to warn
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func newRotatingFile(path string, e *env.Env) *lumberjack.Logger {
	l := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    1, // megabytes
		MaxBackups: 2,
		MaxAge:     30, // days
	}
	if v, err := strconv.Atoi(e.Get(EnvLogMaxSize)); err == nil && v > 0 {
		l.MaxSize = v
	}
	if v, err := strconv.Atoi(e.Get(EnvLogMaxBackups)); err == nil && v >= 0 {
		l.MaxBackups = v
	}
	return l
}

// multiHandler fans out log records to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}
		if err := handler.Handle(ctx, record.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: newHandlers}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: newHandlers}
}
