package slogutil

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
)

// Options selects how Setup builds a logger.
type Options struct {
	Level      string // debug, info, warn, error
	Format     string // "human" (LineHandler) or "json"
	File       string // optional log file, tee'd with the console writer
	MaxSize    string // rotation threshold for File, e.g. "10MB"; empty disables rotation
	MaxBackups int
}

// Setup builds a logger writing to console and, when opts.File is set, to a
// rotating log file as well. The returned closer is never nil.
func Setup(console io.Writer, opts Options) (*slog.Logger, io.Closer, error) {
	level := LevelFromString(opts.Level)
	handler := newHandler(console, opts.Format, level)

	if opts.File == "" {
		return slog.New(handler), nopCloser{}, nil
	}

	rf, err := OpenRotatingFile(opts.File, ParseSize(opts.MaxSize), opts.MaxBackups)
	if err != nil {
		return nil, nil, err
	}
	tee := NewTeeHandler(handler, newHandler(rf, opts.Format, level))
	return slog.New(tee), rf, nil
}

func newHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	hopts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, hopts)
	}
	return NewLineHandler(w, hopts)
}

// NewLogger creates a logger using LineHandler.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(NewLineHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewDiscardLogger creates a logger that drops everything. Used by tests.
func NewDiscardLogger() *slog.Logger {
	return slog.New(NewLineHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(100)}))
}

// LevelFromString converts a string to a slog.Level, defaulting to info.
func LevelFromString(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// TeeHandler writes records to every wrapped handler that accepts the level.
type TeeHandler struct {
	handlers []slog.Handler
}

// NewTeeHandler creates a handler that fans out to all provided handlers.
func NewTeeHandler(handlers ...slog.Handler) *TeeHandler {
	return &TeeHandler{handlers: handlers}
}

// Enabled returns true if any handler is enabled for the level.
func (t *TeeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle writes the record to all enabled handlers and joins their errors.
func (t *TeeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range t.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WithAttrs returns a new TeeHandler with attributes added to all handlers.
func (t *TeeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(t.handlers))
	for i, h := range t.handlers {
		next[i] = h.WithAttrs(attrs)
	}
	return &TeeHandler{handlers: next}
}

// WithGroup returns a new TeeHandler with the group added to all handlers.
func (t *TeeHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(t.handlers))
	for i, h := range t.handlers {
		next[i] = h.WithGroup(name)
	}
	return &TeeHandler{handlers: next}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
