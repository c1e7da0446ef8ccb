package vocabtree

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with vocabulary-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithHeader adds the vocabulary parameters to the logger.
func (l *Logger) WithHeader(h Header) *Logger {
	return &Logger{
		Logger: l.Logger.With(
			"k", h.BranchingFactor,
			"depth", h.Depth,
			"scoring", h.Scoring.String(),
			"weighting", h.Weighting.String(),
		),
	}
}

// WithName adds a blob name field to the logger.
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("name", name),
	}
}

// LogDecode logs a decode operation.
func (l *Logger) LogDecode(ctx context.Context, nodes, words int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "vocabulary decode failed",
			"nodes_read", nodes,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "vocabulary decoded",
			"nodes", nodes,
			"words", words,
		)
	}
}

// LogEncode logs an encode operation.
func (l *Logger) LogEncode(ctx context.Context, nodes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "vocabulary encode failed",
			"nodes", nodes,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "vocabulary encoded",
			"nodes", nodes,
		)
	}
}

// LogLoad logs loading a vocabulary from a blob store.
func (l *Logger) LogLoad(ctx context.Context, name string, bytes int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "vocabulary load failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "vocabulary loaded",
			"name", name,
			"bytes", bytes,
		)
	}
}

// LogSave logs saving a vocabulary to a blob store.
func (l *Logger) LogSave(ctx context.Context, name string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "vocabulary save failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "vocabulary saved",
			"name", name,
		)
	}
}

// LogBuild logs a vocabulary build.
func (l *Logger) LogBuild(ctx context.Context, descriptors, nodes, words int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "vocabulary build failed",
			"descriptors", descriptors,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "vocabulary built",
			"descriptors", descriptors,
			"nodes", nodes,
			"words", words,
		)
	}
}
