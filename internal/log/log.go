// Package log provides category-tagged structured logging for dinoguessr.
//
// The terminal UI owns stdout, so records go to a log file (or nowhere).
// Call sites pass a Category plus alternating key/value pairs:
//
//	log.Debug(log.CatAudio, "Voice started", "event", ev)
//	log.ErrorErr(log.CatDB, "Failed to save result", err, "guid", guid)
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
)

// Category tags a log record with the subsystem that produced it.
type Category string

const (
	CatAudio   Category = "audio"
	CatSession Category = "session"
	CatQuiz    Category = "quiz"
	CatDB      Category = "db"
	CatUI      Category = "ui"
	CatConfig  Category = "config"
	CatTrace   Category = "trace"
)

var (
	mu     sync.RWMutex
	level  = new(slog.LevelVar)
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	closer io.Closer
)

// Init opens path for appending and routes all records there.
// An empty path disables logging. The returned function closes the file.
func Init(path string, lvl string) (func() error, error) {
	if err := SetLevel(lvl); err != nil {
		return nil, err
	}
	if path == "" {
		SetOutput(io.Discard)
		return func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) //nolint:gosec // path comes from config
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	SetOutput(f)
	mu.Lock()
	closer = f
	mu.Unlock()

	return func() error {
		mu.Lock()
		defer mu.Unlock()
		if closer == nil {
			return nil
		}
		err := closer.Close()
		closer = nil
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		return err
	}, nil
}

// SetOutput replaces the destination writer. Used by tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// SetLevel changes the minimum level. Accepts debug, info, warn and error.
func SetLevel(lvl string) error {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		level.Set(slog.LevelDebug)
	case "", "info":
		level.Set(slog.LevelInfo)
	case "warn", "warning":
		level.Set(slog.LevelWarn)
	case "error":
		level.Set(slog.LevelError)
	default:
		return fmt.Errorf("unknown log level %q", lvl)
	}
	return nil
}

// Level returns the current minimum level.
func Level() slog.Level {
	return level.Level()
}

func emit(lvl slog.Level, cat Category, msg string, kv []any) {
	mu.RLock()
	l := logger
	mu.RUnlock()
	l.Log(context.Background(), lvl, msg, append([]any{"cat", string(cat)}, kv...)...)
}

// Debug logs at debug level.
func Debug(cat Category, msg string, kv ...any) { emit(slog.LevelDebug, cat, msg, kv) }

// Info logs at info level.
func Info(cat Category, msg string, kv ...any) { emit(slog.LevelInfo, cat, msg, kv) }

// Warn logs at warn level.
func Warn(cat Category, msg string, kv ...any) { emit(slog.LevelWarn, cat, msg, kv) }

// Error logs at error level.
func Error(cat Category, msg string, kv ...any) { emit(slog.LevelError, cat, msg, kv) }

// ErrorErr logs err at error level under the "error" key.
func ErrorErr(cat Category, msg string, err error, kv ...any) {
	emit(slog.LevelError, cat, msg, append([]any{"error", err}, kv...))
}

// SafeGo runs fn in a goroutine and logs any panic instead of crashing the TUI.
func SafeGo(name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				Error(CatUI, "Recovered panic in goroutine", "goroutine", name, "panic", r, "stack", string(debug.Stack()))
			}
		}()
		fn()
	}()
}
