// Package log provides category-tagged structured logging for roleta.
//
// The TUI owns the terminal, so logs go to a file (or nowhere) rather than
// stderr. Call sites pass a Category as the first argument so a log file can
// be filtered per subsystem.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
)

// Category tags a log line with the subsystem that produced it.
type Category string

const (
	CatWheel   Category = "wheel"
	CatSound   Category = "sound"
	CatUI      Category = "ui"
	CatConfig  Category = "config"
	CatTrace   Category = "trace"
	CatCLI     Category = "cli"
	CatRuntime Category = "runtime" // goroutines without a subsystem prefix
)

var (
	mu     sync.RWMutex
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	closer io.Closer
)

// ParseLevel converts a config level name into a slog.Level.
// Unknown names map to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
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

// Init directs logging to path at the given level. An empty path keeps
// logging disabled. The returned function closes the log file.
func Init(path string, level slog.Level) (func(), error) {
	if path == "" {
		SetOutput(io.Discard, level)
		return func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	SetOutput(f, level)
	mu.Lock()
	closer = f
	mu.Unlock()

	return func() {
		mu.Lock()
		defer mu.Unlock()
		if closer != nil {
			_ = closer.Close()
			closer = nil
		}
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}, nil
}

// SetOutput replaces the log destination. Tests use it to capture output.
func SetOutput(w io.Writer, level slog.Level) {
	mu.Lock()
	defer mu.Unlock()
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func with(cat Category, args []any) []any {
	return append([]any{"cat", string(cat)}, args...)
}

// Debug logs at debug level.
func Debug(cat Category, msg string, args ...any) {
	current().Debug(msg, with(cat, args)...)
}

// Info logs at info level.
func Info(cat Category, msg string, args ...any) {
	current().Info(msg, with(cat, args)...)
}

// Warn logs at warn level.
func Warn(cat Category, msg string, args ...any) {
	current().Warn(msg, with(cat, args)...)
}

// Error logs at error level.
func Error(cat Category, msg string, args ...any) {
	current().Error(msg, with(cat, args)...)
}

// ErrorErr logs err at error level under the "error" key.
func ErrorErr(cat Category, msg string, err error, args ...any) {
	current().Error(msg, with(cat, append([]any{"error", err}, args...))...)
}

// SafeGo runs fn on a new goroutine and logs (instead of crashing on) a panic.
// The panic is logged under the category named by name's prefix, so
// "sound.pump" logs as sound.
func SafeGo(name string, fn func()) {
	cat := goroutineCategory(name)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				Error(cat, "Recovered panic in goroutine",
					"goroutine", name, "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
			}
		}()
		fn()
	}()
}

func goroutineCategory(name string) Category {
	prefix, _, _ := strings.Cut(name, ".")
	if prefix == "" {
		return CatRuntime
	}
	return Category(prefix)
}
