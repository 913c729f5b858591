// Package logging provides structured logging for gfxwrap using slog.
package logging

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// Level aliases for convenience.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var (
	mu            sync.RWMutex
	defaultLogger *slog.Logger
)

// Options configures the logger behavior.
type Options struct {
	// Level sets the minimum log level. Defaults to LevelWarn so that a plain
	// wrap run prints nothing but its output.
	Level slog.Level
	// Output sets the output destination. Defaults to os.Stderr.
	Output io.Writer
	// JSON enables JSON output format.
	JSON bool
	// AddSource includes source file and line in log output.
	AddSource bool
}

// DefaultOptions returns options suitable for CLI usage.
func DefaultOptions() Options {
	return Options{
		Level:  LevelWarn,
		Output: os.Stderr,
	}
}

// New creates a new logger with the given options.
func New(opts Options) *slog.Logger {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     opts.Level,
		AddSource: opts.AddSource,
	}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(opts.Output, handlerOpts)
	} else {
		handler = slog.NewTextHandler(opts.Output, handlerOpts)
	}
	return slog.New(handler)
}

// Default returns the default logger, creating it on first use.
func Default() *slog.Logger {
	mu.RLock()
	l := defaultLogger
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if defaultLogger == nil {
		defaultLogger = New(DefaultOptions())
	}
	return defaultLogger
}

// SetDefault replaces the default logger and installs it as slog's default.
func SetDefault(logger *slog.Logger) {
	mu.Lock()
	defaultLogger = logger
	mu.Unlock()
	slog.SetDefault(logger)
}

// Debug logs at debug level using the default logger.
func Debug(msg string, args ...any) {
	Default().Debug(msg, args...)
}

// Info logs at info level using the default logger.
func Info(msg string, args ...any) {
	Default().Info(msg, args...)
}

// Warn logs at warn level using the default logger.
func Warn(msg string, args ...any) {
	Default().Warn(msg, args...)
}

// Error logs at error level using the default logger.
func Error(msg string, args ...any) {
	Default().Error(msg, args...)
}

// Common attribute keys.
const (
	KeyFont      = "font"
	KeyProfile   = "profile"
	KeyPath      = "path"
	KeyOperation = "operation"
	KeyWidth     = "max_width"
	KeyCount     = "count"
	KeyError     = "error"
)

// Font returns an attribute naming the font in use.
func Font(name string) slog.Attr {
	return slog.String(KeyFont, name)
}

// Profile returns an attribute naming the display profile in use.
func Profile(name string) slog.Attr {
	return slog.String(KeyProfile, name)
}

// Path returns an attribute for a file path.
func Path(p string) slog.Attr {
	return slog.String(KeyPath, p)
}

// Operation returns an attribute for the operation being performed.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Width returns an attribute for a pixel width limit.
func Width(px int) slog.Attr {
	return slog.Int(KeyWidth, px)
}

// Count returns an attribute for item counts.
func Count(n int) slog.Attr {
	return slog.Int(KeyCount, n)
}

// Err returns an attribute for an error. A nil error yields an empty
// attribute, which slog drops.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any(KeyError, err)
}
