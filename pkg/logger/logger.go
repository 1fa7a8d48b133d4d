package logger

import (
	"io"
	"log/slog"
	"os"
	"time"
)

// Config controls how log records are formatted and filtered.
type Config struct {
	// Level is the minimum level to log: debug, info, warn or error.
	Level string
	// JSON switches the handler to JSON output (the production default).
	JSON bool
	// Output is where records are written; defaults to os.Stderr.
	Output io.Writer
	// AddSource includes the source position of the log call.
	AddSource bool
}

// DefaultConfig returns the configuration used when nothing is specified.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		JSON:   true,
		Output: os.Stderr,
	}
}

// Logger is a thin wrapper around slog that carries request-scoped fields.
type Logger struct {
	*slog.Logger
	config Config
}

var global *Logger

// New builds a logger from the given configuration. The first logger built
// becomes the global fallback.
func New(config Config) *Logger {
	if config.Output == nil {
		config.Output = os.Stderr
	}

	var level slog.Level
	switch config.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level, AddSource: config.AddSource}

	var handler slog.Handler
	if config.JSON {
		handler = slog.NewJSONHandler(config.Output, opts)
	} else {
		handler = slog.NewTextHandler(config.Output, opts)
	}

	l := &Logger{Logger: slog.New(handler), config: config}
	if global == nil {
		global = l
	}
	return l
}

// SetGlobal replaces the global logger instance.
func SetGlobal(l *Logger) {
	global = l
}

// GetGlobal returns the global logger, building a default one if needed.
func GetGlobal() *Logger {
	if global == nil {
		global = New(DefaultConfig())
	}
	return global
}

// LogError logs an error together with a message and extra fields.
func (l *Logger) LogError(err error, msg string, args ...any) {
	l.Error(msg, append([]any{"error", err.Error()}, args...)...)
}

// WithRequestID returns a logger that tags every record with the request ID.
func (l *Logger) WithRequestID(requestID string) *Logger {
	if requestID == "" {
		return l
	}
	return &Logger{Logger: l.With("request_id", requestID), config: l.config}
}

// WithAccountID returns a logger that tags every record with the caller's
// account ID.
func (l *Logger) WithAccountID(accountID uint) *Logger {
	if accountID == 0 {
		return l
	}
	return &Logger{Logger: l.With("account_id", accountID), config: l.config}
}

// LogRequest emits the per-request completion record.
func (l *Logger) LogRequest(method, path string, status int, latency time.Duration) {
	l.Info("request completed",
		"method", method,
		"path", path,
		"status", status,
		"latency_ms", latency.Milliseconds(),
	)
}
