package logger

import (
	"io"
	"log/slog"
	"strings"

	"github.com/go-chi/httplog/v3"
)

// Schema is the field naming shared by application and request logs.
var Schema = httplog.SchemaECS

// New builds a JSON logger with ECS field names. Outside production the
// concise form of the schema is used.
func New(w io.Writer, level, env, version string) *slog.Logger {
	format := Schema.Concise(env != "production")
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       ParseLevel(level),
		ReplaceAttr: format.ReplaceAttr,
	})).With(
		slog.String("app", "hris-salary-engine"),
		slog.String("version", version),
		slog.String("env", env),
	)
}

// ParseLevel falls back to info for unknown values.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
