package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"coffeebar-server-go/internal/platform/errors"
)

// Config captures logging configuration options.
type Config struct {
	Level    string
	Dir      string
	Filename string
}

// Logger wraps a slog.Logger plus the optional log file it writes to.
type Logger struct {
	slogger *slog.Logger
	file    *os.File
}

// New creates a Logger writing to stdout and, when Dir is set, to a log
// file under it as well.
func New(cfg Config) (*Logger, error) {
	var out io.Writer = os.Stdout
	var file *os.File

	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return nil, errors.Wrap(errors.KindBootstrap, "logging.new", "failed to create log dir", err)
		}
		name := cfg.Filename
		if name == "" {
			name = "server.log"
		}
		f, err := os.OpenFile(filepath.Join(cfg.Dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, errors.Wrap(errors.KindBootstrap, "logging.new", "failed to open log file", err)
		}
		file = f
		out = io.MultiWriter(os.Stdout, f)
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: parseLevel(cfg.Level)})
	return &Logger{slogger: slog.New(handler), file: file}, nil
}

// Slog exposes the structured logger.
func (l *Logger) Slog() *slog.Logger {
	return l.slogger
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
