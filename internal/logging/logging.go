// Package logging builds the slog logger used by the command line tools.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jamesainslie/go-qna/internal/config"
)

// Cleanup releases the log file, if one was opened.
type Cleanup func() error

// New creates a logger writing to stderr and, when cfg.File is set, appending
// to that file as well. Every record carries the run_id of this process.
func New(cfg config.LoggingConfig) (*slog.Logger, Cleanup, error) {
	return newLogger(cfg, os.Stderr)
}

func newLogger(cfg config.LoggingConfig, console io.Writer) (*slog.Logger, Cleanup, error) {
	handlerOptions := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	}

	writers := []io.Writer{console}
	var file *os.File
	if cfg.File != "" {
		dir := filepath.Dir(cfg.File)
		if dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, err
			}
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		file = f
		writers = append(writers, file)
	}

	multi := io.MultiWriter(writers...)
	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(multi, handlerOptions)
	default:
		handler = slog.NewTextHandler(multi, handlerOptions)
	}

	logger := slog.New(handler).With("run_id", uuid.NewString())
	cleanup := func() error {
		if file != nil {
			return file.Close()
		}
		return nil
	}
	return logger, cleanup, nil
}

func parseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
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
