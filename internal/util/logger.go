// internal/util/logger.go
package util

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"expense-tracker/internal/config"
)

// Rotation limits used when the configuration leaves them unset.
const (
	DefaultLogMaxSizeMB  = 10
	DefaultLogMaxBackups = 5
)

var logger *slog.Logger

// InitLogger initializes the global structured logger from cfg.
// Logs go to cfg.File so the interactive console only shows user-facing
// output; "-" selects stderr. The file is rotated at cfg.MaxSizeMB keeping
// cfg.MaxBackups old files. The returned closer releases the log file.
func InitLogger(cfg config.LoggingConfig) (io.Closer, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var (
		out    io.Writer = os.Stderr
		closer io.Closer = io.NopCloser(nil)
	)
	if cfg.File != "" && cfg.File != "-" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		rotating := newRotatingWriter(cfg)
		out, closer = rotating, rotating
	}

	opts := &slog.HandlerOptions{
		AddSource: level == slog.LevelDebug,
		Level:     level,
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "", "json":
		handler = slog.NewJSONHandler(out, opts)
	case "console", "text":
		handler = slog.NewTextHandler(out, opts)
	default:
		_ = closer.Close()
		return nil, fmt.Errorf("invalid log format: %s", cfg.Format)
	}

	logger = slog.New(handler)
	slog.SetDefault(logger)
	return closer, nil
}

func newRotatingWriter(cfg config.LoggingConfig) *lumberjack.Logger {
	maxSize, maxBackups := cfg.MaxSizeMB, cfg.MaxBackups
	if maxSize <= 0 {
		maxSize = DefaultLogMaxSizeMB
	}
	if maxBackups <= 0 {
		maxBackups = DefaultLogMaxBackups
	}
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    maxSize, // megabytes
		MaxBackups: maxBackups,
	}
}

// ParseLevel maps a configured level name to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s", level)
	}
}

// GetLogger returns the initialized global logger, or the slog default when
// InitLogger has not run.
func GetLogger() *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
