// Package logger sets up the process-wide slog logger from LOG_LEVEL,
// LOG_FORMAT and LOG_FILE. The terminal owns stdout and stderr while the
// viewer runs, so logs go to LOG_FILE or nowhere.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var (
	defaultLogger *slog.Logger
	logFile       *os.File
)

// Setup builds the default logger. A LOG_FILE that cannot be opened falls
// back to discarding output and is reported as the returned error.
func Setup() (*slog.Logger, error) {
	lvl := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}

	var w io.Writer = io.Discard
	var openErr error
	if path := os.Getenv("LOG_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			openErr = err
		} else {
			Close()
			logFile = f
			w = f
		}
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var h slog.Handler
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	defaultLogger = slog.New(h)
	slog.SetDefault(defaultLogger)
	return defaultLogger, openErr
}

// L returns the default logger, setting it up on first use.
func L() *slog.Logger {
	if defaultLogger == nil {
		l, _ := Setup()
		return l
	}
	return defaultLogger
}

// Close closes the log file, if any.
func Close() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}
