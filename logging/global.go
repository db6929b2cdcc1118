// Package logging provides the process-wide slog logger: text output on the
// console, JSON into a weekly rotating file, and an HTTP request middleware.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/giygas/clinpharm-api/config"
)

type LoggingService struct {
	Logger *slog.Logger
	file   *RotatingLogger
}

// Close releases the rotating log file, if any
func (s *LoggingService) Close() error {
	if s == nil || s.file == nil {
		return nil
	}
	return s.file.Close()
}

var DefaultLoggingService *LoggingService

// Options configure InitLogger
type Options struct {
	LogDir         string
	Env            config.Environment
	Level          string
	RetentionWeeks int
	MaxFileSize    int64
	Verbose        bool
}

// InitLogger initializes the global logger instance. An empty LogDir logs to
// the console only.
func InitLogger(opts Options) *LoggingService {
	consoleHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: GetConsoleLogLevel(opts.Env, opts.Level, opts.Verbose),
	})

	service := &LoggingService{}
	handlers := []slog.Handler{consoleHandler}

	if opts.LogDir != "" {
		retention := opts.RetentionWeeks
		if retention <= 0 {
			retention = 4
		}
		rl, err := OpenRotatingLogger(opts.LogDir, retention, opts.MaxFileSize)
		if err != nil {
			slog.New(consoleHandler).Error("Failed to open log file, logging to console only", "error", err)
		} else {
			service.file = rl
			handlers = append(handlers, slog.NewJSONHandler(rl, &slog.HandlerOptions{
				Level: GetFileLogLevel(),
			}))
		}
	}

	if len(handlers) == 1 {
		service.Logger = slog.New(consoleHandler)
	} else {
		service.Logger = slog.New(&multiHandler{handlers: handlers})
	}

	DefaultLoggingService = service
	slog.SetDefault(service.Logger)
	return service
}

// NewDiscardLogger returns a logger that drops everything; used in tests
func NewDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// parseLogLevel maps a LOG_LEVEL string to a slog level, defaulting to info
func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// GetConsoleLogLevel picks the console level. An explicit LOG_LEVEL wins,
// except under test where output stays quiet unless verbose.
func GetConsoleLogLevel(env config.Environment, level string, verbose bool) slog.Level {
	if env == config.EnvTest {
		if verbose {
			return slog.LevelInfo
		}
		return slog.LevelError
	}

	if level != "" {
		return parseLogLevel(level)
	}

	switch env {
	case config.EnvProduction, config.EnvStaging:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// GetFileLogLevel returns the file handler level; the file keeps everything
func GetFileLogLevel() slog.Level {
	return slog.LevelDebug
}

// Logger returns the global logger, or slog's default before InitLogger
func Logger() *slog.Logger {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		return slog.Default()
	}
	return DefaultLoggingService.Logger
}

// Package-level functions for direct access

func Info(msg string, args ...any) {
	Logger().Info(msg, args...)
}

func Error(msg string, args ...any) {
	Logger().Error(msg, args...)
}

func Warn(msg string, args ...any) {
	Logger().Warn(msg, args...)
}

func Debug(msg string, args ...any) {
	Logger().Debug(msg, args...)
}
