package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/masq"
)

// Format is the output encoding of the logger.
type Format int

const (
	FormatConsole Format = iota
	FormatJSON
)

var (
	defaultLogger *slog.Logger
	defaultMutex  sync.RWMutex
)

func init() {
	defaultLogger = New(os.Stdout, slog.LevelInfo, FormatConsole, false)
}

// Default returns the process-wide logger.
func Default() *slog.Logger {
	defaultMutex.RLock()
	defer defaultMutex.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process-wide logger. It also updates the slog
// default so third-party code logs through the same handler.
func SetDefault(logger *slog.Logger) {
	defaultMutex.Lock()
	defer defaultMutex.Unlock()
	defaultLogger = logger
	slog.SetDefault(logger)
}

// New builds a logger writing to w. Console format uses a human-readable
// handler, JSON format emits one object per line. Fields tagged `masq:"secret"`
// are redacted in either format.
func New(w io.Writer, level slog.Level, format Format, enableStacktrace bool) *slog.Logger {
	filter := masq.New(masq.WithTag("secret"))

	switch format {
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource:   enableStacktrace,
			Level:       level,
			ReplaceAttr: filter,
		}))

	default:
		return slog.New(clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithReplaceAttr(filter),
			clog.WithSource(enableStacktrace),
			clog.WithTimeFmt("15:04:05.000"),
		))
	}
}

// ParseLevel converts a level name into a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, goerr.New("invalid log level", goerr.V("level", s))
	}
}

// ParseFormat converts a format name into a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "console":
		return FormatConsole, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatConsole, goerr.New("invalid log format", goerr.V("format", s))
	}
}

type ctxLoggerKey struct{}

// With embeds a logger into the context.
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, logger)
}

// From extracts the logger from the context, falling back to Default.
func From(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxLoggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return Default()
}
