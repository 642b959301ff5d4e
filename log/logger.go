package log

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dpotapov/slogpfx"
)

// Logger is a wrapper around a slog.logger, which keeps track of prefixes and raw keys,
// such that prefixes can be added in a hierarchical manner.
type Logger struct {
	*slog.Logger

	rawLogLevel string
	prefixes    []string
}

// Default logger is simply at INFO level.
func Default() *Logger {
	return NewLogger("info")
}

// Create a new logger without a prefix, writing to stderr.
func NewLogger(rawLogLevel string) *Logger {
	return NewLoggerWithPrefixes(rawLogLevel, []string{})
}

// Create a new logger with a set of prefixes.
func NewLoggerWithPrefixes(rawLogLevel string, prefixes []string) *Logger {
	return NewLoggerWithWriter(rawLogLevel, os.Stderr, prefixes)
}

// NewLoggerWithWriter creates a logger that writes text records to the given writer.
func NewLoggerWithWriter(rawLogLevel string, writer io.Writer, prefixes []string) *Logger {
	slogger := newSlogger(rawLogLevel, writer)
	return newLoggerWithSlogger(slogger, rawLogLevel, prefixes)
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *Logger {
	return NewLoggerWithWriter("error", io.Discard, []string{})
}

func newLoggerWithSlogger(slogger *slog.Logger, rawLogLevel string, prefixes []string) *Logger {
	// Set the prefix key to always be the prefix
	prefix := strings.Join(prefixes, "")
	prefixedSlogger := slogger.With(prefixKey, prefix)

	return &Logger{
		Logger:      prefixedSlogger,
		rawLogLevel: rawLogLevel,
		prefixes:    prefixes,
	}
}

// Add an additional prefix to the logger
func (l *Logger) ApplyPrefix(prefix string) *Logger {
	// Copy so sibling loggers never share a backing array
	prefixes := make([]string, 0, len(l.prefixes)+1)
	prefixes = append(prefixes, l.prefixes...)
	prefixes = append(prefixes, prefix)

	return newLoggerWithSlogger(l.Logger, l.rawLogLevel, prefixes)
}

// Add a value to the logger
func (l *Logger) With(args ...any) *Logger {
	slogger := l.Logger.With(args...)
	return &Logger{
		Logger:      slogger,
		rawLogLevel: l.rawLogLevel,
		prefixes:    l.prefixes,
	}
}

// Prefix key is the "magic" key that makes this all work. Any value sent to this key is a prefix,
// with the intermediate handlers.
const prefixKey = "_prefixKey"

func newSlogger(rawLogLevel string, writer io.Writer) *slog.Logger {
	// Unparseable levels fall back to INFO rather than failing logger construction.
	loggingLevel, err := ParseLogLevel(rawLogLevel)
	if err != nil {
		loggingLevel = slog.LevelInfo
	}
	lvl := new(slog.LevelVar)
	lvl.Set(loggingLevel)

	textHandler := slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: lvl,
	})

	// Custom prefix formatter. The default in slogpfx uses a '>' symbol.
	prefixFormatter := func(prefixes []slog.Value) string {
		p := make([]string, 0, len(prefixes))
		for _, prefix := range prefixes {
			if prefix.Any() == nil || prefix.String() == "" {
				continue // skip empty prefixes
			}
			p = append(p, prefix.String())
		}
		if len(p) == 0 {
			return ""
		}
		return strings.Join(p, "") + " "
	}

	prefixHandler := slogpfx.NewHandler(textHandler, &slogpfx.HandlerOptions{
		PrefixKeys:      []string{prefixKey},
		PrefixFormatter: prefixFormatter,
	})

	return slog.New(prefixHandler)
}
