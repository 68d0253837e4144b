package utils

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog.Logger with jesse's field helpers
type Logger struct {
	zerolog.Logger
}

// LoggerOptions configures NewLogger
type LoggerOptions struct {
	Level string
	// Format is "pretty" for a console writer, anything else writes JSON lines
	Format string
	// Output defaults to stderr so reports on stdout stay clean
	Output  io.Writer
	Verbose bool
}

// NewLogger creates a logger from opts. Verbose forces the debug level.
func NewLogger(opts LoggerOptions) *Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	if strings.EqualFold(opts.Format, "pretty") {
		_, noColor := os.LookupEnv("NO_COLOR")
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.TimeOnly,
			NoColor:    noColor,
		}
	}

	level := parseLogLevel(opts.Level)
	if opts.Verbose {
		level = zerolog.DebugLevel
	}

	return &Logger{Logger: zerolog.New(out).Level(level).With().Timestamp().Logger()}
}

// NewDefaultLogger creates an info level console logger on stderr
func NewDefaultLogger() *Logger {
	return NewLogger(LoggerOptions{Level: "info", Format: "pretty"})
}

// NewNopLogger creates a logger that discards everything
func NewNopLogger() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// parseLogLevel maps a config level to zerolog, defaulting to info
func parseLogLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func (l *Logger) with(key, value string) *Logger {
	return &Logger{Logger: l.Logger.With().Str(key, value).Logger()}
}

// WithComponent tags entries with the emitting package
func (l *Logger) WithComponent(component string) *Logger {
	return l.with("component", component)
}

// WithSource tags entries with a redacted fetch source
func (l *Logger) WithSource(source string) *Logger {
	return l.with("source", source)
}

// WithScanID tags entries with a scan UID
func (l *Logger) WithScanID(uid string) *Logger {
	return l.with("scan_uid", uid)
}

// OrNop returns l, or a discarding logger when l is nil
func (l *Logger) OrNop() *Logger {
	if l == nil {
		return NewNopLogger()
	}
	return l
}
