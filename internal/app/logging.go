package app

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// LogLevel is the severity of a log line.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l LogLevel) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLogLevel maps a log.level setting to a LogLevel. It is case
// insensitive, accepts "warning" and falls back to info.
func ParseLogLevel(s string) LogLevel {
	s = strings.ToUpper(s)
	if s == "WARNING" {
		return LogLevelWarn
	}
	if i := slices.Index(levelNames[:], s); i >= 0 {
		return LogLevel(i)
	}
	return LogLevelInfo
}

// LoggerConfig configures NewLogger.
type LoggerConfig struct {
	Level LogLevel

	// Output defaults to os.Stderr.
	Output io.Writer

	// Prefix names the process, e.g. "richtext".
	Prefix string
}

// sink is shared by a logger and everything derived from it, so SetLevel
// on the root reaches the engine and dispatcher loggers too.
type sink struct {
	mu    sync.Mutex
	level LogLevel
	w     io.Writer
	clock func() time.Time
}

type field struct {
	key   string
	value any
}

// Logger writes one line per message:
//
//	2024-03-09T14:05:07.123Z WARN richtext: dropped span 7 component=engine editor=5f0c...
//
// Messages are printf-style. Fields are appended sorted by key. It
// satisfies the engine, span and dispatcher logging interfaces.
type Logger struct {
	sink   *sink
	prefix string
	fields []field
}

// NewLogger creates a root logger.
func NewLogger(cfg LoggerConfig) *Logger {
	w := cfg.Output
	if w == nil {
		w = os.Stderr
	}
	return &Logger{
		sink:   &sink{level: cfg.Level, w: w, clock: time.Now},
		prefix: cfg.Prefix,
	}
}

// WithField returns a logger adding key=value to every line. A key already
// present is overwritten.
func (l *Logger) WithField(key string, value any) *Logger {
	fields := slices.Clone(l.fields)
	i, found := slices.BinarySearchFunc(fields, key, func(f field, k string) int {
		return strings.Compare(f.key, k)
	})
	if found {
		fields[i].value = value
	} else {
		fields = slices.Insert(fields, i, field{key, value})
	}
	return &Logger{sink: l.sink, prefix: l.prefix, fields: fields}
}

// WithComponent tags lines with the subsystem writing them.
func (l *Logger) WithComponent(name string) *Logger {
	return l.WithField("component", name)
}

// WithEditor tags lines with the editor they concern.
func (l *Logger) WithEditor(id string) *Logger {
	return l.WithField("editor", id)
}

func (l *Logger) Level() LogLevel {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	return l.sink.level
}

// SetLevel changes the threshold of this logger and every logger sharing
// its root.
func (l *Logger) SetLevel(level LogLevel) {
	l.sink.mu.Lock()
	l.sink.level = level
	l.sink.mu.Unlock()
}

func (l *Logger) Debug(msg string, args ...any) { l.write(LogLevelDebug, msg, args) }
func (l *Logger) Info(msg string, args ...any)  { l.write(LogLevelInfo, msg, args) }
func (l *Logger) Warn(msg string, args ...any)  { l.write(LogLevelWarn, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.write(LogLevelError, msg, args) }

func (l *Logger) write(level LogLevel, msg string, args []any) {
	s := l.sink
	s.mu.Lock()
	defer s.mu.Unlock()
	if level < s.level {
		return
	}

	var b strings.Builder
	b.WriteString(s.clock().UTC().Format("2006-01-02T15:04:05.000Z"))
	b.WriteByte(' ')
	b.WriteString(level.String())
	b.WriteByte(' ')
	if l.prefix != "" {
		b.WriteString(l.prefix)
		b.WriteString(": ")
	}
	if len(args) > 0 {
		fmt.Fprintf(&b, msg, args...)
	} else {
		b.WriteString(msg)
	}
	for _, f := range l.fields {
		b.WriteByte(' ')
		b.WriteString(f.key)
		b.WriteByte('=')
		b.WriteString(fieldValue(f.value))
	}
	b.WriteByte('\n')

	_, _ = io.WriteString(s.w, b.String())
}

// fieldValue quotes values that would break key=value parsing.
func fieldValue(v any) string {
	s := fmt.Sprint(v)
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}
