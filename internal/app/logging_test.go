package app

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/dshills/richtext/internal/dispatcher"
	"github.com/dshills/richtext/internal/engine"
	"github.com/dshills/richtext/internal/engine/span"
)

var (
	_ engine.Logger     = (*Logger)(nil)
	_ span.Logger       = (*Logger)(nil)
	_ dispatcher.Logger = (*Logger)(nil)
)

func newBufferLogger(level LogLevel, prefix string) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{Level: level, Output: &buf, Prefix: prefix})
	l.sink.clock = func() time.Time {
		return time.Date(2024, 3, 9, 14, 5, 7, 123000000, time.UTC)
	}
	return l, &buf
}

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(-1), "UNKNOWN"},
		{LogLevel(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("LogLevel(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"Warning", LogLevelWarn},
		{"error", LogLevelError},
		{"verbose", LogLevelInfo},
		{"", LogLevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestLogger_Line(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		log    func(l *Logger)
		want   string
	}{
		{
			name:   "printf message",
			prefix: "richtext",
			log:    func(l *Logger) { l.Warn("dropped span %d", 7) },
			want:   "2024-03-09T14:05:07.123Z WARN richtext: dropped span 7\n",
		},
		{
			name: "no prefix",
			log:  func(l *Logger) { l.Error("boom") },
			want: "2024-03-09T14:05:07.123Z ERROR boom\n",
		},
		{
			name:   "literal percent without args",
			prefix: "richtext",
			log:    func(l *Logger) { l.Info("100% done") },
			want:   "2024-03-09T14:05:07.123Z INFO richtext: 100% done\n",
		},
		{
			name:   "fields sorted by key",
			prefix: "richtext",
			log: func(l *Logger) {
				l.WithComponent("engine").WithEditor("ed-1").WithField("at", 3).Debug("toggle bold")
			},
			want: "2024-03-09T14:05:07.123Z DEBUG richtext: toggle bold at=3 component=engine editor=ed-1\n",
		},
		{
			name: "field overwritten",
			log: func(l *Logger) {
				l.WithComponent("engine").WithComponent("span").Info("x")
			},
			want: "2024-03-09T14:05:07.123Z INFO x component=span\n",
		},
		{
			name: "quoted values",
			log: func(l *Logger) {
				l.WithField("text", "hello world").WithField("empty", "").Info("x")
			},
			want: "2024-03-09T14:05:07.123Z INFO x empty=\"\" text=\"hello world\"\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, buf := newBufferLogger(LogLevelDebug, tt.prefix)
			tt.log(l)
			if got := buf.String(); got != tt.want {
				t.Errorf("got  %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	l, buf := newBufferLogger(LogLevelWarn, "")
	l.Debug("debug")
	l.Info("info")
	l.Warn("warn")
	l.Error("error")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], " WARN warn") || !strings.Contains(lines[1], " ERROR error") {
		t.Errorf("unexpected lines: %q", lines)
	}
}

func TestLogger_DerivedSharesLevel(t *testing.T) {
	root, buf := newBufferLogger(LogLevelError, "")
	child := root.WithComponent("dispatcher")

	child.Info("hidden")
	root.SetLevel(LogLevelDebug)
	child.Debug("visible")

	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "visible") {
		t.Errorf("unexpected output %q", buf.String())
	}
	if child.Level() != LogLevelDebug {
		t.Errorf("child level = %s, want DEBUG", child.Level())
	}
}

func TestLogger_WithFieldDoesNotMutateParent(t *testing.T) {
	root, buf := newBufferLogger(LogLevelInfo, "")
	a := root.WithField("k", "a")
	_ = a.WithField("k", "b")
	_ = a.WithField("j", 1)

	root.Info("root")
	a.Info("child")

	want := "2024-03-09T14:05:07.123Z INFO root\n2024-03-09T14:05:07.123Z INFO child k=a\n"
	if got := buf.String(); got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestNewLogger_DefaultOutput(t *testing.T) {
	if l := NewLogger(LoggerConfig{}); l.sink.w == nil {
		t.Error("expected stderr as the default output")
	}
}
