package engine

import (
	"github.com/google/uuid"

	"github.com/dshills/richtext/internal/engine/delta"
)

// Logger is the logging surface the editor reports through.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Option configures an Editor during creation.
type Option func(*Editor)

// WithContent sets the initial plain text of the editor.
func WithContent(content string) Option {
	return func(e *Editor) {
		e.initContent = content
		e.initDelta = nil
	}
}

// WithDelta sets the initial content from a delta.
func WithDelta(d delta.Delta) Option {
	return func(e *Editor) {
		e.initDelta = &d
		e.initContent = ""
	}
}

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithObserver registers an observer.
func WithObserver(o Observer) Option {
	return func(e *Editor) {
		if o != nil {
			e.observers = append(e.observers, &observerEntry{o})
		}
	}
}

// WithReadOnly creates a read-only editor.
// Mutating commands return ErrReadOnly.
func WithReadOnly(readOnly bool) Option {
	return func(e *Editor) {
		e.readOnly = readOnly
	}
}

// WithPlaceholder sets the text shown while the document is empty.
func WithPlaceholder(placeholder string) Option {
	return func(e *Editor) {
		e.placeholder = placeholder
	}
}

// WithMarkdownShortcuts turns Markdown shortcuts on or off. They are on by default.
func WithMarkdownShortcuts(enabled bool) Option {
	return func(e *Editor) {
		e.markdownEnabled = enabled
	}
}

// WithStrictInvariants makes the editor panic on inconsistent span state
// instead of dropping the offending span.
func WithStrictInvariants(strict bool) Option {
	return func(e *Editor) {
		e.strict = strict
	}
}

// WithID sets the editor instance ID.
func WithID(id uuid.UUID) Option {
	return func(e *Editor) {
		e.id = id
	}
}
