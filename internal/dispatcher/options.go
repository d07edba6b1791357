package dispatcher

import "github.com/dshills/richtext/internal/engine"

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithEditor attaches the editor commands run against. It can also be set
// later with SetEditor.
func WithEditor(ed *engine.Editor) Option {
	return func(d *Dispatcher) { d.editor = ed }
}

// WithLogger routes dispatcher logging to l.
func WithLogger(l Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithMetrics turns on per-command counters, available from Metrics.
func WithMetrics() Option {
	return func(d *Dispatcher) { d.metrics = NewMetrics() }
}

// WithoutRecovery lets handler panics reach the caller. Useful in tests
// that want a stack trace at the failing handler.
func WithoutRecovery() Option {
	return func(d *Dispatcher) { d.recover = false }
}
