package dispatcher

import (
	"fmt"
	"runtime/debug"
	"slices"
	"sync"
	"time"

	"github.com/dshills/richtext/internal/dispatcher/handler"
	"github.com/dshills/richtext/internal/engine"
)

// Logger is the logging surface of the dispatcher.
type Logger interface {
	Debug(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Error(string, ...any) {}

// Dispatcher turns host method calls into editor operations.
type Dispatcher struct {
	registry *Registry
	metrics  *Metrics
	recover  bool

	mu        sync.RWMutex
	editor    *engine.Editor
	logger    Logger
	preHooks  []PreDispatchHook
	postHooks []PostDispatchHook
}

// New returns a dispatcher with no commands registered. Handler panics are
// recovered into ErrPanic results unless WithoutRecovery is given.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: NewRegistry(),
		logger:   nopLogger{},
		recover:  true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SetEditor replaces the editor commands run against.
func (d *Dispatcher) SetEditor(ed *engine.Editor) {
	d.mu.Lock()
	d.editor = ed
	d.mu.Unlock()
}

// Editor returns the attached editor, or nil.
func (d *Dispatcher) Editor() *engine.Editor {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.editor
}

// Dispatch decodes args and runs the method name. Nil args mean no
// arguments.
func (d *Dispatcher) Dispatch(name string, args []byte) handler.Result {
	cmd, err := handler.NewCommand(name, args)
	if err != nil {
		return handler.Error(err)
	}
	return d.DispatchCommand(cmd)
}

// DispatchCommand runs an already decoded command through the hooks and
// its handler.
func (d *Dispatcher) DispatchCommand(cmd handler.Command) handler.Result {
	began := time.Now()

	d.mu.RLock()
	ed, logger := d.editor, d.logger
	pre, post := slices.Clone(d.preHooks), slices.Clone(d.postHooks)
	d.mu.RUnlock()

	for _, h := range pre {
		if !h.PreDispatch(&cmd) {
			return handler.CancelledWithMessage("cancelled by hook")
		}
	}

	res := d.run(cmd, ed, logger)

	for _, h := range post {
		h.PostDispatch(&cmd, &res)
	}
	if d.metrics != nil {
		d.metrics.Record(cmd.Name, time.Since(began), res)
	}
	logger.Debug("dispatched %s -> %s", cmd.Name, res.Status)
	return res
}

func (d *Dispatcher) run(cmd handler.Command, ed *engine.Editor, logger Logger) (res handler.Result) {
	h := d.registry.Lookup(cmd.Name)
	if h == nil {
		logger.Error("missing plugin method %s", cmd.Name)
		return handler.Error(fmt.Errorf("%s: %w", cmd.Name, ErrNoHandler))
	}
	if ed == nil {
		return handler.Error(fmt.Errorf("%s: %w", cmd.Name, ErrNoEditor))
	}
	if d.recover {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			logger.Error("handler panic for %s: %v\n%s", cmd.Name, r, debug.Stack())
			if d.metrics != nil {
				d.metrics.RecordPanic(cmd.Name)
			}
			res = handler.Error(fmt.Errorf("%s: %v: %w", cmd.Name, r, ErrPanic))
		}()
	}
	return h.Handle(cmd, ed)
}

// RegisterHandler adds h under the method name.
func (d *Dispatcher) RegisterHandler(name string, h handler.Handler) {
	d.registry.Register(name, h)
}

// RegisterHandlerFunc adds fn under the method name.
func (d *Dispatcher) RegisterHandlerFunc(name string, fn func(handler.Command, *engine.Editor) handler.Result) {
	d.registry.Register(name, handler.NewHandlerFunc(fn))
}

// UnregisterHandler removes every handler of the method name.
func (d *Dispatcher) UnregisterHandler(name string) {
	d.registry.Remove(name, nil)
}

// RegisterPreHook adds a hook run before every command.
func (d *Dispatcher) RegisterPreHook(hook PreDispatchHook) {
	d.mu.Lock()
	d.preHooks = append(d.preHooks, hook)
	d.mu.Unlock()
}

// RegisterPostHook adds a hook run after every command that was not
// cancelled.
func (d *Dispatcher) RegisterPostHook(hook PostDispatchHook) {
	d.mu.Lock()
	d.postHooks = append(d.postHooks, hook)
	d.mu.Unlock()
}

func (d *Dispatcher) Registry() *Registry { return d.registry }

// Metrics returns the collector, or nil without WithMetrics.
func (d *Dispatcher) Metrics() *Metrics { return d.metrics }
