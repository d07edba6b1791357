package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/richtext/internal/dispatcher/handler"
)

// DefaultTimeout bounds a single script run.
const DefaultTimeout = 5 * time.Second

// Host executes editor commands. *dispatcher.Dispatcher and
// *app.Application implement it.
type Host interface {
	Dispatch(name string, args []byte) handler.Result
}

// Logger receives run diagnostics.
type Logger interface {
	Debug(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}

// Runner executes Lua scripts against a host. Globals persist between
// runs. A Runner is safe for concurrent use; runs are serialized.
type Runner struct {
	mu sync.Mutex

	L       *lua.LState
	host    Host
	timeout time.Duration
	output  io.Writer
	logger  Logger

	// Last command failure raised into Lua.
	cmdErr error

	closed bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithTimeout sets the maximum duration of one run. Zero disables the
// limit.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithOutput redirects print. The default is standard output.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.output = w
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRunner creates a sandboxed runner bound to host.
func NewRunner(host Host, opts ...Option) *Runner {
	r := &Runner{
		host:    host,
		timeout: DefaultTimeout,
		output:  os.Stdout,
		logger:  nopLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}

	r.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(r.L)
	r.installSandbox()
	r.registerEditor()
	return r
}

// openSafeLibraries opens the libraries without file, process or module
// loading access.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

func (r *Runner) installSandbox() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		r.L.SetGlobal(name, lua.LNil)
	}
	r.L.SetGlobal("print", r.L.NewFunction(r.print))
}

// print writes its arguments tab separated, like the stock print.
func (r *Runner) print(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, n)
	for i := 1; i <= n; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	fmt.Fprintln(r.output, strings.Join(parts, "\t"))
	return 0
}

// Run executes Lua source. name identifies the script in errors.
func (r *Runner) Run(ctx context.Context, name, source string) error {
	return r.exec(ctx, name, func(L *lua.LState) error {
		fn, err := L.LoadString(source)
		if err != nil {
			return err
		}
		L.Push(fn)
		return L.PCall(0, lua.MultRet, nil)
	})
}

// RunFile executes a Lua file.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Error{Script: path, Err: err}
	}
	return r.Run(ctx, path, string(data))
}

func (r *Runner) exec(ctx context.Context, name string, fn func(*lua.LState) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	r.L.SetContext(ctx)
	defer r.L.RemoveContext()

	r.cmdErr = nil
	top := r.L.GetTop()
	start := time.Now()

	err := doWithRecovery(func() error { return fn(r.L) })
	r.L.SetTop(top)

	if err != nil {
		r.logger.Debug("script %s failed after %s: %v", name, time.Since(start), err)
		return &Error{Script: name, Err: r.classify(ctx, err)}
	}
	r.logger.Debug("script %s finished in %s", name, time.Since(start))
	return nil
}

// classify attaches the cause of a Lua failure when one is known.
func (r *Runner) classify(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %v", ctx.Err(), err)
	}
	if r.cmdErr != nil && strings.Contains(err.Error(), r.cmdErr.Error()) {
		return fmt.Errorf("%v: %w", err, r.cmdErr)
	}
	return err
}

func doWithRecovery(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("lua panic: %v", rec)
		}
	}()
	return fn()
}

// Global returns a global variable converted to a Go value.
func (r *Runner) Global(name string) any {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	return fromLua(r.L.GetGlobal(name))
}

// Close releases the Lua state. Close is idempotent.
func (r *Runner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.L.Close()
	r.closed = true
}
