// Package handler provides the handler interface, command arguments and
// result types for host command dispatch.
package handler

import (
	"errors"

	"github.com/dshills/richtext/internal/engine"
)

// Handler executes one host method against an editor.
type Handler interface {
	Handle(cmd Command, ed *engine.Editor) Result

	// CanHandle lets a handler registered under a name decline it.
	CanHandle(name string) bool

	// Priority orders handlers of the same name; higher wins.
	Priority() int
}

var errNilFunc = errors.New("handler function is nil")

// HandlerFunc is a Handler accepting whatever name it is registered under.
type HandlerFunc struct {
	fn   func(cmd Command, ed *engine.Editor) Result
	prio int
}

func NewHandlerFunc(fn func(cmd Command, ed *engine.Editor) Result) *HandlerFunc {
	return &HandlerFunc{fn: fn}
}

// NewHandlerFuncWithPriority is NewHandlerFunc for handlers overriding a
// built-in method.
func NewHandlerFuncWithPriority(fn func(cmd Command, ed *engine.Editor) Result, priority int) *HandlerFunc {
	return &HandlerFunc{fn: fn, prio: priority}
}

func (f *HandlerFunc) Handle(cmd Command, ed *engine.Editor) Result { return call(f.fn, cmd, ed) }
func (f *HandlerFunc) CanHandle(string) bool                        { return true }
func (f *HandlerFunc) Priority() int                                { return f.prio }

// SimpleHandler only accepts the method Name. The built-in editor commands
// are registered this way.
type SimpleHandler struct {
	Name string
	Fn   func(cmd Command, ed *engine.Editor) Result
	Prio int
}

func (h *SimpleHandler) Handle(cmd Command, ed *engine.Editor) Result { return call(h.Fn, cmd, ed) }
func (h *SimpleHandler) CanHandle(name string) bool                    { return name == h.Name }
func (h *SimpleHandler) Priority() int                                 { return h.Prio }

func call(fn func(Command, *engine.Editor) Result, cmd Command, ed *engine.Editor) Result {
	if fn == nil {
		return Error(errNilFunc)
	}
	return fn(cmd, ed)
}
