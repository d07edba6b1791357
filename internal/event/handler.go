package event

import "context"

// Handler receives published events. The event is type-erased; use
// Typed to receive a concrete Event[T].
type Handler interface {
	Handle(ctx context.Context, event any) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, event any) error

func (f HandlerFunc) Handle(ctx context.Context, event any) error {
	return f(ctx, event)
}

// Typed wraps fn so it only sees events with a T payload. Other events
// are ignored.
func Typed[T any](fn func(ctx context.Context, e Event[T]) error) Handler {
	return HandlerFunc(func(ctx context.Context, event any) error {
		e, ok := event.(Event[T])
		if !ok {
			return nil
		}
		return fn(ctx, e)
	})
}

// PanicHandler is told about a recovered handler panic.
type PanicHandler func(event any, recovered any)

// ErrorHandler is told about an error returned by a handler.
type ErrorHandler func(event any, err error)
