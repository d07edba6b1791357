package dispatcher

import (
	"errors"

	"github.com/dshills/richtext/internal/dispatcher/handler"
)

// Dispatcher errors.
var (
	// ErrNoHandler indicates no handler was found for a command.
	ErrNoHandler = errors.New("missing plugin method")

	// ErrInvalidArgs indicates missing or mistyped command arguments.
	ErrInvalidArgs = handler.ErrInvalidArgs

	// ErrNoEditor indicates a command was dispatched before SetEditor.
	ErrNoEditor = errors.New("dispatcher: no editor attached")

	// ErrPanic indicates the handler panicked.
	ErrPanic = errors.New("dispatcher: handler panic")

	// ErrNotSupported indicates a recognized command the editor does not implement.
	ErrNotSupported = errors.New("not supported")
)
