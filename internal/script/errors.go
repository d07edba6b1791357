package script

import (
	"errors"
	"fmt"
)

// Errors returned by the runner.
var (
	// ErrClosed is returned when running a script on a closed runner.
	ErrClosed = errors.New("script runner is closed")

	// ErrTimeout is returned when a script exceeds its execution time.
	ErrTimeout = errors.New("script execution timeout")
)

// Error reports a failed script.
type Error struct {
	Script string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("script %s: %v", e.Script, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
