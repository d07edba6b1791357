package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrClosed indicates the application was already shut down.
	ErrClosed = errors.New("application closed")

	// ErrInitialization indicates an initialization failure.
	ErrInitialization = errors.New("initialization failed")

	// ErrCommandFailed indicates a dispatched command returned an error result.
	ErrCommandFailed = errors.New("command failed")
)

// InitError reports which component failed to start.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("init %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// Is matches ErrInitialization as well as the wrapped error.
func (e *InitError) Is(target error) bool {
	return target == ErrInitialization
}

// CommandError describes a dispatched command that did not succeed.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Is matches ErrCommandFailed as well as the wrapped error.
func (e *CommandError) Is(target error) bool {
	return target == ErrCommandFailed
}
