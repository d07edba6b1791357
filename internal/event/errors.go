package event

import "errors"

var (
	ErrBusNotRunning     = errors.New("event bus is not running")
	ErrBusAlreadyRunning = errors.New("event bus is already running")

	// ErrQueueFull means an async subscriber missed the event.
	ErrQueueFull = errors.New("event queue is full")

	ErrInvalidEvent         = errors.New("invalid event")
	ErrInvalidTopic         = errors.New("invalid topic")
	ErrInvalidSubscription  = errors.New("invalid subscription")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrNilHandler           = errors.New("handler cannot be nil")
)
