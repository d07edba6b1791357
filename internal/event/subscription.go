package event

import "sync/atomic"

// Priority orders sync handlers of one event; lower runs first.
type Priority int

const (
	// PriorityCritical handlers see the editor before anyone else, e.g. a
	// renderer invalidating its layout.
	PriorityCritical Priority = -100

	// PriorityHigh is used by host bridges forwarding events out of process.
	PriorityHigh Priority = -10

	PriorityNormal Priority = 0

	// PriorityLow handlers only observe, e.g. the debug event log.
	PriorityLow Priority = 100
)

// Subscription is the handle returned by Subscribe.
type Subscription interface {
	ID() string
	Pattern() Topic

	// Active reports whether the subscription can still receive events.
	Active() bool

	// Cancel stops delivery. Prefer Bus.Unsubscribe, which also drops the
	// subscription from the bus.
	Cancel()
}

// SubscriptionOption configures a subscription.
type SubscriptionOption func(*subscription)

// WithPriority sets the order among sync handlers.
func WithPriority(p Priority) SubscriptionOption {
	return func(s *subscription) { s.priority = p }
}

// WithAsync delivers events from the bus worker instead of the
// publishing goroutine. Async handlers may observe the editor after later
// edits.
func WithAsync() SubscriptionOption {
	return func(s *subscription) { s.async = true }
}

// WithOnce cancels the subscription after its first delivery.
func WithOnce() SubscriptionOption {
	return func(s *subscription) { s.once = true }
}

// WithFilter drops events for which keep returns false.
func WithFilter(keep func(event any) bool) SubscriptionOption {
	return func(s *subscription) { s.filter = keep }
}

// WithSource only delivers events published by the given editor.
func WithSource(source string) SubscriptionOption {
	return func(s *subscription) { s.source = source }
}

type subscription struct {
	id      string
	pattern Topic
	handler Handler

	priority Priority
	async    bool
	once     bool
	filter   func(any) bool
	source   string

	cancelled atomic.Bool
}

func newSubscription(id string, pattern Topic, h Handler, opts []SubscriptionOption) *subscription {
	s := &subscription{id: id, pattern: pattern, handler: h}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *subscription) ID() string     { return s.id }
func (s *subscription) Pattern() Topic { return s.pattern }
func (s *subscription) Active() bool   { return !s.cancelled.Load() }
func (s *subscription) Cancel()        { s.cancelled.Store(true) }

// claim reports whether the subscription may handle one more event. A
// once subscription is claimed by exactly one caller.
func (s *subscription) claim() bool {
	if s.once {
		return s.cancelled.CompareAndSwap(false, true)
	}
	return s.Active()
}

// wants reports whether event, published under t, is for this subscription.
func (s *subscription) wants(t Topic, event any) bool {
	if !s.Active() || !t.Matches(s.pattern) {
		return false
	}
	if s.source != "" {
		mp, ok := event.(MetadataProvider)
		if !ok || mp.EventMetadata().Source != s.source {
			return false
		}
	}
	return s.filter == nil || s.filter(event)
}
