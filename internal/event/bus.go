package event

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Bus is the event bus interface.
type Bus interface {
	// Publishing
	Publish(ctx context.Context, event any) error
	PublishSync(ctx context.Context, event any) error
	PublishAsync(ctx context.Context, event any) error

	// Subscription
	Subscribe(pattern Topic, handler Handler, opts ...SubscriptionOption) (Subscription, error)
	SubscribeFunc(pattern Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error)
	Unsubscribe(sub Subscription) error

	// Lifecycle
	Start() error
	Stop(ctx context.Context) error
	Pause()
	Resume()

	// Status
	Stats() Stats
	IsRunning() bool
	IsPaused() bool
}

// BusOption configures a bus.
type BusOption func(*busConfig)

type busConfig struct {
	queueSize    int
	panicHandler PanicHandler
	errorHandler ErrorHandler
}

// WithQueueSize sets the async queue capacity.
func WithQueueSize(n int) BusOption {
	return func(c *busConfig) {
		if n > 0 {
			c.queueSize = n
		}
	}
}

// WithPanicHandler sets the function told about handler panics.
func WithPanicHandler(h PanicHandler) BusOption {
	return func(c *busConfig) {
		c.panicHandler = h
	}
}

// WithErrorHandler sets the function told about handler errors.
func WithErrorHandler(h ErrorHandler) BusOption {
	return func(c *busConfig) {
		c.errorHandler = h
	}
}

type queued struct {
	ctx   context.Context
	event any
	sub   *subscription
}

// bus is the default Bus implementation.
type bus struct {
	mu   sync.RWMutex
	subs []*subscription

	queue chan queued
	done  chan struct{}

	running atomic.Bool
	paused  atomic.Bool
	config  busConfig

	published atomic.Uint64
	delivered atomic.Uint64
	dropped   atomic.Uint64
	failed    atomic.Uint64
	panics    atomic.Uint64
}

// NewBus creates a new event bus with the given options.
func NewBus(opts ...BusOption) Bus {
	config := busConfig{queueSize: 1024}
	for _, opt := range opts {
		opt(&config)
	}
	return &bus{config: config}
}

// Start starts the async worker.
func (b *bus) Start() error {
	if b.running.Swap(true) {
		return ErrBusAlreadyRunning
	}
	b.queue = make(chan queued, b.config.queueSize)
	b.done = make(chan struct{})
	go b.worker(b.queue, b.done)
	return nil
}

// Stop stops the bus, waiting for queued events until ctx is done.
func (b *bus) Stop(ctx context.Context) error {
	if !b.running.Swap(false) {
		return ErrBusNotRunning
	}
	b.mu.Lock()
	close(b.queue)
	b.mu.Unlock()
	select {
	case <-b.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pause drops published events until Resume.
func (b *bus) Pause() { b.paused.Store(true) }

// Resume restarts delivery after a pause.
func (b *bus) Resume() { b.paused.Store(false) }

// IsRunning reports whether the bus is running.
func (b *bus) IsRunning() bool { return b.running.Load() }

// IsPaused reports whether the bus is paused.
func (b *bus) IsPaused() bool { return b.paused.Load() }

// Publish delivers to sync subscribers and queues for async ones.
func (b *bus) Publish(ctx context.Context, event any) error {
	t, err := b.check(event)
	if err != nil || t == "" {
		return err
	}
	b.published.Add(1)
	b.publishSync(ctx, t, event)
	return b.publishAsync(ctx, t, event)
}

// PublishSync delivers an event to sync subscribers in priority order.
// The call blocks until every handler returns.
func (b *bus) PublishSync(ctx context.Context, event any) error {
	t, err := b.check(event)
	if err != nil || t == "" {
		return err
	}
	b.published.Add(1)
	b.publishSync(ctx, t, event)
	return nil
}

// PublishAsync queues an event for async subscribers.
func (b *bus) PublishAsync(ctx context.Context, event any) error {
	t, err := b.check(event)
	if err != nil || t == "" {
		return err
	}
	b.published.Add(1)
	return b.publishAsync(ctx, t, event)
}

// check returns the event's topic, or "" when the bus is paused.
func (b *bus) check(event any) (Topic, error) {
	if !b.running.Load() {
		return "", ErrBusNotRunning
	}
	if b.paused.Load() {
		return "", nil
	}
	tp, ok := event.(TopicProvider)
	if !ok || !tp.EventTopic().IsValid() || tp.EventTopic().IsPattern() {
		return "", ErrInvalidEvent
	}
	return tp.EventTopic(), nil
}

func (b *bus) publishSync(ctx context.Context, t Topic, event any) {
	for _, sub := range b.match(t, event, false) {
		b.deliver(ctx, event, sub)
	}
}

func (b *bus) publishAsync(ctx context.Context, t Topic, event any) error {
	subs := b.match(t, event, true)
	if len(subs) == 0 {
		return nil
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.running.Load() {
		return ErrBusNotRunning
	}
	var err error
	for _, sub := range subs {
		select {
		case b.queue <- queued{ctx: ctx, event: event, sub: sub}:
		default:
			b.dropped.Add(1)
			err = ErrQueueFull
		}
	}
	return err
}

// match returns the sync or async subscriptions wanting event, in
// priority order.
func (b *bus) match(t Topic, event any, async bool) []*subscription {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var out []*subscription
	for _, sub := range b.subs {
		if sub.async == async && sub.wants(t, event) {
			out = append(out, sub)
		}
	}
	return out
}

func (b *bus) worker(queue <-chan queued, done chan<- struct{}) {
	defer close(done)
	for q := range queue {
		b.deliver(q.ctx, q.event, q.sub)
	}
}

// deliver runs one handler with panic isolation.
func (b *bus) deliver(ctx context.Context, event any, sub *subscription) {
	if !sub.claim() {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			b.panics.Add(1)
			if b.config.panicHandler != nil {
				b.config.panicHandler(event, r)
			}
		}
		if sub.once {
			b.remove(sub.id)
		}
	}()

	if err := sub.handler.Handle(ctx, event); err != nil {
		b.failed.Add(1)
		if b.config.errorHandler != nil {
			b.config.errorHandler(event, err)
		}
		return
	}
	b.delivered.Add(1)
}

// Subscribe registers handler for topics matching pattern.
func (b *bus) Subscribe(pattern Topic, handler Handler, opts ...SubscriptionOption) (Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if !pattern.IsValid() {
		return nil, ErrInvalidTopic
	}

	sub := newSubscription(uuid.NewString(), pattern, handler, opts)
	b.mu.Lock()
	b.subs = append(b.subs, sub)
	sort.SliceStable(b.subs, func(i, j int) bool {
		return b.subs[i].priority < b.subs[j].priority
	})
	b.mu.Unlock()
	return sub, nil
}

// SubscribeFunc subscribes a function handler.
func (b *bus) SubscribeFunc(pattern Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	return b.Subscribe(pattern, fn, opts...)
}

// Unsubscribe cancels and removes a subscription.
func (b *bus) Unsubscribe(sub Subscription) error {
	if sub == nil {
		return ErrInvalidSubscription
	}
	sub.Cancel()
	if !b.remove(sub.ID()) {
		return ErrSubscriptionNotFound
	}
	return nil
}

func (b *bus) remove(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Stats is a snapshot of bus counters.
type Stats struct {
	EventsPublished   uint64
	EventsDelivered   uint64
	EventsDropped     uint64
	HandlerErrors     uint64
	HandlerPanics     uint64
	ActiveSubscribers int
	QueueDepth        int
}

// Stats returns current bus statistics.
func (b *bus) Stats() Stats {
	b.mu.RLock()
	active := 0
	for _, s := range b.subs {
		if s.Active() {
			active++
		}
	}
	depth := len(b.queue)
	b.mu.RUnlock()

	return Stats{
		EventsPublished:   b.published.Load(),
		EventsDelivered:   b.delivered.Load(),
		EventsDropped:     b.dropped.Load(),
		HandlerErrors:     b.failed.Load(),
		HandlerPanics:     b.panics.Load(),
		ActiveSubscribers: active,
		QueueDepth:        depth,
	}
}
