package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func startBus(t *testing.T, opts ...BusOption) Bus {
	t.Helper()
	bus := NewBus(opts...)
	if err := bus.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	t.Cleanup(func() {
		if bus.IsRunning() {
			bus.Stop(context.Background())
		}
	})
	return bus
}

func TestBus_StartStop(t *testing.T) {
	bus := NewBus()
	if err := bus.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if err := bus.Start(); err != ErrBusAlreadyRunning {
		t.Errorf("expected ErrBusAlreadyRunning, got %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := bus.Stop(ctx); err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}
	if err := bus.Stop(ctx); err != ErrBusNotRunning {
		t.Errorf("expected ErrBusNotRunning, got %v", err)
	}
	if err := bus.Publish(ctx, NewEvent(TopicTextChanged, 1, "test")); err != ErrBusNotRunning {
		t.Errorf("expected ErrBusNotRunning, got %v", err)
	}
}

func TestBus_SyncPriorityOrder(t *testing.T) {
	bus := startBus(t)
	var order []string
	record := func(name string) HandlerFunc {
		return func(context.Context, any) error {
			order = append(order, name)
			return nil
		}
	}
	bus.SubscribeFunc("editor.**", record("low"), WithPriority(PriorityLow))
	bus.SubscribeFunc("editor.text.*", record("critical"), WithPriority(PriorityCritical))
	bus.SubscribeFunc("editor.text.changed", record("normal"))
	bus.SubscribeFunc("editor.selection.*", record("other"))

	if err := bus.PublishSync(context.Background(), NewEvent(TopicTextChanged, "x", "test")); err != nil {
		t.Fatalf("PublishSync() failed: %v", err)
	}
	want := []string{"critical", "normal", "low"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestBus_TypedHandler(t *testing.T) {
	bus := startBus(t)
	var got string
	bus.Subscribe(TopicTextChanged, Typed(func(_ context.Context, e Event[TextChangePayload]) error {
		got = e.Payload.NewText
		return nil
	}))
	bus.PublishSync(context.Background(), NewEvent(TopicTextChanged, TextChangePayload{NewText: "hi"}, "test"))
	bus.PublishSync(context.Background(), NewEvent(TopicTextChanged, 42, "test"))
	if got != "hi" {
		t.Errorf("typed handler got %q", got)
	}
}

func TestBus_PanicIsolation(t *testing.T) {
	var recovered any
	bus := startBus(t, WithPanicHandler(func(_ any, r any) { recovered = r }))
	called := false
	bus.SubscribeFunc("editor.**", func(context.Context, any) error { panic("boom") }, WithPriority(PriorityHigh))
	bus.SubscribeFunc("editor.**", func(context.Context, any) error {
		called = true
		return nil
	})

	if err := bus.PublishSync(context.Background(), NewEvent(TopicTextChanged, 0, "test")); err != nil {
		t.Fatalf("PublishSync() failed: %v", err)
	}
	if recovered != "boom" {
		t.Errorf("recovered = %v", recovered)
	}
	if !called {
		t.Error("handler after the panicking one was not called")
	}
	if s := bus.Stats(); s.HandlerPanics != 1 || s.EventsDelivered != 1 {
		t.Errorf("stats = %+v", s)
	}
}

func TestBus_HandlerError(t *testing.T) {
	var got error
	wantErr := errors.New("bad payload")
	bus := startBus(t, WithErrorHandler(func(_ any, err error) { got = err }))
	bus.SubscribeFunc("editor.**", func(context.Context, any) error { return wantErr })
	bus.PublishSync(context.Background(), NewEvent(TopicTextChanged, 0, "test"))
	if !errors.Is(got, wantErr) {
		t.Errorf("error handler got %v", got)
	}
	if bus.Stats().HandlerErrors != 1 {
		t.Errorf("HandlerErrors = %d", bus.Stats().HandlerErrors)
	}
}

func TestBus_Async(t *testing.T) {
	bus := startBus(t)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var got []int
	wg.Add(3)
	bus.SubscribeFunc(TopicTextChanged, func(_ context.Context, ev any) error {
		defer wg.Done()
		mu.Lock()
		got = append(got, ev.(Event[int]).Payload)
		mu.Unlock()
		return nil
	}, WithAsync())

	for i := 0; i < 3; i++ {
		if err := bus.Publish(context.Background(), NewEvent(TopicTextChanged, i, "test")); err != nil {
			t.Fatalf("Publish() failed: %v", err)
		}
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	for i, v := range got {
		if v != i {
			t.Fatalf("async delivery out of order: %v", got)
		}
	}
}

func TestBus_OnceAndUnsubscribe(t *testing.T) {
	bus := startBus(t)
	count := 0
	bus.SubscribeFunc(TopicTextChanged, func(context.Context, any) error {
		count++
		return nil
	}, WithOnce())
	sub, _ := bus.SubscribeFunc(TopicSelectionChanged, func(context.Context, any) error {
		count += 10
		return nil
	})

	ctx := context.Background()
	bus.PublishSync(ctx, NewEvent(TopicTextChanged, 0, "test"))
	bus.PublishSync(ctx, NewEvent(TopicTextChanged, 0, "test"))
	if count != 1 {
		t.Errorf("once subscription ran %d times", count)
	}

	if err := bus.Unsubscribe(sub); err != nil {
		t.Fatalf("Unsubscribe() failed: %v", err)
	}
	if err := bus.Unsubscribe(sub); err != ErrSubscriptionNotFound {
		t.Errorf("expected ErrSubscriptionNotFound, got %v", err)
	}
	bus.PublishSync(ctx, NewEvent(TopicSelectionChanged, 0, "test"))
	if count != 1 {
		t.Errorf("unsubscribed handler ran, count = %d", count)
	}
}

func TestBus_PauseAndFilter(t *testing.T) {
	bus := startBus(t)
	count := 0
	bus.SubscribeFunc("editor.**", func(context.Context, any) error {
		count++
		return nil
	}, WithFilter(func(ev any) bool {
		e, ok := ev.(Event[int])
		return ok && e.Payload > 0
	}))

	ctx := context.Background()
	bus.PublishSync(ctx, NewEvent(TopicTextChanged, 0, "test"))
	bus.PublishSync(ctx, NewEvent(TopicTextChanged, 1, "test"))
	bus.Pause()
	bus.PublishSync(ctx, NewEvent(TopicTextChanged, 2, "test"))
	bus.Resume()
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestBus_InvalidInput(t *testing.T) {
	bus := startBus(t)
	if _, err := bus.Subscribe("editor.text", nil); err != ErrNilHandler {
		t.Errorf("expected ErrNilHandler, got %v", err)
	}
	if _, err := bus.SubscribeFunc("", func(context.Context, any) error { return nil }); err != ErrInvalidTopic {
		t.Errorf("expected ErrInvalidTopic, got %v", err)
	}
	if err := bus.PublishSync(context.Background(), "not an event"); err != ErrInvalidEvent {
		t.Errorf("expected ErrInvalidEvent, got %v", err)
	}
	if err := bus.Publish(context.Background(), NewEvent[int]("editor.*", 0, "test")); err != ErrInvalidEvent {
		t.Errorf("publishing a pattern: expected ErrInvalidEvent, got %v", err)
	}
	if err := bus.Unsubscribe(nil); err != ErrInvalidSubscription {
		t.Errorf("expected ErrInvalidSubscription, got %v", err)
	}
}

func TestBus_SourceFilter(t *testing.T) {
	bus := startBus(t)
	var got []string
	bus.SubscribeFunc("editor.**", func(_ context.Context, ev any) error {
		got = append(got, ev.(Event[int]).Metadata.Source)
		return nil
	}, WithSource("ed-1"))

	ctx := context.Background()
	bus.PublishSync(ctx, NewEvent(TopicTextChanged, 0, "ed-1"))
	bus.PublishSync(ctx, NewEvent(TopicTextChanged, 0, "ed-2"))
	bus.PublishSync(ctx, NewEvent(TopicSelectionChanged, 0, "ed-1"))

	if len(got) != 2 || got[0] != "ed-1" || got[1] != "ed-1" {
		t.Errorf("source filter delivered %v", got)
	}
}

func TestSubscription_Cancel(t *testing.T) {
	bus := startBus(t)
	count := 0
	sub, err := bus.SubscribeFunc(TopicTextChanged, func(context.Context, any) error {
		count++
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if !sub.Active() || sub.Pattern() != TopicTextChanged {
		t.Fatalf("unexpected subscription state: active=%v pattern=%s", sub.Active(), sub.Pattern())
	}

	sub.Cancel()
	bus.PublishSync(context.Background(), NewEvent(TopicTextChanged, 0, "test"))
	if count != 0 {
		t.Errorf("cancelled subscription ran %d times", count)
	}
	if bus.Stats().ActiveSubscribers != 0 {
		t.Errorf("ActiveSubscribers = %d", bus.Stats().ActiveSubscribers)
	}
}
