// Package event provides the publish/subscribe bus the editor's host
// surfaces listen on.
//
// Topics are dot-separated ("editor.text.changed"). Subscriptions may use
// wildcards: "*" matches exactly one segment and "**" matches zero or more.
//
//	bus := event.NewBus()
//	bus.Start()
//	defer bus.Stop(ctx)
//
//	bus.SubscribeFunc("editor.text.*", func(ctx context.Context, ev any) error {
//		e := ev.(event.Event[event.TextChangePayload])
//		fmt.Println(e.Payload.NewText)
//		return nil
//	})
//
// Synchronous subscriptions run in the publisher's goroutine ordered by
// priority. Asynchronous subscriptions are queued and run on a worker
// goroutine. A panicking handler is isolated from the publisher and from
// other handlers.
//
// EditorObserver bridges engine.Observer notifications onto the bus.
package event
