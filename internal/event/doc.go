// Package event provides the typed publish/subscribe channel used to
// deliver wheel notifications.
//
// A Channel delivers every published value synchronously, in subscription
// order, on the publisher's goroutine. The subscriber list is snapshotted
// before delivery, so handlers may subscribe or cancel during a publish
// without affecting the current round.
//
//	starts := event.NewChannel[wheel.NormalizedEvent]("wheel.start")
//	sub := starts.Subscribe(func(ev wheel.NormalizedEvent) {
//	    beginGesture(ev)
//	})
//	defer sub.Cancel()
//
// # Disposal
//
// Dispose drops every subscription. Publishing on a disposed channel is a
// no-op and subscribing returns an already-cancelled subscription.
//
// # Panics
//
// A panicking handler does not stop delivery to the remaining handlers.
// The panic is recovered and passed to the handler installed with
// WithPanicHandler, if any.
package event
