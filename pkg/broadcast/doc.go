// Package broadcast provides type-safe one-to-many message fan-out.
//
// The toast manager uses it to push a fresh snapshot of its collection to
// every connected UI stream after each change:
//
//	b := broadcast.NewMemoryBroadcaster[[]toast.Toast](8)
//	defer b.Close()
//
//	sub := b.Subscribe(r.Context())
//	defer sub.Close()
//
//	for msg := range sub.Receive(r.Context()) {
//		render(msg.Data)
//	}
//
// Slow subscribers never block a broadcast: when a subscriber's buffer is
// full it is dropped and its channel closed. Subscriptions end when their
// context is cancelled, when Close is called on either side, or when the
// broadcaster is closed.
package broadcast
