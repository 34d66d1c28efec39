// Package toast manages transient UI notifications ("toasts") on the server.
//
// A Manager owns an ordered collection of toasts for one UI root, typically a
// browser session. Each toast goes through a small lifecycle:
//
//	active (visible) --expiry or Dismiss--> dismissing (hidden) --grace delay--> removed
//
// Notify on a dismissing toast brings it back to active and cancels its
// pending removal; Update merges fields without touching timers.
//
// # Basic Usage
//
//	m := toast.New()
//	defer m.Close()
//
//	id := m.Notify(toast.Input{Title: "Uploading…", Duration: toast.Infinite})
//	// ...
//	m.Update(id, toast.Input{Title: "Upload complete"})
//	m.Dismiss(id)
//
// Toasts auto-dismiss after DefaultDuration (5s) unless a duration is given;
// Infinite keeps them until dismissed. Dismissed toasts stay in the collection,
// with Visible=false, for DefaultGraceDelay (300ms) so the UI can play an exit
// animation.
//
// # Timers
//
// Every scheduled timer is stored on its toast and carries a generation
// number. Dismiss, re-Notify, removal and Close stop the pending timers, and a
// timer that already fired but lost the race for the lock is discarded when
// its generation no longer matches. A stale timer can therefore never hide or
// drop a toast that was re-created under the same id.
//
// # Rendering
//
// UI code subscribes with Subscribe and receives a snapshot of the whole
// collection after every change. See package toastui for a Datastar SSE
// adapter.
//
// # Sessions
//
// Registry maps session ids to managers and closes the least recently used
// one when its capacity is reached. WithManager and FromContext carry a
// manager through a request; the package-level Notify, Update, Dismiss and
// DismissAll helpers are no-ops when the context has none.
package toast
