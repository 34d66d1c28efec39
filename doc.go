// Package toastkit is a server-side toast notification manager.
//
// The core lives in pkg/toast: a Manager holds the ordered collection of
// toasts for one UI session, auto-dismisses them after their duration,
// removes dismissed toasts after a short grace delay so exit animations can
// run, and publishes a snapshot to subscribers after every change. A
// Registry keeps one Manager per session.
//
// pkg/toastui exposes a session's manager over HTTP: JSON endpoints for
// notify, update and dismiss, and a Datastar Server-Sent Events stream that
// patches the rendered toast list into the page. cmd/toastd wires everything
// into a runnable service.
//
// Basic usage:
//
//	m := toast.New()
//	defer m.Close()
//
//	id := m.Notify(toast.Input{Title: "Saved", Description: "Profile updated"})
//	m.Update(id, toast.Input{Description: "Profile and avatar updated"})
//	m.Dismiss(id)
//
// Inside an HTTP handler behind toastui's middleware:
//
//	toast.Notify(r.Context(), toast.Input{Title: "Welcome back"})
package toastkit
