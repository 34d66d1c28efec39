package toast

import "context"

type contextKey struct{}

// WithManager returns a copy of ctx carrying m.
func WithManager(ctx context.Context, m *Manager) context.Context {
	return context.WithValue(ctx, contextKey{}, m)
}

// FromContext returns the manager stored in ctx, or nil.
func FromContext(ctx context.Context) *Manager {
	if ctx == nil {
		return nil
	}
	m, _ := ctx.Value(contextKey{}).(*Manager)
	return m
}

// Notify shows a toast through the manager in ctx.
// Returns an empty id when ctx carries no manager.
func Notify(ctx context.Context, in Input) string {
	m := FromContext(ctx)
	if m == nil {
		return ""
	}
	return m.Notify(in)
}

// Update merges in into a toast through the manager in ctx.
func Update(ctx context.Context, id string, in Input) {
	if m := FromContext(ctx); m != nil {
		m.Update(id, in)
	}
}

// Dismiss hides a toast through the manager in ctx.
func Dismiss(ctx context.Context, id string) {
	if m := FromContext(ctx); m != nil {
		m.Dismiss(id)
	}
}

// DismissAll hides every toast of the manager in ctx.
func DismissAll(ctx context.Context) {
	if m := FromContext(ctx); m != nil {
		m.DismissAll()
	}
}
