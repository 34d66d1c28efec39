package toast

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/toastkit/pkg/cache"
	"github.com/dmitrymomot/toastkit/pkg/logger"
)

// Registry hands out one Manager per UI session. It holds at most capacity
// managers; the least recently used one is closed when the limit is reached.
type Registry struct {
	managers *cache.LRUCache[string, *Manager]
	opts     []Option
	logger   *slog.Logger
	closed   bool
	mu       sync.RWMutex
}

// NewRegistry creates a Registry whose managers are built with opts.
// Panics if capacity is not positive.
func NewRegistry(capacity int, opts ...Option) *Registry {
	r := &Registry{
		managers: cache.NewLRUCache[string, *Manager](capacity),
		opts:     opts,
		logger:   buildOptions(opts).logger,
	}
	r.managers.SetEvictCallback(func(sessionID string, m *Manager) {
		if err := m.Close(); err != nil {
			r.logger.LogAttrs(context.Background(), slog.LevelError, "failed to close toast manager",
				logger.Component("toast"),
				logger.SessionID(sessionID),
				logger.Error(err),
			)
		}
	})
	return r
}

// Manager returns the manager for sessionID, creating it if needed.
// After Close it returns a closed manager whose operations are no-ops.
func (r *Registry) Manager(sessionID string) *Manager {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		m := New(r.opts...)
		_ = m.Close()
		return m
	}

	m, existed := r.managers.GetOrCreate(sessionID, func() *Manager { return New(r.opts...) })
	if !existed {
		r.logger.LogAttrs(context.Background(), slog.LevelDebug, "toast session started",
			logger.Component("toast"),
			logger.SessionID(sessionID),
		)
	}
	return m
}

// Lookup returns the manager for sessionID without creating one.
func (r *Registry) Lookup(sessionID string) (*Manager, bool) {
	return r.managers.Peek(sessionID)
}

// Release closes and forgets the manager for sessionID, if any.
func (r *Registry) Release(sessionID string) {
	r.managers.Remove(sessionID)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	return r.managers.Len()
}

// Close closes every manager. Safe to call more than once.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	r.managers.Clear()
	return nil
}

// Check reports ErrRegistryClosed once Close has been called.
// Its signature fits readiness probes.
func (r *Registry) Check(context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return ErrRegistryClosed
	}
	return nil
}
