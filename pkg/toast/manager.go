package toast

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/dmitrymomot/toastkit/pkg/broadcast"
	"github.com/dmitrymomot/toastkit/pkg/logger"
)

// entry is a tracked toast plus the timers that drive its lifecycle.
type entry struct {
	toast Toast
	// gen identifies the timers scheduled for the current incarnation.
	// Callbacks carrying any other generation are stale and ignored.
	gen     uint64
	dismiss *time.Timer
	remove  *time.Timer
}

func (e *entry) stopTimers() {
	if e.dismiss != nil {
		e.dismiss.Stop()
		e.dismiss = nil
	}
	if e.remove != nil {
		e.remove.Stop()
		e.remove = nil
	}
}

// Manager owns an ordered collection of toasts for one UI root.
// All methods are safe for concurrent use; transitions are serialized.
type Manager struct {
	opts        *options
	entries     map[string]*entry
	order       []string
	gen         uint64
	closed      bool
	broadcaster *broadcast.MemoryBroadcaster[[]Toast]
	mu          sync.Mutex
}

// New creates a Manager. Call Close when its UI root goes away.
func New(opts ...Option) *Manager {
	o := buildOptions(opts)
	return &Manager{
		opts:        o,
		entries:     make(map[string]*entry),
		broadcaster: broadcast.NewMemoryBroadcaster[[]Toast](o.bufferSize),
	}
}

// Notify shows a toast and returns its id.
//
// When in.ID names a tracked toast, the set fields of in are merged into it,
// it becomes visible again, a pending removal is cancelled and the
// auto-dismiss clock restarts with in.Duration, or the default duration when
// none is given. Otherwise a new toast is appended.
func (m *Manager) Notify(in Input) string {
	id := in.ID
	if id == "" {
		id = m.opts.newID()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		m.log(slog.LevelDebug, "toast dropped by closed manager", logger.ToastID(id))
		return id
	}

	now := time.Now()
	e, ok := m.entries[id]
	if ok {
		e.toast.State, _ = e.toast.State.next(eventNotify)
		if in.Duration == 0 {
			e.toast.Duration = m.opts.defaultDuration
		}
		e.toast.merge(in)
		e.toast.Visible = true
		e.toast.UpdatedAt = now
	} else {
		t := Toast{
			ID:        id,
			Variant:   VariantDefault,
			Duration:  m.opts.defaultDuration,
			State:     StateActive,
			CreatedAt: now,
			UpdatedAt: now,
		}
		t.merge(in)
		t.Visible = true
		e = &entry{toast: t}
		m.entries[id] = e
		m.order = append(m.order, id)
	}

	e.stopTimers()
	e.gen = m.nextGen()
	m.scheduleDismissLocked(e)

	m.log(slog.LevelDebug, "toast shown",
		logger.ToastID(id),
		logger.Variant(string(e.toast.Variant)),
		logger.Duration(e.toast.Duration),
	)
	m.publishLocked()
	return id
}

// Update merges the set fields of in into the toast with the given id.
// Unknown ids are ignored. The auto-dismiss clock keeps running and a
// dismissing toast stays hidden.
func (m *Manager) Update(id string, in Input) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if m.closed || !ok {
		return
	}

	e.toast.State, _ = e.toast.State.next(eventUpdate)
	e.toast.merge(in)
	e.toast.UpdatedAt = time.Now()

	m.publishLocked()
}

// Dismiss hides the toast with the given id and schedules its removal after
// the grace delay. Unknown ids and already-dismissing toasts are ignored.
func (m *Manager) Dismiss(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	if e, ok := m.entries[id]; ok && m.dismissLocked(e) {
		m.publishLocked()
	}
}

// DismissAll hides every tracked toast. Toasts notified afterwards are unaffected.
func (m *Manager) DismissAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}

	n := 0
	for _, id := range m.order {
		if m.dismissLocked(m.entries[id]) {
			n++
		}
	}
	if n > 0 {
		m.log(slog.LevelDebug, "toasts dismissed", logger.Count(n))
		m.publishLocked()
	}
}

// Get returns a copy of the toast with the given id.
func (m *Manager) Get(id string) (Toast, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return Toast{}, false
	}
	return e.toast.clone(), true
}

// List returns copies of all tracked toasts in insertion order, including
// those that are dismissing.
func (m *Manager) List() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Len returns the number of tracked toasts.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.order)
}

// Subscribe returns a subscriber that receives the full collection after
// every change. Subscribers that fall behind are dropped.
func (m *Manager) Subscribe(ctx context.Context) broadcast.Subscriber[[]Toast] {
	return m.broadcaster.Subscribe(ctx)
}

// Close stops every pending timer, drops all toasts and closes subscribers.
// Further calls on the manager are no-ops. Close is idempotent.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	for _, e := range m.entries {
		e.stopTimers()
	}
	n := len(m.entries)
	clear(m.entries)
	m.order = nil
	m.mu.Unlock()

	if n > 0 {
		m.log(slog.LevelDebug, "toast manager closed with pending toasts", logger.Count(n))
	}
	return m.broadcaster.Close()
}

// dismissLocked moves e to dismissing. Reports whether anything changed.
func (m *Manager) dismissLocked(e *entry) bool {
	next, ok := e.toast.State.next(eventDismiss)
	if !ok {
		return false
	}

	e.toast.State = next
	e.toast.Visible = false
	e.toast.UpdatedAt = time.Now()
	e.stopTimers()
	e.gen = m.nextGen()

	id, gen := e.toast.ID, e.gen
	e.remove = time.AfterFunc(m.opts.graceDelay, func() { m.removeExpired(id, gen) })

	m.log(slog.LevelDebug, "toast dismissed", logger.ToastID(id))
	return true
}

func (m *Manager) scheduleDismissLocked(e *entry) {
	if e.toast.Persistent() {
		return
	}
	id, gen := e.toast.ID, e.gen
	e.dismiss = time.AfterFunc(e.toast.Duration, func() { m.dismissExpired(id, gen) })
}

// dismissExpired runs when the auto-dismiss timer of generation gen fires.
func (m *Manager) dismissExpired(id string, gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if m.closed || !ok || e.gen != gen {
		return
	}
	e.dismiss = nil
	if m.dismissLocked(e) {
		m.publishLocked()
	}
}

// removeExpired runs when the grace timer of generation gen fires.
func (m *Manager) removeExpired(id string, gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if m.closed || !ok || e.gen != gen {
		return
	}
	if _, ok := e.toast.State.next(eventRemove); !ok {
		return
	}

	e.remove = nil
	delete(m.entries, id)
	if i := slices.Index(m.order, id); i >= 0 {
		m.order = slices.Delete(m.order, i, i+1)
	}

	m.log(slog.LevelDebug, "toast removed", logger.ToastID(id))
	m.publishLocked()
}

func (m *Manager) nextGen() uint64 {
	m.gen++
	return m.gen
}

func (m *Manager) snapshotLocked() []Toast {
	out := make([]Toast, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.entries[id].toast.clone())
	}
	return out
}

// publishLocked fans the current collection out to subscribers. Broadcast
// never blocks, so holding the lock keeps snapshots in mutation order.
func (m *Manager) publishLocked() {
	_ = m.broadcaster.Broadcast(context.Background(), broadcast.Message[[]Toast]{Data: m.snapshotLocked()})
}

func (m *Manager) log(level slog.Level, msg string, attrs ...slog.Attr) {
	m.opts.logger.LogAttrs(context.Background(), level, msg, append(attrs, logger.Component("toast"))...)
}
