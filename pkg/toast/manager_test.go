package toast_test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dmitrymomot/toastkit/pkg/toast"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// sequentialIDs returns a generator producing "t1", "t2", ...
func sequentialIDs() func() string {
	var n atomic.Int64
	return func() string { return "t" + strconv.FormatInt(n.Add(1), 10) }
}

func newManager(t *testing.T, opts ...toast.Option) *toast.Manager {
	t.Helper()
	m := toast.New(append([]toast.Option{toast.WithIDGenerator(sequentialIDs())}, opts...)...)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func ids(toasts []toast.Toast) []string {
	out := make([]string, len(toasts))
	for i, t := range toasts {
		out[i] = t.ID
	}
	return out
}

func TestManager_Notify(t *testing.T) {
	t.Parallel()

	t.Run("creates visible toast with defaults", func(t *testing.T) {
		m := newManager(t)

		id := m.Notify(toast.Input{Title: "Saved"})
		assert.Equal(t, "t1", id)

		got, ok := m.Get(id)
		require.True(t, ok)
		assert.Equal(t, "Saved", got.Title)
		assert.Equal(t, toast.VariantDefault, got.Variant)
		assert.Equal(t, toast.DefaultDuration, got.Duration)
		assert.Equal(t, toast.StateActive, got.State)
		assert.True(t, got.Visible)
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("keeps caller supplied id", func(t *testing.T) {
		m := newManager(t)
		assert.Equal(t, "upload", m.Notify(toast.Input{ID: "upload"}))
	})

	t.Run("distinct ids grow the collection in insertion order", func(t *testing.T) {
		m := newManager(t)
		for _, id := range []string{"c", "a", "b"} {
			m.Notify(toast.Input{ID: id})
		}
		assert.Equal(t, []string{"c", "a", "b"}, ids(m.List()))
		assert.Equal(t, 3, m.Len())
	})

	t.Run("re-notify updates in place", func(t *testing.T) {
		m := newManager(t)
		m.Notify(toast.Input{ID: "a", Title: "first", Variant: toast.VariantDestructive})
		m.Notify(toast.Input{ID: "b"})
		m.Notify(toast.Input{ID: "a", Description: "more"})

		require.Equal(t, []string{"a", "b"}, ids(m.List()))
		got, _ := m.Get("a")
		assert.Equal(t, "first", got.Title)
		assert.Equal(t, "more", got.Description)
		assert.Equal(t, toast.VariantDestructive, got.Variant)
	})

	t.Run("unknown variant is stored as given", func(t *testing.T) {
		m := newManager(t)
		id := m.Notify(toast.Input{Variant: "sparkly"})
		got, _ := m.Get(id)
		assert.Equal(t, toast.Variant("sparkly"), got.Variant)
	})
}

func TestManager_AutoDismiss(t *testing.T) {
	t.Parallel()

	const (
		duration = 80 * time.Millisecond
		grace    = 60 * time.Millisecond
	)

	m := newManager(t, toast.WithGraceDelay(grace))
	start := time.Now()
	id := m.Notify(toast.Input{Duration: duration})

	got, _ := m.Get(id)
	assert.True(t, got.Visible)

	require.Eventually(t, func() bool {
		got, ok := m.Get(id)
		return ok && !got.Visible
	}, time.Second, 2*time.Millisecond)
	assert.GreaterOrEqual(t, time.Since(start), duration)

	got, ok := m.Get(id)
	require.True(t, ok, "toast must stay tracked during the grace delay")
	assert.Equal(t, toast.StateDismissing, got.State)

	require.Eventually(t, func() bool { return m.Len() == 0 }, time.Second, 2*time.Millisecond)
	assert.GreaterOrEqual(t, time.Since(start), duration+grace)
}

func TestManager_Infinite(t *testing.T) {
	t.Parallel()

	m := newManager(t, toast.WithDefaultDuration(20*time.Millisecond))
	id := m.Notify(toast.Input{Duration: toast.Infinite})

	time.Sleep(80 * time.Millisecond)
	got, ok := m.Get(id)
	require.True(t, ok)
	assert.True(t, got.Visible)
	assert.True(t, got.Persistent())
}

func TestManager_PersistentByDefault(t *testing.T) {
	t.Parallel()

	m := newManager(t, toast.WithDefaultDuration(toast.Infinite))
	id := m.Notify(toast.Input{Title: "sticky"})

	time.Sleep(50 * time.Millisecond)
	got, _ := m.Get(id)
	assert.True(t, got.Visible)
}

func TestManager_Dismiss(t *testing.T) {
	t.Parallel()

	t.Run("unknown id is a no-op", func(t *testing.T) {
		m := newManager(t, toast.WithDefaultDuration(toast.Infinite))
		m.Notify(toast.Input{ID: "a"})
		before := m.List()

		m.Dismiss("missing")
		assert.Equal(t, before, m.List())
	})

	t.Run("hides then removes after grace", func(t *testing.T) {
		m := newManager(t, toast.WithDefaultDuration(toast.Infinite), toast.WithGraceDelay(40*time.Millisecond))
		m.Notify(toast.Input{ID: "a"})
		m.Notify(toast.Input{ID: "b"})

		m.Dismiss("a")
		got, ok := m.Get("a")
		require.True(t, ok)
		assert.False(t, got.Visible)

		require.Eventually(t, func() bool { return m.Len() == 1 }, time.Second, 2*time.Millisecond)
		assert.Equal(t, []string{"b"}, ids(m.List()))
	})

	t.Run("dismissing twice does not reschedule removal", func(t *testing.T) {
		m := newManager(t, toast.WithDefaultDuration(toast.Infinite), toast.WithGraceDelay(50*time.Millisecond))
		m.Notify(toast.Input{ID: "a"})

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		sub := m.Subscribe(ctx)

		m.Dismiss("a")
		m.Dismiss("a")

		var snapshots [][]toast.Toast
		for len(snapshots) < 2 {
			select {
			case msg := <-sub.Receive(ctx):
				snapshots = append(snapshots, msg.Data)
			case <-time.After(time.Second):
				t.Fatal("timed out waiting for snapshots")
			}
		}

		require.Len(t, snapshots[0], 1)
		assert.False(t, snapshots[0][0].Visible)
		assert.Empty(t, snapshots[1], "second snapshot must be the removal, not a second dismissal")
	})

	t.Run("dismiss all hides every tracked toast", func(t *testing.T) {
		m := newManager(t, toast.WithDefaultDuration(toast.Infinite), toast.WithGraceDelay(time.Hour))
		m.Notify(toast.Input{ID: "a"})
		m.Notify(toast.Input{ID: "b"})
		m.Dismiss("a")

		m.DismissAll()
		for _, tt := range m.List() {
			assert.False(t, tt.Visible, tt.ID)
		}

		m.Notify(toast.Input{ID: "c"})
		got, _ := m.Get("c")
		assert.True(t, got.Visible)
	})

	t.Run("dismiss all leaves later toasts in place", func(t *testing.T) {
		m := newManager(t, toast.WithDefaultDuration(toast.Infinite), toast.WithGraceDelay(30*time.Millisecond))
		m.Notify(toast.Input{ID: "a"})
		m.DismissAll()
		m.Notify(toast.Input{ID: "b"})

		require.Eventually(t, func() bool { return m.Len() == 1 }, time.Second, 2*time.Millisecond)
		time.Sleep(60 * time.Millisecond)
		assert.Equal(t, []string{"b"}, ids(m.List()))
	})
}

func TestManager_RenotifyCancelsRemoval(t *testing.T) {
	t.Parallel()

	const grace = 40 * time.Millisecond
	m := newManager(t, toast.WithDefaultDuration(toast.Infinite), toast.WithGraceDelay(grace))

	m.Notify(toast.Input{ID: "a", Title: "one"})
	m.Dismiss("a")
	m.Notify(toast.Input{ID: "a", Title: "two"})

	time.Sleep(3 * grace)

	list := m.List()
	require.Len(t, list, 1)
	assert.Equal(t, "two", list[0].Title)
	assert.True(t, list[0].Visible)
	assert.Equal(t, toast.StateActive, list[0].State)
}

func TestManager_RenotifyResetsDuration(t *testing.T) {
	t.Parallel()

	m := newManager(t, toast.WithDefaultDuration(30*time.Millisecond), toast.WithGraceDelay(time.Hour))

	m.Notify(toast.Input{ID: "a", Duration: toast.Infinite})
	m.Notify(toast.Input{ID: "a", Title: "again"})

	got, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 30*time.Millisecond, got.Duration)
	assert.False(t, got.Persistent())

	require.Eventually(t, func() bool {
		got, ok := m.Get("a")
		return ok && !got.Visible
	}, time.Second, 2*time.Millisecond)

	m.Notify(toast.Input{ID: "a", Duration: toast.Infinite})
	got, _ = m.Get("a")
	assert.True(t, got.Persistent(), "an explicit duration on re-notify wins")
}

func TestManager_StaleAutoDismissIgnored(t *testing.T) {
	t.Parallel()

	m := newManager(t, toast.WithGraceDelay(20*time.Millisecond))

	m.Notify(toast.Input{ID: "a", Duration: 30 * time.Millisecond})
	// Re-notify with a long duration: the first timer must not hide it.
	m.Notify(toast.Input{ID: "a", Duration: time.Hour})

	time.Sleep(100 * time.Millisecond)
	got, ok := m.Get("a")
	require.True(t, ok)
	assert.True(t, got.Visible)
}

func TestManager_Update(t *testing.T) {
	t.Parallel()

	t.Run("changes only set fields", func(t *testing.T) {
		m := newManager(t)
		id := m.Notify(toast.Input{
			Title:    "old",
			Variant:  toast.VariantDestructive,
			Duration: time.Hour,
			Action:   &toast.Action{Label: "Undo", URL: "/undo"},
		})

		m.Update(id, toast.Input{Title: "X"})

		got, _ := m.Get(id)
		assert.Equal(t, "X", got.Title)
		assert.Equal(t, toast.VariantDestructive, got.Variant)
		assert.Equal(t, time.Hour, got.Duration)
		require.NotNil(t, got.Action)
		assert.Equal(t, "Undo", got.Action.Label)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		m := newManager(t)
		m.Update("missing", toast.Input{Title: "X"})
		assert.Zero(t, m.Len())
	})

	t.Run("does not reset the auto-dismiss clock", func(t *testing.T) {
		const duration = 200 * time.Millisecond
		m := newManager(t, toast.WithGraceDelay(time.Hour))

		start := time.Now()
		id := m.Notify(toast.Input{Duration: duration})
		time.Sleep(120 * time.Millisecond)
		m.Update(id, toast.Input{Title: "progress"})

		require.Eventually(t, func() bool {
			got, _ := m.Get(id)
			return !got.Visible
		}, time.Second, 2*time.Millisecond)

		elapsed := time.Since(start)
		assert.GreaterOrEqual(t, elapsed, duration)
		assert.Less(t, elapsed, 120*time.Millisecond+duration, "update must not restart the timer")
	})

	t.Run("does not revive a dismissing toast", func(t *testing.T) {
		m := newManager(t, toast.WithGraceDelay(time.Hour))
		id := m.Notify(toast.Input{})
		m.Dismiss(id)
		m.Update(id, toast.Input{Title: "late"})

		got, _ := m.Get(id)
		assert.Equal(t, "late", got.Title)
		assert.False(t, got.Visible)
		assert.Equal(t, toast.StateDismissing, got.State)
	})
}

func TestManager_ReturnsCopies(t *testing.T) {
	t.Parallel()

	m := newManager(t)
	id := m.Notify(toast.Input{Action: &toast.Action{Label: "Open"}})

	got, _ := m.Get(id)
	got.Action.Label = "changed"
	got.Title = "changed"

	again, _ := m.Get(id)
	assert.Equal(t, "Open", again.Action.Label)
	assert.Empty(t, again.Title)
}

func TestManager_Subscribe(t *testing.T) {
	t.Parallel()

	m := newManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := m.Subscribe(ctx)

	m.Notify(toast.Input{ID: "a", Title: "hello"})
	m.Update("a", toast.Input{Title: "world"})

	for _, want := range []string{"hello", "world"} {
		select {
		case msg := <-sub.Receive(ctx):
			require.Len(t, msg.Data, 1)
			assert.Equal(t, want, msg.Data[0].Title)
		case <-time.After(time.Second):
			t.Fatalf("no snapshot for %q", want)
		}
	}
}

func TestManager_Close(t *testing.T) {
	t.Parallel()

	m := toast.New(toast.WithDefaultDuration(20*time.Millisecond), toast.WithGraceDelay(10*time.Millisecond))
	sub := m.Subscribe(context.Background())
	m.Notify(toast.Input{ID: "a"})
	<-sub.Receive(context.Background())

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	_, ok := <-sub.Receive(context.Background())
	assert.False(t, ok, "subscriber must be closed")
	assert.Zero(t, m.Len())

	assert.Equal(t, "b", m.Notify(toast.Input{ID: "b"}))
	m.Dismiss("a")
	m.DismissAll()
	m.Update("b", toast.Input{Title: "x"})
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, m.Len())
}

func TestManager_NotifyAfterCloseIsLogged(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	m := toast.New(toast.WithLogger(log))
	require.NoError(t, m.Close())
	buf.Reset()

	m.Notify(toast.Input{ID: "late"})

	out := buf.String()
	assert.Contains(t, out, "toast dropped by closed manager")
	assert.Contains(t, out, "toast_id=late")
	assert.Contains(t, out, "component=toast")
}

func TestManager_Concurrent(t *testing.T) {
	t.Parallel()

	m := newManager(t, toast.WithDefaultDuration(5*time.Millisecond), toast.WithGraceDelay(5*time.Millisecond))

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 50 {
				id := fmt.Sprintf("g%d-%d", g, i%5)
				m.Notify(toast.Input{ID: id, Title: id})
				m.Update(id, toast.Input{Description: "d"})
				if i%3 == 0 {
					m.Dismiss(id)
				}
				if i%17 == 0 {
					m.DismissAll()
				}
				_ = m.List()
			}
		}()
	}
	wg.Wait()

	require.Eventually(t, func() bool { return m.Len() == 0 }, 2*time.Second, 5*time.Millisecond)
}
