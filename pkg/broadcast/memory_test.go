package broadcast_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dmitrymomot/toastkit/pkg/broadcast"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func receive[T any](t *testing.T, sub broadcast.Subscriber[T]) (broadcast.Message[T], bool) {
	t.Helper()
	select {
	case msg, ok := <-sub.Receive(context.Background()):
		return msg, ok
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return broadcast.Message[T]{}, false
	}
}

func TestMemoryBroadcaster_Subscribe(t *testing.T) {
	t.Parallel()

	t.Run("receives broadcast", func(t *testing.T) {
		b := broadcast.NewMemoryBroadcaster[string](10)
		defer b.Close()

		sub := b.Subscribe(context.Background())
		require.NoError(t, b.Broadcast(context.Background(), broadcast.Message[string]{Data: "hello"}))

		msg, ok := receive(t, sub)
		require.True(t, ok)
		assert.Equal(t, "hello", msg.Data)
	})

	t.Run("after close returns closed subscriber", func(t *testing.T) {
		b := broadcast.NewMemoryBroadcaster[string](10)
		require.NoError(t, b.Close())

		sub := b.Subscribe(context.Background())
		_, ok := receive(t, sub)
		assert.False(t, ok)
	})

	t.Run("context cancellation unsubscribes", func(t *testing.T) {
		b := broadcast.NewMemoryBroadcaster[string](10)
		defer b.Close()

		ctx, cancel := context.WithCancel(context.Background())
		sub := b.Subscribe(ctx)
		assert.Equal(t, 1, b.Len())

		cancel()
		require.Eventually(t, func() bool { return b.Len() == 0 }, time.Second, 5*time.Millisecond)

		_, ok := receive(t, sub)
		assert.False(t, ok)
	})

	t.Run("subscriber close unsubscribes", func(t *testing.T) {
		b := broadcast.NewMemoryBroadcaster[int](10)
		defer b.Close()

		sub := b.Subscribe(context.Background())
		require.NoError(t, sub.Close())
		require.NoError(t, sub.Close())
		require.Eventually(t, func() bool { return b.Len() == 0 }, time.Second, 5*time.Millisecond)
	})
}

func TestMemoryBroadcaster_Broadcast(t *testing.T) {
	t.Parallel()

	t.Run("multiple subscribers", func(t *testing.T) {
		b := broadcast.NewMemoryBroadcaster[int](10)
		defer b.Close()

		subs := make([]broadcast.Subscriber[int], 5)
		for i := range subs {
			subs[i] = b.Subscribe(context.Background())
		}

		require.NoError(t, b.Broadcast(context.Background(), broadcast.Message[int]{Data: 42}))
		for i, sub := range subs {
			msg, ok := receive(t, sub)
			require.True(t, ok, "subscriber %d", i)
			assert.Equal(t, 42, msg.Data, "subscriber %d", i)
		}
	})

	t.Run("slow subscriber is dropped", func(t *testing.T) {
		b := broadcast.NewMemoryBroadcaster[int](1)
		defer b.Close()

		slow := b.Subscribe(context.Background())
		require.NoError(t, b.Broadcast(context.Background(), broadcast.Message[int]{Data: 1}))
		require.NoError(t, b.Broadcast(context.Background(), broadcast.Message[int]{Data: 2}))

		msg, ok := receive(t, slow)
		require.True(t, ok)
		assert.Equal(t, 1, msg.Data)

		_, ok = receive(t, slow)
		assert.False(t, ok)
		require.Eventually(t, func() bool { return b.Len() == 0 }, time.Second, 5*time.Millisecond)
	})

	t.Run("broadcast after close is a no-op", func(t *testing.T) {
		b := broadcast.NewMemoryBroadcaster[string](10)
		require.NoError(t, b.Close())
		assert.NoError(t, b.Broadcast(context.Background(), broadcast.Message[string]{Data: "x"}))
	})
}

func TestMemoryBroadcaster_Close(t *testing.T) {
	t.Parallel()

	b := broadcast.NewMemoryBroadcaster[string](10)

	// A live, never-cancelled context must not keep Close waiting.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := b.Subscribe(ctx)

	done := make(chan struct{})
	go func() {
		_ = b.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close blocked on live subscription")
	}

	_, ok := receive(t, sub)
	assert.False(t, ok)
	assert.NoError(t, b.Close())
}

func TestMemoryBroadcaster_Concurrent(t *testing.T) {
	t.Parallel()

	b := broadcast.NewMemoryBroadcaster[int](100)
	defer b.Close()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			sub := b.Subscribe(ctx)
			for i := range 20 {
				_ = b.Broadcast(ctx, broadcast.Message[int]{Data: i})
			}
			_ = sub.Close()
		}()
	}
	wg.Wait()

	require.Eventually(t, func() bool { return b.Len() == 0 }, time.Second, 5*time.Millisecond)
}
