package broadcast_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a-la-firme/librarysystem/pkg/broadcast"
)

func TestMemoryBroadcaster(t *testing.T) {
	t.Parallel()

	t.Run("delivers to all subscribers", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		b := broadcast.NewMemoryBroadcaster[string](4)
		defer func() { _ = b.Close() }()

		sub1 := b.Subscribe(ctx)
		sub2 := b.Subscribe(ctx)

		require.NoError(t, b.Broadcast(ctx, broadcast.Message[string]{Data: "hello"}))

		assert.Equal(t, "hello", (<-sub1.Receive(ctx)).Data)
		assert.Equal(t, "hello", (<-sub2.Receive(ctx)).Data)
	})

	t.Run("drops messages for full subscribers instead of blocking", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		b := broadcast.NewMemoryBroadcaster[int](1)
		defer func() { _ = b.Close() }()

		sub := b.Subscribe(ctx)

		require.NoError(t, b.Broadcast(ctx, broadcast.Message[int]{Data: 1}))

		done := make(chan struct{})
		go func() {
			_ = b.Broadcast(ctx, broadcast.Message[int]{Data: 2})
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("broadcast blocked on a full subscriber")
		}

		assert.Equal(t, 1, (<-sub.Receive(ctx)).Data)
	})

	t.Run("context cancellation cleans up the subscription", func(t *testing.T) {
		t.Parallel()
		b := broadcast.NewMemoryBroadcaster[string](4)
		defer func() { _ = b.Close() }()

		ctx, cancel := context.WithCancel(context.Background())
		sub := b.Subscribe(ctx)
		cancel()

		// The receive channel closes once cleanup runs.
		deadline := time.After(time.Second)
		for {
			select {
			case _, ok := <-sub.Receive(context.Background()):
				if !ok {
					return
				}
			case <-deadline:
				t.Fatal("subscription was not cleaned up after cancellation")
			}
		}
	})

	t.Run("close is idempotent and closes subscribers", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		b := broadcast.NewMemoryBroadcaster[string](4)
		sub := b.Subscribe(ctx)

		require.NoError(t, b.Close())
		require.NoError(t, b.Close())

		_, ok := <-sub.Receive(ctx)
		assert.False(t, ok)

		// Subscribing after close yields an already-closed subscriber.
		late := b.Subscribe(ctx)
		_, ok = <-late.Receive(ctx)
		assert.False(t, ok)

		// Broadcasting after close is a no-op.
		assert.NoError(t, b.Broadcast(ctx, broadcast.Message[string]{Data: "x"}))
	})
}
