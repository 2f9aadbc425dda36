package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryIdempotencyStore_MarkProcessed(t *testing.T) {
	t.Run("marks new key as processed", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		created, err := store.MarkProcessed(context.Background(), "callback-1", time.Minute)

		require.NoError(t, err)
		assert.True(t, created)
	})

	t.Run("rejects already processed key", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		_, err := store.MarkProcessed(context.Background(), "callback-1", time.Minute)
		require.NoError(t, err)

		created, err := store.MarkProcessed(context.Background(), "callback-1", time.Minute)

		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("accepts key again after TTL expiry", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		_, err := store.MarkProcessed(context.Background(), "callback-1", time.Millisecond)
		require.NoError(t, err)

		time.Sleep(5 * time.Millisecond)

		created, err := store.MarkProcessed(context.Background(), "callback-1", time.Minute)

		require.NoError(t, err)
		assert.True(t, created)
	})

	t.Run("only one concurrent caller wins", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		const workers = 20
		var wg sync.WaitGroup
		var mu sync.Mutex
		winners := 0

		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				created, err := store.MarkProcessed(context.Background(), "contested", time.Minute)
				require.NoError(t, err)
				if created {
					mu.Lock()
					winners++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, winners)
	})
}

func TestInMemoryIdempotencyStore_IsProcessed(t *testing.T) {
	t.Run("reports unknown key as unprocessed", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		processed, err := store.IsProcessed(context.Background(), "unknown")

		require.NoError(t, err)
		assert.False(t, processed)
	})

	t.Run("reports marked key as processed", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		_, err := store.MarkProcessed(context.Background(), "callback-1", time.Minute)
		require.NoError(t, err)

		processed, err := store.IsProcessed(context.Background(), "callback-1")

		require.NoError(t, err)
		assert.True(t, processed)
	})
}

func TestInMemoryIdempotencyStore_Forget(t *testing.T) {
	t.Run("forgotten key can be marked again", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		_, err := store.MarkProcessed(context.Background(), "callback-1", time.Minute)
		require.NoError(t, err)

		require.NoError(t, store.Forget(context.Background(), "callback-1"))

		created, err := store.MarkProcessed(context.Background(), "callback-1", time.Minute)
		require.NoError(t, err)
		assert.True(t, created)
	})
}

func TestInMemoryIdempotencyStore_Close(t *testing.T) {
	t.Run("close is safe to call twice", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()

		assert.NoError(t, store.Close())
		assert.NoError(t, store.Close())
	})
}

func TestInMemoryIdempotencyStore_Size(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	for i := 0; i < 5; i++ {
		_, err := store.MarkProcessed(context.Background(), fmt.Sprintf("key-%d", i), time.Minute)
		require.NoError(t, err)
	}

	assert.Equal(t, 5, store.Size())
}
