package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-cms/pkg/simplecms/storage"
	"github.com/tendant/simple-cms/pkg/simplecms/storage/memory"
)

func TestMemoryStore_DocumentOperations(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	t.Run("NextID", func(t *testing.T) {
		first, err := store.NextID(ctx, "section")
		require.NoError(t, err)
		second, err := store.NextID(ctx, "section")
		require.NoError(t, err)
		other, err := store.NextID(ctx, "language")
		require.NoError(t, err)

		assert.Equal(t, int64(1), first)
		assert.Equal(t, int64(2), second)
		assert.Equal(t, int64(1), other)
	})

	t.Run("PutAndGet", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "doc", 7, []byte(`{"a":1}`)))

		data, err := store.Get(ctx, "doc", 7)
		require.NoError(t, err)
		assert.JSONEq(t, `{"a":1}`, string(data))
	})

	t.Run("GetReturnsCopy", func(t *testing.T) {
		buf := []byte(`{"b":2}`)
		require.NoError(t, store.Put(ctx, "copy", 1, buf))
		buf[2] = 'x'

		data, err := store.Get(ctx, "copy", 1)
		require.NoError(t, err)
		assert.JSONEq(t, `{"b":2}`, string(data))
	})

	t.Run("Get_NotFound", func(t *testing.T) {
		_, err := store.Get(ctx, "doc", 99)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("PutAdvancesSequence", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "seeded", 10, []byte(`{}`)))
		id, err := store.NextID(ctx, "seeded")
		require.NoError(t, err)
		assert.Equal(t, int64(11), id)
	})

	t.Run("ListOrderedByID", func(t *testing.T) {
		for _, id := range []int64{3, 1, 2} {
			require.NoError(t, store.Put(ctx, "ordered", id, []byte(`{}`)))
		}
		records, err := store.List(ctx, "ordered")
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, int64(1), records[0].ID)
		assert.Equal(t, int64(2), records[1].ID)
		assert.Equal(t, int64(3), records[2].ID)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "gone", 1, []byte(`{}`)))
		require.NoError(t, store.Delete(ctx, "gone", 1))
		require.NoError(t, store.Delete(ctx, "gone", 1))

		_, err := store.Get(ctx, "gone", 1)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestMemoryStore_ConcurrentNextID(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make(chan int64, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := store.NextID(ctx, "content")
			assert.NoError(t, err)
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, 50)
}
