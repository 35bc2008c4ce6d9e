package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-cms/pkg/simplecms/storage"
	"github.com/tendant/simple-cms/pkg/simplecms/storage/memory"
)

type section struct {
	ID         int64  `json:"id"`
	Identifier string `json:"identifier"`
}

func TestTable(t *testing.T) {
	ctx := context.Background()
	table := storage.NewTable[section](memory.New(), "section")

	created, err := table.Create(ctx, func(id int64) section {
		return section{ID: id, Identifier: "standard"}
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	_, err = table.Create(ctx, func(id int64) section {
		return section{ID: id, Identifier: "media"}
	})
	require.NoError(t, err)

	t.Run("Get", func(t *testing.T) {
		got, err := table.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "standard", got.Identifier)
	})

	t.Run("Get_NotFound", func(t *testing.T) {
		_, err := table.Get(ctx, 42)
		assert.True(t, storage.IsNotFound(err))
	})

	t.Run("Find", func(t *testing.T) {
		found, err := table.Find(ctx, func(s section) bool { return s.Identifier == "media" })
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, int64(2), found[0].ID)
	})

	t.Run("First", func(t *testing.T) {
		_, ok, err := table.First(ctx, func(s section) bool { return s.Identifier == "users" })
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("PutReplaces", func(t *testing.T) {
		require.NoError(t, table.Put(ctx, 2, section{ID: 2, Identifier: "assets"}))
		all, err := table.All(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "assets", all[1].Identifier)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, table.Delete(ctx, 2))
		count, err := table.Count(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}
