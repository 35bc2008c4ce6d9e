package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-cms/pkg/simplecms"
)

func TestTrashService_TrashAndRecover(t *testing.T) {
	f := newFixture(t)
	trash := f.repo.TrashService()
	locations := f.repo.LocationService()
	folder, folderLoc := f.createFolder(t, simplecms.RootLocationID, "Bin me")
	_, childLoc := f.createArticle(t, folderLoc.ID, "Inside")

	item, err := trash.Trash(f.ctx, folderLoc)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, folderLoc.ID, item.ID)
	assert.True(t, item.ContentInfo.IsTrashed())
	assert.False(t, item.TrashedAt.IsZero())

	_, err = locations.LoadLocation(f.ctx, folderLoc.ID)
	assert.ErrorIs(t, err, simplecms.ErrNotFound)
	_, err = locations.LoadLocation(f.ctx, childLoc.ID)
	assert.ErrorIs(t, err, simplecms.ErrNotFound)

	list, err := trash.FindTrashItems(f.ctx, simplecms.TrashQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, list.TotalCount)

	articles, err := trash.FindTrashItems(f.ctx, simplecms.TrashQuery{ContentTypeID: f.article.ID})
	require.NoError(t, err)
	require.Equal(t, 1, articles.TotalCount)
	assert.Equal(t, childLoc.ID, articles.Items[0].ID)

	restored, err := trash.Recover(f.ctx, item, nil)
	require.NoError(t, err)
	assert.Equal(t, folderLoc.ID, restored.ID)
	assert.Equal(t, folderLoc.PathString, restored.PathString)
	assert.True(t, restored.ContentInfo.IsPublished())

	child := f.reloadLocation(t, childLoc.ID)
	assert.Equal(t, childLoc.PathString, child.PathString)

	info, err := f.repo.ContentService().LoadContentInfo(f.ctx, folder.ID())
	require.NoError(t, err)
	assert.Equal(t, folderLoc.ID, info.MainLocationID)

	list, err = trash.FindTrashItems(f.ctx, simplecms.TrashQuery{})
	require.NoError(t, err)
	assert.Zero(t, list.TotalCount)
}

func TestTrashService_RecoverBelowNewParent(t *testing.T) {
	f := newFixture(t)
	trash := f.repo.TrashService()
	_, parent := f.createFolder(t, simplecms.RootLocationID, "Parent")
	_, other := f.createFolder(t, simplecms.RootLocationID, "Other")
	_, loc := f.createArticle(t, parent.ID, "Orphan")

	item, err := trash.Trash(f.ctx, loc)
	require.NoError(t, err)
	require.NoError(t, f.repo.LocationService().DeleteLocation(f.ctx, parent))

	_, err = trash.Recover(f.ctx, item, nil)
	assert.ErrorIs(t, err, simplecms.ErrInvalidArgument, "the original parent is gone")

	restored, err := trash.Recover(f.ctx, item, other)
	require.NoError(t, err)
	assert.Equal(t, loc.ID, restored.ID)
	assert.Equal(t, other.ID, restored.ParentLocationID)
	assert.Equal(t, other.PathString+idPath(loc.ID), restored.PathString)
}

func TestTrashService_TrashSecondaryLocation(t *testing.T) {
	f := newFixture(t)
	_, other := f.createFolder(t, simplecms.RootLocationID, "Other")
	article, main := f.createArticle(t, simplecms.RootLocationID, "Twice")
	second, err := f.repo.LocationService().CreateLocation(f.ctx, article.ContentInfo(), simplecms.LocationCreateStruct{ParentLocationID: other.ID})
	require.NoError(t, err)

	item, err := f.repo.TrashService().Trash(f.ctx, main)
	require.NoError(t, err)
	assert.Nil(t, item, "content with other locations is not trashed")

	info, err := f.repo.ContentService().LoadContentInfo(f.ctx, article.ID())
	require.NoError(t, err)
	assert.True(t, info.IsPublished())
	assert.Equal(t, second.ID, info.MainLocationID)
}

func TestTrashService_Delete(t *testing.T) {
	f := newFixture(t)
	trash := f.repo.TrashService()
	contents := f.repo.ContentService()

	root := f.reloadLocation(t, simplecms.RootLocationID)
	_, err := trash.Trash(f.ctx, root)
	assert.ErrorIs(t, err, simplecms.ErrInvalidArgument)

	first, firstLoc := f.createArticle(t, simplecms.RootLocationID, "First")
	second, secondLoc := f.createArticle(t, simplecms.RootLocationID, "Second")
	firstItem, err := trash.Trash(f.ctx, firstLoc)
	require.NoError(t, err)
	_, err = trash.Trash(f.ctx, secondLoc)
	require.NoError(t, err)

	t.Run("DeleteTrashItem", func(t *testing.T) {
		res, err := trash.DeleteTrashItem(f.ctx, firstItem)
		require.NoError(t, err)
		assert.Equal(t, first.ID(), res.ContentID)
		assert.True(t, res.ContentRemoved)
		_, err = contents.LoadContentInfo(f.ctx, first.ID())
		assert.ErrorIs(t, err, simplecms.ErrNotFound)

		_, err = trash.LoadTrashItem(f.ctx, firstItem.ID)
		assert.ErrorIs(t, err, simplecms.ErrNotFound)
	})

	t.Run("EmptyTrash", func(t *testing.T) {
		res, err := trash.EmptyTrash(f.ctx)
		require.NoError(t, err)
		require.Len(t, res.Items, 1)
		assert.Equal(t, second.ID(), res.Items[0].ContentID)
		assert.True(t, res.Items[0].ContentRemoved)
	})
}
