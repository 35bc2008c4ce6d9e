package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-cms/pkg/simplecms"
)

func TestObjectStateService(t *testing.T) {
	f := newFixture(t)
	states := f.repo.ObjectStateService()
	open, _ := f.createArticle(t, simplecms.RootLocationID, "Open")
	closed, _ := f.createArticle(t, simplecms.RootLocationID, "Closed")

	lock, err := states.CreateObjectStateGroup(f.ctx, simplecms.ObjectStateGroupCreateStruct{
		Identifier:          "ez_lock",
		DefaultLanguageCode: "eng-GB",
		Names:               map[string]string{"eng-GB": "Lock"},
	})
	require.NoError(t, err)
	_, err = states.CreateObjectStateGroup(f.ctx, simplecms.ObjectStateGroupCreateStruct{Identifier: "ez_lock", DefaultLanguageCode: "eng-GB"})
	assert.ErrorIs(t, err, simplecms.ErrInvalidArgument)

	unlocked, err := states.CreateObjectState(f.ctx, lock, simplecms.ObjectStateCreateStruct{Identifier: "not_locked"})
	require.NoError(t, err)
	locked, err := states.CreateObjectState(f.ctx, lock, simplecms.ObjectStateCreateStruct{Identifier: "locked"})
	require.NoError(t, err)
	assert.Greater(t, locked.Priority, unlocked.Priority)
	assert.Equal(t, "eng-GB", locked.DefaultLanguageCode, "inherited from the group")

	_, err = states.CreateObjectState(f.ctx, lock, simplecms.ObjectStateCreateStruct{Identifier: "locked"})
	assert.ErrorIs(t, err, simplecms.ErrInvalidArgument)

	current, err := states.GetContentState(f.ctx, open.ContentInfo(), lock)
	require.NoError(t, err)
	assert.Equal(t, unlocked.ID, current.ID, "the first state is the default")

	require.NoError(t, states.SetContentState(f.ctx, closed.ContentInfo(), lock, locked))
	current, err = states.GetContentState(f.ctx, closed.ContentInfo(), lock)
	require.NoError(t, err)
	assert.Equal(t, locked.ID, current.ID)

	for _, tc := range []struct {
		state *simplecms.ObjectState
		want  int
	}{{unlocked, 1}, {locked, 1}} {
		count, err := states.GetContentCount(f.ctx, tc.state)
		require.NoError(t, err)
		assert.Equal(t, tc.want, count, tc.state.Identifier)
	}

	res, err := f.repo.SearchService().FindContentInfo(f.ctx, simplecms.Query{Filter: simplecms.ObjectStateID{IDs: []int64{locked.ID}}})
	require.NoError(t, err)
	require.Equal(t, 1, res.TotalCount)
	assert.Equal(t, closed.ID(), res.Items[0].ID)

	t.Run("StateOfOtherGroup", func(t *testing.T) {
		other, err := states.CreateObjectStateGroup(f.ctx, simplecms.ObjectStateGroupCreateStruct{Identifier: "review", DefaultLanguageCode: "eng-GB"})
		require.NoError(t, err)
		err = states.SetContentState(f.ctx, open.ContentInfo(), other, locked)
		assert.ErrorIs(t, err, simplecms.ErrInvalidArgument)
	})

	t.Run("PriorityChangesDefault", func(t *testing.T) {
		require.NoError(t, states.SetPriorityOfObjectState(f.ctx, locked, -1))
		current, err := states.GetContentState(f.ctx, open.ContentInfo(), lock)
		require.NoError(t, err)
		assert.Equal(t, locked.ID, current.ID)
		require.NoError(t, states.SetPriorityOfObjectState(f.ctx, locked, 10))
	})

	t.Run("DeleteState", func(t *testing.T) {
		require.NoError(t, states.DeleteObjectState(f.ctx, locked))
		current, err := states.GetContentState(f.ctx, closed.ContentInfo(), lock)
		require.NoError(t, err)
		assert.Equal(t, unlocked.ID, current.ID)

		res, err := f.repo.SearchService().FindContentInfo(f.ctx, simplecms.Query{Filter: simplecms.ObjectStateID{IDs: []int64{unlocked.ID}}})
		require.NoError(t, err)
		assert.Equal(t, 2, res.TotalCount)
	})
}
