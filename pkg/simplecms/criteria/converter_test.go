package criteria_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/criteria"
)

type unknownCriterion struct{}

func (unknownCriterion) CriterionName() string { return "Unknown" }

func stringConverter() *criteria.Converter[string] {
	return criteria.New(
		criteria.For(func(_ *criteria.Converter[string], c simplecms.ContentID) (string, error) {
			return "content", nil
		}),
		criteria.For(func(conv *criteria.Converter[string], c simplecms.LogicalAnd) (string, error) {
			parts, err := conv.ConvertAll(c.Criteria)
			if err != nil {
				return "", err
			}
			return "(" + strings.Join(parts, " AND ") + ")", nil
		}),
	)
}

func TestConverter_Convert(t *testing.T) {
	conv := stringConverter()

	t.Run("AcceptedCriterion", func(t *testing.T) {
		got, err := conv.Convert(simplecms.ContentID{IDs: []int64{1}})
		require.NoError(t, err)
		assert.Equal(t, "content", got)
	})

	t.Run("CompositeCriterion", func(t *testing.T) {
		got, err := conv.Convert(simplecms.LogicalAnd{Criteria: []simplecms.Criterion{
			simplecms.ContentID{IDs: []int64{1}},
			simplecms.ContentID{IDs: []int64{2}},
		}})
		require.NoError(t, err)
		assert.Equal(t, "(content AND content)", got)
	})

	t.Run("NoHandler", func(t *testing.T) {
		_, err := conv.Convert(unknownCriterion{})
		require.Error(t, err)
		assert.ErrorIs(t, err, simplecms.ErrNotImplemented)

		var notImplemented *simplecms.NotImplementedError
		require.True(t, errors.As(err, &notImplemented))
		assert.Contains(t, notImplemented.Feature, "Unknown")
	})

	t.Run("NoHandlerInsideComposite", func(t *testing.T) {
		_, err := conv.Convert(simplecms.LogicalAnd{Criteria: []simplecms.Criterion{
			simplecms.ContentID{}, unknownCriterion{},
		}})
		assert.ErrorIs(t, err, simplecms.ErrNotImplemented)
	})

	t.Run("NilCriterion", func(t *testing.T) {
		_, err := conv.Convert(nil)
		assert.ErrorIs(t, err, simplecms.ErrNotImplemented)
	})
}

func TestConverter_FirstAcceptingHandlerWins(t *testing.T) {
	conv := criteria.New(
		criteria.For(func(_ *criteria.Converter[string], _ simplecms.SectionID) (string, error) {
			return "first", nil
		}),
		criteria.For(func(_ *criteria.Converter[string], _ simplecms.SectionID) (string, error) {
			return "second", nil
		}),
	)

	got, err := conv.Convert(simplecms.SectionID{IDs: []int64{1}})
	require.NoError(t, err)
	assert.Equal(t, "first", got)
}

func TestConverter_AddHandler(t *testing.T) {
	conv := criteria.New[string]()

	_, err := conv.Convert(simplecms.MatchAll{})
	require.ErrorIs(t, err, simplecms.ErrNotImplemented)

	conv.AddHandler(criteria.For(func(_ *criteria.Converter[string], _ simplecms.MatchAll) (string, error) {
		return "TRUE", nil
	}))

	got, err := conv.Convert(simplecms.MatchAll{})
	require.NoError(t, err)
	assert.Equal(t, "TRUE", got)
}

func TestConverter_HandlerErrorIsReturned(t *testing.T) {
	boom := errors.New("boom")
	conv := criteria.New(criteria.For(func(_ *criteria.Converter[int], _ simplecms.Depth) (int, error) {
		return 0, boom
	}))

	_, err := conv.Convert(simplecms.Depth{Operator: simplecms.OpEQ, Values: []int{2}})
	assert.ErrorIs(t, err, boom)
}
