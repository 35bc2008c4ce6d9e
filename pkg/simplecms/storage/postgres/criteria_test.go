package postgres_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/storage/postgres"
)

type reviewCriterion struct{}

func (reviewCriterion) CriterionName() string { return "Review" }

func TestSQLConverter(t *testing.T) {
	conv := postgres.NewSQLConverter()

	tests := []struct {
		name      string
		criterion simplecms.Criterion
		locations bool
		wantSQL   string
		wantArgs  []any
	}{
		{
			name:      "MatchAll",
			criterion: simplecms.MatchAll{},
			wantSQL:   "TRUE",
		},
		{
			name:      "ContentTypeID",
			criterion: simplecms.ContentTypeID{IDs: []int64{1, 2}},
			wantSQL:   "c.content_type_id = ANY($1)",
			wantArgs:  []any{[]int64{1, 2}},
		},
		{
			name: "AndNumbersPlaceholders",
			criterion: simplecms.LogicalAnd{Criteria: []simplecms.Criterion{
				simplecms.ContentID{IDs: []int64{5}},
				simplecms.ContentName{Pattern: "Go*"},
			}},
			wantSQL:  "(c.content_id = ANY($1)) AND (lower(c.name) LIKE $2)",
			wantArgs: []any{[]int64{5}, "go%"},
		},
		{
			name:      "EmptyOr",
			criterion: simplecms.LogicalOr{},
			wantSQL:   "FALSE",
		},
		{
			name:      "Not",
			criterion: simplecms.LogicalNot{Criterion: simplecms.MatchNone{}},
			wantSQL:   "NOT (FALSE)",
		},
		{
			name:      "ParentLocationInContentSearch",
			criterion: simplecms.ParentLocationID{IDs: []int64{2}},
			wantSQL:   "EXISTS (SELECT 1 FROM cms_search_location l WHERE l.content_id = c.content_id AND l.parent_id = ANY($1))",
			wantArgs:  []any{[]int64{2}},
		},
		{
			name:      "ParentLocationInLocationSearch",
			criterion: simplecms.ParentLocationID{IDs: []int64{2}},
			locations: true,
			wantSQL:   "l.parent_id = ANY($1)",
			wantArgs:  []any{[]int64{2}},
		},
		{
			name:      "Subtree",
			criterion: simplecms.Subtree{PathStrings: []string{"/1/2/"}},
			locations: true,
			wantSQL:   "(l.path_string LIKE $1)",
			wantArgs:  []any{"/1/2/%"},
		},
		{
			name:      "DepthBetween",
			criterion: simplecms.Depth{Operator: simplecms.OpBetween, Values: []int{1, 3}},
			locations: true,
			wantSQL:   "l.depth BETWEEN $1 AND $2",
			wantArgs:  []any{int64(1), int64(3)},
		},
		{
			name:      "LanguageWithAlwaysAvailable",
			criterion: simplecms.LanguageCode{Codes: []string{"eng-GB"}, MatchAlwaysAvailable: true},
			wantSQL:   "(c.language_codes && $1::text[] OR c.always_available)",
			wantArgs:  []any{[]string{"eng-GB"}},
		},
		{
			name:      "NameEscapesLikeCharacters",
			criterion: simplecms.ContentName{Pattern: "100%_*"},
			wantSQL:   "lower(c.name) LIKE $1",
			wantArgs:  []any{`100\%\_%`},
		},
		{
			name:      "Status",
			criterion: simplecms.Status{Statuses: []simplecms.ContentStatus{simplecms.ContentStatusPublished}},
			wantSQL:   "c.status = ANY($1)",
			wantArgs:  []any{[]string{string(simplecms.ContentStatusPublished)}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frag, err := conv.Convert(tt.criterion)
			require.NoError(t, err)
			q := &postgres.Query{Locations: tt.locations}
			assert.Equal(t, tt.wantSQL, frag(q))
			assert.Equal(t, tt.wantArgs, q.Args())
		})
	}
}

func TestSQLConverter_Errors(t *testing.T) {
	conv := postgres.NewSQLConverter()

	_, err := conv.Convert(reviewCriterion{})
	assert.ErrorIs(t, err, simplecms.ErrNotImplemented)

	_, err = conv.Convert(simplecms.LogicalAnd{Criteria: []simplecms.Criterion{simplecms.MatchAll{}, reviewCriterion{}}})
	assert.ErrorIs(t, err, simplecms.ErrNotImplemented, "nested criteria go through the same converter")

	_, err = conv.Convert(simplecms.Depth{Operator: simplecms.OpBetween, Values: []int{1}})
	assert.ErrorIs(t, err, simplecms.ErrInvalidArgument)
}

func TestEngine_Statement(t *testing.T) {
	engine := postgres.NewEngine(nil)

	count, sel, q, err := engine.Statement(simplecms.Query{
		Filter:      simplecms.SectionID{IDs: []int64{1}},
		SortClauses: []simplecms.SortClause{{Target: simplecms.SortByContentName, Direction: simplecms.SortDescending}},
	}, false)
	require.NoError(t, err)
	assert.Equal(t, "SELECT count(*) FROM cms_search_content c LEFT JOIN cms_search_location ml ON ml.location_id = c.main_location_id WHERE c.section_id = ANY($1)", count)
	assert.Contains(t, sel, "ORDER BY lower(c.name) DESC, c.content_id")
	assert.Len(t, q.Args(), 1)

	_, sel, _, err = engine.Statement(simplecms.Query{
		SortClauses: []simplecms.SortClause{{Target: simplecms.SortByLocationPath, Direction: simplecms.SortAscending}},
	}, true)
	require.NoError(t, err)
	assert.Contains(t, sel, "WHERE TRUE ORDER BY string_to_array(trim(both '/' from l.path_string), '/')::bigint[], c.content_id, l.location_id")

	_, _, _, err = engine.Statement(simplecms.Query{SortClauses: []simplecms.SortClause{{Target: "random"}}}, false)
	assert.ErrorIs(t, err, simplecms.ErrNotImplemented)
}
