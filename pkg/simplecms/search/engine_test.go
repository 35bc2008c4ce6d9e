package search_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/search"
	"github.com/tendant/simple-cms/pkg/simplecms/storage/memory"
)

func fixtures() []search.Document {
	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []search.Document{
		{
			ContentID: 10, ContentTypeID: 1, ContentTypeIdentifier: "folder", Name: "Blog",
			SectionID: 1, OwnerID: 14, Status: "published", RemoteID: "blog",
			PublishedAt: search.Unix(jan), ModifiedAt: search.Unix(jan),
			MainLanguageCode: "eng-GB", LanguageCodes: []string{"eng-GB"},
			MainLocationID: 2, StateIDs: []int64{1},
			Locations: []search.Location{{ID: 2, ParentID: 1, PathString: "/1/2/", Depth: 1, Priority: 5}},
		},
		{
			ContentID: 11, ContentTypeID: 2, ContentTypeIdentifier: "article", Name: "Hello world",
			SectionID: 1, OwnerID: 14, Status: "published", RemoteID: "hello",
			PublishedAt: search.Unix(jan.AddDate(0, 1, 0)), ModifiedAt: search.Unix(jan.AddDate(0, 2, 0)),
			MainLanguageCode: "eng-GB", LanguageCodes: []string{"eng-GB", "ger-DE"},
			MainLocationID: 3, StateIDs: []int64{1},
			Locations: []search.Location{
				{ID: 3, ParentID: 2, PathString: "/1/2/3/", Depth: 2, Priority: 0},
				{ID: 5, ParentID: 4, PathString: "/1/4/5/", Depth: 2, Priority: 1, Hidden: true},
			},
		},
		{
			ContentID: 12, ContentTypeID: 2, ContentTypeIdentifier: "article", Name: "Another post",
			SectionID: 2, OwnerID: 15, Status: "published", RemoteID: "another",
			PublishedAt: search.Unix(jan.AddDate(0, 3, 0)), ModifiedAt: search.Unix(jan.AddDate(0, 3, 0)),
			MainLanguageCode: "fre-FR", LanguageCodes: []string{"fre-FR"}, AlwaysAvailable: true,
			MainLocationID: 6, StateIDs: []int64{2}, IsHidden: true,
			Locations: []search.Location{{ID: 6, ParentID: 2, PathString: "/1/2/6/", Depth: 2, Priority: 3, Invisible: true}},
		},
	}
}

func newEngine(t *testing.T) *search.PredicateEngine {
	t.Helper()
	engine := search.NewPredicateEngine(memory.New())
	for _, doc := range fixtures() {
		require.NoError(t, engine.Index(context.Background(), doc))
	}
	return engine
}

func contentIDs(res search.Result) []int64 {
	ids := make([]int64, 0, len(res.Hits))
	for _, h := range res.Hits {
		ids = append(ids, h.ContentID)
	}
	return ids
}

func TestPredicateEngine_FindContent(t *testing.T) {
	engine := newEngine(t)
	ctx := context.Background()
	feb := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter simplecms.Criterion
		want   []int64
	}{
		{"nil filter", nil, []int64{10, 11, 12}},
		{"match none", simplecms.MatchNone{}, []int64{}},
		{"content type identifier", simplecms.ContentTypeIdentifier{Identifiers: []string{"article"}}, []int64{11, 12}},
		{"remote id", simplecms.RemoteID{Values: []string{"blog"}}, []int64{10}},
		{"parent location", simplecms.ParentLocationID{IDs: []int64{2}}, []int64{11, 12}},
		{"secondary location matches", simplecms.LocationID{IDs: []int64{5}}, []int64{11}},
		{"subtree", simplecms.Subtree{PathStrings: []string{"/1/4/"}}, []int64{11}},
		{"depth between", simplecms.Depth{Operator: simplecms.OpBetween, Values: []int{2, 3}}, []int64{11, 12}},
		{"visible", simplecms.Visibility{Visible: true}, []int64{10, 11}},
		{"hidden", simplecms.Visibility{Visible: false}, []int64{11, 12}},
		{"name wildcard", simplecms.ContentName{Pattern: "hello*"}, []int64{11}},
		{"published after", simplecms.DateMetadata{Target: simplecms.DatePublished, Operator: simplecms.OpGTE, Values: []time.Time{feb}}, []int64{11, 12}},
		{"owner", simplecms.UserMetadata{OwnerIDs: []int64{15}}, []int64{12}},
		{"object state", simplecms.ObjectStateID{IDs: []int64{2}}, []int64{12}},
		{"language", simplecms.LanguageCode{Codes: []string{"ger-DE"}}, []int64{11}},
		{"language always available", simplecms.LanguageCode{Codes: []string{"ger-DE"}, MatchAlwaysAvailable: true}, []int64{11, 12}},
		{"and", simplecms.LogicalAnd{Criteria: []simplecms.Criterion{
			simplecms.SectionID{IDs: []int64{1}},
			simplecms.ContentTypeID{IDs: []int64{2}},
		}}, []int64{11}},
		{"or", simplecms.LogicalOr{Criteria: []simplecms.Criterion{
			simplecms.ContentID{IDs: []int64{10}},
			simplecms.ContentID{IDs: []int64{12}},
		}}, []int64{10, 12}},
		{"not", simplecms.LogicalNot{Criterion: simplecms.ContentTypeID{IDs: []int64{2}}}, []int64{10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := engine.FindContent(ctx, simplecms.Query{Filter: tt.filter})
			require.NoError(t, err)
			assert.Equal(t, tt.want, contentIDs(res))
			assert.Equal(t, len(tt.want), res.TotalCount)
		})
	}
}

func TestPredicateEngine_FindLocations(t *testing.T) {
	engine := newEngine(t)

	res, err := engine.FindLocations(context.Background(), simplecms.Query{
		Filter:      simplecms.ContentTypeIdentifier{Identifiers: []string{"article"}},
		SortClauses: []simplecms.SortClause{{Target: simplecms.SortByLocationPriority, Direction: simplecms.SortDescending}},
	})
	require.NoError(t, err)
	require.Equal(t, 3, res.TotalCount)

	var locations []int64
	for _, h := range res.Hits {
		locations = append(locations, h.LocationID)
	}
	assert.Equal(t, []int64{6, 5, 3}, locations)

	t.Run("location criteria apply per location", func(t *testing.T) {
		res, err := engine.FindLocations(context.Background(), simplecms.Query{
			Filter: simplecms.Visibility{Visible: true},
		})
		require.NoError(t, err)
		var locations []int64
		for _, h := range res.Hits {
			locations = append(locations, h.LocationID)
		}
		assert.Equal(t, []int64{2, 3}, locations)
	})
}

func TestPredicateEngine_SortAndPage(t *testing.T) {
	engine := newEngine(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		query simplecms.Query
		want  []int64
		total int
	}{
		{
			name:  "name ascending",
			query: simplecms.Query{SortClauses: []simplecms.SortClause{{Target: simplecms.SortByContentName}}},
			want:  []int64{12, 10, 11},
			total: 3,
		},
		{
			name:  "modified descending",
			query: simplecms.Query{SortClauses: []simplecms.SortClause{{Target: simplecms.SortByDateModified, Direction: simplecms.SortDescending}}},
			want:  []int64{12, 11, 10},
			total: 3,
		},
		{
			name:  "path",
			query: simplecms.Query{SortClauses: []simplecms.SortClause{{Target: simplecms.SortByLocationPath}}},
			want:  []int64{10, 11, 12},
			total: 3,
		},
		{
			name:  "offset and limit",
			query: simplecms.Query{Offset: 1, Limit: 1},
			want:  []int64{11},
			total: 3,
		},
		{
			name:  "huge limit",
			query: simplecms.Query{Offset: 1, Limit: math.MaxInt},
			want:  []int64{11, 12},
			total: 3,
		},
		{
			name:  "offset past end",
			query: simplecms.Query{Offset: 10},
			want:  []int64{},
			total: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := engine.FindContent(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, contentIDs(res))
			assert.Equal(t, tt.total, res.TotalCount)
		})
	}
}

func TestPredicateEngine_Errors(t *testing.T) {
	engine := newEngine(t)
	ctx := context.Background()

	t.Run("unknown criterion", func(t *testing.T) {
		_, err := engine.FindContent(ctx, simplecms.Query{Filter: customCriterion{}})
		assert.True(t, errors.Is(err, simplecms.ErrNotImplemented))
	})

	t.Run("unknown sort clause", func(t *testing.T) {
		_, err := engine.FindContent(ctx, simplecms.Query{SortClauses: []simplecms.SortClause{{Target: "score"}}})
		assert.True(t, errors.Is(err, simplecms.ErrNotImplemented))
	})

	t.Run("between needs two values", func(t *testing.T) {
		_, err := engine.FindContent(ctx, simplecms.Query{Filter: simplecms.Depth{Operator: simplecms.OpBetween, Values: []int{1}}})
		assert.True(t, errors.Is(err, simplecms.ErrInvalidArgument))
	})

	t.Run("not without criterion", func(t *testing.T) {
		_, err := engine.FindContent(ctx, simplecms.Query{Filter: simplecms.LogicalNot{}})
		assert.True(t, errors.Is(err, simplecms.ErrInvalidArgument))
	})
}

type customCriterion struct{}

func (customCriterion) CriterionName() string { return "Custom" }

func TestPredicateEngine_Remove(t *testing.T) {
	engine := newEngine(t)
	ctx := context.Background()

	require.NoError(t, engine.Remove(ctx, 11))
	res, err := engine.FindContent(ctx, simplecms.Query{})
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 12}, contentIDs(res))
}

func TestWildcardMatcher(t *testing.T) {
	tests := []struct {
		pattern string
		value   string
		want    bool
	}{
		{"Blog", "blog", true},
		{"Blog", "blogs", false},
		{"*world", "Hello World", true},
		{"he*o*d", "hello world", true},
		{"he*x*d", "hello world", false},
		{"*", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, search.WildcardMatcher(tt.pattern)(tt.value))
		})
	}
}
