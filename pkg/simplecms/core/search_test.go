package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-cms/pkg/simplecms"
)

type reviewCriterion struct{}

func (reviewCriterion) CriterionName() string { return "Review" }

func TestSearchService_FindContentInfo(t *testing.T) {
	f := newFixture(t)
	search := f.repo.SearchService()
	_, shelf := f.createFolder(t, simplecms.RootLocationID, "Shelf")
	f.createArticle(t, shelf.ID, "Go in Action")
	f.createArticle(t, shelf.ID, "Learning Go")
	f.createArticle(t, simplecms.RootLocationID, "Rust Book")

	byName := []simplecms.SortClause{{Target: simplecms.SortByContentName, Direction: simplecms.SortAscending}}
	tests := []struct {
		name  string
		query simplecms.Query
		total int
		want  []string
	}{
		{
			name:  "ContentTypeIdentifier",
			query: simplecms.Query{Filter: simplecms.ContentTypeIdentifier{Identifiers: []string{"article"}}, SortClauses: byName},
			total: 3,
			want:  []string{"Go in Action", "Learning Go", "Rust Book"},
		},
		{
			name:  "NameWildcard",
			query: simplecms.Query{Filter: simplecms.ContentName{Pattern: "*go*"}, SortClauses: byName},
			total: 2,
			want:  []string{"Go in Action", "Learning Go"},
		},
		{
			name:  "ParentLocation",
			query: simplecms.Query{Filter: simplecms.ParentLocationID{IDs: []int64{shelf.ID}}, SortClauses: byName},
			total: 2,
			want:  []string{"Go in Action", "Learning Go"},
		},
		{
			name: "SubtreeOrFolder",
			query: simplecms.Query{
				Filter: simplecms.LogicalOr{Criteria: []simplecms.Criterion{
					simplecms.Subtree{PathStrings: []string{shelf.PathString}},
					simplecms.ContentName{Pattern: "rust*"},
				}},
				SortClauses: []simplecms.SortClause{{Target: simplecms.SortByContentName, Direction: simplecms.SortDescending}},
			},
			total: 4,
			want:  []string{"Shelf", "Rust Book", "Learning Go", "Go in Action"},
		},
		{
			name:  "Paged",
			query: simplecms.Query{Filter: simplecms.ContentTypeID{IDs: []int64{f.article.ID}}, SortClauses: byName, Offset: 1, Limit: 1},
			total: 3,
			want:  []string{"Learning Go"},
		},
		{
			name:  "Not",
			query: simplecms.Query{Filter: simplecms.LogicalNot{Criterion: simplecms.ContentTypeID{IDs: []int64{f.article.ID}}}},
			total: 1,
			want:  []string{"Shelf"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := search.FindContentInfo(f.ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.total, res.TotalCount)
			got := make([]string, 0, len(res.Items))
			for _, info := range res.Items {
				got = append(got, info.Name)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearchService_UnknownCriterion(t *testing.T) {
	f := newFixture(t)
	_, err := f.repo.SearchService().FindContentInfo(f.ctx, simplecms.Query{Filter: reviewCriterion{}})
	assert.ErrorIs(t, err, simplecms.ErrNotImplemented)

	var notImplemented *simplecms.NotImplementedError
	assert.ErrorAs(t, err, &notImplemented)
}

func TestSearchService_Languages(t *testing.T) {
	f := newFixture(t)
	f.createArticle(t, simplecms.RootLocationID, "English")
	create := simplecms.NewContentCreateStruct(f.article, "ger-DE")
	create.SetField("title", "Deutsch")
	german, _ := f.publish(t, create, simplecms.RootLocationID)

	all, err := f.repo.SearchService().FindContent(f.ctx, simplecms.Query{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, all.TotalCount)

	res, err := f.repo.SearchService().FindContent(f.ctx, simplecms.Query{}, []string{"ger-DE"})
	require.NoError(t, err)
	require.Equal(t, 1, res.TotalCount)
	assert.Equal(t, german.ID(), res.Items[0].ID())
}

func TestSearchService_FindLocations(t *testing.T) {
	f := newFixture(t)
	_, a := f.createFolder(t, simplecms.RootLocationID, "A")
	_, b := f.createFolder(t, simplecms.RootLocationID, "B")
	article, _ := f.createArticle(t, a.ID, "Twice")
	second, err := f.repo.LocationService().CreateLocation(f.ctx, article.ContentInfo(), simplecms.LocationCreateStruct{ParentLocationID: b.ID})
	require.NoError(t, err)

	res, err := f.repo.SearchService().FindLocations(f.ctx, simplecms.Query{
		Filter:      simplecms.ContentID{IDs: []int64{article.ID()}},
		SortClauses: []simplecms.SortClause{{Target: simplecms.SortByLocationPath, Direction: simplecms.SortDescending}},
	})
	require.NoError(t, err)
	require.Equal(t, 2, res.TotalCount)
	assert.Equal(t, second.ID, res.Items[0].ID)
	assert.Equal(t, "Twice", res.Items[0].ContentInfo.Name)

	deep, err := f.repo.SearchService().FindLocations(f.ctx, simplecms.Query{
		Filter: simplecms.LogicalAnd{Criteria: []simplecms.Criterion{
			simplecms.ContentID{IDs: []int64{article.ID()}},
			simplecms.Depth{Operator: simplecms.OpEQ, Values: []int{2}},
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, deep.TotalCount)
}

func TestSearchService_FindSingle(t *testing.T) {
	f := newFixture(t)
	search := f.repo.SearchService()
	only, _ := f.createArticle(t, simplecms.RootLocationID, "Only")
	f.createFolder(t, simplecms.RootLocationID, "One")
	f.createFolder(t, simplecms.RootLocationID, "Two")

	found, err := search.FindSingle(f.ctx, simplecms.ContentTypeID{IDs: []int64{f.article.ID}}, nil)
	require.NoError(t, err)
	assert.Equal(t, only.ID(), found.ID())

	tests := []struct {
		name    string
		filter  simplecms.Criterion
		wantErr error
	}{
		{name: "NilFilter", wantErr: simplecms.ErrInvalidArgument},
		{name: "NoHit", filter: simplecms.RemoteID{Values: []string{"missing"}}, wantErr: simplecms.ErrNotFound},
		{name: "TooMany", filter: simplecms.ContentTypeID{IDs: []int64{f.folder.ID}}, wantErr: simplecms.ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := search.FindSingle(f.ctx, tt.filter, nil)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
