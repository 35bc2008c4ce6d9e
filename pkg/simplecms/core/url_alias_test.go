package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-cms/pkg/simplecms"
)

func TestURLAliasService_SystemAliases(t *testing.T) {
	f := newFixture(t)
	aliases := f.repo.URLAliasService()
	contents := f.repo.ContentService()
	folder, shelf := f.createFolder(t, simplecms.RootLocationID, "Café Shelf")
	_, post := f.createArticle(t, shelf.ID, "Hello, World!")

	alias, err := aliases.ReverseLookup(f.ctx, post, "eng-GB")
	require.NoError(t, err)
	assert.Equal(t, "cafe-shelf/hello-world", alias.Path)
	assert.False(t, alias.IsCustom)

	found, err := aliases.Lookup(f.ctx, "/Cafe-Shelf/", "eng-GB")
	require.NoError(t, err)
	assert.Equal(t, shelf.ID, found.LocationID)

	t.Run("Collision", func(t *testing.T) {
		_, twin := f.createArticle(t, shelf.ID, "Hello World")
		alias, err := aliases.ReverseLookup(f.ctx, twin, "eng-GB")
		require.NoError(t, err)
		assert.Equal(t, "cafe-shelf/hello-world2", alias.Path)
	})

	t.Run("RenameKeepsHistory", func(t *testing.T) {
		draft, err := contents.CreateContentDraft(f.ctx, folder.ContentInfo(), 0)
		require.NoError(t, err)
		var update simplecms.ContentUpdateStruct
		update.SetField("name", "Tea Shelf")
		draft, err = contents.UpdateContent(f.ctx, draft.VersionInfo, update)
		require.NoError(t, err)
		_, err = contents.PublishVersion(f.ctx, draft.VersionInfo, nil)
		require.NoError(t, err)

		alias, err := aliases.ReverseLookup(f.ctx, post, "eng-GB")
		require.NoError(t, err)
		assert.Equal(t, "tea-shelf/hello-world", alias.Path)

		old, err := aliases.Lookup(f.ctx, "cafe-shelf", "eng-GB")
		require.NoError(t, err)
		assert.True(t, old.IsHistory)
		assert.Equal(t, shelf.ID, old.LocationID)
	})

	_, err = aliases.Lookup(f.ctx, "nowhere", "eng-GB")
	assert.ErrorIs(t, err, simplecms.ErrNotFound)
}

func TestURLAliasService_CustomAliases(t *testing.T) {
	f := newFixture(t)
	aliases := f.repo.URLAliasService()
	_, loc := f.createArticle(t, simplecms.RootLocationID, "About us")

	custom, err := aliases.CreateURLAlias(f.ctx, loc, "/company/", "eng-GB", true, false)
	require.NoError(t, err)
	assert.Equal(t, "company", custom.Path)
	assert.True(t, custom.IsCustom)

	tests := []struct {
		name string
		path string
		lang string
	}{
		{name: "Taken", path: "company", lang: "eng-GB"},
		{name: "TakenBySystemAlias", path: "about-us", lang: "eng-GB"},
		{name: "EmptyPath", path: "/", lang: "eng-GB"},
		{name: "UnknownLanguage", path: "firma", lang: "fre-FR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := aliases.CreateURLAlias(f.ctx, loc, tt.path, tt.lang, false, false)
			assert.ErrorIs(t, err, simplecms.ErrInvalidArgument)
		})
	}

	list, err := aliases.ListLocationAliases(f.ctx, loc, true, "")
	require.NoError(t, err)
	require.Len(t, list, 1)

	global, err := aliases.CreateGlobalURLAlias(f.ctx, "module:/user/login", "login", "eng-GB", false, true)
	require.NoError(t, err)
	assert.Equal(t, simplecms.URLAliasResource, global.Type)
	globals, err := aliases.ListGlobalAliases(f.ctx, "", 0, 0)
	require.NoError(t, err)
	assert.Len(t, globals, 1)

	_, err = aliases.CreateGlobalURLAlias(f.ctx, "ftp:somewhere", "ftp", "eng-GB", false, false)
	assert.ErrorIs(t, err, simplecms.ErrInvalidArgument)

	system, err := aliases.ListLocationAliases(f.ctx, loc, false, "eng-GB")
	require.NoError(t, err)
	require.Len(t, system, 1)
	assert.ErrorIs(t, aliases.RemoveAliases(f.ctx, system), simplecms.ErrInvalidArgument)

	require.NoError(t, aliases.RemoveAliases(f.ctx, []*simplecms.URLAlias{custom, global}))
	_, err = aliases.Lookup(f.ctx, "company", "eng-GB")
	assert.ErrorIs(t, err, simplecms.ErrNotFound)
}

func TestURLWildcardService_Translate(t *testing.T) {
	f := newFixture(t)
	wildcards := f.repo.URLWildcardService()

	_, err := wildcards.Create(f.ctx, "/blog/*/*", "/articles/{2}/{1}", true)
	require.NoError(t, err)
	_, err = wildcards.Create(f.ctx, "old/*", "new/{1}", false)
	require.NoError(t, err)

	tests := []struct {
		name    string
		url     string
		want    string
		forward bool
		wantErr error
	}{
		{name: "TwoPlaceholders", url: "/blog/2024/hello", want: "/articles/hello/2024", forward: true},
		{name: "Normalized", url: "old/page/", want: "/new/page"},
		{name: "NoMatch", url: "/elsewhere", wantErr: simplecms.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := wildcards.Translate(f.ctx, tt.url)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.URI)
			assert.Equal(t, tt.forward, res.Forward)
		})
	}

	_, err = wildcards.Create(f.ctx, "/blog/*/*", "/other", false)
	assert.ErrorIs(t, err, simplecms.ErrInvalidArgument, "duplicate source")
	_, err = wildcards.Create(f.ctx, "/docs/*", "/manual/{2}", false)
	assert.ErrorIs(t, err, simplecms.ErrInvalidArgument, "placeholder without wildcard")

	all, err := wildcards.LoadAll(f.ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
