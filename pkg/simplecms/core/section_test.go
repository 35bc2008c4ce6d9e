package core_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-cms/pkg/simplecms"
)

func TestSectionService(t *testing.T) {
	f := newFixture(t)
	sections := f.repo.SectionService()
	media, err := sections.CreateSection(f.ctx, simplecms.SectionCreateStruct{Identifier: "media", Name: "Media"})
	require.NoError(t, err)
	_, err = sections.CreateSection(f.ctx, simplecms.SectionCreateStruct{Identifier: "media"})
	assert.ErrorIs(t, err, simplecms.ErrInvalidArgument)

	_, shelf := f.createFolder(t, simplecms.RootLocationID, "Shelf")
	inside, _ := f.createArticle(t, shelf.ID, "Inside")
	f.createArticle(t, simplecms.RootLocationID, "Outside")

	require.NoError(t, sections.AssignSectionToSubtree(f.ctx, shelf, media))
	count, err := sections.CountAssignedContents(f.ctx, media)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	info, err := f.repo.ContentService().LoadContentInfo(f.ctx, inside.ID())
	require.NoError(t, err)
	assert.Equal(t, media.ID, info.SectionID)

	res, err := f.repo.SearchService().FindContentInfo(f.ctx, simplecms.Query{Filter: simplecms.SectionID{IDs: []int64{media.ID}}})
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalCount, "assignment is reindexed")

	assert.ErrorIs(t, sections.DeleteSection(f.ctx, media), simplecms.ErrBadState)

	t.Run("UsedByRoleLimitation", func(t *testing.T) {
		archive, err := sections.CreateSection(f.ctx, simplecms.SectionCreateStruct{Identifier: "archive", Name: "Archive"})
		require.NoError(t, err)
		user, _, _ := f.createUser(t, "archivist")
		f.grant(t, user, "archivist", &simplecms.Limitation{
			Identifier: simplecms.LimitationSection,
			Values:     []string{strconv.FormatInt(archive.ID, 10)},
		}, readPolicy())

		used, err := sections.IsSectionUsed(f.ctx, archive)
		require.NoError(t, err)
		assert.True(t, used)
		assert.ErrorIs(t, sections.DeleteSection(f.ctx, archive), simplecms.ErrBadState)
	})

	t.Run("DeleteUnused", func(t *testing.T) {
		spare, err := sections.CreateSection(f.ctx, simplecms.SectionCreateStruct{Identifier: "spare", Name: "Spare"})
		require.NoError(t, err)
		renamed, err := sections.UpdateSection(f.ctx, spare, simplecms.SectionUpdateStruct{Name: ptr("Spare room")})
		require.NoError(t, err)
		assert.Equal(t, "Spare room", renamed.Name)

		require.NoError(t, sections.DeleteSection(f.ctx, spare))
		_, err = sections.LoadSectionByIdentifier(f.ctx, "spare")
		assert.ErrorIs(t, err, simplecms.ErrNotFound)
	})
}

func TestLanguageService(t *testing.T) {
	f := newFixture(t)
	languages := f.repo.LanguageService()

	tests := []struct {
		name   string
		create simplecms.LanguageCreateStruct
	}{
		{name: "Duplicate", create: simplecms.LanguageCreateStruct{LanguageCode: "eng-GB", Name: "English"}},
		{name: "TooShort", create: simplecms.LanguageCreateStruct{LanguageCode: "en", Name: "English"}},
		{name: "UnknownRegion", create: simplecms.LanguageCreateStruct{LanguageCode: "eng-G1", Name: "Nowhere"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := languages.CreateLanguage(f.ctx, tt.create)
			assert.ErrorIs(t, err, simplecms.ErrInvalidArgument)
		})
	}

	french, err := languages.CreateLanguage(f.ctx, simplecms.LanguageCreateStruct{LanguageCode: "fre-FR", Name: "French", Enabled: true})
	require.NoError(t, err)
	french, err = languages.DisableLanguage(f.ctx, french)
	require.NoError(t, err)
	assert.False(t, french.Enabled)
	require.NoError(t, languages.DeleteLanguage(f.ctx, french))
	_, err = languages.LoadLanguage(f.ctx, "fre-FR")
	assert.ErrorIs(t, err, simplecms.ErrNotFound)

	f.createArticle(t, simplecms.RootLocationID, "English content")
	english, err := languages.LoadLanguage(f.ctx, "eng-GB")
	require.NoError(t, err)
	assert.ErrorIs(t, languages.DeleteLanguage(f.ctx, english), simplecms.ErrBadState)
}
