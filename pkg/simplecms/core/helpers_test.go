package core_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/core"
	"github.com/tendant/simple-cms/pkg/simplecms/storage/memory"
	"golang.org/x/crypto/bcrypt"
)

// fixture is a repository with two languages, the standard section and
// published folder and article types.
type fixture struct {
	repo    *core.Repository
	ctx     context.Context
	group   *simplecms.ContentTypeGroup
	folder  *simplecms.ContentType
	article *simplecms.ContentType
	section *simplecms.Section
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	repo, err := core.New(
		core.WithStore(memory.New()),
		core.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		core.WithPasswordCost(bcrypt.MinCost),
		core.WithClock(func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		}),
	)
	require.NoError(t, err)

	f := &fixture{repo: repo, ctx: simplecms.WithSudo(context.Background())}

	languages := repo.LanguageService()
	_, err = languages.CreateLanguage(f.ctx, simplecms.LanguageCreateStruct{LanguageCode: "eng-GB", Name: "English", Enabled: true})
	require.NoError(t, err)
	_, err = languages.CreateLanguage(f.ctx, simplecms.LanguageCreateStruct{LanguageCode: "ger-DE", Name: "German", Enabled: true})
	require.NoError(t, err)

	f.section, err = repo.SectionService().CreateSection(f.ctx, simplecms.SectionCreateStruct{Identifier: "standard", Name: "Standard"})
	require.NoError(t, err)

	types := repo.ContentTypeService()
	f.group, err = types.CreateContentTypeGroup(f.ctx, simplecms.ContentTypeGroupCreateStruct{Identifier: "Content"})
	require.NoError(t, err)

	f.folder = f.publishType(t, simplecms.ContentTypeCreateStruct{
		Identifier:       "folder",
		MainLanguageCode: "eng-GB",
		Names:            map[string]string{"eng-GB": "Folder"},
		NameSchema:       "<short_name|name>",
		IsContainer:      true,
		DefaultSortField: simplecms.SortFieldName,
		DefaultSortOrder: simplecms.SortAscending,
		FieldDefinitions: []simplecms.FieldDefinitionCreateStruct{
			{Identifier: "name", FieldTypeIdentifier: "ezstring", IsRequired: true, IsTranslatable: true, IsSearchable: true},
			{Identifier: "short_name", FieldTypeIdentifier: "ezstring", IsTranslatable: true},
			{Identifier: "description", FieldTypeIdentifier: "eztext", IsTranslatable: true},
		},
	})
	f.article = f.publishType(t, simplecms.ContentTypeCreateStruct{
		Identifier:       "article",
		MainLanguageCode: "eng-GB",
		Names:            map[string]string{"eng-GB": "Article"},
		NameSchema:       "<title>",
		FieldDefinitions: []simplecms.FieldDefinitionCreateStruct{
			{Identifier: "title", FieldTypeIdentifier: "ezstring", IsRequired: true, IsTranslatable: true},
			{Identifier: "body", FieldTypeIdentifier: "eztext", IsTranslatable: true},
			{Identifier: "link", FieldTypeIdentifier: "ezurl"},
		},
	})
	return f
}

func (f *fixture) publishType(t *testing.T, create simplecms.ContentTypeCreateStruct) *simplecms.ContentType {
	t.Helper()
	types := f.repo.ContentTypeService()
	draft, err := types.CreateContentType(f.ctx, create, []*simplecms.ContentTypeGroup{f.group})
	require.NoError(t, err)
	require.NoError(t, types.PublishContentTypeDraft(f.ctx, draft))
	ct, err := types.LoadContentTypeByIdentifier(f.ctx, create.Identifier)
	require.NoError(t, err)
	return ct
}

// createFolder publishes a folder below parent and returns its main
// location.
func (f *fixture) createFolder(t *testing.T, parentID int64, name string) (*simplecms.Content, *simplecms.Location) {
	t.Helper()
	create := simplecms.NewContentCreateStruct(f.folder, "eng-GB")
	create.SetField("name", name)
	return f.publish(t, create, parentID)
}

func (f *fixture) createArticle(t *testing.T, parentID int64, title string) (*simplecms.Content, *simplecms.Location) {
	t.Helper()
	create := simplecms.NewContentCreateStruct(f.article, "eng-GB")
	create.SetField("title", title)
	return f.publish(t, create, parentID)
}

func (f *fixture) publish(t *testing.T, create simplecms.ContentCreateStruct, parentID int64) (*simplecms.Content, *simplecms.Location) {
	t.Helper()
	contents := f.repo.ContentService()
	draft, err := contents.CreateContent(f.ctx, create, []simplecms.LocationCreateStruct{{ParentLocationID: parentID}})
	require.NoError(t, err)
	published, err := contents.PublishVersion(f.ctx, draft.VersionInfo, nil)
	require.NoError(t, err)
	loc, err := f.repo.LocationService().LoadLocation(f.ctx, published.ContentInfo().MainLocationID)
	require.NoError(t, err)
	return published, loc
}

func (f *fixture) reloadLocation(t *testing.T, id int64) *simplecms.Location {
	t.Helper()
	loc, err := f.repo.LocationService().LoadLocation(f.ctx, id)
	require.NoError(t, err)
	return loc
}

// createUser creates a user in a new group and returns a context acting
// as that user.
func (f *fixture) createUser(t *testing.T, login string) (*simplecms.User, *simplecms.UserGroup, context.Context) {
	t.Helper()
	users := f.repo.UserService()
	group, err := users.CreateUserGroup(f.ctx, simplecms.UserGroupCreateStruct{Name: login + " group"}, nil)
	require.NoError(t, err)
	user, err := users.CreateUser(f.ctx, simplecms.UserCreateStruct{
		Login:    login,
		Email:    login + "@example.com",
		Password: "secret-" + login,
		Enabled:  true,
	}, []*simplecms.UserGroup{group})
	require.NoError(t, err)
	ctx := simplecms.WithUserReference(context.Background(), simplecms.UserReference{UserID: user.ID})
	return user, group, ctx
}

// grant publishes a role with the policies and assigns it to the user.
func (f *fixture) grant(t *testing.T, user *simplecms.User, identifier string, limitation *simplecms.Limitation, policies ...simplecms.PolicyCreateStruct) *simplecms.Role {
	t.Helper()
	roles := f.repo.RoleService()
	draft, err := roles.CreateRole(f.ctx, simplecms.RoleCreateStruct{Identifier: identifier, Policies: policies})
	require.NoError(t, err)
	require.NoError(t, roles.PublishRoleDraft(f.ctx, draft))
	role, err := roles.LoadRoleByIdentifier(f.ctx, identifier)
	require.NoError(t, err)
	require.NoError(t, roles.AssignRoleToUser(f.ctx, role, user, limitation))
	return role
}

func ptr[T any](v T) *T { return &v }
