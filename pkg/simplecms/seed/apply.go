package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

// Stats counts the items created by Apply.
type Stats struct {
	Languages    int
	Sections     int
	ContentTypes int
	UserGroups   int
	Users        int
	Roles        int
	Content      int
}

// Total returns the number of created items.
func (s Stats) Total() int {
	return s.Languages + s.Sections + s.ContentTypes + s.UserGroups + s.Users + s.Roles + s.Content
}

// Applier installs seed files into a repository.
type Applier struct {
	repo   simplecms.Repository
	logger *slog.Logger
}

// NewApplier returns an applier writing to repo. Calls run as sudo.
func NewApplier(repo simplecms.Repository, logger *slog.Logger) *Applier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Applier{repo: repo, logger: logger}
}

// Apply creates the items of f that do not exist yet.
func (a *Applier) Apply(ctx context.Context, f *File) (Stats, error) {
	ctx = simplecms.WithSudo(ctx)
	var stats Stats

	steps := []struct {
		name string
		fn   func(context.Context, *File, *Stats) error
	}{
		{"languages", a.languages},
		{"sections", a.sections},
		{"content types", a.contentTypes},
		{"user groups", a.userGroups},
		{"users", a.users},
		{"roles", a.roles},
		{"content", a.content},
	}
	for _, step := range steps {
		if err := step.fn(ctx, f, &stats); err != nil {
			return stats, fmt.Errorf("seed %s: %w", step.name, err)
		}
	}
	a.logger.Info("applied seed", "created", stats.Total())
	return stats, nil
}

func (a *Applier) languages(ctx context.Context, f *File, stats *Stats) error {
	service := a.repo.LanguageService()
	for _, l := range f.Languages {
		if _, err := service.LoadLanguage(ctx, l.Code); err == nil {
			continue
		} else if !errors.Is(err, simplecms.ErrNotFound) {
			return err
		}
		_, err := service.CreateLanguage(ctx, simplecms.LanguageCreateStruct{LanguageCode: l.Code, Name: l.Name, Enabled: !l.Disabled})
		if err != nil {
			return err
		}
		stats.Languages++
	}
	return nil
}

func (a *Applier) sections(ctx context.Context, f *File, stats *Stats) error {
	service := a.repo.SectionService()
	for _, s := range f.Sections {
		if _, err := service.LoadSectionByIdentifier(ctx, s.Identifier); err == nil {
			continue
		} else if !errors.Is(err, simplecms.ErrNotFound) {
			return err
		}
		if _, err := service.CreateSection(ctx, simplecms.SectionCreateStruct{Identifier: s.Identifier, Name: s.Name}); err != nil {
			return err
		}
		stats.Sections++
	}
	return nil
}

func (a *Applier) contentTypes(ctx context.Context, f *File, stats *Stats) error {
	service := a.repo.ContentTypeService()
	groups := make(map[string]*simplecms.ContentTypeGroup)
	group := func(identifier string) (*simplecms.ContentTypeGroup, error) {
		if g, ok := groups[identifier]; ok {
			return g, nil
		}
		g, err := service.LoadContentTypeGroupByIdentifier(ctx, identifier)
		if errors.Is(err, simplecms.ErrNotFound) {
			g, err = service.CreateContentTypeGroup(ctx, simplecms.ContentTypeGroupCreateStruct{Identifier: identifier})
		}
		if err != nil {
			return nil, err
		}
		groups[identifier] = g
		return g, nil
	}
	for _, identifier := range f.ContentTypeGroups {
		if _, err := group(identifier); err != nil {
			return err
		}
	}

	for _, ct := range f.ContentTypes {
		if _, err := service.LoadContentTypeByIdentifier(ctx, ct.Identifier); err == nil {
			continue
		} else if !errors.Is(err, simplecms.ErrNotFound) {
			return err
		}
		groupIdentifier := ct.Group
		if groupIdentifier == "" {
			groupIdentifier = "Content"
		}
		g, err := group(groupIdentifier)
		if err != nil {
			return err
		}

		create := simplecms.ContentTypeCreateStruct{
			Identifier:             ct.Identifier,
			MainLanguageCode:       ct.MainLanguage,
			Names:                  ct.Names,
			NameSchema:             ct.NameSchema,
			URLAliasSchema:         ct.URLAliasSchema,
			IsContainer:            ct.Container,
			DefaultAlwaysAvailable: ct.AlwaysAvailable,
			DefaultSortField:       ct.SortField,
			DefaultSortOrder:       ct.SortOrder,
		}
		for i, field := range ct.Fields {
			create.FieldDefinitions = append(create.FieldDefinitions, simplecms.FieldDefinitionCreateStruct{
				Identifier:          field.Identifier,
				FieldTypeIdentifier: field.Type,
				Names:               field.Names,
				Position:            i + 1,
				IsRequired:          field.Required,
				IsTranslatable:      field.Translatable,
				IsSearchable:        field.Searchable,
				DefaultValue:        field.Default,
				Settings:            field.Settings,
			})
		}
		draft, err := service.CreateContentType(ctx, create, []*simplecms.ContentTypeGroup{g})
		if err != nil {
			return fmt.Errorf("content type %q: %w", ct.Identifier, err)
		}
		if err := service.PublishContentTypeDraft(ctx, draft); err != nil {
			return fmt.Errorf("publish content type %q: %w", ct.Identifier, err)
		}
		stats.ContentTypes++
	}
	return nil
}

func (a *Applier) userGroups(ctx context.Context, f *File, stats *Stats) error {
	var walk func(parent *simplecms.UserGroup, groups []UserGroup) error
	walk = func(parent *simplecms.UserGroup, groups []UserGroup) error {
		for _, g := range groups {
			existing, err := a.childGroup(ctx, parent, g.Name)
			if err != nil {
				return err
			}
			if existing == nil {
				var p *simplecms.UserGroup
				if parent.ID != 0 {
					p = parent
				}
				existing, err = a.repo.UserService().CreateUserGroup(ctx, simplecms.UserGroupCreateStruct{
					Name:        g.Name,
					Description: g.Description,
					RemoteID:    g.RemoteID,
				}, p)
				if err != nil {
					return fmt.Errorf("user group %q: %w", g.Name, err)
				}
				stats.UserGroups++
			}
			if err := walk(existing, g.Children); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(&simplecms.UserGroup{}, f.UserGroups)
}

// childGroup returns the subgroup of parent named name, or nil. A parent
// with a zero ID stands for the top level.
func (a *Applier) childGroup(ctx context.Context, parent *simplecms.UserGroup, name string) (*simplecms.UserGroup, error) {
	children, err := a.repo.UserService().LoadSubUserGroups(ctx, parent)
	if err != nil {
		return nil, err
	}
	for _, c := range children {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

// groupByPath resolves a slash separated group path.
func (a *Applier) groupByPath(ctx context.Context, path string) (*simplecms.UserGroup, error) {
	group := &simplecms.UserGroup{}
	for _, name := range strings.Split(strings.Trim(path, "/"), "/") {
		child, err := a.childGroup(ctx, group, name)
		if err != nil {
			return nil, err
		}
		if child == nil {
			return nil, &simplecms.NotFoundError{What: "UserGroup", Identifier: path}
		}
		group = child
	}
	return group, nil
}

func (a *Applier) users(ctx context.Context, f *File, stats *Stats) error {
	service := a.repo.UserService()
	for _, u := range f.Users {
		if _, err := service.LoadUserByLogin(ctx, u.Login); err == nil {
			continue
		} else if !errors.Is(err, simplecms.ErrNotFound) {
			return err
		}
		groups := make([]*simplecms.UserGroup, 0, len(u.Groups))
		for _, path := range u.Groups {
			g, err := a.groupByPath(ctx, path)
			if err != nil {
				return fmt.Errorf("user %q: %w", u.Login, err)
			}
			groups = append(groups, g)
		}
		_, err := service.CreateUser(ctx, simplecms.UserCreateStruct{
			Login:    u.Login,
			Email:    u.Email,
			Password: u.Password,
			Name:     u.Name,
			Enabled:  !u.Disabled,
		}, groups)
		if err != nil {
			return fmt.Errorf("user %q: %w", u.Login, err)
		}
		stats.Users++
	}
	return nil
}

func (a *Applier) roles(ctx context.Context, f *File, stats *Stats) error {
	service := a.repo.RoleService()
	for _, r := range f.Roles {
		if _, err := service.LoadRoleByIdentifier(ctx, r.Identifier); err == nil {
			continue
		} else if !errors.Is(err, simplecms.ErrNotFound) {
			return err
		}

		create := simplecms.RoleCreateStruct{Identifier: r.Identifier}
		for _, p := range r.Policies {
			policy := simplecms.PolicyCreateStruct{Module: p.Module, Function: p.Function}
			for _, l := range p.Limitations {
				values, err := a.limitationValues(ctx, l)
				if err != nil {
					return fmt.Errorf("role %q: %w", r.Identifier, err)
				}
				policy.Limitations = append(policy.Limitations, simplecms.Limitation{Identifier: l.Identifier, Values: values})
			}
			create.Policies = append(create.Policies, policy)
		}
		draft, err := service.CreateRole(ctx, create)
		if err != nil {
			return fmt.Errorf("role %q: %w", r.Identifier, err)
		}
		if err := service.PublishRoleDraft(ctx, draft); err != nil {
			return fmt.Errorf("publish role %q: %w", r.Identifier, err)
		}
		role, err := service.LoadRoleByIdentifier(ctx, r.Identifier)
		if err != nil {
			return err
		}

		for _, path := range r.Groups {
			g, err := a.groupByPath(ctx, path)
			if err != nil {
				return fmt.Errorf("role %q: %w", r.Identifier, err)
			}
			if err := service.AssignRoleToUserGroup(ctx, role, g, nil); err != nil {
				return fmt.Errorf("assign role %q: %w", r.Identifier, err)
			}
		}
		for _, login := range r.Users {
			u, err := a.repo.UserService().LoadUserByLogin(ctx, login)
			if err != nil {
				return fmt.Errorf("role %q: %w", r.Identifier, err)
			}
			if err := service.AssignRoleToUser(ctx, role, u, nil); err != nil {
				return fmt.Errorf("assign role %q: %w", r.Identifier, err)
			}
		}
		stats.Roles++
	}
	return nil
}

// limitationValues maps section and content type identifiers to IDs.
// Numeric values are kept.
func (a *Applier) limitationValues(ctx context.Context, l Limitation) ([]string, error) {
	values := slices.Clone(l.Values)
	for i, v := range values {
		if _, err := strconv.ParseInt(v, 10, 64); err == nil {
			continue
		}
		switch l.Identifier {
		case simplecms.LimitationSection:
			s, err := a.repo.SectionService().LoadSectionByIdentifier(ctx, v)
			if err != nil {
				return nil, err
			}
			values[i] = strconv.FormatInt(s.ID, 10)
		case simplecms.LimitationContentType:
			ct, err := a.repo.ContentTypeService().LoadContentTypeByIdentifier(ctx, v)
			if err != nil {
				return nil, err
			}
			values[i] = strconv.FormatInt(ct.ID, 10)
		}
	}
	return values, nil
}

func (a *Applier) content(ctx context.Context, f *File, stats *Stats) error {
	contents := a.repo.ContentService()
	for _, c := range f.Content {
		if c.RemoteID != "" {
			if _, err := contents.LoadContentInfoByRemoteID(ctx, c.RemoteID); err == nil {
				continue
			} else if !errors.Is(err, simplecms.ErrNotFound) {
				return err
			}
		}

		ct, err := a.repo.ContentTypeService().LoadContentTypeByIdentifier(ctx, c.Type)
		if err != nil {
			return fmt.Errorf("content %q: %w", c.RemoteID, err)
		}
		language := c.Language
		if language == "" {
			language = ct.MainLanguageCode
		}
		create := simplecms.NewContentCreateStruct(ct, language)
		create.RemoteID = c.RemoteID
		if c.Section != "" {
			section, err := a.repo.SectionService().LoadSectionByIdentifier(ctx, c.Section)
			if err != nil {
				return fmt.Errorf("content %q: %w", c.RemoteID, err)
			}
			create.SectionID = section.ID
		}
		identifiers := make([]string, 0, len(c.Fields))
		for identifier := range c.Fields {
			identifiers = append(identifiers, identifier)
		}
		slices.Sort(identifiers)
		for _, identifier := range identifiers {
			create.SetField(identifier, c.Fields[identifier])
		}

		parentID := simplecms.RootLocationID
		if c.Parent != "" {
			parent, err := contents.LoadContentInfoByRemoteID(ctx, c.Parent)
			if err != nil {
				return fmt.Errorf("content %q: parent: %w", c.RemoteID, err)
			}
			parentID = parent.MainLocationID
		}

		draft, err := contents.CreateContent(ctx, create, []simplecms.LocationCreateStruct{{ParentLocationID: parentID}})
		if err != nil {
			return fmt.Errorf("content %q: %w", c.RemoteID, err)
		}
		if _, err := contents.PublishVersion(ctx, draft.VersionInfo, nil); err != nil {
			return fmt.Errorf("publish content %q: %w", c.RemoteID, err)
		}
		stats.Content++
	}
	return nil
}
