package core

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"
	"github.com/tendant/simple-cms/pkg/simplecms"
)

// Published content types and their drafts share IDs. Drafts live in their
// own table until published.
type contentTypeService struct{ *Repository }

func (r *Repository) loadContentTypeGroup(ctx context.Context, id int64) (*simplecms.ContentTypeGroup, error) {
	g, err := r.contentTypeGroups.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "contentTypeGroup", id)
	}
	return &g, nil
}

func (r *Repository) loadContentType(ctx context.Context, id int64) (*simplecms.ContentType, error) {
	ct, err := r.contentTypes.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "contentType", id)
	}
	return &ct, nil
}

func (r *Repository) loadContentTypeDraft(ctx context.Context, id int64) (*simplecms.ContentTypeDraft, error) {
	ct, err := r.contentTypeDrafts.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "contentTypeDraft", id)
	}
	return &simplecms.ContentTypeDraft{ContentType: ct}, nil
}

// uniqueContentType checks identifier and remote ID against types and
// drafts other than self.
func (r *Repository) uniqueContentType(ctx context.Context, identifier, remoteID string, self int64) error {
	for _, table := range []interface {
		First(context.Context, func(simplecms.ContentType) bool) (simplecms.ContentType, bool, error)
	}{r.contentTypes, r.contentTypeDrafts} {
		other, exists, err := table.First(ctx, func(ct simplecms.ContentType) bool {
			return ct.ID != self && (ct.Identifier == identifier || (remoteID != "" && ct.RemoteID == remoteID))
		})
		if err != nil {
			return err
		}
		if !exists {
			continue
		}
		if other.Identifier == identifier {
			return invalid("identifier", "content type %q already exists", identifier)
		}
		return invalid("remoteId", "content type with remote id %q already exists", remoteID)
	}
	return nil
}

func (r *Repository) newFieldDefinition(ctx context.Context, create simplecms.FieldDefinitionCreateStruct, position int) (simplecms.FieldDefinition, error) {
	if create.Identifier == "" {
		return simplecms.FieldDefinition{}, invalid("fieldDefinitions", "field identifier must not be empty")
	}
	if _, err := r.fieldTypes.Get(create.FieldTypeIdentifier); err != nil {
		return simplecms.FieldDefinition{}, invalid("fieldDefinitions", "field %q: %v", create.Identifier, err)
	}
	id, err := r.store.NextID(ctx, "field_definition")
	if err != nil {
		return simplecms.FieldDefinition{}, err
	}
	return simplecms.FieldDefinition{
		ID:                  id,
		Identifier:          create.Identifier,
		FieldTypeIdentifier: create.FieldTypeIdentifier,
		Names:               create.Names,
		Descriptions:        create.Descriptions,
		FieldGroup:          create.FieldGroup,
		Position:            cmp.Or(create.Position, position),
		IsRequired:          create.IsRequired,
		IsTranslatable:      create.IsTranslatable,
		IsSearchable:        create.IsSearchable,
		DefaultValue:        create.DefaultValue,
		Settings:            create.Settings,
	}, nil
}

func (s contentTypeService) LoadContentTypeGroup(ctx context.Context, id int64) (*simplecms.ContentTypeGroup, error) {
	return s.loadContentTypeGroup(ctx, id)
}

func (s contentTypeService) LoadContentTypeGroupByIdentifier(ctx context.Context, identifier string) (*simplecms.ContentTypeGroup, error) {
	g, ok, err := s.contentTypeGroups.First(ctx, func(g simplecms.ContentTypeGroup) bool { return g.Identifier == identifier })
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &simplecms.NotFoundError{What: "contentTypeGroup", Identifier: identifier}
	}
	return &g, nil
}

func (s contentTypeService) LoadContentTypeGroups(ctx context.Context) ([]*simplecms.ContentTypeGroup, error) {
	groups, err := s.contentTypeGroups.All(ctx)
	if err != nil {
		return nil, err
	}
	return ptrs(groups), nil
}

func (s contentTypeService) LoadContentType(ctx context.Context, id int64) (*simplecms.ContentType, error) {
	return s.loadContentType(ctx, id)
}

func (s contentTypeService) LoadContentTypeByIdentifier(ctx context.Context, identifier string) (*simplecms.ContentType, error) {
	ct, ok, err := s.contentTypes.First(ctx, func(ct simplecms.ContentType) bool { return ct.Identifier == identifier })
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &simplecms.NotFoundError{What: "contentType", Identifier: identifier}
	}
	return &ct, nil
}

func (s contentTypeService) LoadContentTypeByRemoteID(ctx context.Context, remoteID string) (*simplecms.ContentType, error) {
	ct, ok, err := s.contentTypes.First(ctx, func(ct simplecms.ContentType) bool { return ct.RemoteID == remoteID })
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &simplecms.NotFoundError{What: "contentType", Identifier: remoteID}
	}
	return &ct, nil
}

// LoadContentTypeList skips IDs without a published type.
func (s contentTypeService) LoadContentTypeList(ctx context.Context, ids []int64) ([]*simplecms.ContentType, error) {
	var out []*simplecms.ContentType
	for _, id := range ids {
		ct, err := s.loadContentType(ctx, id)
		if isNotFound(err) {
			continue
		} else if err != nil {
			return nil, err
		}
		out = append(out, ct)
	}
	return out, nil
}

func (s contentTypeService) LoadContentTypes(ctx context.Context, group *simplecms.ContentTypeGroup) ([]*simplecms.ContentType, error) {
	types, err := s.contentTypes.Find(ctx, func(ct simplecms.ContentType) bool { return slices.Contains(ct.GroupIDs, group.ID) })
	if err != nil {
		return nil, err
	}
	return ptrs(types), nil
}

func (s contentTypeService) LoadContentTypeDraft(ctx context.Context, id int64) (*simplecms.ContentTypeDraft, error) {
	return s.loadContentTypeDraft(ctx, id)
}

func (s contentTypeService) CreateContentTypeGroup(ctx context.Context, create simplecms.ContentTypeGroupCreateStruct) (*simplecms.ContentTypeGroup, error) {
	if err := s.require(ctx, "class", "create", nil); err != nil {
		return nil, err
	}
	if create.Identifier == "" {
		return nil, invalid("identifier", "must not be empty")
	}
	if err := s.uniqueContentTypeGroup(ctx, create.Identifier, 0); err != nil {
		return nil, err
	}
	created := create.CreationDate
	if created.IsZero() {
		created = s.now()
	}
	creator := cmp.Or(create.CreatorID, s.currentUserID(ctx))
	g, err := s.contentTypeGroups.Create(ctx, func(id int64) simplecms.ContentTypeGroup {
		return simplecms.ContentTypeGroup{
			ID:               id,
			Identifier:       create.Identifier,
			CreatorID:        creator,
			CreationDate:     created,
			ModifierID:       creator,
			ModificationDate: created,
			IsSystem:         create.IsSystem,
		}
	})
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *Repository) uniqueContentTypeGroup(ctx context.Context, identifier string, self int64) error {
	_, exists, err := r.contentTypeGroups.First(ctx, func(g simplecms.ContentTypeGroup) bool {
		return g.Identifier == identifier && g.ID != self
	})
	if err != nil {
		return err
	}
	if exists {
		return invalid("identifier", "content type group %q already exists", identifier)
	}
	return nil
}

func (s contentTypeService) UpdateContentTypeGroup(ctx context.Context, group *simplecms.ContentTypeGroup, update simplecms.ContentTypeGroupUpdateStruct) error {
	if err := s.require(ctx, "class", "update", nil); err != nil {
		return err
	}
	g, err := s.loadContentTypeGroup(ctx, group.ID)
	if err != nil {
		return err
	}
	if update.Identifier != nil && *update.Identifier != g.Identifier {
		if err := s.uniqueContentTypeGroup(ctx, *update.Identifier, g.ID); err != nil {
			return err
		}
		g.Identifier = *update.Identifier
	}
	g.ModifierID = cmp.Or(update.ModifierID, s.currentUserID(ctx))
	g.ModificationDate = s.now()
	if update.ModificationDate != nil {
		g.ModificationDate = *update.ModificationDate
	}
	return s.contentTypeGroups.Put(ctx, g.ID, *g)
}

func (s contentTypeService) DeleteContentTypeGroup(ctx context.Context, group *simplecms.ContentTypeGroup) error {
	if err := s.require(ctx, "class", "delete", nil); err != nil {
		return err
	}
	g, err := s.loadContentTypeGroup(ctx, group.ID)
	if err != nil {
		return err
	}
	inGroup := func(ct simplecms.ContentType) bool { return slices.Contains(ct.GroupIDs, g.ID) }
	n, err := s.contentTypes.Count(ctx, inGroup)
	if err != nil {
		return err
	}
	if n == 0 {
		if n, err = s.contentTypeDrafts.Count(ctx, inGroup); err != nil {
			return err
		}
	}
	if n > 0 {
		return badState("contentTypeGroup", "group %q still has content types", g.Identifier)
	}
	return s.contentTypeGroups.Delete(ctx, g.ID)
}

func (s contentTypeService) CreateContentType(ctx context.Context, create simplecms.ContentTypeCreateStruct, groups []*simplecms.ContentTypeGroup) (*simplecms.ContentTypeDraft, error) {
	if err := s.require(ctx, "class", "create", nil); err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, invalid("contentTypeGroups", "a content type needs at least one group")
	}
	if create.Identifier == "" {
		return nil, invalid("identifier", "must not be empty")
	}
	if err := s.uniqueContentType(ctx, create.Identifier, create.RemoteID, 0); err != nil {
		return nil, err
	}
	groupIDs := make([]int64, 0, len(groups))
	for _, group := range groups {
		g, err := s.loadContentTypeGroup(ctx, group.ID)
		if err != nil {
			return nil, err
		}
		groupIDs = append(groupIDs, g.ID)
	}

	defs := make([]simplecms.FieldDefinition, 0, len(create.FieldDefinitions))
	for i, fc := range create.FieldDefinitions {
		if slices.ContainsFunc(defs, func(d simplecms.FieldDefinition) bool { return d.Identifier == fc.Identifier }) {
			return nil, invalid("fieldDefinitions", "duplicate field identifier %q", fc.Identifier)
		}
		def, err := s.newFieldDefinition(ctx, fc, i+1)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}

	id, err := s.store.NextID(ctx, "content_type")
	if err != nil {
		return nil, err
	}
	now := s.now()
	creator := cmp.Or(create.CreatorID, s.currentUserID(ctx))
	ct := simplecms.ContentType{
		ID:                     id,
		Identifier:             create.Identifier,
		Status:                 simplecms.ContentTypeStatusDraft,
		RemoteID:               cmp.Or(create.RemoteID, uuid.NewString()),
		Names:                  create.Names,
		Descriptions:           create.Descriptions,
		NameSchema:             create.NameSchema,
		URLAliasSchema:         create.URLAliasSchema,
		MainLanguageCode:       s.language(create.MainLanguageCode),
		IsContainer:            create.IsContainer,
		DefaultAlwaysAvailable: create.DefaultAlwaysAvailable,
		DefaultSortField:       cmp.Or(create.DefaultSortField, simplecms.SortFieldPath),
		DefaultSortOrder:       cmp.Or(create.DefaultSortOrder, simplecms.SortAscending),
		CreatorID:              creator,
		CreationDate:           now,
		ModifierID:             creator,
		ModificationDate:       now,
		FieldDefinitions:       defs,
		GroupIDs:               groupIDs,
	}
	if err := s.contentTypeDrafts.Put(ctx, id, ct); err != nil {
		return nil, err
	}
	return &simplecms.ContentTypeDraft{ContentType: ct}, nil
}

func (s contentTypeService) CreateContentTypeDraft(ctx context.Context, contentType *simplecms.ContentType) (*simplecms.ContentTypeDraft, error) {
	if err := s.require(ctx, "class", "update", nil); err != nil {
		return nil, err
	}
	ct, err := s.loadContentType(ctx, contentType.ID)
	if err != nil {
		return nil, err
	}
	if _, err := s.contentTypeDrafts.Get(ctx, ct.ID); err == nil {
		return nil, badState("contentType", "content type %q already has a draft", ct.Identifier)
	} else if !isNotFound(err) {
		return nil, err
	}
	draft := *ct
	draft.Status = simplecms.ContentTypeStatusDraft
	draft.FieldDefinitions = slices.Clone(ct.FieldDefinitions)
	draft.GroupIDs = slices.Clone(ct.GroupIDs)
	draft.ModifierID = s.currentUserID(ctx)
	draft.ModificationDate = s.now()
	if err := s.contentTypeDrafts.Put(ctx, draft.ID, draft); err != nil {
		return nil, err
	}
	return &simplecms.ContentTypeDraft{ContentType: draft}, nil
}

func (s contentTypeService) UpdateContentTypeDraft(ctx context.Context, draft *simplecms.ContentTypeDraft, update simplecms.ContentTypeUpdateStruct) error {
	return s.editDraft(ctx, draft, func(ct *simplecms.ContentType) error {
		if update.Identifier != nil || update.RemoteID != nil {
			identifier := ct.Identifier
			if update.Identifier != nil {
				identifier = *update.Identifier
			}
			remoteID := ""
			if update.RemoteID != nil {
				remoteID = *update.RemoteID
			}
			if err := s.uniqueContentType(ctx, identifier, remoteID, ct.ID); err != nil {
				return err
			}
			ct.Identifier = identifier
			ct.RemoteID = cmp.Or(remoteID, ct.RemoteID)
		}
		if update.MainLanguageCode != nil {
			ct.MainLanguageCode = *update.MainLanguageCode
		}
		if update.Names != nil {
			ct.Names = update.Names
		}
		if update.Descriptions != nil {
			ct.Descriptions = update.Descriptions
		}
		if update.NameSchema != nil {
			ct.NameSchema = *update.NameSchema
		}
		if update.URLAliasSchema != nil {
			ct.URLAliasSchema = *update.URLAliasSchema
		}
		if update.IsContainer != nil {
			ct.IsContainer = *update.IsContainer
		}
		if update.DefaultAlwaysAvailable != nil {
			ct.DefaultAlwaysAvailable = *update.DefaultAlwaysAvailable
		}
		if update.DefaultSortField != nil {
			ct.DefaultSortField = *update.DefaultSortField
		}
		if update.DefaultSortOrder != nil {
			ct.DefaultSortOrder = *update.DefaultSortOrder
		}
		if update.ModifierID != 0 {
			ct.ModifierID = update.ModifierID
		}
		return nil
	})
}

// editDraft loads a draft, applies edit and stores the result.
func (s contentTypeService) editDraft(ctx context.Context, draft *simplecms.ContentTypeDraft, edit func(*simplecms.ContentType) error) error {
	if err := s.require(ctx, "class", "update", nil); err != nil {
		return err
	}
	d, err := s.loadContentTypeDraft(ctx, draft.ID)
	if err != nil {
		return err
	}
	ct := d.ContentType
	if err := edit(&ct); err != nil {
		return err
	}
	if ct.ModifierID == 0 {
		ct.ModifierID = s.currentUserID(ctx)
	}
	ct.ModificationDate = s.now()
	return s.contentTypeDrafts.Put(ctx, ct.ID, ct)
}

func (s contentTypeService) DeleteContentType(ctx context.Context, contentType *simplecms.ContentType) error {
	if err := s.require(ctx, "class", "delete", nil); err != nil {
		return err
	}
	ct, err := s.loadContentType(ctx, contentType.ID)
	if err != nil {
		return err
	}
	n, err := s.contentInfos.Count(ctx, func(info simplecms.ContentInfo) bool { return info.ContentTypeID == ct.ID })
	if err != nil {
		return err
	}
	if n > 0 {
		return badState("contentType", "content type %q still has %d content items", ct.Identifier, n)
	}
	if err := s.contentTypeDrafts.Delete(ctx, ct.ID); err != nil {
		return err
	}
	s.logger.Info("deleted content type", "identifier", ct.Identifier)
	return s.contentTypes.Delete(ctx, ct.ID)
}

// CopyContentType publishes a copy named copy_of_<identifier>_<id>.
func (s contentTypeService) CopyContentType(ctx context.Context, contentType *simplecms.ContentType) (*simplecms.ContentType, error) {
	if err := s.require(ctx, "class", "create", nil); err != nil {
		return nil, err
	}
	ct, err := s.loadContentType(ctx, contentType.ID)
	if err != nil {
		return nil, err
	}
	id, err := s.store.NextID(ctx, "content_type")
	if err != nil {
		return nil, err
	}
	copied := *ct
	copied.ID = id
	copied.Identifier = fmt.Sprintf("copy_of_%s_%d", ct.Identifier, id)
	copied.RemoteID = uuid.NewString()
	copied.Names = maps.Clone(ct.Names)
	copied.GroupIDs = slices.Clone(ct.GroupIDs)
	copied.CreatorID = s.currentUserID(ctx)
	copied.ModifierID = copied.CreatorID
	copied.CreationDate = s.now()
	copied.ModificationDate = copied.CreationDate
	copied.FieldDefinitions = make([]simplecms.FieldDefinition, 0, len(ct.FieldDefinitions))
	for _, def := range ct.FieldDefinitions {
		if def.ID, err = s.store.NextID(ctx, "field_definition"); err != nil {
			return nil, err
		}
		copied.FieldDefinitions = append(copied.FieldDefinitions, def)
	}
	if err := s.contentTypes.Put(ctx, copied.ID, copied); err != nil {
		return nil, err
	}
	return &copied, nil
}

func (s contentTypeService) AssignContentTypeGroup(ctx context.Context, contentType *simplecms.ContentType, group *simplecms.ContentTypeGroup) error {
	if err := s.require(ctx, "class", "update", nil); err != nil {
		return err
	}
	ct, err := s.loadContentType(ctx, contentType.ID)
	if err != nil {
		return err
	}
	g, err := s.loadContentTypeGroup(ctx, group.ID)
	if err != nil {
		return err
	}
	if slices.Contains(ct.GroupIDs, g.ID) {
		return invalid("contentTypeGroup", "content type %q is already in group %q", ct.Identifier, g.Identifier)
	}
	return s.setGroups(ctx, ct, append(slices.Clone(ct.GroupIDs), g.ID))
}

func (s contentTypeService) UnassignContentTypeGroup(ctx context.Context, contentType *simplecms.ContentType, group *simplecms.ContentTypeGroup) error {
	if err := s.require(ctx, "class", "update", nil); err != nil {
		return err
	}
	ct, err := s.loadContentType(ctx, contentType.ID)
	if err != nil {
		return err
	}
	if !slices.Contains(ct.GroupIDs, group.ID) {
		return invalid("contentTypeGroup", "content type %q is not in group %d", ct.Identifier, group.ID)
	}
	if len(ct.GroupIDs) == 1 {
		return badState("contentType", "content type %q cannot lose its last group", ct.Identifier)
	}
	return s.setGroups(ctx, ct, slices.DeleteFunc(slices.Clone(ct.GroupIDs), func(id int64) bool { return id == group.ID }))
}

// setGroups updates the groups of a type and of its draft, if any.
func (s contentTypeService) setGroups(ctx context.Context, ct *simplecms.ContentType, groupIDs []int64) error {
	ct.GroupIDs = groupIDs
	if err := s.contentTypes.Put(ctx, ct.ID, *ct); err != nil {
		return err
	}
	draft, err := s.contentTypeDrafts.Get(ctx, ct.ID)
	if isNotFound(err) {
		return nil
	} else if err != nil {
		return err
	}
	draft.GroupIDs = slices.Clone(groupIDs)
	return s.contentTypeDrafts.Put(ctx, draft.ID, draft)
}

func (s contentTypeService) AddFieldDefinition(ctx context.Context, draft *simplecms.ContentTypeDraft, create simplecms.FieldDefinitionCreateStruct) error {
	return s.editDraft(ctx, draft, func(ct *simplecms.ContentType) error {
		if _, exists := ct.FieldDefinition(create.Identifier); exists {
			return invalid("fieldDefinition", "content type %q already has a field %q", ct.Identifier, create.Identifier)
		}
		position := 1
		for _, def := range ct.FieldDefinitions {
			position = max(position, def.Position+1)
		}
		def, err := s.newFieldDefinition(ctx, create, position)
		if err != nil {
			return err
		}
		ct.FieldDefinitions = append(ct.FieldDefinitions, def)
		return nil
	})
}

func (s contentTypeService) RemoveFieldDefinition(ctx context.Context, draft *simplecms.ContentTypeDraft, definition *simplecms.FieldDefinition) error {
	return s.editDraft(ctx, draft, func(ct *simplecms.ContentType) error {
		i := slices.IndexFunc(ct.FieldDefinitions, func(d simplecms.FieldDefinition) bool { return d.ID == definition.ID })
		if i < 0 {
			return invalid("fieldDefinition", "field definition %d is not part of content type %q", definition.ID, ct.Identifier)
		}
		ct.FieldDefinitions = slices.Delete(ct.FieldDefinitions, i, i+1)
		return nil
	})
}

func (s contentTypeService) UpdateFieldDefinition(ctx context.Context, draft *simplecms.ContentTypeDraft, definition *simplecms.FieldDefinition, update simplecms.FieldDefinitionUpdateStruct) error {
	return s.editDraft(ctx, draft, func(ct *simplecms.ContentType) error {
		i := slices.IndexFunc(ct.FieldDefinitions, func(d simplecms.FieldDefinition) bool { return d.ID == definition.ID })
		if i < 0 {
			return invalid("fieldDefinition", "field definition %d is not part of content type %q", definition.ID, ct.Identifier)
		}
		def := &ct.FieldDefinitions[i]
		if update.Identifier != nil && *update.Identifier != def.Identifier {
			if _, exists := ct.FieldDefinition(*update.Identifier); exists {
				return invalid("identifier", "content type %q already has a field %q", ct.Identifier, *update.Identifier)
			}
			def.Identifier = *update.Identifier
		}
		if update.Names != nil {
			def.Names = update.Names
		}
		if update.Descriptions != nil {
			def.Descriptions = update.Descriptions
		}
		if update.FieldGroup != nil {
			def.FieldGroup = *update.FieldGroup
		}
		if update.Position != nil {
			def.Position = *update.Position
		}
		if update.IsRequired != nil {
			def.IsRequired = *update.IsRequired
		}
		if update.IsTranslatable != nil {
			def.IsTranslatable = *update.IsTranslatable
		}
		if update.IsSearchable != nil {
			def.IsSearchable = *update.IsSearchable
		}
		if update.DefaultValue != nil {
			def.DefaultValue = update.DefaultValue
		}
		if update.Settings != nil {
			def.Settings = update.Settings
		}
		return nil
	})
}

// PublishContentTypeDraft replaces the published type with the draft and
// reindexes its content.
func (s contentTypeService) PublishContentTypeDraft(ctx context.Context, draft *simplecms.ContentTypeDraft) error {
	if err := s.require(ctx, "class", "update", nil); err != nil {
		return err
	}
	d, err := s.loadContentTypeDraft(ctx, draft.ID)
	if err != nil {
		return err
	}
	if len(d.FieldDefinitions) == 0 {
		return invalid("contentTypeDraft", "content type %q has no field definitions", d.Identifier)
	}
	ct := d.ContentType
	ct.Status = simplecms.ContentTypeStatusDefined
	ct.ModificationDate = s.now()
	if err := s.contentTypes.Put(ctx, ct.ID, ct); err != nil {
		return err
	}
	if err := s.contentTypeDrafts.Delete(ctx, ct.ID); err != nil {
		return err
	}

	infos, err := s.contentInfos.Find(ctx, func(info simplecms.ContentInfo) bool { return info.ContentTypeID == ct.ID })
	if err != nil {
		return err
	}
	for _, info := range infos {
		if err := s.reindex(ctx, info.ID); err != nil {
			return err
		}
	}
	s.logger.Info("published content type", "identifier", ct.Identifier, "content", len(infos))
	return nil
}

func (s contentTypeService) DeleteContentTypeDraft(ctx context.Context, draft *simplecms.ContentTypeDraft) error {
	if err := s.require(ctx, "class", "delete", nil); err != nil {
		return err
	}
	d, err := s.loadContentTypeDraft(ctx, draft.ID)
	if err != nil {
		return err
	}
	return s.contentTypeDrafts.Delete(ctx, d.ID)
}

var _ simplecms.ContentTypeService = contentTypeService{}
