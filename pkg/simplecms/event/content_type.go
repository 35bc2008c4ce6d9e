package event

import (
	"context"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

const (
	BeforeCreateContentTypeGroup = "simplecms.content_type.before_create_content_type_group"
	CreateContentTypeGroup       = "simplecms.content_type.create_content_type_group"

	BeforeUpdateContentTypeGroup = "simplecms.content_type.before_update_content_type_group"
	UpdateContentTypeGroup       = "simplecms.content_type.update_content_type_group"

	BeforeDeleteContentTypeGroup = "simplecms.content_type.before_delete_content_type_group"
	DeleteContentTypeGroup       = "simplecms.content_type.delete_content_type_group"

	BeforeCreateContentType = "simplecms.content_type.before_create_content_type"
	CreateContentType       = "simplecms.content_type.create_content_type"

	BeforeCreateContentTypeDraft = "simplecms.content_type.before_create_content_type_draft"
	CreateContentTypeDraft       = "simplecms.content_type.create_content_type_draft"

	BeforeUpdateContentTypeDraft = "simplecms.content_type.before_update_content_type_draft"
	UpdateContentTypeDraft       = "simplecms.content_type.update_content_type_draft"

	BeforeDeleteContentType = "simplecms.content_type.before_delete_content_type"
	DeleteContentType       = "simplecms.content_type.delete_content_type"

	BeforeCopyContentType = "simplecms.content_type.before_copy_content_type"
	CopyContentType       = "simplecms.content_type.copy_content_type"

	BeforeAssignContentTypeGroup = "simplecms.content_type.before_assign_content_type_group"
	AssignContentTypeGroup       = "simplecms.content_type.assign_content_type_group"

	BeforeUnassignContentTypeGroup = "simplecms.content_type.before_unassign_content_type_group"
	UnassignContentTypeGroup       = "simplecms.content_type.unassign_content_type_group"

	BeforeAddFieldDefinition = "simplecms.content_type.before_add_field_definition"
	AddFieldDefinition       = "simplecms.content_type.add_field_definition"

	BeforeRemoveFieldDefinition = "simplecms.content_type.before_remove_field_definition"
	RemoveFieldDefinition       = "simplecms.content_type.remove_field_definition"

	BeforeUpdateFieldDefinition = "simplecms.content_type.before_update_field_definition"
	UpdateFieldDefinition       = "simplecms.content_type.update_field_definition"

	BeforePublishContentTypeDraft = "simplecms.content_type.before_publish_content_type_draft"
	PublishContentTypeDraft       = "simplecms.content_type.publish_content_type_draft"

	BeforeDeleteContentTypeDraft = "simplecms.content_type.before_delete_content_type_draft"
	DeleteContentTypeDraft       = "simplecms.content_type.delete_content_type_draft"
)

// BeforeCreateContentTypeGroupEvent is dispatched before ContentTypeService.CreateContentTypeGroup.
type BeforeCreateContentTypeGroupEvent struct {
	Before[*simplecms.ContentTypeGroup]

	Create simplecms.ContentTypeGroupCreateStruct
}

func (*BeforeCreateContentTypeGroupEvent) EventName() string { return BeforeCreateContentTypeGroup }

// CreateContentTypeGroupEvent is dispatched after ContentTypeService.CreateContentTypeGroup succeeded.
type CreateContentTypeGroupEvent struct {
	Result *simplecms.ContentTypeGroup
	Create simplecms.ContentTypeGroupCreateStruct
}

func (*CreateContentTypeGroupEvent) EventName() string { return CreateContentTypeGroup }

func (e *CreateContentTypeGroupEvent) result() any { return e.Result }

// BeforeUpdateContentTypeGroupEvent is dispatched before ContentTypeService.UpdateContentTypeGroup.
type BeforeUpdateContentTypeGroupEvent struct {
	Propagation

	Group  *simplecms.ContentTypeGroup
	Update simplecms.ContentTypeGroupUpdateStruct
}

func (*BeforeUpdateContentTypeGroupEvent) EventName() string { return BeforeUpdateContentTypeGroup }

// UpdateContentTypeGroupEvent is dispatched after ContentTypeService.UpdateContentTypeGroup succeeded.
type UpdateContentTypeGroupEvent struct {
	Group  *simplecms.ContentTypeGroup
	Update simplecms.ContentTypeGroupUpdateStruct
}

func (*UpdateContentTypeGroupEvent) EventName() string { return UpdateContentTypeGroup }

// BeforeDeleteContentTypeGroupEvent is dispatched before ContentTypeService.DeleteContentTypeGroup.
type BeforeDeleteContentTypeGroupEvent struct {
	Propagation

	Group *simplecms.ContentTypeGroup
}

func (*BeforeDeleteContentTypeGroupEvent) EventName() string { return BeforeDeleteContentTypeGroup }

// DeleteContentTypeGroupEvent is dispatched after ContentTypeService.DeleteContentTypeGroup succeeded.
type DeleteContentTypeGroupEvent struct {
	Group *simplecms.ContentTypeGroup
}

func (*DeleteContentTypeGroupEvent) EventName() string { return DeleteContentTypeGroup }

// BeforeCreateContentTypeEvent is dispatched before ContentTypeService.CreateContentType.
type BeforeCreateContentTypeEvent struct {
	Before[*simplecms.ContentTypeDraft]

	Create simplecms.ContentTypeCreateStruct
	Groups []*simplecms.ContentTypeGroup
}

func (*BeforeCreateContentTypeEvent) EventName() string { return BeforeCreateContentType }

// CreateContentTypeEvent is dispatched after ContentTypeService.CreateContentType succeeded.
type CreateContentTypeEvent struct {
	Result *simplecms.ContentTypeDraft
	Create simplecms.ContentTypeCreateStruct
	Groups []*simplecms.ContentTypeGroup
}

func (*CreateContentTypeEvent) EventName() string { return CreateContentType }

func (e *CreateContentTypeEvent) result() any { return e.Result }

// BeforeCreateContentTypeDraftEvent is dispatched before ContentTypeService.CreateContentTypeDraft.
type BeforeCreateContentTypeDraftEvent struct {
	Before[*simplecms.ContentTypeDraft]

	ContentType *simplecms.ContentType
}

func (*BeforeCreateContentTypeDraftEvent) EventName() string { return BeforeCreateContentTypeDraft }

// CreateContentTypeDraftEvent is dispatched after ContentTypeService.CreateContentTypeDraft succeeded.
type CreateContentTypeDraftEvent struct {
	Result      *simplecms.ContentTypeDraft
	ContentType *simplecms.ContentType
}

func (*CreateContentTypeDraftEvent) EventName() string { return CreateContentTypeDraft }

func (e *CreateContentTypeDraftEvent) result() any { return e.Result }

// BeforeUpdateContentTypeDraftEvent is dispatched before ContentTypeService.UpdateContentTypeDraft.
type BeforeUpdateContentTypeDraftEvent struct {
	Propagation

	Draft  *simplecms.ContentTypeDraft
	Update simplecms.ContentTypeUpdateStruct
}

func (*BeforeUpdateContentTypeDraftEvent) EventName() string { return BeforeUpdateContentTypeDraft }

// UpdateContentTypeDraftEvent is dispatched after ContentTypeService.UpdateContentTypeDraft succeeded.
type UpdateContentTypeDraftEvent struct {
	Draft  *simplecms.ContentTypeDraft
	Update simplecms.ContentTypeUpdateStruct
}

func (*UpdateContentTypeDraftEvent) EventName() string { return UpdateContentTypeDraft }

// BeforeDeleteContentTypeEvent is dispatched before ContentTypeService.DeleteContentType.
type BeforeDeleteContentTypeEvent struct {
	Propagation

	ContentType *simplecms.ContentType
}

func (*BeforeDeleteContentTypeEvent) EventName() string { return BeforeDeleteContentType }

// DeleteContentTypeEvent is dispatched after ContentTypeService.DeleteContentType succeeded.
type DeleteContentTypeEvent struct {
	ContentType *simplecms.ContentType
}

func (*DeleteContentTypeEvent) EventName() string { return DeleteContentType }

// BeforeCopyContentTypeEvent is dispatched before ContentTypeService.CopyContentType.
type BeforeCopyContentTypeEvent struct {
	Before[*simplecms.ContentType]

	ContentType *simplecms.ContentType
}

func (*BeforeCopyContentTypeEvent) EventName() string { return BeforeCopyContentType }

// CopyContentTypeEvent is dispatched after ContentTypeService.CopyContentType succeeded.
type CopyContentTypeEvent struct {
	Result      *simplecms.ContentType
	ContentType *simplecms.ContentType
}

func (*CopyContentTypeEvent) EventName() string { return CopyContentType }

func (e *CopyContentTypeEvent) result() any { return e.Result }

// BeforeAssignContentTypeGroupEvent is dispatched before ContentTypeService.AssignContentTypeGroup.
type BeforeAssignContentTypeGroupEvent struct {
	Propagation

	ContentType *simplecms.ContentType
	Group       *simplecms.ContentTypeGroup
}

func (*BeforeAssignContentTypeGroupEvent) EventName() string { return BeforeAssignContentTypeGroup }

// AssignContentTypeGroupEvent is dispatched after ContentTypeService.AssignContentTypeGroup succeeded.
type AssignContentTypeGroupEvent struct {
	ContentType *simplecms.ContentType
	Group       *simplecms.ContentTypeGroup
}

func (*AssignContentTypeGroupEvent) EventName() string { return AssignContentTypeGroup }

// BeforeUnassignContentTypeGroupEvent is dispatched before ContentTypeService.UnassignContentTypeGroup.
type BeforeUnassignContentTypeGroupEvent struct {
	Propagation

	ContentType *simplecms.ContentType
	Group       *simplecms.ContentTypeGroup
}

func (*BeforeUnassignContentTypeGroupEvent) EventName() string { return BeforeUnassignContentTypeGroup }

// UnassignContentTypeGroupEvent is dispatched after ContentTypeService.UnassignContentTypeGroup succeeded.
type UnassignContentTypeGroupEvent struct {
	ContentType *simplecms.ContentType
	Group       *simplecms.ContentTypeGroup
}

func (*UnassignContentTypeGroupEvent) EventName() string { return UnassignContentTypeGroup }

// BeforeAddFieldDefinitionEvent is dispatched before ContentTypeService.AddFieldDefinition.
type BeforeAddFieldDefinitionEvent struct {
	Propagation

	Draft  *simplecms.ContentTypeDraft
	Create simplecms.FieldDefinitionCreateStruct
}

func (*BeforeAddFieldDefinitionEvent) EventName() string { return BeforeAddFieldDefinition }

// AddFieldDefinitionEvent is dispatched after ContentTypeService.AddFieldDefinition succeeded.
type AddFieldDefinitionEvent struct {
	Draft  *simplecms.ContentTypeDraft
	Create simplecms.FieldDefinitionCreateStruct
}

func (*AddFieldDefinitionEvent) EventName() string { return AddFieldDefinition }

// BeforeRemoveFieldDefinitionEvent is dispatched before ContentTypeService.RemoveFieldDefinition.
type BeforeRemoveFieldDefinitionEvent struct {
	Propagation

	Draft      *simplecms.ContentTypeDraft
	Definition *simplecms.FieldDefinition
}

func (*BeforeRemoveFieldDefinitionEvent) EventName() string { return BeforeRemoveFieldDefinition }

// RemoveFieldDefinitionEvent is dispatched after ContentTypeService.RemoveFieldDefinition succeeded.
type RemoveFieldDefinitionEvent struct {
	Draft      *simplecms.ContentTypeDraft
	Definition *simplecms.FieldDefinition
}

func (*RemoveFieldDefinitionEvent) EventName() string { return RemoveFieldDefinition }

// BeforeUpdateFieldDefinitionEvent is dispatched before ContentTypeService.UpdateFieldDefinition.
type BeforeUpdateFieldDefinitionEvent struct {
	Propagation

	Draft      *simplecms.ContentTypeDraft
	Definition *simplecms.FieldDefinition
	Update     simplecms.FieldDefinitionUpdateStruct
}

func (*BeforeUpdateFieldDefinitionEvent) EventName() string { return BeforeUpdateFieldDefinition }

// UpdateFieldDefinitionEvent is dispatched after ContentTypeService.UpdateFieldDefinition succeeded.
type UpdateFieldDefinitionEvent struct {
	Draft      *simplecms.ContentTypeDraft
	Definition *simplecms.FieldDefinition
	Update     simplecms.FieldDefinitionUpdateStruct
}

func (*UpdateFieldDefinitionEvent) EventName() string { return UpdateFieldDefinition }

// BeforePublishContentTypeDraftEvent is dispatched before ContentTypeService.PublishContentTypeDraft.
type BeforePublishContentTypeDraftEvent struct {
	Propagation

	Draft *simplecms.ContentTypeDraft
}

func (*BeforePublishContentTypeDraftEvent) EventName() string { return BeforePublishContentTypeDraft }

// PublishContentTypeDraftEvent is dispatched after ContentTypeService.PublishContentTypeDraft succeeded.
type PublishContentTypeDraftEvent struct {
	Draft *simplecms.ContentTypeDraft
}

func (*PublishContentTypeDraftEvent) EventName() string { return PublishContentTypeDraft }

// BeforeDeleteContentTypeDraftEvent is dispatched before ContentTypeService.DeleteContentTypeDraft.
type BeforeDeleteContentTypeDraftEvent struct {
	Propagation

	Draft *simplecms.ContentTypeDraft
}

func (*BeforeDeleteContentTypeDraftEvent) EventName() string { return BeforeDeleteContentTypeDraft }

// DeleteContentTypeDraftEvent is dispatched after ContentTypeService.DeleteContentTypeDraft succeeded.
type DeleteContentTypeDraftEvent struct {
	Draft *simplecms.ContentTypeDraft
}

func (*DeleteContentTypeDraftEvent) EventName() string { return DeleteContentTypeDraft }

type contentTypeService struct {
	simplecms.ContentTypeService
	dispatcher Dispatcher
}

// NewContentTypeService returns a ContentTypeService that dispatches events around every
// mutating method of inner.
func NewContentTypeService(inner simplecms.ContentTypeService, d Dispatcher) simplecms.ContentTypeService {
	return &contentTypeService{ContentTypeService: inner, dispatcher: d}
}

func (s *contentTypeService) CreateContentTypeGroup(ctx context.Context, create simplecms.ContentTypeGroupCreateStruct) (*simplecms.ContentTypeGroup, error) {
	before := &BeforeCreateContentTypeGroupEvent{Create: create}
	return call[*simplecms.ContentTypeGroup](ctx, s.dispatcher, before,
		func() (*simplecms.ContentTypeGroup, error) { return s.ContentTypeService.CreateContentTypeGroup(ctx, before.Create) },
		func(result *simplecms.ContentTypeGroup) Event { return &CreateContentTypeGroupEvent{Result: result, Create: before.Create} })
}

func (s *contentTypeService) UpdateContentTypeGroup(ctx context.Context, group *simplecms.ContentTypeGroup, update simplecms.ContentTypeGroupUpdateStruct) error {
	before := &BeforeUpdateContentTypeGroupEvent{Group: group, Update: update}
	return run(ctx, s.dispatcher, before,
		func() error { return s.ContentTypeService.UpdateContentTypeGroup(ctx, before.Group, before.Update) },
		func() Event { return &UpdateContentTypeGroupEvent{Group: before.Group, Update: before.Update} })
}

func (s *contentTypeService) DeleteContentTypeGroup(ctx context.Context, group *simplecms.ContentTypeGroup) error {
	before := &BeforeDeleteContentTypeGroupEvent{Group: group}
	return run(ctx, s.dispatcher, before,
		func() error { return s.ContentTypeService.DeleteContentTypeGroup(ctx, before.Group) },
		func() Event { return &DeleteContentTypeGroupEvent{Group: before.Group} })
}

func (s *contentTypeService) CreateContentType(ctx context.Context, create simplecms.ContentTypeCreateStruct, groups []*simplecms.ContentTypeGroup) (*simplecms.ContentTypeDraft, error) {
	before := &BeforeCreateContentTypeEvent{Create: create, Groups: groups}
	return call[*simplecms.ContentTypeDraft](ctx, s.dispatcher, before,
		func() (*simplecms.ContentTypeDraft, error) { return s.ContentTypeService.CreateContentType(ctx, before.Create, before.Groups) },
		func(result *simplecms.ContentTypeDraft) Event { return &CreateContentTypeEvent{Result: result, Create: before.Create, Groups: before.Groups} })
}

func (s *contentTypeService) CreateContentTypeDraft(ctx context.Context, contentType *simplecms.ContentType) (*simplecms.ContentTypeDraft, error) {
	before := &BeforeCreateContentTypeDraftEvent{ContentType: contentType}
	return call[*simplecms.ContentTypeDraft](ctx, s.dispatcher, before,
		func() (*simplecms.ContentTypeDraft, error) { return s.ContentTypeService.CreateContentTypeDraft(ctx, before.ContentType) },
		func(result *simplecms.ContentTypeDraft) Event { return &CreateContentTypeDraftEvent{Result: result, ContentType: before.ContentType} })
}

func (s *contentTypeService) UpdateContentTypeDraft(ctx context.Context, draft *simplecms.ContentTypeDraft, update simplecms.ContentTypeUpdateStruct) error {
	before := &BeforeUpdateContentTypeDraftEvent{Draft: draft, Update: update}
	return run(ctx, s.dispatcher, before,
		func() error { return s.ContentTypeService.UpdateContentTypeDraft(ctx, before.Draft, before.Update) },
		func() Event { return &UpdateContentTypeDraftEvent{Draft: before.Draft, Update: before.Update} })
}

func (s *contentTypeService) DeleteContentType(ctx context.Context, contentType *simplecms.ContentType) error {
	before := &BeforeDeleteContentTypeEvent{ContentType: contentType}
	return run(ctx, s.dispatcher, before,
		func() error { return s.ContentTypeService.DeleteContentType(ctx, before.ContentType) },
		func() Event { return &DeleteContentTypeEvent{ContentType: before.ContentType} })
}

func (s *contentTypeService) CopyContentType(ctx context.Context, contentType *simplecms.ContentType) (*simplecms.ContentType, error) {
	before := &BeforeCopyContentTypeEvent{ContentType: contentType}
	return call[*simplecms.ContentType](ctx, s.dispatcher, before,
		func() (*simplecms.ContentType, error) { return s.ContentTypeService.CopyContentType(ctx, before.ContentType) },
		func(result *simplecms.ContentType) Event { return &CopyContentTypeEvent{Result: result, ContentType: before.ContentType} })
}

func (s *contentTypeService) AssignContentTypeGroup(ctx context.Context, contentType *simplecms.ContentType, group *simplecms.ContentTypeGroup) error {
	before := &BeforeAssignContentTypeGroupEvent{ContentType: contentType, Group: group}
	return run(ctx, s.dispatcher, before,
		func() error { return s.ContentTypeService.AssignContentTypeGroup(ctx, before.ContentType, before.Group) },
		func() Event { return &AssignContentTypeGroupEvent{ContentType: before.ContentType, Group: before.Group} })
}

func (s *contentTypeService) UnassignContentTypeGroup(ctx context.Context, contentType *simplecms.ContentType, group *simplecms.ContentTypeGroup) error {
	before := &BeforeUnassignContentTypeGroupEvent{ContentType: contentType, Group: group}
	return run(ctx, s.dispatcher, before,
		func() error { return s.ContentTypeService.UnassignContentTypeGroup(ctx, before.ContentType, before.Group) },
		func() Event { return &UnassignContentTypeGroupEvent{ContentType: before.ContentType, Group: before.Group} })
}

func (s *contentTypeService) AddFieldDefinition(ctx context.Context, draft *simplecms.ContentTypeDraft, create simplecms.FieldDefinitionCreateStruct) error {
	before := &BeforeAddFieldDefinitionEvent{Draft: draft, Create: create}
	return run(ctx, s.dispatcher, before,
		func() error { return s.ContentTypeService.AddFieldDefinition(ctx, before.Draft, before.Create) },
		func() Event { return &AddFieldDefinitionEvent{Draft: before.Draft, Create: before.Create} })
}

func (s *contentTypeService) RemoveFieldDefinition(ctx context.Context, draft *simplecms.ContentTypeDraft, definition *simplecms.FieldDefinition) error {
	before := &BeforeRemoveFieldDefinitionEvent{Draft: draft, Definition: definition}
	return run(ctx, s.dispatcher, before,
		func() error { return s.ContentTypeService.RemoveFieldDefinition(ctx, before.Draft, before.Definition) },
		func() Event { return &RemoveFieldDefinitionEvent{Draft: before.Draft, Definition: before.Definition} })
}

func (s *contentTypeService) UpdateFieldDefinition(ctx context.Context, draft *simplecms.ContentTypeDraft, definition *simplecms.FieldDefinition, update simplecms.FieldDefinitionUpdateStruct) error {
	before := &BeforeUpdateFieldDefinitionEvent{Draft: draft, Definition: definition, Update: update}
	return run(ctx, s.dispatcher, before,
		func() error { return s.ContentTypeService.UpdateFieldDefinition(ctx, before.Draft, before.Definition, before.Update) },
		func() Event { return &UpdateFieldDefinitionEvent{Draft: before.Draft, Definition: before.Definition, Update: before.Update} })
}

func (s *contentTypeService) PublishContentTypeDraft(ctx context.Context, draft *simplecms.ContentTypeDraft) error {
	before := &BeforePublishContentTypeDraftEvent{Draft: draft}
	return run(ctx, s.dispatcher, before,
		func() error { return s.ContentTypeService.PublishContentTypeDraft(ctx, before.Draft) },
		func() Event { return &PublishContentTypeDraftEvent{Draft: before.Draft} })
}

func (s *contentTypeService) DeleteContentTypeDraft(ctx context.Context, draft *simplecms.ContentTypeDraft) error {
	before := &BeforeDeleteContentTypeDraftEvent{Draft: draft}
	return run(ctx, s.dispatcher, before,
		func() error { return s.ContentTypeService.DeleteContentTypeDraft(ctx, before.Draft) },
		func() Event { return &DeleteContentTypeDraftEvent{Draft: before.Draft} })
}

var _ simplecms.ContentTypeService = (*contentTypeService)(nil)
