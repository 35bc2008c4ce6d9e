package event

import (
	"context"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

const (
	BeforeCreateSection = "simplecms.section.before_create_section"
	CreateSection       = "simplecms.section.create_section"

	BeforeUpdateSection = "simplecms.section.before_update_section"
	UpdateSection       = "simplecms.section.update_section"

	BeforeAssignSection = "simplecms.section.before_assign_section"
	AssignSection       = "simplecms.section.assign_section"

	BeforeAssignSectionToSubtree = "simplecms.section.before_assign_section_to_subtree"
	AssignSectionToSubtree       = "simplecms.section.assign_section_to_subtree"

	BeforeDeleteSection = "simplecms.section.before_delete_section"
	DeleteSection       = "simplecms.section.delete_section"
)

// BeforeCreateSectionEvent is dispatched before SectionService.CreateSection.
type BeforeCreateSectionEvent struct {
	Before[*simplecms.Section]

	Create simplecms.SectionCreateStruct
}

func (*BeforeCreateSectionEvent) EventName() string { return BeforeCreateSection }

// CreateSectionEvent is dispatched after SectionService.CreateSection succeeded.
type CreateSectionEvent struct {
	Result *simplecms.Section
	Create simplecms.SectionCreateStruct
}

func (*CreateSectionEvent) EventName() string { return CreateSection }

func (e *CreateSectionEvent) result() any { return e.Result }

// BeforeUpdateSectionEvent is dispatched before SectionService.UpdateSection.
type BeforeUpdateSectionEvent struct {
	Before[*simplecms.Section]

	Section *simplecms.Section
	Update  simplecms.SectionUpdateStruct
}

func (*BeforeUpdateSectionEvent) EventName() string { return BeforeUpdateSection }

// UpdateSectionEvent is dispatched after SectionService.UpdateSection succeeded.
type UpdateSectionEvent struct {
	Result  *simplecms.Section
	Section *simplecms.Section
	Update  simplecms.SectionUpdateStruct
}

func (*UpdateSectionEvent) EventName() string { return UpdateSection }

func (e *UpdateSectionEvent) result() any { return e.Result }

// BeforeAssignSectionEvent is dispatched before SectionService.AssignSection.
type BeforeAssignSectionEvent struct {
	Propagation

	ContentInfo *simplecms.ContentInfo
	Section     *simplecms.Section
}

func (*BeforeAssignSectionEvent) EventName() string { return BeforeAssignSection }

// AssignSectionEvent is dispatched after SectionService.AssignSection succeeded.
type AssignSectionEvent struct {
	ContentInfo *simplecms.ContentInfo
	Section     *simplecms.Section
}

func (*AssignSectionEvent) EventName() string { return AssignSection }

// BeforeAssignSectionToSubtreeEvent is dispatched before SectionService.AssignSectionToSubtree.
type BeforeAssignSectionToSubtreeEvent struct {
	Propagation

	Location *simplecms.Location
	Section  *simplecms.Section
}

func (*BeforeAssignSectionToSubtreeEvent) EventName() string { return BeforeAssignSectionToSubtree }

// AssignSectionToSubtreeEvent is dispatched after SectionService.AssignSectionToSubtree succeeded.
type AssignSectionToSubtreeEvent struct {
	Location *simplecms.Location
	Section  *simplecms.Section
}

func (*AssignSectionToSubtreeEvent) EventName() string { return AssignSectionToSubtree }

// BeforeDeleteSectionEvent is dispatched before SectionService.DeleteSection.
type BeforeDeleteSectionEvent struct {
	Propagation

	Section *simplecms.Section
}

func (*BeforeDeleteSectionEvent) EventName() string { return BeforeDeleteSection }

// DeleteSectionEvent is dispatched after SectionService.DeleteSection succeeded.
type DeleteSectionEvent struct {
	Section *simplecms.Section
}

func (*DeleteSectionEvent) EventName() string { return DeleteSection }

type sectionService struct {
	simplecms.SectionService
	dispatcher Dispatcher
}

// NewSectionService returns a SectionService that dispatches events around every
// mutating method of inner.
func NewSectionService(inner simplecms.SectionService, d Dispatcher) simplecms.SectionService {
	return &sectionService{SectionService: inner, dispatcher: d}
}

func (s *sectionService) CreateSection(ctx context.Context, create simplecms.SectionCreateStruct) (*simplecms.Section, error) {
	before := &BeforeCreateSectionEvent{Create: create}
	return call[*simplecms.Section](ctx, s.dispatcher, before,
		func() (*simplecms.Section, error) { return s.SectionService.CreateSection(ctx, before.Create) },
		func(result *simplecms.Section) Event { return &CreateSectionEvent{Result: result, Create: before.Create} })
}

func (s *sectionService) UpdateSection(ctx context.Context, section *simplecms.Section, update simplecms.SectionUpdateStruct) (*simplecms.Section, error) {
	before := &BeforeUpdateSectionEvent{Section: section, Update: update}
	return call[*simplecms.Section](ctx, s.dispatcher, before,
		func() (*simplecms.Section, error) { return s.SectionService.UpdateSection(ctx, before.Section, before.Update) },
		func(result *simplecms.Section) Event { return &UpdateSectionEvent{Result: result, Section: before.Section, Update: before.Update} })
}

func (s *sectionService) AssignSection(ctx context.Context, contentInfo *simplecms.ContentInfo, section *simplecms.Section) error {
	before := &BeforeAssignSectionEvent{ContentInfo: contentInfo, Section: section}
	return run(ctx, s.dispatcher, before,
		func() error { return s.SectionService.AssignSection(ctx, before.ContentInfo, before.Section) },
		func() Event { return &AssignSectionEvent{ContentInfo: before.ContentInfo, Section: before.Section} })
}

func (s *sectionService) AssignSectionToSubtree(ctx context.Context, location *simplecms.Location, section *simplecms.Section) error {
	before := &BeforeAssignSectionToSubtreeEvent{Location: location, Section: section}
	return run(ctx, s.dispatcher, before,
		func() error { return s.SectionService.AssignSectionToSubtree(ctx, before.Location, before.Section) },
		func() Event { return &AssignSectionToSubtreeEvent{Location: before.Location, Section: before.Section} })
}

func (s *sectionService) DeleteSection(ctx context.Context, section *simplecms.Section) error {
	before := &BeforeDeleteSectionEvent{Section: section}
	return run(ctx, s.dispatcher, before,
		func() error { return s.SectionService.DeleteSection(ctx, before.Section) },
		func() Event { return &DeleteSectionEvent{Section: before.Section} })
}

var _ simplecms.SectionService = (*sectionService)(nil)
