package event

import (
	"context"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

const (
	BeforeCreateContent = "simplecms.content.before_create_content"
	CreateContent       = "simplecms.content.create_content"

	BeforeUpdateContentMetadata = "simplecms.content.before_update_content_metadata"
	UpdateContentMetadata       = "simplecms.content.update_content_metadata"

	BeforeDeleteContent = "simplecms.content.before_delete_content"
	DeleteContent       = "simplecms.content.delete_content"

	BeforeCreateContentDraft = "simplecms.content.before_create_content_draft"
	CreateContentDraft       = "simplecms.content.create_content_draft"

	BeforeUpdateContent = "simplecms.content.before_update_content"
	UpdateContent       = "simplecms.content.update_content"

	BeforePublishVersion = "simplecms.content.before_publish_version"
	PublishVersion       = "simplecms.content.publish_version"

	BeforeDeleteVersion = "simplecms.content.before_delete_version"
	DeleteVersion       = "simplecms.content.delete_version"

	BeforeCopyContent = "simplecms.content.before_copy_content"
	CopyContent       = "simplecms.content.copy_content"

	BeforeAddRelation = "simplecms.content.before_add_relation"
	AddRelation       = "simplecms.content.add_relation"

	BeforeDeleteRelation = "simplecms.content.before_delete_relation"
	DeleteRelation       = "simplecms.content.delete_relation"

	BeforeDeleteTranslation = "simplecms.content.before_delete_translation"
	DeleteTranslation       = "simplecms.content.delete_translation"

	BeforeHideContent = "simplecms.content.before_hide_content"
	HideContent       = "simplecms.content.hide_content"

	BeforeRevealContent = "simplecms.content.before_reveal_content"
	RevealContent       = "simplecms.content.reveal_content"
)

// BeforeCreateContentEvent is dispatched before ContentService.CreateContent.
type BeforeCreateContentEvent struct {
	Before[*simplecms.Content]

	Create    simplecms.ContentCreateStruct
	Locations []simplecms.LocationCreateStruct
}

func (*BeforeCreateContentEvent) EventName() string { return BeforeCreateContent }

// CreateContentEvent is dispatched after ContentService.CreateContent succeeded.
type CreateContentEvent struct {
	Result    *simplecms.Content
	Create    simplecms.ContentCreateStruct
	Locations []simplecms.LocationCreateStruct
}

func (*CreateContentEvent) EventName() string { return CreateContent }

func (e *CreateContentEvent) result() any { return e.Result }

// BeforeUpdateContentMetadataEvent is dispatched before ContentService.UpdateContentMetadata.
type BeforeUpdateContentMetadataEvent struct {
	Before[*simplecms.Content]

	ContentInfo *simplecms.ContentInfo
	Update      simplecms.ContentMetadataUpdateStruct
}

func (*BeforeUpdateContentMetadataEvent) EventName() string { return BeforeUpdateContentMetadata }

// UpdateContentMetadataEvent is dispatched after ContentService.UpdateContentMetadata succeeded.
type UpdateContentMetadataEvent struct {
	Result      *simplecms.Content
	ContentInfo *simplecms.ContentInfo
	Update      simplecms.ContentMetadataUpdateStruct
}

func (*UpdateContentMetadataEvent) EventName() string { return UpdateContentMetadata }

func (e *UpdateContentMetadataEvent) result() any { return e.Result }

// BeforeDeleteContentEvent is dispatched before ContentService.DeleteContent.
type BeforeDeleteContentEvent struct {
	Before[[]int64]

	ContentInfo *simplecms.ContentInfo
}

func (*BeforeDeleteContentEvent) EventName() string { return BeforeDeleteContent }

// DeleteContentEvent is dispatched after ContentService.DeleteContent succeeded.
type DeleteContentEvent struct {
	Result      []int64
	ContentInfo *simplecms.ContentInfo
}

func (*DeleteContentEvent) EventName() string { return DeleteContent }

func (e *DeleteContentEvent) result() any { return e.Result }

// BeforeCreateContentDraftEvent is dispatched before ContentService.CreateContentDraft.
type BeforeCreateContentDraftEvent struct {
	Before[*simplecms.Content]

	ContentInfo *simplecms.ContentInfo
	VersionNo   int
}

func (*BeforeCreateContentDraftEvent) EventName() string { return BeforeCreateContentDraft }

// CreateContentDraftEvent is dispatched after ContentService.CreateContentDraft succeeded.
type CreateContentDraftEvent struct {
	Result      *simplecms.Content
	ContentInfo *simplecms.ContentInfo
	VersionNo   int
}

func (*CreateContentDraftEvent) EventName() string { return CreateContentDraft }

func (e *CreateContentDraftEvent) result() any { return e.Result }

// BeforeUpdateContentEvent is dispatched before ContentService.UpdateContent.
type BeforeUpdateContentEvent struct {
	Before[*simplecms.Content]

	VersionInfo *simplecms.VersionInfo
	Update      simplecms.ContentUpdateStruct
}

func (*BeforeUpdateContentEvent) EventName() string { return BeforeUpdateContent }

// UpdateContentEvent is dispatched after ContentService.UpdateContent succeeded.
type UpdateContentEvent struct {
	Result      *simplecms.Content
	VersionInfo *simplecms.VersionInfo
	Update      simplecms.ContentUpdateStruct
}

func (*UpdateContentEvent) EventName() string { return UpdateContent }

func (e *UpdateContentEvent) result() any { return e.Result }

// BeforePublishVersionEvent is dispatched before ContentService.PublishVersion.
type BeforePublishVersionEvent struct {
	Before[*simplecms.Content]

	VersionInfo  *simplecms.VersionInfo
	Translations []string
}

func (*BeforePublishVersionEvent) EventName() string { return BeforePublishVersion }

// PublishVersionEvent is dispatched after ContentService.PublishVersion succeeded.
type PublishVersionEvent struct {
	Result       *simplecms.Content
	VersionInfo  *simplecms.VersionInfo
	Translations []string
}

func (*PublishVersionEvent) EventName() string { return PublishVersion }

func (e *PublishVersionEvent) result() any { return e.Result }

// BeforeDeleteVersionEvent is dispatched before ContentService.DeleteVersion.
type BeforeDeleteVersionEvent struct {
	Propagation

	VersionInfo *simplecms.VersionInfo
}

func (*BeforeDeleteVersionEvent) EventName() string { return BeforeDeleteVersion }

// DeleteVersionEvent is dispatched after ContentService.DeleteVersion succeeded.
type DeleteVersionEvent struct {
	VersionInfo *simplecms.VersionInfo
}

func (*DeleteVersionEvent) EventName() string { return DeleteVersion }

// BeforeCopyContentEvent is dispatched before ContentService.CopyContent.
type BeforeCopyContentEvent struct {
	Before[*simplecms.Content]

	ContentInfo *simplecms.ContentInfo
	Destination simplecms.LocationCreateStruct
	VersionNo   int
}

func (*BeforeCopyContentEvent) EventName() string { return BeforeCopyContent }

// CopyContentEvent is dispatched after ContentService.CopyContent succeeded.
type CopyContentEvent struct {
	Result      *simplecms.Content
	ContentInfo *simplecms.ContentInfo
	Destination simplecms.LocationCreateStruct
	VersionNo   int
}

func (*CopyContentEvent) EventName() string { return CopyContent }

func (e *CopyContentEvent) result() any { return e.Result }

// BeforeAddRelationEvent is dispatched before ContentService.AddRelation.
type BeforeAddRelationEvent struct {
	Before[*simplecms.Relation]

	Source      *simplecms.VersionInfo
	Destination *simplecms.ContentInfo
}

func (*BeforeAddRelationEvent) EventName() string { return BeforeAddRelation }

// AddRelationEvent is dispatched after ContentService.AddRelation succeeded.
type AddRelationEvent struct {
	Result      *simplecms.Relation
	Source      *simplecms.VersionInfo
	Destination *simplecms.ContentInfo
}

func (*AddRelationEvent) EventName() string { return AddRelation }

func (e *AddRelationEvent) result() any { return e.Result }

// BeforeDeleteRelationEvent is dispatched before ContentService.DeleteRelation.
type BeforeDeleteRelationEvent struct {
	Propagation

	Source      *simplecms.VersionInfo
	Destination *simplecms.ContentInfo
}

func (*BeforeDeleteRelationEvent) EventName() string { return BeforeDeleteRelation }

// DeleteRelationEvent is dispatched after ContentService.DeleteRelation succeeded.
type DeleteRelationEvent struct {
	Source      *simplecms.VersionInfo
	Destination *simplecms.ContentInfo
}

func (*DeleteRelationEvent) EventName() string { return DeleteRelation }

// BeforeDeleteTranslationEvent is dispatched before ContentService.DeleteTranslation.
type BeforeDeleteTranslationEvent struct {
	Propagation

	ContentInfo  *simplecms.ContentInfo
	LanguageCode string
}

func (*BeforeDeleteTranslationEvent) EventName() string { return BeforeDeleteTranslation }

// DeleteTranslationEvent is dispatched after ContentService.DeleteTranslation succeeded.
type DeleteTranslationEvent struct {
	ContentInfo  *simplecms.ContentInfo
	LanguageCode string
}

func (*DeleteTranslationEvent) EventName() string { return DeleteTranslation }

// BeforeHideContentEvent is dispatched before ContentService.HideContent.
type BeforeHideContentEvent struct {
	Propagation

	ContentInfo *simplecms.ContentInfo
}

func (*BeforeHideContentEvent) EventName() string { return BeforeHideContent }

// HideContentEvent is dispatched after ContentService.HideContent succeeded.
type HideContentEvent struct {
	ContentInfo *simplecms.ContentInfo
}

func (*HideContentEvent) EventName() string { return HideContent }

// BeforeRevealContentEvent is dispatched before ContentService.RevealContent.
type BeforeRevealContentEvent struct {
	Propagation

	ContentInfo *simplecms.ContentInfo
}

func (*BeforeRevealContentEvent) EventName() string { return BeforeRevealContent }

// RevealContentEvent is dispatched after ContentService.RevealContent succeeded.
type RevealContentEvent struct {
	ContentInfo *simplecms.ContentInfo
}

func (*RevealContentEvent) EventName() string { return RevealContent }

type contentService struct {
	simplecms.ContentService
	dispatcher Dispatcher
}

// NewContentService returns a ContentService that dispatches events around every
// mutating method of inner.
func NewContentService(inner simplecms.ContentService, d Dispatcher) simplecms.ContentService {
	return &contentService{ContentService: inner, dispatcher: d}
}

func (s *contentService) CreateContent(ctx context.Context, create simplecms.ContentCreateStruct, locations []simplecms.LocationCreateStruct) (*simplecms.Content, error) {
	before := &BeforeCreateContentEvent{Create: create, Locations: locations}
	return call[*simplecms.Content](ctx, s.dispatcher, before,
		func() (*simplecms.Content, error) { return s.ContentService.CreateContent(ctx, before.Create, before.Locations) },
		func(result *simplecms.Content) Event { return &CreateContentEvent{Result: result, Create: before.Create, Locations: before.Locations} })
}

func (s *contentService) UpdateContentMetadata(ctx context.Context, contentInfo *simplecms.ContentInfo, update simplecms.ContentMetadataUpdateStruct) (*simplecms.Content, error) {
	before := &BeforeUpdateContentMetadataEvent{ContentInfo: contentInfo, Update: update}
	return call[*simplecms.Content](ctx, s.dispatcher, before,
		func() (*simplecms.Content, error) { return s.ContentService.UpdateContentMetadata(ctx, before.ContentInfo, before.Update) },
		func(result *simplecms.Content) Event { return &UpdateContentMetadataEvent{Result: result, ContentInfo: before.ContentInfo, Update: before.Update} })
}

func (s *contentService) DeleteContent(ctx context.Context, contentInfo *simplecms.ContentInfo) ([]int64, error) {
	before := &BeforeDeleteContentEvent{ContentInfo: contentInfo}
	return call[[]int64](ctx, s.dispatcher, before,
		func() ([]int64, error) { return s.ContentService.DeleteContent(ctx, before.ContentInfo) },
		func(result []int64) Event { return &DeleteContentEvent{Result: result, ContentInfo: before.ContentInfo} })
}

func (s *contentService) CreateContentDraft(ctx context.Context, contentInfo *simplecms.ContentInfo, versionNo int) (*simplecms.Content, error) {
	before := &BeforeCreateContentDraftEvent{ContentInfo: contentInfo, VersionNo: versionNo}
	return call[*simplecms.Content](ctx, s.dispatcher, before,
		func() (*simplecms.Content, error) { return s.ContentService.CreateContentDraft(ctx, before.ContentInfo, before.VersionNo) },
		func(result *simplecms.Content) Event { return &CreateContentDraftEvent{Result: result, ContentInfo: before.ContentInfo, VersionNo: before.VersionNo} })
}

func (s *contentService) UpdateContent(ctx context.Context, versionInfo *simplecms.VersionInfo, update simplecms.ContentUpdateStruct) (*simplecms.Content, error) {
	before := &BeforeUpdateContentEvent{VersionInfo: versionInfo, Update: update}
	return call[*simplecms.Content](ctx, s.dispatcher, before,
		func() (*simplecms.Content, error) { return s.ContentService.UpdateContent(ctx, before.VersionInfo, before.Update) },
		func(result *simplecms.Content) Event { return &UpdateContentEvent{Result: result, VersionInfo: before.VersionInfo, Update: before.Update} })
}

func (s *contentService) PublishVersion(ctx context.Context, versionInfo *simplecms.VersionInfo, translations []string) (*simplecms.Content, error) {
	before := &BeforePublishVersionEvent{VersionInfo: versionInfo, Translations: translations}
	return call[*simplecms.Content](ctx, s.dispatcher, before,
		func() (*simplecms.Content, error) { return s.ContentService.PublishVersion(ctx, before.VersionInfo, before.Translations) },
		func(result *simplecms.Content) Event { return &PublishVersionEvent{Result: result, VersionInfo: before.VersionInfo, Translations: before.Translations} })
}

func (s *contentService) DeleteVersion(ctx context.Context, versionInfo *simplecms.VersionInfo) error {
	before := &BeforeDeleteVersionEvent{VersionInfo: versionInfo}
	return run(ctx, s.dispatcher, before,
		func() error { return s.ContentService.DeleteVersion(ctx, before.VersionInfo) },
		func() Event { return &DeleteVersionEvent{VersionInfo: before.VersionInfo} })
}

func (s *contentService) CopyContent(ctx context.Context, contentInfo *simplecms.ContentInfo, destination simplecms.LocationCreateStruct, versionNo int) (*simplecms.Content, error) {
	before := &BeforeCopyContentEvent{ContentInfo: contentInfo, Destination: destination, VersionNo: versionNo}
	return call[*simplecms.Content](ctx, s.dispatcher, before,
		func() (*simplecms.Content, error) { return s.ContentService.CopyContent(ctx, before.ContentInfo, before.Destination, before.VersionNo) },
		func(result *simplecms.Content) Event { return &CopyContentEvent{Result: result, ContentInfo: before.ContentInfo, Destination: before.Destination, VersionNo: before.VersionNo} })
}

func (s *contentService) AddRelation(ctx context.Context, source *simplecms.VersionInfo, destination *simplecms.ContentInfo) (*simplecms.Relation, error) {
	before := &BeforeAddRelationEvent{Source: source, Destination: destination}
	return call[*simplecms.Relation](ctx, s.dispatcher, before,
		func() (*simplecms.Relation, error) { return s.ContentService.AddRelation(ctx, before.Source, before.Destination) },
		func(result *simplecms.Relation) Event { return &AddRelationEvent{Result: result, Source: before.Source, Destination: before.Destination} })
}

func (s *contentService) DeleteRelation(ctx context.Context, source *simplecms.VersionInfo, destination *simplecms.ContentInfo) error {
	before := &BeforeDeleteRelationEvent{Source: source, Destination: destination}
	return run(ctx, s.dispatcher, before,
		func() error { return s.ContentService.DeleteRelation(ctx, before.Source, before.Destination) },
		func() Event { return &DeleteRelationEvent{Source: before.Source, Destination: before.Destination} })
}

func (s *contentService) DeleteTranslation(ctx context.Context, contentInfo *simplecms.ContentInfo, languageCode string) error {
	before := &BeforeDeleteTranslationEvent{ContentInfo: contentInfo, LanguageCode: languageCode}
	return run(ctx, s.dispatcher, before,
		func() error { return s.ContentService.DeleteTranslation(ctx, before.ContentInfo, before.LanguageCode) },
		func() Event { return &DeleteTranslationEvent{ContentInfo: before.ContentInfo, LanguageCode: before.LanguageCode} })
}

func (s *contentService) HideContent(ctx context.Context, contentInfo *simplecms.ContentInfo) error {
	before := &BeforeHideContentEvent{ContentInfo: contentInfo}
	return run(ctx, s.dispatcher, before,
		func() error { return s.ContentService.HideContent(ctx, before.ContentInfo) },
		func() Event { return &HideContentEvent{ContentInfo: before.ContentInfo} })
}

func (s *contentService) RevealContent(ctx context.Context, contentInfo *simplecms.ContentInfo) error {
	before := &BeforeRevealContentEvent{ContentInfo: contentInfo}
	return run(ctx, s.dispatcher, before,
		func() error { return s.ContentService.RevealContent(ctx, before.ContentInfo) },
		func() Event { return &RevealContentEvent{ContentInfo: before.ContentInfo} })
}

var _ simplecms.ContentService = (*contentService)(nil)
