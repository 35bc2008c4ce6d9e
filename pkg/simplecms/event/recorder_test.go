package event_test

import (
	"context"
	"reflect"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

// recorder collects the calls that reach the inner services.
type recorder struct {
	calls  []recordedCall
	result any
}

type recordedCall struct {
	method string
	args   []any
}

func (r *recorder) record(method string, args ...any) error {
	r.calls = append(r.calls, recordedCall{method: method, args: args})
	return nil
}

// recorded records the call and returns a fresh value of T.
func recorded[T any](r *recorder, method string, args ...any) (T, error) {
	r.record(method, args...)
	result := sample(reflect.TypeFor[T](), len(r.calls)).Interface().(T)
	r.result = result
	return result, nil
}

type recordingRepository struct {
	simplecms.Repository
	rec *recorder
}

func (r *recordingRepository) ContentService() simplecms.ContentService { return &recordingContentService{rec: r.rec} }
func (r *recordingRepository) ContentTypeService() simplecms.ContentTypeService { return &recordingContentTypeService{rec: r.rec} }
func (r *recordingRepository) LocationService() simplecms.LocationService { return &recordingLocationService{rec: r.rec} }
func (r *recordingRepository) UserService() simplecms.UserService { return &recordingUserService{rec: r.rec} }
func (r *recordingRepository) RoleService() simplecms.RoleService { return &recordingRoleService{rec: r.rec} }
func (r *recordingRepository) TrashService() simplecms.TrashService { return &recordingTrashService{rec: r.rec} }
func (r *recordingRepository) URLService() simplecms.URLService { return &recordingURLService{rec: r.rec} }
func (r *recordingRepository) NotificationService() simplecms.NotificationService { return &recordingNotificationService{rec: r.rec} }
func (r *recordingRepository) ObjectStateService() simplecms.ObjectStateService { return &recordingObjectStateService{rec: r.rec} }
func (r *recordingRepository) SectionService() simplecms.SectionService { return &recordingSectionService{rec: r.rec} }
func (r *recordingRepository) LanguageService() simplecms.LanguageService { return &recordingLanguageService{rec: r.rec} }
func (r *recordingRepository) URLAliasService() simplecms.URLAliasService { return &recordingURLAliasService{rec: r.rec} }
func (r *recordingRepository) URLWildcardService() simplecms.URLWildcardService { return &recordingURLWildcardService{rec: r.rec} }
func (r *recordingRepository) BookmarkService() simplecms.BookmarkService { return &recordingBookmarkService{rec: r.rec} }
func (r *recordingRepository) UserPreferenceService() simplecms.UserPreferenceService { return &recordingUserPreferenceService{rec: r.rec} }

type recordingContentService struct {
	simplecms.ContentService
	rec *recorder
}

func (s *recordingContentService) CreateContent(_ context.Context, create simplecms.ContentCreateStruct, locations []simplecms.LocationCreateStruct) (*simplecms.Content, error) {
	return recorded[*simplecms.Content](s.rec, "CreateContent", create, locations)
}

func (s *recordingContentService) UpdateContentMetadata(_ context.Context, contentInfo *simplecms.ContentInfo, update simplecms.ContentMetadataUpdateStruct) (*simplecms.Content, error) {
	return recorded[*simplecms.Content](s.rec, "UpdateContentMetadata", contentInfo, update)
}

func (s *recordingContentService) DeleteContent(_ context.Context, contentInfo *simplecms.ContentInfo) ([]int64, error) {
	return recorded[[]int64](s.rec, "DeleteContent", contentInfo)
}

func (s *recordingContentService) CreateContentDraft(_ context.Context, contentInfo *simplecms.ContentInfo, versionNo int) (*simplecms.Content, error) {
	return recorded[*simplecms.Content](s.rec, "CreateContentDraft", contentInfo, versionNo)
}

func (s *recordingContentService) UpdateContent(_ context.Context, versionInfo *simplecms.VersionInfo, update simplecms.ContentUpdateStruct) (*simplecms.Content, error) {
	return recorded[*simplecms.Content](s.rec, "UpdateContent", versionInfo, update)
}

func (s *recordingContentService) PublishVersion(_ context.Context, versionInfo *simplecms.VersionInfo, translations []string) (*simplecms.Content, error) {
	return recorded[*simplecms.Content](s.rec, "PublishVersion", versionInfo, translations)
}

func (s *recordingContentService) DeleteVersion(_ context.Context, versionInfo *simplecms.VersionInfo) error {
	return s.rec.record("DeleteVersion", versionInfo)
}

func (s *recordingContentService) CopyContent(_ context.Context, contentInfo *simplecms.ContentInfo, destination simplecms.LocationCreateStruct, versionNo int) (*simplecms.Content, error) {
	return recorded[*simplecms.Content](s.rec, "CopyContent", contentInfo, destination, versionNo)
}

func (s *recordingContentService) AddRelation(_ context.Context, source *simplecms.VersionInfo, destination *simplecms.ContentInfo) (*simplecms.Relation, error) {
	return recorded[*simplecms.Relation](s.rec, "AddRelation", source, destination)
}

func (s *recordingContentService) DeleteRelation(_ context.Context, source *simplecms.VersionInfo, destination *simplecms.ContentInfo) error {
	return s.rec.record("DeleteRelation", source, destination)
}

func (s *recordingContentService) DeleteTranslation(_ context.Context, contentInfo *simplecms.ContentInfo, languageCode string) error {
	return s.rec.record("DeleteTranslation", contentInfo, languageCode)
}

func (s *recordingContentService) HideContent(_ context.Context, contentInfo *simplecms.ContentInfo) error {
	return s.rec.record("HideContent", contentInfo)
}

func (s *recordingContentService) RevealContent(_ context.Context, contentInfo *simplecms.ContentInfo) error {
	return s.rec.record("RevealContent", contentInfo)
}

type recordingContentTypeService struct {
	simplecms.ContentTypeService
	rec *recorder
}

func (s *recordingContentTypeService) CreateContentTypeGroup(_ context.Context, create simplecms.ContentTypeGroupCreateStruct) (*simplecms.ContentTypeGroup, error) {
	return recorded[*simplecms.ContentTypeGroup](s.rec, "CreateContentTypeGroup", create)
}

func (s *recordingContentTypeService) UpdateContentTypeGroup(_ context.Context, group *simplecms.ContentTypeGroup, update simplecms.ContentTypeGroupUpdateStruct) error {
	return s.rec.record("UpdateContentTypeGroup", group, update)
}

func (s *recordingContentTypeService) DeleteContentTypeGroup(_ context.Context, group *simplecms.ContentTypeGroup) error {
	return s.rec.record("DeleteContentTypeGroup", group)
}

func (s *recordingContentTypeService) CreateContentType(_ context.Context, create simplecms.ContentTypeCreateStruct, groups []*simplecms.ContentTypeGroup) (*simplecms.ContentTypeDraft, error) {
	return recorded[*simplecms.ContentTypeDraft](s.rec, "CreateContentType", create, groups)
}

func (s *recordingContentTypeService) CreateContentTypeDraft(_ context.Context, contentType *simplecms.ContentType) (*simplecms.ContentTypeDraft, error) {
	return recorded[*simplecms.ContentTypeDraft](s.rec, "CreateContentTypeDraft", contentType)
}

func (s *recordingContentTypeService) UpdateContentTypeDraft(_ context.Context, draft *simplecms.ContentTypeDraft, update simplecms.ContentTypeUpdateStruct) error {
	return s.rec.record("UpdateContentTypeDraft", draft, update)
}

func (s *recordingContentTypeService) DeleteContentType(_ context.Context, contentType *simplecms.ContentType) error {
	return s.rec.record("DeleteContentType", contentType)
}

func (s *recordingContentTypeService) CopyContentType(_ context.Context, contentType *simplecms.ContentType) (*simplecms.ContentType, error) {
	return recorded[*simplecms.ContentType](s.rec, "CopyContentType", contentType)
}

func (s *recordingContentTypeService) AssignContentTypeGroup(_ context.Context, contentType *simplecms.ContentType, group *simplecms.ContentTypeGroup) error {
	return s.rec.record("AssignContentTypeGroup", contentType, group)
}

func (s *recordingContentTypeService) UnassignContentTypeGroup(_ context.Context, contentType *simplecms.ContentType, group *simplecms.ContentTypeGroup) error {
	return s.rec.record("UnassignContentTypeGroup", contentType, group)
}

func (s *recordingContentTypeService) AddFieldDefinition(_ context.Context, draft *simplecms.ContentTypeDraft, create simplecms.FieldDefinitionCreateStruct) error {
	return s.rec.record("AddFieldDefinition", draft, create)
}

func (s *recordingContentTypeService) RemoveFieldDefinition(_ context.Context, draft *simplecms.ContentTypeDraft, definition *simplecms.FieldDefinition) error {
	return s.rec.record("RemoveFieldDefinition", draft, definition)
}

func (s *recordingContentTypeService) UpdateFieldDefinition(_ context.Context, draft *simplecms.ContentTypeDraft, definition *simplecms.FieldDefinition, update simplecms.FieldDefinitionUpdateStruct) error {
	return s.rec.record("UpdateFieldDefinition", draft, definition, update)
}

func (s *recordingContentTypeService) PublishContentTypeDraft(_ context.Context, draft *simplecms.ContentTypeDraft) error {
	return s.rec.record("PublishContentTypeDraft", draft)
}

func (s *recordingContentTypeService) DeleteContentTypeDraft(_ context.Context, draft *simplecms.ContentTypeDraft) error {
	return s.rec.record("DeleteContentTypeDraft", draft)
}

type recordingLocationService struct {
	simplecms.LocationService
	rec *recorder
}

func (s *recordingLocationService) CreateLocation(_ context.Context, contentInfo *simplecms.ContentInfo, create simplecms.LocationCreateStruct) (*simplecms.Location, error) {
	return recorded[*simplecms.Location](s.rec, "CreateLocation", contentInfo, create)
}

func (s *recordingLocationService) UpdateLocation(_ context.Context, location *simplecms.Location, update simplecms.LocationUpdateStruct) (*simplecms.Location, error) {
	return recorded[*simplecms.Location](s.rec, "UpdateLocation", location, update)
}

func (s *recordingLocationService) SwapLocation(_ context.Context, location1 *simplecms.Location, location2 *simplecms.Location) error {
	return s.rec.record("SwapLocation", location1, location2)
}

func (s *recordingLocationService) HideLocation(_ context.Context, location *simplecms.Location) (*simplecms.Location, error) {
	return recorded[*simplecms.Location](s.rec, "HideLocation", location)
}

func (s *recordingLocationService) UnhideLocation(_ context.Context, location *simplecms.Location) (*simplecms.Location, error) {
	return recorded[*simplecms.Location](s.rec, "UnhideLocation", location)
}

func (s *recordingLocationService) MoveSubtree(_ context.Context, location *simplecms.Location, newParent *simplecms.Location) error {
	return s.rec.record("MoveSubtree", location, newParent)
}

func (s *recordingLocationService) DeleteLocation(_ context.Context, location *simplecms.Location) error {
	return s.rec.record("DeleteLocation", location)
}

func (s *recordingLocationService) CopySubtree(_ context.Context, subtree *simplecms.Location, targetParent *simplecms.Location) (*simplecms.Location, error) {
	return recorded[*simplecms.Location](s.rec, "CopySubtree", subtree, targetParent)
}

type recordingUserService struct {
	simplecms.UserService
	rec *recorder
}

func (s *recordingUserService) CreateUserGroup(_ context.Context, create simplecms.UserGroupCreateStruct, parent *simplecms.UserGroup) (*simplecms.UserGroup, error) {
	return recorded[*simplecms.UserGroup](s.rec, "CreateUserGroup", create, parent)
}

func (s *recordingUserService) DeleteUserGroup(_ context.Context, group *simplecms.UserGroup) error {
	return s.rec.record("DeleteUserGroup", group)
}

func (s *recordingUserService) MoveUserGroup(_ context.Context, group *simplecms.UserGroup, newParent *simplecms.UserGroup) error {
	return s.rec.record("MoveUserGroup", group, newParent)
}

func (s *recordingUserService) UpdateUserGroup(_ context.Context, group *simplecms.UserGroup, update simplecms.UserGroupUpdateStruct) (*simplecms.UserGroup, error) {
	return recorded[*simplecms.UserGroup](s.rec, "UpdateUserGroup", group, update)
}

func (s *recordingUserService) CreateUser(_ context.Context, create simplecms.UserCreateStruct, groups []*simplecms.UserGroup) (*simplecms.User, error) {
	return recorded[*simplecms.User](s.rec, "CreateUser", create, groups)
}

func (s *recordingUserService) DeleteUser(_ context.Context, user *simplecms.User) error {
	return s.rec.record("DeleteUser", user)
}

func (s *recordingUserService) UpdateUser(_ context.Context, user *simplecms.User, update simplecms.UserUpdateStruct) (*simplecms.User, error) {
	return recorded[*simplecms.User](s.rec, "UpdateUser", user, update)
}

func (s *recordingUserService) UpdateUserPassword(_ context.Context, user *simplecms.User, newPassword string) (*simplecms.User, error) {
	return recorded[*simplecms.User](s.rec, "UpdateUserPassword", user, newPassword)
}

func (s *recordingUserService) AssignUserToUserGroup(_ context.Context, user *simplecms.User, group *simplecms.UserGroup) error {
	return s.rec.record("AssignUserToUserGroup", user, group)
}

func (s *recordingUserService) UnassignUserFromUserGroup(_ context.Context, user *simplecms.User, group *simplecms.UserGroup) error {
	return s.rec.record("UnassignUserFromUserGroup", user, group)
}

type recordingRoleService struct {
	simplecms.RoleService
	rec *recorder
}

func (s *recordingRoleService) CreateRole(_ context.Context, create simplecms.RoleCreateStruct) (*simplecms.RoleDraft, error) {
	return recorded[*simplecms.RoleDraft](s.rec, "CreateRole", create)
}

func (s *recordingRoleService) CreateRoleDraft(_ context.Context, role *simplecms.Role) (*simplecms.RoleDraft, error) {
	return recorded[*simplecms.RoleDraft](s.rec, "CreateRoleDraft", role)
}

func (s *recordingRoleService) UpdateRoleDraft(_ context.Context, draft *simplecms.RoleDraft, update simplecms.RoleUpdateStruct) (*simplecms.RoleDraft, error) {
	return recorded[*simplecms.RoleDraft](s.rec, "UpdateRoleDraft", draft, update)
}

func (s *recordingRoleService) AddPolicyByRoleDraft(_ context.Context, draft *simplecms.RoleDraft, create simplecms.PolicyCreateStruct) (*simplecms.RoleDraft, error) {
	return recorded[*simplecms.RoleDraft](s.rec, "AddPolicyByRoleDraft", draft, create)
}

func (s *recordingRoleService) RemovePolicyByRoleDraft(_ context.Context, draft *simplecms.RoleDraft, policy *simplecms.PolicyDraft) (*simplecms.RoleDraft, error) {
	return recorded[*simplecms.RoleDraft](s.rec, "RemovePolicyByRoleDraft", draft, policy)
}

func (s *recordingRoleService) UpdatePolicyByRoleDraft(_ context.Context, draft *simplecms.RoleDraft, policy *simplecms.PolicyDraft, update simplecms.PolicyUpdateStruct) (*simplecms.PolicyDraft, error) {
	return recorded[*simplecms.PolicyDraft](s.rec, "UpdatePolicyByRoleDraft", draft, policy, update)
}

func (s *recordingRoleService) DeleteRoleDraft(_ context.Context, draft *simplecms.RoleDraft) error {
	return s.rec.record("DeleteRoleDraft", draft)
}

func (s *recordingRoleService) PublishRoleDraft(_ context.Context, draft *simplecms.RoleDraft) error {
	return s.rec.record("PublishRoleDraft", draft)
}

func (s *recordingRoleService) DeleteRole(_ context.Context, role *simplecms.Role) error {
	return s.rec.record("DeleteRole", role)
}

func (s *recordingRoleService) AssignRoleToUserGroup(_ context.Context, role *simplecms.Role, group *simplecms.UserGroup, limitation *simplecms.Limitation) error {
	return s.rec.record("AssignRoleToUserGroup", role, group, limitation)
}

func (s *recordingRoleService) AssignRoleToUser(_ context.Context, role *simplecms.Role, user *simplecms.User, limitation *simplecms.Limitation) error {
	return s.rec.record("AssignRoleToUser", role, user, limitation)
}

func (s *recordingRoleService) RemoveRoleAssignment(_ context.Context, assignment *simplecms.RoleAssignment) error {
	return s.rec.record("RemoveRoleAssignment", assignment)
}

type recordingTrashService struct {
	simplecms.TrashService
	rec *recorder
}

func (s *recordingTrashService) Trash(_ context.Context, location *simplecms.Location) (*simplecms.TrashItem, error) {
	return recorded[*simplecms.TrashItem](s.rec, "Trash", location)
}

func (s *recordingTrashService) Recover(_ context.Context, item *simplecms.TrashItem, newParent *simplecms.Location) (*simplecms.Location, error) {
	return recorded[*simplecms.Location](s.rec, "Recover", item, newParent)
}

func (s *recordingTrashService) EmptyTrash(_ context.Context) (*simplecms.TrashItemDeleteResultList, error) {
	return recorded[*simplecms.TrashItemDeleteResultList](s.rec, "EmptyTrash")
}

func (s *recordingTrashService) DeleteTrashItem(_ context.Context, item *simplecms.TrashItem) (*simplecms.TrashItemDeleteResult, error) {
	return recorded[*simplecms.TrashItemDeleteResult](s.rec, "DeleteTrashItem", item)
}

type recordingURLService struct {
	simplecms.URLService
	rec *recorder
}

func (s *recordingURLService) UpdateURL(_ context.Context, url *simplecms.URL, update simplecms.URLUpdateStruct) (*simplecms.URL, error) {
	return recorded[*simplecms.URL](s.rec, "UpdateURL", url, update)
}

type recordingNotificationService struct {
	simplecms.NotificationService
	rec *recorder
}

func (s *recordingNotificationService) MarkNotificationAsRead(_ context.Context, notification *simplecms.Notification) error {
	return s.rec.record("MarkNotificationAsRead", notification)
}

func (s *recordingNotificationService) CreateNotification(_ context.Context, create simplecms.CreateNotificationStruct) (*simplecms.Notification, error) {
	return recorded[*simplecms.Notification](s.rec, "CreateNotification", create)
}

func (s *recordingNotificationService) DeleteNotification(_ context.Context, notification *simplecms.Notification) error {
	return s.rec.record("DeleteNotification", notification)
}

type recordingObjectStateService struct {
	simplecms.ObjectStateService
	rec *recorder
}

func (s *recordingObjectStateService) CreateObjectStateGroup(_ context.Context, create simplecms.ObjectStateGroupCreateStruct) (*simplecms.ObjectStateGroup, error) {
	return recorded[*simplecms.ObjectStateGroup](s.rec, "CreateObjectStateGroup", create)
}

func (s *recordingObjectStateService) UpdateObjectStateGroup(_ context.Context, group *simplecms.ObjectStateGroup, update simplecms.ObjectStateGroupUpdateStruct) (*simplecms.ObjectStateGroup, error) {
	return recorded[*simplecms.ObjectStateGroup](s.rec, "UpdateObjectStateGroup", group, update)
}

func (s *recordingObjectStateService) DeleteObjectStateGroup(_ context.Context, group *simplecms.ObjectStateGroup) error {
	return s.rec.record("DeleteObjectStateGroup", group)
}

func (s *recordingObjectStateService) CreateObjectState(_ context.Context, group *simplecms.ObjectStateGroup, create simplecms.ObjectStateCreateStruct) (*simplecms.ObjectState, error) {
	return recorded[*simplecms.ObjectState](s.rec, "CreateObjectState", group, create)
}

func (s *recordingObjectStateService) UpdateObjectState(_ context.Context, state *simplecms.ObjectState, update simplecms.ObjectStateUpdateStruct) (*simplecms.ObjectState, error) {
	return recorded[*simplecms.ObjectState](s.rec, "UpdateObjectState", state, update)
}

func (s *recordingObjectStateService) SetPriorityOfObjectState(_ context.Context, state *simplecms.ObjectState, priority int) error {
	return s.rec.record("SetPriorityOfObjectState", state, priority)
}

func (s *recordingObjectStateService) DeleteObjectState(_ context.Context, state *simplecms.ObjectState) error {
	return s.rec.record("DeleteObjectState", state)
}

func (s *recordingObjectStateService) SetContentState(_ context.Context, contentInfo *simplecms.ContentInfo, group *simplecms.ObjectStateGroup, state *simplecms.ObjectState) error {
	return s.rec.record("SetContentState", contentInfo, group, state)
}

type recordingSectionService struct {
	simplecms.SectionService
	rec *recorder
}

func (s *recordingSectionService) CreateSection(_ context.Context, create simplecms.SectionCreateStruct) (*simplecms.Section, error) {
	return recorded[*simplecms.Section](s.rec, "CreateSection", create)
}

func (s *recordingSectionService) UpdateSection(_ context.Context, section *simplecms.Section, update simplecms.SectionUpdateStruct) (*simplecms.Section, error) {
	return recorded[*simplecms.Section](s.rec, "UpdateSection", section, update)
}

func (s *recordingSectionService) AssignSection(_ context.Context, contentInfo *simplecms.ContentInfo, section *simplecms.Section) error {
	return s.rec.record("AssignSection", contentInfo, section)
}

func (s *recordingSectionService) AssignSectionToSubtree(_ context.Context, location *simplecms.Location, section *simplecms.Section) error {
	return s.rec.record("AssignSectionToSubtree", location, section)
}

func (s *recordingSectionService) DeleteSection(_ context.Context, section *simplecms.Section) error {
	return s.rec.record("DeleteSection", section)
}

type recordingLanguageService struct {
	simplecms.LanguageService
	rec *recorder
}

func (s *recordingLanguageService) CreateLanguage(_ context.Context, create simplecms.LanguageCreateStruct) (*simplecms.Language, error) {
	return recorded[*simplecms.Language](s.rec, "CreateLanguage", create)
}

func (s *recordingLanguageService) UpdateLanguageName(_ context.Context, language *simplecms.Language, name string) (*simplecms.Language, error) {
	return recorded[*simplecms.Language](s.rec, "UpdateLanguageName", language, name)
}

func (s *recordingLanguageService) EnableLanguage(_ context.Context, language *simplecms.Language) (*simplecms.Language, error) {
	return recorded[*simplecms.Language](s.rec, "EnableLanguage", language)
}

func (s *recordingLanguageService) DisableLanguage(_ context.Context, language *simplecms.Language) (*simplecms.Language, error) {
	return recorded[*simplecms.Language](s.rec, "DisableLanguage", language)
}

func (s *recordingLanguageService) DeleteLanguage(_ context.Context, language *simplecms.Language) error {
	return s.rec.record("DeleteLanguage", language)
}

type recordingURLAliasService struct {
	simplecms.URLAliasService
	rec *recorder
}

func (s *recordingURLAliasService) CreateURLAlias(_ context.Context, location *simplecms.Location, path string, languageCode string, forwarding bool, alwaysAvailable bool) (*simplecms.URLAlias, error) {
	return recorded[*simplecms.URLAlias](s.rec, "CreateURLAlias", location, path, languageCode, forwarding, alwaysAvailable)
}

func (s *recordingURLAliasService) CreateGlobalURLAlias(_ context.Context, resource string, path string, languageCode string, forwarding bool, alwaysAvailable bool) (*simplecms.URLAlias, error) {
	return recorded[*simplecms.URLAlias](s.rec, "CreateGlobalURLAlias", resource, path, languageCode, forwarding, alwaysAvailable)
}

func (s *recordingURLAliasService) RemoveAliases(_ context.Context, aliases []*simplecms.URLAlias) error {
	return s.rec.record("RemoveAliases", aliases)
}

func (s *recordingURLAliasService) RefreshSystemURLAliasesForLocation(_ context.Context, location *simplecms.Location) error {
	return s.rec.record("RefreshSystemURLAliasesForLocation", location)
}

type recordingURLWildcardService struct {
	simplecms.URLWildcardService
	rec *recorder
}

func (s *recordingURLWildcardService) Create(_ context.Context, sourceURL string, destinationURL string, forward bool) (*simplecms.URLWildcard, error) {
	return recorded[*simplecms.URLWildcard](s.rec, "Create", sourceURL, destinationURL, forward)
}

func (s *recordingURLWildcardService) Update(_ context.Context, wildcard *simplecms.URLWildcard, update simplecms.URLWildcardUpdateStruct) error {
	return s.rec.record("Update", wildcard, update)
}

func (s *recordingURLWildcardService) Remove(_ context.Context, wildcard *simplecms.URLWildcard) error {
	return s.rec.record("Remove", wildcard)
}

type recordingBookmarkService struct {
	simplecms.BookmarkService
	rec *recorder
}

func (s *recordingBookmarkService) CreateBookmark(_ context.Context, location *simplecms.Location) error {
	return s.rec.record("CreateBookmark", location)
}

func (s *recordingBookmarkService) DeleteBookmark(_ context.Context, location *simplecms.Location) error {
	return s.rec.record("DeleteBookmark", location)
}

type recordingUserPreferenceService struct {
	simplecms.UserPreferenceService
	rec *recorder
}

func (s *recordingUserPreferenceService) SetUserPreference(_ context.Context, preferences []simplecms.UserPreferenceSetStruct) error {
	return s.rec.record("SetUserPreference", preferences)
}
