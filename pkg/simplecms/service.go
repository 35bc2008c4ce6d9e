package simplecms

import "context"

// Repository gives access to every repository service.
type Repository interface {
	ContentService() ContentService
	ContentTypeService() ContentTypeService
	LocationService() LocationService
	UserService() UserService
	RoleService() RoleService
	PermissionResolver() PermissionResolver
	TrashService() TrashService
	URLService() URLService
	NotificationService() NotificationService
	ObjectStateService() ObjectStateService
	SectionService() SectionService
	LanguageService() LanguageService
	URLAliasService() URLAliasService
	URLWildcardService() URLWildcardService
	BookmarkService() BookmarkService
	UserPreferenceService() UserPreferenceService
	SearchService() SearchService
}

// ContentService manages content items, their versions and relations.
//
// A versionNo of zero selects the current version. Nil or empty language
// lists load every translation.
type ContentService interface {
	LoadContentInfo(ctx context.Context, contentID int64) (*ContentInfo, error)
	LoadContentInfoByRemoteID(ctx context.Context, remoteID string) (*ContentInfo, error)
	// LoadContentInfoList skips IDs that do not exist or cannot be read.
	LoadContentInfoList(ctx context.Context, contentIDs []int64) (map[int64]*ContentInfo, error)
	LoadVersionInfo(ctx context.Context, contentInfo *ContentInfo, versionNo int) (*VersionInfo, error)
	LoadContent(ctx context.Context, contentID int64, languages []string, versionNo int) (*Content, error)
	LoadContentByRemoteID(ctx context.Context, remoteID string, languages []string, versionNo int) (*Content, error)
	LoadContentByVersionInfo(ctx context.Context, versionInfo *VersionInfo, languages []string) (*Content, error)
	LoadVersions(ctx context.Context, contentInfo *ContentInfo) ([]*VersionInfo, error)
	LoadRelations(ctx context.Context, versionInfo *VersionInfo) ([]*Relation, error)
	LoadReverseRelations(ctx context.Context, contentInfo *ContentInfo) ([]*Relation, error)
	CountReverseRelations(ctx context.Context, contentInfo *ContentInfo) (int, error)
	// LoadContentDrafts lists drafts created by the user. Zero selects the
	// current user.
	LoadContentDrafts(ctx context.Context, userID int64) ([]*VersionInfo, error)

	// CreateContent creates a draft. Locations are created when the draft
	// is first published.
	CreateContent(ctx context.Context, create ContentCreateStruct, locations []LocationCreateStruct) (*Content, error)
	UpdateContentMetadata(ctx context.Context, contentInfo *ContentInfo, update ContentMetadataUpdateStruct) (*Content, error)
	// DeleteContent deletes the content and all its locations and returns
	// the IDs of the deleted locations.
	DeleteContent(ctx context.Context, contentInfo *ContentInfo) ([]int64, error)
	CreateContentDraft(ctx context.Context, contentInfo *ContentInfo, versionNo int) (*Content, error)
	UpdateContent(ctx context.Context, versionInfo *VersionInfo, update ContentUpdateStruct) (*Content, error)
	// PublishVersion publishes a draft. Empty translations publishes every
	// language of the draft.
	PublishVersion(ctx context.Context, versionInfo *VersionInfo, translations []string) (*Content, error)
	DeleteVersion(ctx context.Context, versionInfo *VersionInfo) error
	CopyContent(ctx context.Context, contentInfo *ContentInfo, destination LocationCreateStruct, versionNo int) (*Content, error)
	AddRelation(ctx context.Context, source *VersionInfo, destination *ContentInfo) (*Relation, error)
	DeleteRelation(ctx context.Context, source *VersionInfo, destination *ContentInfo) error
	DeleteTranslation(ctx context.Context, contentInfo *ContentInfo, languageCode string) error
	HideContent(ctx context.Context, contentInfo *ContentInfo) error
	RevealContent(ctx context.Context, contentInfo *ContentInfo) error
}

// ContentTypeService manages content types and their groups.
type ContentTypeService interface {
	LoadContentTypeGroup(ctx context.Context, id int64) (*ContentTypeGroup, error)
	LoadContentTypeGroupByIdentifier(ctx context.Context, identifier string) (*ContentTypeGroup, error)
	LoadContentTypeGroups(ctx context.Context) ([]*ContentTypeGroup, error)
	LoadContentType(ctx context.Context, id int64) (*ContentType, error)
	LoadContentTypeByIdentifier(ctx context.Context, identifier string) (*ContentType, error)
	LoadContentTypeByRemoteID(ctx context.Context, remoteID string) (*ContentType, error)
	LoadContentTypeList(ctx context.Context, ids []int64) ([]*ContentType, error)
	LoadContentTypes(ctx context.Context, group *ContentTypeGroup) ([]*ContentType, error)
	LoadContentTypeDraft(ctx context.Context, id int64) (*ContentTypeDraft, error)

	CreateContentTypeGroup(ctx context.Context, create ContentTypeGroupCreateStruct) (*ContentTypeGroup, error)
	UpdateContentTypeGroup(ctx context.Context, group *ContentTypeGroup, update ContentTypeGroupUpdateStruct) error
	DeleteContentTypeGroup(ctx context.Context, group *ContentTypeGroup) error
	CreateContentType(ctx context.Context, create ContentTypeCreateStruct, groups []*ContentTypeGroup) (*ContentTypeDraft, error)
	CreateContentTypeDraft(ctx context.Context, contentType *ContentType) (*ContentTypeDraft, error)
	UpdateContentTypeDraft(ctx context.Context, draft *ContentTypeDraft, update ContentTypeUpdateStruct) error
	DeleteContentType(ctx context.Context, contentType *ContentType) error
	CopyContentType(ctx context.Context, contentType *ContentType) (*ContentType, error)
	AssignContentTypeGroup(ctx context.Context, contentType *ContentType, group *ContentTypeGroup) error
	UnassignContentTypeGroup(ctx context.Context, contentType *ContentType, group *ContentTypeGroup) error
	AddFieldDefinition(ctx context.Context, draft *ContentTypeDraft, create FieldDefinitionCreateStruct) error
	RemoveFieldDefinition(ctx context.Context, draft *ContentTypeDraft, definition *FieldDefinition) error
	UpdateFieldDefinition(ctx context.Context, draft *ContentTypeDraft, definition *FieldDefinition, update FieldDefinitionUpdateStruct) error
	PublishContentTypeDraft(ctx context.Context, draft *ContentTypeDraft) error
	DeleteContentTypeDraft(ctx context.Context, draft *ContentTypeDraft) error
}

// LocationService manages the content tree.
type LocationService interface {
	LoadLocation(ctx context.Context, id int64) (*Location, error)
	LoadLocationByRemoteID(ctx context.Context, remoteID string) (*Location, error)
	LoadLocations(ctx context.Context, contentInfo *ContentInfo) ([]*Location, error)
	// LoadLocationChildren orders children by the sort field of the parent.
	// A limit of zero or less returns every child.
	LoadLocationChildren(ctx context.Context, location *Location, offset, limit int) (*LocationList, error)
	GetLocationChildCount(ctx context.Context, location *Location) (int, error)

	CreateLocation(ctx context.Context, contentInfo *ContentInfo, create LocationCreateStruct) (*Location, error)
	UpdateLocation(ctx context.Context, location *Location, update LocationUpdateStruct) (*Location, error)
	SwapLocation(ctx context.Context, location1, location2 *Location) error
	HideLocation(ctx context.Context, location *Location) (*Location, error)
	UnhideLocation(ctx context.Context, location *Location) (*Location, error)
	MoveSubtree(ctx context.Context, location, newParent *Location) error
	DeleteLocation(ctx context.Context, location *Location) error
	CopySubtree(ctx context.Context, subtree, targetParent *Location) (*Location, error)
}

// UserService manages users and user groups.
type UserService interface {
	LoadUserGroup(ctx context.Context, id int64) (*UserGroup, error)
	LoadSubUserGroups(ctx context.Context, group *UserGroup) ([]*UserGroup, error)
	LoadUser(ctx context.Context, id int64) (*User, error)
	LoadUserByLogin(ctx context.Context, login string) (*User, error)
	LoadUsersByEmail(ctx context.Context, email string) ([]*User, error)
	CheckUserCredentials(ctx context.Context, user *User, password string) (bool, error)
	LoadUserGroupsOfUser(ctx context.Context, user *User) ([]*UserGroup, error)
	LoadUsersOfUserGroup(ctx context.Context, group *UserGroup, offset, limit int) ([]*User, error)

	CreateUserGroup(ctx context.Context, create UserGroupCreateStruct, parent *UserGroup) (*UserGroup, error)
	DeleteUserGroup(ctx context.Context, group *UserGroup) error
	MoveUserGroup(ctx context.Context, group, newParent *UserGroup) error
	UpdateUserGroup(ctx context.Context, group *UserGroup, update UserGroupUpdateStruct) (*UserGroup, error)
	CreateUser(ctx context.Context, create UserCreateStruct, groups []*UserGroup) (*User, error)
	DeleteUser(ctx context.Context, user *User) error
	UpdateUser(ctx context.Context, user *User, update UserUpdateStruct) (*User, error)
	UpdateUserPassword(ctx context.Context, user *User, newPassword string) (*User, error)
	AssignUserToUserGroup(ctx context.Context, user *User, group *UserGroup) error
	UnassignUserFromUserGroup(ctx context.Context, user *User, group *UserGroup) error
}

// RoleService manages roles, their drafts and assignments.
type RoleService interface {
	LoadRole(ctx context.Context, id int64) (*Role, error)
	LoadRoleByIdentifier(ctx context.Context, identifier string) (*Role, error)
	LoadRoles(ctx context.Context) ([]*Role, error)
	LoadRoleDraft(ctx context.Context, id int64) (*RoleDraft, error)
	LoadRoleDraftByRoleID(ctx context.Context, roleID int64) (*RoleDraft, error)
	LoadRoleAssignment(ctx context.Context, id int64) (*RoleAssignment, error)
	GetRoleAssignments(ctx context.Context, role *Role) ([]*RoleAssignment, error)
	// GetRoleAssignmentsForUser includes assignments of the user's groups
	// and their ancestors when inherited is set.
	GetRoleAssignmentsForUser(ctx context.Context, user *User, inherited bool) ([]*RoleAssignment, error)
	GetRoleAssignmentsForUserGroup(ctx context.Context, group *UserGroup) ([]*RoleAssignment, error)

	CreateRole(ctx context.Context, create RoleCreateStruct) (*RoleDraft, error)
	CreateRoleDraft(ctx context.Context, role *Role) (*RoleDraft, error)
	UpdateRoleDraft(ctx context.Context, draft *RoleDraft, update RoleUpdateStruct) (*RoleDraft, error)
	AddPolicyByRoleDraft(ctx context.Context, draft *RoleDraft, create PolicyCreateStruct) (*RoleDraft, error)
	RemovePolicyByRoleDraft(ctx context.Context, draft *RoleDraft, policy *PolicyDraft) (*RoleDraft, error)
	UpdatePolicyByRoleDraft(ctx context.Context, draft *RoleDraft, policy *PolicyDraft, update PolicyUpdateStruct) (*PolicyDraft, error)
	DeleteRoleDraft(ctx context.Context, draft *RoleDraft) error
	PublishRoleDraft(ctx context.Context, draft *RoleDraft) error
	DeleteRole(ctx context.Context, role *Role) error
	AssignRoleToUserGroup(ctx context.Context, role *Role, group *UserGroup, limitation *Limitation) error
	AssignRoleToUser(ctx context.Context, role *Role, user *User, limitation *Limitation) error
	RemoveRoleAssignment(ctx context.Context, assignment *RoleAssignment) error
}

// LimitationSet is a conjunction of limitations granted by one policy.
type LimitationSet []Limitation

// Access is the result of a permission lookup. Unlimited access ignores
// Sets; otherwise any satisfied set grants access.
type Access struct {
	Unlimited bool            `json:"unlimited"`
	Sets      []LimitationSet `json:"sets,omitempty"`
}

// Granted reports whether the function is granted in some form.
func (a Access) Granted() bool { return a.Unlimited || len(a.Sets) > 0 }

// PermissionResolver answers permission questions for the user on ctx.
type PermissionResolver interface {
	CurrentUserReference(ctx context.Context) UserReference
	HasAccess(ctx context.Context, module, function string) (Access, error)
	// CanUser evaluates the limitations of module/function against object,
	// and against targets such as the parent location of new content.
	CanUser(ctx context.Context, module, function string, object any, targets ...any) (bool, error)
}

// TrashService moves locations to and from the trash.
type TrashService interface {
	LoadTrashItem(ctx context.Context, id int64) (*TrashItem, error)
	FindTrashItems(ctx context.Context, query TrashQuery) (*TrashItemList, error)

	// Trash returns nil when the content keeps other locations and nothing
	// was put in the trash.
	Trash(ctx context.Context, location *Location) (*TrashItem, error)
	// Recover restores the item below newParent, or below its original
	// parent when newParent is nil.
	Recover(ctx context.Context, item *TrashItem, newParent *Location) (*Location, error)
	EmptyTrash(ctx context.Context) (*TrashItemDeleteResultList, error)
	DeleteTrashItem(ctx context.Context, item *TrashItem) (*TrashItemDeleteResult, error)
}

// URLService manages links found in content fields.
type URLService interface {
	FindURLs(ctx context.Context, query URLQuery) (*URLSearchResult, error)
	LoadByID(ctx context.Context, id int64) (*URL, error)
	LoadByURL(ctx context.Context, url string) (*URL, error)
	FindUsages(ctx context.Context, url *URL, offset, limit int) (*UsageSearchResult, error)

	UpdateURL(ctx context.Context, url *URL, update URLUpdateStruct) (*URL, error)
}

// NotificationService manages notifications of the current user.
type NotificationService interface {
	LoadNotifications(ctx context.Context, offset, limit int) (*NotificationList, error)
	GetNotification(ctx context.Context, id int64) (*Notification, error)
	GetPendingNotificationCount(ctx context.Context) (int, error)
	GetNotificationCount(ctx context.Context) (int, error)

	MarkNotificationAsRead(ctx context.Context, notification *Notification) error
	CreateNotification(ctx context.Context, create CreateNotificationStruct) (*Notification, error)
	DeleteNotification(ctx context.Context, notification *Notification) error
}

// ObjectStateService manages object state groups and the states of content.
type ObjectStateService interface {
	LoadObjectStateGroup(ctx context.Context, id int64) (*ObjectStateGroup, error)
	LoadObjectStateGroupByIdentifier(ctx context.Context, identifier string) (*ObjectStateGroup, error)
	LoadObjectStateGroups(ctx context.Context) ([]*ObjectStateGroup, error)
	LoadObjectStates(ctx context.Context, group *ObjectStateGroup) ([]*ObjectState, error)
	LoadObjectState(ctx context.Context, id int64) (*ObjectState, error)
	LoadObjectStateByIdentifier(ctx context.Context, group *ObjectStateGroup, identifier string) (*ObjectState, error)
	GetContentState(ctx context.Context, contentInfo *ContentInfo, group *ObjectStateGroup) (*ObjectState, error)
	GetContentCount(ctx context.Context, state *ObjectState) (int, error)

	CreateObjectStateGroup(ctx context.Context, create ObjectStateGroupCreateStruct) (*ObjectStateGroup, error)
	UpdateObjectStateGroup(ctx context.Context, group *ObjectStateGroup, update ObjectStateGroupUpdateStruct) (*ObjectStateGroup, error)
	DeleteObjectStateGroup(ctx context.Context, group *ObjectStateGroup) error
	CreateObjectState(ctx context.Context, group *ObjectStateGroup, create ObjectStateCreateStruct) (*ObjectState, error)
	UpdateObjectState(ctx context.Context, state *ObjectState, update ObjectStateUpdateStruct) (*ObjectState, error)
	SetPriorityOfObjectState(ctx context.Context, state *ObjectState, priority int) error
	DeleteObjectState(ctx context.Context, state *ObjectState) error
	SetContentState(ctx context.Context, contentInfo *ContentInfo, group *ObjectStateGroup, state *ObjectState) error
}

// SectionService manages sections and their assignment to content.
type SectionService interface {
	LoadSection(ctx context.Context, id int64) (*Section, error)
	LoadSections(ctx context.Context) ([]*Section, error)
	LoadSectionByIdentifier(ctx context.Context, identifier string) (*Section, error)
	CountAssignedContents(ctx context.Context, section *Section) (int, error)
	// IsSectionUsed reports whether content or role limitations reference
	// the section.
	IsSectionUsed(ctx context.Context, section *Section) (bool, error)

	CreateSection(ctx context.Context, create SectionCreateStruct) (*Section, error)
	UpdateSection(ctx context.Context, section *Section, update SectionUpdateStruct) (*Section, error)
	AssignSection(ctx context.Context, contentInfo *ContentInfo, section *Section) error
	AssignSectionToSubtree(ctx context.Context, location *Location, section *Section) error
	DeleteSection(ctx context.Context, section *Section) error
}

// LanguageService manages content languages.
type LanguageService interface {
	LoadLanguage(ctx context.Context, languageCode string) (*Language, error)
	LoadLanguageByID(ctx context.Context, id int64) (*Language, error)
	LoadLanguages(ctx context.Context) ([]*Language, error)
	DefaultLanguageCode() string

	CreateLanguage(ctx context.Context, create LanguageCreateStruct) (*Language, error)
	UpdateLanguageName(ctx context.Context, language *Language, name string) (*Language, error)
	EnableLanguage(ctx context.Context, language *Language) (*Language, error)
	DisableLanguage(ctx context.Context, language *Language) (*Language, error)
	DeleteLanguage(ctx context.Context, language *Language) error
}

// URLAliasService maps URL paths to locations and resources.
type URLAliasService interface {
	// ListLocationAliases lists custom or system aliases of a location. An
	// empty language code lists every language.
	ListLocationAliases(ctx context.Context, location *Location, custom bool, languageCode string) ([]*URLAlias, error)
	ListGlobalAliases(ctx context.Context, languageCode string, offset, limit int) ([]*URLAlias, error)
	Lookup(ctx context.Context, path, languageCode string) (*URLAlias, error)
	ReverseLookup(ctx context.Context, location *Location, languageCode string) (*URLAlias, error)
	Load(ctx context.Context, id int64) (*URLAlias, error)

	CreateURLAlias(ctx context.Context, location *Location, path, languageCode string, forwarding, alwaysAvailable bool) (*URLAlias, error)
	CreateGlobalURLAlias(ctx context.Context, resource, path, languageCode string, forwarding, alwaysAvailable bool) (*URLAlias, error)
	RemoveAliases(ctx context.Context, aliases []*URLAlias) error
	// RefreshSystemURLAliasesForLocation regenerates the system aliases of
	// the location and its descendants from content names.
	RefreshSystemURLAliasesForLocation(ctx context.Context, location *Location) error
}

// URLWildcardService manages wildcard redirects.
type URLWildcardService interface {
	Load(ctx context.Context, id int64) (*URLWildcard, error)
	LoadAll(ctx context.Context, offset, limit int) ([]*URLWildcard, error)
	Translate(ctx context.Context, url string) (*URLWildcardTranslationResult, error)

	Create(ctx context.Context, sourceURL, destinationURL string, forward bool) (*URLWildcard, error)
	Update(ctx context.Context, wildcard *URLWildcard, update URLWildcardUpdateStruct) error
	Remove(ctx context.Context, wildcard *URLWildcard) error
}

// BookmarkService manages location bookmarks of the current user.
type BookmarkService interface {
	LoadBookmarks(ctx context.Context, offset, limit int) (*BookmarkList, error)
	IsBookmarked(ctx context.Context, location *Location) (bool, error)

	CreateBookmark(ctx context.Context, location *Location) error
	DeleteBookmark(ctx context.Context, location *Location) error
}

// UserPreferenceService manages preferences of the current user.
type UserPreferenceService interface {
	GetUserPreference(ctx context.Context, name string) (*UserPreference, error)
	LoadUserPreferences(ctx context.Context, offset, limit int) (*UserPreferenceList, error)
	GetUserPreferenceCount(ctx context.Context) (int, error)

	SetUserPreference(ctx context.Context, preferences []UserPreferenceSetStruct) error
}

// SearchService finds published content the current user may read.
type SearchService interface {
	FindContent(ctx context.Context, query Query, languages []string) (*SearchResult[*Content], error)
	FindContentInfo(ctx context.Context, query Query) (*SearchResult[*ContentInfo], error)
	FindLocations(ctx context.Context, query Query) (*SearchResult[*Location], error)
	// FindSingle fails with NotFoundError on no hit and with
	// InvalidArgumentError on more than one.
	FindSingle(ctx context.Context, filter Criterion, languages []string) (*Content, error)
}
