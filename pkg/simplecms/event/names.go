package event

// AfterEvents lists the names of every after event, in service order.
var AfterEvents = []string{
	CreateContent,
	UpdateContentMetadata,
	DeleteContent,
	CreateContentDraft,
	UpdateContent,
	PublishVersion,
	DeleteVersion,
	CopyContent,
	AddRelation,
	DeleteRelation,
	DeleteTranslation,
	HideContent,
	RevealContent,
	CreateContentTypeGroup,
	UpdateContentTypeGroup,
	DeleteContentTypeGroup,
	CreateContentType,
	CreateContentTypeDraft,
	UpdateContentTypeDraft,
	DeleteContentType,
	CopyContentType,
	AssignContentTypeGroup,
	UnassignContentTypeGroup,
	AddFieldDefinition,
	RemoveFieldDefinition,
	UpdateFieldDefinition,
	PublishContentTypeDraft,
	DeleteContentTypeDraft,
	CreateLocation,
	UpdateLocation,
	SwapLocation,
	HideLocation,
	UnhideLocation,
	MoveSubtree,
	DeleteLocation,
	CopySubtree,
	CreateUserGroup,
	DeleteUserGroup,
	MoveUserGroup,
	UpdateUserGroup,
	CreateUser,
	DeleteUser,
	UpdateUser,
	UpdateUserPassword,
	AssignUserToUserGroup,
	UnassignUserFromUserGroup,
	CreateRole,
	CreateRoleDraft,
	UpdateRoleDraft,
	AddPolicyByRoleDraft,
	RemovePolicyByRoleDraft,
	UpdatePolicyByRoleDraft,
	DeleteRoleDraft,
	PublishRoleDraft,
	DeleteRole,
	AssignRoleToUserGroup,
	AssignRoleToUser,
	RemoveRoleAssignment,
	Trash,
	Recover,
	EmptyTrash,
	DeleteTrashItem,
	UpdateURL,
	MarkNotificationAsRead,
	CreateNotification,
	DeleteNotification,
	CreateObjectStateGroup,
	UpdateObjectStateGroup,
	DeleteObjectStateGroup,
	CreateObjectState,
	UpdateObjectState,
	SetPriorityOfObjectState,
	DeleteObjectState,
	SetContentState,
	CreateSection,
	UpdateSection,
	AssignSection,
	AssignSectionToSubtree,
	DeleteSection,
	CreateLanguage,
	UpdateLanguageName,
	EnableLanguage,
	DisableLanguage,
	DeleteLanguage,
	CreateURLAlias,
	CreateGlobalURLAlias,
	RemoveAliases,
	RefreshSystemURLAliasesForLocation,
	CreateURLWildcard,
	UpdateURLWildcard,
	RemoveURLWildcard,
	CreateBookmark,
	DeleteBookmark,
	SetUserPreference,
}
