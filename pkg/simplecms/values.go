package simplecms

import (
	"strconv"
	"strings"
	"time"
)

// RootLocationID is the ID of the tree root. It carries no content.
const RootLocationID int64 = 1

// ContentStatus is the lifecycle status of a content item.
type ContentStatus string

const (
	ContentStatusDraft     ContentStatus = "draft"
	ContentStatusPublished ContentStatus = "published"
	ContentStatusTrashed   ContentStatus = "trashed"
)

// VersionStatus is the status of a single content version.
type VersionStatus string

const (
	VersionStatusDraft     VersionStatus = "draft"
	VersionStatusPublished VersionStatus = "published"
	VersionStatusArchived  VersionStatus = "archived"
)

// SortField names the property location children are ordered by.
type SortField string

const (
	SortFieldPath      SortField = "path"
	SortFieldPublished SortField = "published"
	SortFieldModified  SortField = "modified"
	SortFieldSection   SortField = "section"
	SortFieldDepth     SortField = "depth"
	SortFieldPriority  SortField = "priority"
	SortFieldName      SortField = "name"
	SortFieldNodeID    SortField = "node_id"
	SortFieldContentID SortField = "content_id"
)

// SortOrder is ascending or descending.
type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// ContentInfo is the version independent metadata of a content item.
type ContentInfo struct {
	ID               int64         `json:"id"`
	ContentTypeID    int64         `json:"content_type_id"`
	Name             string        `json:"name"`
	SectionID        int64         `json:"section_id"`
	CurrentVersionNo int           `json:"current_version_no"`
	Status           ContentStatus `json:"status"`
	OwnerID          int64         `json:"owner_id"`
	ModificationDate time.Time     `json:"modification_date"`
	PublicationDate  time.Time     `json:"publication_date"`
	AlwaysAvailable  bool          `json:"always_available"`
	RemoteID         string        `json:"remote_id"`
	MainLanguageCode string        `json:"main_language_code"`
	MainLocationID   int64         `json:"main_location_id,omitempty"`
	IsHidden         bool          `json:"is_hidden"`
}

func (c *ContentInfo) IsDraft() bool     { return c.Status == ContentStatusDraft }
func (c *ContentInfo) IsPublished() bool { return c.Status == ContentStatusPublished }
func (c *ContentInfo) IsTrashed() bool   { return c.Status == ContentStatusTrashed }

// VersionInfo describes one version of a content item.
type VersionInfo struct {
	ID                  int64             `json:"id"`
	ContentID           int64             `json:"content_id"`
	VersionNo           int               `json:"version_no"`
	Status              VersionStatus     `json:"status"`
	CreatorID           int64             `json:"creator_id"`
	CreationDate        time.Time         `json:"creation_date"`
	ModificationDate    time.Time         `json:"modification_date"`
	InitialLanguageCode string            `json:"initial_language_code"`
	LanguageCodes       []string          `json:"language_codes"`
	Names               map[string]string `json:"names"`
	ContentInfo         *ContentInfo      `json:"content_info,omitempty"`
}

func (v *VersionInfo) IsDraft() bool     { return v.Status == VersionStatusDraft }
func (v *VersionInfo) IsPublished() bool { return v.Status == VersionStatusPublished }
func (v *VersionInfo) IsArchived() bool  { return v.Status == VersionStatusArchived }

// Name returns the version name in the given language, falling back to the
// initial language.
func (v *VersionInfo) Name(languageCode string) string {
	if name, ok := v.Names[languageCode]; ok {
		return name
	}
	return v.Names[v.InitialLanguageCode]
}

// Field is a single field value in one language.
type Field struct {
	DefinitionIdentifier string `json:"definition_identifier"`
	FieldTypeIdentifier  string `json:"field_type_identifier"`
	LanguageCode         string `json:"language_code"`
	Value                any    `json:"value"`
}

// Content is a version of a content item including its fields.
type Content struct {
	VersionInfo *VersionInfo `json:"version_info"`
	Fields      []Field      `json:"fields"`
}

func (c *Content) ID() int64 { return c.VersionInfo.ContentID }

func (c *Content) ContentInfo() *ContentInfo { return c.VersionInfo.ContentInfo }

// FieldValue returns the value of a field. An empty language code selects
// the main language of the content.
func (c *Content) FieldValue(identifier, languageCode string) (any, bool) {
	if languageCode == "" && c.VersionInfo.ContentInfo != nil {
		languageCode = c.VersionInfo.ContentInfo.MainLanguageCode
	}
	for _, f := range c.Fields {
		if f.DefinitionIdentifier == identifier && (languageCode == "" || f.LanguageCode == languageCode) {
			return f.Value, true
		}
	}
	return nil, false
}

// FieldsByLanguage returns the fields in one language.
func (c *Content) FieldsByLanguage(languageCode string) []Field {
	var out []Field
	for _, f := range c.Fields {
		if f.LanguageCode == languageCode {
			out = append(out, f)
		}
	}
	return out
}

// Relation links a source content version to a destination content item.
type Relation struct {
	ID                    int64  `json:"id"`
	SourceContentID       int64  `json:"source_content_id"`
	SourceVersionNo       int    `json:"source_version_no"`
	DestinationContentID  int64  `json:"destination_content_id"`
	SourceFieldIdentifier string `json:"source_field_identifier,omitempty"`
}

// Location places a content item in the tree.
type Location struct {
	ID               int64        `json:"id"`
	ContentID        int64        `json:"content_id"`
	ParentLocationID int64        `json:"parent_location_id"`
	PathString       string       `json:"path_string"`
	Depth            int          `json:"depth"`
	Priority         int          `json:"priority"`
	Hidden           bool         `json:"hidden"`
	Invisible        bool         `json:"invisible"`
	RemoteID         string       `json:"remote_id"`
	SortField        SortField    `json:"sort_field"`
	SortOrder        SortOrder    `json:"sort_order"`
	ContentInfo      *ContentInfo `json:"content_info,omitempty"`
}

// Path returns the location IDs from the root down to this location.
func (l *Location) Path() []int64 {
	var ids []int64
	for _, part := range strings.Split(strings.Trim(l.PathString, "/"), "/") {
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// IsDescendantOf reports whether l lies strictly below other.
func (l *Location) IsDescendantOf(other *Location) bool {
	return l.ID != other.ID && strings.HasPrefix(l.PathString, other.PathString)
}

// LocationList is a page of locations.
type LocationList struct {
	TotalCount int         `json:"total_count"`
	Locations  []*Location `json:"locations"`
}

// ContentTypeStatus separates published content types from drafts.
type ContentTypeStatus string

const (
	ContentTypeStatusDefined ContentTypeStatus = "defined"
	ContentTypeStatusDraft   ContentTypeStatus = "draft"
)

// ContentTypeGroup groups content types.
type ContentTypeGroup struct {
	ID               int64     `json:"id"`
	Identifier       string    `json:"identifier"`
	CreatorID        int64     `json:"creator_id"`
	CreationDate     time.Time `json:"creation_date"`
	ModifierID       int64     `json:"modifier_id"`
	ModificationDate time.Time `json:"modification_date"`
	IsSystem         bool      `json:"is_system"`
}

// FieldDefinition describes one field of a content type.
type FieldDefinition struct {
	ID                  int64             `json:"id"`
	Identifier          string            `json:"identifier"`
	FieldTypeIdentifier string            `json:"field_type_identifier"`
	Names               map[string]string `json:"names"`
	Descriptions        map[string]string `json:"descriptions,omitempty"`
	FieldGroup          string            `json:"field_group,omitempty"`
	Position            int               `json:"position"`
	IsRequired          bool              `json:"is_required"`
	IsTranslatable      bool              `json:"is_translatable"`
	IsSearchable        bool              `json:"is_searchable"`
	DefaultValue        any               `json:"default_value,omitempty"`
	Settings            map[string]any    `json:"settings,omitempty"`
}

// ContentType defines the fields and naming rules of content items.
type ContentType struct {
	ID                     int64             `json:"id"`
	Identifier             string            `json:"identifier"`
	Status                 ContentTypeStatus `json:"status"`
	RemoteID               string            `json:"remote_id"`
	Names                  map[string]string `json:"names"`
	Descriptions           map[string]string `json:"descriptions,omitempty"`
	NameSchema             string            `json:"name_schema"`
	URLAliasSchema         string            `json:"url_alias_schema,omitempty"`
	MainLanguageCode       string            `json:"main_language_code"`
	IsContainer            bool              `json:"is_container"`
	DefaultAlwaysAvailable bool              `json:"default_always_available"`
	DefaultSortField       SortField         `json:"default_sort_field"`
	DefaultSortOrder       SortOrder         `json:"default_sort_order"`
	CreatorID              int64             `json:"creator_id"`
	CreationDate           time.Time         `json:"creation_date"`
	ModifierID             int64             `json:"modifier_id"`
	ModificationDate       time.Time         `json:"modification_date"`
	FieldDefinitions       []FieldDefinition `json:"field_definitions"`
	GroupIDs               []int64           `json:"group_ids"`
}

// FieldDefinition returns the definition with the given identifier.
func (t *ContentType) FieldDefinition(identifier string) (*FieldDefinition, bool) {
	for i := range t.FieldDefinitions {
		if t.FieldDefinitions[i].Identifier == identifier {
			return &t.FieldDefinitions[i], true
		}
	}
	return nil, false
}

// Name returns the type name in a language, falling back to the main language.
func (t *ContentType) Name(languageCode string) string {
	if name, ok := t.Names[languageCode]; ok {
		return name
	}
	return t.Names[t.MainLanguageCode]
}

// ContentTypeDraft is a content type being edited. It shares the ID of the
// type it will replace on publish.
type ContentTypeDraft struct {
	ContentType
}

// User is a repository account.
type User struct {
	ID               int64     `json:"id"`
	Login            string    `json:"login"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"password_hash,omitempty"`
	Enabled          bool      `json:"enabled"`
	MaxLogin         int       `json:"max_login"`
	Name             string    `json:"name"`
	RemoteID         string    `json:"remote_id"`
	GroupIDs         []int64   `json:"group_ids"`
	CreationDate     time.Time `json:"creation_date"`
	ModificationDate time.Time `json:"modification_date"`
}

// UserGroup is a node in the user group tree.
type UserGroup struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	ParentID     int64     `json:"parent_id,omitempty"`
	RemoteID     string    `json:"remote_id"`
	CreationDate time.Time `json:"creation_date"`
}

// UserReference identifies the user a call is made on behalf of.
type UserReference struct {
	UserID int64 `json:"user_id"`
}

// Limitation restricts a policy or a role assignment.
type Limitation struct {
	Identifier string   `json:"identifier"`
	Values     []string `json:"values"`
}

// Limitation identifiers understood by the permission resolver.
const (
	LimitationContentType = "Class"
	LimitationSection     = "Section"
	LimitationSubtree     = "Subtree"
	LimitationOwner       = "Owner"
	LimitationLocation    = "Node"
	LimitationLanguage    = "Language"
)

// Policy grants a module function, optionally limited.
type Policy struct {
	ID          int64        `json:"id"`
	RoleID      int64        `json:"role_id"`
	Module      string       `json:"module"`
	Function    string       `json:"function"`
	Limitations []Limitation `json:"limitations,omitempty"`
}

// Role is a published set of policies.
type Role struct {
	ID         int64    `json:"id"`
	Identifier string   `json:"identifier"`
	Policies   []Policy `json:"policies"`
}

// PolicyDraft is a policy of a role draft. OriginalID points at the
// published policy it replaces, if any.
type PolicyDraft struct {
	Policy
	OriginalID int64 `json:"original_id,omitempty"`
}

// RoleDraft is a mutable copy of a role. RoleID is zero until the draft of a
// new role is published.
type RoleDraft struct {
	ID         int64         `json:"id"`
	RoleID     int64         `json:"role_id,omitempty"`
	Identifier string        `json:"identifier"`
	Policies   []PolicyDraft `json:"policies"`
}

// RoleAssignment assigns a role to a user or a user group.
type RoleAssignment struct {
	ID          int64       `json:"id"`
	RoleID      int64       `json:"role_id"`
	UserID      int64       `json:"user_id,omitempty"`
	UserGroupID int64       `json:"user_group_id,omitempty"`
	Limitation  *Limitation `json:"limitation,omitempty"`
}

// TrashItem is a location moved to the trash.
type TrashItem struct {
	Location
	TrashedAt time.Time `json:"trashed_at"`
}

// TrashItemList is a page of trash items.
type TrashItemList struct {
	TotalCount int          `json:"total_count"`
	Items      []*TrashItem `json:"items"`
}

// TrashItemDeleteResult reports what deleting a trash item removed.
type TrashItemDeleteResult struct {
	TrashItemID    int64 `json:"trash_item_id"`
	ContentID      int64 `json:"content_id"`
	ContentRemoved bool  `json:"content_removed"`
}

// TrashItemDeleteResultList collects the results of emptying the trash.
type TrashItemDeleteResultList struct {
	Items []*TrashItemDeleteResult `json:"items"`
}

// URL is an external link referenced from content fields.
type URL struct {
	ID          int64     `json:"id"`
	URL         string    `json:"url"`
	IsValid     bool      `json:"is_valid"`
	LastChecked time.Time `json:"last_checked,omitempty"`
	Created     time.Time `json:"created"`
	Modified    time.Time `json:"modified"`
}

// URLSearchResult is a page of URLs.
type URLSearchResult struct {
	TotalCount int    `json:"total_count"`
	Items      []*URL `json:"items"`
}

// UsageSearchResult lists content items using a URL.
type UsageSearchResult struct {
	TotalCount int            `json:"total_count"`
	Items      []*ContentInfo `json:"items"`
}

// Section partitions content for permission purposes.
type Section struct {
	ID         int64  `json:"id"`
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
}

// Language is a content language.
type Language struct {
	ID           int64  `json:"id"`
	LanguageCode string `json:"language_code"`
	Name         string `json:"name"`
	Enabled      bool   `json:"enabled"`
}

// Notification is a message addressed to a user.
type Notification struct {
	ID        int64          `json:"id"`
	OwnerID   int64          `json:"owner_id"`
	Type      string         `json:"type"`
	IsPending bool           `json:"is_pending"`
	Created   time.Time      `json:"created"`
	Data      map[string]any `json:"data,omitempty"`
}

// NotificationList is a page of notifications.
type NotificationList struct {
	TotalCount int             `json:"total_count"`
	Items      []*Notification `json:"items"`
}

// ObjectStateGroup groups mutually exclusive object states.
type ObjectStateGroup struct {
	ID                  int64             `json:"id"`
	Identifier          string            `json:"identifier"`
	DefaultLanguageCode string            `json:"default_language_code"`
	Names               map[string]string `json:"names"`
	Descriptions        map[string]string `json:"descriptions,omitempty"`
}

// ObjectState is one state of a group. Lower priority values come first and
// the first state is the default for content without an explicit state.
type ObjectState struct {
	ID                  int64             `json:"id"`
	GroupID             int64             `json:"group_id"`
	Identifier          string            `json:"identifier"`
	Priority            int               `json:"priority"`
	DefaultLanguageCode string            `json:"default_language_code"`
	Names               map[string]string `json:"names"`
	Descriptions        map[string]string `json:"descriptions,omitempty"`
}

// URLAliasType tells what an alias points at.
type URLAliasType string

const (
	URLAliasLocation URLAliasType = "location"
	URLAliasResource URLAliasType = "resource"
)

// URLAlias maps a path to a location or a resource.
type URLAlias struct {
	ID              int64        `json:"id"`
	Type            URLAliasType `json:"type"`
	LocationID      int64        `json:"location_id,omitempty"`
	Resource        string       `json:"resource,omitempty"`
	Path            string       `json:"path"`
	LanguageCodes   []string     `json:"language_codes"`
	AlwaysAvailable bool         `json:"always_available"`
	IsHistory       bool         `json:"is_history"`
	IsCustom        bool         `json:"is_custom"`
	Forward         bool         `json:"forward"`
}

// URLWildcard redirects a source pattern with `*` to a destination using
// `{n}` placeholders.
type URLWildcard struct {
	ID             int64  `json:"id"`
	SourceURL      string `json:"source_url"`
	DestinationURL string `json:"destination_url"`
	Forward        bool   `json:"forward"`
}

// URLWildcardTranslationResult is the outcome of translating a URL.
type URLWildcardTranslationResult struct {
	URI     string `json:"uri"`
	Forward bool   `json:"forward"`
}

// Bookmark marks a location for a user.
type Bookmark struct {
	ID         int64 `json:"id"`
	UserID     int64 `json:"user_id"`
	LocationID int64 `json:"location_id"`
}

// BookmarkList is a page of bookmarked locations.
type BookmarkList struct {
	TotalCount int         `json:"total_count"`
	Items      []*Location `json:"items"`
}

// UserPreference is a named per user setting.
type UserPreference struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Value  string `json:"value"`
}

// UserPreferenceList is a page of preferences.
type UserPreferenceList struct {
	TotalCount int               `json:"total_count"`
	Items      []*UserPreference `json:"items"`
}

// SearchResult is a page of search hits.
type SearchResult[T any] struct {
	TotalCount int `json:"total_count"`
	Items      []T `json:"items"`
}
