package simplecms

import "time"

// ContentCreateStruct holds the data of a new content item.
type ContentCreateStruct struct {
	ContentTypeID    int64     `json:"content_type_id"`
	MainLanguageCode string    `json:"main_language_code"`
	SectionID        int64     `json:"section_id,omitempty"`
	OwnerID          int64     `json:"owner_id,omitempty"`
	RemoteID         string    `json:"remote_id,omitempty"`
	AlwaysAvailable  *bool     `json:"always_available,omitempty"`
	ModificationDate time.Time `json:"modification_date,omitempty"`
	Fields           []Field   `json:"fields"`
}

// NewContentCreateStruct prepares a create struct for a content type.
func NewContentCreateStruct(contentType *ContentType, mainLanguageCode string) ContentCreateStruct {
	return ContentCreateStruct{
		ContentTypeID:    contentType.ID,
		MainLanguageCode: mainLanguageCode,
	}
}

// SetField sets a field value. Without a language code the main language is
// used.
func (s *ContentCreateStruct) SetField(identifier string, value any, languageCode ...string) {
	lang := s.MainLanguageCode
	if len(languageCode) > 0 && languageCode[0] != "" {
		lang = languageCode[0]
	}
	s.Fields = setField(s.Fields, identifier, lang, value)
}

// ContentUpdateStruct changes the fields of a draft.
type ContentUpdateStruct struct {
	InitialLanguageCode string  `json:"initial_language_code,omitempty"`
	CreatorID           int64   `json:"creator_id,omitempty"`
	Fields              []Field `json:"fields"`
}

// SetField sets a field value. Without a language code the initial language
// is used.
func (s *ContentUpdateStruct) SetField(identifier string, value any, languageCode ...string) {
	lang := s.InitialLanguageCode
	if len(languageCode) > 0 && languageCode[0] != "" {
		lang = languageCode[0]
	}
	s.Fields = setField(s.Fields, identifier, lang, value)
}

func setField(fields []Field, identifier, lang string, value any) []Field {
	for i := range fields {
		if fields[i].DefinitionIdentifier == identifier && fields[i].LanguageCode == lang {
			fields[i].Value = value
			return fields
		}
	}
	return append(fields, Field{DefinitionIdentifier: identifier, LanguageCode: lang, Value: value})
}

// ContentMetadataUpdateStruct changes version independent metadata. Nil
// fields are left unchanged.
type ContentMetadataUpdateStruct struct {
	OwnerID          *int64     `json:"owner_id,omitempty"`
	PublishedDate    *time.Time `json:"published_date,omitempty"`
	ModificationDate *time.Time `json:"modification_date,omitempty"`
	MainLanguageCode *string    `json:"main_language_code,omitempty"`
	AlwaysAvailable  *bool      `json:"always_available,omitempty"`
	RemoteID         *string    `json:"remote_id,omitempty"`
	MainLocationID   *int64     `json:"main_location_id,omitempty"`
}

// LocationCreateStruct places content below a parent location.
type LocationCreateStruct struct {
	ParentLocationID int64     `json:"parent_location_id"`
	Priority         int       `json:"priority,omitempty"`
	Hidden           bool      `json:"hidden,omitempty"`
	RemoteID         string    `json:"remote_id,omitempty"`
	SortField        SortField `json:"sort_field,omitempty"`
	SortOrder        SortOrder `json:"sort_order,omitempty"`
}

// LocationUpdateStruct changes location properties. Nil fields are left
// unchanged.
type LocationUpdateStruct struct {
	Priority  *int       `json:"priority,omitempty"`
	RemoteID  *string    `json:"remote_id,omitempty"`
	SortField *SortField `json:"sort_field,omitempty"`
	SortOrder *SortOrder `json:"sort_order,omitempty"`
}

type ContentTypeGroupCreateStruct struct {
	Identifier   string    `json:"identifier"`
	CreatorID    int64     `json:"creator_id,omitempty"`
	CreationDate time.Time `json:"creation_date,omitempty"`
	IsSystem     bool      `json:"is_system,omitempty"`
}

type ContentTypeGroupUpdateStruct struct {
	Identifier       *string    `json:"identifier,omitempty"`
	ModifierID       int64      `json:"modifier_id,omitempty"`
	ModificationDate *time.Time `json:"modification_date,omitempty"`
}

// FieldDefinitionCreateStruct describes a field added to a content type.
type FieldDefinitionCreateStruct struct {
	Identifier          string            `json:"identifier"`
	FieldTypeIdentifier string            `json:"field_type_identifier"`
	Names               map[string]string `json:"names,omitempty"`
	Descriptions        map[string]string `json:"descriptions,omitempty"`
	FieldGroup          string            `json:"field_group,omitempty"`
	Position            int               `json:"position,omitempty"`
	IsRequired          bool              `json:"is_required,omitempty"`
	IsTranslatable      bool              `json:"is_translatable,omitempty"`
	IsSearchable        bool              `json:"is_searchable,omitempty"`
	DefaultValue        any               `json:"default_value,omitempty"`
	Settings            map[string]any    `json:"settings,omitempty"`
}

// FieldDefinitionUpdateStruct changes a field definition. Nil fields are
// left unchanged.
type FieldDefinitionUpdateStruct struct {
	Identifier     *string           `json:"identifier,omitempty"`
	Names          map[string]string `json:"names,omitempty"`
	Descriptions   map[string]string `json:"descriptions,omitempty"`
	FieldGroup     *string           `json:"field_group,omitempty"`
	Position       *int              `json:"position,omitempty"`
	IsRequired     *bool             `json:"is_required,omitempty"`
	IsTranslatable *bool             `json:"is_translatable,omitempty"`
	IsSearchable   *bool             `json:"is_searchable,omitempty"`
	DefaultValue   any               `json:"default_value,omitempty"`
	Settings       map[string]any    `json:"settings,omitempty"`
}

// ContentTypeCreateStruct holds a new content type.
type ContentTypeCreateStruct struct {
	Identifier             string                        `json:"identifier"`
	RemoteID               string                        `json:"remote_id,omitempty"`
	MainLanguageCode       string                        `json:"main_language_code"`
	Names                  map[string]string             `json:"names"`
	Descriptions           map[string]string             `json:"descriptions,omitempty"`
	NameSchema             string                        `json:"name_schema,omitempty"`
	URLAliasSchema         string                        `json:"url_alias_schema,omitempty"`
	IsContainer            bool                          `json:"is_container,omitempty"`
	DefaultAlwaysAvailable bool                          `json:"default_always_available,omitempty"`
	DefaultSortField       SortField                     `json:"default_sort_field,omitempty"`
	DefaultSortOrder       SortOrder                     `json:"default_sort_order,omitempty"`
	CreatorID              int64                         `json:"creator_id,omitempty"`
	FieldDefinitions       []FieldDefinitionCreateStruct `json:"field_definitions"`
}

// ContentTypeUpdateStruct changes a content type draft. Nil fields are left
// unchanged.
type ContentTypeUpdateStruct struct {
	Identifier             *string           `json:"identifier,omitempty"`
	RemoteID               *string           `json:"remote_id,omitempty"`
	MainLanguageCode       *string           `json:"main_language_code,omitempty"`
	Names                  map[string]string `json:"names,omitempty"`
	Descriptions           map[string]string `json:"descriptions,omitempty"`
	NameSchema             *string           `json:"name_schema,omitempty"`
	URLAliasSchema         *string           `json:"url_alias_schema,omitempty"`
	IsContainer            *bool             `json:"is_container,omitempty"`
	DefaultAlwaysAvailable *bool             `json:"default_always_available,omitempty"`
	DefaultSortField       *SortField        `json:"default_sort_field,omitempty"`
	DefaultSortOrder       *SortOrder        `json:"default_sort_order,omitempty"`
	ModifierID             int64             `json:"modifier_id,omitempty"`
}

type UserCreateStruct struct {
	Login    string `json:"login"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
	Enabled  bool   `json:"enabled"`
	MaxLogin int    `json:"max_login,omitempty"`
	RemoteID string `json:"remote_id,omitempty"`
}

// UserUpdateStruct changes a user. Nil fields are left unchanged.
type UserUpdateStruct struct {
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Name     *string `json:"name,omitempty"`
	Enabled  *bool   `json:"enabled,omitempty"`
	MaxLogin *int    `json:"max_login,omitempty"`
}

type UserGroupCreateStruct struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	RemoteID    string `json:"remote_id,omitempty"`
}

type UserGroupUpdateStruct struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type RoleCreateStruct struct {
	Identifier string               `json:"identifier"`
	Policies   []PolicyCreateStruct `json:"policies,omitempty"`
}

type RoleUpdateStruct struct {
	Identifier *string `json:"identifier,omitempty"`
}

type PolicyCreateStruct struct {
	Module      string       `json:"module"`
	Function    string       `json:"function"`
	Limitations []Limitation `json:"limitations,omitempty"`
}

type PolicyUpdateStruct struct {
	Limitations []Limitation `json:"limitations"`
}

// TrashQuery pages through the trash, optionally restricted to one
// content type.
type TrashQuery struct {
	ContentTypeID int64 `json:"content_type_id,omitempty"`
	Offset        int   `json:"offset,omitempty"`
	Limit         int   `json:"limit,omitempty"`
}

// URLQuery pages through URLs. Pattern matches as a substring.
type URLQuery struct {
	Pattern string `json:"pattern,omitempty"`
	IsValid *bool  `json:"is_valid,omitempty"`
	Offset  int    `json:"offset,omitempty"`
	Limit   int    `json:"limit,omitempty"`
}

type URLUpdateStruct struct {
	URL         *string    `json:"url,omitempty"`
	IsValid     *bool      `json:"is_valid,omitempty"`
	LastChecked *time.Time `json:"last_checked,omitempty"`
}

type CreateNotificationStruct struct {
	OwnerID int64          `json:"owner_id"`
	Type    string         `json:"type"`
	Data    map[string]any `json:"data,omitempty"`
}

type ObjectStateGroupCreateStruct struct {
	Identifier          string            `json:"identifier"`
	DefaultLanguageCode string            `json:"default_language_code"`
	Names               map[string]string `json:"names"`
	Descriptions        map[string]string `json:"descriptions,omitempty"`
}

type ObjectStateGroupUpdateStruct struct {
	Identifier          *string           `json:"identifier,omitempty"`
	DefaultLanguageCode *string           `json:"default_language_code,omitempty"`
	Names               map[string]string `json:"names,omitempty"`
	Descriptions        map[string]string `json:"descriptions,omitempty"`
}

type ObjectStateCreateStruct struct {
	Identifier          string            `json:"identifier"`
	Priority            *int              `json:"priority,omitempty"`
	DefaultLanguageCode string            `json:"default_language_code"`
	Names               map[string]string `json:"names"`
	Descriptions        map[string]string `json:"descriptions,omitempty"`
}

type ObjectStateUpdateStruct struct {
	Identifier          *string           `json:"identifier,omitempty"`
	DefaultLanguageCode *string           `json:"default_language_code,omitempty"`
	Names               map[string]string `json:"names,omitempty"`
	Descriptions        map[string]string `json:"descriptions,omitempty"`
}

type SectionCreateStruct struct {
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
}

type SectionUpdateStruct struct {
	Identifier *string `json:"identifier,omitempty"`
	Name       *string `json:"name,omitempty"`
}

type LanguageCreateStruct struct {
	LanguageCode string `json:"language_code"`
	Name         string `json:"name"`
	Enabled      bool   `json:"enabled"`
}

type URLWildcardUpdateStruct struct {
	SourceURL      *string `json:"source_url,omitempty"`
	DestinationURL *string `json:"destination_url,omitempty"`
	Forward        *bool   `json:"forward,omitempty"`
}

type UserPreferenceSetStruct struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
