package simplecms

import "time"

// Criterion is a search condition. Backends translate criteria through a
// criteria.Converter; a criterion no handler accepts is not implemented.
type Criterion interface {
	CriterionName() string
}

// Operator compares a criterion value against the target.
type Operator string

const (
	OpEQ      Operator = "="
	OpIn      Operator = "in"
	OpGT      Operator = ">"
	OpGTE     Operator = ">="
	OpLT      Operator = "<"
	OpLTE     Operator = "<="
	OpBetween Operator = "between"
)

// MatchAll matches everything.
type MatchAll struct{}

// MatchNone matches nothing.
type MatchNone struct{}

type LogicalAnd struct{ Criteria []Criterion }

type LogicalOr struct{ Criteria []Criterion }

type LogicalNot struct{ Criterion Criterion }

type ContentID struct{ IDs []int64 }

type RemoteID struct{ Values []string }

type ContentTypeID struct{ IDs []int64 }

type ContentTypeIdentifier struct{ Identifiers []string }

type SectionID struct{ IDs []int64 }

// LocationID matches content placed at, or locations with, the given IDs.
type LocationID struct{ IDs []int64 }

type ParentLocationID struct{ IDs []int64 }

// Subtree matches locations whose path starts with one of the path strings.
type Subtree struct{ PathStrings []string }

// Depth compares location depth.
type Depth struct {
	Operator Operator
	Values   []int
}

// Visibility matches visible or invisible locations.
type Visibility struct{ Visible bool }

// ContentName matches the content name. `*` is a wildcard and matching is
// case insensitive.
type ContentName struct{ Pattern string }

// DateTarget selects the date compared by DateMetadata.
type DateTarget string

const (
	DateModified  DateTarget = "modified"
	DatePublished DateTarget = "published"
)

type DateMetadata struct {
	Target   DateTarget
	Operator Operator
	Values   []time.Time
}

// UserMetadata matches the owner of the content.
type UserMetadata struct{ OwnerIDs []int64 }

type ObjectStateID struct{ IDs []int64 }

// LanguageCode matches content translated into one of the languages.
// MatchAlwaysAvailable also accepts always available content.
type LanguageCode struct {
	Codes                []string
	MatchAlwaysAvailable bool
}

type Status struct{ Statuses []ContentStatus }

func (MatchAll) CriterionName() string              { return "MatchAll" }
func (MatchNone) CriterionName() string             { return "MatchNone" }
func (LogicalAnd) CriterionName() string            { return "LogicalAnd" }
func (LogicalOr) CriterionName() string             { return "LogicalOr" }
func (LogicalNot) CriterionName() string            { return "LogicalNot" }
func (ContentID) CriterionName() string             { return "ContentId" }
func (RemoteID) CriterionName() string              { return "RemoteId" }
func (ContentTypeID) CriterionName() string         { return "ContentTypeId" }
func (ContentTypeIdentifier) CriterionName() string { return "ContentTypeIdentifier" }
func (SectionID) CriterionName() string             { return "SectionId" }
func (LocationID) CriterionName() string            { return "LocationId" }
func (ParentLocationID) CriterionName() string      { return "ParentLocationId" }
func (Subtree) CriterionName() string               { return "Subtree" }
func (Depth) CriterionName() string                 { return "Depth" }
func (Visibility) CriterionName() string            { return "Visibility" }
func (ContentName) CriterionName() string           { return "ContentName" }
func (DateMetadata) CriterionName() string          { return "DateMetadata" }
func (UserMetadata) CriterionName() string          { return "UserMetadata" }
func (ObjectStateID) CriterionName() string         { return "ObjectStateId" }
func (LanguageCode) CriterionName() string          { return "LanguageCode" }
func (Status) CriterionName() string                { return "Status" }

// SortTarget is the property a search result is ordered by.
type SortTarget string

const (
	SortByContentID        SortTarget = "content_id"
	SortByContentName      SortTarget = "content_name"
	SortByDatePublished    SortTarget = "date_published"
	SortByDateModified     SortTarget = "date_modified"
	SortBySectionID        SortTarget = "section_id"
	SortByLocationPriority SortTarget = "location_priority"
	SortByLocationDepth    SortTarget = "location_depth"
	SortByLocationPath     SortTarget = "location_path"
)

type SortClause struct {
	Target    SortTarget `json:"target"`
	Direction SortOrder  `json:"direction"`
}

// Query is a content or location search.
type Query struct {
	Filter      Criterion
	SortClauses []SortClause
	Offset      int
	// Limit of zero returns every hit.
	Limit int
}

// SortClauseFor maps a location sort field to a search sort clause.
func SortClauseFor(field SortField, order SortOrder) SortClause {
	target := SortByLocationPath
	switch field {
	case SortFieldPublished:
		target = SortByDatePublished
	case SortFieldModified:
		target = SortByDateModified
	case SortFieldSection:
		target = SortBySectionID
	case SortFieldDepth:
		target = SortByLocationDepth
	case SortFieldPriority:
		target = SortByLocationPriority
	case SortFieldName:
		target = SortByContentName
	case SortFieldContentID:
		target = SortByContentID
	}
	if order == "" {
		order = SortAscending
	}
	return SortClause{Target: target, Direction: order}
}
