// Package search indexes published content and answers content and
// location queries.
//
// The repository keeps one Document per published content item. An Engine
// converts query criteria through a criteria.Converter into its own query
// representation: PredicateEngine evaluates Go predicates over documents
// read from any storage.Store, while the postgres package pushes criteria
// down to SQL.
package search

import (
	"context"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

// Location is the indexed part of a location.
type Location struct {
	ID         int64  `json:"id"`
	ParentID   int64  `json:"parent_id"`
	PathString string `json:"path_string"`
	Depth      int    `json:"depth"`
	Priority   int    `json:"priority"`
	Hidden     bool   `json:"hidden"`
	Invisible  bool   `json:"invisible"`
}

// Document is the indexed form of a published content item. Dates are unix
// seconds so that they order correctly in every backend.
type Document struct {
	ContentID             int64      `json:"content_id"`
	ContentTypeID         int64      `json:"content_type_id"`
	ContentTypeIdentifier string     `json:"content_type_identifier"`
	Name                  string     `json:"name"`
	SectionID             int64      `json:"section_id"`
	OwnerID               int64      `json:"owner_id"`
	Status                string     `json:"status"`
	RemoteID              string     `json:"remote_id"`
	ModifiedAt            int64      `json:"modified_at"`
	PublishedAt           int64      `json:"published_at"`
	MainLanguageCode      string     `json:"main_language_code"`
	LanguageCodes         []string   `json:"language_codes"`
	AlwaysAvailable       bool       `json:"always_available"`
	IsHidden              bool       `json:"is_hidden"`
	StateIDs              []int64    `json:"state_ids"`
	MainLocationID        int64      `json:"main_location_id"`
	Locations             []Location `json:"locations"`
}

// MainLocation returns the main location, or the first one.
func (d *Document) MainLocation() *Location {
	for i := range d.Locations {
		if d.Locations[i].ID == d.MainLocationID {
			return &d.Locations[i]
		}
	}
	if len(d.Locations) > 0 {
		return &d.Locations[0]
	}
	return nil
}

// Hit identifies a search hit. LocationID is set for location searches.
type Hit struct {
	ContentID  int64
	LocationID int64
}

// Result is a page of hits.
type Result struct {
	TotalCount int
	Hits       []Hit
}

// Engine indexes documents and runs queries.
type Engine interface {
	Index(ctx context.Context, doc Document) error
	Remove(ctx context.Context, contentID int64) error
	FindContent(ctx context.Context, query simplecms.Query) (Result, error)
	FindLocations(ctx context.Context, query simplecms.Query) (Result, error)
}
