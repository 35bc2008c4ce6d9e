package search

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/criteria"
	"github.com/tendant/simple-cms/pkg/simplecms/storage"
)

// DocumentKind is the storage kind of indexed documents.
const DocumentKind = "search_document"

// PredicateEngine evaluates queries in Go over documents held in a store.
type PredicateEngine struct {
	docs      *storage.Table[Document]
	converter *criteria.Converter[Predicate]
}

// NewPredicateEngine returns an engine keeping its documents in store.
func NewPredicateEngine(store storage.Store) *PredicateEngine {
	return &PredicateEngine{
		docs:      storage.NewTable[Document](store, DocumentKind),
		converter: NewPredicateConverter(),
	}
}

// Converter exposes the criteria converter so callers can register
// handlers for their own criteria.
func (e *PredicateEngine) Converter() *criteria.Converter[Predicate] {
	return e.converter
}

func (e *PredicateEngine) Index(ctx context.Context, doc Document) error {
	return e.docs.Put(ctx, doc.ContentID, doc)
}

func (e *PredicateEngine) Remove(ctx context.Context, contentID int64) error {
	return e.docs.Delete(ctx, contentID)
}

func (e *PredicateEngine) FindContent(ctx context.Context, query simplecms.Query) (Result, error) {
	return e.find(ctx, query, false)
}

func (e *PredicateEngine) FindLocations(ctx context.Context, query simplecms.Query) (Result, error) {
	return e.find(ctx, query, true)
}

func (e *PredicateEngine) find(ctx context.Context, query simplecms.Query, locations bool) (Result, error) {
	filter := query.Filter
	if filter == nil {
		filter = simplecms.MatchAll{}
	}
	pred, err := e.converter.Convert(filter)
	if err != nil {
		return Result{}, err
	}
	less, err := comparator(query.SortClauses)
	if err != nil {
		return Result{}, err
	}

	docs, err := e.docs.All(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load search documents: %w", err)
	}

	var targets []Target
	for i := range docs {
		doc := &docs[i]
		if !locations {
			if pred(Target{Doc: doc}) {
				targets = append(targets, Target{Doc: doc})
			}
			continue
		}
		for j := range doc.Locations {
			t := Target{Doc: doc, Location: &doc.Locations[j]}
			if pred(t) {
				targets = append(targets, t)
			}
		}
	}

	slices.SortStableFunc(targets, less)
	return page(targets, query.Offset, query.Limit), nil
}

func page(targets []Target, offset, limit int) Result {
	res := Result{TotalCount: len(targets)}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(targets) {
		return res
	}
	end := len(targets)
	if limit > 0 && limit < end-offset {
		end = offset + limit
	}
	for _, t := range targets[offset:end] {
		hit := Hit{ContentID: t.Doc.ContentID}
		if t.Location != nil {
			hit.LocationID = t.Location.ID
		}
		res.Hits = append(res.Hits, hit)
	}
	return res
}

// location returns the location sorted on: the hit location or the main one.
func (t Target) location() *Location {
	if t.Location != nil {
		return t.Location
	}
	return t.Doc.MainLocation()
}

func comparator(clauses []simplecms.SortClause) (func(a, b Target) int, error) {
	keys := make([]func(a, b Target) int, 0, len(clauses)+1)
	for _, clause := range clauses {
		key, err := sortKey(clause.Target)
		if err != nil {
			return nil, err
		}
		if clause.Direction == simplecms.SortDescending {
			asc := key
			key = func(a, b Target) int { return -asc(a, b) }
		}
		keys = append(keys, key)
	}
	keys = append(keys, func(a, b Target) int {
		if c := cmp.Compare(a.Doc.ContentID, b.Doc.ContentID); c != 0 {
			return c
		}
		return cmp.Compare(locationInt(a, func(l *Location) int64 { return l.ID }), locationInt(b, func(l *Location) int64 { return l.ID }))
	})
	return func(a, b Target) int {
		for _, key := range keys {
			if c := key(a, b); c != 0 {
				return c
			}
		}
		return 0
	}, nil
}

func locationInt(t Target, get func(*Location) int64) int64 {
	if l := t.location(); l != nil {
		return get(l)
	}
	return 0
}

func sortKey(target simplecms.SortTarget) (func(a, b Target) int, error) {
	switch target {
	case simplecms.SortByContentID:
		return func(a, b Target) int { return cmp.Compare(a.Doc.ContentID, b.Doc.ContentID) }, nil
	case simplecms.SortByContentName:
		return func(a, b Target) int { return strings.Compare(strings.ToLower(a.Doc.Name), strings.ToLower(b.Doc.Name)) }, nil
	case simplecms.SortByDatePublished:
		return func(a, b Target) int { return cmp.Compare(a.Doc.PublishedAt, b.Doc.PublishedAt) }, nil
	case simplecms.SortByDateModified:
		return func(a, b Target) int { return cmp.Compare(a.Doc.ModifiedAt, b.Doc.ModifiedAt) }, nil
	case simplecms.SortBySectionID:
		return func(a, b Target) int { return cmp.Compare(a.Doc.SectionID, b.Doc.SectionID) }, nil
	case simplecms.SortByLocationPriority:
		return func(a, b Target) int {
			get := func(l *Location) int64 { return int64(l.Priority) }
			return cmp.Compare(locationInt(a, get), locationInt(b, get))
		}, nil
	case simplecms.SortByLocationDepth:
		return func(a, b Target) int {
			get := func(l *Location) int64 { return int64(l.Depth) }
			return cmp.Compare(locationInt(a, get), locationInt(b, get))
		}, nil
	case simplecms.SortByLocationPath:
		return func(a, b Target) int {
			return slices.Compare(pathOf(a), pathOf(b))
		}, nil
	default:
		return nil, &simplecms.NotImplementedError{Feature: fmt.Sprintf("sort clause %q", target)}
	}
}

// pathOf compares paths numerically segment by segment.
func pathOf(t Target) []int64 {
	l := t.location()
	if l == nil {
		return nil
	}
	loc := simplecms.Location{PathString: l.PathString}
	return loc.Path()
}

var _ Engine = (*PredicateEngine)(nil)
