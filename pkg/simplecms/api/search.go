package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/render"
	"github.com/tendant/simple-cms/pkg/simplecms"
)

// Search runs a content search built from query parameters:
//
//	q        content name pattern, * is a wildcard
//	type     content type identifiers, comma separated
//	parent   parent location ID
//	subtree  location ID whose subtree is searched
//	section  section identifier
//	sort     sort target, such as content_name or date_published
//	order    asc or desc
//	offset, limit
//	locations=true returns locations instead of content
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query, err := h.buildQuery(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	ctx := r.Context()
	if r.URL.Query().Get("locations") == "true" {
		result, err := h.repo.SearchService().FindLocations(ctx, query)
		if err != nil {
			h.handleError(w, r, err)
			return
		}
		render.JSON(w, r, result)
		return
	}
	result, err := h.repo.SearchService().FindContent(ctx, query, languages(r))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

func (h *Handler) buildQuery(r *http.Request) (simplecms.Query, error) {
	params := r.URL.Query()
	ctx := r.Context()
	var criteria []simplecms.Criterion

	if q := params.Get("q"); q != "" {
		criteria = append(criteria, simplecms.ContentName{Pattern: q})
	}
	if types := params.Get("type"); types != "" {
		criteria = append(criteria, simplecms.ContentTypeIdentifier{Identifiers: strings.Split(types, ",")})
	}
	if parent := params.Get("parent"); parent != "" {
		id, err := strconv.ParseInt(parent, 10, 64)
		if err != nil {
			return simplecms.Query{}, invalidParam("parent", parent)
		}
		criteria = append(criteria, simplecms.ParentLocationID{IDs: []int64{id}})
	}
	if subtree := params.Get("subtree"); subtree != "" {
		id, err := strconv.ParseInt(subtree, 10, 64)
		if err != nil {
			return simplecms.Query{}, invalidParam("subtree", subtree)
		}
		loc, err := h.repo.LocationService().LoadLocation(ctx, id)
		if err != nil {
			return simplecms.Query{}, err
		}
		criteria = append(criteria, simplecms.Subtree{PathStrings: []string{loc.PathString}})
	}
	if identifier := params.Get("section"); identifier != "" {
		section, err := h.repo.SectionService().LoadSectionByIdentifier(ctx, identifier)
		if err != nil {
			return simplecms.Query{}, err
		}
		criteria = append(criteria, simplecms.SectionID{IDs: []int64{section.ID}})
	}

	query := simplecms.Query{Filter: simplecms.MatchAll{}}
	switch len(criteria) {
	case 0:
	case 1:
		query.Filter = criteria[0]
	default:
		query.Filter = simplecms.LogicalAnd{Criteria: criteria}
	}

	if target := params.Get("sort"); target != "" {
		order := simplecms.SortOrder(params.Get("order"))
		switch order {
		case "":
			order = simplecms.SortAscending
		case simplecms.SortAscending, simplecms.SortDescending:
		default:
			return simplecms.Query{}, invalidParam("order", string(order))
		}
		query.SortClauses = []simplecms.SortClause{{Target: simplecms.SortTarget(target), Direction: order}}
	}

	var err error
	if query.Offset, query.Limit, err = paging(r); err != nil {
		return simplecms.Query{}, err
	}
	return query, nil
}

func invalidParam(name, value string) error {
	return &simplecms.InvalidArgumentError{Argument: name, Reason: fmt.Sprintf("invalid value %q", value)}
}
