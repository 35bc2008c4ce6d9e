package core

import (
	"context"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

type searchService struct{ *Repository }

// restrict ANDs the read limitations of the current user, and a language
// filter when languages are given, into the query.
func (s searchService) restrict(ctx context.Context, query simplecms.Query, languages []string) (simplecms.Query, error) {
	var and simplecms.LogicalAnd
	if query.Filter != nil {
		and.Criteria = append(and.Criteria, query.Filter)
	}
	perm, err := s.permissionCriterion(ctx, "content", "read")
	if err != nil {
		return query, err
	}
	if perm != nil {
		and.Criteria = append(and.Criteria, perm)
	}
	if len(languages) > 0 {
		and.Criteria = append(and.Criteria, simplecms.LanguageCode{Codes: languages, MatchAlwaysAvailable: true})
	}
	switch len(and.Criteria) {
	case 0:
		query.Filter = simplecms.MatchAll{}
	case 1:
		query.Filter = and.Criteria[0]
	default:
		query.Filter = and
	}
	return query, nil
}

func (s searchService) FindContent(ctx context.Context, query simplecms.Query, languages []string) (*simplecms.SearchResult[*simplecms.Content], error) {
	infos, err := s.findInfos(ctx, query, languages)
	if err != nil {
		return nil, err
	}
	result := &simplecms.SearchResult[*simplecms.Content]{TotalCount: infos.TotalCount}
	for _, info := range infos.Items {
		rec, err := s.loadVersion(ctx, info, 0)
		if err != nil {
			return nil, err
		}
		content, err := s.buildContent(ctx, info, rec, languages)
		if isNotFound(err) {
			continue
		} else if err != nil {
			return nil, err
		}
		result.Items = append(result.Items, content)
	}
	return result, nil
}

func (s searchService) FindContentInfo(ctx context.Context, query simplecms.Query) (*simplecms.SearchResult[*simplecms.ContentInfo], error) {
	return s.findInfos(ctx, query, nil)
}

func (s searchService) findInfos(ctx context.Context, query simplecms.Query, languages []string) (*simplecms.SearchResult[*simplecms.ContentInfo], error) {
	query, err := s.restrict(ctx, query, languages)
	if err != nil {
		return nil, err
	}
	res, err := s.engine.FindContent(ctx, query)
	if err != nil {
		return nil, err
	}
	result := &simplecms.SearchResult[*simplecms.ContentInfo]{TotalCount: res.TotalCount}
	for _, hit := range res.Hits {
		info, err := s.loadInfo(ctx, hit.ContentID)
		if isNotFound(err) {
			s.logger.Warn("search hit without content", "content_id", hit.ContentID)
			continue
		} else if err != nil {
			return nil, err
		}
		result.Items = append(result.Items, info)
	}
	return result, nil
}

func (s searchService) FindLocations(ctx context.Context, query simplecms.Query) (*simplecms.SearchResult[*simplecms.Location], error) {
	query, err := s.restrict(ctx, query, nil)
	if err != nil {
		return nil, err
	}
	res, err := s.engine.FindLocations(ctx, query)
	if err != nil {
		return nil, err
	}
	result := &simplecms.SearchResult[*simplecms.Location]{TotalCount: res.TotalCount}
	for _, hit := range res.Hits {
		loc, err := s.loadLocation(ctx, hit.LocationID)
		if isNotFound(err) {
			s.logger.Warn("search hit without location", "location_id", hit.LocationID)
			continue
		} else if err != nil {
			return nil, err
		}
		if loc, err = s.withContentInfo(ctx, loc); err != nil {
			return nil, err
		}
		result.Items = append(result.Items, loc)
	}
	return result, nil
}

func (s searchService) FindSingle(ctx context.Context, filter simplecms.Criterion, languages []string) (*simplecms.Content, error) {
	if filter == nil {
		return nil, invalid("filter", "must not be nil")
	}
	res, err := s.FindContent(ctx, simplecms.Query{Filter: filter, Limit: 2}, languages)
	if err != nil {
		return nil, err
	}
	switch {
	case res.TotalCount == 0:
		return nil, &simplecms.NotFoundError{What: "content", Identifier: filter.CriterionName()}
	case res.TotalCount > 1:
		return nil, invalid("filter", "expected a single result, found %d", res.TotalCount)
	case len(res.Items) == 0:
		return nil, &simplecms.NotFoundError{What: "content", Identifier: filter.CriterionName()}
	}
	return res.Items[0], nil
}

var _ simplecms.SearchService = searchService{}
