package core

import (
	"context"
	"slices"
	"strings"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

// urlUsage links a URL to a content item referencing it.
type urlUsage struct {
	ID        int64 `json:"id"`
	URLID     int64 `json:"url_id"`
	ContentID int64 `json:"content_id"`
}

type urlService struct{ *Repository }

// registerURLs replaces the URL usages of a content item with the links
// found in fields, creating URL records as needed.
func (r *Repository) registerURLs(ctx context.Context, contentID int64, fields []simplecms.Field) error {
	if err := r.removeURLUsages(ctx, contentID); err != nil {
		return err
	}
	for _, link := range urlLinks(fields) {
		u, err := r.urlByLink(ctx, link)
		if isNotFound(err) {
			now := r.now()
			var created simplecms.URL
			created, err = r.urls.Create(ctx, func(id int64) simplecms.URL {
				return simplecms.URL{ID: id, URL: link, IsValid: true, Created: now, Modified: now}
			})
			u = &created
		}
		if err != nil {
			return err
		}
		if _, err := r.urlUsages.Create(ctx, func(id int64) urlUsage {
			return urlUsage{ID: id, URLID: u.ID, ContentID: contentID}
		}); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) removeURLUsages(ctx context.Context, contentID int64) error {
	usages, err := r.urlUsages.Find(ctx, func(u urlUsage) bool { return u.ContentID == contentID })
	if err != nil {
		return err
	}
	for _, u := range usages {
		if err := r.urlUsages.Delete(ctx, u.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) urlByLink(ctx context.Context, link string) (*simplecms.URL, error) {
	u, ok, err := r.urls.First(ctx, func(u simplecms.URL) bool { return u.URL == link })
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &simplecms.NotFoundError{What: "url", Identifier: link}
	}
	return &u, nil
}

func (s urlService) FindURLs(ctx context.Context, query simplecms.URLQuery) (*simplecms.URLSearchResult, error) {
	if err := s.require(ctx, "url", "view", nil); err != nil {
		return nil, err
	}
	urls, err := s.urls.Find(ctx, func(u simplecms.URL) bool {
		if query.Pattern != "" && !strings.Contains(u.URL, query.Pattern) {
			return false
		}
		return query.IsValid == nil || u.IsValid == *query.IsValid
	})
	if err != nil {
		return nil, err
	}
	return &simplecms.URLSearchResult{
		TotalCount: len(urls),
		Items:      ptrs(pageOf(urls, query.Offset, query.Limit)),
	}, nil
}

func (s urlService) LoadByID(ctx context.Context, id int64) (*simplecms.URL, error) {
	if err := s.require(ctx, "url", "view", nil); err != nil {
		return nil, err
	}
	u, err := s.urls.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "url", id)
	}
	return &u, nil
}

func (s urlService) LoadByURL(ctx context.Context, url string) (*simplecms.URL, error) {
	if err := s.require(ctx, "url", "view", nil); err != nil {
		return nil, err
	}
	return s.urlByLink(ctx, url)
}

func (s urlService) FindUsages(ctx context.Context, url *simplecms.URL, offset, limit int) (*simplecms.UsageSearchResult, error) {
	usages, err := s.urlUsages.Find(ctx, func(u urlUsage) bool { return u.URLID == url.ID })
	if err != nil {
		return nil, err
	}
	var ids []int64
	for _, u := range usages {
		if !slices.Contains(ids, u.ContentID) {
			ids = append(ids, u.ContentID)
		}
	}
	var infos []*simplecms.ContentInfo
	for _, id := range ids {
		info, err := s.loadInfo(ctx, id)
		if isNotFound(err) {
			continue
		} else if err != nil {
			return nil, err
		}
		ok, err := s.canUser(ctx, "content", "read", info)
		if err != nil {
			return nil, err
		}
		if ok {
			infos = append(infos, info)
		}
	}
	return &simplecms.UsageSearchResult{TotalCount: len(infos), Items: pageOf(infos, offset, limit)}, nil
}

func (s urlService) UpdateURL(ctx context.Context, url *simplecms.URL, update simplecms.URLUpdateStruct) (*simplecms.URL, error) {
	if err := s.require(ctx, "url", "update", nil); err != nil {
		return nil, err
	}
	u, err := s.urls.Get(ctx, url.ID)
	if err != nil {
		return nil, notFound(err, "url", url.ID)
	}
	if update.URL != nil && *update.URL != u.URL {
		if _, err := s.urlByLink(ctx, *update.URL); err == nil {
			return nil, invalid("url", "url %q already exists", *update.URL)
		} else if !isNotFound(err) {
			return nil, err
		}
		u.URL = *update.URL
	}
	if update.IsValid != nil {
		u.IsValid = *update.IsValid
	}
	if update.LastChecked != nil {
		u.LastChecked = *update.LastChecked
	}
	u.Modified = s.now()
	if err := s.urls.Put(ctx, u.ID, u); err != nil {
		return nil, err
	}
	return &u, nil
}

var _ simplecms.URLService = urlService{}
