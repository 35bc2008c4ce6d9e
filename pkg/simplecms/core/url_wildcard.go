package core

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

type urlWildcardService struct{ *Repository }

var wildcardPlaceholder = regexp.MustCompile(`\{(\d+)\}`)

func normalizeWildcardURL(url string) string {
	return "/" + strings.Trim(url, "/ ")
}

// validateWildcard checks that every {n} placeholder of destination refers
// to a `*` of source.
func validateWildcard(source, destination string) error {
	stars := strings.Count(source, "*")
	for _, m := range wildcardPlaceholder.FindAllStringSubmatch(destination, -1) {
		n, _ := strconv.Atoi(m[1])
		if n < 1 || n > stars {
			return invalid("destinationUrl", "placeholder {%d} has no matching wildcard in %q", n, source)
		}
	}
	return nil
}

func (s urlWildcardService) Load(ctx context.Context, id int64) (*simplecms.URLWildcard, error) {
	w, err := s.wildcards.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "urlWildcard", id)
	}
	return &w, nil
}

func (s urlWildcardService) LoadAll(ctx context.Context, offset, limit int) ([]*simplecms.URLWildcard, error) {
	all, err := s.wildcards.All(ctx)
	if err != nil {
		return nil, err
	}
	return ptrs(pageOf(all, offset, limit)), nil
}

// Translate applies the first wildcard, by ID, whose source matches url.
func (s urlWildcardService) Translate(ctx context.Context, url string) (*simplecms.URLWildcardTranslationResult, error) {
	url = normalizeWildcardURL(url)
	all, err := s.wildcards.All(ctx)
	if err != nil {
		return nil, err
	}
	for _, w := range all {
		parts := strings.Split(w.SourceURL, "*")
		for i := range parts {
			parts[i] = regexp.QuoteMeta(parts[i])
		}
		re, err := regexp.Compile("^" + strings.Join(parts, "(.*)") + "$")
		if err != nil {
			return nil, err
		}
		m := re.FindStringSubmatch(url)
		if m == nil {
			continue
		}
		uri := wildcardPlaceholder.ReplaceAllStringFunc(w.DestinationURL, func(p string) string {
			n, _ := strconv.Atoi(strings.Trim(p, "{}"))
			if n < len(m) {
				return m[n]
			}
			return ""
		})
		return &simplecms.URLWildcardTranslationResult{URI: uri, Forward: w.Forward}, nil
	}
	return nil, &simplecms.NotFoundError{What: "urlWildcard", Identifier: url}
}

func (s urlWildcardService) Create(ctx context.Context, sourceURL, destinationURL string, forward bool) (*simplecms.URLWildcard, error) {
	if err := s.require(ctx, "content", "urltranslator", nil); err != nil {
		return nil, err
	}
	sourceURL = normalizeWildcardURL(sourceURL)
	destinationURL = normalizeWildcardURL(destinationURL)
	if err := s.uniqueWildcard(ctx, sourceURL, 0); err != nil {
		return nil, err
	}
	if err := validateWildcard(sourceURL, destinationURL); err != nil {
		return nil, err
	}
	w, err := s.wildcards.Create(ctx, func(id int64) simplecms.URLWildcard {
		return simplecms.URLWildcard{ID: id, SourceURL: sourceURL, DestinationURL: destinationURL, Forward: forward}
	})
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *Repository) uniqueWildcard(ctx context.Context, source string, self int64) error {
	_, exists, err := r.wildcards.First(ctx, func(w simplecms.URLWildcard) bool { return w.SourceURL == source && w.ID != self })
	if err != nil {
		return err
	}
	if exists {
		return invalid("sourceUrl", "wildcard with source %q already exists", source)
	}
	return nil
}

func (s urlWildcardService) Update(ctx context.Context, wildcard *simplecms.URLWildcard, update simplecms.URLWildcardUpdateStruct) error {
	if err := s.require(ctx, "content", "urltranslator", nil); err != nil {
		return err
	}
	w, err := s.Load(ctx, wildcard.ID)
	if err != nil {
		return err
	}
	if update.SourceURL != nil {
		w.SourceURL = normalizeWildcardURL(*update.SourceURL)
		if err := s.uniqueWildcard(ctx, w.SourceURL, w.ID); err != nil {
			return err
		}
	}
	if update.DestinationURL != nil {
		w.DestinationURL = normalizeWildcardURL(*update.DestinationURL)
	}
	if update.Forward != nil {
		w.Forward = *update.Forward
	}
	if err := validateWildcard(w.SourceURL, w.DestinationURL); err != nil {
		return err
	}
	return s.wildcards.Put(ctx, w.ID, *w)
}

func (s urlWildcardService) Remove(ctx context.Context, wildcard *simplecms.URLWildcard) error {
	if err := s.require(ctx, "content", "urltranslator", nil); err != nil {
		return err
	}
	w, err := s.Load(ctx, wildcard.ID)
	if err != nil {
		return err
	}
	return s.wildcards.Delete(ctx, w.ID)
}

var _ simplecms.URLWildcardService = urlWildcardService{}
