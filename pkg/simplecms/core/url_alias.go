package core

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/tendant/simple-cms/pkg/simplecms"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type urlAliasService struct{ *Repository }

var slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)

// slugify lowercases s, strips diacritics and joins the remaining words
// with dashes.
func slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, s)
	if err != nil {
		plain = s
	}
	return strings.Trim(slugSeparators.ReplaceAllString(strings.ToLower(plain), "-"), "-")
}

func cleanAliasPath(path string) string {
	return strings.Trim(strings.TrimSpace(path), "/")
}

func hasLanguage(a simplecms.URLAlias, lang string) bool {
	return lang == "" || slices.Contains(a.LanguageCodes, lang)
}

// aliasAt returns the active alias using path, if any.
func (r *Repository) aliasAt(ctx context.Context, path string) (*simplecms.URLAlias, error) {
	a, ok, err := r.aliases.First(ctx, func(a simplecms.URLAlias) bool {
		return !a.IsHistory && strings.EqualFold(a.Path, path)
	})
	if err != nil || !ok {
		return nil, err
	}
	return &a, nil
}

// systemAliasPath returns the active system alias path of a location in
// lang, falling back to any active system alias of it.
func (r *Repository) systemAliasPath(ctx context.Context, locationID int64, lang string) (string, error) {
	aliases, err := r.aliases.Find(ctx, func(a simplecms.URLAlias) bool {
		return a.LocationID == locationID && !a.IsCustom && !a.IsHistory
	})
	if err != nil {
		return "", err
	}
	for _, a := range aliases {
		if hasLanguage(a, lang) {
			return a.Path, nil
		}
	}
	if len(aliases) > 0 {
		return aliases[0].Path, nil
	}
	return "", nil
}

// refreshSystemAliases regenerates the system aliases of loc and its
// descendants. Replaced aliases are kept as history.
func (r *Repository) refreshSystemAliases(ctx context.Context, loc *simplecms.Location) error {
	locations, err := r.subtree(ctx, loc)
	if err != nil {
		return err
	}
	for i := range locations {
		if err := r.refreshLocationAliases(ctx, &locations[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) refreshContentAliases(ctx context.Context, contentID int64) error {
	locations, err := r.locationsOf(ctx, contentID)
	if err != nil {
		return err
	}
	for i := range locations {
		if err := r.refreshSystemAliases(ctx, &locations[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) refreshLocationAliases(ctx context.Context, loc *simplecms.Location) error {
	if loc.ContentID == 0 {
		return nil
	}
	info, err := r.loadInfo(ctx, loc.ContentID)
	if err != nil {
		return err
	}
	if !info.IsPublished() {
		return nil
	}
	rec, err := r.loadVersion(ctx, info, 0)
	if err != nil {
		return err
	}

	for _, lang := range rec.Info.LanguageCodes {
		name := rec.Info.Name(lang)
		segment := slugify(name)
		if segment == "" {
			segment = strconv.FormatInt(info.ID, 10)
		}
		parent, err := r.systemAliasPath(ctx, loc.ParentLocationID, lang)
		if err != nil {
			return err
		}
		base := strings.TrimPrefix(parent+"/"+segment, "/")
		if err := r.setSystemAlias(ctx, loc.ID, lang, base, info.AlwaysAvailable && lang == info.MainLanguageCode); err != nil {
			return err
		}
	}
	return nil
}

// setSystemAlias makes base, or base suffixed with a number when taken by
// another location, the system alias of a location in lang.
func (r *Repository) setSystemAlias(ctx context.Context, locationID int64, lang, base string, alwaysAvailable bool) error {
	path := base
	for n := 2; ; n++ {
		taken, err := r.aliasAt(ctx, path)
		if err != nil {
			return err
		}
		if taken == nil || (taken.LocationID == locationID && !taken.IsCustom) {
			break
		}
		path = fmt.Sprintf("%s%d", base, n)
	}

	current, err := r.aliases.Find(ctx, func(a simplecms.URLAlias) bool {
		return a.LocationID == locationID && !a.IsCustom && !a.IsHistory && slices.Contains(a.LanguageCodes, lang)
	})
	if err != nil {
		return err
	}
	for _, a := range current {
		if strings.EqualFold(a.Path, path) {
			if a.AlwaysAvailable != alwaysAvailable {
				a.AlwaysAvailable = alwaysAvailable
				return r.aliases.Put(ctx, a.ID, a)
			}
			return nil
		}
	}
	for _, a := range current {
		a.IsHistory = true
		if err := r.aliases.Put(ctx, a.ID, a); err != nil {
			return err
		}
	}

	// a path used before by the same location is revived
	old, found, err := r.aliases.First(ctx, func(a simplecms.URLAlias) bool {
		return a.LocationID == locationID && !a.IsCustom && a.IsHistory && strings.EqualFold(a.Path, path)
	})
	if err != nil {
		return err
	}
	if found {
		old.IsHistory = false
		old.LanguageCodes = []string{lang}
		old.AlwaysAvailable = alwaysAvailable
		return r.aliases.Put(ctx, old.ID, old)
	}
	_, err = r.aliases.Create(ctx, func(id int64) simplecms.URLAlias {
		return simplecms.URLAlias{
			ID:              id,
			Type:            simplecms.URLAliasLocation,
			LocationID:      locationID,
			Path:            path,
			LanguageCodes:   []string{lang},
			AlwaysAvailable: alwaysAvailable,
		}
	})
	return err
}

func (r *Repository) removeLocationAliases(ctx context.Context, locationID int64) error {
	aliases, err := r.aliases.Find(ctx, func(a simplecms.URLAlias) bool { return a.LocationID == locationID })
	if err != nil {
		return err
	}
	for _, a := range aliases {
		if err := r.aliases.Delete(ctx, a.ID); err != nil {
			return err
		}
	}
	return nil
}

// removeTranslationAliases drops the system aliases of a removed
// translation and rebuilds the paths of the subtrees.
func (r *Repository) removeTranslationAliases(ctx context.Context, contentID int64, lang string) error {
	locations, err := r.locationsOf(ctx, contentID)
	if err != nil {
		return err
	}
	for _, loc := range locations {
		aliases, err := r.aliases.Find(ctx, func(a simplecms.URLAlias) bool {
			return a.LocationID == loc.ID && !a.IsCustom && slices.Contains(a.LanguageCodes, lang)
		})
		if err != nil {
			return err
		}
		for _, a := range aliases {
			if err := r.aliases.Delete(ctx, a.ID); err != nil {
				return err
			}
		}
	}
	return r.refreshContentAliases(ctx, contentID)
}

func (s urlAliasService) ListLocationAliases(ctx context.Context, location *simplecms.Location, custom bool, languageCode string) ([]*simplecms.URLAlias, error) {
	loc, err := s.loadLocation(ctx, location.ID)
	if err != nil {
		return nil, err
	}
	aliases, err := s.aliases.Find(ctx, func(a simplecms.URLAlias) bool {
		return a.LocationID == loc.ID && a.IsCustom == custom && !a.IsHistory && hasLanguage(a, languageCode)
	})
	if err != nil {
		return nil, err
	}
	return ptrs(aliases), nil
}

func (s urlAliasService) ListGlobalAliases(ctx context.Context, languageCode string, offset, limit int) ([]*simplecms.URLAlias, error) {
	aliases, err := s.aliases.Find(ctx, func(a simplecms.URLAlias) bool {
		return a.Type == simplecms.URLAliasResource && !a.IsHistory && hasLanguage(a, languageCode)
	})
	if err != nil {
		return nil, err
	}
	return ptrs(pageOf(aliases, offset, limit)), nil
}

// Lookup resolves a path. Active aliases win over history entries, which
// are still returned so that callers can redirect.
func (s urlAliasService) Lookup(ctx context.Context, path, languageCode string) (*simplecms.URLAlias, error) {
	path = cleanAliasPath(path)
	aliases, err := s.aliases.Find(ctx, func(a simplecms.URLAlias) bool {
		return strings.EqualFold(a.Path, path) && (hasLanguage(a, languageCode) || a.AlwaysAvailable)
	})
	if err != nil {
		return nil, err
	}
	if len(aliases) == 0 {
		return nil, &simplecms.NotFoundError{What: "urlAlias", Identifier: path}
	}
	slices.SortStableFunc(aliases, func(a, b simplecms.URLAlias) int {
		switch {
		case a.IsHistory == b.IsHistory:
			return 0
		case a.IsHistory:
			return 1
		}
		return -1
	})
	return &aliases[0], nil
}

func (s urlAliasService) ReverseLookup(ctx context.Context, location *simplecms.Location, languageCode string) (*simplecms.URLAlias, error) {
	loc, err := s.loadLocation(ctx, location.ID)
	if err != nil {
		return nil, err
	}
	aliases, err := s.aliases.Find(ctx, func(a simplecms.URLAlias) bool { return a.LocationID == loc.ID && !a.IsHistory })
	if err != nil {
		return nil, err
	}
	// system aliases first, then custom ones
	slices.SortStableFunc(aliases, func(a, b simplecms.URLAlias) int {
		switch {
		case a.IsCustom == b.IsCustom:
			return 0
		case a.IsCustom:
			return 1
		}
		return -1
	})
	for _, a := range aliases {
		if hasLanguage(a, languageCode) {
			return &a, nil
		}
	}
	for _, a := range aliases {
		if a.AlwaysAvailable {
			return &a, nil
		}
	}
	return nil, &simplecms.NotFoundError{What: "urlAlias", Identifier: fmt.Sprintf("location %d", loc.ID)}
}

func (s urlAliasService) Load(ctx context.Context, id int64) (*simplecms.URLAlias, error) {
	a, err := s.aliases.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "urlAlias", id)
	}
	return &a, nil
}

func (s urlAliasService) CreateURLAlias(ctx context.Context, location *simplecms.Location, path, languageCode string, forwarding, alwaysAvailable bool) (*simplecms.URLAlias, error) {
	if err := s.require(ctx, "content", "urltranslator", nil); err != nil {
		return nil, err
	}
	loc, err := s.loadLocation(ctx, location.ID)
	if err != nil {
		return nil, err
	}
	return s.createCustomAlias(ctx, simplecms.URLAlias{
		Type:            simplecms.URLAliasLocation,
		LocationID:      loc.ID,
		Forward:         forwarding,
		AlwaysAvailable: alwaysAvailable,
	}, path, languageCode)
}

// CreateGlobalURLAlias accepts resources of the form eznode:<location id>
// and module:<uri>.
func (s urlAliasService) CreateGlobalURLAlias(ctx context.Context, resource, path, languageCode string, forwarding, alwaysAvailable bool) (*simplecms.URLAlias, error) {
	if err := s.require(ctx, "content", "urltranslator", nil); err != nil {
		return nil, err
	}
	scheme, target, ok := strings.Cut(resource, ":")
	if !ok {
		return nil, invalid("resource", "%q has no scheme", resource)
	}
	switch scheme {
	case "eznode":
		id, err := strconv.ParseInt(target, 10, 64)
		if err != nil {
			return nil, invalid("resource", "%q is not a location id", target)
		}
		return s.CreateURLAlias(ctx, &simplecms.Location{ID: id}, path, languageCode, forwarding, alwaysAvailable)
	case "module":
		return s.createCustomAlias(ctx, simplecms.URLAlias{
			Type:            simplecms.URLAliasResource,
			Resource:        target,
			Forward:         forwarding,
			AlwaysAvailable: alwaysAvailable,
		}, path, languageCode)
	default:
		return nil, invalid("resource", "unknown scheme %q", scheme)
	}
}

func (s urlAliasService) createCustomAlias(ctx context.Context, alias simplecms.URLAlias, path, languageCode string) (*simplecms.URLAlias, error) {
	path = cleanAliasPath(path)
	if path == "" {
		return nil, invalid("path", "must not be empty")
	}
	if _, err := s.languageByCode(ctx, languageCode); err != nil {
		if isNotFound(err) {
			return nil, invalid("languageCode", "language %q does not exist", languageCode)
		}
		return nil, err
	}
	taken, err := s.aliasAt(ctx, path)
	if err != nil {
		return nil, err
	}
	if taken != nil {
		return nil, invalid("path", "path %q is already in use", path)
	}
	history, err := s.aliases.Find(ctx, func(a simplecms.URLAlias) bool { return a.IsHistory && strings.EqualFold(a.Path, path) })
	if err != nil {
		return nil, err
	}
	for _, h := range history {
		if err := s.aliases.Delete(ctx, h.ID); err != nil {
			return nil, err
		}
	}

	created, err := s.aliases.Create(ctx, func(id int64) simplecms.URLAlias {
		alias.ID = id
		alias.Path = path
		alias.LanguageCodes = []string{languageCode}
		alias.IsCustom = true
		return alias
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s urlAliasService) RemoveAliases(ctx context.Context, aliases []*simplecms.URLAlias) error {
	if err := s.require(ctx, "content", "urltranslator", nil); err != nil {
		return err
	}
	for _, alias := range aliases {
		a, err := s.Load(ctx, alias.ID)
		if err != nil {
			return err
		}
		if !a.IsCustom {
			return invalid("aliases", "alias %q is a system alias", a.Path)
		}
	}
	for _, alias := range aliases {
		if err := s.aliases.Delete(ctx, alias.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s urlAliasService) RefreshSystemURLAliasesForLocation(ctx context.Context, location *simplecms.Location) error {
	if err := s.require(ctx, "content", "urltranslator", nil); err != nil {
		return err
	}
	loc, err := s.loadLocation(ctx, location.ID)
	if err != nil {
		return err
	}
	return s.refreshSystemAliases(ctx, loc)
}

var _ simplecms.URLAliasService = urlAliasService{}
