package core

import (
	"context"
	"slices"

	"github.com/tendant/simple-cms/pkg/simplecms"
	"golang.org/x/text/language"
)

type languageService struct{ *Repository }

func (r *Repository) languageByCode(ctx context.Context, code string) (*simplecms.Language, error) {
	l, ok, err := r.languages.First(ctx, func(l simplecms.Language) bool { return l.LanguageCode == code })
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &simplecms.NotFoundError{What: "language", Identifier: code}
	}
	return &l, nil
}

func (s languageService) LoadLanguage(ctx context.Context, languageCode string) (*simplecms.Language, error) {
	if languageCode == "" {
		return nil, invalid("languageCode", "must not be empty")
	}
	return s.languageByCode(ctx, languageCode)
}

func (s languageService) LoadLanguageByID(ctx context.Context, id int64) (*simplecms.Language, error) {
	l, err := s.languages.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "language", id)
	}
	return &l, nil
}

func (s languageService) LoadLanguages(ctx context.Context) ([]*simplecms.Language, error) {
	languages, err := s.languages.All(ctx)
	if err != nil {
		return nil, err
	}
	return ptrs(languages), nil
}

func (s languageService) DefaultLanguageCode() string { return s.defaultLanguage }

func (s languageService) CreateLanguage(ctx context.Context, create simplecms.LanguageCreateStruct) (*simplecms.Language, error) {
	if err := s.require(ctx, "content", "translations", nil); err != nil {
		return nil, err
	}
	if err := validLanguageCode(create.LanguageCode); err != nil {
		return nil, err
	}
	if _, err := s.languageByCode(ctx, create.LanguageCode); err == nil {
		return nil, invalid("languageCode", "language %q already exists", create.LanguageCode)
	} else if !isNotFound(err) {
		return nil, err
	}
	l, err := s.languages.Create(ctx, func(id int64) simplecms.Language {
		return simplecms.Language{ID: id, LanguageCode: create.LanguageCode, Name: create.Name, Enabled: create.Enabled}
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("created language", "code", l.LanguageCode)
	return &l, nil
}

// validLanguageCode accepts codes such as eng-GB whose region part parses
// as a BCP 47 region.
func validLanguageCode(code string) error {
	if len(code) < 3 {
		return invalid("languageCode", "%q is too short", code)
	}
	if len(code) == 6 && code[3] == '-' {
		if _, err := language.ParseRegion(code[4:]); err != nil {
			return invalid("languageCode", "%q has an unknown region: %v", code, err)
		}
	}
	return nil
}

func (s languageService) UpdateLanguageName(ctx context.Context, lang *simplecms.Language, name string) (*simplecms.Language, error) {
	return s.update(ctx, lang, func(l *simplecms.Language) { l.Name = name })
}

func (s languageService) EnableLanguage(ctx context.Context, lang *simplecms.Language) (*simplecms.Language, error) {
	return s.update(ctx, lang, func(l *simplecms.Language) { l.Enabled = true })
}

func (s languageService) DisableLanguage(ctx context.Context, lang *simplecms.Language) (*simplecms.Language, error) {
	return s.update(ctx, lang, func(l *simplecms.Language) { l.Enabled = false })
}

func (s languageService) update(ctx context.Context, lang *simplecms.Language, apply func(*simplecms.Language)) (*simplecms.Language, error) {
	if err := s.require(ctx, "content", "translations", nil); err != nil {
		return nil, err
	}
	l, err := s.languages.Get(ctx, lang.ID)
	if err != nil {
		return nil, notFound(err, "language", lang.ID)
	}
	apply(&l)
	if err := s.languages.Put(ctx, l.ID, l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (s languageService) DeleteLanguage(ctx context.Context, lang *simplecms.Language) error {
	if err := s.require(ctx, "content", "translations", nil); err != nil {
		return err
	}
	l, err := s.languages.Get(ctx, lang.ID)
	if err != nil {
		return notFound(err, "language", lang.ID)
	}
	used, err := s.versions.Count(ctx, func(v versionRecord) bool {
		return slices.Contains(v.Info.LanguageCodes, l.LanguageCode)
	})
	if err != nil {
		return err
	}
	if used == 0 {
		used, err = s.contentInfos.Count(ctx, func(info simplecms.ContentInfo) bool {
			return info.MainLanguageCode == l.LanguageCode
		})
		if err != nil {
			return err
		}
	}
	if used > 0 {
		return badState("language", "language %q is still in use", l.LanguageCode)
	}
	return s.languages.Delete(ctx, l.ID)
}

var _ simplecms.LanguageService = languageService{}
