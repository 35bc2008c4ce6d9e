package event

import (
	"context"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

const (
	BeforeCreateLanguage = "simplecms.language.before_create_language"
	CreateLanguage       = "simplecms.language.create_language"

	BeforeUpdateLanguageName = "simplecms.language.before_update_language_name"
	UpdateLanguageName       = "simplecms.language.update_language_name"

	BeforeEnableLanguage = "simplecms.language.before_enable_language"
	EnableLanguage       = "simplecms.language.enable_language"

	BeforeDisableLanguage = "simplecms.language.before_disable_language"
	DisableLanguage       = "simplecms.language.disable_language"

	BeforeDeleteLanguage = "simplecms.language.before_delete_language"
	DeleteLanguage       = "simplecms.language.delete_language"
)

// BeforeCreateLanguageEvent is dispatched before LanguageService.CreateLanguage.
type BeforeCreateLanguageEvent struct {
	Before[*simplecms.Language]

	Create simplecms.LanguageCreateStruct
}

func (*BeforeCreateLanguageEvent) EventName() string { return BeforeCreateLanguage }

// CreateLanguageEvent is dispatched after LanguageService.CreateLanguage succeeded.
type CreateLanguageEvent struct {
	Result *simplecms.Language
	Create simplecms.LanguageCreateStruct
}

func (*CreateLanguageEvent) EventName() string { return CreateLanguage }

func (e *CreateLanguageEvent) result() any { return e.Result }

// BeforeUpdateLanguageNameEvent is dispatched before LanguageService.UpdateLanguageName.
type BeforeUpdateLanguageNameEvent struct {
	Before[*simplecms.Language]

	Language *simplecms.Language
	Name     string
}

func (*BeforeUpdateLanguageNameEvent) EventName() string { return BeforeUpdateLanguageName }

// UpdateLanguageNameEvent is dispatched after LanguageService.UpdateLanguageName succeeded.
type UpdateLanguageNameEvent struct {
	Result   *simplecms.Language
	Language *simplecms.Language
	Name     string
}

func (*UpdateLanguageNameEvent) EventName() string { return UpdateLanguageName }

func (e *UpdateLanguageNameEvent) result() any { return e.Result }

// BeforeEnableLanguageEvent is dispatched before LanguageService.EnableLanguage.
type BeforeEnableLanguageEvent struct {
	Before[*simplecms.Language]

	Language *simplecms.Language
}

func (*BeforeEnableLanguageEvent) EventName() string { return BeforeEnableLanguage }

// EnableLanguageEvent is dispatched after LanguageService.EnableLanguage succeeded.
type EnableLanguageEvent struct {
	Result   *simplecms.Language
	Language *simplecms.Language
}

func (*EnableLanguageEvent) EventName() string { return EnableLanguage }

func (e *EnableLanguageEvent) result() any { return e.Result }

// BeforeDisableLanguageEvent is dispatched before LanguageService.DisableLanguage.
type BeforeDisableLanguageEvent struct {
	Before[*simplecms.Language]

	Language *simplecms.Language
}

func (*BeforeDisableLanguageEvent) EventName() string { return BeforeDisableLanguage }

// DisableLanguageEvent is dispatched after LanguageService.DisableLanguage succeeded.
type DisableLanguageEvent struct {
	Result   *simplecms.Language
	Language *simplecms.Language
}

func (*DisableLanguageEvent) EventName() string { return DisableLanguage }

func (e *DisableLanguageEvent) result() any { return e.Result }

// BeforeDeleteLanguageEvent is dispatched before LanguageService.DeleteLanguage.
type BeforeDeleteLanguageEvent struct {
	Propagation

	Language *simplecms.Language
}

func (*BeforeDeleteLanguageEvent) EventName() string { return BeforeDeleteLanguage }

// DeleteLanguageEvent is dispatched after LanguageService.DeleteLanguage succeeded.
type DeleteLanguageEvent struct {
	Language *simplecms.Language
}

func (*DeleteLanguageEvent) EventName() string { return DeleteLanguage }

type languageService struct {
	simplecms.LanguageService
	dispatcher Dispatcher
}

// NewLanguageService returns a LanguageService that dispatches events around every
// mutating method of inner.
func NewLanguageService(inner simplecms.LanguageService, d Dispatcher) simplecms.LanguageService {
	return &languageService{LanguageService: inner, dispatcher: d}
}

func (s *languageService) CreateLanguage(ctx context.Context, create simplecms.LanguageCreateStruct) (*simplecms.Language, error) {
	before := &BeforeCreateLanguageEvent{Create: create}
	return call[*simplecms.Language](ctx, s.dispatcher, before,
		func() (*simplecms.Language, error) { return s.LanguageService.CreateLanguage(ctx, before.Create) },
		func(result *simplecms.Language) Event { return &CreateLanguageEvent{Result: result, Create: before.Create} })
}

func (s *languageService) UpdateLanguageName(ctx context.Context, language *simplecms.Language, name string) (*simplecms.Language, error) {
	before := &BeforeUpdateLanguageNameEvent{Language: language, Name: name}
	return call[*simplecms.Language](ctx, s.dispatcher, before,
		func() (*simplecms.Language, error) { return s.LanguageService.UpdateLanguageName(ctx, before.Language, before.Name) },
		func(result *simplecms.Language) Event { return &UpdateLanguageNameEvent{Result: result, Language: before.Language, Name: before.Name} })
}

func (s *languageService) EnableLanguage(ctx context.Context, language *simplecms.Language) (*simplecms.Language, error) {
	before := &BeforeEnableLanguageEvent{Language: language}
	return call[*simplecms.Language](ctx, s.dispatcher, before,
		func() (*simplecms.Language, error) { return s.LanguageService.EnableLanguage(ctx, before.Language) },
		func(result *simplecms.Language) Event { return &EnableLanguageEvent{Result: result, Language: before.Language} })
}

func (s *languageService) DisableLanguage(ctx context.Context, language *simplecms.Language) (*simplecms.Language, error) {
	before := &BeforeDisableLanguageEvent{Language: language}
	return call[*simplecms.Language](ctx, s.dispatcher, before,
		func() (*simplecms.Language, error) { return s.LanguageService.DisableLanguage(ctx, before.Language) },
		func(result *simplecms.Language) Event { return &DisableLanguageEvent{Result: result, Language: before.Language} })
}

func (s *languageService) DeleteLanguage(ctx context.Context, language *simplecms.Language) error {
	before := &BeforeDeleteLanguageEvent{Language: language}
	return run(ctx, s.dispatcher, before,
		func() error { return s.LanguageService.DeleteLanguage(ctx, before.Language) },
		func() Event { return &DeleteLanguageEvent{Language: before.Language} })
}

var _ simplecms.LanguageService = (*languageService)(nil)
