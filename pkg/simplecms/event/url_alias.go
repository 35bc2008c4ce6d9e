package event

import (
	"context"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

const (
	BeforeCreateURLAlias = "simplecms.url_alias.before_create_url_alias"
	CreateURLAlias       = "simplecms.url_alias.create_url_alias"

	BeforeCreateGlobalURLAlias = "simplecms.url_alias.before_create_global_url_alias"
	CreateGlobalURLAlias       = "simplecms.url_alias.create_global_url_alias"

	BeforeRemoveAliases = "simplecms.url_alias.before_remove_aliases"
	RemoveAliases       = "simplecms.url_alias.remove_aliases"

	BeforeRefreshSystemURLAliasesForLocation = "simplecms.url_alias.before_refresh_system_url_aliases_for_location"
	RefreshSystemURLAliasesForLocation       = "simplecms.url_alias.refresh_system_url_aliases_for_location"
)

// BeforeCreateURLAliasEvent is dispatched before URLAliasService.CreateURLAlias.
type BeforeCreateURLAliasEvent struct {
	Before[*simplecms.URLAlias]

	Location        *simplecms.Location
	Path            string
	LanguageCode    string
	Forwarding      bool
	AlwaysAvailable bool
}

func (*BeforeCreateURLAliasEvent) EventName() string { return BeforeCreateURLAlias }

// CreateURLAliasEvent is dispatched after URLAliasService.CreateURLAlias succeeded.
type CreateURLAliasEvent struct {
	Result          *simplecms.URLAlias
	Location        *simplecms.Location
	Path            string
	LanguageCode    string
	Forwarding      bool
	AlwaysAvailable bool
}

func (*CreateURLAliasEvent) EventName() string { return CreateURLAlias }

func (e *CreateURLAliasEvent) result() any { return e.Result }

// BeforeCreateGlobalURLAliasEvent is dispatched before URLAliasService.CreateGlobalURLAlias.
type BeforeCreateGlobalURLAliasEvent struct {
	Before[*simplecms.URLAlias]

	Resource        string
	Path            string
	LanguageCode    string
	Forwarding      bool
	AlwaysAvailable bool
}

func (*BeforeCreateGlobalURLAliasEvent) EventName() string { return BeforeCreateGlobalURLAlias }

// CreateGlobalURLAliasEvent is dispatched after URLAliasService.CreateGlobalURLAlias succeeded.
type CreateGlobalURLAliasEvent struct {
	Result          *simplecms.URLAlias
	Resource        string
	Path            string
	LanguageCode    string
	Forwarding      bool
	AlwaysAvailable bool
}

func (*CreateGlobalURLAliasEvent) EventName() string { return CreateGlobalURLAlias }

func (e *CreateGlobalURLAliasEvent) result() any { return e.Result }

// BeforeRemoveAliasesEvent is dispatched before URLAliasService.RemoveAliases.
type BeforeRemoveAliasesEvent struct {
	Propagation

	Aliases []*simplecms.URLAlias
}

func (*BeforeRemoveAliasesEvent) EventName() string { return BeforeRemoveAliases }

// RemoveAliasesEvent is dispatched after URLAliasService.RemoveAliases succeeded.
type RemoveAliasesEvent struct {
	Aliases []*simplecms.URLAlias
}

func (*RemoveAliasesEvent) EventName() string { return RemoveAliases }

// BeforeRefreshSystemURLAliasesForLocationEvent is dispatched before URLAliasService.RefreshSystemURLAliasesForLocation.
type BeforeRefreshSystemURLAliasesForLocationEvent struct {
	Propagation

	Location *simplecms.Location
}

func (*BeforeRefreshSystemURLAliasesForLocationEvent) EventName() string { return BeforeRefreshSystemURLAliasesForLocation }

// RefreshSystemURLAliasesForLocationEvent is dispatched after URLAliasService.RefreshSystemURLAliasesForLocation succeeded.
type RefreshSystemURLAliasesForLocationEvent struct {
	Location *simplecms.Location
}

func (*RefreshSystemURLAliasesForLocationEvent) EventName() string { return RefreshSystemURLAliasesForLocation }

type urlAliasService struct {
	simplecms.URLAliasService
	dispatcher Dispatcher
}

// NewURLAliasService returns a URLAliasService that dispatches events around every
// mutating method of inner.
func NewURLAliasService(inner simplecms.URLAliasService, d Dispatcher) simplecms.URLAliasService {
	return &urlAliasService{URLAliasService: inner, dispatcher: d}
}

func (s *urlAliasService) CreateURLAlias(ctx context.Context, location *simplecms.Location, path string, languageCode string, forwarding bool, alwaysAvailable bool) (*simplecms.URLAlias, error) {
	before := &BeforeCreateURLAliasEvent{Location: location, Path: path, LanguageCode: languageCode, Forwarding: forwarding, AlwaysAvailable: alwaysAvailable}
	return call[*simplecms.URLAlias](ctx, s.dispatcher, before,
		func() (*simplecms.URLAlias, error) { return s.URLAliasService.CreateURLAlias(ctx, before.Location, before.Path, before.LanguageCode, before.Forwarding, before.AlwaysAvailable) },
		func(result *simplecms.URLAlias) Event { return &CreateURLAliasEvent{Result: result, Location: before.Location, Path: before.Path, LanguageCode: before.LanguageCode, Forwarding: before.Forwarding, AlwaysAvailable: before.AlwaysAvailable} })
}

func (s *urlAliasService) CreateGlobalURLAlias(ctx context.Context, resource string, path string, languageCode string, forwarding bool, alwaysAvailable bool) (*simplecms.URLAlias, error) {
	before := &BeforeCreateGlobalURLAliasEvent{Resource: resource, Path: path, LanguageCode: languageCode, Forwarding: forwarding, AlwaysAvailable: alwaysAvailable}
	return call[*simplecms.URLAlias](ctx, s.dispatcher, before,
		func() (*simplecms.URLAlias, error) { return s.URLAliasService.CreateGlobalURLAlias(ctx, before.Resource, before.Path, before.LanguageCode, before.Forwarding, before.AlwaysAvailable) },
		func(result *simplecms.URLAlias) Event { return &CreateGlobalURLAliasEvent{Result: result, Resource: before.Resource, Path: before.Path, LanguageCode: before.LanguageCode, Forwarding: before.Forwarding, AlwaysAvailable: before.AlwaysAvailable} })
}

func (s *urlAliasService) RemoveAliases(ctx context.Context, aliases []*simplecms.URLAlias) error {
	before := &BeforeRemoveAliasesEvent{Aliases: aliases}
	return run(ctx, s.dispatcher, before,
		func() error { return s.URLAliasService.RemoveAliases(ctx, before.Aliases) },
		func() Event { return &RemoveAliasesEvent{Aliases: before.Aliases} })
}

func (s *urlAliasService) RefreshSystemURLAliasesForLocation(ctx context.Context, location *simplecms.Location) error {
	before := &BeforeRefreshSystemURLAliasesForLocationEvent{Location: location}
	return run(ctx, s.dispatcher, before,
		func() error { return s.URLAliasService.RefreshSystemURLAliasesForLocation(ctx, before.Location) },
		func() Event { return &RefreshSystemURLAliasesForLocationEvent{Location: before.Location} })
}

var _ simplecms.URLAliasService = (*urlAliasService)(nil)
