package event

import (
	"context"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

const (
	BeforeCreateURLWildcard = "simplecms.url_wildcard.before_create_url_wildcard"
	CreateURLWildcard       = "simplecms.url_wildcard.create_url_wildcard"

	BeforeUpdateURLWildcard = "simplecms.url_wildcard.before_update_url_wildcard"
	UpdateURLWildcard       = "simplecms.url_wildcard.update_url_wildcard"

	BeforeRemoveURLWildcard = "simplecms.url_wildcard.before_remove_url_wildcard"
	RemoveURLWildcard       = "simplecms.url_wildcard.remove_url_wildcard"
)

// BeforeCreateURLWildcardEvent is dispatched before URLWildcardService.Create.
type BeforeCreateURLWildcardEvent struct {
	Before[*simplecms.URLWildcard]

	SourceURL      string
	DestinationURL string
	Forward        bool
}

func (*BeforeCreateURLWildcardEvent) EventName() string { return BeforeCreateURLWildcard }

// CreateURLWildcardEvent is dispatched after URLWildcardService.Create succeeded.
type CreateURLWildcardEvent struct {
	Result         *simplecms.URLWildcard
	SourceURL      string
	DestinationURL string
	Forward        bool
}

func (*CreateURLWildcardEvent) EventName() string { return CreateURLWildcard }

func (e *CreateURLWildcardEvent) result() any { return e.Result }

// BeforeUpdateURLWildcardEvent is dispatched before URLWildcardService.Update.
type BeforeUpdateURLWildcardEvent struct {
	Propagation

	Wildcard *simplecms.URLWildcard
	Update   simplecms.URLWildcardUpdateStruct
}

func (*BeforeUpdateURLWildcardEvent) EventName() string { return BeforeUpdateURLWildcard }

// UpdateURLWildcardEvent is dispatched after URLWildcardService.Update succeeded.
type UpdateURLWildcardEvent struct {
	Wildcard *simplecms.URLWildcard
	Update   simplecms.URLWildcardUpdateStruct
}

func (*UpdateURLWildcardEvent) EventName() string { return UpdateURLWildcard }

// BeforeRemoveURLWildcardEvent is dispatched before URLWildcardService.Remove.
type BeforeRemoveURLWildcardEvent struct {
	Propagation

	Wildcard *simplecms.URLWildcard
}

func (*BeforeRemoveURLWildcardEvent) EventName() string { return BeforeRemoveURLWildcard }

// RemoveURLWildcardEvent is dispatched after URLWildcardService.Remove succeeded.
type RemoveURLWildcardEvent struct {
	Wildcard *simplecms.URLWildcard
}

func (*RemoveURLWildcardEvent) EventName() string { return RemoveURLWildcard }

type urlWildcardService struct {
	simplecms.URLWildcardService
	dispatcher Dispatcher
}

// NewURLWildcardService returns a URLWildcardService that dispatches events around every
// mutating method of inner.
func NewURLWildcardService(inner simplecms.URLWildcardService, d Dispatcher) simplecms.URLWildcardService {
	return &urlWildcardService{URLWildcardService: inner, dispatcher: d}
}

func (s *urlWildcardService) Create(ctx context.Context, sourceURL string, destinationURL string, forward bool) (*simplecms.URLWildcard, error) {
	before := &BeforeCreateURLWildcardEvent{SourceURL: sourceURL, DestinationURL: destinationURL, Forward: forward}
	return call[*simplecms.URLWildcard](ctx, s.dispatcher, before,
		func() (*simplecms.URLWildcard, error) { return s.URLWildcardService.Create(ctx, before.SourceURL, before.DestinationURL, before.Forward) },
		func(result *simplecms.URLWildcard) Event { return &CreateURLWildcardEvent{Result: result, SourceURL: before.SourceURL, DestinationURL: before.DestinationURL, Forward: before.Forward} })
}

func (s *urlWildcardService) Update(ctx context.Context, wildcard *simplecms.URLWildcard, update simplecms.URLWildcardUpdateStruct) error {
	before := &BeforeUpdateURLWildcardEvent{Wildcard: wildcard, Update: update}
	return run(ctx, s.dispatcher, before,
		func() error { return s.URLWildcardService.Update(ctx, before.Wildcard, before.Update) },
		func() Event { return &UpdateURLWildcardEvent{Wildcard: before.Wildcard, Update: before.Update} })
}

func (s *urlWildcardService) Remove(ctx context.Context, wildcard *simplecms.URLWildcard) error {
	before := &BeforeRemoveURLWildcardEvent{Wildcard: wildcard}
	return run(ctx, s.dispatcher, before,
		func() error { return s.URLWildcardService.Remove(ctx, before.Wildcard) },
		func() Event { return &RemoveURLWildcardEvent{Wildcard: before.Wildcard} })
}

var _ simplecms.URLWildcardService = (*urlWildcardService)(nil)
