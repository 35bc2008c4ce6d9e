package event

import (
	"context"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

const (
	BeforeUpdateURL = "simplecms.url.before_update_url"
	UpdateURL       = "simplecms.url.update_url"
)

// BeforeUpdateURLEvent is dispatched before URLService.UpdateURL.
type BeforeUpdateURLEvent struct {
	Before[*simplecms.URL]

	URL    *simplecms.URL
	Update simplecms.URLUpdateStruct
}

func (*BeforeUpdateURLEvent) EventName() string { return BeforeUpdateURL }

// UpdateURLEvent is dispatched after URLService.UpdateURL succeeded.
type UpdateURLEvent struct {
	Result *simplecms.URL
	URL    *simplecms.URL
	Update simplecms.URLUpdateStruct
}

func (*UpdateURLEvent) EventName() string { return UpdateURL }

func (e *UpdateURLEvent) result() any { return e.Result }

type urlService struct {
	simplecms.URLService
	dispatcher Dispatcher
}

// NewURLService returns a URLService that dispatches events around every
// mutating method of inner.
func NewURLService(inner simplecms.URLService, d Dispatcher) simplecms.URLService {
	return &urlService{URLService: inner, dispatcher: d}
}

func (s *urlService) UpdateURL(ctx context.Context, url *simplecms.URL, update simplecms.URLUpdateStruct) (*simplecms.URL, error) {
	before := &BeforeUpdateURLEvent{URL: url, Update: update}
	return call[*simplecms.URL](ctx, s.dispatcher, before,
		func() (*simplecms.URL, error) { return s.URLService.UpdateURL(ctx, before.URL, before.Update) },
		func(result *simplecms.URL) Event { return &UpdateURLEvent{Result: result, URL: before.URL, Update: before.Update} })
}

var _ simplecms.URLService = (*urlService)(nil)
