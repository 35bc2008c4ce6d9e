package event

import (
	"context"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

type resultEvent[T any] interface {
	StoppableEvent
	HasResult() bool
	Result() (T, error)
}

// call runs inner between a before and an after event. A stopped before
// event returns its result without calling inner or dispatching the after
// event.
func call[T any](ctx context.Context, d Dispatcher, before resultEvent[T], inner func() (T, error), after func(T) Event) (T, error) {
	var zero T
	if err := d.Dispatch(ctx, before); err != nil {
		return zero, err
	}

	var result T
	switch {
	case before.IsPropagationStopped():
		return before.Result()
	case before.HasResult():
		result, _ = before.Result()
	default:
		var err error
		if result, err = inner(); err != nil {
			return zero, err
		}
	}

	if err := d.Dispatch(ctx, after(result)); err != nil {
		return zero, err
	}
	return result, nil
}

// run is call for methods without a result.
func run(ctx context.Context, d Dispatcher, before StoppableEvent, inner func() error, after func() Event) error {
	if err := d.Dispatch(ctx, before); err != nil {
		return err
	}
	if before.IsPropagationStopped() {
		return nil
	}
	if err := inner(); err != nil {
		return err
	}
	return d.Dispatch(ctx, after())
}

type repository struct {
	simplecms.Repository
	dispatcher Dispatcher
}

// Decorate returns a Repository whose services dispatch events through d.
// The permission resolver and the search service are returned unchanged.
func Decorate(repo simplecms.Repository, d Dispatcher) simplecms.Repository {
	return &repository{Repository: repo, dispatcher: d}
}

func (r *repository) ContentService() simplecms.ContentService {
	return NewContentService(r.Repository.ContentService(), r.dispatcher)
}

func (r *repository) ContentTypeService() simplecms.ContentTypeService {
	return NewContentTypeService(r.Repository.ContentTypeService(), r.dispatcher)
}

func (r *repository) LocationService() simplecms.LocationService {
	return NewLocationService(r.Repository.LocationService(), r.dispatcher)
}

func (r *repository) UserService() simplecms.UserService {
	return NewUserService(r.Repository.UserService(), r.dispatcher)
}

func (r *repository) RoleService() simplecms.RoleService {
	return NewRoleService(r.Repository.RoleService(), r.dispatcher)
}

func (r *repository) TrashService() simplecms.TrashService {
	return NewTrashService(r.Repository.TrashService(), r.dispatcher)
}

func (r *repository) URLService() simplecms.URLService {
	return NewURLService(r.Repository.URLService(), r.dispatcher)
}

func (r *repository) NotificationService() simplecms.NotificationService {
	return NewNotificationService(r.Repository.NotificationService(), r.dispatcher)
}

func (r *repository) ObjectStateService() simplecms.ObjectStateService {
	return NewObjectStateService(r.Repository.ObjectStateService(), r.dispatcher)
}

func (r *repository) SectionService() simplecms.SectionService {
	return NewSectionService(r.Repository.SectionService(), r.dispatcher)
}

func (r *repository) LanguageService() simplecms.LanguageService {
	return NewLanguageService(r.Repository.LanguageService(), r.dispatcher)
}

func (r *repository) URLAliasService() simplecms.URLAliasService {
	return NewURLAliasService(r.Repository.URLAliasService(), r.dispatcher)
}

func (r *repository) URLWildcardService() simplecms.URLWildcardService {
	return NewURLWildcardService(r.Repository.URLWildcardService(), r.dispatcher)
}

func (r *repository) BookmarkService() simplecms.BookmarkService {
	return NewBookmarkService(r.Repository.BookmarkService(), r.dispatcher)
}

func (r *repository) UserPreferenceService() simplecms.UserPreferenceService {
	return NewUserPreferenceService(r.Repository.UserPreferenceService(), r.dispatcher)
}
