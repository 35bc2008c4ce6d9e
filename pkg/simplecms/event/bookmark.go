package event

import (
	"context"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

const (
	BeforeCreateBookmark = "simplecms.bookmark.before_create_bookmark"
	CreateBookmark       = "simplecms.bookmark.create_bookmark"

	BeforeDeleteBookmark = "simplecms.bookmark.before_delete_bookmark"
	DeleteBookmark       = "simplecms.bookmark.delete_bookmark"
)

// BeforeCreateBookmarkEvent is dispatched before BookmarkService.CreateBookmark.
type BeforeCreateBookmarkEvent struct {
	Propagation

	Location *simplecms.Location
}

func (*BeforeCreateBookmarkEvent) EventName() string { return BeforeCreateBookmark }

// CreateBookmarkEvent is dispatched after BookmarkService.CreateBookmark succeeded.
type CreateBookmarkEvent struct {
	Location *simplecms.Location
}

func (*CreateBookmarkEvent) EventName() string { return CreateBookmark }

// BeforeDeleteBookmarkEvent is dispatched before BookmarkService.DeleteBookmark.
type BeforeDeleteBookmarkEvent struct {
	Propagation

	Location *simplecms.Location
}

func (*BeforeDeleteBookmarkEvent) EventName() string { return BeforeDeleteBookmark }

// DeleteBookmarkEvent is dispatched after BookmarkService.DeleteBookmark succeeded.
type DeleteBookmarkEvent struct {
	Location *simplecms.Location
}

func (*DeleteBookmarkEvent) EventName() string { return DeleteBookmark }

type bookmarkService struct {
	simplecms.BookmarkService
	dispatcher Dispatcher
}

// NewBookmarkService returns a BookmarkService that dispatches events around every
// mutating method of inner.
func NewBookmarkService(inner simplecms.BookmarkService, d Dispatcher) simplecms.BookmarkService {
	return &bookmarkService{BookmarkService: inner, dispatcher: d}
}

func (s *bookmarkService) CreateBookmark(ctx context.Context, location *simplecms.Location) error {
	before := &BeforeCreateBookmarkEvent{Location: location}
	return run(ctx, s.dispatcher, before,
		func() error { return s.BookmarkService.CreateBookmark(ctx, before.Location) },
		func() Event { return &CreateBookmarkEvent{Location: before.Location} })
}

func (s *bookmarkService) DeleteBookmark(ctx context.Context, location *simplecms.Location) error {
	before := &BeforeDeleteBookmarkEvent{Location: location}
	return run(ctx, s.dispatcher, before,
		func() error { return s.BookmarkService.DeleteBookmark(ctx, before.Location) },
		func() Event { return &DeleteBookmarkEvent{Location: before.Location} })
}

var _ simplecms.BookmarkService = (*bookmarkService)(nil)
