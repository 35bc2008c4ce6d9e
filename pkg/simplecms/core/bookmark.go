package core

import (
	"context"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

type bookmarkService struct{ *Repository }

// loggedInUser returns the current user, failing for anonymous calls.
func (r *Repository) loggedInUser(ctx context.Context) (int64, error) {
	ref, ok := simplecms.UserReferenceFrom(ctx)
	if !ok || ref.UserID == 0 {
		return 0, &simplecms.UnauthorizedError{Module: "user", Function: "login"}
	}
	return ref.UserID, nil
}

func (s bookmarkService) find(ctx context.Context, userID, locationID int64) (*simplecms.Bookmark, error) {
	b, ok, err := s.bookmarks.First(ctx, func(b simplecms.Bookmark) bool {
		return b.UserID == userID && b.LocationID == locationID
	})
	if err != nil || !ok {
		return nil, err
	}
	return &b, nil
}

func (s bookmarkService) LoadBookmarks(ctx context.Context, offset, limit int) (*simplecms.BookmarkList, error) {
	userID, err := s.loggedInUser(ctx)
	if err != nil {
		return nil, err
	}
	bookmarks, err := s.bookmarks.Find(ctx, func(b simplecms.Bookmark) bool { return b.UserID == userID })
	if err != nil {
		return nil, err
	}
	var locations []*simplecms.Location
	for _, b := range bookmarks {
		loc, err := s.loadLocation(ctx, b.LocationID)
		if isNotFound(err) {
			continue
		} else if err != nil {
			return nil, err
		}
		ok, err := s.canUser(ctx, "content", "read", loc)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if loc, err = s.withContentInfo(ctx, loc); err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}
	return &simplecms.BookmarkList{TotalCount: len(locations), Items: pageOf(locations, offset, limit)}, nil
}

func (s bookmarkService) IsBookmarked(ctx context.Context, location *simplecms.Location) (bool, error) {
	userID, err := s.loggedInUser(ctx)
	if err != nil {
		return false, err
	}
	b, err := s.find(ctx, userID, location.ID)
	return b != nil, err
}

func (s bookmarkService) CreateBookmark(ctx context.Context, location *simplecms.Location) error {
	userID, err := s.loggedInUser(ctx)
	if err != nil {
		return err
	}
	loc, err := s.loadLocation(ctx, location.ID)
	if err != nil {
		return err
	}
	if err := s.require(ctx, "content", "read", loc); err != nil {
		return err
	}
	existing, err := s.find(ctx, userID, loc.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return invalid("location", "location %d is already bookmarked", loc.ID)
	}
	_, err = s.bookmarks.Create(ctx, func(id int64) simplecms.Bookmark {
		return simplecms.Bookmark{ID: id, UserID: userID, LocationID: loc.ID}
	})
	return err
}

func (s bookmarkService) DeleteBookmark(ctx context.Context, location *simplecms.Location) error {
	userID, err := s.loggedInUser(ctx)
	if err != nil {
		return err
	}
	existing, err := s.find(ctx, userID, location.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return invalid("location", "location %d is not bookmarked", location.ID)
	}
	return s.bookmarks.Delete(ctx, existing.ID)
}

var _ simplecms.BookmarkService = bookmarkService{}
