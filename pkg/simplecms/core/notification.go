package core

import (
	"context"
	"slices"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

// notificationService only ever exposes notifications owned by the
// current user.
type notificationService struct{ *Repository }

func (s notificationService) owned(ctx context.Context) ([]simplecms.Notification, error) {
	userID := s.currentUserID(ctx)
	items, err := s.notifications.Find(ctx, func(n simplecms.Notification) bool { return n.OwnerID == userID })
	if err != nil {
		return nil, err
	}
	// newest first
	slices.Reverse(items)
	return items, nil
}

func (s notificationService) load(ctx context.Context, id int64) (*simplecms.Notification, error) {
	n, err := s.notifications.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "notification", id)
	}
	if n.OwnerID != s.currentUserID(ctx) {
		return nil, &simplecms.UnauthorizedError{Module: "notification", Function: "read", Properties: map[string]any{"notificationId": id}}
	}
	return &n, nil
}

func (s notificationService) LoadNotifications(ctx context.Context, offset, limit int) (*simplecms.NotificationList, error) {
	items, err := s.owned(ctx)
	if err != nil {
		return nil, err
	}
	return &simplecms.NotificationList{TotalCount: len(items), Items: ptrs(pageOf(items, offset, limit))}, nil
}

func (s notificationService) GetNotification(ctx context.Context, id int64) (*simplecms.Notification, error) {
	return s.load(ctx, id)
}

func (s notificationService) GetPendingNotificationCount(ctx context.Context) (int, error) {
	userID := s.currentUserID(ctx)
	return s.notifications.Count(ctx, func(n simplecms.Notification) bool { return n.OwnerID == userID && n.IsPending })
}

func (s notificationService) GetNotificationCount(ctx context.Context) (int, error) {
	userID := s.currentUserID(ctx)
	return s.notifications.Count(ctx, func(n simplecms.Notification) bool { return n.OwnerID == userID })
}

func (s notificationService) MarkNotificationAsRead(ctx context.Context, notification *simplecms.Notification) error {
	n, err := s.load(ctx, notification.ID)
	if err != nil {
		return err
	}
	if !n.IsPending {
		return nil
	}
	n.IsPending = false
	return s.notifications.Put(ctx, n.ID, *n)
}

func (s notificationService) CreateNotification(ctx context.Context, create simplecms.CreateNotificationStruct) (*simplecms.Notification, error) {
	if create.OwnerID == 0 {
		return nil, invalid("ownerId", "must be set")
	}
	if create.Type == "" {
		return nil, invalid("type", "must not be empty")
	}
	if _, err := s.users.Get(ctx, create.OwnerID); err != nil {
		if isNotFound(err) {
			return nil, invalid("ownerId", "user %d does not exist", create.OwnerID)
		}
		return nil, err
	}
	now := s.now()
	n, err := s.notifications.Create(ctx, func(id int64) simplecms.Notification {
		return simplecms.Notification{
			ID:        id,
			OwnerID:   create.OwnerID,
			Type:      create.Type,
			IsPending: true,
			Created:   now,
			Data:      create.Data,
		}
	})
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (s notificationService) DeleteNotification(ctx context.Context, notification *simplecms.Notification) error {
	n, err := s.load(ctx, notification.ID)
	if err != nil {
		return err
	}
	return s.notifications.Delete(ctx, n.ID)
}

var _ simplecms.NotificationService = notificationService{}
