package event

import (
	"context"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

const (
	BeforeMarkNotificationAsRead = "simplecms.notification.before_mark_notification_as_read"
	MarkNotificationAsRead       = "simplecms.notification.mark_notification_as_read"

	BeforeCreateNotification = "simplecms.notification.before_create_notification"
	CreateNotification       = "simplecms.notification.create_notification"

	BeforeDeleteNotification = "simplecms.notification.before_delete_notification"
	DeleteNotification       = "simplecms.notification.delete_notification"
)

// BeforeMarkNotificationAsReadEvent is dispatched before NotificationService.MarkNotificationAsRead.
type BeforeMarkNotificationAsReadEvent struct {
	Propagation

	Notification *simplecms.Notification
}

func (*BeforeMarkNotificationAsReadEvent) EventName() string { return BeforeMarkNotificationAsRead }

// MarkNotificationAsReadEvent is dispatched after NotificationService.MarkNotificationAsRead succeeded.
type MarkNotificationAsReadEvent struct {
	Notification *simplecms.Notification
}

func (*MarkNotificationAsReadEvent) EventName() string { return MarkNotificationAsRead }

// BeforeCreateNotificationEvent is dispatched before NotificationService.CreateNotification.
type BeforeCreateNotificationEvent struct {
	Before[*simplecms.Notification]

	Create simplecms.CreateNotificationStruct
}

func (*BeforeCreateNotificationEvent) EventName() string { return BeforeCreateNotification }

// CreateNotificationEvent is dispatched after NotificationService.CreateNotification succeeded.
type CreateNotificationEvent struct {
	Result *simplecms.Notification
	Create simplecms.CreateNotificationStruct
}

func (*CreateNotificationEvent) EventName() string { return CreateNotification }

func (e *CreateNotificationEvent) result() any { return e.Result }

// BeforeDeleteNotificationEvent is dispatched before NotificationService.DeleteNotification.
type BeforeDeleteNotificationEvent struct {
	Propagation

	Notification *simplecms.Notification
}

func (*BeforeDeleteNotificationEvent) EventName() string { return BeforeDeleteNotification }

// DeleteNotificationEvent is dispatched after NotificationService.DeleteNotification succeeded.
type DeleteNotificationEvent struct {
	Notification *simplecms.Notification
}

func (*DeleteNotificationEvent) EventName() string { return DeleteNotification }

type notificationService struct {
	simplecms.NotificationService
	dispatcher Dispatcher
}

// NewNotificationService returns a NotificationService that dispatches events around every
// mutating method of inner.
func NewNotificationService(inner simplecms.NotificationService, d Dispatcher) simplecms.NotificationService {
	return &notificationService{NotificationService: inner, dispatcher: d}
}

func (s *notificationService) MarkNotificationAsRead(ctx context.Context, notification *simplecms.Notification) error {
	before := &BeforeMarkNotificationAsReadEvent{Notification: notification}
	return run(ctx, s.dispatcher, before,
		func() error { return s.NotificationService.MarkNotificationAsRead(ctx, before.Notification) },
		func() Event { return &MarkNotificationAsReadEvent{Notification: before.Notification} })
}

func (s *notificationService) CreateNotification(ctx context.Context, create simplecms.CreateNotificationStruct) (*simplecms.Notification, error) {
	before := &BeforeCreateNotificationEvent{Create: create}
	return call[*simplecms.Notification](ctx, s.dispatcher, before,
		func() (*simplecms.Notification, error) { return s.NotificationService.CreateNotification(ctx, before.Create) },
		func(result *simplecms.Notification) Event { return &CreateNotificationEvent{Result: result, Create: before.Create} })
}

func (s *notificationService) DeleteNotification(ctx context.Context, notification *simplecms.Notification) error {
	before := &BeforeDeleteNotificationEvent{Notification: notification}
	return run(ctx, s.dispatcher, before,
		func() error { return s.NotificationService.DeleteNotification(ctx, before.Notification) },
		func() Event { return &DeleteNotificationEvent{Notification: before.Notification} })
}

var _ simplecms.NotificationService = (*notificationService)(nil)
