package event

import (
	"context"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

const (
	BeforeTrash = "simplecms.trash.before_trash"
	Trash       = "simplecms.trash.trash"

	BeforeRecover = "simplecms.trash.before_recover"
	Recover       = "simplecms.trash.recover"

	BeforeEmptyTrash = "simplecms.trash.before_empty_trash"
	EmptyTrash       = "simplecms.trash.empty_trash"

	BeforeDeleteTrashItem = "simplecms.trash.before_delete_trash_item"
	DeleteTrashItem       = "simplecms.trash.delete_trash_item"
)

// BeforeTrashEvent is dispatched before TrashService.Trash.
type BeforeTrashEvent struct {
	Before[*simplecms.TrashItem]

	Location *simplecms.Location
}

func (*BeforeTrashEvent) EventName() string { return BeforeTrash }

// TrashEvent is dispatched after TrashService.Trash succeeded.
type TrashEvent struct {
	Result   *simplecms.TrashItem
	Location *simplecms.Location
}

func (*TrashEvent) EventName() string { return Trash }

func (e *TrashEvent) result() any { return e.Result }

// BeforeRecoverEvent is dispatched before TrashService.Recover.
type BeforeRecoverEvent struct {
	Before[*simplecms.Location]

	Item      *simplecms.TrashItem
	NewParent *simplecms.Location
}

func (*BeforeRecoverEvent) EventName() string { return BeforeRecover }

// RecoverEvent is dispatched after TrashService.Recover succeeded.
type RecoverEvent struct {
	Result    *simplecms.Location
	Item      *simplecms.TrashItem
	NewParent *simplecms.Location
}

func (*RecoverEvent) EventName() string { return Recover }

func (e *RecoverEvent) result() any { return e.Result }

// BeforeEmptyTrashEvent is dispatched before TrashService.EmptyTrash.
type BeforeEmptyTrashEvent struct {
	Before[*simplecms.TrashItemDeleteResultList]
}

func (*BeforeEmptyTrashEvent) EventName() string { return BeforeEmptyTrash }

// EmptyTrashEvent is dispatched after TrashService.EmptyTrash succeeded.
type EmptyTrashEvent struct {
	Result *simplecms.TrashItemDeleteResultList
}

func (*EmptyTrashEvent) EventName() string { return EmptyTrash }

func (e *EmptyTrashEvent) result() any { return e.Result }

// BeforeDeleteTrashItemEvent is dispatched before TrashService.DeleteTrashItem.
type BeforeDeleteTrashItemEvent struct {
	Before[*simplecms.TrashItemDeleteResult]

	Item *simplecms.TrashItem
}

func (*BeforeDeleteTrashItemEvent) EventName() string { return BeforeDeleteTrashItem }

// DeleteTrashItemEvent is dispatched after TrashService.DeleteTrashItem succeeded.
type DeleteTrashItemEvent struct {
	Result *simplecms.TrashItemDeleteResult
	Item   *simplecms.TrashItem
}

func (*DeleteTrashItemEvent) EventName() string { return DeleteTrashItem }

func (e *DeleteTrashItemEvent) result() any { return e.Result }

type trashService struct {
	simplecms.TrashService
	dispatcher Dispatcher
}

// NewTrashService returns a TrashService that dispatches events around every
// mutating method of inner.
func NewTrashService(inner simplecms.TrashService, d Dispatcher) simplecms.TrashService {
	return &trashService{TrashService: inner, dispatcher: d}
}

func (s *trashService) Trash(ctx context.Context, location *simplecms.Location) (*simplecms.TrashItem, error) {
	before := &BeforeTrashEvent{Location: location}
	return call[*simplecms.TrashItem](ctx, s.dispatcher, before,
		func() (*simplecms.TrashItem, error) { return s.TrashService.Trash(ctx, before.Location) },
		func(result *simplecms.TrashItem) Event { return &TrashEvent{Result: result, Location: before.Location} })
}

func (s *trashService) Recover(ctx context.Context, item *simplecms.TrashItem, newParent *simplecms.Location) (*simplecms.Location, error) {
	before := &BeforeRecoverEvent{Item: item, NewParent: newParent}
	return call[*simplecms.Location](ctx, s.dispatcher, before,
		func() (*simplecms.Location, error) { return s.TrashService.Recover(ctx, before.Item, before.NewParent) },
		func(result *simplecms.Location) Event { return &RecoverEvent{Result: result, Item: before.Item, NewParent: before.NewParent} })
}

func (s *trashService) EmptyTrash(ctx context.Context) (*simplecms.TrashItemDeleteResultList, error) {
	before := &BeforeEmptyTrashEvent{}
	return call[*simplecms.TrashItemDeleteResultList](ctx, s.dispatcher, before,
		func() (*simplecms.TrashItemDeleteResultList, error) { return s.TrashService.EmptyTrash(ctx) },
		func(result *simplecms.TrashItemDeleteResultList) Event { return &EmptyTrashEvent{Result: result} })
}

func (s *trashService) DeleteTrashItem(ctx context.Context, item *simplecms.TrashItem) (*simplecms.TrashItemDeleteResult, error) {
	before := &BeforeDeleteTrashItemEvent{Item: item}
	return call[*simplecms.TrashItemDeleteResult](ctx, s.dispatcher, before,
		func() (*simplecms.TrashItemDeleteResult, error) { return s.TrashService.DeleteTrashItem(ctx, before.Item) },
		func(result *simplecms.TrashItemDeleteResult) Event { return &DeleteTrashItemEvent{Result: result, Item: before.Item} })
}

var _ simplecms.TrashService = (*trashService)(nil)
