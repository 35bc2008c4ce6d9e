package event

import (
	"context"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

const (
	BeforeCreateLocation = "simplecms.location.before_create_location"
	CreateLocation       = "simplecms.location.create_location"

	BeforeUpdateLocation = "simplecms.location.before_update_location"
	UpdateLocation       = "simplecms.location.update_location"

	BeforeSwapLocation = "simplecms.location.before_swap_location"
	SwapLocation       = "simplecms.location.swap_location"

	BeforeHideLocation = "simplecms.location.before_hide_location"
	HideLocation       = "simplecms.location.hide_location"

	BeforeUnhideLocation = "simplecms.location.before_unhide_location"
	UnhideLocation       = "simplecms.location.unhide_location"

	BeforeMoveSubtree = "simplecms.location.before_move_subtree"
	MoveSubtree       = "simplecms.location.move_subtree"

	BeforeDeleteLocation = "simplecms.location.before_delete_location"
	DeleteLocation       = "simplecms.location.delete_location"

	BeforeCopySubtree = "simplecms.location.before_copy_subtree"
	CopySubtree       = "simplecms.location.copy_subtree"
)

// BeforeCreateLocationEvent is dispatched before LocationService.CreateLocation.
type BeforeCreateLocationEvent struct {
	Before[*simplecms.Location]

	ContentInfo *simplecms.ContentInfo
	Create      simplecms.LocationCreateStruct
}

func (*BeforeCreateLocationEvent) EventName() string { return BeforeCreateLocation }

// CreateLocationEvent is dispatched after LocationService.CreateLocation succeeded.
type CreateLocationEvent struct {
	Result      *simplecms.Location
	ContentInfo *simplecms.ContentInfo
	Create      simplecms.LocationCreateStruct
}

func (*CreateLocationEvent) EventName() string { return CreateLocation }

func (e *CreateLocationEvent) result() any { return e.Result }

// BeforeUpdateLocationEvent is dispatched before LocationService.UpdateLocation.
type BeforeUpdateLocationEvent struct {
	Before[*simplecms.Location]

	Location *simplecms.Location
	Update   simplecms.LocationUpdateStruct
}

func (*BeforeUpdateLocationEvent) EventName() string { return BeforeUpdateLocation }

// UpdateLocationEvent is dispatched after LocationService.UpdateLocation succeeded.
type UpdateLocationEvent struct {
	Result   *simplecms.Location
	Location *simplecms.Location
	Update   simplecms.LocationUpdateStruct
}

func (*UpdateLocationEvent) EventName() string { return UpdateLocation }

func (e *UpdateLocationEvent) result() any { return e.Result }

// BeforeSwapLocationEvent is dispatched before LocationService.SwapLocation.
type BeforeSwapLocationEvent struct {
	Propagation

	Location1 *simplecms.Location
	Location2 *simplecms.Location
}

func (*BeforeSwapLocationEvent) EventName() string { return BeforeSwapLocation }

// SwapLocationEvent is dispatched after LocationService.SwapLocation succeeded.
type SwapLocationEvent struct {
	Location1 *simplecms.Location
	Location2 *simplecms.Location
}

func (*SwapLocationEvent) EventName() string { return SwapLocation }

// BeforeHideLocationEvent is dispatched before LocationService.HideLocation.
type BeforeHideLocationEvent struct {
	Before[*simplecms.Location]

	Location *simplecms.Location
}

func (*BeforeHideLocationEvent) EventName() string { return BeforeHideLocation }

// HideLocationEvent is dispatched after LocationService.HideLocation succeeded.
type HideLocationEvent struct {
	Result   *simplecms.Location
	Location *simplecms.Location
}

func (*HideLocationEvent) EventName() string { return HideLocation }

func (e *HideLocationEvent) result() any { return e.Result }

// BeforeUnhideLocationEvent is dispatched before LocationService.UnhideLocation.
type BeforeUnhideLocationEvent struct {
	Before[*simplecms.Location]

	Location *simplecms.Location
}

func (*BeforeUnhideLocationEvent) EventName() string { return BeforeUnhideLocation }

// UnhideLocationEvent is dispatched after LocationService.UnhideLocation succeeded.
type UnhideLocationEvent struct {
	Result   *simplecms.Location
	Location *simplecms.Location
}

func (*UnhideLocationEvent) EventName() string { return UnhideLocation }

func (e *UnhideLocationEvent) result() any { return e.Result }

// BeforeMoveSubtreeEvent is dispatched before LocationService.MoveSubtree.
type BeforeMoveSubtreeEvent struct {
	Propagation

	Location  *simplecms.Location
	NewParent *simplecms.Location
}

func (*BeforeMoveSubtreeEvent) EventName() string { return BeforeMoveSubtree }

// MoveSubtreeEvent is dispatched after LocationService.MoveSubtree succeeded.
type MoveSubtreeEvent struct {
	Location  *simplecms.Location
	NewParent *simplecms.Location
}

func (*MoveSubtreeEvent) EventName() string { return MoveSubtree }

// BeforeDeleteLocationEvent is dispatched before LocationService.DeleteLocation.
type BeforeDeleteLocationEvent struct {
	Propagation

	Location *simplecms.Location
}

func (*BeforeDeleteLocationEvent) EventName() string { return BeforeDeleteLocation }

// DeleteLocationEvent is dispatched after LocationService.DeleteLocation succeeded.
type DeleteLocationEvent struct {
	Location *simplecms.Location
}

func (*DeleteLocationEvent) EventName() string { return DeleteLocation }

// BeforeCopySubtreeEvent is dispatched before LocationService.CopySubtree.
type BeforeCopySubtreeEvent struct {
	Before[*simplecms.Location]

	Subtree      *simplecms.Location
	TargetParent *simplecms.Location
}

func (*BeforeCopySubtreeEvent) EventName() string { return BeforeCopySubtree }

// CopySubtreeEvent is dispatched after LocationService.CopySubtree succeeded.
type CopySubtreeEvent struct {
	Result       *simplecms.Location
	Subtree      *simplecms.Location
	TargetParent *simplecms.Location
}

func (*CopySubtreeEvent) EventName() string { return CopySubtree }

func (e *CopySubtreeEvent) result() any { return e.Result }

type locationService struct {
	simplecms.LocationService
	dispatcher Dispatcher
}

// NewLocationService returns a LocationService that dispatches events around every
// mutating method of inner.
func NewLocationService(inner simplecms.LocationService, d Dispatcher) simplecms.LocationService {
	return &locationService{LocationService: inner, dispatcher: d}
}

func (s *locationService) CreateLocation(ctx context.Context, contentInfo *simplecms.ContentInfo, create simplecms.LocationCreateStruct) (*simplecms.Location, error) {
	before := &BeforeCreateLocationEvent{ContentInfo: contentInfo, Create: create}
	return call[*simplecms.Location](ctx, s.dispatcher, before,
		func() (*simplecms.Location, error) { return s.LocationService.CreateLocation(ctx, before.ContentInfo, before.Create) },
		func(result *simplecms.Location) Event { return &CreateLocationEvent{Result: result, ContentInfo: before.ContentInfo, Create: before.Create} })
}

func (s *locationService) UpdateLocation(ctx context.Context, location *simplecms.Location, update simplecms.LocationUpdateStruct) (*simplecms.Location, error) {
	before := &BeforeUpdateLocationEvent{Location: location, Update: update}
	return call[*simplecms.Location](ctx, s.dispatcher, before,
		func() (*simplecms.Location, error) { return s.LocationService.UpdateLocation(ctx, before.Location, before.Update) },
		func(result *simplecms.Location) Event { return &UpdateLocationEvent{Result: result, Location: before.Location, Update: before.Update} })
}

func (s *locationService) SwapLocation(ctx context.Context, location1 *simplecms.Location, location2 *simplecms.Location) error {
	before := &BeforeSwapLocationEvent{Location1: location1, Location2: location2}
	return run(ctx, s.dispatcher, before,
		func() error { return s.LocationService.SwapLocation(ctx, before.Location1, before.Location2) },
		func() Event { return &SwapLocationEvent{Location1: before.Location1, Location2: before.Location2} })
}

func (s *locationService) HideLocation(ctx context.Context, location *simplecms.Location) (*simplecms.Location, error) {
	before := &BeforeHideLocationEvent{Location: location}
	return call[*simplecms.Location](ctx, s.dispatcher, before,
		func() (*simplecms.Location, error) { return s.LocationService.HideLocation(ctx, before.Location) },
		func(result *simplecms.Location) Event { return &HideLocationEvent{Result: result, Location: before.Location} })
}

func (s *locationService) UnhideLocation(ctx context.Context, location *simplecms.Location) (*simplecms.Location, error) {
	before := &BeforeUnhideLocationEvent{Location: location}
	return call[*simplecms.Location](ctx, s.dispatcher, before,
		func() (*simplecms.Location, error) { return s.LocationService.UnhideLocation(ctx, before.Location) },
		func(result *simplecms.Location) Event { return &UnhideLocationEvent{Result: result, Location: before.Location} })
}

func (s *locationService) MoveSubtree(ctx context.Context, location *simplecms.Location, newParent *simplecms.Location) error {
	before := &BeforeMoveSubtreeEvent{Location: location, NewParent: newParent}
	return run(ctx, s.dispatcher, before,
		func() error { return s.LocationService.MoveSubtree(ctx, before.Location, before.NewParent) },
		func() Event { return &MoveSubtreeEvent{Location: before.Location, NewParent: before.NewParent} })
}

func (s *locationService) DeleteLocation(ctx context.Context, location *simplecms.Location) error {
	before := &BeforeDeleteLocationEvent{Location: location}
	return run(ctx, s.dispatcher, before,
		func() error { return s.LocationService.DeleteLocation(ctx, before.Location) },
		func() Event { return &DeleteLocationEvent{Location: before.Location} })
}

func (s *locationService) CopySubtree(ctx context.Context, subtree *simplecms.Location, targetParent *simplecms.Location) (*simplecms.Location, error) {
	before := &BeforeCopySubtreeEvent{Subtree: subtree, TargetParent: targetParent}
	return call[*simplecms.Location](ctx, s.dispatcher, before,
		func() (*simplecms.Location, error) { return s.LocationService.CopySubtree(ctx, before.Subtree, before.TargetParent) },
		func(result *simplecms.Location) Event { return &CopySubtreeEvent{Result: result, Subtree: before.Subtree, TargetParent: before.TargetParent} })
}

var _ simplecms.LocationService = (*locationService)(nil)
