package event

import (
	"context"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

const (
	BeforeCreateObjectStateGroup = "simplecms.object_state.before_create_object_state_group"
	CreateObjectStateGroup       = "simplecms.object_state.create_object_state_group"

	BeforeUpdateObjectStateGroup = "simplecms.object_state.before_update_object_state_group"
	UpdateObjectStateGroup       = "simplecms.object_state.update_object_state_group"

	BeforeDeleteObjectStateGroup = "simplecms.object_state.before_delete_object_state_group"
	DeleteObjectStateGroup       = "simplecms.object_state.delete_object_state_group"

	BeforeCreateObjectState = "simplecms.object_state.before_create_object_state"
	CreateObjectState       = "simplecms.object_state.create_object_state"

	BeforeUpdateObjectState = "simplecms.object_state.before_update_object_state"
	UpdateObjectState       = "simplecms.object_state.update_object_state"

	BeforeSetPriorityOfObjectState = "simplecms.object_state.before_set_priority_of_object_state"
	SetPriorityOfObjectState       = "simplecms.object_state.set_priority_of_object_state"

	BeforeDeleteObjectState = "simplecms.object_state.before_delete_object_state"
	DeleteObjectState       = "simplecms.object_state.delete_object_state"

	BeforeSetContentState = "simplecms.object_state.before_set_content_state"
	SetContentState       = "simplecms.object_state.set_content_state"
)

// BeforeCreateObjectStateGroupEvent is dispatched before ObjectStateService.CreateObjectStateGroup.
type BeforeCreateObjectStateGroupEvent struct {
	Before[*simplecms.ObjectStateGroup]

	Create simplecms.ObjectStateGroupCreateStruct
}

func (*BeforeCreateObjectStateGroupEvent) EventName() string { return BeforeCreateObjectStateGroup }

// CreateObjectStateGroupEvent is dispatched after ObjectStateService.CreateObjectStateGroup succeeded.
type CreateObjectStateGroupEvent struct {
	Result *simplecms.ObjectStateGroup
	Create simplecms.ObjectStateGroupCreateStruct
}

func (*CreateObjectStateGroupEvent) EventName() string { return CreateObjectStateGroup }

func (e *CreateObjectStateGroupEvent) result() any { return e.Result }

// BeforeUpdateObjectStateGroupEvent is dispatched before ObjectStateService.UpdateObjectStateGroup.
type BeforeUpdateObjectStateGroupEvent struct {
	Before[*simplecms.ObjectStateGroup]

	Group  *simplecms.ObjectStateGroup
	Update simplecms.ObjectStateGroupUpdateStruct
}

func (*BeforeUpdateObjectStateGroupEvent) EventName() string { return BeforeUpdateObjectStateGroup }

// UpdateObjectStateGroupEvent is dispatched after ObjectStateService.UpdateObjectStateGroup succeeded.
type UpdateObjectStateGroupEvent struct {
	Result *simplecms.ObjectStateGroup
	Group  *simplecms.ObjectStateGroup
	Update simplecms.ObjectStateGroupUpdateStruct
}

func (*UpdateObjectStateGroupEvent) EventName() string { return UpdateObjectStateGroup }

func (e *UpdateObjectStateGroupEvent) result() any { return e.Result }

// BeforeDeleteObjectStateGroupEvent is dispatched before ObjectStateService.DeleteObjectStateGroup.
type BeforeDeleteObjectStateGroupEvent struct {
	Propagation

	Group *simplecms.ObjectStateGroup
}

func (*BeforeDeleteObjectStateGroupEvent) EventName() string { return BeforeDeleteObjectStateGroup }

// DeleteObjectStateGroupEvent is dispatched after ObjectStateService.DeleteObjectStateGroup succeeded.
type DeleteObjectStateGroupEvent struct {
	Group *simplecms.ObjectStateGroup
}

func (*DeleteObjectStateGroupEvent) EventName() string { return DeleteObjectStateGroup }

// BeforeCreateObjectStateEvent is dispatched before ObjectStateService.CreateObjectState.
type BeforeCreateObjectStateEvent struct {
	Before[*simplecms.ObjectState]

	Group  *simplecms.ObjectStateGroup
	Create simplecms.ObjectStateCreateStruct
}

func (*BeforeCreateObjectStateEvent) EventName() string { return BeforeCreateObjectState }

// CreateObjectStateEvent is dispatched after ObjectStateService.CreateObjectState succeeded.
type CreateObjectStateEvent struct {
	Result *simplecms.ObjectState
	Group  *simplecms.ObjectStateGroup
	Create simplecms.ObjectStateCreateStruct
}

func (*CreateObjectStateEvent) EventName() string { return CreateObjectState }

func (e *CreateObjectStateEvent) result() any { return e.Result }

// BeforeUpdateObjectStateEvent is dispatched before ObjectStateService.UpdateObjectState.
type BeforeUpdateObjectStateEvent struct {
	Before[*simplecms.ObjectState]

	State  *simplecms.ObjectState
	Update simplecms.ObjectStateUpdateStruct
}

func (*BeforeUpdateObjectStateEvent) EventName() string { return BeforeUpdateObjectState }

// UpdateObjectStateEvent is dispatched after ObjectStateService.UpdateObjectState succeeded.
type UpdateObjectStateEvent struct {
	Result *simplecms.ObjectState
	State  *simplecms.ObjectState
	Update simplecms.ObjectStateUpdateStruct
}

func (*UpdateObjectStateEvent) EventName() string { return UpdateObjectState }

func (e *UpdateObjectStateEvent) result() any { return e.Result }

// BeforeSetPriorityOfObjectStateEvent is dispatched before ObjectStateService.SetPriorityOfObjectState.
type BeforeSetPriorityOfObjectStateEvent struct {
	Propagation

	State    *simplecms.ObjectState
	Priority int
}

func (*BeforeSetPriorityOfObjectStateEvent) EventName() string { return BeforeSetPriorityOfObjectState }

// SetPriorityOfObjectStateEvent is dispatched after ObjectStateService.SetPriorityOfObjectState succeeded.
type SetPriorityOfObjectStateEvent struct {
	State    *simplecms.ObjectState
	Priority int
}

func (*SetPriorityOfObjectStateEvent) EventName() string { return SetPriorityOfObjectState }

// BeforeDeleteObjectStateEvent is dispatched before ObjectStateService.DeleteObjectState.
type BeforeDeleteObjectStateEvent struct {
	Propagation

	State *simplecms.ObjectState
}

func (*BeforeDeleteObjectStateEvent) EventName() string { return BeforeDeleteObjectState }

// DeleteObjectStateEvent is dispatched after ObjectStateService.DeleteObjectState succeeded.
type DeleteObjectStateEvent struct {
	State *simplecms.ObjectState
}

func (*DeleteObjectStateEvent) EventName() string { return DeleteObjectState }

// BeforeSetContentStateEvent is dispatched before ObjectStateService.SetContentState.
type BeforeSetContentStateEvent struct {
	Propagation

	ContentInfo *simplecms.ContentInfo
	Group       *simplecms.ObjectStateGroup
	State       *simplecms.ObjectState
}

func (*BeforeSetContentStateEvent) EventName() string { return BeforeSetContentState }

// SetContentStateEvent is dispatched after ObjectStateService.SetContentState succeeded.
type SetContentStateEvent struct {
	ContentInfo *simplecms.ContentInfo
	Group       *simplecms.ObjectStateGroup
	State       *simplecms.ObjectState
}

func (*SetContentStateEvent) EventName() string { return SetContentState }

type objectStateService struct {
	simplecms.ObjectStateService
	dispatcher Dispatcher
}

// NewObjectStateService returns a ObjectStateService that dispatches events around every
// mutating method of inner.
func NewObjectStateService(inner simplecms.ObjectStateService, d Dispatcher) simplecms.ObjectStateService {
	return &objectStateService{ObjectStateService: inner, dispatcher: d}
}

func (s *objectStateService) CreateObjectStateGroup(ctx context.Context, create simplecms.ObjectStateGroupCreateStruct) (*simplecms.ObjectStateGroup, error) {
	before := &BeforeCreateObjectStateGroupEvent{Create: create}
	return call[*simplecms.ObjectStateGroup](ctx, s.dispatcher, before,
		func() (*simplecms.ObjectStateGroup, error) { return s.ObjectStateService.CreateObjectStateGroup(ctx, before.Create) },
		func(result *simplecms.ObjectStateGroup) Event { return &CreateObjectStateGroupEvent{Result: result, Create: before.Create} })
}

func (s *objectStateService) UpdateObjectStateGroup(ctx context.Context, group *simplecms.ObjectStateGroup, update simplecms.ObjectStateGroupUpdateStruct) (*simplecms.ObjectStateGroup, error) {
	before := &BeforeUpdateObjectStateGroupEvent{Group: group, Update: update}
	return call[*simplecms.ObjectStateGroup](ctx, s.dispatcher, before,
		func() (*simplecms.ObjectStateGroup, error) { return s.ObjectStateService.UpdateObjectStateGroup(ctx, before.Group, before.Update) },
		func(result *simplecms.ObjectStateGroup) Event { return &UpdateObjectStateGroupEvent{Result: result, Group: before.Group, Update: before.Update} })
}

func (s *objectStateService) DeleteObjectStateGroup(ctx context.Context, group *simplecms.ObjectStateGroup) error {
	before := &BeforeDeleteObjectStateGroupEvent{Group: group}
	return run(ctx, s.dispatcher, before,
		func() error { return s.ObjectStateService.DeleteObjectStateGroup(ctx, before.Group) },
		func() Event { return &DeleteObjectStateGroupEvent{Group: before.Group} })
}

func (s *objectStateService) CreateObjectState(ctx context.Context, group *simplecms.ObjectStateGroup, create simplecms.ObjectStateCreateStruct) (*simplecms.ObjectState, error) {
	before := &BeforeCreateObjectStateEvent{Group: group, Create: create}
	return call[*simplecms.ObjectState](ctx, s.dispatcher, before,
		func() (*simplecms.ObjectState, error) { return s.ObjectStateService.CreateObjectState(ctx, before.Group, before.Create) },
		func(result *simplecms.ObjectState) Event { return &CreateObjectStateEvent{Result: result, Group: before.Group, Create: before.Create} })
}

func (s *objectStateService) UpdateObjectState(ctx context.Context, state *simplecms.ObjectState, update simplecms.ObjectStateUpdateStruct) (*simplecms.ObjectState, error) {
	before := &BeforeUpdateObjectStateEvent{State: state, Update: update}
	return call[*simplecms.ObjectState](ctx, s.dispatcher, before,
		func() (*simplecms.ObjectState, error) { return s.ObjectStateService.UpdateObjectState(ctx, before.State, before.Update) },
		func(result *simplecms.ObjectState) Event { return &UpdateObjectStateEvent{Result: result, State: before.State, Update: before.Update} })
}

func (s *objectStateService) SetPriorityOfObjectState(ctx context.Context, state *simplecms.ObjectState, priority int) error {
	before := &BeforeSetPriorityOfObjectStateEvent{State: state, Priority: priority}
	return run(ctx, s.dispatcher, before,
		func() error { return s.ObjectStateService.SetPriorityOfObjectState(ctx, before.State, before.Priority) },
		func() Event { return &SetPriorityOfObjectStateEvent{State: before.State, Priority: before.Priority} })
}

func (s *objectStateService) DeleteObjectState(ctx context.Context, state *simplecms.ObjectState) error {
	before := &BeforeDeleteObjectStateEvent{State: state}
	return run(ctx, s.dispatcher, before,
		func() error { return s.ObjectStateService.DeleteObjectState(ctx, before.State) },
		func() Event { return &DeleteObjectStateEvent{State: before.State} })
}

func (s *objectStateService) SetContentState(ctx context.Context, contentInfo *simplecms.ContentInfo, group *simplecms.ObjectStateGroup, state *simplecms.ObjectState) error {
	before := &BeforeSetContentStateEvent{ContentInfo: contentInfo, Group: group, State: state}
	return run(ctx, s.dispatcher, before,
		func() error { return s.ObjectStateService.SetContentState(ctx, before.ContentInfo, before.Group, before.State) },
		func() Event { return &SetContentStateEvent{ContentInfo: before.ContentInfo, Group: before.Group, State: before.State} })
}

var _ simplecms.ObjectStateService = (*objectStateService)(nil)
