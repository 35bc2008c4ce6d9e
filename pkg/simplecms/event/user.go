package event

import (
	"context"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

const (
	BeforeCreateUserGroup = "simplecms.user.before_create_user_group"
	CreateUserGroup       = "simplecms.user.create_user_group"

	BeforeDeleteUserGroup = "simplecms.user.before_delete_user_group"
	DeleteUserGroup       = "simplecms.user.delete_user_group"

	BeforeMoveUserGroup = "simplecms.user.before_move_user_group"
	MoveUserGroup       = "simplecms.user.move_user_group"

	BeforeUpdateUserGroup = "simplecms.user.before_update_user_group"
	UpdateUserGroup       = "simplecms.user.update_user_group"

	BeforeCreateUser = "simplecms.user.before_create_user"
	CreateUser       = "simplecms.user.create_user"

	BeforeDeleteUser = "simplecms.user.before_delete_user"
	DeleteUser       = "simplecms.user.delete_user"

	BeforeUpdateUser = "simplecms.user.before_update_user"
	UpdateUser       = "simplecms.user.update_user"

	BeforeUpdateUserPassword = "simplecms.user.before_update_user_password"
	UpdateUserPassword       = "simplecms.user.update_user_password"

	BeforeAssignUserToUserGroup = "simplecms.user.before_assign_user_to_user_group"
	AssignUserToUserGroup       = "simplecms.user.assign_user_to_user_group"

	BeforeUnassignUserFromUserGroup = "simplecms.user.before_unassign_user_from_user_group"
	UnassignUserFromUserGroup       = "simplecms.user.unassign_user_from_user_group"
)

// BeforeCreateUserGroupEvent is dispatched before UserService.CreateUserGroup.
type BeforeCreateUserGroupEvent struct {
	Before[*simplecms.UserGroup]

	Create simplecms.UserGroupCreateStruct
	Parent *simplecms.UserGroup
}

func (*BeforeCreateUserGroupEvent) EventName() string { return BeforeCreateUserGroup }

// CreateUserGroupEvent is dispatched after UserService.CreateUserGroup succeeded.
type CreateUserGroupEvent struct {
	Result *simplecms.UserGroup
	Create simplecms.UserGroupCreateStruct
	Parent *simplecms.UserGroup
}

func (*CreateUserGroupEvent) EventName() string { return CreateUserGroup }

func (e *CreateUserGroupEvent) result() any { return e.Result }

// BeforeDeleteUserGroupEvent is dispatched before UserService.DeleteUserGroup.
type BeforeDeleteUserGroupEvent struct {
	Propagation

	Group *simplecms.UserGroup
}

func (*BeforeDeleteUserGroupEvent) EventName() string { return BeforeDeleteUserGroup }

// DeleteUserGroupEvent is dispatched after UserService.DeleteUserGroup succeeded.
type DeleteUserGroupEvent struct {
	Group *simplecms.UserGroup
}

func (*DeleteUserGroupEvent) EventName() string { return DeleteUserGroup }

// BeforeMoveUserGroupEvent is dispatched before UserService.MoveUserGroup.
type BeforeMoveUserGroupEvent struct {
	Propagation

	Group     *simplecms.UserGroup
	NewParent *simplecms.UserGroup
}

func (*BeforeMoveUserGroupEvent) EventName() string { return BeforeMoveUserGroup }

// MoveUserGroupEvent is dispatched after UserService.MoveUserGroup succeeded.
type MoveUserGroupEvent struct {
	Group     *simplecms.UserGroup
	NewParent *simplecms.UserGroup
}

func (*MoveUserGroupEvent) EventName() string { return MoveUserGroup }

// BeforeUpdateUserGroupEvent is dispatched before UserService.UpdateUserGroup.
type BeforeUpdateUserGroupEvent struct {
	Before[*simplecms.UserGroup]

	Group  *simplecms.UserGroup
	Update simplecms.UserGroupUpdateStruct
}

func (*BeforeUpdateUserGroupEvent) EventName() string { return BeforeUpdateUserGroup }

// UpdateUserGroupEvent is dispatched after UserService.UpdateUserGroup succeeded.
type UpdateUserGroupEvent struct {
	Result *simplecms.UserGroup
	Group  *simplecms.UserGroup
	Update simplecms.UserGroupUpdateStruct
}

func (*UpdateUserGroupEvent) EventName() string { return UpdateUserGroup }

func (e *UpdateUserGroupEvent) result() any { return e.Result }

// BeforeCreateUserEvent is dispatched before UserService.CreateUser.
type BeforeCreateUserEvent struct {
	Before[*simplecms.User]

	Create simplecms.UserCreateStruct
	Groups []*simplecms.UserGroup
}

func (*BeforeCreateUserEvent) EventName() string { return BeforeCreateUser }

// CreateUserEvent is dispatched after UserService.CreateUser succeeded.
type CreateUserEvent struct {
	Result *simplecms.User
	Create simplecms.UserCreateStruct
	Groups []*simplecms.UserGroup
}

func (*CreateUserEvent) EventName() string { return CreateUser }

func (e *CreateUserEvent) result() any { return e.Result }

// BeforeDeleteUserEvent is dispatched before UserService.DeleteUser.
type BeforeDeleteUserEvent struct {
	Propagation

	User *simplecms.User
}

func (*BeforeDeleteUserEvent) EventName() string { return BeforeDeleteUser }

// DeleteUserEvent is dispatched after UserService.DeleteUser succeeded.
type DeleteUserEvent struct {
	User *simplecms.User
}

func (*DeleteUserEvent) EventName() string { return DeleteUser }

// BeforeUpdateUserEvent is dispatched before UserService.UpdateUser.
type BeforeUpdateUserEvent struct {
	Before[*simplecms.User]

	User   *simplecms.User
	Update simplecms.UserUpdateStruct
}

func (*BeforeUpdateUserEvent) EventName() string { return BeforeUpdateUser }

// UpdateUserEvent is dispatched after UserService.UpdateUser succeeded.
type UpdateUserEvent struct {
	Result *simplecms.User
	User   *simplecms.User
	Update simplecms.UserUpdateStruct
}

func (*UpdateUserEvent) EventName() string { return UpdateUser }

func (e *UpdateUserEvent) result() any { return e.Result }

// BeforeUpdateUserPasswordEvent is dispatched before UserService.UpdateUserPassword.
type BeforeUpdateUserPasswordEvent struct {
	Before[*simplecms.User]

	User        *simplecms.User
	NewPassword string
}

func (*BeforeUpdateUserPasswordEvent) EventName() string { return BeforeUpdateUserPassword }

// UpdateUserPasswordEvent is dispatched after UserService.UpdateUserPassword succeeded.
type UpdateUserPasswordEvent struct {
	Result      *simplecms.User
	User        *simplecms.User
	NewPassword string
}

func (*UpdateUserPasswordEvent) EventName() string { return UpdateUserPassword }

func (e *UpdateUserPasswordEvent) result() any { return e.Result }

// BeforeAssignUserToUserGroupEvent is dispatched before UserService.AssignUserToUserGroup.
type BeforeAssignUserToUserGroupEvent struct {
	Propagation

	User  *simplecms.User
	Group *simplecms.UserGroup
}

func (*BeforeAssignUserToUserGroupEvent) EventName() string { return BeforeAssignUserToUserGroup }

// AssignUserToUserGroupEvent is dispatched after UserService.AssignUserToUserGroup succeeded.
type AssignUserToUserGroupEvent struct {
	User  *simplecms.User
	Group *simplecms.UserGroup
}

func (*AssignUserToUserGroupEvent) EventName() string { return AssignUserToUserGroup }

// BeforeUnassignUserFromUserGroupEvent is dispatched before UserService.UnassignUserFromUserGroup.
type BeforeUnassignUserFromUserGroupEvent struct {
	Propagation

	User  *simplecms.User
	Group *simplecms.UserGroup
}

func (*BeforeUnassignUserFromUserGroupEvent) EventName() string { return BeforeUnassignUserFromUserGroup }

// UnassignUserFromUserGroupEvent is dispatched after UserService.UnassignUserFromUserGroup succeeded.
type UnassignUserFromUserGroupEvent struct {
	User  *simplecms.User
	Group *simplecms.UserGroup
}

func (*UnassignUserFromUserGroupEvent) EventName() string { return UnassignUserFromUserGroup }

type userService struct {
	simplecms.UserService
	dispatcher Dispatcher
}

// NewUserService returns a UserService that dispatches events around every
// mutating method of inner.
func NewUserService(inner simplecms.UserService, d Dispatcher) simplecms.UserService {
	return &userService{UserService: inner, dispatcher: d}
}

func (s *userService) CreateUserGroup(ctx context.Context, create simplecms.UserGroupCreateStruct, parent *simplecms.UserGroup) (*simplecms.UserGroup, error) {
	before := &BeforeCreateUserGroupEvent{Create: create, Parent: parent}
	return call[*simplecms.UserGroup](ctx, s.dispatcher, before,
		func() (*simplecms.UserGroup, error) { return s.UserService.CreateUserGroup(ctx, before.Create, before.Parent) },
		func(result *simplecms.UserGroup) Event { return &CreateUserGroupEvent{Result: result, Create: before.Create, Parent: before.Parent} })
}

func (s *userService) DeleteUserGroup(ctx context.Context, group *simplecms.UserGroup) error {
	before := &BeforeDeleteUserGroupEvent{Group: group}
	return run(ctx, s.dispatcher, before,
		func() error { return s.UserService.DeleteUserGroup(ctx, before.Group) },
		func() Event { return &DeleteUserGroupEvent{Group: before.Group} })
}

func (s *userService) MoveUserGroup(ctx context.Context, group *simplecms.UserGroup, newParent *simplecms.UserGroup) error {
	before := &BeforeMoveUserGroupEvent{Group: group, NewParent: newParent}
	return run(ctx, s.dispatcher, before,
		func() error { return s.UserService.MoveUserGroup(ctx, before.Group, before.NewParent) },
		func() Event { return &MoveUserGroupEvent{Group: before.Group, NewParent: before.NewParent} })
}

func (s *userService) UpdateUserGroup(ctx context.Context, group *simplecms.UserGroup, update simplecms.UserGroupUpdateStruct) (*simplecms.UserGroup, error) {
	before := &BeforeUpdateUserGroupEvent{Group: group, Update: update}
	return call[*simplecms.UserGroup](ctx, s.dispatcher, before,
		func() (*simplecms.UserGroup, error) { return s.UserService.UpdateUserGroup(ctx, before.Group, before.Update) },
		func(result *simplecms.UserGroup) Event { return &UpdateUserGroupEvent{Result: result, Group: before.Group, Update: before.Update} })
}

func (s *userService) CreateUser(ctx context.Context, create simplecms.UserCreateStruct, groups []*simplecms.UserGroup) (*simplecms.User, error) {
	before := &BeforeCreateUserEvent{Create: create, Groups: groups}
	return call[*simplecms.User](ctx, s.dispatcher, before,
		func() (*simplecms.User, error) { return s.UserService.CreateUser(ctx, before.Create, before.Groups) },
		func(result *simplecms.User) Event { return &CreateUserEvent{Result: result, Create: before.Create, Groups: before.Groups} })
}

func (s *userService) DeleteUser(ctx context.Context, user *simplecms.User) error {
	before := &BeforeDeleteUserEvent{User: user}
	return run(ctx, s.dispatcher, before,
		func() error { return s.UserService.DeleteUser(ctx, before.User) },
		func() Event { return &DeleteUserEvent{User: before.User} })
}

func (s *userService) UpdateUser(ctx context.Context, user *simplecms.User, update simplecms.UserUpdateStruct) (*simplecms.User, error) {
	before := &BeforeUpdateUserEvent{User: user, Update: update}
	return call[*simplecms.User](ctx, s.dispatcher, before,
		func() (*simplecms.User, error) { return s.UserService.UpdateUser(ctx, before.User, before.Update) },
		func(result *simplecms.User) Event { return &UpdateUserEvent{Result: result, User: before.User, Update: before.Update} })
}

func (s *userService) UpdateUserPassword(ctx context.Context, user *simplecms.User, newPassword string) (*simplecms.User, error) {
	before := &BeforeUpdateUserPasswordEvent{User: user, NewPassword: newPassword}
	return call[*simplecms.User](ctx, s.dispatcher, before,
		func() (*simplecms.User, error) { return s.UserService.UpdateUserPassword(ctx, before.User, before.NewPassword) },
		func(result *simplecms.User) Event { return &UpdateUserPasswordEvent{Result: result, User: before.User, NewPassword: before.NewPassword} })
}

func (s *userService) AssignUserToUserGroup(ctx context.Context, user *simplecms.User, group *simplecms.UserGroup) error {
	before := &BeforeAssignUserToUserGroupEvent{User: user, Group: group}
	return run(ctx, s.dispatcher, before,
		func() error { return s.UserService.AssignUserToUserGroup(ctx, before.User, before.Group) },
		func() Event { return &AssignUserToUserGroupEvent{User: before.User, Group: before.Group} })
}

func (s *userService) UnassignUserFromUserGroup(ctx context.Context, user *simplecms.User, group *simplecms.UserGroup) error {
	before := &BeforeUnassignUserFromUserGroupEvent{User: user, Group: group}
	return run(ctx, s.dispatcher, before,
		func() error { return s.UserService.UnassignUserFromUserGroup(ctx, before.User, before.Group) },
		func() Event { return &UnassignUserFromUserGroupEvent{User: before.User, Group: before.Group} })
}

var _ simplecms.UserService = (*userService)(nil)
