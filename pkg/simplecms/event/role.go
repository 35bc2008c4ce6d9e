package event

import (
	"context"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

const (
	BeforeCreateRole = "simplecms.role.before_create_role"
	CreateRole       = "simplecms.role.create_role"

	BeforeCreateRoleDraft = "simplecms.role.before_create_role_draft"
	CreateRoleDraft       = "simplecms.role.create_role_draft"

	BeforeUpdateRoleDraft = "simplecms.role.before_update_role_draft"
	UpdateRoleDraft       = "simplecms.role.update_role_draft"

	BeforeAddPolicyByRoleDraft = "simplecms.role.before_add_policy_by_role_draft"
	AddPolicyByRoleDraft       = "simplecms.role.add_policy_by_role_draft"

	BeforeRemovePolicyByRoleDraft = "simplecms.role.before_remove_policy_by_role_draft"
	RemovePolicyByRoleDraft       = "simplecms.role.remove_policy_by_role_draft"

	BeforeUpdatePolicyByRoleDraft = "simplecms.role.before_update_policy_by_role_draft"
	UpdatePolicyByRoleDraft       = "simplecms.role.update_policy_by_role_draft"

	BeforeDeleteRoleDraft = "simplecms.role.before_delete_role_draft"
	DeleteRoleDraft       = "simplecms.role.delete_role_draft"

	BeforePublishRoleDraft = "simplecms.role.before_publish_role_draft"
	PublishRoleDraft       = "simplecms.role.publish_role_draft"

	BeforeDeleteRole = "simplecms.role.before_delete_role"
	DeleteRole       = "simplecms.role.delete_role"

	BeforeAssignRoleToUserGroup = "simplecms.role.before_assign_role_to_user_group"
	AssignRoleToUserGroup       = "simplecms.role.assign_role_to_user_group"

	BeforeAssignRoleToUser = "simplecms.role.before_assign_role_to_user"
	AssignRoleToUser       = "simplecms.role.assign_role_to_user"

	BeforeRemoveRoleAssignment = "simplecms.role.before_remove_role_assignment"
	RemoveRoleAssignment       = "simplecms.role.remove_role_assignment"
)

// BeforeCreateRoleEvent is dispatched before RoleService.CreateRole.
type BeforeCreateRoleEvent struct {
	Before[*simplecms.RoleDraft]

	Create simplecms.RoleCreateStruct
}

func (*BeforeCreateRoleEvent) EventName() string { return BeforeCreateRole }

// CreateRoleEvent is dispatched after RoleService.CreateRole succeeded.
type CreateRoleEvent struct {
	Result *simplecms.RoleDraft
	Create simplecms.RoleCreateStruct
}

func (*CreateRoleEvent) EventName() string { return CreateRole }

func (e *CreateRoleEvent) result() any { return e.Result }

// BeforeCreateRoleDraftEvent is dispatched before RoleService.CreateRoleDraft.
type BeforeCreateRoleDraftEvent struct {
	Before[*simplecms.RoleDraft]

	Role *simplecms.Role
}

func (*BeforeCreateRoleDraftEvent) EventName() string { return BeforeCreateRoleDraft }

// CreateRoleDraftEvent is dispatched after RoleService.CreateRoleDraft succeeded.
type CreateRoleDraftEvent struct {
	Result *simplecms.RoleDraft
	Role   *simplecms.Role
}

func (*CreateRoleDraftEvent) EventName() string { return CreateRoleDraft }

func (e *CreateRoleDraftEvent) result() any { return e.Result }

// BeforeUpdateRoleDraftEvent is dispatched before RoleService.UpdateRoleDraft.
type BeforeUpdateRoleDraftEvent struct {
	Before[*simplecms.RoleDraft]

	Draft  *simplecms.RoleDraft
	Update simplecms.RoleUpdateStruct
}

func (*BeforeUpdateRoleDraftEvent) EventName() string { return BeforeUpdateRoleDraft }

// UpdateRoleDraftEvent is dispatched after RoleService.UpdateRoleDraft succeeded.
type UpdateRoleDraftEvent struct {
	Result *simplecms.RoleDraft
	Draft  *simplecms.RoleDraft
	Update simplecms.RoleUpdateStruct
}

func (*UpdateRoleDraftEvent) EventName() string { return UpdateRoleDraft }

func (e *UpdateRoleDraftEvent) result() any { return e.Result }

// BeforeAddPolicyByRoleDraftEvent is dispatched before RoleService.AddPolicyByRoleDraft.
type BeforeAddPolicyByRoleDraftEvent struct {
	Before[*simplecms.RoleDraft]

	Draft  *simplecms.RoleDraft
	Create simplecms.PolicyCreateStruct
}

func (*BeforeAddPolicyByRoleDraftEvent) EventName() string { return BeforeAddPolicyByRoleDraft }

// AddPolicyByRoleDraftEvent is dispatched after RoleService.AddPolicyByRoleDraft succeeded.
type AddPolicyByRoleDraftEvent struct {
	Result *simplecms.RoleDraft
	Draft  *simplecms.RoleDraft
	Create simplecms.PolicyCreateStruct
}

func (*AddPolicyByRoleDraftEvent) EventName() string { return AddPolicyByRoleDraft }

func (e *AddPolicyByRoleDraftEvent) result() any { return e.Result }

// BeforeRemovePolicyByRoleDraftEvent is dispatched before RoleService.RemovePolicyByRoleDraft.
type BeforeRemovePolicyByRoleDraftEvent struct {
	Before[*simplecms.RoleDraft]

	Draft  *simplecms.RoleDraft
	Policy *simplecms.PolicyDraft
}

func (*BeforeRemovePolicyByRoleDraftEvent) EventName() string { return BeforeRemovePolicyByRoleDraft }

// RemovePolicyByRoleDraftEvent is dispatched after RoleService.RemovePolicyByRoleDraft succeeded.
type RemovePolicyByRoleDraftEvent struct {
	Result *simplecms.RoleDraft
	Draft  *simplecms.RoleDraft
	Policy *simplecms.PolicyDraft
}

func (*RemovePolicyByRoleDraftEvent) EventName() string { return RemovePolicyByRoleDraft }

func (e *RemovePolicyByRoleDraftEvent) result() any { return e.Result }

// BeforeUpdatePolicyByRoleDraftEvent is dispatched before RoleService.UpdatePolicyByRoleDraft.
type BeforeUpdatePolicyByRoleDraftEvent struct {
	Before[*simplecms.PolicyDraft]

	Draft  *simplecms.RoleDraft
	Policy *simplecms.PolicyDraft
	Update simplecms.PolicyUpdateStruct
}

func (*BeforeUpdatePolicyByRoleDraftEvent) EventName() string { return BeforeUpdatePolicyByRoleDraft }

// UpdatePolicyByRoleDraftEvent is dispatched after RoleService.UpdatePolicyByRoleDraft succeeded.
type UpdatePolicyByRoleDraftEvent struct {
	Result *simplecms.PolicyDraft
	Draft  *simplecms.RoleDraft
	Policy *simplecms.PolicyDraft
	Update simplecms.PolicyUpdateStruct
}

func (*UpdatePolicyByRoleDraftEvent) EventName() string { return UpdatePolicyByRoleDraft }

func (e *UpdatePolicyByRoleDraftEvent) result() any { return e.Result }

// BeforeDeleteRoleDraftEvent is dispatched before RoleService.DeleteRoleDraft.
type BeforeDeleteRoleDraftEvent struct {
	Propagation

	Draft *simplecms.RoleDraft
}

func (*BeforeDeleteRoleDraftEvent) EventName() string { return BeforeDeleteRoleDraft }

// DeleteRoleDraftEvent is dispatched after RoleService.DeleteRoleDraft succeeded.
type DeleteRoleDraftEvent struct {
	Draft *simplecms.RoleDraft
}

func (*DeleteRoleDraftEvent) EventName() string { return DeleteRoleDraft }

// BeforePublishRoleDraftEvent is dispatched before RoleService.PublishRoleDraft.
type BeforePublishRoleDraftEvent struct {
	Propagation

	Draft *simplecms.RoleDraft
}

func (*BeforePublishRoleDraftEvent) EventName() string { return BeforePublishRoleDraft }

// PublishRoleDraftEvent is dispatched after RoleService.PublishRoleDraft succeeded.
type PublishRoleDraftEvent struct {
	Draft *simplecms.RoleDraft
}

func (*PublishRoleDraftEvent) EventName() string { return PublishRoleDraft }

// BeforeDeleteRoleEvent is dispatched before RoleService.DeleteRole.
type BeforeDeleteRoleEvent struct {
	Propagation

	Role *simplecms.Role
}

func (*BeforeDeleteRoleEvent) EventName() string { return BeforeDeleteRole }

// DeleteRoleEvent is dispatched after RoleService.DeleteRole succeeded.
type DeleteRoleEvent struct {
	Role *simplecms.Role
}

func (*DeleteRoleEvent) EventName() string { return DeleteRole }

// BeforeAssignRoleToUserGroupEvent is dispatched before RoleService.AssignRoleToUserGroup.
type BeforeAssignRoleToUserGroupEvent struct {
	Propagation

	Role       *simplecms.Role
	Group      *simplecms.UserGroup
	Limitation *simplecms.Limitation
}

func (*BeforeAssignRoleToUserGroupEvent) EventName() string { return BeforeAssignRoleToUserGroup }

// AssignRoleToUserGroupEvent is dispatched after RoleService.AssignRoleToUserGroup succeeded.
type AssignRoleToUserGroupEvent struct {
	Role       *simplecms.Role
	Group      *simplecms.UserGroup
	Limitation *simplecms.Limitation
}

func (*AssignRoleToUserGroupEvent) EventName() string { return AssignRoleToUserGroup }

// BeforeAssignRoleToUserEvent is dispatched before RoleService.AssignRoleToUser.
type BeforeAssignRoleToUserEvent struct {
	Propagation

	Role       *simplecms.Role
	User       *simplecms.User
	Limitation *simplecms.Limitation
}

func (*BeforeAssignRoleToUserEvent) EventName() string { return BeforeAssignRoleToUser }

// AssignRoleToUserEvent is dispatched after RoleService.AssignRoleToUser succeeded.
type AssignRoleToUserEvent struct {
	Role       *simplecms.Role
	User       *simplecms.User
	Limitation *simplecms.Limitation
}

func (*AssignRoleToUserEvent) EventName() string { return AssignRoleToUser }

// BeforeRemoveRoleAssignmentEvent is dispatched before RoleService.RemoveRoleAssignment.
type BeforeRemoveRoleAssignmentEvent struct {
	Propagation

	Assignment *simplecms.RoleAssignment
}

func (*BeforeRemoveRoleAssignmentEvent) EventName() string { return BeforeRemoveRoleAssignment }

// RemoveRoleAssignmentEvent is dispatched after RoleService.RemoveRoleAssignment succeeded.
type RemoveRoleAssignmentEvent struct {
	Assignment *simplecms.RoleAssignment
}

func (*RemoveRoleAssignmentEvent) EventName() string { return RemoveRoleAssignment }

type roleService struct {
	simplecms.RoleService
	dispatcher Dispatcher
}

// NewRoleService returns a RoleService that dispatches events around every
// mutating method of inner.
func NewRoleService(inner simplecms.RoleService, d Dispatcher) simplecms.RoleService {
	return &roleService{RoleService: inner, dispatcher: d}
}

func (s *roleService) CreateRole(ctx context.Context, create simplecms.RoleCreateStruct) (*simplecms.RoleDraft, error) {
	before := &BeforeCreateRoleEvent{Create: create}
	return call[*simplecms.RoleDraft](ctx, s.dispatcher, before,
		func() (*simplecms.RoleDraft, error) { return s.RoleService.CreateRole(ctx, before.Create) },
		func(result *simplecms.RoleDraft) Event { return &CreateRoleEvent{Result: result, Create: before.Create} })
}

func (s *roleService) CreateRoleDraft(ctx context.Context, role *simplecms.Role) (*simplecms.RoleDraft, error) {
	before := &BeforeCreateRoleDraftEvent{Role: role}
	return call[*simplecms.RoleDraft](ctx, s.dispatcher, before,
		func() (*simplecms.RoleDraft, error) { return s.RoleService.CreateRoleDraft(ctx, before.Role) },
		func(result *simplecms.RoleDraft) Event { return &CreateRoleDraftEvent{Result: result, Role: before.Role} })
}

func (s *roleService) UpdateRoleDraft(ctx context.Context, draft *simplecms.RoleDraft, update simplecms.RoleUpdateStruct) (*simplecms.RoleDraft, error) {
	before := &BeforeUpdateRoleDraftEvent{Draft: draft, Update: update}
	return call[*simplecms.RoleDraft](ctx, s.dispatcher, before,
		func() (*simplecms.RoleDraft, error) { return s.RoleService.UpdateRoleDraft(ctx, before.Draft, before.Update) },
		func(result *simplecms.RoleDraft) Event { return &UpdateRoleDraftEvent{Result: result, Draft: before.Draft, Update: before.Update} })
}

func (s *roleService) AddPolicyByRoleDraft(ctx context.Context, draft *simplecms.RoleDraft, create simplecms.PolicyCreateStruct) (*simplecms.RoleDraft, error) {
	before := &BeforeAddPolicyByRoleDraftEvent{Draft: draft, Create: create}
	return call[*simplecms.RoleDraft](ctx, s.dispatcher, before,
		func() (*simplecms.RoleDraft, error) { return s.RoleService.AddPolicyByRoleDraft(ctx, before.Draft, before.Create) },
		func(result *simplecms.RoleDraft) Event { return &AddPolicyByRoleDraftEvent{Result: result, Draft: before.Draft, Create: before.Create} })
}

func (s *roleService) RemovePolicyByRoleDraft(ctx context.Context, draft *simplecms.RoleDraft, policy *simplecms.PolicyDraft) (*simplecms.RoleDraft, error) {
	before := &BeforeRemovePolicyByRoleDraftEvent{Draft: draft, Policy: policy}
	return call[*simplecms.RoleDraft](ctx, s.dispatcher, before,
		func() (*simplecms.RoleDraft, error) { return s.RoleService.RemovePolicyByRoleDraft(ctx, before.Draft, before.Policy) },
		func(result *simplecms.RoleDraft) Event { return &RemovePolicyByRoleDraftEvent{Result: result, Draft: before.Draft, Policy: before.Policy} })
}

func (s *roleService) UpdatePolicyByRoleDraft(ctx context.Context, draft *simplecms.RoleDraft, policy *simplecms.PolicyDraft, update simplecms.PolicyUpdateStruct) (*simplecms.PolicyDraft, error) {
	before := &BeforeUpdatePolicyByRoleDraftEvent{Draft: draft, Policy: policy, Update: update}
	return call[*simplecms.PolicyDraft](ctx, s.dispatcher, before,
		func() (*simplecms.PolicyDraft, error) { return s.RoleService.UpdatePolicyByRoleDraft(ctx, before.Draft, before.Policy, before.Update) },
		func(result *simplecms.PolicyDraft) Event { return &UpdatePolicyByRoleDraftEvent{Result: result, Draft: before.Draft, Policy: before.Policy, Update: before.Update} })
}

func (s *roleService) DeleteRoleDraft(ctx context.Context, draft *simplecms.RoleDraft) error {
	before := &BeforeDeleteRoleDraftEvent{Draft: draft}
	return run(ctx, s.dispatcher, before,
		func() error { return s.RoleService.DeleteRoleDraft(ctx, before.Draft) },
		func() Event { return &DeleteRoleDraftEvent{Draft: before.Draft} })
}

func (s *roleService) PublishRoleDraft(ctx context.Context, draft *simplecms.RoleDraft) error {
	before := &BeforePublishRoleDraftEvent{Draft: draft}
	return run(ctx, s.dispatcher, before,
		func() error { return s.RoleService.PublishRoleDraft(ctx, before.Draft) },
		func() Event { return &PublishRoleDraftEvent{Draft: before.Draft} })
}

func (s *roleService) DeleteRole(ctx context.Context, role *simplecms.Role) error {
	before := &BeforeDeleteRoleEvent{Role: role}
	return run(ctx, s.dispatcher, before,
		func() error { return s.RoleService.DeleteRole(ctx, before.Role) },
		func() Event { return &DeleteRoleEvent{Role: before.Role} })
}

func (s *roleService) AssignRoleToUserGroup(ctx context.Context, role *simplecms.Role, group *simplecms.UserGroup, limitation *simplecms.Limitation) error {
	before := &BeforeAssignRoleToUserGroupEvent{Role: role, Group: group, Limitation: limitation}
	return run(ctx, s.dispatcher, before,
		func() error { return s.RoleService.AssignRoleToUserGroup(ctx, before.Role, before.Group, before.Limitation) },
		func() Event { return &AssignRoleToUserGroupEvent{Role: before.Role, Group: before.Group, Limitation: before.Limitation} })
}

func (s *roleService) AssignRoleToUser(ctx context.Context, role *simplecms.Role, user *simplecms.User, limitation *simplecms.Limitation) error {
	before := &BeforeAssignRoleToUserEvent{Role: role, User: user, Limitation: limitation}
	return run(ctx, s.dispatcher, before,
		func() error { return s.RoleService.AssignRoleToUser(ctx, before.Role, before.User, before.Limitation) },
		func() Event { return &AssignRoleToUserEvent{Role: before.Role, User: before.User, Limitation: before.Limitation} })
}

func (s *roleService) RemoveRoleAssignment(ctx context.Context, assignment *simplecms.RoleAssignment) error {
	before := &BeforeRemoveRoleAssignmentEvent{Assignment: assignment}
	return run(ctx, s.dispatcher, before,
		func() error { return s.RoleService.RemoveRoleAssignment(ctx, before.Assignment) },
		func() Event { return &RemoveRoleAssignmentEvent{Assignment: before.Assignment} })
}

var _ simplecms.RoleService = (*roleService)(nil)
