package core

import (
	"context"
	"slices"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

type roleService struct{ *Repository }

var knownLimitations = []string{
	simplecms.LimitationContentType,
	simplecms.LimitationSection,
	simplecms.LimitationSubtree,
	simplecms.LimitationOwner,
	simplecms.LimitationLocation,
	simplecms.LimitationLanguage,
}

func validateLimitations(limitations []simplecms.Limitation) error {
	for _, l := range limitations {
		if !slices.Contains(knownLimitations, l.Identifier) {
			return invalid("limitations", "unknown limitation %q", l.Identifier)
		}
	}
	return nil
}

func sameLimitation(a, b *simplecms.Limitation) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Identifier == b.Identifier && slices.Equal(a.Values, b.Values)
}

func (r *Repository) loadRole(ctx context.Context, id int64) (*simplecms.Role, error) {
	role, err := r.roles.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "role", id)
	}
	return &role, nil
}

func (r *Repository) loadRoleDraft(ctx context.Context, id int64) (*simplecms.RoleDraft, error) {
	d, err := r.roleDrafts.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "roleDraft", id)
	}
	return &d, nil
}

// uniqueRoleIdentifier checks roles and drafts other than the given ones.
func (r *Repository) uniqueRoleIdentifier(ctx context.Context, identifier string, roleID, draftID int64) error {
	if identifier == "" {
		return invalid("identifier", "must not be empty")
	}
	_, exists, err := r.roles.First(ctx, func(role simplecms.Role) bool {
		return role.Identifier == identifier && role.ID != roleID
	})
	if err != nil {
		return err
	}
	if !exists {
		_, exists, err = r.roleDrafts.First(ctx, func(d simplecms.RoleDraft) bool {
			return d.Identifier == identifier && d.ID != draftID && (roleID == 0 || d.RoleID != roleID)
		})
		if err != nil {
			return err
		}
	}
	if exists {
		return invalid("identifier", "role %q already exists", identifier)
	}
	return nil
}

func (r *Repository) newPolicyDraft(ctx context.Context, create simplecms.PolicyCreateStruct) (simplecms.PolicyDraft, error) {
	if create.Module == "" {
		return simplecms.PolicyDraft{}, invalid("module", "must not be empty")
	}
	if create.Function == "" {
		return simplecms.PolicyDraft{}, invalid("function", "must not be empty")
	}
	if err := validateLimitations(create.Limitations); err != nil {
		return simplecms.PolicyDraft{}, err
	}
	id, err := r.store.NextID(ctx, "policy")
	if err != nil {
		return simplecms.PolicyDraft{}, err
	}
	return simplecms.PolicyDraft{Policy: simplecms.Policy{
		ID:          id,
		Module:      create.Module,
		Function:    create.Function,
		Limitations: create.Limitations,
	}}, nil
}

func (s roleService) LoadRole(ctx context.Context, id int64) (*simplecms.Role, error) {
	if err := s.require(ctx, "role", "read", nil); err != nil {
		return nil, err
	}
	return s.loadRole(ctx, id)
}

func (s roleService) LoadRoleByIdentifier(ctx context.Context, identifier string) (*simplecms.Role, error) {
	if err := s.require(ctx, "role", "read", nil); err != nil {
		return nil, err
	}
	role, ok, err := s.roles.First(ctx, func(role simplecms.Role) bool { return role.Identifier == identifier })
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &simplecms.NotFoundError{What: "role", Identifier: identifier}
	}
	return &role, nil
}

func (s roleService) LoadRoles(ctx context.Context) ([]*simplecms.Role, error) {
	if err := s.require(ctx, "role", "read", nil); err != nil {
		return nil, err
	}
	roles, err := s.roles.All(ctx)
	if err != nil {
		return nil, err
	}
	return ptrs(roles), nil
}

func (s roleService) LoadRoleDraft(ctx context.Context, id int64) (*simplecms.RoleDraft, error) {
	if err := s.require(ctx, "role", "read", nil); err != nil {
		return nil, err
	}
	return s.loadRoleDraft(ctx, id)
}

func (s roleService) LoadRoleDraftByRoleID(ctx context.Context, roleID int64) (*simplecms.RoleDraft, error) {
	if err := s.require(ctx, "role", "read", nil); err != nil {
		return nil, err
	}
	d, ok, err := s.roleDrafts.First(ctx, func(d simplecms.RoleDraft) bool { return d.RoleID == roleID })
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &simplecms.NotFoundError{What: "roleDraft", Identifier: roleID}
	}
	return &d, nil
}

func (s roleService) LoadRoleAssignment(ctx context.Context, id int64) (*simplecms.RoleAssignment, error) {
	if err := s.require(ctx, "role", "read", nil); err != nil {
		return nil, err
	}
	a, err := s.roleAssignments.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "roleAssignment", id)
	}
	return &a, nil
}

func (s roleService) GetRoleAssignments(ctx context.Context, role *simplecms.Role) ([]*simplecms.RoleAssignment, error) {
	if err := s.require(ctx, "role", "read", nil); err != nil {
		return nil, err
	}
	assignments, err := s.roleAssignments.Find(ctx, func(a simplecms.RoleAssignment) bool { return a.RoleID == role.ID })
	if err != nil {
		return nil, err
	}
	return ptrs(assignments), nil
}

func (s roleService) GetRoleAssignmentsForUser(ctx context.Context, user *simplecms.User, inherited bool) ([]*simplecms.RoleAssignment, error) {
	if err := s.require(ctx, "role", "read", nil); err != nil {
		return nil, err
	}
	u, err := s.loadUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	assignments, err := s.assignmentsForUser(ctx, u.ID, inherited)
	if err != nil {
		return nil, err
	}
	return ptrs(assignments), nil
}

func (s roleService) GetRoleAssignmentsForUserGroup(ctx context.Context, group *simplecms.UserGroup) ([]*simplecms.RoleAssignment, error) {
	if err := s.require(ctx, "role", "read", nil); err != nil {
		return nil, err
	}
	assignments, err := s.roleAssignments.Find(ctx, func(a simplecms.RoleAssignment) bool { return a.UserGroupID == group.ID })
	if err != nil {
		return nil, err
	}
	return ptrs(assignments), nil
}

// CreateRole creates the draft of a new role. The role exists once the
// draft is published.
func (s roleService) CreateRole(ctx context.Context, create simplecms.RoleCreateStruct) (*simplecms.RoleDraft, error) {
	if err := s.require(ctx, "role", "create", nil); err != nil {
		return nil, err
	}
	if err := s.uniqueRoleIdentifier(ctx, create.Identifier, 0, 0); err != nil {
		return nil, err
	}
	policies := make([]simplecms.PolicyDraft, 0, len(create.Policies))
	for _, pc := range create.Policies {
		p, err := s.newPolicyDraft(ctx, pc)
		if err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	d, err := s.roleDrafts.Create(ctx, func(id int64) simplecms.RoleDraft {
		for i := range policies {
			policies[i].RoleID = id
		}
		return simplecms.RoleDraft{ID: id, Identifier: create.Identifier, Policies: policies}
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s roleService) CreateRoleDraft(ctx context.Context, role *simplecms.Role) (*simplecms.RoleDraft, error) {
	if err := s.require(ctx, "role", "create", nil); err != nil {
		return nil, err
	}
	r, err := s.loadRole(ctx, role.ID)
	if err != nil {
		return nil, err
	}
	if _, exists, err := s.roleDrafts.First(ctx, func(d simplecms.RoleDraft) bool { return d.RoleID == r.ID }); err != nil {
		return nil, err
	} else if exists {
		return nil, badState("role", "role %q already has a draft", r.Identifier)
	}
	policies := make([]simplecms.PolicyDraft, 0, len(r.Policies))
	for _, p := range r.Policies {
		id, err := s.store.NextID(ctx, "policy")
		if err != nil {
			return nil, err
		}
		draft := simplecms.PolicyDraft{Policy: p, OriginalID: p.ID}
		draft.ID = id
		draft.Limitations = slices.Clone(p.Limitations)
		policies = append(policies, draft)
	}
	d, err := s.roleDrafts.Create(ctx, func(id int64) simplecms.RoleDraft {
		return simplecms.RoleDraft{ID: id, RoleID: r.ID, Identifier: r.Identifier, Policies: policies}
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s roleService) UpdateRoleDraft(ctx context.Context, draft *simplecms.RoleDraft, update simplecms.RoleUpdateStruct) (*simplecms.RoleDraft, error) {
	if err := s.require(ctx, "role", "update", nil); err != nil {
		return nil, err
	}
	d, err := s.loadRoleDraft(ctx, draft.ID)
	if err != nil {
		return nil, err
	}
	if update.Identifier != nil && *update.Identifier != d.Identifier {
		if err := s.uniqueRoleIdentifier(ctx, *update.Identifier, d.RoleID, d.ID); err != nil {
			return nil, err
		}
		d.Identifier = *update.Identifier
	}
	if err := s.roleDrafts.Put(ctx, d.ID, *d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s roleService) AddPolicyByRoleDraft(ctx context.Context, draft *simplecms.RoleDraft, create simplecms.PolicyCreateStruct) (*simplecms.RoleDraft, error) {
	if err := s.require(ctx, "role", "update", nil); err != nil {
		return nil, err
	}
	d, err := s.loadRoleDraft(ctx, draft.ID)
	if err != nil {
		return nil, err
	}
	p, err := s.newPolicyDraft(ctx, create)
	if err != nil {
		return nil, err
	}
	p.RoleID = d.ID
	d.Policies = append(d.Policies, p)
	if err := s.roleDrafts.Put(ctx, d.ID, *d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s roleService) RemovePolicyByRoleDraft(ctx context.Context, draft *simplecms.RoleDraft, policy *simplecms.PolicyDraft) (*simplecms.RoleDraft, error) {
	if err := s.require(ctx, "role", "update", nil); err != nil {
		return nil, err
	}
	d, err := s.loadRoleDraft(ctx, draft.ID)
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(d.Policies, func(p simplecms.PolicyDraft) bool { return p.ID == policy.ID })
	if i < 0 {
		return nil, invalid("policy", "policy %d does not belong to role draft %d", policy.ID, d.ID)
	}
	d.Policies = slices.Delete(d.Policies, i, i+1)
	if err := s.roleDrafts.Put(ctx, d.ID, *d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s roleService) UpdatePolicyByRoleDraft(ctx context.Context, draft *simplecms.RoleDraft, policy *simplecms.PolicyDraft, update simplecms.PolicyUpdateStruct) (*simplecms.PolicyDraft, error) {
	if err := s.require(ctx, "role", "update", nil); err != nil {
		return nil, err
	}
	d, err := s.loadRoleDraft(ctx, draft.ID)
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(d.Policies, func(p simplecms.PolicyDraft) bool { return p.ID == policy.ID })
	if i < 0 {
		return nil, invalid("policy", "policy %d does not belong to role draft %d", policy.ID, d.ID)
	}
	if err := validateLimitations(update.Limitations); err != nil {
		return nil, err
	}
	d.Policies[i].Limitations = update.Limitations
	if err := s.roleDrafts.Put(ctx, d.ID, *d); err != nil {
		return nil, err
	}
	updated := d.Policies[i]
	return &updated, nil
}

func (s roleService) DeleteRoleDraft(ctx context.Context, draft *simplecms.RoleDraft) error {
	if err := s.require(ctx, "role", "delete", nil); err != nil {
		return err
	}
	d, err := s.loadRoleDraft(ctx, draft.ID)
	if err != nil {
		return err
	}
	return s.roleDrafts.Delete(ctx, d.ID)
}

// PublishRoleDraft creates or replaces the role of the draft. Policies
// copied from the role keep their original IDs.
func (s roleService) PublishRoleDraft(ctx context.Context, draft *simplecms.RoleDraft) error {
	if err := s.require(ctx, "role", "update", nil); err != nil {
		return err
	}
	d, err := s.loadRoleDraft(ctx, draft.ID)
	if err != nil {
		return err
	}
	policies := func(roleID int64) []simplecms.Policy {
		out := make([]simplecms.Policy, 0, len(d.Policies))
		for _, pd := range d.Policies {
			p := pd.Policy
			if pd.OriginalID != 0 {
				p.ID = pd.OriginalID
			}
			p.RoleID = roleID
			out = append(out, p)
		}
		return out
	}

	roleID := d.RoleID
	if roleID == 0 {
		role, err := s.roles.Create(ctx, func(id int64) simplecms.Role {
			return simplecms.Role{ID: id, Identifier: d.Identifier, Policies: policies(id)}
		})
		if err != nil {
			return err
		}
		roleID = role.ID
	} else {
		role := simplecms.Role{ID: roleID, Identifier: d.Identifier, Policies: policies(roleID)}
		if err := s.roles.Put(ctx, roleID, role); err != nil {
			return err
		}
	}
	s.logger.Info("published role", "role_id", roleID, "identifier", d.Identifier, "policies", len(d.Policies))
	return s.roleDrafts.Delete(ctx, d.ID)
}

func (s roleService) DeleteRole(ctx context.Context, role *simplecms.Role) error {
	if err := s.require(ctx, "role", "delete", nil); err != nil {
		return err
	}
	r, err := s.loadRole(ctx, role.ID)
	if err != nil {
		return err
	}
	drafts, err := s.roleDrafts.Find(ctx, func(d simplecms.RoleDraft) bool { return d.RoleID == r.ID })
	if err != nil {
		return err
	}
	for _, d := range drafts {
		if err := s.roleDrafts.Delete(ctx, d.ID); err != nil {
			return err
		}
	}
	assignments, err := s.roleAssignments.Find(ctx, func(a simplecms.RoleAssignment) bool { return a.RoleID == r.ID })
	if err != nil {
		return err
	}
	for _, a := range assignments {
		if err := s.roleAssignments.Delete(ctx, a.ID); err != nil {
			return err
		}
	}
	return s.roles.Delete(ctx, r.ID)
}

func (s roleService) AssignRoleToUserGroup(ctx context.Context, role *simplecms.Role, group *simplecms.UserGroup, limitation *simplecms.Limitation) error {
	g, err := s.loadUserGroup(ctx, group.ID)
	if err != nil {
		return err
	}
	return s.assign(ctx, role, simplecms.RoleAssignment{UserGroupID: g.ID, Limitation: limitation})
}

func (s roleService) AssignRoleToUser(ctx context.Context, role *simplecms.Role, user *simplecms.User, limitation *simplecms.Limitation) error {
	u, err := s.loadUser(ctx, user.ID)
	if err != nil {
		return err
	}
	return s.assign(ctx, role, simplecms.RoleAssignment{UserID: u.ID, Limitation: limitation})
}

// assign stores an assignment. Only Section and Subtree limitations can
// restrict an assignment.
func (s roleService) assign(ctx context.Context, role *simplecms.Role, assignment simplecms.RoleAssignment) error {
	if err := s.require(ctx, "role", "assign", nil); err != nil {
		return err
	}
	r, err := s.loadRole(ctx, role.ID)
	if err != nil {
		return err
	}
	if l := assignment.Limitation; l != nil {
		if l.Identifier != simplecms.LimitationSection && l.Identifier != simplecms.LimitationSubtree {
			return invalid("limitation", "role assignments cannot be limited by %q", l.Identifier)
		}
		if len(l.Values) == 0 {
			return invalid("limitation", "limitation %q has no values", l.Identifier)
		}
	}
	_, exists, err := s.roleAssignments.First(ctx, func(a simplecms.RoleAssignment) bool {
		return a.RoleID == r.ID && a.UserID == assignment.UserID && a.UserGroupID == assignment.UserGroupID &&
			sameLimitation(a.Limitation, assignment.Limitation)
	})
	if err != nil {
		return err
	}
	if exists {
		return invalid("role", "role %q is already assigned with this limitation", r.Identifier)
	}
	_, err = s.roleAssignments.Create(ctx, func(id int64) simplecms.RoleAssignment {
		assignment.ID = id
		assignment.RoleID = r.ID
		return assignment
	})
	return err
}

func (s roleService) RemoveRoleAssignment(ctx context.Context, assignment *simplecms.RoleAssignment) error {
	if err := s.require(ctx, "role", "assign", nil); err != nil {
		return err
	}
	a, err := s.roleAssignments.Get(ctx, assignment.ID)
	if err != nil {
		return notFound(err, "roleAssignment", assignment.ID)
	}
	return s.roleAssignments.Delete(ctx, a.ID)
}

var _ simplecms.RoleService = roleService{}
