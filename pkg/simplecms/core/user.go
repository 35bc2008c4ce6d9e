package core

import (
	"context"
	"errors"
	"net/mail"
	"slices"

	"github.com/google/uuid"
	"github.com/tendant/simple-cms/pkg/simplecms"
	"golang.org/x/crypto/bcrypt"
)

// User and group management is granted through the content module, since
// users and groups are content in the repository model.
type userService struct{ *Repository }

func (r *Repository) loadUser(ctx context.Context, id int64) (*simplecms.User, error) {
	u, err := r.users.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return &u, nil
}

func (r *Repository) loadUserGroup(ctx context.Context, id int64) (*simplecms.UserGroup, error) {
	g, err := r.userGroups.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "userGroup", id)
	}
	return &g, nil
}

// groupAncestors returns the group followed by its ancestors.
func (r *Repository) groupAncestors(ctx context.Context, groupID int64) ([]int64, error) {
	var ids []int64
	for id := groupID; id != 0 && !slices.Contains(ids, id); {
		g, err := r.userGroups.Get(ctx, id)
		if isNotFound(err) {
			break
		} else if err != nil {
			return nil, err
		}
		ids = append(ids, g.ID)
		id = g.ParentID
	}
	return ids, nil
}

// assignmentsForUser returns the role assignments of a user, including
// those of its groups and their ancestors when inherited is set.
func (r *Repository) assignmentsForUser(ctx context.Context, userID int64, inherited bool) ([]simplecms.RoleAssignment, error) {
	groups := []int64{}
	if inherited {
		u, err := r.users.Get(ctx, userID)
		if err != nil && !isNotFound(err) {
			return nil, err
		}
		for _, g := range u.GroupIDs {
			ancestors, err := r.groupAncestors(ctx, g)
			if err != nil {
				return nil, err
			}
			for _, id := range ancestors {
				if !slices.Contains(groups, id) {
					groups = append(groups, id)
				}
			}
		}
	}
	return r.roleAssignments.Find(ctx, func(a simplecms.RoleAssignment) bool {
		return (a.UserID != 0 && a.UserID == userID) || (a.UserGroupID != 0 && slices.Contains(groups, a.UserGroupID))
	})
}

func (r *Repository) hashPassword(password string) (string, error) {
	if password == "" {
		return "", invalid("password", "must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), r.passwordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func validEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return invalid("email", "%q is not a valid address", email)
	}
	return nil
}

func (s userService) LoadUserGroup(ctx context.Context, id int64) (*simplecms.UserGroup, error) {
	if err := s.require(ctx, "content", "read", nil); err != nil {
		return nil, err
	}
	return s.loadUserGroup(ctx, id)
}

func (s userService) LoadSubUserGroups(ctx context.Context, group *simplecms.UserGroup) ([]*simplecms.UserGroup, error) {
	if err := s.require(ctx, "content", "read", nil); err != nil {
		return nil, err
	}
	children, err := s.userGroups.Find(ctx, func(g simplecms.UserGroup) bool { return g.ParentID == group.ID })
	if err != nil {
		return nil, err
	}
	return ptrs(children), nil
}

func (s userService) LoadUser(ctx context.Context, id int64) (*simplecms.User, error) {
	return s.loadUser(ctx, id)
}

func (s userService) LoadUserByLogin(ctx context.Context, login string) (*simplecms.User, error) {
	u, ok, err := s.users.First(ctx, func(u simplecms.User) bool { return u.Login == login })
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &simplecms.NotFoundError{What: "user", Identifier: login}
	}
	return &u, nil
}

func (s userService) LoadUsersByEmail(ctx context.Context, email string) ([]*simplecms.User, error) {
	users, err := s.users.Find(ctx, func(u simplecms.User) bool { return u.Email == email })
	if err != nil {
		return nil, err
	}
	return ptrs(users), nil
}

// CheckUserCredentials reports false for disabled users.
func (s userService) CheckUserCredentials(ctx context.Context, user *simplecms.User, password string) (bool, error) {
	u, err := s.loadUser(ctx, user.ID)
	if err != nil {
		return false, err
	}
	if !u.Enabled || u.PasswordHash == "" {
		return false, nil
	}
	err = bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return err == nil, err
}

func (s userService) LoadUserGroupsOfUser(ctx context.Context, user *simplecms.User) ([]*simplecms.UserGroup, error) {
	u, err := s.loadUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	groups := make([]*simplecms.UserGroup, 0, len(u.GroupIDs))
	for _, id := range u.GroupIDs {
		g, err := s.loadUserGroup(ctx, id)
		if isNotFound(err) {
			continue
		} else if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

func (s userService) LoadUsersOfUserGroup(ctx context.Context, group *simplecms.UserGroup, offset, limit int) ([]*simplecms.User, error) {
	if err := s.require(ctx, "content", "read", nil); err != nil {
		return nil, err
	}
	users, err := s.users.Find(ctx, func(u simplecms.User) bool { return slices.Contains(u.GroupIDs, group.ID) })
	if err != nil {
		return nil, err
	}
	return ptrs(pageOf(users, offset, limit)), nil
}

func (s userService) CreateUserGroup(ctx context.Context, create simplecms.UserGroupCreateStruct, parent *simplecms.UserGroup) (*simplecms.UserGroup, error) {
	if err := s.require(ctx, "content", "create", nil); err != nil {
		return nil, err
	}
	if create.Name == "" {
		return nil, invalid("name", "must not be empty")
	}
	var parentID int64
	if parent != nil {
		p, err := s.loadUserGroup(ctx, parent.ID)
		if err != nil {
			return nil, err
		}
		parentID = p.ID
	}
	if create.RemoteID == "" {
		create.RemoteID = uuid.NewString()
	} else if _, exists, err := s.userGroups.First(ctx, func(g simplecms.UserGroup) bool { return g.RemoteID == create.RemoteID }); err != nil {
		return nil, err
	} else if exists {
		return nil, invalid("remoteId", "user group with remote id %q already exists", create.RemoteID)
	}
	now := s.now()
	g, err := s.userGroups.Create(ctx, func(id int64) simplecms.UserGroup {
		return simplecms.UserGroup{
			ID:           id,
			Name:         create.Name,
			Description:  create.Description,
			ParentID:     parentID,
			RemoteID:     create.RemoteID,
			CreationDate: now,
		}
	})
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// DeleteUserGroup deletes the group with its subgroups. Users left without
// any group are deleted too.
func (s userService) DeleteUserGroup(ctx context.Context, group *simplecms.UserGroup) error {
	if err := s.require(ctx, "content", "remove", nil); err != nil {
		return err
	}
	g, err := s.loadUserGroup(ctx, group.ID)
	if err != nil {
		return err
	}
	return s.deleteUserGroup(ctx, g.ID)
}

func (r *Repository) deleteUserGroup(ctx context.Context, groupID int64) error {
	children, err := r.userGroups.Find(ctx, func(g simplecms.UserGroup) bool { return g.ParentID == groupID })
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := r.deleteUserGroup(ctx, child.ID); err != nil {
			return err
		}
	}

	members, err := r.users.Find(ctx, func(u simplecms.User) bool { return slices.Contains(u.GroupIDs, groupID) })
	if err != nil {
		return err
	}
	for _, u := range members {
		u.GroupIDs = slices.DeleteFunc(u.GroupIDs, func(id int64) bool { return id == groupID })
		if len(u.GroupIDs) == 0 {
			if err := r.deleteUser(ctx, u.ID); err != nil {
				return err
			}
			continue
		}
		if err := r.users.Put(ctx, u.ID, u); err != nil {
			return err
		}
	}

	assignments, err := r.roleAssignments.Find(ctx, func(a simplecms.RoleAssignment) bool { return a.UserGroupID == groupID })
	if err != nil {
		return err
	}
	for _, a := range assignments {
		if err := r.roleAssignments.Delete(ctx, a.ID); err != nil {
			return err
		}
	}
	r.logger.Info("deleted user group", "group_id", groupID, "subgroups", len(children))
	return r.userGroups.Delete(ctx, groupID)
}

func (s userService) MoveUserGroup(ctx context.Context, group, newParent *simplecms.UserGroup) error {
	if err := s.require(ctx, "content", "edit", nil); err != nil {
		return err
	}
	g, err := s.loadUserGroup(ctx, group.ID)
	if err != nil {
		return err
	}
	parent, err := s.loadUserGroup(ctx, newParent.ID)
	if err != nil {
		return err
	}
	ancestors, err := s.groupAncestors(ctx, parent.ID)
	if err != nil {
		return err
	}
	if slices.Contains(ancestors, g.ID) {
		return invalid("newParent", "group %d cannot be moved into its own subtree", g.ID)
	}
	g.ParentID = parent.ID
	return s.userGroups.Put(ctx, g.ID, *g)
}

func (s userService) UpdateUserGroup(ctx context.Context, group *simplecms.UserGroup, update simplecms.UserGroupUpdateStruct) (*simplecms.UserGroup, error) {
	if err := s.require(ctx, "content", "edit", nil); err != nil {
		return nil, err
	}
	g, err := s.loadUserGroup(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	if update.Name != nil {
		if *update.Name == "" {
			return nil, invalid("name", "must not be empty")
		}
		g.Name = *update.Name
	}
	if update.Description != nil {
		g.Description = *update.Description
	}
	if err := s.userGroups.Put(ctx, g.ID, *g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s userService) CreateUser(ctx context.Context, create simplecms.UserCreateStruct, groups []*simplecms.UserGroup) (*simplecms.User, error) {
	if err := s.require(ctx, "content", "create", nil); err != nil {
		return nil, err
	}
	if create.Login == "" {
		return nil, invalid("login", "must not be empty")
	}
	if len(groups) == 0 {
		return nil, invalid("parentGroups", "a user needs at least one group")
	}
	if err := validEmail(create.Email); err != nil {
		return nil, err
	}
	if _, exists, err := s.users.First(ctx, func(u simplecms.User) bool { return u.Login == create.Login }); err != nil {
		return nil, err
	} else if exists {
		return nil, invalid("login", "user %q already exists", create.Login)
	}
	hash, err := s.hashPassword(create.Password)
	if err != nil {
		return nil, err
	}
	groupIDs := make([]int64, 0, len(groups))
	for _, group := range groups {
		g, err := s.loadUserGroup(ctx, group.ID)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(groupIDs, g.ID) {
			groupIDs = append(groupIDs, g.ID)
		}
	}
	if create.RemoteID == "" {
		create.RemoteID = uuid.NewString()
	}

	now := s.now()
	u, err := s.users.Create(ctx, func(id int64) simplecms.User {
		return simplecms.User{
			ID:               id,
			Login:            create.Login,
			Email:            create.Email,
			PasswordHash:     hash,
			Enabled:          create.Enabled,
			MaxLogin:         create.MaxLogin,
			Name:             create.Name,
			RemoteID:         create.RemoteID,
			GroupIDs:         groupIDs,
			CreationDate:     now,
			ModificationDate: now,
		}
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("created user", "user_id", u.ID, "login", u.Login)
	return &u, nil
}

func (s userService) DeleteUser(ctx context.Context, user *simplecms.User) error {
	if err := s.require(ctx, "content", "remove", nil); err != nil {
		return err
	}
	u, err := s.loadUser(ctx, user.ID)
	if err != nil {
		return err
	}
	return s.deleteUser(ctx, u.ID)
}

// deleteUser removes a user and everything kept per user.
func (r *Repository) deleteUser(ctx context.Context, userID int64) error {
	assignments, err := r.roleAssignments.Find(ctx, func(a simplecms.RoleAssignment) bool { return a.UserID == userID })
	if err != nil {
		return err
	}
	for _, a := range assignments {
		if err := r.roleAssignments.Delete(ctx, a.ID); err != nil {
			return err
		}
	}
	bookmarks, err := r.bookmarks.Find(ctx, func(b simplecms.Bookmark) bool { return b.UserID == userID })
	if err != nil {
		return err
	}
	for _, b := range bookmarks {
		if err := r.bookmarks.Delete(ctx, b.ID); err != nil {
			return err
		}
	}
	prefs, err := r.preferences.Find(ctx, func(p simplecms.UserPreference) bool { return p.UserID == userID })
	if err != nil {
		return err
	}
	for _, p := range prefs {
		if err := r.preferences.Delete(ctx, p.ID); err != nil {
			return err
		}
	}
	notifications, err := r.notifications.Find(ctx, func(n simplecms.Notification) bool { return n.OwnerID == userID })
	if err != nil {
		return err
	}
	for _, n := range notifications {
		if err := r.notifications.Delete(ctx, n.ID); err != nil {
			return err
		}
	}
	return r.users.Delete(ctx, userID)
}

func (s userService) UpdateUser(ctx context.Context, user *simplecms.User, update simplecms.UserUpdateStruct) (*simplecms.User, error) {
	if err := s.require(ctx, "content", "edit", nil); err != nil {
		return nil, err
	}
	u, err := s.loadUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if update.Email != nil {
		if err := validEmail(*update.Email); err != nil {
			return nil, err
		}
		u.Email = *update.Email
	}
	if update.Password != nil {
		if u.PasswordHash, err = s.hashPassword(*update.Password); err != nil {
			return nil, err
		}
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Enabled != nil {
		u.Enabled = *update.Enabled
	}
	if update.MaxLogin != nil {
		u.MaxLogin = *update.MaxLogin
	}
	u.ModificationDate = s.now()
	if err := s.users.Put(ctx, u.ID, *u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateUserPassword lets users change their own password with user/password
// and other users' passwords with content/edit.
func (s userService) UpdateUserPassword(ctx context.Context, user *simplecms.User, newPassword string) (*simplecms.User, error) {
	u, err := s.loadUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if ref, ok := simplecms.UserReferenceFrom(ctx); ok && ref.UserID == u.ID {
		err = s.require(ctx, "user", "password", nil)
	} else {
		err = s.require(ctx, "content", "edit", nil)
	}
	if err != nil {
		return nil, err
	}
	if u.PasswordHash, err = s.hashPassword(newPassword); err != nil {
		return nil, err
	}
	u.ModificationDate = s.now()
	if err := s.users.Put(ctx, u.ID, *u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s userService) AssignUserToUserGroup(ctx context.Context, user *simplecms.User, group *simplecms.UserGroup) error {
	if err := s.require(ctx, "content", "edit", nil); err != nil {
		return err
	}
	u, err := s.loadUser(ctx, user.ID)
	if err != nil {
		return err
	}
	g, err := s.loadUserGroup(ctx, group.ID)
	if err != nil {
		return err
	}
	if slices.Contains(u.GroupIDs, g.ID) {
		return invalid("userGroup", "user %d is already in group %d", u.ID, g.ID)
	}
	u.GroupIDs = append(u.GroupIDs, g.ID)
	return s.users.Put(ctx, u.ID, *u)
}

func (s userService) UnassignUserFromUserGroup(ctx context.Context, user *simplecms.User, group *simplecms.UserGroup) error {
	if err := s.require(ctx, "content", "edit", nil); err != nil {
		return err
	}
	u, err := s.loadUser(ctx, user.ID)
	if err != nil {
		return err
	}
	if !slices.Contains(u.GroupIDs, group.ID) {
		return invalid("userGroup", "user %d is not in group %d", u.ID, group.ID)
	}
	if len(u.GroupIDs) == 1 {
		return badState("userGroup", "user %d cannot lose its last group", u.ID)
	}
	u.GroupIDs = slices.DeleteFunc(u.GroupIDs, func(id int64) bool { return id == group.ID })
	return s.users.Put(ctx, u.ID, *u)
}

var _ simplecms.UserService = userService{}
