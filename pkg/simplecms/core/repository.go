// Package core is the reference implementation of the simplecms repository
// services on top of a storage.Store.
//
// Public service methods check permissions through the permission resolver
// and then delegate to unexported helpers that never check permissions
// themselves. Multi step operations are not transactional.
package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/binary"
	"github.com/tendant/simple-cms/pkg/simplecms/fieldtype"
	"github.com/tendant/simple-cms/pkg/simplecms/search"
	"github.com/tendant/simple-cms/pkg/simplecms/storage"
	"golang.org/x/crypto/bcrypt"
)

// Repository implements simplecms.Repository.
type Repository struct {
	store           storage.Store
	engine          search.Engine
	fieldTypes      *fieldtype.Registry
	binary          *binary.Service
	logger          *slog.Logger
	now             func() time.Time
	defaultLanguage string
	anonymousLogin  string
	passwordCost    int

	contentInfos      *storage.Table[simplecms.ContentInfo]
	versions          *storage.Table[versionRecord]
	locations         *storage.Table[simplecms.Location]
	relations         *storage.Table[simplecms.Relation]
	contentTypes      *storage.Table[simplecms.ContentType]
	contentTypeDrafts *storage.Table[simplecms.ContentType]
	contentTypeGroups *storage.Table[simplecms.ContentTypeGroup]
	users             *storage.Table[simplecms.User]
	userGroups        *storage.Table[simplecms.UserGroup]
	roles             *storage.Table[simplecms.Role]
	roleDrafts        *storage.Table[simplecms.RoleDraft]
	roleAssignments   *storage.Table[simplecms.RoleAssignment]
	trash             *storage.Table[simplecms.TrashItem]
	urls              *storage.Table[simplecms.URL]
	urlUsages         *storage.Table[urlUsage]
	notifications     *storage.Table[simplecms.Notification]
	stateGroups       *storage.Table[simplecms.ObjectStateGroup]
	states            *storage.Table[simplecms.ObjectState]
	contentStates     *storage.Table[contentStates]
	sections          *storage.Table[simplecms.Section]
	languages         *storage.Table[simplecms.Language]
	aliases           *storage.Table[simplecms.URLAlias]
	wildcards         *storage.Table[simplecms.URLWildcard]
	bookmarks         *storage.Table[simplecms.Bookmark]
	preferences       *storage.Table[simplecms.UserPreference]
}

// Option configures a Repository.
type Option func(*Repository)

// WithStore sets the document store. It is required.
func WithStore(store storage.Store) Option {
	return func(r *Repository) { r.store = store }
}

// WithSearchEngine replaces the default predicate engine, which keeps its
// documents in the repository store.
func WithSearchEngine(engine search.Engine) Option {
	return func(r *Repository) { r.engine = engine }
}

// WithFieldTypes replaces the default field type registry.
func WithFieldTypes(registry *fieldtype.Registry) Option {
	return func(r *Repository) { r.fieldTypes = registry }
}

// WithBinaryService enables removal of stored files when the content
// referencing them is deleted.
func WithBinaryService(service *binary.Service) Option {
	return func(r *Repository) { r.binary = service }
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) { r.logger = logger }
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithDefaultLanguage sets the language used when none is given. The
// default is eng-GB.
func WithDefaultLanguage(code string) Option {
	return func(r *Repository) { r.defaultLanguage = code }
}

// WithAnonymousLogin names the user whose roles apply to calls without a
// user on the context. The default is "anonymous".
func WithAnonymousLogin(login string) Option {
	return func(r *Repository) { r.anonymousLogin = login }
}

// WithPasswordCost sets the bcrypt cost of password hashes.
func WithPasswordCost(cost int) Option {
	return func(r *Repository) { r.passwordCost = cost }
}

// New creates a repository and makes sure the root location exists.
func New(options ...Option) (*Repository, error) {
	r := &Repository{
		logger:          slog.Default(),
		now:             func() time.Time { return time.Now().UTC() },
		defaultLanguage: "eng-GB",
		anonymousLogin:  "anonymous",
		passwordCost:    bcrypt.DefaultCost,
	}
	for _, option := range options {
		option(r)
	}

	if r.store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if r.engine == nil {
		r.engine = search.NewPredicateEngine(r.store)
	}
	if r.fieldTypes == nil {
		r.fieldTypes = fieldtype.Default()
	}

	r.contentInfos = storage.NewTable[simplecms.ContentInfo](r.store, "content_info")
	r.versions = storage.NewTable[versionRecord](r.store, "content_version")
	r.locations = storage.NewTable[simplecms.Location](r.store, "location")
	r.relations = storage.NewTable[simplecms.Relation](r.store, "relation")
	r.contentTypes = storage.NewTable[simplecms.ContentType](r.store, "content_type")
	r.contentTypeDrafts = storage.NewTable[simplecms.ContentType](r.store, "content_type_draft")
	r.contentTypeGroups = storage.NewTable[simplecms.ContentTypeGroup](r.store, "content_type_group")
	r.users = storage.NewTable[simplecms.User](r.store, "user")
	r.userGroups = storage.NewTable[simplecms.UserGroup](r.store, "user_group")
	r.roles = storage.NewTable[simplecms.Role](r.store, "role")
	r.roleDrafts = storage.NewTable[simplecms.RoleDraft](r.store, "role_draft")
	r.roleAssignments = storage.NewTable[simplecms.RoleAssignment](r.store, "role_assignment")
	r.trash = storage.NewTable[simplecms.TrashItem](r.store, "trash")
	r.urls = storage.NewTable[simplecms.URL](r.store, "url")
	r.urlUsages = storage.NewTable[urlUsage](r.store, "url_usage")
	r.notifications = storage.NewTable[simplecms.Notification](r.store, "notification")
	r.stateGroups = storage.NewTable[simplecms.ObjectStateGroup](r.store, "object_state_group")
	r.states = storage.NewTable[simplecms.ObjectState](r.store, "object_state")
	r.contentStates = storage.NewTable[contentStates](r.store, "content_state")
	r.sections = storage.NewTable[simplecms.Section](r.store, "section")
	r.languages = storage.NewTable[simplecms.Language](r.store, "language")
	r.aliases = storage.NewTable[simplecms.URLAlias](r.store, "url_alias")
	r.wildcards = storage.NewTable[simplecms.URLWildcard](r.store, "url_wildcard")
	r.bookmarks = storage.NewTable[simplecms.Bookmark](r.store, "bookmark")
	r.preferences = storage.NewTable[simplecms.UserPreference](r.store, "user_preference")

	if err := r.ensureRoot(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Repository) ensureRoot(ctx context.Context) error {
	_, err := r.locations.Get(ctx, simplecms.RootLocationID)
	if err == nil {
		return nil
	}
	if !storage.IsNotFound(err) {
		return fmt.Errorf("load root location: %w", err)
	}
	root := simplecms.Location{
		ID:         simplecms.RootLocationID,
		PathString: "/1/",
		RemoteID:   "root",
		SortField:  simplecms.SortFieldPath,
		SortOrder:  simplecms.SortAscending,
	}
	if err := r.locations.Put(ctx, root.ID, root); err != nil {
		return fmt.Errorf("create root location: %w", err)
	}
	return nil
}

func (r *Repository) ContentService() simplecms.ContentService { return contentService{r} }
func (r *Repository) ContentTypeService() simplecms.ContentTypeService {
	return contentTypeService{r}
}
func (r *Repository) LocationService() simplecms.LocationService { return locationService{r} }
func (r *Repository) UserService() simplecms.UserService         { return userService{r} }
func (r *Repository) RoleService() simplecms.RoleService         { return roleService{r} }
func (r *Repository) PermissionResolver() simplecms.PermissionResolver {
	return permissionResolver{r}
}
func (r *Repository) TrashService() simplecms.TrashService { return trashService{r} }
func (r *Repository) URLService() simplecms.URLService     { return urlService{r} }
func (r *Repository) NotificationService() simplecms.NotificationService {
	return notificationService{r}
}
func (r *Repository) ObjectStateService() simplecms.ObjectStateService {
	return objectStateService{r}
}
func (r *Repository) SectionService() simplecms.SectionService   { return sectionService{r} }
func (r *Repository) LanguageService() simplecms.LanguageService { return languageService{r} }
func (r *Repository) URLAliasService() simplecms.URLAliasService { return urlAliasService{r} }
func (r *Repository) URLWildcardService() simplecms.URLWildcardService {
	return urlWildcardService{r}
}
func (r *Repository) BookmarkService() simplecms.BookmarkService { return bookmarkService{r} }
func (r *Repository) UserPreferenceService() simplecms.UserPreferenceService {
	return userPreferenceService{r}
}
func (r *Repository) SearchService() simplecms.SearchService { return searchService{r} }

// Reindex rebuilds the search document of every content item.
func (r *Repository) Reindex(ctx context.Context) error {
	infos, err := r.contentInfos.All(ctx)
	if err != nil {
		return err
	}
	for i := range infos {
		if err := r.reindex(ctx, infos[i].ID); err != nil {
			return err
		}
	}
	r.logger.Info("reindexed content", "count", len(infos))
	return nil
}

// notFound converts a storage miss into a NotFoundError.
func notFound(err error, what string, identifier any) error {
	if storage.IsNotFound(err) {
		return &simplecms.NotFoundError{What: what, Identifier: identifier}
	}
	return err
}

// require fails with an UnauthorizedError unless the current user may run
// module/function on object.
func (r *Repository) require(ctx context.Context, module, function string, object any, targets ...any) error {
	ok, err := r.canUser(ctx, module, function, object, targets...)
	if err != nil {
		return err
	}
	if !ok {
		return unauthorized(module, function, object)
	}
	return nil
}

func unauthorized(module, function string, object any) error {
	e := &simplecms.UnauthorizedError{Module: module, Function: function}
	switch o := object.(type) {
	case *simplecms.ContentInfo:
		e.Properties = map[string]any{"contentId": o.ID}
	case *simplecms.Content:
		e.Properties = map[string]any{"contentId": o.ID()}
	case *simplecms.VersionInfo:
		e.Properties = map[string]any{"contentId": o.ContentID, "versionNo": o.VersionNo}
	case *simplecms.Location:
		e.Properties = map[string]any{"locationId": o.ID}
	case *simplecms.TrashItem:
		e.Properties = map[string]any{"locationId": o.ID}
	case *simplecms.Section:
		e.Properties = map[string]any{"sectionId": o.ID}
	}
	return e
}

// currentUserID returns the user on the context, or the anonymous user.
func (r *Repository) currentUserID(ctx context.Context) int64 {
	if ref, ok := simplecms.UserReferenceFrom(ctx); ok {
		return ref.UserID
	}
	u, ok, err := r.users.First(ctx, func(u simplecms.User) bool { return u.Login == r.anonymousLogin })
	if err != nil || !ok {
		return 0
	}
	return u.ID
}

func (r *Repository) language(code string) string {
	if code == "" {
		return r.defaultLanguage
	}
	return code
}

// window returns the slice bounds of a page. A limit of zero or less
// selects everything after offset.
func window(total, offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := total
	if limit > 0 && limit < total-offset {
		end = offset + limit
	}
	return offset, end
}

func pageOf[T any](items []T, offset, limit int) []T {
	start, end := window(len(items), offset, limit)
	return items[start:end]
}

func ptrs[T any](items []T) []*T {
	out := make([]*T, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out
}

func invalid(argument, format string, args ...any) error {
	return &simplecms.InvalidArgumentError{Argument: argument, Reason: fmt.Sprintf(format, args...)}
}

func badState(argument, format string, args ...any) error {
	return &simplecms.BadStateError{Argument: argument, Reason: fmt.Sprintf(format, args...)}
}

func isNotFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound) || errors.Is(err, simplecms.ErrNotFound)
}

var _ simplecms.Repository = (*Repository)(nil)
