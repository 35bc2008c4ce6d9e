package event_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/event"
)

type decoratedMethod struct {
	service, method string
	before, after   string
}

var decoratedMethods = []decoratedMethod{
	{"ContentService", "CreateContent", event.BeforeCreateContent, event.CreateContent},
	{"ContentService", "UpdateContentMetadata", event.BeforeUpdateContentMetadata, event.UpdateContentMetadata},
	{"ContentService", "DeleteContent", event.BeforeDeleteContent, event.DeleteContent},
	{"ContentService", "CreateContentDraft", event.BeforeCreateContentDraft, event.CreateContentDraft},
	{"ContentService", "UpdateContent", event.BeforeUpdateContent, event.UpdateContent},
	{"ContentService", "PublishVersion", event.BeforePublishVersion, event.PublishVersion},
	{"ContentService", "DeleteVersion", event.BeforeDeleteVersion, event.DeleteVersion},
	{"ContentService", "CopyContent", event.BeforeCopyContent, event.CopyContent},
	{"ContentService", "AddRelation", event.BeforeAddRelation, event.AddRelation},
	{"ContentService", "DeleteRelation", event.BeforeDeleteRelation, event.DeleteRelation},
	{"ContentService", "DeleteTranslation", event.BeforeDeleteTranslation, event.DeleteTranslation},
	{"ContentService", "HideContent", event.BeforeHideContent, event.HideContent},
	{"ContentService", "RevealContent", event.BeforeRevealContent, event.RevealContent},
	{"ContentTypeService", "CreateContentTypeGroup", event.BeforeCreateContentTypeGroup, event.CreateContentTypeGroup},
	{"ContentTypeService", "UpdateContentTypeGroup", event.BeforeUpdateContentTypeGroup, event.UpdateContentTypeGroup},
	{"ContentTypeService", "DeleteContentTypeGroup", event.BeforeDeleteContentTypeGroup, event.DeleteContentTypeGroup},
	{"ContentTypeService", "CreateContentType", event.BeforeCreateContentType, event.CreateContentType},
	{"ContentTypeService", "CreateContentTypeDraft", event.BeforeCreateContentTypeDraft, event.CreateContentTypeDraft},
	{"ContentTypeService", "UpdateContentTypeDraft", event.BeforeUpdateContentTypeDraft, event.UpdateContentTypeDraft},
	{"ContentTypeService", "DeleteContentType", event.BeforeDeleteContentType, event.DeleteContentType},
	{"ContentTypeService", "CopyContentType", event.BeforeCopyContentType, event.CopyContentType},
	{"ContentTypeService", "AssignContentTypeGroup", event.BeforeAssignContentTypeGroup, event.AssignContentTypeGroup},
	{"ContentTypeService", "UnassignContentTypeGroup", event.BeforeUnassignContentTypeGroup, event.UnassignContentTypeGroup},
	{"ContentTypeService", "AddFieldDefinition", event.BeforeAddFieldDefinition, event.AddFieldDefinition},
	{"ContentTypeService", "RemoveFieldDefinition", event.BeforeRemoveFieldDefinition, event.RemoveFieldDefinition},
	{"ContentTypeService", "UpdateFieldDefinition", event.BeforeUpdateFieldDefinition, event.UpdateFieldDefinition},
	{"ContentTypeService", "PublishContentTypeDraft", event.BeforePublishContentTypeDraft, event.PublishContentTypeDraft},
	{"ContentTypeService", "DeleteContentTypeDraft", event.BeforeDeleteContentTypeDraft, event.DeleteContentTypeDraft},
	{"LocationService", "CreateLocation", event.BeforeCreateLocation, event.CreateLocation},
	{"LocationService", "UpdateLocation", event.BeforeUpdateLocation, event.UpdateLocation},
	{"LocationService", "SwapLocation", event.BeforeSwapLocation, event.SwapLocation},
	{"LocationService", "HideLocation", event.BeforeHideLocation, event.HideLocation},
	{"LocationService", "UnhideLocation", event.BeforeUnhideLocation, event.UnhideLocation},
	{"LocationService", "MoveSubtree", event.BeforeMoveSubtree, event.MoveSubtree},
	{"LocationService", "DeleteLocation", event.BeforeDeleteLocation, event.DeleteLocation},
	{"LocationService", "CopySubtree", event.BeforeCopySubtree, event.CopySubtree},
	{"UserService", "CreateUserGroup", event.BeforeCreateUserGroup, event.CreateUserGroup},
	{"UserService", "DeleteUserGroup", event.BeforeDeleteUserGroup, event.DeleteUserGroup},
	{"UserService", "MoveUserGroup", event.BeforeMoveUserGroup, event.MoveUserGroup},
	{"UserService", "UpdateUserGroup", event.BeforeUpdateUserGroup, event.UpdateUserGroup},
	{"UserService", "CreateUser", event.BeforeCreateUser, event.CreateUser},
	{"UserService", "DeleteUser", event.BeforeDeleteUser, event.DeleteUser},
	{"UserService", "UpdateUser", event.BeforeUpdateUser, event.UpdateUser},
	{"UserService", "UpdateUserPassword", event.BeforeUpdateUserPassword, event.UpdateUserPassword},
	{"UserService", "AssignUserToUserGroup", event.BeforeAssignUserToUserGroup, event.AssignUserToUserGroup},
	{"UserService", "UnassignUserFromUserGroup", event.BeforeUnassignUserFromUserGroup, event.UnassignUserFromUserGroup},
	{"RoleService", "CreateRole", event.BeforeCreateRole, event.CreateRole},
	{"RoleService", "CreateRoleDraft", event.BeforeCreateRoleDraft, event.CreateRoleDraft},
	{"RoleService", "UpdateRoleDraft", event.BeforeUpdateRoleDraft, event.UpdateRoleDraft},
	{"RoleService", "AddPolicyByRoleDraft", event.BeforeAddPolicyByRoleDraft, event.AddPolicyByRoleDraft},
	{"RoleService", "RemovePolicyByRoleDraft", event.BeforeRemovePolicyByRoleDraft, event.RemovePolicyByRoleDraft},
	{"RoleService", "UpdatePolicyByRoleDraft", event.BeforeUpdatePolicyByRoleDraft, event.UpdatePolicyByRoleDraft},
	{"RoleService", "DeleteRoleDraft", event.BeforeDeleteRoleDraft, event.DeleteRoleDraft},
	{"RoleService", "PublishRoleDraft", event.BeforePublishRoleDraft, event.PublishRoleDraft},
	{"RoleService", "DeleteRole", event.BeforeDeleteRole, event.DeleteRole},
	{"RoleService", "AssignRoleToUserGroup", event.BeforeAssignRoleToUserGroup, event.AssignRoleToUserGroup},
	{"RoleService", "AssignRoleToUser", event.BeforeAssignRoleToUser, event.AssignRoleToUser},
	{"RoleService", "RemoveRoleAssignment", event.BeforeRemoveRoleAssignment, event.RemoveRoleAssignment},
	{"TrashService", "Trash", event.BeforeTrash, event.Trash},
	{"TrashService", "Recover", event.BeforeRecover, event.Recover},
	{"TrashService", "EmptyTrash", event.BeforeEmptyTrash, event.EmptyTrash},
	{"TrashService", "DeleteTrashItem", event.BeforeDeleteTrashItem, event.DeleteTrashItem},
	{"URLService", "UpdateURL", event.BeforeUpdateURL, event.UpdateURL},
	{"NotificationService", "MarkNotificationAsRead", event.BeforeMarkNotificationAsRead, event.MarkNotificationAsRead},
	{"NotificationService", "CreateNotification", event.BeforeCreateNotification, event.CreateNotification},
	{"NotificationService", "DeleteNotification", event.BeforeDeleteNotification, event.DeleteNotification},
	{"ObjectStateService", "CreateObjectStateGroup", event.BeforeCreateObjectStateGroup, event.CreateObjectStateGroup},
	{"ObjectStateService", "UpdateObjectStateGroup", event.BeforeUpdateObjectStateGroup, event.UpdateObjectStateGroup},
	{"ObjectStateService", "DeleteObjectStateGroup", event.BeforeDeleteObjectStateGroup, event.DeleteObjectStateGroup},
	{"ObjectStateService", "CreateObjectState", event.BeforeCreateObjectState, event.CreateObjectState},
	{"ObjectStateService", "UpdateObjectState", event.BeforeUpdateObjectState, event.UpdateObjectState},
	{"ObjectStateService", "SetPriorityOfObjectState", event.BeforeSetPriorityOfObjectState, event.SetPriorityOfObjectState},
	{"ObjectStateService", "DeleteObjectState", event.BeforeDeleteObjectState, event.DeleteObjectState},
	{"ObjectStateService", "SetContentState", event.BeforeSetContentState, event.SetContentState},
	{"SectionService", "CreateSection", event.BeforeCreateSection, event.CreateSection},
	{"SectionService", "UpdateSection", event.BeforeUpdateSection, event.UpdateSection},
	{"SectionService", "AssignSection", event.BeforeAssignSection, event.AssignSection},
	{"SectionService", "AssignSectionToSubtree", event.BeforeAssignSectionToSubtree, event.AssignSectionToSubtree},
	{"SectionService", "DeleteSection", event.BeforeDeleteSection, event.DeleteSection},
	{"LanguageService", "CreateLanguage", event.BeforeCreateLanguage, event.CreateLanguage},
	{"LanguageService", "UpdateLanguageName", event.BeforeUpdateLanguageName, event.UpdateLanguageName},
	{"LanguageService", "EnableLanguage", event.BeforeEnableLanguage, event.EnableLanguage},
	{"LanguageService", "DisableLanguage", event.BeforeDisableLanguage, event.DisableLanguage},
	{"LanguageService", "DeleteLanguage", event.BeforeDeleteLanguage, event.DeleteLanguage},
	{"URLAliasService", "CreateURLAlias", event.BeforeCreateURLAlias, event.CreateURLAlias},
	{"URLAliasService", "CreateGlobalURLAlias", event.BeforeCreateGlobalURLAlias, event.CreateGlobalURLAlias},
	{"URLAliasService", "RemoveAliases", event.BeforeRemoveAliases, event.RemoveAliases},
	{"URLAliasService", "RefreshSystemURLAliasesForLocation", event.BeforeRefreshSystemURLAliasesForLocation, event.RefreshSystemURLAliasesForLocation},
	{"URLWildcardService", "Create", event.BeforeCreateURLWildcard, event.CreateURLWildcard},
	{"URLWildcardService", "Update", event.BeforeUpdateURLWildcard, event.UpdateURLWildcard},
	{"URLWildcardService", "Remove", event.BeforeRemoveURLWildcard, event.RemoveURLWildcard},
	{"BookmarkService", "CreateBookmark", event.BeforeCreateBookmark, event.CreateBookmark},
	{"BookmarkService", "DeleteBookmark", event.BeforeDeleteBookmark, event.DeleteBookmark},
	{"UserPreferenceService", "SetUserPreference", event.BeforeSetUserPreference, event.SetUserPreference},
}

type invocation struct {
	args   []any
	result any
	err    error
}

// invoke calls the method on the service of repo with sample arguments.
func (m decoratedMethod) invoke(repo simplecms.Repository) invocation {
	service := reflect.ValueOf(repo).MethodByName(m.service).Call(nil)[0]
	fn := service.MethodByName(m.method)

	var inv invocation
	in := []reflect.Value{reflect.ValueOf(context.Background())}
	for i := 1; i < fn.Type().NumIn(); i++ {
		arg := sample(fn.Type().In(i), i)
		in = append(in, arg)
		inv.args = append(inv.args, arg.Interface())
	}
	out := fn.Call(in)
	if err := out[len(out)-1]; !err.IsNil() {
		inv.err = err.Interface().(error)
	}
	if len(out) == 2 {
		inv.result = out[0].Interface()
	}
	return inv
}

func (m decoratedMethod) returnsValue() bool {
	service, _ := reflect.TypeFor[simplecms.Repository]().MethodByName(m.service)
	fn, _ := service.Type.Out(0).MethodByName(m.method)
	return fn.Type.NumOut() == 2
}

// sample returns a non-zero value of t. Pointers and slices are freshly
// allocated so they can be told apart by identity.
func sample(t reflect.Type, seed int) reflect.Value {
	switch t.Kind() {
	case reflect.Pointer:
		return reflect.New(t.Elem())
	case reflect.Slice:
		s := reflect.MakeSlice(t, 1, 1)
		s.Index(0).Set(sample(t.Elem(), seed))
		return s
	case reflect.String:
		return reflect.ValueOf(fmt.Sprintf("value-%d", seed)).Convert(t)
	case reflect.Int, reflect.Int64:
		return reflect.ValueOf(seed).Convert(t)
	case reflect.Bool:
		return reflect.ValueOf(true).Convert(t)
	}
	return reflect.New(t).Elem()
}

// changed returns a value of the same type as v that differs from it.
func changed(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Pointer:
		p := reflect.New(v.Type().Elem())
		if !v.IsNil() {
			p.Elem().Set(changed(v.Elem()))
		}
		return p
	case reflect.Slice:
		s := reflect.AppendSlice(reflect.MakeSlice(v.Type(), 0, v.Len()+1), v)
		return reflect.Append(s, sample(v.Type().Elem(), v.Len()+1))
	case reflect.String:
		return reflect.ValueOf(v.String() + "-changed").Convert(v.Type())
	case reflect.Int, reflect.Int64:
		return reflect.ValueOf(v.Int() + 100).Convert(v.Type())
	case reflect.Bool:
		return reflect.ValueOf(!v.Bool()).Convert(v.Type())
	case reflect.Struct:
		c := reflect.New(v.Type()).Elem()
		c.Set(v)
		if f, ok := firstField(c, reflect.String, reflect.Int, reflect.Int64, reflect.Bool, reflect.Pointer, reflect.Slice); ok {
			f.Set(changed(f))
		}
		return c
	}
	return v
}

// firstField returns the first settable field of s, trying kinds in order.
func firstField(s reflect.Value, kinds ...reflect.Kind) (reflect.Value, bool) {
	for _, kind := range kinds {
		for i := 0; i < s.NumField(); i++ {
			if f := s.Field(i); f.CanSet() && f.Kind() == kind {
				return f, true
			}
		}
	}
	return reflect.Value{}, false
}

// eventArgs returns the argument fields of e in declaration order and its
// Result field, if any.
func eventArgs(e event.Event) (args []any, result any, hasResult bool) {
	v := reflect.ValueOf(e).Elem()
	for i := 0; i < v.NumField(); i++ {
		switch f := v.Type().Field(i); {
		case f.Anonymous:
		case f.Name == "Result":
			result, hasResult = v.Field(i).Interface(), true
		default:
			args = append(args, v.Field(i).Interface())
		}
	}
	return args, result, hasResult
}

// changeArgs replaces every argument field of a before event.
func changeArgs(e event.Event) []any {
	v := reflect.ValueOf(e).Elem()
	var args []any
	for i := 0; i < v.NumField(); i++ {
		if v.Type().Field(i).Anonymous {
			continue
		}
		f := v.Field(i)
		f.Set(changed(f))
		args = append(args, f.Interface())
	}
	return args
}

// assertArg compares pointers and slices by identity and anything else by
// value.
func assertArg(t *testing.T, want, got any, msgAndArgs ...any) {
	t.Helper()
	w, g := reflect.ValueOf(want), reflect.ValueOf(got)
	require.Equal(t, w.Type(), g.Type(), msgAndArgs...)
	switch w.Kind() {
	case reflect.Pointer, reflect.Slice:
		assert.Equal(t, w.Pointer(), g.Pointer(), msgAndArgs...)
	default:
		assert.Equal(t, want, got, msgAndArgs...)
	}
}

func assertArgs(t *testing.T, want, got []any) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assertArg(t, want[i], got[i], "argument %d", i)
	}
}

func stop(e event.Event) {
	e.(interface{ StopPropagation() }).StopPropagation()
}

func setResult(e event.Event) any {
	set := reflect.ValueOf(e).MethodByName("SetResult")
	if !set.IsValid() {
		return nil
	}
	v := sample(set.Type().In(0), 99)
	set.Call([]reflect.Value{v})
	return v.Interface()
}

func TestDecoratedMethods(t *testing.T) {
	require.Len(t, decoratedMethods, len(event.AfterEvents))

	for _, m := range decoratedMethods {
		t.Run(m.service+"."+m.method, func(t *testing.T) {
			require.Contains(t, event.AfterEvents, m.after)

			t.Run("BeforeInnerAfter", func(t *testing.T) {
				rec := &recorder{}
				bus := event.NewBus()
				var names []string
				var after event.Event
				bus.AddListener(m.before, func(_ context.Context, e event.Event) error {
					names = append(names, e.EventName())
					return nil
				}, 0)
				bus.AddListener(m.after, func(_ context.Context, e event.Event) error {
					names = append(names, e.EventName())
					after = e
					return nil
				}, 0)

				inv := m.invoke(event.Decorate(&recordingRepository{rec: rec}, bus))
				require.NoError(t, inv.err)
				assert.Equal(t, []string{m.before, m.after}, names)
				require.Len(t, rec.calls, 1)
				assert.Equal(t, m.method, rec.calls[0].method)
				assertArgs(t, inv.args, rec.calls[0].args)

				require.NotNil(t, after)
				afterArgs, afterResult, hasResult := eventArgs(after)
				assertArgs(t, inv.args, afterArgs)
				require.Equal(t, m.returnsValue(), hasResult)
				if hasResult {
					assertArg(t, rec.result, inv.result, "returned value")
					assertArg(t, rec.result, afterResult, "after event result")
				}
			})

			t.Run("ListenerChangesArguments", func(t *testing.T) {
				rec := &recorder{}
				bus := event.NewBus()
				var want []any
				var after event.Event
				bus.AddListener(m.before, func(_ context.Context, e event.Event) error {
					want = changeArgs(e)
					return nil
				}, 0)
				bus.AddListener(m.after, func(_ context.Context, e event.Event) error {
					after = e
					return nil
				}, 0)

				inv := m.invoke(event.Decorate(&recordingRepository{rec: rec}, bus))
				require.NoError(t, inv.err)
				require.Len(t, rec.calls, 1)
				assertArgs(t, want, rec.calls[0].args)
				require.NotNil(t, after)
				afterArgs, _, _ := eventArgs(after)
				assertArgs(t, want, afterArgs)
			})

			t.Run("Stopped", func(t *testing.T) {
				rec := &recorder{}
				bus := event.NewBus()
				bus.AddListener(m.before, func(_ context.Context, e event.Event) error {
					stop(e)
					return nil
				}, 0)
				bus.AddListener(m.after, func(context.Context, event.Event) error {
					t.Error("after event dispatched")
					return nil
				}, 0)

				inv := m.invoke(event.Decorate(&recordingRepository{rec: rec}, bus))
				assert.Empty(t, rec.calls)
				if m.returnsValue() {
					assert.ErrorIs(t, inv.err, event.ErrNoResult)
				} else {
					assert.NoError(t, inv.err)
				}
			})

			t.Run("StoppedWithResult", func(t *testing.T) {
				if !m.returnsValue() {
					t.Skip("no result")
				}
				rec := &recorder{}
				bus := event.NewBus()
				var override any
				bus.AddListener(m.before, func(_ context.Context, e event.Event) error {
					override = setResult(e)
					stop(e)
					return nil
				}, 0)

				inv := m.invoke(event.Decorate(&recordingRepository{rec: rec}, bus))
				require.NoError(t, inv.err)
				require.NotNil(t, override)
				assertArg(t, override, inv.result)
				assert.Empty(t, rec.calls)
			})

			t.Run("ResultWithoutStop", func(t *testing.T) {
				if !m.returnsValue() {
					t.Skip("no result")
				}
				rec := &recorder{}
				bus := event.NewBus()
				var override any
				var after event.Event
				bus.AddListener(m.before, func(_ context.Context, e event.Event) error {
					override = setResult(e)
					return nil
				}, 0)
				bus.AddListener(m.after, func(_ context.Context, e event.Event) error {
					after = e
					return nil
				}, 0)

				inv := m.invoke(event.Decorate(&recordingRepository{rec: rec}, bus))
				require.NoError(t, inv.err)
				assertArg(t, override, inv.result)
				assert.Empty(t, rec.calls)
				require.NotNil(t, after)
				_, afterResult, _ := eventArgs(after)
				assertArg(t, override, afterResult)
			})

			t.Run("ListenerError", func(t *testing.T) {
				veto := errors.New("veto")
				rec := &recorder{}
				bus := event.NewBus()
				bus.AddListener(m.before, func(context.Context, event.Event) error { return veto }, 0)

				inv := m.invoke(event.Decorate(&recordingRepository{rec: rec}, bus))
				assert.ErrorIs(t, inv.err, veto)
				assert.Empty(t, rec.calls)
			})
		})
	}
}
