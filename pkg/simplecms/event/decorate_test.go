package event_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/event"
)

// fakeContentService records calls and returns canned values.
type fakeContentService struct {
	simplecms.ContentService

	calls   []string
	created *simplecms.Content
	err     error
}

func (f *fakeContentService) CreateContent(_ context.Context, create simplecms.ContentCreateStruct, _ []simplecms.LocationCreateStruct) (*simplecms.Content, error) {
	f.calls = append(f.calls, "create:"+create.RemoteID)
	if f.err != nil {
		return nil, f.err
	}
	return f.created, nil
}

func (f *fakeContentService) HideContent(_ context.Context, info *simplecms.ContentInfo) error {
	f.calls = append(f.calls, "hide")
	return f.err
}

func (f *fakeContentService) LoadContentInfo(_ context.Context, id int64) (*simplecms.ContentInfo, error) {
	f.calls = append(f.calls, "load")
	return &simplecms.ContentInfo{ID: id}, nil
}

type eventLog struct{ names []string }

func (tr *eventLog) listen(bus *event.Bus, names ...string) {
	for _, name := range names {
		bus.AddListener(name, func(_ context.Context, e event.Event) error {
			tr.names = append(tr.names, e.EventName())
			return nil
		}, 0)
	}
}

func content(id int64) *simplecms.Content {
	return &simplecms.Content{VersionInfo: &simplecms.VersionInfo{VersionNo: 1, ContentInfo: &simplecms.ContentInfo{ID: id}}}
}

func TestContentService_CreateContent(t *testing.T) {
	ctx := context.Background()
	create := simplecms.ContentCreateStruct{RemoteID: "abc"}

	t.Run("BeforeInnerAfter", func(t *testing.T) {
		inner := &fakeContentService{created: content(1)}
		bus := event.NewBus()
		tr := &eventLog{}
		tr.listen(bus, event.BeforeCreateContent, event.CreateContent)
		var after *event.CreateContentEvent
		event.Listen(bus, -1, func(_ context.Context, e *event.CreateContentEvent) error {
			after = e
			return nil
		})

		got, err := event.NewContentService(inner, bus).CreateContent(ctx, create, nil)
		require.NoError(t, err)
		assert.Same(t, inner.created, got)
		assert.Equal(t, []string{"create:abc"}, inner.calls)
		assert.Equal(t, []string{event.BeforeCreateContent, event.CreateContent}, tr.names)
		require.NotNil(t, after)
		assert.Same(t, got, after.Result)
		assert.Equal(t, "abc", after.Create.RemoteID)
	})

	t.Run("StoppedWithResult", func(t *testing.T) {
		inner := &fakeContentService{created: content(1)}
		override := content(99)
		bus := event.NewBus()
		tr := &eventLog{}
		tr.listen(bus, event.CreateContent)
		event.Listen(bus, 0, func(_ context.Context, e *event.BeforeCreateContentEvent) error {
			e.SetResult(override)
			e.StopPropagation()
			return nil
		})

		got, err := event.NewContentService(inner, bus).CreateContent(ctx, create, nil)
		require.NoError(t, err)
		assert.Same(t, override, got)
		assert.Empty(t, inner.calls)
		assert.Empty(t, tr.names)
	})

	t.Run("StoppedWithoutResult", func(t *testing.T) {
		inner := &fakeContentService{created: content(1)}
		bus := event.NewBus()
		event.Listen(bus, 0, func(_ context.Context, e *event.BeforeCreateContentEvent) error {
			e.StopPropagation()
			return nil
		})

		_, err := event.NewContentService(inner, bus).CreateContent(ctx, create, nil)
		assert.ErrorIs(t, err, event.ErrNoResult)
		assert.Empty(t, inner.calls)
	})

	t.Run("ResultWithoutStopSkipsInner", func(t *testing.T) {
		inner := &fakeContentService{created: content(1)}
		override := content(7)
		bus := event.NewBus()
		event.Listen(bus, 0, func(_ context.Context, e *event.BeforeCreateContentEvent) error {
			e.SetResult(override)
			return nil
		})
		var after *event.CreateContentEvent
		event.Listen(bus, 0, func(_ context.Context, e *event.CreateContentEvent) error {
			after = e
			return nil
		})

		got, err := event.NewContentService(inner, bus).CreateContent(ctx, create, nil)
		require.NoError(t, err)
		assert.Same(t, override, got)
		assert.Empty(t, inner.calls)
		require.NotNil(t, after)
		assert.Same(t, override, after.Result)
	})

	t.Run("ListenerRewritesArguments", func(t *testing.T) {
		inner := &fakeContentService{created: content(1)}
		bus := event.NewBus()
		event.Listen(bus, 0, func(_ context.Context, e *event.BeforeCreateContentEvent) error {
			e.Create.RemoteID = "rewritten"
			return nil
		})

		_, err := event.NewContentService(inner, bus).CreateContent(ctx, create, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"create:rewritten"}, inner.calls)
	})

	t.Run("InnerErrorSkipsAfter", func(t *testing.T) {
		denied := &simplecms.UnauthorizedError{Module: "content", Function: "create"}
		inner := &fakeContentService{err: denied}
		bus := event.NewBus()
		tr := &eventLog{}
		tr.listen(bus, event.BeforeCreateContent, event.CreateContent)

		_, err := event.NewContentService(inner, bus).CreateContent(ctx, create, nil)
		assert.Same(t, denied, err)
		assert.Equal(t, []string{event.BeforeCreateContent}, tr.names)
	})

	t.Run("BeforeListenerErrorSkipsInner", func(t *testing.T) {
		boom := errors.New("veto")
		inner := &fakeContentService{created: content(1)}
		bus := event.NewBus()
		bus.AddListener(event.BeforeCreateContent, func(context.Context, event.Event) error { return boom }, 0)

		_, err := event.NewContentService(inner, bus).CreateContent(ctx, create, nil)
		assert.ErrorIs(t, err, boom)
		assert.Empty(t, inner.calls)
	})
}

func TestContentService_HideContent(t *testing.T) {
	ctx := context.Background()
	info := &simplecms.ContentInfo{ID: 3}

	t.Run("Dispatches", func(t *testing.T) {
		inner := &fakeContentService{}
		bus := event.NewBus()
		var after *event.HideContentEvent
		event.Listen(bus, 0, func(_ context.Context, e *event.HideContentEvent) error {
			after = e
			return nil
		})

		require.NoError(t, event.NewContentService(inner, bus).HideContent(ctx, info))
		assert.Equal(t, []string{"hide"}, inner.calls)
		require.NotNil(t, after)
		assert.Same(t, info, after.ContentInfo)
	})

	t.Run("Stopped", func(t *testing.T) {
		inner := &fakeContentService{}
		bus := event.NewBus()
		tr := &eventLog{}
		tr.listen(bus, event.HideContent)
		event.Listen(bus, 0, func(_ context.Context, e *event.BeforeHideContentEvent) error {
			e.StopPropagation()
			return nil
		})

		require.NoError(t, event.NewContentService(inner, bus).HideContent(ctx, info))
		assert.Empty(t, inner.calls)
		assert.Empty(t, tr.names)
	})
}

func TestContentService_ReadsPassThrough(t *testing.T) {
	inner := &fakeContentService{}
	bus := event.NewBus()
	bus.AddListener(event.BeforeCreateContent, func(context.Context, event.Event) error {
		t.Fatal("read method dispatched an event")
		return nil
	}, 0)

	info, err := event.NewContentService(inner, bus).LoadContentInfo(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.ID)
	assert.Equal(t, []string{"load"}, inner.calls)
}

type fakeRepository struct {
	simplecms.Repository
	content *fakeContentService
}

func (r *fakeRepository) ContentService() simplecms.ContentService { return r.content }

func TestDecorate(t *testing.T) {
	inner := &fakeContentService{}
	bus := event.NewBus()
	tr := &eventLog{}
	tr.listen(bus, event.BeforeHideContent, event.HideContent)

	repo := event.Decorate(&fakeRepository{content: inner}, bus)
	require.NoError(t, repo.ContentService().HideContent(context.Background(), &simplecms.ContentInfo{ID: 1}))
	assert.Equal(t, []string{event.BeforeHideContent, event.HideContent}, tr.names)
}

func TestAfterEvents(t *testing.T) {
	seen := make(map[string]bool)
	for _, name := range event.AfterEvents {
		assert.False(t, seen[name], "duplicate %s", name)
		seen[name] = true
		assert.NotContains(t, name, "before_")
	}
	assert.True(t, seen[event.PublishVersion])
	assert.True(t, seen[event.RemoveURLWildcard])
}
