package event_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-cms/pkg/simplecms/event"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type pingEvent struct {
	event.Propagation
	calls []string
}

func (*pingEvent) EventName() string { return "test.ping" }

func record(name string) event.Listener {
	return func(_ context.Context, e event.Event) error {
		p := e.(*pingEvent)
		p.calls = append(p.calls, name)
		return nil
	}
}

type reg struct {
	name     string
	priority int
}

func TestBus_Dispatch(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		listeners []reg
		want      []string
	}{
		{
			name:      "DescendingPriority",
			listeners: []reg{{"low", -10}, {"high", 10}, {"mid", 0}},
			want:      []string{"high", "mid", "low"},
		},
		{
			name:      "TiesInRegistrationOrder",
			listeners: []reg{{"first", 5}, {"second", 5}, {"top", 6}, {"third", 5}},
			want:      []string{"top", "first", "second", "third"},
		},
		{
			name: "NoListeners",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := event.NewBus()
			for _, l := range tt.listeners {
				bus.AddListener("test.ping", record(l.name), l.priority)
			}
			e := &pingEvent{}
			require.NoError(t, bus.Dispatch(ctx, e))
			assert.Equal(t, tt.want, e.calls)
		})
	}
}

func TestBus_StopPropagation(t *testing.T) {
	bus := event.NewBus()
	bus.AddListener("test.ping", record("first"), 10)
	bus.AddListener("test.ping", func(_ context.Context, e event.Event) error {
		p := e.(*pingEvent)
		p.calls = append(p.calls, "stopper")
		p.StopPropagation()
		return nil
	}, 5)
	bus.AddListener("test.ping", record("never"), 0)

	e := &pingEvent{}
	require.NoError(t, bus.Dispatch(context.Background(), e))
	assert.Equal(t, []string{"first", "stopper"}, e.calls)
	assert.True(t, e.IsPropagationStopped())
}

func TestBus_ListenerErrorAborts(t *testing.T) {
	boom := errors.New("boom")
	bus := event.NewBus()
	bus.AddListener("test.ping", func(context.Context, event.Event) error { return boom }, 1)
	bus.AddListener("test.ping", record("never"), 0)

	e := &pingEvent{}
	err := bus.Dispatch(context.Background(), e)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, e.calls)
}

func TestBus_RemoveListener(t *testing.T) {
	bus := event.NewBus()
	keep := bus.AddListener("test.ping", record("keep"), 0)
	drop := bus.AddListener("test.ping", record("drop"), 1)

	assert.True(t, bus.RemoveListener(drop))
	assert.False(t, bus.RemoveListener(drop))
	assert.Len(t, bus.Listeners("test.ping"), 1)

	e := &pingEvent{}
	require.NoError(t, bus.Dispatch(context.Background(), e))
	assert.Equal(t, []string{"keep"}, e.calls)

	assert.True(t, bus.RemoveListener(keep))
	assert.False(t, bus.HasListeners("test.ping"))
}

type pingSubscriber struct{}

func (pingSubscriber) Subscriptions() []event.Subscription {
	return []event.Subscription{
		{Event: "test.ping", Listener: record("sub-low"), Priority: -1},
		{Event: "test.ping", Listener: record("sub-high"), Priority: 1},
	}
}

func TestBus_AddSubscriber(t *testing.T) {
	bus := event.NewBus()
	ids := bus.AddSubscriber(pingSubscriber{})
	assert.Len(t, ids, 2)
	assert.True(t, bus.HasListeners("test.ping"))
	assert.False(t, bus.HasListeners("test.pong"))

	e := &pingEvent{}
	require.NoError(t, bus.Dispatch(context.Background(), e))
	assert.Equal(t, []string{"sub-high", "sub-low"}, e.calls)
}

func TestListen(t *testing.T) {
	bus := event.NewBus()
	var got *event.BeforeHideContentEvent
	event.Listen(bus, 0, func(_ context.Context, e *event.BeforeHideContentEvent) error {
		got = e
		return nil
	})

	assert.True(t, bus.HasListeners(event.BeforeHideContent))
	e := &event.BeforeHideContentEvent{}
	require.NoError(t, bus.Dispatch(context.Background(), e))
	assert.Same(t, e, got)
}

func TestBus_Tracing(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))
	bus := event.NewBus(event.WithTracerProvider(tp))
	bus.AddListener("test.ping", record("one"), 0)

	require.NoError(t, bus.Dispatch(context.Background(), &pingEvent{}))
	require.NoError(t, bus.Dispatch(context.Background(), &pongEvent{}))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "event.dispatch test.ping", spans[0].Name())
}

type pongEvent struct{}

func (*pongEvent) EventName() string { return "test.pong" }

func TestBefore_Result(t *testing.T) {
	var b event.Before[int]
	assert.False(t, b.HasResult())
	_, err := b.Result()
	assert.ErrorIs(t, err, event.ErrNoResult)

	b.SetResult(0)
	assert.True(t, b.HasResult())
	got, err := b.Result()
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}
