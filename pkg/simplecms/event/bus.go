package event

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Listener handles a dispatched event. Returning an error aborts the
// dispatch.
type Listener func(ctx context.Context, e Event) error

// ListenerID identifies a registered listener.
type ListenerID uint64

// Dispatcher dispatches events to listeners.
type Dispatcher interface {
	Dispatch(ctx context.Context, e Event) error
}

// Subscription is a listener registration returned by a Subscriber.
type Subscription struct {
	Event    string
	Listener Listener
	Priority int
}

// Subscriber registers several listeners at once.
type Subscriber interface {
	Subscriptions() []Subscription
}

type registration struct {
	id       ListenerID
	listener Listener
	priority int
}

// Bus is a synchronous in-process Dispatcher. Listeners run in descending
// priority; listeners with equal priority run in registration order.
type Bus struct {
	mu        sync.RWMutex
	next      ListenerID
	listeners map[string][]registration
	tracer    trace.Tracer
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithTracerProvider sets the provider used for dispatch spans. The global
// provider is used by default.
func WithTracerProvider(tp trace.TracerProvider) BusOption {
	return func(b *Bus) {
		b.tracer = tp.Tracer("github.com/tendant/simple-cms/pkg/simplecms/event")
	}
}

func NewBus(options ...BusOption) *Bus {
	b := &Bus{
		listeners: make(map[string][]registration),
		tracer:    otel.Tracer("github.com/tendant/simple-cms/pkg/simplecms/event"),
	}
	for _, opt := range options {
		opt(b)
	}
	return b
}

// AddListener registers listener for the named event.
func (b *Bus) AddListener(name string, listener Listener, priority int) ListenerID {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	regs := append(b.listeners[name], registration{id: b.next, listener: listener, priority: priority})
	// Stable keeps registration order among equal priorities.
	slices.SortStableFunc(regs, func(x, y registration) int { return cmp.Compare(y.priority, x.priority) })
	b.listeners[name] = regs
	return b.next
}

// RemoveListener unregisters a listener. It reports whether the listener
// was registered.
func (b *Bus) RemoveListener(id ListenerID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for name, regs := range b.listeners {
		i := slices.IndexFunc(regs, func(r registration) bool { return r.id == id })
		if i < 0 {
			continue
		}
		regs = slices.Delete(slices.Clone(regs), i, i+1)
		if len(regs) == 0 {
			delete(b.listeners, name)
		} else {
			b.listeners[name] = regs
		}
		return true
	}
	return false
}

// AddSubscriber registers every subscription of s.
func (b *Bus) AddSubscriber(s Subscriber) []ListenerID {
	var ids []ListenerID
	for _, sub := range s.Subscriptions() {
		ids = append(ids, b.AddListener(sub.Event, sub.Listener, sub.Priority))
	}
	return ids
}

// Listeners returns the listeners of the named event in dispatch order.
func (b *Bus) Listeners(name string) []Listener {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Listener, 0, len(b.listeners[name]))
	for _, r := range b.listeners[name] {
		out = append(out, r.listener)
	}
	return out
}

func (b *Bus) HasListeners(name string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[name]) > 0
}

// Dispatch calls the listeners of e in order. It stops at the first
// listener error, which is returned, or when a listener stops propagation.
func (b *Bus) Dispatch(ctx context.Context, e Event) error {
	name := e.EventName()
	listeners := b.Listeners(name)
	if len(listeners) == 0 {
		return nil
	}

	ctx, span := b.tracer.Start(ctx, "event.dispatch "+name,
		trace.WithAttributes(
			attribute.String("event.name", name),
			attribute.Int("event.listeners", len(listeners)),
		))
	defer span.End()

	stoppable, _ := e.(StoppableEvent)
	for i, listener := range listeners {
		if err := listener(ctx, e); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		if stoppable != nil && stoppable.IsPropagationStopped() {
			span.SetAttributes(attribute.Int("event.stopped_at", i))
			break
		}
	}
	return nil
}

// Listen registers a listener for the event type E, which must be a
// pointer to one of the event structs of this package.
func Listen[E Event](b *Bus, priority int, fn func(ctx context.Context, e E) error) ListenerID {
	var zero E
	return b.AddListener(zero.EventName(), func(ctx context.Context, e Event) error {
		typed, ok := e.(E)
		if !ok {
			return nil
		}
		return fn(ctx, typed)
	}, priority)
}

var _ Dispatcher = (*Bus)(nil)
