// Package event wraps the repository services with before and after events.
//
// Every mutating service method dispatches a Before<Op>Event, calls the
// inner service and then dispatches an <Op>Event carrying the result. A
// listener of the before event can stop propagation, which skips the inner
// call, and can set the result the caller gets back. After events are
// notifications only. Read methods are not decorated.
//
//	bus := event.NewBus()
//	event.Listen(bus, 0, func(ctx context.Context, e *event.BeforeCreateContentEvent) error {
//		if e.Create.RemoteID == "" {
//			e.Create.RemoteID = uuid.NewString()
//		}
//		return nil
//	})
//	repo := event.Decorate(core, bus)
package event

import "errors"

// ErrNoResult is returned by Before.Result when no listener set a result.
var ErrNoResult = errors.New("event: no result set")

// Event is anything dispatched through a Dispatcher.
type Event interface {
	EventName() string
}

// StoppableEvent is an event whose dispatch can be cut short by a listener.
type StoppableEvent interface {
	Event
	IsPropagationStopped() bool
}

// Propagation is embedded by events that listeners can stop.
type Propagation struct {
	stopped bool
}

// StopPropagation prevents the remaining listeners from running. On a
// before event it also prevents the decorated call.
func (p *Propagation) StopPropagation() { p.stopped = true }

func (p *Propagation) IsPropagationStopped() bool { return p.stopped }

// Before is embedded by before events of methods that return a value.
type Before[T any] struct {
	Propagation
	result    T
	hasResult bool
}

// SetResult sets the value returned to the caller instead of the result of
// the inner service.
func (b *Before[T]) SetResult(result T) {
	b.result = result
	b.hasResult = true
}

func (b *Before[T]) HasResult() bool { return b.hasResult }

// Result returns the value set with SetResult, or ErrNoResult.
func (b *Before[T]) Result() (T, error) {
	if !b.hasResult {
		var zero T
		return zero, ErrNoResult
	}
	return b.result, nil
}
