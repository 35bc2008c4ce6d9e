// Package criteria converts search criteria into backend query fragments.
//
// A Converter holds an ordered list of handlers. Converting a criterion asks
// each handler in turn whether it accepts the criterion and returns the
// fragment built by the first that does. Handlers of composite criteria
// convert their children through the same converter.
package criteria

import (
	"fmt"
	"sync"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

// Handler turns the criteria it accepts into fragments of type F.
type Handler[F any] interface {
	Accepts(criterion simplecms.Criterion) bool
	Handle(converter *Converter[F], criterion simplecms.Criterion) (F, error)
}

// Converter dispatches criteria to the first accepting handler.
type Converter[F any] struct {
	mu       sync.RWMutex
	handlers []Handler[F]
}

// New returns a converter trying handlers in the given order.
func New[F any](handlers ...Handler[F]) *Converter[F] {
	return &Converter[F]{handlers: append([]Handler[F](nil), handlers...)}
}

// AddHandler appends a handler. It is tried after the existing ones.
func (c *Converter[F]) AddHandler(h Handler[F]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, h)
}

// Convert returns the fragment for criterion. When no handler accepts it,
// the error is a *simplecms.NotImplementedError.
func (c *Converter[F]) Convert(criterion simplecms.Criterion) (F, error) {
	c.mu.RLock()
	handlers := c.handlers
	c.mu.RUnlock()

	for _, h := range handlers {
		if h.Accepts(criterion) {
			return h.Handle(c, criterion)
		}
	}
	var zero F
	return zero, &simplecms.NotImplementedError{Feature: describe(criterion)}
}

// ConvertAll converts each criterion in order and stops at the first error.
func (c *Converter[F]) ConvertAll(criteria []simplecms.Criterion) ([]F, error) {
	out := make([]F, 0, len(criteria))
	for _, criterion := range criteria {
		f, err := c.Convert(criterion)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func describe(criterion simplecms.Criterion) string {
	if criterion == nil {
		return "nil criterion"
	}
	return fmt.Sprintf("criterion %s (%T)", criterion.CriterionName(), criterion)
}

type typedHandler[C simplecms.Criterion, F any] struct {
	fn func(*Converter[F], C) (F, error)
}

// For returns a handler accepting criteria of concrete type C.
func For[C simplecms.Criterion, F any](fn func(converter *Converter[F], criterion C) (F, error)) Handler[F] {
	return typedHandler[C, F]{fn: fn}
}

func (h typedHandler[C, F]) Accepts(criterion simplecms.Criterion) bool {
	_, ok := criterion.(C)
	return ok
}

func (h typedHandler[C, F]) Handle(converter *Converter[F], criterion simplecms.Criterion) (F, error) {
	return h.fn(converter, criterion.(C))
}
