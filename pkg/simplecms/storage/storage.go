// Package storage defines the document store the repository persists to.
//
// Documents are JSON encoded and grouped by kind. IDs are allocated per kind
// by the store and start at 1.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned when no document exists for a kind and ID.
var ErrNotFound = errors.New("document not found")

// Record is a stored document.
type Record struct {
	ID   int64
	Data []byte
}

// Store persists JSON documents by kind and ID. Implementations are safe for
// concurrent use.
type Store interface {
	// NextID allocates an unused ID for kind.
	NextID(ctx context.Context, kind string) (int64, error)
	// Put creates or replaces a document.
	Put(ctx context.Context, kind string, id int64, data []byte) error
	Get(ctx context.Context, kind string, id int64) ([]byte, error)
	// Delete removes a document. Deleting a missing document is not an error.
	Delete(ctx context.Context, kind string, id int64) error
	// List returns every document of kind ordered by ID.
	List(ctx context.Context, kind string) ([]Record, error)
}

// Table is a typed view over one kind of document.
type Table[T any] struct {
	store Store
	kind  string
}

// NewTable returns a table storing values of T under kind.
func NewTable[T any](store Store, kind string) *Table[T] {
	return &Table[T]{store: store, kind: kind}
}

// Kind returns the document kind of the table.
func (t *Table[T]) Kind() string { return t.kind }

// Create allocates an ID, builds the value with it and stores it.
func (t *Table[T]) Create(ctx context.Context, build func(id int64) T) (T, error) {
	var zero T
	id, err := t.store.NextID(ctx, t.kind)
	if err != nil {
		return zero, fmt.Errorf("allocate %s id: %w", t.kind, err)
	}
	v := build(id)
	if err := t.Put(ctx, id, v); err != nil {
		return zero, err
	}
	return v, nil
}

// Put stores v under id.
func (t *Table[T]) Put(ctx context.Context, id int64, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s %d: %w", t.kind, id, err)
	}
	if err := t.store.Put(ctx, t.kind, id, data); err != nil {
		return fmt.Errorf("put %s %d: %w", t.kind, id, err)
	}
	return nil
}

// Get loads the value stored under id. A missing document yields an error
// wrapping ErrNotFound.
func (t *Table[T]) Get(ctx context.Context, id int64) (T, error) {
	var v T
	data, err := t.store.Get(ctx, t.kind, id)
	if err != nil {
		return v, fmt.Errorf("get %s %d: %w", t.kind, id, err)
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("decode %s %d: %w", t.kind, id, err)
	}
	return v, nil
}

// Delete removes the value stored under id.
func (t *Table[T]) Delete(ctx context.Context, id int64) error {
	if err := t.store.Delete(ctx, t.kind, id); err != nil {
		return fmt.Errorf("delete %s %d: %w", t.kind, id, err)
	}
	return nil
}

// All returns every value ordered by ID.
func (t *Table[T]) All(ctx context.Context) ([]T, error) {
	return t.Find(ctx, nil)
}

// Find returns the values matching pred ordered by ID. A nil pred matches
// everything.
func (t *Table[T]) Find(ctx context.Context, pred func(T) bool) ([]T, error) {
	records, err := t.store.List(ctx, t.kind)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.kind, err)
	}
	out := make([]T, 0, len(records))
	for _, rec := range records {
		var v T
		if err := json.Unmarshal(rec.Data, &v); err != nil {
			return nil, fmt.Errorf("decode %s %d: %w", t.kind, rec.ID, err)
		}
		if pred == nil || pred(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

// First returns the first value matching pred by ID order.
func (t *Table[T]) First(ctx context.Context, pred func(T) bool) (T, bool, error) {
	var zero T
	found, err := t.Find(ctx, pred)
	if err != nil {
		return zero, false, err
	}
	if len(found) == 0 {
		return zero, false, nil
	}
	return found[0], true, nil
}

// Count returns the number of values matching pred.
func (t *Table[T]) Count(ctx context.Context, pred func(T) bool) (int, error) {
	found, err := t.Find(ctx, pred)
	if err != nil {
		return 0, err
	}
	return len(found), nil
}

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
