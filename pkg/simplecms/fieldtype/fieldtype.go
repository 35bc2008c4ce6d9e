// Package fieldtype implements the field types content fields are built of.
//
// A field type normalizes raw values (including values decoded from JSON),
// validates them against a field definition and renders them as text for
// name schemas and search.
package fieldtype

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

// Type is a field type.
type Type interface {
	Identifier() string
	// FromHash converts a raw value into the canonical Go value of the type.
	FromHash(value any) (any, error)
	IsEmpty(value any) bool
	// Validate returns messages describing why value does not satisfy the
	// definition settings. Value is already normalized.
	Validate(definition simplecms.FieldDefinition, value any) []string
	// Text renders the value for names and full text matching.
	Text(value any) string
}

// Registry maps identifiers to field types.
type Registry struct {
	mu    sync.RWMutex
	types map[string]Type
}

// NewRegistry returns a registry with the given types.
func NewRegistry(types ...Type) *Registry {
	r := &Registry{types: make(map[string]Type)}
	for _, t := range types {
		r.Register(t)
	}
	return r
}

// Default returns a registry with every built in type.
func Default() *Registry {
	return NewRegistry(String{}, Text{}, Integer{}, Boolean{}, URL{}, BinaryFile{}, Email{})
}

func (r *Registry) Register(t Type) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[t.Identifier()] = t
}

// Get returns the type registered under identifier.
func (r *Registry) Get(identifier string) (Type, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[identifier]
	if !ok {
		return nil, &simplecms.NotImplementedError{Feature: fmt.Sprintf("field type '%s'", identifier)}
	}
	return t, nil
}

// Identifiers lists the registered type identifiers in sorted order.
func (r *Registry) Identifiers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.types))
	for id := range r.types {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// decodeInto converts a loosely typed value, such as a map decoded from
// JSON, into out.
func decodeInto(value any, out any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func setting[T any](definition simplecms.FieldDefinition, name string) (T, bool) {
	var zero T
	raw, ok := definition.Settings[name]
	if !ok || raw == nil {
		return zero, false
	}
	if v, ok := raw.(T); ok {
		return v, true
	}
	var out T
	if err := decodeInto(raw, &out); err != nil {
		return zero, false
	}
	return out, true
}
