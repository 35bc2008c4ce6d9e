package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/tendant/simple-cms/pkg/simplecms/storage"
)

// Store implements storage.Store using in-memory maps
type Store struct {
	mu        sync.RWMutex
	documents map[string]map[int64][]byte // kind -> id -> document
	sequences map[string]int64
}

// New creates a new in-memory store
func New() *Store {
	return &Store{
		documents: make(map[string]map[int64][]byte),
		sequences: make(map[string]int64),
	}
}

func (s *Store) NextID(ctx context.Context, kind string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sequences[kind]++
	return s.sequences[kind], nil
}

func (s *Store) Put(ctx context.Context, kind string, id int64, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, ok := s.documents[kind]
	if !ok {
		docs = make(map[int64][]byte)
		s.documents[kind] = docs
	}
	// Keep a copy so callers can reuse their buffer
	docs[id] = append([]byte(nil), data...)

	// Explicit IDs must not be handed out again by NextID
	if id > s.sequences[kind] {
		s.sequences[kind] = id
	}
	return nil
}

func (s *Store) Get(ctx context.Context, kind string, id int64) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.documents[kind][id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (s *Store) Delete(ctx context.Context, kind string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.documents[kind], id)
	return nil
}

func (s *Store) List(ctx context.Context, kind string) ([]storage.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := s.documents[kind]
	records := make([]storage.Record, 0, len(docs))
	for id, data := range docs {
		records = append(records, storage.Record{ID: id, Data: append([]byte(nil), data...)})
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].ID < records[j].ID
	})
	return records, nil
}

var _ storage.Store = (*Store)(nil)
