package store

import (
	"context"
	"sync"

	"github.com/jhaabhiiishek/mindmap-assignment/pkg/hierarchy"
)

// MemoryStore keeps maps in process memory. Useful for tests and for
// running the engine without any persistence backend configured.
type MemoryStore struct {
	mu   sync.RWMutex
	maps map[string]*Map
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{maps: make(map[string]*Map)}
}

// List returns all maps ordered by creation time.
func (s *MemoryStore) List(ctx context.Context) ([]*Map, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Map, 0, len(s.maps))
	for _, m := range s.maps {
		out = append(out, clone(m))
	}
	sortByCreation(out)
	return out, nil
}

// Get retrieves a map by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Map, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.maps[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(m), nil
}

// Save inserts or replaces a map.
func (s *MemoryStore) Save(ctx context.Context, m *Map) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.maps[m.ID] = clone(m)
	return nil
}

// Delete removes a map.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.maps[id]; !ok {
		return ErrNotFound
	}
	delete(s.maps, id)
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close() error { return nil }

// clone copies a record so callers cannot mutate stored state through
// shared tree pointers.
func clone(m *Map) *Map {
	out := *m
	out.Root = hierarchy.Clone(m.Root)
	if len(m.CollapsedNodeIDs) > 0 {
		out.CollapsedNodeIDs = append([]string(nil), m.CollapsedNodeIDs...)
	}
	return &out
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
