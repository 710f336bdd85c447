// Package store persists mindmap collections.
//
// This package defines the storage port consumed by the view controller,
// with implementations for different backends:
//   - memory: In-memory storage for development/testing
//   - file: JSON files on disk for CLI usage
//   - redis: Redis-backed storage for multi-instance deployments
//   - mongo: MongoDB-backed storage for durable server deployments
//
// # Map records
//
// A [Map] is the durable form of one mindmap: the full hierarchical tree,
// the collapse state serialized as an ordered ID list (storage is JSON or
// BSON based, so no native set type), and the last selected layout mode.
// The controller writes the active map back after every mutation and never
// treats a storage failure as fatal.
//
// # Usage
//
//	st := store.NewMemoryStore()
//
//	m := store.NewMap("Untitled", root)
//	if err := st.Save(ctx, m); err != nil {
//	    // log and continue - persistence is fire-and-forget
//	}
//
//	maps, err := st.List(ctx)
package store

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhaabhiiishek/mindmap-assignment/pkg/hierarchy"
)

// ErrNotFound is returned by [Store.Get] and [Store.Delete] when no map
// with the requested ID exists.
var ErrNotFound = errors.New("map not found")

// Map is the persisted record of one mindmap.
type Map struct {
	ID               string          `json:"id" bson:"_id"`
	Name             string          `json:"name" bson:"name"`
	CreatedAt        time.Time       `json:"created_at" bson:"created_at"`
	Root             *hierarchy.Node `json:"hierarchical_data" bson:"hierarchical_data"`
	CollapsedNodeIDs []string        `json:"collapsed_node_ids,omitempty" bson:"collapsed_node_ids,omitempty"`
	LayoutMode       string          `json:"layout_mode,omitempty" bson:"layout_mode,omitempty"`
}

// NewMap creates a map record with a fresh ID around the given tree.
func NewMap(name string, root *hierarchy.Node) *Map {
	return &Map{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Root:      root,
	}
}

// CollapsedSet rehydrates the serialized collapse list into set form.
func (m *Map) CollapsedSet() map[string]struct{} {
	set := make(map[string]struct{}, len(m.CollapsedNodeIDs))
	for _, id := range m.CollapsedNodeIDs {
		set[id] = struct{}{}
	}
	return set
}

// SetCollapsed stores the collapse set as an ordered list. The order is
// deterministic only if the caller passes a deterministic slice; use
// [CollapsedList] to build one from a set.
func (m *Map) SetCollapsed(ids []string) {
	if len(ids) == 0 {
		m.CollapsedNodeIDs = nil
		return
	}
	m.CollapsedNodeIDs = ids
}

// CollapsedList converts a collapse set into the sorted list form used in
// storage. Sorting keeps persisted records stable across saves.
func CollapsedList(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// sortByCreation orders records oldest-first, tie-broken by ID so listings
// are stable for records created in the same instant.
func sortByCreation(maps []*Map) {
	sort.Slice(maps, func(i, j int) bool {
		if maps[i].CreatedAt.Equal(maps[j].CreatedAt) {
			return maps[i].ID < maps[j].ID
		}
		return maps[i].CreatedAt.Before(maps[j].CreatedAt)
	})
}

// Store is the interface for map storage backends.
// Implementations must treat Save as an upsert keyed by Map.ID.
type Store interface {
	// List returns all stored maps, ordered by creation time.
	List(ctx context.Context) ([]*Map, error)

	// Get retrieves a map by ID. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (*Map, error)

	// Save inserts or replaces a map.
	Save(ctx context.Context, m *Map) error

	// Delete removes a map. Returns ErrNotFound if it doesn't exist.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}
