package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore persists each map as one JSON file in a directory. Filenames
// are the map ID plus a .json suffix, so IDs must be filesystem-safe
// (UUIDs from [NewMap] are).
type FileStore struct {
	dir string
}

// NewFileStore creates a file-based store in the given directory.
// The directory will be created if it doesn't exist.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// List returns all maps ordered by creation time.
func (s *FileStore) List(ctx context.Context) ([]*Map, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read store dir %s: %w", s.dir, err)
	}

	var out []*Map
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		m, err := s.read(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			// Skip unreadable entries rather than failing the listing.
			continue
		}
		out = append(out, m)
	}
	sortByCreation(out)
	return out, nil
}

// Get retrieves a map by ID.
func (s *FileStore) Get(ctx context.Context, id string) (*Map, error) {
	m, err := s.read(s.path(id))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	return m, err
}

// Save inserts or replaces a map. The write goes through a temp file and
// rename so a crash never leaves a half-written record behind.
func (s *FileStore) Save(ctx context.Context, m *Map) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal map %s: %w", m.ID, err)
	}

	tmp := s.path(m.ID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write map %s: %w", m.ID, err)
	}
	return os.Rename(tmp, s.path(m.ID))
}

// Delete removes a map.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	err := os.Remove(s.path(id))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	return err
}

// Close does nothing for the file store.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) read(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &m, nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
