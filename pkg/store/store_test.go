package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jhaabhiiishek/mindmap-assignment/pkg/hierarchy"
)

func testMap(name string) *Map {
	return NewMap(name, &hierarchy.Node{
		ID:    "root",
		Label: name,
		Kind:  hierarchy.KindRoot,
		Children: []*hierarchy.Node{
			{ID: "a", Label: "A", Kind: hierarchy.KindChild},
		},
	})
}

// storeUnderTest runs the shared backend contract against a Store.
func storeUnderTest(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	m := testMap("first")
	m.CollapsedNodeIDs = []string{"a"}
	m.LayoutMode = "radial"

	if err := s.Save(ctx, m); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Get(ctx, m.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "first" || got.LayoutMode != "radial" {
		t.Errorf("loaded map = %+v", got)
	}
	if got.Root == nil || got.Root.ID != "root" || len(got.Root.Children) != 1 {
		t.Errorf("tree not round-tripped: %+v", got.Root)
	}
	if set := got.CollapsedSet(); len(set) != 1 {
		t.Errorf("collapse set = %v, want {a}", set)
	} else if _, ok := set["a"]; !ok {
		t.Errorf("collapse set = %v, want {a}", set)
	}

	// Save is an upsert: a second save replaces, never duplicates.
	m.Name = "renamed"
	if err := s.Save(ctx, m); err != nil {
		t.Fatalf("re-Save: %v", err)
	}
	maps, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(maps) != 1 || maps[0].Name != "renamed" {
		t.Errorf("List after upsert = %v", maps)
	}

	if err := s.Delete(ctx, m.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, m.ID); err != ErrNotFound {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, m.ID); err != ErrNotFound {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore(t *testing.T) {
	storeUnderTest(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	storeUnderTest(t, s)
}

func TestListOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	older := testMap("older")
	older.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := testMap("newer")
	newer.CreatedAt = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	// Insert newest first to prove ordering comes from CreatedAt.
	if err := s.Save(ctx, newer); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, older); err != nil {
		t.Fatal(err)
	}

	maps, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(maps) != 2 || maps[0].Name != "older" || maps[1].Name != "newer" {
		t.Errorf("List order = %v", []string{maps[0].Name, maps[1].Name})
	}
}

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	m := testMap("iso")
	if err := s.Save(ctx, m); err != nil {
		t.Fatal(err)
	}

	// Mutating the caller's tree after Save must not affect the store.
	m.Root.Children[0].Label = "mutated"
	got, err := s.Get(ctx, m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Root.Children[0].Label != "A" {
		t.Error("store shares tree pointers with callers")
	}
}

func TestCollapsedListRoundTrip(t *testing.T) {
	set := map[string]struct{}{"b": {}, "a": {}, "c": {}}
	list := CollapsedList(set)

	// Sorted for stable persistence.
	want := []string{"a", "b", "c"}
	for i, id := range want {
		if list[i] != id {
			t.Fatalf("CollapsedList = %v, want %v", list, want)
		}
	}

	m := &Map{}
	m.SetCollapsed(list)
	back := m.CollapsedSet()
	if len(back) != len(set) {
		t.Fatalf("rehydrated set = %v", back)
	}
	for id := range set {
		if _, ok := back[id]; !ok {
			t.Errorf("id %s lost in round trip", id)
		}
	}
}

func TestFileStoreSkipsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := s.Save(ctx, testMap("real")); err != nil {
		t.Fatal(err)
	}
	// A stray non-JSON file must not break listing.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a map"), 0644); err != nil {
		t.Fatal(err)
	}

	maps, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(maps) != 1 {
		t.Errorf("len(List) = %d, want 1", len(maps))
	}
}
