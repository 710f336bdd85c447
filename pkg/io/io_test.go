package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jhaabhiiishek/mindmap-assignment/pkg/errors"
	"github.com/jhaabhiiishek/mindmap-assignment/pkg/hierarchy"
)

const sampleJSON = `{
  "id": "root",
  "label": "Central Idea",
  "type": "root",
  "children": [
    {"id": "a", "label": "First", "type": "child", "summary": "short",
     "children": [{"id": "c", "label": "Nested", "type": "grandchild"}]},
    {"id": "b", "label": "Second", "type": "child"}
  ]
}`

func TestReadJSON(t *testing.T) {
	root, err := ReadJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatal(err)
	}
	if root.ID != "root" || root.Kind != hierarchy.KindRoot {
		t.Errorf("root = %+v", root)
	}
	if len(root.Children) != 2 {
		t.Fatalf("root has %d children, want 2", len(root.Children))
	}
	// Child order is significant and must survive decoding.
	if root.Children[0].ID != "a" || root.Children[1].ID != "b" {
		t.Errorf("child order = %s, %s", root.Children[0].ID, root.Children[1].ID)
	}
	if hierarchy.FindByID(root, "c") == nil {
		t.Fatal("nested node c not decoded")
	}
	if got := hierarchy.FindByID(root, "a"); got.Summary != "short" {
		t.Errorf("summary = %q", got.Summary)
	}
}

func TestReadJSONValidation(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "malformed json",
			input: `{"id": "root", "label":`,
		},
		{
			name:  "missing root id",
			input: `{"label": "No ID"}`,
		},
		{
			name:  "missing label",
			input: `{"id": "root", "label": "R", "children": [{"id": "a"}]}`,
		},
		{
			name:  "duplicate id",
			input: `{"id": "root", "label": "R", "children": [{"id": "root", "label": "Again"}]}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("err = %v, want INVALID_FORMAT", err)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	root, err := ReadJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(root, &buf); err != nil {
		t.Fatal(err)
	}
	again, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("re-import failed: %v", err)
	}

	if hierarchy.Count(again) != hierarchy.Count(root) {
		t.Errorf("node count changed: %d != %d", hierarchy.Count(again), hierarchy.Count(root))
	}
	if got := hierarchy.FindByID(again, "c"); got == nil || got.Kind != hierarchy.KindGrandchild {
		t.Errorf("node c after round trip = %+v", got)
	}
}

func TestImportExportFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "map.json")

	root, err := ReadJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatal(err)
	}
	if err := ExportJSON(root, path); err != nil {
		t.Fatal(err)
	}

	again, err := ImportJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	if again.Label != "Central Idea" {
		t.Errorf("label = %q", again.Label)
	}

	if _, err := ImportJSON(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("importing a missing file should fail")
	}
}
