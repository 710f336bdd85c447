package graph

import (
	"testing"

	"github.com/jhaabhiiishek/mindmap-assignment/pkg/hierarchy"
)

// sample builds:
//
//	root
//	├── a
//	│   ├── c
//	│   └── d
//	└── b
func sample() *hierarchy.Node {
	return &hierarchy.Node{
		ID:    "root",
		Label: "Root",
		Kind:  hierarchy.KindRoot,
		Children: []*hierarchy.Node{
			{
				ID:    "a",
				Label: "A",
				Children: []*hierarchy.Node{
					{ID: "c", Label: "C"},
					{ID: "d", Label: "D"},
				},
			},
			{ID: "b", Label: "B"},
		},
	}
}

func TestFlattenCounts(t *testing.T) {
	tests := []struct {
		name      string
		tree      *hierarchy.Node
		wantNodes int
		wantEdges int
	}{
		{name: "nil tree", tree: nil, wantNodes: 0, wantEdges: 0},
		{name: "single node", tree: &hierarchy.Node{ID: "x", Label: "X"}, wantNodes: 1, wantEdges: 0},
		{name: "sample tree", tree: sample(), wantNodes: 5, wantEdges: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, edges := Flatten(tt.tree, 0, "")
			if len(nodes) != tt.wantNodes {
				t.Errorf("len(nodes) = %d, want %d", len(nodes), tt.wantNodes)
			}
			if len(edges) != tt.wantEdges {
				t.Errorf("len(edges) = %d, want %d", len(edges), tt.wantEdges)
			}
			// N nodes always implies N-1 edges for non-empty trees.
			if len(nodes) > 0 && len(edges) != len(nodes)-1 {
				t.Errorf("edge count %d != node count %d - 1", len(edges), len(nodes))
			}
		})
	}
}

func TestFlattenDepths(t *testing.T) {
	nodes, _ := Flatten(sample(), 0, "")

	want := map[string]int{"root": 0, "a": 1, "b": 1, "c": 2, "d": 2}
	for _, n := range nodes {
		if n.Depth != want[n.ID] {
			t.Errorf("node %s depth = %d, want %d", n.ID, n.Depth, want[n.ID])
		}
	}
}

func TestFlattenPreservesOrder(t *testing.T) {
	nodes, _ := Flatten(sample(), 0, "")

	// Pre-order with stored child order: root, a, c, d, b.
	want := []string{"root", "a", "c", "d", "b"}
	for i, n := range nodes {
		if n.ID != want[i] {
			t.Fatalf("nodes[%d] = %s, want %s", i, n.ID, want[i])
		}
	}
}

func TestFlattenFields(t *testing.T) {
	nodes, edges := Flatten(sample(), 0, "")

	byID := make(map[string]Node)
	for _, n := range nodes {
		byID[n.ID] = n
	}

	if a := byID["a"]; !a.HasChildren || a.ChildCount != 2 {
		t.Errorf("a = %+v, want HasChildren and ChildCount 2", a)
	}
	if b := byID["b"]; b.HasChildren || b.ChildCount != 0 {
		t.Errorf("b = %+v, want leaf", b)
	}
	for _, n := range nodes {
		if !n.Expanded {
			t.Errorf("node %s not reset to expanded", n.ID)
		}
	}
	for _, e := range edges {
		if e.ID != EdgeID(e.Source, e.Target) {
			t.Errorf("edge id %s not derived from %s→%s", e.ID, e.Source, e.Target)
		}
	}
}

func TestFlattenSubtree(t *testing.T) {
	tree := sample()
	a := hierarchy.FindByID(tree, "a")

	// Drilled flattening: subtree root at depth 0, no parent edge.
	nodes, edges := Flatten(a, 0, "")
	if len(nodes) != 3 || len(edges) != 2 {
		t.Fatalf("got %d nodes, %d edges, want 3 and 2", len(nodes), len(edges))
	}
	if nodes[0].ID != "a" || nodes[0].Depth != 0 {
		t.Errorf("subtree root = %+v, want a at depth 0", nodes[0])
	}
}

func TestFilterCollapsedEmptySet(t *testing.T) {
	nodes, edges := Flatten(sample(), 0, "")
	gotNodes, gotEdges := FilterCollapsed(nodes, edges, nil)

	if len(gotNodes) != len(nodes) || len(gotEdges) != len(edges) {
		t.Errorf("empty set changed the view: %d/%d nodes, %d/%d edges",
			len(gotNodes), len(nodes), len(gotEdges), len(edges))
	}
}

func TestFilterCollapsedHidesDescendants(t *testing.T) {
	nodes, edges := Flatten(sample(), 0, "")
	collapsed := map[string]struct{}{"a": {}}

	gotNodes, gotEdges := FilterCollapsed(nodes, edges, collapsed)

	wantNodes := map[string]bool{"root": true, "a": true, "b": true}
	if len(gotNodes) != len(wantNodes) {
		t.Fatalf("len(visible) = %d, want %d", len(gotNodes), len(wantNodes))
	}
	for _, n := range gotNodes {
		if !wantNodes[n.ID] {
			t.Errorf("node %s should be hidden", n.ID)
		}
		// The collapsed node itself stays visible but reads collapsed.
		if n.ID == "a" && n.Expanded {
			t.Error("collapsed node a still marked expanded")
		}
	}

	wantEdges := map[string]bool{"root-a": true, "root-b": true}
	if len(gotEdges) != len(wantEdges) {
		t.Fatalf("len(visible edges) = %d, want %d", len(gotEdges), len(wantEdges))
	}
	for _, e := range gotEdges {
		if !wantEdges[e.ID] {
			t.Errorf("edge %s should be hidden", e.ID)
		}
	}
}

func TestFilterCollapsedTransitive(t *testing.T) {
	// Deep chain: root → a → c → e. Collapsing root hides everything below,
	// not just direct children.
	tree := &hierarchy.Node{
		ID: "root", Label: "Root",
		Children: []*hierarchy.Node{
			{ID: "a", Label: "A", Children: []*hierarchy.Node{
				{ID: "c", Label: "C", Children: []*hierarchy.Node{
					{ID: "e", Label: "E"},
				}},
			}},
		},
	}
	nodes, edges := Flatten(tree, 0, "")

	gotNodes, gotEdges := FilterCollapsed(nodes, edges, map[string]struct{}{"root": {}})
	if len(gotNodes) != 1 || gotNodes[0].ID != "root" {
		t.Fatalf("visible = %v, want [root]", gotNodes)
	}
	if len(gotEdges) != 0 {
		t.Errorf("len(visible edges) = %d, want 0", len(gotEdges))
	}
}

func TestFilterCollapsedMonotone(t *testing.T) {
	nodes, edges := Flatten(sample(), 0, "")
	all := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		all[n.ID] = true
	}

	sets := []map[string]struct{}{
		{"a": {}},
		{"b": {}},
		{"a": {}, "b": {}},
		{"root": {}},
	}
	for _, collapsed := range sets {
		gotNodes, _ := FilterCollapsed(nodes, edges, collapsed)
		if len(gotNodes) > len(nodes) {
			t.Fatalf("filter grew the node set: %d > %d", len(gotNodes), len(nodes))
		}
		for _, n := range gotNodes {
			if !all[n.ID] {
				t.Errorf("filter invented node %s", n.ID)
			}
		}
	}
}
