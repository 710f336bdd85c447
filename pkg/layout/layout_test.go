package layout

import (
	"testing"

	"github.com/jhaabhiiishek/mindmap-assignment/pkg/graph"
	"github.com/jhaabhiiishek/mindmap-assignment/pkg/hierarchy"
)

// testGraph flattens a small reference tree:
//
//	root
//	├── a
//	│   ├── c
//	│   └── d
//	└── b
func testGraph() ([]graph.Node, []graph.Edge) {
	tree := &hierarchy.Node{
		ID: "root", Label: "Root",
		Children: []*hierarchy.Node{
			{ID: "a", Label: "A", Children: []*hierarchy.Node{
				{ID: "c", Label: "C"},
				{ID: "d", Label: "D"},
			}},
			{ID: "b", Label: "B"},
		},
	}
	return graph.Flatten(tree, 0, "")
}

func engines() map[string]Engine {
	cfg := DefaultConfig()
	return map[string]Engine{
		"tree":   New(ModeTree, cfg),
		"force":  New(ModeForce, cfg),
		"radial": New(ModeRadial, cfg),
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "tree", want: ModeTree},
		{in: "force", want: ModeForce},
		{in: "radial", want: ModeRadial},
		{in: "dagre", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEnginesEmptyGraph(t *testing.T) {
	for name, eng := range engines() {
		t.Run(name, func(t *testing.T) {
			if got := eng.Layout(nil, nil); len(got) != 0 {
				t.Errorf("Layout(nil) = %v, want empty", got)
			}
		})
	}
}

func TestEnginesSingleNode(t *testing.T) {
	for name, eng := range engines() {
		t.Run(name, func(t *testing.T) {
			in := []graph.Node{{ID: "only", Label: "Only", Position: graph.Position{X: 99, Y: 99}}}
			got := eng.Layout(in, nil)
			if len(got) != 1 {
				t.Fatalf("len = %d, want 1", len(got))
			}
			if got[0].Position.X != 0 || got[0].Position.Y != 0 {
				t.Errorf("position = %+v, want origin", got[0].Position)
			}
		})
	}
}

func TestEnginesPreserveNodeSet(t *testing.T) {
	nodes, edges := testGraph()
	for name, eng := range engines() {
		t.Run(name, func(t *testing.T) {
			got := eng.Layout(nodes, edges)
			if len(got) != len(nodes) {
				t.Fatalf("len = %d, want %d", len(got), len(nodes))
			}
			for i, n := range got {
				if n.ID != nodes[i].ID {
					t.Errorf("node %d = %s, want %s (order must be preserved)", i, n.ID, nodes[i].ID)
				}
				if n.Label != nodes[i].Label || n.Depth != nodes[i].Depth {
					t.Errorf("node %s fields changed: %+v", n.ID, n)
				}
			}
		})
	}
}
