package layout

import (
	"testing"

	"github.com/jhaabhiiishek/mindmap-assignment/pkg/graph"
)

func positionsByID(nodes []graph.Node) map[string]graph.Position {
	m := make(map[string]graph.Position, len(nodes))
	for _, n := range nodes {
		m[n.ID] = n.Position
	}
	return m
}

func TestTreeRanksBecomeRows(t *testing.T) {
	nodes, edges := testGraph()
	got := New(ModeTree, DefaultConfig()).Layout(nodes, edges)
	pos := positionsByID(got)

	// Same depth, same y; deeper rank strictly below.
	if pos["a"].Y != pos["b"].Y {
		t.Errorf("a.Y = %v, b.Y = %v, want equal (same rank)", pos["a"].Y, pos["b"].Y)
	}
	if pos["c"].Y != pos["d"].Y {
		t.Errorf("c.Y = %v, d.Y = %v, want equal (same rank)", pos["c"].Y, pos["d"].Y)
	}
	if !(pos["root"].Y < pos["a"].Y && pos["a"].Y < pos["c"].Y) {
		t.Errorf("ranks not descending: root %v, a %v, c %v", pos["root"].Y, pos["a"].Y, pos["c"].Y)
	}
}

func TestTreeRowSpacing(t *testing.T) {
	cfg := DefaultConfig()
	nodes, edges := testGraph()
	pos := positionsByID(New(ModeTree, cfg).Layout(nodes, edges))

	// Siblings in one rank sit one box-plus-gap apart.
	gap := pos["d"].X - pos["c"].X
	want := NodeWidth + cfg.HSpacing
	if gap != want {
		t.Errorf("sibling gap = %v, want %v", gap, want)
	}

	rankGap := pos["a"].Y - pos["root"].Y
	if want := NodeHeight + cfg.VSpacing; rankGap != want {
		t.Errorf("rank gap = %v, want %v", rankGap, want)
	}
}

func TestTreeTopLeftCorrection(t *testing.T) {
	nodes, edges := testGraph()
	pos := positionsByID(New(ModeTree, DefaultConfig()).Layout(nodes, edges))

	// The root is the only node in its rank: centered at x=0, y=0, then
	// corrected from center to top-left by half a box.
	if pos["root"].X != -NodeWidth/2 || pos["root"].Y != -NodeHeight/2 {
		t.Errorf("root = %+v, want (%v, %v)", pos["root"], -NodeWidth/2, -NodeHeight/2)
	}
}

func TestTreeDeterminism(t *testing.T) {
	nodes, edges := testGraph()
	eng := New(ModeTree, DefaultConfig())

	first := positionsByID(eng.Layout(nodes, edges))
	second := positionsByID(eng.Layout(nodes, edges))
	for id, p := range first {
		if second[id] != p {
			t.Errorf("node %s moved between runs: %+v vs %+v", id, p, second[id])
		}
	}
}

func TestTreeDistinctPositions(t *testing.T) {
	nodes, edges := testGraph()
	got := New(ModeTree, DefaultConfig()).Layout(nodes, edges)

	seen := make(map[graph.Position]string)
	for _, n := range got {
		if other, dup := seen[n.Position]; dup {
			t.Errorf("nodes %s and %s share position %+v", n.ID, other, n.Position)
		}
		seen[n.Position] = n.ID
	}
}
