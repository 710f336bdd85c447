package layout

import (
	"math"
	"testing"

	"github.com/jhaabhiiishek/mindmap-assignment/pkg/graph"
)

func TestForceDeterminism(t *testing.T) {
	// Initial positions are seeded, so repeat runs are exact.
	nodes, edges := testGraph()
	eng := New(ModeForce, DefaultConfig())

	first := positionsByID(eng.Layout(nodes, edges))
	second := positionsByID(eng.Layout(nodes, edges))
	for id, p := range first {
		if second[id] != p {
			t.Errorf("node %s moved between runs: %+v vs %+v", id, p, second[id])
		}
	}
}

func TestForcePositionsFinite(t *testing.T) {
	nodes, edges := testGraph()
	got := New(ModeForce, DefaultConfig()).Layout(nodes, edges)

	for _, n := range got {
		if math.IsNaN(n.Position.X) || math.IsInf(n.Position.X, 0) ||
			math.IsNaN(n.Position.Y) || math.IsInf(n.Position.Y, 0) {
			t.Errorf("node %s position not finite: %+v", n.ID, n.Position)
		}
	}
}

func TestForceSpreadsNodes(t *testing.T) {
	nodes, edges := testGraph()
	got := New(ModeForce, DefaultConfig()).Layout(nodes, edges)

	// Charge repulsion must separate every pair by a sane margin.
	// Positions are approximate, so only a qualitative floor is checked.
	for i := 0; i < len(got); i++ {
		for j := i + 1; j < len(got); j++ {
			dx := got[i].Position.X - got[j].Position.X
			dy := got[i].Position.Y - got[j].Position.Y
			if math.Hypot(dx, dy) < 10 {
				t.Errorf("nodes %s and %s nearly coincide", got[i].ID, got[j].ID)
			}
		}
	}
}

func TestForceConnectedCloserThanUnconnected(t *testing.T) {
	// Two separate stars: hub1→(s1,s2), hub2→(s3,s4). The spring force
	// should keep spokes nearer their own hub than the other one.
	nodes := []graph.Node{
		{ID: "hub1", Depth: 0}, {ID: "s1", Depth: 1}, {ID: "s2", Depth: 1},
		{ID: "hub2", Depth: 0}, {ID: "s3", Depth: 1}, {ID: "s4", Depth: 1},
	}
	var edges []graph.Edge
	for _, pair := range [][2]string{{"hub1", "s1"}, {"hub1", "s2"}, {"hub2", "s3"}, {"hub2", "s4"}} {
		edges = append(edges, graph.Edge{ID: graph.EdgeID(pair[0], pair[1]), Source: pair[0], Target: pair[1]})
	}

	pos := positionsByID(New(ModeForce, DefaultConfig()).Layout(nodes, edges))
	dist := func(a, b string) float64 {
		return math.Hypot(pos[a].X-pos[b].X, pos[a].Y-pos[b].Y)
	}

	for _, spoke := range []string{"s1", "s2"} {
		if dist(spoke, "hub1") >= dist(spoke, "hub2") {
			t.Errorf("%s closer to foreign hub: own %v, other %v", spoke, dist(spoke, "hub1"), dist(spoke, "hub2"))
		}
	}
	for _, spoke := range []string{"s3", "s4"} {
		if dist(spoke, "hub2") >= dist(spoke, "hub1") {
			t.Errorf("%s closer to foreign hub: own %v, other %v", spoke, dist(spoke, "hub2"), dist(spoke, "hub1"))
		}
	}
}

func TestForceCenteredOnOrigin(t *testing.T) {
	nodes, edges := testGraph()
	got := New(ModeForce, DefaultConfig()).Layout(nodes, edges)

	var cx, cy float64
	for _, n := range got {
		cx += n.Position.X + NodeWidth/2
		cy += n.Position.Y + NodeHeight/2
	}
	cx /= float64(len(got))
	cy /= float64(len(got))
	if math.Abs(cx) > 1 || math.Abs(cy) > 1 {
		t.Errorf("layout centroid = (%v, %v), want near origin", cx, cy)
	}
}
