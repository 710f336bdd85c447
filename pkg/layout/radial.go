package layout

import (
	"math"
	"sort"

	"github.com/jhaabhiiishek/mindmap-assignment/pkg/graph"
)

// RadialEngine is the deterministic polar layout. The root sits at the
// origin and every node's children evenly subdivide their parent's angular
// sector, with the root's children sharing the full circle. Radial
// distance grows by a fixed step per depth level, independent of subtree
// size.
//
// Children are ordered by sorting their IDs lexicographically before
// subdividing, so two runs over the same graph produce bit-identical
// positions. No simulation is involved.
type RadialEngine struct {
	cfg Config
}

// Layout implements [Engine].
func (e *RadialEngine) Layout(nodes []graph.Node, edges []graph.Edge) []graph.Node {
	if len(nodes) == 0 {
		return nodes
	}
	if len(nodes) == 1 {
		return singleNode(nodes)
	}

	// The designated root is the depth-0 node, or the first node when
	// none is marked.
	root := nodes[0].ID
	for _, n := range nodes {
		if n.Depth == 0 {
			root = n.ID
			break
		}
	}

	adj := graph.Adjacency(edges)
	for _, children := range adj {
		sort.Strings(children)
	}

	centers := make(map[string]point, len(nodes))
	centers[root] = point{}

	// Recursively hand each child an equal slice of the parent's sector.
	// The child sits at the sector's mid angle, rotated a quarter turn so
	// that angle 0 points up rather than right.
	var place func(id string, depth int, start, span float64)
	place = func(id string, depth int, start, span float64) {
		children := adj[id]
		if len(children) == 0 {
			return
		}
		slice := span / float64(len(children))
		for i, child := range children {
			if _, done := centers[child]; done {
				continue
			}
			childStart := start + float64(i)*slice
			mid := childStart + slice/2
			radius := float64(depth+1) * e.cfg.RadialStep
			centers[child] = point{
				x: radius * math.Cos(mid-math.Pi/2),
				y: radius * math.Sin(mid-math.Pi/2),
			}
			place(child, depth+1, childStart, slice)
		}
	}
	place(root, 0, 0, 2*math.Pi)

	return applyCenters(nodes, centers)
}
