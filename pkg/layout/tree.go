package layout

import (
	"sort"

	"github.com/jhaabhiiishek/mindmap-assignment/pkg/graph"
)

// TreeEngine is the layered top-to-bottom layout. Nodes are assigned to
// ranks by their distance from the roots, sibling order inside a rank is
// refined with median-of-parents sweeps to reduce edge crossings, and each
// rank is centered horizontally around the origin.
//
// The result is deterministic in node and edge insertion order, which is
// why flattening must preserve stored child order.
type TreeEngine struct {
	cfg Config
}

// Layout implements [Engine].
func (e *TreeEngine) Layout(nodes []graph.Node, edges []graph.Edge) []graph.Node {
	if len(nodes) == 0 {
		return nodes
	}
	if len(nodes) == 1 {
		return singleNode(nodes)
	}

	adj := graph.Adjacency(edges)
	incoming := make(map[string]int, len(nodes))
	for _, edge := range edges {
		incoming[edge.Target]++
	}

	// Rank by BFS distance from the roots, visiting in insertion order.
	rank := make(map[string]int, len(nodes))
	var frontier []string
	for _, n := range nodes {
		if incoming[n.ID] == 0 {
			rank[n.ID] = 0
			frontier = append(frontier, n.ID)
		}
	}
	for len(frontier) > 0 {
		var next []string
		for _, id := range frontier {
			for _, child := range adj[id] {
				if _, seen := rank[child]; seen {
					continue
				}
				rank[child] = rank[id] + 1
				next = append(next, child)
			}
		}
		frontier = next
	}

	// Rows in insertion order within each rank.
	maxRank := 0
	for _, r := range rank {
		if r > maxRank {
			maxRank = r
		}
	}
	rows := make([][]string, maxRank+1)
	for _, n := range nodes {
		r := rank[n.ID]
		rows[r] = append(rows[r], n.ID)
	}

	parents := make(map[string][]string, len(edges))
	for _, edge := range edges {
		parents[edge.Target] = append(parents[edge.Target], edge.Source)
	}

	// Crossing reduction: order each row by the median position of its
	// neighbors in the previously ordered row, sweeping down then up.
	// Stable sorts keep insertion order on ties.
	for sweep := 0; sweep < 2; sweep++ {
		for r := 1; r < len(rows); r++ {
			orderByMedian(rows[r], nil, positionsOf(rows[r-1]), parents)
		}
		for r := len(rows) - 2; r >= 0; r-- {
			orderByMedian(rows[r], adj, positionsOf(rows[r+1]), nil)
		}
	}

	centers := make(map[string]point, len(nodes))
	for r, row := range rows {
		span := float64(len(row)-1) * (NodeWidth + e.cfg.HSpacing)
		for i, id := range row {
			centers[id] = point{
				x: float64(i)*(NodeWidth+e.cfg.HSpacing) - span/2,
				y: float64(r) * (NodeHeight + e.cfg.VSpacing),
			}
		}
	}

	return applyCenters(nodes, centers)
}

// positionsOf maps each ID in an ordered row to its index.
func positionsOf(row []string) map[string]int {
	pos := make(map[string]int, len(row))
	for i, id := range row {
		pos[id] = i
	}
	return pos
}

// orderByMedian stably reorders row by the median index of each node's
// neighbors in the adjacent row. When parents is non-nil the neighbors are
// the node's parents, otherwise its children via adj. Nodes with no
// neighbor in the adjacent row keep their relative position.
func orderByMedian(row []string, adj map[string][]string, neighborPos map[string]int, parents map[string][]string) {
	median := make(map[string]float64, len(row))
	for i, id := range row {
		neighbors := adj[id]
		if parents != nil {
			neighbors = parents[id]
		}
		var positions []int
		for _, n := range neighbors {
			if p, ok := neighborPos[n]; ok {
				positions = append(positions, p)
			}
		}
		if len(positions) == 0 {
			median[id] = float64(i)
			continue
		}
		sort.Ints(positions)
		median[id] = float64(positions[len(positions)/2])
	}
	sort.SliceStable(row, func(i, j int) bool {
		return median[row[i]] < median[row[j]]
	})
}
