package graph

// FilterCollapsed returns the induced subgraph of nodes not hidden by a
// collapsed ancestor. A node is hidden iff any ancestor (not necessarily
// its immediate parent) is in the collapsed set. Collapsed nodes
// themselves stay visible - only their descendants disappear, which is
// what gives the "collapsed branch" visual of a parent with a hidden-count
// badge and no children.
//
// Edges touching a hidden endpoint are dropped. Node and edge order is
// preserved. With an empty collapsed set the input slices are returned
// unchanged.
//
// Visible nodes also get their Expanded flag set from the collapsed set,
// so renderers can distinguish a collapsed parent from an expanded one.
func FilterCollapsed(nodes []Node, edges []Edge, collapsed map[string]struct{}) ([]Node, []Edge) {
	if len(collapsed) == 0 {
		return nodes, edges
	}

	adj := Adjacency(edges)

	// Descendants of every collapsed node, at unbounded depth. The walk
	// terminates because the flattened hierarchy is acyclic.
	hidden := make(map[string]struct{})
	var hide func(id string)
	hide = func(id string) {
		for _, child := range adj[id] {
			if _, ok := hidden[child]; ok {
				continue
			}
			hidden[child] = struct{}{}
			hide(child)
		}
	}
	for id := range collapsed {
		hide(id)
	}

	visibleNodes := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if _, ok := hidden[n.ID]; ok {
			continue
		}
		if _, ok := collapsed[n.ID]; ok {
			n.Expanded = false
		}
		visibleNodes = append(visibleNodes, n)
	}

	visibleEdges := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if _, ok := hidden[e.Source]; ok {
			continue
		}
		if _, ok := hidden[e.Target]; ok {
			continue
		}
		visibleEdges = append(visibleEdges, e)
	}

	return visibleNodes, visibleEdges
}
