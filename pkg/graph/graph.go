// Package graph provides the flat node/edge view derived from a mindmap
// tree, plus the collapse-visibility filter applied to it.
//
// The flat view is ephemeral: it is rebuilt from the hierarchy on every
// structural change and discarded on the next one. No identity persists
// across rebuilds except the node ID string. Layout engines overwrite the
// Position of each node; renderers consume the committed arrays after each
// rebuild.
package graph

import (
	"encoding/json"
	"fmt"

	"github.com/jhaabhiiishek/mindmap-assignment/pkg/hierarchy"
)

// Position is a point in layout space. Coordinates refer to a node's
// top-left corner under the rendering contract.
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Node is one flattened mindmap node. Depth counts levels below the
// flattening start point (0 at the start node), which is the tree root for
// whole-tree views and the drill target for drilled views.
type Node struct {
	ID          string   `json:"id" bson:"id"`
	Depth       int      `json:"depth" bson:"depth"`
	Label       string   `json:"label" bson:"label"`
	Summary     string   `json:"summary,omitempty" bson:"summary,omitempty"`
	Details     string   `json:"details,omitempty" bson:"details,omitempty"`
	HasChildren bool     `json:"has_children" bson:"has_children"`
	ChildCount  int      `json:"child_count" bson:"child_count"`
	Expanded    bool     `json:"expanded" bson:"expanded"`
	Position    Position `json:"position" bson:"position"`
}

// Edge is a directed parent→child link between two flat nodes.
// The ID is derived from the endpoints and is unique per link.
type Edge struct {
	ID     string `json:"id" bson:"id"`
	Source string `json:"source" bson:"source"`
	Target string `json:"target" bson:"target"`
}

// EdgeID derives the canonical edge identifier for a parent→child link.
func EdgeID(source, target string) string {
	return fmt.Sprintf("%s-%s", source, target)
}

// Flatten converts the tree rooted at n into parallel node and edge lists
// using a pre-order traversal. For a tree of N nodes it emits exactly N
// flat nodes and N-1 edges (one per parent→child link).
//
// Child order is preserved exactly as stored in the tree: layout engines
// rely on insertion order for deterministic tie-breaking, so the traversal
// must not reorder siblings.
//
// Expanded is always reset to true here. Display expansion state is
// re-derived from the collapse set by [FilterCollapsed], never carried
// through flattening.
//
// Flattening a drilled subtree uses the drill target as n with depth 0 and
// an empty parentID: the subtree becomes its own mini-tree for layout.
func Flatten(n *hierarchy.Node, depth int, parentID string) ([]Node, []Edge) {
	if n == nil {
		return nil, nil
	}
	var nodes []Node
	var edges []Edge
	flattenInto(n, depth, parentID, &nodes, &edges)
	return nodes, edges
}

func flattenInto(n *hierarchy.Node, depth int, parentID string, nodes *[]Node, edges *[]Edge) {
	*nodes = append(*nodes, Node{
		ID:          n.ID,
		Depth:       depth,
		Label:       n.Label,
		Summary:     n.Summary,
		Details:     n.Details,
		HasChildren: n.HasChildren(),
		ChildCount:  len(n.Children),
		Expanded:    true,
	})
	if parentID != "" {
		*edges = append(*edges, Edge{
			ID:     EdgeID(parentID, n.ID),
			Source: parentID,
			Target: n.ID,
		})
	}
	for _, c := range n.Children {
		flattenInto(c, depth+1, n.ID, nodes, edges)
	}
}

// Adjacency builds a source→targets lookup from an edge list. The target
// order within each source matches edge order.
func Adjacency(edges []Edge) map[string][]string {
	adj := make(map[string][]string, len(edges))
	for _, e := range edges {
		adj[e.Source] = append(adj[e.Source], e.Target)
	}
	return adj
}

// MarshalView serializes a committed node/edge view to indented JSON.
// This is the shape consumed by external renderers.
func MarshalView(nodes []Node, edges []Edge) ([]byte, error) {
	view := struct {
		Nodes []Node `json:"nodes"`
		Edges []Edge `json:"edges"`
	}{Nodes: nodes, Edges: edges}
	return json.MarshalIndent(view, "", "  ")
}
