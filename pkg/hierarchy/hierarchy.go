// Package hierarchy provides the recursive mindmap tree model and its pure
// edit operations.
//
// A mindmap is a single rooted tree of [Node] values. Children are owned by
// their parent, so removing a node removes its entire subtree. All edit
// operations are pure: they return a rebuilt tree and never mutate their
// argument. Rebuilding on every edit trades CPU for simplicity and rules out
// aliasing bugs between the tree and views derived from it.
//
// The model is deliberately permissive: node IDs are assumed unique but not
// enforced, and operations targeting an unknown ID return a structurally
// equivalent copy of the input rather than an error. Guards that depend on
// tree-level context (such as "the root must never be removed") belong to
// the caller, not to this package.
package hierarchy

// Kind classifies a node's position in the mindmap. The classification is
// advisory only: a grandchild node can itself have children.
type Kind string

const (
	// KindRoot marks the tree's entry point.
	KindRoot Kind = "root"
	// KindChild marks a direct child of the root.
	KindChild Kind = "child"
	// KindGrandchild marks nodes nested below the first level.
	KindGrandchild Kind = "grandchild"
)

// Node is a single vertex in the mindmap tree. The JSON field names form
// the interchange format shared with importers and the persistence layer.
//
// The zero value is not a valid node - ID and Label must be set.
type Node struct {
	ID       string  `json:"id" bson:"id"`
	Label    string  `json:"label" bson:"label"`
	Kind     Kind    `json:"type,omitempty" bson:"type,omitempty"`
	Summary  string  `json:"summary,omitempty" bson:"summary,omitempty"`
	Details  string  `json:"details,omitempty" bson:"details,omitempty"`
	Children []*Node `json:"children,omitempty" bson:"children,omitempty"`
}

// HasChildren reports whether the node has at least one child.
func (n *Node) HasChildren() bool { return len(n.Children) > 0 }

// Patch describes a partial update applied by [UpdateByID]. Nil fields are
// left untouched, so a patch can change any subset of a node's text fields
// and kind without clobbering the rest.
type Patch struct {
	Label   *string
	Summary *string
	Details *string
	Kind    *Kind
}

// String returns a pointer to s, for building patches inline.
func String(s string) *string { return &s }

// FindByID searches the tree depth-first and returns the first node whose
// ID matches, or nil if no node matches. With unique IDs (the caller's
// responsibility) "first" is unambiguous.
func FindByID(n *Node, id string) *Node {
	if n == nil {
		return nil
	}
	if n.ID == id {
		return n
	}
	for _, c := range n.Children {
		if found := FindByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// UpdateByID returns a rebuilt tree in which the node matching id has the
// patch merged into its fields. Every subtree is rebuilt regardless of
// where (or whether) the match occurs, so a patch applies anywhere in the
// tree. If no node matches, the result is an equivalent copy of the input.
func UpdateByID(n *Node, id string, p Patch) *Node {
	if n == nil {
		return nil
	}
	out := *n
	if n.ID == id {
		if p.Label != nil {
			out.Label = *p.Label
		}
		if p.Summary != nil {
			out.Summary = *p.Summary
		}
		if p.Details != nil {
			out.Details = *p.Details
		}
		if p.Kind != nil {
			out.Kind = *p.Kind
		}
	}
	if len(n.Children) > 0 {
		out.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = UpdateByID(c, id, p)
		}
	}
	return &out
}

// InsertChild returns a rebuilt tree in which child has been appended to
// the children of the node matching parentID. If no node matches, the
// result is an equivalent copy of the input and the child is not inserted
// anywhere. The child itself is taken as-is (not copied); callers hand
// over ownership.
func InsertChild(n *Node, parentID string, child *Node) *Node {
	if n == nil {
		return nil
	}
	out := *n
	out.Children = make([]*Node, 0, len(n.Children)+1)
	for _, c := range n.Children {
		out.Children = append(out.Children, InsertChild(c, parentID, child))
	}
	if n.ID == parentID {
		out.Children = append(out.Children, child)
	}
	if len(out.Children) == 0 {
		out.Children = nil
	}
	return &out
}

// RemoveByID returns a rebuilt tree with the node matching id (and its
// entire subtree) removed from its parent's children, at every level.
// Calling this with the tree's own root ID produces a copy with children
// intact - a rootless result cannot be expressed, so root protection is
// the caller's job.
func RemoveByID(n *Node, id string) *Node {
	if n == nil {
		return nil
	}
	out := *n
	if len(n.Children) > 0 {
		kept := make([]*Node, 0, len(n.Children))
		for _, c := range n.Children {
			if c.ID == id {
				continue
			}
			kept = append(kept, RemoveByID(c, id))
		}
		if len(kept) == 0 {
			kept = nil
		}
		out.Children = kept
	}
	return &out
}

// Clone returns a deep copy of the tree.
func Clone(n *Node) *Node {
	if n == nil {
		return nil
	}
	out := *n
	if len(n.Children) > 0 {
		out.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = Clone(c)
		}
	}
	return &out
}

// Count returns the total number of nodes in the tree, including the
// node itself. Returns 0 for a nil tree.
func Count(n *Node) int {
	if n == nil {
		return 0
	}
	total := 1
	for _, c := range n.Children {
		total += Count(c)
	}
	return total
}
