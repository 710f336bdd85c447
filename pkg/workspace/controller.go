// Package workspace owns the live state of a mindmap editing session.
//
// The [Controller] is the single owner of the active hierarchy tree and of
// everything derived from it: the committed flat node/edge arrays handed
// to renderers, the selection, the collapse set, the layout mode, and the
// drill-navigation stack. Every mutating operation runs the same pipeline:
//
//	mutate or navigate → flatten → filter by collapse (whole-tree views
//	only) → layout → commit → persist the active map record
//
// The controller is single-threaded by design: operations run to
// completion before the next is accepted, layout is pure CPU work done
// inline, and renderers read the committed arrays only between operations.
// Persistence is fire-and-forget - a failing store is logged and never
// surfaces through the editing contract.
package workspace

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/jhaabhiiishek/mindmap-assignment/pkg/errors"
	"github.com/jhaabhiiishek/mindmap-assignment/pkg/graph"
	"github.com/jhaabhiiishek/mindmap-assignment/pkg/hierarchy"
	"github.com/jhaabhiiishek/mindmap-assignment/pkg/layout"
	"github.com/jhaabhiiishek/mindmap-assignment/pkg/store"
)

// DefaultMapName names the map created when the store is empty.
const DefaultMapName = "Untitled Map"

// Controller orchestrates one mindmap workspace over a storage backend.
// Not safe for concurrent use: callers serialize operations, matching the
// one-logical-owner model of an event-driven UI.
type Controller struct {
	logger *log.Logger
	store  store.Store
	cfg    layout.Config

	active *store.Map

	root      *hierarchy.Node
	nodes     []graph.Node
	edges     []graph.Edge
	selected  string
	collapsed map[string]struct{}
	mode      layout.Mode

	drillStack []string
	drillID    string // current drill target, "" means whole-tree view
}

// NodeData carries caller-supplied fields for a new node. ID is optional
// (a UUID is synthesized when empty). ParentDepth is a display hint used
// only to pick the advisory node kind; it is not checked against the tree.
type NodeData struct {
	ID          string
	Label       string
	Summary     string
	Details     string
	ParentDepth int
}

// New creates a controller over the given store. If the store holds no
// maps, a starter map with a bare root node is created and persisted;
// otherwise the oldest map becomes active.
func New(ctx context.Context, st store.Store, logger *log.Logger, cfg layout.Config) (*Controller, error) {
	if logger == nil {
		logger = log.Default()
	}

	c := &Controller{
		logger:    logger,
		store:     st,
		cfg:       cfg,
		collapsed: make(map[string]struct{}),
		mode:      layout.DefaultMode,
	}

	maps, err := st.List(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list maps")
	}
	if len(maps) == 0 {
		m := store.NewMap(DefaultMapName, defaultTree())
		if err := st.Save(ctx, m); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorage, err, "create starter map")
		}
		maps = []*store.Map{m}
	}

	c.activate(maps[0])
	return c, nil
}

// defaultTree is the seed hierarchy of a fresh map.
func defaultTree() *hierarchy.Node {
	return &hierarchy.Node{
		ID:    uuid.NewString(),
		Label: "Central Idea",
		Kind:  hierarchy.KindRoot,
	}
}

// activate projects a map record into working state and commits a view.
func (c *Controller) activate(m *store.Map) {
	c.active = m
	c.root = hierarchy.Clone(m.Root)
	c.collapsed = m.CollapsedSet()
	c.selected = ""
	c.drillStack = nil
	c.drillID = ""

	mode, err := layout.ParseMode(m.LayoutMode)
	if err != nil {
		mode = layout.DefaultMode
	}
	c.mode = mode

	c.refresh()
}

// refresh re-derives the committed node/edge arrays from current state:
// flatten (whole tree, or the drill target as its own mini-root), filter
// by the collapse set (never while drilled - drilling already narrows
// scope and shows the subtree in full), then layout.
func (c *Controller) refresh() {
	var nodes []graph.Node
	var edges []graph.Edge

	if c.drillID != "" {
		target := hierarchy.FindByID(c.root, c.drillID)
		if target == nil {
			// The drill target was edited away; fall back to the whole tree.
			c.drillStack = nil
			c.drillID = ""
		} else {
			nodes, edges = graph.Flatten(target, 0, "")
		}
	}
	if c.drillID == "" {
		nodes, edges = graph.Flatten(c.root, 0, "")
		nodes, edges = graph.FilterCollapsed(nodes, edges, c.collapsed)
	}

	c.nodes = layout.New(c.mode, c.cfg).Layout(nodes, edges)
	c.edges = edges
}

// persist writes current state back into the active map record. Failures
// are logged and swallowed: storage is a side effect of editing, not part
// of its contract.
func (c *Controller) persist(ctx context.Context) {
	c.active.Root = hierarchy.Clone(c.root)
	c.active.SetCollapsed(store.CollapsedList(c.collapsed))
	c.active.LayoutMode = string(c.mode)

	if err := c.store.Save(ctx, c.active); err != nil {
		c.logger.Error("persist map failed", "map", c.active.ID, "err", err)
	}
}

// =============================================================================
// Committed view accessors
// =============================================================================

// Nodes returns the committed flat nodes of the current view.
// The slice is owned by the controller; treat it as read-only.
func (c *Controller) Nodes() []graph.Node { return c.nodes }

// Edges returns the committed flat edges of the current view.
func (c *Controller) Edges() []graph.Edge { return c.edges }

// Hierarchy returns a deep copy of the active tree, e.g. for JSON export.
func (c *Controller) Hierarchy() *hierarchy.Node { return hierarchy.Clone(c.root) }

// Selected returns the selected node ID, or "" when nothing is selected.
func (c *Controller) Selected() string { return c.selected }

// Mode returns the active layout mode.
func (c *Controller) Mode() layout.Mode { return c.mode }

// IsCollapsed reports whether a node is in the collapse set.
func (c *Controller) IsCollapsed(id string) bool {
	_, ok := c.collapsed[id]
	return ok
}

// Drilled reports whether the view is narrowed to a subtree, and to which
// node.
func (c *Controller) Drilled() (string, bool) { return c.drillID, c.drillID != "" }

// ActiveMap returns the active map record's identity fields.
func (c *Controller) ActiveMap() (id, name string) {
	return c.active.ID, c.active.Name
}

// =============================================================================
// Tree mutations
// =============================================================================

// Initialize replaces the active hierarchy wholesale, clears selection and
// drill state, and runs the full pipeline. Used by importers.
func (c *Controller) Initialize(ctx context.Context, tree *hierarchy.Node) error {
	if tree == nil {
		return errors.New(errors.ErrCodeInvalidInput, "cannot initialize from an empty tree")
	}
	c.root = hierarchy.Clone(tree)
	c.selected = ""
	c.drillStack = nil
	c.drillID = ""
	c.collapsed = make(map[string]struct{})
	c.refresh()
	c.persist(ctx)
	return nil
}

// SelectNode records the selection. Pure state change: no re-flatten, no
// re-layout. Passing "" clears the selection.
func (c *Controller) SelectNode(id string) { c.selected = id }

// AddNode inserts a new node under parentID and re-runs the full pipeline.
// The new node's ID is returned. The advisory kind is chosen from the
// caller's depth hint alone: children of a root-depth parent are "child",
// everything deeper is "grandchild".
func (c *Controller) AddNode(ctx context.Context, parentID string, data NodeData) (string, error) {
	if hierarchy.FindByID(c.root, parentID) == nil {
		return "", errors.New(errors.ErrCodeNodeNotFound, "parent node %q not in tree", parentID)
	}

	id := data.ID
	if id == "" {
		id = uuid.NewString()
	}
	kind := hierarchy.KindGrandchild
	if data.ParentDepth == 0 {
		kind = hierarchy.KindChild
	}

	c.root = hierarchy.InsertChild(c.root, parentID, &hierarchy.Node{
		ID:      id,
		Label:   data.Label,
		Kind:    kind,
		Summary: data.Summary,
		Details: data.Details,
	})
	c.refresh()
	c.persist(ctx)
	return id, nil
}

// DeleteNode removes a node and its whole subtree. The root is permanently
// protected at this layer: deleting it is rejected and the tree is left
// untouched. Deleting the selected node clears the selection.
func (c *Controller) DeleteNode(ctx context.Context, id string) error {
	if id == c.root.ID {
		return errors.New(errors.ErrCodeRootProtected, "the root node cannot be deleted")
	}

	c.root = hierarchy.RemoveByID(c.root, id)
	if c.selected == id {
		c.selected = ""
	}
	delete(c.collapsed, id)
	c.refresh()
	c.persist(ctx)
	return nil
}

// UpdateLabel patches a node's label in the hierarchy and in the committed
// flat view in place, without re-flattening or re-layout. Editing a text
// field cannot change structure, so the derived fields stay valid - this
// keeps per-keystroke edits cheap.
func (c *Controller) UpdateLabel(ctx context.Context, id, label string) {
	c.updateText(ctx, id, hierarchy.Patch{Label: &label}, func(n *graph.Node) { n.Label = label })
}

// UpdateSummary patches a node's summary; see [Controller.UpdateLabel].
func (c *Controller) UpdateSummary(ctx context.Context, id, summary string) {
	c.updateText(ctx, id, hierarchy.Patch{Summary: &summary}, func(n *graph.Node) { n.Summary = summary })
}

// UpdateDetails patches a node's details; see [Controller.UpdateLabel].
func (c *Controller) UpdateDetails(ctx context.Context, id, details string) {
	c.updateText(ctx, id, hierarchy.Patch{Details: &details}, func(n *graph.Node) { n.Details = details })
}

func (c *Controller) updateText(ctx context.Context, id string, p hierarchy.Patch, apply func(*graph.Node)) {
	c.root = hierarchy.UpdateByID(c.root, id, p)
	for i := range c.nodes {
		if c.nodes[i].ID == id {
			apply(&c.nodes[i])
			break
		}
	}
	c.persist(ctx)
}

// MoveNode accepts a drag delta from the renderer as a direct position
// overwrite. No re-layout is triggered.
func (c *Controller) MoveNode(id string, x, y float64) {
	for i := range c.nodes {
		if c.nodes[i].ID == id {
			c.nodes[i].Position = graph.Position{X: x, Y: y}
			return
		}
	}
}

// =============================================================================
// Collapse / expand
// =============================================================================

// ToggleExpansion flips id's membership in the collapse set and rebuilds
// the view from the full tree. This operation always leaves drill mode:
// collapse state and drill scope are never combined.
func (c *Controller) ToggleExpansion(ctx context.Context, id string) {
	if _, ok := c.collapsed[id]; ok {
		delete(c.collapsed, id)
	} else {
		c.collapsed[id] = struct{}{}
	}
	c.drillStack = nil
	c.drillID = ""
	c.refresh()
	c.persist(ctx)
}

// ExpandAll clears the collapse set and rebuilds from the whole tree.
func (c *Controller) ExpandAll(ctx context.Context) {
	c.collapsed = make(map[string]struct{})
	c.refresh()
	c.persist(ctx)
}

// CollapseAll collapses every currently-visible non-root node that has
// children, replacing the collapse set. Nodes already hidden by an earlier
// collapse are not added - the operation sees only the current view.
func (c *Controller) CollapseAll(ctx context.Context) {
	next := make(map[string]struct{})
	for _, n := range c.nodes {
		if n.HasChildren && n.Depth > 0 {
			next[n.ID] = struct{}{}
		}
	}
	c.collapsed = next
	c.refresh()
	c.persist(ctx)
}

// =============================================================================
// Drill navigation
// =============================================================================

// DrillDown narrows the view to the subtree of nodeID (or of the current
// selection when nodeID is ""). The previous drill target, if any, is
// pushed for DrillUp. Fails with a user-facing error when there is no
// target or the target has no children to show. While drilled, the
// collapse filter is not applied.
func (c *Controller) DrillDown(nodeID string) error {
	target := nodeID
	if target == "" {
		target = c.selected
	}
	if target == "" {
		return errors.New(errors.ErrCodeNoSelection, "select a node to drill into")
	}

	node := hierarchy.FindByID(c.root, target)
	if node == nil {
		return errors.New(errors.ErrCodeNodeNotFound, "node %q not in tree", target)
	}
	if !node.HasChildren() {
		return errors.New(errors.ErrCodeNoChildren, "%q has no children to drill into", node.Label)
	}

	if c.drillID != "" {
		c.drillStack = append(c.drillStack, c.drillID)
	}
	c.drillID = target
	c.selected = ""
	c.refresh()
	return nil
}

// DrillUp pops one level of drill navigation. With an empty stack the view
// returns to the whole tree (full pipeline including the collapse filter);
// otherwise the popped ancestor becomes the drill target again.
func (c *Controller) DrillUp() {
	if c.drillID == "" {
		return
	}
	if len(c.drillStack) == 0 {
		c.drillID = ""
	} else {
		c.drillID = c.drillStack[len(c.drillStack)-1]
		c.drillStack = c.drillStack[:len(c.drillStack)-1]
	}
	c.refresh()
}

// =============================================================================
// Layout control
// =============================================================================

// SetLayoutMode stores the mode and re-runs only the layout step over the
// current visible arrays - no re-flatten, no re-filter.
func (c *Controller) SetLayoutMode(ctx context.Context, mode layout.Mode) error {
	m, err := layout.ParseMode(string(mode))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidMode, err, "set layout mode")
	}
	c.mode = m
	c.nodes = layout.New(c.mode, c.cfg).Layout(c.nodes, c.edges)
	c.persist(ctx)
	return nil
}

// ResetLayout recomputes canonical positions for the current arrays,
// discarding manual drag offsets. Layout step only.
func (c *Controller) ResetLayout() {
	c.nodes = layout.New(c.mode, c.cfg).Layout(c.nodes, c.edges)
}

// =============================================================================
// Map collection
// =============================================================================

// Maps lists all stored map records.
func (c *Controller) Maps(ctx context.Context) ([]*store.Map, error) {
	maps, err := c.store.List(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list maps")
	}
	return maps, nil
}

// NewMap creates, persists, and activates a fresh map.
func (c *Controller) NewMap(ctx context.Context, name string) (*store.Map, error) {
	if name == "" {
		name = DefaultMapName
	}
	m := store.NewMap(name, defaultTree())
	if err := c.store.Save(ctx, m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create map %q", name)
	}
	c.activate(m)
	return m, nil
}

// SwitchMap activates the map with the given ID.
func (c *Controller) SwitchMap(ctx context.Context, id string) error {
	m, err := c.store.Get(ctx, id)
	if err == store.ErrNotFound {
		return errors.New(errors.ErrCodeMapNotFound, "map %q does not exist", id)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "load map %s", id)
	}
	c.activate(m)
	return nil
}

// RenameMap renames a stored map, persisting immediately.
func (c *Controller) RenameMap(ctx context.Context, id, name string) error {
	if name == "" {
		return errors.New(errors.ErrCodeInvalidInput, "map name cannot be empty")
	}
	m, err := c.store.Get(ctx, id)
	if err == store.ErrNotFound {
		return errors.New(errors.ErrCodeMapNotFound, "map %q does not exist", id)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "load map %s", id)
	}
	m.Name = name
	if err := c.store.Save(ctx, m); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "rename map %s", id)
	}
	if c.active.ID == id {
		c.active.Name = name
	}
	return nil
}

// DeleteMap removes a stored map. Deleting the last remaining map is
// rejected: at least one map must always exist. When the active map is
// deleted, the oldest remaining map becomes active.
func (c *Controller) DeleteMap(ctx context.Context, id string) error {
	maps, err := c.store.List(ctx)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "list maps")
	}
	if len(maps) <= 1 {
		return errors.New(errors.ErrCodeLastMap, "cannot delete the only remaining map")
	}

	if err := c.store.Delete(ctx, id); err == store.ErrNotFound {
		return errors.New(errors.ErrCodeMapNotFound, "map %q does not exist", id)
	} else if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete map %s", id)
	}

	if c.active.ID == id {
		for _, m := range maps {
			if m.ID != id {
				c.activate(m)
				break
			}
		}
	}
	return nil
}
