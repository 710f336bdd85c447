// Package layout computes visual positions for flattened mindmap graphs.
//
// Three engines share one contract: given the flat nodes and edges of a
// mindmap view, return the same nodes with their positions replaced. An
// empty graph is returned unchanged and a single node is placed at the
// origin. Nothing is incremental - every call positions the full visible
// node set from scratch, so positions may jump between edits.
//
// All engines work internally in node centers and correct the final
// coordinates to top-left corners, which is what the rendering contract
// expects.
package layout

import (
	"fmt"

	"github.com/jhaabhiiishek/mindmap-assignment/pkg/graph"
)

// Fixed bounding box assigned to every node. Layout does not measure
// labels; the renderer clips or wraps text inside this box.
const (
	NodeWidth  = 172.0
	NodeHeight = 60.0
)

// Mode selects a layout engine.
type Mode string

const (
	// ModeTree is the layered top-to-bottom tree layout.
	ModeTree Mode = "tree"
	// ModeForce is the force-directed simulation layout.
	ModeForce Mode = "force"
	// ModeRadial is the deterministic polar layout.
	ModeRadial Mode = "radial"
)

// DefaultMode is used when a map record carries no layout mode.
const DefaultMode = ModeTree

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeTree, ModeForce, ModeRadial:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown layout mode %q (want tree, force, or radial)", s)
	}
}

// Config carries the tunable spacing and simulation constants shared by
// the engines. Use [DefaultConfig] as a starting point.
type Config struct {
	// HSpacing is the horizontal gap between sibling boxes in the tree layout.
	HSpacing float64
	// VSpacing is the vertical gap between ranks in the tree layout.
	VSpacing float64
	// LinkDistance is the spring rest length of the force layout.
	LinkDistance float64
	// Charge is the pairwise repulsion strength of the force layout
	// (negative repels).
	Charge float64
	// Iterations is the fixed number of simulation steps of the force
	// layout. There is no convergence check.
	Iterations int
	// RadialStep is the radial distance added per depth level in the
	// radial layout.
	RadialStep float64
}

// DefaultConfig returns the stock layout constants.
func DefaultConfig() Config {
	return Config{
		HSpacing:     40,
		VSpacing:     80,
		LinkDistance: 120,
		Charge:       -800,
		Iterations:   300,
		RadialStep:   180,
	}
}

// Engine positions a flat graph. Implementations must not reorder or drop
// nodes: the returned slice holds the input nodes, position replaced.
type Engine interface {
	Layout(nodes []graph.Node, edges []graph.Edge) []graph.Node
}

// New returns the engine for mode, falling back to the tree engine for an
// unrecognized mode.
func New(mode Mode, cfg Config) Engine {
	switch mode {
	case ModeForce:
		return &ForceEngine{cfg: cfg}
	case ModeRadial:
		return &RadialEngine{cfg: cfg}
	default:
		return &TreeEngine{cfg: cfg}
	}
}

// point is a working coordinate in center space.
type point struct {
	x, y float64
}

// applyCenters writes center coordinates back onto a node slice, corrected
// to top-left corners. Nodes without an entry keep their prior position.
func applyCenters(nodes []graph.Node, centers map[string]point) []graph.Node {
	out := make([]graph.Node, len(nodes))
	for i, n := range nodes {
		if c, ok := centers[n.ID]; ok {
			n.Position = graph.Position{
				X: c.x - NodeWidth/2,
				Y: c.y - NodeHeight/2,
			}
		}
		out[i] = n
	}
	return out
}

// singleNode places the only node at the origin, satisfying the shared
// single-node contract without running the full algorithm.
func singleNode(nodes []graph.Node) []graph.Node {
	out := make([]graph.Node, 1)
	out[0] = nodes[0]
	out[0].Position = graph.Position{}
	return out
}
