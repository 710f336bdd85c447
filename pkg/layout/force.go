package layout

import (
	"math"

	"github.com/jhaabhiiishek/mindmap-assignment/pkg/graph"
)

// ForceEngine is the force-directed layout. Nodes are treated as charged
// particles: every pair repels, each edge acts as a spring toward the
// configured rest length, and a centering force keeps the whole layout
// around the origin. The simulation runs a fixed number of steps and stops
// unconditionally - "good enough" beats convergence checks here.
//
// Initial positions are seeded deterministically on a phyllotaxis spiral
// in insertion order, so the same input always produces the same layout.
type ForceEngine struct {
	cfg Config
}

// Simulation cooling constants. Alpha decays geometrically so that it
// reaches alphaMin at the configured iteration count.
const (
	alphaMin      = 0.001
	velocityDecay = 0.6
	linkStrength  = 0.1
	// Seed spiral constants: radius grows with the square root of the
	// index, the angle advances by the golden angle.
	seedRadius = 10.0
	seedAngle  = math.Pi * (3 - 2.2360679774997896) // π(3-√5)
)

// Layout implements [Engine].
func (e *ForceEngine) Layout(nodes []graph.Node, edges []graph.Edge) []graph.Node {
	if len(nodes) == 0 {
		return nodes
	}
	if len(nodes) == 1 {
		return singleNode(nodes)
	}

	n := len(nodes)
	pos := make([]point, n)
	vel := make([]point, n)
	index := make(map[string]int, n)
	for i, node := range nodes {
		index[node.ID] = i
		r := seedRadius * math.Sqrt(0.5+float64(i))
		a := float64(i) * seedAngle
		pos[i] = point{x: r * math.Cos(a), y: r * math.Sin(a)}
	}

	type link struct{ src, dst int }
	links := make([]link, 0, len(edges))
	for _, edge := range edges {
		si, sok := index[edge.Source]
		ti, tok := index[edge.Target]
		if sok && tok {
			links = append(links, link{src: si, dst: ti})
		}
	}

	iterations := e.cfg.Iterations
	if iterations <= 0 {
		iterations = DefaultConfig().Iterations
	}
	alpha := 1.0
	decay := 1 - math.Pow(alphaMin, 1/float64(iterations))

	for step := 0; step < iterations; step++ {
		alpha += (alphaMin - alpha) * decay

		// Pairwise charge repulsion.
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				dx := pos[j].x - pos[i].x
				dy := pos[j].y - pos[i].y
				distSq := dx*dx + dy*dy
				if distSq < 1 {
					// Coincident particles get a deterministic nudge.
					distSq = 1
					dx, dy = 1, 0
				}
				f := e.cfg.Charge * alpha / distSq
				fx, fy := dx*f, dy*f
				vel[i].x += fx
				vel[i].y += fy
				vel[j].x -= fx
				vel[j].y -= fy
			}
		}

		// Spring force along each edge.
		for _, l := range links {
			dx := pos[l.dst].x - pos[l.src].x
			dy := pos[l.dst].y - pos[l.src].y
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist < 1e-6 {
				dist = 1e-6
			}
			f := (dist - e.cfg.LinkDistance) / dist * linkStrength * alpha
			fx, fy := dx*f, dy*f
			vel[l.src].x += fx
			vel[l.src].y += fy
			vel[l.dst].x -= fx
			vel[l.dst].y -= fy
		}

		// Integrate with velocity decay, then recenter on the origin.
		var cx, cy float64
		for i := 0; i < n; i++ {
			vel[i].x *= velocityDecay
			vel[i].y *= velocityDecay
			pos[i].x += vel[i].x
			pos[i].y += vel[i].y
			cx += pos[i].x
			cy += pos[i].y
		}
		cx /= float64(n)
		cy /= float64(n)
		for i := 0; i < n; i++ {
			pos[i].x -= cx
			pos[i].y -= cy
		}
	}

	centers := make(map[string]point, n)
	for i, node := range nodes {
		centers[node.ID] = pos[i]
	}
	return applyCenters(nodes, centers)
}
