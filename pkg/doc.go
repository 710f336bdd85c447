// Package pkg provides the core libraries for the mindmap engine.
//
// # Overview
//
// The engine turns editable hierarchical trees into laid-out, renderable
// mindmap graphs. The pkg directory is organized into four main areas:
//
//  1. Domain - Tree and graph structures (hierarchy, graph)
//  2. Engines - Layout computation and rendering (layout, render)
//  3. Editing - Stateful view control and interchange (workspace, io)
//  4. Infrastructure - Persistence, caching, config (store, cache, config)
//
// # Architecture
//
// The typical data flow through the engine:
//
//	Hierarchical Tree (hierarchy)
//	         ↓
//	    [graph] package (flatten + collapse filter)
//	         ↓
//	    [layout] package (tree / force / radial positions)
//	         ↓
//	    [render] package (DOT, SVG, PDF, PNG output)
//
// # Quick Start
//
// Flatten a tree, lay it out, and render an SVG:
//
//	import (
//	    "github.com/jhaabhiiishek/mindmap-assignment/pkg/graph"
//	    "github.com/jhaabhiiishek/mindmap-assignment/pkg/layout"
//	    "github.com/jhaabhiiishek/mindmap-assignment/pkg/render"
//	)
//
//	// 1. Flatten the hierarchy into nodes and edges
//	nodes, edges := graph.Flatten(root, 0, "")
//
//	// 2. Compute positions
//	nodes = layout.New(layout.ModeTree, layout.DefaultConfig()).Layout(nodes, edges)
//
//	// 3. Render to SVG
//	dot := render.ToDOT(nodes, edges, render.Options{Pinned: true})
//	svg, _ := render.RenderSVG(dot)
//
// # Main Packages
//
// ## Domain
//
// [hierarchy] - The editable tree: recursive nodes with labels, summaries,
// details, expansion state, and saved positions. All mutations (add, delete,
// patch, move) happen here.
//
// [graph] - The flat view: pre-order flattening of a hierarchy into node and
// edge arrays, plus the collapse-visibility filter that hides descendants of
// collapsed nodes.
//
// ## Engines
//
// [layout] - Three layout engines behind a common interface: layered tree
// (depth columns), force-directed (spring simulation with phyllotaxis
// seeding), and radial (concentric depth rings). Saved node positions pin
// nodes in place.
//
// [render] - DOT generation and format conversion (SVG via Graphviz, PDF and
// PNG via rsvg-convert).
//
// ## Editing
//
// [workspace] - The stateful view controller: selection, collapse toggling,
// drill navigation, layout mode switching, and the map collection. Every
// mutation re-runs the flatten → filter → layout pipeline and persists the
// result.
//
// [io] - JSON interchange: validated import of hierarchical trees and
// indented export.
//
// ## Infrastructure
//
// [store] - Map persistence backends: memory (testing), file (CLI), Redis,
// and MongoDB (API deployments).
//
// [cache] - Content-addressed byte cache for layout views and render
// artifacts, with file-backed and null implementations.
//
// [config] - TOML configuration layered over defaults for the server, store
// backends, and layout spacing.
//
// [observability] - Optional hooks for instrumenting layout, render, and
// cache operations without hard backend dependencies.
//
// [errors] - Structured error codes shared by the CLI and HTTP API.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/layout/...    # Specific package
//
// [hierarchy]: https://pkg.go.dev/github.com/jhaabhiiishek/mindmap-assignment/pkg/hierarchy
// [graph]: https://pkg.go.dev/github.com/jhaabhiiishek/mindmap-assignment/pkg/graph
// [layout]: https://pkg.go.dev/github.com/jhaabhiiishek/mindmap-assignment/pkg/layout
// [render]: https://pkg.go.dev/github.com/jhaabhiiishek/mindmap-assignment/pkg/render
// [workspace]: https://pkg.go.dev/github.com/jhaabhiiishek/mindmap-assignment/pkg/workspace
// [io]: https://pkg.go.dev/github.com/jhaabhiiishek/mindmap-assignment/pkg/io
// [store]: https://pkg.go.dev/github.com/jhaabhiiishek/mindmap-assignment/pkg/store
// [cache]: https://pkg.go.dev/github.com/jhaabhiiishek/mindmap-assignment/pkg/cache
// [config]: https://pkg.go.dev/github.com/jhaabhiiishek/mindmap-assignment/pkg/config
// [observability]: https://pkg.go.dev/github.com/jhaabhiiishek/mindmap-assignment/pkg/observability
// [errors]: https://pkg.go.dev/github.com/jhaabhiiishek/mindmap-assignment/pkg/errors
package pkg
