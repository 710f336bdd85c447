// Package render turns a laid-out mindmap view into static artifacts.
//
// # Overview
//
// The editing surface draws the committed node/edge arrays itself; this
// package exists for everything outside that surface: file export, the
// CLI's render command, and the HTTP export endpoint. It provides:
//
//   - DOT generation from a flat view ([ToDOT])
//   - In-process SVG rendering via Graphviz ([RenderSVG])
//   - Generic format conversion, SVG to PDF/PNG ([ToPDF], [ToPNG])
//
// # Usage
//
// Convert a view to DOT format, then render to SVG:
//
//	dot := render.ToDOT(nodes, edges, render.Options{Pinned: true})
//	svg, err := render.RenderSVG(dot)
//
// For PDF or PNG output, convert the SVG:
//
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Pinned: pin each node to its computed layout position, so the
//     artifact matches the on-screen arrangement instead of Graphviz's own
//     hierarchy layout
//   - Detailed: include summary text in node labels
//
// # Dependencies
//
// SVG rendering uses [github.com/goccy/go-graphviz] in process. PDF and
// PNG conversion shell out to rsvg-convert (librsvg).
package render
