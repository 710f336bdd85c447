// Package io provides JSON import and export for mindmap hierarchies.
//
// # Overview
//
// This package serializes the recursive tree model to and from its JSON
// interchange format. The format is designed for:
//
//   - Seeding a map from an externally produced outline
//   - Backups and hand-editing of map content
//   - Round-trip preservation: import, edit, export, and re-import identically
//
// # JSON Format
//
// A map is a single nested object, one per node:
//
//	{
//	  "id": "root",
//	  "label": "Central Idea",
//	  "type": "root",
//	  "children": [
//	    {"id": "a", "label": "First Branch", "type": "child"},
//	    {"id": "b", "label": "Second Branch", "type": "child"}
//	  ]
//	}
//
// # Node Fields
//
// Required:
//   - id: Unique string identifier
//   - label: Display text
//
// Optional:
//   - type: Advisory kind ("root", "child", "grandchild")
//   - summary: Short hover text
//   - details: Long-form text
//   - children: Nested child nodes, order-significant
//
// # Import
//
// Use [ImportJSON] to read a tree from a file path, or [ReadJSON] to read
// from any io.Reader:
//
//	root, err := io.ImportJSON("map.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Both functions validate the decoded tree: every node needs an id and a
// label, and ids must be unique across the whole tree. Errors are wrapped
// with context about which node caused the problem.
//
// This is deliberately stricter than the in-memory model, which never
// checks id uniqueness and only requires the root to be well-formed.
// Inside the controller every node id was synthesized, so the freedom is
// harmless; in an externally produced file a duplicate or missing id
// would make every subsequent by-id edit ambiguous. The import boundary
// is where such files are rejected, before they can become map state.
//
// # Export
//
// Use [ExportJSON] to write a tree to a file, or [WriteJSON] to write to
// any io.Writer. The output is indented and includes every field the
// import accepts, so an exported tree re-imports identically.
package io
