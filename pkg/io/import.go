package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jhaabhiiishek/mindmap-assignment/pkg/errors"
	"github.com/jhaabhiiishek/mindmap-assignment/pkg/hierarchy"
)

// ReadJSON decodes a JSON mindmap tree from r.
//
// The input must be a single nested node object; see the package
// documentation for the format. ReadJSON returns an error if:
//   - The JSON is malformed or invalid
//   - Any node is missing its "id" or "label" field
//   - Two nodes share the same ID
//
// Errors carry the INVALID_FORMAT code and name the offending node. The
// returned tree is independent of r and can be modified safely after
// ReadJSON returns. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*hierarchy.Node, error) {
	var root hierarchy.Node
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode mindmap")
	}
	if err := validate(&root); err != nil {
		return nil, err
	}
	return &root, nil
}

// ImportJSON reads a JSON file at path and returns the decoded tree.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. It returns the same validation errors as [ReadJSON] for malformed
// trees; open failures wrap the underlying cause with the file path.
func ImportJSON(path string) (*hierarchy.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// validate walks the tree checking the structural rules the model
// assumes: ids and labels present everywhere, ids unique.
func validate(root *hierarchy.Node) error {
	seen := make(map[string]struct{})

	var walk func(n *hierarchy.Node, path string) error
	walk = func(n *hierarchy.Node, path string) error {
		if n == nil {
			return errors.New(errors.ErrCodeInvalidFormat, "null node at %s", path)
		}
		if n.ID == "" {
			return errors.New(errors.ErrCodeInvalidFormat, "node at %s has no id", path)
		}
		if n.Label == "" {
			return errors.New(errors.ErrCodeInvalidFormat, "node %q has no label", n.ID)
		}
		if _, dup := seen[n.ID]; dup {
			return errors.New(errors.ErrCodeInvalidFormat, "duplicate node id %q", n.ID)
		}
		seen[n.ID] = struct{}{}

		for i, c := range n.Children {
			if err := walk(c, fmt.Sprintf("%s/children[%d]", path, i)); err != nil {
				return err
			}
		}
		return nil
	}

	return walk(root, "root")
}
