package adf

import (
	"fmt"
	"slices"

	"github.com/custodia-labs/conflu-cli/internal/core/domain"
)

// ExtensionRef addresses one bodiedExtension node inside the tree.
// Path holds child indexes from the root sequence down to the node, stable
// for as long as the surrounding tree is not restructured.
type ExtensionRef struct {
	Path  []int
	Key   string
	Title string
}

// FindExtensions walks the entire tree depth-first, including inside
// sections, lists, and tables, and reports every bodiedExtension. A wrapper
// without the required extensionKey attribute makes the tree malformed.
func FindExtensions(nodes []Node) ([]ExtensionRef, error) {
	var refs []ExtensionRef
	var walk func(nodes []Node, prefix []int) error
	walk = func(nodes []Node, prefix []int) error {
		for i, n := range nodes {
			path := append(slices.Clone(prefix), i)
			if n.Type == TypeBodiedExtension {
				key, ok := n.Attrs["extensionKey"].(string)
				if !ok || key == "" {
					return fmt.Errorf("%w: bodiedExtension at %v missing extensionKey", domain.ErrMalformedTree, path)
				}
				refs = append(refs, ExtensionRef{Path: path, Key: key, Title: extensionTitle(n)})
			}
			if err := walk(n.Content, path); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(nodes, nil); err != nil {
		return nil, err
	}
	return refs, nil
}

// findExtension locates the first bodiedExtension whose title matches
// exactly.
func findExtension(nodes []Node, title string) (ExtensionRef, error) {
	refs, err := FindExtensions(nodes)
	if err != nil {
		return ExtensionRef{}, err
	}
	for _, ref := range refs {
		if ref.Title == title {
			return ref, nil
		}
	}
	return ExtensionRef{}, fmt.Errorf("extension %q: %w", title, domain.ErrNotFound)
}

// ExtractExtension returns the body sequence of the first bodiedExtension
// matching the title.
func ExtractExtension(nodes []Node, title string) ([]Node, error) {
	ref, err := findExtension(nodes, title)
	if err != nil {
		return nil, err
	}
	return slices.Clone(nodeAt(nodes, ref.Path).Content), nil
}

// ReplaceExtension returns a new tree with the matched extension's body
// replaced. The wrapper's attribute bag, macro identifier, and instance
// identifier are copied through unchanged, as are all sibling and ancestor
// nodes. An empty body is legal and yields an emptied macro, not a removed
// node.
func ReplaceExtension(nodes []Node, title string, body []Node) ([]Node, error) {
	ref, err := findExtension(nodes, title)
	if err != nil {
		return nil, err
	}
	if body == nil {
		body = []Node{}
	}
	return replaceAt(nodes, ref.Path, slices.Clone(body)), nil
}

// nodeAt resolves an index path to a node.
func nodeAt(nodes []Node, path []int) Node {
	n := nodes[path[0]]
	for _, i := range path[1:] {
		n = n.Content[i]
	}
	return n
}

// replaceAt rebuilds the spine along path with a new body at the leaf,
// sharing every untouched subtree with the input.
func replaceAt(nodes []Node, path []int, body []Node) []Node {
	out := slices.Clone(nodes)
	n := out[path[0]]
	if len(path) == 1 {
		n.Content = body
	} else {
		n.Content = replaceAt(n.Content, path[1:], body)
	}
	out[path[0]] = n
	return out
}

// extensionTitle digs the macro title out of the wrapper attribute bag.
func extensionTitle(n Node) string {
	params, ok := n.Attrs["parameters"].(map[string]any)
	if !ok {
		return ""
	}
	meta, ok := params["macroMetadata"].(map[string]any)
	if !ok {
		return ""
	}
	title, _ := meta["title"].(string)
	return title
}
