package dom

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// ErrDetached is returned when an outer HTML replacement targets a node
// without an element parent.
var ErrDetached = errors.New("dom: node has no element parent")

// OuterHTML serialises n together with its subtree.
func OuterHTML(n *html.Node) (string, error) {
	if n == nil {
		return "", errors.New("dom: node is nil")
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", fmt.Errorf("dom: render node: %w", err)
	}
	return buf.String(), nil
}

// ParseFragmentFor parses markup in the context of the parent of n, which
// is how a browser interprets an outerHTML assignment on n.
func ParseFragmentFor(n *html.Node, markup string) ([]*html.Node, error) {
	if n == nil {
		return nil, errors.New("dom: node is nil")
	}
	parent := n.Parent
	if parent == nil || parent.Type != html.ElementNode {
		return nil, ErrDetached
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), parent)
	if err != nil {
		return nil, fmt.Errorf("dom: parse fragment: %w", err)
	}
	return nodes, nil
}

// ReplaceWith swaps n for nodes at the same position. An empty nodes slice
// removes n.
func ReplaceWith(n *html.Node, nodes []*html.Node) error {
	if n == nil {
		return errors.New("dom: node is nil")
	}
	parent := n.Parent
	if parent == nil {
		return ErrDetached
	}
	for _, node := range nodes {
		if node.Parent != nil {
			node.Parent.RemoveChild(node)
		}
		parent.InsertBefore(node, n)
	}
	parent.RemoveChild(n)
	return nil
}

// ReplaceOuterHTML is the equivalent of n.outerHTML = markup.
func ReplaceOuterHTML(n *html.Node, markup string) ([]*html.Node, error) {
	nodes, err := ParseFragmentFor(n, markup)
	if err != nil {
		return nil, err
	}
	if err := ReplaceWith(n, nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}
