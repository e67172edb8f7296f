// Package dom wraps golang.org/x/net/html nodes with the small set of
// browser style queries the drag controller relies on: class lists, data
// attributes, document order lookups and outer HTML replacement.
package dom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Document is a parsed HTML tree. Nodes handed out by the query helpers
// stay owned by the document; mutating them mutates the document.
type Document struct {
	root *html.Node
}

// Parse reads a full HTML document.
func Parse(r io.Reader) (*Document, error) {
	if r == nil {
		return nil, errors.New("dom: missing reader")
	}
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse document: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// NewDocument wraps an existing tree.
func NewDocument(root *html.Node) *Document {
	return &Document{root: root}
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	if d == nil {
		return nil
	}
	return d.root
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	if d == nil || d.root == nil {
		return errors.New("dom: document is nil")
	}
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("dom: render document: %w", err)
	}
	return nil
}

// String renders the document, returning an empty string on failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// ElementsByClass returns every element carrying class, in document order.
func (d *Document) ElementsByClass(class string) []*html.Node {
	if d == nil || class == "" {
		return nil
	}
	var out []*html.Node
	walk(d.root, func(n *html.Node) {
		if n.Type == html.ElementNode && HasClass(n, class) {
			out = append(out, n)
		}
	})
	return out
}

// ElementsByTagAndClass mirrors querySelectorAll("tag.class").
func (d *Document) ElementsByTagAndClass(tag, class string) []*html.Node {
	if d == nil || tag == "" || class == "" {
		return nil
	}
	tag = strings.ToLower(tag)
	var out []*html.Node
	walk(d.root, func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag && HasClass(n, class) {
			out = append(out, n)
		}
	})
	return out
}

// ElementByID returns the first element whose id attribute equals id.
func (d *Document) ElementByID(id string) *html.Node {
	if d == nil || id == "" {
		return nil
	}
	var found *html.Node
	walk(d.root, func(n *html.Node) {
		if found != nil || n.Type != html.ElementNode {
			return
		}
		if value, ok := Attr(n, "id"); ok && value == id {
			found = n
		}
	})
	return found
}

// FirstByTag returns the first descendant of n (n excluded) with the given
// tag name, matching getElementsByTagName(tag)[0].
func FirstByTag(n *html.Node, tag string) *html.Node {
	if n == nil || tag == "" {
		return nil
	}
	tag = strings.ToLower(tag)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := firstByTag(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func firstByTag(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := firstByTag(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// Contains reports whether n is ancestor or equal to other.
func Contains(n, other *html.Node) bool {
	for cur := other; cur != nil; cur = cur.Parent {
		if cur == n {
			return true
		}
	}
	return false
}

func walk(n *html.Node, fn func(*html.Node)) {
	if n == nil {
		return
	}
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}
