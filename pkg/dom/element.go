package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Attr returns the value of key on n.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// SetAttr creates or overwrites key on n.
func SetAttr(n *html.Node, key, value string) {
	if n == nil || key == "" {
		return
	}
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

// RemoveAttr drops key from n.
func RemoveAttr(n *html.Node, key string) {
	if n == nil {
		return
	}
	kept := n.Attr[:0]
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			continue
		}
		kept = append(kept, attr)
	}
	n.Attr = kept
}

// Classes returns the class tokens of n.
func Classes(n *html.Node) []string {
	value, ok := Attr(n, "class")
	if !ok {
		return nil
	}
	return strings.Fields(value)
}

// HasClass reports whether class is one of the class tokens of n.
func HasClass(n *html.Node, class string) bool {
	if class == "" {
		return false
	}
	for _, token := range Classes(n) {
		if token == class {
			return true
		}
	}
	return false
}

// AddClass appends class unless it is already present.
func AddClass(n *html.Node, class string) {
	if n == nil || class == "" || HasClass(n, class) {
		return
	}
	tokens := append(Classes(n), class)
	SetAttr(n, "class", strings.Join(tokens, " "))
}

// RemoveClass drops every occurrence of class. The class attribute itself
// is kept, as a browser would.
func RemoveClass(n *html.Node, class string) {
	if n == nil || class == "" || !HasClass(n, class) {
		return
	}
	tokens := Classes(n)
	kept := tokens[:0]
	for _, token := range tokens {
		if token != class {
			kept = append(kept, token)
		}
	}
	SetAttr(n, "class", strings.Join(kept, " "))
}

// Dataset reads the data-<name> attribute.
func Dataset(n *html.Node, name string) (string, bool) {
	return Attr(n, "data-"+strings.ToLower(name))
}

// SetDataset writes the data-<name> attribute.
func SetDataset(n *html.Node, name, value string) {
	SetAttr(n, "data-"+strings.ToLower(name), value)
}

// RemoveDataset drops the data-<name> attribute.
func RemoveDataset(n *html.Node, name string) {
	RemoveAttr(n, "data-"+strings.ToLower(name))
}

// Checked reports the checked state of an input.
func Checked(n *html.Node) bool {
	_, ok := Attr(n, "checked")
	return ok
}

// SetChecked toggles the checked attribute.
func SetChecked(n *html.Node, checked bool) {
	if checked {
		SetAttr(n, "checked", "")
		return
	}
	RemoveAttr(n, "checked")
}

// Value returns the value attribute.
func Value(n *html.Node) string {
	value, _ := Attr(n, "value")
	return value
}

// SetValue writes the value attribute.
func SetValue(n *html.Node, value string) {
	SetAttr(n, "value", value)
}

// Ancestor walks levels parents up from n. It returns nil when the tree is
// not deep enough or the node reached is not an element.
func Ancestor(n *html.Node, levels int) *html.Node {
	cur := n
	for i := 0; i < levels && cur != nil; i++ {
		cur = cur.Parent
	}
	if cur == nil || cur.Type != html.ElementNode {
		return nil
	}
	return cur
}

// Closest returns n or its nearest ancestor accepted by match.
func Closest(n *html.Node, match func(*html.Node) bool) *html.Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if match(cur) {
			return cur
		}
	}
	return nil
}
