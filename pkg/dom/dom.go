// Package dom is a read-only, index-addressed view of a parsed HTML tree.
//
// Nodes are stored in pre-order, so document order is index order and the
// subtree of node i is the half-open range [i, End(i)). Parent, child and
// sibling links are indices; the tree is never mutated after Build, which
// makes it safe to share between extraction passes.
package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// None is returned by lookups that find nothing.
const None = -1

type NodeType uint8

const (
	ElementNode NodeType = iota + 1
	TextNode
)

type node struct {
	typ      NodeType
	tag      string
	data     string
	attrs    []html.Attribute
	parent   int
	children []int
	next     int
	end      int
}

// Tree is an immutable arena of nodes.
type Tree struct {
	nodes []node
}

// Build indexes the subtree rooted at root. Comments and doctypes are
// dropped; a document node becomes an element with an empty tag.
func Build(root *html.Node) *Tree {
	t := &Tree{}
	if root != nil {
		t.add(root, None)
	}
	return t
}

func (t *Tree) add(n *html.Node, parent int) int {
	idx := len(t.nodes)
	nd := node{parent: parent, next: None}
	switch n.Type {
	case html.TextNode:
		nd.typ = TextNode
		nd.data = n.Data
	case html.ElementNode:
		nd.typ = ElementNode
		nd.tag = strings.ToLower(n.Data)
		nd.attrs = append([]html.Attribute(nil), n.Attr...)
	default:
		nd.typ = ElementNode
	}
	t.nodes = append(t.nodes, nd)

	prev := None
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode && c.Type != html.TextNode {
			continue
		}
		ci := t.add(c, idx)
		t.nodes[idx].children = append(t.nodes[idx].children, ci)
		if prev != None {
			t.nodes[prev].next = ci
		}
		prev = ci
	}
	t.nodes[idx].end = len(t.nodes)
	return idx
}

func (t *Tree) Len() int {
	return len(t.nodes)
}

func (t *Tree) valid(i int) bool {
	return i >= 0 && i < len(t.nodes)
}

func (t *Tree) IsElement(i int) bool {
	return t.valid(i) && t.nodes[i].typ == ElementNode
}

func (t *Tree) IsText(i int) bool {
	return t.valid(i) && t.nodes[i].typ == TextNode
}

// Tag returns the lower-cased element name, or "" for text and invalid nodes.
func (t *Tree) Tag(i int) string {
	if !t.valid(i) {
		return ""
	}
	return t.nodes[i].tag
}

// Data returns the raw content of a text node.
func (t *Tree) Data(i int) string {
	if !t.valid(i) {
		return ""
	}
	return t.nodes[i].data
}

func (t *Tree) Attr(i int, key string) (string, bool) {
	if !t.valid(i) {
		return "", false
	}
	for _, a := range t.nodes[i].attrs {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func (t *Tree) ID(i int) string {
	id, _ := t.Attr(i, "id")
	return id
}

// HasClass reports whether class is one of the space-separated classes of node i.
func (t *Tree) HasClass(i int, class string) bool {
	classes, ok := t.Attr(i, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(classes) {
		if c == class {
			return true
		}
	}
	return false
}

func (t *Tree) Parent(i int) int {
	if !t.valid(i) {
		return None
	}
	return t.nodes[i].parent
}

// Children returns a copy of the child indices of node i.
func (t *Tree) Children(i int) []int {
	if !t.valid(i) {
		return nil
	}
	return append([]int(nil), t.nodes[i].children...)
}

// ChildElements returns the element children of i that match p, in order.
// A nil predicate matches every element.
func (t *Tree) ChildElements(i int, p Predicate) []int {
	if !t.valid(i) {
		return nil
	}
	var out []int
	for _, c := range t.nodes[i].children {
		if t.IsElement(c) && (p == nil || p(t, c)) {
			out = append(out, c)
		}
	}
	return out
}

func (t *Tree) NextSibling(i int) int {
	if !t.valid(i) {
		return None
	}
	return t.nodes[i].next
}

// NextElementSibling skips text siblings.
func (t *Tree) NextElementSibling(i int) int {
	for s := t.NextSibling(i); s != None; s = t.NextSibling(s) {
		if t.IsElement(s) {
			return s
		}
	}
	return None
}

// End returns one past the last index of the subtree rooted at i.
func (t *Tree) End(i int) int {
	if !t.valid(i) {
		return None
	}
	return t.nodes[i].end
}

// Contains reports whether j is a proper descendant of i.
func (t *Tree) Contains(i, j int) bool {
	return t.valid(i) && j > i && j < t.nodes[i].end
}
