package dom

import "strings"

// Predicate selects nodes during a query.
type Predicate func(t *Tree, i int) bool

// IsTag matches elements with any of the given names.
func IsTag(names ...string) Predicate {
	return func(t *Tree, i int) bool {
		tag := t.Tag(i)
		if tag == "" {
			return false
		}
		for _, n := range names {
			if tag == n {
				return true
			}
		}
		return false
	}
}

// WithClass matches elements carrying any of the given classes.
func WithClass(classes ...string) Predicate {
	return func(t *Tree, i int) bool {
		for _, c := range classes {
			if t.HasClass(i, c) {
				return true
			}
		}
		return false
	}
}

// TagWithClass matches <tag class="... class ...">.
func TagWithClass(tag, class string) Predicate {
	return func(t *Tree, i int) bool {
		return t.Tag(i) == tag && t.HasClass(i, class)
	}
}

func Any(preds ...Predicate) Predicate {
	return func(t *Tree, i int) bool {
		for _, p := range preds {
			if p(t, i) {
				return true
			}
		}
		return false
	}
}

func All(preds ...Predicate) Predicate {
	return func(t *Tree, i int) bool {
		for _, p := range preds {
			if !p(t, i) {
				return false
			}
		}
		return true
	}
}

// Find returns the first proper descendant of i matching p, in document order.
func (t *Tree) Find(i int, p Predicate) int {
	if !t.valid(i) {
		return None
	}
	for j := i + 1; j < t.nodes[i].end; j++ {
		if p(t, j) {
			return j
		}
	}
	return None
}

// FindAll returns every proper descendant of i matching p, in document order.
func (t *Tree) FindAll(i int, p Predicate) []int {
	if !t.valid(i) {
		return nil
	}
	return t.FindIn(i+1, t.nodes[i].end, p)
}

// FindIn scans the index range [start, end) in document order.
func (t *Tree) FindIn(start, end int, p Predicate) []int {
	if start < 0 {
		start = 0
	}
	if end > len(t.nodes) {
		end = len(t.nodes)
	}
	var out []int
	for j := start; j < end; j++ {
		if p(t, j) {
			out = append(out, j)
		}
	}
	return out
}

// Closest returns the nearest proper ancestor of i matching p.
func (t *Tree) Closest(i int, p Predicate) int {
	for a := t.Parent(i); a != None; a = t.Parent(a) {
		if p(t, a) {
			return a
		}
	}
	return None
}

// TextOptions controls TextContent.
type TextOptions struct {
	// Separator joins text nodes. When set, each text node is trimmed and
	// empty ones are dropped; when empty, text nodes are concatenated as-is.
	Separator string

	// Exclude skips matching descendant subtrees. The root is never excluded.
	Exclude Predicate
}

// TextContent flattens the text under i. Exclusion produces a filtered view
// of the subtree without touching the tree itself.
func (t *Tree) TextContent(i int, opts TextOptions) string {
	if !t.valid(i) {
		return ""
	}
	var parts []string
	var b strings.Builder
	end := t.nodes[i].end
	for j := i; j < end; j++ {
		n := &t.nodes[j]
		if n.typ == ElementNode {
			if j != i && opts.Exclude != nil && opts.Exclude(t, j) {
				j = n.end - 1
			}
			continue
		}
		if opts.Separator == "" {
			b.WriteString(n.data)
			continue
		}
		if s := strings.TrimSpace(n.data); s != "" {
			parts = append(parts, s)
		}
	}
	if opts.Separator == "" {
		return b.String()
	}
	return strings.Join(parts, opts.Separator)
}

// InnerText concatenates every text node under i.
func (t *Tree) InnerText(i int) string {
	return t.TextContent(i, TextOptions{})
}
