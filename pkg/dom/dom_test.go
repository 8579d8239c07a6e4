package dom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func mustBuild(t *testing.T, src string) *Tree {
	t.Helper()
	root, err := html.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return Build(root)
}

func first(t *testing.T, tree *Tree, p Predicate) int {
	t.Helper()
	i := tree.Find(0, p)
	require.NotEqual(t, None, i, "no matching node")
	return i
}

func TestBuild_PreOrderAndLinks(t *testing.T) {
	tree := mustBuild(t, `<div id="a"><p id="b">x</p><!-- c --><p id="c">y</p></div>`)

	a := first(t, tree, func(t *Tree, i int) bool { return t.ID(i) == "a" })
	b := first(t, tree, func(t *Tree, i int) bool { return t.ID(i) == "b" })
	c := first(t, tree, func(t *Tree, i int) bool { return t.ID(i) == "c" })

	assert.Less(t, a, b)
	assert.Less(t, b, c)
	assert.Equal(t, a, tree.Parent(b))
	assert.Equal(t, c, tree.NextSibling(b), "comment nodes are dropped")
	assert.Equal(t, None, tree.NextSibling(c))
	assert.Equal(t, []int{b, c}, tree.Children(a))
	assert.True(t, tree.Contains(a, c))
	assert.False(t, tree.Contains(b, c))
	assert.False(t, tree.Contains(a, a))
	assert.Equal(t, tree.End(c), tree.End(a))
}

func TestBuild_Nil(t *testing.T) {
	tree := Build(nil)
	assert.Equal(t, 0, tree.Len())
	assert.Equal(t, None, tree.Find(0, IsTag("p")))
	assert.Equal(t, "", tree.Tag(5))
}

func TestHasClassAndPredicates(t *testing.T) {
	tree := mustBuild(t, `<span class="usage-label-sense  extra">v</span><span class="other">o</span>`)
	span := first(t, tree, IsTag("span"))

	assert.True(t, tree.HasClass(span, "usage-label-sense"))
	assert.True(t, tree.HasClass(span, "extra"))
	assert.False(t, tree.HasClass(span, "usage"))
	assert.True(t, TagWithClass("span", "extra")(tree, span))
	assert.False(t, TagWithClass("div", "extra")(tree, span))
	assert.True(t, WithClass("nope", "extra")(tree, span))
	assert.True(t, Any(IsTag("b"), IsTag("span"))(tree, span))
	assert.False(t, All(IsTag("span"), WithClass("other"))(tree, span))
	assert.Len(t, tree.FindAll(0, IsTag("span")), 2)
}

func TestClosestAndChildElements(t *testing.T) {
	tree := mustBuild(t, `<ol><li>one<ol><li>nested</li></ol></li><li>two</li></ol>`)
	outer := first(t, tree, IsTag("ol"))
	items := tree.ChildElements(outer, IsTag("li"))
	require.Len(t, items, 2)

	nested := tree.Find(items[0], IsTag("ol"))
	require.NotEqual(t, None, nested)
	assert.Equal(t, outer, tree.Closest(nested, IsTag("ol")))
	assert.Equal(t, None, tree.Closest(outer, IsTag("ol")))
	assert.Equal(t, items[1], tree.NextElementSibling(items[0]))
}

func TestTextContent(t *testing.T) {
	tree := mustBuild(t, `<li>A <b>bold</b>  word<sup>1</sup><ul><li>sub</li></ul> end</li>`)
	li := first(t, tree, IsTag("li"))

	tests := []struct {
		name string
		opts TextOptions
		want string
	}{
		{"raw concatenation", TextOptions{}, "A bold  word1sub end"},
		{"separator trims nodes", TextOptions{Separator: " "}, "A bold word 1 sub end"},
		{"exclusion skips subtrees", TextOptions{Separator: " ", Exclude: IsTag("sup", "ul")}, "A bold word end"},
		{"root is never excluded", TextOptions{Exclude: IsTag("li")}, "A bold  word1 end"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tree.TextContent(li, tt.opts))
		})
	}
}

func TestTextContent_DoesNotMutate(t *testing.T) {
	tree := mustBuild(t, `<li>keep<sup>drop</sup></li>`)
	li := first(t, tree, IsTag("li"))
	before := tree.Len()

	assert.Equal(t, "keep", tree.TextContent(li, TextOptions{Exclude: IsTag("sup")}))
	assert.Equal(t, "keepdrop", tree.InnerText(li))
	assert.Equal(t, before, tree.Len())
}
