package goscrapehtml

import (
	"github.com/stretchr/testify/assert"
	"strings"
	"testing"
)

func TestParseSimple(t *testing.T) {
	// given
	doc := "<div><p>Hello</p></div>"

	// when
	root := Parse(bs(doc))

	// then
	assert.Equal(t, byte(NodeDocument), root.Kind)
	assert.Len(t, root.Children, 1)
	div := root.Children[0]
	assert.Equal(t, bs("div"), div.Tag)
	assert.Len(t, div.Children, 1)
	p := div.Children[0]
	assert.Equal(t, bs("p"), p.Tag)
	assert.Len(t, p.Children, 1)
	assert.Equal(t, byte(NodeText), p.Children[0].Kind)
	assert.Equal(t, bs("Hello"), p.Children[0].Data)
}

func TestParseVoidElementsDoNotDescend(t *testing.T) {
	// given
	doc := "<div><img src=\"x.png\"/><br/><input type=\"text\"/></div>"

	// when
	root := Parse(bs(doc))

	// then
	div := root.Children[0]
	assert.Len(t, div.Children, 3)
	assert.Equal(t, bs("img"), div.Children[0].Tag)
	assert.Equal(t, bs("br"), div.Children[1].Tag)
	assert.Equal(t, bs("input"), div.Children[2].Tag)
	for _, c := range div.Children {
		assert.Empty(t, c.Children)
	}
}

func TestParseUnclosedTagClosedByAncestor(t *testing.T) {
	// given
	doc := "<div><p>Hi</div>"

	// when
	root := Parse(bs(doc))

	// then
	assert.Len(t, root.Children, 1)
	div := root.Children[0]
	assert.Equal(t, bs("div"), div.Tag)
	assert.Len(t, div.Children, 1)
	p := div.Children[0]
	assert.Equal(t, bs("p"), p.Tag)
	assert.Equal(t, bs("Hi"), p.Children[0].Data)
}

func TestParseUnmatchedEndTagIgnored(t *testing.T) {
	// given
	doc := "</b><a>x</a></b>"

	// when
	root := Parse(bs(doc))

	// then
	assert.Len(t, root.Children, 1)
	assert.Equal(t, bs("a"), root.Children[0].Tag)
	assert.Equal(t, bs("x"), root.Children[0].TextContent())
}

func TestParseEndTagIsByteExact(t *testing.T) {
	// given
	// the end tag does not byte-match "div", so it is ignored
	// and the element stays open until input ends
	doc := "<div>a</DIV>b"

	// when
	root := Parse(bs(doc))

	// then
	assert.Len(t, root.Children, 1)
	div := root.Children[0]
	assert.Equal(t, bs("a b"), div.TextContent())
}

func TestParseWhitespaceOnlyTextDropped(t *testing.T) {
	// given
	doc := "<a> \n\t </a>"

	// when
	root := Parse(bs(doc))

	// then
	assert.Empty(t, root.Children[0].Children)
}

func TestParseTextNodeKeepsOriginalSpan(t *testing.T) {
	// given
	doc := "<a>  x  </a>"

	// when
	root := Parse(bs(doc))

	// then
	assert.Equal(t, bs("  x  "), root.Children[0].Children[0].Data)
}

func TestParseComment(t *testing.T) {
	// given
	doc := "<div><!-- note -->x</div>"

	// when
	root := Parse(bs(doc))

	// then
	div := root.Children[0]
	assert.Len(t, div.Children, 2)
	assert.Equal(t, byte(NodeComment), div.Children[0].Kind)
	assert.Equal(t, bs(" note "), div.Children[0].Data)
	// comments do not contribute to text content
	assert.Equal(t, bs("x"), div.TextContent())
}

func TestParseDoctypeHasNoTreeEffect(t *testing.T) {
	// given
	doc := "<!DOCTYPE html><p>x</p>"

	// when
	root := Parse(bs(doc))

	// then
	assert.Len(t, root.Children, 1)
	assert.Equal(t, bs("p"), root.Children[0].Tag)
}

func TestParseAttributesKeepInsertionOrder(t *testing.T) {
	// given
	doc := "<a c=\"3\" a=\"1\" b=\"2\">"

	// when
	root := Parse(bs(doc))

	// then
	a := root.Children[0]
	assert.Equal(t, []Attr{attr("c", "3"), attr("a", "1"), attr("b", "2")}, a.Attr)
}

func TestParseParentPointers(t *testing.T) {
	// given
	doc := "<a><b><c>x</c></b><d/></a>"

	// when
	root := Parse(bs(doc))

	// then
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, c := range n.Children {
			assert.Same(t, n, c.Parent)
			walk(c)
		}
	}
	assert.Nil(t, root.Parent)
	walk(root)
}

func TestTextContentJoinsWithSingleSpaces(t *testing.T) {
	// given
	doc := "<div> a <b> b </b> c </div>"

	// when
	root := Parse(bs(doc))

	// then
	assert.Equal(t, bs("a b c"), root.Children[0].TextContent())
}

func TestParseReader(t *testing.T) {
	// given
	r := strings.NewReader("<p>streamed</p>")

	// when
	root, err := ParseReader(r)

	// then
	assert.Nil(t, err)
	assert.Equal(t, bs("streamed"), root.Children[0].TextContent())
}

func BenchmarkParse(b *testing.B) {
	doc := bs("<html><body><div id=\"main\"><p class=\"lead\">Hello</p><ul><li>a</li><li>b</li></ul></div></body></html>")

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		Parse(doc)
	}
}
