package goscrapehtml

import (
	"bytes"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestRenderElement(t *testing.T) {
	// given
	root := Parse(bs("<div id=x><p>hi</p><br></div>"))

	// when
	out := root.Children[0].OuterHTML()

	// then
	assert.Equal(t, bs("<div id=\"x\"><p>hi</p><br></div>"), out)
}

func TestRenderDocument(t *testing.T) {
	// given
	root := Parse(bs("<a href=\"1\">x</a><b>y</b>"))

	// when
	var bb bytes.Buffer
	err := Render(&bb, root)

	// then
	assert.Nil(t, err)
	assert.Equal(t, "<a href=\"1\">x</a><b>y</b>", bb.String())
}

func TestRenderComment(t *testing.T) {
	// given
	root := Parse(bs("<div><!--c-->x</div>"))

	// when
	out := root.Children[0].OuterHTML()

	// then
	assert.Equal(t, bs("<div><!--c-->x</div>"), out)
}

func TestRenderKeepsAttributeOrder(t *testing.T) {
	// given
	root := Parse(bs("<a c='3' a='1' b='2'>x</a>"))

	// when
	out := root.Children[0].OuterHTML()

	// then
	assert.Equal(t, bs("<a c=\"3\" a=\"1\" b=\"2\">x</a>"), out)
}

func TestRenderTextNode(t *testing.T) {
	// given
	n := &Node{Kind: NodeText, Data: bs(" raw  text ")}

	// when / then
	assert.Equal(t, bs(" raw  text "), n.OuterHTML())
}

func TestRenderVoidElementHasNoEndTag(t *testing.T) {
	// given
	root := Parse(bs("<img src=\"x.png\">"))

	// when
	out := root.Children[0].OuterHTML()

	// then
	assert.Equal(t, bs("<img src=\"x.png\">"), out)
}
