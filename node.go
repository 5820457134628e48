package goscrapehtml

// Node is a node of the parsed tree. The Kind determines which
// fields are meaningful.
//
// Element nodes borrow their tag name and attribute values from the
// parsed input buffer, so the buffer must outlive the tree.
type Node struct {
	Kind byte

	// only for NodeElement
	Tag  []byte
	Attr []Attr

	// only for NodeText and NodeComment
	Data []byte

	// Parent is nil for the document root. It is a back reference
	// only and never owns the node.
	Parent   *Node
	Children []*Node
}

func (n *Node) appendChild(c *Node) {
	c.Parent = n
	n.Children = append(n.Children, c)
}

// Attribute returns the value of the named attribute.
// Attribute names compare ASCII case-insensitively.
func (n *Node) Attribute(name []byte) ([]byte, bool) {
	return attrValue(n.Attr, name)
}

func attrValue(attrs []Attr, name []byte) ([]byte, bool) {
	for i := range attrs {
		if asciiEqualFold(attrs[i].Name, name) {
			return attrs[i].Value, true
		}
	}
	return nil, false
}

func trimWhitespace(b []byte) []byte {
	for len(b) > 0 && isWhitespace(b[0]) {
		b = b[1:]
	}
	for len(b) > 0 && isWhitespace(b[len(b)-1]) {
		b = b[:len(b)-1]
	}
	return b
}

// TextContent returns the concatenated text of the subtree rooted at n.
// Each text node is trimmed of ASCII whitespace and non-empty segments
// are joined by a single space. Comments are skipped.
// The returned slice is newly allocated and owned by the caller.
func (n *Node) TextContent() []byte {
	return appendTextContent(nil, n)
}

func appendTextContent(out []byte, n *Node) []byte {
	switch n.Kind {
	case NodeText:
		trimmed := trimWhitespace(n.Data)
		if len(trimmed) == 0 {
			return out
		}
		if len(out) > 0 && out[len(out)-1] != ' ' {
			out = append(out, ' ')
		}
		out = append(out, trimmed...)
	case NodeDocument, NodeElement:
		for _, c := range n.Children {
			out = appendTextContent(out, c)
		}
	}
	return out
}
