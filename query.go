package goscrapehtml

// QuerySelector returns the first node in pre-order document order
// (including n itself) that satisfies the selector, or nil.
func (n *Node) QuerySelector(selector string) (*Node, error) {
	sel, err := ParseSelector(selector)
	if err != nil {
		return nil, err
	}
	return firstMatch(n, &sel), nil
}

func firstMatch(n *Node, sel *Selector) *Node {
	if sel.Matches(n) {
		return n
	}
	for _, c := range n.Children {
		if m := firstMatch(c, sel); m != nil {
			return m
		}
	}
	return nil
}

// QuerySelectorAll returns every node in pre-order document order
// (including n itself) that satisfies the selector.
func (n *Node) QuerySelectorAll(selector string) ([]*Node, error) {
	sel, err := ParseSelector(selector)
	if err != nil {
		return nil, err
	}
	return appendMatches(nil, n, &sel), nil
}

func appendMatches(out []*Node, n *Node, sel *Selector) []*Node {
	if sel.Matches(n) {
		out = append(out, n)
	}
	for _, c := range n.Children {
		out = appendMatches(out, c, sel)
	}
	return out
}

// QuerySelectorAllText returns the text content of every matching
// node. Each returned slice is independently allocated.
func (n *Node) QuerySelectorAllText(selector string) ([][]byte, error) {
	nodes, err := n.QuerySelectorAll(selector)
	if err != nil {
		return nil, err
	}
	out := make([][]byte, len(nodes))
	for i, m := range nodes {
		out[i] = m.TextContent()
	}
	return out, nil
}

// QuerySelectorAttribute returns, for every matching node that has the
// named attribute, its value. The values are borrowed from the tree.
func (n *Node) QuerySelectorAttribute(selector, attrName string) ([][]byte, error) {
	nodes, err := n.QuerySelectorAll(selector)
	if err != nil {
		return nil, err
	}
	name := bs(attrName)
	var out [][]byte
	for _, m := range nodes {
		if v, ok := m.Attribute(name); ok {
			out = append(out, v)
		}
	}
	return out, nil
}
