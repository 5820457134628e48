package goscrapehtml

import (
	"bytes"
	"io"
)

// Elements whose start tag never opens a scope.
var voidElements = [][]byte{
	bs("area"), bs("base"), bs("br"), bs("col"), bs("embed"),
	bs("hr"), bs("img"), bs("input"), bs("link"), bs("meta"),
	bs("param"), bs("source"), bs("track"), bs("wbr"),
}

func isVoidElement(name []byte) bool {
	for _, v := range voidElements {
		if asciiEqualFold(name, v) {
			return true
		}
	}
	return false
}

// Parse builds a node tree from the given HTML bytes and returns the
// document root. Malformed markup never fails the parse: unclosed
// elements stay open until an ancestor is closed or input ends, and
// unmatched end tags are ignored.
//
// The returned tree borrows from doc, so doc must not be modified
// while the tree is in use.
func Parse(doc []byte) *Node {
	root := &Node{Kind: NodeDocument}
	ip := root
	var tz Tokenizer
	tz.Reset(doc)
	var t Token
	for {
		tz.Next(&t)
		switch t.Kind {
		case TokenTypeEOF:
			return root
		case TokenTypeStartTag:
			el := &Node{Kind: NodeElement, Tag: t.Name}
			if len(t.Attr) > 0 {
				el.Attr = append([]Attr(nil), t.Attr...)
			}
			ip.appendChild(el)
			if !isVoidElement(t.Name) {
				ip = el
			}
		case TokenTypeEndTag:
			// close the nearest ancestor with this exact name,
			// otherwise ignore the end tag
			for n := ip; n != nil && n.Kind == NodeElement; n = n.Parent {
				if bytes.Equal(n.Tag, t.Name) {
					ip = n.Parent
					break
				}
			}
		case TokenTypeText:
			if len(trimWhitespace(t.ByteData)) > 0 {
				ip.appendChild(&Node{Kind: NodeText, Data: t.ByteData})
			}
		case TokenTypeComment:
			ip.appendChild(&Node{Kind: NodeComment, Data: t.ByteData})
		}
	}
}

// ParseReader reads all of r and parses the bytes with Parse.
func ParseReader(r io.Reader) (*Node, error) {
	doc, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(doc), nil
}
