package goscrapehtml

import (
	"bytes"
	"io"
	"unsafe"
)

// pre-allocate all constant byte slices that we write
var (
	angleOpen      = bs("<")
	angleClose     = bs(">")
	angleOpenSlash = bs("</")
	space          = bs(" ")
	equal          = bs("=")
	doubleQuote    = bs("\"")
	commentOpen    = bs("<!--")
	commentClose   = bs("-->")
)

// Render writes the HTML serialization of the node and its subtree
// to w. Attributes are written in insertion order with double-quoted
// values; void elements get no end tag.
func Render(w io.Writer, n *Node) error {
	switch n.Kind {
	case NodeDocument:
		return renderChildren(w, n)
	case NodeText:
		_, err := w.Write(n.Data)
		return err
	case NodeComment:
		return writeAll(w, commentOpen, n.Data, commentClose)
	case NodeElement:
		err := writeAll(w, angleOpen, n.Tag)
		if err != nil {
			return err
		}
		for i := range n.Attr {
			err = writeAll(w, space, n.Attr[i].Name, equal, doubleQuote, n.Attr[i].Value, doubleQuote)
			if err != nil {
				return err
			}
		}
		_, err = w.Write(angleClose)
		if err != nil {
			return err
		}
		if isVoidElement(n.Tag) {
			return nil
		}
		err = renderChildren(w, n)
		if err != nil {
			return err
		}
		return writeAll(w, angleOpenSlash, n.Tag, angleClose)
	}
	return nil
}

func renderChildren(w io.Writer, n *Node) error {
	for _, c := range n.Children {
		if err := Render(w, c); err != nil {
			return err
		}
	}
	return nil
}

func writeAll(w io.Writer, parts ...[]byte) error {
	for _, p := range parts {
		if _, err := w.Write(p); err != nil {
			return err
		}
	}
	return nil
}

// OuterHTML returns the HTML serialization of the node and its
// subtree as a newly allocated slice.
func (n *Node) OuterHTML() []byte {
	var bb bytes.Buffer
	_ = Render(&bb, n)
	return bb.Bytes()
}

// bs returns the bytes of s without copying.
func bs(s string) []byte {
	if s == "" {
		return []byte{}
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
