package goscrapehtml

import (
	"bytes"
	"errors"
)

var (
	// ErrEmptySelector is returned when the selector string is blank.
	ErrEmptySelector = errors.New("empty selector")

	// ErrInvalidSelector is returned when the selector string cannot
	// be parsed.
	ErrInvalidSelector = errors.New("invalid selector")
)

// Selector is the parsed form of a selector string.
// Exactly one of the five kinds applies:
//
//	"*"           universal
//	"name"        tag
//	".name"       class
//	"#name"       id
//	"[a]","[a=v]" attribute (presence or byte-exact value)
//
// A Selector is immutable after parsing.
type Selector struct {
	Kind  byte
	Value []byte

	// only for SelectorAttribute
	AttrName []byte
}

var (
	bsClass = bs("class")
	bsID    = bs("id")
)

// ParseSelector parses a selector string.
// Surrounding ASCII whitespace is ignored.
func ParseSelector(s string) (Selector, error) {
	b := trimWhitespace([]byte(s))
	if len(b) == 0 {
		return Selector{}, ErrEmptySelector
	}
	if len(b) == 1 && b[0] == '*' {
		return Selector{Kind: SelectorUniversal}, nil
	}
	switch b[0] {
	case '#':
		if len(b) == 1 {
			return Selector{}, ErrInvalidSelector
		}
		return Selector{Kind: SelectorID, Value: b[1:]}, nil
	case '.':
		if len(b) == 1 {
			return Selector{}, ErrInvalidSelector
		}
		return Selector{Kind: SelectorClass, Value: b[1:]}, nil
	case '[':
		return parseAttributeSelector(b)
	}
	return Selector{Kind: SelectorTag, Value: b}, nil
}

func parseAttributeSelector(b []byte) (Selector, error) {
	end := bytes.IndexByte(b, ']')
	if end < 0 {
		return Selector{}, ErrInvalidSelector
	}
	inner := trimWhitespace(b[1:end])
	name := inner
	var value []byte
	if eq := bytes.IndexByte(inner, '='); eq >= 0 {
		name = trimWhitespace(inner[:eq])
		value = unquoteValue(trimWhitespace(inner[eq+1:]))
	}
	if len(name) == 0 {
		return Selector{}, ErrInvalidSelector
	}
	return Selector{Kind: SelectorAttribute, AttrName: name, Value: value}, nil
}

// unquoteValue strips one outer pair of matching quotes, if present.
func unquoteValue(v []byte) []byte {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}

// Matches reports whether the node is an element satisfying the selector.
// Non-element nodes never match.
func (sel *Selector) Matches(n *Node) bool {
	if n == nil || n.Kind != NodeElement {
		return false
	}
	return sel.matchesElement(n.Tag, n.Attr)
}

func (sel *Selector) matchesElement(tag []byte, attrs []Attr) bool {
	switch sel.Kind {
	case SelectorUniversal:
		return true
	case SelectorTag:
		return asciiEqualFold(tag, sel.Value)
	case SelectorClass:
		v, ok := attrValue(attrs, bsClass)
		return ok && hasClassToken(v, sel.Value)
	case SelectorID:
		v, ok := attrValue(attrs, bsID)
		return ok && bytes.Equal(v, sel.Value)
	case SelectorAttribute:
		v, ok := attrValue(attrs, sel.AttrName)
		if !ok {
			return false
		}
		return len(sel.Value) == 0 || bytes.Equal(v, sel.Value)
	}
	return false
}

// hasClassToken tokenizes a class attribute value on ASCII whitespace
// and reports whether any token equals want byte-exactly.
func hasClassToken(classAttr, want []byte) bool {
	i := 0
	for i < len(classAttr) {
		for i < len(classAttr) && isWhitespace(classAttr[i]) {
			i++
		}
		j := i
		for j < len(classAttr) && !isWhitespace(classAttr[j]) {
			j++
		}
		if j > i && bytes.Equal(classAttr[i:j], want) {
			return true
		}
		i = j
	}
	return false
}

// Key returns the canonical textual form of the selector. Streaming
// result lists are addressed by this form.
func (sel *Selector) Key() string {
	switch sel.Kind {
	case SelectorUniversal:
		return "*"
	case SelectorTag:
		return string(sel.Value)
	case SelectorClass:
		return "." + string(sel.Value)
	case SelectorID:
		return "#" + string(sel.Value)
	case SelectorAttribute:
		if len(sel.Value) == 0 {
			return "[" + string(sel.AttrName) + "]"
		}
		return "[" + string(sel.AttrName) + "=" + string(sel.Value) + "]"
	}
	return ""
}
