package goscrapehtml

import "bytes"

// Tokenizer scans a byte buffer into a stream of Tokens.
// It never fails: malformed markup is absorbed into text tokens
// or tolerated silently. The input buffer is never modified.
type Tokenizer struct {
	buf   []byte
	pos   int
	attrs []Attr
}

// NewTokenizer creates a new Tokenizer over the given buffer.
func NewTokenizer(buf []byte) *Tokenizer {
	return &Tokenizer{
		buf:   buf,
		attrs: make([]Attr, 0, 16),
	}
}

// Reset resets the Tokenizer to scan the given buffer from the start.
func (thiz *Tokenizer) Reset(buf []byte) {
	thiz.buf = buf
	thiz.pos = 0
	thiz.attrs = thiz.attrs[:0]
}

// whitespace classification is ASCII-only
func isWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

var tagNameSeps = generateSepTable(false)
var attrNameSeps = generateSepTable(true)

func generateSepTable(stopAtEquals bool) ['>' + 1]bool {
	var s ['>' + 1]bool
	s['\t'] = true
	s['\n'] = true
	s['\f'] = true
	s['\r'] = true
	s[' '] = true
	s['/'] = true
	s['>'] = true
	if stopAtEquals {
		s['='] = true
	}
	return s
}

func isSeparator(s *['>' + 1]bool, b byte) bool {
	return int(b) < len(s) && s[b]
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// asciiEqualFold compares a and b byte-wise, ignoring ASCII case.
func asciiEqualFold(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if lower(a[i]) != lower(b[i]) {
			return false
		}
	}
	return true
}

// Next scans the next Token into the provided Token pointer.
// Only the fields relevant for the scanned token type are written.
// Once the cursor has reached the end of the buffer, every call
// yields a token of type TokenTypeEOF.
func (thiz *Tokenizer) Next(t *Token) {
	if thiz.pos >= len(thiz.buf) {
		t.Kind = TokenTypeEOF
		return
	}
	if thiz.buf[thiz.pos] == '<' {
		thiz.scanTag(t)
		return
	}
	thiz.scanText(t)
}

func (thiz *Tokenizer) scanText(t *Token) {
	start := thiz.pos
	end := bytes.IndexByte(thiz.buf[start:], '<')
	if end < 0 {
		thiz.pos = len(thiz.buf)
	} else {
		thiz.pos = start + end
	}
	t.Kind = TokenTypeText
	t.ByteData = thiz.buf[start:thiz.pos]
}

func (thiz *Tokenizer) scanTag(t *Token) {
	rest := thiz.buf[thiz.pos:]
	switch {
	case bytes.HasPrefix(rest, commentOpen):
		thiz.scanComment(t)
	case hasDoctypePrefix(rest):
		thiz.scanDoctype(t)
	default:
		thiz.scanElementTag(t)
	}
}

var bsDoctype = bs("doctype")

func hasDoctypePrefix(rest []byte) bool {
	i := 1
	if i < len(rest) && rest[i] == '!' {
		i++
	}
	if len(rest) < i+len(bsDoctype) {
		return false
	}
	return asciiEqualFold(rest[i:i+len(bsDoctype)], bsDoctype)
}

func (thiz *Tokenizer) scanComment(t *Token) {
	start := thiz.pos + len(commentOpen)
	end := bytes.Index(thiz.buf[start:], commentClose)
	if end < 0 {
		// unterminated comment: surface the remainder as text
		t.Kind = TokenTypeText
		t.ByteData = thiz.buf[thiz.pos:]
		thiz.pos = len(thiz.buf)
		return
	}
	t.Kind = TokenTypeComment
	t.ByteData = thiz.buf[start : start+end]
	thiz.pos = start + end + len(commentClose)
}

func (thiz *Tokenizer) scanDoctype(t *Token) {
	start := thiz.pos + 1
	end := bytes.IndexByte(thiz.buf[start:], '>')
	if end < 0 {
		t.ByteData = thiz.buf[start:]
		thiz.pos = len(thiz.buf)
	} else {
		t.ByteData = thiz.buf[start : start+end]
		thiz.pos = start + end + 1
	}
	t.Kind = TokenTypeDoctype
}

func (thiz *Tokenizer) scanElementTag(t *Token) {
	start := thiz.pos
	p := start + 1
	endTag := false
	if p < len(thiz.buf) && thiz.buf[p] == '/' {
		endTag = true
		p++
	}
	for p < len(thiz.buf) && isWhitespace(thiz.buf[p]) {
		p++
	}
	nameStart := p
	for p < len(thiz.buf) && !isSeparator(&tagNameSeps, thiz.buf[p]) {
		p++
	}
	if p == nameStart {
		// nameless tag: the whole span through the closing '>' is text
		gt := bytes.IndexByte(thiz.buf[p:], '>')
		if gt < 0 {
			thiz.pos = len(thiz.buf)
		} else {
			thiz.pos = p + gt + 1
		}
		t.Kind = TokenTypeText
		t.ByteData = thiz.buf[start:thiz.pos]
		return
	}
	name := thiz.buf[nameStart:p]
	if endTag {
		// anything between the name and '>' is discarded
		gt := bytes.IndexByte(thiz.buf[p:], '>')
		if gt < 0 {
			thiz.pos = len(thiz.buf)
		} else {
			thiz.pos = p + gt + 1
		}
		t.Kind = TokenTypeEndTag
		t.Name = name
		return
	}
	thiz.pos = p
	thiz.scanAttributes()
	t.Kind = TokenTypeStartTag
	t.Name = name
	t.Attr = thiz.attrs
}

func (thiz *Tokenizer) scanAttributes() {
	thiz.attrs = thiz.attrs[:0]
	for {
		for thiz.pos < len(thiz.buf) && isWhitespace(thiz.buf[thiz.pos]) {
			thiz.pos++
		}
		if thiz.pos >= len(thiz.buf) {
			// missing '>' ends the tag at end of input
			return
		}
		switch thiz.buf[thiz.pos] {
		case '>':
			thiz.pos++
			return
		case '/':
			thiz.pos++
		default:
			thiz.scanAttribute()
		}
	}
}

func (thiz *Tokenizer) scanAttribute() {
	nameStart := thiz.pos
	for thiz.pos < len(thiz.buf) && !isSeparator(&attrNameSeps, thiz.buf[thiz.pos]) {
		thiz.pos++
	}
	name := thiz.buf[nameStart:thiz.pos]
	for thiz.pos < len(thiz.buf) && isWhitespace(thiz.buf[thiz.pos]) {
		thiz.pos++
	}
	var value []byte
	if thiz.pos < len(thiz.buf) && thiz.buf[thiz.pos] == '=' {
		thiz.pos++
		for thiz.pos < len(thiz.buf) && isWhitespace(thiz.buf[thiz.pos]) {
			thiz.pos++
		}
		value = thiz.scanAttributeValue()
	}
	thiz.setAttr(name, value)
}

func (thiz *Tokenizer) scanAttributeValue() []byte {
	if thiz.pos >= len(thiz.buf) {
		return nil
	}
	if q := thiz.buf[thiz.pos]; q == '"' || q == '\'' {
		thiz.pos++
		start := thiz.pos
		end := bytes.IndexByte(thiz.buf[start:], q)
		if end < 0 {
			// end of input closes the string silently
			thiz.pos = len(thiz.buf)
			return thiz.buf[start:]
		}
		thiz.pos = start + end + 1
		return thiz.buf[start : start+end]
	}
	start := thiz.pos
	for thiz.pos < len(thiz.buf) && !isWhitespace(thiz.buf[thiz.pos]) && thiz.buf[thiz.pos] != '>' {
		thiz.pos++
	}
	return thiz.buf[start:thiz.pos]
}

// setAttr appends the attribute, overwriting the value of an
// already-seen attribute of the same name in place.
func (thiz *Tokenizer) setAttr(name, value []byte) {
	for i := range thiz.attrs {
		if asciiEqualFold(thiz.attrs[i].Name, name) {
			thiz.attrs[i].Value = value
			return
		}
	}
	thiz.attrs = append(thiz.attrs, Attr{Name: name, Value: value})
}
