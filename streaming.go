package goscrapehtml

import (
	"bytes"
	"errors"
)

// ErrSelectorsSealed is returned when a selector is registered after
// the first Feed.
var ErrSelectorsSealed = errors.New("selectors must be registered before feeding")

// MatchResult is one finalized match of a registered selector.
// Text and Attr are owned by the result and stay valid until Reset.
type MatchResult struct {
	Text []byte
	Attr []Attr
}

// elementState is one open element the extractor still cares about.
type elementState struct {
	name    []byte
	attrs   []Attr
	text    []byte
	depth   int
	matched bool
	sel     int
}

// StreamingExtractor matches registered selectors against HTML fed in
// arbitrary chunks, accumulating per-match text and attributes without
// building a tree. Only matched elements are retained in memory.
//
// A tag split across chunk boundaries is never misparsed: a token whose
// scan stopped exactly at the end of the buffered input is rolled back
// and re-scanned once more bytes arrive (or at Finish).
type StreamingExtractor struct {
	buf       []byte
	tz        Tokenizer
	selectors []Selector
	keys      []string
	results   map[string][]MatchResult
	stack     []elementState
	current   elementState
	open      bool
	depth     int
	fed       bool
}

// NewStreamingExtractor creates a new StreamingExtractor.
func NewStreamingExtractor() *StreamingExtractor {
	return &StreamingExtractor{
		results: make(map[string][]MatchResult),
	}
}

// AddSelector parses and registers a selector. All selectors must be
// registered before the first Feed. The result list for the selector
// is addressed by its canonical key (see Selector.Key).
func (thiz *StreamingExtractor) AddSelector(s string) error {
	if thiz.fed {
		return ErrSelectorsSealed
	}
	sel, err := ParseSelector(s)
	if err != nil {
		return err
	}
	key := sel.Key()
	thiz.selectors = append(thiz.selectors, sel)
	thiz.keys = append(thiz.keys, key)
	if _, ok := thiz.results[key]; !ok {
		thiz.results[key] = []MatchResult{}
	}
	return nil
}

// Feed appends a chunk of input and processes as many complete tokens
// as possible. Incomplete trailing bytes stay buffered for the next
// Feed or Finish.
func (thiz *StreamingExtractor) Feed(chunk []byte) {
	thiz.fed = true
	thiz.buf = append(thiz.buf, chunk...)
	thiz.drain(false)
}

// Finish processes all remaining buffered input and finalizes any
// still-open matched elements, treating end of input as implicit end
// tags. Result accessors are valid afterwards.
func (thiz *StreamingExtractor) Finish() {
	thiz.fed = true
	thiz.drain(true)
	if thiz.open {
		thiz.finalize(&thiz.current)
		thiz.open = false
	}
	for i := len(thiz.stack) - 1; i >= 0; i-- {
		thiz.finalize(&thiz.stack[i])
	}
	thiz.stack = thiz.stack[:0]
	thiz.depth = 0
}

func (thiz *StreamingExtractor) drain(final bool) {
	thiz.tz.Reset(thiz.buf)
	consumed := 0
	var t Token
	for {
		thiz.tz.Next(&t)
		if t.Kind == TokenTypeEOF {
			break
		}
		if !final && thiz.tz.pos == len(thiz.buf) {
			// the token may continue in the next chunk,
			// leave its bytes buffered and re-scan later
			break
		}
		thiz.handleToken(&t)
		consumed = thiz.tz.pos
	}
	thiz.buf = thiz.buf[:copy(thiz.buf, thiz.buf[consumed:])]
}

func (thiz *StreamingExtractor) handleToken(t *Token) {
	switch t.Kind {
	case TokenTypeStartTag:
		thiz.handleStartTag(t)
	case TokenTypeEndTag:
		thiz.handleEndTag(t)
	case TokenTypeText:
		thiz.handleText(t)
	}
}

func (thiz *StreamingExtractor) handleStartTag(t *Token) {
	el := elementState{
		name:  append([]byte(nil), t.Name...),
		depth: thiz.depth,
		sel:   -1,
	}
	if len(t.Attr) > 0 {
		el.attrs = make([]Attr, len(t.Attr))
		for i, a := range t.Attr {
			el.attrs[i] = Attr{
				Name:  append([]byte(nil), a.Name...),
				Value: append([]byte(nil), a.Value...),
			}
		}
	}
	// the first matching selector decides the result bucket
	for i := range thiz.selectors {
		if thiz.selectors[i].matchesElement(el.name, el.attrs) {
			el.matched = true
			el.sel = i
			break
		}
	}
	if isVoidElement(el.name) {
		// void elements never open a scope and never affect depth
		thiz.finalize(&el)
		return
	}
	if thiz.open {
		thiz.stack = append(thiz.stack, thiz.current)
	}
	thiz.current = el
	thiz.open = true
	thiz.depth++
}

func (thiz *StreamingExtractor) handleEndTag(t *Token) {
	if thiz.open && bytes.Equal(thiz.current.name, t.Name) {
		thiz.finalize(&thiz.current)
		thiz.open = false
		thiz.depth--
		return
	}
	for i := len(thiz.stack) - 1; i >= 0; i-- {
		if bytes.Equal(thiz.stack[i].name, t.Name) {
			el := thiz.stack[i]
			thiz.stack = append(thiz.stack[:i], thiz.stack[i+1:]...)
			thiz.finalize(&el)
			thiz.depth--
			return
		}
	}
	// unmatched end tag: ignored
}

func (thiz *StreamingExtractor) handleText(t *Token) {
	if !thiz.open || !thiz.current.matched {
		return
	}
	trimmed := trimWhitespace(t.ByteData)
	if len(trimmed) == 0 {
		return
	}
	if len(thiz.current.text) > 0 {
		thiz.current.text = append(thiz.current.text, ' ')
	}
	thiz.current.text = append(thiz.current.text, trimmed...)
}

func (thiz *StreamingExtractor) finalize(el *elementState) {
	if !el.matched {
		return
	}
	key := thiz.keys[el.sel]
	thiz.results[key] = append(thiz.results[key], MatchResult{
		Text: el.text,
		Attr: el.attrs,
	})
}

// Matches returns the finalized results for the given selector, or nil
// if no such selector was registered. The selector may be written in
// any form that parses to the same canonical key.
// The returned slice is a view owned by the extractor.
func (thiz *StreamingExtractor) Matches(selector string) []MatchResult {
	sel, err := ParseSelector(selector)
	if err != nil {
		return nil
	}
	ms, ok := thiz.results[sel.Key()]
	if !ok {
		return nil
	}
	return ms
}

// MatchesText returns just the text of the finalized results for the
// given selector, or nil if no such selector was registered.
func (thiz *StreamingExtractor) MatchesText(selector string) [][]byte {
	ms := thiz.Matches(selector)
	if ms == nil {
		return nil
	}
	out := make([][]byte, len(ms))
	for i := range ms {
		out[i] = ms[i].Text
	}
	return out
}

// MatchAttribute returns the named attribute of the i-th match of the
// given selector.
func (thiz *StreamingExtractor) MatchAttribute(selector string, i int, name string) ([]byte, bool) {
	ms := thiz.Matches(selector)
	if i < 0 || i >= len(ms) {
		return nil, false
	}
	return attrValue(ms[i].Attr, bs(name))
}

// Reset returns the extractor to its initial state, releasing buffered
// input, registered selectors and accumulated results.
func (thiz *StreamingExtractor) Reset() {
	thiz.buf = thiz.buf[:0]
	thiz.selectors = thiz.selectors[:0]
	thiz.keys = thiz.keys[:0]
	thiz.results = make(map[string][]MatchResult)
	thiz.stack = thiz.stack[:0]
	thiz.open = false
	thiz.depth = 0
	thiz.fed = false
}
