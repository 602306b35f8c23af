package astnode

// token describes the next lexical token found while scanning forward
// from a byte offset. It is deliberately minimal: the range engine
// only ever needs to recognize ';', ',', and identifier runs, per
// spec's range-expansion rule. Real tokenization is the excluded
// front end's job; this is just enough lexing to turn a node's
// token-range into a char-range suitable for deletion or replacement.
type token struct {
	text string
	end  int // offset immediately after the token
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// nextToken scans forward from offset, skipping no whitespace of its
// own accord, and reports the token that begins exactly at offset, if
// any recognizable one does.
func (t *Tree) nextToken(offset int) (token, bool) {
	src := t.Source
	if offset < 0 || offset >= len(src) {
		return token{}, false
	}
	switch src[offset] {
	case ';', ',':
		return token{text: string(src[offset]), end: offset + 1}, true
	}
	if isIdentStart(src[offset]) {
		end := offset + 1
		for end < len(src) && isIdentByte(src[end]) {
			end++
		}
		return token{text: string(src[offset:end]), end: end}, true
	}
	return token{}, false
}

// ExpandRange implements the range-expansion algorithm from the AST
// view's deletion-range contract: given a token range [b, e), look at
// the token starting exactly at e; if it is ';', ',', or an
// immediately adjacent identifier, extend e to that token's end.
func (t *Tree) ExpandRange(r Range) Range {
	if tok, ok := t.nextToken(r.End); ok {
		return Range{Begin: r.Begin, End: tok.end}
	}
	return r
}

// DeletionRange returns the range that, if removed, preserves
// surrounding syntax: the node's own range, expanded per ExpandRange.
func (t *Tree) DeletionRange(id int) (Range, error) {
	n, err := t.Node(id)
	if err != nil {
		return Range{}, err
	}
	return t.ExpandRange(n.Range), nil
}

// OwnedSubRanges returns the byte intervals that belong directly to
// node id, i.e. node_range minus the union of its children's ranges,
// expressed in source order. Children are assumed already ordered by
// Begin (true for any front end that appends children in source
// order, which jsonast and every provider in this module does).
func (t *Tree) OwnedSubRanges(id int) ([]Range, error) {
	n, err := t.Node(id)
	if err != nil {
		return nil, err
	}
	var owned []Range
	cursor := n.Range.Begin
	for _, cid := range n.Children {
		c, err := t.Node(cid)
		if err != nil {
			return nil, err
		}
		if c.Range.Begin > cursor {
			owned = append(owned, Range{Begin: cursor, End: c.Range.Begin})
		}
		if c.Range.End > cursor {
			cursor = c.Range.End
		}
	}
	if n.Range.End > cursor {
		owned = append(owned, Range{Begin: cursor, End: n.Range.End})
	}
	return owned, nil
}

// FindByte scans forward from offset (inclusive) for the first
// occurrence of ch within [offset, limit) and returns the offset
// immediately after it.
func (t *Tree) FindByte(offset, limit int, ch byte) (int, bool) {
	src := t.Source
	if limit > len(src) {
		limit = len(src)
	}
	for i := offset; i < limit; i++ {
		if src[i] == ch {
			return i + 1, true
		}
	}
	return 0, false
}

// FindString scans forward from offset (inclusive) for the first
// occurrence of s within [offset, limit) and returns the offset
// immediately after it.
func (t *Tree) FindString(offset, limit int, s string) (int, bool) {
	src := t.Source
	if limit > len(src) {
		limit = len(src)
	}
	if s == "" {
		return offset, true
	}
	for i := offset; i+len(s) <= limit; i++ {
		if string(src[i:i+len(s)]) == s {
			return i + len(s), true
		}
	}
	return 0, false
}
