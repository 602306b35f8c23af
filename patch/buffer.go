// Package patch implements the edit-operation dispatcher, the
// per-node-kind rewriters, and the replacement buffer — the heart of
// the structural patch engine.
package patch

import (
	"sort"

	"github.com/grafter/graft/astnode"
	"github.com/grafter/graft/perr"
)

// Options carries the per-edit flags the replacement buffer supports.
type Options struct {
	// RemoveLineIfEmpty: after applying this edit, if the resulting
	// line contains only whitespace, delete the line terminator too.
	RemoveLineIfEmpty bool
}

type edit struct {
	Range astnode.Range
	Text  string
	Opts  Options
}

// Buffer accumulates (file, range, text) edits and materializes them
// into rewritten file contents on Flush. Edits within one file must be
// non-overlapping; Add fails with ReplacementOverlap otherwise.
type Buffer struct {
	edits map[string][]edit
}

func NewBuffer() *Buffer {
	return &Buffer{edits: make(map[string][]edit)}
}

// Add records a replacement of [r.Begin, r.End) with text in file.
func (b *Buffer) Add(file string, r astnode.Range, text string, opts Options) error {
	list := b.edits[file]
	idx := sort.Search(len(list), func(i int) bool { return list[i].Range.Begin >= r.Begin })
	if idx > 0 && list[idx-1].Range.End > r.Begin {
		return perr.New(perr.ReplacementOverlap, "edit [%d,%d) in %s overlaps [%d,%d)",
			r.Begin, r.End, file, list[idx-1].Range.Begin, list[idx-1].Range.End)
	}
	if idx < len(list) && r.End > list[idx].Range.Begin {
		return perr.New(perr.ReplacementOverlap, "edit [%d,%d) in %s overlaps [%d,%d)",
			r.Begin, r.End, file, list[idx].Range.Begin, list[idx].Range.End)
	}
	e := edit{Range: r, Text: text, Opts: opts}
	list = append(list, edit{})
	copy(list[idx+1:], list[idx:])
	list[idx] = e
	b.edits[file] = list
	return nil
}

// Insert is a convenience for Add with an empty range at pos.
func (b *Buffer) Insert(file string, pos int, text string) error {
	return b.Add(file, astnode.Range{Begin: pos, End: pos}, text, Options{})
}

// Files reports the set of files with at least one recorded edit.
func (b *Buffer) Files() []string {
	files := make([]string, 0, len(b.edits))
	for f := range b.edits {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Flush walks original, applying every recorded edit for file in
// order, and returns the rewritten bytes. For an empty edit list it
// returns original unchanged (round-trip identity).
func (b *Buffer) Flush(file string, original []byte) ([]byte, error) {
	list := b.edits[file]
	if len(list) == 0 {
		return original, nil
	}
	var out []byte
	cursor := 0
	for _, e := range list {
		r := e.Range
		if r.Begin < cursor || r.End > len(original) {
			return nil, perr.New(perr.RangeUnavailable, "edit range [%d,%d) out of bounds for %s (len %d)", r.Begin, r.End, file, len(original))
		}
		out = append(out, original[cursor:r.Begin]...)
		out = append(out, e.Text...)
		end := r.End
		if e.Opts.RemoveLineIfEmpty && e.Text == "" {
			end = extendToConsumeBlankLine(original, r.Begin, end)
		}
		cursor = end
	}
	out = append(out, original[cursor:]...)
	return out, nil
}

// extendToConsumeBlankLine checks whether the line enclosing a
// deletion is left blank (only whitespace) once [begin,end) is
// removed, and if so extends end past the trailing newline so the
// empty line itself disappears.
func extendToConsumeBlankLine(src []byte, begin, end int) int {
	lineStart := begin
	for lineStart > 0 && src[lineStart-1] != '\n' {
		lineStart--
	}
	for i := lineStart; i < begin; i++ {
		if src[i] != ' ' && src[i] != '\t' {
			return end
		}
	}
	i := end
	for i < len(src) && (src[i] == ' ' || src[i] == '\t') {
		i++
	}
	if i < len(src) && src[i] == '\n' {
		return i + 1
	}
	if i == len(src) {
		return i
	}
	return end
}
