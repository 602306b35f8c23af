// Package varmap implements the variable map: a textual translation
// from source-program identifier paths to target-program identifier
// paths, and the subtree-driven identifier substitution that applies
// it to inserted or updated statement text.
package varmap

import (
	"bufio"
	"io"
	"sort"
	"strings"

	"github.com/grafter/graft/perr"
)

// Map holds the source-path -> target-path translations loaded from a
// variable-map file, one "source-path:target-path" mapping per
// non-empty line.
type Map struct {
	entries map[string]string
	byLen   []string // keys, longest first; Lookup itself matches exact keys only
}

func New() *Map {
	return &Map{entries: make(map[string]string)}
}

func (m *Map) Set(from, to string) {
	if m.entries == nil {
		m.entries = make(map[string]string)
	}
	if _, exists := m.entries[from]; !exists {
		m.byLen = append(m.byLen, from)
	}
	m.entries[from] = to
	sort.Slice(m.byLen, func(i, j int) bool { return len(m.byLen[i]) > len(m.byLen[j]) })
}

// Lookup returns the mapped value for an exact key, if present.
func (m *Map) Lookup(key string) (string, bool) {
	v, ok := m.entries[key]
	return v, ok
}

// Load parses the variable-map file format described in the external
// interfaces contract: one mapping per line, "source-path:target-path",
// paths using "." or "->" for member access, no escaping, empty lines
// ignored.
func Load(r io.Reader) (*Map, error) {
	m := New()
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		idx := strings.Index(text, ":")
		if idx < 0 {
			return nil, perr.New(perr.IOError, "variable map line %d: missing ':' in %q", line, text).AtLine(line)
		}
		from, to := text[:idx], text[idx+1:]
		if from == "" {
			return nil, perr.New(perr.IOError, "variable map line %d: empty source path", line).AtLine(line)
		}
		m.Set(from, to)
	}
	if err := sc.Err(); err != nil {
		return nil, perr.Wrap(perr.IOError, err, "reading variable map")
	}
	return m, nil
}
