package patch

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/grafter/graft/perr"
)

// LoadSkipList parses the skip-list file format: one integer line
// number per line, blank lines ignored.
func LoadSkipList(r io.Reader) (map[int]bool, error) {
	lines := map[int]bool{}
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		v, err := strconv.Atoi(text)
		if err != nil {
			return nil, perr.New(perr.IOError, "skip-list line %d: %q is not an integer", n, text).AtLine(n)
		}
		lines[v] = true
	}
	if err := sc.Err(); err != nil {
		return nil, perr.Wrap(perr.IOError, err, "reading skip list")
	}
	return lines, nil
}
