package script

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/grafter/graft/astnode"
	"github.com/grafter/graft/perr"
)

var (
	reInsertMove = regexp.MustCompile(`^(Insert|Move)\s+(\w+)\((\d+)\)\s+into\s+(\w+)\((\d+)\)\s+at\s+(-?\d+)$`)
	reReplace    = regexp.MustCompile(`^Replace\s+(\w+)\((\d+)\)\s+with\s+(\w+)\((\d+)\)$`)
	reUpdate     = regexp.MustCompile(`^Update\s+(\w+)\((\d+)\)\s+to\s+(\w+)\((\d+)\)$`)
	reDelete     = regexp.MustCompile(`^Delete\s+(\w+)\((\d+)\)$`)
	reUpdateMove = regexp.MustCompile(`^UpdateMove(\s+.*)?$`)
)

// Parse reads a full edit script and returns its records in file
// order, which is the canonical application order (see the
// concurrency model's ordering guarantee).
func Parse(r io.Reader) ([]Record, error) {
	var records []Record
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		rec, err := ParseLine(text)
		if err != nil {
			return nil, err.AtLine(line)
		}
		rec.Line = line
		rec.Raw = text
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, perr.Wrap(perr.IOError, err, "reading script")
	}
	return records, nil
}

// ParseLine parses a single script line per the grammar:
//
//	Insert  <KindB>(<IdB>) into <KindC>(<IdC>) at <Offset>
//	Move    <KindB>(<IdB>) into <KindC>(<IdC>) at <Offset>
//	Replace <KindC>(<IdC>) with <KindB>(<IdB>)
//	Update  <KindC>(<IdC>) to <KindB>(<IdB>)
//	Delete  <Kind>(<Id>)
//	UpdateMove ...   (reserved; parsed but not executed)
func ParseLine(text string) (Record, *perr.Error) {
	if m := reInsertMove.FindStringSubmatch(text); m != nil {
		op := Op(m[1])
		bKind, bID := mustKind(m[2]), mustInt(m[3])
		cKind, cID := mustKind(m[4]), mustInt(m[5])
		offset, err := strconv.Atoi(m[6])
		if err != nil {
			return Record{}, perr.New(perr.ScriptParseError, "bad offset in %q", text)
		}
		return Record{Op: op, B: NodeRef{bKind, bID}, C: NodeRef{cKind, cID}, Offset: offset}, nil
	}
	if m := reReplace.FindStringSubmatch(text); m != nil {
		cKind, cID := mustKind(m[1]), mustInt(m[2])
		bKind, bID := mustKind(m[3]), mustInt(m[4])
		return Record{Op: Replace, B: NodeRef{bKind, bID}, C: NodeRef{cKind, cID}}, nil
	}
	if m := reUpdate.FindStringSubmatch(text); m != nil {
		cKind, cID := mustKind(m[1]), mustInt(m[2])
		bKind, bID := mustKind(m[3]), mustInt(m[4])
		return Record{Op: Update, B: NodeRef{bKind, bID}, C: NodeRef{cKind, cID}}, nil
	}
	if m := reDelete.FindStringSubmatch(text); m != nil {
		kind, id := mustKind(m[1]), mustInt(m[2])
		return Record{Op: Delete, C: NodeRef{kind, id}}, nil
	}
	if reUpdateMove.MatchString(text) {
		return Record{Op: UpdateMove}, nil
	}
	return Record{}, perr.New(perr.ScriptParseError, "malformed script line %q", text)
}

func mustKind(label string) astnode.Kind {
	return astnode.ParseKind(label)
}

func mustInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
