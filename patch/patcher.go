package patch

import (
	"log/slog"
	"strings"

	"github.com/grafter/graft/astnode"
	"github.com/grafter/graft/perr"
	"github.com/grafter/graft/script"
	"github.com/grafter/graft/varmap"
)

// AtomicSubtrees is the set of destination-tree node ids the diff
// producer pre-marked as pure insertions with no further nested
// changes. The rewriter copies their bytes verbatim instead of
// recursing child-by-child (the atomic-subtree optimization).
type AtomicSubtrees map[int]bool

// Patcher applies a parsed edit script against a target tree, drawing
// inserted/replaced material from a destination tree and resolving
// deletes/moves against the target tree itself, per the script
// grammar's operand-tree rules.
type Patcher struct {
	Source      *astnode.Tree
	Destination *astnode.Tree
	Target      *astnode.Tree

	Vars      *varmap.Map
	SkipLines map[int]bool
	Atomic    AtomicSubtrees

	Buf *Buffer
	Log *slog.Logger

	tr *varmap.Translator
}

func New(source, destination, target *astnode.Tree, vars *varmap.Map) *Patcher {
	if vars == nil {
		vars = varmap.New()
	}
	log := slog.Default()
	return &Patcher{
		Source:      source,
		Destination: destination,
		Target:      target,
		Vars:        vars,
		SkipLines:   map[int]bool{},
		Atomic:      AtomicSubtrees{},
		Buf:         NewBuffer(),
		Log:         log,
		tr:          varmap.NewTranslator(vars),
	}
}

// Apply runs every record against the buffer in script order, per the
// ordering guarantee: the script's own order is canonical, and the
// buffer's non-overlap check is what catches conflicting edits. The
// first failure aborts the run; no partial output is produced.
func (p *Patcher) Apply(records []script.Record) error {
	for _, rec := range records {
		if err := p.applyOne(rec); err != nil {
			if e, ok := err.(*perr.Error); ok && e.Line == 0 {
				e.AtLine(rec.Line)
			}
			p.Log.Error("patch operation failed", "line", rec.Line, "op", rec.Op, "err", err)
			return err
		}
		p.Log.Debug("applied edit", "line", rec.Line, "op", rec.Op)
	}
	return nil
}

// MissingMappings returns the identifiers that needed translation but
// had no entry in the variable map, accumulated across the whole run.
func (p *Patcher) MissingMappings() []string {
	return p.tr.Missing
}

func (p *Patcher) applyOne(rec script.Record) error {
	switch rec.Op {
	case script.Insert:
		return p.applyInsert(rec)
	case script.Move:
		return p.applyMove(rec)
	case script.Replace:
		return p.applyReplace(rec)
	case script.Update:
		return p.applyUpdate(rec)
	case script.Delete:
		return p.applyDelete(rec)
	case script.UpdateMove:
		p.Log.Debug("UpdateMove is a reserved no-op")
		return nil
	default:
		return perr.New(perr.ScriptParseError, "unknown operation %q", rec.Op)
	}
}

// resolve looks up ref in tree and checks its kind agrees with the
// script's claim, per the §4.3 pre-check.
func resolve(tree *astnode.Tree, ref script.NodeRef) (astnode.Node, error) {
	n, err := tree.Node(ref.ID)
	if err != nil {
		return astnode.Node{}, err
	}
	if n.Kind != ref.Kind {
		return astnode.Node{}, perr.New(perr.ScriptKindMismatch,
			"node %d in %s tree is %s, script says %s", ref.ID, tree.Slot, n.Kind, ref.Kind)
	}
	return n, nil
}

// translate applies the variable map to text extracted from the
// subtree rooted at id in tree.
func (p *Patcher) translate(tree *astnode.Tree, id int, text string) (string, error) {
	return p.tr.Translate(tree, id, text)
}

// filterSkippedCalls removes call expressions whose begin line appears
// in the skip list from inserted text, per the insert pre-translation
// contract. It operates on the destination subtree structurally (to
// find each CallExpr's line and range) and edits the text
// correspondingly, right to left so earlier offsets stay valid.
func (p *Patcher) filterSkippedCalls(tree *astnode.Tree, rootID int, baseOffset int, text string) (string, error) {
	if len(p.SkipLines) == 0 {
		return text, nil
	}
	type cut struct{ lo, hi int }
	var cuts []cut
	err := tree.Walk(rootID, func(stack []astnode.Node) bool {
		n := stack[len(stack)-1]
		if n.Kind == astnode.CallExpr && p.SkipLines[n.Start.Line] {
			lo := n.Range.Begin - baseOffset
			hi := n.Range.End - baseOffset
			if lo >= 0 && hi <= len(text) && lo <= hi {
				cuts = append(cuts, cut{lo, hi})
			}
			return false
		}
		return true
	})
	if err != nil {
		return text, err
	}
	for i := len(cuts) - 1; i >= 0; i-- {
		c := cuts[i]
		text = text[:c.lo] + text[c.hi:]
	}
	return text, nil
}

// extractInsertText produces the text to splice in for inserting node
// b (resolved in the destination tree): its source bytes, range
// expanded, translated, and with skip-listed calls filtered out —
// unless b is a pre-marked atomic subtree, in which case its bytes
// are copied verbatim with no translation or filtering, per the
// atomicity-of-subtree-insertion invariant.
func (p *Patcher) extractInsertText(b astnode.Node) (string, error) {
	if p.Atomic[b.ID] {
		raw, err := p.Destination.NodeText(b)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	return p.extractInsertTextFrom(p.Destination, b)
}

// extractInsertTextFrom implements the shared extraction pipeline
// (range-expand, skip-list filter, translate) for a node drawn from
// tree. Insert draws b from the destination tree; Move draws it from
// the target tree, since both of Move's operands resolve there.
func (p *Patcher) extractInsertTextFrom(tree *astnode.Tree, b astnode.Node) (string, error) {
	r := tree.ExpandRange(b.Range)
	raw, err := tree.Text(r)
	if err != nil {
		return "", err
	}
	// Skip-list filtering runs on the untranslated text, while the
	// filtered-out CallExpr's byte range is still valid against
	// tree's own offsets; identifier translation runs last so its
	// output is exactly what lands in the target buffer.
	filtered, err := p.filterSkippedCalls(tree, b.ID, r.Begin, string(raw))
	if err != nil {
		return "", err
	}
	return p.translate(tree, b.ID, filtered)
}

func ensureTrailingSemicolon(s string) string {
	t := strings.TrimRight(s, " \t\n")
	if t == "" || strings.HasSuffix(t, ";") {
		return s
	}
	return s + ";"
}
