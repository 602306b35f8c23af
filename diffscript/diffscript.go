// Package diffscript computes an edit script between a source and a
// destination tree, in the §4.3 grammar the patch package consumes.
// It is intentionally not a full tree-edit-distance algorithm: it
// aligns each matched pair of nodes' children with a Myers diff over a
// content-hash encoding, recursing into matched pairs. An aligned
// delete/insert pair at the same position becomes Update (same Kind)
// or Replace (different Kind); delete/insert pairs elsewhere with
// identical deep signatures coalesce into Move. This is sufficient to
// produce scripts that round-trip through every rewriter path in
// package patch, not to minimize edit count in general.
package diffscript

import (
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/grafter/graft/astnode"
	"github.com/grafter/graft/perr"
	"github.com/grafter/graft/script"
)

// pendingDelete and pendingInsert are recorded during the recursive
// walk and only turned into script.Records at the end, so a matching
// pair of them can be coalesced into a single Move record first.
type pendingDelete struct {
	node astnode.Node
	sig  string
}

type pendingInsert struct {
	node   astnode.Node // in the destination tree
	parent astnode.Node // in the source/target tree
	offset int
	sig    string
}

// pendingSubstitution pairs a deleted and an inserted node that sit at
// the same aligned position within the same parent, the signal that a
// delete/insert pair is really one node changing into another rather
// than an unrelated removal and addition.
type pendingSubstitution struct {
	old astnode.Node // in the source/target tree
	new astnode.Node // in the destination tree
}

type differ struct {
	source      *astnode.Tree
	destination *astnode.Tree
	dmp         *diffmatchpatch.DiffMatchPatch

	deletes       []pendingDelete
	inserts       []pendingInsert
	substitutions []pendingSubstitution
}

// Diff computes a script transforming source's text into destination's,
// in terms of node ids that number the same as source — the grammar's
// "target tree" is, for this differ's output, assumed to be a tree
// sharing source's id numbering (the common case: diffing two
// revisions of the same file and replaying the result against that
// same file, or a transplant target cloned from the same ancestor).
func Diff(source, destination *astnode.Tree) ([]script.Record, error) {
	if len(source.Roots) != 1 || len(destination.Roots) != 1 {
		return nil, perr.New(perr.ASTBuildFailed, "diffscript requires exactly one root per tree (source has %d, destination has %d)", len(source.Roots), len(destination.Roots))
	}
	srcRoot, err := source.Node(source.Roots[0])
	if err != nil {
		return nil, err
	}
	dstRoot, err := destination.Node(destination.Roots[0])
	if err != nil {
		return nil, err
	}

	d := &differ{source: source, destination: destination, dmp: diffmatchpatch.New()}
	if err := d.diffChildren(srcRoot, dstRoot); err != nil {
		return nil, err
	}
	return d.finalize(), nil
}

func signature(n astnode.Node) string {
	return string(n.Kind) + "\x1f" + n.Identifier + "\x1f" + n.Value
}

func (d *differ) deepSignature(tree *astnode.Tree, id int) string {
	n, err := tree.Node(id)
	if err != nil {
		return ""
	}
	s := signature(n) + "["
	for _, cid := range n.Children {
		s += d.deepSignature(tree, cid)
	}
	return s + "]"
}

// diffChildren aligns srcParent's and dstParent's children using a
// Myers diff over a rune encoding of each child's signature (the same
// trick diffmatchpatch.DiffLinesToRunes uses for line diffing, applied
// to AST children instead of text lines), then recurses into matched
// pairs to find nested changes.
func (d *differ) diffChildren(srcParent, dstParent astnode.Node) error {
	srcChildren, err := d.source.Children(srcParent.ID)
	if err != nil {
		return err
	}
	dstChildren, err := d.destination.Children(dstParent.ID)
	if err != nil {
		return err
	}

	runeOf := map[string]rune{}
	var next rune = 1
	encode := func(n astnode.Node) rune {
		sig := signature(n)
		r, ok := runeOf[sig]
		if !ok {
			r = next
			runeOf[sig] = r
			next++
		}
		return r
	}

	srcRunes := make([]rune, len(srcChildren))
	for i, n := range srcChildren {
		srcRunes[i] = encode(n)
	}
	dstRunes := make([]rune, len(dstChildren))
	for i, n := range dstChildren {
		dstRunes[i] = encode(n)
	}

	diffs := d.dmp.DiffMainRunes(srcRunes, dstRunes, false)

	si, di := 0, 0
	for i := 0; i < len(diffs); i++ {
		df := diffs[i]
		n := len([]rune(df.Text))
		switch df.Type {
		case diffmatchpatch.DiffEqual:
			for k := 0; k < n; k++ {
				if err := d.diffChildren(srcChildren[si+k], dstChildren[di+k]); err != nil {
					return err
				}
			}
			si += n
			di += n
		case diffmatchpatch.DiffDelete:
			// A delete run immediately followed by an insert run is a
			// substitution at each aligned position, not an unrelated
			// removal and addition: pair them off first and only fall
			// back to plain Delete/Insert for the unpaired remainder.
			insN := 0
			if i+1 < len(diffs) && diffs[i+1].Type == diffmatchpatch.DiffInsert {
				insN = len([]rune(diffs[i+1].Text))
			}
			paired := n
			if insN < paired {
				paired = insN
			}
			for k := 0; k < paired; k++ {
				d.substitutions = append(d.substitutions, pendingSubstitution{
					old: srcChildren[si+k],
					new: dstChildren[di+k],
				})
			}
			for k := paired; k < n; k++ {
				victim := srcChildren[si+k]
				d.deletes = append(d.deletes, pendingDelete{node: victim, sig: d.deepSignature(d.source, victim.ID)})
			}
			si += n
			if insN > 0 {
				for k := paired; k < insN; k++ {
					added := dstChildren[di+k]
					d.inserts = append(d.inserts, pendingInsert{
						node: added, parent: srcParent, offset: si + k - paired,
						sig: d.deepSignature(d.destination, added.ID),
					})
				}
				di += insN
				i++ // consume the insert run paired above
			}
		case diffmatchpatch.DiffInsert:
			for k := 0; k < n; k++ {
				added := dstChildren[di+k]
				d.inserts = append(d.inserts, pendingInsert{
					node: added, parent: srcParent, offset: si + k,
					sig: d.deepSignature(d.destination, added.ID),
				})
			}
			di += n
		}
	}
	return nil
}

// finalize turns the pending deletes/inserts into script records,
// first coalescing any delete/insert pair whose subtrees are
// structurally identical (ignoring ids) into a single Move.
func (d *differ) finalize() []script.Record {
	usedDelete := make([]bool, len(d.deletes))
	var records []script.Record
	line := 0
	nextLine := func() int { line++; return line }

	for _, sub := range d.substitutions {
		op := script.Replace
		if sub.old.Kind == sub.new.Kind {
			op = script.Update
		}
		records = append(records, script.Record{
			Op:   op,
			B:    script.NodeRef{Kind: sub.new.Kind, ID: sub.new.ID},
			C:    script.NodeRef{Kind: sub.old.Kind, ID: sub.old.ID},
			Line: nextLine(),
		})
	}

	for _, ins := range d.inserts {
		moved := -1
		for i, del := range d.deletes {
			if usedDelete[i] || del.sig != ins.sig {
				continue
			}
			moved = i
			break
		}
		if moved >= 0 {
			usedDelete[moved] = true
			victim := d.deletes[moved].node
			records = append(records, script.Record{
				Op:     script.Move,
				B:      script.NodeRef{Kind: victim.Kind, ID: victim.ID},
				C:      script.NodeRef{Kind: ins.parent.Kind, ID: ins.parent.ID},
				Offset: ins.offset,
				Line:   nextLine(),
			})
			continue
		}
		records = append(records, script.Record{
			Op:     script.Insert,
			B:      script.NodeRef{Kind: ins.node.Kind, ID: ins.node.ID},
			C:      script.NodeRef{Kind: ins.parent.Kind, ID: ins.parent.ID},
			Offset: ins.offset,
			Line:   nextLine(),
		})
	}

	for i, del := range d.deletes {
		if usedDelete[i] {
			continue
		}
		records = append(records, script.Record{
			Op:   script.Delete,
			C:    script.NodeRef{Kind: del.node.Kind, ID: del.node.ID},
			Line: nextLine(),
		})
	}

	return records
}
