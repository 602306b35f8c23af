package patch

import (
	"github.com/grafter/graft/astnode"
	"github.com/grafter/graft/perr"
	"github.com/grafter/graft/script"
)

// applyDelete dispatches by the deleted node's kind, per §4.4's Delete
// rules. Both the deleted node and its context are resolved against
// the target tree.
func (p *Patcher) applyDelete(rec script.Record) error {
	n, err := resolve(p.Target, rec.C)
	if err != nil {
		return err
	}
	return p.deleteNode(n, false)
}

// deleteNode removes n from the target buffer. forMove distinguishes
// the Move-flavored BinaryOperator rule (delete begin..operator) from
// the plain Delete rule (operator spelling only).
func (p *Patcher) deleteNode(n astnode.Node, forMove bool) error {
	r, opts, err := p.deletionRangeFor(n, forMove)
	if err != nil {
		return err
	}
	if n.Kind == astnode.ParenExpr {
		return p.deleteParenExpr(n)
	}
	return p.Buf.Add(n.File, r, "", opts)
}

func (p *Patcher) deletionRangeFor(n astnode.Node, forMove bool) (astnode.Range, Options, error) {
	tree := p.Target
	switch n.Kind {
	case astnode.BinaryOperator:
		owned, err := tree.OwnedSubRanges(n.ID)
		if err != nil || len(owned) == 0 {
			return astnode.Range{}, Options{}, perr.New(perr.RangeUnavailable, "BinaryOperator %d has no operator token", n.ID)
		}
		opRange := owned[0]
		if forMove {
			return astnode.Range{Begin: n.Range.Begin, End: opRange.End}, Options{}, nil
		}
		return opRange, Options{}, nil

	case astnode.DeclStmt, astnode.Macro:
		r, err := tree.DeletionRange(n.ID)
		if err != nil {
			return astnode.Range{}, Options{}, err
		}
		return r, Options{RemoveLineIfEmpty: true}, nil

	case astnode.MemberExpr:
		loc, ok := memberLocation(tree, n)
		if !ok {
			return astnode.Range{}, Options{}, perr.New(perr.RangeUnavailable, "MemberExpr %d has no '.'/'->' token", n.ID)
		}
		opStart := loc
		if n.IsArrow {
			opStart -= 2
		} else {
			opStart--
		}
		return astnode.Range{Begin: opStart, End: n.Range.End}, Options{}, nil

	case astnode.IfStmt:
		children, err := tree.Children(n.ID)
		if err != nil {
			return astnode.Range{}, Options{}, err
		}
		if len(children) < 2 {
			return astnode.Range{}, Options{}, perr.New(perr.RangeUnavailable, "IfStmt %d missing then-branch", n.ID)
		}
		return astnode.Range{Begin: n.Range.Begin, End: children[1].Range.Begin}, Options{}, nil

	case astnode.DeclRefExpr:
		r, err := p.declRefDeletionRange(n)
		return r, Options{}, err

	default:
		return tree.ExpandRange(n.Range), Options{}, nil
	}
}

func (p *Patcher) declRefDeletionRange(n astnode.Node) (astnode.Range, error) {
	tree := p.Target
	parent, ok, err := tree.Parent(n.ID)
	if err != nil {
		return astnode.Range{}, err
	}
	if ok && parent.Kind == astnode.CallExpr {
		args := callArgs(mustNodes(tree, parent.Children))
		if len(args) > 0 && args[len(args)-1].ID == n.ID && len(args) > 1 {
			begin := n.Range.Begin
			src := tree.Source
			i := begin - 1
			for i >= 0 && (src[i] == ' ' || src[i] == '\t' || src[i] == '\n') {
				i--
			}
			if i >= 0 && src[i] == ',' {
				begin = i
			}
			return astnode.Range{Begin: begin, End: n.Range.End}, nil
		}
	}
	return tree.ExpandRange(n.Range), nil
}

func mustNodes(tree *astnode.Tree, ids []int) []astnode.Node {
	out := make([]astnode.Node, 0, len(ids))
	for _, id := range ids {
		if n, err := tree.Node(id); err == nil {
			out = append(out, n)
		}
	}
	return out
}

func (p *Patcher) deleteParenExpr(n astnode.Node) error {
	lp, ok := p.Target.FindByte(n.Range.Begin, n.Range.End, '(')
	if !ok {
		return perr.New(perr.RangeUnavailable, "ParenExpr %d has no '('", n.ID)
	}
	if err := p.Buf.Add(n.File, astnode.Range{Begin: lp - 1, End: lp}, "", Options{}); err != nil {
		return err
	}
	rp, ok := findLastByte(p.Target, n.Range.Begin, n.Range.End, ')')
	if !ok {
		return perr.New(perr.RangeUnavailable, "ParenExpr %d has no ')'", n.ID)
	}
	return p.Buf.Add(n.File, astnode.Range{Begin: rp, End: rp + 1}, "", Options{})
}

func findLastByte(tree *astnode.Tree, begin, end int, ch byte) (int, bool) {
	src := tree.Source
	if end > len(src) {
		end = len(src)
	}
	for i := end - 1; i >= begin; i-- {
		if src[i] == ch {
			return i, true
		}
	}
	return 0, false
}
