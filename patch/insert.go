package patch

import (
	"github.com/grafter/graft/astnode"
	"github.com/grafter/graft/perr"
	"github.com/grafter/graft/script"
)

// applyInsert implements §4.4's Insert decision table. It routes by
// the target parent's kind, not the inserted node's kind, because the
// syntactic context dictates the shape of the edit.
func (p *Patcher) applyInsert(rec script.Record) error {
	c, err := resolve(p.Target, rec.C)
	if err != nil {
		return err
	}
	b, err := resolve(p.Destination, rec.B)
	if err != nil {
		return err
	}
	text, err := p.extractInsertText(b)
	if err != nil {
		return err
	}

	children, err := p.Target.Children(c.ID)
	if err != nil {
		return err
	}

	pos, repl, opts, err := p.insertionPoint(c, children, rec.Offset, text, b.Kind)
	if err != nil {
		return err
	}
	return p.Buf.Add(c.File, astnode.Range{Begin: pos, End: pos}, repl, opts)
}

// insertionPoint computes where and what to insert for a node going
// into parent c at offset k, following the per-parent-kind table.
func (p *Patcher) insertionPoint(c astnode.Node, children []astnode.Node, k int, text string, insKind astnode.Kind) (int, string, Options, error) {
	switch c.Kind {
	case astnode.CompoundStmt:
		return p.insertIntoCompoundStmt(c, children, k, text, insKind)
	case astnode.IfStmt:
		return p.insertIntoIfStmt(c, children, k, text)
	case astnode.BinaryOperator:
		return p.insertIntoBinaryOperator(c, k, text)
	case astnode.CallExpr:
		return p.insertIntoCallExpr(c, children, k, text)
	case astnode.VarDecl:
		return p.insertIntoVarDecl(c, text)
	case astnode.EnumDecl:
		return p.insertIntoDelimitedList(c, children, k, text, ", ", ", ")
	case astnode.RecordDecl:
		return p.insertIntoDelimitedList(c, children, k, text, "\n", "\n")
	case astnode.InitListExpr:
		return p.insertIntoDelimitedList(c, children, k, text, ", ", ",\n")
	case astnode.LabelStmt:
		return p.insertIntoLabelStmt(c, children, k, text)
	case astnode.MemberExpr:
		return p.insertIntoMemberExpr(c, k, text)
	case astnode.CaseStmt:
		return p.insertIntoCaseStmt(c, children, k, text)
	default:
		return p.insertDefault(c, children, k, text)
	}
}

func (p *Patcher) insertIntoCompoundStmt(c astnode.Node, children []astnode.Node, k int, text string, insKind astnode.Kind) (int, string, Options, error) {
	n := len(children)

	if insKind == astnode.BinaryOperator || insKind == astnode.ReturnStmt {
		text = ensureTrailingSemicolon(text)
		text = "\n" + text + "\n"
	}

	if k == 0 && n == 0 {
		pos, ok := p.Target.FindByte(c.Range.Begin, c.Range.End, '{')
		if !ok {
			return 0, "", Options{}, perr.New(perr.RangeUnavailable, "CompoundStmt %d has no '{'", c.ID)
		}
		return pos, text, Options{}, nil
	}
	if k == 0 && n > 0 {
		return c.Range.Begin + 1, text, Options{}, nil
	}
	idx := k - 1
	if idx < 0 || idx >= n {
		return 0, "", Options{}, perr.New(perr.RangeUnavailable, "offset %d out of range for CompoundStmt %d with %d children", k, c.ID, n)
	}
	prev := children[idx]
	pos := prev.Range.End
	if prev.Kind == astnode.CStyleCastExpr {
		if len(prev.Children) > 0 {
			rhs, err := p.Target.Node(prev.Children[len(prev.Children)-1])
			if err == nil {
				pos = rhs.Range.End
			}
		}
	}
	return pos, text, Options{}, nil
}

func (p *Patcher) insertIntoIfStmt(c astnode.Node, children []astnode.Node, k int, text string) (int, string, Options, error) {
	if k == 0 {
		if len(children) == 0 {
			return c.Range.Begin, text, Options{}, nil
		}
		return children[0].Range.Begin, text, Options{}, nil
	}
	idx := k - 1
	if idx < 0 || idx >= len(children) {
		return 0, "", Options{}, perr.New(perr.RangeUnavailable, "offset %d out of range for IfStmt %d", k, c.ID)
	}
	pos := children[idx].Range.End
	if k > 1 {
		text = "\nelse " + text
	}
	return pos, text, Options{}, nil
}

func (p *Patcher) insertIntoBinaryOperator(c astnode.Node, k int, text string) (int, string, Options, error) {
	owned, err := p.Target.OwnedSubRanges(c.ID)
	if err != nil || len(owned) == 0 {
		return 0, "", Options{}, perr.New(perr.RangeUnavailable, "BinaryOperator %d has no operator token", c.ID)
	}
	opRange := owned[0]
	if k == 0 {
		return opRange.Begin, text, Options{}, nil
	}
	return opRange.End, text, Options{}, nil
}

func callArgs(children []astnode.Node) []astnode.Node {
	if len(children) == 0 {
		return nil
	}
	return children[1:]
}

func (p *Patcher) insertIntoCallExpr(c astnode.Node, children []astnode.Node, k int, text string) (int, string, Options, error) {
	args := callArgs(children)
	n := len(args)

	if k > n-1 {
		pos, ok := p.Target.FindByte(c.Range.Begin, c.Range.End, ')')
		if !ok {
			return 0, "", Options{}, perr.New(perr.RangeUnavailable, "CallExpr %d has no ')'", c.ID)
		}
		pos--
		if n == 0 {
			return pos, text, Options{}, nil
		}
		return pos, ", " + text, Options{}, nil
	}
	pos := args[k].Range.Begin
	return pos, text + ", ", Options{}, nil
}

func (p *Patcher) insertIntoVarDecl(c astnode.Node, text string) (int, string, Options, error) {
	pos := c.Range.End
	if pos > c.Range.Begin {
		if last := p.Target.Source[pos-1]; last == ';' || last == ',' {
			pos--
		}
	}
	return pos, " = " + text, Options{}, nil
}

func (p *Patcher) insertIntoDelimitedList(c astnode.Node, children []astnode.Node, k int, text, afterLastPrefix, beforePrefix string) (int, string, Options, error) {
	n := len(children)
	if n == 0 {
		pos, ok := p.Target.FindByte(c.Range.Begin, c.Range.End, '{')
		if !ok {
			pos = c.Range.Begin
		}
		return pos, text, Options{}, nil
	}
	if k < n {
		return children[k].Range.Begin, text + beforePrefix, Options{}, nil
	}
	last := children[n-1]
	return last.Range.End, afterLastPrefix + text, Options{}, nil
}

func (p *Patcher) insertIntoLabelStmt(c astnode.Node, children []astnode.Node, k int, text string) (int, string, Options, error) {
	text = ensureTrailingSemicolon(text)
	if len(children) == 0 {
		pos, ok := p.Target.FindByte(c.Range.Begin, c.Range.End, ':')
		if !ok {
			pos = c.Range.End
		}
		return pos, " " + text, Options{}, nil
	}
	if k == 0 {
		return children[0].Range.Begin, text + "\n", Options{}, nil
	}
	idx := k - 1
	if idx < 0 || idx >= len(children) {
		idx = len(children) - 1
	}
	return children[idx].Range.End, "\n" + text, Options{}, nil
}

func (p *Patcher) insertIntoMemberExpr(c astnode.Node, k int, text string) (int, string, Options, error) {
	if k == 0 {
		return c.Range.Begin, text, Options{}, nil
	}
	pos, ok := memberLocation(p.Target, c)
	if !ok {
		pos = c.Range.End
	}
	return pos, text, Options{}, nil
}

// memberLocation finds the byte offset right after the '.'/'->' token
// of a MemberExpr, i.e. right before the member name.
func memberLocation(tree *astnode.Tree, n astnode.Node) (int, bool) {
	if n.IsArrow {
		if pos, ok := tree.FindString(n.Range.Begin, n.Range.End, "->"); ok {
			return pos, true
		}
		return 0, false
	}
	if pos, ok := tree.FindByte(n.Range.Begin, n.Range.End, '.'); ok {
		return pos, true
	}
	return 0, false
}

func (p *Patcher) insertIntoCaseStmt(c astnode.Node, children []astnode.Node, k int, text string) (int, string, Options, error) {
	if k == 0 {
		if len(children) == 0 {
			return c.Range.Begin, text, Options{}, nil
		}
		return children[0].Range.Begin, text, Options{}, nil
	}
	if k < 0 || k >= len(children) {
		return 0, "", Options{}, perr.New(perr.RangeUnavailable, "offset %d out of range for CaseStmt %d", k, c.ID)
	}
	return children[k].Range.Begin, text, Options{}, nil
}

func (p *Patcher) insertDefault(c astnode.Node, children []astnode.Node, k int, text string) (int, string, Options, error) {
	n := len(children)
	if k == 0 && n == 0 {
		return c.Range.Begin, text, Options{}, nil
	}
	if k == 0 && n > 0 {
		return c.Range.Begin, text, Options{}, nil
	}
	if k <= n-1 {
		return children[k].Range.Begin, text, Options{}, nil
	}
	return children[n-1].Range.End, text, Options{}, nil
}
