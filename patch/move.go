package patch

import (
	"github.com/grafter/graft/astnode"
	"github.com/grafter/graft/script"
)

// applyMove implements §4.4's Move rule: delete from the old parent,
// then insert into the new parent at the given offset. Both operands
// resolve in the target tree, unlike Insert where B resolves in the
// destination tree.
func (p *Patcher) applyMove(rec script.Record) error {
	b, err := resolve(p.Target, rec.B)
	if err != nil {
		return err
	}
	c, err := resolve(p.Target, rec.C)
	if err != nil {
		return err
	}

	if err := p.deleteNode(b, true); err != nil {
		return err
	}

	text, err := p.extractInsertTextFrom(p.Target, b)
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
