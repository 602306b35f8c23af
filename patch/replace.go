package patch

import (
	"github.com/grafter/graft/astnode"
	"github.com/grafter/graft/script"
)

// applyReplace implements §4.4's Replace rule: when the replaced
// node's parent is a CompoundStmt (and the node isn't a Macro), the
// new text goes in before the node (or right after the previous
// sibling) and the old range is removed separately, preserving
// surrounding statement punctuation. Otherwise the node's own range is
// substituted directly. A non-first child of an IfStmt gets its
// replacement wrapped as "\n" + text + ";".
func (p *Patcher) applyReplace(rec script.Record) error {
	c, err := resolve(p.Target, rec.C)
	if err != nil {
		return err
	}
	b, err := resolve(p.Destination, rec.B)
	if err != nil {
		return err
	}
	text, err := p.extractReplaceText(b)
	if err != nil {
		return err
	}

	parent, hasParent, err := p.Target.Parent(c.ID)
	if err != nil {
		return err
	}

	if hasParent && parent.Kind == astnode.CompoundStmt && c.Kind != astnode.Macro {
		pos := c.Range.Begin
		if idx := p.Target.ChildIndex(parent.ID, c.ID); idx > 0 {
			prev, err := p.Target.Node(parent.Children[idx-1])
			if err != nil {
				return err
			}
			pos = prev.Range.End
		}
		if err := p.Buf.Insert(c.File, pos, text); err != nil {
			return err
		}
		return p.Buf.Add(c.File, c.Range, "", Options{})
	}

	if hasParent && parent.Kind == astnode.IfStmt {
		if idx := p.Target.ChildIndex(parent.ID, c.ID); idx != 0 {
			text = "\n" + text + ";"
		}
	}
	return p.Buf.Add(c.File, c.Range, text, Options{})
}

// extractReplaceText extracts b's own source text from the destination
// tree and applies identifier translation. Unlike Insert, Replace does
// not range-expand or skip-list filter — the replaced slot's own
// punctuation is owned by the target node being replaced, not by b.
func (p *Patcher) extractReplaceText(b astnode.Node) (string, error) {
	raw, err := p.Destination.NodeText(b)
	if err != nil {
		return "", err
	}
	return p.translate(p.Destination, b.ID, string(raw))
}
