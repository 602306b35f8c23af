package patch

import (
	"strings"

	"github.com/grafter/graft/astnode"
	"github.com/grafter/graft/perr"
	"github.com/grafter/graft/script"
)

// applyUpdate changes only a node's value — an identifier, a literal,
// or an operator spelling — per §4.4's Update rule.
func (p *Patcher) applyUpdate(rec script.Record) error {
	c, err := resolve(p.Target, rec.C)
	if err != nil {
		return err
	}
	b, err := resolve(p.Destination, rec.B)
	if err != nil {
		return err
	}

	switch c.Kind {
	case astnode.BinaryOperator:
		return p.updateBinaryOperator(c, b)
	case astnode.Macro:
		return p.updateMacro(c, b)
	case astnode.StringLiteral:
		return p.updateStringLiteral(c, b)
	case astnode.MemberExpr:
		return p.updateMemberExpr(c, b)
	default:
		return p.updateDefault(c, b)
	}
}

func (p *Patcher) newValueText(b astnode.Node, preferLexed bool) (string, error) {
	var raw string
	if preferLexed {
		text, err := p.Destination.NodeText(b)
		if err != nil {
			return "", err
		}
		raw = string(text)
	} else {
		raw = b.Value
	}
	return p.translate(p.Destination, b.ID, raw)
}

func (p *Patcher) updateBinaryOperator(c, b astnode.Node) error {
	owned, err := p.Target.OwnedSubRanges(c.ID)
	if err != nil || len(owned) == 0 {
		return perr.New(perr.RangeUnavailable, "BinaryOperator %d has no operator token", c.ID)
	}
	children, err := p.Target.Children(c.ID)
	if err != nil {
		return err
	}
	if len(children) < 2 {
		return perr.New(perr.RangeUnavailable, "BinaryOperator %d missing RHS", c.ID)
	}
	rhs := children[1]
	r := astnode.Range{Begin: owned[0].Begin, End: rhs.Range.Begin}
	text, err := p.newValueText(b, false)
	if err != nil {
		return err
	}
	return p.Buf.Add(c.File, r, text, Options{})
}

// updateMacro tries an in-place replace of the macro's own range; if
// the macro has no usable range (the RangeUnavailable case spec.md §7
// calls out for macro-only nodes), it climbs to the parent and splices
// the new value in at the parent's begin instead.
func (p *Patcher) updateMacro(c, b astnode.Node) error {
	text, err := p.newValueText(b, false)
	if err != nil {
		return err
	}
	if !c.Range.Empty() {
		return p.Buf.Add(c.File, c.Range, text, Options{})
	}
	parent, ok, err := p.Target.Parent(c.ID)
	if err != nil {
		return err
	}
	if !ok {
		return perr.New(perr.RangeUnavailable, "Macro %d has no range and no parent to splice into", c.ID)
	}
	return p.Buf.Insert(parent.File, parent.Range.Begin, text)
}

func (p *Patcher) updateStringLiteral(c, b astnode.Node) error {
	raw, err := p.translate(p.Destination, b.ID, b.Value)
	if err != nil {
		return err
	}
	quoted := `"` + raw + `"`
	return p.Buf.Add(c.File, c.Range, quoted, Options{})
}

// updateMemberExpr replaces the member name (the text after the
// '.'/'->' token) with the new value's lexed text. A leading '.' or
// "->" is stripped from that new value, but only when the value
// actually begins with one — the original tool's unconditional
// substr(1) broke whenever it didn't (see the open question this
// resolves). The old value is not consulted.
func (p *Patcher) updateMemberExpr(c, b astnode.Node) error {
	text, err := p.newValueText(b, true)
	if err != nil {
		return err
	}
	text = stripLeadingSeparator(text)
	loc, ok := memberLocation(p.Target, c)
	if !ok {
		return perr.New(perr.RangeUnavailable, "MemberExpr %d has no '.'/'->' token", c.ID)
	}
	return p.Buf.Add(c.File, astnode.Range{Begin: loc, End: c.Range.End}, text, Options{})
}

func stripLeadingSeparator(s string) string {
	if strings.HasPrefix(s, "->") {
		return s[2:]
	}
	if strings.HasPrefix(s, ".") {
		return s[1:]
	}
	return s
}

func (p *Patcher) updateDefault(c, b astnode.Node) error {
	preferLexed := c.Kind == astnode.IntegerLiteral
	text, err := p.newValueText(b, preferLexed)
	if err != nil {
		return err
	}
	return p.Buf.Add(c.File, c.Range, text, Options{})
}
