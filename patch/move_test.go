package patch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grafter/graft/astnode"
	"github.com/grafter/graft/script"
)

// TestMoveReordersCallArgument covers the CallExpr-argument path:
// moving the last argument of f(a, b) to the front produces f(b, a).
func TestMoveReordersCallArgument(t *testing.T) {
	src := []byte("f(a, b)")
	tb := astnode.NewBuilder(astnode.Target, "t.c", src)
	call := tb.Add(-1, astnode.Spec{Kind: "CallExpr", Range: astnode.Range{Begin: 0, End: 7}, File: "t.c"})
	tb.Add(call, astnode.Spec{Kind: "DeclRefExpr", Identifier: "f", RefType: "FunctionDecl", Range: astnode.Range{Begin: 0, End: 1}, File: "t.c"})
	tb.Add(call, astnode.Spec{Kind: "DeclRefExpr", Identifier: "a", RefType: "VarDecl", Range: astnode.Range{Begin: 2, End: 3}, File: "t.c"})
	bID := tb.Add(call, astnode.Spec{Kind: "DeclRefExpr", Identifier: "b", RefType: "VarDecl", Range: astnode.Range{Begin: 5, End: 6}, File: "t.c"})
	target, err := tb.Finish()
	require.NoError(t, err)

	p := New(nil, nil, target, nil)
	rec := script.Record{Op: script.Move,
		B:      script.NodeRef{Kind: astnode.DeclRefExpr, ID: bID},
		C:      script.NodeRef{Kind: astnode.CallExpr, ID: call},
		Offset: 0, Line: 1}
	require.NoError(t, p.Apply([]script.Record{rec}))

	out, err := p.Buf.Flush("t.c", target.Source)
	require.NoError(t, err)
	assert.Equal(t, "f(b, a)", string(out))
}

// TestMoveReordersCompoundStmtChild covers moving a statement within a
// CompoundStmt to a later position. The moved node's Kind is neither
// BinaryOperator nor ReturnStmt, so insertIntoCompoundStmt inserts it
// with no separator of its own — the leftover whitespace and the lack
// of a gap before the inserted text are the mechanical result of the
// original source's own spacing, not an injected formatting choice.
func TestMoveReordersCompoundStmtChild(t *testing.T) {
	src := []byte("{ a; b; }")
	tb := astnode.NewBuilder(astnode.Target, "t.c", src)
	comp := tb.Add(-1, astnode.Spec{Kind: "CompoundStmt", Range: astnode.Range{Begin: 0, End: 9}, File: "t.c"})
	aID := tb.Add(comp, astnode.Spec{Kind: "DeclRefExpr", Identifier: "a", RefType: "VarDecl", Range: astnode.Range{Begin: 2, End: 4}, File: "t.c"})
	tb.Add(comp, astnode.Spec{Kind: "DeclRefExpr", Identifier: "b", RefType: "VarDecl", Range: astnode.Range{Begin: 5, End: 7}, File: "t.c"})
	target, err := tb.Finish()
	require.NoError(t, err)

	p := New(nil, nil, target, nil)
	rec := script.Record{Op: script.Move,
		B:      script.NodeRef{Kind: astnode.DeclRefExpr, ID: aID},
		C:      script.NodeRef{Kind: astnode.CompoundStmt, ID: comp},
		Offset: 2, Line: 1}
	require.NoError(t, p.Apply([]script.Record{rec}))

	out, err := p.Buf.Flush("t.c", target.Source)
	require.NoError(t, err)
	assert.Equal(t, "{  b;a; }", string(out))
}
