package diffscript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grafter/graft/astnode"
	"github.com/grafter/graft/script"
)

func buildCompound(t *testing.T, slot astnode.Slot, file string, stmts []string) (*astnode.Tree, []int) {
	src := "{"
	offsets := make([][2]int, len(stmts))
	for i, s := range stmts {
		begin := len(src)
		src += s
		offsets[i] = [2]int{begin, len(src)}
	}
	src += "}"

	b := astnode.NewBuilder(slot, file, []byte(src))
	root := b.Add(-1, astnode.Spec{Kind: "CompoundStmt", Range: astnode.Range{Begin: 0, End: len(src)}, File: file})
	ids := make([]int, len(stmts))
	for i, s := range stmts {
		ids[i] = b.Add(root, astnode.Spec{Kind: "DeclRefExpr", Identifier: s, Range: astnode.Range{Begin: offsets[i][0], End: offsets[i][1]}, File: file})
	}
	tree, err := b.Finish()
	require.NoError(t, err)
	return tree, ids
}

func TestDiffDetectsInsert(t *testing.T) {
	source, _ := buildCompound(t, astnode.Source, "s.c", []string{"a", "b"})
	destination, _ := buildCompound(t, astnode.Destination, "d.c", []string{"a", "c", "b"})

	recs, err := Diff(source, destination)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, script.Insert, recs[0].Op)
	assert.Equal(t, "c", mustIdentifier(t, destination, recs[0].B.ID))
}

func TestDiffDetectsDelete(t *testing.T) {
	source, _ := buildCompound(t, astnode.Source, "s.c", []string{"a", "b", "c"})
	destination, _ := buildCompound(t, astnode.Destination, "d.c", []string{"a", "c"})

	recs, err := Diff(source, destination)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, script.Delete, recs[0].Op)
	assert.Equal(t, "b", mustIdentifier(t, source, recs[0].C.ID))
}

func TestDiffCoalescesMove(t *testing.T) {
	source, _ := buildCompound(t, astnode.Source, "s.c", []string{"a", "b", "c"})
	destination, _ := buildCompound(t, astnode.Destination, "d.c", []string{"b", "a", "c"})

	recs, err := Diff(source, destination)
	require.NoError(t, err)
	// A transposition of two elements with one held in common is an
	// edit distance of exactly one delete + one insert under any
	// minimal alignment, so it always coalesces into a single Move,
	// though which of the two transposed elements is "the one that
	// moved" is an alignment choice left to the underlying Myers diff.
	require.Len(t, recs, 1)
	assert.Equal(t, script.Move, recs[0].Op)
	moved := mustIdentifier(t, source, recs[0].B.ID)
	assert.Contains(t, []string{"a", "b"}, moved)
}

func buildCompoundKinds(t *testing.T, slot astnode.Slot, file string, kinds []astnode.Kind, texts []string) *astnode.Tree {
	src := "{"
	offsets := make([][2]int, len(texts))
	for i, s := range texts {
		begin := len(src)
		src += s
		offsets[i] = [2]int{begin, len(src)}
	}
	src += "}"

	b := astnode.NewBuilder(slot, file, []byte(src))
	root := b.Add(-1, astnode.Spec{Kind: "CompoundStmt", Range: astnode.Range{Begin: 0, End: len(src)}, File: file})
	for i, k := range kinds {
		b.Add(root, astnode.Spec{Kind: string(k), Identifier: texts[i], Range: astnode.Range{Begin: offsets[i][0], End: offsets[i][1]}, File: file})
	}
	tree, err := b.Finish()
	require.NoError(t, err)
	return tree
}

func TestDiffDetectsUpdateOnSameKindSubstitution(t *testing.T) {
	source, _ := buildCompound(t, astnode.Source, "s.c", []string{"a", "b", "c"})
	destination, _ := buildCompound(t, astnode.Destination, "d.c", []string{"a", "x", "c"})

	recs, err := Diff(source, destination)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, script.Update, recs[0].Op)
	assert.Equal(t, "b", mustIdentifier(t, source, recs[0].C.ID))
	assert.Equal(t, "x", mustIdentifier(t, destination, recs[0].B.ID))
}

func TestDiffDetectsReplaceOnDifferentKindSubstitution(t *testing.T) {
	source := buildCompoundKinds(t, astnode.Source, "s.c",
		[]astnode.Kind{astnode.DeclRefExpr, astnode.DeclRefExpr, astnode.DeclRefExpr},
		[]string{"a", "b", "c"})
	destination := buildCompoundKinds(t, astnode.Destination, "d.c",
		[]astnode.Kind{astnode.DeclRefExpr, astnode.StringLiteral, astnode.DeclRefExpr},
		[]string{"a", "b", "c"})

	recs, err := Diff(source, destination)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, script.Replace, recs[0].Op)
	assert.Equal(t, astnode.DeclRefExpr, recs[0].C.Kind)
	assert.Equal(t, astnode.StringLiteral, recs[0].B.Kind)
}

func mustIdentifier(t *testing.T, tree *astnode.Tree, id int) string {
	n, err := tree.Node(id)
	require.NoError(t, err)
	return n.Identifier
}
