package astnode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSimpleTree(t *testing.T) (*Tree, map[string]int) {
	// int x = 1;
	src := []byte("int x = 1;")
	b := NewBuilder(Target, "t.c", src)
	ids := map[string]int{}
	ids["decl"] = b.Add(-1, Spec{Kind: "VarDecl", Identifier: "x", Range: Range{0, 10}})
	ids["lit"] = b.Add(ids["decl"], Spec{Kind: "IntegerLiteral", Value: "1", Range: Range{8, 9}})
	tree, err := b.Finish()
	require.NoError(t, err)
	return tree, ids
}

func TestIDMonotonicity(t *testing.T) {
	tree, ids := buildSimpleTree(t)
	decl, err := tree.Node(ids["decl"])
	require.NoError(t, err)
	lit, err := tree.Node(ids["lit"])
	require.NoError(t, err)
	assert.LessOrEqual(t, decl.ID, lit.ID)
	assert.Equal(t, lit.ID, decl.RightMost)
}

func TestRangeExpansionSemicolon(t *testing.T) {
	tree, ids := buildSimpleTree(t)
	decl, err := tree.Node(ids["decl"])
	require.NoError(t, err)
	// Node's own stated range ends right at the ';' (exclusive), so
	// expansion should absorb it.
	r := Range{Begin: decl.Range.Begin, End: 9}
	expanded := tree.ExpandRange(r)
	assert.Equal(t, 10, expanded.End)
}

func TestOwnedSubRangesTile(t *testing.T) {
	tree, ids := buildSimpleTree(t)
	owned, err := tree.OwnedSubRanges(ids["decl"])
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, Range{0, 8}, owned[0])
	assert.Equal(t, Range{9, 10}, owned[1])

	decl, _ := tree.Node(ids["decl"])
	lit, _ := tree.Node(ids["lit"])
	// Tiling: owned + child ranges reconstruct the parent's range exactly.
	assert.Equal(t, decl.Range.Begin, owned[0].Begin)
	assert.Equal(t, lit.Range.Begin, owned[0].End)
	assert.Equal(t, lit.Range.End, owned[1].Begin)
	assert.Equal(t, decl.Range.End, owned[1].End)
}

func TestWalkVisitsInPreOrder(t *testing.T) {
	tree, ids := buildSimpleTree(t)
	var seen []int
	err := tree.Walk(ids["decl"], func(stack []Node) bool {
		seen = append(seen, stack[len(stack)-1].ID)
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, []int{ids["decl"], ids["lit"]}, seen)
}

func TestNodeNotFound(t *testing.T) {
	tree, _ := buildSimpleTree(t)
	_, err := tree.Node(99)
	assert.Error(t, err)
}
