package jsonast

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grafter/graft/astnode"
)

const sampleDump = `{
  "filename": "x.c",
  "root": {
    "id": 0,
    "parent_id": -1,
    "type": "CompoundStmt",
    "start line": 1, "start column": 1,
    "end line": 1, "end column": 11,
    "begin": 0, "end": 10,
    "children": [
      {
        "id": 1,
        "parent_id": 0,
        "type": "BinaryOperator",
        "value": "=",
        "start line": 1, "start column": 3,
        "end line": 1, "end column": 8,
        "begin": 2, "end": 7,
        "children": []
      }
    ]
  }
}`

func TestDecodeBuildsTree(t *testing.T) {
	src := []byte("{ x = 1; }")
	tree, err := Decode(strings.NewReader(sampleDump), astnode.Target, src)
	require.NoError(t, err)

	assert.Equal(t, "x.c", tree.FileName)
	require.Len(t, tree.Roots, 1)

	root, err := tree.Node(tree.Roots[0])
	require.NoError(t, err)
	assert.Equal(t, astnode.CompoundStmt, root.Kind)
	require.Len(t, root.Children, 1)

	child, err := tree.Node(root.Children[0])
	require.NoError(t, err)
	assert.Equal(t, astnode.BinaryOperator, child.Kind)
	assert.Equal(t, "=", child.Value)
	assert.Equal(t, astnode.Range{Begin: 2, End: 7}, child.Range)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	src := []byte("{ x = 1; }")
	tree1, err := Decode(strings.NewReader(sampleDump), astnode.Target, src)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, tree1))

	tree2, err := Decode(&buf, astnode.Target, src)
	require.NoError(t, err)

	assert.Equal(t, tree1.FileName, tree2.FileName)
	assert.Equal(t, len(tree1.Nodes), len(tree2.Nodes))
	for i := range tree1.Nodes {
		assert.Equal(t, tree1.Nodes[i].Kind, tree2.Nodes[i].Kind)
		assert.Equal(t, tree1.Nodes[i].Range, tree2.Nodes[i].Range)
	}
}

func TestRenderTableProducesOutput(t *testing.T) {
	src := []byte("{ x = 1; }")
	tree, err := Decode(strings.NewReader(sampleDump), astnode.Target, src)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderTable(&buf, tree))
	assert.Contains(t, buf.String(), "CompoundStmt")
	assert.Contains(t, buf.String(), "BinaryOperator")
}
