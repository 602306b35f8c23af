package astio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grafter/graft/astnode"
)

const sampleDump = `{
  "filename": "x.c",
  "root": {
    "id": 0, "parent_id": -1, "type": "CompoundStmt",
    "start line": 1, "start column": 1, "end line": 1, "end column": 11,
    "begin": 0, "end": 10, "children": []
  }
}`

func TestLoadWithoutText(t *testing.T) {
	dumpPath := filepath.Join(t.TempDir(), "x.json")
	require.NoError(t, os.WriteFile(dumpPath, []byte(sampleDump), 0o644))

	tree, err := Load(dumpPath, astnode.Source, "")
	require.NoError(t, err)
	assert.Equal(t, "x.c", tree.FileName)
	assert.Empty(t, tree.Source)
}

func TestLoadWithText(t *testing.T) {
	dumpPath := filepath.Join(t.TempDir(), "x.json")
	require.NoError(t, os.WriteFile(dumpPath, []byte(sampleDump), 0o644))
	textPath := filepath.Join(t.TempDir(), "x.c")
	require.NoError(t, os.WriteFile(textPath, []byte("{ x = 1; }"), 0o644))

	tree, err := Load(dumpPath, astnode.Target, textPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("{ x = 1; }"), tree.Source)
}

func TestLoadMissingDump(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"), astnode.Source, "")
	require.Error(t, err)
}
