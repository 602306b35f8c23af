package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// dump describes "if (a > 0) { f(); }" as an IfStmt wrapping a
// CompoundStmt, matching the byte offsets of that exact string.
const ifStmtDump = `{
  "filename": "t.c",
  "root": {
    "id": 0, "parent_id": -1, "type": "IfStmt",
    "start line": 1, "start column": 1, "end line": 1, "end column": 20,
    "begin": 0, "end": 19,
    "children": [
      {
        "id": 1, "parent_id": 0, "type": "BinaryOperator", "value": ">",
        "start line": 1, "start column": 5, "end line": 1, "end column": 10,
        "begin": 4, "end": 9, "children": []
      },
      {
        "id": 2, "parent_id": 0, "type": "CompoundStmt",
        "start line": 1, "start column": 12, "end line": 1, "end column": 20,
        "begin": 11, "end": 19, "children": []
      }
    ]
  }
}`

func TestInstrumentCmdWrapsCondition(t *testing.T) {
	dumpPath := writeTemp(t, "t.json", ifStmtDump)
	textPath := writeTemp(t, "t.c", "if (a > 0) { f(); }")

	var buf bytes.Buffer
	require.NoError(t, instrumentCmd(dumpPath, textPath, "sequential", &buf))

	out := buf.String()
	assert.Contains(t, out, "extern bool flip_callback")
	assert.Contains(t, out, "flip_callback( a > 0 ,0)")
}

func TestInstrumentCmdUnknownIDMode(t *testing.T) {
	dumpPath := writeTemp(t, "t.json", ifStmtDump)
	textPath := writeTemp(t, "t.c", "if (a > 0) { f(); }")

	var buf bytes.Buffer
	err := instrumentCmd(dumpPath, textPath, "bogus", &buf)
	require.Error(t, err)
}
