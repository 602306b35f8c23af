package script

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grafter/graft/astnode"
)

func TestParseLineAllForms(t *testing.T) {
	rec, err := ParseLine("Insert BinaryOperator(7) into CompoundStmt(3) at 1")
	require.Nil(t, err)
	assert.Equal(t, Insert, rec.Op)
	assert.Equal(t, astnode.BinaryOperator, rec.B.Kind)
	assert.Equal(t, 7, rec.B.ID)
	assert.Equal(t, astnode.CompoundStmt, rec.C.Kind)
	assert.Equal(t, 3, rec.C.ID)
	assert.Equal(t, 1, rec.Offset)

	rec, err = ParseLine("Delete DeclStmt(12)")
	require.Nil(t, err)
	assert.Equal(t, Delete, rec.Op)
	assert.Equal(t, 12, rec.C.ID)

	rec, err = ParseLine("Replace CallExpr(4) with CallExpr(9)")
	require.Nil(t, err)
	assert.Equal(t, Replace, rec.Op)

	rec, err = ParseLine("Update BinaryOperator(2) to BinaryOperator(5)")
	require.Nil(t, err)
	assert.Equal(t, Update, rec.Op)

	rec, err = ParseLine("Move VarDecl(8) into CompoundStmt(3) at 0")
	require.Nil(t, err)
	assert.Equal(t, Move, rec.Op)

	rec, err = ParseLine("UpdateMove whatever")
	require.Nil(t, err)
	assert.Equal(t, UpdateMove, rec.Op)
}

func TestParseLineMalformed(t *testing.T) {
	_, err := ParseLine("Frobnicate X(1)")
	require.Error(t, err)
	assert.Equal(t, "ScriptParseError", string(err.Kind))
}

func TestRecordStringRoundTripsThroughParseLine(t *testing.T) {
	lines := []string{
		"Insert BinaryOperator(7) into CompoundStmt(3) at 1",
		"Move VarDecl(8) into CompoundStmt(3) at 0",
		"Replace CallExpr(4) with CallExpr(9)",
		"Update BinaryOperator(2) to BinaryOperator(5)",
		"Delete DeclStmt(12)",
	}
	for _, line := range lines {
		rec, err := ParseLine(line)
		require.Nil(t, err)
		assert.Equal(t, line, rec.String())
	}
}

func TestParseAssignsLineNumbers(t *testing.T) {
	script := "Insert BinaryOperator(7) into CompoundStmt(3) at 1\n\nDelete DeclStmt(12)\n"
	recs, err := Parse(strings.NewReader(script))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, 1, recs[0].Line)
	assert.Equal(t, 3, recs[1].Line)
}
