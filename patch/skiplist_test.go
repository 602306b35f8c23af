package patch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSkipList(t *testing.T) {
	lines, err := LoadSkipList(strings.NewReader("3\n\n7\n12\n"))
	require.NoError(t, err)
	assert.Equal(t, map[int]bool{3: true, 7: true, 12: true}, lines)
}

func TestLoadSkipListRejectsNonInteger(t *testing.T) {
	_, err := LoadSkipList(strings.NewReader("not-a-number\n"))
	require.Error(t, err)
}
