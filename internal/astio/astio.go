// Package astio is the shared "read a JSON AST dump off disk, with an
// optional companion source-text file" loader every graft CLI binary
// uses. No real Clang/tree-sitter front end lives in this repository
// (out of scope per the core design), so every command's "source file"
// input is in practice a JSON dump in the §6 format; commands that also
// need byte-accurate text (the patcher, the instrumenter) take a second,
// companion file holding the raw bytes the dump's offsets were computed
// against.
package astio

import (
	"os"

	"github.com/grafter/graft/astnode"
	"github.com/grafter/graft/jsonast"
)

// Load decodes the JSON AST dump at dumpPath into a Tree for slot. If
// textPath is non-empty, its bytes become the tree's Source buffer;
// otherwise the tree carries no source bytes, which is sufficient for
// any command that only inspects structural attributes (kind,
// identifier, value) — tree-dump and tree-diff never call Tree.Text.
func Load(dumpPath string, slot astnode.Slot, textPath string) (*astnode.Tree, error) {
	f, err := os.Open(dumpPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var source []byte
	if textPath != "" {
		source, err = os.ReadFile(textPath)
		if err != nil {
			return nil, err
		}
	}

	return jsonast.Decode(f, slot, source)
}
