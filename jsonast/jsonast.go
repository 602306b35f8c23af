// Package jsonast is the one concrete implementation of the AST
// provider contract: it decodes the JSON dump format described in the
// external interfaces section into an astnode.Tree, and encodes a
// Tree back into that same format so tree-dump, tree-diff, and the
// patcher can all operate on plain files instead of a live front end.
package jsonast

import (
	"encoding/json"
	"io"

	"github.com/grafter/graft/astnode"
	"github.com/grafter/graft/perr"
)

type jsonNode struct {
	ID                  int         `json:"id"`
	ParentID            int         `json:"parent_id"`
	Type                string      `json:"type"`
	File                string      `json:"file,omitempty"`
	DataType            string      `json:"data_type,omitempty"`
	StartLine           int         `json:"start line"`
	StartColumn         int         `json:"start column"`
	EndLine             int         `json:"end line"`
	EndColumn           int         `json:"end column"`
	Begin               int         `json:"begin"`
	End                 int         `json:"end"`
	Value               string      `json:"value,omitempty"`
	Identifier          string      `json:"identifier,omitempty"`
	QualifiedIdentifier string      `json:"qualified_identifier,omitempty"`
	RefType             string      `json:"ref_type,omitempty"`
	IsArrow             string      `json:"isArrow,omitempty"`
	IsStatic            string      `json:"isStatic,omitempty"`
	Children            []*jsonNode `json:"children,omitempty"`
}

type dumpFile struct {
	FileName string    `json:"filename"`
	Root     *jsonNode `json:"root"`
}

// Decode reads one JSON dump and builds an astnode.Tree for the given
// slot. source must be the byte-identical contents of the file the
// dump's begin/end offsets were computed against; the dump format
// itself carries no source text, only offsets into it.
func Decode(r io.Reader, slot astnode.Slot, source []byte) (*astnode.Tree, error) {
	var df dumpFile
	dec := json.NewDecoder(r)
	if err := dec.Decode(&df); err != nil {
		return nil, perr.Wrap(perr.IOError, err, "decoding JSON AST dump")
	}
	if df.Root == nil {
		return nil, perr.New(perr.ASTBuildFailed, "dump %q has no root node", df.FileName)
	}

	b := astnode.NewBuilder(slot, df.FileName, source)
	if err := addNode(b, -1, df.Root); err != nil {
		return nil, err
	}
	tree, err := b.Finish()
	if err != nil {
		return nil, err
	}
	return tree, nil
}

func addNode(b *astnode.Builder, parentID int, jn *jsonNode) error {
	spec := astnode.Spec{
		Kind:                jn.Type,
		Identifier:          jn.Identifier,
		QualifiedIdentifier: jn.QualifiedIdentifier,
		Value:               jn.Value,
		DataType:            jn.DataType,
		RefType:             jn.RefType,
		IsArrow:             jn.IsArrow == "yes",
		IsStatic:            jn.IsStatic == "yes",
		Range:               astnode.Range{Begin: jn.Begin, End: jn.End},
		Start:               astnode.Position{Line: jn.StartLine, Column: jn.StartColumn},
		End:                 astnode.Position{Line: jn.EndLine, Column: jn.EndColumn},
		File:                jn.File,
	}
	id := b.Add(parentID, spec)
	for _, child := range jn.Children {
		if err := addNode(b, id, child); err != nil {
			return err
		}
	}
	return nil
}

// Encode writes tree back out in the JSON dump format. The format
// names exactly one root node; a tree built by Decode always has one,
// but a tree assembled programmatically with several roots cannot be
// represented and is rejected rather than silently dropping roots.
func Encode(w io.Writer, tree *astnode.Tree) error {
	if len(tree.Roots) != 1 {
		return perr.New(perr.IOError, "JSON dump format requires exactly one root, tree has %d", len(tree.Roots))
	}
	root, err := tree.Node(tree.Roots[0])
	if err != nil {
		return err
	}
	jn, err := toJSONNode(tree, root)
	if err != nil {
		return err
	}
	df := dumpFile{FileName: tree.FileName, Root: jn}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(df); err != nil {
		return perr.Wrap(perr.IOError, err, "encoding JSON AST dump")
	}
	return nil
}

func toJSONNode(tree *astnode.Tree, n astnode.Node) (*jsonNode, error) {
	kind := string(n.Kind)
	if n.Kind == astnode.Unknown && n.RawKind != "" {
		kind = n.RawKind
	}
	jn := &jsonNode{
		ID:                  n.ID,
		ParentID:            n.ParentID,
		Type:                kind,
		File:                n.File,
		DataType:            n.DataType,
		StartLine:           n.Start.Line,
		StartColumn:         n.Start.Column,
		EndLine:             n.End.Line,
		EndColumn:           n.End.Column,
		Begin:               n.Range.Begin,
		End:                 n.Range.End,
		Value:               n.Value,
		Identifier:          n.Identifier,
		QualifiedIdentifier: n.QualifiedIdentifier,
		RefType:             n.RefType,
	}
	if n.IsArrow {
		jn.IsArrow = "yes"
	}
	if n.IsStatic {
		jn.IsStatic = "yes"
	} else {
		jn.IsStatic = "no"
	}
	for _, cid := range n.Children {
		c, err := tree.Node(cid)
		if err != nil {
			return nil, err
		}
		cjn, err := toJSONNode(tree, c)
		if err != nil {
			return nil, err
		}
		jn.Children = append(jn.Children, cjn)
	}
	return jn, nil
}
