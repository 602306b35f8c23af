package astnode

import "github.com/grafter/graft/perr"

// Spec is the attribute set a front end supplies for one node when
// constructing a tree. It mirrors the JSON dump fields in the external
// interface contract (see package jsonast for the one concrete
// producer/consumer of that format).
type Spec struct {
	Kind                string
	Identifier          string
	QualifiedIdentifier string
	Value               string
	DataType            string
	RefType             string
	IsArrow             bool
	IsStatic            bool
	Range               Range
	Start               Position
	End                 Position
	File                string
}

// Builder accumulates nodes for a single tree. The front end (or, in
// this module, package jsonast) walks its own tree representation in
// pre-order and calls Add once per node, parent before children and
// siblings in source order — exactly the order that makes the
// resulting IDs satisfy invariant 1 (parent.ID < child.ID) without the
// builder doing any reordering of its own.
type Builder struct {
	slot     Slot
	fileName string
	source   []byte
	nodes    []Node
	roots    []int
}

func NewBuilder(slot Slot, fileName string, source []byte) *Builder {
	return &Builder{slot: slot, fileName: fileName, source: source}
}

// Add appends a new node as a child of parentID (-1 for a root) and
// returns its freshly assigned ID. A node whose spec names no file
// belongs to the tree's own file.
func (b *Builder) Add(parentID int, spec Spec) int {
	id := len(b.nodes)
	if spec.File == "" {
		spec.File = b.fileName
	}
	n := Node{
		ID:                  id,
		Kind:                ParseKind(spec.Kind),
		Identifier:          spec.Identifier,
		QualifiedIdentifier: spec.QualifiedIdentifier,
		Value:               spec.Value,
		DataType:            spec.DataType,
		RefType:             spec.RefType,
		IsArrow:             spec.IsArrow,
		IsStatic:            spec.IsStatic,
		Range:               spec.Range,
		Start:               spec.Start,
		End:                 spec.End,
		File:                spec.File,
		ParentID:            parentID,
		RightMost:           id,
	}
	if n.Kind == Unknown {
		n.RawKind = spec.Kind
	}
	b.nodes = append(b.nodes, n)
	if parentID < 0 {
		b.roots = append(b.roots, id)
	} else {
		b.nodes[parentID].Children = append(b.nodes[parentID].Children, id)
	}
	return id
}

// Finish computes each node's right-most descendant and returns the
// completed, immutable Tree. The builder must not be used afterwards.
func (b *Builder) Finish() (*Tree, error) {
	for i := len(b.nodes) - 1; i >= 0; i-- {
		n := &b.nodes[i]
		if len(n.Children) == 0 {
			n.RightMost = n.ID
			continue
		}
		last := n.Children[len(n.Children)-1]
		n.RightMost = b.nodes[last].RightMost
	}
	for i, n := range b.nodes {
		if n.ParentID >= 0 {
			if n.Range.Begin < b.nodes[n.ParentID].Range.Begin || n.Range.End > b.nodes[n.ParentID].Range.End {
				return nil, perr.New(perr.RangeUnavailable,
					"node %d range [%d,%d) escapes parent %d range [%d,%d)",
					i, n.Range.Begin, n.Range.End, n.ParentID,
					b.nodes[n.ParentID].Range.Begin, b.nodes[n.ParentID].Range.End)
			}
		}
	}
	return &Tree{
		Slot:     b.slot,
		FileName: b.fileName,
		Source:   b.source,
		Nodes:    b.nodes,
		Roots:    b.roots,
	}, nil
}
