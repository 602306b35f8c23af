// Package script parses the line-oriented edit-script format and
// represents each line as a typed Record for the patch dispatcher to
// route.
package script

import (
	"fmt"

	"github.com/grafter/graft/astnode"
)

// Op is one of the five edit operations, plus the reserved UpdateMove.
type Op string

const (
	Insert     Op = "Insert"
	Move       Op = "Move"
	Replace    Op = "Replace"
	Update     Op = "Update"
	Delete     Op = "Delete"
	UpdateMove Op = "UpdateMove"
)

// NodeRef names a node by its script-level kind label and integer id.
// The kind label is checked against the resolved node's actual kind at
// resolution time (ScriptKindMismatch on disagreement); it is kept as
// the original Kind value here, not yet validated.
type NodeRef struct {
	Kind astnode.Kind
	ID   int
}

// Record is one parsed script line.
//
//   - Insert/Move: B is the inserted/moved node, C is the parent it
//     goes into, Offset is the position among C's children.
//   - Replace: B is the replacement node, C is the node being replaced.
//   - Update: B carries the new value, C is the node being updated.
//   - Delete: C is the deleted node; B is zero.
type Record struct {
	Op     Op
	B      NodeRef
	C      NodeRef
	Offset int
	Line   int
	Raw    string
}

func (r NodeRef) String() string {
	return fmt.Sprintf("%s(%d)", r.Kind, r.ID)
}

// String renders rec in the grammar ParseLine accepts, so a script
// produced by package diffscript can be written to a file and later
// re-parsed byte-for-byte.
func (rec Record) String() string {
	switch rec.Op {
	case Insert, Move:
		return fmt.Sprintf("%s %s into %s at %d", rec.Op, rec.B, rec.C, rec.Offset)
	case Replace:
		return fmt.Sprintf("Replace %s with %s", rec.C, rec.B)
	case Update:
		return fmt.Sprintf("Update %s to %s", rec.C, rec.B)
	case Delete:
		return fmt.Sprintf("Delete %s", rec.C)
	default:
		return string(rec.Op)
	}
}
