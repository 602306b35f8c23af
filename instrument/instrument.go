// Package instrument implements the instrumentation mode: a degenerate
// one-shot patcher that wraps every IfStmt's condition in the target
// tree with a flip_callback call and prepends a forward-declaration
// header, exercising §4.4's range extraction, deletion, composition,
// and insertion contracts without a script or a second tree.
package instrument

import (
	"fmt"
	"log/slog"

	"github.com/grafter/graft/astnode"
	"github.com/grafter/graft/patch"
	"github.com/grafter/graft/perr"
)

const header = "#include <stdbool.h>\n#include <stdint.h>\nextern bool flip_callback(bool cond, uint32_t id);\n"

// IDSource supplies the per-call-site random id flip_callback is keyed
// by. Tests pass a deterministic sequence; the CLI passes one backed
// by math/rand unless --id-mode sequential is given.
type IDSource func() uint32

// Instrumenter wraps every IfStmt condition in a target tree.
type Instrumenter struct {
	Target *astnode.Tree
	NextID IDSource
	Log    *slog.Logger
	Buf    *patch.Buffer
}

func New(target *astnode.Tree, nextID IDSource) *Instrumenter {
	log := slog.Default()
	return &Instrumenter{Target: target, NextID: nextID, Log: log, Buf: patch.NewBuffer()}
}

// Run walks the target tree, wraps every IfStmt's condition, and
// returns the rewritten source with the header prepended.
func (in *Instrumenter) Run() ([]byte, error) {
	var ifs []astnode.Node
	for _, root := range in.Target.Roots {
		err := in.Target.Walk(root, func(stack []astnode.Node) bool {
			n := stack[len(stack)-1]
			if n.Kind == astnode.IfStmt {
				ifs = append(ifs, n)
			}
			return true
		})
		if err != nil {
			return nil, err
		}
	}

	for _, n := range ifs {
		if err := in.wrapCondition(n); err != nil {
			return nil, err
		}
	}

	file := in.Target.FileName
	rewritten, err := in.Buf.Flush(file, in.Target.Source)
	if err != nil {
		return nil, err
	}
	return append([]byte(header), rewritten...), nil
}

// wrapCondition replaces an IfStmt's condition expression — its first
// child — with flip_callback(<cond>, <id>), drawing the condition's own
// text verbatim (instrumentation never touches a destination tree, so
// there is nothing to translate).
func (in *Instrumenter) wrapCondition(n astnode.Node) error {
	if len(n.Children) == 0 {
		return perr.New(perr.RangeUnavailable, "IfStmt %d has no condition", n.ID)
	}
	cond := n.Children[0]
	condNode, err := in.Target.Node(cond)
	if err != nil {
		return err
	}
	condText, err := in.Target.NodeText(condNode)
	if err != nil {
		return err
	}
	id := in.NextID()
	wrapped := fmt.Sprintf("flip_callback( %s ,%d)", string(condText), id)
	in.Log.Debug("wrapped condition", "ifstmt", n.ID, "id", id)
	return in.Buf.Add(in.Target.FileName, condNode.Range, wrapped, patch.Options{})
}
