package jsonast

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/grafter/graft/astnode"
)

// RenderTable writes tree's nodes as an indented table — tree-dump's
// text mode, as opposed to its JSON mode.
func RenderTable(w io.Writer, tree *astnode.Tree) error {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"id", "kind", "identifier", "value", "begin", "end"})

	for _, root := range tree.Roots {
		if err := appendRows(tbl, tree, root, 0); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, tbl.Render()+"\n")
	return err
}

func appendRows(tbl table.Writer, tree *astnode.Tree, id int, depth int) error {
	n, err := tree.Node(id)
	if err != nil {
		return err
	}
	kind := string(n.Kind)
	if n.Kind == astnode.Unknown && n.RawKind != "" {
		kind = n.RawKind
	}
	tbl.AppendRow(table.Row{n.ID, indent(depth) + kind, n.Identifier, n.Value, n.Range.Begin, n.Range.End})
	for _, cid := range n.Children {
		if err := appendRows(tbl, tree, cid, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func indent(depth int) string {
	out := make([]byte, depth*2)
	for i := range out {
		out[i] = ' '
	}
	return string(out)
}
