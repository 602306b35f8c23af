// Command graft-dump renders a JSON AST dump back out, either as
// normalized JSON or as an indented text table — the tree-dump tool
// from the CLI surface.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/grafter/graft/astnode"
	"github.com/grafter/graft/internal/astio"
	"github.com/grafter/graft/jsonast"
	"github.com/grafter/graft/perr"
)

func main() {
	os.Exit(run())
}

func run() int {
	var format string

	root := &cobra.Command{
		Use:   "graft-dump <ast.json>",
		Short: "Dump an AST as JSON or as a text table",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return dump(args[0], format, os.Stdout)
		},
	}
	root.Flags().StringVarP(&format, "format", "f", "json", "output format: json or text")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "graft-dump:", err)
		return perr.ExitCode(err)
	}
	return 0
}

func dump(path, format string, out io.Writer) error {
	tree, err := astio.Load(path, astnode.Source, "")
	if err != nil {
		return err
	}

	switch format {
	case "json":
		return jsonast.Encode(out, tree)
	case "text":
		return jsonast.RenderTable(out, tree)
	default:
		return perr.New(perr.IOError, "unknown format %q (want json or text)", format)
	}
}
