// Command graft-diff computes an edit script between two JSON AST
// dumps — the tree-diff tool from the CLI surface — and prints it
// either as script lines (the default, re-parseable by graft-patch) or
// as a colored unified diff of two companion text files.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/grafter/graft/astnode"
	"github.com/grafter/graft/diffscript"
	"github.com/grafter/graft/internal/astio"
	"github.com/grafter/graft/internal/diffrender"
	"github.com/grafter/graft/perr"
)

func main() {
	os.Exit(run())
}

func run() int {
	var format, sourceText, destText string
	var noColor bool

	root := &cobra.Command{
		Use:   "graft-diff <source.json> <destination.json>",
		Short: "Compute an edit script between two AST dumps",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if noColor {
				color.NoColor = true //nolint:reassign // intentional override of library global
			}
			return diff(args[0], args[1], format, sourceText, destText, os.Stdout)
		},
	}
	root.Flags().StringVarP(&format, "format", "f", "script", "output format: script or unified")
	root.Flags().StringVar(&sourceText, "source-text", "", "source text file, required for --format unified")
	root.Flags().StringVar(&destText, "dest-text", "", "destination text file, required for --format unified")
	root.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "graft-diff:", err)
		return perr.ExitCode(err)
	}
	return 0
}

func diff(sourcePath, destPath, format, sourceText, destText string, out io.Writer) error {
	source, err := astio.Load(sourcePath, astnode.Source, "")
	if err != nil {
		return err
	}
	destination, err := astio.Load(destPath, astnode.Destination, "")
	if err != nil {
		return err
	}

	switch format {
	case "script":
		records, err := diffscript.Diff(source, destination)
		if err != nil {
			return err
		}
		for _, rec := range records {
			fmt.Fprintln(out, rec.String())
		}
		return nil
	case "unified":
		if sourceText == "" || destText == "" {
			return perr.New(perr.IOError, "--format unified requires --source-text and --dest-text")
		}
		before, err := os.ReadFile(sourceText)
		if err != nil {
			return err
		}
		after, err := os.ReadFile(destText)
		if err != nil {
			return err
		}
		fmt.Fprint(out, diffrender.Unified(sourceText, destText, string(before), string(after)))
		return nil
	default:
		return perr.New(perr.IOError, "unknown format %q (want script or unified)", format)
	}
}
