// Command graft-instrument wraps every IfStmt condition in a target
// file with a flip_callback call and prepends a forward-declaration
// header — the instrumenter tool from the CLI surface.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/grafter/graft/astnode"
	"github.com/grafter/graft/instrument"
	"github.com/grafter/graft/internal/astio"
	"github.com/grafter/graft/perr"
)

func main() {
	os.Exit(run())
}

func run() int {
	var textPath, idMode string

	root := &cobra.Command{
		Use:   "graft-instrument <target.json>",
		Short: "Wrap every IfStmt condition with flip_callback",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return instrumentCmd(args[0], textPath, idMode, os.Stdout)
		},
	}
	root.Flags().StringVar(&textPath, "text", "", "target source text file")
	root.Flags().StringVar(&idMode, "id-mode", "random", "callback id source: random or sequential")
	_ = root.MarkFlagRequired("text")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "graft-instrument:", err)
		return perr.ExitCode(err)
	}
	return 0
}

func instrumentCmd(dumpPath, textPath, idMode string, out io.Writer) error {
	target, err := astio.Load(dumpPath, astnode.Target, textPath)
	if err != nil {
		return err
	}

	var ids instrument.IDSource
	switch idMode {
	case "random":
		ids = instrument.RandomIDs()
	case "sequential":
		ids = instrument.SequentialIDs()
	default:
		return perr.New(perr.IOError, "unknown id-mode %q (want random or sequential)", idMode)
	}

	in := instrument.New(target, ids)
	rewritten, err := in.Run()
	if err != nil {
		return err
	}

	_, err = out.Write(rewritten)
	return err
}
