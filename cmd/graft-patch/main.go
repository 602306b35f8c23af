// Command graft-patch applies a parsed edit script to a target tree,
// drawing inserted/replaced material from a destination tree — the
// patcher tool from the CLI surface.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/grafter/graft/astnode"
	"github.com/grafter/graft/internal/astio"
	"github.com/grafter/graft/internal/config"
	"github.com/grafter/graft/internal/diffrender"
	"github.com/grafter/graft/internal/metrics"
	"github.com/grafter/graft/patch"
	"github.com/grafter/graft/perr"
	"github.com/grafter/graft/script"
	"github.com/grafter/graft/varmap"
)

func main() {
	os.Exit(run())
}

type opts struct {
	sourcePath   string
	destPath     string
	destText     string
	targetPath   string
	targetText   string
	scriptPath   string
	varMapPath   string
	skipListPath string
	configPath   string
	showDiff     bool
}

func run() int {
	var o opts

	root := &cobra.Command{
		Use:   "graft-patch",
		Short: "Apply an edit script to a target source file",
		RunE: func(_ *cobra.Command, _ []string) error {
			return patchCmd(o, os.Stdout)
		},
	}
	f := root.Flags()
	f.StringVar(&o.sourcePath, "source", "", "source AST dump (optional)")
	f.StringVar(&o.destPath, "destination", "", "destination AST dump")
	f.StringVar(&o.destText, "destination-text", "", "destination source text")
	f.StringVar(&o.targetPath, "target", "", "target AST dump")
	f.StringVar(&o.targetText, "target-text", "", "target source text")
	f.StringVar(&o.scriptPath, "script", "", "edit-script file")
	f.StringVar(&o.varMapPath, "var-map", "", "variable-map file")
	f.StringVar(&o.skipListPath, "skip-list", "", "skip-list file")
	f.StringVar(&o.configPath, "config", "", "config file for defaults")
	f.BoolVar(&o.showDiff, "show-diff", false, "print a colored before/after diff to stderr")

	for _, required := range []string{"destination", "destination-text", "target", "target-text", "script"} {
		_ = root.MarkFlagRequired(required)
	}

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "graft-patch:", err)
		return perr.ExitCode(err)
	}
	return 0
}

func patchCmd(o opts, out io.Writer) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.varMapPath == "" {
		o.varMapPath = cfg.VarMapPath
	}
	if o.skipListPath == "" {
		o.skipListPath = cfg.SkipListPath
	}

	var source *astnode.Tree
	if o.sourcePath != "" {
		source, err = astio.Load(o.sourcePath, astnode.Source, "")
		if err != nil {
			return err
		}
	}

	destination, err := astio.Load(o.destPath, astnode.Destination, o.destText)
	if err != nil {
		return err
	}
	target, err := astio.Load(o.targetPath, astnode.Target, o.targetText)
	if err != nil {
		return err
	}

	scriptFile, err := os.Open(o.scriptPath)
	if err != nil {
		return err
	}
	defer scriptFile.Close()
	records, err := script.Parse(scriptFile)
	if err != nil {
		return err
	}

	vars := varmap.New()
	if o.varMapPath != "" {
		mapFile, ferr := os.Open(o.varMapPath)
		if ferr != nil {
			return ferr
		}
		defer mapFile.Close()
		vars, ferr = varmap.Load(mapFile)
		if ferr != nil {
			return ferr
		}
	}

	p := patch.New(source, destination, target, vars)
	if o.skipListPath != "" {
		skipFile, ferr := os.Open(o.skipListPath)
		if ferr != nil {
			return ferr
		}
		defer skipFile.Close()
		p.SkipLines, ferr = patch.LoadSkipList(skipFile)
		if ferr != nil {
			return ferr
		}
	}

	m := metrics.New()
	start := time.Now()
	if err := p.Apply(records); err != nil {
		return err
	}
	m.PatchDuration.Observe(time.Since(start).Seconds())
	m.EditsApplied.Add(float64(len(records)))

	rewritten, err := p.Buf.Flush(target.FileName, target.Source)
	if err != nil {
		return err
	}
	m.BytesRewritten.Add(float64(len(rewritten)))

	if o.showDiff {
		fmt.Fprint(os.Stderr, diffrender.Unified(o.targetText, o.targetText+" (patched)", string(target.Source), string(rewritten)))
	}

	_, err = out.Write(rewritten)
	return err
}
