// Package diffrender turns two texts into a colored, line-oriented
// unified diff for terminal output — used both for tree-diff's
// human-readable summary mode and for showing a patch run's
// before/after text, per the diff-rendering component.
package diffrender

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

var (
	addColor    = color.New(color.FgGreen)
	delColor    = color.New(color.FgRed)
	hunkColor   = color.New(color.FgCyan)
	contextText = color.New(color.Reset)
)

// Unified renders before -> after as a unified diff, using
// diffmatchpatch's line-mode Myers alignment (the same
// lines-to-runes/runes-to-lines technique DiffLinesToRunes documents)
// so a multi-megabyte file diffs in line granularity, not character
// granularity.
func Unified(fromLabel, toLabel, before, after string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMainRunes([]rune(a), []rune(b), false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	var out strings.Builder
	fmt.Fprintf(&out, "--- %s\n", fromLabel)
	fmt.Fprintf(&out, "+++ %s\n", toLabel)

	for _, d := range diffs {
		for _, line := range splitKeepEmpty(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				out.WriteString(addColor.Sprintf("+%s\n", line))
			case diffmatchpatch.DiffDelete:
				out.WriteString(delColor.Sprintf("-%s\n", line))
			case diffmatchpatch.DiffEqual:
				out.WriteString(contextText.Sprintf(" %s\n", line))
			}
		}
	}
	return out.String()
}

// Hunk renders a single freeform label line, colored as a hunk header
// ("@@ ... @@"-style), for callers that want to interleave script-line
// summaries with the unified body.
func Hunk(label string) string {
	return hunkColor.Sprintln(label)
}

// splitKeepEmpty splits s on newlines without producing a trailing
// empty element for a final "\n", matching how diffmatchpatch's
// line-mode diffs always end each line's text with its own terminator.
func splitKeepEmpty(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
