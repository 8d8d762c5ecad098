package preview

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is how many unchanged lines are kept around each change.
const contextLines = 2

// LineDiff implements domain.DiffRenderer with a line-mode diffmatchpatch diff.
type LineDiff struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

func New() *LineDiff {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	return &LineDiff{dmp: dmp}
}

// Diff renders before → after as "-"/"+" lines with a little context.
// Identical inputs produce an empty string.
func (d *LineDiff) Diff(path, before, after string) string {
	if before == after {
		return ""
	}

	a, b, lineArray := d.dmp.DiffLinesToChars(before, after)
	diffs := d.dmp.DiffCharsToLines(d.dmp.DiffMain(a, b, false), lineArray)

	var out strings.Builder
	fmt.Fprintf(&out, "--- a/%s\n+++ b/%s\n", path, path)

	oldLine, newLine := 1, 1
	for i, df := range diffs {
		ls := splitKeep(df.Text)
		switch df.Type {
		case diffmatchpatch.DiffDelete:
			for _, l := range ls {
				fmt.Fprintf(&out, "-%4d      %s\n", oldLine, l)
				oldLine++
			}
		case diffmatchpatch.DiffInsert:
			for _, l := range ls {
				fmt.Fprintf(&out, "+     %4d %s\n", newLine, l)
				newLine++
			}
		case diffmatchpatch.DiffEqual:
			writeContext(&out, ls, oldLine, newLine, i > 0, i < len(diffs)-1)
			oldLine += len(ls)
			newLine += len(ls)
		}
	}
	return out.String()
}

// writeContext prints the tail of the unchanged run after a change and its
// head before the next one, eliding the middle.
func writeContext(out *strings.Builder, ls []string, oldLine, newLine int, afterChange, beforeChange bool) {
	keep := make([]bool, len(ls))
	if afterChange {
		for i := 0; i < contextLines && i < len(ls); i++ {
			keep[i] = true
		}
	}
	if beforeChange {
		for i := len(ls) - 1; i >= 0 && i >= len(ls)-contextLines; i-- {
			keep[i] = true
		}
	}

	elided := false
	for i, l := range ls {
		if !keep[i] {
			if !elided {
				out.WriteString("  ...\n")
				elided = true
			}
			continue
		}
		elided = false
		fmt.Fprintf(out, " %4d %4d %s\n", oldLine+i, newLine+i, l)
	}
}

// splitKeep splits a diff chunk into lines, dropping the final empty element
// left by a trailing newline.
func splitKeep(s string) []string {
	if s == "" {
		return nil
	}
	ls := strings.Split(s, "\n")
	if ls[len(ls)-1] == "" {
		ls = ls[:len(ls)-1]
	}
	return ls
}
