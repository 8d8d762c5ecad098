// Package lines splits text into numbered lines and selects ranges of them.
package lines

import (
	"strings"

	"github.com/openkraft/devkit/internal/domain"
)

// Split breaks text into lines. A trailing newline does not produce an extra
// empty line, and a CRLF ending is treated like LF.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	out := strings.Split(text, "\n")
	for i, l := range out {
		out[i] = strings.TrimSuffix(l, "\r")
	}
	return out
}

// Select returns the lines inside r. Ranges that start past the end of the
// file yield an empty slice; ranges that run past the end are clipped.
func Select(all []string, r domain.LineRange) domain.LineSlice {
	slice := domain.LineSlice{Range: r, Lines: []domain.NumberedLine{}}
	if r.Start > len(all) {
		return slice
	}
	end := min(r.End, len(all))
	for n := r.Start; n <= end; n++ {
		slice.Lines = append(slice.Lines, domain.NumberedLine{Number: n, Text: all[n-1]})
	}
	return slice
}

// SelectAll applies Select for each range in order.
func SelectAll(all []string, ranges []domain.LineRange) []domain.LineSlice {
	out := make([]domain.LineSlice, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, Select(all, r))
	}
	return out
}

// LineOf returns the 1-based line containing byte offset off.
func LineOf(src []byte, off int) int {
	if off > len(src) {
		off = len(src)
	}
	return strings.Count(string(src[:off]), "\n") + 1
}
