package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const DefaultSliceFile = "EDGE_FUNCTIONS_DEPLOYMENT.md"

// DefaultSliceRanges are the two windows printed when none are configured.
var DefaultSliceRanges = []LineRange{{Start: 1, End: 20}, {Start: 140, End: 170}}

// LineRange is an inclusive, 1-based span of line numbers.
type LineRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ParseLineRange parses "a-b" (or a single "n") into a LineRange.
func ParseLineRange(s string) (LineRange, error) {
	s = strings.TrimSpace(s)
	startText, endText, found := strings.Cut(s, "-")
	if !found {
		endText = startText
	}
	start, err := strconv.Atoi(strings.TrimSpace(startText))
	if err != nil {
		return LineRange{}, fmt.Errorf("invalid range %q: bad start", s)
	}
	end, err := strconv.Atoi(strings.TrimSpace(endText))
	if err != nil {
		return LineRange{}, fmt.Errorf("invalid range %q: bad end", s)
	}
	r := LineRange{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return LineRange{}, err
	}
	return r, nil
}

// Validate requires 1 <= Start <= End.
func (r LineRange) Validate() error {
	if r.Start < 1 {
		return fmt.Errorf("invalid range %s: start must be >= 1", r)
	}
	if r.End < r.Start {
		return fmt.Errorf("invalid range %s: end before start", r)
	}
	return nil
}

func (r LineRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// NumberedLine is a line of text with its 1-based position in the file.
type NumberedLine struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

func (l NumberedLine) String() string {
	return fmt.Sprintf("%d: %s", l.Number, l.Text)
}

// LineSlice is the part of a file that falls inside a LineRange.
type LineSlice struct {
	Range LineRange      `json:"range"`
	Lines []NumberedLine `json:"lines"`
}

// Heading is one markdown heading with the line it starts on.
type Heading struct {
	Level int    `json:"level"`
	Line  int    `json:"line"`
	Text  string `json:"text"`
}
