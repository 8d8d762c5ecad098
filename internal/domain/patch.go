package domain

import (
	"fmt"
	"regexp"
)

// StepKind selects the textual transformation a PatchStep performs.
type StepKind string

const (
	// StepReplace swaps every occurrence of Find for Replace.
	StepReplace StepKind = "replace"
	// StepSplice inserts Block right after Anchor, provided EndAnchor follows it.
	StepSplice StepKind = "splice"
	// StepDeletePattern removes every match of Pattern.
	StepDeletePattern StepKind = "delete_pattern"
	// StepInsertBefore inserts Block before the first occurrence of Anchor.
	StepInsertBefore StepKind = "insert_before"
	// StepInsertAfterLast inserts Block after the last occurrence of Anchor.
	StepInsertAfterLast StepKind = "insert_after_last"
)

// ValidStepKinds enumerates all recognized step kinds.
var ValidStepKinds = []StepKind{
	StepReplace,
	StepSplice,
	StepDeletePattern,
	StepInsertBefore,
	StepInsertAfterLast,
}

// PatchStep is one textual edit. Which fields are used depends on Kind.
// Marker is optional and overrides the already-applied check.
type PatchStep struct {
	Name      string   `yaml:"name"                 toml:"name"                 json:"name"`
	Kind      StepKind `yaml:"kind"                 toml:"kind"                 json:"kind"`
	Find      string   `yaml:"find,omitempty"       toml:"find,omitempty"       json:"find,omitempty"`
	Replace   string   `yaml:"replace,omitempty"    toml:"replace,omitempty"    json:"replace,omitempty"`
	Anchor    string   `yaml:"anchor,omitempty"     toml:"anchor,omitempty"     json:"anchor,omitempty"`
	EndAnchor string   `yaml:"end_anchor,omitempty" toml:"end_anchor,omitempty" json:"end_anchor,omitempty"`
	Pattern   string   `yaml:"pattern,omitempty"    toml:"pattern,omitempty"    json:"pattern,omitempty"`
	Block     string   `yaml:"block,omitempty"      toml:"block,omitempty"      json:"block,omitempty"`
	Marker    string   `yaml:"marker,omitempty"     toml:"marker,omitempty"     json:"marker,omitempty"`
}

// AppliedMarker returns the text whose presence means the step has already run.
// It defaults to the inserted block, or the replacement for replace steps.
func (s PatchStep) AppliedMarker() string {
	switch {
	case s.Marker != "":
		return s.Marker
	case s.Kind == StepReplace:
		return s.Replace
	default:
		return s.Block
	}
}

// Validate checks that the fields required by the step kind are present.
func (s PatchStep) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("step name must not be empty")
	}
	switch s.Kind {
	case StepReplace:
		if s.Find == "" {
			return fmt.Errorf("step %q: replace requires find", s.Name)
		}
		if s.Find == s.Replace {
			return fmt.Errorf("step %q: find and replace are identical", s.Name)
		}
	case StepSplice:
		if s.Anchor == "" || s.EndAnchor == "" || s.Block == "" {
			return fmt.Errorf("step %q: splice requires anchor, end_anchor and block", s.Name)
		}
	case StepDeletePattern:
		if s.Pattern == "" {
			return fmt.Errorf("step %q: delete_pattern requires pattern", s.Name)
		}
		if _, err := regexp.Compile(s.Pattern); err != nil {
			return fmt.Errorf("step %q: invalid pattern: %w", s.Name, err)
		}
	case StepInsertBefore, StepInsertAfterLast:
		if s.Anchor == "" || s.Block == "" {
			return fmt.Errorf("step %q: %s requires anchor and block", s.Name, s.Kind)
		}
	default:
		return fmt.Errorf("step %q: unknown kind %q", s.Name, s.Kind)
	}
	return nil
}

// Recipe is an ordered list of steps applied to one target file.
type Recipe struct {
	Name        string      `yaml:"name"        toml:"name"        json:"name"`
	Description string      `yaml:"description" toml:"description" json:"description,omitempty"`
	Target      string      `yaml:"target"      toml:"target"      json:"target"`
	Steps       []PatchStep `yaml:"steps"       toml:"steps"       json:"steps"`
}

// Validate checks the recipe and every step in it.
func (r Recipe) Validate() error {
	if r.Target == "" {
		return fmt.Errorf("recipe %q: target must not be empty", r.Name)
	}
	if len(r.Steps) == 0 {
		return fmt.Errorf("recipe %q: no steps", r.Name)
	}
	for i, s := range r.Steps {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("recipe %q step %d: %w", r.Name, i+1, err)
		}
	}
	return nil
}

// StepOutcome records what a step did to the buffer.
type StepOutcome string

const (
	OutcomeApplied        StepOutcome = "applied"
	OutcomeAlreadyApplied StepOutcome = "already_applied"
	OutcomeSkipped        StepOutcome = "skipped"
)

// StepResult is the outcome of one step together with a short reason.
type StepResult struct {
	Step    string      `json:"step"`
	Kind    StepKind    `json:"kind"`
	Outcome StepOutcome `json:"outcome"`
	Detail  string      `json:"detail,omitempty"`
}

// SyntaxIssue locates a parse error in patched source. Line and Column are 1-based.
type SyntaxIssue struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

// PatchOptions controls a patch run.
type PatchOptions struct {
	Root   string `json:"root"`
	Recipe string `json:"recipe"`
	Target string `json:"target,omitempty"`
	DryRun bool   `json:"dry_run"`
	Strict bool   `json:"strict"`
	Verify bool   `json:"verify"`
}

// PatchReport is everything a patch run produced.
type PatchReport struct {
	Recipe       string        `json:"recipe"`
	Target       string        `json:"target"`
	CommitHash   string        `json:"commit_hash,omitempty"`
	Results      []StepResult  `json:"results"`
	Changed      bool          `json:"changed"`
	Written      bool          `json:"written"`
	DryRun       bool          `json:"dry_run"`
	Uncommitted  bool          `json:"uncommitted"`
	SyntaxIssues []SyntaxIssue `json:"syntax_issues,omitempty"`
	Diff         string        `json:"diff,omitempty"`
}

// Count returns how many steps ended with the given outcome.
func (r *PatchReport) Count(outcome StepOutcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == outcome {
			n++
		}
	}
	return n
}
