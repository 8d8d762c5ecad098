package domain

import (
	"context"
	"errors"
)

var (
	// ErrMalformedReport is returned when a lint report is not a JSON array of file results.
	ErrMalformedReport = errors.New("malformed lint report")
	// ErrStepSkipped is returned in strict mode when a step's precondition is absent.
	ErrStepSkipped = errors.New("patch step skipped")
	// ErrSyntax is returned when patched source no longer parses.
	ErrSyntax = errors.New("patched source has syntax errors")
)

// ConfigLoader loads tool configuration from a directory.
type ConfigLoader interface {
	Load(dir string) (Config, error)
}

// ReportReader decodes a linter report file.
type ReportReader interface {
	Read(path string) (LintReport, error)
}

// RecipeLoader resolves a recipe by built-in name or file path.
type RecipeLoader interface {
	Load(ref string) (*Recipe, error)
}

// SyntaxChecker parses source text and reports syntax errors.
// A nil slice means the language is unsupported or the text parsed cleanly.
type SyntaxChecker interface {
	Check(ctx context.Context, path string, src []byte) ([]SyntaxIssue, error)
}

// RepoInspector answers questions about the git work tree around a path.
type RepoInspector interface {
	Root(dir string) (string, error)
	CommitHash(projectPath string) (string, error)
	HasUncommittedChanges(root, relPath string) (bool, error)
}

// DiffRenderer renders a line diff between two versions of a file.
type DiffRenderer interface {
	Diff(path, before, after string) string
}

// OutlineExtractor lists the headings of a markdown document.
type OutlineExtractor interface {
	Headings(src []byte) []Heading
}
