package domain

import "fmt"

const (
	DefaultLintReport = "eslint-report.json"
	DefaultTopFiles   = 15
	DefaultSampleSize = 30
)

// LintMessage is a single finding inside a linter file result.
// Every field is optional in the report; absent values decode to zero.
type LintMessage struct {
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	RuleID   string `json:"ruleId"`
	Severity int    `json:"severity"`
	Message  string `json:"message"`
}

// LintFileResult groups the messages reported for one source file.
type LintFileResult struct {
	FilePath string        `json:"filePath"`
	Messages []LintMessage `json:"messages"`
}

// LintReport is the top-level array produced by `eslint --format json`.
type LintReport []LintFileResult

// FileCount is one row of the per-file ranking.
type FileCount struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

// Sample is one message printed in the sample section, with its file path.
type Sample struct {
	Path    string `json:"path"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	RuleID  string `json:"rule_id"`
	Message string `json:"message"`
}

// String formats the sample as path:line:column ruleId message.
func (s Sample) String() string {
	rule := s.RuleID
	if rule == "" {
		rule = "-"
	}
	return fmt.Sprintf("%s:%d:%d %s %s", s.Path, s.Line, s.Column, rule, s.Message)
}

// SummaryOptions caps the ranking and sample sections.
type SummaryOptions struct {
	TopFiles   int `json:"top_files"`
	SampleSize int `json:"sample_size"`
}

// DefaultSummaryOptions returns the 15 file / 30 message caps.
func DefaultSummaryOptions() SummaryOptions {
	return SummaryOptions{TopFiles: DefaultTopFiles, SampleSize: DefaultSampleSize}
}

// LintSummary is the aggregated view of a LintReport.
type LintSummary struct {
	FilesWithErrors int         `json:"files_with_errors"`
	TotalMessages   int         `json:"total_messages"`
	Ranking         []FileCount `json:"ranking"`
	Samples         []Sample    `json:"samples"`
	Truncated       bool        `json:"truncated"`
}
