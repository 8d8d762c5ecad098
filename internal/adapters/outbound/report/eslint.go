package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/openkraft/devkit/internal/domain"
)

// ESLintReader implements domain.ReportReader for `eslint --format json` output.
type ESLintReader struct{}

func New() *ESLintReader {
	return &ESLintReader{}
}

// Read decodes the report at path. A missing file is returned as the
// underlying os error; anything that is not a JSON array of file results
// wraps domain.ErrMalformedReport.
func (r *ESLintReader) Read(path string) (domain.LintReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}

	var report domain.LintReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrMalformedReport, path, err)
	}
	if report == nil {
		// A literal null decodes without error.
		return nil, fmt.Errorf("%w: %s: top-level value is null", domain.ErrMalformedReport, path)
	}
	return report, nil
}
