package application

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/openkraft/devkit/internal/domain"
	"github.com/openkraft/devkit/internal/domain/lintsum"
)

// LintService reads a linter report and summarizes it.
type LintService struct {
	reader domain.ReportReader
	logger *zap.Logger
}

func NewLintService(reader domain.ReportReader, logger *zap.Logger) *LintService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LintService{reader: reader, logger: logger}
}

// Summarize loads the report at path and aggregates it with opts.
func (s *LintService) Summarize(path string, opts domain.SummaryOptions) (*domain.LintSummary, error) {
	s.logger.Debug("reading lint report", zap.String("path", path))

	report, err := s.reader.Read(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	summary := lintsum.Summarize(report, opts)
	s.logger.Debug("lint report summarized",
		zap.Int("results", len(report)),
		zap.Int("files_with_errors", summary.FilesWithErrors),
		zap.Int("messages", summary.TotalMessages),
		zap.Bool("truncated", summary.Truncated))
	return summary, nil
}
