// Package lintsum aggregates a linter report into a ranked summary.
package lintsum

import (
	"sort"

	"github.com/openkraft/devkit/internal/domain"
)

// Summarize counts files with findings, ranks paths by message count and
// collects the first opts.SampleSize messages in report order.
//
// Paths that appear in several results are merged. Ties in the ranking keep
// the order in which paths were first seen.
func Summarize(report domain.LintReport, opts domain.SummaryOptions) *domain.LintSummary {
	summary := &domain.LintSummary{
		Ranking: []domain.FileCount{},
		Samples: []domain.Sample{},
	}

	index := make(map[string]int)
	for _, res := range report {
		if len(res.Messages) == 0 {
			continue
		}
		summary.FilesWithErrors++
		summary.TotalMessages += len(res.Messages)

		if i, ok := index[res.FilePath]; ok {
			summary.Ranking[i].Count += len(res.Messages)
			continue
		}
		index[res.FilePath] = len(summary.Ranking)
		summary.Ranking = append(summary.Ranking, domain.FileCount{
			Path:  res.FilePath,
			Count: len(res.Messages),
		})
	}

	sort.SliceStable(summary.Ranking, func(i, j int) bool {
		return summary.Ranking[i].Count > summary.Ranking[j].Count
	})
	if opts.TopFiles >= 0 && len(summary.Ranking) > opts.TopFiles {
		summary.Ranking = summary.Ranking[:opts.TopFiles]
	}

	summary.Samples = sample(report, opts.SampleSize)
	summary.Truncated = summary.TotalMessages > len(summary.Samples)

	return summary
}

// sample walks the report in order and stops as soon as limit messages are taken.
func sample(report domain.LintReport, limit int) []domain.Sample {
	out := []domain.Sample{}
	if limit <= 0 {
		return out
	}
	for _, res := range report {
		for _, m := range res.Messages {
			out = append(out, domain.Sample{
				Path:    res.FilePath,
				Line:    m.Line,
				Column:  m.Column,
				RuleID:  m.RuleID,
				Message: m.Message,
			})
			if len(out) == limit {
				return out
			}
		}
	}
	return out
}
