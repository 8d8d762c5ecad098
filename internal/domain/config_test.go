package domain_test

import (
	"testing"

	"github.com/openkraft/devkit/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_MatchesHardcodedInputs(t *testing.T) {
	cfg := domain.DefaultConfig()
	assert.Equal(t, "eslint-report.json", cfg.LintSummary.Report)
	assert.Equal(t, domain.SummaryOptions{TopFiles: 15, SampleSize: 30}, cfg.LintSummary.SummaryOptions())
	assert.Equal(t, domain.DefaultRecipe, cfg.Patch.Recipe)
	assert.True(t, cfg.Patch.VerifySyntax())
	assert.False(t, cfg.Patch.Strict)
	assert.Equal(t, "EDGE_FUNCTIONS_DEPLOYMENT.md", cfg.Slice.File)
	assert.Equal(t, []string{"1-20", "140-170"}, cfg.Slice.Ranges)
}

func TestDefaultConfig_IsValid(t *testing.T) {
	assert.NoError(t, domain.DefaultConfig().Validate())
}

func TestPatchConfig_VerifySyntax(t *testing.T) {
	off := false
	assert.True(t, domain.PatchConfig{}.VerifySyntax())
	assert.False(t, domain.PatchConfig{Verify: &off}.VerifySyntax())
}

func TestLintSummaryConfig_SummaryOptions(t *testing.T) {
	zero := 0
	assert.Equal(t, domain.DefaultSummaryOptions(), domain.LintSummaryConfig{}.SummaryOptions())
	assert.Equal(t,
		domain.SummaryOptions{TopFiles: 0, SampleSize: 30},
		domain.LintSummaryConfig{TopFiles: &zero}.SummaryOptions(),
		"an explicit zero is kept")
}

func TestSliceConfig_SliceRanges(t *testing.T) {
	ranges, err := domain.DefaultConfig().Slice.SliceRanges()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSliceRanges, ranges)
}

func TestValidate_NegativeTopFiles(t *testing.T) {
	cfg := domain.DefaultConfig()
	top := -1
	cfg.LintSummary.TopFiles = &top
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "top_files")
}

func TestValidate_NegativeSampleSize(t *testing.T) {
	cfg := domain.DefaultConfig()
	sample := -5
	cfg.LintSummary.SampleSize = &sample
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sample_size")
}

func TestValidate_BadSliceRange(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Slice.Ranges = []string{"1-20", "30-10"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slice.ranges[1]")
}
