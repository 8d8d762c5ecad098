package domain

import "fmt"

// Config holds tool configuration loaded from .devkit.yaml.
type Config struct {
	LintSummary LintSummaryConfig `yaml:"lint_summary" json:"lint_summary"`
	Patch       PatchConfig       `yaml:"patch"        json:"patch"`
	Slice       SliceConfig       `yaml:"slice"        json:"slice"`
}

// LintSummaryConfig configures the lint-summary command.
// The caps are pointers so an explicit 0 can be told apart from "not set".
type LintSummaryConfig struct {
	Report     string `yaml:"report"                json:"report,omitempty"`
	TopFiles   *int   `yaml:"top_files,omitempty"   json:"top_files,omitempty"`
	SampleSize *int   `yaml:"sample_size,omitempty" json:"sample_size,omitempty"`
}

// SummaryOptions returns the configured caps, falling back to the defaults.
func (c LintSummaryConfig) SummaryOptions() SummaryOptions {
	opts := DefaultSummaryOptions()
	if c.TopFiles != nil {
		opts.TopFiles = *c.TopFiles
	}
	if c.SampleSize != nil {
		opts.SampleSize = *c.SampleSize
	}
	return opts
}

// PatchConfig configures the patch command.
// Verify is a pointer so an explicit false can be told apart from "not set".
type PatchConfig struct {
	Recipe string `yaml:"recipe"           json:"recipe,omitempty"`
	Target string `yaml:"target,omitempty" json:"target,omitempty"`
	Strict bool   `yaml:"strict"           json:"strict,omitempty"`
	Verify *bool  `yaml:"verify,omitempty" json:"verify,omitempty"`
}

// SliceConfig configures the slice command.
type SliceConfig struct {
	File   string   `yaml:"file"   json:"file,omitempty"`
	Ranges []string `yaml:"ranges" json:"ranges,omitempty"`
}

// DefaultRecipe names the built-in recipe used when none is configured.
const DefaultRecipe = "courtroom-flicker"

// DefaultConfig returns the settings used when .devkit.yaml is absent.
func DefaultConfig() Config {
	verify := true
	top, sample := DefaultTopFiles, DefaultSampleSize
	ranges := make([]string, 0, len(DefaultSliceRanges))
	for _, r := range DefaultSliceRanges {
		ranges = append(ranges, r.String())
	}
	return Config{
		LintSummary: LintSummaryConfig{
			Report:     DefaultLintReport,
			TopFiles:   &top,
			SampleSize: &sample,
		},
		Patch: PatchConfig{
			Recipe: DefaultRecipe,
			Verify: &verify,
		},
		Slice: SliceConfig{
			File:   DefaultSliceFile,
			Ranges: ranges,
		},
	}
}

// VerifySyntax reports whether patched output should be syntax checked.
func (c PatchConfig) VerifySyntax() bool {
	return c.Verify == nil || *c.Verify
}

// SliceRanges parses the configured ranges.
func (c SliceConfig) SliceRanges() ([]LineRange, error) {
	out := make([]LineRange, 0, len(c.Ranges))
	for _, s := range c.Ranges {
		r, err := ParseLineRange(s)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c Config) Validate() error {
	if v := c.LintSummary.TopFiles; v != nil && *v < 0 {
		return fmt.Errorf("lint_summary.top_files must be >= 0 (got %d)", *v)
	}
	if v := c.LintSummary.SampleSize; v != nil && *v < 0 {
		return fmt.Errorf("lint_summary.sample_size must be >= 0 (got %d)", *v)
	}
	for i, s := range c.Slice.Ranges {
		if _, err := ParseLineRange(s); err != nil {
			return fmt.Errorf("slice.ranges[%d]: %w", i, err)
		}
	}
	return nil
}
