package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/openkraft/devkit/internal/domain"
	"gopkg.in/yaml.v3"
)

const fileName = ".devkit.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .devkit.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .devkit.yaml from dir.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(dir string) (domain.Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	// Validate before merging so typos in the user's raw input are reported.
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	return mergeConfig(domain.DefaultConfig(), cfg), nil
}

// mergeConfig overlays explicit overrides on top of defaults.
// Explicit values always win; for pointer fields an explicit zero counts.
func mergeConfig(base, override domain.Config) domain.Config {
	result := base

	if override.LintSummary.Report != "" {
		result.LintSummary.Report = override.LintSummary.Report
	}
	if override.LintSummary.TopFiles != nil {
		result.LintSummary.TopFiles = override.LintSummary.TopFiles
	}
	if override.LintSummary.SampleSize != nil {
		result.LintSummary.SampleSize = override.LintSummary.SampleSize
	}

	if override.Patch.Recipe != "" {
		result.Patch.Recipe = override.Patch.Recipe
	}
	if override.Patch.Target != "" {
		result.Patch.Target = override.Patch.Target
	}
	if override.Patch.Verify != nil {
		result.Patch.Verify = override.Patch.Verify
	}
	result.Patch.Strict = override.Patch.Strict

	if override.Slice.File != "" {
		result.Slice.File = override.Slice.File
	}
	// Explicit ranges replace the defaults entirely.
	if len(override.Slice.Ranges) > 0 {
		result.Slice.Ranges = override.Slice.Ranges
	}

	return result
}
