package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/openkraft/devkit/internal/domain"
	"github.com/openkraft/devkit/internal/domain/textpatch"
)

// PatchService orchestrates a patch run:
// load recipe -> resolve root -> read target -> apply steps -> verify -> write.
type PatchService struct {
	recipes domain.RecipeLoader
	syntax  domain.SyntaxChecker
	repo    domain.RepoInspector
	differ  domain.DiffRenderer
	logger  *zap.Logger
}

func NewPatchService(
	recipes domain.RecipeLoader,
	syntax domain.SyntaxChecker,
	repo domain.RepoInspector,
	differ domain.DiffRenderer,
	logger *zap.Logger,
) *PatchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PatchService{
		recipes: recipes,
		syntax:  syntax,
		repo:    repo,
		differ:  differ,
		logger:  logger,
	}
}

// Apply runs the recipe named by opts against its target. The returned report
// is non-nil whenever the steps were evaluated, including strict-mode and
// syntax failures, so callers can show what happened.
func (s *PatchService) Apply(ctx context.Context, opts domain.PatchOptions) (*domain.PatchReport, error) {
	// 1. Recipe
	recipe, err := s.recipes.Load(opts.Recipe)
	if err != nil {
		return nil, fmt.Errorf("loading recipe: %w", err)
	}

	// 2. Root and target
	root, err := s.resolveRoot(opts.Root)
	if err != nil {
		return nil, err
	}
	target := opts.Target
	if target == "" {
		target = recipe.Target
	}
	path := target
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, target)
	}
	s.logger.Debug("patch target resolved",
		zap.String("recipe", recipe.Name),
		zap.String("root", root),
		zap.String("path", path))

	// 3. Read
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", target, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", target, err)
	}
	before := string(data)

	report := &domain.PatchReport{
		Recipe: recipe.Name,
		Target: target,
		DryRun: opts.DryRun,
	}
	if hash, err := s.repo.CommitHash(root); err == nil {
		report.CommitHash = hash
	} else {
		s.logger.Debug("no commit hash", zap.Error(err))
	}

	// 4. Steps
	after, results, err := textpatch.Run(before, recipe.Steps)
	report.Results = results
	if err != nil {
		return report, fmt.Errorf("running recipe %s: %w", recipe.Name, err)
	}
	report.Changed = after != before
	for _, r := range results {
		s.logger.Debug("step evaluated",
			zap.String("step", r.Step),
			zap.String("outcome", string(r.Outcome)),
			zap.String("detail", r.Detail))
	}

	if opts.Strict {
		if skipped := skippedSteps(results); len(skipped) > 0 {
			return report, fmt.Errorf("%w: %s", domain.ErrStepSkipped, strings.Join(skipped, ", "))
		}
	}

	// 5. Verify
	if report.Changed && opts.Verify && s.syntax != nil {
		issues, err := s.syntax.Check(ctx, path, []byte(after))
		if err != nil {
			return report, fmt.Errorf("verifying %s: %w", target, err)
		}
		if len(issues) > 0 {
			report.SyntaxIssues = issues
			return report, fmt.Errorf("%w: %d issue(s) in %s", domain.ErrSyntax, len(issues), target)
		}
	}

	if opts.DryRun {
		if report.Changed {
			report.Diff = s.differ.Diff(target, before, after)
		}
		return report, nil
	}
	if !report.Changed {
		return report, nil
	}

	// 6. Write
	report.Uncommitted = s.uncommitted(root, path)
	if report.Uncommitted {
		s.logger.Warn("target has uncommitted changes", zap.String("path", target))
	}

	if err := os.WriteFile(path, []byte(after), info.Mode().Perm()); err != nil {
		return report, fmt.Errorf("writing %s: %w", target, err)
	}
	report.Written = true
	s.logger.Info("patch written",
		zap.String("path", path),
		zap.Int("applied", report.Count(domain.OutcomeApplied)))
	return report, nil
}

// resolveRoot uses dir when given, otherwise the git work tree around the
// current directory, otherwise the current directory itself.
func (s *PatchService) resolveRoot(dir string) (string, error) {
	if dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", fmt.Errorf("resolving root %s: %w", dir, err)
		}
		return abs, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	if root, err := s.repo.Root(cwd); err == nil {
		return root, nil
	}
	return cwd, nil
}

// uncommitted reports whether path differs from HEAD in its work tree.
// Outside a repository it is always false.
func (s *PatchService) uncommitted(root, path string) bool {
	gitRoot, err := s.repo.Root(root)
	if err != nil {
		s.logger.Debug("skipping uncommitted check", zap.Error(err))
		return false
	}
	dirty, err := s.repo.HasUncommittedChanges(gitRoot, relativeTo(gitRoot, path))
	if err != nil {
		s.logger.Debug("skipping uncommitted check", zap.Error(err))
		return false
	}
	return dirty
}

func skippedSteps(results []domain.StepResult) []string {
	var names []string
	for _, r := range results {
		if r.Outcome == domain.OutcomeSkipped {
			names = append(names, r.Step)
		}
	}
	return names
}

func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
