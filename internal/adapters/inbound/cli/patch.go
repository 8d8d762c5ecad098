package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openkraft/devkit/internal/adapters/outbound/gitinfo"
	"github.com/openkraft/devkit/internal/adapters/outbound/preview"
	"github.com/openkraft/devkit/internal/adapters/outbound/recipe"
	"github.com/openkraft/devkit/internal/adapters/outbound/syntax"
	"github.com/openkraft/devkit/internal/adapters/outbound/tui"
	"github.com/openkraft/devkit/internal/application"
	"github.com/openkraft/devkit/internal/domain"
)

func newPatchCmd(loadConfig configFunc) *cobra.Command {
	var (
		root       string
		recipeRef  string
		target     string
		dryRun     bool
		strict     bool
		noVerify   bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "patch",
		Short: "Apply a source fix recipe in place",
		Long: "Apply an ordered recipe of textual fixes to its target file. " +
			"The default recipe fixes the CourtRoom video grid flicker in src/pages/CourtRoom.tsx. " +
			"The file is overwritten without a backup; revert with git.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := loadConfig()
			if err != nil {
				fmt.Fprint(out, tui.RenderPatchFailure(err))
				return &reportedError{err}
			}

			opts := domain.PatchOptions{
				Root:   root,
				Recipe: cfg.Patch.Recipe,
				Target: cfg.Patch.Target,
				DryRun: dryRun,
				Strict: cfg.Patch.Strict,
				Verify: cfg.Patch.VerifySyntax(),
			}
			if cmd.Flags().Changed("recipe") {
				opts.Recipe = recipeRef
			}
			if cmd.Flags().Changed("target") {
				opts.Target = target
			}
			if cmd.Flags().Changed("strict") {
				opts.Strict = strict
			}
			if noVerify {
				opts.Verify = false
			}

			svc := application.NewPatchService(
				recipe.New(),
				syntax.New(),
				gitinfo.New(),
				preview.New(),
				logger,
			)

			report, err := svc.Apply(cmd.Context(), opts)
			if err != nil {
				if !jsonOutput {
					fmt.Fprint(out, tui.RenderPatchSteps(report))
				}
				fmt.Fprint(out, tui.RenderPatchFailure(err))
				return &reportedError{err}
			}

			if jsonOutput {
				return renderJSON(out, report)
			}
			fmt.Fprint(out, tui.RenderPatchReport(report, tui.IsTerminal(out)))
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "Project root (default: enclosing git work tree, else current directory)")
	cmd.Flags().StringVar(&recipeRef, "recipe", domain.DefaultRecipe, "Built-in recipe name or path to a .yaml/.toml recipe")
	cmd.Flags().StringVar(&target, "target", "", "Override the recipe's target path, relative to the root")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the diff without writing")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail without writing if any step is skipped")
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "Write even if the patched file has syntax errors")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the patch report as JSON")

	return cmd
}
