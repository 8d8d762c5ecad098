package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openkraft/devkit/internal/adapters/outbound/report"
	"github.com/openkraft/devkit/internal/adapters/outbound/tui"
	"github.com/openkraft/devkit/internal/application"
	"github.com/openkraft/devkit/internal/domain"
)

func newLintSummaryCmd(loadConfig configFunc) *cobra.Command {
	var (
		reportPath string
		top        int
		sample     int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "lint-summary",
		Aliases: []string{"lintsum"},
		Short:   "Summarize an ESLint JSON report",
		Long: "Read an ESLint JSON report, print how many files have findings, " +
			"rank files by message count and print a sample of the messages.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			path := cfg.LintSummary.Report
			if cmd.Flags().Changed("report") {
				path = reportPath
			}
			opts := cfg.LintSummary.SummaryOptions()
			if cmd.Flags().Changed("top") {
				opts.TopFiles = top
			}
			if cmd.Flags().Changed("sample") {
				opts.SampleSize = sample
			}
			if opts.TopFiles < 0 || opts.SampleSize < 0 {
				return fmt.Errorf("--top and --sample must be >= 0")
			}

			svc := application.NewLintService(report.New(), logger)
			summary, err := svc.Summarize(path, opts)
			if err != nil {
				return err
			}

			if jsonOutput {
				return renderJSON(cmd.OutOrStdout(), summary)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderLintSummary(summary))
			return nil
		},
	}

	cmd.Flags().StringVar(&reportPath, "report", domain.DefaultLintReport, "Path to the ESLint JSON report")
	cmd.Flags().IntVar(&top, "top", domain.DefaultTopFiles, "Number of files to rank")
	cmd.Flags().IntVar(&sample, "sample", domain.DefaultSampleSize, "Number of messages to print")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the summary as JSON")

	return cmd
}
