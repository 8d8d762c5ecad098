package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openkraft/devkit/internal/adapters/outbound/mdoutline"
	"github.com/openkraft/devkit/internal/adapters/outbound/tui"
	"github.com/openkraft/devkit/internal/application"
	"github.com/openkraft/devkit/internal/domain"
)

func newSliceCmd(loadConfig configFunc) *cobra.Command {
	var (
		file       string
		rangeArgs  []string
		headings   bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "slice",
		Short: "Print numbered line ranges of a file",
		Long: "Print inclusive, 1-based line ranges of a markdown file as \"N: text\". " +
			"Ranges that start past the end of the file print nothing.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			path := cfg.Slice.File
			if cmd.Flags().Changed("file") {
				path = file
			}

			svc := application.NewSliceService(mdoutline.New(), logger)
			out := cmd.OutOrStdout()

			if headings {
				hs, err := svc.Outline(path)
				if err != nil {
					return err
				}
				if jsonOutput {
					return renderJSON(out, hs)
				}
				fmt.Fprint(out, tui.RenderOutline(hs))
				return nil
			}

			ranges, err := cfg.Slice.SliceRanges()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("range") {
				ranges = ranges[:0]
				for _, s := range rangeArgs {
					r, err := domain.ParseLineRange(s)
					if err != nil {
						return err
					}
					ranges = append(ranges, r)
				}
			}

			slices, err := svc.Slice(path, ranges)
			if err != nil {
				return err
			}
			if jsonOutput {
				return renderJSON(out, slices)
			}
			fmt.Fprint(out, tui.RenderSlices(slices))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", domain.DefaultSliceFile, "File to slice")
	cmd.Flags().StringArrayVar(&rangeArgs, "range", nil, "Inclusive line range a-b (repeatable; default 1-20 and 140-170)")
	cmd.Flags().BoolVar(&headings, "headings", false, "Print the markdown heading outline instead")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
