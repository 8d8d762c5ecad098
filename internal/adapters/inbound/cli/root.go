package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/openkraft/devkit/internal/adapters/outbound/config"
	"github.com/openkraft/devkit/internal/domain"
)

var (
	version = "dev"
	commit  = "none"

	logger = zap.NewNop()
)

// configFunc loads the effective configuration for a subcommand run.
type configFunc func() (domain.Config, error)

func newRootCmd(quiet bool, configs domain.ConfigLoader) *cobra.Command {
	var (
		verbose   bool
		configDir string
	)
	loadConfig := func() (domain.Config, error) {
		cfg, err := configs.Load(configDir)
		if err != nil {
			return domain.Config{}, err
		}
		logger.Debug("config loaded", zap.String("dir", configDir))
		return cfg, nil
	}

	cmd := &cobra.Command{
		Use:   "devkit",
		Short: "Maintenance utilities for the web app repository",
		Long: "devkit summarizes ESLint reports, applies scripted source fixes " +
			"and prints numbered slices of documentation files.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if quiet {
				logger = zap.NewNop()
				return nil
			}
			l, err := newLogger(verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
	cmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory containing .devkit.yaml")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newLintSummaryCmd(loadConfig))
	cmd.AddCommand(newPatchCmd(loadConfig))
	cmd.AddCommand(newSliceCmd(loadConfig))
	return cmd
}

// NewRootCmdForTest returns the root command with logging disabled.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd(true, config.New())
}

// NewRootCmdWithConfigForTest is NewRootCmdForTest with a custom config source.
func NewRootCmdWithConfigForTest(configs domain.ConfigLoader) *cobra.Command {
	return newRootCmd(true, configs)
}

// Execute runs devkit with the process arguments.
func Execute() error {
	return execute(newRootCmd(false, config.New()), os.Args[1:])
}

// ExecuteSubcommand runs a single subcommand as if it were the whole program,
// for the standalone binaries.
func ExecuteSubcommand(name string) error {
	return execute(newRootCmd(false, config.New()), append([]string{name}, os.Args[1:]...))
}

func execute(cmd *cobra.Command, args []string) error {
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return nil
	}
	var shown *reportedError
	if !errors.As(err, &shown) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
	logger.Debug("command failed", zap.Error(err))
	return err
}

// reportedError marks an error the command already printed to stdout.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
