package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	dbPath    string
	configDir string
	verbose   bool

	// logger is replaced in PersistentPreRun once --verbose is known.
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	// RootCmd is the root command for deskflow
	RootCmd = &cobra.Command{
		Use:   "deskflow",
		Short: "Estimate IT service-desk automation impact",
		Long: `deskflow estimates how much of a service desk's ticket volume could be
automated with the SaaS tools it already licenses.

An intake file lists the integrated tools with their license tiers and the
monthly ticket volume per category. deskflow resolves which automation
use-cases each tool unlocks, allocates ticket volume to them without double
counting, and projects hours saved, FTE capacity and annual value.

Quick Start:
  1. deskflow catalog use-cases
  2. deskflow analyze intake.yaml
  3. deskflow explain intake.yaml okta-app-access

Examples:
  # Analyze an intake file
  deskflow analyze intake.yaml

  # Machine-readable output
  deskflow analyze intake.yaml --json

  # Keep the result for later
  deskflow analyze intake.yaml --save
  deskflow reports list

  # Re-run whenever the intake file changes
  deskflow watch intake.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "deskflow: IT service-desk automation estimator")
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Run 'deskflow analyze <intake.yaml>' to estimate automation impact.")
			fmt.Fprintln(out, "Run 'deskflow --help' for the full reference.")
			return nil
		},
	}
)

func init() {
	// Global flags
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: ~/.deskflow/deskflow.db)")
	RootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default: ~/.config/deskflow)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging on stderr")

	// Enable cobra's built-in suggestion feature for unknown subcommands
	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

func setupLogging(w io.Writer) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// defaultDataDir returns ~/.deskflow, creating it if needed.
func defaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	dir := filepath.Join(home, ".deskflow")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create deskflow directory: %w", err)
	}

	return dir, nil
}
