package app

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blackwell-systems/deskflow/internal/watcher"
	"github.com/spf13/cobra"
)

var (
	watchCatalogDir string
	watchDebounce   time.Duration

	watchCmd = &cobra.Command{
		Use:   "watch <intake.yaml>",
		Short: "Re-run the analysis whenever the intake or catalog changes",
		Long: `Analyze an intake file and re-render the estimate every time the file changes.

When --catalog is given, edits to the catalog directory trigger a re-run too.
Invalid intermediate states (a half-saved file, a validation error) are
reported and the watch continues. Press Ctrl+C to stop.`,
		Example: `  # Watch an intake file
  deskflow watch intake.yaml

  # Watch an intake file and a catalog being edited
  deskflow watch intake.yaml --catalog ./catalog`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}
)

func init() {
	watchCmd.Flags().StringVar(&watchCatalogDir, "catalog", "", "catalog directory containing tools.yaml and use_cases.yaml")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watcher.DefaultDebounce, "quiet period before re-running")

	RootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	intakePath := args[0]
	out := cmd.OutOrStdout()

	paths := []string{intakePath}
	if watchCatalogDir != "" {
		paths = append(paths, watchCatalogDir)
	}

	rerun := func() { runOnce(out, intakePath) }

	w, err := watcher.New(paths, watchDebounce, rerun, logger)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	rerun()

	if err := w.Start(); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	fmt.Fprintf(out, "\nWatching %s (Ctrl+C to stop)\n", intakePath)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	<-sigChan

	fmt.Fprintln(out, "\nStopping watcher...")
	if err := w.Stop(); err != nil {
		return fmt.Errorf("failed to stop watcher: %w", err)
	}
	return nil
}

// runOnce analyzes and renders; failures are printed, not returned, so the
// watch loop survives a bad edit.
func runOnce(out io.Writer, intakePath string) {
	fmt.Fprintf(out, "\n── %s ──\n", time.Now().Format("15:04:05"))

	p, err := prepare(intakePath, watchCatalogDir, financialFlags{})
	if err != nil {
		logger.Warn("analysis failed", "error", err)
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}

	renderReport(out, p.intake.Organization, p.analyzer.Analyze(p.input))
}
