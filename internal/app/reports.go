package app

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/blackwell-systems/deskflow/internal/analyzer"
	"github.com/blackwell-systems/deskflow/internal/output"
	"github.com/blackwell-systems/deskflow/internal/store"
	"github.com/spf13/cobra"
)

var (
	reportsShowJSON bool

	reportsCmd = &cobra.Command{
		Use:   "reports",
		Short: "Manage saved reports",
		Long: `List, show and delete reports saved with 'deskflow analyze --save'.`,
		Example: `  deskflow reports list
  deskflow reports show 3f2b9c1e-...
  deskflow reports delete 3f2b9c1e-...`,
	}

	reportsListCmd = &cobra.Command{
		Use:   "list",
		Short: "List saved reports, newest first",
		Args:  cobra.NoArgs,
		RunE:  runReportsList,
	}

	reportsShowCmd = &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved report",
		Args:  cobra.ExactArgs(1),
		RunE:  runReportsShow,
	}

	reportsDeleteCmd = &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved report",
		Args:  cobra.ExactArgs(1),
		RunE:  runReportsDelete,
	}
)

func init() {
	reportsShowCmd.Flags().BoolVar(&reportsShowJSON, "json", false, "print the stored report JSON")
	reportsCmd.AddCommand(reportsListCmd, reportsShowCmd, reportsDeleteCmd)

	RootCmd.AddCommand(reportsCmd)
}

func openReportStore() (*store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return openStore(cfg, false)
}

func runReportsList(cmd *cobra.Command, args []string) error {
	st, err := openReportStore()
	if err != nil {
		return err
	}
	defer st.Close()

	subs, err := st.ListSubmissions()
	if errors.Is(err, store.ErrNotInitialized) {
		fmt.Fprint(cmd.OutOrStdout(), output.RenderSubmissionTable(nil))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to list reports: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), output.RenderSubmissionTable(subs))
	return nil
}

func runReportsShow(cmd *cobra.Command, args []string) error {
	st, err := openReportStore()
	if err != nil {
		return err
	}
	defer st.Close()

	sub, err := st.GetSubmission(args[0])
	if err != nil {
		return err
	}
	if !sub.HasReport() {
		return fmt.Errorf("submission %s has no report", sub.ID)
	}

	out := cmd.OutOrStdout()
	if reportsShowJSON {
		fmt.Fprintln(out, string(sub.Report))
		return nil
	}

	var report analyzer.Report
	if err := json.Unmarshal(sub.Report, &report); err != nil {
		return fmt.Errorf("failed to decode report %s: %w", sub.ID, err)
	}

	fmt.Fprintf(out, "Report %s (saved %s)\n\n", sub.ID, sub.CreatedAt.Format("2006-01-02 15:04"))
	renderReport(out, sub.Organization, &report)
	return nil
}

func runReportsDelete(cmd *cobra.Command, args []string) error {
	st, err := openReportStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DeleteSubmission(args[0]); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted report %s\n", args[0])
	return nil
}
