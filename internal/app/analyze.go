package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/blackwell-systems/deskflow/internal/analyzer"
	"github.com/blackwell-systems/deskflow/internal/output"
	"github.com/spf13/cobra"
)

var (
	analyzeCatalogDir string
	analyzeJSON       bool
	analyzeSave       bool
	analyzeFinancials financialFlags

	analyzeCmd = &cobra.Command{
		Use:   "analyze <intake.yaml>",
		Short: "Estimate automation impact for an intake file",
		Long: `Analyze an organization's intake file and print the automation estimate.

The analysis runs in three stages:
  • Capability resolution: which use-cases each tool unlocks at its tier
  • Allocation: ticket volume is assigned to use-cases without double counting
  • Aggregation: hours saved, confidence bands, FTE and annual value

Financial parameters come from the config file unless the intake file or the
flags below override them.`,
		Example: `  # Analyze with the built-in catalog
  deskflow analyze intake.yaml

  # Use a custom catalog directory
  deskflow analyze intake.yaml --catalog ./catalog

  # JSON output, saved to the local database
  deskflow analyze intake.yaml --json --save

  # Override the fully loaded annual cost of an agent
  deskflow analyze intake.yaml --annual-cost 85000`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeCatalogDir, "catalog", "", "catalog directory containing tools.yaml and use_cases.yaml")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the report as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "store the intake and report in the database")
	analyzeCmd.Flags().Float64Var(&analyzeFinancials.annualCost, "annual-cost", 0, "fully loaded annual cost per agent")
	analyzeCmd.Flags().Float64Var(&analyzeFinancials.captureRate, "capture-rate", 0, "fraction of saved time converted into freed capacity (0-1]")
	analyzeCmd.Flags().Float64Var(&analyzeFinancials.hoursPerFTE, "hours-per-fte", 0, "effective working hours per FTE per year")

	RootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	p, err := prepare(args[0], analyzeCatalogDir, analyzeFinancials)
	if err != nil {
		return err
	}

	report := p.analyzer.Analyze(p.input)

	var savedID string
	if analyzeSave {
		savedID, err = saveReport(p, report)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if analyzeJSON {
		if err := writeJSON(out, report); err != nil {
			return err
		}
		if savedID != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Saved report %s\n", savedID)
		}
		return nil
	}

	renderReport(out, p.intake.Organization, report)
	if savedID != "" {
		fmt.Fprintf(out, "\nSaved report %s\n", savedID)
	}
	return nil
}

func saveReport(p *prepared, report *analyzer.Report) (string, error) {
	st, err := openStore(p.cfg, true)
	if err != nil {
		return "", err
	}
	defer st.Close()

	sub, err := st.CreateSubmission(p.intake.Organization, p.intake)
	if err != nil {
		return "", fmt.Errorf("failed to save submission: %w", err)
	}
	if err := st.SaveReport(sub.ID, report); err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}

	logger.Debug("report saved", "id", sub.ID, "organization", sub.Organization)
	return sub.ID, nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// renderReport prints the full human-readable report.
func renderReport(w io.Writer, organization string, r *analyzer.Report) {
	if organization != "" {
		fmt.Fprintf(w, "Automation estimate for %s\n\n", organization)
	}

	fmt.Fprintln(w, "Integrated tools:")
	fmt.Fprint(w, output.RenderFeasibilityTable(r.Feasibility))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Matched automations:")
	fmt.Fprint(w, output.RenderMatchTable(r.Matches))

	if len(r.Projection.Categories) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Impact by category:")
		fmt.Fprint(w, output.RenderCategoryBreakdown(r.Projection.Categories))
	}

	fmt.Fprintln(w)
	fmt.Fprint(w, output.RenderProjection(r.Projection))
}
