package app

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/blackwell-systems/deskflow/internal/analyzer"
	"github.com/blackwell-systems/deskflow/internal/output"
	"github.com/spf13/cobra"
)

var (
	explainCatalogDir string

	explainCmd = &cobra.Command{
		Use:   "explain <intake.yaml> <use-case-id>",
		Short: "Show why a use-case was or was not matched",
		Long: `Display the fit-score breakdown and volume allocation for one use-case.

If the use-case did not make the plan, the reason is shown instead: a required
capability the integrated tiers do not unlock, no reported ticket category
matching its targets, or no unclaimed volume left after higher-precedence
use-cases took their share.`,
		Example: `  # Explain the Okta app-access automation
  deskflow explain intake.yaml okta-app-access

  # List use-case IDs
  deskflow catalog use-cases`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return fmt.Errorf("missing argument: usage is 'deskflow explain <intake.yaml> <use-case-id>'")
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: runExplain,
	}
)

func init() {
	explainCmd.Flags().StringVar(&explainCatalogDir, "catalog", "", "catalog directory containing tools.yaml and use_cases.yaml")

	RootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, args []string) error {
	p, err := prepare(args[0], explainCatalogDir, financialFlags{})
	if err != nil {
		return err
	}

	exp, err := p.analyzer.Explain(p.input, args[1])
	if errors.Is(err, analyzer.ErrUnknownUseCase) {
		return fmt.Errorf("%w\nRun 'deskflow catalog use-cases' to list available IDs", err)
	}
	if err != nil {
		return err
	}

	renderExplanation(cmd.OutOrStdout(), exp)
	return nil
}

func renderExplanation(w io.Writer, exp *analyzer.Explanation) {
	fmt.Fprintf(w, "\nUse-case: %s (%s)\n", exp.Name, exp.UseCaseID)
	fmt.Fprintf(w, "Result:   %s\n", exp.Reason)

	if len(exp.MissingAPIs) > 0 {
		fmt.Fprintln(w, "\nMissing capabilities:")
		for _, m := range exp.MissingAPIs {
			fmt.Fprintf(w, "  • %s\n", m)
		}
	}

	m := exp.Match
	if m == nil {
		return
	}

	fmt.Fprintln(w, "\nFit score:")
	fmt.Fprint(w, output.RenderFitBreakdown(*m))

	fmt.Fprintf(w, "\nTime to value: %d days\n", m.TimeToValueDays)
	if len(m.Prerequisites) > 0 {
		fmt.Fprintf(w, "Prerequisites: %s\n", strings.Join(m.Prerequisites, "; "))
	}
	if len(m.Workflow) > 0 {
		fmt.Fprintln(w, "\nWorkflow:")
		for i, step := range m.Workflow {
			fmt.Fprintf(w, "  %d. %s\n", i+1, step)
		}
	}
}
