package app

import (
	"fmt"

	"github.com/blackwell-systems/deskflow/internal/output"
	"github.com/spf13/cobra"
)

var (
	catalogDir string

	catalogCmd = &cobra.Command{
		Use:   "catalog",
		Short: "List catalog tools and use-cases",
		Long: `Inspect the capability catalog used by the analysis.

Without --catalog, the directory from the config file is used, falling back to
the built-in catalog.`,
		Example: `  # Tools and the capability groups each tier unlocks
  deskflow catalog tools

  # Automation use-cases
  deskflow catalog use-cases --catalog ./catalog`,
	}

	catalogToolsCmd = &cobra.Command{
		Use:   "tools",
		Short: "List tools and license tiers",
		Args:  cobra.NoArgs,
		RunE:  runCatalogTools,
	}

	catalogUseCasesCmd = &cobra.Command{
		Use:   "use-cases",
		Short: "List automation use-cases",
		Args:  cobra.NoArgs,
		RunE:  runCatalogUseCases,
	}
)

func init() {
	catalogCmd.PersistentFlags().StringVar(&catalogDir, "catalog", "", "catalog directory containing tools.yaml and use_cases.yaml")
	catalogCmd.AddCommand(catalogToolsCmd, catalogUseCasesCmd)

	RootCmd.AddCommand(catalogCmd)
}

func runCatalogTools(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	c, err := loadCatalog(catalogDir, cfg)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), output.RenderToolCatalog(c.Tools))
	return nil
}

func runCatalogUseCases(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	c, err := loadCatalog(catalogDir, cfg)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), output.RenderUseCaseCatalog(c.UseCases))
	return nil
}
