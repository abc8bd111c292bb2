package cmd

import (
	"github.com/piwi3910/panelcut/internal/engine"
	"github.com/spf13/cobra"
)

var (
	compareInputs inputFlags
	compareJSON   bool
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run the same job under several settings side by side",
	Long: `Optimize once with the current settings and once for each alternative
philosophy, fit mode, search algorithm and a thinner blade, then print
sheets used and waste for each.

Example:
  panelcut compare -s stock.csv -p parts.csv --kerf 3.2`,
	Args: cobra.NoArgs,
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareInputs.register(compareCmd)
	compareCmd.Flags().BoolVar(&compareJSON, "json", false, "print the comparison as JSON")
}

func runCompare(cmd *cobra.Command, args []string) error {
	j, err := compareInputs.load(cmd)
	if err != nil {
		return err
	}

	scenarios := engine.BuildDefaultScenarios(j.settings)
	logger.Info("comparing", "scenarios", len(scenarios), "parts", len(j.parts), "stocks", len(j.stocks))
	results := engine.CompareScenarios(scenarios, j.stocks, j.parts, logger)

	if compareJSON {
		return writeJSON(cmd.OutOrStdout(), results)
	}
	printComparison(cmd.OutOrStdout(), results)
	return nil
}
