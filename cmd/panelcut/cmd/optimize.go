package cmd

import (
	"fmt"

	"github.com/piwi3910/panelcut/internal/engine"
	"github.com/piwi3910/panelcut/internal/export"
	"github.com/piwi3910/panelcut/internal/model"
	"github.com/piwi3910/panelcut/internal/project"
	"github.com/spf13/cobra"
)

var (
	optimizeInputs inputFlags

	pdfPath     string
	labelsPath  string
	xlsxPath    string
	saveName    string
	jsonOutput  bool
	showOffcuts bool
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Lay out parts on stock and print the cutting plan",
	Long: `Run the optimizer on a stock list and a part list and print one layout per
sheet used. The plan can also be written as a PDF, as printable part labels
or as a spreadsheet, and saved for later review or warehouse commit.

Examples:
  panelcut optimize -s stock.csv -p parts.csv
  panelcut optimize -s stock.csv -p parts.csv --philosophy cuts --pdf plan.pdf
  panelcut optimize --warehouse -p parts.xlsx --save "Kitchen carcasses"`,
	Args: cobra.NoArgs,
	RunE: runOptimize,
}

func init() {
	rootCmd.AddCommand(optimizeCmd)

	optimizeInputs.register(optimizeCmd)
	optimizeCmd.Flags().StringVar(&pdfPath, "pdf", "", "write the cutting plan as a PDF")
	optimizeCmd.Flags().StringVar(&labelsPath, "labels", "", "write part labels as a PDF")
	optimizeCmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write the cut list as an Excel workbook")
	optimizeCmd.Flags().StringVar(&saveName, "save", "", "save the calculation under this name")
	optimizeCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the result as JSON")
	optimizeCmd.Flags().BoolVar(&showOffcuts, "offcuts", false, "list reusable offcuts")
}

func runOptimize(cmd *cobra.Command, args []string) error {
	j, err := optimizeInputs.load(cmd)
	if err != nil {
		return err
	}

	opt := engine.New(j.settings, engine.WithLogger(logger))
	res := opt.Optimize(j.stocks, j.parts)

	out := cmd.OutOrStdout()
	if jsonOutput {
		if err := writeJSON(out, res); err != nil {
			return err
		}
	} else {
		printResult(out, res, j.stocks, j.settings)
		if showOffcuts && res.Success {
			printOffcuts(out, model.DetectAllOffcuts(res))
		}
	}

	if cmd.Flags().Changed("save") {
		name := saveName
		if name == "" {
			name = j.name
		}
		calc, err := saveCalculation(name, j, res)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved calculation %s\n", calc.ID)
	}

	if !res.Success {
		return fmt.Errorf("optimization failed (%s): %s", res.Failure, res.Message)
	}
	return writeExports(cmd, res, j.settings)
}

func saveCalculation(name string, j job, res model.OptimizationResult) (project.SavedCalculation, error) {
	path := calculationsPath()
	store, err := project.LoadCalculations(path)
	if err != nil {
		return project.SavedCalculation{}, fmt.Errorf("failed to load saved calculations: %w", err)
	}
	calc := store.Add(name, j.stocks, j.parts, j.settings, res)
	if err := project.SaveCalculations(path, store); err != nil {
		return project.SavedCalculation{}, fmt.Errorf("failed to save calculation: %w", err)
	}
	logger.Info("calculation saved", "id", calc.ID, "name", calc.Name, "path", path)
	return calc, nil
}

func writeExports(cmd *cobra.Command, res model.OptimizationResult, settings model.CutSettings) error {
	if pdfPath != "" {
		if err := export.ExportPDF(pdfPath, res, settings); err != nil {
			return fmt.Errorf("failed to write PDF: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", pdfPath)
	}
	if labelsPath != "" {
		if err := export.ExportLabels(labelsPath, res); err != nil {
			return fmt.Errorf("failed to write labels: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", labelsPath)
	}
	if xlsxPath != "" {
		if err := export.ExportExcel(xlsxPath, res); err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", xlsxPath)
	}
	return nil
}
