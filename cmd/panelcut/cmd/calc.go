package cmd

import (
	"fmt"

	"github.com/piwi3910/panelcut/internal/model"
	"github.com/piwi3910/panelcut/internal/project"
	"github.com/spf13/cobra"
)

var calcJSON bool

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Manage saved calculations",
}

var calcListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved calculations, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := project.LoadCalculations(calculationsPath())
		if err != nil {
			return err
		}
		printCalculations(cmd.OutOrStdout(), store.List())
		return nil
	},
}

var calcShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a saved calculation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := project.LoadCalculations(calculationsPath())
		if err != nil {
			return err
		}
		calc, err := store.Get(args[0])
		if err != nil {
			return err
		}
		if calcJSON {
			return writeJSON(cmd.OutOrStdout(), calc)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s  %s  (saved %s)\n", calc.ID, calc.Name, calc.CreatedAt.Local().Format("2006-01-02 15:04"))
		if calc.Committed {
			fmt.Fprintln(out, "Committed to the warehouse.")
		}
		printResult(out, calc.Result, calc.Stocks, calc.Settings)
		if calc.Result.Success {
			printOffcuts(out, model.DetectAllOffcuts(calc.Result))
		}
		return nil
	},
}

var calcDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved calculation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := calculationsPath()
		store, err := project.LoadCalculations(path)
		if err != nil {
			return err
		}
		if err := store.Delete(args[0]); err != nil {
			return err
		}
		if err := project.SaveCalculations(path, store); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted calculation %s\n", args[0])
		return nil
	},
}

var calcPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete every saved calculation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := calculationsPath()
		store, err := project.LoadCalculations(path)
		if err != nil {
			return err
		}
		n := store.DeleteAll()
		if err := project.SaveCalculations(path, store); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d calculations\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(calcCmd)
	calcCmd.AddCommand(calcListCmd)
	calcCmd.AddCommand(calcShowCmd)
	calcCmd.AddCommand(calcDeleteCmd)
	calcCmd.AddCommand(calcPurgeCmd)

	calcShowCmd.Flags().BoolVar(&calcJSON, "json", false, "print the calculation as JSON")
}
