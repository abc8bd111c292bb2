package cmd

import (
	"fmt"

	"github.com/piwi3910/panelcut/internal/project"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export or restore config, warehouse and saved calculations",
}

var backupExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write everything to one JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := project.LoadInventory(inventoryPath())
		if err != nil {
			return err
		}
		store, err := project.LoadCalculations(calculationsPath())
		if err != nil {
			return err
		}
		if err := project.ExportAllData(args[0], appConfig, inv, store); err != nil {
			return fmt.Errorf("failed to write backup: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Backed up %d items and %d calculations to %s\n",
			len(inv.Items), len(store.Calculations), args[0])
		return nil
	},
}

var backupImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore a backup, merging with what is already there",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backup, err := project.ImportAllData(args[0])
		if err != nil {
			return fmt.Errorf("failed to read backup: %w", err)
		}
		if err := project.RestoreBackup(backup, configPath, resolvedDataDir()); err != nil {
			return fmt.Errorf("failed to restore backup: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored backup from %s\n", backup.CreatedAt)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupExportCmd)
	backupCmd.AddCommand(backupImportCmd)
}
