package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/piwi3910/panelcut/internal/model"
	"github.com/piwi3910/panelcut/internal/project"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose    bool
	configPath string
	dataDir    string

	appConfig model.AppConfig
	logger    *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "panelcut",
	Short: "Cut list optimizer for sheet goods and lumber",
	Long: `Lay out rectangular parts on stock sheets and boards with as little waste
as possible, respecting blade kerf and grain direction.

Examples:
  panelcut optimize --stock stock.csv --parts parts.csv --kerf 3.2
  panelcut optimize --project kitchen.json --pdf kitchen.pdf --save kitchen
  panelcut compare --stock stock.xlsx --parts parts.csv
  panelcut warehouse commit 1a2b3c4d`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", project.DefaultConfigPath(), "application config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory for saved calculations and the warehouse (default from config)")
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := project.LoadAppConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", configPath, err)
	}
	appConfig = cfg
	logger = newLogger(cmd.ErrOrStderr(), cfg.LogLevel, verbose)
	return nil
}

// newLogger builds the text logger used by every command. verbose forces
// debug level; otherwise the configured level applies, defaulting to warn.
func newLogger(w io.Writer, level string, verbose bool) *slog.Logger {
	lvl := slog.LevelWarn
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			lvl = slog.LevelWarn
		}
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// resolvedDataDir returns --data-dir, falling back to the configured directory.
func resolvedDataDir() string {
	if dataDir != "" {
		return dataDir
	}
	return project.DataDir(appConfig)
}

func calculationsPath() string {
	return project.DefaultCalculationsPath(resolvedDataDir())
}

func inventoryPath() string {
	return project.DefaultInventoryPath(resolvedDataDir())
}
