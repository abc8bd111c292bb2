package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/panelcut/internal/model"
)

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version      string             `json:"version"`
	CreatedAt    string             `json:"created_at"`
	Config       model.AppConfig    `json:"config"`
	Inventory    model.Inventory    `json:"inventory"`
	Calculations []SavedCalculation `json:"calculations"`
}

// ExportAllData writes config, warehouse and saved calculations to a single
// JSON file at the specified path.
func ExportAllData(exportPath string, config model.AppConfig, inv model.Inventory, calcs CalculationStore) error {
	backup := BackupData{
		Version:      "1.0.0",
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
		Config:       config,
		Inventory:    inv,
		Calculations: calcs.Calculations,
	}
	if err := writeJSON(exportPath, backup); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller is responsible for applying it.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if backup.Inventory.Items == nil {
		backup.Inventory.Items = []model.InventoryItem{}
	}
	if backup.Calculations == nil {
		backup.Calculations = []SavedCalculation{}
	}
	return backup, nil
}

// RestoreBackup writes a backup into a data directory. Warehouse items and
// calculations are merged by ID; the config file is replaced.
func RestoreBackup(backup BackupData, configPath, dataDir string) error {
	if err := SaveAppConfig(configPath, backup.Config); err != nil {
		return fmt.Errorf("failed to restore config: %w", err)
	}

	invPath := DefaultInventoryPath(dataDir)
	inv, err := LoadInventory(invPath)
	if err != nil {
		return fmt.Errorf("failed to load inventory: %w", err)
	}
	if err := SaveInventory(invPath, mergeInventory(inv, backup.Inventory)); err != nil {
		return fmt.Errorf("failed to restore inventory: %w", err)
	}

	calcPath := DefaultCalculationsPath(dataDir)
	store, err := LoadCalculations(calcPath)
	if err != nil {
		return fmt.Errorf("failed to load calculations: %w", err)
	}
	for _, c := range backup.Calculations {
		if store.index(c.ID) < 0 {
			store.Calculations = append(store.Calculations, c)
		}
	}
	if err := SaveCalculations(calcPath, store); err != nil {
		return fmt.Errorf("failed to restore calculations: %w", err)
	}
	return nil
}
