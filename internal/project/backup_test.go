package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/panelcut/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultKerfWidth = 3.2
	inv := model.DefaultInventory()
	inv.Items[0].OnHand = 7
	store := NewCalculationStore()
	store.Add("Wardrobe", nil, nil, model.DefaultSettings(), sampleResult())

	if err := ExportAllData(path, cfg, inv, store); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %s", backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if backup.Config.DefaultKerfWidth != 3.2 {
		t.Errorf("expected kerf 3.2, got %f", backup.Config.DefaultKerfWidth)
	}
	if backup.Inventory.Items[0].OnHand != 7 {
		t.Errorf("expected 7 on hand, got %d", backup.Inventory.Items[0].OnHand)
	}
	if len(backup.Calculations) != 1 || backup.Calculations[0].Name != "Wardrobe" {
		t.Errorf("unexpected calculations %+v", backup.Calculations)
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	if _, err := ImportAllData(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImportAllDataInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportAllData(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noversion.json")
	if err := os.WriteFile(path, []byte(`{"config":{"default_kerf_width":3}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportAllData(path); err == nil {
		t.Fatal("expected error for missing version")
	}
}

func TestImportAllDataNilCollections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	data := []byte(`{"version":"1.0.0","created_at":"2025-01-01T00:00:00Z","config":{},"inventory":{"items":null},"calculations":null}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Inventory.Items == nil || backup.Calculations == nil {
		t.Error("collections should not be nil after import")
	}
}

func TestRestoreBackupMergesIntoDataDir(t *testing.T) {
	dataDir := t.TempDir()
	configPath := filepath.Join(dataDir, "config.json")

	store := NewCalculationStore()
	kept := store.Add("existing", nil, nil, model.DefaultSettings(), model.OptimizationResult{})
	if err := SaveCalculations(DefaultCalculationsPath(dataDir), store); err != nil {
		t.Fatal(err)
	}

	other := NewCalculationStore()
	other.Calculations = append(other.Calculations, kept)
	restored := other.Add("restored", nil, nil, model.DefaultSettings(), model.OptimizationResult{})
	backup := BackupData{
		Version:      "1.0.0",
		Config:       model.DefaultAppConfig(),
		Inventory:    model.Inventory{Items: []model.InventoryItem{model.NewInventoryItem("Oak", 2000, 600, 25, "Oak", 3)}},
		Calculations: other.Calculations,
	}

	if err := RestoreBackup(backup, configPath, dataDir); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	loaded, err := LoadCalculations(DefaultCalculationsPath(dataDir))
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Calculations) != 2 {
		t.Errorf("expected 2 calculations after merge, got %d", len(loaded.Calculations))
	}
	if _, err := loaded.Get(restored.ID); err != nil {
		t.Errorf("restored calculation missing: %v", err)
	}

	inv, err := LoadInventory(DefaultInventoryPath(dataDir))
	if err != nil {
		t.Fatal(err)
	}
	if inv.FindByLabel("Oak") == nil {
		t.Error("restored warehouse item missing")
	}
	if _, err := os.Stat(configPath); err != nil {
		t.Errorf("config not written: %v", err)
	}
}
