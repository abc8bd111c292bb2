package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/panelcut/internal/model"
)

func TestSaveAndLoadProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kitchen.json")

	proj := model.NewProject()
	proj.Name = "Kitchen"
	proj.Stocks = append(proj.Stocks, model.NewStock("Ply", 2440, 1220, 18, 3))
	proj.Parts = append(proj.Parts, model.NewPart("Door", 700, 400, 18, 4))
	proj.Settings.KerfWidth = 3

	if err := Save(path, proj); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Name != "Kitchen" || len(loaded.Stocks) != 1 || len(loaded.Parts) != 1 {
		t.Errorf("unexpected project %+v", loaded)
	}
	if loaded.Settings.KerfWidth != 3 {
		t.Errorf("expected kerf 3, got %f", loaded.Settings.KerfWidth)
	}
}

func TestLoadProjectKeepsDefaultSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bare.json")
	data := `{"name":"Bare","parts":[{"name":"A","length":100,"width":50,"thickness":18,"quantity":1}]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	proj, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if proj.Settings.FitMode != model.FitBest || proj.Settings.MaxAttempts != model.DefaultMaxAttempts {
		t.Errorf("expected default settings, got %+v", proj.Settings)
	}
	if proj.Parts[0].Quantity != 1 {
		t.Errorf("unexpected parts %+v", proj.Parts)
	}
}

func TestLoadProjectErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
