package project

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/piwi3910/panelcut/internal/model"
)

func sampleResult() model.OptimizationResult {
	stock := model.NewStock("Ply", 1000, 500, 18, 2)
	return model.OptimizationResult{
		Success:     true,
		TotalSheets: 1,
		Sheets: []model.SheetUsage{{
			SheetID: "Ply-1",
			Stock:   stock,
			Placements: []model.Placement{
				{Ref: model.PartRef{Row: 0, Instance: 0}, Name: "Shelf", Width: 400, Height: 300},
			},
			UsedArea:  120000,
			WasteArea: 380000,
		}},
	}
}

func TestCalculationStoreCRUD(t *testing.T) {
	store := NewCalculationStore()
	stocks := []model.StockDefinition{model.NewStock("Ply", 1000, 500, 18, 2)}
	parts := []model.PartRequirement{model.NewPart("Shelf", 400, 300, 18, 1)}

	calc := store.Add("Bookcase", stocks, parts, model.DefaultSettings(), sampleResult())
	if calc.ID == "" {
		t.Fatal("expected generated id")
	}
	stocks[0].Label = "changed"

	got, err := store.Get(calc.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "Bookcase" || got.Stocks[0].Label != "Ply" {
		t.Errorf("stored calculation was not kept verbatim: %+v", got)
	}
	if got.Result.Sheets[0].Placements[0].Name != "Shelf" {
		t.Errorf("result not stored: %+v", got.Result)
	}

	if err := store.Delete(calc.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(calc.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.Delete(calc.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestCalculationStoreAddDefaultsName(t *testing.T) {
	store := NewCalculationStore()
	calc := store.Add("", nil, nil, model.DefaultSettings(), model.OptimizationResult{})
	if calc.Name != "Untitled" {
		t.Errorf("expected Untitled, got %s", calc.Name)
	}
}

func TestCalculationStoreListNewestFirst(t *testing.T) {
	store := NewCalculationStore()
	a := store.Add("first", nil, nil, model.DefaultSettings(), model.OptimizationResult{})
	b := store.Add("second", nil, nil, model.DefaultSettings(), model.OptimizationResult{})
	store.Calculations[0].CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store.Calculations[1].CreatedAt = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	list := store.List()
	if len(list) != 2 {
		t.Fatalf("expected 2 calculations, got %d", len(list))
	}
	if list[0].ID != b.ID || list[1].ID != a.ID {
		t.Errorf("expected newest first, got %s then %s", list[0].Name, list[1].Name)
	}
	if store.Calculations[0].ID != a.ID {
		t.Error("List must not reorder the store")
	}
}

func TestCalculationStoreDeleteAll(t *testing.T) {
	store := NewCalculationStore()
	store.Add("a", nil, nil, model.DefaultSettings(), model.OptimizationResult{})
	store.Add("b", nil, nil, model.DefaultSettings(), model.OptimizationResult{})

	if n := store.DeleteAll(); n != 2 {
		t.Errorf("expected 2 deleted, got %d", n)
	}
	if len(store.List()) != 0 {
		t.Error("expected empty store")
	}
}

func TestSaveAndLoadCalculations(t *testing.T) {
	path := DefaultCalculationsPath(t.TempDir())
	store := NewCalculationStore()
	calc := store.Add("Kitchen", nil, nil, model.DefaultSettings(), sampleResult())

	if err := SaveCalculations(path, store); err != nil {
		t.Fatalf("SaveCalculations failed: %v", err)
	}
	loaded, err := LoadCalculations(path)
	if err != nil {
		t.Fatalf("LoadCalculations failed: %v", err)
	}
	got, err := loaded.Get(calc.ID)
	if err != nil {
		t.Fatalf("Get after reload failed: %v", err)
	}
	if got.Result.Sheets[0].SheetID != "Ply-1" {
		t.Errorf("expected sheet Ply-1, got %s", got.Result.Sheets[0].SheetID)
	}
	if !got.CreatedAt.Equal(calc.CreatedAt) {
		t.Errorf("timestamp changed across reload: %v vs %v", got.CreatedAt, calc.CreatedAt)
	}
}

func TestLoadCalculationsMissingFile(t *testing.T) {
	store, err := LoadCalculations(filepath.Join(t.TempDir(), "none.json"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if store.Calculations == nil || len(store.Calculations) != 0 {
		t.Errorf("expected empty non-nil store, got %+v", store)
	}
}
