package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/panelcut/internal/model"
)

// buildTestResult creates a realistic optimization result for testing.
func buildTestResult() model.OptimizationResult {
	ply := model.NewStock("Plywood 2440x1220", 2440, 1220, 18, 2)
	ply.Material = "Plywood"
	mdf := model.NewStock("MDF 1200x600", 1200, 600, 18, 1)

	parts := []model.PartRequirement{
		model.NewPart("Side Panel", 600, 400, 18, 2),
		model.NewPart("Top", 500, 300, 18, 1),
		model.NewPart("", 400, 300, 18, 1),
	}
	return model.OptimizationResult{
		Success:     true,
		TotalSheets: 2,
		Parts:       parts,
		PartOrder:   []int{0, 1, 2},
		Sheets: []model.SheetUsage{
			{
				StockIndex: 0,
				SheetID:    "Plywood 2440x1220-1",
				Stock:      ply,
				Placements: []model.Placement{
					{Ref: model.PartRef{Row: 0, Instance: 0}, Name: "Side Panel", X: 0, Y: 0, Width: 600, Height: 400, Aligned: true},
					{Ref: model.PartRef{Row: 1, Instance: 0}, Name: "Top", X: 600, Y: 0, Width: 500, Height: 300, Aligned: true},
					{Ref: model.PartRef{Row: 2, Instance: 0}, X: 0, Y: 400, Width: 300, Height: 400, Rotated: true},
				},
				UsedArea:    510000,
				WasteArea:   2466800,
				FreeRegions: []model.Rect{{X: 1100, Y: 0, Width: 1340, Height: 1220}},
			},
			{
				StockIndex: 1,
				SheetID:    "MDF 1200x600-1",
				Stock:      mdf,
				Placements: []model.Placement{
					{Ref: model.PartRef{Row: 0, Instance: 1}, Name: "Side Panel", X: 0, Y: 0, Width: 600, Height: 400, Aligned: true},
				},
				UsedArea:  240000,
				WasteArea: 480000,
			},
		},
		TotalWaste: 2946800,
	}
}

func assertFileWritten(t *testing.T, path string, minSize int64) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("file was not created: %v", err)
	}
	if info.Size() < minSize {
		t.Errorf("file seems too small: %d bytes", info.Size())
	}
}

func TestExportPDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.pdf")

	settings := model.DefaultSettings()
	settings.KerfWidth = 3.2
	if err := ExportPDF(path, buildTestResult(), settings); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	// 2 sheet pages plus the summary.
	assertFileWritten(t, path, 500)
}

func TestExportPDF_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	err := ExportPDF(path, model.Failed(model.FailureCapacity, "short"), model.DefaultSettings())
	if err == nil {
		t.Fatal("expected error for empty result, got nil")
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("no file should be written for an empty result")
	}
}

func TestExportPDF_ManySheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "many.pdf")

	base := buildTestResult()
	result := base
	result.Sheets = nil
	for i := 0; i < 40; i++ {
		su := base.Sheets[i%2]
		result.Sheets = append(result.Sheets, su)
	}
	result.TotalSheets = len(result.Sheets)

	if err := ExportPDF(path, result, model.DefaultSettings()); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertFileWritten(t, path, 1000)
}

func TestExportPDF_DimensionalStock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lumber.pdf")

	board := model.NewStock("Oak 2400x150", 2400, 150, 25, 3)
	board.MaterialType = model.MaterialDimensional
	result := model.OptimizationResult{
		Success:     true,
		TotalSheets: 1,
		Sheets: []model.SheetUsage{{
			SheetID: "Oak 2400x150-1",
			Stock:   board,
			Placements: []model.Placement{
				{Ref: model.PartRef{Row: 0, Instance: 0}, Name: "Leg", X: 0, Y: 0, Width: 700, Height: 150},
				{Ref: model.PartRef{Row: 0, Instance: 1}, Name: "Leg", X: 703, Y: 0, Width: 700, Height: 150},
			},
			UsedArea:  210000,
			WasteArea: 150000,
		}},
	}

	if err := ExportPDF(path, result, model.DefaultSettings()); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertFileWritten(t, path, 500)
}

func TestSummaryItems(t *testing.T) {
	items := summaryItems(buildTestResult())
	want := map[string]string{
		"Total Sheets Used":  "2",
		"Total Parts Placed": "4",
		"Total Waste":        "2.947 m²",
		"Reusable Offcuts":   "1 (1.635 m²)",
	}
	got := make(map[string]string, len(items))
	for _, it := range items {
		got[it.label] = it.value
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s: expected %q, got %q", k, v, got[k])
		}
	}
}

func TestSettingsItemsShowEffectiveWeights(t *testing.T) {
	s := model.DefaultSettings()
	s.Philosophy = model.PhilosophyMixed
	s.CustomWeights = model.Weights{Yield: 0.5, CutSimplicity: 2, GrainMatch: 0.25}

	for _, it := range settingsItems(s) {
		if it.label == "Weights" && it.value != "yield 0.50 / cuts 1.00 / grain 0.25" {
			t.Errorf("expected clamped weights, got %q", it.value)
		}
	}
}

func TestLabelFontSize(t *testing.T) {
	tests := []struct {
		w, h float64
		want float64
	}{
		{100, 50, 8},
		{100, 30, 7},
		{100, 10, 6},
	}
	for _, tt := range tests {
		if got := labelFontSize(tt.w, tt.h); got != tt.want {
			t.Errorf("labelFontSize(%.0f, %.0f) = %.0f, want %.0f", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestColorForIsStablePerRow(t *testing.T) {
	if colorFor(3) != colorFor(3+len(partColors)) {
		t.Error("colors should cycle by row")
	}
	if colorFor(0) == colorFor(1) {
		t.Error("adjacent rows should differ")
	}
}
