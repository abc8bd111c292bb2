package model

import (
	"testing"
)

func TestDetectOffcutsSkipsOverlappingRegions(t *testing.T) {
	su := SheetUsage{
		SheetID: "Sheet-1",
		Stock:   StockDefinition{Label: "Sheet", Length: 2440, Width: 1220, Thickness: 18, Material: "MDF"},
		FreeRegions: []Rect{
			{X: 1003, Y: 0, Width: 1437, Height: 1220}, // right strip
			{X: 0, Y: 603, Width: 2440, Height: 617},   // bottom strip, overlaps right strip
			{X: 0, Y: 0, Width: 30, Height: 30},        // too small
		},
	}

	offcuts := DetectOffcuts(su, 0)
	if len(offcuts) != 1 {
		t.Fatalf("expected 1 offcut, got %d", len(offcuts))
	}
	if offcuts[0].Rect.Width != 1437 {
		t.Errorf("expected the larger right strip, got %+v", offcuts[0].Rect)
	}
	if offcuts[0].SheetID != "Sheet-1" {
		t.Errorf("expected sheet id Sheet-1, got %s", offcuts[0].SheetID)
	}
}

func TestDetectOffcutsKeepsDisjointRegions(t *testing.T) {
	su := SheetUsage{
		Stock: StockDefinition{Length: 1000, Width: 1000},
		FreeRegions: []Rect{
			{X: 0, Y: 500, Width: 400, Height: 500},
			{X: 500, Y: 0, Width: 500, Height: 400},
		},
	}
	if got := len(DetectOffcuts(su, 0)); got != 2 {
		t.Errorf("expected 2 offcuts, got %d", got)
	}
}

func TestDetectOffcutsThinStripIsWaste(t *testing.T) {
	su := SheetUsage{
		Stock:       StockDefinition{Length: 2440, Width: 1220},
		FreeRegions: []Rect{{X: 2400, Y: 0, Width: 40, Height: 1220}},
	}
	if got := len(DetectOffcuts(su, 0)); got != 0 {
		t.Errorf("40mm strip should be waste, got %d offcuts", got)
	}
}

func TestOffcutToStockCarriesMaterial(t *testing.T) {
	o := Offcut{
		SheetID: "Ply-2",
		Rect:    Rect{Width: 600, Height: 400},
		Source:  StockDefinition{Thickness: 12, Material: "Plywood", Grain: GrainVertical},
	}
	s := o.ToStock()
	if s.Length != 600 || s.Width != 400 || s.Thickness != 12 {
		t.Errorf("unexpected dimensions %+v", s)
	}
	if s.Material != "Plywood" || s.Grain != GrainVertical || s.Quantity != 1 {
		t.Errorf("unexpected stock %+v", s)
	}
	if s.Label != "Offcut Ply-2" {
		t.Errorf("unexpected label %s", s.Label)
	}
}

func TestTotalOffcutArea(t *testing.T) {
	res := OptimizationResult{Sheets: []SheetUsage{
		{FreeRegions: []Rect{{Width: 100, Height: 100}}},
		{FreeRegions: []Rect{{Width: 200, Height: 100}}},
	}}
	all := DetectAllOffcuts(res)
	if len(all) != 2 {
		t.Fatalf("expected 2 offcuts, got %d", len(all))
	}
	if all[1].SheetIndex != 1 {
		t.Errorf("expected sheet index 1, got %d", all[1].SheetIndex)
	}
	if got := TotalOffcutArea(all); got != 30000 {
		t.Errorf("expected 30000, got %f", got)
	}
}
