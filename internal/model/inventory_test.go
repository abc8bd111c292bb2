package model

import (
	"testing"
)

func TestInventoryItemToStockLinksBack(t *testing.T) {
	it := NewInventoryItem("Birch 2440x1220x18", 2440, 1220, 18, "Birch", 5)
	it.Grain = GrainHorizontal

	s := it.ToStock()
	if s.InventoryID != it.ID {
		t.Errorf("expected inventory id %s, got %s", it.ID, s.InventoryID)
	}
	if s.Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", s.Quantity)
	}
	if s.Grain != GrainHorizontal || s.Material != "Birch" {
		t.Errorf("grain/material not carried over: %+v", s)
	}
}

func TestInventoryStocksSkipsEmptyItems(t *testing.T) {
	inv := DefaultInventory()
	if len(inv.Stocks()) != 0 {
		t.Fatalf("default inventory has nothing on hand, got %d stocks", len(inv.Stocks()))
	}
	inv.Items[1].OnHand = 3

	stocks := inv.Stocks()
	if len(stocks) != 1 {
		t.Fatalf("expected 1 stock row, got %d", len(stocks))
	}
	if stocks[0].Label != inv.Items[1].Label {
		t.Errorf("expected %s, got %s", inv.Items[1].Label, stocks[0].Label)
	}
}

func TestInventoryFind(t *testing.T) {
	inv := DefaultInventory()
	id := inv.Items[2].ID

	if it := inv.FindByID(id); it == nil || it.Label != inv.Items[2].Label {
		t.Errorf("FindByID(%s) = %v", id, it)
	}
	if inv.FindByID("missing") != nil {
		t.Error("expected nil for unknown id")
	}
	if it := inv.FindByLabel("mdf 2440x1220x18 (8'x4')"); it == nil {
		t.Error("FindByLabel should ignore case")
	}
	if got := len(inv.Labels()); got != len(inv.Items) {
		t.Errorf("expected %d labels, got %d", len(inv.Items), got)
	}
}

func TestConsumptionCountsWarehouseSheetsOnly(t *testing.T) {
	res := OptimizationResult{
		Success: true,
		Sheets: []SheetUsage{
			{Stock: StockDefinition{InventoryID: "a"}},
			{Stock: StockDefinition{InventoryID: "a"}},
			{Stock: StockDefinition{InventoryID: "b"}},
			{Stock: StockDefinition{}},
		},
	}
	used := Consumption(res)
	if used["a"] != 2 || used["b"] != 1 || len(used) != 2 {
		t.Errorf("unexpected consumption %v", used)
	}
}
