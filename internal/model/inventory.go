package model

import (
	"strings"

	"github.com/google/uuid"
)

// InventoryItem is one warehouse record: a kind of stock and how many
// physical pieces are on hand.
type InventoryItem struct {
	ID           string       `json:"id"`
	Label        string       `json:"label"`
	Length       float64      `json:"length"`
	Width        float64      `json:"width"`
	Thickness    float64      `json:"thickness"`
	OnHand       int          `json:"on_hand"`
	Material     string       `json:"material,omitempty"`
	MaterialType MaterialType `json:"material_type"`
	Grain        Grain        `json:"grain"`
}

// NewInventoryItem creates a sheet-goods item with a generated ID.
func NewInventoryItem(label string, length, width, thickness float64, material string, onHand int) InventoryItem {
	return InventoryItem{
		ID:           uuid.New().String()[:8],
		Label:        label,
		Length:       length,
		Width:        width,
		Thickness:    thickness,
		OnHand:       onHand,
		Material:     material,
		MaterialType: MaterialSheet,
	}
}

// ToStock converts the item into a stock row offering everything on hand.
// The row keeps a link back to the item so a calculation can be committed.
func (it InventoryItem) ToStock() StockDefinition {
	return StockDefinition{
		ID:           it.ID,
		Label:        it.Label,
		Length:       it.Length,
		Width:        it.Width,
		Thickness:    it.Thickness,
		Quantity:     it.OnHand,
		Material:     it.Material,
		MaterialType: it.MaterialType,
		Grain:        it.Grain,
		InventoryID:  it.ID,
	}
}

// Inventory is the warehouse: every stock item the shop keeps.
type Inventory struct {
	Items []InventoryItem `json:"items"`
}

// DefaultInventory returns an inventory seeded with common panel sizes and
// nothing on hand.
func DefaultInventory() Inventory {
	return Inventory{
		Items: []InventoryItem{
			NewInventoryItem("Plywood 2440x1220x18 (8'x4')", 2440, 1220, 18, "Plywood", 0),
			NewInventoryItem("MDF 2440x1220x18 (8'x4')", 2440, 1220, 18, "MDF", 0),
			NewInventoryItem("MDF 1220x610x18 (4'x2')", 1220, 610, 18, "MDF", 0),
			NewInventoryItem("Plywood 1220x610x12 (4'x2')", 1220, 610, 12, "Plywood", 0),
		},
	}
}

// Stocks returns a stock row for every item with pieces on hand.
func (inv *Inventory) Stocks() []StockDefinition {
	var out []StockDefinition
	for _, it := range inv.Items {
		if it.OnHand > 0 {
			out = append(out, it.ToStock())
		}
	}
	return out
}

// FindByID returns a pointer to the item with the given ID, or nil.
func (inv *Inventory) FindByID(id string) *InventoryItem {
	for i := range inv.Items {
		if inv.Items[i].ID == id {
			return &inv.Items[i]
		}
	}
	return nil
}

// FindByLabel returns a pointer to the first item whose label matches
// case-insensitively, or nil.
func (inv *Inventory) FindByLabel(label string) *InventoryItem {
	for i := range inv.Items {
		if strings.EqualFold(inv.Items[i].Label, label) {
			return &inv.Items[i]
		}
	}
	return nil
}

// Labels returns the item labels in order.
func (inv *Inventory) Labels() []string {
	names := make([]string, len(inv.Items))
	for i, it := range inv.Items {
		names[i] = it.Label
	}
	return names
}

// Consumption counts sheets used per inventory item in a result. Rows that
// did not come from the warehouse are ignored.
func Consumption(res OptimizationResult) map[string]int {
	used := make(map[string]int)
	for _, su := range res.Sheets {
		if su.Stock.InventoryID != "" {
			used[su.Stock.InventoryID]++
		}
	}
	return used
}
