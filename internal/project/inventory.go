package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/panelcut/internal/model"
)

var (
	// ErrInsufficientStock is returned when a commit would take an item below zero.
	ErrInsufficientStock = errors.New("insufficient stock on hand")
	// ErrAlreadyCommitted is returned when a calculation was committed before.
	ErrAlreadyCommitted = errors.New("calculation already committed")
)

// DefaultInventoryPath returns the warehouse file inside a data directory.
func DefaultInventoryPath(dataDir string) string {
	return filepath.Join(dataDir, "inventory.json")
}

// SaveInventory writes the warehouse to a JSON file.
func SaveInventory(path string, inv model.Inventory) error {
	return writeJSON(path, inv)
}

// LoadInventory reads the warehouse from a JSON file. If the file does not
// exist, it returns the default catalogue with nothing on hand.
func LoadInventory(path string) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultInventory(), nil
		}
		return model.Inventory{}, err
	}
	var inv model.Inventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return model.Inventory{}, err
	}
	if inv.Items == nil {
		inv.Items = []model.InventoryItem{}
	}
	return inv, nil
}

// AddStock receives pieces into the warehouse. An item with the same label
// and dimensions is topped up; anything else becomes a new item.
func AddStock(inv *model.Inventory, item model.InventoryItem) (*model.InventoryItem, error) {
	if item.Length <= 0 || item.Width <= 0 || item.Thickness <= 0 {
		return nil, fmt.Errorf("item %q: dimensions must be positive", item.Label)
	}
	if item.OnHand < 0 {
		return nil, fmt.Errorf("item %q: quantity cannot be negative", item.Label)
	}
	if existing := inv.FindByLabel(item.Label); existing != nil &&
		existing.Length == item.Length && existing.Width == item.Width &&
		existing.Thickness == item.Thickness {
		existing.OnHand += item.OnHand
		return existing, nil
	}
	inv.Items = append(inv.Items, item)
	return &inv.Items[len(inv.Items)-1], nil
}

// Commit decrements the warehouse by the sheets a result consumed. Either
// every item is decremented or none is.
func Commit(inv *model.Inventory, res model.OptimizationResult) (map[string]int, error) {
	if !res.Success {
		return nil, fmt.Errorf("cannot commit an unsuccessful result: %s", res.Message)
	}
	used := model.Consumption(res)
	for id, n := range used {
		it := inv.FindByID(id)
		if it == nil {
			return nil, fmt.Errorf("warehouse item %s: %w", id, ErrNotFound)
		}
		if it.OnHand < n {
			return nil, fmt.Errorf("%s: need %d, have %d: %w", it.Label, n, it.OnHand, ErrInsufficientStock)
		}
	}
	for id, n := range used {
		inv.FindByID(id).OnHand -= n
	}
	return used, nil
}

// CommitCalculation applies a saved calculation to the warehouse and marks
// it committed so it cannot be applied twice.
func CommitCalculation(inv *model.Inventory, store *CalculationStore, id string) (map[string]int, error) {
	calc, err := store.Get(id)
	if err != nil {
		return nil, err
	}
	if calc.Committed {
		return nil, fmt.Errorf("calculation %s: %w", id, ErrAlreadyCommitted)
	}
	used, err := Commit(inv, calc.Result)
	if err != nil {
		return nil, fmt.Errorf("calculation %s: %w", id, err)
	}
	if err := store.markCommitted(id); err != nil {
		return nil, err
	}
	return used, nil
}

// ImportInventory reads a warehouse file and merges items into existing,
// skipping IDs already present.
func ImportInventory(path string, existing model.Inventory) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, err
	}
	var imported model.Inventory
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, err
	}
	return mergeInventory(existing, imported), nil
}

func mergeInventory(existing, imported model.Inventory) model.Inventory {
	ids := make(map[string]bool, len(existing.Items))
	for _, it := range existing.Items {
		ids[it.ID] = true
	}
	for _, it := range imported.Items {
		if !ids[it.ID] {
			existing.Items = append(existing.Items, it)
			ids[it.ID] = true
		}
	}
	return existing
}
