package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/piwi3910/panelcut/internal/model"
)

// ErrNotFound is returned when a calculation or warehouse item does not exist.
var ErrNotFound = errors.New("not found")

// SavedCalculation is a named optimization run stored verbatim: the inputs,
// the settings and the resulting layout.
type SavedCalculation struct {
	ID        string                   `json:"id"`
	Name      string                   `json:"name"`
	CreatedAt time.Time                `json:"created_at"`
	Stocks    []model.StockDefinition  `json:"stocks"`
	Parts     []model.PartRequirement  `json:"parts"`
	Settings  model.CutSettings        `json:"settings"`
	Result    model.OptimizationResult `json:"result"`
	Committed bool                     `json:"committed"` // Warehouse already decremented
}

// CalculationStore holds every saved calculation.
type CalculationStore struct {
	Calculations []SavedCalculation `json:"calculations"`
}

func NewCalculationStore() CalculationStore {
	return CalculationStore{Calculations: []SavedCalculation{}}
}

// DefaultCalculationsPath returns the calculations file inside a data directory.
func DefaultCalculationsPath(dataDir string) string {
	return filepath.Join(dataDir, "calculations.json")
}

// SaveCalculations writes the calculation store to a JSON file.
func SaveCalculations(path string, store CalculationStore) error {
	return writeJSON(path, store)
}

// LoadCalculations reads a calculation store from a JSON file.
// If the file does not exist, returns an empty store.
func LoadCalculations(path string) (CalculationStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewCalculationStore(), nil
		}
		return CalculationStore{}, err
	}
	var store CalculationStore
	if err := json.Unmarshal(data, &store); err != nil {
		return CalculationStore{}, err
	}
	if store.Calculations == nil {
		store.Calculations = []SavedCalculation{}
	}
	return store, nil
}

// Add stores a new calculation and returns it with its generated ID.
// Input slices are copied so later edits by the caller do not leak in.
func (s *CalculationStore) Add(name string, stocks []model.StockDefinition, parts []model.PartRequirement, settings model.CutSettings, result model.OptimizationResult) SavedCalculation {
	if name == "" {
		name = "Untitled"
	}
	calc := SavedCalculation{
		ID:        uuid.New().String()[:8],
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Stocks:    append([]model.StockDefinition(nil), stocks...),
		Parts:     append([]model.PartRequirement(nil), parts...),
		Settings:  settings,
		Result:    result,
	}
	s.Calculations = append(s.Calculations, calc)
	return calc
}

func (s *CalculationStore) index(id string) int {
	for i := range s.Calculations {
		if s.Calculations[i].ID == id {
			return i
		}
	}
	return -1
}

// Get returns the calculation with the given ID.
func (s *CalculationStore) Get(id string) (SavedCalculation, error) {
	i := s.index(id)
	if i < 0 {
		return SavedCalculation{}, fmt.Errorf("calculation %s: %w", id, ErrNotFound)
	}
	return s.Calculations[i], nil
}

// List returns all calculations, newest first.
func (s *CalculationStore) List() []SavedCalculation {
	out := append([]SavedCalculation(nil), s.Calculations...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Delete removes one calculation.
func (s *CalculationStore) Delete(id string) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("calculation %s: %w", id, ErrNotFound)
	}
	s.Calculations = append(s.Calculations[:i], s.Calculations[i+1:]...)
	return nil
}

// DeleteAll removes every calculation and returns how many were dropped.
func (s *CalculationStore) DeleteAll() int {
	n := len(s.Calculations)
	s.Calculations = []SavedCalculation{}
	return n
}

// markCommitted flags a calculation once its sheets left the warehouse.
func (s *CalculationStore) markCommitted(id string) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("calculation %s: %w", id, ErrNotFound)
	}
	s.Calculations[i].Committed = true
	return nil
}
