package model

import (
	"sort"

	"github.com/google/uuid"
)

// Offcut represents a usable rectangular remnant left over after cutting.
type Offcut struct {
	ID         string          `json:"id"`
	SheetID    string          `json:"sheet_id"`    // Which sheet it came from
	SheetIndex int             `json:"sheet_index"` // Index of the source sheet in the result
	Rect       Rect            `json:"rect"`        // Position and size on the sheet (mm)
	Source     StockDefinition `json:"source"`      // Stock the sheet was drawn from
}

// Area returns the area of the offcut in square mm.
func (o Offcut) Area() float64 {
	return o.Rect.Area()
}

// ToStock converts an offcut into a single stock row for reuse. Material,
// thickness and grain carry over from the source sheet.
func (o Offcut) ToStock() StockDefinition {
	s := NewStock("Offcut "+o.SheetID, o.Rect.Width, o.Rect.Height, o.Source.Thickness, 1)
	s.Material = o.Source.Material
	s.MaterialType = o.Source.MaterialType
	s.Grain = o.Source.Grain
	return s
}

// MinOffcutDimension is the minimum width or height (in mm) for a remnant
// to be considered a usable offcut. Remnants smaller than this are waste.
const MinOffcutDimension = 50.0

// MinOffcutArea is the minimum area (in sq mm) for a remnant to be considered usable.
const MinOffcutArea = 10000.0 // 100mm x 100mm equivalent

// DetectOffcuts picks usable remnants from a sheet's residual free regions.
// Free regions may overlap, so the largest are taken first and any region
// overlapping one already taken is skipped.
func DetectOffcuts(su SheetUsage, sheetIndex int) []Offcut {
	candidates := make([]Rect, 0, len(su.FreeRegions))
	for _, r := range su.FreeRegions {
		if r.Width >= MinOffcutDimension && r.Height >= MinOffcutDimension && r.Area() >= MinOffcutArea {
			candidates = append(candidates, r)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Area() > candidates[j].Area()
	})

	var offcuts []Offcut
	for _, r := range candidates {
		clash := false
		for _, o := range offcuts {
			if r.Overlaps(o.Rect) {
				clash = true
				break
			}
		}
		if clash {
			continue
		}
		offcuts = append(offcuts, Offcut{
			ID:         uuid.New().String()[:8],
			SheetID:    su.SheetID,
			SheetIndex: sheetIndex,
			Rect:       r,
			Source:     su.Stock,
		})
	}
	return offcuts
}

// DetectAllOffcuts finds offcuts across all sheets in an optimization result.
func DetectAllOffcuts(result OptimizationResult) []Offcut {
	var all []Offcut
	for i, sheet := range result.Sheets {
		all = append(all, DetectOffcuts(sheet, i)...)
	}
	return all
}

// TotalOffcutArea returns the total area of all offcuts in square mm.
func TotalOffcutArea(offcuts []Offcut) float64 {
	var total float64
	for _, o := range offcuts {
		total += o.Area()
	}
	return total
}
