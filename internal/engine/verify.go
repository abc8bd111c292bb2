package engine

import (
	"fmt"

	"github.com/piwi3910/panelcut/internal/model"
)

// verifyLayout checks a finished allocation before it is reported as a
// success: every instance placed exactly once, every footprint inside its
// sheet, no kerf-inflated overlap, and grain legality.
func verifyLayout(sheets []model.SheetUsage, parts []model.PartRequirement, kerf float64) error {
	want := 0
	for _, p := range parts {
		want += p.Quantity
	}

	seen := make(map[model.PartRef]string)
	got := 0
	for _, su := range sheets {
		sheet := model.Rect{Width: su.Stock.Length, Height: su.Stock.Width}
		for i, p := range su.Placements {
			got++
			if p.Ref.Row < 0 || p.Ref.Row >= len(parts) {
				return fmt.Errorf("sheet %s: placement %d references unknown row %d", su.SheetID, i, p.Ref.Row)
			}
			if p.Ref.Instance < 0 || p.Ref.Instance >= parts[p.Ref.Row].Quantity {
				return fmt.Errorf("sheet %s: part %s exceeds its row quantity", su.SheetID, p.Ref)
			}
			if prev, dup := seen[p.Ref]; dup {
				return fmt.Errorf("part %s placed twice (sheets %s and %s)", p.Ref, prev, su.SheetID)
			}
			seen[p.Ref] = su.SheetID

			if !contains(sheet, p.Footprint()) {
				return fmt.Errorf("sheet %s: part %s at (%g,%g) lies outside the sheet", su.SheetID, p.Ref, p.X, p.Y)
			}
			if err := checkGrain(p, parts[p.Ref.Row], su.Stock); err != nil {
				return fmt.Errorf("sheet %s: %w", su.SheetID, err)
			}
			for _, q := range su.Placements[i+1:] {
				if overlaps(p.KerfFootprint(kerf), q.KerfFootprint(kerf)) {
					return fmt.Errorf("sheet %s: parts %s and %s overlap", su.SheetID, p.Ref, q.Ref)
				}
			}
		}
	}

	if got != want {
		return fmt.Errorf("placed %d instances, %d requested", got, want)
	}
	return nil
}

func checkGrain(p model.Placement, part model.PartRequirement, stock model.StockDefinition) error {
	if stock.MaterialType == model.MaterialDimensional {
		if p.Rotated {
			return fmt.Errorf("part %s rotated on dimensional stock", p.Ref)
		}
		return nil
	}
	canNormal, canRotated := model.CanPlaceWithGrain(part.Grain, stock.Grain)
	if (p.Rotated && !canRotated) || (!p.Rotated && !canNormal) {
		return fmt.Errorf("part %s placed against the grain (rotated=%t)", p.Ref, p.Rotated)
	}
	return nil
}
