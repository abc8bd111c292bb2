package model

import (
	"fmt"
	"math"
)

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// ValidateStocks rejects any stock row with a non-positive dimension or
// quantity. Rows are reported 1-based.
func ValidateStocks(stocks []StockDefinition) error {
	for i, s := range stocks {
		switch {
		case !positive(s.Length):
			return fmt.Errorf("stock row %d: length must be positive, got %g", i+1, s.Length)
		case !positive(s.Width):
			return fmt.Errorf("stock row %d: width must be positive, got %g", i+1, s.Width)
		case !positive(s.Thickness):
			return fmt.Errorf("stock row %d: thickness must be positive, got %g", i+1, s.Thickness)
		case s.Quantity <= 0:
			return fmt.Errorf("stock row %d: quantity must be positive, got %d", i+1, s.Quantity)
		}
	}
	return nil
}

// ValidateParts rejects any part row with a non-positive dimension or
// quantity. Rows are reported 1-based.
func ValidateParts(parts []PartRequirement) error {
	for i, p := range parts {
		name := p.DisplayName(i)
		switch {
		case !positive(p.Length):
			return fmt.Errorf("part row %d (%s): length must be positive, got %g", i+1, name, p.Length)
		case !positive(p.Width):
			return fmt.Errorf("part row %d (%s): width must be positive, got %g", i+1, name, p.Width)
		case !positive(p.Thickness):
			return fmt.Errorf("part row %d (%s): thickness must be positive, got %g", i+1, name, p.Thickness)
		case p.Quantity <= 0:
			return fmt.Errorf("part row %d (%s): quantity must be positive, got %d", i+1, name, p.Quantity)
		}
	}
	return nil
}

// ValidateKerf rejects negative or non-finite kerf values.
func ValidateKerf(kerf float64) error {
	if kerf < 0 || math.IsInf(kerf, 0) || math.IsNaN(kerf) {
		return fmt.Errorf("kerf must be a finite number >= 0, got %g", kerf)
	}
	return nil
}
