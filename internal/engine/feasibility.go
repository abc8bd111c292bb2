package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/piwi3910/panelcut/internal/model"
)

// fitStage records how far a part got when matched against one stock row.
// Higher stages are more specific reasons.
type fitStage int

const (
	stageNoStock   fitStage = iota
	stageMaterial           // Material or material type differs
	stageThickness          // Material matches, thickness does not
	stageSize               // Compatible but too large in every orientation
	stageGrain              // Fits only in an orientation the grain forbids
	stageFits
)

// fitsSheet reports whether a part fits a stock footprint in a legal
// orientation, and whether it would fit in any orientation at all.
func fitsSheet(part model.PartRequirement, stock model.StockDefinition, kerf float64) (legal, anyFit bool) {
	if stock.MaterialType == model.MaterialDimensional {
		ok := fitsLinear(part, stock, 0)
		return ok, ok
	}
	fits := func(w, h float64) bool {
		return w+kerf <= stock.Length+eps && h+kerf <= stock.Width+eps
	}
	normal := fits(part.Length, part.Width)
	rotated := fits(part.Width, part.Length)
	canNormal, canRotated := model.CanPlaceWithGrain(part.Grain, stock.Grain)
	legal = (canNormal && normal) || (canRotated && rotated)
	return legal, normal || rotated
}

func matchStage(part model.PartRequirement, stock model.StockDefinition, kerf float64) fitStage {
	if part.MaterialType != stock.MaterialType || !model.MaterialsMatch(part.Material, stock.Material) {
		return stageMaterial
	}
	if !model.ThicknessMatch(part.Thickness, stock.Thickness) {
		return stageThickness
	}
	legal, anyFit := fitsSheet(part, stock, kerf)
	switch {
	case legal:
		return stageFits
	case anyFit:
		return stageGrain
	default:
		return stageSize
	}
}

// checkFit verifies that every part row fits at least one stock row. The
// message for a failing part names the most specific reason found.
func checkFit(stocks []model.StockDefinition, parts []model.PartRequirement, kerf float64) (string, bool) {
	if len(stocks) == 0 {
		return "no suitable stock: the stock list is empty", false
	}
	for row, part := range parts {
		best := stageNoStock
		for _, s := range stocks {
			if st := matchStage(part, s, kerf); st > best {
				best = st
			}
			if best == stageFits {
				break
			}
		}
		if best == stageFits {
			continue
		}
		return fitMessage(row, part, stocks, best, kerf), false
	}
	return "", true
}

func fitMessage(row int, part model.PartRequirement, stocks []model.StockDefinition, stage fitStage, kerf float64) string {
	name := fmt.Sprintf("part %q (row %d, %gx%gx%gmm)", part.DisplayName(row), row+1, part.Length, part.Width, part.Thickness)
	switch stage {
	case stageMaterial:
		mat := part.Material
		if mat == "" {
			mat = "any material"
		}
		return fmt.Sprintf("%s: wrong material, no %s stock of %s", name, strings.ToLower(part.MaterialType.String()), mat)
	case stageThickness:
		return fmt.Sprintf("%s: wrong thickness, %s", name, describeThickness(part, stocks))
	case stageGrain:
		return fmt.Sprintf("%s: grain-incompatible, it only fits compatible stock rotated against the %s grain", name, strings.ToLower(part.Grain.String()))
	default:
		if kerf > 0 {
			return fmt.Sprintf("%s is too large to fit any compatible stock (kerf %gmm included)", name, kerf)
		}
		return fmt.Sprintf("%s is too large to fit any compatible stock", name)
	}
}

// describeThickness tells whether the available stock is too thin or too
// thick for the part.
func describeThickness(part model.PartRequirement, stocks []model.StockDefinition) string {
	var thinner, thicker []float64
	for _, s := range stocks {
		if s.MaterialType != part.MaterialType || !model.MaterialsMatch(part.Material, s.Material) {
			continue
		}
		if s.Thickness < part.Thickness {
			thinner = append(thinner, s.Thickness)
		} else {
			thicker = append(thicker, s.Thickness)
		}
	}
	switch {
	case len(thicker) == 0:
		return fmt.Sprintf("stock is too thin (available %s)", joinThickness(thinner))
	case len(thinner) == 0:
		return fmt.Sprintf("stock is too thick (available %s)", joinThickness(thicker))
	default:
		return fmt.Sprintf("no stock of %gmm (available %s)", part.Thickness, joinThickness(append(thinner, thicker...)))
	}
}

func joinThickness(vals []float64) string {
	sort.Float64s(vals)
	seen := make(map[float64]bool)
	var out []string
	for _, v := range vals {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, fmt.Sprintf("%gmm", v))
	}
	return strings.Join(out, ", ")
}

// capacityClass groups parts that compete for the same stock.
type capacityClass struct {
	prototype model.PartRequirement
	required  float64
}

func classKey(p model.PartRequirement) string {
	return fmt.Sprintf("%s|%d|%.2f", strings.ToLower(strings.TrimSpace(p.Material)), p.MaterialType, p.Thickness)
}

// capacityOf returns the area (sheet) or length (dimensional) one unit
// contributes to capacity accounting.
func capacityOf(p model.PartRequirement) float64 {
	if p.MaterialType == model.MaterialDimensional {
		return p.Length
	}
	return p.Area()
}

func stockCapacity(s model.StockDefinition) float64 {
	if s.MaterialType == model.MaterialDimensional {
		return s.Length * float64(s.Quantity)
	}
	return s.Area() * float64(s.Quantity)
}

// checkCapacity compares total required area per compatibility class with
// the total compatible stock area. It is a necessary condition only.
func checkCapacity(stocks []model.StockDefinition, parts []model.PartRequirement) (string, bool) {
	classes := make(map[string]*capacityClass)
	var order []string
	for _, p := range parts {
		key := classKey(p)
		c, ok := classes[key]
		if !ok {
			c = &capacityClass{prototype: p}
			classes[key] = c
			order = append(order, key)
		}
		c.required += capacityOf(p) * float64(p.Quantity)
	}

	for _, key := range order {
		c := classes[key]
		available := 0.0
		for _, s := range stocks {
			if model.Compatible(c.prototype, s) {
				available += stockCapacity(s)
			}
		}
		if c.required <= available+eps {
			continue
		}
		return capacityMessage(c, available), false
	}
	return "", true
}

func capacityMessage(c *capacityClass, available float64) string {
	p := c.prototype
	mat := p.Material
	if mat == "" {
		mat = "any material"
	}
	label := fmt.Sprintf("%gmm %s %s", p.Thickness, strings.ToLower(p.MaterialType.String()), mat)
	short := c.required - available
	if p.MaterialType == model.MaterialDimensional {
		return fmt.Sprintf("insufficient capacity for %s: parts need %.0fmm of length, stock provides %.0fmm (short %.0fmm)",
			label, c.required, available, short)
	}
	return fmt.Sprintf("insufficient capacity for %s: parts need %.3f m², stock provides %.3f m² (short %.3f m²)",
		label, c.required/1e6, available/1e6, short/1e6)
}
