package engine

import (
	"testing"

	"github.com/piwi3910/panelcut/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestCheckFit_MostSpecificReasonWins(t *testing.T) {
	oak := model.NewStock("Oak", 1000, 500, 18, 1)
	oak.Material = "Oak"
	oak.Grain = model.GrainHorizontal
	pine := model.NewStock("Pine", 2000, 1000, 12, 1)
	pine.Material = "Pine"

	tests := []struct {
		name string
		part model.PartRequirement
		want string
	}{
		{"fits", model.PartRequirement{Length: 100, Width: 100, Thickness: 18, Quantity: 1, Material: "oak"}, ""},
		{"material", model.PartRequirement{Length: 100, Width: 100, Thickness: 18, Quantity: 1, Material: "Walnut"}, "wrong material"},
		{"thick", model.PartRequirement{Length: 100, Width: 100, Thickness: 25, Quantity: 1, Material: "Oak"}, "too thin"},
		{"thin", model.PartRequirement{Length: 100, Width: 100, Thickness: 6, Quantity: 1, Material: "Pine"}, "too thick"},
		{"size", model.PartRequirement{Length: 1200, Width: 600, Thickness: 18, Quantity: 1, Material: "Oak"}, "too large to fit"},
		{"grain", model.PartRequirement{Length: 400, Width: 900, Thickness: 18, Quantity: 1, Material: "Oak", Grain: model.GrainHorizontal}, "grain-incompatible"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := checkFit([]model.StockDefinition{oak, pine}, []model.PartRequirement{tt.part}, 0)
			if tt.want == "" {
				assert.True(t, ok, msg)
				return
			}
			assert.False(t, ok)
			assert.Contains(t, msg, tt.want)
			assert.Contains(t, msg, "row 1")
		})
	}
}

func TestCheckFit_KerfCountsTowardsSize(t *testing.T) {
	stocks := []model.StockDefinition{model.NewStock("S", 100, 100, 18, 1)}
	parts := []model.PartRequirement{model.NewPart("Exact", 100, 100, 18, 1)}

	_, ok := checkFit(stocks, parts, 0)
	assert.True(t, ok)

	msg, ok := checkFit(stocks, parts, 3)
	assert.False(t, ok)
	assert.Contains(t, msg, "kerf 3mm included")
}

func TestCheckCapacity_PerClass(t *testing.T) {
	s18 := model.NewStock("18", 1000, 1000, 18, 2)
	s12 := model.NewStock("12", 1000, 1000, 12, 1)

	_, ok := checkCapacity(
		[]model.StockDefinition{s18, s12},
		[]model.PartRequirement{model.NewPart("A", 1000, 1000, 18, 2), model.NewPart("B", 500, 500, 12, 4)},
	)
	assert.True(t, ok)

	msg, ok := checkCapacity(
		[]model.StockDefinition{s18, s12},
		[]model.PartRequirement{model.NewPart("A", 500, 500, 18, 2), model.NewPart("B", 600, 600, 12, 3)},
	)
	assert.False(t, ok)
	assert.Contains(t, msg, "insufficient capacity for 12mm sheet")
	assert.Contains(t, msg, "short 0.080 m²")
}

func TestCheckCapacity_DimensionalUsesLength(t *testing.T) {
	board := model.NewStock("Board", 2400, 90, 45, 2)
	board.MaterialType = model.MaterialDimensional
	p := model.NewPart("Rail", 1000, 90, 45, 5)
	p.MaterialType = model.MaterialDimensional

	msg, ok := checkCapacity([]model.StockDefinition{board}, []model.PartRequirement{p})

	assert.False(t, ok)
	assert.Contains(t, msg, "parts need 5000mm of length")
	assert.Contains(t, msg, "stock provides 4800mm")
}
