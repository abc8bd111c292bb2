package engine

import (
	"testing"

	"github.com/piwi3910/panelcut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDefaultScenarios(t *testing.T) {
	base := model.DefaultSettings()
	base.KerfWidth = 3.2

	scenarios := BuildDefaultScenarios(base)

	names := make([]string, len(scenarios))
	for i, s := range scenarios {
		names[i] = s.Name
	}
	assert.Equal(t, []string{
		"Current Settings",
		"Minimize Cuts",
		"Grain Priority",
		"First Fit",
		"Genetic Order Search",
		"Kerf 1.6mm (half)",
	}, names)
	assert.Equal(t, base, scenarios[0].Settings)
	assert.Equal(t, model.FitFirst, scenarios[3].Settings.FitMode)
	assert.InDelta(t, 1.6, scenarios[5].Settings.KerfWidth, 1e-9)
}

func TestBuildDefaultScenarios_NoKerfSkipsHalfKerf(t *testing.T) {
	base := model.DefaultSettings()
	base.FitMode = model.FitFirst

	scenarios := BuildDefaultScenarios(base)

	for _, s := range scenarios {
		assert.NotContains(t, s.Name, "Kerf")
	}
	assert.Equal(t, "Best Fit", scenarios[3].Name)
}

func TestCompareScenarios_ResultsInScenarioOrder(t *testing.T) {
	stocks := []model.StockDefinition{sheet("Sheet", 1220, 610, 4)}
	parts := []model.PartRequirement{part("A", 400, 300, 4), part("B", 200, 150, 6)}
	base := defaultTestSettings()
	base.KerfWidth = 3
	scenarios := BuildDefaultScenarios(base)

	results := CompareScenarios(scenarios, stocks, parts, nil)

	require.Len(t, results, len(scenarios))
	for i, r := range results {
		assert.Equal(t, scenarios[i].Name, r.Scenario.Name)
		assertValidLayout(t, r.Result, parts)
		assert.Equal(t, 10, r.Placements)
		assert.Equal(t, r.Result.TotalSheets, r.SheetsUsed)
		assert.GreaterOrEqual(t, r.WastePercent, 0.0)
	}
}

func TestCompareScenarios_FailureHasNoWaste(t *testing.T) {
	stocks := []model.StockDefinition{sheet("Small", 100, 100, 1)}
	parts := []model.PartRequirement{part("Big", 200, 200, 1)}

	results := CompareScenarios([]ComparisonScenario{{Name: "only", Settings: defaultTestSettings()}}, stocks, parts, nil)

	require.Len(t, results, 1)
	assert.False(t, results[0].Result.Success)
	assert.Equal(t, 0.0, results[0].WastePercent)
	assert.Equal(t, 0, results[0].SheetsUsed)
}
