package engine

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/piwi3910/panelcut/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.CutSettings
}

// ComparisonResult holds the optimization result and computed statistics
// for a single scenario.
type ComparisonResult struct {
	Scenario     ComparisonScenario
	Result       model.OptimizationResult
	SheetsUsed   int
	Placements   int
	WastePercent float64
}

// CompareScenarios runs one independent optimization per scenario, each on
// its own goroutine, and returns the results in scenario order. Inputs are
// shared read-only; every optimization copies what it mutates.
func CompareScenarios(scenarios []ComparisonScenario, stocks []model.StockDefinition, parts []model.PartRequirement, logger *slog.Logger) []ComparisonResult {
	results := make([]ComparisonResult, len(scenarios))

	var wg sync.WaitGroup
	for i, scenario := range scenarios {
		wg.Add(1)
		go func(i int, scenario ComparisonScenario) {
			defer wg.Done()
			var scoped *slog.Logger
			if logger != nil {
				scoped = logger.With("scenario", scenario.Name)
			}
			result := New(scenario.Settings, WithLogger(scoped)).Optimize(stocks, parts)

			waste := 0.0
			if result.Success {
				waste = 100.0 - result.TotalEfficiency()
			}
			results[i] = ComparisonResult{
				Scenario:     scenario,
				Result:       result,
				SheetsUsed:   result.TotalSheets,
				Placements:   result.PlacedCount(),
				WastePercent: waste,
			}
		}(i, scenario)
	}
	wg.Wait()

	return results
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current settings, varying key parameters to show what-if alternatives.
func BuildDefaultScenarios(base model.CutSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{Name: "Current Settings", Settings: base},
	}

	// Other philosophies
	for _, p := range model.Philosophies {
		if p == base.Philosophy || p == model.PhilosophyMixed {
			continue
		}
		alt := base
		alt.Philosophy = p
		scenarios = append(scenarios, ComparisonScenario{
			Name:     p.String(),
			Settings: alt,
		})
	}

	altFit := base
	if base.FitMode == model.FitFirst {
		altFit.FitMode = model.FitBest
		scenarios = append(scenarios, ComparisonScenario{Name: "Best Fit", Settings: altFit})
	} else {
		altFit.FitMode = model.FitFirst
		scenarios = append(scenarios, ComparisonScenario{Name: "First Fit", Settings: altFit})
	}

	altAlgo := base
	if base.Algorithm == model.AlgorithmGenetic {
		altAlgo.Algorithm = model.AlgorithmGreedy
		scenarios = append(scenarios, ComparisonScenario{Name: "Greedy Order", Settings: altAlgo})
	} else {
		altAlgo.Algorithm = model.AlgorithmGenetic
		scenarios = append(scenarios, ComparisonScenario{Name: "Genetic Order Search", Settings: altAlgo})
	}

	// Thinner blade
	if base.KerfWidth > 1.0 {
		half := base
		half.KerfWidth = base.KerfWidth * 0.5
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Kerf %.1fmm (half)", half.KerfWidth),
			Settings: half,
		})
	}

	return scenarios
}
