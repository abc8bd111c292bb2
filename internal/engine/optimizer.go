package engine

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/piwi3910/panelcut/internal/model"
)

// Optimizer runs the cutting-stock allocation. An Optimizer holds no state
// between calls and may be shared by goroutines.
type Optimizer struct {
	Settings model.CutSettings
	log      *slog.Logger
}

// New creates an Optimizer for the given settings. Without options it logs
// nothing.
func New(settings model.CutSettings, opts ...Option) *Optimizer {
	o := &Optimizer{Settings: settings, log: newNopLogger()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Optimize places every requested part instance onto stock, or explains why
// it cannot. Inputs are copied and never modified. The result carries the
// parts in packer order; PartOrder maps them back to the caller's rows.
func (o *Optimizer) Optimize(stocks []model.StockDefinition, parts []model.PartRequirement) model.OptimizationResult {
	kerf := o.Settings.KerfWidth
	if err := model.ValidateKerf(kerf); err != nil {
		return model.Failed(model.FailureInputInvalid, err.Error())
	}
	if err := model.ValidateStocks(stocks); err != nil {
		return model.Failed(model.FailureInputInvalid, err.Error())
	}
	if err := model.ValidateParts(parts); err != nil {
		return model.Failed(model.FailureInputInvalid, err.Error())
	}

	stocks = append([]model.StockDefinition(nil), stocks...)
	parts = append([]model.PartRequirement(nil), parts...)

	if len(parts) == 0 {
		return model.OptimizationResult{Success: true, Kerf: kerf}
	}
	if msg, ok := checkFit(stocks, parts, kerf); !ok {
		o.log.Info("fit check failed", "reason", msg)
		return model.Failed(model.FailureFit, msg)
	}
	if msg, ok := checkCapacity(stocks, parts); !ok {
		o.log.Info("capacity check failed", "reason", msg)
		return model.Failed(model.FailureCapacity, msg)
	}

	sorted, order := sortByArea(parts)
	demand := expandDemand(sorted)
	budget := newAttemptBudget(o.Settings.AttemptBudget())

	var alloc allocation
	if o.Settings.Algorithm == model.AlgorithmGenetic {
		alloc = o.searchOrder(stocks, sorted, demand, budget)
	} else {
		alloc = o.allocate(stocks, sorted, demand, budget)
	}

	o.log.Info("allocation finished",
		"sheets", len(alloc.sheets),
		"unplaced", len(alloc.unplaced),
		"attempts", budget.limit-budget.remaining)

	if !alloc.complete() {
		return exhaustedResult(alloc, sorted, order, budget)
	}

	labelSheets(alloc.sheets)
	if err := verifyLayout(alloc.sheets, sorted, kerf); err != nil {
		o.log.Error("layout self-check failed", "err", err)
		return model.Failed(model.FailureExhausted, fmt.Sprintf("layout self-check failed: %v", err))
	}

	res := model.OptimizationResult{
		Success:     true,
		Sheets:      alloc.sheets,
		TotalSheets: len(alloc.sheets),
		TotalWaste:  alloc.wasteArea(),
		Parts:       sorted,
		PartOrder:   order,
		Kerf:        kerf,
	}
	return res
}

func exhaustedResult(alloc allocation, parts []model.PartRequirement, order []int, budget *attemptBudget) model.OptimizationResult {
	unplaced := alloc.unplaced
	if len(unplaced) == 0 {
		return model.Failed(model.FailureExhausted,
			fmt.Sprintf("placement attempt budget of %d exhausted", budget.limit))
	}
	summary := unplacedSummary(unplaced, parts, order)
	if alloc.outOfTries {
		return model.Failed(model.FailureExhausted,
			fmt.Sprintf("placement attempt budget of %d exhausted: %d instance(s) unplaced: %s",
				budget.limit, len(unplaced), summary))
	}
	return model.Failed(model.FailureExhausted,
		fmt.Sprintf("Not enough suitable sheet material: %d instance(s) unplaced: %s", len(unplaced), summary))
}

// sortByArea returns the parts ordered by area descending (stable on caller
// order) and the caller row of each sorted row.
func sortByArea(parts []model.PartRequirement) ([]model.PartRequirement, []int) {
	order := make([]int, len(parts))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return parts[order[i]].Area() > parts[order[j]].Area()
	})
	sorted := make([]model.PartRequirement, len(parts))
	for i, row := range order {
		sorted[i] = parts[row]
	}
	return sorted, order
}
