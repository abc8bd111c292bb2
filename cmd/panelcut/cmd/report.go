package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/piwi3910/panelcut/internal/engine"
	"github.com/piwi3910/panelcut/internal/model"
	"github.com/piwi3910/panelcut/internal/project"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func describeSettings(s model.CutSettings) string {
	return fmt.Sprintf("kerf %.1f mm | fit %s | philosophy %s | algorithm %s",
		s.KerfWidth, s.FitMode, s.Philosophy, s.Algorithm)
}

// printResult writes the human readable layout.
func printResult(w io.Writer, res model.OptimizationResult, stocks []model.StockDefinition, settings model.CutSettings) {
	if !res.Success {
		fmt.Fprintf(w, "Optimization failed (%s): %s\n", res.Failure, res.Message)
		return
	}

	fmt.Fprintf(w, "Sheets used: %d | Parts placed: %d | Efficiency: %.1f%% | Waste: %.3f m²\n",
		res.TotalSheets, res.PlacedCount(), res.TotalEfficiency(), res.TotalWaste/1e6)
	fmt.Fprintf(w, "%s\n", describeSettings(settings))

	for _, su := range res.Sheets {
		fmt.Fprintf(w, "\nSheet %s (%.0f x %.0f x %.0f mm", su.SheetID, su.Stock.Length, su.Stock.Width, su.Stock.Thickness)
		if su.Stock.Material != "" {
			fmt.Fprintf(w, ", %s", su.Stock.Material)
		}
		fmt.Fprintf(w, ") efficiency %.1f%%\n", su.Efficiency())
		fmt.Fprintf(w, "  %-8s %-24s %9s %9s %9s %9s  %s\n", "Ref", "Part", "X", "Y", "Length", "Width", "Rot")
		for _, p := range su.Placements {
			rot := ""
			if p.Rotated {
				rot = "R"
			}
			fmt.Fprintf(w, "  %-8s %-24s %9.1f %9.1f %9.1f %9.1f  %s\n",
				p.Ref, clip(p.Name, 24), p.X, p.Y, p.Width, p.Height, rot)
		}
	}

	counts := res.SheetsByStock()
	idx := make([]int, 0, len(counts))
	for i := range counts {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	fmt.Fprintf(w, "\nStock usage:\n")
	for _, i := range idx {
		label := fmt.Sprintf("stock row %d", i+1)
		available := 0
		if i < len(stocks) {
			label = stocks[i].Label
			available = stocks[i].Quantity
		}
		fmt.Fprintf(w, "  %-32s %d of %d\n", clip(label, 32), counts[i], available)
	}
}

func printOffcuts(w io.Writer, offcuts []model.Offcut) {
	if len(offcuts) == 0 {
		fmt.Fprintln(w, "\nNo reusable offcuts.")
		return
	}
	fmt.Fprintf(w, "\nReusable offcuts (%d, %.3f m²):\n", len(offcuts), model.TotalOffcutArea(offcuts)/1e6)
	for _, o := range offcuts {
		fmt.Fprintf(w, "  %-24s %7.0f x %-7.0f at (%.0f, %.0f)\n", o.SheetID, o.Rect.Width, o.Rect.Height, o.Rect.X, o.Rect.Y)
	}
}

func printComparison(w io.Writer, results []engine.ComparisonResult) {
	fmt.Fprintf(w, "%-28s %7s %7s %8s  %s\n", "Scenario", "Sheets", "Parts", "Waste", "Status")
	for _, r := range results {
		status := "ok"
		if !r.Result.Success {
			status = r.Result.Failure.String()
		}
		fmt.Fprintf(w, "%-28s %7d %7d %7.1f%%  %s\n",
			clip(r.Scenario.Name, 28), r.SheetsUsed, r.Placements, r.WastePercent, status)
	}
}

func printCalculations(w io.Writer, calcs []project.SavedCalculation) {
	if len(calcs) == 0 {
		fmt.Fprintln(w, "No saved calculations.")
		return
	}
	fmt.Fprintf(w, "%-10s %-24s %-17s %7s %8s  %s\n", "ID", "Name", "Created", "Sheets", "Status", "Committed")
	for _, c := range calcs {
		status := "ok"
		if !c.Result.Success {
			status = "failed"
		}
		fmt.Fprintf(w, "%-10s %-24s %-17s %7d %8s  %t\n",
			c.ID, clip(c.Name, 24), c.CreatedAt.Local().Format("2006-01-02 15:04"), c.Result.TotalSheets, status, c.Committed)
	}
}

func printInventory(w io.Writer, inv model.Inventory) {
	if len(inv.Items) == 0 {
		fmt.Fprintln(w, "The warehouse is empty.")
		return
	}
	fmt.Fprintf(w, "%-10s %-32s %20s %-10s %-11s %7s\n", "ID", "Label", "Size (mm)", "Material", "Type", "OnHand")
	for _, it := range inv.Items {
		size := fmt.Sprintf("%.0fx%.0fx%.0f", it.Length, it.Width, it.Thickness)
		fmt.Fprintf(w, "%-10s %-32s %20s %-10s %-11s %7d\n",
			it.ID, clip(it.Label, 32), size, clip(it.Material, 10), it.MaterialType, it.OnHand)
	}
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
