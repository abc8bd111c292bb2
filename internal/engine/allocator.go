package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/piwi3910/panelcut/internal/model"
)

// stockSlot is one caller stock row together with its remaining inventory.
type stockSlot struct {
	index     int // Row in the caller's stock list
	stock     model.StockDefinition
	available int
	dead      bool // A fresh instance placed nothing; it never will for a smaller remainder
}

// orderStock returns slots sorted by sheet area descending. Equal areas keep
// the caller's order.
func orderStock(stocks []model.StockDefinition) []stockSlot {
	slots := make([]stockSlot, len(stocks))
	for i, s := range stocks {
		slots[i] = stockSlot{index: i, stock: s, available: s.Quantity}
	}
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].stock.Area() > slots[j].stock.Area()
	})
	return slots
}

// allocation is the outcome of one multi-sheet allocation run.
type allocation struct {
	sheets     []model.SheetUsage
	unplaced   []instance
	outOfTries bool
}

// complete reports whether every instance was placed.
func (a allocation) complete() bool {
	return len(a.unplaced) == 0 && !a.outOfTries
}

// wasteArea sums the waste of every consumed sheet.
func (a allocation) wasteArea() float64 {
	total := 0.0
	for _, s := range a.sheets {
		total += s.WasteArea
	}
	return total
}

// better reports whether a is a preferable allocation to b: fewer unplaced
// instances, then fewer sheets, then less waste.
func (a allocation) better(b allocation) bool {
	if len(a.unplaced) != len(b.unplaced) {
		return len(a.unplaced) < len(b.unplaced)
	}
	if len(a.sheets) != len(b.sheets) {
		return len(a.sheets) < len(b.sheets)
	}
	return a.wasteArea() < b.wasteArea()-eps
}

// allocate opens sheet instances one at a time, largest stock first, until
// demand is satisfied or no stock row with inventory can place anything.
func (o *Optimizer) allocate(stocks []model.StockDefinition, parts []model.PartRequirement, demand []instance, budget *attemptBudget) allocation {
	slots := orderStock(stocks)
	remaining := append([]instance(nil), demand...)
	var out allocation

	for len(remaining) > 0 && !out.outOfTries {
		committed := false
		for si := range slots {
			slot := &slots[si]
			if slot.available == 0 || slot.dead {
				continue
			}
			if len(compatibleDemand(slot.stock, parts, remaining)) == 0 {
				continue
			}

			res := o.packSheet(slot.stock, parts, remaining, budget)
			if res.outOfTries {
				out.outOfTries = true
			}
			if len(res.placed) == 0 {
				if out.outOfTries {
					break
				}
				slot.dead = true
				o.log.Debug("stock row cannot place remaining demand",
					"stock", slot.index, "remaining", len(remaining))
				continue
			}

			slot.available--
			out.sheets = append(out.sheets, newSheetUsage(slot, res))
			remaining = removePlaced(remaining, res.placed)
			committed = true

			o.log.Debug("opened sheet",
				"stock", slot.index,
				"placed", len(res.placed),
				"remaining", len(remaining),
				"left_in_row", slot.available)
			break
		}
		if !committed {
			break
		}
	}

	out.unplaced = remaining
	if out.complete() && o.Settings.DownsizeSheets {
		o.downsize(slots, parts, out.sheets, budget)
	}
	return out
}

// newSheetUsage records one consumed sheet. Waste below tolerance, including
// the negative residue of parts that overhang within Epsilon, is reported as
// exactly zero.
func newSheetUsage(slot *stockSlot, res packOutcome) model.SheetUsage {
	waste := slot.stock.Area() - res.usedArea
	if waste < eps {
		waste = 0
	}
	return model.SheetUsage{
		StockIndex:  slot.index,
		Stock:       slot.stock,
		Placements:  res.placements,
		UsedArea:    res.usedArea,
		WasteArea:   waste,
		FreeRegions: res.free,
	}
}

// removePlaced drops the instances at the given indexes, keeping order.
func removePlaced(remaining []instance, placed []int) []instance {
	gone := make(map[int]bool, len(placed))
	for _, i := range placed {
		gone[i] = true
	}
	out := make([]instance, 0, len(remaining)-len(placed))
	for i, inst := range remaining {
		if !gone[i] {
			out = append(out, inst)
		}
	}
	return out
}

// downsize re-packs each sheet onto the smallest stock row with inventory
// that still holds all of its instances. A sheet moves only when every
// instance re-packs, so conservation holds.
func (o *Optimizer) downsize(slots []stockSlot, parts []model.PartRequirement, sheets []model.SheetUsage, budget *attemptBudget) {
	for i := range sheets {
		current := sheets[i]
		demand := sheetDemand(current, parts)

		// Slots are area-descending; walk them smallest first.
		for si := len(slots) - 1; si >= 0; si-- {
			if budget.exhausted() {
				return
			}
			slot := &slots[si]
			if slot.available == 0 || slot.stock.Area() >= current.Stock.Area()-eps {
				continue
			}

			res := o.packSheet(slot.stock, parts, demand, budget)
			if res.outOfTries || len(res.placed) != len(demand) {
				continue
			}

			slot.available--
			for k := range slots {
				if slots[k].index == current.StockIndex {
					slots[k].available++
					break
				}
			}
			sheets[i] = newSheetUsage(slot, res)
			o.log.Debug("downsized sheet",
				"from", current.StockIndex, "to", slot.index,
				"saved_area", current.Stock.Area()-slot.stock.Area())
			break
		}
	}
}

// sheetDemand rebuilds the instances seated on one sheet, in demand order.
func sheetDemand(su model.SheetUsage, parts []model.PartRequirement) []instance {
	out := make([]instance, 0, len(su.Placements))
	for _, p := range su.Placements {
		out = append(out, instance{ref: p.Ref, area: parts[p.Ref.Row].Area()})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].area != out[j].area {
			return out[i].area > out[j].area
		}
		if out[i].ref.Row != out[j].ref.Row {
			return out[i].ref.Row < out[j].ref.Row
		}
		return out[i].ref.Instance < out[j].ref.Instance
	})
	return out
}

// labelSheets assigns human-readable IDs: the stock label (or its row
// number) followed by a per-row ordinal.
func labelSheets(sheets []model.SheetUsage) {
	seen := make(map[int]int)
	for i := range sheets {
		idx := sheets[i].StockIndex
		seen[idx]++
		label := strings.TrimSpace(sheets[i].Stock.Label)
		if label == "" {
			label = fmt.Sprintf("Stock%d", idx+1)
		}
		sheets[i].SheetID = fmt.Sprintf("%s-%d", label, seen[idx])
	}
}

// unplacedSummary lists the outstanding instances grouped by part row.
// order maps packer rows back to caller rows for unnamed parts.
func unplacedSummary(unplaced []instance, parts []model.PartRequirement, order []int) string {
	counts := make(map[int]int)
	var rows []int
	for _, inst := range unplaced {
		if counts[inst.ref.Row] == 0 {
			rows = append(rows, inst.ref.Row)
		}
		counts[inst.ref.Row]++
	}
	sort.Ints(rows)
	items := make([]string, 0, len(rows))
	for _, r := range rows {
		items = append(items, fmt.Sprintf("%s x%d", parts[r].DisplayName(order[r]), counts[r]))
	}
	return strings.Join(items, ", ")
}
