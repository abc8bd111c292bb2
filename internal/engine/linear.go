package engine

import (
	"github.com/piwi3910/panelcut/internal/model"
)

// packLinear cuts dimensional lumber along its length only. Every footprint
// is (part length, stock width), never rotated and always grain-aligned.
// Kerf separates successive cuts; the last piece may run to the board end.
func (o *Optimizer) packLinear(stock model.StockDefinition, parts []model.PartRequirement, demand []instance, budget *attemptBudget) packOutcome {
	kerf := o.Settings.KerfWidth
	sheet := model.Rect{Width: stock.Length, Height: stock.Width}
	cursor := 0.0
	var out packOutcome

	for _, di := range compatibleDemand(stock, parts, demand) {
		if stock.Length-cursor <= eps {
			break
		}
		if !budget.take() {
			out.outOfTries = true
			break
		}
		inst := demand[di]
		part := parts[inst.ref.Row]
		if !fitsLinear(part, stock, cursor) {
			continue
		}
		if conflicts(sheet, out.placements, cursor, 0, part.Length, stock.Width, kerf) {
			continue
		}

		out.placements = append(out.placements, model.Placement{
			Ref:     inst.ref,
			Name:    part.Name,
			X:       cursor,
			Y:       0,
			Width:   part.Length,
			Height:  stock.Width,
			Aligned: true,
		})
		out.placed = append(out.placed, di)
		out.usedArea += part.Length * stock.Width
		cursor += part.Length + kerf

		o.log.Debug("cut board piece",
			"ref", inst.ref.String(),
			"x", out.placements[len(out.placements)-1].X,
			"remaining", stock.Length-cursor)
	}

	if rest := stock.Length - cursor; rest > eps {
		out.free = []model.Rect{{X: cursor, Y: 0, Width: rest, Height: stock.Width}}
	}
	return out
}

// fitsLinear reports whether a part can start at cursor on a board.
func fitsLinear(part model.PartRequirement, stock model.StockDefinition, cursor float64) bool {
	return part.Width <= stock.Width+eps && cursor+part.Length <= stock.Length+eps
}
