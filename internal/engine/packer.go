package engine

import (
	"log/slog"

	"github.com/piwi3910/panelcut/internal/model"
)

// instance is one expanded unit of demand. Refs are assigned once, at
// expansion time, before any placement attempt.
type instance struct {
	ref  model.PartRef
	area float64
}

// expandDemand turns part rows into individual instances. Rows are expected
// in packer order (area descending), so the result is sorted by area with
// ties broken by row index.
func expandDemand(parts []model.PartRequirement) []instance {
	total := 0
	for _, p := range parts {
		total += p.Quantity
	}
	out := make([]instance, 0, total)
	for row, p := range parts {
		for i := 0; i < p.Quantity; i++ {
			out = append(out, instance{
				ref:  model.PartRef{Row: row, Instance: i},
				area: p.Area(),
			})
		}
	}
	return out
}

// attemptBudget caps total placement attempts for one optimization call.
type attemptBudget struct {
	limit     int
	remaining int
}

func newAttemptBudget(limit int) *attemptBudget {
	return &attemptBudget{limit: limit, remaining: limit}
}

func (b *attemptBudget) take() bool {
	if b.remaining <= 0 {
		return false
	}
	b.remaining--
	return true
}

func (b *attemptBudget) exhausted() bool {
	return b.remaining <= 0
}

// packOutcome is what one sheet instance yields.
type packOutcome struct {
	placements []model.Placement
	placed     []int // Indexes into the demand slice handed to the packer
	free       []model.Rect
	usedArea   float64
	outOfTries bool
}

// sheetPacker greedily fills one sheet instance under one policy.
type sheetPacker struct {
	stock      model.StockDefinition
	parts      []model.PartRequirement
	kerf       float64
	policy     packPolicy
	weights    model.Weights
	space      *freeSpace
	placements []model.Placement
	log        *slog.Logger
}

func (o *Optimizer) newSheetPacker(stock model.StockDefinition, parts []model.PartRequirement, policy packPolicy) *sheetPacker {
	return &sheetPacker{
		stock:   stock,
		parts:   parts,
		kerf:    o.Settings.KerfWidth,
		policy:  policy,
		weights: o.Settings.EffectiveWeights(),
		space:   newFreeSpace(stock.Length, stock.Width),
		log:     o.log,
	}
}

// tryPlace seats one instance, returning false when no region accepts it.
func (sp *sheetPacker) tryPlace(inst instance) bool {
	part := sp.parts[inst.ref.Row]
	orients := legalOrientations(part, sp.stock.Grain)
	if len(orients) == 0 {
		return false
	}

	sc := scorer{
		policy:    sp.policy,
		weights:   sp.weights,
		sheetArea: sp.stock.Area(),
		partGrain: part.Grain,
	}
	c, ok := sp.space.search(orients, sp.kerf, sc, sp.placements)
	if !ok {
		return false
	}

	sp.placements = append(sp.placements, model.Placement{
		Ref:     inst.ref,
		Name:    part.Name,
		X:       c.x,
		Y:       c.y,
		Width:   c.o.w,
		Height:  c.o.h,
		Rotated: c.o.rotated,
		Aligned: c.o.aligned,
	})
	sp.space.place(c.x, c.y, c.o.w, c.o.h, sp.kerf)

	sp.log.Debug("placed part",
		"ref", inst.ref.String(),
		"x", c.x, "y", c.y,
		"rotated", c.o.rotated,
		"region", c.region,
		"waste", c.waste,
		"free_regions", len(sp.space.regions))
	return true
}

// packPolicies lists the configured policy first, then the alternates
// packSheet falls back to when it leaves demand behind. Mixing
// orientations can fragment a sheet that one orientation tiles exactly.
func (o *Optimizer) packPolicies() []packPolicy {
	primary := packPolicy{mode: o.Settings.FitMode}
	policies := []packPolicy{primary}
	for _, p := range []packPolicy{
		{mode: model.FitBest, orient: preferNormal},
		{mode: model.FitBest, orient: preferRotated},
		{mode: model.FitFirst},
		{mode: model.FitBest, shortSide: true},
	} {
		if p != primary {
			policies = append(policies, p)
		}
	}
	return policies
}

// packSheet places as much of demand as possible onto one fresh instance of
// stock. Only instances compatible with the stock are attempted. When the
// configured policy leaves compatible demand unplaced, the alternates run
// on the same sheet and the run placing the most area wins; ties keep the
// earlier run. An alternate cut short by the budget is discarded.
func (o *Optimizer) packSheet(stock model.StockDefinition, parts []model.PartRequirement, demand []instance, budget *attemptBudget) packOutcome {
	if stock.MaterialType == model.MaterialDimensional {
		return o.packLinear(stock, parts, demand, budget)
	}

	pending := compatibleDemand(stock, parts, demand)
	var best packOutcome
	for i, policy := range o.packPolicies() {
		res := o.packWith(policy, stock, parts, demand, pending, budget)
		switch {
		case i == 0:
			best = res
		case !res.outOfTries && res.usedArea > best.usedArea+eps:
			o.log.Debug("alternate policy packed more",
				"policy", i, "placed", len(res.placed), "was", len(best.placed))
			best = res
		}
		if best.outOfTries || len(best.placed) == 0 || len(best.placed) == len(pending) || budget.exhausted() {
			break
		}
	}
	return best
}

// packWith runs one policy over the pending demand indexes. Passes repeat
// until a pass places nothing.
func (o *Optimizer) packWith(policy packPolicy, stock model.StockDefinition, parts []model.PartRequirement, demand []instance, pending []int, budget *attemptBudget) packOutcome {
	sp := o.newSheetPacker(stock, parts, policy)
	var out packOutcome

	for len(pending) > 0 {
		progress := false
		next := make([]int, 0, len(pending))
		for k, di := range pending {
			if !budget.take() {
				out.outOfTries = true
				next = append(next, pending[k:]...)
				break
			}
			if sp.tryPlace(demand[di]) {
				out.placed = append(out.placed, di)
				progress = true
			} else {
				next = append(next, di)
			}
		}
		pending = next
		if !progress || out.outOfTries {
			break
		}
	}

	out.placements = sp.placements
	out.free = sp.space.snapshot()
	for _, p := range sp.placements {
		out.usedArea += p.Width * p.Height
	}
	return out
}

// compatibleDemand returns the demand indexes a stock row may serve.
func compatibleDemand(stock model.StockDefinition, parts []model.PartRequirement, demand []instance) []int {
	out := make([]int, 0, len(demand))
	for i, inst := range demand {
		if model.Compatible(parts[inst.ref.Row], stock) {
			out = append(out, i)
		}
	}
	return out
}
