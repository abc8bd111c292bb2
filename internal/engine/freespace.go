package engine

import (
	"math"

	"github.com/piwi3910/panelcut/internal/model"
)

// orientation is one legal way to lay a part on a sheet.
type orientation struct {
	w, h    float64 // Footprint along x and y
	rotated bool
	aligned bool
}

// legalOrientations returns the orientations permitted by the grain policy.
// The unrotated orientation comes first. A square part that may go either
// way is offered once, unrotated.
func legalOrientations(part model.PartRequirement, stockGrain model.Grain) []orientation {
	canNormal, canRotated := model.CanPlaceWithGrain(part.Grain, stockGrain)
	square := math.Abs(part.Length-part.Width) <= eps

	var out []orientation
	if canNormal {
		out = append(out, orientation{
			w: part.Length, h: part.Width,
			aligned: model.IsGrainAligned(part.Grain, stockGrain, false),
		})
	}
	if canRotated && !(square && canNormal) {
		out = append(out, orientation{
			w: part.Width, h: part.Length, rotated: true,
			aligned: model.IsGrainAligned(part.Grain, stockGrain, true),
		})
	}
	return out
}

// candidate is an accepting (region, orientation) pair.
type candidate struct {
	region int
	x, y   float64
	o      orientation
	waste  float64
	short  float64 // Smaller leftover side of the region
	score  float64
}

// orientPreference forces one orientation to win over the other whenever
// both are on offer.
type orientPreference int

const (
	orientAny orientPreference = iota
	preferNormal
	preferRotated
)

// packPolicy is one way of choosing among candidates on a sheet.
type packPolicy struct {
	mode      model.FitMode
	orient    orientPreference
	shortSide bool // Rank best-fit candidates by short-side leftover first
}

// scorer ranks candidates according to the policy and weight vector.
type scorer struct {
	policy    packPolicy
	weights   model.Weights
	sheetArea float64
	partGrain model.Grain
}

func (s scorer) score(r model.Rect, o orientation, kerf float64) (waste, short, score float64) {
	dw := math.Max(r.Width-o.w-kerf, 0)
	dh := math.Max(r.Height-o.h-kerf, 0)
	waste = dw * dh
	short = math.Min(dw, dh)

	openEdges := 0.0
	if dw > eps {
		openEdges++
	}
	if dh > eps {
		openEdges++
	}
	rotPenalty := 0.0
	if o.rotated && s.partGrain != model.GrainNone {
		rotPenalty = 1
	}

	yield := 0.0
	if s.sheetArea > 0 {
		yield = waste / s.sheetArea
	}
	score = s.weights.Yield*yield +
		s.weights.CutSimplicity*openEdges/2 +
		s.weights.GrainMatch*rotPenalty
	return waste, short, score
}

// better reports whether a should replace the current best b. Candidates
// arrive in region order, normal orientation first, so keeping the
// incumbent on ties breaks them by region index ascending.
func (s scorer) better(a, b candidate) bool {
	if a.o.aligned != b.o.aligned {
		return a.o.aligned
	}
	if s.policy.orient != orientAny && a.o.rotated != b.o.rotated {
		return a.o.rotated == (s.policy.orient == preferRotated)
	}
	if s.policy.mode == model.FitFirst {
		return false
	}
	if s.policy.shortSide && math.Abs(a.short-b.short) > eps {
		return a.short < b.short
	}
	return a.score < b.score-1e-12
}

// freeSpace is the catalogue of free regions on one sheet instance. It is
// owned by a single packing call and never shared.
type freeSpace struct {
	sheet   model.Rect
	regions []model.Rect
}

func newFreeSpace(length, width float64) *freeSpace {
	sheet := model.Rect{X: 0, Y: 0, Width: length, Height: width}
	return &freeSpace{
		sheet:   sheet,
		regions: []model.Rect{sheet},
	}
}

// accepts reports whether a region can hold a footprint plus kerf clearance.
func accepts(r model.Rect, w, h, kerf float64) bool {
	return w+kerf <= r.Width+eps && h+kerf <= r.Height+eps
}

// search scans every region for every legal orientation and returns the
// best candidate that also passes the placement self-check.
func (fs *freeSpace) search(orients []orientation, kerf float64, sc scorer, placed []model.Placement) (candidate, bool) {
	var best candidate
	found := false

	for i, r := range fs.regions {
		for _, o := range orients {
			if !accepts(r, o.w, o.h, kerf) {
				continue
			}
			c := candidate{region: i, x: r.X, y: r.Y, o: o}
			c.waste, c.short, c.score = sc.score(r, o, kerf)

			if found && !sc.better(c, best) {
				continue
			}
			if conflicts(fs.sheet, placed, c.x, c.y, o.w, o.h, kerf) {
				continue
			}
			best = c
			found = true
		}
	}
	return best, found
}

// place removes a kerf-inflated footprint from every region it touches and
// prunes regions contained in others.
func (fs *freeSpace) place(x, y, w, h, kerf float64) {
	cut := model.Rect{X: x, Y: y, Width: w + kerf, Height: h + kerf}
	next := make([]model.Rect, 0, len(fs.regions)+3)
	for _, r := range fs.regions {
		if !overlaps(r, cut) {
			next = append(next, r)
			continue
		}
		next = append(next, splitAfterPlacement(r, w, h, x, y, kerf)...)
	}
	fs.regions = pruneContained(next)
}

// snapshot returns a copy of the current regions.
func (fs *freeSpace) snapshot() []model.Rect {
	out := make([]model.Rect, len(fs.regions))
	copy(out, fs.regions)
	return out
}

// conflicts re-validates a footprint against the sheet boundary and every
// existing placement: same position, or overlapping kerf-inflated boxes.
func conflicts(sheet model.Rect, placed []model.Placement, x, y, w, h, kerf float64) bool {
	if x < sheet.X-eps || y < sheet.Y-eps ||
		x+w > sheet.Right()+eps || y+h > sheet.Bottom()+eps {
		return true
	}
	fp := model.Rect{X: x, Y: y, Width: w + kerf, Height: h + kerf}
	for _, p := range placed {
		if math.Abs(p.X-x) <= eps && math.Abs(p.Y-y) <= eps {
			return true
		}
		if overlaps(p.KerfFootprint(kerf), fp) {
			return true
		}
	}
	return false
}
