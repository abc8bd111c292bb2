package model

import (
	"math"
	"strings"
)

// CanPlaceWithGrain reports which orientations of a part are legal on a
// stock sheet. When either side has no grain both orientations are allowed.
// When both are set exactly one orientation is legal: rotation is required
// iff the directions differ.
func CanPlaceWithGrain(partGrain, stockGrain Grain) (canNormal, canRotated bool) {
	if partGrain == GrainNone || stockGrain == GrainNone {
		return true, true
	}
	if partGrain == stockGrain {
		return true, false
	}
	return false, true
}

// IsGrainAligned is the reporting label for a placement. With either grain
// unset alignment is a don't-care and reported as true.
func IsGrainAligned(partGrain, stockGrain Grain, rotated bool) bool {
	if partGrain == GrainNone || stockGrain == GrainNone {
		return true
	}
	return (stockGrain == partGrain && !rotated) || (stockGrain != partGrain && rotated)
}

// MaterialsMatch compares material labels case-insensitively. An empty
// label on either side is universal.
func MaterialsMatch(a, b string) bool {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" {
		return true
	}
	return strings.EqualFold(a, b)
}

// ThicknessMatch reports whether two thicknesses agree within Epsilon.
func ThicknessMatch(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

// Compatible reports whether a part may be cut from a stock row at all,
// ignoring footprint size.
func Compatible(p PartRequirement, s StockDefinition) bool {
	return p.MaterialType == s.MaterialType &&
		MaterialsMatch(p.Material, s.Material) &&
		ThicknessMatch(p.Thickness, s.Thickness)
}
