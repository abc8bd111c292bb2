package engine

import (
	"testing"

	"github.com/piwi3910/panelcut/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	a := model.Rect{X: 0, Y: 0, Width: 10, Height: 10}

	assert.True(t, overlaps(a, model.Rect{X: 5, Y: 5, Width: 10, Height: 10}))
	assert.True(t, overlaps(a, model.Rect{X: 2, Y: 2, Width: 2, Height: 2}), "contained")
	assert.False(t, overlaps(a, model.Rect{X: 10, Y: 0, Width: 5, Height: 5}), "touching right edge")
	assert.False(t, overlaps(a, model.Rect{X: 0, Y: 10, Width: 5, Height: 5}), "touching bottom edge")
	assert.False(t, overlaps(a, model.Rect{X: 9.995, Y: 0, Width: 5, Height: 5}), "within tolerance")
	assert.False(t, overlaps(a, model.Rect{X: 20, Y: 20, Width: 1, Height: 1}))
}

func TestSubtract_NoOverlapKeepsRegion(t *testing.T) {
	region := model.Rect{X: 0, Y: 0, Width: 10, Height: 10}
	got := subtract(region, model.Rect{X: 10, Y: 0, Width: 5, Height: 5})
	assert.Equal(t, []model.Rect{region}, got)
}

func TestSubtract_CenterCutYieldsFourStrips(t *testing.T) {
	region := model.Rect{X: 0, Y: 0, Width: 100, Height: 100}
	cut := model.Rect{X: 40, Y: 30, Width: 20, Height: 10}

	got := subtract(region, cut)

	assert.Equal(t, []model.Rect{
		{X: 60, Y: 0, Width: 40, Height: 100}, // right
		{X: 0, Y: 40, Width: 100, Height: 60}, // below
		{X: 0, Y: 0, Width: 40, Height: 100},  // left
		{X: 0, Y: 0, Width: 100, Height: 30},  // above
	}, got)
}

func TestSubtract_CornerCutDropsEmptyStrips(t *testing.T) {
	region := model.Rect{X: 0, Y: 0, Width: 100, Height: 100}
	got := subtract(region, model.Rect{X: 0, Y: 0, Width: 30, Height: 40})

	assert.Equal(t, []model.Rect{
		{X: 30, Y: 0, Width: 70, Height: 100},
		{X: 0, Y: 40, Width: 100, Height: 60},
	}, got)
}

func TestSubtract_FullCoverLeavesNothing(t *testing.T) {
	region := model.Rect{X: 10, Y: 10, Width: 20, Height: 20}
	got := subtract(region, model.Rect{X: 0, Y: 0, Width: 50, Height: 50})
	assert.Empty(t, got)
}

func TestSplitAfterPlacement_InflatesTrailingEdges(t *testing.T) {
	region := model.Rect{X: 0, Y: 0, Width: 100, Height: 50}

	got := splitAfterPlacement(region, 40, 20, 0, 0, 3)

	assert.Equal(t, []model.Rect{
		{X: 43, Y: 0, Width: 57, Height: 50},
		{X: 0, Y: 23, Width: 100, Height: 27},
	}, got)
}

func TestPruneContained(t *testing.T) {
	big := model.Rect{X: 0, Y: 0, Width: 100, Height: 100}
	inner := model.Rect{X: 10, Y: 10, Width: 20, Height: 20}
	other := model.Rect{X: 100, Y: 0, Width: 10, Height: 10}

	got := pruneContained([]model.Rect{inner, big, other, big})

	assert.Equal(t, []model.Rect{big, other}, got)
}

func TestContains(t *testing.T) {
	outer := model.Rect{X: 0, Y: 0, Width: 100, Height: 50}
	assert.True(t, contains(outer, model.Rect{X: 0, Y: 0, Width: 100, Height: 50}))
	assert.True(t, contains(outer, model.Rect{X: 60, Y: 0, Width: 40.005, Height: 50}))
	assert.False(t, contains(outer, model.Rect{X: 60, Y: 0, Width: 41, Height: 50}))
}
