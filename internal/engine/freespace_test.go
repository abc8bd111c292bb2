package engine

import (
	"testing"

	"github.com/piwi3910/panelcut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegalOrientations(t *testing.T) {
	tests := []struct {
		name       string
		partGrain  model.Grain
		stockGrain model.Grain
		length     float64
		width      float64
		want       []orientation
	}{
		{
			name: "no grain offers both", partGrain: model.GrainNone, stockGrain: model.GrainNone,
			length: 300, width: 100,
			want: []orientation{
				{w: 300, h: 100, aligned: true},
				{w: 100, h: 300, rotated: true, aligned: true},
			},
		},
		{
			name: "same grain keeps orientation", partGrain: model.GrainHorizontal, stockGrain: model.GrainHorizontal,
			length: 300, width: 100,
			want: []orientation{{w: 300, h: 100, aligned: true}},
		},
		{
			name: "cross grain requires rotation", partGrain: model.GrainVertical, stockGrain: model.GrainHorizontal,
			length: 300, width: 100,
			want: []orientation{{w: 100, h: 300, rotated: true, aligned: true}},
		},
		{
			name: "square offered once", partGrain: model.GrainNone, stockGrain: model.GrainVertical,
			length: 200, width: 200,
			want: []orientation{{w: 200, h: 200, aligned: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := model.NewPart("P", tt.length, tt.width, 18, 1)
			p.Grain = tt.partGrain
			assert.Equal(t, tt.want, legalOrientations(p, tt.stockGrain))
		})
	}
}

func TestFreeSpace_SearchPrefersLeastWaste(t *testing.T) {
	fs := newFreeSpace(100, 100)
	fs.regions = []model.Rect{
		{X: 0, Y: 0, Width: 60, Height: 60},
		{X: 60, Y: 0, Width: 40, Height: 40},
	}
	sc := scorer{policy: packPolicy{mode: model.FitBest}, weights: model.PresetWeights(model.PhilosophyMaximizeYield), sheetArea: 10000}

	c, ok := fs.search([]orientation{{w: 40, h: 40, aligned: true}}, 0, sc, nil)

	require.True(t, ok)
	assert.Equal(t, 1, c.region)
	assert.Equal(t, 60.0, c.x)
	assert.Equal(t, 0.0, c.waste)
}

func TestFreeSpace_FirstFitTakesLowestRegion(t *testing.T) {
	fs := newFreeSpace(100, 100)
	fs.regions = []model.Rect{
		{X: 0, Y: 0, Width: 60, Height: 60},
		{X: 60, Y: 0, Width: 40, Height: 40},
	}
	sc := scorer{policy: packPolicy{mode: model.FitFirst}, weights: model.PresetWeights(model.PhilosophyMaximizeYield), sheetArea: 10000}

	c, ok := fs.search([]orientation{{w: 40, h: 40, aligned: true}}, 0, sc, nil)

	require.True(t, ok)
	assert.Equal(t, 0, c.region)
}

func TestFreeSpace_AlignedTierWins(t *testing.T) {
	fs := newFreeSpace(100, 100)
	fs.regions = []model.Rect{
		{X: 0, Y: 0, Width: 30, Height: 20},
		{X: 0, Y: 50, Width: 100, Height: 50},
	}
	sc := scorer{policy: packPolicy{mode: model.FitBest}, weights: model.PresetWeights(model.PhilosophyMaximizeYield), sheetArea: 10000}
	orients := []orientation{
		{w: 20, h: 30, aligned: true},
		{w: 30, h: 20, rotated: true, aligned: false},
	}

	c, ok := fs.search(orients, 0, sc, nil)

	require.True(t, ok)
	assert.True(t, c.o.aligned, "a wasteful aligned fit beats a perfect cross fit")
	assert.Equal(t, 1, c.region)
}

func TestFreeSpace_KerfMustFitInsideRegion(t *testing.T) {
	fs := newFreeSpace(100, 50)
	sc := scorer{policy: packPolicy{mode: model.FitBest}, weights: model.PresetWeights(model.PhilosophyMaximizeYield), sheetArea: 5000}

	_, ok := fs.search([]orientation{{w: 100, h: 50, aligned: true}}, 3, sc, nil)
	assert.False(t, ok)

	_, ok = fs.search([]orientation{{w: 97, h: 47, aligned: true}}, 3, sc, nil)
	assert.True(t, ok)
}

func TestFreeSpace_SearchSkipsConflictingCandidates(t *testing.T) {
	fs := newFreeSpace(100, 100)
	// Stale region that overlaps an existing placement.
	fs.regions = []model.Rect{
		{X: 0, Y: 0, Width: 100, Height: 100},
		{X: 50, Y: 50, Width: 50, Height: 50},
	}
	placed := []model.Placement{{X: 0, Y: 0, Width: 50, Height: 50}}
	sc := scorer{policy: packPolicy{mode: model.FitBest}, weights: model.PresetWeights(model.PhilosophyMaximizeYield), sheetArea: 10000}

	c, ok := fs.search([]orientation{{w: 50, h: 50, aligned: true}}, 0, sc, placed)

	require.True(t, ok)
	assert.Equal(t, 1, c.region)
	assert.Equal(t, 50.0, c.x)
	assert.Equal(t, 50.0, c.y)
}

func TestFreeSpace_PlaceUpdatesRegions(t *testing.T) {
	fs := newFreeSpace(100, 100)

	fs.place(0, 0, 50, 50, 0)

	assert.Equal(t, []model.Rect{
		{X: 50, Y: 0, Width: 50, Height: 100},
		{X: 0, Y: 50, Width: 100, Height: 50},
	}, fs.regions)

	fs.place(50, 0, 50, 50, 0)
	assert.Equal(t, []model.Rect{
		{X: 0, Y: 50, Width: 100, Height: 50},
	}, fs.regions)
}

func TestConflicts(t *testing.T) {
	sheet := model.Rect{Width: 100, Height: 100}
	placed := []model.Placement{{X: 0, Y: 0, Width: 40, Height: 40}}

	assert.True(t, conflicts(sheet, placed, 0, 0, 10, 10, 0), "same position")
	assert.True(t, conflicts(sheet, placed, 41, 0, 10, 10, 3), "inside kerf gap")
	assert.False(t, conflicts(sheet, placed, 43, 0, 10, 10, 3), "past kerf gap")
	assert.True(t, conflicts(sheet, placed, 95, 0, 10, 10, 0), "past sheet edge")
	assert.False(t, conflicts(sheet, placed, 90, 90, 10, 10, 0))
}

func TestFreeSpace_OrientationPreferenceOverridesScore(t *testing.T) {
	fs := newFreeSpace(1050, 1200)
	orients := []orientation{
		{w: 350, h: 400, aligned: true},
		{w: 400, h: 350, rotated: true, aligned: true},
	}
	weights := model.PresetWeights(model.PhilosophyMaximizeYield)

	c, ok := fs.search(orients, 0, scorer{policy: packPolicy{mode: model.FitBest}, weights: weights, sheetArea: 1260000}, nil)
	require.True(t, ok)
	assert.True(t, c.o.rotated, "rotated leaves less product waste in this region")

	c, ok = fs.search(orients, 0, scorer{policy: packPolicy{mode: model.FitBest, orient: preferNormal}, weights: weights, sheetArea: 1260000}, nil)
	require.True(t, ok)
	assert.False(t, c.o.rotated)

	c, ok = fs.search(orients[:1], 0, scorer{policy: packPolicy{mode: model.FitBest, orient: preferRotated}, weights: weights, sheetArea: 1260000}, nil)
	require.True(t, ok, "a preference never rules out the only legal orientation")
	assert.False(t, c.o.rotated)
}

func TestFreeSpace_ShortSideRanking(t *testing.T) {
	fs := newFreeSpace(200, 200)
	fs.regions = []model.Rect{
		{X: 0, Y: 0, Width: 60, Height: 200},   // waste 20*160, short side 20
		{X: 100, Y: 0, Width: 45, Height: 45},  // waste 5*5, short side 5
		{X: 150, Y: 0, Width: 41, Height: 200}, // waste 1*160, short side 1
	}
	orients := []orientation{{w: 40, h: 40, aligned: true}}
	weights := model.PresetWeights(model.PhilosophyMaximizeYield)

	c, ok := fs.search(orients, 0, scorer{policy: packPolicy{mode: model.FitBest}, weights: weights, sheetArea: 40000}, nil)
	require.True(t, ok)
	assert.Equal(t, 1, c.region, "least product waste")

	c, ok = fs.search(orients, 0, scorer{policy: packPolicy{mode: model.FitBest, shortSide: true}, weights: weights, sheetArea: 40000}, nil)
	require.True(t, ok)
	assert.Equal(t, 2, c.region, "smallest short-side leftover")
	assert.InDelta(t, 1.0, c.short, 1e-9)
}
