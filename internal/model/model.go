package model

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Epsilon is the tolerance in mm applied to every boundary and overlap
// comparison. Repeating-decimal dimensions must not fail to place because of
// floating-point rounding.
const Epsilon = 0.01

// Grain represents the grain direction of a part or a stock sheet.
type Grain int

const (
	GrainNone       Grain = iota // Unset, free to rotate
	GrainHorizontal              // Grain runs along the length (x axis)
	GrainVertical                // Grain runs along the width (y axis)
)

func (g Grain) String() string {
	switch g {
	case GrainHorizontal:
		return "Horizontal"
	case GrainVertical:
		return "Vertical"
	default:
		return "None"
	}
}

// ParseGrain converts a user supplied grain string. Recognition is
// case-insensitive; the bool reports whether the text was understood.
func ParseGrain(s string) (Grain, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal", "h":
		return GrainHorizontal, true
	case "vertical", "v":
		return GrainVertical, true
	case "", "none", "n", "-":
		return GrainNone, true
	default:
		return GrainNone, false
	}
}

// MaterialType distinguishes two-axis sheet goods from linear lumber.
type MaterialType int

const (
	MaterialSheet       MaterialType = iota // Plywood, MDF, ... packed in 2D
	MaterialDimensional                     // Boards packed along their length only
)

func (m MaterialType) String() string {
	if m == MaterialDimensional {
		return "Dimensional"
	}
	return "Sheet"
}

// ParseMaterialType converts a user supplied material type string.
func ParseMaterialType(s string) (MaterialType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sheet", "panel", "s":
		return MaterialSheet, true
	case "dimensional", "lumber", "board", "linear", "d":
		return MaterialDimensional, true
	default:
		return MaterialSheet, false
	}
}

// StockDefinition is one row of available inventory.
// Length runs along the x axis of a sheet, Width along y.
type StockDefinition struct {
	ID           string       `json:"id"`
	Label        string       `json:"label"`
	Length       float64      `json:"length"`    // mm
	Width        float64      `json:"width"`     // mm
	Thickness    float64      `json:"thickness"` // mm
	Quantity     int          `json:"quantity"`
	Material     string       `json:"material,omitempty"`
	MaterialType MaterialType `json:"material_type"`
	Grain        Grain        `json:"grain"`
	InventoryID  string       `json:"inventory_id,omitempty"` // Warehouse record this row was drawn from
}

// NewStock creates a sheet-goods stock row with a generated ID and no grain.
func NewStock(label string, length, width, thickness float64, qty int) StockDefinition {
	return StockDefinition{
		ID:           uuid.New().String()[:8],
		Label:        label,
		Length:       length,
		Width:        width,
		Thickness:    thickness,
		Quantity:     qty,
		MaterialType: MaterialSheet,
		Grain:        GrainNone,
	}
}

// Area returns the face area of one physical instance.
func (s StockDefinition) Area() float64 {
	return s.Length * s.Width
}

// PartRequirement is one row of demand. Quantity N means N identical
// rectangular instances, each needing exactly one placement.
type PartRequirement struct {
	Name         string       `json:"name,omitempty"`
	Length       float64      `json:"length"`    // mm
	Width        float64      `json:"width"`     // mm
	Thickness    float64      `json:"thickness"` // mm
	Quantity     int          `json:"quantity"`
	Material     string       `json:"material,omitempty"`
	MaterialType MaterialType `json:"material_type"`
	Grain        Grain        `json:"grain"`
}

// NewPart creates a sheet-goods part row with no grain.
func NewPart(name string, length, width, thickness float64, qty int) PartRequirement {
	return PartRequirement{
		Name:         name,
		Length:       length,
		Width:        width,
		Thickness:    thickness,
		Quantity:     qty,
		MaterialType: MaterialSheet,
		Grain:        GrainNone,
	}
}

// Area returns the face area of a single instance.
func (p PartRequirement) Area() float64 {
	return p.Length * p.Width
}

// DisplayName returns the part name, or a positional fallback.
func (p PartRequirement) DisplayName(row int) string {
	if p.Name != "" {
		return p.Name
	}
	return "Part " + strconv.Itoa(row+1)
}

// Rect is an axis-aligned rectangle in sheet-local coordinates. Free regions
// of a sheet are Rects; they may overlap one another.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }
func (r Rect) Area() float64   { return r.Width * r.Height }

// Overlaps reports whether two rectangles share interior area beyond
// Epsilon. Touching edges do not count.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right()-Epsilon && r.Right() > o.X+Epsilon &&
		r.Y < o.Bottom()-Epsilon && r.Bottom() > o.Y+Epsilon
}

// PartRef identifies one instance of one demand row. Row indexes
// OptimizationResult.Parts (the packer's iteration order), not the caller's
// original order.
type PartRef struct {
	Row      int `json:"row"`
	Instance int `json:"instance"`
}

func (r PartRef) String() string {
	return strconv.Itoa(r.Row) + "-" + strconv.Itoa(r.Instance)
}

// Placement is one part instance seated on one sheet instance.
type Placement struct {
	Ref     PartRef `json:"ref"`
	Name    string  `json:"name,omitempty"`
	X       float64 `json:"x"`      // Position from left edge (mm)
	Y       float64 `json:"y"`      // Position from top edge (mm)
	Width   float64 `json:"width"`  // Footprint along x after rotation (mm)
	Height  float64 `json:"height"` // Footprint along y after rotation (mm)
	Rotated bool    `json:"rotated"`
	Aligned bool    `json:"aligned"` // Grain-aligned for reporting
}

// Footprint returns the occupied rectangle, excluding kerf.
func (p Placement) Footprint() Rect {
	return Rect{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}
}

// KerfFootprint returns the footprint inflated by kerf on its trailing
// (right and bottom) edges.
func (p Placement) KerfFootprint(kerf float64) Rect {
	return Rect{X: p.X, Y: p.Y, Width: p.Width + kerf, Height: p.Height + kerf}
}

// SheetUsage is one consumed physical stock instance.
type SheetUsage struct {
	StockIndex  int             `json:"stock_index"` // Row in the caller's stock list
	SheetID     string          `json:"sheet_id"`
	Stock       StockDefinition `json:"stock"`
	Placements  []Placement     `json:"placements"`
	UsedArea    float64         `json:"used_area"`
	WasteArea   float64         `json:"waste_area"`
	FreeRegions []Rect          `json:"free_regions,omitempty"`
}

// TotalArea returns the stock instance area.
func (su SheetUsage) TotalArea() float64 {
	return su.Stock.Area()
}

// Efficiency returns the usage percentage.
func (su SheetUsage) Efficiency() float64 {
	ta := su.TotalArea()
	if ta == 0 {
		return 0
	}
	return (su.UsedArea / ta) * 100.0
}

// FailureKind classifies why an optimization could not succeed.
type FailureKind int

const (
	FailureNone         FailureKind = iota
	FailureInputInvalid             // Non-positive dimension or quantity
	FailureCapacity                 // Aggregate stock area too small for a class
	FailureFit                      // A part fits no stock row
	FailureExhausted                // Ran out of sheets or attempts while placing
)

func (k FailureKind) String() string {
	switch k {
	case FailureInputInvalid:
		return "input-invalid"
	case FailureCapacity:
		return "capacity-infeasible"
	case FailureFit:
		return "fit-infeasible"
	case FailureExhausted:
		return "placement-exhaustion"
	default:
		return "none"
	}
}

// OptimizationResult holds the full solution, or a diagnostic on failure.
type OptimizationResult struct {
	Success     bool              `json:"success"`
	Failure     FailureKind       `json:"failure,omitempty"`
	Message     string            `json:"message,omitempty"`
	Sheets      []SheetUsage      `json:"sheets,omitempty"`
	TotalSheets int               `json:"total_sheets"`
	TotalWaste  float64           `json:"total_waste"`
	Parts       []PartRequirement `json:"parts,omitempty"`      // Packer iteration order
	PartOrder   []int             `json:"part_order,omitempty"` // PartOrder[i] is the caller row of Parts[i]
	Kerf        float64           `json:"kerf"`
}

// Failed builds an unsuccessful result.
func Failed(kind FailureKind, msg string) OptimizationResult {
	return OptimizationResult{Failure: kind, Message: msg}
}

// PlacedCount returns the number of placements across all sheets.
func (r OptimizationResult) PlacedCount() int {
	n := 0
	for _, s := range r.Sheets {
		n += len(s.Placements)
	}
	return n
}

// TotalEfficiency returns overall material usage percentage.
func (r OptimizationResult) TotalEfficiency() float64 {
	var usedArea, totalArea float64
	for _, s := range r.Sheets {
		usedArea += s.UsedArea
		totalArea += s.TotalArea()
	}
	if totalArea == 0 {
		return 0
	}
	return (usedArea / totalArea) * 100.0
}

// SheetsByStock counts consumed sheet instances per caller stock row.
func (r OptimizationResult) SheetsByStock() map[int]int {
	counts := make(map[int]int)
	for _, s := range r.Sheets {
		counts[s.StockIndex]++
	}
	return counts
}

// Project ties everything together for save/load and CLI input.
type Project struct {
	Name     string            `json:"name"`
	Stocks   []StockDefinition `json:"stocks"`
	Parts    []PartRequirement `json:"parts"`
	Settings CutSettings       `json:"settings"`
}

// NewProject returns an empty project with default settings.
func NewProject() Project {
	return Project{
		Name:     "Untitled",
		Stocks:   []StockDefinition{},
		Parts:    []PartRequirement{},
		Settings: DefaultSettings(),
	}
}
