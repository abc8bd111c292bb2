package model

import (
	"fmt"
	"strings"
)

// FitMode selects how a free region is chosen for a part.
type FitMode string

const (
	FitBest  FitMode = "best"  // Minimum weighted waste
	FitFirst FitMode = "first" // Lowest region index
)

// ParseFitMode converts a CLI/config string into a FitMode.
func ParseFitMode(s string) (FitMode, error) {
	switch FitMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", FitBest:
		return FitBest, nil
	case FitFirst:
		return FitFirst, nil
	default:
		return "", fmt.Errorf("unknown fit mode %q (want best or first)", s)
	}
}

// Philosophy is a named optimization preset. Each preset maps to a fixed
// weight vector; PhilosophyMixed uses the caller's CustomWeights.
type Philosophy string

const (
	PhilosophyMaximizeYield Philosophy = "yield"
	PhilosophyMinimizeCuts  Philosophy = "cuts"
	PhilosophyGrainPriority Philosophy = "grain"
	PhilosophyMixed         Philosophy = "mixed"
)

// Philosophies lists the presets in display order.
var Philosophies = []Philosophy{
	PhilosophyMaximizeYield,
	PhilosophyMinimizeCuts,
	PhilosophyGrainPriority,
	PhilosophyMixed,
}

// ParsePhilosophy converts a CLI/config string into a Philosophy.
func ParsePhilosophy(s string) (Philosophy, error) {
	p := Philosophy(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return PhilosophyMaximizeYield, nil
	}
	for _, known := range Philosophies {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown philosophy %q", s)
}

func (p Philosophy) String() string {
	switch p {
	case PhilosophyMinimizeCuts:
		return "Minimize Cuts"
	case PhilosophyGrainPriority:
		return "Grain Priority"
	case PhilosophyMixed:
		return "Mixed"
	default:
		return "Maximize Yield"
	}
}

// Weights biases candidate scoring. Every field is on a 0-1 scale.
type Weights struct {
	Yield         float64 `json:"yield"`          // Penalize leftover waste in the chosen region
	CutSimplicity float64 `json:"cut_simplicity"` // Penalize footprints that are not flush with region edges
	GrainMatch    float64 `json:"grain_match"`    // Penalize rotating parts that carry their own grain
}

// Clamp returns a copy with every weight limited to [0, 1].
func (w Weights) Clamp() Weights {
	return Weights{
		Yield:         clamp01(w.Yield),
		CutSimplicity: clamp01(w.CutSimplicity),
		GrainMatch:    clamp01(w.GrainMatch),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// PresetWeights returns the immutable default weight vector of a preset.
// PhilosophyMixed has no preset and falls back to the yield vector.
func PresetWeights(p Philosophy) Weights {
	switch p {
	case PhilosophyMinimizeCuts:
		return Weights{Yield: 0.3, CutSimplicity: 1.0, GrainMatch: 0.2}
	case PhilosophyGrainPriority:
		return Weights{Yield: 0.5, CutSimplicity: 0.1, GrainMatch: 1.0}
	default:
		return Weights{Yield: 1.0, CutSimplicity: 0.1, GrainMatch: 0.2}
	}
}

// Algorithm selects how the order of demand instances is chosen.
type Algorithm string

const (
	AlgorithmGreedy  Algorithm = "greedy"  // One allocation in area-descending order
	AlgorithmGenetic Algorithm = "genetic" // Evolve the instance order, seeded with the greedy order
)

// ParseAlgorithm converts a CLI/config string into an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(s))) {
	case "", AlgorithmGreedy:
		return AlgorithmGreedy, nil
	case AlgorithmGenetic, "ga":
		return AlgorithmGenetic, nil
	default:
		return "", fmt.Errorf("unknown algorithm %q (want greedy or genetic)", s)
	}
}

// CutSettings holds optimizer configuration for one invocation.
type CutSettings struct {
	KerfWidth      float64    `json:"kerf_width"` // Blade width in mm
	FitMode        FitMode    `json:"fit_mode"`
	Algorithm      Algorithm  `json:"algorithm"`
	Philosophy     Philosophy `json:"philosophy"`
	CustomWeights  Weights    `json:"custom_weights"`  // Used when Philosophy is mixed
	MaxAttempts    int        `json:"max_attempts"`    // Placement attempt budget, 0 = default
	DownsizeSheets bool       `json:"downsize_sheets"` // Re-pack sheets onto smaller stock when possible
}

// DefaultMaxAttempts bounds placement attempts for one call.
const DefaultMaxAttempts = 250000

func DefaultSettings() CutSettings {
	return CutSettings{
		KerfWidth:      0,
		FitMode:        FitBest,
		Algorithm:      AlgorithmGreedy,
		Philosophy:     PhilosophyMaximizeYield,
		CustomWeights:  PresetWeights(PhilosophyMaximizeYield),
		MaxAttempts:    DefaultMaxAttempts,
		DownsizeSheets: true,
	}
}

// EffectiveWeights resolves the weight vector for these settings.
func (s CutSettings) EffectiveWeights() Weights {
	if s.Philosophy == PhilosophyMixed {
		return s.CustomWeights.Clamp()
	}
	return PresetWeights(s.Philosophy)
}

// AttemptBudget returns MaxAttempts or the default when unset.
func (s CutSettings) AttemptBudget() int {
	if s.MaxAttempts <= 0 {
		return DefaultMaxAttempts
	}
	return s.MaxAttempts
}
