// Package ai implements the computer opponent: a one-piece exhaustive placement search scored
// by a weighted board heuristic, and a driver that walks the active piece toward the chosen
// placement one action per decision cycle.
package ai

const (
	BaseHoleWeight      = -50.0
	BaseHeightWeight    = -10.0
	BaseBumpinessWeight = -5.0
	BaseLineClearWeight = 1000.0
	BaseAggression      = 0.5
	BasePlanningDepth   = 1
)

// Weights parameterises the board evaluation. Aggression and PlanningDepth are carried for the
// learning controller and display; the search itself is always one piece deep.
type Weights struct {
	Hole          float64 `yaml:"hole"`
	Height        float64 `yaml:"height"`
	Bumpiness     float64 `yaml:"bumpiness"`
	LineClear     float64 `yaml:"line_clear"`
	Aggression    float64 `yaml:"aggression"`
	PlanningDepth int     `yaml:"planning_depth"`
}

// BattleWeights returns the fixed weights used in battle mode.
func BattleWeights() Weights {
	return Weights{
		Hole:          BaseHoleWeight,
		Height:        BaseHeightWeight,
		Bumpiness:     BaseBumpinessWeight,
		LineClear:     BaseLineClearWeight,
		Aggression:    BaseAggression,
		PlanningDepth: BasePlanningDepth,
	}
}

// Scaled multiplies the four heuristic weights by m, leaving the derived scalars untouched.
func (w Weights) Scaled(m float64) Weights {
	w.Hole *= m
	w.Height *= m
	w.Bumpiness *= m
	w.LineClear *= m
	return w
}
