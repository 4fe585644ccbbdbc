// Package learning adapts the training opponent to the player. A slow skill level moves with the
// player's long-run win rate and is mapped onto the planner weights; each finished game also
// nudges the weights directly.
package learning

import (
	"log"
	"math"

	"github.com/plus3/blockduel/ai"
	"github.com/plus3/blockduel/tuning"
)

const (
	skillStep       = 0.1
	promoteWinRate  = 0.6
	demoteWinRate   = 0.3
	minRecordGames  = 3
	skillPivot      = 5.0
	baseAggression  = 0.3
	aggressionRange = 0.7
	maxPlanning     = 3
)

var skillNames = [...]string{
	"Beginner",
	"Novice",
	"Intermediate",
	"Advanced",
	"Expert",
	"Master",
	"Grandmaster",
	"Legend",
	"Mythic",
	"Transcendent",
}

// Controller owns the persisted training state. Every mutation is saved immediately; save
// failures are logged and otherwise ignored.
type Controller struct {
	store  tuning.Store
	logger *log.Logger
	values tuning.Values
}

// New loads the controller's state from store. A load error is logged and the values that could
// be recovered are used.
func New(store tuning.Store, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	values, err := store.Load()
	if err != nil {
		logger.Printf("learning: load tuning: %v", err)
	}
	return &Controller{store: store, logger: logger, values: values.Normalize()}
}

// Values returns a copy of the current state.
func (c *Controller) Values() tuning.Values {
	return c.values
}

// Skill returns the current skill level in [1, 10].
func (c *Controller) Skill() float64 {
	return c.values.SkillLevel
}

// Weights returns the weights the opponent should search with.
func (c *Controller) Weights() ai.Weights {
	return c.values.Weights
}

// WinRate is wins over games played, zero before the first game.
func (c *Controller) WinRate() float64 {
	games := c.values.Wins + c.values.Losses
	return float64(c.values.Wins) / float64(max(1, games))
}

// SkillName labels the current skill level.
func (c *Controller) SkillName() string {
	return SkillName(c.values.SkillLevel)
}

// SkillName labels a skill level, Beginner at 1 through Transcendent at 10.
func SkillName(skill float64) string {
	i := int(math.Floor(skill)) - 1
	if i < 0 {
		return skillNames[0]
	}
	return skillNames[min(len(skillNames)-1, i)]
}

// WeightsForSkill maps a skill level onto the base weights.
func WeightsForSkill(skill float64) ai.Weights {
	w := ai.BattleWeights().Scaled(skill / skillPivot)
	w.Aggression = math.Min(1, baseAggression+skill/10*aggressionRange)
	w.PlanningDepth = min(maxPlanning, int(math.Floor(skill/3))+1)
	return w
}

// Recompute moves the skill level by one step when the record is lopsided enough, then derives
// fresh weights from it. It returns the new weights.
func (c *Controller) Recompute() ai.Weights {
	rate := c.WinRate()
	switch {
	case rate > promoteWinRate && c.values.Wins > minRecordGames:
		c.values.SkillLevel = math.Min(tuning.MaxSkill, c.values.SkillLevel+skillStep)
	case rate < demoteWinRate && c.values.Losses > minRecordGames:
		c.values.SkillLevel = math.Max(tuning.MinSkill, c.values.SkillLevel-skillStep)
	}
	c.values.Weights = WeightsForSkill(c.values.SkillLevel)
	c.save()
	return c.values.Weights
}

// RecordOutcome counts the finished game and nudges the weights: a human win sharpens the
// opponent, an opponent win only raises its appetite for clears. It returns the new weights.
func (c *Controller) RecordOutcome(humanWon bool) ai.Weights {
	w := &c.values.Weights
	if humanWon {
		c.values.Wins++
		w.Hole *= 1.05
		w.Height *= 1.05
		w.LineClear *= 1.1
		w.Aggression = math.Min(1, w.Aggression*1.05)
	} else {
		c.values.Losses++
		w.LineClear *= 1.02
	}
	c.save()
	return *w
}

// SetKeyRepeat stores new DAS and ARR timings in milliseconds.
func (c *Controller) SetKeyRepeat(dasMS, arrMS int) {
	c.values.DASDelayMS = dasMS
	c.values.ARRSpeedMS = arrMS
	c.values = c.values.Normalize()
	c.save()
}

func (c *Controller) save() {
	if err := c.store.Save(c.values); err != nil {
		c.logger.Printf("learning: save tuning: %v", err)
	}
}
