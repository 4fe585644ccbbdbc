// Package tuning persists the values a player carries between sessions: the training opponent's
// skill and record, its learned weights, and the key-repeat settings.
package tuning

import (
	"math"

	"github.com/plus3/blockduel/ai"
)

const (
	MinSkill          = 1.0
	MaxSkill          = 10.0
	DefaultDASDelayMS = 133
	DefaultARRSpeedMS = 0
)

// Values is everything that survives a restart.
type Values struct {
	SkillLevel float64    `yaml:"skill_level"`
	Wins       int        `yaml:"wins"`
	Losses     int        `yaml:"losses"`
	Weights    ai.Weights `yaml:"weights"`
	DASDelayMS int        `yaml:"das_delay_ms"`
	ARRSpeedMS int        `yaml:"arr_speed_ms"`
}

// Defaults returns the values used when nothing has been saved yet.
func Defaults() Values {
	return Values{
		SkillLevel: MinSkill,
		Weights:    ai.BattleWeights(),
		DASDelayMS: DefaultDASDelayMS,
		ARRSpeedMS: DefaultARRSpeedMS,
	}
}

// Normalize clamps skill into [1, 10] and resets negative counters and timings to their
// defaults.
func (v Values) Normalize() Values {
	d := Defaults()
	if math.IsNaN(v.SkillLevel) {
		v.SkillLevel = d.SkillLevel
	}
	v.SkillLevel = math.Max(MinSkill, math.Min(MaxSkill, v.SkillLevel))
	if v.Wins < 0 {
		v.Wins = 0
	}
	if v.Losses < 0 {
		v.Losses = 0
	}
	if v.DASDelayMS < 0 {
		v.DASDelayMS = d.DASDelayMS
	}
	if v.ARRSpeedMS < 0 {
		v.ARRSpeedMS = d.ARRSpeedMS
	}
	return v
}

// Store loads and saves Values.
type Store interface {
	Load() (Values, error)
	Save(Values) error
}

// MemoryStore keeps values in memory. The zero value loads Defaults.
type MemoryStore struct {
	values Values
	saved  bool
	Saves  int
}

// NewMemoryStore returns a store preloaded with v.
func NewMemoryStore(v Values) *MemoryStore {
	return &MemoryStore{values: v, saved: true}
}

// Load returns the last saved values, or Defaults.
func (m *MemoryStore) Load() (Values, error) {
	if !m.saved {
		return Defaults(), nil
	}
	return m.values.Normalize(), nil
}

// Save records v.
func (m *MemoryStore) Save(v Values) error {
	m.values = v
	m.saved = true
	m.Saves++
	return nil
}
