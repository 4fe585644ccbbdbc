package game

import (
	"time"

	"github.com/plus3/blockduel/ai"
	"github.com/plus3/blockduel/tetris"
	"github.com/plus3/blockduel/tuning"
)

// LevelSource chooses whose cleared lines raise the match level.
type LevelSource int

const (
	// LevelShared raises the level from whichever player locks.
	LevelShared LevelSource = iota
	// LevelHuman only counts the human's lines.
	LevelHuman
)

// Config holds the rules of a match. BattleConfig and TrainingConfig are the two presets.
type Config struct {
	Width  int
	Height int

	BaseFallInterval time.Duration
	FallStep         time.Duration
	MinFallInterval  time.Duration

	ComboWindow time.Duration
	MaxGarbage  int
	LevelSource LevelSource

	DASDelay time.Duration
	ARRSpeed time.Duration

	Weights          ai.Weights
	ThinkStep        time.Duration
	DecisionInterval time.Duration
}

// BattleConfig is the fixed-weight versus mode.
func BattleConfig() Config {
	return Config{
		Width:            tetris.DefaultWidth,
		Height:           tetris.DefaultHeight,
		BaseFallInterval: 1000 * time.Millisecond,
		FallStep:         50 * time.Millisecond,
		MinFallInterval:  100 * time.Millisecond,
		ComboWindow:      3000 * time.Millisecond,
		MaxGarbage:       20,
		LevelSource:      LevelShared,
		DASDelay:         tuning.DefaultDASDelayMS * time.Millisecond,
		ARRSpeed:         tuning.DefaultARRSpeedMS * time.Millisecond,
		Weights:          ai.BattleWeights(),
		ThinkStep:        ai.DefaultThinkStep,
		DecisionInterval: ai.DefaultDecisionInterval,
	}
}

// TrainingConfig is the adaptive-opponent mode: a slower speed floor and a level driven only by
// the human.
func TrainingConfig() Config {
	cfg := BattleConfig()
	cfg.MinFallInterval = 200 * time.Millisecond
	cfg.LevelSource = LevelHuman
	return cfg
}

// WithKeyRepeat returns a copy using the persisted DAS and ARR timings.
func (c Config) WithKeyRepeat(v tuning.Values) Config {
	c.DASDelay = time.Duration(v.DASDelayMS) * time.Millisecond
	c.ARRSpeed = time.Duration(v.ARRSpeedMS) * time.Millisecond
	return c
}

// FallInterval is the gravity period at level.
func (c Config) FallInterval(level int) time.Duration {
	return max(c.MinFallInterval, c.BaseFallInterval-time.Duration(level-1)*c.FallStep)
}
