package game_test

import (
	"testing"
	"time"

	"github.com/plus3/blockduel/game"
	"github.com/stretchr/testify/assert"
)

func TestPoints(t *testing.T) {
	tests := []struct {
		name  string
		lines int
		tspin bool
		combo int
		want  int
	}{
		{"single", 1, false, 1, 100},
		{"double", 2, false, 1, 300},
		{"triple", 3, false, 1, 500},
		{"tetris", 4, false, 1, 800},
		{"more than four", 5, false, 1, 800},
		{"t-spin single", 1, true, 1, 800},
		{"t-spin double", 2, true, 1, 1200},
		{"t-spin triple", 3, true, 1, 1600},
		{"t-spin with four lines uses the line table", 4, true, 1, 800},
		{"double at combo three", 2, false, 3, 600},
		{"single at combo two", 1, false, 2, 150},
		{"combo capped at ten", 1, false, 25, 550},
		{"combo zero counts as one", 1, false, 0, 100},
		{"no lines", 0, false, 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, game.Points(tt.lines, tt.tspin, tt.combo))
		})
	}
}

func TestGarbageFor(t *testing.T) {
	tests := []struct {
		name  string
		lines int
		tspin bool
		combo int
		want  int
	}{
		{"single", 1, false, 1, 1},
		{"tetris", 4, false, 1, 4},
		{"t-spin adds one", 2, true, 1, 3},
		{"combo two adds one", 1, false, 2, 2},
		{"combo five adds two", 3, true, 5, 6},
		{"capped", 4, true, 40, 20},
		{"nothing without a clear", 0, true, 9, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, game.GarbageFor(tt.lines, tt.tspin, tt.combo, 20))
		})
	}
}

func TestClearName(t *testing.T) {
	assert.Equal(t, "SINGLE", game.ClearName(1, false))
	assert.Equal(t, "TETRIS", game.ClearName(4, false))
	assert.Equal(t, "T-SPIN DOUBLE", game.ClearName(2, true))
	assert.Equal(t, "", game.ClearName(0, true))
}

func TestLevelCurve(t *testing.T) {
	assert.Equal(t, 1, game.LevelFor(0))
	assert.Equal(t, 1, game.LevelFor(9))
	assert.Equal(t, 2, game.LevelFor(10))
	assert.Equal(t, 4, game.LevelFor(35))

	battle := game.BattleConfig()
	assert.Equal(t, 1000*time.Millisecond, battle.FallInterval(1))
	assert.Equal(t, 950*time.Millisecond, battle.FallInterval(2))
	assert.Equal(t, 100*time.Millisecond, battle.FallInterval(19))
	assert.Equal(t, 100*time.Millisecond, battle.FallInterval(40))

	training := game.TrainingConfig()
	assert.Equal(t, 250*time.Millisecond, training.FallInterval(16))
	assert.Equal(t, 200*time.Millisecond, training.FallInterval(17))
	assert.Equal(t, 200*time.Millisecond, training.FallInterval(40))
	assert.Equal(t, game.LevelHuman, training.LevelSource)
}
