package game_test

import (
	"testing"
	"time"

	"github.com/plus3/blockduel/game"
	"github.com/stretchr/testify/assert"
)

const tick = 16 * time.Millisecond

func TestShifter(t *testing.T) {
	t.Run("press moves once and ignores repeats", func(t *testing.T) {
		var s game.Shifter
		assert.Equal(t, game.ShiftIdle, s.State())
		assert.True(t, s.Press())
		assert.Equal(t, game.ShiftHeld, s.State())
		assert.False(t, s.Press())
	})

	t.Run("no repeat before the delay", func(t *testing.T) {
		var s game.Shifter
		s.Press()
		assert.False(t, s.Advance(tick, 133*time.Millisecond, 0), "press tick")
		for i := 1; i <= 8; i++ {
			assert.False(t, s.Advance(tick, 133*time.Millisecond, 0), "tick %d (held %v)", i, time.Duration(i)*tick)
		}
		assert.True(t, s.Advance(tick, 133*time.Millisecond, 0), "held 144ms")
	})

	t.Run("zero repeat rate moves every tick", func(t *testing.T) {
		var s game.Shifter
		s.Press()
		s.Advance(tick, 0, 0)
		for i := 0; i < 5; i++ {
			assert.True(t, s.Advance(tick, 0, 0))
		}
	})

	t.Run("repeat rate is measured from the last move", func(t *testing.T) {
		var s game.Shifter
		das, arr, dt := 100*time.Millisecond, 50*time.Millisecond, 20*time.Millisecond
		s.Press()
		s.Advance(dt, das, arr)

		var moves []int
		for i := 1; i <= 12; i++ {
			if s.Advance(dt, das, arr) {
				moves = append(moves, i)
			}
		}
		// held 100ms at tick 5, then every third tick (60ms >= 50ms)
		assert.Equal(t, []int{5, 8, 11}, moves)
	})

	t.Run("release returns to idle", func(t *testing.T) {
		var s game.Shifter
		s.Press()
		s.Advance(tick, 0, 0)
		s.Release()
		assert.Equal(t, game.ShiftIdle, s.State())
		assert.False(t, s.Advance(tick, 0, 0))
		assert.True(t, s.Press())
	})
}
