package audio_test

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/plus3/blockduel/audio"
	"github.com/plus3/blockduel/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureOutput struct {
	played []beep.Streamer
}

func (c *captureOutput) Play(s beep.Streamer) {
	c.played = append(c.played, s)
}

// drain streams s to the end and returns the sample count and peak amplitude.
func drain(s beep.Streamer) (int, float64) {
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = max(peak, buf[i][0], -buf[i][0])
		}
		total += n
		if !ok || n == 0 {
			return total, peak
		}
	}
}

func TestCueFor(t *testing.T) {
	tests := []struct {
		name string
		ev   game.Event
		want audio.Cue
		ok   bool
	}{
		{"plain lock", game.Event{Kind: game.EventLocked}, audio.CueLock, true},
		{"clearing lock is left to the clear", game.Event{Kind: game.EventLocked, Lines: 2}, 0, false},
		{"single", game.Event{Kind: game.EventCleared, Lines: 1}, audio.CueClear, true},
		{"tetris", game.Event{Kind: game.EventCleared, Lines: 4}, audio.CueTetris, true},
		{"t-spin", game.Event{Kind: game.EventCleared, Lines: 2, TSpin: true}, audio.CueTSpin, true},
		{"garbage", game.Event{Kind: game.EventGarbage, Garbage: 3}, audio.CueGarbage, true},
		{"hold", game.Event{Kind: game.EventHold}, audio.CueHold, true},
		{"level", game.Event{Kind: game.EventLevelUp}, audio.CueLevelUp, true},
		{"game over", game.Event{Kind: game.EventGameOver}, audio.CueGameOver, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cue, ok := audio.CueFor(tt.ev)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, cue)
			}
		})
	}
}

func TestTone(t *testing.T) {
	t.Run("length matches the cue", func(t *testing.T) {
		samples, peak := drain(audio.Tone(audio.CueClear, 1))
		assert.InDelta(t, audio.SampleRate.N(audio.Length(audio.CueClear)), samples, 2)
		assert.Equal(t, 160*time.Millisecond, audio.Length(audio.CueClear))
		assert.Greater(t, peak, 0.1)
		assert.LessOrEqual(t, peak, 1.0)
	})

	t.Run("zero volume is silent", func(t *testing.T) {
		samples, peak := drain(audio.Tone(audio.CueGameOver, 0))
		assert.Greater(t, samples, 0)
		assert.Zero(t, peak)
	})
}

func TestPlayer(t *testing.T) {
	t.Run("plays every side by default", func(t *testing.T) {
		out := &captureOutput{}
		p := audio.NewPlayer(out)

		p.Handle(game.Event{Kind: game.EventLocked, Player: game.Human})
		p.Handle(game.Event{Kind: game.EventLocked, Player: game.AI})
		p.Handle(game.Event{Kind: game.EventLocked, Player: game.AI, Lines: 1})

		assert.Len(t, out.played, 2)
	})

	t.Run("focus filters the other side", func(t *testing.T) {
		out := &captureOutput{}
		p := audio.NewPlayer(out)
		human := game.Human
		p.Focus = &human

		p.Handle(game.Event{Kind: game.EventLocked, Player: game.AI})
		assert.Empty(t, out.played)

		p.Handle(game.Event{Kind: game.EventGarbage, Player: game.AI, Garbage: 2})
		p.Handle(game.Event{Kind: game.EventGameOver, Player: game.AI})
		assert.Len(t, out.played, 2)
	})

	t.Run("muted", func(t *testing.T) {
		out := &captureOutput{}
		p := audio.NewPlayer(out)
		p.Muted = true
		p.Handle(game.Event{Kind: game.EventGameOver})
		assert.Empty(t, out.played)
	})

	t.Run("subscribed to a match", func(t *testing.T) {
		out := &captureOutput{}
		m := game.New(game.BattleConfig(), game.WithSeed(3), game.WithControl(game.AI, game.ControlManual))
		m.Subscribe(audio.NewPlayer(out).Handle)

		m.HardDrop(game.Human)

		require.Len(t, out.played, 1)
		samples, _ := drain(out.played[0])
		assert.InDelta(t, audio.SampleRate.N(audio.Length(audio.CueLock)), samples, 2)
	})
}
