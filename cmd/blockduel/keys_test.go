package main

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockduel/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKeys struct {
	down     map[ebiten.Key]int
	released map[ebiten.Key]bool
}

func (f fakeKeys) Duration(k ebiten.Key) int  { return f.down[k] }
func (f fakeKeys) Released(k ebiten.Key) bool { return f.released[k] }

func TestInputsFor(t *testing.T) {
	tests := []struct {
		name     string
		down     map[ebiten.Key]int
		released map[ebiten.Key]bool
		want     []game.Input
	}{
		{"nothing", nil, nil, nil},
		{"fresh left", map[ebiten.Key]int{ebiten.KeyArrowLeft: 1}, nil, []game.Input{game.InputMoveLeft}},
		{"held left is repeated by the match", map[ebiten.Key]int{ebiten.KeyArrowLeft: 20}, nil, nil},
		{"release right", nil, map[ebiten.Key]bool{ebiten.KeyArrowRight: true}, []game.Input{game.InputReleaseRight}},
		{
			"release one of two bound keys keeps holding",
			map[ebiten.Key]int{ebiten.KeyD: 8},
			map[ebiten.Key]bool{ebiten.KeyArrowRight: true},
			nil,
		},
		{"hold on shift", map[ebiten.Key]int{ebiten.KeyShiftLeft: 1}, nil, []game.Input{game.InputHold}},
		{"soft drop waits before repeating", map[ebiten.Key]int{ebiten.KeyArrowDown: softDropDelay}, nil, nil},
		{"soft drop repeats", map[ebiten.Key]int{ebiten.KeyArrowDown: softDropDelay + softDropEvery}, nil, []game.Input{game.InputSoftDrop}},
		{
			"several at once in binding order",
			map[ebiten.Key]int{ebiten.KeySpace: 1, ebiten.KeyArrowUp: 1},
			nil,
			[]game.Input{game.InputRotate, game.InputHardDrop},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := inputsFor(fakeKeys{down: tt.down, released: tt.released})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUncaptured(t *testing.T) {
	ins := []game.Input{game.InputMoveLeft, game.InputReleaseRight, game.InputHardDrop, game.InputReleaseLeft}

	assert.Equal(t, ins, uncaptured(ins, false))
	assert.Equal(t, []game.Input{game.InputReleaseRight, game.InputReleaseLeft}, uncaptured(ins, true))
	assert.Nil(t, uncaptured([]game.Input{game.InputRotate}, true))
}

func TestReleaseReachesMatchWhileCaptured(t *testing.T) {
	m := game.New(game.BattleConfig(), game.WithSeed(1), game.WithControl(game.AI, game.ControlManual))
	human := m.Player(game.Human)
	start := human.Piece.X

	press := inputsFor(fakeKeys{down: map[ebiten.Key]int{ebiten.KeyArrowLeft: 1}})
	for _, in := range uncaptured(press, false) {
		m.Input(game.Human, in)
	}
	m.Tick(16 * time.Millisecond)
	require.Equal(t, start-1, human.Piece.X)

	release := inputsFor(fakeKeys{released: map[ebiten.Key]bool{ebiten.KeyArrowLeft: true}})
	for _, in := range uncaptured(release, true) {
		m.Input(game.Human, in)
	}
	for range 20 {
		m.Tick(16 * time.Millisecond)
	}
	assert.Equal(t, start-1, human.Piece.X, "no auto-repeat after the release")
}
