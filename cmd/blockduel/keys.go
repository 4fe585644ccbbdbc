package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockduel/game"
)

const (
	// Soft drop repeats every softDropEvery ticks once held past softDropDelay ticks.
	softDropDelay = 10
	softDropEvery = 3
)

type binding struct {
	keys    []ebiten.Key
	press   game.Input
	release *game.Input
	repeat  bool
}

func releaseOf(in game.Input) *game.Input { return &in }

var bindings = []binding{
	{keys: []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}, press: game.InputMoveLeft, release: releaseOf(game.InputReleaseLeft)},
	{keys: []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}, press: game.InputMoveRight, release: releaseOf(game.InputReleaseRight)},
	{keys: []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW, ebiten.KeyX}, press: game.InputRotate},
	{keys: []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}, press: game.InputSoftDrop, repeat: true},
	{keys: []ebiten.Key{ebiten.KeySpace}, press: game.InputHardDrop},
	{keys: []ebiten.Key{ebiten.KeyShiftLeft, ebiten.KeyShiftRight, ebiten.KeyC}, press: game.InputHold},
}

// keyState reports how many ticks a key has been down (0 when up) and whether it was released
// this tick. inpututil provides both in the running game.
type keyState interface {
	Duration(k ebiten.Key) int
	Released(k ebiten.Key) bool
}

// inputsFor translates this tick's key transitions into match inputs.
func inputsFor(ks keyState) []game.Input {
	var out []game.Input
	for _, b := range bindings {
		pressed, released, held := false, false, false
		for _, k := range b.keys {
			d := ks.Duration(k)
			switch {
			case d == 1:
				pressed = true
			case d > 1:
				held = true
				if b.repeat && d > softDropDelay && (d-softDropDelay)%softDropEvery == 0 {
					pressed = true
				}
			}
			if ks.Released(k) {
				released = true
			}
		}
		if pressed {
			out = append(out, b.press)
		}
		if released && b.release != nil && !held && !pressed {
			out = append(out, *b.release)
		}
	}
	return out
}

// uncaptured drops the presses in ins while the overlay owns the keyboard. Releases always pass
// so no direction stays held.
func uncaptured(ins []game.Input, captured bool) []game.Input {
	if !captured {
		return ins
	}
	var out []game.Input
	for _, in := range ins {
		if in.IsRelease() {
			out = append(out, in)
		}
	}
	return out
}
