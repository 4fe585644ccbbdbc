package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockduel/game"
)

type command int

const (
	cmdNone command = iota
	cmdQuit
	cmdPause
	cmdRestart
)

// translate maps a key event to match inputs or a frontend command. Terminals report no key
// releases, so every sideways press is followed by its release and key repeat comes from the
// terminal's own autorepeat.
func translate(ev *tcell.EventKey) ([]game.Input, command) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return nil, cmdQuit
	case tcell.KeyLeft:
		return []game.Input{game.InputMoveLeft, game.InputReleaseLeft}, cmdNone
	case tcell.KeyRight:
		return []game.Input{game.InputMoveRight, game.InputReleaseRight}, cmdNone
	case tcell.KeyUp:
		return []game.Input{game.InputRotate}, cmdNone
	case tcell.KeyDown:
		return []game.Input{game.InputSoftDrop}, cmdNone
	case tcell.KeyRune:
	default:
		return nil, cmdNone
	}

	switch ev.Rune() {
	case 'a', 'h':
		return []game.Input{game.InputMoveLeft, game.InputReleaseLeft}, cmdNone
	case 'd', 'l':
		return []game.Input{game.InputMoveRight, game.InputReleaseRight}, cmdNone
	case 'w', 'k', 'x':
		return []game.Input{game.InputRotate}, cmdNone
	case 's', 'j':
		return []game.Input{game.InputSoftDrop}, cmdNone
	case ' ':
		return []game.Input{game.InputHardDrop}, cmdNone
	case 'c', 'C':
		return []game.Input{game.InputHold}, cmdNone
	case 'p':
		return nil, cmdPause
	case 'r':
		return nil, cmdRestart
	case 'q':
		return nil, cmdQuit
	}
	return nil, cmdNone
}
