package game

import (
	"time"

	"github.com/plus3/blockduel/tetris"
)

// PlayerState is one side's board and piece queue. Piece.Rotation counts clockwise turns since
// the piece spawned or was swapped in by a hold.
type PlayerState struct {
	Board tetris.Board
	Piece tetris.Piece
	Next  tetris.Kind

	Held    tetris.Kind
	HasHeld bool
	CanHold bool

	Score int
	Lines int
	Combo int

	LastClear  time.Duration
	HasCleared bool

	FallTimer time.Duration
}

func newPlayerState(width, height int) *PlayerState {
	return &PlayerState{
		Board:   tetris.NewBoard(width, height),
		CanHold: true,
	}
}

// CanFall reports whether the active piece can move down one row.
func (ps *PlayerState) CanFall() bool {
	return tetris.CanPlace(ps.Board, ps.Piece.Shape, ps.Piece.X, ps.Piece.Y+1)
}

// GhostY is the row the active piece would hard-drop to.
func (ps *PlayerState) GhostY() int {
	return tetris.DropRow(ps.Board, ps.Piece.Shape, ps.Piece.X, ps.Piece.Y)
}

// updateCombo applies the combo window to a lock at now.
func (ps *PlayerState) updateCombo(lines int, now, window time.Duration) {
	last := ps.LastClear
	if !ps.HasCleared {
		last = now
	}
	elapsed := now - last
	if lines > 0 {
		if elapsed < window {
			ps.Combo++
		} else {
			ps.Combo = 1
		}
		ps.LastClear = now
		ps.HasCleared = true
		return
	}
	if elapsed >= window {
		ps.Combo = 0
	}
}
