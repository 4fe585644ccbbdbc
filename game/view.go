package game

import "github.com/plus3/blockduel/tetris"

// View is a snapshot of one player for rendering.
type View struct {
	Player Player
	Board  tetris.Board
	Piece  tetris.Piece
	GhostY int

	Next    tetris.Kind
	Held    tetris.Kind
	HasHeld bool
	CanHold bool

	Score int
	Lines int
	Combo int
	Level int

	Over   bool
	Paused bool
}

// View copies p's state for a renderer.
func (m *Match) View(p Player) View {
	ps := m.players[p]
	piece := ps.Piece
	piece.Shape = piece.Shape.Clone()
	return View{
		Player:  p,
		Board:   ps.Board.Clone(),
		Piece:   piece,
		GhostY:  ps.GhostY(),
		Next:    ps.Next,
		Held:    ps.Held,
		HasHeld: ps.HasHeld,
		CanHold: ps.CanHold,
		Score:   ps.Score,
		Lines:   ps.Lines,
		Combo:   ps.Combo,
		Level:   m.level,
		Over:    m.over,
		Paused:  m.paused,
	}
}

// At returns what to draw at (x, y): the active piece over the board, and whether an empty
// cell is covered by the ghost piece.
func (v View) At(x, y int) (cell tetris.Cell, ghost bool) {
	cell = v.Board[y][x]
	if v.covers(v.Piece.Y, x, y) {
		return v.Piece.Kind.Cell(), false
	}
	if cell == tetris.Empty && v.covers(v.GhostY, x, y) {
		return tetris.Empty, true
	}
	return cell, false
}

func (v View) covers(top, x, y int) bool {
	r, c := y-top, x-v.Piece.X
	if r < 0 || r >= v.Piece.Shape.Rows() || c < 0 || c >= v.Piece.Shape.Cols() {
		return false
	}
	return v.Piece.Shape[r][c]
}
