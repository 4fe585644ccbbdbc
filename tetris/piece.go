// Package tetris holds the board and piece model shared by every game mode: the seven
// tetromino shapes, rotation, collision, locking, line clearing and garbage injection.
package tetris

import (
	"image/color"
	"math/rand/v2"
)

// Kind identifies one of the seven tetrominoes.
type Kind int

const (
	I Kind = iota
	O
	T
	S
	Z
	J
	L
)

// KindCount is the number of distinct tetrominoes.
const KindCount = 7

var kindNames = [KindCount]string{"I", "O", "T", "S", "Z", "J", "L"}

func (k Kind) String() string {
	if k < 0 || int(k) >= KindCount {
		return "?"
	}
	return kindNames[k]
}

// Valid reports whether k is one of the seven tetrominoes.
func (k Kind) Valid() bool {
	return k >= 0 && int(k) < KindCount
}

// Cell returns the board value a locked block of this kind is stored as.
func (k Kind) Cell() Cell {
	return Cell(k + 1)
}

// Shape is an occupancy matrix indexed [row][col]. Shapes are never mutated in place.
type Shape [][]bool

var shapes = [KindCount]Shape{
	parseShape("1111"),
	parseShape("11", "11"),
	parseShape("010", "111"),
	parseShape("110", "011"),
	parseShape("011", "110"),
	parseShape("100", "111"),
	parseShape("001", "111"),
}

var kindColors = [KindCount]color.RGBA{
	{0x00, 0xf0, 0xf0, 0xff},
	{0xf0, 0xf0, 0x00, 0xff},
	{0xa0, 0x00, 0xf0, 0xff},
	{0x00, 0xf0, 0x00, 0xff},
	{0xf0, 0x00, 0x00, 0xff},
	{0x00, 0x00, 0xf0, 0xff},
	{0xf0, 0xa0, 0x00, 0xff},
}

// GarbageColor is the display color of garbage cells.
var GarbageColor = color.RGBA{0x66, 0x66, 0x66, 0xff}

func parseShape(rows ...string) Shape {
	shape := make(Shape, len(rows))
	for r, row := range rows {
		shape[r] = make([]bool, len(row))
		for c, ch := range row {
			shape[r][c] = ch == '1'
		}
	}
	return shape
}

// ShapeOf returns a fresh copy of the spawn orientation of k.
func ShapeOf(k Kind) Shape {
	return shapes[k].Clone()
}

// ColorOf returns the display color of k.
func ColorOf(k Kind) color.RGBA {
	return kindColors[k]
}

// CellColor returns the display color for a board cell and false for empty cells.
func CellColor(c Cell) (color.RGBA, bool) {
	switch {
	case c == Empty:
		return color.RGBA{}, false
	case c == Garbage:
		return GarbageColor, true
	case c >= 1 && c <= KindCount:
		return kindColors[c-1], true
	}
	return color.RGBA{}, false
}

// RandomKind draws a kind uniformly. There is no bag: every draw is independent.
func RandomKind(rng *rand.Rand) Kind {
	return Kind(rng.IntN(KindCount))
}

// Rows returns the number of rows in the shape.
func (s Shape) Rows() int {
	return len(s)
}

// Cols returns the number of columns in the shape.
func (s Shape) Cols() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	for r := range s {
		out[r] = append([]bool(nil), s[r]...)
	}
	return out
}

// Equal reports whether both shapes have the same dimensions and occupancy.
func (s Shape) Equal(other Shape) bool {
	if s.Rows() != other.Rows() || s.Cols() != other.Cols() {
		return false
	}
	for r := range s {
		for c := range s[r] {
			if s[r][c] != other[r][c] {
				return false
			}
		}
	}
	return true
}

// Rotate returns the shape turned 90 degrees clockwise: out[c][rows-1-r] = in[r][c].
func Rotate(s Shape) Shape {
	rows, cols := s.Rows(), s.Cols()
	out := make(Shape, cols)
	for c := range out {
		out[c] = make([]bool, rows)
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out[c][rows-1-r] = s[r][c]
		}
	}
	return out
}

// RotateN applies Rotate n times (n taken modulo 4).
func RotateN(s Shape, n int) Shape {
	n = ((n % 4) + 4) % 4
	for i := 0; i < n; i++ {
		s = Rotate(s)
	}
	return s
}

// Piece is a shape placed at a board-relative origin.
type Piece struct {
	Kind     Kind
	Shape    Shape
	X, Y     int
	Rotation int
}

// NewPiece returns kind k in spawn orientation at the given origin.
func NewPiece(k Kind, x, y int) Piece {
	return Piece{Kind: k, Shape: ShapeOf(k), X: x, Y: y}
}

// SpawnX returns the column that horizontally centres a shape on a board of the given width.
func SpawnX(width int, s Shape) int {
	return (width - s.Cols()) / 2
}

// Cells calls fn for every occupied cell of the piece in board coordinates.
func (p Piece) Cells(fn func(x, y int)) {
	for r, row := range p.Shape {
		for c, filled := range row {
			if filled {
				fn(p.X+c, p.Y+r)
			}
		}
	}
}
