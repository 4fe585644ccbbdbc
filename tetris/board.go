package tetris

import "math/rand/v2"

// Cell is a single board square.
type Cell uint8

const (
	// Empty marks an unoccupied cell.
	Empty Cell = 0
	// Garbage marks a cell injected by an opponent attack.
	Garbage Cell = 8
)

const (
	DefaultWidth  = 10
	DefaultHeight = 20
)

// Board is a grid of cells indexed [row][col], row 0 at the top.
type Board [][]Cell

// NewBoard returns an empty board.
func NewBoard(width, height int) Board {
	b := make(Board, height)
	for y := range b {
		b[y] = make([]Cell, width)
	}
	return b
}

// Height returns the number of rows.
func (b Board) Height() int {
	return len(b)
}

// Width returns the number of columns.
func (b Board) Width() int {
	if len(b) == 0 {
		return 0
	}
	return len(b[0])
}

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	out := make(Board, len(b))
	for y := range b {
		out[y] = append([]Cell(nil), b[y]...)
	}
	return out
}

// Equal reports whether both boards hold the same cells.
func (b Board) Equal(other Board) bool {
	if b.Height() != other.Height() || b.Width() != other.Width() {
		return false
	}
	for y := range b {
		for x := range b[y] {
			if b[y][x] != other[y][x] {
				return false
			}
		}
	}
	return true
}

// InBounds reports whether (x, y) is on the board.
func (b Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.Width() && y >= 0 && y < b.Height()
}

// Filled reports whether (x, y) is occupied. Off-board coordinates count as filled.
func (b Board) Filled(x, y int) bool {
	if !b.InBounds(x, y) {
		return true
	}
	return b[y][x] != Empty
}

// Valid reports whether every row has the board width and every cell is in 0..8.
func (b Board) Valid() bool {
	w := b.Width()
	for _, row := range b {
		if len(row) != w {
			return false
		}
		for _, c := range row {
			if c > Garbage {
				return false
			}
		}
	}
	return true
}

// RowFull reports whether row y has no empty cell.
func (b Board) RowFull(y int) bool {
	for _, c := range b[y] {
		if c == Empty {
			return false
		}
	}
	return true
}

// FullRows counts rows without an empty cell.
func (b Board) FullRows() int {
	n := 0
	for y := range b {
		if b.RowFull(y) {
			n++
		}
	}
	return n
}

// CanPlace reports whether shape fits at (x, y). Cells above the top edge are always allowed.
func CanPlace(b Board, s Shape, x, y int) bool {
	w, h := b.Width(), b.Height()
	for r, row := range s {
		for c, filled := range row {
			if !filled {
				continue
			}
			bx, by := x+c, y+r
			if bx < 0 || bx >= w || by >= h {
				return false
			}
			if by >= 0 && b[by][bx] != Empty {
				return false
			}
		}
	}
	return true
}

// DropRow returns the lowest row the shape can descend to from y without colliding.
func DropRow(b Board, s Shape, x, y int) int {
	for CanPlace(b, s, x, y+1) {
		y++
	}
	return y
}

// Stamp writes the piece into the board with value kind+1. Cells outside the board are skipped.
func Stamp(b Board, p Piece) {
	v := p.Kind.Cell()
	p.Cells(func(x, y int) {
		if b.InBounds(x, y) {
			b[y][x] = v
		}
	})
}

// ClearLines removes full rows bottom-to-top, inserting empty rows at the top. It returns the
// number of rows removed and their indices in the pre-clear board.
func ClearLines(b Board) (int, []int) {
	var rows []int
	w := b.Width()
	offset := 0
	for y := len(b) - 1; y >= 0; y-- {
		if !b.RowFull(y) {
			continue
		}
		rows = append(rows, y-offset)
		copy(b[1:y+1], b[:y])
		b[0] = make([]Cell, w)
		offset++
		y++
	}
	return len(rows), rows
}

// InjectGarbage removes n rows from the top and appends n garbage rows at the bottom, each
// full except one uniformly random hole.
func InjectGarbage(b Board, n int, rng *rand.Rand) {
	h, w := b.Height(), b.Width()
	if n <= 0 || h == 0 {
		return
	}
	if n > h {
		n = h
	}
	copy(b, b[n:])
	for y := h - n; y < h; y++ {
		row := make([]Cell, w)
		for x := range row {
			row[x] = Garbage
		}
		row[rng.IntN(w)] = Empty
		b[y] = row
	}
}

// IsTSpin applies the corner heuristic to a locked T piece at origin (x, y): at least three of
// the four diagonal neighbours of (x+1, y+1) must be filled, off-board corners counting as filled.
func IsTSpin(b Board, k Kind, x, y int) bool {
	if k != T {
		return false
	}
	cx, cy := x+1, y+1
	filled := 0
	for _, d := range [4][2]int{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}} {
		if b.Filled(cx+d[0], cy+d[1]) {
			filled++
		}
	}
	return filled >= 3
}

// ColumnHeights returns, per column, the distance from the first filled cell to the bottom.
func ColumnHeights(b Board) []int {
	h := b.Height()
	heights := make([]int, b.Width())
	for x := range heights {
		for y := 0; y < h; y++ {
			if b[y][x] != Empty {
				heights[x] = h - y
				break
			}
		}
	}
	return heights
}
