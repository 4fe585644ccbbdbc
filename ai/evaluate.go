package ai

import (
	"github.com/plus3/blockduel/tetris"
)

const (
	lowStackBonus     = 100.0
	lowStackHeight    = 10
	flatStackBonus    = 200.0
	flatStackHeight   = 5
	sentinelScore     = -1000.0
	searchMarginLeft  = 2
	searchMarginRight = 2
)

// Features are the board measurements the heuristic is built from.
type Features struct {
	Heights   []int
	Holes     int
	Height    int
	Bumpiness int
	Lines     int
}

// Analyze measures a board. A hole is an empty cell with a filled cell somewhere above it in
// the same column.
func Analyze(b tetris.Board) Features {
	f := Features{Heights: tetris.ColumnHeights(b)}
	h := b.Height()
	for x, colHeight := range f.Heights {
		for y := h - colHeight; y < h; y++ {
			if b[y][x] == tetris.Empty {
				f.Holes++
			}
		}
		if colHeight > f.Height {
			f.Height = colHeight
		}
	}
	for x := 0; x+1 < len(f.Heights); x++ {
		f.Bumpiness += abs(f.Heights[x] - f.Heights[x+1])
	}
	f.Lines = b.FullRows()
	return f
}

// Score applies the weights to the features, adding the flat low-stack bonuses.
func (f Features) Score(w Weights) float64 {
	score := float64(f.Lines)*w.LineClear +
		float64(f.Height)*w.Height +
		float64(f.Holes)*w.Hole +
		float64(f.Bumpiness)*w.Bumpiness
	if f.Height < lowStackHeight {
		score += lowStackBonus
	}
	if f.Height < flatStackHeight {
		score += flatStackBonus
	}
	return score
}

// Evaluate scores a board with the given weights.
func Evaluate(b tetris.Board, w Weights) float64 {
	return Analyze(b).Score(w)
}

// Placement is the best landing spot found for one piece kind.
type Placement struct {
	X        int
	Rotation int
	Score    float64
	Found    bool
}

// Sentinel is the result of a search that found no legal placement.
func Sentinel(width int) Placement {
	return Placement{X: width / 2, Rotation: 0, Score: sentinelScore}
}

// EvaluatePlacement tries every rotation of kind at every column from -2 to width+1, drops it
// from the top row and scores the resulting board. The first best placement wins ties.
func EvaluatePlacement(b tetris.Board, kind tetris.Kind, w Weights) Placement {
	best := Sentinel(b.Width())
	scratch := b.Clone()
	shape := tetris.ShapeOf(kind)

	for rotation := 0; rotation < 4; rotation++ {
		for x := -searchMarginLeft; x < b.Width()+searchMarginRight; x++ {
			y := tetris.DropRow(b, shape, x, 0)
			if !tetris.CanPlace(b, shape, x, y) {
				continue
			}
			piece := tetris.Piece{Kind: kind, Shape: shape, X: x, Y: y}
			if !landsOnBoard(b, piece) {
				continue
			}

			restore(scratch, b)
			tetris.Stamp(scratch, piece)
			score := Evaluate(scratch, w)

			if !best.Found || score > best.Score {
				best = Placement{X: x, Rotation: rotation, Score: score, Found: true}
			}
		}
		shape = tetris.Rotate(shape)
	}
	return best
}

func landsOnBoard(b tetris.Board, p tetris.Piece) bool {
	inside := false
	p.Cells(func(x, y int) {
		if b.InBounds(x, y) {
			inside = true
		}
	})
	return inside
}

func restore(dst, src tetris.Board) {
	for y := range src {
		copy(dst[y], src[y])
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
