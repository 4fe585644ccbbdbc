package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/blockduel/game"
	"github.com/plus3/blockduel/session"
	"github.com/plus3/blockduel/tetris"
)

const (
	cellSize    = 24
	previewCell = 14
	margin      = 20
	sidePanel   = 120
	boardPixW   = tetris.DefaultWidth * cellSize
	boardPixH   = tetris.DefaultHeight * cellSize
	headerH     = 40

	screenWidth  = 2*(margin+boardPixW+sidePanel) + margin
	screenHeight = headerH + boardPixH + 2*margin
)

var (
	backgroundColor = color.RGBA{R: 16, G: 16, B: 24, A: 255}
	wellColor       = color.RGBA{R: 28, G: 28, B: 40, A: 255}
	gridColor       = color.RGBA{R: 40, G: 40, B: 56, A: 255}
	dimColor        = color.RGBA{R: 0, G: 0, B: 0, A: 160}
)

func boardOrigin(side int) image.Point {
	return image.Pt(margin+side*(boardPixW+sidePanel+margin), headerH+margin)
}

func drawSide(screen *ebiten.Image, v game.View, o image.Point, banner string) {
	x0, y0 := float32(o.X), float32(o.Y)
	vector.DrawFilledRect(screen, x0, y0, boardPixW, boardPixH, wellColor, false)

	for y := range v.Board.Height() {
		for x := range v.Board.Width() {
			cx, cy := x0+float32(x*cellSize), y0+float32(y*cellSize)
			cell, ghost := v.At(x, y)
			if ghost {
				c := tetris.ColorOf(v.Piece.Kind)
				vector.DrawFilledRect(screen, cx+1, cy+1, cellSize-2, cellSize-2, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 60}, false)
				continue
			}
			if c, ok := tetris.CellColor(cell); ok {
				vector.DrawFilledRect(screen, cx+1, cy+1, cellSize-2, cellSize-2, c, false)
				continue
			}
			vector.StrokeRect(screen, cx, cy, cellSize, cellSize, 1, gridColor, false)
		}
	}

	px, py := o.X+boardPixW+10, o.Y
	ebitenutil.DebugPrintAt(screen, v.Player.String(), px, py)
	ebitenutil.DebugPrintAt(screen, "NEXT", px, py+24)
	drawPreview(screen, v.Next, px, py+40)

	held := "HOLD"
	if !v.CanHold {
		held = "HOLD (used)"
	}
	ebitenutil.DebugPrintAt(screen, held, px, py+90)
	if v.HasHeld {
		drawPreview(screen, v.Held, px, py+106)
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("SCORE\n%d", v.Score), px, py+160)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("LINES\n%d", v.Lines), px, py+200)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("LEVEL\n%d", v.Level), px, py+240)
	if v.Combo > 1 {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("COMBO\nx%d", v.Combo), px, py+280)
	}

	if banner != "" {
		vector.DrawFilledRect(screen, x0, y0+boardPixH/2-14, boardPixW, 28, dimColor, false)
		ebitenutil.DebugPrintAt(screen, banner, o.X+8, o.Y+boardPixH/2-8)
	}
	if v.Over || v.Paused {
		vector.DrawFilledRect(screen, x0, y0, boardPixW, boardPixH, dimColor, false)
	}
}

func drawPreview(screen *ebiten.Image, k tetris.Kind, x, y int) {
	if !k.Valid() {
		return
	}
	shape, c := tetris.ShapeOf(k), tetris.ColorOf(k)
	for r := range shape.Rows() {
		for col := range shape.Cols() {
			if shape[r][col] {
				vector.DrawFilledRect(screen, float32(x+col*previewCell), float32(y+r*previewCell), previewCell-1, previewCell-1, c, false)
			}
		}
	}
}

func drawStatus(screen *ebiten.Image, s *session.Session, m *game.Match) {
	ebitenutil.DebugPrintAt(screen, s.Title(), margin, 8)
	ebitenutil.DebugPrintAt(screen, "arrows/WASD move  up rotate  space drop  shift hold  P pause  R restart  M mute  Q quit", margin, 22)

	switch outcome, over := m.Outcome(); {
	case over:
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s WINS - press R", outcome.Winner), screenWidth/2-60, headerH+margin+boardPixH/2-30)
	case m.Paused():
		ebitenutil.DebugPrintAt(screen, "PAUSED", screenWidth/2-20, headerH+margin+boardPixH/2-30)
	}
}
