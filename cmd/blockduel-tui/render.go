package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockduel/game"
	"github.com/plus3/blockduel/session"
	"github.com/plus3/blockduel/tetris"
)

const (
	headerRows = 2
	boardCols  = tetris.DefaultWidth*2 + 2
	panelCols  = 14
)

var (
	textStyle   = tcell.StyleDefault
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	ghostStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	titleStyle  = tcell.StyleDefault.Bold(true)
)

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

func kindStyle(c tetris.Cell) (tcell.Style, bool) {
	rgb, ok := tetris.CellColor(c)
	if !ok {
		return tcell.StyleDefault, false
	}
	return tcell.StyleDefault.Background(tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B))), true
}

func sideOrigin(side int) int {
	return 1 + side*(boardCols+panelCols)
}

func render(s tcell.Screen, sess *session.Session, m *game.Match, banners [2]string) {
	s.Clear()
	drawText(s, 1, 0, titleStyle, sess.Title())

	for i, p := range game.Players {
		drawBoard(s, m.View(p), sideOrigin(i), headerRows, banners[p])
	}

	footer := headerRows + tetris.DefaultHeight + 2
	switch outcome, over := m.Outcome(); {
	case over:
		drawText(s, 1, footer, titleStyle, fmt.Sprintf("%s WINS - r restarts, q quits", outcome.Winner))
	case m.Paused():
		drawText(s, 1, footer, titleStyle, "PAUSED - p resumes")
	default:
		drawText(s, 1, footer, textStyle, "arrows move/rotate/drop  space hard drop  c hold  p pause  q quit")
	}
	s.Show()
}

func drawBoard(s tcell.Screen, v game.View, x0, y0 int, banner string) {
	h, w := v.Board.Height(), v.Board.Width()
	for y := 0; y <= h+1; y++ {
		s.SetContent(x0, y0+y, '│', nil, borderStyle)
		s.SetContent(x0+w*2+1, y0+y, '│', nil, borderStyle)
	}
	for x := 1; x <= w*2; x++ {
		s.SetContent(x0+x, y0, '─', nil, borderStyle)
		s.SetContent(x0+x, y0+h+1, '─', nil, borderStyle)
	}

	for y := range h {
		for x := range w {
			cx, cy := x0+1+x*2, y0+1+y
			cell, ghost := v.At(x, y)
			switch st, ok := kindStyle(cell); {
			case ok:
				s.SetContent(cx, cy, ' ', nil, st)
				s.SetContent(cx+1, cy, ' ', nil, st)
			case ghost:
				s.SetContent(cx, cy, '[', nil, ghostStyle)
				s.SetContent(cx+1, cy, ']', nil, ghostStyle)
			default:
				s.SetContent(cx, cy, ' ', nil, textStyle)
				s.SetContent(cx+1, cy, '.', nil, borderStyle)
			}
		}
	}

	px := x0 + w*2 + 3
	drawText(s, px, y0, titleStyle, v.Player.String())
	drawText(s, px, y0+2, textStyle, "NEXT "+v.Next.String())
	held := "HOLD -"
	if v.HasHeld {
		held = "HOLD " + v.Held.String()
	}
	if !v.CanHold {
		held += "*"
	}
	drawText(s, px, y0+3, textStyle, held)
	drawText(s, px, y0+5, textStyle, fmt.Sprintf("SCORE %d", v.Score))
	drawText(s, px, y0+6, textStyle, fmt.Sprintf("LINES %d", v.Lines))
	drawText(s, px, y0+7, textStyle, fmt.Sprintf("LEVEL %d", v.Level))
	if v.Combo > 1 {
		drawText(s, px, y0+8, textStyle, fmt.Sprintf("COMBO x%d", v.Combo))
	}
	if banner != "" {
		if len(banner) > w*2 {
			banner = banner[:w*2]
		}
		drawText(s, x0+1, y0+h/2, titleStyle, banner)
	}
}
