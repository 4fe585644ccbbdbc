package main

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/blockduel/audio"
	"github.com/plus3/blockduel/debugui"
	debugui_ebiten "github.com/plus3/blockduel/debugui/ebiten"
	"github.com/plus3/blockduel/game"
	"github.com/plus3/blockduel/session"
	"github.com/plus3/blockduel/sim"
)

const bannerTime = 1500 * time.Millisecond

type ebitenKeys struct{}

func (ebitenKeys) Duration(k ebiten.Key) int  { return inpututil.KeyPressDuration(k) }
func (ebitenKeys) Released(k ebiten.Key) bool { return inpututil.IsKeyJustReleased(k) }

// banner is a short message drawn over one board.
type banner struct {
	text  string
	until time.Duration
}

// App implements ebiten.Game around one match at a time.
type App struct {
	session *session.Session
	match   *game.Match
	sound   *audio.Player
	logger  *log.Logger

	banners [2]banner

	overlay    *debugui.Overlay
	backend    *debugui_ebiten.ImguiBackend
	perf       *debugui.PerformanceStats
	matchPanel *debugui.MatchPanel
	aiPanel    *debugui.AIPanel
	keyPanel   *debugui.KeyRepeatPanel
	timer      *debugui.FrameTimer
}

func newApp(s *session.Session, sound *audio.Player, logger *log.Logger) *App {
	a := &App{session: s, sound: sound, logger: logger}
	a.restart()
	return a
}

// enableOverlay attaches the ImGui developer panels.
func (a *App) enableOverlay(backend *debugui_ebiten.ImguiBackend) {
	a.backend = backend
	a.timer = debugui.NewFrameTimer()
	a.overlay = debugui.NewOverlay(a.logger)
	a.perf = debugui.NewPerformanceStats(120, func() *sim.SchedulerStats { return a.match.Scheduler().GetStats() })
	a.matchPanel = &debugui.MatchPanel{Match: a.match}
	a.aiPanel = &debugui.AIPanel{Match: a.match, Player: game.AI, Learner: a.session.Learner}
	a.overlay.Add(a.perf.Render)
	a.overlay.Add(a.matchPanel.Render)
	a.keyPanel = &debugui.KeyRepeatPanel{Session: a.session, Match: a.match}
	a.overlay.Add(a.aiPanel.Render)
	a.overlay.Add(a.keyPanel.Render)
}

func (a *App) restart() {
	a.match = a.session.NewMatch()
	a.banners = [2]banner{}
	a.match.Subscribe(a.onEvent)
	if a.sound != nil {
		a.match.Subscribe(a.sound.Handle)
	}
	if a.matchPanel != nil {
		a.matchPanel.Match = a.match
		a.aiPanel.Match = a.match
		a.keyPanel.Match = a.match
	}
	ebiten.SetWindowTitle("blockduel - " + a.session.Title())
}

func (a *App) onEvent(ev game.Event) {
	switch ev.Kind {
	case game.EventCleared:
		text := fmt.Sprintf("%s +%d", ev.Name, ev.Points)
		if ev.Combo > 1 {
			text += fmt.Sprintf(" COMBO x%d", ev.Combo)
		}
		a.banners[ev.Player] = banner{text: text, until: a.match.Clock() + bannerTime}
	case game.EventGameOver:
		a.logger.Printf("game over: %s wins (%d - %d)", ev.Outcome.Winner, ev.Outcome.Scores[game.Human], ev.Outcome.Scores[game.AI])
		ebiten.SetWindowTitle("blockduel - " + a.session.Title())
	}
}

func (a *App) Update() error {
	if a.backend != nil {
		dt := a.timer.Delta()
		a.perf.History.Record(dt)
		a.backend.Frame(a.overlay, dt)
	}

	captured := a.overlay != nil && a.overlay.Input.WantCaptureKeyboard
	if !captured {
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
			return ebiten.Termination
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			a.restart()
			return nil
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyP) {
			a.match.SetPaused(!a.match.Paused())
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyM) && a.sound != nil {
			a.sound.Muted = !a.sound.Muted
		}
	}

	for _, in := range uncaptured(inputsFor(ebitenKeys{}), captured) {
		a.match.Input(game.Human, in)
	}

	a.match.Tick(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	for i, p := range game.Players {
		drawSide(screen, a.match.View(p), boardOrigin(i), a.bannerFor(p))
	}
	drawStatus(screen, a.session, a.match)

	if a.backend != nil {
		a.backend.Draw(screen)
	}
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if a.backend != nil {
		a.backend.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return screenWidth, screenHeight
}

func (a *App) bannerFor(p game.Player) string {
	b := a.banners[p]
	if b.text == "" || a.match.Clock() >= b.until {
		return ""
	}
	return b.text
}
