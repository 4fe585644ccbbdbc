package ebiten_test

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockduel/debugui"
	debugui_ebiten "github.com/plus3/blockduel/debugui/ebiten"
	"github.com/plus3/blockduel/game"
)

// Game runs a match with the debug overlay on top.
type Game struct {
	match   *game.Match
	overlay *debugui.Overlay
	backend *debugui_ebiten.ImguiBackend
	stats   *debugui.PerformanceStats
	timer   *debugui.FrameTimer
}

func (g *Game) Update() error {
	dt := g.timer.Delta()
	g.stats.History.Record(dt)

	// Overlay frame first so its input capture state is current
	g.backend.Frame(g.overlay, dt)

	g.match.Tick(time.Second / 60)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Draw the boards
	// ...

	// Draw ImGui overlay on top
	g.backend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	backend := debugui_ebiten.New("blockduel debug", 1280, 720)

	m := game.New(game.BattleConfig())
	overlay := debugui.NewOverlay(log.Default())
	stats := debugui.NewPerformanceStats(120, m.Scheduler().GetStats)
	overlay.Add(stats.Render)
	overlay.Add((&debugui.MatchPanel{Match: m}).Render)
	overlay.Add((&debugui.AIPanel{Match: m, Player: game.AI}).Render)

	g := &Game{
		match:   m,
		overlay: overlay,
		backend: backend,
		stats:   stats,
		timer:   debugui.NewFrameTimer(),
	}

	if err := ebiten.RunGame(g); err != nil {
		panic(err)
	}
}
