package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockduel/game"
)

// PlayerRow is the per-player line of the match panel.
type PlayerRow struct {
	Name    string
	Control string
	Score   int
	Lines   int
	Combo   int
	Held    string
	Next    string
}

// PlayerRows summarises both sides of m.
func PlayerRows(m *game.Match) []PlayerRow {
	rows := make([]PlayerRow, 0, len(game.Players))
	for _, p := range game.Players {
		v := m.View(p)
		control := "manual"
		if m.Control(p) == game.ControlPlanner {
			control = "planner"
		}
		held := "-"
		if v.HasHeld {
			held = v.Held.String()
		}
		rows = append(rows, PlayerRow{
			Name:    p.String(),
			Control: control,
			Score:   v.Score,
			Lines:   v.Lines,
			Combo:   v.Combo,
			Held:    held,
			Next:    v.Next.String(),
		})
	}
	return rows
}

// MatchPanel shows the shared match state and lets the developer pause it.
type MatchPanel struct {
	Match *game.Match
}

func (p *MatchPanel) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 320), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 220), imgui.CondOnce)
	if !imgui.BeginV("Match", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	m := p.Match
	switch {
	case m.Over():
		imgui.TextColored(imgui.NewVec4(1.0, 0.3, 0.3, 1.0), "GAME OVER")
	case m.Paused():
		imgui.TextColored(imgui.NewVec4(1.0, 0.8, 0.0, 1.0), "PAUSED")
	default:
		imgui.TextColored(imgui.NewVec4(0.0, 1.0, 0.0, 1.0), "RUNNING")
	}

	paused := m.Paused()
	if imgui.Checkbox("Pause", &paused) {
		m.SetPaused(paused)
	}
	imgui.Text(fmt.Sprintf("Clock: %s", m.Clock().Truncate(time.Second/10)))
	imgui.Text(fmt.Sprintf("Level: %d (fall every %s)", m.Level(), m.FallInterval()))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("PlayersTable", 7, tableFlags, imgui.NewVec2(0, 0), 0) {
		for _, col := range []string{"Player", "Control", "Score", "Lines", "Combo", "Held", "Next"} {
			imgui.TableSetupColumn(col)
		}
		imgui.TableHeadersRow()

		for _, row := range PlayerRows(m) {
			imgui.TableNextRow()
			for _, cell := range []string{
				row.Name,
				row.Control,
				fmt.Sprintf("%d", row.Score),
				fmt.Sprintf("%d", row.Lines),
				fmt.Sprintf("%d", row.Combo),
				row.Held,
				row.Next,
			} {
				imgui.TableNextColumn()
				imgui.Text(cell)
			}
		}
		imgui.EndTable()
	}

	if outcome, ok := m.Outcome(); ok {
		imgui.Separator()
		imgui.Text(fmt.Sprintf("Winner: %s after %s", outcome.Winner, outcome.Duration.Truncate(time.Second/10)))
	}

	imgui.End()
}
