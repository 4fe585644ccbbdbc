package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockduel/ai"
	"github.com/plus3/blockduel/game"
	"github.com/plus3/blockduel/learning"
)

// WeightField is one editable heuristic weight.
type WeightField struct {
	Name  string
	Value *float64
}

// WeightFields exposes the editable weights of w in display order.
func WeightFields(w *ai.Weights) []WeightField {
	return []WeightField{
		{"Hole", &w.Hole},
		{"Height", &w.Height},
		{"Bumpiness", &w.Bumpiness},
		{"Line Clear", &w.LineClear},
		{"Aggression", &w.Aggression},
	}
}

// AIPanel shows and edits the planner of one side, plus the learning state when present.
type AIPanel struct {
	Match   *game.Match
	Player  game.Player
	Learner *learning.Controller
}

func (p *AIPanel) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(360, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 360), imgui.CondOnce)
	if !imgui.BeginV(fmt.Sprintf("AI (%s)", p.Player), nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	planner := p.Match.Planner(p.Player)
	w := planner.Weights()
	changed := false
	for _, f := range WeightFields(&w) {
		v := float32(*f.Value)
		imgui.Text(fmt.Sprintf("%s:", f.Name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat("##"+f.Name, &v) {
			*f.Value = float64(v)
			changed = true
		}
	}
	imgui.Text(fmt.Sprintf("Planning Depth: %d", w.PlanningDepth))
	if changed {
		planner.SetWeights(w)
	}
	if imgui.Button("Reset to battle weights") {
		planner.SetWeights(ai.BattleWeights())
	}

	imgui.Separator()
	hits, misses := planner.CacheStats()
	imgui.Text(fmt.Sprintf("Cache: %d hits / %d misses", hits, misses))
	if target, ok := p.Match.Driver(p.Player).LastTarget(); ok {
		imgui.Text(fmt.Sprintf("Target: x=%d rot=%d %s hold=%t (%.1f)", target.X, target.Rotation, target.Source, target.Hold, target.Score))
	} else {
		imgui.Text("Target: none")
	}

	if imgui.TreeNodeStr("Actions") {
		actions := p.Match.Actions(p.Player)
		for a := ai.ActionNone; a <= ai.ActionForceLock; a++ {
			imgui.BulletText(fmt.Sprintf("%s: %d", a, actions[a]))
		}
		imgui.TreePop()
	}

	if p.Learner != nil {
		imgui.Separator()
		v := p.Learner.Values()
		imgui.Text(fmt.Sprintf("Skill: %.1f (%s)", v.SkillLevel, p.Learner.SkillName()))
		imgui.Text(fmt.Sprintf("Record: %d W / %d L", v.Wins, v.Losses))
		imgui.ProgressBarV(float32(p.Learner.WinRate()), imgui.NewVec2(-1, 0), fmt.Sprintf("win rate %.0f%%", p.Learner.WinRate()*100))
		if imgui.Button("Recompute") {
			planner.SetWeights(p.Learner.Recompute())
		}
	}

	imgui.End()
}
