package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockduel/game"
	"github.com/plus3/blockduel/session"
)

// KeyRepeatPanel edits the DAS and ARR timings. Every change is saved and applied to the
// running match.
type KeyRepeatPanel struct {
	Session *session.Session
	Match   *game.Match
}

func (p *KeyRepeatPanel) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(690, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(260, 130), imgui.CondOnce)
	if !imgui.BeginV("Key Repeat", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	das, arr := p.Session.KeyRepeat()
	das32, arr32 := int32(das), int32(arr)
	changed := false
	imgui.SetNextItemWidth(120)
	if imgui.InputInt("DAS (ms)", &das32) {
		changed = true
	}
	imgui.SetNextItemWidth(120)
	if imgui.InputInt("ARR (ms)", &arr32) {
		changed = true
	}
	if changed {
		p.Session.SetKeyRepeat(p.Match, int(max(0, das32)), int(max(0, arr32)))
	}

	if imgui.Button("Reset") {
		p.Session.ResetKeyRepeat(p.Match)
	}
	imgui.SameLine()
	imgui.Text(fmt.Sprintf("repeat after %dms, every %dms", das, arr))

	imgui.End()
}
