// Package ebiten hosts the debug overlay on the Ebiten Dear ImGui backend.
package ebiten

import (
	"time"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockduel/debugui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// New creates the backend and its window. imgui.ini persistence is disabled.
func New(title string, width, height int) *ImguiBackend {
	b := ebitenbackend.NewEbitenBackend()
	b.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{EbitenBackend: b}
}

// Frame runs one overlay frame between BeginFrame and EndFrame. Call it from ebiten's Update.
func (b *ImguiBackend) Frame(o *debugui.Overlay, dt time.Duration) {
	b.BeginFrame()
	o.Once(dt)
	b.EndFrame()
}
