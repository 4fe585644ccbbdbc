// Package debugui provides a Dear ImGui developer overlay for a running match.
// Panels are plain render functions collected on an Overlay and executed by a small scheduler
// of their own, so they keep drawing while the match is paused or over.
package debugui

import (
	"log"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockduel/sim"
)

// Item holds a Dear ImGui render function.
type Item struct {
	Render func()
}

// InputState tracks whether ImGui is consuming mouse or keyboard input.
// Frontends check it before forwarding keys to the match.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay is the world of the overlay scheduler.
type Overlay struct {
	Items []Item
	Input InputState

	scheduler *sim.Scheduler[*Overlay]
}

// NewOverlay creates an empty overlay. Panics raised by a panel are reported to logger.
func NewOverlay(logger *log.Logger) *Overlay {
	o := &Overlay{}
	o.scheduler = sim.NewScheduler(o, logger)
	o.scheduler.Register(&ImguiSystem{})
	return o
}

// Add appends a panel.
func (o *Overlay) Add(render func()) {
	o.Items = append(o.Items, Item{Render: render})
}

// Once runs one overlay frame. Call it between the backend's BeginFrame and EndFrame.
func (o *Overlay) Once(dt time.Duration) {
	o.scheduler.Once(dt)
}

// ImguiSystem updates the input capture state and defers every panel's render function.
type ImguiSystem struct{}

// Execute queues all ImGui render functions for execution.
func (ImguiSystem) Execute(frame *sim.Frame[*Overlay]) {
	o := frame.World
	io := imgui.CurrentIO()
	o.Input.WantCaptureMouse = io.WantCaptureMouse()
	o.Input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for _, item := range o.Items {
		frame.Commands.Defer("imgui", item.Render)
	}
}
