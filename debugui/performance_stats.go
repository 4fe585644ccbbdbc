package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockduel/sim"
)

// FrameHistory is a ring of recent frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	index   int
	filled  int
}

// NewFrameHistory keeps the last n frames.
func NewFrameHistory(n int) *FrameHistory {
	return &FrameHistory{samples: make([]float32, max(1, n))}
}

// Record appends a frame time, overwriting the oldest once full.
func (h *FrameHistory) Record(dt time.Duration) {
	h.samples[h.index] = float32(dt.Seconds() * 1000)
	h.index = (h.index + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// Average returns the mean of the recorded frames in milliseconds.
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, ft := range h.samples {
		sum += ft
	}
	return sum / float32(h.filled)
}

// PerformanceStats shows frame timing and per-system scheduler statistics.
type PerformanceStats struct {
	History *FrameHistory
	Stats   func() *sim.SchedulerStats
}

// NewPerformanceStats creates the panel. stats is polled on every render.
func NewPerformanceStats(historyFrames int, stats func() *sim.SchedulerStats) *PerformanceStats {
	return &PerformanceStats{
		History: NewFrameHistory(historyFrames),
		Stats:   stats,
	}
}

func (ps *PerformanceStats) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(340, 300), imgui.CondOnce)
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	avg := ps.History.Average()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}
	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.History.samples[0], int32(len(ps.History.samples)))

	stats := ps.Stats()
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Ticks: %d", stats.Ticks))
	imgui.Text(fmt.Sprintf("Simulated: %s", stats.SimTime.Truncate(time.Millisecond)))

	if imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, sys := range stats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.Runs))
				imgui.TableNextColumn()
				imgui.Text(sys.Avg.String())
				imgui.TableNextColumn()
				imgui.Text(sys.Max.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

// FrameTimer measures wall-clock time between frames.
type FrameTimer struct {
	last time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{last: time.Now()}
}

// Delta returns the time since the previous call.
func (ft *FrameTimer) Delta() time.Duration {
	now := time.Now()
	d := now.Sub(ft.last)
	ft.last = now
	return d
}
