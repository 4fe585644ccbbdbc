// Package sim drives a world forward in fixed ticks. Systems run in registration order each
// tick and side effects queued on the frame's Commands are flushed once all systems are done.
package sim

import (
	"context"
	"log"
	"reflect"
	"time"
)

// SchedulerStats is a snapshot of how much work a scheduler has done.
type SchedulerStats struct {
	SystemCount int
	Ticks       int64
	SimTime     time.Duration
	Systems     []SystemStats
}

// SystemStats is the wall-clock cost of one system. Min is zero until the system has run.
type SystemStats struct {
	Name  string
	Runs  int64
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
	Last  time.Duration
	Total time.Duration
}

// timing accumulates run durations for one registered system.
type timing struct {
	name  string
	runs  int64
	min   time.Duration
	max   time.Duration
	last  time.Duration
	total time.Duration
}

func (t *timing) observe(d time.Duration) {
	if t.runs == 0 || d < t.min {
		t.min = d
	}
	t.max = max(t.max, d)
	t.last = d
	t.total += d
	t.runs++
}

func (t *timing) snapshot() SystemStats {
	out := SystemStats{Name: t.name, Runs: t.runs, Min: t.min, Max: t.max, Last: t.last, Total: t.total}
	if t.runs > 0 {
		out.Avg = t.total / time.Duration(t.runs)
	}
	return out
}

// Scheduler advances a world of type W by running its systems in order.
type Scheduler[W any] struct {
	world    W
	systems  []System[W]
	timings  []*timing
	commands *Commands
	ticks    int64
	simTime  time.Duration
}

// NewScheduler creates a scheduler for the given world. Panics raised by deferred commands are
// reported to logger; a nil logger uses log.Default().
func NewScheduler[W any](world W, logger *log.Logger) *Scheduler[W] {
	return &Scheduler[W]{
		world:    world,
		commands: newCommands(logger),
	}
}

// Register appends a system. Systems execute in registration order and are reported under
// their type name.
func (s *Scheduler[W]) Register(system System[W]) {
	s.systems = append(s.systems, system)
	s.timings = append(s.timings, &timing{name: systemName(system)})
}

func systemName(system any) string {
	t := reflect.TypeOf(system)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	return t.Name()
}

// Commands returns the buffer flushed at the end of every tick. Operations performed outside
// a tick can queue side effects here too; they run on the next flush.
func (s *Scheduler[W]) Commands() *Commands {
	return s.commands
}

// Once executes all registered systems once with the given simulated delta.
func (s *Scheduler[W]) Once(dt time.Duration) {
	s.ticks++
	s.simTime += dt
	frame := &Frame[W]{
		DeltaTime: dt,
		Tick:      s.ticks,
		Time:      s.simTime,
		World:     s.world,
		Commands:  s.commands,
	}

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		s.timings[i].observe(time.Since(start))
	}

	s.commands.Flush()
}

// Run executes ticks at the given interval until the context is cancelled. Each tick receives
// the wall-clock time elapsed since the previous one.
func (s *Scheduler[W]) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Once(now.Sub(last))
			last = now
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler[W]) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Ticks:       s.ticks,
		SimTime:     s.simTime,
		Systems:     make([]SystemStats, 0, len(s.timings)),
	}
	for _, t := range s.timings {
		stats.Systems = append(stats.Systems, t.snapshot())
	}
	return stats
}
