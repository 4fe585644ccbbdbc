package sim_test

import (
	"bytes"
	"context"
	"log"
	"testing"
	"time"

	"github.com/plus3/blockduel/sim"
	"github.com/stretchr/testify/assert"
)

type counterWorld struct {
	Order   []string
	Elapsed time.Duration
}

type recordSystem struct {
	Label        string
	ExecuteCount int
}

func (s *recordSystem) Execute(frame *sim.Frame[*counterWorld]) {
	s.ExecuteCount++
	frame.World.Order = append(frame.World.Order, s.Label)
}

type clockSystem struct{}

func (clockSystem) Execute(frame *sim.Frame[*counterWorld]) {
	frame.World.Elapsed += frame.DeltaTime
}

func TestScheduler(t *testing.T) {
	t.Run("system execution order", func(t *testing.T) {
		world := &counterWorld{}
		scheduler := sim.NewScheduler(world, nil)

		first := &recordSystem{Label: "first"}
		second := &recordSystem{Label: "second"}
		scheduler.Register(first)
		scheduler.Register(second)

		scheduler.Once(16 * time.Millisecond)
		scheduler.Once(16 * time.Millisecond)

		assert.Equal(t, 2, first.ExecuteCount)
		assert.Equal(t, 2, second.ExecuteCount)
		assert.Equal(t, []string{"first", "second", "first", "second"}, world.Order)
	})

	t.Run("delta time accumulates", func(t *testing.T) {
		world := &counterWorld{}
		scheduler := sim.NewScheduler(world, nil)
		scheduler.Register(clockSystem{})

		var lastFrame sim.Frame[*counterWorld]
		scheduler.Register(sim.SystemFunc[*counterWorld](func(frame *sim.Frame[*counterWorld]) {
			lastFrame = *frame
		}))

		scheduler.Once(10 * time.Millisecond)
		scheduler.Once(25 * time.Millisecond)

		assert.Equal(t, 35*time.Millisecond, world.Elapsed)
		assert.Equal(t, int64(2), lastFrame.Tick)
		assert.Equal(t, 35*time.Millisecond, lastFrame.Time)
		assert.Equal(t, 25*time.Millisecond, lastFrame.DeltaTime)
	})

	t.Run("commands flush after all systems", func(t *testing.T) {
		world := &counterWorld{}
		scheduler := sim.NewScheduler(world, nil)

		scheduler.Register(sim.SystemFunc[*counterWorld](func(frame *sim.Frame[*counterWorld]) {
			frame.Commands.Defer("late", func() {
				frame.World.Order = append(frame.World.Order, "deferred")
			})
		}))
		scheduler.Register(&recordSystem{Label: "system"})

		scheduler.Once(time.Millisecond)

		assert.Equal(t, []string{"system", "deferred"}, world.Order)
		assert.Equal(t, 0, scheduler.Commands().Len())
	})

	t.Run("context cancellation in run", func(t *testing.T) {
		world := &counterWorld{}
		scheduler := sim.NewScheduler(world, nil)
		record := &recordSystem{Label: "run"}
		scheduler.Register(record)

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan bool)
		go func() {
			scheduler.Run(ctx, time.Millisecond)
			done <- true
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
			t.Fatal("scheduler did not stop after context cancellation")
		}

		assert.Greater(t, record.ExecuteCount, 0)
	})

	t.Run("stats", func(t *testing.T) {
		scheduler := sim.NewScheduler(&counterWorld{}, nil)
		scheduler.Register(&recordSystem{Label: "a"})
		scheduler.Register(clockSystem{})

		empty := scheduler.GetStats()
		assert.Equal(t, time.Duration(0), empty.Systems[0].Min)

		for i := 0; i < 3; i++ {
			scheduler.Once(time.Millisecond)
		}

		stats := scheduler.GetStats()
		assert.Equal(t, 2, stats.SystemCount)
		assert.Equal(t, int64(3), stats.Ticks)
		assert.Equal(t, 3*time.Millisecond, stats.SimTime)
		assert.Equal(t, "recordSystem", stats.Systems[0].Name)
		assert.Equal(t, "clockSystem", stats.Systems[1].Name)
		for _, system := range stats.Systems {
			assert.Equal(t, int64(3), system.Runs)
			assert.LessOrEqual(t, system.Min, system.Max)
		}
	})
}

func TestCommandsRecoverPanics(t *testing.T) {
	var buf bytes.Buffer
	commands := sim.NewCommands(log.New(&buf, "", 0))

	var ran []string
	commands.Defer("first", func() { ran = append(ran, "first") })
	commands.Defer("broken", func() { panic("missing display node") })
	commands.Defer("last", func() {
		ran = append(ran, "last")
		commands.Defer("nested", func() { ran = append(ran, "nested") })
	})

	assert.NotPanics(t, commands.Flush)
	assert.Equal(t, []string{"first", "last", "nested"}, ran)
	assert.Contains(t, buf.String(), `deferred "broken" failed: missing display node`)
	assert.Equal(t, 0, commands.Len())
}
