package sim_test

import (
	"context"
	"fmt"
	"time"

	"github.com/plus3/blockduel/sim"
)

type walker struct {
	Position int
	Speed    int
}

type MoveSystem struct{}

func (MoveSystem) Execute(frame *sim.Frame[*walker]) {
	frame.World.Position += frame.World.Speed
}

// ExampleScheduler builds a two-system loop. Systems run in registration order and deferred
// commands run after every system has finished.
func ExampleScheduler() {
	w := &walker{Speed: 2}
	scheduler := sim.NewScheduler(w, nil)
	scheduler.Register(MoveSystem{})
	scheduler.Register(sim.SystemFunc[*walker](func(frame *sim.Frame[*walker]) {
		pos := frame.World.Position
		frame.Commands.Defer("report", func() {
			fmt.Printf("tick %d at %s: position %d\n", frame.Tick, frame.Time, pos)
		})
	}))

	scheduler.Once(100 * time.Millisecond)
	scheduler.Once(100 * time.Millisecond)

	// Output:
	// tick 1 at 100ms: position 2
	// tick 2 at 200ms: position 4
}

// ExampleScheduler_Run drives the scheduler from a wall-clock ticker until the context ends.
func ExampleScheduler_Run() {
	scheduler := sim.NewScheduler(&walker{Speed: 1}, nil)
	scheduler.Register(MoveSystem{})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	scheduler.Run(ctx, 16*time.Millisecond)

	fmt.Println("Scheduler stopped")
	// Output:
	// Scheduler stopped
}
