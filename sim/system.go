package sim

import "time"

// System is one phase of a tick. Implementations keep whatever state they need between
// frames in their own fields.
type System[W any] interface {
	Execute(frame *Frame[W])
}

// SystemFunc adapts a plain function to a System.
type SystemFunc[W any] func(frame *Frame[W])

// Execute calls f.
func (f SystemFunc[W]) Execute(frame *Frame[W]) {
	f(frame)
}

// Frame is the per-tick context handed to every system.
type Frame[W any] struct {
	DeltaTime time.Duration
	Tick      int64
	Time      time.Duration
	World     W
	Commands  *Commands
}
