package ai

import "time"

const (
	DefaultThinkStep        = 16 * time.Millisecond
	DefaultDecisionInterval = 100 * time.Millisecond
)

// Action is a single input the driver asks the game to perform.
type Action int

const (
	ActionNone Action = iota
	ActionHold
	ActionRotate
	ActionLeft
	ActionRight
	ActionHardDrop
	ActionForceLock
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionHold:
		return "hold"
	case ActionRotate:
		return "rotate"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionHardDrop:
		return "hard-drop"
	case ActionForceLock:
		return "force-lock"
	}
	return "unknown"
}

// PieceState is the live position of the piece the driver is steering.
type PieceState struct {
	X        int
	Rotation int
	CanFall  bool
	Width    int
}

// Driver paces the planner. Every tick adds a fixed think step to an accumulator; once it
// reaches the decision interval the driver replans and emits one action.
type Driver struct {
	Step     time.Duration
	Interval time.Duration

	elapsed time.Duration
	last    Target
	hasLast bool
}

// NewDriver returns a driver with the default 16 ms step and 100 ms interval.
func NewDriver() *Driver {
	return &Driver{Step: DefaultThinkStep, Interval: DefaultDecisionInterval}
}

// Reset clears the decision accumulator.
func (d *Driver) Reset() {
	d.elapsed = 0
	d.hasLast = false
}

// LastTarget returns the most recent decision, if any.
func (d *Driver) LastTarget() (Target, bool) {
	return d.last, d.hasLast
}

// Think advances the decision clock by one tick and, when a decision is due, returns the next
// action toward the best target for the situation.
func (d *Driver) Think(p *Planner, s Situation, piece PieceState) Action {
	d.elapsed += d.Step
	if d.elapsed < d.Interval {
		return ActionNone
	}
	d.elapsed = 0

	target, ok := p.FindBestMove(s)
	d.last, d.hasLast = target, ok
	if !ok {
		if piece.CanFall {
			return ActionNone
		}
		return ActionForceLock
	}
	return Steer(target, piece)
}

// Steer returns the single action that moves piece one step closer to target: hold first, then
// rotation, then column, then the drop.
func Steer(target Target, piece PieceState) Action {
	if target.Hold {
		return ActionHold
	}
	if target.Rotation != piece.Rotation {
		return ActionRotate
	}
	x := target.X
	if x < 0 {
		x = 0
	}
	if piece.Width > 0 && x > piece.Width-1 {
		x = piece.Width - 1
	}
	switch {
	case piece.X < x:
		return ActionRight
	case piece.X > x:
		return ActionLeft
	case target.Drop:
		return ActionHardDrop
	}
	return ActionNone
}
