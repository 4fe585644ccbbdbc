package game

import "time"

// ShiftState is the state of one horizontal direction key.
type ShiftState int

const (
	ShiftIdle ShiftState = iota
	ShiftHeld
)

// Shifter turns key-down and key-up events for one direction into moves. The press itself
// moves once; after the key has been held for the DAS delay it repeats every ARR interval,
// measured from the previous move, and never more than once per tick. Time starts accumulating
// on the tick after the press, so the first repeat comes one tick later than a press-time clock
// would give.
type Shifter struct {
	state     ShiftState
	held      time.Duration
	sinceMove time.Duration
	fresh     bool
}

// State returns the current state.
func (s *Shifter) State() ShiftState {
	return s.state
}

// Press handles key-down. It returns true when the caller should apply the immediate move; a
// repeated key-down while already held is ignored.
func (s *Shifter) Press() bool {
	if s.state == ShiftHeld {
		return false
	}
	s.state = ShiftHeld
	s.held = 0
	s.sinceMove = 0
	s.fresh = true
	return true
}

// Release handles key-up.
func (s *Shifter) Release() {
	*s = Shifter{}
}

// Advance adds dt to the held timers and reports whether a repeat move is due. The tick in
// which the key went down does not count toward the delay.
func (s *Shifter) Advance(dt, das, arr time.Duration) bool {
	if s.state != ShiftHeld {
		return false
	}
	if s.fresh {
		s.fresh = false
		return false
	}
	s.held += dt
	s.sinceMove += dt
	if s.held < das || s.sinceMove < arr {
		return false
	}
	s.sinceMove = 0
	return true
}
