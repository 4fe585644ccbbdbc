package game

import (
	"fmt"
	"time"
)

// EventKind classifies match events.
type EventKind int

const (
	EventLocked EventKind = iota
	EventCleared
	EventGarbage
	EventHold
	EventLevelUp
	EventGameOver
)

func (k EventKind) String() string {
	switch k {
	case EventLocked:
		return "locked"
	case EventCleared:
		return "cleared"
	case EventGarbage:
		return "garbage"
	case EventHold:
		return "hold"
	case EventLevelUp:
		return "level-up"
	case EventGameOver:
		return "game-over"
	}
	return "unknown"
}

// Event is delivered to subscribers after the tick that produced it. Fields not relevant to the
// kind are zero.
type Event struct {
	Kind   EventKind
	Player Player

	Lines  int
	Rows   []int
	TSpin  bool
	Combo  int
	Points int
	Name   string

	// Garbage is the number of rows sent to Player's opponent.
	Garbage int
	Level   int
	Outcome Outcome
}

func (e Event) String() string {
	switch e.Kind {
	case EventCleared:
		return fmt.Sprintf("%s %s %s x%d +%d", e.Player, e.Kind, e.Name, e.Combo, e.Points)
	case EventGarbage:
		return fmt.Sprintf("%s %s %d -> %s", e.Player, e.Kind, e.Garbage, e.Player.Opponent())
	case EventLevelUp:
		return fmt.Sprintf("%s %s %d", e.Player, e.Kind, e.Level)
	case EventGameOver:
		return fmt.Sprintf("%s %s winner=%s", e.Player, e.Kind, e.Outcome.Winner)
	}
	return fmt.Sprintf("%s %s", e.Player, e.Kind)
}

// Outcome is the end-of-game summary.
type Outcome struct {
	Winner   Player
	Scores   [2]int
	Lines    [2]int
	Duration time.Duration
}
