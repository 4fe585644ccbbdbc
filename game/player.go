package game

// Player identifies one side of a match.
type Player int

const (
	Human Player = iota
	AI
)

// Players lists both sides in tick order.
var Players = [2]Player{Human, AI}

func (p Player) String() string {
	switch p {
	case Human:
		return "ARIA"
	case AI:
		return "AI"
	}
	return "unknown"
}

// Opponent returns the other side.
func (p Player) Opponent() Player {
	return 1 - p
}

// Control says who drives a player's pieces.
type Control int

const (
	ControlManual Control = iota
	ControlPlanner
)
