package game

import (
	"github.com/plus3/blockduel/ai"
	"github.com/plus3/blockduel/sim"
)

// Frame is the per-tick context every match system receives.
type Frame = sim.Frame[*Match]

// InputSystem drains the input queue. Directional presses start the key-repeat state machines.
type InputSystem struct{}

func (s *InputSystem) Execute(frame *Frame) {
	m := frame.World
	queued := m.inputs
	m.inputs = nil

	for _, q := range queued {
		if m.over {
			return
		}
		p := q.player
		switch q.input {
		case InputMoveLeft:
			if m.shift[p][left].Press() {
				m.move(p, -1, 0)
			}
		case InputMoveRight:
			if m.shift[p][right].Press() {
				m.move(p, 1, 0)
			}
		case InputReleaseLeft:
			m.shift[p][left].Release()
		case InputReleaseRight:
			m.shift[p][right].Release()
		case InputRotate:
			m.rotate(p)
		case InputSoftDrop:
			m.move(p, 0, 1)
		case InputHardDrop:
			m.hardDrop(p)
		case InputHold:
			m.hold(p)
		}
	}
}

// ShiftSystem advances held direction keys and applies auto-repeat moves.
type ShiftSystem struct{}

func (s *ShiftSystem) Execute(frame *Frame) {
	m := frame.World
	das, arr := m.cfg.DASDelay, m.cfg.ARRSpeed
	for _, p := range Players {
		if m.shift[p][left].Advance(frame.DeltaTime, das, arr) {
			m.move(p, -1, 0)
		}
		if m.shift[p][right].Advance(frame.DeltaTime, das, arr) {
			m.move(p, 1, 0)
		}
	}
}

// GravitySystem drops each active piece one row per fall interval, locking it when it cannot
// move.
type GravitySystem struct{}

func (s *GravitySystem) Execute(frame *Frame) {
	m := frame.World
	for _, p := range Players {
		if m.over {
			return
		}
		ps := m.players[p]
		ps.FallTimer += frame.DeltaTime
		if ps.FallTimer < m.fallInterval {
			continue
		}
		ps.FallTimer = 0
		if !m.move(p, 0, 1) {
			m.lock(p)
		}
	}
}

// PlannerSystem lets planner-controlled players think and act once per decision cycle.
type PlannerSystem struct{}

func (s *PlannerSystem) Execute(frame *Frame) {
	m := frame.World
	for _, p := range Players {
		if m.over {
			return
		}
		if m.control[p] != ControlPlanner {
			continue
		}
		ps := m.players[p]
		situation := ai.Situation{
			Board:   ps.Board,
			Current: ps.Piece.Kind,
			Next:    ps.Next,
			Held:    ps.Held,
			HasHeld: ps.HasHeld,
			CanHold: ps.CanHold,
		}
		piece := ai.PieceState{
			X:        ps.Piece.X,
			Rotation: ps.Piece.Rotation,
			CanFall:  ps.CanFall(),
			Width:    ps.Board.Width(),
		}
		m.apply(p, m.drivers[p].Think(m.planners[p], situation, piece))
	}
}

// apply performs one driver action for p.
func (m *Match) apply(p Player, action ai.Action) {
	if action != ai.ActionNone {
		if m.actions[p] == nil {
			m.actions[p] = make(map[ai.Action]int)
		}
		m.actions[p][action]++
	}
	switch action {
	case ai.ActionHold:
		m.hold(p)
	case ai.ActionRotate:
		if !m.rotate(p) {
			// A blocked turn still advances the counter so the driver moves on to the column.
			ps := m.players[p]
			ps.Piece.Rotation = (ps.Piece.Rotation + 1) % 4
		}
	case ai.ActionLeft:
		m.move(p, -1, 0)
	case ai.ActionRight:
		m.move(p, 1, 0)
	case ai.ActionHardDrop:
		m.hardDrop(p)
	case ai.ActionForceLock:
		m.lock(p)
	}
}
