// Package game runs a two-player match: gravity, key repeat, locking, line clears, combos,
// garbage and the computer opponent, advanced one fixed tick at a time.
package game

import (
	"context"
	"log"
	"maps"
	"math/rand/v2"
	"time"

	"github.com/plus3/blockduel/ai"
	"github.com/plus3/blockduel/sim"
	"github.com/plus3/blockduel/tetris"
)

// Dealer picks the next piece kind for a player.
type Dealer func(p Player) tetris.Kind

// Learner adapts the opponent's weights. learning.Controller implements it.
type Learner interface {
	Recompute() ai.Weights
	RecordOutcome(humanWon bool) ai.Weights
}

// Option configures a Match.
type Option func(*Match)

// WithRand sets the random source for piece draws and garbage holes.
func WithRand(rng *rand.Rand) Option {
	return func(m *Match) { m.rng = rng }
}

// WithSeed is WithRand over a PCG source seeded with seed.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// WithDealer replaces the uniform random piece draw.
func WithDealer(d Dealer) Option {
	return func(m *Match) { m.dealer = d }
}

// WithLearner attaches an adaptive opponent. It is consulted at start, whenever the level
// rises through the human's clears, and at game over.
func WithLearner(l Learner) Option {
	return func(m *Match) { m.learner = l }
}

// WithControl chooses who drives p. By default the human is manual and the AI uses the planner.
func WithControl(p Player, c Control) Option {
	return func(m *Match) { m.control[p] = c }
}

// WithLogger sets the logger for recovered event handler panics.
func WithLogger(l *log.Logger) Option {
	return func(m *Match) { m.logger = l }
}

// Match is a running game between Human and AI. It is not safe for concurrent use; hosts call
// Tick from their frame loop and hand input over with Input.
type Match struct {
	cfg     Config
	players [2]*PlayerState
	shift   [2][2]Shifter

	control  [2]Control
	planners [2]*ai.Planner
	drivers  [2]*ai.Driver
	actions  [2]map[ai.Action]int

	level        int
	fallInterval time.Duration
	clock        time.Duration
	paused       bool
	over         bool
	outcome      Outcome

	inputs      []queuedInput
	subscribers []func(Event)
	ticking     bool

	rng     *rand.Rand
	dealer  Dealer
	learner Learner
	logger  *log.Logger

	scheduler *sim.Scheduler[*Match]
}

const (
	left  = 0
	right = 1
)

// New creates a match and spawns both players' first pieces.
func New(cfg Config, opts ...Option) *Match {
	m := &Match{
		cfg:     cfg,
		control: [2]Control{ControlManual, ControlPlanner},
		level:   1,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = log.Default()
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if m.dealer == nil {
		m.dealer = func(Player) tetris.Kind { return tetris.RandomKind(m.rng) }
	}

	m.scheduler = sim.NewScheduler(m, m.logger)
	m.scheduler.Register(&InputSystem{})
	m.scheduler.Register(&ShiftSystem{})
	m.scheduler.Register(&GravitySystem{})
	m.scheduler.Register(&PlannerSystem{})

	for _, p := range Players {
		m.players[p] = newPlayerState(cfg.Width, cfg.Height)
		m.planners[p] = ai.NewPlanner(cfg.Weights)
		m.drivers[p] = &ai.Driver{Step: cfg.ThinkStep, Interval: cfg.DecisionInterval}
	}
	if m.learner != nil {
		m.planners[AI].SetWeights(m.learner.Recompute())
	}
	m.fallInterval = cfg.FallInterval(m.level)

	m.do(func() {
		for _, p := range Players {
			m.players[p].Next = m.dealer(p)
			m.spawn(p)
		}
	})
	return m
}

// Tick advances the match by dt. A paused or finished match only delivers pending events.
func (m *Match) Tick(dt time.Duration) {
	if m.paused || m.over {
		m.scheduler.Commands().Flush()
		return
	}
	m.clock += dt
	m.ticking = true
	m.scheduler.Once(dt)
	m.ticking = false
}

// Run ticks the match at a fixed wall-clock interval until ctx is done or the game ends.
func (m *Match) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	last := time.Now()
	for !m.over {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m.Tick(now.Sub(last))
			last = now
		}
	}
}

// Input queues a device event for p; it is applied at the start of the next tick. Presses are
// dropped while the match is paused or over, releases are always kept.
func (m *Match) Input(p Player, in Input) {
	if (m.paused || m.over) && !in.IsRelease() {
		return
	}
	m.inputs = append(m.inputs, queuedInput{player: p, input: in})
}

// Subscribe registers fn for every event. Handlers run after the tick's systems; a panicking
// handler is logged and the others still run.
func (m *Match) Subscribe(fn func(Event)) {
	m.subscribers = append(m.subscribers, fn)
}

// SetPaused pauses or resumes gravity, input and the opponent.
func (m *Match) SetPaused(paused bool) {
	m.paused = paused
}

// Paused reports whether the match is paused.
func (m *Match) Paused() bool {
	return m.paused
}

// Over reports whether the game has ended.
func (m *Match) Over() bool {
	return m.over
}

// Outcome returns the result once Over is true.
func (m *Match) Outcome() (Outcome, bool) {
	return m.outcome, m.over
}

// Config returns the rules in use.
func (m *Match) Config() Config {
	return m.cfg
}

// SetKeyRepeat changes the DAS delay and ARR interval. Held keys pick up the new timings on the
// next tick.
func (m *Match) SetKeyRepeat(das, arr time.Duration) {
	m.cfg.DASDelay = max(0, das)
	m.cfg.ARRSpeed = max(0, arr)
}

// Level is the current match level.
func (m *Match) Level() int {
	return m.level
}

// FallInterval is the current gravity period.
func (m *Match) FallInterval() time.Duration {
	return m.fallInterval
}

// Clock is the simulated time since the match began.
func (m *Match) Clock() time.Duration {
	return m.clock
}

// Player returns p's live state. Callers other than tests and renderers should treat it as
// read-only.
func (m *Match) Player(p Player) *PlayerState {
	return m.players[p]
}

// Planner returns the planner that drives p when p is under planner control.
func (m *Match) Planner(p Player) *ai.Planner {
	return m.planners[p]
}

// Driver returns the decision pacer for p.
func (m *Match) Driver(p Player) *ai.Driver {
	return m.drivers[p]
}

// Actions counts the driver actions performed for p, by kind.
func (m *Match) Actions(p Player) map[ai.Action]int {
	return maps.Clone(m.actions[p])
}

// Control returns who drives p.
func (m *Match) Control(p Player) Control {
	return m.control[p]
}

// Scheduler exposes the tick scheduler for statistics.
func (m *Match) Scheduler() *sim.Scheduler[*Match] {
	return m.scheduler
}

// Move shifts p's piece by (dx, dy) if it fits.
func (m *Match) Move(p Player, dx, dy int) bool {
	var ok bool
	m.do(func() { ok = m.move(p, dx, dy) })
	return ok
}

// Rotate turns p's piece clockwise, kicking one column left and then right if needed.
func (m *Match) Rotate(p Player) bool {
	var ok bool
	m.do(func() { ok = m.rotate(p) })
	return ok
}

// SoftDrop moves p's piece down one row without locking.
func (m *Match) SoftDrop(p Player) bool {
	return m.Move(p, 0, 1)
}

// HardDrop drops p's piece as far as it goes and locks it.
func (m *Match) HardDrop(p Player) {
	m.do(func() { m.hardDrop(p) })
}

// Hold stashes p's piece, or swaps it with the held one. It fails until p's next lock.
func (m *Match) Hold(p Player) bool {
	var ok bool
	m.do(func() { ok = m.hold(p) })
	return ok
}

// do runs fn and, outside a tick, delivers the events it produced right away.
func (m *Match) do(fn func()) {
	fn()
	if !m.ticking {
		m.scheduler.Commands().Flush()
	}
}

func (m *Match) move(p Player, dx, dy int) bool {
	if m.over {
		return false
	}
	ps := m.players[p]
	if !tetris.CanPlace(ps.Board, ps.Piece.Shape, ps.Piece.X+dx, ps.Piece.Y+dy) {
		return false
	}
	ps.Piece.X += dx
	ps.Piece.Y += dy
	return true
}

func (m *Match) rotate(p Player) bool {
	if m.over {
		return false
	}
	ps := m.players[p]
	rotated := tetris.Rotate(ps.Piece.Shape)
	for _, kick := range [...]int{0, -1, 1} {
		if tetris.CanPlace(ps.Board, rotated, ps.Piece.X+kick, ps.Piece.Y) {
			ps.Piece.Shape = rotated
			ps.Piece.X += kick
			ps.Piece.Rotation = (ps.Piece.Rotation + 1) % 4
			return true
		}
	}
	return false
}

func (m *Match) hardDrop(p Player) {
	if m.over {
		return
	}
	ps := m.players[p]
	ps.Piece.Y = ps.GhostY()
	m.lock(p)
}

func (m *Match) hold(p Player) bool {
	if m.over {
		return false
	}
	ps := m.players[p]
	if !ps.CanHold {
		return false
	}
	ps.CanHold = false
	current := ps.Piece.Kind
	if !ps.HasHeld {
		ps.Held, ps.HasHeld = current, true
		m.spawn(p)
	} else {
		swapped := ps.Held
		ps.Held = current
		m.place(p, swapped)
	}
	m.emit(Event{Kind: EventHold, Player: p})
	return true
}

// spawn takes the lookahead piece and draws a new one.
func (m *Match) spawn(p Player) {
	ps := m.players[p]
	kind := ps.Next
	ps.Next = m.dealer(p)
	m.place(p, kind)
}

// place puts a fresh piece of kind at the top centre. If it does not fit, p loses.
func (m *Match) place(p Player, kind tetris.Kind) {
	ps := m.players[p]
	ps.Piece = tetris.NewPiece(kind, 0, 0)
	ps.Piece.X = tetris.SpawnX(ps.Board.Width(), ps.Piece.Shape)
	if !tetris.CanPlace(ps.Board, ps.Piece.Shape, ps.Piece.X, ps.Piece.Y) {
		m.end(p.Opponent())
	}
}

// lock stamps p's piece, scores the clear, sends garbage and spawns the next piece.
func (m *Match) lock(p Player) {
	ps := m.players[p]
	piece := ps.Piece
	tetris.Stamp(ps.Board, piece)

	tspin := tetris.IsTSpin(ps.Board, piece.Kind, piece.X, piece.Y)
	lines, rows := tetris.ClearLines(ps.Board)
	ps.updateCombo(lines, m.clock, m.cfg.ComboWindow)

	m.emit(Event{Kind: EventLocked, Player: p, Lines: lines})

	if lines > 0 {
		points := Points(lines, tspin, ps.Combo)
		ps.Score += points
		ps.Lines += lines
		m.emit(Event{
			Kind:   EventCleared,
			Player: p,
			Lines:  lines,
			Rows:   rows,
			TSpin:  tspin,
			Combo:  max(1, ps.Combo),
			Points: points,
			Name:   ClearName(lines, tspin),
		})
		m.raiseLevel(p)

		if n := GarbageFor(lines, tspin, ps.Combo, m.cfg.MaxGarbage); n > 0 {
			tetris.InjectGarbage(m.players[p.Opponent()].Board, n, m.rng)
			m.lift(p.Opponent(), n)
			m.emit(Event{Kind: EventGarbage, Player: p, Garbage: n})
		}
	}

	ps.CanHold = true
	m.spawn(p)
}

// lift raises p's falling piece, at most n rows, until it no longer overlaps the stack that
// garbage pushed up beneath it.
func (m *Match) lift(p Player, n int) {
	ps := m.players[p]
	for i := 0; i < n && !tetris.CanPlace(ps.Board, ps.Piece.Shape, ps.Piece.X, ps.Piece.Y); i++ {
		ps.Piece.Y--
	}
}

func (m *Match) raiseLevel(p Player) {
	if m.cfg.LevelSource == LevelHuman && p != Human {
		return
	}
	level := LevelFor(m.players[p].Lines)
	if level <= m.level {
		return
	}
	m.level = level
	m.fallInterval = m.cfg.FallInterval(level)
	m.emit(Event{Kind: EventLevelUp, Player: p, Level: level})
	if m.learner != nil && p == Human {
		m.planners[AI].SetWeights(m.learner.Recompute())
	}
}

// end finishes the game in winner's favour. Only the first call counts.
func (m *Match) end(winner Player) {
	if m.over {
		return
	}
	m.over = true
	m.outcome = Outcome{Winner: winner, Duration: m.clock}
	for _, p := range Players {
		m.outcome.Scores[p] = m.players[p].Score
		m.outcome.Lines[p] = m.players[p].Lines
	}
	if m.learner != nil {
		m.planners[AI].SetWeights(m.learner.RecordOutcome(winner == Human))
	}
	m.emit(Event{Kind: EventGameOver, Player: winner, Outcome: m.outcome})
}

func (m *Match) emit(ev Event) {
	cmds := m.scheduler.Commands()
	for _, fn := range m.subscribers {
		cmds.Defer(ev.Kind.String(), func() { fn(ev) })
	}
}
