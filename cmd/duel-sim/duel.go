package main

import (
	"context"
	"time"

	"github.com/plus3/blockduel/ai"
	"github.com/plus3/blockduel/game"
	"github.com/plus3/blockduel/session"
	"github.com/plus3/blockduel/sim"
)

// duelConfig is what every game of a run shares.
type duelConfig struct {
	Tick       time.Duration
	Limit      time.Duration
	HumanScale float64
	Realtime   bool
}

// GameResult summarises one headless game.
type GameResult struct {
	Seed     uint64
	Finished bool
	Outcome  game.Outcome
	SimTime  time.Duration
	Ticks    int64

	Actions [2]map[ai.Action]int
	Hits    [2]int
	Misses  [2]int
	Garbage [2]int
	Clears  map[string]int

	TickTime  Stats
	Scheduler *sim.SchedulerStats
}

// playGame runs a planner-vs-planner match until someone tops out, the limit passes or ctx is
// done. Realtime games tick on the wall clock and their limit is wall time.
func playGame(ctx context.Context, s *session.Session, cfg duelConfig, seed uint64) GameResult {
	m := s.NewMatch(game.WithSeed(seed), game.WithControl(game.Human, game.ControlPlanner))
	if cfg.HumanScale != 1 {
		m.Planner(game.Human).SetWeights(ai.BattleWeights().Scaled(cfg.HumanScale))
	}

	res := GameResult{Seed: seed, Clears: make(map[string]int)}
	m.Subscribe(func(ev game.Event) {
		switch ev.Kind {
		case game.EventCleared:
			res.Clears[ev.Name]++
		case game.EventGarbage:
			res.Garbage[ev.Player] += ev.Garbage
		}
	})

	if cfg.Realtime {
		ctx, cancel := context.WithTimeout(ctx, cfg.Limit)
		m.Run(ctx, cfg.Tick)
		cancel()
	} else {
		for !m.Over() && m.Clock() < cfg.Limit && ctx.Err() == nil {
			start := time.Now()
			m.Tick(cfg.Tick)
			res.TickTime.Add(time.Since(start))
		}
	}
	res.TickTime.Finalize()

	res.Outcome, res.Finished = m.Outcome()
	res.SimTime = m.Clock()
	res.Scheduler = m.Scheduler().GetStats()
	res.Ticks = res.Scheduler.Ticks
	for _, p := range game.Players {
		res.Actions[p] = m.Actions(p)
		res.Hits[p], res.Misses[p] = m.Planner(p).CacheStats()
	}
	if !res.Finished {
		for _, p := range game.Players {
			v := m.View(p)
			res.Outcome.Scores[p] = v.Score
			res.Outcome.Lines[p] = v.Lines
		}
		res.Outcome.Duration = m.Clock()
	}
	return res
}
