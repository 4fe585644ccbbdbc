package main

import (
	"bytes"
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/plus3/blockduel/ai"
	"github.com/plus3/blockduel/game"
	"github.com/plus3/blockduel/session"
	"github.com/plus3/blockduel/tuning"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func battleSession() *session.Session {
	return session.Open(session.ModeBattle, tuning.NewMemoryStore(tuning.Defaults()), 0, log.New(io.Discard, "", 0))
}

func TestStats(t *testing.T) {
	var s Stats
	s.Finalize()
	assert.Zero(t, s.Avg)

	for _, d := range []time.Duration{3, 1, 5} {
		s.Add(d * time.Millisecond)
	}
	var o Stats
	o.Add(9 * time.Millisecond)
	s.Merge(o)
	s.Merge(Stats{})
	s.Finalize()

	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 9*time.Millisecond, s.Max)
	assert.Equal(t, int64(4), s.Count)
	assert.Equal(t, 4500*time.Microsecond, s.Avg)
}

func TestPlayGame(t *testing.T) {
	cfg := duelConfig{Tick: 16 * time.Millisecond, Limit: 20 * time.Second, HumanScale: 1}
	res := playGame(context.Background(), battleSession(), cfg, 11)

	require.NotNil(t, res.Scheduler)
	assert.Equal(t, uint64(11), res.Seed)
	assert.Equal(t, 4, res.Scheduler.SystemCount)
	assert.Positive(t, res.Ticks)
	assert.LessOrEqual(t, res.SimTime, cfg.Limit+cfg.Tick)
	assert.Equal(t, res.Ticks, res.TickTime.Count)
	for _, p := range game.Players {
		assert.Positive(t, res.Actions[p][ai.ActionHardDrop], "%s placed pieces", p)
		assert.Positive(t, res.Misses[p])
	}
	if !res.Finished {
		assert.Equal(t, res.SimTime, res.Outcome.Duration)
	}

	again := playGame(context.Background(), battleSession(), cfg, 11)
	assert.Equal(t, res.Outcome.Scores, again.Outcome.Scores, "same seed, same game")
	assert.Equal(t, res.Ticks, again.Ticks)
}

func TestReport(t *testing.T) {
	cfg := duelConfig{Tick: 16 * time.Millisecond, Limit: 5 * time.Second, HumanScale: 1}
	s := battleSession()
	r := &Report{Mode: "battle", Games: 2, Workers: 1, Seed: 3, Tick: cfg.Tick, Limit: cfg.Limit, HumanScale: 1}
	r.Results = []GameResult{playGame(context.Background(), s, cfg, 3), playGame(context.Background(), s, cfg, 4)}
	r.Summarize()

	assert.Equal(t, 2, r.Wins[0]+r.Wins[1]+r.Unfinished)
	require.Len(t, r.Systems, 4)
	assert.Equal(t, "InputSystem", r.Systems[0].Name)
	assert.Equal(t, r.Results[0].Ticks+r.Results[1].Ticks, r.Systems[0].Runs)
	assert.NotEmpty(t, r.Actions[game.AI])

	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))
	out := buf.String()
	assert.Contains(t, out, "# Duel Simulation Report")
	assert.Contains(t, out, "| GravitySystem |")
	assert.Contains(t, out, "hard-drop=")
	assert.Contains(t, out, "| 3 |")
}

func TestPlayGameHumanScale(t *testing.T) {
	s := session.Open(session.ModeTraining, tuning.NewMemoryStore(tuning.Defaults()), 0, log.New(io.Discard, "", 0))
	cfg := duelConfig{Tick: 16 * time.Millisecond, Limit: 2 * time.Second, HumanScale: 0.5}
	res := playGame(context.Background(), s, cfg, 1)
	assert.False(t, res.Finished)
	assert.Equal(t, int64(125), res.Ticks)
	assert.Equal(t, 2*time.Second, res.Outcome.Duration)
}

func TestPlayGameRealtime(t *testing.T) {
	cfg := duelConfig{Tick: 5 * time.Millisecond, Limit: 100 * time.Millisecond, HumanScale: 1, Realtime: true}
	start := time.Now()
	res := playGame(context.Background(), battleSession(), cfg, 2)

	assert.Less(t, time.Since(start), 2*time.Second, "limit is wall time")
	assert.False(t, res.Finished)
	assert.Positive(t, res.Ticks)
	assert.Positive(t, res.SimTime)
	assert.Zero(t, res.TickTime.Count, "realtime games report scheduler timing only")
}

func TestPlayGameCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, realtime := range []bool{false, true} {
		cfg := duelConfig{Tick: 16 * time.Millisecond, Limit: time.Hour, HumanScale: 1, Realtime: realtime}
		res := playGame(ctx, battleSession(), cfg, 2)
		assert.Zero(t, res.Ticks)
		assert.False(t, res.Finished)
	}
}
