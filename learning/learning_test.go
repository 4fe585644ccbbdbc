package learning_test

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/plus3/blockduel/ai"
	"github.com/plus3/blockduel/learning"
	"github.com/plus3/blockduel/tuning"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func values(skill float64, wins, losses int) tuning.Values {
	v := tuning.Defaults()
	v.SkillLevel = skill
	v.Wins = wins
	v.Losses = losses
	return v
}

func TestRecompute(t *testing.T) {
	tests := []struct {
		name      string
		in        tuning.Values
		wantSkill float64
	}{
		{"no games", values(3, 0, 0), 3},
		{"winning streak promotes", values(3, 4, 1), 3.1},
		{"three wins are not enough", values(3, 3, 0), 3},
		{"exactly sixty percent holds", values(3, 6, 4), 3},
		{"losing streak demotes", values(3, 1, 4), 2.9},
		{"three losses are not enough", values(3, 0, 3), 3},
		{"promotion caps at ten", values(9.95, 10, 0), 10},
		{"demotion floors at one", values(1.05, 0, 10), 1},
		{"even record holds", values(6, 5, 5), 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := tuning.NewMemoryStore(tt.in)
			c := learning.New(store, nil)

			w := c.Recompute()

			assert.InDelta(t, tt.wantSkill, c.Skill(), 1e-9)
			assert.Equal(t, learning.WeightsForSkill(c.Skill()), w)
			assert.Equal(t, w, c.Weights())
			assert.Equal(t, 1, store.Saves)
		})
	}
}

func TestWeightsForSkill(t *testing.T) {
	t.Run("pivot skill keeps base weights", func(t *testing.T) {
		w := learning.WeightsForSkill(5)
		assert.InDelta(t, ai.BaseHoleWeight, w.Hole, 1e-9)
		assert.InDelta(t, ai.BaseHeightWeight, w.Height, 1e-9)
		assert.InDelta(t, ai.BaseBumpinessWeight, w.Bumpiness, 1e-9)
		assert.InDelta(t, ai.BaseLineClearWeight, w.LineClear, 1e-9)
		assert.InDelta(t, 0.65, w.Aggression, 1e-9)
		assert.Equal(t, 2, w.PlanningDepth)
	})

	t.Run("lowest skill", func(t *testing.T) {
		w := learning.WeightsForSkill(1)
		assert.InDelta(t, -10.0, w.Hole, 1e-9)
		assert.InDelta(t, 200.0, w.LineClear, 1e-9)
		assert.InDelta(t, 0.37, w.Aggression, 1e-9)
		assert.Equal(t, 1, w.PlanningDepth)
	})

	t.Run("highest skill", func(t *testing.T) {
		w := learning.WeightsForSkill(10)
		assert.InDelta(t, -100.0, w.Hole, 1e-9)
		assert.InDelta(t, 2000.0, w.LineClear, 1e-9)
		assert.InDelta(t, 1.0, w.Aggression, 1e-9)
		assert.Equal(t, 3, w.PlanningDepth)
	})
}

func TestRecordOutcome(t *testing.T) {
	t.Run("human win sharpens the opponent", func(t *testing.T) {
		store := tuning.NewMemoryStore(values(5, 0, 0))
		c := learning.New(store, nil)

		w := c.RecordOutcome(true)

		assert.InDelta(t, -52.5, w.Hole, 1e-9)
		assert.InDelta(t, -10.5, w.Height, 1e-9)
		assert.InDelta(t, ai.BaseBumpinessWeight, w.Bumpiness, 1e-9)
		assert.InDelta(t, 1100.0, w.LineClear, 1e-9)
		assert.InDelta(t, 0.525, w.Aggression, 1e-9)
		assert.Equal(t, 1, c.Values().Wins)
		assert.Equal(t, 1, store.Saves)
	})

	t.Run("aggression is capped", func(t *testing.T) {
		v := values(5, 0, 0)
		v.Weights.Aggression = 0.99
		c := learning.New(tuning.NewMemoryStore(v), nil)

		assert.Equal(t, 1.0, c.RecordOutcome(true).Aggression)
	})

	t.Run("opponent win only touches line clears", func(t *testing.T) {
		c := learning.New(tuning.NewMemoryStore(values(5, 0, 0)), nil)

		w := c.RecordOutcome(false)

		assert.InDelta(t, 1020.0, w.LineClear, 1e-9)
		assert.Equal(t, ai.BaseHoleWeight, w.Hole)
		assert.Equal(t, ai.BaseAggression, w.Aggression)
		assert.Equal(t, 1, c.Values().Losses)
	})

	t.Run("recompute overwrites the nudge", func(t *testing.T) {
		c := learning.New(tuning.NewMemoryStore(values(5, 0, 0)), nil)

		c.RecordOutcome(true)
		w := c.Recompute()

		assert.Equal(t, learning.WeightsForSkill(5), w)
	})
}

func TestSkillName(t *testing.T) {
	assert.Equal(t, "Beginner", learning.SkillName(1))
	assert.Equal(t, "Beginner", learning.SkillName(1.9))
	assert.Equal(t, "Novice", learning.SkillName(2))
	assert.Equal(t, "Expert", learning.SkillName(5.5))
	assert.Equal(t, "Transcendent", learning.SkillName(10))
	assert.Equal(t, "Beginner", learning.SkillName(0))
	assert.Equal(t, "Transcendent", learning.SkillName(12))
}

func TestWinRate(t *testing.T) {
	assert.Equal(t, 0.0, learning.New(tuning.NewMemoryStore(values(1, 0, 0)), nil).WinRate())
	assert.Equal(t, 0.75, learning.New(tuning.NewMemoryStore(values(1, 3, 1)), nil).WinRate())
}

func TestSetKeyRepeat(t *testing.T) {
	store := tuning.NewMemoryStore(tuning.Defaults())
	c := learning.New(store, nil)

	c.SetKeyRepeat(90, 10)

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 90, got.DASDelayMS)
	assert.Equal(t, 10, got.ARRSpeedMS)
}

type failingStore struct {
	loadErr error
}

func (f failingStore) Load() (tuning.Values, error) {
	return tuning.Defaults(), f.loadErr
}

func (f failingStore) Save(tuning.Values) error {
	return errors.New("disk full")
}

func TestPersistenceFailuresAreLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	c := learning.New(failingStore{loadErr: errors.New("bad yaml")}, logger)
	assert.Contains(t, buf.String(), "learning: load tuning: bad yaml")
	assert.Equal(t, 1.0, c.Skill())

	assert.NotPanics(t, func() { c.RecordOutcome(false) })
	assert.Contains(t, buf.String(), "learning: save tuning: disk full")
	assert.Equal(t, 1, c.Values().Losses)
}
