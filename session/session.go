// Package session wires a game mode to its persisted tuning and, in training, the learning
// controller. Every frontend starts its matches through a Session.
package session

import (
	"fmt"
	"log"
	"time"

	"github.com/plus3/blockduel/game"
	"github.com/plus3/blockduel/learning"
	"github.com/plus3/blockduel/tuning"
)

// Mode selects the ruleset.
type Mode string

const (
	ModeBattle   Mode = "battle"
	ModeTraining Mode = "training"
)

// ParseMode accepts "battle" or "training".
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeBattle, ModeTraining:
		return Mode(s), nil
	}
	return "", fmt.Errorf("session: unknown mode %q (want battle or training)", s)
}

// Session holds what outlives a single match.
type Session struct {
	Mode    Mode
	Config  game.Config
	Learner *learning.Controller

	store  tuning.Store
	seed   uint64
	logger *log.Logger
}

// Open prepares a session over store. Battle mode only reads and writes the key repeat timings;
// training mode hands the store to a learning controller that saves after every adjustment.
func Open(mode Mode, store tuning.Store, seed uint64, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	s := &Session{Mode: mode, store: store, seed: seed, logger: logger}

	switch mode {
	case ModeTraining:
		s.Learner = learning.New(store, logger)
		s.Config = game.TrainingConfig().WithKeyRepeat(s.Learner.Values())
	default:
		values, err := store.Load()
		if err != nil {
			logger.Printf("session: load tuning: %v", err)
		}
		s.Config = game.BattleConfig().WithKeyRepeat(values.Normalize())
	}
	return s
}

// OpenFile is Open over a tuning file; an empty path uses the default location.
func OpenFile(mode Mode, path string, seed uint64, logger *log.Logger) (*Session, error) {
	store, err := tuning.NewFileStore(path)
	if err != nil {
		return nil, err
	}
	return Open(mode, store, seed, logger), nil
}

// NewMatch starts a match with the session's config, learner and seed. A zero seed draws a
// random one. Later options override the session's.
func (s *Session) NewMatch(opts ...game.Option) *game.Match {
	base := []game.Option{game.WithLogger(s.logger)}
	if s.seed != 0 {
		base = append(base, game.WithSeed(s.seed))
	}
	if s.Learner != nil {
		base = append(base, game.WithLearner(s.Learner))
	}
	return game.New(s.Config, append(base, opts...)...)
}

// KeyRepeat returns the DAS delay and ARR interval in milliseconds.
func (s *Session) KeyRepeat() (dasMS, arrMS int) {
	return int(s.Config.DASDelay / time.Millisecond), int(s.Config.ARRSpeed / time.Millisecond)
}

// SetKeyRepeat saves new DAS and ARR timings and applies them to later matches and, when m is
// not nil, to the running one. Negative values fall back to the defaults.
func (s *Session) SetKeyRepeat(m *game.Match, dasMS, arrMS int) {
	var values tuning.Values
	if s.Learner != nil {
		s.Learner.SetKeyRepeat(dasMS, arrMS)
		values = s.Learner.Values()
	} else {
		var err error
		if values, err = s.store.Load(); err != nil {
			s.logger.Printf("session: load tuning: %v", err)
		}
		values.DASDelayMS, values.ARRSpeedMS = dasMS, arrMS
		values = values.Normalize()
		if err := s.store.Save(values); err != nil {
			s.logger.Printf("session: save tuning: %v", err)
		}
	}

	s.Config = s.Config.WithKeyRepeat(values)
	if m != nil {
		m.SetKeyRepeat(s.Config.DASDelay, s.Config.ARRSpeed)
	}
}

// ResetKeyRepeat restores the default 133 ms delay and instant repeat.
func (s *Session) ResetKeyRepeat(m *game.Match) {
	s.SetKeyRepeat(m, tuning.DefaultDASDelayMS, tuning.DefaultARRSpeedMS)
}

// Title names the mode and, in training, the opponent's current skill.
func (s *Session) Title() string {
	if s.Learner == nil {
		return "BATTLE"
	}
	return fmt.Sprintf("TRAINING - %s (%.1f)", s.Learner.SkillName(), s.Learner.Skill())
}
