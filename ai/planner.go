package ai

import (
	"github.com/kamstrup/intmap"
	"github.com/plus3/blockduel/tetris"
)

const cacheLimit = 4096

// Source says which piece a target was computed for.
type Source int

const (
	SourceCurrent Source = iota
	SourceNext
	SourceHeld
)

func (s Source) String() string {
	switch s {
	case SourceCurrent:
		return "current"
	case SourceNext:
		return "next"
	case SourceHeld:
		return "held"
	}
	return "unknown"
}

// Target is the planner's decision for the current decision cycle.
type Target struct {
	X        int
	Rotation int
	Drop     bool
	Hold     bool
	Source   Source
	Score    float64
}

// Situation is everything the planner looks at: the board and the piece queue.
type Situation struct {
	Board   tetris.Board
	Current tetris.Kind
	Next    tetris.Kind
	Held    tetris.Kind
	HasHeld bool
	CanHold bool
}

// Planner searches placements for the current, next and held pieces. Results are memoised per
// board and kind until the weights change.
type Planner struct {
	weights Weights
	cache   *intmap.Map[uint64, Placement]
	hits    int
	misses  int
}

// NewPlanner creates a planner using the given weights.
func NewPlanner(w Weights) *Planner {
	return &Planner{
		weights: w,
		cache:   intmap.New[uint64, Placement](256),
	}
}

// Weights returns the weights currently in use.
func (p *Planner) Weights() Weights {
	return p.weights
}

// SetWeights replaces the weights and drops every memoised result.
func (p *Planner) SetWeights(w Weights) {
	if w == p.weights {
		return
	}
	p.weights = w
	p.cache = intmap.New[uint64, Placement](256)
}

// CacheStats returns the memoisation hit and miss counts.
func (p *Planner) CacheStats() (hits, misses int) {
	return p.hits, p.misses
}

// Place returns the best placement of kind on board.
func (p *Planner) Place(b tetris.Board, kind tetris.Kind) Placement {
	key := fingerprint(b, kind)
	if placement, ok := p.cache.Get(key); ok {
		p.hits++
		return placement
	}
	p.misses++
	if p.cache.Len() >= cacheLimit {
		p.cache = intmap.New[uint64, Placement](256)
	}
	placement := EvaluatePlacement(b, kind, p.weights)
	p.cache.Put(key, placement)
	return placement
}

// FindBestMove picks the best target across the current piece, the next piece (reachable by
// holding) and the held piece. The current piece is tried first and keeps ties. It returns false
// when no candidate has a legal placement.
func (p *Planner) FindBestMove(s Situation) (Target, bool) {
	var best Target
	found := false

	consider := func(kind tetris.Kind, source Source) {
		placement := p.Place(s.Board, kind)
		if !placement.Found {
			return
		}
		if found && placement.Score <= best.Score {
			return
		}
		found = true
		best = Target{
			X:        placement.X,
			Rotation: placement.Rotation,
			Drop:     source == SourceCurrent,
			Hold:     source != SourceCurrent,
			Source:   source,
			Score:    placement.Score,
		}
	}

	consider(s.Current, SourceCurrent)
	if s.CanHold {
		consider(s.Next, SourceNext)
		if s.HasHeld {
			consider(s.Held, SourceHeld)
		}
	}
	return best, found
}

// fingerprint hashes board contents and kind with FNV-1a.
func fingerprint(b tetris.Board, kind tetris.Kind) uint64 {
	const (
		offset = 14695981039346656037
		prime  = 1099511628211
	)
	h := uint64(offset)
	h ^= uint64(kind) + 1
	h *= prime
	h ^= uint64(b.Width())<<8 | uint64(b.Height())
	h *= prime
	for _, row := range b {
		for _, c := range row {
			// Locked colors do not affect the search.
			if c != tetris.Empty {
				h ^= 1
			} else {
				h ^= 2
			}
			h *= prime
		}
	}
	return h
}
