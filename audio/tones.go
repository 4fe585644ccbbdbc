// Package audio plays short synthesized cues for match events.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate is the rate every cue is rendered at.
const SampleRate = beep.SampleRate(44100)

// Cue is a named sound.
type Cue int

const (
	CueLock Cue = iota
	CueHold
	CueClear
	CueTetris
	CueTSpin
	CueGarbage
	CueLevelUp
	CueGameOver
)

func (c Cue) String() string {
	switch c {
	case CueLock:
		return "lock"
	case CueHold:
		return "hold"
	case CueClear:
		return "clear"
	case CueTetris:
		return "tetris"
	case CueTSpin:
		return "t-spin"
	case CueGarbage:
		return "garbage"
	case CueLevelUp:
		return "level-up"
	case CueGameOver:
		return "game-over"
	}
	return "unknown"
}

type note struct {
	freq float64
	dur  time.Duration
	wave wave
}

var cues = map[Cue][]note{
	CueLock:     {{110, 40 * time.Millisecond, square}},
	CueHold:     {{330, 50 * time.Millisecond, sine}},
	CueClear:    {{523.25, 70 * time.Millisecond, sine}, {659.25, 90 * time.Millisecond, sine}},
	CueTetris:   {{523.25, 60 * time.Millisecond, sine}, {659.25, 60 * time.Millisecond, sine}, {783.99, 60 * time.Millisecond, sine}, {1046.5, 140 * time.Millisecond, sine}},
	CueTSpin:    {{392, 60 * time.Millisecond, saw}, {783.99, 120 * time.Millisecond, saw}},
	CueGarbage:  {{80, 120 * time.Millisecond, saw}},
	CueLevelUp:  {{440, 80 * time.Millisecond, square}, {554.37, 80 * time.Millisecond, square}, {659.25, 160 * time.Millisecond, square}},
	CueGameOver: {{392, 200 * time.Millisecond, sine}, {311.13, 200 * time.Millisecond, sine}, {261.63, 400 * time.Millisecond, sine}},
}

// Length is the duration of a cue.
func Length(c Cue) time.Duration {
	var d time.Duration
	for _, n := range cues[c] {
		d += n.dur
	}
	return d
}

// Tone renders a cue at the given volume (0 silences, 1 is full scale).
func Tone(c Cue, volume float64) beep.Streamer {
	notes := cues[c]
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		osc := newOscillator(n.freq, n.wave, SampleRate)
		release := n.dur / 3
		parts = append(parts, shape(beep.Take(SampleRate.N(n.dur), osc), SampleRate.N(n.dur), SampleRate.N(release)))
	}
	return withVolume(beep.Seq(parts...), volume)
}

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

type wave int

const (
	sine wave = iota
	square
	saw
)

// oscillator is an endless periodic wave.
type oscillator struct {
	step  float64
	phase float64
	wave  wave
}

func newOscillator(freq float64, w wave, rate beep.SampleRate) *oscillator {
	return &oscillator{step: freq / float64(rate), wave: w}
}

func (o *oscillator) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		var v float64
		switch o.wave {
		case sine:
			v = math.Sin(2 * math.Pi * o.phase)
		case square:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case saw:
			v = 2 * (o.phase - 0.5)
		}
		samples[i][0], samples[i][1] = v*0.4, v*0.4
		o.phase += o.step
		o.phase -= math.Floor(o.phase)
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// release fades the last samples of a stream to zero so notes do not click.
type release struct {
	s        beep.Streamer
	pos      int
	total    int
	fadeFrom int
}

func shape(s beep.Streamer, total, fade int) beep.Streamer {
	return &release{s: s, total: total, fadeFrom: total - fade}
}

func (r *release) Stream(samples [][2]float64) (int, bool) {
	n, ok := r.s.Stream(samples)
	for i := 0; i < n; i++ {
		if r.pos >= r.fadeFrom && r.total > r.fadeFrom {
			g := float64(r.total-r.pos) / float64(r.total-r.fadeFrom)
			samples[i][0] *= g
			samples[i][1] *= g
		}
		r.pos++
	}
	return n, ok
}

func (r *release) Err() error { return r.s.Err() }
