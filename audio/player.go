package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/plus3/blockduel/game"
)

// Output receives rendered cues.
type Output interface {
	Play(s beep.Streamer)
}

// Speaker mixes cues into the system audio device.
type Speaker struct {
	mixer *beep.Mixer
}

// OpenSpeaker initialises the audio device and starts an always-on mixer.
func OpenSpeaker() (*Speaker, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: init speaker: %w", err)
	}
	s := &Speaker{mixer: &beep.Mixer{}}
	speaker.Play(s.mixer)
	return s, nil
}

// Play adds s to the mix.
func (s *Speaker) Play(st beep.Streamer) {
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close stops playback.
func (s *Speaker) Close() {
	speaker.Clear()
	speaker.Close()
}

// Player turns match events into cues.
type Player struct {
	out    Output
	Volume float64
	Muted  bool
	// Focus limits cues to one side's events, the garbage it receives and game over. Nil
	// plays both sides.
	Focus *game.Player
}

// NewPlayer returns a player at full volume writing to out.
func NewPlayer(out Output) *Player {
	return &Player{out: out, Volume: 1}
}

// Handle is a game.Match subscriber.
func (p *Player) Handle(ev game.Event) {
	if p.Muted {
		return
	}
	cue, ok := CueFor(ev)
	if !ok {
		return
	}
	if p.Focus != nil && ev.Kind != game.EventGameOver && ev.Player != *p.Focus {
		// Garbage is heard by the side receiving it.
		if !(ev.Kind == game.EventGarbage && ev.Player.Opponent() == *p.Focus) {
			return
		}
	}
	p.out.Play(Tone(cue, p.Volume))
}

// CueFor picks the cue for an event.
func CueFor(ev game.Event) (Cue, bool) {
	switch ev.Kind {
	case game.EventLocked:
		if ev.Lines > 0 {
			return 0, false
		}
		return CueLock, true
	case game.EventHold:
		return CueHold, true
	case game.EventCleared:
		switch {
		case ev.TSpin:
			return CueTSpin, true
		case ev.Lines >= 4:
			return CueTetris, true
		}
		return CueClear, true
	case game.EventGarbage:
		return CueGarbage, true
	case game.EventLevelUp:
		return CueLevelUp, true
	case game.EventGameOver:
		return CueGameOver, true
	}
	return 0, false
}
