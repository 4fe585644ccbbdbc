// Command blockduel-tui plays a battle or training match against the computer in a terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockduel/game"
	"github.com/plus3/blockduel/session"
)

const bannerTime = 1500 * time.Millisecond

type tui struct {
	screen  tcell.Screen
	session *session.Session
	match   *game.Match
	logger  *log.Logger

	banners     [2]string
	bannerUntil [2]time.Duration
}

func (t *tui) restart() {
	t.match = t.session.NewMatch()
	t.banners = [2]string{}
	t.match.Subscribe(t.onEvent)
}

func (t *tui) onEvent(ev game.Event) {
	switch ev.Kind {
	case game.EventCleared:
		t.banners[ev.Player] = fmt.Sprintf("%s +%d", ev.Name, ev.Points)
		t.bannerUntil[ev.Player] = t.match.Clock() + bannerTime
	case game.EventGameOver:
		t.logger.Printf("game over: %s wins (%d - %d)", ev.Outcome.Winner, ev.Outcome.Scores[game.Human], ev.Outcome.Scores[game.AI])
	}
}

func (t *tui) activeBanners() [2]string {
	var out [2]string
	for _, p := range game.Players {
		if t.match.Clock() < t.bannerUntil[p] {
			out[p] = t.banners[p]
		}
	}
	return out
}

// handle applies one terminal event. It returns false when the player quits.
func (t *tui) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		inputs, cmd := translate(ev)
		switch cmd {
		case cmdQuit:
			return false
		case cmdPause:
			t.match.SetPaused(!t.match.Paused())
		case cmdRestart:
			t.restart()
		}
		for _, in := range inputs {
			t.match.Input(game.Human, in)
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

func (t *tui) run(tick time.Duration) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev, ok := <-events:
			if !ok || !t.handle(ev) {
				return
			}
		case now := <-ticker.C:
			t.match.Tick(now.Sub(last))
			last = now
			render(t.screen, t.session, t.match, t.activeBanners())
		}
	}
}

func main() {
	modeFlag := flag.String("mode", "battle", "Game mode: battle or training.")
	tuningPath := flag.String("tuning", "", "Path of the tuning file. Defaults to the user config directory.")
	seed := flag.Uint64("seed", 0, "Piece sequence seed. 0 picks a random one.")
	tick := flag.Duration("tick", 16*time.Millisecond, "Simulation and redraw interval.")
	logPath := flag.String("log", "", "Write log output to this file instead of discarding it.")
	flag.Parse()

	logOut := io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := log.New(logOut, "blockduel-tui: ", log.LstdFlags)

	mode, err := session.ParseMode(*modeFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	s, err := session.OpenFile(mode, *tuningPath, *seed, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open session: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	t := &tui{screen: screen, session: s, logger: logger}
	t.restart()
	t.run(*tick)
}
