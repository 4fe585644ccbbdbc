// Command blockduel plays a battle or training match against the computer in a window.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockduel/audio"
	debugui_ebiten "github.com/plus3/blockduel/debugui/ebiten"
	"github.com/plus3/blockduel/session"
)

func main() {
	modeFlag := flag.String("mode", "battle", "Game mode: battle or training.")
	tuningPath := flag.String("tuning", "", "Path of the tuning file. Defaults to the user config directory.")
	seed := flag.Uint64("seed", 0, "Piece sequence seed. 0 picks a random one.")
	debug := flag.Bool("debug", false, "Show the ImGui developer overlay.")
	mute := flag.Bool("mute", false, "Disable sound.")
	volume := flag.Float64("volume", 0.6, "Sound volume between 0 and 1.")
	flag.Parse()

	logger := log.New(os.Stderr, "blockduel: ", log.LstdFlags)

	mode, err := session.ParseMode(*modeFlag)
	if err != nil {
		logger.Fatal(err)
	}
	s, err := session.OpenFile(mode, *tuningPath, *seed, logger)
	if err != nil {
		logger.Fatalf("open session: %v", err)
	}

	var sound *audio.Player
	if !*mute {
		spk, err := audio.OpenSpeaker()
		if err != nil {
			logger.Printf("sound disabled: %v", err)
		} else {
			defer spk.Close()
			sound = audio.NewPlayer(spk)
			sound.Volume = *volume
		}
	}

	app := newApp(s, sound, logger)
	if *debug {
		app.enableOverlay(debugui_ebiten.New("blockduel", screenWidth+400, screenHeight+200))
	} else {
		ebiten.SetWindowSize(screenWidth, screenHeight)
	}

	if err := ebiten.RunGame(app); err != nil {
		logger.Fatalf("run: %v", err)
	}
}
