// Command duel-sim runs headless planner-vs-planner matches and prints a markdown report.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/plus3/blockduel/session"
	"github.com/plus3/blockduel/tuning"
	"golang.org/x/sync/errgroup"
)

func main() {
	games := flag.Int("games", 20, "Number of games to play.")
	workers := flag.Int("workers", runtime.NumCPU(), "Games played in parallel. Training runs sequentially.")
	seed := flag.Uint64("seed", 1, "Seed of the first game; game i uses seed+i.")
	tick := flag.Duration("tick", 16*time.Millisecond, "Simulated time per tick.")
	limit := flag.Duration("limit", 15*time.Minute, "Simulated time after which a game is stopped unfinished.")
	modeFlag := flag.String("mode", "battle", "Game mode: battle or training.")
	tuningPath := flag.String("tuning", "", "Tuning file for training runs. Empty keeps the learner in memory.")
	humanScale := flag.Float64("human-scale", 1, "Multiplier applied to ARIA's planner weights.")
	realtime := flag.Bool("realtime", false, "Tick on the wall clock at -tick intervals; -limit becomes wall time.")
	flag.Parse()

	mode, err := session.ParseMode(*modeFlag)
	if err != nil {
		log.Fatal(err)
	}

	var store tuning.Store = tuning.NewMemoryStore(tuning.Defaults())
	if *tuningPath != "" {
		fs, err := tuning.NewFileStore(*tuningPath)
		if err != nil {
			log.Fatalf("Failed to open tuning: %v", err)
		}
		store = fs
	}
	s := session.Open(mode, store, 0, log.Default())
	if s.Learner != nil {
		*workers = 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("Playing %d %s games on %d workers...\n", *games, mode, *workers)
	cfg := duelConfig{Tick: *tick, Limit: *limit, HumanScale: *humanScale, Realtime: *realtime}
	results := make([]GameResult, *games)
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, *workers))
	for i := range *games {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = playGame(gctx, s, cfg, *seed+uint64(i))
			return nil
		})
	}
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Simulation failed: %v", err)
	}

	report := &Report{
		Mode:       string(mode),
		Games:      *games,
		Workers:    *workers,
		Seed:       *seed,
		Tick:       *tick,
		Limit:      *limit,
		HumanScale: *humanScale,
		Realtime:   *realtime,
		WallTime:   time.Since(start),
	}
	for _, res := range results {
		if res.Scheduler != nil {
			report.Results = append(report.Results, res)
		}
	}
	if len(report.Results) < *games {
		log.Printf("Interrupted after %d of %d games.\n", len(report.Results), *games)
	}
	if s.Learner != nil {
		report.FinalSkill = fmt.Sprintf("%.1f (%s)", s.Learner.Skill(), s.Learner.SkillName())
	}
	report.Summarize()

	log.Println("Simulation finished.")
	fmt.Println("\n\n--- Duel Simulation Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
