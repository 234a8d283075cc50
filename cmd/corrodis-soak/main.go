package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/Ilingu/corrodis/display"
	"github.com/Ilingu/corrodis/game"
	"github.com/Ilingu/corrodis/input"
	"github.com/Ilingu/corrodis/sim"
	"github.com/Ilingu/corrodis/tetris"
	"github.com/rs/zerolog"
)

// skipClock reads the wall clock but never blocks: sleeping moves it forward
// instead. System timings stay real while the game plays at full speed.
type skipClock struct {
	mu      sync.Mutex
	skipped time.Duration
}

func (c *skipClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return time.Now().Add(c.skipped)
}

func (c *skipClock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.skipped += d
}

func main() {
	duration := flag.Duration("duration", 30*time.Second, "Wall time budget for all games.")
	games := flag.Int("games", 20, "Number of games to play.")
	seed := flag.Uint64("seed", 1, "Seed of the first game; game i uses seed+i.")
	every := flag.Int("every", 4, "Press a random key on average once in this many frames.")
	scale := flag.Uint("scale", game.DefaultScale, "Block scale.")
	fps := flag.Int("fps", game.DefaultFPS, "Simulated frames per second.")
	verbose := flag.Bool("v", false, "Log game events to stderr.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	logger := zerolog.Nop()
	if *verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()
	}

	layout, err := game.NewLayout(tetris.Bounds{Width: game.BoardBlocksWide * *scale, Height: game.BoardBlocksHigh * *scale}, *scale)
	if err != nil {
		log.Fatalf("Invalid layout: %v", err)
	}
	cfg := game.DefaultConfig()
	cfg.Scale = *scale
	cfg.FramePeriod = time.Second / time.Duration(max(*fps, 1))

	report := &Report{
		Duration:       *duration,
		Games:          *games,
		Seed:           *seed,
		Every:          *every,
		Board:          layout.Board,
		FramePeriod:    cfg.FramePeriod,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Playing %d games for at most %s...\n", *games, *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	for i := range *games {
		if ctx.Err() != nil {
			break
		}
		result, err := playOne(ctx, cfg, layout, *seed+uint64(i), *every, logger)
		if err != nil {
			log.Fatalf("Game %d failed: %v", i, err)
		}
		report.Add(result)
	}
	report.TotalTime = time.Since(startTime)
	runtime.ReadMemStats(&report.MemStatsEnd)

	fmt.Println("\n\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

func playOne(ctx context.Context, cfg game.Config, layout game.Layout, seed uint64, every int, logger zerolog.Logger) (GameResult, error) {
	cfg.Seed = seed
	clock := &skipClock{}
	src := input.NewRandom(tetris.NewRand(seed^0x5eed), every)

	loop, err := game.New(cfg, layout, display.NewANSI(io.Discard), src,
		game.WithClock(clock),
		game.WithLogger(logger.With().Uint64("seed", seed).Logger()))
	if err != nil {
		return GameResult{}, err
	}

	began := clock.Now()
	state, err := loop.Run(ctx)
	if err != nil {
		return GameResult{}, err
	}

	session := loop.Session()
	return GameResult{
		Seed:      seed,
		State:     state,
		Landed:    session.Landed,
		Cleared:   session.Cleared,
		Simulated: clock.Now().Sub(began),
		Stats:     loop.Stats(),
	}, nil
}

var _ sim.Clock = (*skipClock)(nil)
