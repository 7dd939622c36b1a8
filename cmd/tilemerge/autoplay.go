package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilemerge/internal/autoplay"
	"github.com/vovakirdan/tilemerge/internal/config"
	"github.com/vovakirdan/tilemerge/internal/games/t2048"
	"github.com/vovakirdan/tilemerge/internal/registry"
	"github.com/vovakirdan/tilemerge/internal/storage"
)

var (
	flagGames    int
	flagStrategy string
	flagScript   string
	flagRecord   bool
)

var autoplayCmd = &cobra.Command{
	Use:   "autoplay [board]",
	Short: "Play headless games with a strategy",
	Long: `Play games without a UI and print a summary.

Strategies:
  corner  - First of down, left, right, up that changes the board
  random  - Uniformly random direction
  lua     - choose(board) from the script given by --script

A Lua script receives a table with width, moves, cells (tile values, 0
for blanks), ranks (-1 for blanks) and movable (direction names) and
returns "up", "down", "left" or "right".

A strategy that keeps choosing moves that change nothing ends the game as
stalled after width*width*4 such picks in a row.

Examples:
  tilemerge autoplay --games 100
  tilemerge autoplay 2048_3x3 --strategy random --seed 7
  tilemerge autoplay --strategy lua --script ./greedy.lua --record`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAutoplay,
}

func init() {
	autoplayCmd.Flags().IntVar(&flagGames, "games", 10, "Number of games to play")
	autoplayCmd.Flags().StringVar(&flagStrategy, "strategy", "corner", "Strategy: corner, random, lua")
	autoplayCmd.Flags().StringVar(&flagScript, "script", "", "Lua script for the lua strategy")
	autoplayCmd.Flags().BoolVar(&flagRecord, "record", false, "Record every game in the history database")
}

func runAutoplay(_ *cobra.Command, args []string) error {
	gameID := "2048"
	if len(args) == 1 {
		gameID = args[0]
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("unknown board %q (run 'tilemerge list')", gameID)
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tilemerge-autoplay",
		Level:           level,
	})

	cfg, err := config.LoadT2048(flagConfig)
	if err != nil {
		return err
	}
	preset, _ := config.ParsePreset(flagDifficulty) // Checked by the root command
	config.ApplyT2048Preset(&cfg, preset)
	if g, ok := game.(*t2048.Game); ok && g.Width() != 0 {
		cfg.Board.Width = g.Width()
		cfg.Board.InitialTiles = min(cfg.Board.InitialTiles, g.Width()*g.Width())
	}
	difficulty := config.NewDifficultyManager(cfg.Difficulty, cfg.Spawn.RankOneChance)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	strategy, err := autoplay.NewStrategy(flagStrategy, rand.New(rand.NewSource(seed)), flagScript)
	if err != nil {
		return err
	}
	if c, ok := strategy.(io.Closer); ok {
		defer c.Close()
	}

	bias := difficulty.RankOneChance(0)
	opts := autoplay.Options{
		Variant:         gameID,
		Width:           cfg.Board.Width,
		InitialTiles:    cfg.Board.InitialTiles,
		RankOneChance:   bias,
		NoRankOne:       bias == 0,
		RankOneChanceAt: difficulty.RankOneChance,
		Seed:            seed,
		Strategy:        strategy,
		Logger:          logger,
	}
	if flagRecord {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("opening history database: %w", err)
		}
		defer store.Close()
		opts.Recorder = store
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, runErr := autoplay.NewRunner(opts).Run(ctx, flagGames)
	printSummary(gameID, strategy.Name(), results)
	if runErr != nil && ctx.Err() == nil {
		return runErr
	}
	return nil
}

func printSummary(gameID, strategy string, results []autoplay.Result) {
	s := autoplay.Summarize(results)

	fmt.Printf("Autoplay - %s with %s\n\n", gameID, strategy)
	fmt.Printf("  Games:     %d\n", s.Games)
	fmt.Printf("  Finished:  %d\n", s.Completed)
	fmt.Printf("  Avg moves: %.1f\n", s.AvgMoves)
	fmt.Printf("  Best tile: %s\n", bestTile(s.BestMaxRank))

	if len(s.MaxValues) == 0 {
		return
	}
	values := make([]int, 0, len(s.MaxValues))
	for v := range s.MaxValues {
		values = append(values, v)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))

	fmt.Println()
	fmt.Println("  Best tile reached:")
	for _, v := range values {
		fmt.Printf("    %6d  %d games\n", v, s.MaxValues[v])
	}
}
