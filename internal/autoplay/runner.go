package autoplay

import (
	"context"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilemerge/internal/games/t2048"
	"github.com/vovakirdan/tilemerge/internal/storage"
)

// Recorder stores finished runs. *storage.Store satisfies it.
type Recorder interface {
	SaveRun(run storage.Run) (storage.Run, error)
}

// Options configures a Runner.
type Options struct {
	Variant       string // Recorded with each run; defaults to "2048"
	Width         int
	InitialTiles  int
	RankOneChance float64 // Zero picks t2048.DefaultRankOneChance
	NoRankOne     bool    // Spawn only rank 0 tiles
	// RankOneChanceAt, when set, replaces the spawn bias after every move
	// that changed the board, given the move count.
	RankOneChanceAt func(moves int) float64
	Seed            int64 // Game i uses Seed+i
	Strategy        Strategy
	Recorder        Recorder // Optional
	Logger          *log.Logger
}

// Result summarizes one headless game.
type Result struct {
	Game    int
	Seed    int64
	Moves   int
	Merges  int
	MaxRank int
	NoOps   int // Strategy picks that did not change the board
	Outcome storage.Outcome
	RunID   string // Set when the run was recorded
}

// Runner plays games back to back with one strategy.
type Runner struct {
	opts   Options
	logger *log.Logger
}

// NewRunner creates a runner. A nil strategy plays corner.
func NewRunner(opts Options) *Runner {
	if opts.Variant == "" {
		opts.Variant = "2048"
	}
	if opts.Width == 0 {
		opts.Width = t2048.DefaultWidth
	}
	if opts.Strategy == nil {
		opts.Strategy = NewCorner(nil)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{opts: opts, logger: logger}
}

// StallLimit is the number of consecutive no-op picks that ends a game.
func (r *Runner) StallLimit() int {
	return r.opts.Width * r.opts.Width * 4
}

// Run plays games sequentially and returns one result per game started.
// Cancelling ctx stops the current game, which is reported with
// OutcomeCancelled, and Run returns ctx.Err().
func (r *Runner) Run(ctx context.Context, games int) ([]Result, error) {
	results := make([]Result, 0, games)
	for i := range games {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res, err := r.playOne(ctx, i)
		if err != nil {
			return results, err
		}
		results = append(results, res)

		if res.Outcome == storage.OutcomeCancelled {
			return results, ctx.Err()
		}
	}
	return results, nil
}

func (r *Runner) playOne(ctx context.Context, game int) (Result, error) {
	seed := r.opts.Seed + int64(game)
	ctrl := t2048.NewController(t2048.Options{
		Width:         r.opts.Width,
		InitialTiles:  r.opts.InitialTiles,
		RankOneChance: r.opts.RankOneChance,
		NoRankOne:     r.opts.NoRankOne,
		Rand:          rand.New(rand.NewSource(seed)),
		Logger:        r.logger,
	})

	res := Result{Game: game, Seed: seed}
	stall := 0
	for ctrl.State() == t2048.StatePlaying {
		if ctx.Err() != nil {
			res.Outcome = storage.OutcomeCancelled
			break
		}
		if stall >= r.StallLimit() {
			res.Outcome = storage.OutcomeStalled
			break
		}

		dir, err := r.opts.Strategy.Next(viewOf(ctrl))
		if err != nil {
			return res, fmt.Errorf("autoplay: game %d: %w", game, err)
		}

		before := ctrl.Moves()
		if err := ctrl.UserMove(dir); err != nil {
			return res, fmt.Errorf("autoplay: game %d: %w", game, err)
		}
		if ctrl.Moves() == before {
			stall++
			res.NoOps++
		} else {
			stall = 0
			if r.opts.RankOneChanceAt != nil {
				ctrl.SetRankOneChance(r.opts.RankOneChanceAt(ctrl.Moves()))
			}
		}
	}
	if res.Outcome == "" {
		res.Outcome = storage.OutcomeGameOver
	}

	res.Moves = ctrl.Moves()
	res.Merges = ctrl.Merges()
	res.MaxRank = ctrl.MaxRank()

	r.logger.Info("autoplay game finished",
		"game", game, "strategy", r.opts.Strategy.Name(), "outcome", res.Outcome,
		"moves", res.Moves, "max", t2048.RankValue(res.MaxRank))

	if r.opts.Recorder != nil {
		run, err := r.opts.Recorder.SaveRun(storage.Run{
			Variant: r.opts.Variant,
			Width:   r.opts.Width,
			Seed:    seed,
			Moves:   res.Moves,
			Merges:  res.Merges,
			MaxRank: res.MaxRank,
			Outcome: res.Outcome,
		})
		if err != nil {
			r.logger.Warn("cannot record run", "err", err)
		} else {
			res.RunID = run.RunID
		}
	}
	return res, nil
}

// Summary aggregates a batch of results.
type Summary struct {
	Games       int
	Completed   int // Games that reached game over
	BestMaxRank int
	AvgMoves    float64
	// Games per highest tile value reached
	MaxValues map[int]int
}

// Summarize aggregates results.
func Summarize(results []Result) Summary {
	s := Summary{BestMaxRank: -1, MaxValues: make(map[int]int)}
	total := 0
	for _, res := range results {
		s.Games++
		if res.Outcome == storage.OutcomeGameOver {
			s.Completed++
		}
		s.BestMaxRank = max(s.BestMaxRank, res.MaxRank)
		total += res.Moves
		if res.MaxRank >= 0 {
			s.MaxValues[t2048.RankValue(res.MaxRank)]++
		}
	}
	if s.Games > 0 {
		s.AvgMoves = float64(total) / float64(s.Games)
	}
	return s
}
