package t2048

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

// State is the controller's lifecycle state.
type State int

const (
	StatePlaying State = iota
	StateOver
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateOver:
		return "over"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// DefaultInitialTiles is the number of tiles seeded by NewGame.
const DefaultInitialTiles = 2

// Options configures a Controller. Zero values pick defaults.
type Options struct {
	Width         int
	InitialTiles  int
	RankOneChance float64 // Zero picks DefaultRankOneChance
	NoRankOne     bool    // Spawn only rank 0 tiles
	Rand          *rand.Rand
	Logger        *log.Logger
}

// spawnBias resolves the initial spawn bias from options.
func (o Options) spawnBias() float64 {
	switch {
	case o.NoRankOne:
		return 0
	case o.RankOneChance <= 0:
		return DefaultRankOneChance
	}
	return o.RankOneChance
}

// Controller sequences moves, spawns and terminal detection for one game
// session. It exclusively owns its Grid.
type Controller struct {
	width        int
	initialTiles int
	grid         *Grid
	spawner      *Spawner
	state        State
	moves        int
	merges       int
	logger       *log.Logger
}

// NewController creates a controller and starts a new game.
func NewController(opts Options) *Controller {
	if opts.Width == 0 {
		opts.Width = DefaultWidth
	}
	if opts.InitialTiles <= 0 {
		opts.InitialTiles = DefaultInitialTiles
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	c := &Controller{
		width:        opts.Width,
		initialTiles: min(opts.InitialTiles, opts.Width*opts.Width),
		spawner:      NewSpawner(opts.Rand, opts.spawnBias()),
		logger:       opts.Logger,
	}
	c.NewGame()
	return c
}

// NewGame discards the current grid and seeds a fresh one. Valid in any
// state.
func (c *Controller) NewGame() {
	c.grid = NewGrid(c.width)
	c.state = StatePlaying
	c.moves = 0
	c.merges = 0

	for range c.initialTiles {
		// A fresh grid always has room for the clamped initial tiles.
		if _, err := c.spawner.Spawn(c.grid); err != nil {
			c.logger.Error("seed spawn failed", "err", err)
			break
		}
	}
	c.logger.Debug("new game", "width", c.width, "tiles", c.grid.Len())
}

// UserMove applies a move in dir. A move that changes the board spawns one
// tile; afterwards a full board with no changing direction ends the game.
// While the game is over the move is rejected with ErrGameOver and nothing
// changes. Other errors signal a broken grid invariant.
func (c *Controller) UserMove(dir Direction) error {
	if c.state == StateOver {
		c.logger.Debug("move rejected", "dir", dir, "state", c.state)
		return ErrGameOver
	}

	res, err := Move(c.grid, dir)
	if err != nil {
		c.logger.Error("move engine invariant violated", "dir", dir, "err", err)
		return fmt.Errorf("t2048: move %s: %w", dir, err)
	}
	c.logger.Debug("move", "dir", dir, "changed", res.Changed, "slides", res.Slides, "merges", res.Merges)

	if res.Changed {
		c.moves++
		c.merges += res.Merges
		if !c.grid.IsFull() {
			if _, err := c.spawner.Spawn(c.grid); err != nil {
				c.logger.Error("spawn failed", "err", err)
				return fmt.Errorf("t2048: spawn after %s: %w", dir, err)
			}
		}
	}

	if c.grid.IsFull() && !CanMove(c.grid) {
		c.state = StateOver
		c.logger.Info("game over", "moves", c.moves, "merges", c.merges, "max", RankValue(c.grid.MaxRank()))
	}
	return nil
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Snapshot returns the occupied cells of the grid in row-major order.
func (c *Controller) Snapshot() []Placement {
	return c.grid.Snapshot()
}

// Ranks returns the board as a rank matrix with -1 for blanks.
func (c *Controller) Ranks() [][]int {
	return c.grid.Ranks()
}

// Width returns the board dimension.
func (c *Controller) Width() int {
	return c.width
}

// Moves returns the number of moves that changed the board.
func (c *Controller) Moves() int {
	return c.moves
}

// Merges returns the number of merges performed this game.
func (c *Controller) Merges() int {
	return c.merges
}

// MaxRank returns the highest rank on the board.
func (c *Controller) MaxRank() int {
	return c.grid.MaxRank()
}

// CanMoveIn reports whether dir would change the board.
func (c *Controller) CanMoveIn(dir Direction) bool {
	return c.state == StatePlaying && Changes(c.grid, dir)
}

// SetRankOneChance adjusts the spawn bias for future spawns.
func (c *Controller) SetRankOneChance(p float64) {
	c.spawner.SetRankOneChance(p)
}

// RankOneChance returns the current spawn bias.
func (c *Controller) RankOneChance() float64 {
	return c.spawner.RankOneChance()
}

// String renders the board for debugging.
func (c *Controller) String() string {
	return c.grid.String()
}
