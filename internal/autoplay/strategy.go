// Package autoplay plays headless games with pluggable strategies. It drives
// the same Controller as the interactive front ends and can record every
// finished game to the session history.
package autoplay

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/vovakirdan/tilemerge/internal/games/t2048"
)

// BoardView is the read-only state handed to a strategy.
type BoardView struct {
	Width int
	Ranks [][]int // Row-major ranks, -1 for blanks
	Moves int

	// Directions that would change the board, in t2048.Directions order.
	Movable []t2048.Direction
}

// CanMove reports whether dir is in Movable.
func (v BoardView) CanMove(dir t2048.Direction) bool {
	for _, d := range v.Movable {
		if d == dir {
			return true
		}
	}
	return false
}

// viewOf builds a BoardView from a controller.
func viewOf(c *t2048.Controller) BoardView {
	v := BoardView{
		Width: c.Width(),
		Ranks: c.Ranks(),
		Moves: c.Moves(),
	}
	for _, dir := range t2048.Directions {
		if c.CanMoveIn(dir) {
			v.Movable = append(v.Movable, dir)
		}
	}
	return v
}

// Strategy picks the next move. A returned direction that does not change
// the board counts toward the runner's stall limit.
type Strategy interface {
	Name() string
	Next(view BoardView) (t2048.Direction, error)
}

// Random picks uniformly among all four directions.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a random strategy drawing from rng.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (r *Random) Name() string { return "random" }

func (r *Random) Next(BoardView) (t2048.Direction, error) {
	return t2048.Directions[r.rng.Intn(len(t2048.Directions))], nil
}

// DefaultCornerPriority keeps large tiles in the bottom-left corner.
var DefaultCornerPriority = []t2048.Direction{t2048.DirDown, t2048.DirLeft, t2048.DirRight, t2048.DirUp}

// Corner plays the first direction in a fixed priority that changes the
// board.
type Corner struct {
	priority []t2048.Direction
}

// NewCorner creates a corner strategy. A nil priority uses
// DefaultCornerPriority.
func NewCorner(priority []t2048.Direction) *Corner {
	if len(priority) == 0 {
		priority = DefaultCornerPriority
	}
	return &Corner{priority: priority}
}

func (c *Corner) Name() string { return "corner" }

func (c *Corner) Next(view BoardView) (t2048.Direction, error) {
	for _, dir := range c.priority {
		if view.CanMove(dir) {
			return dir, nil
		}
	}
	return c.priority[0], nil
}

// StrategyNames lists the built-in strategy names accepted by NewStrategy.
var StrategyNames = []string{"random", "corner", "lua"}

// NewStrategy builds a strategy by name. The lua strategy loads its script
// from scriptPath; callers must Close strategies that implement io.Closer.
func NewStrategy(name string, rng *rand.Rand, scriptPath string) (Strategy, error) {
	switch strings.ToLower(name) {
	case "random":
		return NewRandom(rng), nil
	case "corner", "":
		return NewCorner(nil), nil
	case "lua":
		if scriptPath == "" {
			return nil, fmt.Errorf("autoplay: lua strategy needs a script")
		}
		return LoadLuaStrategy(scriptPath)
	}
	return nil, fmt.Errorf("autoplay: unknown strategy %q (want one of %s)", name, strings.Join(StrategyNames, ", "))
}
