package t2048

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilemerge/internal/config"
	"github.com/vovakirdan/tilemerge/internal/core"
	"github.com/vovakirdan/tilemerge/internal/registry"
)

// Game adapts a Controller to the platform's tick-driven registry.Game
// interface and adds pause, animation and rendering.
type Game struct {
	id    string
	width int // 0 means the configured width

	cfg        config.T2048Config
	preset     config.DifficultyPreset // Overrides difficultyPreset when set
	difficulty *config.DifficultyManager
	ctrl       *Controller
	logger     *log.Logger
	anim       animator
	tick       uint64
	lastErr    error

	// Screen dimensions
	screenW int
	screenH int

	paused   bool
	tooSmall bool
}

// Package-level settings applied on the next Reset.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	gameLogger       *log.Logger
)

// SetConfigPath sets a custom YAML config path. Empty means search defaults.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset applied on Reset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.DifficultyPreset(preset)
}

// SetLogger sets the logger handed to new controllers.
func SetLogger(l *log.Logger) {
	gameLogger = l
}

// New creates a game using the configured board width.
func New() *Game {
	return &Game{id: "2048"}
}

// NewWithWidth creates a game with a fixed board width.
func NewWithWidth(width int) *Game {
	return &Game{
		id:    fmt.Sprintf("2048_%dx%d", width, width),
		width: width,
	}
}

func init() {
	registry.Register("2048", func() registry.Game {
		return New()
	})
	for _, w := range []int{3, 5, 6} {
		registry.Register(fmt.Sprintf("2048_%dx%d", w, w), func() registry.Game {
			return NewWithWidth(w)
		})
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Width returns the fixed board width, or 0 when the configured width is
// used.
func (g *Game) Width() int {
	return g.width
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.width == 0 {
		return "2048"
	}
	return fmt.Sprintf("2048 (%dx%d)", g.width, g.width)
}

// Reset loads configuration and starts a new game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.logger = gameLogger
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}

	gameCfg, err := config.LoadT2048(configPath)
	if err != nil {
		g.logger.Warn("using default config", "err", err)
		gameCfg = config.DefaultT2048Config()
	}
	preset := difficultyPreset
	if g.preset != "" {
		preset = g.preset
	}
	config.ApplyT2048Preset(&gameCfg, preset)
	if g.width != 0 {
		gameCfg.Board.Width = g.width
		gameCfg.Board.InitialTiles = min(gameCfg.Board.InitialTiles, g.width*g.width)
	}
	g.cfg = gameCfg
	g.difficulty = config.NewDifficultyManager(gameCfg.Difficulty, gameCfg.Spawn.RankOneChance)

	bias := g.difficulty.RankOneChance(0)
	g.ctrl = NewController(Options{
		Width:         gameCfg.Board.Width,
		InitialTiles:  gameCfg.Board.InitialTiles,
		RankOneChance: bias,
		NoRankOne:     bias == 0,
		Rand:          rand.New(rand.NewSource(cfg.Seed)),
		Logger:        g.logger,
	})

	g.tick = 0
	g.lastErr = nil
	g.paused = false
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.anim = newAnimator(gameCfg.Animation.SlideTicks, gameCfg.Animation.PopTicks)
	g.anim.start(Diff(nil, g.ctrl.Snapshot()))

	g.checkScreenSize()
}

// SetPreset picks the difficulty preset for this instance on the next
// Reset, overriding SetDifficultyPreset.
func (g *Game) SetPreset(preset string) {
	g.preset = config.DifficultyPreset(preset)
}

// Controller exposes the rules engine driving this game.
func (g *Game) Controller() *Controller {
	return g.ctrl
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.newGame()
		return core.StepResult{State: g.State()}
	}

	// Moves queue behind the running animation: input during it is dropped.
	if g.anim.update() {
		return core.StepResult{State: g.State()}
	}

	dir, ok := directionFromInput(in)
	if !ok {
		return core.StepResult{State: g.State()}
	}

	moved := g.processMove(dir)
	return core.StepResult{State: g.State(), Moved: moved}
}

// directionFromInput picks the first direction action present.
func directionFromInput(in core.InputFrame) (Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return DirUp, true
	case in.Has(core.ActionDown):
		return DirDown, true
	case in.Has(core.ActionLeft):
		return DirLeft, true
	case in.Has(core.ActionRight):
		return DirRight, true
	}
	return 0, false
}

// processMove applies a move and animates the resulting snapshot diff.
func (g *Game) processMove(dir Direction) bool {
	before := g.ctrl.Snapshot()

	if err := g.ctrl.UserMove(dir); err != nil {
		if !errors.Is(err, ErrGameOver) {
			g.lastErr = err
		}
		return false
	}

	changes := Diff(before, g.ctrl.Snapshot())
	if len(changes) == 0 {
		return false
	}

	g.ctrl.SetRankOneChance(g.difficulty.RankOneChance(g.ctrl.Moves()))
	g.anim.start(changes)
	return true
}

// newGame restarts on the same controller.
func (g *Game) newGame() {
	g.ctrl.NewGame()
	g.ctrl.SetRankOneChance(g.difficulty.RankOneChance(0))
	g.lastErr = nil
	g.anim.start(Diff(nil, g.ctrl.Snapshot()))
}

// Resize adapts to a new terminal size without restarting the game.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	if g.ctrl != nil {
		g.checkScreenSize()
	}
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	boardW, boardH := boardSize(g.ctrl.Width())
	g.tooSmall = g.screenW < boardW+2 || g.screenH < boardH+hudHeight+footerHeight
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Paused: g.paused || g.tooSmall,
	}
	if g.ctrl == nil {
		return st
	}
	st.BoardWidth = g.ctrl.Width()
	st.Moves = g.ctrl.Moves()
	st.Merges = g.ctrl.Merges()
	st.MaxRank = g.ctrl.MaxRank()
	if r := st.MaxRank; r >= 0 {
		st.MaxValue = RankValue(r)
	}
	st.GameOver = g.ctrl.State() == StateOver
	return st
}
