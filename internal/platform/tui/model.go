package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilemerge/internal/core"
	"github.com/vovakirdan/tilemerge/internal/registry"
	"github.com/vovakirdan/tilemerge/internal/storage"
)

// Recorder stores finished sessions. *storage.Store satisfies it.
type Recorder interface {
	SaveRun(run storage.Run) (storage.Run, error)
}

// recorderOf avoids wrapping a nil store in a non-nil interface.
func recorderOf(store *storage.Store) Recorder {
	if store == nil {
		return nil
	}
	return store
}

// Model is the Bubble Tea model for one running game. It records a
// history row when a game ends, is restarted or abandoned.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	recorder   Recorder
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	recorded   bool // Whether the current game has a history row
}

// NewModel creates a new Bubble Tea model for the given game. recorder and
// logger may be nil.
func NewModel(game registry.Game, recorder Recorder, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		recorder:   recorder,
		logger:     logger,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// gameState is set on the first tick (value receiver)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.record(storage.OutcomeQuit)
		m.quitting = true
		return m, tea.Quit

	case action == core.ActionBack:
		m.record(storage.OutcomeQuit)
		m.backToMenu = true
		return m, tea.Quit

	case action == core.ActionRestart:
		m.restart()
		return m, nil

	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver {
		m.record(storage.OutcomeGameOver)
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// restart records the abandoned game and starts a new one with a fresh seed.
func (m *Model) restart() {
	m.record(storage.OutcomeQuit)
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.recorded = false
	m.inputFrame.Clear()
}

// record saves the current game once. Games without a move are skipped.
func (m *Model) record(outcome storage.Outcome) {
	if m.recorded {
		return
	}
	st := m.game.State()
	if st.Moves == 0 {
		return
	}
	m.recorded = true
	if m.recorder == nil {
		return
	}

	run, err := m.recorder.SaveRun(storage.Run{
		Variant: m.game.ID(),
		Width:   st.BoardWidth,
		Seed:    m.config.Seed,
		Moves:   st.Moves,
		Merges:  st.Merges,
		MaxRank: st.MaxRank,
		Outcome: outcome,
	})
	if err != nil {
		m.logger.Warn("cannot record run", "game", m.game.ID(), "err", err)
		return
	}
	m.logger.Debug("run recorded", "run", run.RunID, "outcome", outcome, "moves", st.Moves)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".tilemerge", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, recorder Recorder, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, recorder, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
