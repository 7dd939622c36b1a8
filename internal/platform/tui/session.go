package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilemerge/internal/core"
	"github.com/vovakirdan/tilemerge/internal/registry"
	"github.com/vovakirdan/tilemerge/internal/storage"
)

// sessionScreen is the screen a SessionModel is showing.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenDifficulty
	screenGame
	screenHistory
)

// presetter is implemented by games that take a per-instance difficulty.
type presetter interface {
	SetPreset(preset string)
}

// SessionModel manages the full flow: menu -> difficulty -> game -> menu,
// with the history browser one key away. Each session owns its own game
// instance, so concurrent sessions never share a board.
//
// Child models signal transitions with tea.Quit; the session swallows
// those commands and switches screens instead.
type SessionModel struct {
	store      *storage.Store
	config     core.RuntimeConfig
	logger     *log.Logger
	screen     sessionScreen
	menu       MenuModel
	difficulty DifficultyModel
	history    HistoryModel
	gameModel  Model
	selected   MenuItem
	quitting   bool
}

// NewSessionModel creates a new session model. store and logger may be nil.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) SessionModel {
	return SessionModel{
		store:  store,
		config: cfg,
		logger: logger,
		menu:   NewMenuModel(store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenDifficulty:
		return m.updateDifficulty(msg)
	case screenGame:
		return m.updateGame(msg)
	case screenHistory:
		return m.updateHistory(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsHistory():
		m.history = NewHistoryModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenHistory
		return m, m.history.Init()

	case m.menu.Selected() != nil:
		m.selected = *m.menu.Selected()
		m.difficulty = NewDifficultyModel(m.selected.Title, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenDifficulty
		return m, m.difficulty.Init()
	}

	return m, cmd
}

func (m SessionModel) updateDifficulty(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.difficulty.Update(msg)
	if d, ok := newModel.(DifficultyModel); ok {
		m.difficulty = d
	}

	switch {
	case m.difficulty.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.difficulty.WantsBack():
		return m.toMenu()

	case m.difficulty.Selected() != nil:
		game, err := registry.Create(m.selected.GameID)
		if err != nil {
			// Menu only lists registered games
			return m.toMenu()
		}
		if p, ok := game.(presetter); ok {
			p.SetPreset(string(*m.difficulty.Selected()))
		}

		cfg := m.config
		cfg.Seed = 0 // Fresh seed for every game
		m.gameModel = NewModel(game, recorderOf(m.store), cfg, m.logger)
		m.screen = screenGame
		return m, m.gameModel.Init()
	}

	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gm, ok := newModel.(Model); ok {
		m.gameModel = gm
	}

	switch {
	case m.gameModel.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.gameModel.BackToMenu():
		return m.toMenu()
	}

	return m, cmd
}

func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.history.Update(msg)
	if h, ok := newModel.(HistoryModel); ok {
		m.history = h
	}

	switch {
	case m.history.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.history.IsGoingBack():
		return m.toMenu()
	}

	return m, cmd
}

// toMenu rebuilds the menu so best tiles reflect new history.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.store, m.config)
	m.screen = screenMenu
	return m, m.menu.Init()
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenDifficulty:
		return m.difficulty.View()
	case screenGame:
		return m.gameModel.View()
	case screenHistory:
		return m.history.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the full menu flow in the local terminal.
func RunSession(store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	p := tea.NewProgram(NewSessionModel(store, cfg, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
