package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tilemerge/internal/core"
	"github.com/vovakirdan/tilemerge/internal/storage"
)

// stubGame counts left presses as moves and ends after overAt moves.
type stubGame struct {
	resets int
	seed   int64
	moves  int
	overAt int
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.seed = cfg.Seed
	g.moves = 0
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	moved := false
	if in.Has(core.ActionLeft) && !g.over() {
		g.moves++
		moved = true
	}
	return core.StepResult{State: g.State(), Moved: moved}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "stub")
}

func (g *stubGame) over() bool {
	return g.overAt > 0 && g.moves >= g.overAt
}

func (g *stubGame) State() core.GameState {
	return core.GameState{BoardWidth: 4, Moves: g.moves, MaxRank: 3, GameOver: g.over()}
}

type memRecorder struct {
	runs []storage.Run
}

func (r *memRecorder) SaveRun(run storage.Run) (storage.Run, error) {
	r.runs = append(r.runs, run)
	return run, nil
}

func testConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Seed = 42
	return cfg
}

// send feeds a message through Update and returns the new model.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func pressLeft(t *testing.T, m Model) Model {
	t.Helper()
	m = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	return send(t, m, TickMsg{})
}

func TestModelRecordsGameOverOnce(t *testing.T) {
	game := &stubGame{overAt: 2}
	rec := &memRecorder{}
	m := NewModel(game, rec, testConfig(), nil)
	m.Init()

	for range 4 {
		m = pressLeft(t, m)
	}

	if len(rec.runs) != 1 {
		t.Fatalf("recorded %d runs, want 1", len(rec.runs))
	}
	run := rec.runs[0]
	if run.Outcome != storage.OutcomeGameOver || run.Moves != 2 || run.Variant != "stub" ||
		run.Width != 4 || run.Seed != 42 || run.MaxRank != 3 {
		t.Errorf("recorded %+v", run)
	}

	// Quitting after the game ended adds nothing.
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
	if len(rec.runs) != 1 {
		t.Errorf("quit after game over recorded again: %d runs", len(rec.runs))
	}
}

func TestModelQuitRecordsOnlyPlayedGames(t *testing.T) {
	rec := &memRecorder{}
	m := NewModel(&stubGame{}, rec, testConfig(), nil)
	m.Init()

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if len(rec.runs) != 0 {
		t.Errorf("untouched game recorded: %+v", rec.runs)
	}

	m = NewModel(&stubGame{}, rec, testConfig(), nil)
	m.Init()
	m = pressLeft(t, m)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("esc should go back to the menu")
	}
	if len(rec.runs) != 1 || rec.runs[0].Outcome != storage.OutcomeQuit {
		t.Errorf("recorded %+v, want one quit", rec.runs)
	}
}

func TestModelRestart(t *testing.T) {
	game := &stubGame{}
	rec := &memRecorder{}
	m := NewModel(game, rec, testConfig(), nil)
	m.Init()
	m = pressLeft(t, m)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if game.resets != 2 {
		t.Errorf("resets = %d, want 2", game.resets)
	}
	if game.seed == 42 {
		t.Error("restart should pick a fresh seed")
	}
	if len(rec.runs) != 1 || rec.runs[0].Outcome != storage.OutcomeQuit {
		t.Errorf("restart should record the abandoned game, got %+v", rec.runs)
	}

	// The new game records independently.
	m = pressLeft(t, m)
	send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if len(rec.runs) != 2 {
		t.Errorf("recorded %d runs, want 2", len(rec.runs))
	}
}

func TestModelWithoutRecorder(t *testing.T) {
	m := NewModel(&stubGame{overAt: 1}, nil, testConfig(), nil)
	m.Init()
	m = pressLeft(t, m)
	if !m.gameState.GameOver {
		t.Error("stub game should be over")
	}
	if recorderOf(nil) != nil {
		t.Error("recorderOf(nil) should be a nil interface")
	}
}

func TestModelView(t *testing.T) {
	m := NewModel(&stubGame{}, nil, testConfig(), nil)
	m.Init()
	if view := m.View(); view == "" {
		t.Error("View() should render the game")
	}
}
