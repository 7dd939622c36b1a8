package t2048

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tilemerge/internal/core"
	"github.com/vovakirdan/tilemerge/internal/registry"
)

func testRuntimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Seed = 12345
	return cfg
}

// settle steps with no input until the running animation ends.
func settle(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		if !g.anim.active() {
			return
		}
		g.Step(core.NewInputFrame())
	}
	t.Fatal("animation never finished")
}

func press(g *Game, a core.Action) core.StepResult {
	in := core.NewInputFrame()
	in.Set(a)
	return g.Step(in)
}

func TestGameRegistered(t *testing.T) {
	for _, id := range []string{"2048", "2048_3x3", "2048_5x5", "2048_6x6"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q): %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, want %q", g.ID(), id)
		}
	}
}

func TestGameReset(t *testing.T) {
	g := NewWithWidth(5)
	g.Reset(testRuntimeConfig())

	if g.Controller().Width() != 5 {
		t.Errorf("width = %d, want 5", g.Controller().Width())
	}
	snap := g.Snapshot()
	if len(snap.Tiles) != DefaultInitialTiles {
		t.Errorf("tiles = %d, want %d", len(snap.Tiles), DefaultInitialTiles)
	}
	if snap.Status != StatusAnimating {
		t.Errorf("status = %s, want spawn animation", snap.Status)
	}
	if g.Title() != "2048 (5x5)" {
		t.Errorf("Title() = %q", g.Title())
	}
}

func TestGameDeterministic(t *testing.T) {
	play := func() Snapshot {
		g := New()
		g.Reset(testRuntimeConfig())
		moves := []core.Action{core.ActionLeft, core.ActionUp, core.ActionRight, core.ActionDown}
		for i := 0; i < 40; i++ {
			settle(t, g)
			press(g, moves[i%len(moves)])
		}
		return g.Snapshot()
	}

	a, b := play(), play()
	if a.Moves != b.Moves || a.Tick != b.Tick || len(a.Tiles) != len(b.Tiles) {
		t.Fatalf("snapshots differ: %+v vs %+v", a, b)
	}
	for i := range a.Tiles {
		if a.Tiles[i] != b.Tiles[i] {
			t.Errorf("tile %d differs: %+v vs %+v", i, a.Tiles[i], b.Tiles[i])
		}
	}
}

func TestGameInputBlockedWhileAnimating(t *testing.T) {
	g := New()
	g.Reset(testRuntimeConfig())
	if !g.anim.active() {
		t.Fatal("reset should start the spawn animation")
	}

	before := g.Controller().String()
	for _, a := range []core.Action{core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown} {
		press(g, a)
	}
	if g.Controller().String() != before || g.Controller().Moves() != 0 {
		t.Error("moves applied during animation")
	}
}

func TestGameMoveStartsAnimation(t *testing.T) {
	g := New()
	g.Reset(testRuntimeConfig())
	settle(t, g)

	g.Controller().grid = gridFromRanks(t, [][]int{
		{-1, -1, -1, 0},
		{-1, -1, -1, -1},
		{-1, -1, -1, -1},
		{-1, -1, -1, -1},
	})
	res := press(g, core.ActionLeft)
	if !res.Moved {
		t.Fatal("move should report Moved")
	}
	if res.State.Moves != 1 {
		t.Errorf("Moves = %d, want 1", res.State.Moves)
	}
	if !g.anim.active() || g.anim.phase != PhaseSlide {
		t.Errorf("expected slide animation, phase = %d", g.anim.phase)
	}
	settle(t, g)
}

func TestGamePause(t *testing.T) {
	g := New()
	g.Reset(testRuntimeConfig())
	settle(t, g)

	press(g, core.ActionPause)
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}
	if res := press(g, core.ActionLeft); res.Moved {
		t.Error("paused game accepted a move")
	}
	if g.Snapshot().Status != StatusPaused {
		t.Errorf("status = %s, want paused", g.Snapshot().Status)
	}

	press(g, core.ActionPause)
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestGameOverAndRestart(t *testing.T) {
	g := New()
	g.Reset(testRuntimeConfig())
	settle(t, g)

	g.Controller().grid = gridFromRanks(t, lockedRanks())
	press(g, core.ActionUp)
	if !g.State().GameOver {
		t.Fatal("locked board should end the game")
	}
	if g.Snapshot().Status != StatusGameOver {
		t.Errorf("status = %s, want game over", g.Snapshot().Status)
	}
	if res := press(g, core.ActionDown); res.Moved {
		t.Error("move accepted after game over")
	}

	press(g, core.ActionRestart)
	if g.State().GameOver || g.State().Moves != 0 {
		t.Errorf("restart did not start a new game: %+v", g.State())
	}
}

func TestGameRestartMidGame(t *testing.T) {
	g := New()
	g.Reset(testRuntimeConfig())
	for _, a := range []core.Action{core.ActionLeft, core.ActionUp, core.ActionRight, core.ActionDown} {
		press(g, a)
		settle(t, g)
	}
	if g.State().Moves == 0 {
		t.Fatal("expected some moves before restart")
	}

	press(g, core.ActionRestart)
	st := g.State()
	if st.GameOver || st.Moves != 0 || st.Merges != 0 {
		t.Errorf("restart mid-game did not start a new game: %+v", st)
	}
	if got := len(g.Controller().Snapshot()); got != g.cfg.Board.InitialTiles {
		t.Errorf("tiles after restart = %d, want %d", got, g.cfg.Board.InitialTiles)
	}
}

func TestGameTooSmall(t *testing.T) {
	cfg := testRuntimeConfig()
	cfg.ScreenW = 10
	cfg.ScreenH = 5

	g := New()
	g.Reset(cfg)
	if !g.State().Paused {
		t.Error("tiny screen should pause the game")
	}
	if res := press(g, core.ActionLeft); res.Moved {
		t.Error("tiny screen accepted a move")
	}

	scr := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	g.Render(scr)
	if text := strings.Join(strings.Fields(scr.String()), " "); !strings.Contains(text, "Window too small Please resize terminal") {
		t.Errorf("expected wrapped size warning, got:\n%s", scr.String())
	}
}

func TestWrapLines(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  []string
	}{
		{"Window too small", 40, []string{"Window too small"}},
		{"Window too small", 10, []string{"Window too", "small"}},
		{"Please resize terminal", 10, []string{"Please", "resize", "terminal"}},
		{"terminal", 4, []string{"term", "inal"}},
		{"anything", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := wrapLines(tt.text, tt.width)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("wrapLines(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestGameRender(t *testing.T) {
	g := New()
	g.Reset(testRuntimeConfig())
	settle(t, g)

	g.Controller().grid = gridFromRanks(t, [][]int{
		{10, -1, -1, -1},
		{-1, -1, -1, -1},
		{-1, -1, -1, -1},
		{-1, -1, -1, 0},
	})

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	out := scr.String()
	for _, want := range []string{"2048", "Moves: 0", "Best: 2048"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestGameResizeKeepsBoard(t *testing.T) {
	cfg := testRuntimeConfig()
	g := New()
	g.Reset(cfg)
	before := g.Controller().String()

	var _ registry.Resizable = g
	g.Resize(10, 5)
	if !g.State().Paused {
		t.Error("shrinking below the board should pause")
	}
	g.Resize(cfg.ScreenW, cfg.ScreenH)
	if g.State().Paused {
		t.Error("growing back should resume")
	}
	if g.Controller().String() != before {
		t.Error("resize must not restart the game")
	}
	if g.State().BoardWidth != 4 {
		t.Errorf("BoardWidth = %d, want 4", g.State().BoardWidth)
	}
}
