package t2048

// GameStatus is the coarse status recorded in a Snapshot.
type GameStatus string

const (
	StatusPlaying     GameStatus = "playing"
	StatusAnimating   GameStatus = "animating"
	StatusPaused      GameStatus = "paused"
	StatusGameOver    GameStatus = "game_over"
	StatusPausedSmall GameStatus = "paused_small_window"
	StatusError       GameStatus = "error"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick          uint64
	Width         int
	Moves         int
	Merges        int
	MaxRank       int
	RankOneChance float64
	Status        GameStatus
	Tiles         []Placement
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	status := StatusPlaying
	switch {
	case g.tooSmall:
		status = StatusPausedSmall
	case g.lastErr != nil:
		status = StatusError
	case g.paused:
		status = StatusPaused
	case g.ctrl.State() == StateOver:
		status = StatusGameOver
	case g.anim.active():
		status = StatusAnimating
	}

	return Snapshot{
		Tick:          g.tick,
		Width:         g.ctrl.Width(),
		Moves:         g.ctrl.Moves(),
		Merges:        g.ctrl.Merges(),
		MaxRank:       g.ctrl.MaxRank(),
		RankOneChance: g.ctrl.RankOneChance(),
		Status:        status,
		Tiles:         g.ctrl.Snapshot(),
	}
}
