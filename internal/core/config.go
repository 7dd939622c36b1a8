package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the platform-facing summary of a running game.
type GameState struct {
	BoardWidth int  // Grid dimension, 0 before Reset
	Moves      int  // Moves that changed the board
	Merges     int  // Merges performed this session
	MaxValue   int  // Highest tile value on the board
	MaxRank    int  // Rank of that tile, -1 for an empty board
	GameOver   bool // No legal move remains
	Paused     bool // Paused or blocked by a too-small window
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	Moved bool // A move changed the board during this tick
}
