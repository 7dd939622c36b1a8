// Package config provides YAML-based game configuration loading and
// difficulty management for tilemerge.
package config

import "fmt"

// T2048Config contains all configuration for the tile merging game.
type T2048Config struct {
	Board      BoardConfig      `yaml:"board" json:"board"`
	Spawn      SpawnConfig      `yaml:"spawn" json:"spawn"`
	Animation  AnimationConfig  `yaml:"animation" json:"animation"`
	Difficulty DifficultyConfig `yaml:"difficulty" json:"difficulty"`
}

// BoardConfig defines the grid.
type BoardConfig struct {
	Width        int `yaml:"width" json:"width"`
	InitialTiles int `yaml:"initial_tiles" json:"initial_tiles"`
}

// SpawnConfig defines how new tiles are drawn.
type SpawnConfig struct {
	RankOneChance float64 `yaml:"rank_one_chance" json:"rank_one_chance"` // Chance of a 4 instead of a 2
}

// AnimationConfig defines animation lengths in ticks.
type AnimationConfig struct {
	SlideTicks int `yaml:"slide_ticks" json:"slide_ticks"`
	PopTicks   int `yaml:"pop_ticks" json:"pop_ticks"`
}

// DifficultyConfig defines how the spawn bias evolves during a game.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled" json:"enabled"`
	InitialLevel float64           `yaml:"initial_level" json:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression" json:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling" json:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a game.
type ProgressionConfig struct {
	Type  string `yaml:"type" json:"type"`     // "moves" or "none"
	MaxAt int    `yaml:"max_at" json:"max_at"` // Moves at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	RankOneChanceMax float64 `yaml:"rank_one_chance_max" json:"rank_one_chance_max"` // Spawn bias at max difficulty
}

// Validate checks semantic constraints the schema cannot express.
func (c T2048Config) Validate() error {
	if c.Board.Width < 2 {
		return fmt.Errorf("config: board.width must be at least 2, got %d", c.Board.Width)
	}
	if c.Board.InitialTiles < 1 || c.Board.InitialTiles > c.Board.Width*c.Board.Width {
		return fmt.Errorf("config: board.initial_tiles must be in [1, %d], got %d",
			c.Board.Width*c.Board.Width, c.Board.InitialTiles)
	}
	if c.Spawn.RankOneChance < 0 || c.Spawn.RankOneChance > 1 {
		return fmt.Errorf("config: spawn.rank_one_chance must be in [0, 1], got %v", c.Spawn.RankOneChance)
	}
	if c.Difficulty.Scaling.RankOneChanceMax < 0 || c.Difficulty.Scaling.RankOneChanceMax > 1 {
		return fmt.Errorf("config: difficulty.scaling.rank_one_chance_max must be in [0, 1], got %v",
			c.Difficulty.Scaling.RankOneChanceMax)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. An empty name is accepted and means
// "keep the config as loaded".
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
