package config

import (
	_ "embed"
)

//go:embed defaults/t2048.yaml
var defaultT2048YAML []byte

// DefaultT2048Config returns the hardcoded default configuration. It matches
// the embedded defaults/t2048.yaml.
func DefaultT2048Config() T2048Config {
	return T2048Config{
		Board: BoardConfig{
			Width:        4,
			InitialTiles: 2,
		},
		Spawn: SpawnConfig{
			RankOneChance: 0.2,
		},
		Animation: AnimationConfig{
			SlideTicks: 8, // ~133ms at 60fps
			PopTicks:   6,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "moves",
				MaxAt: 1000,
			},
			Scaling: ScalingConfig{
				RankOneChanceMax: 0.35,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "2048", "t2048":
		return defaultT2048YAML
	default:
		return nil
	}
}
