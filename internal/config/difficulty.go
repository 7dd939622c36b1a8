package config

import "math"

// DifficultyManager derives the spawn bias from the number of moves played.
type DifficultyManager struct {
	cfg          DifficultyConfig
	base         float64
	initialLevel float64
}

// NewDifficultyManager creates a manager for the given spawn base chance.
func NewDifficultyManager(cfg DifficultyConfig, baseChance float64) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		base:         clampF(baseChance, 0.0, 1.0),
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) after moves.
func (d *DifficultyManager) Level(moves int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "moves":
		progress = float64(moves) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// RankOneChance returns the spawn bias after moves. It interpolates from the
// base chance toward scaling.rank_one_chance_max; a max below the base never
// lowers the bias.
func (d *DifficultyManager) RankOneChance(moves int) float64 {
	if !d.cfg.Enabled {
		return d.base
	}
	target := math.Max(d.base, d.cfg.Scaling.RankOneChanceMax)
	return clampF(d.base+d.Level(moves)*(target-d.base), 0.0, 1.0)
}

// clampF restricts a float64 to [lo, hi].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
