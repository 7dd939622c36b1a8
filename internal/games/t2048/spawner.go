package t2048

import (
	"fmt"
	"math/rand"
)

// DefaultRankOneChance is the probability of spawning a rank 1 tile (shown
// as 4) instead of rank 0.
const DefaultRankOneChance = 0.2

// Spawner places new tiles on random blank cells.
type Spawner struct {
	rng           *rand.Rand
	rankOneChance float64
}

// NewSpawner creates a spawner drawing from rng. rankOneChance is clamped
// to [0, 1].
func NewSpawner(rng *rand.Rand, rankOneChance float64) *Spawner {
	s := &Spawner{rng: rng}
	s.SetRankOneChance(rankOneChance)
	return s
}

// SetRankOneChance changes the spawn bias for subsequent spawns.
func (s *Spawner) SetRankOneChance(p float64) {
	s.rankOneChance = min(max(p, 0), 1)
}

// RankOneChance returns the current spawn bias.
func (s *Spawner) RankOneChance() float64 {
	return s.rankOneChance
}

// Spawn picks a blank cell uniformly at random, creates a tile with a fresh
// grid id and places it. Callers must check IsFull first; a full grid yields
// ErrBoardFull.
func (s *Spawner) Spawn(g *Grid) (Placement, error) {
	blanks := g.Blanks()
	if len(blanks) == 0 {
		return Placement{}, ErrBoardFull
	}

	pos := blanks[s.rng.Intn(len(blanks))]

	rank := 0
	if s.rng.Float64() < s.rankOneChance {
		rank = 1
	}

	tile := g.NewTile(rank)
	if err := g.Place(pos, tile); err != nil {
		return Placement{}, fmt.Errorf("t2048: spawn at %s: %w", pos, err)
	}
	return Placement{Pos: pos, Tile: tile}, nil
}
