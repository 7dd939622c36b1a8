package t2048

import (
	"errors"
	"math/rand"
	"testing"
)

func TestSpawnFillsBlank(t *testing.T) {
	g := gridFromRanks(t, [][]int{
		{0, -1, 1},
		{-1, 2, -1},
		{3, -1, 0},
	})
	occupied := make(map[Position]bool)
	for _, p := range g.Snapshot() {
		occupied[p.Pos] = true
	}
	s := NewSpawner(rand.New(rand.NewSource(1)), DefaultRankOneChance)

	for want := len(g.Blanks()) - 1; want >= 0; want-- {
		p, err := s.Spawn(g)
		if err != nil {
			t.Fatalf("Spawn failed: %v", err)
		}
		if occupied[p.Pos] {
			t.Fatalf("spawned on occupied cell %s", p.Pos)
		}
		occupied[p.Pos] = true

		if p.Tile.Rank != 0 && p.Tile.Rank != 1 {
			t.Errorf("spawned rank %d", p.Tile.Rank)
		}
		if got, ok := g.TileAt(p.Pos); !ok || !got.Same(p.Tile) {
			t.Errorf("placement %+v not on grid", p)
		}
		if got := len(g.Blanks()); got != want {
			t.Fatalf("blanks = %d, want %d", got, want)
		}
		checkInvariants(t, g)
	}

	if _, err := s.Spawn(g); !errors.Is(err, ErrBoardFull) {
		t.Errorf("Spawn on full grid: got %v, want ErrBoardFull", err)
	}
}

func TestSpawnRankBias(t *testing.T) {
	tests := []struct {
		name     string
		chance   float64
		min, max float64 // Accepted share of rank 1 tiles
	}{
		{"never", 0, 0, 0},
		{"always", 1, 1, 1},
		{"default", DefaultRankOneChance, 0.17, 0.23},
		{"clamped high", 3, 1, 1},
		{"clamped low", -1, 0, 0},
	}

	const draws = 4000
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSpawner(rand.New(rand.NewSource(42)), tt.chance)
			ones := 0
			for i := 0; i < draws; i++ {
				g := NewGrid(2)
				p, err := s.Spawn(g)
				if err != nil {
					t.Fatal(err)
				}
				if p.Tile.Rank == 1 {
					ones++
				}
			}
			share := float64(ones) / draws
			if share < tt.min || share > tt.max {
				t.Errorf("rank 1 share = %.3f, want [%.2f, %.2f]", share, tt.min, tt.max)
			}
		})
	}
}

func TestSpawnDeterministic(t *testing.T) {
	run := func() []Placement {
		g := NewGrid(4)
		s := NewSpawner(rand.New(rand.NewSource(99)), DefaultRankOneChance)
		for i := 0; i < 10; i++ {
			if _, err := s.Spawn(g); err != nil {
				t.Fatal(err)
			}
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("snapshot lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("placement %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
