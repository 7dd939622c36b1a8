package t2048

import (
	"math/rand"
	"testing"
)

// gridFromRanks builds a grid from a rank matrix, -1 marking blanks.
// Ids are assigned in row-major order starting at 0.
func gridFromRanks(t *testing.T, ranks [][]int) *Grid {
	t.Helper()
	g := NewGrid(len(ranks))
	for r, row := range ranks {
		if len(row) != len(ranks) {
			t.Fatalf("row %d has %d cells, want %d", r, len(row), len(ranks))
		}
		for c, rank := range row {
			if rank < 0 {
				continue
			}
			if err := g.Place(Position{Row: r, Col: c}, g.NewTile(rank)); err != nil {
				t.Fatalf("Place(%d,%d): %v", r, c, err)
			}
		}
	}
	return g
}

// lineGrid builds a width x width grid holding a single line for dir.
// line[0] is the cell on the target edge.
func lineGrid(t *testing.T, dir Direction, line []int) *Grid {
	t.Helper()
	w := len(line)
	g := NewGrid(w)
	for step, rank := range line {
		if rank < 0 {
			continue
		}
		if err := g.Place(lineCell(dir, 0, step, w), g.NewTile(rank)); err != nil {
			t.Fatalf("Place: %v", err)
		}
	}
	return g
}

// readLine reads line 0 for dir in the same orientation as lineGrid.
func readLine(g *Grid, dir Direction) []int {
	out := make([]int, g.Width())
	for step := range out {
		out[step] = -1
		if tile, ok := g.TileAt(lineCell(dir, 0, step, g.Width())); ok {
			out[step] = tile.Rank
		}
	}
	return out
}

// randomGrid fills roughly 60% of cells with small random ranks.
func randomGrid(rng *rand.Rand, width int) *Grid {
	g := NewGrid(width)
	for r := 0; r < width; r++ {
		for c := 0; c < width; c++ {
			if rng.Float64() < 0.6 {
				// Blank cells guarantee Place cannot fail here.
				_ = g.Place(Position{Row: r, Col: c}, g.NewTile(rng.Intn(4)))
			}
		}
	}
	return g
}

// checkInvariants fails if two tiles share an id or a cell.
func checkInvariants(t *testing.T, g *Grid) {
	t.Helper()
	ids := make(map[TileID]Position)
	cells := make(map[Position]bool)
	for _, p := range g.Snapshot() {
		if prev, dup := ids[p.Tile.ID]; dup {
			t.Fatalf("tile id %d at both %s and %s", p.Tile.ID, prev, p.Pos)
		}
		if cells[p.Pos] {
			t.Fatalf("two tiles at %s", p.Pos)
		}
		ids[p.Tile.ID] = p.Pos
		cells[p.Pos] = true
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
