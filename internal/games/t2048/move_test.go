package t2048

import (
	"math/rand"
	"testing"
)

func TestMoveLine(t *testing.T) {
	tests := []struct {
		name    string
		line    []int // Edge-first ranks, -1 blank
		want    []int
		changed bool
		merges  int
	}{
		{"empty", []int{-1, -1, -1, -1}, []int{-1, -1, -1, -1}, false, 0},
		{"pair merges", []int{0, 0, -1, -1}, []int{1, -1, -1, -1}, true, 1},
		{"no equal neighbours", []int{0, 1, 0, -1}, []int{0, 1, 0, -1}, false, 0},
		{"already compact", []int{2, 1, -1, -1}, []int{2, 1, -1, -1}, false, 0},
		{"slide to edge", []int{-1, -1, -1, 2}, []int{2, -1, -1, -1}, true, 0},
		{"merge across gap", []int{0, -1, -1, 0}, []int{1, -1, -1, -1}, true, 1},
		{"three equal no chain", []int{0, 0, 0, -1}, []int{1, 0, -1, -1}, true, 1},
		{"merged tile not remerged", []int{0, 0, 1, -1}, []int{1, 1, -1, -1}, true, 1},
		{"merge behind blocker", []int{1, 0, 0, -1}, []int{1, 1, -1, -1}, true, 1},
		{"two pairs", []int{0, 0, 0, 0}, []int{1, 1, -1, -1}, true, 2},
		{"compact then merge", []int{-1, 1, 1, 1}, []int{2, 1, -1, -1}, true, 1},
		{"distinct pairs", []int{2, 2, 3, 3}, []int{3, 4, -1, -1}, true, 2},
	}

	for _, tt := range tests {
		for _, dir := range Directions {
			t.Run(tt.name+"/"+dir.String(), func(t *testing.T) {
				g := lineGrid(t, dir, tt.line)

				res, err := Move(g, dir)
				if err != nil {
					t.Fatalf("Move failed: %v", err)
				}
				if got := readLine(g, dir); !equalInts(got, tt.want) {
					t.Errorf("line = %v, want %v", got, tt.want)
				}
				if res.Changed != tt.changed {
					t.Errorf("Changed = %v, want %v", res.Changed, tt.changed)
				}
				if res.Merges != tt.merges {
					t.Errorf("Merges = %d, want %d", res.Merges, tt.merges)
				}
				checkInvariants(t, g)
			})
		}
	}
}

func TestMoveRepeatAfterMerge(t *testing.T) {
	// 8,4,4,8 resolves to 8,8,8 since the merged 8 is spent for this move.
	// The next move merges the leading pair and slides the last 8 behind it.
	for _, dir := range Directions {
		t.Run(dir.String(), func(t *testing.T) {
			g := lineGrid(t, dir, []int{2, 1, 1, 2})

			first, err := Move(g, dir)
			if err != nil {
				t.Fatal(err)
			}
			if got := readLine(g, dir); !equalInts(got, []int{2, 2, 2, -1}) || first.Merges != 1 {
				t.Fatalf("first move: line = %v, merges = %d", got, first.Merges)
			}

			second, err := Move(g, dir)
			if err != nil {
				t.Fatal(err)
			}
			if got := readLine(g, dir); !equalInts(got, []int{3, 2, -1, -1}) {
				t.Errorf("second move: line = %v, want [3 2 -1 -1]", got)
			}
			if second.Merges != 1 || second.Slides != 1 {
				t.Errorf("second move: merges = %d, slides = %d, want 1 and 1", second.Merges, second.Slides)
			}

			third, err := Move(g, dir)
			if err != nil {
				t.Fatal(err)
			}
			if third.Changed {
				t.Error("merge-free line changed on a third move")
			}
		})
	}
}

func TestMoveMergeKeepsEdgeSideID(t *testing.T) {
	g := gridFromRanks(t, [][]int{
		{0, 0, -1, -1},
		{-1, -1, -1, -1},
		{-1, -1, -1, -1},
		{-1, -1, -1, -1},
	})
	edge, _ := g.TileAt(Position{Row: 0, Col: 0})
	mover, _ := g.TileAt(Position{Row: 0, Col: 1})

	if _, err := Move(g, DirLeft); err != nil {
		t.Fatal(err)
	}

	got, ok := g.TileAt(Position{Row: 0, Col: 0})
	if !ok || got.ID != edge.ID || got.Rank != 1 {
		t.Errorf("survivor = %+v, want id %d rank 1", got, edge.ID)
	}
	if _, found := g.FindPosition(mover); found {
		t.Error("absorbed tile should be gone")
	}
	if g.Len() != 1 {
		t.Errorf("Len() = %d, want 1", g.Len())
	}
}

func TestMoveSlideKeepsID(t *testing.T) {
	g := gridFromRanks(t, [][]int{
		{-1, -1, 3},
		{-1, -1, -1},
		{-1, -1, -1},
	})
	tile, _ := g.TileAt(Position{Row: 0, Col: 2})

	if _, err := Move(g, DirDown); err != nil {
		t.Fatal(err)
	}
	pos, ok := g.FindPosition(tile)
	if !ok || pos != (Position{Row: 2, Col: 2}) {
		t.Errorf("tile at %s, %v; want (2,2)", pos, ok)
	}
}

func TestMoveLinesIndependent(t *testing.T) {
	g := gridFromRanks(t, [][]int{
		{0, 0, -1},
		{1, -1, 1},
		{2, 3, 2},
	})

	res, err := Move(g, DirLeft)
	if err != nil {
		t.Fatal(err)
	}
	want := [][]int{
		{1, -1, -1},
		{2, -1, -1},
		{2, 3, 2},
	}
	got := g.Ranks()
	for r := range want {
		if !equalInts(got[r], want[r]) {
			t.Errorf("row %d = %v, want %v", r, got[r], want[r])
		}
	}
	if res.Merges != 2 {
		t.Errorf("Merges = %d, want 2", res.Merges)
	}
}

func TestMoveProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		width := 2 + rng.Intn(5)
		base := randomGrid(rng, width)

		for _, dir := range Directions {
			g := base.Clone()
			before := g.Len()

			res, err := Move(g, dir)
			if err != nil {
				t.Fatalf("Move(%s) failed: %v\n%s", dir, err, base)
			}
			checkInvariants(t, g)

			// Every merge removes exactly one tile.
			if got := before - g.Len(); got != res.Merges {
				t.Fatalf("lost %d tiles with %d merges moving %s\n%s", got, res.Merges, dir, base)
			}

			// A merge-free pass fully resolves every line. After a merge the
			// merged tile may still pair with its neighbour on the next move.
			again, err := Move(g.Clone(), dir)
			if err != nil {
				t.Fatal(err)
			}
			if res.Merges == 0 && again.Changed {
				t.Fatalf("second %s move changed a merge-free result\n%s", dir, base)
			}

			if res.Changed != Changes(base, dir) {
				t.Fatalf("Changes(%s) disagrees with Move\n%s", dir, base)
			}
		}
	}
}

func TestCanMove(t *testing.T) {
	tests := []struct {
		name  string
		ranks [][]int
		want  bool
	}{
		{"empty", [][]int{{-1, -1}, {-1, -1}}, false},
		{"single tile in corner", [][]int{{0, -1}, {-1, -1}}, true},
		{"full with pair", [][]int{{0, 0}, {1, 2}}, true},
		{"full locked", [][]int{{0, 1}, {1, 0}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := gridFromRanks(t, tt.ranks)
			snapshot := g.String()
			if got := CanMove(g); got != tt.want {
				t.Errorf("CanMove() = %v, want %v", got, tt.want)
			}
			if g.String() != snapshot {
				t.Error("CanMove must not modify the grid")
			}
		})
	}
}

func TestApplyMove(t *testing.T) {
	g := gridFromRanks(t, [][]int{{0, 1}, {-1, -1}})

	changed, err := ApplyMove(g, DirLeft)
	if err != nil || changed {
		t.Errorf("ApplyMove(left) = %v, %v; want false, nil", changed, err)
	}
	changed, err = ApplyMove(g, DirDown)
	if err != nil || !changed {
		t.Errorf("ApplyMove(down) = %v, %v; want true, nil", changed, err)
	}
}
