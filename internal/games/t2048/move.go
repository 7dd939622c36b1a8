package t2048

import "fmt"

// MoveResult summarizes one pass of the move engine.
type MoveResult struct {
	Changed bool // Some tile changed position or rank
	Slides  int  // Single-cell steps into blank cells
	Merges  int  // Tiles absorbed into an equal-rank neighbour
}

// lineCell maps (line, step) to a grid position for dir. Step 0 is the cell
// on the target edge; higher steps walk back toward the far edge.
func lineCell(dir Direction, line, step, width int) Position {
	switch dir {
	case DirUp:
		return Position{Row: step, Col: line}
	case DirDown:
		return Position{Row: width - 1 - step, Col: line}
	case DirLeft:
		return Position{Row: line, Col: step}
	default:
		return Position{Row: line, Col: width - 1 - step}
	}
}

// Move slides every tile toward the edge named by dir, merging equal-rank
// neighbours. The grid is mutated in place.
//
// Lines are processed independently. Within a line, tiles nearest the
// target edge are resolved first, and a tile that received a merge this
// pass cannot take part in another one. Tile ids survive slides; on a merge
// the edge-side tile keeps its id and gains a rank while the moving tile is
// removed.
//
// An error means a grid invariant broke mid-pass and the grid may be
// partially updated.
func Move(g *Grid, dir Direction) (MoveResult, error) {
	var res MoveResult
	merged := make(map[TileID]bool)

	for line := 0; line < g.width; line++ {
		for step := 1; step < g.width; step++ {
			pos := lineCell(dir, line, step, g.width)
			if !g.Occupied(pos) {
				continue
			}
			if err := walk(g, pos, dir, merged, &res); err != nil {
				return res, err
			}
		}
	}

	res.Changed = res.Slides > 0 || res.Merges > 0
	return res, nil
}

// walk moves the tile at pos one cell at a time toward the edge.
func walk(g *Grid, pos Position, dir Direction, merged map[TileID]bool, res *MoveResult) error {
	tile, _ := g.TileAt(pos)
	delta := dir.delta()

	for {
		next := pos.Add(delta)
		if !g.InBounds(next) {
			return nil
		}

		other, occupied := g.TileAt(next)
		if !occupied {
			if _, err := g.Remove(pos); err != nil {
				return fmt.Errorf("t2048: slide %s from %s: %w", dir, pos, err)
			}
			if err := g.Place(next, tile); err != nil {
				return fmt.Errorf("t2048: slide %s to %s: %w", dir, next, err)
			}
			res.Slides++
			pos = next
			continue
		}

		if other.Rank != tile.Rank || merged[other.ID] {
			return nil
		}

		if _, err := g.Remove(pos); err != nil {
			return fmt.Errorf("t2048: merge %s from %s: %w", dir, pos, err)
		}
		if _, err := g.promote(next); err != nil {
			return fmt.Errorf("t2048: merge %s into %s: %w", dir, next, err)
		}
		merged[other.ID] = true
		res.Merges++
		return nil
	}
}

// ApplyMove runs Move and reports whether the board changed.
func ApplyMove(g *Grid, dir Direction) (bool, error) {
	res, err := Move(g, dir)
	return res.Changed, err
}

// CanMove reports whether any direction would change the grid. The check
// runs on clones; g is not modified.
func CanMove(g *Grid) bool {
	for _, dir := range Directions {
		if Changes(g, dir) {
			return true
		}
	}
	return false
}

// Changes reports whether moving g in dir would change it, without
// modifying g.
func Changes(g *Grid, dir Direction) bool {
	res, err := Move(g.Clone(), dir)
	return err == nil && res.Changed
}
