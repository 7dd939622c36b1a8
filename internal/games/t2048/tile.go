// Package t2048 implements the rules of the sliding tile merging puzzle:
// an NxN grid of identified tiles, a slide-and-merge move engine, a random
// tile spawner and the controller that sequences them.
package t2048

import (
	"fmt"
	"strings"
)

// Position is a cell coordinate on the grid.
type Position struct {
	Row int
	Col int
}

// Add returns the position offset by the given delta.
func (p Position) Add(d Position) Position {
	return Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// TileID identifies a tile for its whole lifetime. Ids are never reused
// within a grid.
type TileID uint64

// Tile is a numbered block on the grid. Rank is an exponent: rank 0 shows
// as 2, rank 1 as 4 and so on.
type Tile struct {
	ID   TileID
	Rank int
}

// Same reports whether both values describe the same tile. Identity is the
// id alone; rank is ignored.
func (t Tile) Same(other Tile) bool {
	return t.ID == other.ID
}

// Value returns the displayed value 2^(rank+1).
func (t Tile) Value() int {
	return RankValue(t.Rank)
}

// RankValue converts a rank to its displayed value.
func RankValue(rank int) int {
	return 1 << (rank + 1)
}

// Direction is a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every direction in a fixed order.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ParseDirection converts a name such as "up" or "L" to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return DirUp, nil
	case "down", "d":
		return DirDown, nil
	case "left", "l":
		return DirLeft, nil
	case "right", "r":
		return DirRight, nil
	}
	return 0, fmt.Errorf("t2048: unknown direction %q", s)
}

// delta is the single step toward the edge the direction moves tiles to.
func (d Direction) delta() Position {
	switch d {
	case DirUp:
		return Position{Row: -1}
	case DirDown:
		return Position{Row: 1}
	case DirLeft:
		return Position{Col: -1}
	default:
		return Position{Col: 1}
	}
}

// Placement pairs a tile with the cell holding it.
type Placement struct {
	Pos  Position
	Tile Tile
}
