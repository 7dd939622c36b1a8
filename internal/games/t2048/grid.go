package t2048

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultWidth is the classic board dimension.
const DefaultWidth = 4

// MinWidth is the smallest supported board dimension.
const MinWidth = 2

// Grid is a square board of optional tiles. It owns the id counter for the
// tiles created on it, so separate grids never share state.
//
// Grid is not safe for concurrent use; the controller serializes access.
type Grid struct {
	width  int
	cells  []*Tile // row-major, nil means blank
	nextID TileID
}

// NewGrid creates an empty width x width grid.
func NewGrid(width int) *Grid {
	if width < MinWidth {
		panic(fmt.Sprintf("t2048: grid width %d below minimum %d", width, MinWidth))
	}
	return &Grid{
		width: width,
		cells: make([]*Tile, width*width),
	}
}

// Width returns the board dimension.
func (g *Grid) Width() int {
	return g.width
}

// InBounds reports whether pos lies on the grid.
func (g *Grid) InBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < g.width && pos.Col >= 0 && pos.Col < g.width
}

func (g *Grid) index(pos Position) int {
	return pos.Row*g.width + pos.Col
}

// Occupied reports whether a tile sits at pos.
func (g *Grid) Occupied(pos Position) bool {
	return g.InBounds(pos) && g.cells[g.index(pos)] != nil
}

// TileAt returns the tile at pos, if any.
func (g *Grid) TileAt(pos Position) (Tile, bool) {
	if !g.InBounds(pos) {
		return Tile{}, false
	}
	t := g.cells[g.index(pos)]
	if t == nil {
		return Tile{}, false
	}
	return *t, true
}

// NewTile allocates a tile with the next unused id of this grid.
// The tile is not placed.
func (g *Grid) NewTile(rank int) Tile {
	t := Tile{ID: g.nextID, Rank: rank}
	g.nextID++
	return t
}

// Place puts tile at pos. The cell must be blank and the tile id must not be
// on the grid already.
func (g *Grid) Place(pos Position, tile Tile) error {
	if !g.InBounds(pos) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, pos)
	}
	if g.Occupied(pos) {
		return &OccupiedPositionError{Pos: pos}
	}
	if _, found := g.FindPosition(tile); found {
		return &DuplicateIDError{ID: tile.ID}
	}
	if tile.ID >= g.nextID {
		g.nextID = tile.ID + 1
	}
	t := tile
	g.cells[g.index(pos)] = &t
	return nil
}

// Remove clears the cell at pos and returns the tile it held. Removing from
// a blank cell is an error and leaves the grid unchanged.
func (g *Grid) Remove(pos Position) (Tile, error) {
	if !g.InBounds(pos) {
		return Tile{}, fmt.Errorf("%w: %s", ErrOutOfBounds, pos)
	}
	i := g.index(pos)
	t := g.cells[i]
	if t == nil {
		return Tile{}, fmt.Errorf("%w at %s", ErrEmptyCell, pos)
	}
	g.cells[i] = nil
	return *t, nil
}

// promote increments the rank of the tile at pos in place.
func (g *Grid) promote(pos Position) (Tile, error) {
	if !g.InBounds(pos) {
		return Tile{}, fmt.Errorf("%w: %s", ErrOutOfBounds, pos)
	}
	t := g.cells[g.index(pos)]
	if t == nil {
		return Tile{}, fmt.Errorf("%w at %s", ErrEmptyCell, pos)
	}
	t.Rank++
	return *t, nil
}

// FindPosition scans the grid for the tile with the same id.
func (g *Grid) FindPosition(tile Tile) (Position, bool) {
	for i, t := range g.cells {
		if t != nil && t.Same(tile) {
			return Position{Row: i / g.width, Col: i % g.width}, true
		}
	}
	return Position{}, false
}

// Blanks returns every empty cell in row-major order.
func (g *Grid) Blanks() []Position {
	var blanks []Position
	for i, t := range g.cells {
		if t == nil {
			blanks = append(blanks, Position{Row: i / g.width, Col: i % g.width})
		}
	}
	return blanks
}

// IsFull reports whether no blank cell remains.
func (g *Grid) IsFull() bool {
	for _, t := range g.cells {
		if t == nil {
			return false
		}
	}
	return true
}

// Len returns the number of tiles on the grid.
func (g *Grid) Len() int {
	n := 0
	for _, t := range g.cells {
		if t != nil {
			n++
		}
	}
	return n
}

// MaxRank returns the highest rank on the grid, or -1 when it is empty.
func (g *Grid) MaxRank() int {
	best := -1
	for _, t := range g.cells {
		if t != nil && t.Rank > best {
			best = t.Rank
		}
	}
	return best
}

// Snapshot returns all occupied cells in row-major order. The result is a
// copy; mutating it does not affect the grid.
func (g *Grid) Snapshot() []Placement {
	out := make([]Placement, 0, len(g.cells))
	for i, t := range g.cells {
		if t != nil {
			out = append(out, Placement{
				Pos:  Position{Row: i / g.width, Col: i % g.width},
				Tile: *t,
			})
		}
	}
	return out
}

// Clone returns a deep copy including the id counter.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		width:  g.width,
		cells:  make([]*Tile, len(g.cells)),
		nextID: g.nextID,
	}
	for i, t := range g.cells {
		if t != nil {
			tile := *t
			c.cells[i] = &tile
		}
	}
	return c
}

// Ranks returns the board as a matrix of ranks with -1 for blanks.
func (g *Grid) Ranks() [][]int {
	out := make([][]int, g.width)
	for r := range out {
		out[r] = make([]int, g.width)
		for c := range out[r] {
			out[r][c] = -1
			if t := g.cells[r*g.width+c]; t != nil {
				out[r][c] = t.Rank
			}
		}
	}
	return out
}

// String renders displayed values, one row per line, "." for blanks.
func (g *Grid) String() string {
	var sb strings.Builder
	for r := 0; r < g.width; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < g.width; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			t := g.cells[r*g.width+c]
			if t == nil {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(strconv.Itoa(t.Value()))
		}
	}
	return sb.String()
}
