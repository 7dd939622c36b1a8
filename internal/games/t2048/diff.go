package t2048

// ChangeKind classifies how a tile differs between two snapshots.
type ChangeKind int

const (
	ChangeSlide     ChangeKind = iota // Same id, new position, same rank
	ChangeIncrement                   // Same id, rank changed (position may differ)
	ChangeSpawn                       // Id not present before
	ChangeAbsorb                      // Id not present after (merged away)
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeSlide:
		return "slide"
	case ChangeIncrement:
		return "increment"
	case ChangeSpawn:
		return "spawn"
	case ChangeAbsorb:
		return "absorb"
	default:
		return "unknown"
	}
}

// Change describes one tile's transition between snapshots. From is unset
// for spawns and To is unset for absorbed tiles.
type Change struct {
	Kind ChangeKind
	ID   TileID
	From Position
	To   Position
	Old  Tile
	New  Tile
}

// Diff compares two snapshots by tile id. Tiles unchanged in both position
// and rank are omitted. Changes for tiles in after come first, in after's
// order, followed by absorbed tiles in before's order.
func Diff(before, after []Placement) []Change {
	prev := make(map[TileID]Placement, len(before))
	for _, p := range before {
		prev[p.Tile.ID] = p
	}

	var changes []Change
	seen := make(map[TileID]bool, len(after))
	for _, cur := range after {
		seen[cur.Tile.ID] = true

		old, ok := prev[cur.Tile.ID]
		switch {
		case !ok:
			changes = append(changes, Change{Kind: ChangeSpawn, ID: cur.Tile.ID, To: cur.Pos, New: cur.Tile})
		case old.Tile.Rank != cur.Tile.Rank:
			changes = append(changes, Change{
				Kind: ChangeIncrement, ID: cur.Tile.ID,
				From: old.Pos, To: cur.Pos, Old: old.Tile, New: cur.Tile,
			})
		case old.Pos != cur.Pos:
			changes = append(changes, Change{
				Kind: ChangeSlide, ID: cur.Tile.ID,
				From: old.Pos, To: cur.Pos, Old: old.Tile, New: cur.Tile,
			})
		}
	}

	for _, old := range before {
		if !seen[old.Tile.ID] {
			changes = append(changes, Change{Kind: ChangeAbsorb, ID: old.Tile.ID, From: old.Pos, Old: old.Tile})
		}
	}
	return changes
}
