package t2048

import (
	"errors"
	"fmt"
)

var (
	// ErrBoardFull is returned by the spawner when no blank cell remains.
	ErrBoardFull = errors.New("t2048: board is full")

	// ErrEmptyCell is returned when removing a tile from a blank cell.
	ErrEmptyCell = errors.New("t2048: cell is empty")

	// ErrOutOfBounds is returned for positions outside the grid.
	ErrOutOfBounds = errors.New("t2048: position out of bounds")

	// ErrGameOver is returned when a move is requested after the game ended.
	ErrGameOver = errors.New("t2048: game is over")
)

// OccupiedPositionError reports an attempt to place a tile on a taken cell.
type OccupiedPositionError struct {
	Pos Position
}

func (e *OccupiedPositionError) Error() string {
	return fmt.Sprintf("t2048: position %s is already occupied", e.Pos)
}

// DuplicateIDError reports an attempt to place a tile whose id is already on
// the grid.
type DuplicateIDError struct {
	ID TileID
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("t2048: tile id %d is already on the grid", e.ID)
}
