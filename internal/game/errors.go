package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMove is matched by every rejected move.
	ErrInvalidMove = errors.New("invalid move")

	ErrOutOfBounds  = fmt.Errorf("%w: position out of bounds", ErrInvalidMove)
	ErrCellOccupied = fmt.Errorf("%w: cell already occupied", ErrInvalidMove)
	ErrGameOver     = fmt.Errorf("%w: game already finished", ErrInvalidMove)

	ErrInvalidBoard = errors.New("invalid board")
)
