package game

import (
	"fmt"
	"iter"
)

const (
	// Size is the number of rows and columns on the board.
	Size = 3

	// Board boundaries
	BorderMin = 0
	BorderMax = Size - 1

	cellCount = Size * Size
)

// Owner is the occupant of a cell: nobody, player X or player O.
type Owner uint8

const (
	None Owner = iota
	PlayerX
	PlayerO
)

func (o Owner) String() string {
	switch o {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return "None"
	}
}

// Opponent returns the other player. None has no opponent.
func (o Owner) Opponent() Owner {
	switch o {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return None
	}
}

// Position is a (row, column) coordinate on the board.
type Position struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// InBounds reports whether the position lies on the board.
func (p Position) InBounds() bool {
	return p.Row >= BorderMin && p.Row <= BorderMax && p.Column >= BorderMin && p.Column <= BorderMax
}

// Index returns the row-major index of the position.
func (p Position) Index() int {
	return p.Row*Size + p.Column
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Column)
}

func positionAt(index int) Position {
	return Position{Row: index / Size, Column: index % Size}
}

// Line is a triple of positions that wins the game when all three share an owner.
type Line [Size]Position

// Lines lists every winning line: rows first, then columns, then diagonals.
var Lines = [...]Line{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Board maps every position to its owner. The zero value is an empty board.
type Board struct {
	cells [cellCount]Owner
}

// Get returns the owner of the cell at p, or None when p is off the board.
func (b Board) Get(p Position) Owner {
	if !p.InBounds() {
		return None
	}
	return b.cells[p.Index()]
}

// Contains reports whether the cell at p is occupied by a player.
func (b Board) Contains(p Position) bool {
	return b.Get(p) != None
}

// IsFull checks if every cell is occupied.
func (b Board) IsFull() bool {
	for _, owner := range b.cells {
		if owner == None {
			return false
		}
	}
	return true
}

// All yields every cell with its owner in row-major order.
// External encodings of the board rely on this order.
func (b Board) All() iter.Seq2[Position, Owner] {
	return func(yield func(Position, Owner) bool) {
		for i, owner := range b.cells {
			if !yield(positionAt(i), owner) {
				return
			}
		}
	}
}

// FreePositions yields the empty cells in row-major order.
func (b Board) FreePositions() iter.Seq[Position] {
	return func(yield func(Position) bool) {
		for p, owner := range b.All() {
			if owner == None && !yield(p) {
				return
			}
		}
	}
}

// Count returns how many cells the given owner holds.
func (b Board) Count(owner Owner) int {
	n := 0
	for _, o := range b.cells {
		if o == owner {
			n++
		}
	}
	return n
}

// winner returns the owner of the first completed line, if any.
func (b Board) winner() (Owner, Line, bool) {
	for _, line := range Lines {
		first := b.Get(line[0])
		if first != None && first == b.Get(line[1]) && first == b.Get(line[2]) {
			return first, line, true
		}
	}
	return None, Line{}, false
}

// hasLine reports whether owner has completed any line.
func (b Board) hasLine(owner Owner) bool {
	for _, line := range Lines {
		if b.Get(line[0]) == owner && b.Get(line[1]) == owner && b.Get(line[2]) == owner {
			return true
		}
	}
	return false
}
