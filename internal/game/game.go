package game

import (
	"fmt"
)

// Status is the tag of a game State.
type Status uint8

const (
	PlayerXMove Status = iota
	PlayerOMove
	PlayerXWin
	PlayerOWin
	Draw
)

// State is the current phase of a game. Line holds the winning triple for
// PlayerXWin and PlayerOWin and is zero otherwise.
type State struct {
	Status Status
	Line   Line
}

// IsGameOver reports whether the state is terminal.
func (s State) IsGameOver() bool {
	return s.Status == PlayerXWin || s.Status == PlayerOWin || s.Status == Draw
}

// Winner returns the winning player, or None when nobody has won.
func (s State) Winner() Owner {
	switch s.Status {
	case PlayerXWin:
		return PlayerX
	case PlayerOWin:
		return PlayerO
	default:
		return None
	}
}

func (s State) String() string {
	switch s.Status {
	case PlayerXMove:
		return "Player X moves"
	case PlayerOMove:
		return "Player O moves"
	case PlayerXWin:
		return "Player X wins"
	case PlayerOWin:
		return "Player O wins"
	case Draw:
		return "Tie"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s.Status))
	}
}

// Game is a board plus whose turn it is. X always moves first.
//
// A Game holds no references, so a copy by value is an independent game.
type Game struct {
	board Board
	turn  Owner
}

// New returns a game with an empty board and X to move.
func New() *Game {
	return &Game{turn: PlayerX}
}

// FromBoard builds a game from a 3x3 grid of owners. The turn is derived from
// the number of marks, so the grid must be reachable from an empty board with
// X moving first.
func FromBoard(rows [Size][Size]Owner) (*Game, error) {
	g := New()
	for r, row := range rows {
		for c, owner := range row {
			if owner > PlayerO {
				return nil, fmt.Errorf("%w: unknown owner %d at (%d, %d)", ErrInvalidBoard, owner, r, c)
			}
			g.board.cells[Position{Row: r, Column: c}.Index()] = owner
		}
	}

	xCount, oCount := g.board.Count(PlayerX), g.board.Count(PlayerO)
	if xCount != oCount && xCount != oCount+1 {
		return nil, fmt.Errorf("%w: %d X marks and %d O marks", ErrInvalidBoard, xCount, oCount)
	}
	if g.board.hasLine(PlayerX) && g.board.hasLine(PlayerO) {
		return nil, fmt.Errorf("%w: both players have a line", ErrInvalidBoard)
	}
	// The winner made the last move, so no mark follows a completed line.
	if g.board.hasLine(PlayerX) && xCount != oCount+1 {
		return nil, fmt.Errorf("%w: O moved after X won", ErrInvalidBoard)
	}
	if g.board.hasLine(PlayerO) && xCount != oCount {
		return nil, fmt.Errorf("%w: X moved after O won", ErrInvalidBoard)
	}
	if xCount > oCount {
		g.turn = PlayerO
	}
	return g, nil
}

// Move places the current player's mark at p. The board is left unchanged when
// the move is rejected.
func (g *Game) Move(p Position) (State, error) {
	if g.State().IsGameOver() {
		return g.State(), ErrGameOver
	}
	if !p.InBounds() {
		return g.State(), fmt.Errorf("%w: %v", ErrOutOfBounds, p)
	}
	if g.board.Contains(p) {
		return g.State(), fmt.Errorf("%w: %v", ErrCellOccupied, p)
	}

	g.board.cells[p.Index()] = g.turn
	g.turn = g.turn.Opponent()

	return g.State(), nil
}

// State computes the current state from the board.
func (g *Game) State() State {
	if owner, line, ok := g.board.winner(); ok {
		if owner == PlayerX {
			return State{Status: PlayerXWin, Line: line}
		}
		return State{Status: PlayerOWin, Line: line}
	}

	if g.board.IsFull() {
		return State{Status: Draw}
	}

	if g.turn == PlayerO {
		return State{Status: PlayerOMove}
	}
	return State{Status: PlayerXMove}
}

// Board returns a copy of the board.
func (g *Game) Board() Board {
	return g.board
}

// Turn returns the player to move. It keeps alternating after the game ends,
// so check State first.
func (g *Game) Turn() Owner {
	return g.turn
}

// Clone returns an independent copy of the game.
func (g *Game) Clone() *Game {
	c := *g
	return &c
}
