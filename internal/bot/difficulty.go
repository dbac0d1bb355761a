package bot

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidDifficulty = errors.New("invalid difficulty")
	ErrNoMoveAvailable   = errors.New("no move available")
)

// Difficulty selects the strategy tier of an Opponent.
type Difficulty uint8

const (
	Easy Difficulty = iota
	Medium
	Hard
	// Unbeatable searches exactly like Hard; perfect play never loses at 3x3.
	Unbeatable
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	case Unbeatable:
		return "unbeatable"
	default:
		return fmt.Sprintf("Difficulty(%d)", uint8(d))
	}
}

// Valid reports whether d is a known tier.
func (d Difficulty) Valid() bool {
	return d <= Unbeatable
}

// ParseDifficulty converts a tier name such as "hard" into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	case "unbeatable":
		return Unbeatable, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidDifficulty, s)
	}
}

// DifficultyFromByte converts the small-integer encoding used by front ends
// (0 easy, 1 medium, 2 hard, 3 unbeatable).
func DifficultyFromByte(b uint8) (Difficulty, error) {
	d := Difficulty(b)
	if !d.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidDifficulty, b)
	}
	return d, nil
}
