package bot

import (
	"ctchen222/tictactoe-core/internal/game"
	"fmt"
	"log/slog"
	"math/rand/v2"
)

// Opponent chooses moves for whichever player is to move in a game.
// It keeps no state between calls besides its random source, and never
// modifies the game it inspects.
type Opponent struct {
	difficulty Difficulty
	rng        *rand.Rand
}

// Option configures an Opponent.
type Option func(*Opponent)

// WithRand sets the random source used for random moves and tie-breaks.
func WithRand(rng *rand.Rand) Option {
	return func(o *Opponent) {
		o.rng = rng
	}
}

// NewOpponent creates an opponent for the given difficulty.
func NewOpponent(difficulty Difficulty, opts ...Option) (*Opponent, error) {
	if !difficulty.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDifficulty, uint8(difficulty))
	}

	o := &Opponent{difficulty: difficulty}
	for _, opt := range opts {
		opt(o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return o, nil
}

// Difficulty returns the opponent's tier.
func (o *Opponent) Difficulty() Difficulty {
	return o.difficulty
}

// Move returns a legal move for the player to move in g. It fails with
// ErrNoMoveAvailable when the game is already over.
func (o *Opponent) Move(g *game.Game) (game.Position, error) {
	if g.State().IsGameOver() {
		return game.Position{}, ErrNoMoveAvailable
	}

	// Work on a copy so a strategy can never touch the caller's game.
	snapshot := g.Clone()

	var (
		p  game.Position
		ok bool
	)
	switch o.difficulty {
	case Easy:
		p, ok = easyMove(snapshot, o.rng)
	case Medium:
		p, ok = mediumMove(snapshot, o.rng)
	case Hard, Unbeatable:
		p, ok = hardMove(snapshot, o.rng)
	default:
		return game.Position{}, ErrInvalidDifficulty
	}
	if !ok {
		return game.Position{}, ErrNoMoveAvailable
	}

	slog.Debug("bot chose move", "bot.difficulty", o.difficulty.String(), "bot.mark", g.Turn().String(), "move.row", p.Row, "move.col", p.Column)
	return p, nil
}

// Evaluate reports the outcome of every free cell for the player to move,
// assuming perfect play afterwards. It is empty once the game is over.
func Evaluate(g *game.Game) map[game.Position]Outcome {
	outcomes := make(map[game.Position]Outcome)
	if g.State().IsGameOver() {
		return outcomes
	}
	for p, score := range scoreMoves(g.Clone()) {
		outcomes[p] = outcomeOf(score)
	}
	return outcomes
}

// BotMoveCalculator implements the session.MoveCalculator interface.
type BotMoveCalculator struct{}

// CalculateNextMove calls the package-level function to satisfy the interface.
func (c *BotMoveCalculator) CalculateNextMove(g *game.Game, difficulty Difficulty) (game.Position, error) {
	return CalculateNextMove(g, difficulty)
}

// CalculateNextMove determines the next move for the player to move in g
// based on the specified difficulty.
func CalculateNextMove(g *game.Game, difficulty Difficulty) (game.Position, error) {
	o, err := NewOpponent(difficulty)
	if err != nil {
		return game.Position{}, err
	}
	return o.Move(g)
}
