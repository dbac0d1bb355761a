package bot

import (
	"ctchen222/tictactoe-core/internal/game"
	"math/rand/v2"
)

// winScore is the value of an immediate win. Each ply of delay costs one point,
// so quicker wins and slower losses score better.
const winScore = 10

const (
	lowestScore  = -winScore - 1
	highestScore = winScore + 1
)

// Outcome is the result of a move for the player making it, assuming perfect play
// from both sides afterwards.
type Outcome int8

const (
	Loss Outcome = iota - 1
	Draw
	Win
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Loss:
		return "loss"
	default:
		return "draw"
	}
}

// freePositions collects the empty cells in row-major order.
func freePositions(board game.Board) []game.Position {
	var free []game.Position
	for p := range board.FreePositions() {
		free = append(free, p)
	}
	return free
}

// easyMove makes a completely random move.
func easyMove(g *game.Game, rng *rand.Rand) (game.Position, bool) {
	return pickRandom(freePositions(g.Board()), rng)
}

// mediumMove will win if it can, block if it must, otherwise move randomly.
func mediumMove(g *game.Game, rng *rand.Rand) (game.Position, bool) {
	board := g.Board()
	botMark := g.Turn()

	// 1. Win: Check if the bot can win in the next move
	if p, ok := pickRandom(findWinningMoves(board, botMark), rng); ok {
		return p, true
	}

	// 2. Block: Check if the opponent is about to win and block them
	if p, ok := pickRandom(findWinningMoves(board, botMark.Opponent()), rng); ok {
		return p, true
	}

	// 3. Random: Otherwise, make a random move
	return easyMove(g, rng)
}

// hardMove picks uniformly among the moves with the best minimax score.
func hardMove(g *game.Game, rng *rand.Rand) (game.Position, bool) {
	scores := scoreMoves(g)
	best := lowestScore
	var candidates []game.Position
	for _, p := range freePositions(g.Board()) {
		score, ok := scores[p]
		if !ok {
			continue
		}
		switch {
		case score > best:
			best = score
			candidates = append(candidates[:0], p)
		case score == best:
			candidates = append(candidates, p)
		}
	}
	return pickRandom(candidates, rng)
}

// scoreMoves returns the exact minimax score of every free cell for the player to move.
func scoreMoves(g *game.Game) map[game.Position]int {
	me := g.Turn()
	scores := make(map[game.Position]int)
	for _, p := range freePositions(g.Board()) {
		next := *g
		if _, err := next.Move(p); err != nil {
			continue
		}
		// A full window per root move keeps every score exact, not just the best one.
		scores[p] = minimax(next, me, 1, lowestScore, highestScore)
	}
	return scores
}

// minimax scores g from the point of view of me, with alpha-beta pruning.
// depth is the number of plies already played since the root.
func minimax(g game.Game, me game.Owner, depth, alpha, beta int) int {
	state := g.State()
	switch {
	case state.Winner() == me:
		return winScore - depth
	case state.Winner() == me.Opponent():
		return depth - winScore
	case state.IsGameOver():
		return 0
	}

	maximizing := g.Turn() == me
	best := highestScore
	if maximizing {
		best = lowestScore
	}

	for p := range g.Board().FreePositions() {
		next := g
		if _, err := next.Move(p); err != nil {
			continue
		}
		score := minimax(next, me, depth+1, alpha, beta)

		if maximizing {
			best = max(best, score)
			alpha = max(alpha, best)
		} else {
			best = min(best, score)
			beta = min(beta, best)
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// findWinningMoves returns every empty cell that completes a line for mark
// (two in a row with an empty third).
func findWinningMoves(board game.Board, mark game.Owner) []game.Position {
	var moves []game.Position
	seen := make(map[game.Position]bool)
	for _, line := range game.Lines {
		owned := 0
		var empty game.Position
		empties := 0
		for _, p := range line {
			switch board.Get(p) {
			case mark:
				owned++
			case game.None:
				empty = p
				empties++
			}
		}
		if owned == game.Size-1 && empties == 1 && !seen[empty] {
			seen[empty] = true
			moves = append(moves, empty)
		}
	}
	return moves
}

func pickRandom(moves []game.Position, rng *rand.Rand) (game.Position, bool) {
	if len(moves) == 0 {
		return game.Position{}, false
	}
	return moves[rng.IntN(len(moves))], true
}

func outcomeOf(score int) Outcome {
	switch {
	case score > 0:
		return Win
	case score < 0:
		return Loss
	default:
		return Draw
	}
}
