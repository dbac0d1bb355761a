package bot

import (
	"ctchen222/tictactoe-core/internal/game"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	X = game.PlayerX
	O = game.PlayerO
	E = game.None
)

var (
	corners = []game.Position{{Row: 0, Column: 0}, {Row: 0, Column: 2}, {Row: 2, Column: 0}, {Row: 2, Column: 2}}
	sides   = []game.Position{{Row: 0, Column: 1}, {Row: 1, Column: 0}, {Row: 1, Column: 2}, {Row: 2, Column: 1}}
)

// moveIn is a helper function to check if a move is in a list of expected moves.
func moveIn(move game.Position, list []game.Position) bool {
	for _, item := range list {
		if item == move {
			return true
		}
	}
	return false
}

func mustBoard(t *testing.T, rows [game.Size][game.Size]game.Owner) *game.Game {
	t.Helper()
	g, err := game.FromBoard(rows)
	require.NoError(t, err)
	return g
}

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

func TestFindWinningMoves(t *testing.T) {
	tests := []struct {
		name  string
		board [game.Size][game.Size]game.Owner
		mark  game.Owner
		want  []game.Position
	}{
		{
			name:  "No winning move - empty board",
			board: [game.Size][game.Size]game.Owner{},
			mark:  X,
			want:  nil,
		},
		{
			name: "X can win - first row",
			board: [game.Size][game.Size]game.Owner{
				{X, X, E},
				{O, O, E},
				{E, E, E},
			},
			mark: X,
			want: []game.Position{{Row: 0, Column: 2}},
		},
		{
			name: "O can win - second column",
			board: [game.Size][game.Size]game.Owner{
				{X, O, E},
				{X, O, E},
				{E, E, X},
			},
			mark: O,
			want: []game.Position{{Row: 2, Column: 1}},
		},
		{
			name: "X can win - main diagonal",
			board: [game.Size][game.Size]game.Owner{
				{X, E, E},
				{E, X, E},
				{O, O, E},
			},
			mark: X,
			want: []game.Position{{Row: 2, Column: 2}},
		},
		{
			name: "O can win - anti-diagonal",
			board: [game.Size][game.Size]game.Owner{
				{X, X, O},
				{E, O, E},
				{E, E, X},
			},
			mark: O,
			want: []game.Position{{Row: 2, Column: 0}},
		},
		{
			name: "X has two different winning cells",
			board: [game.Size][game.Size]game.Owner{
				{X, X, E},
				{X, O, O},
				{E, O, E},
			},
			mark: X,
			want: []game.Position{{Row: 0, Column: 2}, {Row: 2, Column: 0}},
		},
		{
			name: "One cell completing two lines is reported once",
			board: [game.Size][game.Size]game.Owner{
				{X, X, E},
				{O, O, X},
				{O, E, X},
			},
			mark: X,
			want: []game.Position{{Row: 0, Column: 2}},
		},
		{
			name: "Full board, no win possible",
			board: [game.Size][game.Size]game.Owner{
				{X, O, X},
				{X, O, O},
				{O, X, X},
			},
			mark: X,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustBoard(t, tt.board)
			got := findWinningMoves(g.Board(), tt.mark)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEasyMove(t *testing.T) {
	t.Run("Only one spot left", func(t *testing.T) {
		g := mustBoard(t, [game.Size][game.Size]game.Owner{
			{X, O, X},
			{X, O, O},
			{O, E, X},
		})
		p, ok := easyMove(g, seeded())
		require.True(t, ok)
		assert.Equal(t, game.Position{Row: 2, Column: 1}, p)
	})

	t.Run("Multiple spots left - every cell is eventually chosen", func(t *testing.T) {
		g := game.New()
		rng := seeded()
		seen := make(map[game.Position]bool)

		for i := 0; i < 500; i++ {
			p, ok := easyMove(g, rng)
			require.True(t, ok)
			require.True(t, p.InBounds(), "easyMove returned an invalid move %v", p)
			seen[p] = true
		}
		assert.Len(t, seen, 9)
	})

	t.Run("Full board", func(t *testing.T) {
		g := mustBoard(t, [game.Size][game.Size]game.Owner{
			{X, O, X},
			{X, O, O},
			{O, X, X},
		})
		_, ok := easyMove(g, seeded())
		assert.False(t, ok)
	})
}

func TestMediumMove(t *testing.T) {
	tests := []struct {
		name  string
		board [game.Size][game.Size]game.Owner
		want  []game.Position // empty means any free cell
	}{
		{
			name: "Bot can win, and winning beats blocking",
			board: [game.Size][game.Size]game.Owner{
				{X, X, E},
				{O, O, E},
				{E, E, E},
			},
			want: []game.Position{{Row: 0, Column: 2}},
		},
		{
			name: "Bot must block opponent",
			board: [game.Size][game.Size]game.Owner{
				{O, O, E},
				{X, E, E},
				{X, E, E},
			},
			want: []game.Position{{Row: 0, Column: 2}},
		},
		{
			name: "Bot playing O can win",
			board: [game.Size][game.Size]game.Owner{
				{X, X, E},
				{O, O, E},
				{X, E, E},
			},
			want: []game.Position{{Row: 1, Column: 2}},
		},
		{
			name: "Bot picks one of two winning cells",
			board: [game.Size][game.Size]game.Owner{
				{X, X, E},
				{X, O, O},
				{E, O, E},
			},
			want: []game.Position{{Row: 0, Column: 2}, {Row: 2, Column: 0}},
		},
		{
			name: "No immediate win or block, random move",
			board: [game.Size][game.Size]game.Owner{
				{X, E, E},
				{E, O, E},
				{E, E, E},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustBoard(t, tt.board)
			rng := seeded()
			for i := 0; i < 20; i++ {
				p, ok := mediumMove(g, rng)
				require.True(t, ok)

				b := g.Board()
				require.False(t, b.Contains(p), "mediumMove returned a non-empty spot %v", p)
				if len(tt.want) > 0 && !moveIn(p, tt.want) {
					t.Errorf("mediumMove() got %v, want one of %v", p, tt.want)
				}
			}
		})
	}
}

func TestMediumWinsOrBlocksInRandomGames(t *testing.T) {
	rng := seeded()
	checked := 0

	for i := 0; i < 300; i++ {
		g := game.New()
		for !g.State().IsGameOver() {
			b := g.Board()
			wins := findWinningMoves(b, g.Turn())
			blocks := findWinningMoves(b, g.Turn().Opponent())

			p, ok := mediumMove(g, rng)
			require.True(t, ok)

			switch {
			case len(wins) > 0:
				require.True(t, moveIn(p, wins), "game %d: missed win %v, played %v", i, wins, p)
				checked++
			case len(blocks) > 0:
				require.True(t, moveIn(p, blocks), "game %d: missed block %v, played %v", i, blocks, p)
				checked++
			}

			// Alternate medium moves with random ones so threats actually appear.
			if rng.IntN(2) == 0 {
				p, _ = easyMove(g, rng)
			}
			_, err := g.Move(p)
			require.NoError(t, err)
		}
	}
	assert.Positive(t, checked)
}

func TestHardMove(t *testing.T) {
	tests := []struct {
		name  string
		board [game.Size][game.Size]game.Owner
		want  []game.Position
	}{
		{
			name: "Bot can win",
			board: [game.Size][game.Size]game.Owner{
				{X, X, E},
				{O, O, E},
				{E, E, E},
			},
			want: []game.Position{{Row: 0, Column: 2}},
		},
		{
			// Blocking still loses to a fork two plies later, but that is slower
			// than losing on the next ply.
			name: "Bot must block opponent",
			board: [game.Size][game.Size]game.Owner{
				{O, O, E},
				{X, E, E},
				{X, E, E},
			},
			want: []game.Position{{Row: 0, Column: 2}},
		},
		{
			name: "Answer a corner opening with the center",
			board: [game.Size][game.Size]game.Owner{
				{X, E, E},
				{E, E, E},
				{E, E, E},
			},
			want: []game.Position{{Row: 1, Column: 1}},
		},
		{
			name: "Answer a center opening with a corner",
			board: [game.Size][game.Size]game.Owner{
				{E, E, E},
				{E, X, E},
				{E, E, E},
			},
			want: corners,
		},
		{
			name: "Take a side against opposite corners",
			board: [game.Size][game.Size]game.Owner{
				{X, E, E},
				{E, O, E},
				{E, E, X},
			},
			want: sides,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustBoard(t, tt.board)
			rng := seeded()
			for i := 0; i < 5; i++ {
				p, ok := hardMove(g, rng)
				require.True(t, ok)
				if !moveIn(p, tt.want) {
					t.Errorf("hardMove() got %v, want one of %v", p, tt.want)
				}
			}
		})
	}
}

func TestScoreMovesPrefersFasterWins(t *testing.T) {
	g := mustBoard(t, [game.Size][game.Size]game.Owner{
		{X, X, E},
		{O, O, E},
		{E, E, E},
	})

	scores := scoreMoves(g)
	require.Len(t, scores, 5)

	immediate := scores[game.Position{Row: 0, Column: 2}]
	assert.Equal(t, winScore-1, immediate)
	for p, score := range scores {
		if p != (game.Position{Row: 0, Column: 2}) {
			assert.Less(t, score, immediate, "move %v", p)
		}
	}
}

func TestMinimaxScoresForcedLoss(t *testing.T) {
	// O to move; X threatens (0, 1) and (1, 2) at once.
	g := mustBoard(t, [game.Size][game.Size]game.Owner{
		{X, E, X},
		{E, O, E},
		{O, E, X},
	})

	for p, score := range scoreMoves(g) {
		assert.Equal(t, 2-winScore, score, "move %v should lose on the next ply", p)
	}

	// From X's side the immediate win is worth more than a delayed one.
	next := *g
	_, err := next.Move(game.Position{Row: 1, Column: 0})
	require.NoError(t, err)
	fast := minimax(next, X, 0, lowestScore, highestScore)
	assert.Equal(t, winScore-1, fast)
}
