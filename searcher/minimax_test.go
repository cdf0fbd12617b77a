package searcher

import (
	"testing"
	"time"

	"connect4/game"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestMinimaxPlay(t *testing.T) {
	t.Run("completing an open three", func(t *testing.T) {
		for _, depth := range []int{1, 2, 3} {
			b := game.MustParseBoard(
				".......",
				".......",
				".......",
				".......",
				"xx.....",
				"ooo.x..",
			)
			m := NewMinimax(depth)

			err := m.Play(b)

			require.NoError(t, err)
			require.Equal(t, game.AI, b.At(0, 3), "Depth %d should complete the line", depth)
			require.Equal(t, game.AI, b.Winner())
		}
	})

	t.Run("blocking the human threat", func(t *testing.T) {
		for _, depth := range []int{2, 3, 4} {
			b := game.MustParseBoard(
				".......",
				".......",
				".......",
				".......",
				"o......",
				"xxx..o.",
			)
			m := NewMinimax(depth)

			err := m.Play(b)

			require.NoError(t, err)
			require.Equal(t, game.AI, b.At(0, 3), "Depth %d should block column 3", depth)
		}
	})

	t.Run("dropping exactly one piece", func(t *testing.T) {
		b := game.NewDefaultBoard()
		m := NewMinimax(3)

		require.NoError(t, m.Play(b))
		require.Equal(t, 1, b.Pieces())
	})

	t.Run("refusing a board with a winner", func(t *testing.T) {
		b := game.MustParseBoard(
			"....",
			"x...",
			"x...",
			"xooo",
		)
		b.DropPiece(0, game.Human)
		before := b.Clone()

		err := NewMinimax(2).Play(b)

		require.True(t, errors.Is(err, game.ErrGameOver), "Should report a finished game")
		require.True(t, before.Equal(b), "Board should not change")
	})

	t.Run("refusing a full board", func(t *testing.T) {
		b := game.MustParseBoard(
			"oxo",
			"xox",
			"oxo",
		)

		err := NewMinimax(2).Play(b)

		require.True(t, errors.Is(err, game.ErrNoLegalMove), "Should report no legal move")
	})

	t.Run("panics with a depth below one", func(t *testing.T) {
		require.Panics(t, func() { NewMinimax(0) })
	})
}

func TestMinimaxSearch(t *testing.T) {
	t.Run("scoring a forced win", func(t *testing.T) {
		b := game.MustParseBoard(
			".......",
			".......",
			".......",
			".......",
			"xx.....",
			"ooo.x..",
		)

		col, score, err := NewMinimax(1).Search(b)

		require.NoError(t, err)
		require.Equal(t, 3, col)
		require.Equal(t, game.WinScore, score)
		require.Equal(t, 6, b.Pieces(), "Search should not touch the board")
	})

	t.Run("keeping the earlier column on ties", func(t *testing.T) {
		// Every first move on a 4x4 board scores the same at depth 1
		b := game.NewBoard(4, 4)

		col, score, err := NewMinimax(1).Search(b)

		require.NoError(t, err)
		require.Equal(t, game.Heuristic(mustDrop(b, 0, game.AI)), score)
		for c := 1; c < 4; c++ {
			require.GreaterOrEqual(t, score, game.Heuristic(mustDrop(b, c, game.AI)))
		}
		require.Equal(t, 0, col, "Strict improvement should keep the first best column")
	})

	t.Run("using the configured evaluation", func(t *testing.T) {
		b := game.NewDefaultBoard()
		calls := 0
		evaluate := func(b *game.Board) int {
			calls++
			return b.Height(6) // Prefers the last column
		}

		col, _, err := NewMinimax(1, WithEvaluation(evaluate)).Search(b)

		require.NoError(t, err)
		require.Equal(t, 6, col)
		require.Equal(t, 7, calls, "Each child should be evaluated once")
	})
}

func TestMinimaxAlphaBetaMatchesFullSearch(t *testing.T) {
	t.Run("empty board at depth 4", func(t *testing.T) {
		b := game.NewDefaultBoard()
		m := NewMinimax(4)

		col, score, err := m.Search(b)
		require.NoError(t, err)
		plainCol, plainScore, err := m.SearchNoAlphaBeta(b)
		require.NoError(t, err)

		require.Equal(t, plainCol, col, "Pruning should not change the chosen column")
		require.Equal(t, plainScore, score, "Pruning should not change the score")
	})

	t.Run("random mid-game positions", func(t *testing.T) {
		random := rand.New(rand.NewSource(7))
		for i := 0; i < 20; i++ {
			b := randomPosition(random, 4+random.Intn(16))
			if b.IsTerminal() {
				continue
			}
			for _, depth := range []int{1, 2, 3, 4} {
				m := NewMinimax(depth)

				col, score, err := m.Search(b)
				require.NoError(t, err)
				plainCol, plainScore, err := m.SearchNoAlphaBeta(b)
				require.NoError(t, err)

				require.Equal(t, plainCol, col, "Position %d depth %d:\n%s", i, depth, b)
				require.Equal(t, plainScore, score, "Position %d depth %d:\n%s", i, depth, b)
			}
		}
	})

	t.Run("pruning visits fewer positions", func(t *testing.T) {
		b := game.NewDefaultBoard()
		m := NewMinimax(4, WithMinimaxMetrics())

		_, _, err := m.Search(b)
		require.NoError(t, err)
		pruned := m.LastMetric()
		_, _, err = m.SearchNoAlphaBeta(b)
		require.NoError(t, err)
		full := m.LastMetric()

		require.Greater(t, pruned.Cutoffs, 0, "Alpha-beta should prune on an empty board")
		require.Less(t, pruned.Nodes, full.Nodes, "Alpha-beta should visit fewer positions")
		require.Equal(t, 1+7+49+343+2401, full.Nodes, "Full search should visit every position up to depth 4")
		require.Equal(t, 4, full.Depth)
	})

	t.Run("play without pruning drops the same piece", func(t *testing.T) {
		b := game.NewDefaultBoard()
		b.DropPiece(3, game.Human)
		pruned := b.Clone()
		m := NewMinimax(3)

		require.NoError(t, m.Play(pruned))
		require.NoError(t, m.PlayNoAlphaBeta(b))

		require.True(t, pruned.Equal(b))
	})
}

func TestMinimaxTimeBudget(t *testing.T) {
	t.Run("generous budget reaches full depth", func(t *testing.T) {
		b := game.NewDefaultBoard()
		b.DropPiece(2, game.Human)

		fixedCol, fixedScore, err := NewMinimax(4).Search(b)
		require.NoError(t, err)
		m := NewMinimax(4, WithTimeBudget(time.Minute), WithMinimaxMetrics())
		col, score, err := m.Search(b)
		require.NoError(t, err)

		require.Equal(t, fixedCol, col)
		require.Equal(t, fixedScore, score)
		require.Equal(t, 4, m.LastMetric().Depth, "All depths should complete")
	})

	t.Run("expired budget falls back to the first depth", func(t *testing.T) {
		b := game.NewDefaultBoard()
		m := NewMinimax(8, WithTimeBudget(time.Nanosecond), WithMinimaxMetrics())

		err := m.Play(b)

		require.NoError(t, err)
		require.Equal(t, 1, b.Pieces(), "A move should still be played")
		require.Equal(t, 1, m.LastMetric().Depth, "Only the first depth should complete")
	})
}

func mustDrop(b *game.Board, col int, m game.Marker) *game.Board {
	next := b.Clone()
	if !next.DropPiece(col, m) {
		panic("column is full")
	}
	return next
}

// randomPosition plays alternating random moves on an empty board, stopping
// early if the game ends.
func randomPosition(random *rand.Rand, plies int) *game.Board {
	b := game.NewDefaultBoard()
	side := game.AI
	for i := 0; i < plies && !b.IsTerminal(); i++ {
		moves := b.LegalMoves(nil)
		b.DropPiece(moves[random.Intn(len(moves))], side)
		side = side.Opponent()
	}
	return b
}
