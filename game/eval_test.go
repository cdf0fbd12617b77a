package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLineScore(t *testing.T) {
	cases := []struct {
		name  string
		line  [4]Marker
		score int
	}{
		{"four ai", [4]Marker{AI, AI, AI, AI}, WinScore},
		{"four human", [4]Marker{Human, Human, Human, Human}, -WinScore},
		{"open ai three", [4]Marker{AI, Empty, AI, AI}, 5},
		{"open ai two", [4]Marker{Empty, AI, Empty, AI}, 2},
		{"open human three", [4]Marker{Human, Human, Empty, Human}, -4},
		{"open human two", [4]Marker{Human, Empty, Empty, Human}, 0},
		{"blocked ai three", [4]Marker{AI, AI, AI, Human}, 0},
		{"mixed", [4]Marker{AI, Human, Empty, Empty}, 0},
		{"empty", [4]Marker{Empty, Empty, Empty, Empty}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := LineScore(tc.line[0], tc.line[1], tc.line[2], tc.line[3])
			require.Equal(t, tc.score, got)
		})
	}
}

func TestHeuristic(t *testing.T) {
	t.Run("empty board scores zero", func(t *testing.T) {
		require.Equal(t, 0, Heuristic(NewDefaultBoard()))
	})

	t.Run("open two on the bottom row", func(t *testing.T) {
		// Only the bottom line starting at column 0 holds both pieces
		b := MustParseBoard(
			".......",
			".......",
			".......",
			".......",
			".......",
			"oo.....",
		)
		require.Equal(t, 2, Heuristic(b))
	})

	t.Run("open three on the bottom row", func(t *testing.T) {
		// Line 0-3 is an open three (+5), line 1-4 an open two (+2)
		b := MustParseBoard(
			".......",
			".......",
			".......",
			".......",
			".......",
			"ooo....",
		)
		require.Equal(t, 7, Heuristic(b))
	})

	t.Run("human threat weighs less than the matching ai threat", func(t *testing.T) {
		ai := MustParseBoard(
			".......",
			".......",
			".......",
			".......",
			".......",
			"ooo....",
		)
		human := ai.Clone()
		human.FlipMarkers()

		require.Equal(t, -4, Heuristic(human), "Only the open human three should count")
		require.Greater(t, Heuristic(ai), -Heuristic(human))
	})
}

func TestEvaluateCenter(t *testing.T) {
	t.Run("rewarding center pieces", func(t *testing.T) {
		b := MustParseBoard(
			".......",
			".......",
			".......",
			".......",
			".......",
			"...o...",
		)
		require.Equal(t, Heuristic(b)+3, EvaluateCenter(b))
	})

	t.Run("weighing the columns next to the center", func(t *testing.T) {
		b := MustParseBoard(
			".......",
			".......",
			".......",
			".......",
			".......",
			"..o.x..",
		)
		require.Equal(t, Heuristic(b), EvaluateCenter(b), "AI and human pieces next to the center cancel out")
	})
}
