package player

import (
	"testing"

	"connect4/game"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestRandomPlay(t *testing.T) {
	t.Run("dropping one AI piece in a playable column", func(t *testing.T) {
		b := game.MustParseBoard(
			"o.x",
			"x.o",
			"o.x",
		)
		r := NewRandom(1)

		require.NoError(t, r.Play(b))

		require.Equal(t, game.AI, b.At(0, 1), "Column 1 is the only playable column")
		require.Equal(t, 7, b.Pieces())
	})

	t.Run("same seed same game", func(t *testing.T) {
		first := game.NewDefaultBoard()
		second := game.NewDefaultBoard()
		r1 := NewRandom(42)
		r2 := NewRandom(42)

		for i := 0; i < 10 && !first.IsTerminal(); i++ {
			require.NoError(t, r1.Play(first))
			require.NoError(t, r2.Play(second))
			first.FlipMarkers()
			second.FlipMarkers()
		}

		require.True(t, first.Equal(second), "Seeded players should agree:\n%s\n%s", first, second)
	})

	t.Run("covering every column", func(t *testing.T) {
		r := NewRandom(7)
		seen := map[int]bool{}

		for i := 0; i < 200; i++ {
			b := game.NewDefaultBoard()
			require.NoError(t, r.Play(b))
			for col := 0; col < b.Cols(); col++ {
				if b.Height(col) == 1 {
					seen[col] = true
				}
			}
		}

		require.Len(t, seen, game.DefaultCols, "Every column should eventually be chosen")
	})

	t.Run("refusing a full board", func(t *testing.T) {
		b := game.MustParseBoard(
			"oxo",
			"xox",
			"oxo",
		)

		err := NewRandom(1).Play(b)

		require.True(t, errors.Is(err, game.ErrNoLegalMove))
	})
}
