package player

import (
	"fmt"

	"connect4/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Random drops an AI piece in a uniformly random playable column.
type Random struct {
	rand  *rand.Rand
	legal []int
}

func NewRandom(seed uint64) *Random {
	return &Random{rand: rand.New(rand.NewSource(seed))}
}

func (r *Random) Play(board *game.Board) error {
	if err := game.CheckPlayable(board); err != nil {
		return err
	}
	r.legal = board.LegalMoves(r.legal[:0])
	col := r.legal[r.rand.Intn(len(r.legal))]
	if !board.DropPiece(col, game.AI) {
		panic(fmt.Sprintf("random player chose unplayable column %d", col))
	}
	log.Debug().Msgf("random played column %d", col)
	return nil
}
