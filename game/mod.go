package game

import "github.com/pkg/errors"

// ConnectSize is the number of aligned markers needed to win.
const ConnectSize = 4

const (
	DefaultRows = 6
	DefaultCols = 7
)

var (
	ErrGameOver    = errors.New("game is over")
	ErrNoLegalMove = errors.New("no legal move available")
	ErrInvalidGrid = errors.New("invalid grid")
)

// Player makes exactly one move on the board it is given. Strategies always
// play the AI marker; an orchestrator that wants a strategy on the human side
// flips the markers around the call.
type Player interface {
	Play(board *Board) error
}

// Evaluates a live (non-terminal) board from the AI's perspective. Positive
// values favor the AI.
type Evaluate func(*Board) int

// CheckPlayable reports why a player cannot move on the board, if it can't.
func CheckPlayable(b *Board) error {
	if w := b.Winner(); w != Empty {
		return errors.Wrapf(ErrGameOver, "%s already won", w.Name())
	}
	if !b.HasLegalMove() {
		return ErrNoLegalMove
	}
	return nil
}
