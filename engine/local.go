package engine

import (
	"fmt"
	"time"

	"connect4/experiments/metrics"
	"connect4/game"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var ErrInvalidMove = errors.New("player made an invalid move")

type Option func(e *LocalEngine)

// LocalEngine runs a game between two in-process players. Seat 0 owns the AI
// marker and seat 1 the Human marker. Players always play the AI marker, so
// the board is flipped around every call to seat 1.
type LocalEngine struct {
	board    *game.Board
	players  [2]game.Player
	start    int
	maxMoves int
	before   game.Board
}

func WithStartingSeat(seat int) Option {
	return func(e *LocalEngine) {
		e.start = seat
	}
}

func WithMaxMoves(n int) Option {
	return func(e *LocalEngine) {
		if n > 0 {
			e.maxMoves = n
		}
	}
}

func NewLocalEngine(board *game.Board, players [2]game.Player, options ...Option) *LocalEngine {
	if board == nil {
		panic("Must specify a board")
	}
	if players[0] == nil || players[1] == nil {
		panic("Must specify two players")
	}
	rows, cols := board.Dimensions()
	e := &LocalEngine{ // Default values
		board:    board,
		players:  players,
		maxMoves: rows * cols,
	}
	for _, option := range options {
		option(e)
	}
	if e.start != 0 && e.start != 1 {
		panic(fmt.Sprintf("Starting seat must be 0 or 1, got %d", e.start))
	}
	return e
}

func (e *LocalEngine) Run() (Result, error) {
	result := Result{Winner: -1, Board: e.board}
	result.Game.StartingSeat = e.start
	result.Game.StartTime = time.Now()

	log.Info().Msgf("seat %d is starting", e.start)

	seat := e.start
	for step := 1; !e.board.IsTerminal() && step <= e.maxMoves; step++ {
		col, err := e.play(seat)
		if err != nil {
			return e.finish(result), fmt.Errorf("failed to play move %d for seat %d: %w", step, seat, err)
		}
		result.Game.TotalMoves = step

		if reporter, ok := e.players[seat].(metrics.Reporter); ok {
			result.Moves = append(result.Moves, metrics.MoveMetric{
				Step:         step,
				Seat:         seat,
				Column:       col,
				SearchMetric: reporter.LastMetric(),
			})
		}
		log.Debug().Msgf("move %d: seat %d played column %d\n%s", step, seat, col, e.board)
		seat = 1 - seat
	}

	result = e.finish(result)
	if result.Winner >= 0 {
		log.Info().Msgf("seat %d won after %d moves", result.Winner, result.Game.TotalMoves)
	} else if e.board.IsTerminal() {
		log.Info().Msgf("tie after %d moves", result.Game.TotalMoves)
	} else {
		log.Warn().Msgf("stopped after %d moves without a result", result.Game.TotalMoves)
	}
	return result, nil
}

func (e *LocalEngine) finish(result Result) Result {
	switch e.board.Winner() {
	case game.AI:
		result.Winner = 0
	case game.Human:
		result.Winner = 1
	default:
		result.Winner = -1
	}
	result.Game.Winner = result.Winner
	result.Game.EndTime = time.Now()
	result.Game.Duration = result.Game.EndTime.Sub(result.Game.StartTime)
	return result
}

// play lets seat make its move and returns the column it played.
func (e *LocalEngine) play(seat int) (int, error) {
	e.before.CopyFrom(e.board)
	if err := e.playAs(seat); err != nil {
		return -1, err
	}
	return e.verify(seat)
}

func (e *LocalEngine) playAs(seat int) error {
	if seat == 1 {
		e.board.FlipMarkers()
		defer e.board.FlipMarkers()
	}
	return e.players[seat].Play(e.board)
}

// verify checks that the only change to the board is one piece of the
// seat's marker.
func (e *LocalEngine) verify(seat int) (int, error) {
	if added := e.board.Pieces() - e.before.Pieces(); added != 1 {
		return -1, errors.Wrapf(ErrInvalidMove, "%d pieces added", added)
	}
	col := -1
	for c := 0; c < e.board.Cols(); c++ {
		if e.board.Height(c) != e.before.Height(c) {
			col = c
			break
		}
	}
	if col < 0 || !e.before.DropPiece(col, seatMarker(seat)) || !e.before.Equal(e.board) {
		return -1, errors.Wrapf(ErrInvalidMove, "board does not match a %s drop", seatMarker(seat).Name())
	}
	return col, nil
}

func seatMarker(seat int) game.Marker {
	if seat == 0 {
		return game.AI
	}
	return game.Human
}
