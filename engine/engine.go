package engine

import (
	"connect4/experiments/metrics"
	"connect4/game"
)

type Engine interface {
	// Run plays a game till the board is terminal or a max number of moves is reached
	Run() (Result, error)
}

type Result struct {
	Winner int // Seat index, -1 on a tie or an unfinished game
	Board  *game.Board
	Game   metrics.GameMetric
	Moves  []metrics.MoveMetric
}
