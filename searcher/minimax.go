package searcher

import (
	"fmt"
	"math"
	"time"

	"connect4/experiments/metrics"
	"connect4/game"

	"github.com/rs/zerolog/log"
)

const minimaxStrategy = "minimax"

// How many positions are searched between two deadline checks.
const deadlineCheckInterval = 256

type MinimaxOption func(m *Minimax)

// Minimax is a depth-limited minimax player with alpha-beta pruning. It
// always maximizes for the AI marker.
type Minimax struct {
	depth    int
	budget   time.Duration
	evaluate game.Evaluate
	metrics  metrics.Collector
	last     metrics.SearchMetric
}

func WithEvaluation(evaluate game.Evaluate) MinimaxOption {
	return func(m *Minimax) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

// WithTimeBudget switches Play to iterative deepening: depths 1..depth are
// searched in turn and the move of the last depth completed within the
// budget is played.
func WithTimeBudget(budget time.Duration) MinimaxOption {
	return func(m *Minimax) {
		if budget > 0 {
			m.budget = budget
		}
	}
}

func WithMinimaxMetrics() MinimaxOption {
	return func(m *Minimax) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMinimax(depth int, options ...MinimaxOption) *Minimax {
	if depth < 1 {
		panic("Must specify a search depth of at least 1")
	}
	m := &Minimax{ // Default values
		depth:    depth,
		evaluate: game.Heuristic,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *Minimax) Depth() int {
	return m.depth
}

// Play drops an AI piece in the column chosen by alpha-beta search.
func (m *Minimax) Play(board *game.Board) error {
	col, score, err := m.Search(board)
	if err != nil {
		return err
	}
	if !board.DropPiece(col, game.AI) {
		panic(fmt.Sprintf("minimax chose unplayable column %d", col))
	}
	log.Debug().Msgf("minimax played column %d with score %d (%+v)", col, score, m.last)
	return nil
}

// PlayNoAlphaBeta plays like Play but searches the full tree.
func (m *Minimax) PlayNoAlphaBeta(board *game.Board) error {
	col, score, err := m.SearchNoAlphaBeta(board)
	if err != nil {
		return err
	}
	if !board.DropPiece(col, game.AI) {
		panic(fmt.Sprintf("minimax chose unplayable column %d", col))
	}
	log.Debug().Msgf("minimax (no alpha-beta) played column %d with score %d (%+v)", col, score, m.last)
	return nil
}

// Search returns the best column for the AI and its score without touching
// the board.
func (m *Minimax) Search(board *game.Board) (col int, score int, err error) {
	if err := game.CheckPlayable(board); err != nil {
		return -1, 0, err
	}
	m.metrics.Start(minimaxStrategy)
	defer func() { m.last = m.metrics.Complete() }()

	s := newMinimaxSearch(m.evaluate, m.metrics, m.depth)
	if m.budget <= 0 {
		score, col = s.alphaBeta(board, m.depth, math.MinInt, math.MaxInt, true)
		m.metrics.SetDepth(m.depth)
		return col, score, nil
	}

	deadline := time.Now().Add(m.budget)
	for depth := 1; depth <= m.depth; depth++ {
		if depth > 1 { // The first depth always completes so there is a move to play
			s.deadline = deadline
		}
		depthScore, depthCol := s.alphaBeta(board, depth, math.MinInt, math.MaxInt, true)
		if s.expired {
			log.Warn().Msgf("minimax discarded depth %d after %s budget", depth, m.budget)
			break
		}
		col, score = depthCol, depthScore
		m.metrics.SetDepth(depth)
		if time.Now().After(deadline) {
			break
		}
	}
	return col, score, nil
}

// SearchNoAlphaBeta is Search without cutoffs and without time budget. Its
// result always matches Search at the same depth.
func (m *Minimax) SearchNoAlphaBeta(board *game.Board) (col int, score int, err error) {
	if err := game.CheckPlayable(board); err != nil {
		return -1, 0, err
	}
	m.metrics.Start(minimaxStrategy)
	defer func() { m.last = m.metrics.Complete() }()

	s := newMinimaxSearch(m.evaluate, m.metrics, m.depth)
	score, col = s.minimax(board, m.depth, true)
	m.metrics.SetDepth(m.depth)
	return col, score, nil
}

func (m *Minimax) LastMetric() metrics.SearchMetric {
	return m.last
}

type minimaxSearch struct {
	evaluate game.Evaluate
	metrics  metrics.Collector
	boards   []*game.Board // One scratch board per remaining depth
	deadline time.Time     // Zero when the search is not time boxed
	visited  int
	expired  bool
}

func newMinimaxSearch(evaluate game.Evaluate, collector metrics.Collector, depth int) *minimaxSearch {
	return &minimaxSearch{
		evaluate: evaluate,
		metrics:  collector,
		boards:   make([]*game.Board, depth+1),
	}
}

// child copies b into the scratch board reserved for depth. Siblings are
// searched one after the other so they can share it.
func (s *minimaxSearch) child(b *game.Board, depth int) *game.Board {
	if s.boards[depth] == nil {
		s.boards[depth] = b.Clone()
		return s.boards[depth]
	}
	s.boards[depth].CopyFrom(b)
	return s.boards[depth]
}

func (s *minimaxSearch) timeUp() bool {
	if s.deadline.IsZero() {
		return false
	}
	if !s.expired && s.visited%deadlineCheckInterval == 0 && time.Now().After(s.deadline) {
		s.expired = true
	}
	return s.expired
}

// leaf scores boards where the search stops: a winner, a tie or no depth left.
func (s *minimaxSearch) leaf(b *game.Board, depth int) (int, bool) {
	switch b.Winner() {
	case game.AI:
		return game.WinScore, true
	case game.Human:
		return -game.WinScore, true
	}
	if !b.HasLegalMove() {
		return 0, true
	}
	if depth == 0 {
		return s.evaluate(b), true
	}
	return 0, false
}

// alphaBeta returns the value of b and the column reaching it. Columns are
// tried in ascending order and ties keep the earlier column.
func (s *minimaxSearch) alphaBeta(b *game.Board, depth, alpha, beta int, maximizing bool) (int, int) {
	s.visited++
	s.metrics.AddNode()
	if s.timeUp() {
		return 0, -1
	}
	if score, ok := s.leaf(b, depth); ok {
		return score, -1
	}

	bestMove := -1
	if maximizing {
		bestValue := math.MinInt
		for col := 0; col < b.Cols(); col++ {
			if !b.IsLegal(col) {
				continue
			}
			next := s.child(b, depth-1)
			next.DropPiece(col, game.AI)

			score, _ := s.alphaBeta(next, depth-1, alpha, beta, false)
			if s.expired {
				return 0, -1
			}
			if score > bestValue {
				bestValue = score
				bestMove = col
			}
			alpha = max(alpha, bestValue)
			if beta <= alpha {
				s.metrics.AddCutoff()
				break
			}
		}
		return bestValue, bestMove
	}

	bestValue := math.MaxInt
	for col := 0; col < b.Cols(); col++ {
		if !b.IsLegal(col) {
			continue
		}
		next := s.child(b, depth-1)
		next.DropPiece(col, game.Human)

		score, _ := s.alphaBeta(next, depth-1, alpha, beta, true)
		if s.expired {
			return 0, -1
		}
		if score < bestValue {
			bestValue = score
			bestMove = col
		}
		beta = min(beta, bestValue)
		if beta <= alpha {
			s.metrics.AddCutoff()
			break
		}
	}
	return bestValue, bestMove
}

// minimax is alphaBeta without cutoffs.
func (s *minimaxSearch) minimax(b *game.Board, depth int, maximizing bool) (int, int) {
	s.visited++
	s.metrics.AddNode()
	if score, ok := s.leaf(b, depth); ok {
		return score, -1
	}

	bestMove := -1
	if maximizing {
		bestValue := math.MinInt
		for col := 0; col < b.Cols(); col++ {
			if !b.IsLegal(col) {
				continue
			}
			next := s.child(b, depth-1)
			next.DropPiece(col, game.AI)

			score, _ := s.minimax(next, depth-1, false)
			if score > bestValue {
				bestValue = score
				bestMove = col
			}
		}
		return bestValue, bestMove
	}

	bestValue := math.MaxInt
	for col := 0; col < b.Cols(); col++ {
		if !b.IsLegal(col) {
			continue
		}
		next := s.child(b, depth-1)
		next.DropPiece(col, game.Human)

		score, _ := s.minimax(next, depth-1, true)
		if score < bestValue {
			bestValue = score
			bestMove = col
		}
	}
	return bestValue, bestMove
}
