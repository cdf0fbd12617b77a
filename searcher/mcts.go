package searcher

import (
	"time"

	"connect4/experiments/metrics"
	"connect4/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const mctsStrategy = "mcts"

type Option func(mcts *MCTS)

// MCTS is a Monte Carlo tree search player using UCB1 selection and
// uniformly random playouts. It always plays the AI marker.
type MCTS struct {
	episodes int
	duration time.Duration
	seed     uint64
	rand     *rand.Rand
	tree     tree
	playout  game.Board
	legal    []int
	metrics  metrics.Collector
	last     metrics.SearchMetric
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

// WithSeed fixes the playout randomness: the same seed, board and budget in
// episodes always lead to the same move.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		seed:    uint64(time.Now().UnixNano()),
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	m.rand = rand.New(rand.NewSource(m.seed))
	m.tree.metrics = m.metrics
	return m
}

// Play searches from the board with the AI to move and overwrites the board
// with the snapshot of the chosen child.
func (m *MCTS) Play(board *game.Board) error {
	if err := game.CheckPlayable(board); err != nil {
		return err
	}
	m.metrics.Start(mctsStrategy)

	root := m.tree.reset(board, m.episodes+1)
	start := time.Now()
	for i := 0; m.hasBudget(i, start); i++ {
		m.simulate(root)
		m.metrics.AddEpisode()
	}

	// Exploitation only, on the UCB1 value rather than the visit count
	ith := m.tree.bestChild(root, 0)
	best := &m.tree.nodes[m.tree.nodes[root].children[ith]]
	col := m.tree.nodes[root].moves[ith]
	board.CopyFrom(&best.board)

	m.last = m.metrics.Complete()
	log.Debug().Msgf("mcts played column %d after %d nodes (visits=%d reward=%d)", col, m.tree.size(), best.visits, best.reward)
	return nil
}

func (m *MCTS) LastMetric() metrics.SearchMetric {
	return m.last
}

// hasBudget reports whether iteration i may run. The first iteration always
// runs so the root has a child to pick.
func (m *MCTS) hasBudget(i int, start time.Time) bool {
	if i == 0 {
		return true
	}
	if m.episodes > 0 && i >= m.episodes {
		return false
	}
	if m.duration > 0 && time.Since(start) >= m.duration {
		return false
	}
	return true
}

func (m *MCTS) simulate(root int) {
	leaf, aiTurn := m.tree.selectThenExpand(root, true)
	reward := m.rollout(&m.tree.nodes[leaf].board, aiTurn)
	m.tree.backup(leaf, reward, aiTurn)
}

// rollout plays uniformly random moves from board until the game ends and
// returns the reward from the AI's perspective.
func (m *MCTS) rollout(board *game.Board, aiTurn bool) int {
	m.playout.CopyFrom(board)
	plies := 0
	for !m.playout.IsTerminal() {
		m.legal = m.playout.LegalMoves(m.legal[:0])
		if len(m.legal) == 0 {
			panic("playout reached a live board without legal moves")
		}
		col := m.legal[m.rand.Intn(len(m.legal))] // Random rollout policy
		m.playout.DropPiece(col, sideToMove(aiTurn))
		aiTurn = !aiTurn
		plies++
	}
	m.metrics.AddPlayoutPlies(plies)

	switch m.playout.Winner() {
	case game.AI:
		return Win
	case game.Human:
		return Loss
	}
	return Tie
}
