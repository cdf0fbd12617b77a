package metrics

import (
	"sync/atomic"
	"time"
)

// SearchMetric describes the work done by one search. Fields that do not
// apply to a strategy stay zero.
type SearchMetric struct {
	Strategy     string
	Duration     time.Duration
	Nodes        int // Minimax: positions visited; MCTS: tree nodes allocated
	Cutoffs      int // Minimax: alpha-beta cutoffs
	Depth        int // Minimax: last completed depth
	Episodes     int // MCTS: iterations
	PlayoutPlies int // MCTS: moves played during random playouts
}

type MoveMetric struct {
	Step   int
	Seat   int
	Column int
	SearchMetric
}

type GameMetric struct {
	StartingSeat int
	Winner       int // Seat index, -1 on a tie
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	TotalMoves   int
}

// Reporter is implemented by players that record metrics about their last
// search.
type Reporter interface {
	LastMetric() SearchMetric
}

type Collector interface {
	Start(strategy string)
	AddNode()
	AddCutoff()
	AddEpisode()
	AddPlayoutPlies(n int)
	SetDepth(depth int)
	Complete() SearchMetric
}

type collector struct {
	strategy     string
	startTime    time.Time
	nodes        atomic.Int64
	cutoffs      atomic.Int64
	episodes     atomic.Int64
	playoutPlies atomic.Int64
	depth        atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(strategy string) {
	m.strategy = strategy
	m.startTime = time.Now()
	m.nodes.Store(0)
	m.cutoffs.Store(0)
	m.episodes.Store(0)
	m.playoutPlies.Store(0)
	m.depth.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddPlayoutPlies(n int) {
	m.playoutPlies.Add(int64(n))
}

func (m *collector) SetDepth(depth int) {
	m.depth.Store(int32(depth))
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Strategy:     m.strategy,
		Duration:     time.Since(m.startTime),
		Nodes:        int(m.nodes.Load()),
		Cutoffs:      int(m.cutoffs.Load()),
		Depth:        int(m.depth.Load()),
		Episodes:     int(m.episodes.Load()),
		PlayoutPlies: int(m.playoutPlies.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(strategy string)  {}
func (m *dummyCollector) AddNode()               {}
func (m *dummyCollector) AddCutoff()             {}
func (m *dummyCollector) AddEpisode()            {}
func (m *dummyCollector) AddPlayoutPlies(n int)  {}
func (m *dummyCollector) SetDepth(depth int)     {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
