package searcher

import (
	"fmt"
	"math"
	"slices"

	"connect4/experiments/metrics"
	"connect4/game"
)

const noParent = -1

// node is an MCTS tree element stored in the tree arena. It owns its board
// snapshot; parent is an index used for lookups only.
type node struct {
	board    game.Board
	terminal bool
	legal    int // Playable columns of board
	visits   int // Starts at 1 so UCB1 never divides by zero
	reward   int // From the perspective of the side that moved into this node
	parent   int
	moves    []int // Tried columns, parallel to children
	children []int
}

// tree is an arena of nodes addressed by index. It is reset at the start of
// every search and its storage is reused by the next one.
type tree struct {
	nodes   []node
	scratch game.Board
	metrics metrics.Collector
}

// reset drops every node and returns the index of a new root for board.
func (t *tree) reset(board *game.Board, capacity int) int {
	if cap(t.nodes) < capacity {
		t.nodes = make([]node, 0, capacity)
	}
	t.nodes = t.nodes[:0]
	return t.alloc(noParent, board)
}

func (t *tree) alloc(parent int, board *game.Board) int {
	if len(t.nodes) < cap(t.nodes) {
		t.nodes = t.nodes[:len(t.nodes)+1] // Recycle the slot along with its storage
	} else {
		t.nodes = append(t.nodes, node{})
	}
	i := len(t.nodes) - 1
	n := &t.nodes[i]
	n.board.CopyFrom(board)
	n.terminal = n.board.IsTerminal()
	n.legal = n.board.LegalMoveCount()
	n.visits = 1
	n.reward = 0
	n.parent = parent
	n.moves = n.moves[:0]
	n.children = n.children[:0]

	if t.metrics != nil {
		t.metrics.AddNode()
	}
	return i
}

func (t *tree) size() int {
	return len(t.nodes)
}

func (t *tree) isFullyExpanded(v int) bool {
	n := &t.nodes[v]
	return len(n.children) == n.legal
}

// selectThenExpand walks down from v until it expands a new child or
// reaches a terminal node. It returns that node and whether the AI is to
// move there.
func (t *tree) selectThenExpand(v int, aiTurn bool) (int, bool) {
	for !t.nodes[v].terminal {
		if !t.isFullyExpanded(v) {
			return t.expand(v, aiTurn), !aiTurn
		}
		ith := t.bestChild(v, ExploreFactor)
		v = t.nodes[v].children[ith]
		aiTurn = !aiTurn
	}
	return v, aiTurn
}

// expand adds a child for the first untried playable column of v, played by
// the side to move.
func (t *tree) expand(v int, aiTurn bool) int {
	parent := &t.nodes[v]
	col := untried(parent)
	if col < 0 {
		panic("cannot expand a fully expanded node")
	}

	t.scratch.CopyFrom(&parent.board)
	if !t.scratch.DropPiece(col, sideToMove(aiTurn)) {
		panic(fmt.Sprintf("expansion failed to drop in column %d", col))
	}
	child := t.alloc(v, &t.scratch)

	parent = &t.nodes[v] // alloc may have moved the arena
	parent.moves = append(parent.moves, col)
	parent.children = append(parent.children, child)
	return child
}

func untried(n *node) int {
	for col := 0; col < n.board.Cols(); col++ {
		if n.board.IsLegal(col) && !slices.Contains(n.moves, col) {
			return col
		}
	}
	return -1
}

// bestChild returns the position in v's children of the child with the
// highest UCB1 value. The first child wins ties.
func (t *tree) bestChild(v int, factor float64) int {
	n := &t.nodes[v]
	if len(n.children) == 0 {
		panic("node has no children")
	}

	policy := newUCB1(factor, float64(n.visits))
	bestIndex := -1
	bestValue := -math.MaxFloat64
	for i, c := range n.children {
		child := &t.nodes[c]
		value := policy.evaluate(float64(child.reward), float64(child.visits))
		if value > bestValue {
			bestValue = value
			bestIndex = i
		}
	}
	return bestIndex
}

// backup records a playout reward from leaf up to the root. The reward is
// given from the AI's perspective and each node keeps it from the
// perspective of the side that moved into it.
func (t *tree) backup(leaf int, reward int, aiTurn bool) {
	if aiTurn {
		reward = -reward
	}
	for v := leaf; v != noParent; v = t.nodes[v].parent {
		n := &t.nodes[v]
		n.visits++
		n.reward += reward
		reward = -reward
	}
}

func sideToMove(aiTurn bool) game.Marker {
	if aiTurn {
		return game.AI
	}
	return game.Human
}
