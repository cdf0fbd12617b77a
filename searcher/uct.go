package searcher

import "math"

// Hyperparameters for MCTS

const ExploreFactor = 2.0 // Exploration weight during selection

const Win = 1     // Playout reward when the AI wins
const Loss = -Win // Playout reward when the human wins
const Tie = 0

type ucb1 struct {
	factor    float64
	numerator float64
}

// newUCB1 prepares the UCB1 formula for the children of a node visited N
// times.
func newUCB1(factor float64, N float64) ucb1 {
	if N == 0 {
		panic("N cannot be 0")
	}
	return ucb1{factor: factor, numerator: 2 * math.Log(N)}
}

func (u ucb1) evaluate(q float64, n float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCB1 = q/n + c*sqrt(2*ln(N)/n)
	return q/n + u.factor*math.Sqrt(u.numerator/n)
}
