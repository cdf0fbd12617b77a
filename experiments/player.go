package experiments

import (
	"fmt"
	"time"

	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/player"
	"connect4/searcher"
)

const (
	KindMinimax = "minimax"
	KindMCTS    = "mcts"
	KindRandom  = "random"
)

const (
	EvaluationHeuristic = "heuristic"
	EvaluationCenter    = "center"
)

var evaluations = map[string]game.Evaluate{
	"":                  game.Heuristic,
	EvaluationHeuristic: game.Heuristic,
	EvaluationCenter:    game.EvaluateCenter,
}

func validateAgent(config metrics.AgentConfig) error {
	switch config.Kind {
	case KindMinimax:
		if config.Depth < 1 {
			return fmt.Errorf("minimax depth must be at least 1, got %d", config.Depth)
		}
		if _, ok := evaluations[config.Evaluation]; !ok {
			return fmt.Errorf("unknown evaluation %q", config.Evaluation)
		}
	case KindMCTS:
		if config.Episodes <= 0 && config.Duration <= 0 {
			return fmt.Errorf("mcts needs episodes or duration")
		}
	case KindRandom:
	default:
		return fmt.Errorf("unknown agent kind %q", config.Kind)
	}
	return nil
}

// NewPlayer builds the player described by config. Minimax and MCTS players
// record search metrics.
func NewPlayer(config metrics.AgentConfig) (game.Player, error) {
	if err := validateAgent(config); err != nil {
		return nil, err
	}

	switch config.Kind {
	case KindMinimax:
		options := []searcher.MinimaxOption{
			searcher.WithEvaluation(evaluations[config.Evaluation]),
			searcher.WithMinimaxMetrics(),
		}
		if config.Budget > 0 {
			options = append(options, searcher.WithTimeBudget(config.Budget))
		}
		return searcher.NewMinimax(config.Depth, options...), nil

	case KindMCTS:
		options := []searcher.Option{searcher.WithMetrics()}
		if config.Episodes > 0 {
			options = append(options, searcher.WithEpisodes(config.Episodes))
		}
		if config.Duration > 0 {
			options = append(options, searcher.WithDuration(config.Duration))
		}
		if config.Seed != 0 {
			options = append(options, searcher.WithSeed(config.Seed))
		}
		return searcher.NewMCTS(options...), nil
	}

	seed := config.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return player.NewRandom(seed), nil
}
