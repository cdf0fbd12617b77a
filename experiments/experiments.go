package experiments

import (
	"fmt"
	"time"

	"connect4/engine"
	"connect4/experiments/metrics"
	"connect4/game"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"
)

type records struct {
	games []metrics.GameRecord
	moves []metrics.MoveRecord
}

// Run plays config.Games games per matchup, alternating the starting seat,
// and summarizes each matchup. Results are stored as CSV when config.OutDir
// is set.
func Run(config Config) ([]metrics.MatchupSummary, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	log.Info().Msgf("starting %s experiment...", config.Name)

	summaries := make([]metrics.MatchupSummary, 0, len(config.Matchups))
	all := &records{}
	for mi, matchup := range config.Matchups {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...",
			mi+1, len(config.Matchups), config.agent(matchup.Agent1), config.agent(matchup.Agent2))

		summary, err := runMatchup(config, matchup, all)
		if err != nil {
			return nil, fmt.Errorf("failed to run matchup %d: %w", mi+1, err)
		}
		summaries = append(summaries, summary)

		log.Info().Msgf("completed matchup %d of %d: %d-%d with %d ties",
			mi+1, len(config.Matchups), summary.Wins1, summary.Wins2, summary.Ties)
	}

	log.Info().Msgf("completed %s experiment", config.Name)

	if config.OutDir != "" {
		if err := store(config, summaries, all); err != nil {
			return nil, err
		}
	}
	return summaries, nil
}

func runMatchup(config Config, matchup Matchup, all *records) (metrics.MatchupSummary, error) {
	ids := [2]int{matchup.Agent1, matchup.Agent2}
	var players [2]game.Player
	for seat, id := range ids {
		p, err := NewPlayer(config.agent(id))
		if err != nil {
			return metrics.MatchupSummary{}, fmt.Errorf("failed to create agent %d: %w", id, err)
		}
		players[seat] = p
	}

	summary := metrics.MatchupSummary{Agent1: ids[0], Agent2: ids[1], Games: config.Games}
	lengths := make([]float64, 0, config.Games)
	var searches [2][]float64
	for i := 0; i < config.Games; i++ {
		e := engine.NewLocalEngine(game.NewBoard(config.Rows, config.Cols), players,
			engine.WithStartingSeat(i%2))

		result, err := e.Run()
		if err != nil {
			return metrics.MatchupSummary{}, fmt.Errorf("failed to run game %d: %w", i+1, err)
		}

		switch result.Winner {
		case 0:
			summary.Wins1++
		case 1:
			summary.Wins2++
		default:
			summary.Ties++
		}
		lengths = append(lengths, float64(result.Game.TotalMoves))

		id := len(all.games) + 1
		all.games = append(all.games, metrics.GameRecord{
			ID:         id,
			Agent1:     ids[0],
			Agent2:     ids[1],
			GameMetric: result.Game,
		})
		for _, mm := range result.Moves {
			searches[mm.Seat] = append(searches[mm.Seat], float64(mm.Duration))
			all.moves = append(all.moves, metrics.MoveRecord{
				Game:       id,
				Agent:      ids[mm.Seat],
				MoveMetric: mm,
			})
		}

		log.Debug().Msgf("game %d of %d won by seat %d after %d moves", i+1, config.Games, result.Winner, result.Game.TotalMoves)
	}

	summary.MeanMoves, summary.StdMoves = meanStdDev(lengths)
	for seat := range searches {
		mean, std := meanStdDev(searches[seat])
		summary.MeanSearch[seat] = time.Duration(mean)
		summary.StdSearch[seat] = time.Duration(std)
	}
	return summary, nil
}

// meanStdDev returns zeros for empty samples and a zero deviation for a
// single value.
func meanStdDev(x []float64) (float64, float64) {
	switch len(x) {
	case 0:
		return 0, 0
	case 1:
		return x[0], 0
	}
	return stat.MeanStdDev(x, nil)
}

func store(config Config, summaries []metrics.MatchupSummary, all *records) error {
	writer, err := metrics.NewWriter(config.OutDir, config.Name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(config.Agents); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(all.games); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(all.moves); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored %d game and %d move records", len(all.games), len(all.moves))

	if err := writer.WriteSummaries(summaries); err != nil {
		return fmt.Errorf("failed to write summaries: %w", err)
	}
	log.Info().Msgf("stored summaries in %s", writer.Dir())
	return nil
}
