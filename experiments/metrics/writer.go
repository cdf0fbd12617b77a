package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type AgentConfig struct {
	ID         int           `yaml:"id"`
	Kind       string        `yaml:"kind"`       // "minimax", "mcts" or "random"
	Depth      int           `yaml:"depth"`      // Minimax
	Budget     time.Duration `yaml:"budget"`     // Minimax iterative deepening
	Evaluation string        `yaml:"evaluation"` // Minimax: "heuristic" or "center"
	Episodes   int           `yaml:"episodes"`   // MCTS
	Duration   time.Duration `yaml:"duration"`   // MCTS
	Seed       uint64        `yaml:"seed"`       // MCTS and random, 0 seeds from the clock
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID in seat 0
	Agent2 int // AgentConfig.ID in seat 1
	GameMetric
}

type MoveRecord struct {
	Game  int // GameRecord.ID
	Agent int // AgentConfig.ID
	MoveMetric
}

type MatchupSummary struct {
	Agent1     int
	Agent2     int
	Games      int
	Wins1      int
	Wins2      int
	Ties       int
	MeanMoves  float64
	StdMoves   float64
	MeanSearch [2]time.Duration // Per seat, over moves that reported metrics
	StdSearch  [2]time.Duration
}

type Writer struct {
	baseDir string
}

// NewWriter creates a subfolder of dir named by experiment and current timestamp.
func NewWriter(dir, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000")
	baseDir := filepath.Join(dir, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "kind", "depth", "budget", "evaluation", "episodes", "duration", "seed"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Kind,
			strconv.Itoa(config.Depth),
			config.Budget.String(),
			config.Evaluation,
			strconv.Itoa(config.Episodes),
			config.Duration.String(),
			strconv.FormatUint(config.Seed, 10),
		})
	}
	return w.write("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent1", "agent2", "starting_seat", "winner", "moves", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			strconv.Itoa(record.StartingSeat),
			strconv.Itoa(record.Winner),
			strconv.Itoa(record.TotalMoves),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "agent", "step", "seat", "column", "strategy", "duration", "nodes", "cutoffs", "depth", "episodes", "playout_plies"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Agent),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Seat),
			strconv.Itoa(record.Column),
			record.Strategy,
			record.Duration.String(),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.Cutoffs),
			strconv.Itoa(record.Depth),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.PlayoutPlies),
		})
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) WriteSummaries(summaries []MatchupSummary) error {
	header := []string{"agent1", "agent2", "games", "wins1", "wins2", "ties", "mean_moves", "std_moves",
		"mean_search1", "std_search1", "mean_search2", "std_search2"}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			strconv.Itoa(s.Agent1),
			strconv.Itoa(s.Agent2),
			strconv.Itoa(s.Games),
			strconv.Itoa(s.Wins1),
			strconv.Itoa(s.Wins2),
			strconv.Itoa(s.Ties),
			strconv.FormatFloat(s.MeanMoves, 'f', 2, 64),
			strconv.FormatFloat(s.StdMoves, 'f', 2, 64),
			s.MeanSearch[0].String(),
			s.StdSearch[0].String(),
			s.MeanSearch[1].String(),
			s.StdSearch[1].String(),
		})
	}
	return w.write("summaries.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}
