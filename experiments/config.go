package experiments

import (
	"fmt"
	"os"
	"time"

	"connect4/experiments/metrics"
	"connect4/game"

	"gopkg.in/yaml.v3"
)

type Matchup struct {
	Agent1 int `yaml:"agent1"` // Seat 0 in even games
	Agent2 int `yaml:"agent2"`
}

type Config struct {
	Name     string                `yaml:"name"`
	Games    int                   `yaml:"games"` // Per matchup
	Rows     int                   `yaml:"rows"`
	Cols     int                   `yaml:"cols"`
	Agents   []metrics.AgentConfig `yaml:"agents"`
	Matchups []Matchup             `yaml:"matchups"`
	OutDir   string                `yaml:"out_dir"` // No CSV output when empty
}

// DefaultConfig pits minimax, MCTS and the random baseline against each other.
func DefaultConfig() Config {
	return Config{
		Name:  "strength",
		Games: 10,
		Rows:  game.DefaultRows,
		Cols:  game.DefaultCols,
		Agents: []metrics.AgentConfig{
			{ID: 1, Kind: KindMinimax, Depth: 4},
			{ID: 2, Kind: KindMinimax, Depth: 6, Budget: 50 * time.Millisecond, Evaluation: EvaluationCenter},
			{ID: 3, Kind: KindMCTS, Episodes: 2000},
			{ID: 4, Kind: KindRandom},
		},
		Matchups: []Matchup{
			{Agent1: 1, Agent2: 4},
			{Agent1: 3, Agent2: 4},
			{Agent1: 1, Agent2: 3},
			{Agent1: 2, Agent2: 3},
		},
	}
}

// LoadConfig reads a YAML experiment config. Board dimensions default to the
// standard 6x7 board.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	config := Config{Rows: game.DefaultRows, Cols: game.DefaultCols}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

func (c Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("missing experiment name")
	}
	if c.Games <= 0 {
		return fmt.Errorf("games must be positive, got %d", c.Games)
	}
	if c.Rows <= 0 || c.Cols <= 0 {
		return fmt.Errorf("invalid board dimensions %dx%d", c.Rows, c.Cols)
	}
	ids := make(map[int]bool, len(c.Agents))
	for _, agent := range c.Agents {
		if ids[agent.ID] {
			return fmt.Errorf("duplicate agent id %d", agent.ID)
		}
		ids[agent.ID] = true
		if err := validateAgent(agent); err != nil {
			return fmt.Errorf("agent %d: %w", agent.ID, err)
		}
	}
	if len(c.Matchups) == 0 {
		return fmt.Errorf("no matchups")
	}
	for i, m := range c.Matchups {
		if !ids[m.Agent1] || !ids[m.Agent2] {
			return fmt.Errorf("matchup %d references an unknown agent", i)
		}
	}
	return nil
}

func (c Config) agent(id int) metrics.AgentConfig {
	for _, agent := range c.Agents {
		if agent.ID == id {
			return agent
		}
	}
	panic(fmt.Sprintf("unknown agent %d", id))
}
