package main

import (
	"flag"
	"os"
	"time"

	"connect4/experiments"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML experiment config, the built-in experiment when empty")
	outDir := flag.String("out", "", "Directory for CSV results, overrides the config")
	level := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	logLevel, err := zerolog.ParseLevel(*level)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(logLevel)

	config := experiments.DefaultConfig()
	if *configPath != "" {
		config, err = experiments.LoadConfig(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	}
	if *outDir != "" {
		config.OutDir = *outDir
	}

	summaries, err := experiments.Run(config)
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}
	for _, s := range summaries {
		log.Info().Msgf("agent %d vs agent %d: %d-%d, %d ties, %.1f moves per game",
			s.Agent1, s.Agent2, s.Wins1, s.Wins2, s.Ties, s.MeanMoves)
	}
}
