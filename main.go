package main

import (
	"catan/config"
	"catan/experiments"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML simulation config")
	throughput := flag.Bool("throughput", false, "Time the simulation with 1 to 64 goroutines instead")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	zerolog.SetGlobalLevel(cfg.Level())

	if *throughput {
		if _, err := experiments.RunThroughputExperiment(cfg, []int{1, 2, 4, 8, 16, 32, 64}); err != nil {
			log.Fatal().Err(err).Msg("throughput experiment failed")
		}
		return
	}

	result, err := experiments.RunSimulation(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("simulation failed")
	}
	if result.Dir != "" {
		log.Info().Msgf("records written to %s", result.Dir)
	}
}
