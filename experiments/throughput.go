package experiments

import (
	"catan/config"
	"time"

	"github.com/rs/zerolog/log"
)

type Throughput struct {
	Workers        int
	Games          int
	Duration       time.Duration
	GamesPerSecond float64
}

// RunThroughputExperiment times the same simulation with each number of
// workers. Records are not written.
func RunThroughputExperiment(cfg config.Config, workers []int) ([]Throughput, error) {
	cfg.WriteRecords = false
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	log.Info().Msg("starting throughput experiment...")

	var results []Throughput
	for _, n := range workers {
		if n <= 0 {
			continue
		}
		cfg.Workers = n
		start := time.Now()
		if _, err := RunSimulation(cfg); err != nil {
			return results, err
		}
		elapsed := time.Since(start)
		t := Throughput{
			Workers:        n,
			Games:          cfg.Games,
			Duration:       elapsed,
			GamesPerSecond: float64(cfg.Games) / elapsed.Seconds(),
		}
		results = append(results, t)
		log.Info().Msgf("%d goroutines: %d games in %s (%.1f games/s)", n, t.Games, t.Duration, t.GamesPerSecond)
	}

	log.Info().Msg("completed throughput experiment")
	return results, nil
}
