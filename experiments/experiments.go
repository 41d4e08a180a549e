package experiments

import (
	"catan/config"
	"catan/engine"
	"catan/eventlog"
	"catan/experiments/metrics"
	"catan/game"
	"catan/strategy"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Result is the outcome of a simulation run. Games and Players are ordered
// by game ID.
type Result struct {
	Seed    uint64
	Games   []metrics.GameRecord
	Players []metrics.PlayerRecord
	Wins    map[game.PlayerID]int // game.NoPlayer counts games stopped by the turn cap
	Dir     string                // Empty unless records were written
}

// RunSimulation plays cfg.Games games on cfg.Workers goroutines. Game i is
// seeded with the run seed plus i, so a run is reproducible whatever the
// number of workers.
func RunSimulation(cfg config.Config) (Result, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	log.Info().Msgf("starting simulation of %d games with seed %d on %d goroutines...", cfg.Games, seed, cfg.Workers)

	gameRecords := make([]metrics.GameRecord, cfg.Games)
	playerRecords := make([][]metrics.PlayerRecord, cfg.Games)
	errs := make([]error, cfg.Games)

	task := make(chan int, cfg.Games)
	for i := 0; i < cfg.Games; i++ {
		task <- i
	}
	close(task)

	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for i := range task {
				id := i + 1
				gameMetric, playerMetrics, err := runGame(cfg, id, seed+uint64(i))
				if err != nil {
					errs[i] = fmt.Errorf("game %d: %w", id, err)
					continue
				}
				gameRecords[i] = metrics.GameRecord{ID: id, GameMetric: gameMetric}
				for _, pm := range playerMetrics {
					playerRecords[i] = append(playerRecords[i], metrics.PlayerRecord{Game: id, PlayerMetric: pm})
				}
				log.Info().Msgf("completed game %d of %d with winner: %d", id, cfg.Games, gameMetric.Winner)
			}
		}()
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return Result{}, err
	}

	result := Result{
		Seed:  seed,
		Games: gameRecords,
		Wins:  make(map[game.PlayerID]int),
	}
	for i, record := range gameRecords {
		result.Wins[game.PlayerID(record.Winner)]++
		result.Players = append(result.Players, playerRecords[i]...)
	}

	log.Info().Msgf("completed simulation: wins by player %v", result.Wins)

	if cfg.WriteRecords {
		dir, err := writeRecords(cfg, result)
		if err != nil {
			return result, err
		}
		result.Dir = dir
	}
	return result, nil
}

// runGame plays a single game and returns its metrics.
func runGame(cfg config.Config, id int, seed uint64) (metrics.GameMetric, []metrics.PlayerMetric, error) {
	rng := rand.New(rand.NewSource(seed))

	collector := metrics.NewDummyCollector()
	if cfg.WriteRecords {
		collector = metrics.NewCollector()
	}
	collector.Start(seed)

	strategies := make([]strategy.Strategy, cfg.Players)
	for i := range strategies {
		s, err := strategy.New(cfg.Strategy, rng)
		if err != nil {
			return metrics.GameMetric{}, nil, err
		}
		strategies[i] = s
	}

	events := eventlog.Combine(collector, eventlog.NewLogger(log.With().Int("game", id).Logger()))
	e, err := engine.NewLocal(strategies, rng,
		engine.WithWinScore(cfg.WinScore),
		engine.WithHandCap(cfg.HandCap),
		engine.WithMaxTurns(cfg.MaxTurns),
		engine.WithEventLog(events),
	)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}

	if _, err := e.Run(); err != nil {
		return metrics.GameMetric{}, nil, err
	}
	gameMetric, playerMetrics := collector.Complete(e.Board)
	return gameMetric, playerMetrics, nil
}

func writeRecords(cfg config.Config, result Result) (string, error) {
	writer, err := metrics.NewWriter(cfg.OutputDir)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	setup := cfg
	setup.Seed = result.Seed
	if err := writer.WriteSetup(setup); err != nil {
		return "", fmt.Errorf("failed to store setup: %w", err)
	}
	log.Info().Msg("stored setup")

	if err := writer.WriteGameRecords(result.Games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WritePlayerRecords(result.Players); err != nil {
		return "", fmt.Errorf("failed to write player records: %w", err)
	}
	log.Info().Msg("stored player records")

	return writer.Dir(), nil
}
