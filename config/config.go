package config

import (
	"catan/meta"
	"catan/strategy"
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. CATAN_GAMES.
const EnvPrefix = "CATAN_"

// Config sets up a batch of simulated games.
type Config struct {
	Players      int           `yaml:"players" env:"PLAYERS"`
	WinScore     int           `yaml:"win_score" env:"WIN_SCORE"`
	HandCap      int           `yaml:"hand_cap" env:"HAND_CAP"`
	MaxTurns     int           `yaml:"max_turns" env:"MAX_TURNS"`
	Games        int           `yaml:"games" env:"GAMES"`
	Workers      int           `yaml:"workers" env:"WORKERS"`
	Seed         uint64        `yaml:"seed" env:"SEED"` // 0 derives a seed from the clock
	Strategy     strategy.Kind `yaml:"strategy" env:"STRATEGY"`
	OutputDir    string        `yaml:"output_dir" env:"OUTPUT_DIR"`
	LogLevel     string        `yaml:"log_level" env:"LOG_LEVEL"`
	WriteRecords bool          `yaml:"write_records" env:"WRITE_RECORDS"`
}

func Default() Config {
	return Config{
		Players:      meta.PLAYERS,
		WinScore:     meta.WIN_SCORE,
		HandCap:      meta.HAND_CAP,
		MaxTurns:     meta.MAX_TURNS,
		Games:        meta.GAMES,
		Workers:      meta.GO_ROUTINES,
		Strategy:     strategy.RandomGreedyKind,
		OutputDir:    meta.OUTPUT_DIR,
		LogLevel:     zerolog.InfoLevel.String(),
		WriteRecords: true,
	}
}

// Load starts from the defaults, applies the YAML file at path when path is
// not empty, then CATAN_* environment overrides, and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Players != meta.PLAYERS {
		errs = append(errs, fmt.Errorf("players must be %d, got %d", meta.PLAYERS, c.Players))
	}
	if c.WinScore <= 0 {
		errs = append(errs, fmt.Errorf("win_score must be positive, got %d", c.WinScore))
	}
	if c.HandCap <= 0 {
		errs = append(errs, fmt.Errorf("hand_cap must be positive, got %d", c.HandCap))
	}
	if c.MaxTurns <= 0 {
		errs = append(errs, fmt.Errorf("max_turns must be positive, got %d", c.MaxTurns))
	}
	if c.Games <= 0 {
		errs = append(errs, fmt.Errorf("games must be positive, got %d", c.Games))
	}
	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	if _, err := strategy.New(c.Strategy, nil); err != nil {
		errs = append(errs, err)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if c.WriteRecords && c.OutputDir == "" {
		errs = append(errs, errors.New("output_dir is required to write records"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Level returns the zerolog level named by LogLevel.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
