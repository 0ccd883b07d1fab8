// Package config loads runtime configuration from the environment.
package config

import (
	"github.com/kelseyhightower/envconfig"

	"github.com/BlakeDanielson/SoloRelms-sub001/internal/errors"
)

// Config holds all configuration for the application
type Config struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Storage backend selection: redis and postgres are used when set,
	// otherwise encounters live in memory
	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	PostgresDSN   string `envconfig:"POSTGRES_DSN"`

	// RNGSeed pins the dice roller for reproducible runs; 0 seeds from
	// the clock
	RNGSeed int64 `envconfig:"RNG_SEED" default:"0"`

	// Simulator scenario knobs
	Simulator SimulatorConfig
}

// SimulatorConfig shapes the scripted encounter the simulator runs
type SimulatorConfig struct {
	PartySize    int    `envconfig:"SIM_PARTY_SIZE" default:"2"`
	PartyLevel   int    `envconfig:"SIM_PARTY_LEVEL" default:"3"`
	MonsterKey   string `envconfig:"SIM_MONSTER_KEY" default:"goblin"`
	MonsterCount int    `envconfig:"SIM_MONSTER_COUNT" default:"3"`
	MaxRounds    int    `envconfig:"SIM_MAX_ROUNDS" default:"20"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "loading configuration")
	}

	if cfg.Simulator.PartySize < 1 {
		return nil, errors.OutOfRangef("SIM_PARTY_SIZE must be at least 1, got %d", cfg.Simulator.PartySize)
	}
	if cfg.Simulator.MonsterCount < 1 {
		return nil, errors.OutOfRangef("SIM_MONSTER_COUNT must be at least 1, got %d", cfg.Simulator.MonsterCount)
	}

	return &cfg, nil
}
