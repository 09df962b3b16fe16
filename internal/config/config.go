// Package config loads match setup from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"

	"github.com/MJE43/rps-replay-go/internal/engine"
	"github.com/MJE43/rps-replay-go/internal/rules"
)

// Config is the match setup fixed before the first round.
type Config struct {
	RuleSet    string `env:"RPS_RULESET" envDefault:"rps"`
	RulesFile  string `env:"RPS_RULES_FILE"`
	MaxRounds  int    `env:"RPS_MAX_ROUNDS" envDefault:"3"`
	PlayerName string `env:"RPS_PLAYER_NAME" envDefault:"Player"`
	ServerSeed string `env:"RPS_SERVER_SEED"`
	ClientSeed string `env:"RPS_CLIENT_SEED"`
	Nonce      uint64 `env:"RPS_NONCE"`
	Verbose    bool   `env:"RPS_VERBOSE"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadRuleSet returns the custom table from RulesFile when set, otherwise
// the named preset.
func (c Config) LoadRuleSet() (*rules.RuleSet, error) {
	if c.RulesFile == "" {
		return rules.Preset(c.RuleSet)
	}

	f, err := os.Open(c.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("open rules file: %w", err)
	}
	defer f.Close()

	return rules.LoadJSON(c.RulesFile, f)
}

// Seeded reports whether a provably-fair seed pair is configured.
func (c Config) Seeded() bool {
	return c.ServerSeed != ""
}

// Seeds returns the configured seed pair.
func (c Config) Seeds() engine.Seeds {
	return engine.Seeds{Server: c.ServerSeed, Client: c.ClientSeed}
}
