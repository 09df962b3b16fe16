package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/MJE43/rps-replay-go/internal/gameerr"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"RPS_RULESET", "RPS_RULES_FILE", "RPS_MAX_ROUNDS", "RPS_PLAYER_NAME",
		"RPS_SERVER_SEED", "RPS_CLIENT_SEED", "RPS_NONCE", "RPS_VERBOSE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.RuleSet != "rps" || cfg.MaxRounds != 3 || cfg.PlayerName != "Player" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Seeded() {
		t.Errorf("expected no seeds by default")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("RPS_RULESET", "rpsls")
	t.Setenv("RPS_MAX_ROUNDS", "5")
	t.Setenv("RPS_PLAYER_NAME", "Andrew")
	t.Setenv("RPS_SERVER_SEED", "server")
	t.Setenv("RPS_CLIENT_SEED", "client")
	t.Setenv("RPS_NONCE", "42")
	t.Setenv("RPS_VERBOSE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.RuleSet != "rpsls" || cfg.MaxRounds != 5 || cfg.PlayerName != "Andrew" || cfg.Nonce != 42 || !cfg.Verbose {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if !cfg.Seeded() || cfg.Seeds().Server != "server" || cfg.Seeds().Client != "client" {
		t.Errorf("unexpected seeds: %+v", cfg.Seeds())
	}

	rs, err := cfg.LoadRuleSet()
	if err != nil {
		t.Fatalf("LoadRuleSet returned error: %v", err)
	}
	if rs.Len() != 5 {
		t.Errorf("expected the 5-way preset, got %v", rs.Domain())
	}
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	t.Setenv("RPS_MAX_ROUNDS", "three")
	if _, err := Load(); err == nil {
		t.Errorf("expected error for non-integer max rounds")
	}
}

func TestLoadRuleSetFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	table := `[
		{"name": "fire", "beats": ["grass"]},
		{"name": "grass", "beats": ["water"]},
		{"name": "water", "beats": ["fire"]}
	]`
	if err := os.WriteFile(path, []byte(table), 0o600); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}

	cfg := Config{RuleSet: "rps", RulesFile: path}
	rs, err := cfg.LoadRuleSet()
	if err != nil {
		t.Fatalf("LoadRuleSet returned error: %v", err)
	}
	if !rs.Defeats("water", "fire") {
		t.Errorf("expected water to defeat fire")
	}
	if rs.Name() != path {
		t.Errorf("Name() = %q, want %q", rs.Name(), path)
	}
}

func TestLoadRuleSetErrors(t *testing.T) {
	cfg := Config{RuleSet: "chess"}
	if _, err := cfg.LoadRuleSet(); !errors.Is(err, gameerr.ErrInvalidRuleSet) {
		t.Errorf("unknown preset: expected InvalidRuleSet, got %v", err)
	}

	cfg = Config{RulesFile: filepath.Join(t.TempDir(), "missing.json")}
	if _, err := cfg.LoadRuleSet(); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: expected ErrNotExist, got %v", err)
	}
}
