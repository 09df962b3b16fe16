package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/MJE43/rps-replay-go/internal/config"
	"github.com/MJE43/rps-replay-go/internal/engine"
	"github.com/MJE43/rps-replay-go/internal/gameerr"
	"github.com/MJE43/rps-replay-go/internal/match"
	"github.com/MJE43/rps-replay-go/internal/rules"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	flag.StringVar(&cfg.RuleSet, "rules", cfg.RuleSet, fmt.Sprintf("rule preset (%s)", strings.Join(rules.PresetNames(), ", ")))
	flag.StringVar(&cfg.RulesFile, "rules-file", cfg.RulesFile, "JSON win table, overrides -rules")
	flag.IntVar(&cfg.MaxRounds, "rounds", cfg.MaxRounds, "number of rounds")
	flag.StringVar(&cfg.PlayerName, "name", cfg.PlayerName, "display name of the human player")
	flag.StringVar(&cfg.ServerSeed, "server-seed", cfg.ServerSeed, "server seed for provably-fair computer picks")
	flag.StringVar(&cfg.ClientSeed, "client-seed", cfg.ClientSeed, "client seed for provably-fair computer picks")
	flag.Uint64Var(&cfg.Nonce, "nonce", cfg.Nonce, "nonce for provably-fair computer picks")
	flag.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "log match events to stderr")
	asJSON := flag.Bool("json", false, "print the final snapshot and statistics as JSON")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] choice...\n\nOne choice per round is played against the computer.\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(cfg, flag.Args(), *asJSON, os.Stdout); err != nil {
		if gameerr.Recoverable(err) {
			log.Printf("%v (fix the input and run again)", err)
		} else {
			log.Printf("%v", err)
		}
		os.Exit(1)
	}
}

func run(cfg config.Config, choices []string, asJSON bool, out io.Writer) error {
	rs, err := cfg.LoadRuleSet()
	if err != nil {
		return err
	}

	logger := log.New(io.Discard, "", 0)
	if cfg.Verbose {
		logger = log.New(os.Stderr, "[MATCH] ", log.LstdFlags)
	}

	m, err := match.New(rs, match.WithLogger(logger))
	if err != nil {
		return err
	}
	if err := m.SetMaxRounds(cfg.MaxRounds); err != nil {
		return err
	}
	if len(choices) != cfg.MaxRounds {
		return gameerr.WithMetadata(gameerr.CodeInvalidConfiguration,
			fmt.Sprintf("expected one choice per round, allowed: %s", strings.Join(rs.Domain(), ", ")),
			map[string]string{"rounds": strconv.Itoa(cfg.MaxRounds), "choices": strconv.Itoa(len(choices))})
	}

	if _, err := m.AddHuman(cfg.PlayerName); err != nil {
		return err
	}
	var src rules.Source = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	if cfg.Seeded() {
		src = engine.NewStream(cfg.Seeds(), cfg.Nonce, 0)
		fmt.Fprintf(out, "Server seed hash: %s\n\n", engine.HashServerSeed(cfg.ServerSeed))
	}
	computer, err := m.AddComputer(src)
	if err != nil {
		return err
	}

	for _, choice := range choices {
		if err := m.Select(0, choice); err != nil {
			return err
		}
		if err := m.SelectAutomated(); err != nil {
			return err
		}
		if _, err := m.ResolveRound(); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\n\n", m.DescribeRound())
		if err := m.AdvanceRound(); err != nil {
			return err
		}
	}

	if cfg.Seeded() {
		if err := match.VerifyPicks(rs, cfg.Seeds(), cfg.Nonce, computer.Draws()); err != nil {
			return fmt.Errorf("computer picks failed verification: %w", err)
		}
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Match      match.Snapshot `json:"match"`
			Stats      match.Stats    `json:"stats"`
			ServerSeed string         `json:"serverSeed,omitempty"`
			Verified   bool           `json:"verified"`
		}{m.Snapshot(), m.Stats(), cfg.ServerSeed, cfg.Seeded()})
	}

	fmt.Fprintln(out, m.DescribeScores())
	fmt.Fprintln(out, m.DescribeMatchWinner())

	if cfg.Seeded() {
		fmt.Fprintf(out, "\nServer seed: %s\n", cfg.ServerSeed)
		fmt.Fprintln(out, "Computer picks verified against the seed pair")
	}
	return nil
}
