package rules

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/MJE43/rps-replay-go/internal/gameerr"
)

// Preset names
const (
	PresetRPS   = "rps"
	PresetRPSLS = "rpsls"
)

// presetTables returns fresh tables on every call so no caller can mutate a
// shared preset.
func presetTables() map[string]Table {
	return map[string]Table{
		PresetRPS: {
			{Name: "rock", Beats: []string{"scissors"}},
			{Name: "paper", Beats: []string{"rock"}},
			{Name: "scissors", Beats: []string{"paper"}},
		},
		PresetRPSLS: {
			{Name: "rock", Beats: []string{"scissors", "lizard"}},
			{Name: "paper", Beats: []string{"rock", "spock"}},
			{Name: "scissors", Beats: []string{"paper", "lizard"}},
			{Name: "lizard", Beats: []string{"spock", "paper"}},
			{Name: "spock", Beats: []string{"scissors", "rock"}},
		},
	}
}

// Preset loads one of the built-in rule sets.
func Preset(name string) (*RuleSet, error) {
	table, ok := presetTables()[normalize(name)]
	if !ok {
		return nil, gameerr.WithMetadata(gameerr.CodeInvalidRuleSet,
			fmt.Sprintf("unknown preset, available: %v", PresetNames()),
			map[string]string{"rules": name})
	}
	return Load(normalize(name), table)
}

// MustPreset is like Preset but panics on error. Intended for the built-in
// names and tests.
func MustPreset(name string) *RuleSet {
	rs, err := Preset(name)
	if err != nil {
		panic(err)
	}
	return rs
}

// PresetNames lists the built-in rule sets in sorted order.
func PresetNames() []string {
	tables := presetTables()
	names := make([]string, 0, len(tables))
	for n := range tables {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ParseTable decodes a custom win table from JSON of the form
// [{"name":"rock","beats":["scissors"]}, ...].
func ParseTable(r io.Reader) (Table, error) {
	var table Table
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&table); err != nil {
		return nil, gameerr.Wrap(gameerr.CodeInvalidRuleSet, "cannot decode win table", err)
	}
	return table, nil
}

// LoadJSON decodes and validates a custom win table in one step.
func LoadJSON(name string, r io.Reader) (*RuleSet, error) {
	table, err := ParseTable(r)
	if err != nil {
		return nil, err
	}
	return Load(name, table)
}
