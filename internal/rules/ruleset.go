// Package rules holds the win-rule tables of the round game and the Choice
// values validated against them.
package rules

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"golang.org/x/text/cases"

	"github.com/MJE43/rps-replay-go/internal/gameerr"
)

// Rule lists the names a single choice defeats.
type Rule struct {
	Name  string   `json:"name"`
	Beats []string `json:"beats"`
}

// Table is an ordered win table. Entry order defines the domain order.
type Table []Rule

// RuleSet is an immutable, validated win table.
type RuleSet struct {
	name   string
	domain []string
	beats  map[string]map[string]struct{}
}

// Load validates table and builds a RuleSet from it. Every problem found is
// reported in the returned error's cause.
func Load(name string, table Table) (*RuleSet, error) {
	rs := &RuleSet{
		name:  name,
		beats: make(map[string]map[string]struct{}, len(table)),
	}

	var problems error
	accepted := make([]bool, len(table))
	if len(table) == 0 {
		problems = multierr.Append(problems, errors.New("table has no entries"))
	}

	for i, rule := range table {
		n := normalize(rule.Name)
		if n == "" {
			problems = multierr.Append(problems, fmt.Errorf("entry %d has an empty name", i))
			continue
		}
		if _, dup := rs.beats[n]; dup {
			problems = multierr.Append(problems, fmt.Errorf("%q is listed more than once", n))
			continue
		}
		accepted[i] = true
		rs.domain = append(rs.domain, n)
		rs.beats[n] = make(map[string]struct{}, len(rule.Beats))
	}

	for i, rule := range table {
		if !accepted[i] {
			continue
		}
		a := normalize(rule.Name)
		defeated := rs.beats[a]
		for _, raw := range rule.Beats {
			b := normalize(raw)
			switch {
			case b == a:
				problems = multierr.Append(problems, fmt.Errorf("%q lists itself as defeated", a))
			case !rs.has(b):
				problems = multierr.Append(problems, fmt.Errorf("%q defeats %q which is not in the table", a, b))
			default:
				defeated[b] = struct{}{}
			}
		}
	}

	for i, a := range rs.domain {
		for _, b := range rs.domain[i+1:] {
			ab, ba := rs.Defeats(a, b), rs.Defeats(b, a)
			switch {
			case ab && ba:
				problems = multierr.Append(problems, fmt.Errorf("%q and %q defeat each other", a, b))
			case !ab && !ba:
				problems = multierr.Append(problems, fmt.Errorf("no rule decides %q against %q", a, b))
			}
		}
	}

	if problems != nil {
		err := gameerr.Wrap(gameerr.CodeInvalidRuleSet, "win table rejected", problems)
		err.Metadata = map[string]string{"rules": name}
		return nil, err
	}
	return rs, nil
}

// Name returns the preset or custom name the RuleSet was loaded under.
func (r *RuleSet) Name() string {
	return r.name
}

// Domain returns the allowable choice names in table order.
func (r *RuleSet) Domain() []string {
	out := make([]string, len(r.domain))
	copy(out, r.domain)
	return out
}

// Len returns the number of allowable names.
func (r *RuleSet) Len() int {
	return len(r.domain)
}

// Contains reports whether name, after normalization, is in the domain.
func (r *RuleSet) Contains(name string) bool {
	return r.has(normalize(name))
}

// Defeats reports whether a beats b: true iff b is listed among the names a
// defeats. Names are compared after normalization.
func (r *RuleSet) Defeats(a, b string) bool {
	defeated, ok := r.beats[normalize(a)]
	if !ok {
		return false
	}
	_, ok = defeated[normalize(b)]
	return ok
}

// Table returns a copy of the normalized win table in domain order.
func (r *RuleSet) Table() Table {
	out := make(Table, 0, len(r.domain))
	for _, a := range r.domain {
		rule := Rule{Name: a}
		for _, b := range r.domain {
			if _, ok := r.beats[a][b]; ok {
				rule.Beats = append(rule.Beats, b)
			}
		}
		out = append(out, rule)
	}
	return out
}

func (r *RuleSet) has(n string) bool {
	_, ok := r.beats[n]
	return ok
}

// normalize folds case so "Rock", "ROCK" and "rock" name the same choice.
func normalize(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}
