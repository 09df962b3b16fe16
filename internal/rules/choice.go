package rules

import (
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/MJE43/rps-replay-go/internal/gameerr"
)

// Source yields floats uniformly distributed in [0, 1). *rand.Rand from
// math/rand/v2 and engine.Stream both satisfy it.
type Source interface {
	Float64() float64
}

// Choice is a validated selection from a RuleSet's domain. The zero value
// means "no choice".
type Choice struct {
	name string
}

// NewChoice validates name against rs and returns its canonical form.
func NewChoice(name string, rs *RuleSet) (Choice, error) {
	if rs == nil {
		return Choice{}, gameerr.New(gameerr.CodeInvalidConfiguration, "a rule set is required")
	}
	n := normalize(name)
	if !rs.has(n) {
		return Choice{}, gameerr.WithMetadata(gameerr.CodeUnknownChoice,
			"choice is not in the rule set",
			map[string]string{
				"name":    name,
				"rules":   rs.Name(),
				"allowed": strings.Join(rs.domain, ","),
			})
	}
	return Choice{name: n}, nil
}

// RandomChoice picks a name from rs uniformly, using one float from src.
func RandomChoice(rs *RuleSet, src Source) (Choice, error) {
	if rs == nil {
		return Choice{}, gameerr.New(gameerr.CodeInvalidConfiguration, "a rule set is required")
	}
	if src == nil {
		return Choice{}, gameerr.New(gameerr.CodeInvalidConfiguration, "a random source is required")
	}
	return ChoiceAt(rs, src.Float64())
}

// ChoiceAt maps f in [0, 1) onto the domain of rs: index ⌊f·n⌋. Values
// outside the interval are clamped to the first or last name.
func ChoiceAt(rs *RuleSet, f float64) (Choice, error) {
	if rs == nil {
		return Choice{}, gameerr.New(gameerr.CodeInvalidConfiguration, "a rule set is required")
	}
	n := len(rs.domain)
	switch {
	case math.IsNaN(f) || f < 0:
		f = 0
	case f >= 1:
		return Choice{name: rs.domain[n-1]}, nil
	}
	idx := min(int(math.Floor(f*float64(n))), n-1)
	return Choice{name: rs.domain[idx]}, nil
}

// Name returns the canonical (case-folded) name.
func (c Choice) Name() string {
	return c.name
}

// String returns the display form, e.g. "Rock".
func (c Choice) String() string {
	return cases.Title(language.English).String(c.name)
}

// Equal reports whether both choices carry the same name.
func (c Choice) Equal(other Choice) bool {
	return c.name == other.name
}

// IsZero reports whether c is the "no choice" value.
func (c Choice) IsZero() bool {
	return c.name == ""
}

// Beats reports whether c defeats other under rs.
func (c Choice) Beats(other Choice, rs *RuleSet) bool {
	return rs.Defeats(c.name, other.name)
}
