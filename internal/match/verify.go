package match

import (
	"fmt"

	"github.com/MJE43/rps-replay-go/internal/engine"
	"github.com/MJE43/rps-replay-go/internal/rules"
)

// NewSeededComputer creates an automated contestant whose draws can be
// replayed from the seed pair and nonce.
func NewSeededComputer(seeds engine.Seeds, nonce uint64) *Computer {
	return NewComputer(engine.NewStream(seeds, nonce, 0))
}

// ReplayPicks reproduces the first n draws of a seeded computer.
func ReplayPicks(rs *rules.RuleSet, seeds engine.Seeds, nonce uint64, n int) ([]rules.Choice, error) {
	floats := engine.Floats(seeds, nonce, 0, n)
	picks := make([]rules.Choice, n)
	for i, f := range floats {
		pick, err := rules.ChoiceAt(rs, f)
		if err != nil {
			return nil, err
		}
		picks[i] = pick
	}
	return picks, nil
}

// PickMismatchError reports the first draw that does not match the replay.
type PickMismatchError struct {
	Draw int
	Got  string
	Want string
}

func (e *PickMismatchError) Error() string {
	return fmt.Sprintf("draw %d: recorded %q, replay gives %q", e.Draw, e.Got, e.Want)
}

// VerifyPicks checks recorded draws against the replay of the seed pair.
func VerifyPicks(rs *rules.RuleSet, seeds engine.Seeds, nonce uint64, recorded []rules.Choice) error {
	replay, err := ReplayPicks(rs, seeds, nonce, len(recorded))
	if err != nil {
		return fmt.Errorf("replay picks: %w", err)
	}
	for i, want := range replay {
		if !recorded[i].Equal(want) {
			return &PickMismatchError{Draw: i + 1, Got: recorded[i].Name(), Want: want.Name()}
		}
	}
	return nil
}
