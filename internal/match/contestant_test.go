package match

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/MJE43/rps-replay-go/internal/gameerr"
	"github.com/MJE43/rps-replay-go/internal/rules"
)

// fixedSource replays a fixed list of floats.
type fixedSource struct {
	vals []float64
	i    int
}

func (s *fixedSource) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func TestNewHuman(t *testing.T) {
	h, err := NewHuman("  Andrew ")
	if err != nil {
		t.Fatalf("NewHuman returned error: %v", err)
	}
	if h.Name() != "Andrew" {
		t.Errorf("Name() = %q, want Andrew", h.Name())
	}
	if h.Score() != 0 || h.HasChosen() || h.Automated() {
		t.Errorf("unexpected initial state: score=%d chosen=%v automated=%v", h.Score(), h.HasChosen(), h.Automated())
	}
	if _, err := uuid.Parse(h.ID()); err != nil {
		t.Errorf("ID() = %q is not a UUID: %v", h.ID(), err)
	}

	if _, err := NewHuman(""); !errors.Is(err, gameerr.ErrInvalidConfiguration) {
		t.Errorf("empty name: expected InvalidConfiguration, got %v", err)
	}
}

func TestHumanSelectChoice(t *testing.T) {
	rs := rules.MustPreset(rules.PresetRPS)
	h, _ := NewHuman("Andrew")

	if err := h.SelectChoice("Rock", rs); err != nil {
		t.Fatalf("SelectChoice returned error: %v", err)
	}
	choice, ok := h.Choice()
	if !ok || choice.Name() != "rock" {
		t.Errorf("Choice() = %q, %v, want rock, true", choice.Name(), ok)
	}

	if err := h.SelectChoice("lizard", rs); !errors.Is(err, gameerr.ErrUnknownChoice) {
		t.Errorf("expected UnknownChoice, got %v", err)
	}
	if choice, _ := h.Choice(); choice.Name() != "rock" {
		t.Errorf("failed selection replaced the choice with %q", choice.Name())
	}

	h.ClearChoice()
	if h.HasChosen() {
		t.Errorf("expected no choice after ClearChoice")
	}
}

func TestRecordWin(t *testing.T) {
	h, _ := NewHuman("Andrew")
	for i := 1; i <= 3; i++ {
		h.RecordWin()
		if h.Score() != i {
			t.Errorf("Score() = %d after %d wins", h.Score(), i)
		}
	}
}

func TestComputer(t *testing.T) {
	rs := rules.MustPreset(rules.PresetRPSLS)
	c := NewComputer(&fixedSource{vals: []float64{0.0, 0.5, 0.99}})

	if c.Name() != ComputerName || !c.Automated() {
		t.Errorf("unexpected identity %q automated=%v", c.Name(), c.Automated())
	}

	want := []string{"rock", "scissors", "spock"}
	for _, w := range want {
		if err := c.SelectChoice(rs); err != nil {
			t.Fatalf("SelectChoice returned error: %v", err)
		}
		choice, ok := c.Choice()
		if !ok || choice.Name() != w {
			t.Errorf("SelectChoice drew %q, want %q", choice.Name(), w)
		}
	}

	draws := c.Draws()
	if len(draws) != len(want) {
		t.Fatalf("Draws() has %d entries, want %d", len(draws), len(want))
	}
	draws[0] = rules.Choice{}
	if c.Draws()[0].IsZero() {
		t.Errorf("Draws() exposed internal state")
	}
}

func TestContestantIDsAreUnique(t *testing.T) {
	a := NewComputer(&fixedSource{vals: []float64{0}})
	b := NewComputer(&fixedSource{vals: []float64{0}})
	if a.ID() == b.ID() {
		t.Errorf("two computers share ID %s", a.ID())
	}
}
