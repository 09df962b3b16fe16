package match

import (
	"strings"

	"github.com/google/uuid"

	"github.com/MJE43/rps-replay-go/internal/gameerr"
	"github.com/MJE43/rps-replay-go/internal/rules"
)

// ComputerName is the fixed display name of automated contestants.
const ComputerName = "Computer"

// Contestant is a participant in a match. The set of implementations is
// closed: *Human and *Computer.
type Contestant interface {
	ID() string
	Name() string
	Score() int
	// Choice returns the current round's choice and whether one was made.
	Choice() (rules.Choice, bool)
	HasChosen() bool
	ClearChoice()
	RecordWin()
	Automated() bool

	state() *seat
}

// seat holds what every contestant variant shares. owner is the controller
// the contestant is registered with; a contestant plays in one match only.
type seat struct {
	id     string
	name   string
	score  int
	choice rules.Choice
	owner  *Controller
}

func newSeat(name string) seat {
	return seat{id: uuid.New().String(), name: name}
}

func (s *seat) ID() string   { return s.id }
func (s *seat) Name() string { return s.name }
func (s *seat) Score() int   { return s.score }

func (s *seat) Choice() (rules.Choice, bool) {
	return s.choice, !s.choice.IsZero()
}

func (s *seat) HasChosen() bool {
	return !s.choice.IsZero()
}

// ClearChoice drops the current round's choice.
func (s *seat) ClearChoice() {
	s.choice = rules.Choice{}
}

// RecordWin increments the score by exactly one.
func (s *seat) RecordWin() {
	s.score++
}

func (s *seat) state() *seat { return s }

// Human is a contestant whose choices come from outside the engine.
type Human struct {
	seat
}

// NewHuman creates a human contestant. The display name must not be blank.
func NewHuman(name string) (*Human, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, gameerr.New(gameerr.CodeInvalidConfiguration, "human contestant needs a display name")
	}
	return &Human{seat: newSeat(name)}, nil
}

// SelectChoice validates name against rs and makes it the current choice.
// On error the previous choice is kept.
func (h *Human) SelectChoice(name string, rs *rules.RuleSet) error {
	c, err := rules.NewChoice(name, rs)
	if err != nil {
		return err
	}
	h.choice = c
	return nil
}

// Automated reports false for humans.
func (h *Human) Automated() bool { return false }

// Computer is a contestant that draws its own choices from a Source.
type Computer struct {
	seat
	src   rules.Source
	draws []rules.Choice
}

// NewComputer creates an automated contestant drawing from src.
func NewComputer(src rules.Source) *Computer {
	return &Computer{seat: newSeat(ComputerName), src: src}
}

// SelectChoice draws a uniformly random choice from rs.
func (c *Computer) SelectChoice(rs *rules.RuleSet) error {
	choice, err := rules.RandomChoice(rs, c.src)
	if err != nil {
		return err
	}
	c.choice = choice
	c.draws = append(c.draws, choice)
	return nil
}

// Draws returns every choice drawn so far, across resets, in order.
func (c *Computer) Draws() []rules.Choice {
	out := make([]rules.Choice, len(c.draws))
	copy(out, c.draws)
	return out
}

// Automated reports true for computers.
func (c *Computer) Automated() bool { return true }
