// Package match sequences the rounds of a single match between two
// contestants and reports its state as plain text.
//
// A Controller is not safe for concurrent use. Callers that share one across
// goroutines must serialize access.
package match

import (
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/MJE43/rps-replay-go/internal/gameerr"
	"github.com/MJE43/rps-replay-go/internal/rules"
)

// State of a match.
type State int

const (
	StateConfiguring State = iota // max rounds not set
	StateReady                    // configured, nothing played yet
	StateAwaitingChoices          // at least one choice missing
	StateResolved                 // both chose, outcome computed
	StateFinished                 // round counter reached max rounds
)

func (s State) String() string {
	switch s {
	case StateConfiguring:
		return "configuring"
	case StateReady:
		return "ready"
	case StateAwaitingChoices:
		return "awaiting_choices"
	case StateResolved:
		return "resolved"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Outcome of a round.
type Outcome int

const (
	OutcomeUnresolved Outcome = iota
	OutcomeDraw
	OutcomeDecisive
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUnresolved:
		return "unresolved"
	case OutcomeDraw:
		return "draw"
	case OutcomeDecisive:
		return "decisive"
	default:
		return "unknown"
	}
}

// Result is the resolution of one round. Winner is the registration index of
// the winning contestant and is only meaningful when Outcome is
// OutcomeDecisive.
type Result struct {
	Round    int       `json:"round"`
	Outcome  Outcome   `json:"outcome"`
	Choices  [2]string `json:"choices"`
	Winner   int       `json:"winner"`
	WinnerID string    `json:"winnerId,omitempty"`
}

// Resolve decides a round between a (first contestant) and b (second
// contestant). Equal choices draw; otherwise a wins iff it defeats b.
func Resolve(rs *rules.RuleSet, a, b rules.Choice) Result {
	res := Result{Choices: [2]string{a.Name(), b.Name()}}
	switch {
	case a.Equal(b):
		res.Outcome = OutcomeDraw
	case a.Beats(b, rs):
		res.Outcome = OutcomeDecisive
		res.Winner = 0
	default:
		res.Outcome = OutcomeDecisive
		res.Winner = 1
	}
	return res
}

// Controller runs one match.
type Controller struct {
	id          string
	rules       *rules.RuleSet
	maxRounds   int
	round       int
	contestants []Contestant
	last        Result
	history     []Result
	logger      *log.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for match events.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithID overrides the generated match ID.
func WithID(id string) Option {
	return func(c *Controller) {
		if id != "" {
			c.id = id
		}
	}
}

// New creates a controller for a match played under rs.
func New(rs *rules.RuleSet, opts ...Option) (*Controller, error) {
	if rs == nil {
		return nil, gameerr.New(gameerr.CodeInvalidConfiguration, "a rule set is required")
	}
	c := &Controller{
		id:     uuid.New().String(),
		rules:  rs,
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ID returns the match ID.
func (c *Controller) ID() string { return c.id }

// RuleSet returns the rule set the match is played under.
func (c *Controller) RuleSet() *rules.RuleSet { return c.rules }

// Round returns the number of rounds advanced past.
func (c *Controller) Round() int { return c.round }

// MaxRounds returns the configured round limit, 0 if unset.
func (c *Controller) MaxRounds() int { return c.maxRounds }

// Contestants returns the registered contestants in registration order.
func (c *Controller) Contestants() []Contestant {
	out := make([]Contestant, len(c.contestants))
	copy(out, c.contestants)
	return out
}

// RegisterContestant appends ct to the ordered pair. A contestant belongs to
// the first match it is registered with.
func (c *Controller) RegisterContestant(ct Contestant) error {
	if ct == nil {
		return gameerr.New(gameerr.CodeUnsupported, "cannot register a nil contestant")
	}
	if c.started() {
		return gameerr.WithMetadata(gameerr.CodeUnsupported, "cannot register after the match has started",
			map[string]string{"contestant": ct.Name()})
	}
	if len(c.contestants) >= 2 {
		return gameerr.WithMetadata(gameerr.CodeTooManyContestants, "a match has exactly two contestants",
			map[string]string{"contestant": ct.Name()})
	}
	st := ct.state()
	switch {
	case st.owner == c:
		return gameerr.WithMetadata(gameerr.CodeUnsupported, "contestant is already registered",
			map[string]string{"contestant": ct.Name()})
	case st.owner != nil:
		return gameerr.WithMetadata(gameerr.CodeUnsupported, "contestant belongs to another match",
			map[string]string{"contestant": ct.Name(), "owner": st.owner.id})
	case ct.HasChosen():
		return gameerr.WithMetadata(gameerr.CodeUnsupported, "contestant already holds a choice",
			map[string]string{"contestant": ct.Name()})
	}

	st.owner = c
	c.contestants = append(c.contestants, ct)
	c.logger.Printf("contestant_registered match=%s position=%d name=%q automated=%t",
		c.id, len(c.contestants)-1, ct.Name(), ct.Automated())
	return nil
}

// AddHuman creates a human contestant owned by this match and registers it.
func (c *Controller) AddHuman(name string) (*Human, error) {
	h, err := NewHuman(name)
	if err != nil {
		return nil, err
	}
	if err := c.RegisterContestant(h); err != nil {
		return nil, err
	}
	return h, nil
}

// AddComputer creates an automated contestant drawing from src, owned by
// this match, and registers it.
func (c *Controller) AddComputer(src rules.Source) (*Computer, error) {
	if src == nil {
		return nil, gameerr.New(gameerr.CodeInvalidConfiguration, "a random source is required")
	}
	comp := NewComputer(src)
	if err := c.RegisterContestant(comp); err != nil {
		return nil, err
	}
	return comp, nil
}

// SetMaxRounds configures the round limit. n must be positive and the match
// must not have started.
func (c *Controller) SetMaxRounds(n int) error {
	if n <= 0 {
		return gameerr.WithMetadata(gameerr.CodeInvalidConfiguration, "max rounds must be a positive integer",
			map[string]string{"max_rounds": strconv.Itoa(n)})
	}
	if c.started() {
		return gameerr.WithMetadata(gameerr.CodeInvalidConfiguration, "max rounds cannot change after the match has started",
			map[string]string{"max_rounds": strconv.Itoa(n)})
	}
	c.maxRounds = n
	return nil
}

// Select records a choice for the contestant at index. Humans use name;
// computers ignore it and draw their own.
func (c *Controller) Select(index int, name string) error {
	if index < 0 || index >= len(c.contestants) {
		return gameerr.WithMetadata(gameerr.CodeUnsupported, "no contestant at that position",
			map[string]string{"index": strconv.Itoa(index)})
	}
	if err := c.acceptingChoices(); err != nil {
		return err
	}

	switch ct := c.contestants[index].(type) {
	case *Human:
		return ct.SelectChoice(name, c.rules)
	case *Computer:
		return ct.SelectChoice(c.rules)
	}
	return nil
}

// SelectAutomated lets every automated contestant without a choice draw one.
func (c *Controller) SelectAutomated() error {
	if err := c.acceptingChoices(); err != nil {
		return err
	}
	for _, ct := range c.contestants {
		if comp, ok := ct.(*Computer); ok && !comp.HasChosen() {
			if err := comp.SelectChoice(c.rules); err != nil {
				return err
			}
		}
	}
	return nil
}

// ResolveRound decides the current round and credits the winner. Resolving
// an already resolved round returns the stored result without scoring again.
func (c *Controller) ResolveRound() (Result, error) {
	if len(c.contestants) < 2 {
		return Result{}, gameerr.WithMetadata(gameerr.CodeIncompleteRound, "two contestants are required",
			map[string]string{"registered": strconv.Itoa(len(c.contestants))})
	}
	if c.IsFinished() {
		return Result{}, gameerr.New(gameerr.CodeUnsupported, "match is finished")
	}

	a, aok := c.contestants[0].Choice()
	b, bok := c.contestants[1].Choice()
	if !aok || !bok {
		var waiting []string
		for _, ct := range c.contestants {
			if !ct.HasChosen() {
				waiting = append(waiting, ct.Name())
			}
		}
		return Result{}, gameerr.WithMetadata(gameerr.CodeIncompleteRound, "both contestants must choose first",
			map[string]string{"waiting_for": strings.Join(waiting, ",")})
	}

	for _, choice := range []rules.Choice{a, b} {
		if !c.rules.Contains(choice.Name()) {
			return Result{}, gameerr.WithMetadata(gameerr.CodeUnknownChoice, "choice was made under another rule set",
				map[string]string{
					"name":    choice.Name(),
					"rules":   c.rules.Name(),
					"allowed": strings.Join(c.rules.Domain(), ","),
				})
		}
	}

	if c.last.Outcome != OutcomeUnresolved {
		if c.last.Choices == [2]string{a.Name(), b.Name()} {
			return c.last, nil
		}
		return Result{}, gameerr.New(gameerr.CodeUnsupported, "round already resolved; advance before choosing again")
	}

	res := Resolve(c.rules, a, b)
	res.Round = c.round + 1
	if res.Outcome == OutcomeDecisive {
		winner := c.contestants[res.Winner]
		winner.RecordWin()
		res.WinnerID = winner.ID()
	}
	c.last = res
	c.history = append(c.history, res)

	c.logger.Printf("round_resolved match=%s round=%d choices=%s,%s outcome=%s winner=%q",
		c.id, res.Round, a.Name(), b.Name(), res.Outcome, c.winnerName(res))
	return res, nil
}

// AdvanceRound clears both choices and the stored outcome and moves to the
// next round. Advancing an unresolved round discards it; the counter still
// moves on.
func (c *Controller) AdvanceRound() error {
	if c.IsFinished() {
		return gameerr.New(gameerr.CodeUnsupported, "match is finished")
	}
	if c.last.Outcome == OutcomeUnresolved {
		c.logger.Printf("round_discarded match=%s round=%d", c.id, c.round+1)
	}

	for _, ct := range c.contestants {
		ct.ClearChoice()
	}
	c.last = Result{}
	c.round++

	if c.IsFinished() {
		c.logger.Printf("match_finished match=%s rounds=%d", c.id, c.round)
	}
	return nil
}

// IsFinished reports whether the round counter reached the configured
// maximum. It is false while max rounds is unset.
func (c *Controller) IsFinished() bool {
	return c.maxRounds > 0 && c.round >= c.maxRounds
}

// ResetMatch zeroes the round counter and every score and clears choices,
// outcome and history. Max rounds and the rule set are kept.
func (c *Controller) ResetMatch() {
	for _, ct := range c.contestants {
		st := ct.state()
		st.score = 0
		st.ClearChoice()
	}
	c.round = 0
	c.last = Result{}
	c.history = nil
	c.logger.Printf("match_reset match=%s", c.id)
}

// Outcome returns the outcome of the current round. It is unresolved unless
// both contestants hold a choice.
func (c *Controller) Outcome() Outcome {
	if !c.bothChosen() {
		return OutcomeUnresolved
	}
	return c.last.Outcome
}

// LastResult returns the current round's result and whether it is resolved.
func (c *Controller) LastResult() (Result, bool) {
	if c.Outcome() == OutcomeUnresolved {
		return Result{}, false
	}
	return c.last, true
}

// History returns every resolved round since the last reset.
func (c *Controller) History() []Result {
	out := make([]Result, len(c.history))
	copy(out, c.history)
	return out
}

// State derives the match state.
func (c *Controller) State() State {
	switch {
	case c.maxRounds == 0:
		return StateConfiguring
	case c.IsFinished():
		return StateFinished
	case c.Outcome() != OutcomeUnresolved:
		return StateResolved
	case !c.started():
		return StateReady
	default:
		return StateAwaitingChoices
	}
}

func (c *Controller) acceptingChoices() error {
	if c.IsFinished() {
		return gameerr.New(gameerr.CodeUnsupported, "match is finished")
	}
	if c.Outcome() != OutcomeUnresolved {
		return gameerr.New(gameerr.CodeUnsupported, "round already resolved; advance before choosing again")
	}
	return nil
}

// started reports whether any round is under way or behind us.
func (c *Controller) started() bool {
	if c.round > 0 {
		return true
	}
	for _, ct := range c.contestants {
		if ct.HasChosen() {
			return true
		}
	}
	return false
}

func (c *Controller) bothChosen() bool {
	if len(c.contestants) < 2 {
		return false
	}
	return c.contestants[0].HasChosen() && c.contestants[1].HasChosen()
}

func (c *Controller) winnerName(res Result) string {
	if res.Outcome != OutcomeDecisive {
		return ""
	}
	return c.contestants[res.Winner].Name()
}
