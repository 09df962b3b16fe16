package match

import (
	"fmt"
	"strings"
)

// DescribeRound renders both choices and the outcome of the current round.
func (c *Controller) DescribeRound() string {
	res, ok := c.LastResult()
	if !ok {
		return "Round has not been played"
	}

	var b strings.Builder
	for _, ct := range c.contestants {
		choice, _ := ct.Choice()
		fmt.Fprintf(&b, "%s chose %s.\n", ct.Name(), choice)
	}
	if res.Outcome == OutcomeDraw {
		fmt.Fprintf(&b, "Round %d was a draw", res.Round)
	} else {
		fmt.Fprintf(&b, "%s won round %d", c.winnerName(res), res.Round)
	}
	return b.String()
}

// DescribeScores renders the cumulative scores.
func (c *Controller) DescribeScores() string {
	lines := []string{fmt.Sprintf("After %s:", plural(c.round, "round"))}
	for _, ct := range c.contestants {
		lines = append(lines, fmt.Sprintf("%s has scored %s", ct.Name(), plural(ct.Score(), "point")))
	}
	return strings.Join(lines, "\n")
}

// DescribeMatchWinner names the contestant with the strictly higher score,
// or reports a drawn match.
func (c *Controller) DescribeMatchWinner() string {
	if len(c.contestants) < 2 {
		return "Match needs two contestants"
	}
	first, second := c.contestants[0], c.contestants[1]
	switch {
	case first.Score() > second.Score():
		return fmt.Sprintf("%s is the winner", first.Name())
	case second.Score() > first.Score():
		return fmt.Sprintf("%s is the winner", second.Name())
	default:
		return "Match is drawn"
	}
}

// ContestantView is the presentation form of a contestant.
type ContestantView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
	Automated bool   `json:"automated"`
	Choice    string `json:"choice,omitempty"`
}

// Snapshot is a read-only view of a match for presentation layers.
type Snapshot struct {
	MatchID      string           `json:"matchId"`
	RuleSet      string           `json:"ruleSet"`
	State        string           `json:"state"`
	Round        int              `json:"round"`
	MaxRounds    int              `json:"maxRounds"`
	Contestants  []ContestantView `json:"contestants"`
	Outcome      string           `json:"outcome"`
	WinnerID     string           `json:"winnerId,omitempty"`
	RoundSummary string           `json:"roundSummary,omitempty"`
}

// Snapshot captures the current match state.
func (c *Controller) Snapshot() Snapshot {
	snap := Snapshot{
		MatchID:     c.id,
		RuleSet:     c.rules.Name(),
		State:       c.State().String(),
		Round:       c.round,
		MaxRounds:   c.maxRounds,
		Contestants: make([]ContestantView, 0, len(c.contestants)),
		Outcome:     c.Outcome().String(),
	}
	for _, ct := range c.contestants {
		view := ContestantView{
			ID:        ct.ID(),
			Name:      ct.Name(),
			Score:     ct.Score(),
			Automated: ct.Automated(),
		}
		if choice, ok := ct.Choice(); ok {
			view.Choice = choice.Name()
		}
		snap.Contestants = append(snap.Contestants, view)
	}
	if res, ok := c.LastResult(); ok {
		snap.WinnerID = res.WinnerID
		snap.RoundSummary = c.DescribeRound()
	}
	return snap
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
