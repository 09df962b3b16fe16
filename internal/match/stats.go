package match

import (
	"github.com/shopspring/decimal"
)

// ratePlaces is the number of decimal places kept in rates.
const ratePlaces = 4

// ContestantStats summarizes one contestant's resolved rounds.
type ContestantStats struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Wins          int             `json:"wins"`
	Losses        int             `json:"losses"`
	WinRate       decimal.Decimal `json:"winRate"`
	LongestStreak int             `json:"longestStreak"`
}

// Stats summarizes the resolved rounds since the last reset.
type Stats struct {
	Resolved    int               `json:"resolved"`
	Draws       int               `json:"draws"`
	DrawRate    decimal.Decimal   `json:"drawRate"`
	Contestants []ContestantStats `json:"contestants"`
}

// Stats derives win and draw rates from the match history.
func (c *Controller) Stats() Stats {
	st := Stats{
		Resolved:    len(c.history),
		DrawRate:    decimal.Zero,
		Contestants: make([]ContestantStats, len(c.contestants)),
	}
	for i, ct := range c.contestants {
		st.Contestants[i] = ContestantStats{ID: ct.ID(), Name: ct.Name(), WinRate: decimal.Zero}
	}

	streak := make([]int, len(c.contestants))
	for _, res := range c.history {
		if res.Outcome == OutcomeDraw {
			st.Draws++
			for i := range streak {
				streak[i] = 0
			}
			continue
		}
		for i := range st.Contestants {
			cs := &st.Contestants[i]
			if i == res.Winner {
				cs.Wins++
				streak[i]++
				if streak[i] > cs.LongestStreak {
					cs.LongestStreak = streak[i]
				}
			} else {
				cs.Losses++
				streak[i] = 0
			}
		}
	}

	if st.Resolved == 0 {
		return st
	}
	total := decimal.NewFromInt(int64(st.Resolved))
	st.DrawRate = decimal.NewFromInt(int64(st.Draws)).DivRound(total, ratePlaces)
	for i := range st.Contestants {
		cs := &st.Contestants[i]
		cs.WinRate = decimal.NewFromInt(int64(cs.Wins)).DivRound(total, ratePlaces)
	}
	return st
}
