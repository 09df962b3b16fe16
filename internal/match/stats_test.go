package match

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/MJE43/rps-replay-go/internal/rules"
)

func TestStatsEmpty(t *testing.T) {
	c, _, _ := newHumanMatch(t, rules.PresetRPS, 3)
	st := c.Stats()

	if st.Resolved != 0 || st.Draws != 0 {
		t.Errorf("unexpected counts %+v", st)
	}
	if !st.DrawRate.IsZero() {
		t.Errorf("DrawRate = %s, want 0", st.DrawRate)
	}
	for _, cs := range st.Contestants {
		if !cs.WinRate.IsZero() {
			t.Errorf("%s WinRate = %s, want 0", cs.Name, cs.WinRate)
		}
	}
}

func TestStatsRates(t *testing.T) {
	c, _, _ := newHumanMatch(t, rules.PresetRPS, 5)
	for _, p := range [][2]string{
		{"rock", "scissors"},
		{"paper", "paper"},
		{"scissors", "rock"},
	} {
		play(t, c, p[0], p[1])
		_ = c.AdvanceRound()
	}

	st := c.Stats()
	if st.Resolved != 3 || st.Draws != 1 {
		t.Fatalf("Resolved/Draws = %d/%d, want 3/1", st.Resolved, st.Draws)
	}
	third := decimal.RequireFromString("0.3333")
	if !st.DrawRate.Equal(third) {
		t.Errorf("DrawRate = %s, want %s", st.DrawRate, third)
	}
	for _, cs := range st.Contestants {
		if cs.Wins != 1 || cs.Losses != 1 {
			t.Errorf("%s wins/losses = %d/%d, want 1/1", cs.Name, cs.Wins, cs.Losses)
		}
		if !cs.WinRate.Equal(third) {
			t.Errorf("%s WinRate = %s, want %s", cs.Name, cs.WinRate, third)
		}
	}
}

func TestStatsStreaks(t *testing.T) {
	c, _, _ := newHumanMatch(t, rules.PresetRPS, 6)
	for _, p := range [][2]string{
		{"rock", "scissors"},
		{"paper", "rock"},
		{"rock", "rock"},
		{"scissors", "paper"},
		{"rock", "paper"},
	} {
		play(t, c, p[0], p[1])
		_ = c.AdvanceRound()
	}

	st := c.Stats()
	alice, bob := st.Contestants[0], st.Contestants[1]
	if alice.LongestStreak != 2 {
		t.Errorf("Alice LongestStreak = %d, want 2", alice.LongestStreak)
	}
	if bob.LongestStreak != 1 {
		t.Errorf("Bob LongestStreak = %d, want 1", bob.LongestStreak)
	}
	if !alice.WinRate.Equal(decimal.RequireFromString("0.6")) {
		t.Errorf("Alice WinRate = %s, want 0.6", alice.WinRate)
	}
}
