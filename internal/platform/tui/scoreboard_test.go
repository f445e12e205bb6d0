package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestScoreboardStartsOnLayout(t *testing.T) {
	store := openMemoryStore(t)
	for _, score := range []int{12, 40, 25} {
		if _, err := store.SaveScore("match3_mini", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, 100, 30, "match3_mini")
	if got := m.layouts[m.current].ID; got != "match3_mini" {
		t.Fatalf("scoreboard opened on %q, want match3_mini", got)
	}
	if len(m.scores) != 3 || m.scores[0].Score != 40 {
		t.Errorf("scores = %+v, want 40 first", m.scores)
	}

	line := m.statsLine()
	for _, want := range []string{"Games: 3", "Best: 40", "Last: 25"} {
		if !strings.Contains(line, want) {
			t.Errorf("statsLine() = %q, want it to contain %q", line, want)
		}
	}
}

func TestScoreboardCyclesLayouts(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 30, "")
	if len(m.layouts) < 2 {
		t.Skip("needs at least two registered layouts")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.current != 1 {
		t.Errorf("current = %d after tab, want 1", m.current)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	next, _ = next.(ScoreboardModel).Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	if m.current != len(m.layouts)-1 {
		t.Errorf("current = %d, want wrap to %d", m.current, len(m.layouts)-1)
	}

	if m.statsLine() != "No games played" {
		t.Errorf("statsLine() without a store = %q", m.statsLine())
	}
}
