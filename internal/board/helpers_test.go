package board

import "testing"

// gridFromRows builds a grid from rows written top to bottom, so the last
// string is row 0. '.' is an empty active cell, '#' a disabled cell and
// letters are tokens (A=1, B=2, ...).
func gridFromRows(t *testing.T, rows ...string) *Grid {
	t.Helper()

	height := len(rows)
	width := len(rows[0])

	var disabled []Cell
	for i, line := range rows {
		if len(line) != width {
			t.Fatalf("row %d has width %d, want %d", i, len(line), width)
		}
		for col, ch := range line {
			if ch == '#' {
				disabled = append(disabled, C(col, height-1-i))
			}
		}
	}

	g, err := NewGrid(width, height, disabled)
	if err != nil {
		t.Fatalf("NewGrid() failed: %v", err)
	}

	for i, line := range rows {
		for col, ch := range line {
			if ch == '#' || ch == '.' {
				continue
			}
			if err := g.Set(C(col, height-1-i), Token(ch-'A'+1)); err != nil {
				t.Fatalf("Set() failed: %v", err)
			}
		}
	}
	return g
}

// rowsOf renders a grid back into the gridFromRows notation.
func rowsOf(g *Grid) []string {
	out := make([]string, g.Rows())
	for row := 0; row < g.Rows(); row++ {
		line := make([]byte, g.Columns())
		for col := 0; col < g.Columns(); col++ {
			c := C(col, row)
			switch {
			case g.IsDisabled(c):
				line[col] = '#'
			case g.Token(c) == None:
				line[col] = '.'
			default:
				line[col] = byte('A' + g.Token(c) - 1)
			}
		}
		out[g.Rows()-1-row] = string(line)
	}
	return out
}

// scriptedTokens hands out a fixed sequence, cycling when exhausted.
type scriptedTokens struct {
	seq  []Token
	used int
}

func (s *scriptedTokens) Next() Token {
	t := s.seq[s.used%len(s.seq)]
	s.used++
	return t
}

func equalRows(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// tok converts a layout letter to its token.
func tok(ch byte) Token {
	return Token(ch - 'A' + 1)
}
