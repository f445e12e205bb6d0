package board

import "sort"

// MinRun is the shortest run of equal tokens that counts as a match.
const MinRun = 3

// MatchSet is the set of cells taking part in at least one run.
// A cell in both a horizontal and a vertical run appears once.
type MatchSet map[Cell]struct{}

// Len returns the number of matched cells.
func (m MatchSet) Len() int {
	return len(m)
}

// Empty reports whether nothing matched.
func (m MatchSet) Empty() bool {
	return len(m) == 0
}

// Contains reports whether c is matched.
func (m MatchSet) Contains(c Cell) bool {
	_, ok := m[c]
	return ok
}

// Cells returns the matched cells ordered by row then column.
func (m MatchSet) Cells() []Cell {
	cells := make([]Cell, 0, len(m))
	for c := range m {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})
	return cells
}

// Scan returns every active cell belonging to a horizontal or vertical run
// of at least MinRun equal, non-empty tokens.
//
// Each cell probes forward only (increasing column, increasing row). A run
// anchored at any cell is still found because every cell acts as an origin,
// and the set semantics collapse overlaps. Disabled and empty cells stop a
// probe; runs are never bridged across them.
func Scan(g *Grid) MatchSet {
	matched := make(MatchSet)

	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			origin := C(col, row)
			if !g.active(origin) {
				continue
			}
			t := g.Token(origin)
			if t == None {
				continue
			}

			if run := probe(g, origin, t, 1, 0); len(run) >= MinRun-1 {
				matched.add(origin, run)
			}
			if run := probe(g, origin, t, 0, 1); len(run) >= MinRun-1 {
				matched.add(origin, run)
			}
		}
	}

	return matched
}

// HasMatch reports whether any run exists. Equivalent to !Scan(g).Empty().
func HasMatch(g *Grid) bool {
	return !Scan(g).Empty()
}

// probe collects the contiguous cells after origin in direction (dc, dr)
// holding token t. The origin itself is not included.
func probe(g *Grid, origin Cell, t Token, dc, dr int) []Cell {
	var run []Cell
	for c := origin.Add(dc, dr); g.active(c) && g.Token(c) == t; c = c.Add(dc, dr) {
		run = append(run, c)
	}
	return run
}

func (m MatchSet) add(origin Cell, run []Cell) {
	m[origin] = struct{}{}
	for _, c := range run {
		m[c] = struct{}{}
	}
}
