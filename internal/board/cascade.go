package board

// Cascade summarizes one resolution run.
type Cascade struct {
	Cleared int   // Total cells cleared across all passes
	Passes  []int // Cells cleared by each pass, in order
}

// PassCount returns how many clearing passes ran.
func (c Cascade) PassCount() int {
	return len(c.Passes)
}

// Resolver clears matches and refills the grid until no run remains.
type Resolver struct {
	Tokens TokenSource
}

// NewResolver creates a resolver drawing refill tokens from src.
func NewResolver(src TokenSource) *Resolver {
	return &Resolver{Tokens: src}
}

// Resolve repeats scan, clear, gravity and refill until the grid is stable.
// A grid with no match is left untouched and yields a zero Cascade.
//
// There is no iteration cap: every pass replaces matched cells with fresh
// tokens, and the loop ends as soon as the random refill lands on a stable
// arrangement.
func (r *Resolver) Resolve(g *Grid) Cascade {
	var result Cascade

	for {
		matched := Scan(g)
		if matched.Empty() {
			return result
		}

		for c := range matched {
			g.put(c, None)
		}
		result.Cleared += matched.Len()
		result.Passes = append(result.Passes, matched.Len())

		Collapse(g)
		r.Refill(g)
	}
}

// Collapse applies gravity to every column. Disabled cells split a column
// into independent segments; tokens fall toward row 0 within their segment
// and never pass through a disabled cell.
func Collapse(g *Grid) {
	for col := 0; col < g.cols; col++ {
		write := 0
		for row := 0; row < g.rows; row++ {
			c := C(col, row)
			if g.disabled[g.index(c)] {
				// Segment boundary: next segment starts above it
				write = row + 1
				continue
			}
			t := g.tokens[g.index(c)]
			if t == None {
				continue
			}
			if row != write {
				g.put(C(col, write), t)
				g.put(c, None)
			}
			write++
		}
	}
}

// Refill assigns a fresh token to every empty active cell and returns the
// number of cells filled. After Collapse the empties sit at the top of each
// segment, so refills enter from above.
func (r *Resolver) Refill(g *Grid) int {
	filled := 0
	for col := 0; col < g.cols; col++ {
		for row := 0; row < g.rows; row++ {
			c := C(col, row)
			if g.active(c) && g.Token(c) == None {
				g.put(c, r.Tokens.Next())
				filled++
			}
		}
	}
	return filled
}
