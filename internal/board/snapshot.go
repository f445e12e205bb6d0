package board

// Snapshot captures the observable board state for renderers and
// determinism tests. Tokens is indexed [row][col]; disabled cells hold None.
type Snapshot struct {
	Columns   int
	Rows      int
	Tokens    [][]Token
	Disabled  []Cell
	Score     int
	MovesLeft int
	State     State
}

// Snapshot returns a copy of the current board state.
func (b *Board) Snapshot() Snapshot {
	tokens := make([][]Token, b.grid.rows)
	for row := range tokens {
		tokens[row] = make([]Token, b.grid.cols)
		for col := range tokens[row] {
			tokens[row][col] = b.grid.Token(C(col, row))
		}
	}

	return Snapshot{
		Columns:   b.grid.cols,
		Rows:      b.grid.rows,
		Tokens:    tokens,
		Disabled:  b.grid.DisabledCells(),
		Score:     b.score,
		MovesLeft: b.moves,
		State:     b.state,
	}
}
