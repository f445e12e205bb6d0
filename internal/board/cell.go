package board

import "fmt"

// Cell is a (column, row) grid position.
// Row 0 is the bottom row; gravity pulls tokens toward it.
type Cell struct {
	Col int
	Row int
}

// C is a convenience constructor for Cell.
func C(col, row int) Cell {
	return Cell{Col: col, Row: row}
}

// String returns a string representation of the cell.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Add returns the cell offset by (dc, dr).
func (c Cell) Add(dc, dr int) Cell {
	return Cell{Col: c.Col + dc, Row: c.Row + dr}
}

// Manhattan returns the Manhattan distance to another cell.
func (c Cell) Manhattan(other Cell) int {
	dc := c.Col - other.Col
	dr := c.Row - other.Row
	if dc < 0 {
		dc = -dc
	}
	if dr < 0 {
		dr = -dr
	}
	return dc + dr
}

// Adjacent reports whether a and b share an edge.
// SwapTile does not require adjacency; callers that want the classic
// rule check it with this helper before swapping.
func Adjacent(a, b Cell) bool {
	return a.Manhattan(b) == 1
}

// CellState is the content of one grid position.
type CellState struct {
	Disabled bool
	Token    Token
}

// Empty reports whether the cell holds no token.
func (s CellState) Empty() bool {
	return s.Token == None
}
