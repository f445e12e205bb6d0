package board

import "fmt"

// Grid is a fixed Columns x Rows store of tokens with a set of permanently
// disabled cells. Cells are stored in row-major order: index = row*cols + col.
// Disabled cells always hold None and are never written.
type Grid struct {
	cols     int
	rows     int
	tokens   []Token
	disabled []bool
}

// NewGrid creates an empty grid. The disabled set is fixed for the lifetime
// of the grid. Duplicate disabled coordinates are tolerated.
func NewGrid(columns, rows int, disabled []Cell) (*Grid, error) {
	if columns <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: grid size %dx%d", ErrInvalidConfig, columns, rows)
	}

	g := &Grid{
		cols:     columns,
		rows:     rows,
		tokens:   make([]Token, columns*rows),
		disabled: make([]bool, columns*rows),
	}

	for _, c := range disabled {
		if !g.InBounds(c) {
			return nil, fmt.Errorf("%w: disabled cell %v", ErrOutOfBounds, c)
		}
		g.disabled[g.index(c)] = true
	}

	return g, nil
}

// index converts a cell to a flat array index.
func (g *Grid) index(c Cell) int {
	return c.Row*g.cols + c.Col
}

// Columns returns the grid width.
func (g *Grid) Columns() int {
	return g.cols
}

// Rows returns the grid height.
func (g *Grid) Rows() int {
	return g.rows
}

// InBounds returns true if the cell is within the grid boundaries.
func (g *Grid) InBounds(c Cell) bool {
	return c.Col >= 0 && c.Col < g.cols && c.Row >= 0 && c.Row < g.rows
}

// Get returns the state of a cell.
func (g *Grid) Get(c Cell) (CellState, error) {
	if !g.InBounds(c) {
		return CellState{}, fmt.Errorf("%w: %v", ErrOutOfBounds, c)
	}
	i := g.index(c)
	return CellState{Disabled: g.disabled[i], Token: g.tokens[i]}, nil
}

// Set writes a token into an active cell.
// Writing to a disabled cell is a programming error.
func (g *Grid) Set(c Cell, t Token) error {
	if !g.InBounds(c) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, c)
	}
	i := g.index(c)
	if g.disabled[i] {
		return fmt.Errorf("%w: %v is disabled", ErrInvalidCell, c)
	}
	g.tokens[i] = t
	return nil
}

// IsDisabled reports whether the cell is permanently excluded from play.
// Out-of-bounds cells are not disabled; they do not exist.
func (g *Grid) IsDisabled(c Cell) bool {
	return g.InBounds(c) && g.disabled[g.index(c)]
}

// Token returns the token at c, or None for out-of-bounds and disabled cells.
func (g *Grid) Token(c Cell) Token {
	if !g.InBounds(c) {
		return None
	}
	return g.tokens[g.index(c)]
}

// active reports whether c is in bounds and not disabled.
func (g *Grid) active(c Cell) bool {
	return g.InBounds(c) && !g.disabled[g.index(c)]
}

// put writes without checks. Callers guarantee c is active.
func (g *Grid) put(c Cell, t Token) {
	g.tokens[g.index(c)] = t
}

// ActiveCells returns every active cell, ordered by row then column.
func (g *Grid) ActiveCells() []Cell {
	cells := make([]Cell, 0, len(g.tokens))
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			c := C(col, row)
			if g.active(c) {
				cells = append(cells, c)
			}
		}
	}
	return cells
}

// DisabledCells returns every disabled cell, ordered by row then column.
func (g *Grid) DisabledCells() []Cell {
	var cells []Cell
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			c := C(col, row)
			if g.disabled[g.index(c)] {
				cells = append(cells, c)
			}
		}
	}
	return cells
}

// EmptyCount returns the number of active cells holding None.
func (g *Grid) EmptyCount() int {
	count := 0
	for i, t := range g.tokens {
		if !g.disabled[i] && t == None {
			count++
		}
	}
	return count
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	tokens := make([]Token, len(g.tokens))
	copy(tokens, g.tokens)
	disabled := make([]bool, len(g.disabled))
	copy(disabled, g.disabled)
	return &Grid{
		cols:     g.cols,
		rows:     g.rows,
		tokens:   tokens,
		disabled: disabled,
	}
}

// Equal returns true if two grids have the same dimensions, disabled set
// and tokens.
func (g *Grid) Equal(other *Grid) bool {
	if g.cols != other.cols || g.rows != other.rows {
		return false
	}
	for i := range g.tokens {
		if g.tokens[i] != other.tokens[i] || g.disabled[i] != other.disabled[i] {
			return false
		}
	}
	return true
}
