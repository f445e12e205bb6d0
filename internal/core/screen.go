package core

import (
	"strings"
)

// Cell is one character position on the screen.
type Cell struct {
	Rune    rune
	Color   Color
	Reverse bool // cursor highlight
}

var blankCell = Cell{Rune: ' '}

// Screen is a fixed-size grid of cells that games draw into.
// The platform converts it to styled terminal output once per frame.
// Coordinates outside the screen are ignored on write and read as blanks.
type Screen struct {
	bounds Rect
	cells  []Cell // row-major, width*height
}

// NewScreen returns a blank screen of width x height cells.
func NewScreen(width, height int) *Screen {
	s := &Screen{}
	s.reset(width, height)
	return s
}

func (s *Screen) reset(width, height int) {
	s.bounds = NewRect(0, 0, max(width, 0), max(height, 0))
	s.cells = make([]Cell, s.bounds.W*s.bounds.H)
	s.Clear()
}

// Width returns the number of columns.
func (s *Screen) Width() int { return s.bounds.W }

// Height returns the number of rows.
func (s *Screen) Height() int { return s.bounds.H }

// Resize changes the dimensions. The overlapping top-left region keeps its
// content; everything else is blank.
func (s *Screen) Resize(width, height int) {
	if width == s.bounds.W && height == s.bounds.H {
		return
	}

	old := *s
	s.reset(width, height)
	keep := NewRect(0, 0, min(old.bounds.W, s.bounds.W), min(old.bounds.H, s.bounds.H))
	for y := range keep.H {
		copy(s.line(y)[:keep.W], old.line(y)[:keep.W])
	}
}

// line returns row y as a slice into the cell buffer.
func (s *Screen) line(y int) []Cell {
	return s.cells[y*s.bounds.W : (y+1)*s.bounds.W]
}

// Clear blanks every cell, dropping colors and highlights.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = blankCell
	}
}

// Set writes r in the default color.
func (s *Screen) Set(x, y int, r rune) {
	s.SetCell(x, y, Cell{Rune: r})
}

// SetColored writes r in color c.
func (s *Screen) SetColored(x, y int, r rune, c Color) {
	s.SetCell(x, y, Cell{Rune: r, Color: c})
}

// SetCell replaces the cell at (x, y).
func (s *Screen) SetCell(x, y int, cell Cell) {
	if s.bounds.Contains(x, y) {
		s.cells[y*s.bounds.W+x] = cell
	}
}

// Get returns the rune at (x, y).
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at (x, y).
func (s *Screen) GetCell(x, y int) Cell {
	if !s.bounds.Contains(x, y) {
		return blankCell
	}
	return s.cells[y*s.bounds.W+x]
}

// DrawText writes text left to right from (x, y), clipped to the screen.
func (s *Screen) DrawText(x, y int, text string) {
	s.DrawTextColored(x, y, text, ColorDefault)
}

// DrawTextColored writes text in color c. Each rune takes one column.
func (s *Screen) DrawTextColored(x, y int, text string, c Color) {
	for _, r := range text {
		s.SetColored(x, y, r, c)
		x++
	}
}

// DrawTextCentered writes text horizontally centered on row y.
func (s *Screen) DrawTextCentered(y int, text string) {
	s.DrawTextCenteredColored(y, text, ColorDefault)
}

// DrawTextCenteredColored writes colored text horizontally centered on row y.
func (s *Screen) DrawTextCenteredColored(y int, text string, c Color) {
	s.DrawTextColored((s.bounds.W-len([]rune(text)))/2, y, text, c)
}

// DrawRect fills r with the rune fill.
func (s *Screen) DrawRect(r Rect, fill rune) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.Set(x, y, fill)
		}
	}
}

// DrawBox outlines r with single-line box-drawing runes.
func (s *Screen) DrawBox(r Rect, c Color) {
	left, top := r.X, r.Y
	right, bottom := r.Right()-1, r.Bottom()-1

	for x := left + 1; x < right; x++ {
		s.SetColored(x, top, '─', c)
		s.SetColored(x, bottom, '─', c)
	}
	for y := top + 1; y < bottom; y++ {
		s.SetColored(left, y, '│', c)
		s.SetColored(right, y, '│', c)
	}

	s.SetColored(left, top, '┌', c)
	s.SetColored(right, top, '┐', c)
	s.SetColored(left, bottom, '└', c)
	s.SetColored(right, bottom, '┘', c)
}

// Highlight sets reverse video on length cells starting at (x, y).
// Cells past the edge are skipped.
func (s *Screen) Highlight(x, y, length int) {
	for i := range length {
		if s.bounds.Contains(x+i, y) {
			s.cells[y*s.bounds.W+x+i].Reverse = true
		}
	}
}

// String returns the runes of every row joined by newlines.
func (s *Screen) String() string {
	rows := make([]string, s.bounds.H)
	for y := range rows {
		rows[y] = s.Row(y)
	}
	return strings.Join(rows, "\n")
}

// Row returns row y as plain text. Rows off the screen are all spaces.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.bounds.H {
		return strings.Repeat(" ", s.bounds.W)
	}
	var sb strings.Builder
	sb.Grow(s.bounds.W)
	for _, c := range s.line(y) {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}
