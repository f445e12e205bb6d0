package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-match3/internal/core"
)

// palette holds the terminal color code of every core.Color.
// ColorDefault keeps the terminal's own foreground.
var palette = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

// cellStyle returns the lipgloss style for a cell's color and highlight.
func cellStyle(c core.Cell) lipgloss.Style {
	style := lipgloss.NewStyle()
	if code, ok := palette[c.Color]; ok {
		style = style.Foreground(lipgloss.Color(code))
	}
	if c.Reverse {
		style = style.Reverse(true)
	}
	return style
}

// sameLook reports whether a and b render with the same style.
func sameLook(a, b core.Cell) bool {
	return a.Color == b.Color && a.Reverse == b.Reverse
}

// RenderScreen turns a screen into styled terminal text, one line per row.
// Neighbouring cells that look the same are rendered as one styled run.
func RenderScreen(s *core.Screen) string {
	lines := make([]string, s.Height())
	for y := range lines {
		var line, run strings.Builder
		var runCell core.Cell

		flush := func() {
			if run.Len() > 0 {
				line.WriteString(cellStyle(runCell).Render(run.String()))
				run.Reset()
			}
		}

		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if run.Len() > 0 && !sameLook(cell, runCell) {
				flush()
			}
			if run.Len() == 0 {
				runCell = cell
			}
			run.WriteRune(cell.Rune)
		}
		flush()
		lines[y] = line.String()
	}
	return strings.Join(lines, "\n")
}
