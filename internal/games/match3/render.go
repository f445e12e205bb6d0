package match3

import (
	"fmt"

	"github.com/vovakirdan/tui-match3/internal/board"
	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
)

const (
	cellWidth = 3 // Glyph plus a space on each side
	hudHeight = 3

	holeGlyph = '·'
)

// Fallback palette for tokens without a usable color.
var defaultPalette = []core.Color{
	core.ColorBrightRed,
	core.ColorBrightGreen,
	core.ColorBrightBlue,
	core.ColorBrightYellow,
	core.ColorBrightMagenta,
	core.ColorBrightCyan,
	core.ColorOrange,
	core.ColorWhite,
}

type tokenStyle struct {
	glyph rune
	color core.Color
}

func buildStyles(tokens []config.TokenConfig) []tokenStyle {
	styles := make([]tokenStyle, len(tokens))
	for i, t := range tokens {
		s := tokenStyle{glyph: '?', color: defaultPalette[i%len(defaultPalette)]}
		for _, r := range t.Glyph {
			s.glyph = r
			break
		}
		if c, ok := core.ParseColor(t.Color); ok {
			s.color = c
		}
		styles[i] = s
	}
	return styles
}

func (g *Game) style(t board.Token) tokenStyle {
	idx := int(t) - 1
	if idx < 0 || idx >= len(g.styles) {
		return tokenStyle{glyph: rune('0' + int(t)%10), color: core.ColorDefault}
	}
	return g.styles[idx]
}

// boardSize returns the framed board size in screen cells.
func (g *Game) boardSize() (w, h int) {
	cols, rows := g.layout.Size()
	return cols*cellWidth + 2, rows + 2
}

func (g *Game) checkScreenSize() {
	w, h := g.boardSize()
	minW := max(w, 30)
	minH := h + hudHeight
	g.tooSmall = g.runtime.ScreenW < minW || g.runtime.ScreenH < minH
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.board == nil {
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW, boardH := g.boardSize()
	boardX := (dst.Width() - boardW) / 2
	boardY := hudHeight
	if spare := dst.Height() - hudHeight - boardH; spare > 1 {
		boardY += spare / 2
	}

	g.renderHUD(dst, boardX, boardY, boardW)
	g.renderBoard(dst, boardX, boardY)
	g.renderOverlays(dst, core.NewRect(boardX, boardY, boardW, boardH))
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	w, h := g.boardSize()
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", max(w, 30), h+hudHeight))
}

// renderHUD draws the title, counters and the last swap outcome above the board.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardY, boardW int) {
	top := boardY - hudHeight
	dst.DrawTextCenteredColored(top, "MATCH-3 · "+g.Title(), core.ColorBrightWhite)

	dst.DrawText(boardX, top+1, fmt.Sprintf("Score: %d", g.board.Score()))

	moves := fmt.Sprintf("Moves: %d", g.board.MovesLeft())
	movesColor := core.ColorDefault
	if g.board.MovesLeft() <= 3 {
		movesColor = core.ColorBrightRed
	}
	dst.DrawTextColored(boardX+boardW-len(moves), top+1, moves, movesColor)

	if msg, color := g.outcomeText(); msg != "" {
		dst.DrawTextCenteredColored(top+2, msg, color)
	}
}

// outcomeText describes the last swap for the HUD.
func (g *Game) outcomeText() (string, core.Color) {
	if g.last == nil {
		return "", core.ColorDefault
	}
	ev := g.last
	if ev.Err != nil {
		// Errors only reach the log
		return "", core.ColorDefault
	}
	switch ev.Result.Outcome {
	case board.Resolved:
		msg := fmt.Sprintf("+%d", ev.Result.ScoreDelta)
		if n := len(ev.Result.Passes); n > 1 {
			msg += fmt.Sprintf(" (%d cascades)", n)
		}
		return msg, core.ColorBrightGreen
	case board.NoMatch:
		return "No match", core.ColorYellow
	default:
		return "Game over", core.ColorRed
	}
}

// screenPos returns the screen column of the glyph and the screen row for c.
func (g *Game) screenPos(c board.Cell, boardX, boardY int) (x, y int) {
	x = boardX + 1 + c.Col*cellWidth + cellWidth/2
	y = boardY + 1 + (g.board.Rows() - 1 - c.Row)
	return x, y
}

func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	boardW, boardH := g.boardSize()
	dst.DrawBox(core.NewRect(boardX, boardY, boardW, boardH), core.ColorGray)

	for row := 0; row < g.board.Rows(); row++ {
		for col := 0; col < g.board.Columns(); col++ {
			c := board.C(col, row)
			x, y := g.screenPos(c, boardX, boardY)

			switch {
			case g.board.IsDisabled(c):
				dst.SetColored(x, y, holeGlyph, core.ColorGray)
			case g.board.Token(c) != board.None:
				s := g.style(g.board.Token(c))
				dst.SetColored(x, y, s.glyph, s.color)
			}
		}
	}

	if g.hasSelection {
		x, y := g.screenPos(g.selected, boardX, boardY)
		dst.SetColored(x-1, y, '[', core.ColorBrightWhite)
		dst.SetColored(x+1, y, ']', core.ColorBrightWhite)
	}
	if !g.board.IsOver() {
		x, y := g.screenPos(g.cursor, boardX, boardY)
		dst.Highlight(x-1, y, cellWidth)
	}
}

func (g *Game) renderOverlays(dst *core.Screen, frame core.Rect) {
	switch {
	case g.board.IsOver():
		g.renderBanner(dst, frame, core.ColorBrightRed,
			"GAME OVER",
			fmt.Sprintf("Final score: %d", g.board.Score()),
			"R restart  B menu")
	case g.paused:
		g.renderBanner(dst, frame, core.ColorBrightYellow,
			"PAUSED",
			"P to resume")
	}
}

// renderBanner draws a boxed message centered over frame.
func (g *Game) renderBanner(dst *core.Screen, frame core.Rect, color core.Color, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	width += 4
	height := len(lines) + 2

	cx, cy := frame.Center()
	box := core.NewRect(cx-width/2, cy-height/2, width, height)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, color)
	for i, l := range lines {
		lx := box.X + (width-len([]rune(l)))/2
		c := core.ColorDefault
		if i == 0 {
			c = color
		}
		dst.DrawTextColored(lx, box.Y+1+i, l, c)
	}
}
