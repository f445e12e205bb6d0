package match3

import (
	"github.com/vovakirdan/tui-match3/internal/board"
	"github.com/vovakirdan/tui-match3/internal/core"
)

// handleInput moves the cursor and applies selection actions.
func (g *Game) handleInput(in core.InputFrame) {
	switch {
	case in.Has(core.ActionUp):
		g.moveCursor(0, 1) // row 0 is the bottom of the board
	case in.Has(core.ActionDown):
		g.moveCursor(0, -1)
	case in.Has(core.ActionLeft):
		g.moveCursor(-1, 0)
	case in.Has(core.ActionRight):
		g.moveCursor(1, 0)
	}

	if in.Has(core.ActionCancel) {
		g.hasSelection = false
	}
	if in.Has(core.ActionSelect) {
		g.Select(g.cursor)
	}
}

func (g *Game) moveCursor(dc, dr int) {
	g.cursor = board.C(
		core.Clamp(g.cursor.Col+dc, 0, g.board.Columns()-1),
		core.Clamp(g.cursor.Row+dr, 0, g.board.Rows()-1),
	)
}

// Select applies a selection at c:
//   - with nothing selected, c becomes the selection;
//   - selecting the selected cell again does nothing;
//   - an adjacent cell is swapped with the selection, which is then cleared
//     whatever the outcome;
//   - any other cell replaces the selection.
//
// Disabled and out-of-bounds cells are ignored.
func (g *Game) Select(c board.Cell) {
	if g.board == nil || g.board.IsOver() || !g.board.InBounds(c) || g.board.IsDisabled(c) {
		return
	}

	switch {
	case !g.hasSelection:
		g.selected, g.hasSelection = c, true
	case g.selected == c:
	case board.Adjacent(g.selected, c):
		from := g.selected
		g.hasSelection = false
		g.swap(from, c)
	default:
		g.selected = c
	}
}

// CancelSelection drops the pending selection and reports whether there was one.
func (g *Game) CancelSelection() bool {
	had := g.hasSelection
	g.hasSelection = false
	return had
}

func (g *Game) swap(from, to board.Cell) {
	res, err := g.board.SwapTile(from, to)
	ev := SwapEvent{GameID: g.ID(), From: from, To: to, Result: res, Err: err}
	g.last = &ev
	if g.onSwap != nil {
		g.onSwap(ev)
	}
}
