package match3

import "github.com/vovakirdan/tui-match3/internal/board"

// Snapshot contains the observable game state for determinism tests.
type Snapshot struct {
	Tick         uint64
	Board        board.Snapshot
	Cursor       board.Cell
	Selected     board.Cell
	HasSelection bool
	Paused       bool
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:         g.tick,
		Cursor:       g.cursor,
		Selected:     g.selected,
		HasSelection: g.hasSelection,
		Paused:       g.paused,
	}
	if g.board != nil {
		snap.Board = g.board.Snapshot()
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Board.Score)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Board.MovesLeft) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Board.State)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Cursor.Col)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Cursor.Row)      //#nosec G115 -- hash computation
	if snap.HasSelection {
		h = h*31 + 1
		h = h*31 + uint64(snap.Selected.Col) //#nosec G115 -- hash computation
		h = h*31 + uint64(snap.Selected.Row) //#nosec G115 -- hash computation
	}
	if snap.Paused {
		h = h*31 + 1
	}

	for _, row := range snap.Board.Tokens {
		for _, t := range row {
			h = h*31 + uint64(t)
		}
	}

	return h
}
