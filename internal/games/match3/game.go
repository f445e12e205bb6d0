// Package match3 turns a board.Board into a playable registry.Game: a
// cursor and pending selection drive swaps, and the board is drawn into a
// core.Screen with the configured token glyphs and colors.
package match3

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-match3/internal/board"
	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
)

// SwapEvent describes one swap attempt made through the selection.
type SwapEvent struct {
	GameID string
	From   board.Cell
	To     board.Cell
	Result board.SwapResult
	Err    error
}

// Game is one configured layout played with a cursor.
type Game struct {
	layout  config.LayoutConfig
	styles  []tokenStyle // index is token-1
	board   *board.Board
	runtime core.RuntimeConfig
	tick    uint64

	cursor       board.Cell
	selected     board.Cell
	hasSelection bool
	last         *SwapEvent

	paused   bool
	tooSmall bool

	onGameOver func(gameID string, score int)
	onSwap     func(SwapEvent)
}

// New creates a game for the given layout. Reset must be called before play.
func New(layout config.LayoutConfig) *Game {
	return &Game{layout: layout}
}

// ID returns the layout identifier.
func (g *Game) ID() string {
	return g.layout.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.layout.Name == "" {
		return g.layout.ID
	}
	return g.layout.Name
}

// Description summarizes the layout for listings.
func (g *Game) Description() string {
	cols, rows := g.layout.Size()
	desc := fmt.Sprintf("%dx%d, %d moves", cols, rows, g.layout.StartingMoves)
	if holes := len(g.layout.Holes()); holes > 0 {
		desc += fmt.Sprintf(", %d holes", holes)
	}
	return desc
}

// OnGameOver registers the callback fired once per finished game.
func (g *Game) OnGameOver(fn func(gameID string, score int)) {
	g.onGameOver = fn
}

// OnSwap registers a callback for every swap attempt.
func (g *Game) OnSwap(fn func(SwapEvent)) {
	g.onSwap = fn
}

// Reset starts a new game on a fresh board.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.tick = 0
	g.paused = false
	g.hasSelection = false
	g.last = nil

	cfg := loadConfig()
	if l, err := cfg.Layout(g.layout.ID); err == nil {
		g.layout = l
	}
	g.styles = buildStyles(cfg.Tokens)

	rng := rand.New(rand.NewSource(runtime.Seed))
	b, err := board.New(boardConfig(g.layout, len(cfg.Tokens)), rng, board.WithGameOverHook(g.finish))
	if err != nil {
		// Only reachable with a layout that bypassed validation
		fallback := config.DefaultMatch3Config()
		g.layout = fallback.Layouts[0]
		g.styles = buildStyles(fallback.Tokens)
		b, _ = board.New(boardConfig(g.layout, len(fallback.Tokens)), rng, board.WithGameOverHook(g.finish))
	}
	g.board = b

	g.cursor = g.startCursor()
	g.checkScreenSize()
}

// boardConfig converts a layout into a board configuration.
func boardConfig(l config.LayoutConfig, tokenCount int) board.Config {
	cols, rows := l.Size()
	holes := l.Holes()
	disabled := make([]board.Cell, 0, len(holes))
	for _, h := range holes {
		disabled = append(disabled, board.C(h.X, h.Y))
	}
	return board.Config{
		Columns:       cols,
		Rows:          rows,
		Disabled:      disabled,
		StartingMoves: l.StartingMoves,
		Kinds:         l.EffectiveKinds(tokenCount),
	}
}

// startCursor picks the active cell closest to the board center.
func (g *Game) startCursor() board.Cell {
	center := board.C(g.board.Columns()/2, g.board.Rows()/2)
	best := center
	bestDist := -1
	for _, c := range g.board.Grid().ActiveCells() {
		if d := c.Manhattan(center); bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func (g *Game) finish(score int) {
	g.hasSelection = false
	if g.onGameOver != nil {
		g.onGameOver(g.ID(), score)
	}
}

// Step applies the actions collected during one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.board == nil || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.board.IsOver() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	// Restart is handled by the platform calling Reset
	if g.board.IsOver() {
		return core.StepResult{State: g.State()}
	}

	g.handleInput(in)

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.board == nil {
		return core.GameState{MovesLeft: g.layout.StartingMoves}
	}
	return core.GameState{
		Score:     g.board.Score(),
		MovesLeft: g.board.MovesLeft(),
		GameOver:  g.board.IsOver(),
		Paused:    g.paused || g.tooSmall,
	}
}

// Cursor returns the cell under the cursor.
func (g *Game) Cursor() board.Cell {
	return g.cursor
}

// Selection returns the pending selection, if any.
func (g *Game) Selection() (board.Cell, bool) {
	return g.selected, g.hasSelection
}

// LastSwap returns the most recent swap attempt, if any.
func (g *Game) LastSwap() (SwapEvent, bool) {
	if g.last == nil {
		return SwapEvent{}, false
	}
	return *g.last, true
}

// Resize updates the screen size without touching the board.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	g.checkScreenSize()
}
