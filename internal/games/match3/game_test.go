package match3

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-match3/internal/board"
	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

// swapRows is stable; swapping (2,0) with (3,0) completes A A A on the
// bottom row, and with refills B C B the board settles after one pass.
var swapRows = []string{
	"CDEF",
	"DEFC",
	"EFCD",
	"AABA",
}

var testRuntime = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1}

// isolateConfig keeps the config search path away from real user files.
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

type cycleTokens struct {
	seq []board.Token
	n   int
}

func (c *cycleTokens) Next() board.Token {
	t := c.seq[c.n%len(c.seq)]
	c.n++
	return t
}

// gridFrom builds a grid from rows written top to bottom; '#' is a hole and
// letters are tokens (A=1).
func gridFrom(t *testing.T, rows ...string) *board.Grid {
	t.Helper()
	height := len(rows)
	var holes []board.Cell
	for i, line := range rows {
		for col, ch := range line {
			if ch == '#' {
				holes = append(holes, board.C(col, height-1-i))
			}
		}
	}
	g, err := board.NewGrid(len(rows[0]), height, holes)
	if err != nil {
		t.Fatalf("NewGrid() failed: %v", err)
	}
	for i, line := range rows {
		for col, ch := range line {
			if ch == '#' {
				continue
			}
			if err := g.Set(board.C(col, height-1-i), board.Token(ch-'A'+1)); err != nil {
				t.Fatalf("Set() failed: %v", err)
			}
		}
	}
	return g
}

// newTestGame returns a game whose board is replaced by the given rows.
func newTestGame(t *testing.T, moves int, rows ...string) *Game {
	t.Helper()
	isolateConfig(t)

	layout := config.LayoutConfig{ID: "test_board", Name: "Test", Columns: len(rows[0]), Rows: len(rows), StartingMoves: moves}
	g := New(layout)
	g.Reset(testRuntime)

	src := &cycleTokens{seq: []board.Token{2, 3, 2}}
	b, err := board.FromGrid(gridFrom(t, rows...), moves, src, board.WithGameOverHook(g.finish))
	if err != nil {
		t.Fatalf("FromGrid() failed: %v", err)
	}
	g.board = b
	g.cursor = board.C(0, 0)
	return g
}

func press(g *Game, actions ...core.Action) core.StepResult {
	var res core.StepResult
	for _, a := range actions {
		in := core.NewInputFrame()
		in.Set(a)
		res = g.Step(in)
	}
	return res
}

func TestSelectionRules(t *testing.T) {
	g := newTestGame(t, 5, swapRows...)

	g.Select(board.C(0, 0))
	if sel, ok := g.Selection(); !ok || sel != board.C(0, 0) {
		t.Fatalf("Selection() = %v, %v; want (0,0)", sel, ok)
	}

	// Same cell again is ignored
	g.Select(board.C(0, 0))
	if sel, ok := g.Selection(); !ok || sel != board.C(0, 0) {
		t.Errorf("reselecting should keep the selection, got %v, %v", sel, ok)
	}
	if _, ok := g.LastSwap(); ok {
		t.Error("reselecting must not swap")
	}

	// Non-adjacent cell moves the selection
	g.Select(board.C(2, 2))
	if sel, _ := g.Selection(); sel != board.C(2, 2) {
		t.Errorf("non-adjacent select should move selection, got %v", sel)
	}
	if _, ok := g.LastSwap(); ok {
		t.Error("non-adjacent select must not swap")
	}
	if g.board.MovesLeft() != 5 {
		t.Errorf("MovesLeft = %d, want 5", g.board.MovesLeft())
	}

	// Adjacent cell swaps and clears the selection
	g.Select(board.C(2, 0))
	g.Select(board.C(3, 0))
	if _, ok := g.Selection(); ok {
		t.Error("selection should be cleared after a swap")
	}
	ev, ok := g.LastSwap()
	if !ok {
		t.Fatal("expected a swap")
	}
	if ev.From != board.C(2, 0) || ev.To != board.C(3, 0) || ev.Err != nil {
		t.Errorf("swap event = %+v", ev)
	}
	if ev.Result.Outcome != board.Resolved || ev.Result.Cleared != 3 {
		t.Errorf("swap result = %+v, want resolved clearing 3", ev.Result)
	}

	st := g.State()
	if st.Score != 3 || st.MovesLeft != 4 || st.GameOver {
		t.Errorf("State() = %+v, want score 3, 4 moves", st)
	}
}

func TestSelectionClearedOnNoMatch(t *testing.T) {
	g := newTestGame(t, 5, swapRows...)
	before := g.board.Grid()

	g.Select(board.C(0, 3))
	g.Select(board.C(1, 3))

	if _, ok := g.Selection(); ok {
		t.Error("selection should be cleared after a failed swap")
	}
	ev, _ := g.LastSwap()
	if ev.Result.Outcome != board.NoMatch {
		t.Errorf("Outcome = %v, want no_match", ev.Result.Outcome)
	}
	if !g.board.Grid().Equal(before) || g.State().MovesLeft != 5 {
		t.Error("no-match swap must leave the board and moves unchanged")
	}
	if msg, _ := g.outcomeText(); msg != "No match" {
		t.Errorf("outcomeText() = %q, want \"No match\"", msg)
	}
}

func TestDisabledCellsCannotBeSelected(t *testing.T) {
	g := newTestGame(t, 5,
		"CDE#",
		"DEFC",
		"EFCD",
		"AABA",
	)

	g.Select(board.C(3, 3))
	if _, ok := g.Selection(); ok {
		t.Error("disabled cell should not be selectable")
	}

	g.Select(board.C(2, 3))
	g.Select(board.C(3, 3))
	if sel, ok := g.Selection(); !ok || sel != board.C(2, 3) {
		t.Errorf("selecting a hole should keep the previous selection, got %v, %v", sel, ok)
	}

	g.Select(board.C(9, 9))
	if sel, _ := g.Selection(); sel != board.C(2, 3) {
		t.Errorf("out-of-bounds select changed the selection to %v", sel)
	}
}

func TestCursorAndActions(t *testing.T) {
	g := newTestGame(t, 5, swapRows...)

	press(g, core.ActionUp, core.ActionUp, core.ActionRight)
	if g.Cursor() != board.C(1, 2) {
		t.Errorf("Cursor() = %v, want (1,2)", g.Cursor())
	}

	// Clamped at the edges
	press(g, core.ActionLeft, core.ActionLeft, core.ActionDown, core.ActionDown, core.ActionDown, core.ActionDown)
	if g.Cursor() != board.C(0, 0) {
		t.Errorf("Cursor() = %v, want (0,0)", g.Cursor())
	}

	press(g, core.ActionRight, core.ActionRight, core.ActionSelect)
	if sel, ok := g.Selection(); !ok || sel != board.C(2, 0) {
		t.Fatalf("Selection() = %v, %v; want (2,0)", sel, ok)
	}

	press(g, core.ActionCancel)
	if _, ok := g.Selection(); ok {
		t.Error("cancel should clear the selection")
	}
	if g.CancelSelection() {
		t.Error("CancelSelection() with nothing selected should report false")
	}

	// Swap through the keyboard: select (2,0), move right, select (3,0)
	press(g, core.ActionSelect, core.ActionRight, core.ActionSelect)
	if st := g.State(); st.Score != 3 || st.MovesLeft != 4 {
		t.Errorf("State() = %+v, want score 3, 4 moves", st)
	}
}

func TestPauseBlocksInput(t *testing.T) {
	g := newTestGame(t, 5, swapRows...)

	if st := press(g, core.ActionPause).State; !st.Paused {
		t.Fatal("expected paused state")
	}
	press(g, core.ActionRight, core.ActionSelect)
	if g.Cursor() != board.C(0, 0) {
		t.Error("cursor moved while paused")
	}
	if _, ok := g.Selection(); ok {
		t.Error("selection made while paused")
	}

	if st := press(g, core.ActionPause).State; st.Paused {
		t.Error("second pause should resume")
	}
}

func TestGameOverNotifiesOnce(t *testing.T) {
	g := newTestGame(t, 1, swapRows...)

	calls := 0
	var gotID string
	var gotScore int
	g.OnGameOver(func(id string, score int) {
		calls++
		gotID, gotScore = id, score
	})

	var events []SwapEvent
	g.OnSwap(func(ev SwapEvent) { events = append(events, ev) })

	g.Select(board.C(2, 0))
	g.Select(board.C(3, 0))

	st := g.State()
	if !st.GameOver || st.MovesLeft != 0 || st.Score != 3 {
		t.Fatalf("State() = %+v, want game over with score 3", st)
	}
	if calls != 1 || gotID != "test_board" || gotScore != 3 {
		t.Errorf("notifier called %d times with (%q, %d)", calls, gotID, gotScore)
	}
	if len(events) != 1 || !events[0].Result.GameOver {
		t.Errorf("swap events = %+v", events)
	}

	// Input after game over is ignored
	g.Select(board.C(0, 0))
	press(g, core.ActionSelect, core.ActionRight, core.ActionSelect)
	if _, ok := g.Selection(); ok {
		t.Error("selection accepted after game over")
	}
	if calls != 1 {
		t.Errorf("notifier called %d times, want 1", calls)
	}
	if st := press(g, core.ActionPause).State; st.Paused {
		t.Error("pause should be ignored after game over")
	}
}

func TestResetDeterministic(t *testing.T) {
	isolateConfig(t)

	run := func() uint64 {
		g := New(config.LayoutConfig{ID: "match3"})
		g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 4242})

		seq := []core.Action{
			core.ActionSelect, core.ActionRight, core.ActionSelect,
			core.ActionUp, core.ActionSelect, core.ActionDown, core.ActionSelect,
			core.ActionLeft, core.ActionSelect, core.ActionLeft, core.ActionSelect,
		}
		press(g, seq...)
		snap := g.Snapshot()
		return snap.Hash()
	}

	if h1, h2 := run(), run(); h1 != h2 {
		t.Errorf("same seed and inputs gave hashes %d and %d", h1, h2)
	}
}

func TestResetUsesLayoutConfig(t *testing.T) {
	isolateConfig(t)

	g := New(config.LayoutConfig{ID: "match3_holes"})
	g.Reset(testRuntime)

	if g.board.Columns() != 8 || g.board.Rows() != 8 {
		t.Errorf("board = %dx%d, want 8x8", g.board.Columns(), g.board.Rows())
	}
	if st := g.State(); st.MovesLeft != 25 || st.Score != 0 {
		t.Errorf("State() = %+v, want 25 moves and score 0", st)
	}
	if !g.board.IsDisabled(board.C(3, 3)) || !g.board.IsDisabled(board.C(7, 7)) {
		t.Error("holes from config not applied")
	}
	if g.board.IsDisabled(g.Cursor()) {
		t.Errorf("cursor starts on a hole at %v", g.Cursor())
	}
	if g.Title() != "Holes" {
		t.Errorf("Title() = %q, want Holes", g.Title())
	}
}

func TestMovesOverrideAndDifficulty(t *testing.T) {
	isolateConfig(t)
	t.Cleanup(func() {
		SetMovesOverride(0)
		_ = SetDifficultyPreset("normal")
	})

	g := New(config.LayoutConfig{ID: "match3"})

	SetMovesOverride(3)
	g.Reset(testRuntime)
	if got := g.State().MovesLeft; got != 3 {
		t.Errorf("MovesLeft with override = %d, want 3", got)
	}

	SetMovesOverride(0)
	if err := SetDifficultyPreset("hard"); err != nil {
		t.Fatal(err)
	}
	g.Reset(testRuntime)
	if got := g.State().MovesLeft; got != 14 {
		t.Errorf("MovesLeft on hard = %d, want 14", got)
	}

	if err := SetDifficultyPreset("impossible"); err == nil {
		t.Error("unknown preset should fail")
	}
}

func TestRegisteredLayouts(t *testing.T) {
	for _, id := range []string{"match3", "match3_holes", "match3_cross", "match3_mini"} {
		if !registry.Exists(id) {
			t.Errorf("layout %q not registered", id)
		}
	}

	g, err := registry.Create("match3_holes")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if _, ok := g.(registry.GameOverNotifier); !ok {
		t.Error("match3 games should implement GameOverNotifier")
	}
	d, ok := g.(registry.Describer)
	if !ok {
		t.Fatal("match3 games should implement Describer")
	}
	if got := d.Description(); got != "8x8, 25 moves, 8 holes" {
		t.Errorf("Description() = %q", got)
	}

	cfg := config.Match3Config{Layouts: []config.LayoutConfig{
		{ID: "match3"},
		{ID: "test_extra", Name: "Extra", Columns: 5, Rows: 5, StartingMoves: 4},
	}}
	added := RegisterLayouts(cfg)
	if len(added) != 1 || added[0] != "test_extra" {
		t.Errorf("RegisterLayouts() = %v, want [test_extra]", added)
	}
	if again := RegisterLayouts(cfg); len(again) != 0 {
		t.Errorf("second RegisterLayouts() = %v, want none", again)
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, 5,
		"CDE#",
		"DEFC",
		"EFCD",
		"AABA",
	)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	// 4x4 board: framed width 14 centered at x=33, top at y=10
	if got := screen.GetCell(35, 14); got.Rune != '●' || got.Color != core.ColorBrightRed {
		t.Errorf("token at (0,0) rendered as %+v", got)
	}
	if got := screen.Get(44, 11); got != holeGlyph {
		t.Errorf("hole rendered as %q", got)
	}
	if !screen.GetCell(35, 14).Reverse {
		t.Error("cursor cell should be highlighted")
	}
	if !strings.Contains(screen.String(), "Moves: 5") {
		t.Error("HUD should show the move budget")
	}

	g.Select(board.C(1, 0))
	g.Render(screen)
	if screen.Get(37, 14) != '[' || screen.Get(39, 14) != ']' {
		t.Errorf("selection brackets missing, row = %q", screen.Row(14))
	}
}

func TestRenderGameOverAndTooSmall(t *testing.T) {
	g := newTestGame(t, 1, swapRows...)
	g.Select(board.C(2, 0))
	g.Select(board.C(3, 0))

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()
	for _, want := range []string{"GAME OVER", "Final score: 3", "R restart"} {
		if !strings.Contains(out, want) {
			t.Errorf("game over screen missing %q", want)
		}
	}

	g.Resize(20, 5)
	if !g.State().Paused {
		t.Error("too-small screen should report paused")
	}
	small := core.NewScreen(20, 5)
	g.Render(small)
	if !strings.Contains(small.String(), "Window too small") {
		t.Error("expected too-small message")
	}
}
